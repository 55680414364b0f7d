package main

import (
	"bytes"
	"fmt"
	"go/ast"
	"reflect"
	"sort"
	"strings"

	"github.com/stachehq/stache"
)

type fieldKind int

const (
	kindString fieldKind = iota
	kindBool
	kindInt
	kindUint
	kindFloat
	kindSlice
	kindPointer
	kindContent
)

// field is one renderable struct field after directives are applied.
type field struct {
	goName   string
	name     string
	hash     uint64
	kind     fieldKind
	elem     fieldKind
	md       bool
	callback string
	flatten  bool
}

type generator struct {
	pkgName   string
	files     []*ast.File
	tag       string
	renameAll caseStyle
	buf       bytes.Buffer
}

func (g *generator) printf(format string, args ...any) {
	fmt.Fprintf(&g.buf, format, args...)
}

func (g *generator) generate(typeNames []string) ([]byte, error) {
	g.printf("// Code generated by contentgen -type %s; DO NOT EDIT.\n\n", strings.Join(typeNames, ","))
	g.printf("package %s\n\n", g.pkgName)
	g.printf("import \"github.com/stachehq/stache\"\n\n")

	for _, name := range typeNames {
		name = strings.TrimSpace(name)
		st, err := g.findStruct(name)
		if err != nil {
			return nil, err
		}
		fields, err := g.collectFields(name, st)
		if err != nil {
			return nil, err
		}
		if err := g.emitType(name, fields); err != nil {
			return nil, err
		}
	}
	return g.buf.Bytes(), nil
}

func (g *generator) findStruct(name string) (*ast.StructType, error) {
	for _, file := range g.files {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok {
				continue
			}
			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok || ts.Name.Name != name {
					continue
				}
				st, ok := ts.Type.(*ast.StructType)
				if !ok {
					return nil, fmt.Errorf("type %s is not a struct", name)
				}
				return st, nil
			}
		}
	}
	return nil, fmt.Errorf("type %s not found in package %s", name, g.pkgName)
}

func (g *generator) collectFields(typeName string, st *ast.StructType) ([]field, error) {
	var fields []field
	seen := make(map[uint64]string)

	for _, fld := range st.Fields.List {
		kind, elem := classify(fld.Type)

		var directive string
		if fld.Tag != nil {
			tag := strings.Trim(fld.Tag.Value, "`")
			directive = reflect.StructTag(tag).Get(g.tag)
		}
		rename, opts := splitDirective(directive)
		if rename == "-" {
			continue
		}

		// Embedded fields flatten implicitly, like encoding/json.
		if len(fld.Names) == 0 {
			name := embeddedName(fld.Type)
			if name == "" {
				return nil, fmt.Errorf("%s: cannot determine embedded field name", typeName)
			}
			fields = append(fields, field{goName: name, kind: kind, flatten: true})
			continue
		}

		for _, ident := range fld.Names {
			f := field{goName: ident.Name, kind: kind, elem: elem}
			for _, opt := range opts {
				switch {
				case opt == "md":
					f.md = true
				case opt == "flatten":
					f.flatten = true
				case strings.HasPrefix(opt, "callback="):
					f.callback = strings.TrimPrefix(opt, "callback=")
				case opt != "":
					return nil, fmt.Errorf("%s.%s: unknown directive %q", typeName, ident.Name, opt)
				}
			}
			if (f.md || f.callback != "") && f.kind != kindString {
				return nil, fmt.Errorf("%s.%s: md and callback directives require a string field", typeName, ident.Name)
			}
			if f.flatten {
				if f.kind != kindContent && f.kind != kindPointer {
					return nil, fmt.Errorf("%s.%s: flatten requires a struct or pointer field", typeName, ident.Name)
				}
				fields = append(fields, f)
				continue
			}

			f.name = rename
			if f.name == "" {
				f.name = g.renameAll.apply(ident.Name)
			}
			f.hash = stache.Hash(f.name)
			if other, dup := seen[f.hash]; dup {
				return nil, fmt.Errorf("%s: field name %q collides with %q under FNV-1a", typeName, f.name, other)
			}
			seen[f.hash] = f.name
			fields = append(fields, f)
		}
	}
	return fields, nil
}

func classify(expr ast.Expr) (fieldKind, fieldKind) {
	switch t := expr.(type) {
	case *ast.Ident:
		switch t.Name {
		case "string":
			return kindString, 0
		case "bool":
			return kindBool, 0
		case "int", "int8", "int16", "int32", "int64":
			return kindInt, 0
		case "uint", "uint8", "uint16", "uint32", "uint64", "uintptr":
			return kindUint, 0
		case "float32", "float64":
			return kindFloat, 0
		}
		return kindContent, 0
	case *ast.ArrayType:
		if t.Len == nil {
			elem, _ := classify(t.Elt)
			return kindSlice, elem
		}
	case *ast.StarExpr:
		elem, _ := classify(t.X)
		return kindPointer, elem
	}
	return kindContent, 0
}

func embeddedName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return embeddedName(t.X)
	case *ast.SelectorExpr:
		return t.Sel.Name
	}
	return ""
}

func splitDirective(directive string) (rename string, opts []string) {
	parts := strings.Split(directive, ",")
	return parts[0], parts[1:]
}

// wrap adapts a primitive field expression to the stache wrapper type
// carrying the engine's truthiness and rendering rules for that kind.
func wrap(kind fieldKind, expr string) string {
	switch kind {
	case kindString:
		return "stache.String(" + expr + ")"
	case kindBool:
		return "stache.Bool(" + expr + ")"
	case kindInt:
		return "stache.Int(" + expr + ")"
	case kindUint:
		return "stache.Uint(" + expr + ")"
	case kindFloat:
		return "stache.Float(" + expr + ")"
	}
	return expr
}

func (g *generator) emitType(name string, fields []field) error {
	sorted := make([]field, 0, len(fields))
	var flattened []field
	for _, f := range fields {
		if f.flatten {
			flattened = append(flattened, f)
		} else {
			sorted = append(sorted, f)
		}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].hash < sorted[j].hash })

	g.printf("var _ stache.Content = (*%s)(nil)\n\n", name)

	g.printf("func (x *%s) IsTruthy() bool { return true }\n\n", name)

	g.printf("func (x *%s) CapacityHint(tpl *stache.Template) int {\n", name)
	g.printf("\treturn tpl.CapacityHint()")
	for _, f := range sorted {
		if f.kind == kindString {
			g.printf(" + len(x.%s)", f.goName)
		}
	}
	g.printf("\n}\n\n")

	g.printf("func (x *%s) RenderEscaped(e stache.Encoder) error   { return nil }\n", name)
	g.printf("func (x *%s) RenderUnescaped(e stache.Encoder) error { return nil }\n\n", name)

	g.printf("func (x *%s) RenderSection(sec stache.Section, e stache.Encoder) error {\n", name)
	g.printf("\treturn sec.With(x).Render(e)\n}\n\n")

	g.printf("func (x *%s) RenderInverse(sec stache.Section, e stache.Encoder) error { return nil }\n\n", name)

	g.emitFieldMethod(name, "RenderFieldEscaped", "e stache.Encoder", "e", sorted, flattened, g.escapedArm(false))
	g.emitFieldMethod(name, "RenderFieldUnescaped", "e stache.Encoder", "e", sorted, flattened, g.escapedArm(true))
	g.emitFieldMethod(name, "RenderFieldSection", "sec stache.Section, e stache.Encoder", "sec, e", sorted, flattened, g.sectionArm)
	g.emitFieldMethod(name, "RenderFieldInverse", "sec stache.Section, e stache.Encoder", "sec, e", sorted, flattened, g.inverseArm)
	return nil
}

func (g *generator) emitFieldMethod(typeName, method, params, args string, sorted, flattened []field, arm func(field)) {
	g.printf("func (x *%s) %s(hash uint64, name string, %s) (bool, error) {\n", typeName, method, params)
	if len(sorted) > 0 {
		g.printf("\tswitch hash {\n")
		for _, f := range sorted {
			g.printf("\tcase %#x: // %s\n", f.hash, f.name)
			arm(f)
		}
		g.printf("\t}\n")
	}
	for _, f := range flattened {
		if f.kind == kindPointer {
			g.printf("\tif x.%s != nil {\n", f.goName)
			g.printf("\t\tif found, err := x.%s.%s(hash, name, %s); found || err != nil {\n", f.goName, method, args)
			g.printf("\t\t\treturn found, err\n\t\t}\n\t}\n")
		} else {
			g.printf("\tif found, err := x.%s.%s(hash, name, %s); found || err != nil {\n", f.goName, method, args)
			g.printf("\t\treturn found, err\n\t}\n")
		}
	}
	g.printf("\treturn false, nil\n}\n\n")
}

func (g *generator) escapedArm(raw bool) func(field) {
	write, render := "WriteEscaped", "RenderEscaped"
	if raw {
		write, render = "WriteUnescaped", "RenderUnescaped"
	}
	return func(f field) {
		expr := "x." + f.goName
		switch {
		case f.callback != "":
			g.printf("\t\treturn true, %s(%s, e)\n", f.callback, expr)
		case f.md:
			g.printf("\t\treturn true, stache.Markdown(%s, e)\n", expr)
		case f.kind == kindString:
			g.printf("\t\treturn true, e.%s(%s)\n", write, expr)
		case f.kind == kindBool:
			g.printf("\t\treturn true, e.WriteBool(%s)\n", expr)
		case f.kind == kindInt:
			g.printf("\t\treturn true, e.WriteInt(int64(%s))\n", expr)
		case f.kind == kindUint:
			g.printf("\t\treturn true, e.WriteUint(uint64(%s))\n", expr)
		case f.kind == kindFloat:
			g.printf("\t\treturn true, e.WriteFloat(float64(%s))\n", expr)
		case f.kind == kindSlice:
			g.printf("\t\treturn true, nil\n")
		case f.kind == kindPointer:
			g.printf("\t\tif %s == nil {\n\t\t\treturn true, nil\n\t\t}\n", expr)
			if f.elem == kindContent {
				g.printf("\t\treturn true, %s.%s(e)\n", expr, render)
			} else {
				g.printf("\t\treturn true, %s.%s(e)\n", wrap(f.elem, "*"+expr), render)
			}
		default:
			g.printf("\t\treturn true, %s.%s(e)\n", expr, render)
		}
	}
}

func (g *generator) sectionArm(f field) {
	expr := "x." + f.goName
	switch {
	case f.md || f.callback != "":
		g.printf("\t\treturn true, %s.RenderSection(sec, e)\n", wrap(kindString, expr))
	case f.kind == kindSlice:
		elem := "x." + f.goName + "[i]"
		if f.elem != kindContent {
			elem = wrap(f.elem, elem)
		}
		g.printf("\t\tfor i := range %s {\n", expr)
		g.printf("\t\t\tif err := %s.RenderSection(sec, e); err != nil {\n", elem)
		g.printf("\t\t\t\treturn true, err\n\t\t\t}\n\t\t}\n")
		g.printf("\t\treturn true, nil\n")
	case f.kind == kindPointer:
		g.printf("\t\tif %s == nil {\n\t\t\treturn true, nil\n\t\t}\n", expr)
		if f.elem == kindContent {
			g.printf("\t\treturn true, %s.RenderSection(sec, e)\n", expr)
		} else {
			g.printf("\t\treturn true, %s.RenderSection(sec, e)\n", wrap(f.elem, "*"+expr))
		}
	case f.kind == kindContent:
		g.printf("\t\treturn true, %s.RenderSection(sec, e)\n", expr)
	default:
		g.printf("\t\treturn true, %s.RenderSection(sec, e)\n", wrap(f.kind, expr))
	}
}

func (g *generator) inverseArm(f field) {
	expr := "x." + f.goName
	switch {
	case f.md || f.callback != "":
		g.printf("\t\treturn true, %s.RenderInverse(sec, e)\n", wrap(kindString, expr))
	case f.kind == kindSlice:
		g.printf("\t\tif len(%s) == 0 {\n\t\t\treturn true, sec.Render(e)\n\t\t}\n", expr)
		g.printf("\t\treturn true, nil\n")
	case f.kind == kindPointer:
		g.printf("\t\tif %s == nil {\n\t\t\treturn true, sec.Render(e)\n\t\t}\n", expr)
		if f.elem == kindContent {
			g.printf("\t\treturn true, %s.RenderInverse(sec, e)\n", expr)
		} else {
			g.printf("\t\treturn true, %s.RenderInverse(sec, e)\n", wrap(f.elem, "*"+expr))
		}
	case f.kind == kindContent:
		g.printf("\t\treturn true, %s.RenderInverse(sec, e)\n", expr)
	default:
		g.printf("\t\treturn true, %s.RenderInverse(sec, e)\n", wrap(f.kind, expr))
	}
}

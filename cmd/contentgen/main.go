// contentgen generates stache.Content implementations for struct types.
//
// For every requested type it emits the full method set dispatching
// fields through a switch over precomputed FNV-1a hashes, so rendering
// never touches reflection. Run it with go:generate:
//
//	//go:generate go run github.com/stachehq/stache/cmd/contentgen -type Post,Blog
//
// Field behavior is controlled by the `stache` struct tag:
//
//	Title  string `stache:"title"`          rename
//	Hidden string `stache:"-"`              skip
//	Body   string `stache:",md"`            render as Markdown
//	Slug   string `stache:",callback=fn"`   render through fn(string, stache.Encoder) error
//	Meta   Meta   `stache:",flatten"`       resolve Meta's fields at this level
//
// A callback error propagates out of Template.RenderTo; Template.Render
// discards it and returns whatever was written before the failure.
//
// The -rename-all flag applies a case convention to every field without
// an explicit rename, e.g. -rename-all camelCase.
package main

import (
	"flag"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
)

func main() {
	var (
		typeNames = flag.String("type", "", "comma-separated list of struct type names; required")
		renameAll = flag.String("rename-all", "", "case convention for field names: UPPERCASE, PascalCase, camelCase, snake_case, SCREAMING_SNAKE_CASE, kebab-case, SCREAMING-KEBAB-CASE")
		tagName   = flag.String("tag", "stache", "struct tag key to read directives from")
		output    = flag.String("output", "content_gen.go", "output file name")
		dir       = flag.String("dir", ".", "package directory to scan")
	)
	flag.Parse()

	if *typeNames == "" {
		fmt.Fprintln(os.Stderr, "contentgen: -type is required")
		flag.Usage()
		os.Exit(2)
	}
	var style caseStyle
	if *renameAll != "" {
		s, ok := parseCaseStyle(*renameAll)
		if !ok {
			fmt.Fprintf(os.Stderr, "contentgen: unknown -rename-all style %q\n", *renameAll)
			os.Exit(2)
		}
		style = s
	}

	pkgName, files, err := parsePackage(*dir)
	if err != nil {
		fatal(err)
	}

	g := &generator{
		pkgName:   pkgName,
		files:     files,
		tag:       *tagName,
		renameAll: style,
	}

	src, err := g.generate(strings.Split(*typeNames, ","))
	if err != nil {
		fatal(err)
	}
	formatted, err := format.Source(src)
	if err != nil {
		// Emit the raw source anyway so the mistake can be inspected.
		formatted = src
	}
	if err := os.WriteFile(filepath.Join(*dir, *output), formatted, 0o644); err != nil {
		fatal(err)
	}
}

// parsePackage parses every non-test Go file in dir. All files must
// belong to the same package.
func parsePackage(dir string) (string, []*ast.File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", nil, err
	}
	fset := token.NewFileSet()
	var (
		pkgName string
		files   []*ast.File
	)
	for _, ent := range entries {
		name := ent.Name()
		if ent.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		file, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.ParseComments)
		if err != nil {
			return "", nil, err
		}
		if pkgName == "" {
			pkgName = file.Name.Name
		} else if file.Name.Name != pkgName {
			return "", nil, fmt.Errorf("multiple packages in %s: %s and %s", dir, pkgName, file.Name.Name)
		}
		files = append(files, file)
	}
	if len(files) == 0 {
		return "", nil, fmt.Errorf("no Go files in %s", dir)
	}
	return pkgName, files, nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "contentgen:", err)
	os.Exit(1)
}

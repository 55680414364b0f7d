// Package stache is a fast, logic-less {{mustache}}-flavored template
// engine. Templates compile once into a flat array of blocks with
// precomputed section extents; rendering is a single linear walk that
// resolves fields through 64-bit FNV-1a hashes instead of string
// comparisons or reflection.
//
// Data is anything implementing Content. Implementations for struct
// types are generated by the contentgen tool in cmd/contentgen, and the
// wrapper types String, Int, List, Map and friends cover plain values.
package stache

import (
	"bufio"
	"io"
	"os"
)

// Template is a compiled template. It is immutable after compilation
// and safe for concurrent rendering.
type Template struct {
	source   string
	blocks   []block
	capacity int
}

// PartialResolver supplies compiled templates for {{>name}} tags.
// Partials are resolved at compile time and inlined into the referencing
// template, so rendering never needs a resolver.
type PartialResolver interface {
	GetPartial(name string) (*Template, error)
}

type disabledPartials struct{}

func (disabledPartials) GetPartial(string) (*Template, error) {
	return nil, ErrPartialsDisabled
}

// Compile parses source into a Template. Compilation is all or nothing:
// any malformed tag fails the whole compile. Templates containing
// partials must be compiled through CompileWithPartials or a Folder.
func Compile(source string) (*Template, error) {
	return CompileWithPartials(source, disabledPartials{})
}

// CompileWithPartials parses source, resolving {{>name}} tags through
// partials and inlining the result.
func CompileWithPartials(source string, partials PartialResolver) (*Template, error) {
	p := parser{src: source, partials: partials, blocks: make([]block, 0, 16)}
	if err := p.parse(); err != nil {
		return nil, err
	}
	return &Template{source: source, blocks: p.blocks, capacity: p.capacity}, nil
}

// Source returns the source the template was compiled from. Partial
// tags appear as written; the files they pulled in are not included.
func (t *Template) Source() string {
	return t.source
}

// CapacityHint returns the combined length of the template's static
// text. A template without tags renders to exactly this many bytes.
func (t *Template) CapacityHint() int {
	return t.capacity
}

// Render renders the template with content into a new string. Errors
// returned by the content, such as a failing callback function, are
// discarded here; render through RenderTo to observe them.
func (t *Template) Render(content Content) string {
	capacity := content.CapacityHint(t)
	capacity += capacity / 4
	enc := bufferEncoder{buf: make([]byte, 0, capacity)}
	// Buffer writes cannot fail.
	_ = newSection(t.blocks, content).Render(&enc)
	return string(enc.buf)
}

// RenderTo renders the template with content into w. The first write
// error aborts rendering and is returned, wrapped only by w itself.
func (t *Template) RenderTo(w io.Writer, content Content) error {
	enc := streamEncoder{w: w}
	return newSection(t.blocks, content).Render(&enc)
}

// RenderFile renders the template with content into a file at path,
// creating or truncating it.
func (t *Template) RenderFile(path string, content Content) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := t.RenderTo(w, content); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

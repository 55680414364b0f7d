package stache

import (
	"errors"
	"fmt"
)

var (
	// ErrUnclosedTag is returned when opening braces have no matching
	// closing braces, including a "{{{name}}" missing its third brace.
	ErrUnclosedTag = errors.New("couldn't find closing braces matching opening braces")

	// ErrStackOverflow is returned when sections nest deeper than the
	// parser stack allows.
	ErrStackOverflow = errors.New("section nesting exceeds parser stack capacity")

	// ErrPartialsDisabled is returned by Compile when the template
	// contains a {{>partial}} tag. Use CompileWithPartials or a Folder.
	ErrPartialsDisabled = errors.New("partials are not allowed in the current context")
)

// UnclosedSectionError reports a section that was opened but closed by a
// tag naming something else, or never closed at all. Name is the opener.
type UnclosedSectionError struct {
	Name string
}

func (e *UnclosedSectionError) Error() string {
	return fmt.Sprintf("section not closed properly, was expecting {{/%s}}", e.Name)
}

// UnopenedSectionError reports a closing tag with no matching opener.
type UnopenedSectionError struct {
	Name string
}

func (e *UnopenedSectionError) Error() string {
	return fmt.Sprintf("unexpected closing tag {{/%s}}", e.Name)
}

// IllegalPartialError reports a partial that resolves to a path outside
// the template folder.
type IllegalPartialError struct {
	Name string
}

func (e *IllegalPartialError) Error() string {
	return fmt.Sprintf("attempted to load %s, partials can only be loaded from within the template folder", e.Name)
}

// NotFoundError reports a template name that doesn't exist on disk.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("template %s not found", e.Name)
}

// PartialCycleError reports a partial that, directly or through other
// partials, includes itself. Partials are inlined at compile time, so
// cycles can never be represented.
type PartialCycleError struct {
	Name string
}

func (e *PartialCycleError) Error() string {
	return fmt.Sprintf("partial %s includes itself", e.Name)
}

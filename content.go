package stache

import "math"

// Content is anything a template can render. Implementations are
// expected to come out of contentgen, but the wrapper types below cover
// plain values and the interface is small enough to write by hand.
//
// The RenderField methods resolve one field of a scope: they return
// found == false when the scope doesn't know the field, which sends the
// lookup to the next enclosing scope. The hash is the FNV-1a hash of
// the name; implementations backed by a switch compare hashes only.
type Content interface {
	// IsTruthy reports whether a {{#section}} over this value renders.
	IsTruthy() bool

	// CapacityHint estimates the rendered size of tpl with this value,
	// used to presize the output buffer.
	CapacityHint(tpl *Template) int

	RenderEscaped(e Encoder) error
	RenderUnescaped(e Encoder) error

	// RenderSection renders sec if the value is truthy. Composite
	// values push themselves as the innermost scope first; lists render
	// sec once per element.
	RenderSection(sec Section, e Encoder) error

	// RenderInverse renders sec if the value is falsy.
	RenderInverse(sec Section, e Encoder) error

	RenderFieldEscaped(hash uint64, name string, e Encoder) (bool, error)
	RenderFieldUnescaped(hash uint64, name string, e Encoder) (bool, error)
	RenderFieldSection(hash uint64, name string, sec Section, e Encoder) (bool, error)
	RenderFieldInverse(hash uint64, name string, sec Section, e Encoder) (bool, error)
}

// floatEpsilon is the smallest difference from zero at which a float
// still counts as truthy.
const floatEpsilon = 2.220446049250313e-16

// String renders escaped by default and is truthy when non-empty.
type String string

func (s String) IsTruthy() bool                { return len(s) != 0 }
func (s String) CapacityHint(*Template) int    { return len(s) }
func (s String) RenderEscaped(e Encoder) error { return e.WriteEscaped(string(s)) }
func (s String) RenderUnescaped(e Encoder) error {
	return e.WriteUnescaped(string(s))
}

func (s String) RenderSection(sec Section, e Encoder) error {
	if s.IsTruthy() {
		return sec.Render(e)
	}
	return nil
}

func (s String) RenderInverse(sec Section, e Encoder) error {
	if !s.IsTruthy() {
		return sec.Render(e)
	}
	return nil
}

func (String) RenderFieldEscaped(uint64, string, Encoder) (bool, error)   { return false, nil }
func (String) RenderFieldUnescaped(uint64, string, Encoder) (bool, error) { return false, nil }
func (String) RenderFieldSection(uint64, string, Section, Encoder) (bool, error) {
	return false, nil
}
func (String) RenderFieldInverse(uint64, string, Section, Encoder) (bool, error) {
	return false, nil
}

// Markup is a String rendered without escaping even in {{name}} position.
type Markup string

func (m Markup) IsTruthy() bool                  { return len(m) != 0 }
func (m Markup) CapacityHint(*Template) int      { return len(m) }
func (m Markup) RenderEscaped(e Encoder) error   { return e.WriteUnescaped(string(m)) }
func (m Markup) RenderUnescaped(e Encoder) error { return e.WriteUnescaped(string(m)) }

func (m Markup) RenderSection(sec Section, e Encoder) error {
	if m.IsTruthy() {
		return sec.Render(e)
	}
	return nil
}

func (m Markup) RenderInverse(sec Section, e Encoder) error {
	if !m.IsTruthy() {
		return sec.Render(e)
	}
	return nil
}

func (Markup) RenderFieldEscaped(uint64, string, Encoder) (bool, error)   { return false, nil }
func (Markup) RenderFieldUnescaped(uint64, string, Encoder) (bool, error) { return false, nil }
func (Markup) RenderFieldSection(uint64, string, Section, Encoder) (bool, error) {
	return false, nil
}
func (Markup) RenderFieldInverse(uint64, string, Section, Encoder) (bool, error) {
	return false, nil
}

type Bool bool

func (b Bool) IsTruthy() bool                  { return bool(b) }
func (Bool) CapacityHint(*Template) int        { return 5 }
func (b Bool) RenderEscaped(e Encoder) error   { return e.WriteBool(bool(b)) }
func (b Bool) RenderUnescaped(e Encoder) error { return e.WriteBool(bool(b)) }

func (b Bool) RenderSection(sec Section, e Encoder) error {
	if b {
		return sec.Render(e)
	}
	return nil
}

func (b Bool) RenderInverse(sec Section, e Encoder) error {
	if !b {
		return sec.Render(e)
	}
	return nil
}

func (Bool) RenderFieldEscaped(uint64, string, Encoder) (bool, error)   { return false, nil }
func (Bool) RenderFieldUnescaped(uint64, string, Encoder) (bool, error) { return false, nil }
func (Bool) RenderFieldSection(uint64, string, Section, Encoder) (bool, error) {
	return false, nil
}
func (Bool) RenderFieldInverse(uint64, string, Section, Encoder) (bool, error) {
	return false, nil
}

type Int int64

func (i Int) IsTruthy() bool                  { return i != 0 }
func (Int) CapacityHint(*Template) int        { return 20 }
func (i Int) RenderEscaped(e Encoder) error   { return e.WriteInt(int64(i)) }
func (i Int) RenderUnescaped(e Encoder) error { return e.WriteInt(int64(i)) }

func (i Int) RenderSection(sec Section, e Encoder) error {
	if i.IsTruthy() {
		return sec.Render(e)
	}
	return nil
}

func (i Int) RenderInverse(sec Section, e Encoder) error {
	if !i.IsTruthy() {
		return sec.Render(e)
	}
	return nil
}

func (Int) RenderFieldEscaped(uint64, string, Encoder) (bool, error)   { return false, nil }
func (Int) RenderFieldUnescaped(uint64, string, Encoder) (bool, error) { return false, nil }
func (Int) RenderFieldSection(uint64, string, Section, Encoder) (bool, error) {
	return false, nil
}
func (Int) RenderFieldInverse(uint64, string, Section, Encoder) (bool, error) {
	return false, nil
}

type Uint uint64

func (u Uint) IsTruthy() bool                  { return u != 0 }
func (Uint) CapacityHint(*Template) int        { return 20 }
func (u Uint) RenderEscaped(e Encoder) error   { return e.WriteUint(uint64(u)) }
func (u Uint) RenderUnescaped(e Encoder) error { return e.WriteUint(uint64(u)) }

func (u Uint) RenderSection(sec Section, e Encoder) error {
	if u.IsTruthy() {
		return sec.Render(e)
	}
	return nil
}

func (u Uint) RenderInverse(sec Section, e Encoder) error {
	if !u.IsTruthy() {
		return sec.Render(e)
	}
	return nil
}

func (Uint) RenderFieldEscaped(uint64, string, Encoder) (bool, error)   { return false, nil }
func (Uint) RenderFieldUnescaped(uint64, string, Encoder) (bool, error) { return false, nil }
func (Uint) RenderFieldSection(uint64, string, Section, Encoder) (bool, error) {
	return false, nil
}
func (Uint) RenderFieldInverse(uint64, string, Section, Encoder) (bool, error) {
	return false, nil
}

// Float is truthy when it differs from zero by more than machine
// epsilon, so accumulated rounding noise still reads as zero.
type Float float64

func (f Float) IsTruthy() bool                  { return math.Abs(float64(f)) > floatEpsilon }
func (Float) CapacityHint(*Template) int        { return 24 }
func (f Float) RenderEscaped(e Encoder) error   { return e.WriteFloat(float64(f)) }
func (f Float) RenderUnescaped(e Encoder) error { return e.WriteFloat(float64(f)) }

func (f Float) RenderSection(sec Section, e Encoder) error {
	if f.IsTruthy() {
		return sec.Render(e)
	}
	return nil
}

func (f Float) RenderInverse(sec Section, e Encoder) error {
	if !f.IsTruthy() {
		return sec.Render(e)
	}
	return nil
}

func (Float) RenderFieldEscaped(uint64, string, Encoder) (bool, error)   { return false, nil }
func (Float) RenderFieldUnescaped(uint64, string, Encoder) (bool, error) { return false, nil }
func (Float) RenderFieldSection(uint64, string, Section, Encoder) (bool, error) {
	return false, nil
}
func (Float) RenderFieldInverse(uint64, string, Section, Encoder) (bool, error) {
	return false, nil
}

// List renders a section once per element. Elements decide themselves
// whether to push a scope, so a list of structs behaves like repeated
// {{#element}} blocks while a list of strings just repeats the body.
type List[T Content] []T

func (l List[T]) IsTruthy() bool { return len(l) != 0 }

func (l List[T]) CapacityHint(tpl *Template) int {
	sum := 0
	for i := range l {
		sum += l[i].CapacityHint(tpl)
	}
	return sum
}

func (List[T]) RenderEscaped(Encoder) error   { return nil }
func (List[T]) RenderUnescaped(Encoder) error { return nil }

func (l List[T]) RenderSection(sec Section, e Encoder) error {
	for i := range l {
		if err := l[i].RenderSection(sec, e); err != nil {
			return err
		}
	}
	return nil
}

func (l List[T]) RenderInverse(sec Section, e Encoder) error {
	if !l.IsTruthy() {
		return sec.Render(e)
	}
	return nil
}

func (List[T]) RenderFieldEscaped(uint64, string, Encoder) (bool, error)   { return false, nil }
func (List[T]) RenderFieldUnescaped(uint64, string, Encoder) (bool, error) { return false, nil }
func (List[T]) RenderFieldSection(uint64, string, Section, Encoder) (bool, error) {
	return false, nil
}
func (List[T]) RenderFieldInverse(uint64, string, Section, Encoder) (bool, error) {
	return false, nil
}

// Map resolves fields by name at render time. It trades the hashed
// switch of generated implementations for flexibility, which makes it
// the escape hatch for shapes not known at compile time.
type Map map[string]Content

func (m Map) IsTruthy() bool { return len(m) != 0 }

func (m Map) CapacityHint(tpl *Template) int {
	sum := 0
	for _, v := range m {
		sum += v.CapacityHint(tpl)
	}
	return sum
}

func (Map) RenderEscaped(Encoder) error   { return nil }
func (Map) RenderUnescaped(Encoder) error { return nil }

func (m Map) RenderSection(sec Section, e Encoder) error {
	if m.IsTruthy() {
		return sec.With(m).Render(e)
	}
	return nil
}

func (m Map) RenderInverse(sec Section, e Encoder) error {
	if !m.IsTruthy() {
		return sec.Render(e)
	}
	return nil
}

func (m Map) RenderFieldEscaped(_ uint64, name string, e Encoder) (bool, error) {
	v, ok := m[name]
	if !ok {
		return false, nil
	}
	return true, v.RenderEscaped(e)
}

func (m Map) RenderFieldUnescaped(_ uint64, name string, e Encoder) (bool, error) {
	v, ok := m[name]
	if !ok {
		return false, nil
	}
	return true, v.RenderUnescaped(e)
}

func (m Map) RenderFieldSection(_ uint64, name string, sec Section, e Encoder) (bool, error) {
	v, ok := m[name]
	if !ok {
		return false, nil
	}
	return true, v.RenderSection(sec, e)
}

func (m Map) RenderFieldInverse(_ uint64, name string, sec Section, e Encoder) (bool, error) {
	v, ok := m[name]
	if !ok {
		return false, nil
	}
	return true, v.RenderInverse(sec, e)
}

// Option is an optional value. Absence is falsy regardless of the wrapped
// value's own truthiness.
type Option[T Content] struct {
	value T
	some  bool
}

func Some[T Content](v T) Option[T] { return Option[T]{value: v, some: true} }

func None[T Content]() Option[T] { return Option[T]{} }

func (o Option[T]) IsTruthy() bool { return o.some }

func (o Option[T]) CapacityHint(tpl *Template) int {
	if o.some {
		return o.value.CapacityHint(tpl)
	}
	return 0
}

func (o Option[T]) RenderEscaped(e Encoder) error {
	if o.some {
		return o.value.RenderEscaped(e)
	}
	return nil
}

func (o Option[T]) RenderUnescaped(e Encoder) error {
	if o.some {
		return o.value.RenderUnescaped(e)
	}
	return nil
}

func (o Option[T]) RenderSection(sec Section, e Encoder) error {
	if o.some {
		return o.value.RenderSection(sec, e)
	}
	return nil
}

func (o Option[T]) RenderInverse(sec Section, e Encoder) error {
	if !o.some {
		return sec.Render(e)
	}
	return nil
}

func (Option[T]) RenderFieldEscaped(uint64, string, Encoder) (bool, error)   { return false, nil }
func (Option[T]) RenderFieldUnescaped(uint64, string, Encoder) (bool, error) { return false, nil }
func (Option[T]) RenderFieldSection(uint64, string, Section, Encoder) (bool, error) {
	return false, nil
}
func (Option[T]) RenderFieldInverse(uint64, string, Section, Encoder) (bool, error) {
	return false, nil
}

// Ptr adapts a pointer to a Content value. A nil pointer is falsy and
// renders nothing; a non-nil one behaves as the value it points to,
// field lookups included.
type Ptr[T Content] struct {
	Value *T
}

func (p Ptr[T]) IsTruthy() bool { return p.Value != nil }

func (p Ptr[T]) CapacityHint(tpl *Template) int {
	if p.Value == nil {
		return 0
	}
	return (*p.Value).CapacityHint(tpl)
}

func (p Ptr[T]) RenderEscaped(e Encoder) error {
	if p.Value == nil {
		return nil
	}
	return (*p.Value).RenderEscaped(e)
}

func (p Ptr[T]) RenderUnescaped(e Encoder) error {
	if p.Value == nil {
		return nil
	}
	return (*p.Value).RenderUnescaped(e)
}

func (p Ptr[T]) RenderSection(sec Section, e Encoder) error {
	if p.Value == nil {
		return nil
	}
	return (*p.Value).RenderSection(sec, e)
}

func (p Ptr[T]) RenderInverse(sec Section, e Encoder) error {
	if p.Value == nil {
		return sec.Render(e)
	}
	return (*p.Value).RenderInverse(sec, e)
}

func (p Ptr[T]) RenderFieldEscaped(hash uint64, name string, e Encoder) (bool, error) {
	if p.Value == nil {
		return false, nil
	}
	return (*p.Value).RenderFieldEscaped(hash, name, e)
}

func (p Ptr[T]) RenderFieldUnescaped(hash uint64, name string, e Encoder) (bool, error) {
	if p.Value == nil {
		return false, nil
	}
	return (*p.Value).RenderFieldUnescaped(hash, name, e)
}

func (p Ptr[T]) RenderFieldSection(hash uint64, name string, sec Section, e Encoder) (bool, error) {
	if p.Value == nil {
		return false, nil
	}
	return (*p.Value).RenderFieldSection(hash, name, sec, e)
}

func (p Ptr[T]) RenderFieldInverse(hash uint64, name string, sec Section, e Encoder) (bool, error) {
	if p.Value == nil {
		return false, nil
	}
	return (*p.Value).RenderFieldInverse(hash, name, sec, e)
}

// Nothing is the always-falsy Content. Rendering a template with no
// data at all is Render(stache.Nothing{}).
type Nothing struct{}

func (Nothing) IsTruthy() bool                { return false }
func (Nothing) CapacityHint(*Template) int    { return 0 }
func (Nothing) RenderEscaped(Encoder) error   { return nil }
func (Nothing) RenderUnescaped(Encoder) error { return nil }

func (Nothing) RenderSection(Section, Encoder) error { return nil }

func (Nothing) RenderInverse(sec Section, e Encoder) error { return sec.Render(e) }

func (Nothing) RenderFieldEscaped(uint64, string, Encoder) (bool, error)   { return false, nil }
func (Nothing) RenderFieldUnescaped(uint64, string, Encoder) (bool, error) { return false, nil }
func (Nothing) RenderFieldSection(uint64, string, Section, Encoder) (bool, error) {
	return false, nil
}
func (Nothing) RenderFieldInverse(uint64, string, Section, Encoder) (bool, error) {
	return false, nil
}

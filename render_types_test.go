package stache_test

import "github.com/stachehq/stache"

// The types in this file carry Content implementations shaped exactly
// like contentgen output, so the renderer is exercised against the same
// code the generator emits. Hashes are resolved through stache.Hash
// instead of literals to keep the tests readable.

var (
	hashTitle  = stache.Hash("title")
	hashBody   = stache.Hash("body")
	hashPosts  = hashOf("posts")
	hashName   = hashOf("name")
	hashInner  = hashOf("inner")
	hashCore   = hashOf("core")
	hashValue  = hashOf("value")
	hashSlug   = hashOf("slug")
	hashAuthor = hashOf("author")
)

func hashOf(name string) uint64 { return stache.Hash(name) }

type post struct {
	Title string
	Body  string
}

var _ stache.Content = (*post)(nil)

func (x *post) IsTruthy() bool { return true }

func (x *post) CapacityHint(tpl *stache.Template) int {
	return tpl.CapacityHint() + len(x.Title) + len(x.Body)
}

func (x *post) RenderEscaped(e stache.Encoder) error   { return nil }
func (x *post) RenderUnescaped(e stache.Encoder) error { return nil }

func (x *post) RenderSection(sec stache.Section, e stache.Encoder) error {
	return sec.With(x).Render(e)
}

func (x *post) RenderInverse(sec stache.Section, e stache.Encoder) error { return nil }

func (x *post) RenderFieldEscaped(hash uint64, name string, e stache.Encoder) (bool, error) {
	switch hash {
	case hashTitle:
		return true, e.WriteEscaped(x.Title)
	case hashBody:
		return true, e.WriteEscaped(x.Body)
	}
	return false, nil
}

func (x *post) RenderFieldUnescaped(hash uint64, name string, e stache.Encoder) (bool, error) {
	switch hash {
	case hashTitle:
		return true, e.WriteUnescaped(x.Title)
	case hashBody:
		return true, e.WriteUnescaped(x.Body)
	}
	return false, nil
}

func (x *post) RenderFieldSection(hash uint64, name string, sec stache.Section, e stache.Encoder) (bool, error) {
	switch hash {
	case hashTitle:
		return true, stache.String(x.Title).RenderSection(sec, e)
	case hashBody:
		return true, stache.String(x.Body).RenderSection(sec, e)
	}
	return false, nil
}

func (x *post) RenderFieldInverse(hash uint64, name string, sec stache.Section, e stache.Encoder) (bool, error) {
	switch hash {
	case hashTitle:
		return true, stache.String(x.Title).RenderInverse(sec, e)
	case hashBody:
		return true, stache.String(x.Body).RenderInverse(sec, e)
	}
	return false, nil
}

type blog struct {
	Title string
	Posts []post
}

var _ stache.Content = (*blog)(nil)

func (x *blog) IsTruthy() bool { return true }

func (x *blog) CapacityHint(tpl *stache.Template) int {
	return tpl.CapacityHint() + len(x.Title)
}

func (x *blog) RenderEscaped(e stache.Encoder) error   { return nil }
func (x *blog) RenderUnescaped(e stache.Encoder) error { return nil }

func (x *blog) RenderSection(sec stache.Section, e stache.Encoder) error {
	return sec.With(x).Render(e)
}

func (x *blog) RenderInverse(sec stache.Section, e stache.Encoder) error { return nil }

func (x *blog) RenderFieldEscaped(hash uint64, name string, e stache.Encoder) (bool, error) {
	switch hash {
	case hashTitle:
		return true, e.WriteEscaped(x.Title)
	case hashPosts:
		return true, nil
	}
	return false, nil
}

func (x *blog) RenderFieldUnescaped(hash uint64, name string, e stache.Encoder) (bool, error) {
	switch hash {
	case hashTitle:
		return true, e.WriteUnescaped(x.Title)
	case hashPosts:
		return true, nil
	}
	return false, nil
}

func (x *blog) RenderFieldSection(hash uint64, name string, sec stache.Section, e stache.Encoder) (bool, error) {
	switch hash {
	case hashTitle:
		return true, stache.String(x.Title).RenderSection(sec, e)
	case hashPosts:
		for i := range x.Posts {
			if err := x.Posts[i].RenderSection(sec, e); err != nil {
				return true, err
			}
		}
		return true, nil
	}
	return false, nil
}

func (x *blog) RenderFieldInverse(hash uint64, name string, sec stache.Section, e stache.Encoder) (bool, error) {
	switch hash {
	case hashTitle:
		return true, stache.String(x.Title).RenderInverse(sec, e)
	case hashPosts:
		if len(x.Posts) == 0 {
			return true, sec.Render(e)
		}
		return true, nil
	}
	return false, nil
}

// outer, middle and core nest without repeating field names, so lookups
// inside the innermost section have to crawl back out.

type outer struct {
	Name  string
	Inner middle
}

var _ stache.Content = (*outer)(nil)

func (x *outer) IsTruthy() bool { return true }

func (x *outer) CapacityHint(tpl *stache.Template) int {
	return tpl.CapacityHint() + len(x.Name)
}

func (x *outer) RenderEscaped(e stache.Encoder) error   { return nil }
func (x *outer) RenderUnescaped(e stache.Encoder) error { return nil }

func (x *outer) RenderSection(sec stache.Section, e stache.Encoder) error {
	return sec.With(x).Render(e)
}

func (x *outer) RenderInverse(sec stache.Section, e stache.Encoder) error { return nil }

func (x *outer) RenderFieldEscaped(hash uint64, name string, e stache.Encoder) (bool, error) {
	switch hash {
	case hashName:
		return true, e.WriteEscaped(x.Name)
	}
	return false, nil
}

func (x *outer) RenderFieldUnescaped(hash uint64, name string, e stache.Encoder) (bool, error) {
	switch hash {
	case hashName:
		return true, e.WriteUnescaped(x.Name)
	}
	return false, nil
}

func (x *outer) RenderFieldSection(hash uint64, name string, sec stache.Section, e stache.Encoder) (bool, error) {
	switch hash {
	case hashName:
		return true, stache.String(x.Name).RenderSection(sec, e)
	case hashInner:
		return true, x.Inner.RenderSection(sec, e)
	}
	return false, nil
}

func (x *outer) RenderFieldInverse(hash uint64, name string, sec stache.Section, e stache.Encoder) (bool, error) {
	switch hash {
	case hashName:
		return true, stache.String(x.Name).RenderInverse(sec, e)
	case hashInner:
		return true, x.Inner.RenderInverse(sec, e)
	}
	return false, nil
}

type middle struct {
	Core core
}

var _ stache.Content = (*middle)(nil)

func (x *middle) IsTruthy() bool { return true }

func (x *middle) CapacityHint(tpl *stache.Template) int { return tpl.CapacityHint() }

func (x *middle) RenderEscaped(e stache.Encoder) error   { return nil }
func (x *middle) RenderUnescaped(e stache.Encoder) error { return nil }

func (x *middle) RenderSection(sec stache.Section, e stache.Encoder) error {
	return sec.With(x).Render(e)
}

func (x *middle) RenderInverse(sec stache.Section, e stache.Encoder) error { return nil }

func (x *middle) RenderFieldEscaped(hash uint64, name string, e stache.Encoder) (bool, error) {
	return false, nil
}

func (x *middle) RenderFieldUnescaped(hash uint64, name string, e stache.Encoder) (bool, error) {
	return false, nil
}

func (x *middle) RenderFieldSection(hash uint64, name string, sec stache.Section, e stache.Encoder) (bool, error) {
	switch hash {
	case hashCore:
		return true, x.Core.RenderSection(sec, e)
	}
	return false, nil
}

func (x *middle) RenderFieldInverse(hash uint64, name string, sec stache.Section, e stache.Encoder) (bool, error) {
	switch hash {
	case hashCore:
		return true, x.Core.RenderInverse(sec, e)
	}
	return false, nil
}

type core struct {
	Value string
}

var _ stache.Content = (*core)(nil)

func (x *core) IsTruthy() bool { return true }

func (x *core) CapacityHint(tpl *stache.Template) int {
	return tpl.CapacityHint() + len(x.Value)
}

func (x *core) RenderEscaped(e stache.Encoder) error   { return nil }
func (x *core) RenderUnescaped(e stache.Encoder) error { return nil }

func (x *core) RenderSection(sec stache.Section, e stache.Encoder) error {
	return sec.With(x).Render(e)
}

func (x *core) RenderInverse(sec stache.Section, e stache.Encoder) error { return nil }

func (x *core) RenderFieldEscaped(hash uint64, name string, e stache.Encoder) (bool, error) {
	switch hash {
	case hashValue:
		return true, e.WriteEscaped(x.Value)
	}
	return false, nil
}

func (x *core) RenderFieldUnescaped(hash uint64, name string, e stache.Encoder) (bool, error) {
	switch hash {
	case hashValue:
		return true, e.WriteUnescaped(x.Value)
	}
	return false, nil
}

func (x *core) RenderFieldSection(hash uint64, name string, sec stache.Section, e stache.Encoder) (bool, error) {
	switch hash {
	case hashValue:
		return true, stache.String(x.Value).RenderSection(sec, e)
	}
	return false, nil
}

func (x *core) RenderFieldInverse(hash uint64, name string, sec stache.Section, e stache.Encoder) (bool, error) {
	switch hash {
	case hashValue:
		return true, stache.String(x.Value).RenderInverse(sec, e)
	}
	return false, nil
}

// article renders body through the md directive, slug through a
// callback, and flattens meta into its own namespace.

func double(v string, e stache.Encoder) error {
	if err := e.WriteEscaped(v); err != nil {
		return err
	}
	return e.WriteEscaped(v)
}

type meta struct {
	Author string
}

var _ stache.Content = (*meta)(nil)

func (x *meta) IsTruthy() bool { return true }

func (x *meta) CapacityHint(tpl *stache.Template) int {
	return tpl.CapacityHint() + len(x.Author)
}

func (x *meta) RenderEscaped(e stache.Encoder) error   { return nil }
func (x *meta) RenderUnescaped(e stache.Encoder) error { return nil }

func (x *meta) RenderSection(sec stache.Section, e stache.Encoder) error {
	return sec.With(x).Render(e)
}

func (x *meta) RenderInverse(sec stache.Section, e stache.Encoder) error { return nil }

func (x *meta) RenderFieldEscaped(hash uint64, name string, e stache.Encoder) (bool, error) {
	switch hash {
	case hashAuthor:
		return true, e.WriteEscaped(x.Author)
	}
	return false, nil
}

func (x *meta) RenderFieldUnescaped(hash uint64, name string, e stache.Encoder) (bool, error) {
	switch hash {
	case hashAuthor:
		return true, e.WriteUnescaped(x.Author)
	}
	return false, nil
}

func (x *meta) RenderFieldSection(hash uint64, name string, sec stache.Section, e stache.Encoder) (bool, error) {
	switch hash {
	case hashAuthor:
		return true, stache.String(x.Author).RenderSection(sec, e)
	}
	return false, nil
}

func (x *meta) RenderFieldInverse(hash uint64, name string, sec stache.Section, e stache.Encoder) (bool, error) {
	switch hash {
	case hashAuthor:
		return true, stache.String(x.Author).RenderInverse(sec, e)
	}
	return false, nil
}

type article struct {
	Title string
	Body  string
	Slug  string
	Meta  meta
}

var _ stache.Content = (*article)(nil)

func (x *article) IsTruthy() bool { return true }

func (x *article) CapacityHint(tpl *stache.Template) int {
	return tpl.CapacityHint() + len(x.Title) + len(x.Body) + len(x.Slug)
}

func (x *article) RenderEscaped(e stache.Encoder) error   { return nil }
func (x *article) RenderUnescaped(e stache.Encoder) error { return nil }

func (x *article) RenderSection(sec stache.Section, e stache.Encoder) error {
	return sec.With(x).Render(e)
}

func (x *article) RenderInverse(sec stache.Section, e stache.Encoder) error { return nil }

func (x *article) RenderFieldEscaped(hash uint64, name string, e stache.Encoder) (bool, error) {
	switch hash {
	case hashTitle:
		return true, e.WriteEscaped(x.Title)
	case hashBody:
		return true, stache.Markdown(x.Body, e)
	case hashSlug:
		return true, double(x.Slug, e)
	}
	if found, err := x.Meta.RenderFieldEscaped(hash, name, e); found || err != nil {
		return found, err
	}
	return false, nil
}

func (x *article) RenderFieldUnescaped(hash uint64, name string, e stache.Encoder) (bool, error) {
	switch hash {
	case hashTitle:
		return true, e.WriteUnescaped(x.Title)
	case hashBody:
		return true, stache.Markdown(x.Body, e)
	case hashSlug:
		return true, double(x.Slug, e)
	}
	if found, err := x.Meta.RenderFieldUnescaped(hash, name, e); found || err != nil {
		return found, err
	}
	return false, nil
}

func (x *article) RenderFieldSection(hash uint64, name string, sec stache.Section, e stache.Encoder) (bool, error) {
	switch hash {
	case hashTitle:
		return true, stache.String(x.Title).RenderSection(sec, e)
	case hashBody:
		return true, stache.String(x.Body).RenderSection(sec, e)
	case hashSlug:
		return true, stache.String(x.Slug).RenderSection(sec, e)
	}
	if found, err := x.Meta.RenderFieldSection(hash, name, sec, e); found || err != nil {
		return found, err
	}
	return false, nil
}

func (x *article) RenderFieldInverse(hash uint64, name string, sec stache.Section, e stache.Encoder) (bool, error) {
	switch hash {
	case hashTitle:
		return true, stache.String(x.Title).RenderInverse(sec, e)
	case hashBody:
		return true, stache.String(x.Body).RenderInverse(sec, e)
	case hashSlug:
		return true, stache.String(x.Slug).RenderInverse(sec, e)
	}
	if found, err := x.Meta.RenderFieldInverse(hash, name, sec, e); found || err != nil {
		return found, err
	}
	return false, nil
}

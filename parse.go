package stache

import "strings"

type tag uint8

const (
	tagEscaped tag = iota
	tagUnescaped
	tagSection
	tagInverse
	tagClosing
	tagComment
	tagPartial
	tagTail
)

// block is one element of a compiled template. The static html that
// precedes the tag is stored with the block, so rendering is a single
// linear walk that alternates literal writes with dispatches. Section
// and inverse blocks record the number of blocks in their body, which
// turns the flat slice into a tree without pointers.
type block struct {
	html     string
	name     string
	hash     uint64
	tag      tag
	children uint32
}

func newBlock(html, name string, kind tag) block {
	return block{html: html, name: name, hash: Hash(name), tag: kind}
}

// maxSections bounds how deeply sections may nest in a single template.
const maxSections = 16

type parser struct {
	src      string
	partials PartialResolver
	blocks   []block
	capacity int
	stack    [maxSections]int
	depth    int
}

func (p *parser) parse() error {
	last := 0
	pos := 0
	for {
		rel := strings.Index(p.src[pos:], "{{")
		if rel < 0 {
			break
		}
		open := pos + rel
		html := p.src[last:open]

		i := open + 2
		for i < len(p.src) && isSpace(p.src[i]) {
			i++
		}
		kind := tagEscaped
		closers := 2
		if i < len(p.src) {
			switch p.src[i] {
			case '{':
				kind, closers, i = tagUnescaped, 3, i+1
			case '&':
				kind, i = tagUnescaped, i+1
			case '#':
				kind, i = tagSection, i+1
			case '^':
				kind, i = tagInverse, i+1
			case '/':
				kind, i = tagClosing, i+1
			case '!':
				kind, i = tagComment, i+1
			case '>':
				kind, i = tagPartial, i+1
			}
		}
		rel = strings.Index(p.src[i:], "}}")
		if rel < 0 {
			return ErrUnclosedTag
		}
		end := i + rel
		if closers == 3 && (end+2 >= len(p.src) || p.src[end+2] != '}') {
			return ErrUnclosedTag
		}

		p.capacity += len(html)
		if err := p.emit(html, kind, strings.TrimSpace(p.src[i:end])); err != nil {
			return err
		}

		last = end + closers
		pos = last
	}
	if p.depth > 0 {
		return &UnclosedSectionError{Name: p.blocks[p.stack[p.depth-1]].name}
	}
	tail := p.src[last:]
	p.capacity += len(tail)
	p.blocks = append(p.blocks, block{html: tail, tag: tagTail})
	return nil
}

func (p *parser) emit(html string, kind tag, inner string) error {
	switch kind {
	case tagEscaped, tagUnescaped:
		// Chained names render the last name inside sections opened by
		// the ones before it: {{a b}} behaves as {{#a}}{{b}}{{/a}}.
		names := strings.Fields(inner)
		if len(names) == 0 {
			return ErrUnclosedTag
		}
		head := len(p.blocks)
		for _, name := range names[:len(names)-1] {
			p.blocks = append(p.blocks, newBlock(html, name, tagSection))
			html = ""
		}
		p.blocks = append(p.blocks, newBlock(html, names[len(names)-1], kind))
		chain := len(p.blocks) - head - 1
		for i := 0; i < chain; i++ {
			p.blocks[head+i].children = uint32(chain - i)
		}

	case tagSection, tagInverse:
		names := strings.Fields(inner)
		if len(names) == 0 {
			return ErrUnclosedTag
		}
		for i, name := range names {
			k := tagSection
			if i == len(names)-1 {
				k = kind
			}
			if p.depth == maxSections {
				return ErrStackOverflow
			}
			p.stack[p.depth] = len(p.blocks)
			p.depth++
			p.blocks = append(p.blocks, newBlock(html, name, k))
			html = ""
		}

	case tagClosing:
		names := strings.Fields(inner)
		if len(names) == 0 {
			return ErrUnclosedTag
		}
		closing := len(p.blocks)
		p.blocks = append(p.blocks, newBlock(html, names[0], tagClosing))
		for i := len(names) - 1; i >= 0; i-- {
			if err := p.closeSection(names[i], closing); err != nil {
				return err
			}
		}

	case tagPartial:
		if inner == "" {
			return ErrUnclosedTag
		}
		p.blocks = append(p.blocks, newBlock(html, inner, tagPartial))
		partial, err := p.partials.GetPartial(inner)
		if err != nil {
			return err
		}
		p.blocks = append(p.blocks, partial.blocks...)
		p.capacity += partial.capacity

	default:
		p.blocks = append(p.blocks, block{html: html, tag: kind})
	}
	return nil
}

// closeSection pops the innermost open section and records its body
// extent. The closing block itself belongs to the body, so the literal
// text before {{/name}} is written while the section is still rendering.
func (p *parser) closeSection(name string, closing int) error {
	if p.depth == 0 {
		return &UnopenedSectionError{Name: name}
	}
	p.depth--
	head := p.stack[p.depth]
	p.blocks[head].children = uint32(closing - head)
	if p.blocks[head].hash != Hash(name) {
		return &UnclosedSectionError{Name: p.blocks[head].name}
	}
	return nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

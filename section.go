package stache

// maxAncestors bounds how many enclosing scopes a field lookup may
// crawl. The stack is a fixed array copied by value on every push, so
// entering a section never allocates; when a fifth scope is pushed the
// outermost one falls off.
const maxAncestors = 4

type scopes struct {
	peers [maxAncestors]Content
	depth int
}

func (s scopes) push(c Content) scopes {
	if s.depth < maxAncestors {
		s.peers[s.depth] = c
		s.depth++
		return s
	}
	copy(s.peers[:maxAncestors-1], s.peers[1:])
	s.peers[maxAncestors-1] = c
	return s
}

// Section is a slice of a compiled template paired with the stack of
// scopes in which it renders. Content implementations receive a Section
// for every {{#block}} and {{^block}} and decide whether, how many
// times, and with which extra scope to render it.
type Section struct {
	blocks []block
	stack  scopes
}

func newSection(blocks []block, c Content) Section {
	var s scopes
	return Section{blocks: blocks, stack: s.push(c)}
}

// With returns a copy of the section with c pushed as the innermost
// scope. Fields unresolved in c still fall back to the enclosing scopes.
func (s Section) With(c Content) Section {
	s.stack = s.stack.push(c)
	return s
}

// Render walks the section's blocks once, writing literal text and
// dispatching every tag against the scope stack.
func (s Section) Render(e Encoder) error {
	for i := 0; i < len(s.blocks); i++ {
		b := &s.blocks[i]
		if err := e.WriteUnescaped(b.html); err != nil {
			return err
		}
		switch b.tag {
		case tagEscaped:
			if err := s.renderField(b.hash, b.name, e, false); err != nil {
				return err
			}
		case tagUnescaped:
			if err := s.renderField(b.hash, b.name, e, true); err != nil {
				return err
			}
		case tagSection:
			n := int(b.children)
			child := Section{blocks: s.blocks[i+1 : i+1+n], stack: s.stack}
			if err := child.renderSection(b.hash, b.name, e); err != nil {
				return err
			}
			i += n
		case tagInverse:
			n := int(b.children)
			child := Section{blocks: s.blocks[i+1 : i+1+n], stack: s.stack}
			if err := child.renderInverse(b.hash, b.name, e); err != nil {
				return err
			}
			i += n
		}
	}
	return nil
}

// renderField resolves a variable tag innermost scope first. A scope
// that doesn't know the field returns found == false and the lookup
// moves one level out; when no scope claims it, nothing is written.
func (s Section) renderField(hash uint64, name string, e Encoder, raw bool) error {
	for d := s.stack.depth - 1; d >= 0; d-- {
		var (
			found bool
			err   error
		)
		if raw {
			found, err = s.stack.peers[d].RenderFieldUnescaped(hash, name, e)
		} else {
			found, err = s.stack.peers[d].RenderFieldEscaped(hash, name, e)
		}
		if found || err != nil {
			return err
		}
	}
	return nil
}

func (s Section) renderSection(hash uint64, name string, e Encoder) error {
	sub := s
	for d := s.stack.depth - 1; d >= 0; d-- {
		// When an ancestor claims the field, scopes inside it must not
		// shadow the section it renders.
		sub.stack.depth = d + 1
		found, err := s.stack.peers[d].RenderFieldSection(hash, name, sub, e)
		if found || err != nil {
			return err
		}
	}
	return nil
}

func (s Section) renderInverse(hash uint64, name string, e Encoder) error {
	sub := s
	for d := s.stack.depth - 1; d >= 0; d-- {
		sub.stack.depth = d + 1
		found, err := s.stack.peers[d].RenderFieldInverse(hash, name, sub, e)
		if found || err != nil {
			return err
		}
	}
	// A field no scope knows about is falsy, so the inverse body renders.
	return s.Render(e)
}

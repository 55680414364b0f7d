package stache

import (
	"io"
	"strconv"
)

// Encoder is the sink rendering writes into. WriteEscaped substitutes
// HTML entities for the five significant characters; everything else is
// copied verbatim in bulk runs.
type Encoder interface {
	WriteUnescaped(s string) error
	WriteEscaped(s string) error
	WriteInt(i int64) error
	WriteUint(u uint64) error
	WriteFloat(f float64) error
	WriteBool(b bool) error
}

// escaped returns the entity for c, or "" when c needs no escaping.
func escaped(c byte) string {
	switch c {
	case '<':
		return "&lt;"
	case '>':
		return "&gt;"
	case '&':
		return "&amp;"
	case '"':
		return "&quot;"
	case '\'':
		return "&#39;"
	}
	return ""
}

// bufferEncoder accumulates output in memory. Its writes cannot fail,
// which is why Template.Render returns a plain string.
type bufferEncoder struct {
	buf []byte
}

func (e *bufferEncoder) WriteUnescaped(s string) error {
	e.buf = append(e.buf, s...)
	return nil
}

func (e *bufferEncoder) WriteEscaped(s string) error {
	start := 0
	for i := 0; i < len(s); i++ {
		rep := escaped(s[i])
		if rep == "" {
			continue
		}
		e.buf = append(e.buf, s[start:i]...)
		e.buf = append(e.buf, rep...)
		start = i + 1
	}
	e.buf = append(e.buf, s[start:]...)
	return nil
}

func (e *bufferEncoder) WriteInt(i int64) error {
	e.buf = strconv.AppendInt(e.buf, i, 10)
	return nil
}

func (e *bufferEncoder) WriteUint(u uint64) error {
	e.buf = strconv.AppendUint(e.buf, u, 10)
	return nil
}

func (e *bufferEncoder) WriteFloat(f float64) error {
	e.buf = strconv.AppendFloat(e.buf, f, 'g', -1, 64)
	return nil
}

func (e *bufferEncoder) WriteBool(b bool) error {
	e.buf = strconv.AppendBool(e.buf, b)
	return nil
}

// streamEncoder renders straight into an io.Writer. The first write
// error aborts the render and propagates out of RenderTo.
type streamEncoder struct {
	w       io.Writer
	scratch []byte
}

func (e *streamEncoder) WriteUnescaped(s string) error {
	_, err := io.WriteString(e.w, s)
	return err
}

func (e *streamEncoder) WriteEscaped(s string) error {
	start := 0
	for i := 0; i < len(s); i++ {
		rep := escaped(s[i])
		if rep == "" {
			continue
		}
		if _, err := io.WriteString(e.w, s[start:i]); err != nil {
			return err
		}
		if _, err := io.WriteString(e.w, rep); err != nil {
			return err
		}
		start = i + 1
	}
	_, err := io.WriteString(e.w, s[start:])
	return err
}

func (e *streamEncoder) flushScratch() error {
	_, err := e.w.Write(e.scratch)
	return err
}

func (e *streamEncoder) WriteInt(i int64) error {
	e.scratch = strconv.AppendInt(e.scratch[:0], i, 10)
	return e.flushScratch()
}

func (e *streamEncoder) WriteUint(u uint64) error {
	e.scratch = strconv.AppendUint(e.scratch[:0], u, 10)
	return e.flushScratch()
}

func (e *streamEncoder) WriteFloat(f float64) error {
	e.scratch = strconv.AppendFloat(e.scratch[:0], f, 'g', -1, 64)
	return e.flushScratch()
}

func (e *streamEncoder) WriteBool(b bool) error {
	e.scratch = strconv.AppendBool(e.scratch[:0], b)
	return e.flushScratch()
}

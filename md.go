package stache

import (
	"sync"

	"github.com/gomarkdown/markdown"
	"github.com/microcosm-cc/bluemonday"
)

// Markdown converts CommonMark source to HTML and writes it unescaped.
// Generated Content implementations call this for fields tagged with
// the md directive; it is exported so hand-written implementations and
// callbacks can do the same.
func Markdown(source string, e Encoder) error {
	return e.WriteUnescaped(string(markdown.ToHTML([]byte(source), nil, nil)))
}

var (
	ugcOnce   sync.Once
	ugcPolicy *bluemonday.Policy
)

// SafeMarkdown is Markdown with the produced HTML run through a
// user-generated-content sanitizer, for fields fed by untrusted input.
func SafeMarkdown(source string, e Encoder) error {
	ugcOnce.Do(func() { ugcPolicy = bluemonday.UGCPolicy() })
	html := markdown.ToHTML([]byte(source), nil, nil)
	return e.WriteUnescaped(string(ugcPolicy.SanitizeBytes(html)))
}

package stache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdown(t *testing.T) {
	var e bufferEncoder
	require.NoError(t, Markdown("This is *the* __body__!", &e))
	assert.Equal(t, "<p>This is <em>the</em> <strong>body</strong>!</p>\n", string(e.buf))
}

func TestSafeMarkdown(t *testing.T) {
	var e bufferEncoder
	require.NoError(t, SafeMarkdown("hello <script>alert(1)</script> *world*", &e))
	out := string(e.buf)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "<em>world</em>")
}

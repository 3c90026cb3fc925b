package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsMaliciousContent(t *testing.T) {
	dangerous := []string{
		"<script>alert(1)</script>",
		"hello <script type='text/javascript'>evil()</script> world",
		"click javascript:alert(1)",
		`<img src=x onerror=alert(1)>`,
		"<iframe src='http://evil'></iframe>",
		"<object data='x'>",
		"<embed src='x'>",
	}
	for _, content := range dangerous {
		assert.True(t, ContainsMaliciousContent(content), content)
	}

	safe := []string{
		"",
		"hello world",
		"<b>bold</b> and <i>italic</i>",
		"math: 1 < 2 && 3 > 2",
		"my favourite function is onClick",
	}
	for _, content := range safe {
		assert.False(t, ContainsMaliciousContent(content), content)
	}
}

func TestMessageContent(t *testing.T) {
	assert.Equal(t, "<b>hi</b>", MessageContent("<b>hi</b>"))
	assert.Equal(t, "hi", MessageContent("<div>hi</div>"))
	assert.Equal(t, "", MessageContent("<div></div>"))
	assert.Equal(t, "hi", MessageContent("  hi  "))
	assert.Equal(t, "", MessageContent(""))
}

// sanitizing twice must give the same result as sanitizing once
func TestMessageContent_Idempotent(t *testing.T) {
	inputs := []string{
		"<b>hello</b> <em>world</em>",
		"<div><p>nested</p></div>",
		"plain text",
	}
	for _, in := range inputs {
		once := MessageContent(in)
		assert.Equal(t, once, MessageContent(once), in)
	}
}

func TestUsername(t *testing.T) {
	assert.Equal(t, "alice", Username("alice"))
	assert.Equal(t, "alice", Username(`  <"alice">&  `))
	assert.Equal(t, "a.b-c_d@e", Username("a.b-c_d@e"))
	assert.Equal(t, "", Username(""))

	long := make([]byte, 120)
	for i := range long {
		long[i] = 'x'
	}
	assert.Len(t, Username(string(long)), 50)
}

func TestTextInput(t *testing.T) {
	assert.Equal(t, "bob", TextInput(`"bob"`))
	assert.Equal(t, "search term", TextInput("  search term  "))

	long := make([]byte, 300)
	for i := range long {
		long[i] = 'y'
	}
	assert.Len(t, TextInput(string(long)), 200)
}

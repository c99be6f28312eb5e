package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripTags(t *testing.T) {
	cases := map[string]struct {
		in   string
		want string
	}{
		"Plain text untouched":  {"hello world", "hello world"},
		"Single tag":            {"hello <b>world</b>", "hello world"},
		"Script tag":            {`<script>alert("x")</script>ok`, `alert("x")ok`},
		"Tag with attributes":   {`<a href="http://evil">link</a>`, "link"},
		"Unclosed angle stays":  {"a < b", "a < b"},
		"Empty string":          {"", ""},
		"Tag spanning the text": {"<div>", ""},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, StripTags(tc.in))
		})
	}
}

func TestRemoveZalgo(t *testing.T) {
	t.Run("Combining marks are stripped", func(t *testing.T) {
		// 'e' + U+0301 + U+0336 — буква остается, знаки уходят
		assert.Equal(t, "e", RemoveZalgo("é̶"))
	})

	t.Run("Precomposed characters lose their accents", func(t *testing.T) {
		// NFD раскладывает é на e + комбинирующий акут
		assert.Equal(t, "cafe", RemoveZalgo("café"))
	})

	t.Run("Japanese text passes through", func(t *testing.T) {
		assert.Equal(t, "こんにちは", RemoveZalgo("こんにちは"))
	})

	t.Run("ASCII passes through", func(t *testing.T) {
		assert.Equal(t, "plain text 123", RemoveZalgo("plain text 123"))
	})
}

func TestSanitize(t *testing.T) {
	// Теги удаляются раньше залго-чистки
	assert.Equal(t, "he", Sanitize("<b>h</b>é́́"))
}

package ai

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateKeepsRuneBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{"short text untouched", "hello", 10, "hello"},
		{"ascii cut at cap", "hello world", 5, "hello"},
		{"two-byte rune at boundary", "aaü", 3, "aa"},
		{"four-byte rune at boundary", "ab\U0001F600", 4, "ab"},
		{"cut inside rune backs off", "üüü", 3, "ü"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.max)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
			assert.LessOrEqual(t, len(got), tt.max)
		})
	}

	// A long multi-byte note must still truncate to valid UTF-8
	long := strings.Repeat("stadım ", 2000)
	cut := truncate(long, maxClassifyInput)
	assert.True(t, utf8.ValidString(cut))
	assert.LessOrEqual(t, len(cut), maxClassifyInput)
}

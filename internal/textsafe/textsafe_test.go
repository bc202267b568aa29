package textsafe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInert(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello world", "hello world"},
		{"keeps newline and tab", "a\n\tb", "a\n\tb"},
		{"clear screen", "before\x1b[2Jafter", "beforeafter"},
		{"colour", "\x1b[31mred\x1b[0m", "red"},
		{"osc hyperlink", "\x1b]8;;http://evil\x07click\x1b]8;;\x07", "click"},
		{"bell", "ding\x07", "ding�"},
		{"carriage return", "over\rwrite", "over�write"},
		{"crlf line endings", "one\r\ntwo\r\n", "one\ntwo\n"},
		{"crlf with stray cr", "a\r\r\nb", "a�\nb"},
		{"backspace", "ab\bc", "ab�c"},
		{"html stays literal", "<b>x</b>", "<b>x</b>"},
		{"unicode", "naïve – 日本語", "naïve – 日本語"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Inert(tt.in))
		})
	}
}

func TestInert_NeverContainsEscape(t *testing.T) {
	out := Inert("x\x1b[2J\x1b[H\x1b")
	assert.False(t, strings.ContainsRune(out, '\x1b'))
}

func TestLine(t *testing.T) {
	assert.Equal(t, "a b c", Line("a\nb\tc"))
	assert.Equal(t, "a b", Line("a\r\nb"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd…", Truncate("abcdefghij", 5))
	assert.Empty(t, Truncate("abc", 0))
}

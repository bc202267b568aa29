// Package textsafe renders untrusted text as inert terminal output.
package textsafe

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// Replacement stands in for a removed control character.
const Replacement = '\uFFFD'

// Inert strips ANSI escape sequences from s, folds CRLF line endings to
// newlines and replaces every other control character except newline and
// tab, so s cannot drive the terminal.
func Inert(s string) string {
	s = strings.ReplaceAll(ansi.Strip(s), "\r\n", "\n")
	if !strings.ContainsFunc(s, isUnsafe) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if isUnsafe(r) {
			return Replacement
		}
		return r
	}, s)
}

// Line is Inert with newlines and tabs folded to spaces, for one-line cells.
func Line(s string) string {
	s = Inert(s)
	return strings.NewReplacer("\n", " ", "\t", " ").Replace(s)
}

// Truncate shortens s to width cells, appending an ellipsis when cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}

func isUnsafe(r rune) bool {
	if r == '\n' || r == '\t' {
		return false
	}
	return unicode.IsControl(r) || r == '\u2028' || r == '\u2029'
}

package tags

import (
	"strings"
	"unicode/utf8"
)

const (
	quote = '"'
	comma = ','

	// fragmentRunes caps the text quoted back in diagnostics.
	fragmentRunes = 10

	spaceCutset = " \t\n\v\f\r"
)

func isQuote(b byte) bool { return b == quote }

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isCommaOrEnd(c *Cursor) bool {
	return c.EOF() || c.Peek() == comma
}

// findTerminatorQuote returns the offset of the first quote in s[from:] that is not
// part of a doubled pair, or -1. Inside a quoted field "" is an escaped literal.
func findTerminatorQuote(s string, from int) int {
	for i := from; i < len(s); i++ {
		if !isQuote(s[i]) {
			continue
		}
		if i+1 < len(s) && isQuote(s[i+1]) {
			i++
			continue
		}
		return i
	}
	return -1
}

// findBareQuote returns the offset of the first unpaired quote in an unquoted
// field, or -1.
func findBareQuote(field string) int {
	return findTerminatorQuote(field, 0)
}

func unescape(raw string) string {
	return strings.ReplaceAll(raw, `""`, `"`)
}

func trimSpace(s string) string {
	return strings.Trim(s, spaceCutset)
}

// headRunes returns at most n leading runes of s.
func headRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// tailRunes returns at most n trailing runes of s.
func tailRunes(s string, n int) string {
	end := len(s)
	for count := 0; count < n && end > 0; count++ {
		_, size := utf8.DecodeLastRuneInString(s[:end])
		end -= size
	}
	return s[end:]
}

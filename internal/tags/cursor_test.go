package tags

import (
	"testing"

	"taglist/internal/diag"
)

func TestCursorSequentialReading(t *testing.T) {
	c := NewCursor("a,\"")
	if c.EOF() || c.Peek() != 'a' {
		t.Fatalf("expected 'a' at start, got %q", c.Peek())
	}
	if b := c.Bump(); b != 'a' {
		t.Errorf("Bump = %q, want 'a'", b)
	}
	if !c.Eat(',') {
		t.Error("expected to eat the comma")
	}
	if c.Eat(',') {
		t.Error("must not eat a quote as a comma")
	}
	if !isQuote(c.Bump()) {
		t.Error("expected the quote")
	}
	if !c.EOF() || c.Peek() != 0 || c.Bump() != 0 {
		t.Error("expected EOF with zero bytes")
	}
}

func TestCursorMarkAndSpan(t *testing.T) {
	c := NewCursor("  \t x, y")
	m := c.Mark()
	c.SkipSpace()
	if c.Peek() != 'x' {
		t.Fatalf("SkipSpace stopped at %q", c.Peek())
	}
	if sp := c.SpanFrom(m); sp.Start != 0 || sp.End != 4 {
		t.Errorf("SpanFrom = %v", sp)
	}
	if got := c.IndexFrom(','); got != 5 {
		t.Errorf("IndexFrom(',') = %d, want 5", got)
	}
	if got := c.IndexFrom('#'); got != c.Limit {
		t.Errorf("IndexFrom missing byte = %d, want Limit %d", got, c.Limit)
	}
	c.Reset(m)
	if c.Off != 0 {
		t.Errorf("Reset left Off at %d", c.Off)
	}
	if got := c.Slice(4, 100); got != "x, y" {
		t.Errorf("Slice clamp = %q", got)
	}
	if got := c.Slice(6, 2); got != "" {
		t.Errorf("inverted Slice = %q", got)
	}
}

func TestParseOversizedInput(t *testing.T) {
	saved := maxInputLen
	maxInputLen = 4
	t.Cleanup(func() { maxInputLen = saved })

	res := ParseWith("a, b, c", Options{})
	if len(res.Tags) != 0 || len(res.Diagnostics) != 1 {
		t.Fatalf("got %q with %d diagnostics", res.Tags, len(res.Diagnostics))
	}
	d := res.Diagnostics[0]
	if d.Code != diag.TagInputTooLarge || d.Limit != 4 || !res.HasErrors() {
		t.Errorf("unexpected diagnostic %+v", d)
	}
	if d.Message != "Input is larger than 4 bytes and was not parsed." {
		t.Errorf("Message = %q", d.Message)
	}

	if res := ParseWith("a, b", Options{}); len(res.Diagnostics) != 0 {
		t.Errorf("input at the limit should parse, got %+v", res.Diagnostics)
	}
}

func TestFindTerminatorQuote(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{`abc"`, 3},
		{`""`, -1},
		{`"""`, 2},
		{`""x"`, 3},
		{`"",`, -1},
		{`""""",`, 4},
		{`no quote`, -1},
	}
	for _, tt := range tests {
		if got := findTerminatorQuote(tt.in, 0); got != tt.want {
			t.Errorf("findTerminatorQuote(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
	if got := findBareQuote(`hello ""world"`); got != 13 {
		t.Errorf("findBareQuote = %d, want 13", got)
	}
}

func TestRuneWindows(t *testing.T) {
	if got := headRunes("ééé", 2); got != "éé" {
		t.Errorf("headRunes = %q", got)
	}
	if got := headRunes("ab", 5); got != "ab" {
		t.Errorf("headRunes short = %q", got)
	}
	if got := tailRunes("abcé", 2); got != "cé" {
		t.Errorf("tailRunes = %q", got)
	}
	if got := tailRunes("", 3); got != "" {
		t.Errorf("tailRunes empty = %q", got)
	}
}

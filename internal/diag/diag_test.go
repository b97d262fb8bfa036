package diag

import (
	"testing"

	"taglist/internal/source"
)

func TestBagLimit(t *testing.T) {
	bag := NewBag(2)
	for i := 0; i < 3; i++ {
		ok := bag.Add(NewError(TagUnterminatedQuote, source.Span{Start: uint32(i)}, "x"))
		if want := i < 2; ok != want {
			t.Errorf("Add #%d = %v, want %v", i, ok, want)
		}
	}
	if bag.Len() != 2 {
		t.Errorf("Len = %d, want 2", bag.Len())
	}
	if !bag.HasErrors() || !bag.HasWarnings() {
		t.Error("errors imply warnings and errors")
	}
}

func TestBagWarningsOnly(t *testing.T) {
	bag := NewBag(4)
	bag.Add(NewWarning(TagTooManyTags, source.Span{}, "limit"))
	if bag.HasErrors() {
		t.Error("warning must not count as error")
	}
	if !bag.HasWarnings() {
		t.Error("expected warnings")
	}
}

func TestBagMergeGrows(t *testing.T) {
	a, b := NewBag(1), NewBag(2)
	a.Add(NewError(TagUnterminatedQuote, source.Span{}, "a"))
	b.Add(NewError(TagUnterminatedQuote, source.Span{}, "b"))
	b.Add(NewError(TagUnterminatedQuote, source.Span{}, "c"))
	a.Merge(b)
	a.Merge(nil)
	if a.Len() != 3 {
		t.Errorf("Len after merge = %d, want 3", a.Len())
	}
	if a.Add(NewError(TagUnterminatedQuote, source.Span{}, "d")) {
		t.Error("merge grows the limit only to the merged size")
	}
}

func TestBagSortAndDedup(t *testing.T) {
	bag := NewBag(10)
	bag.Add(NewError(TagUnexpectedQuoteCharacter, source.Span{File: 1, Start: 4, End: 5}, "q"))
	bag.Add(NewWarning(TagTooManyTags, source.Span{File: 0, Start: 2, End: 3}, "w"))
	bag.Add(NewError(TagUnterminatedQuote, source.Span{File: 0, Start: 2, End: 3}, "u"))
	bag.Add(NewError(TagUnterminatedQuote, source.Span{File: 0, Start: 2, End: 3}, "u again"))
	bag.Sort()
	bag.Dedup()

	want := []Code{TagUnterminatedQuote, TagTooManyTags, TagUnexpectedQuoteCharacter}
	items := bag.Items()
	if len(items) != len(want) {
		t.Fatalf("got %d items, want %d", len(items), len(want))
	}
	for i, c := range want {
		if items[i].Code != c {
			t.Errorf("items[%d] = %s, want %s", i, items[i].Code.ID(), c.ID())
		}
	}
}

func TestCodeStrings(t *testing.T) {
	tests := []struct {
		code     Code
		id, name string
	}{
		{TagUnterminatedQuote, "TAG1001", "UnterminatedQuote"},
		{TagUnexpectedTrailingText, "TAG1002", "UnexpectedTrailingText"},
		{TagUnexpectedQuoteCharacter, "TAG1003", "UnexpectedQuoteCharacter"},
		{TagInputTooLarge, "TAG1005", "InputTooLarge"},
		{IOReadFailed, "IO4001", "ReadFailed"},
		{Code(9999), "E0000", "Unknown"},
	}
	for _, tt := range tests {
		if tt.code.ID() != tt.id || tt.code.Name() != tt.name {
			t.Errorf("%d: got %s/%s, want %s/%s", tt.code, tt.code.ID(), tt.code.Name(), tt.id, tt.name)
		}
	}
	if got := Code(9999).Title(); got != "Unknown error" {
		t.Errorf("Title fallback = %q", got)
	}
	if got := TagUnterminatedQuote.String(); got != "[TAG1001]: No ending quote character found" {
		t.Errorf("String = %q", got)
	}
}

func TestRelocate(t *testing.T) {
	d := NewError(TagUnterminatedQuote, source.Span{Start: 1, End: 4}, "x").
		WithFix("close", TextEdit{Span: source.Span{Start: 4, End: 4}, NewText: `"`})
	moved := d.Relocate(3, 10)

	if moved.Primary != (source.Span{File: 3, Start: 11, End: 14}) {
		t.Errorf("primary = %v", moved.Primary)
	}
	if got := moved.Fixes[0].Edits[0].Span; got != (source.Span{File: 3, Start: 14, End: 14}) {
		t.Errorf("edit span = %v", got)
	}
	if d.Fixes[0].Edits[0].Span.Start != 4 {
		t.Error("Relocate must not modify the original fixes")
	}
}

func TestReporters(t *testing.T) {
	a, b := NewBag(4), NewBag(4)
	r := MultiReporter{BagReporter{Bag: a}, nil, BagReporter{Bag: b}, BagReporter{}}
	r.Report(NewError(TagUnterminatedQuote, source.Span{}, "x"))
	if a.Len() != 1 || b.Len() != 1 {
		t.Errorf("fan-out failed: %d/%d", a.Len(), b.Len())
	}
}

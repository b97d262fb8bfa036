package fix

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"taglist/internal/diag"
	"taglist/internal/source"
)

var (
	// ErrConflict is returned when two edits touch overlapping text.
	ErrConflict = errors.New("fix edits overlap")
	// ErrOutOfRange is returned for an edit outside the text.
	ErrOutOfRange = errors.New("fix edit span out of range")
	// ErrGuardMismatch is returned when an edit's OldText no longer matches.
	ErrGuardMismatch = errors.New("existing text does not match expected content")
	// ErrVirtual is returned when asked to write back input that has no file.
	ErrVirtual = errors.New("target file is virtual")
)

// ApplyEdits applies edits whose spans are offsets into text. Edits are applied
// back to front so earlier offsets stay valid.
func ApplyEdits(text string, edits []diag.TextEdit) (string, error) {
	sorted := append([]diag.TextEdit(nil), edits...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Span.Start == sorted[j].Span.Start {
			return sorted[i].Span.End > sorted[j].Span.End
		}
		return sorted[i].Span.Start > sorted[j].Span.Start
	})
	for i := 1; i < len(sorted); i++ {
		if spansConflict(sorted[i-1], sorted[i]) {
			return text, fmt.Errorf("%w: %v and %v", ErrConflict, sorted[i].Span, sorted[i-1].Span)
		}
	}

	buf := []byte(text)
	for _, e := range sorted {
		start, end := int(e.Span.Start), int(e.Span.End)
		if end < start || end > len(buf) {
			return text, fmt.Errorf("%w: %v", ErrOutOfRange, e.Span)
		}
		if e.OldText != "" && string(buf[start:end]) != e.OldText {
			return text, fmt.Errorf("%w: want %q at %v", ErrGuardMismatch, e.OldText, e.Span)
		}
		out := make([]byte, 0, len(buf)-(end-start)+len(e.NewText))
		out = append(out, buf[:start]...)
		out = append(out, e.NewText...)
		out = append(out, buf[end:]...)
		buf = out
	}
	return string(buf), nil
}

// spansConflict reports whether two text edits' spans overlap.
// Spans are treated as half-open intervals [Start, End). Two zero-length edits
// never conflict. A zero-length edit conflicts with a non-zero span if its
// position is within that span (Start <= pos < End).
func spansConflict(a, b diag.TextEdit) bool {
	aStart, aEnd := a.Span.Start, a.Span.End
	bStart, bEnd := b.Span.Start, b.Span.End

	if aStart == aEnd && bStart == bEnd {
		return false
	}
	if aStart == aEnd {
		return bStart <= aStart && aStart < bEnd
	}
	if bStart == bEnd {
		return aStart <= bStart && bStart < aEnd
	}
	return aStart < bEnd && bStart < aEnd
}

// WriteFile stores repaired content back to the file's path, keeping its mode.
func WriteFile(f *source.File, content string) error {
	if f == nil {
		return fmt.Errorf("write: nil file")
	}
	if f.Flags&source.FileVirtual != 0 {
		return fmt.Errorf("write %s: %w", f.Path, ErrVirtual)
	}
	mode := os.FileMode(0o644)
	if info, err := os.Stat(f.Path); err == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(f.Path, []byte(content), mode); err != nil {
		return fmt.Errorf("write %s: %w", f.Path, err)
	}
	return nil
}

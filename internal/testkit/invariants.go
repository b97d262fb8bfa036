// Package testkit holds checks shared by the tests of several packages.
package testkit

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"taglist/internal/diag"
	"taglist/internal/source"
)

// maxFragmentRunes is the longest Fragment a parser diagnostic may carry.
const maxFragmentRunes = 10

// CheckDiagnostics runs a minimal set of invariants on diagnostics reported
// for sf:
// 1) every primary span points into sf and lies within its content
// 2) every fix edit does too, and its OldText guard matches the content
// 3) fragments are at most ten characters long
func CheckDiagnostics(ds []diag.Diagnostic, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	inFile := func(sp source.Span) error {
		if sp.File != sf.ID {
			return fmt.Errorf("span %v points to different file id: want=%d", sp, sf.ID)
		}
		if sp.Start > sp.End || sp.End > lenContent {
			return fmt.Errorf("span %v outside content of %d bytes", sp, lenContent)
		}
		return nil
	}

	for _, d := range ds {
		if d.Code == diag.IOReadFailed {
			continue
		}
		// 1) primary span
		if err := inFile(d.Primary); err != nil {
			return fmt.Errorf("%s: %w", d.Code.ID(), err)
		}
		// 2) fix edits
		for _, fx := range d.Fixes {
			for _, e := range fx.Edits {
				if err := inFile(e.Span); err != nil {
					return fmt.Errorf("%s fix %q: %w", d.Code.ID(), fx.Title, err)
				}
				if e.OldText != "" && string(sf.Content[e.Span.Start:e.Span.End]) != e.OldText {
					return fmt.Errorf("%s fix %q: guard %q does not match %q",
						d.Code.ID(), fx.Title, e.OldText, sf.Content[e.Span.Start:e.Span.End])
				}
			}
		}
		// 3) fragment length
		if n := utf8.RuneCountInString(d.Fragment); n > maxFragmentRunes {
			return fmt.Errorf("%s: fragment %q has %d characters", d.Code.ID(), d.Fragment, n)
		}
	}
	return nil
}

package diag

import (
	"fmt"

	"taglist/internal/source"
)

// TextEdit replaces the text covered by Span with NewText. OldText, when set,
// guards the edit: it is skipped if the current text differs.
type TextEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

type Fix struct {
	Title string
	Edits []TextEdit
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span

	Tag      string
	Fragment string
	Limit    int

	Fixes []Fix
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func NewWarning(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevWarning, code, primary, msg)
}

func (d Diagnostic) WithTag(tag string) Diagnostic {
	d.Tag = tag
	return d
}

func (d Diagnostic) WithFragment(fragment string) Diagnostic {
	d.Fragment = fragment
	return d
}

func (d Diagnostic) WithLimit(limit int) Diagnostic {
	d.Limit = limit
	return d
}

func (d Diagnostic) WithFix(title string, edits ...TextEdit) Diagnostic {
	d.Fixes = append(d.Fixes, Fix{Title: title, Edits: edits})
	return d
}

// Args returns the payload values in the order Code.Template expects them.
func (d Diagnostic) Args() []any {
	switch d.Code {
	case TagUnexpectedTrailingText:
		return []any{d.Tag, d.Fragment}
	case TagUnexpectedQuoteCharacter:
		return []any{d.Fragment}
	case TagTooManyTags, TagInputTooLarge:
		return []any{d.Limit}
	}
	return nil
}

// DefaultMessage renders the English message from the code template, falling
// back to Message for codes without one.
func (d Diagnostic) DefaultMessage() string {
	tmpl := d.Code.Template()
	if tmpl == "" {
		return d.Message
	}
	return fmt.Sprintf(tmpl, d.Args()...)
}

// Relocate moves the diagnostic, including every fix edit, from line-relative
// offsets into file id at byte offset off.
func (d Diagnostic) Relocate(id source.FileID, off uint32) Diagnostic {
	d.Primary = d.Primary.ShiftRight(off).InFile(id)
	if len(d.Fixes) == 0 {
		return d
	}
	fixes := make([]Fix, len(d.Fixes))
	for i, f := range d.Fixes {
		edits := make([]TextEdit, len(f.Edits))
		for j, e := range f.Edits {
			e.Span = e.Span.ShiftRight(off).InFile(id)
			edits[j] = e
		}
		fixes[i] = Fix{Title: f.Title, Edits: edits}
	}
	d.Fixes = fixes
	return d
}

package tags

import (
	"math"
	"strings"

	"taglist/internal/diag"
	"taglist/internal/source"
)

// Options tunes a parse. The zero value gives the plain Parse behaviour.
type Options struct {
	// Reporter, if set, receives every diagnostic as it is produced.
	Reporter diag.Reporter
	// MaxTags caps the number of distinct tags kept; 0 means no limit.
	MaxTags int
	// File and Base place diagnostic spans inside a larger input, e.g. one
	// line of a batch file.
	File source.FileID
	Base uint32
}

// Result is the outcome of one parse. Tags holds every tag read before the
// first problem, even when Diagnostics is not empty.
type Result struct {
	Tags        []string
	Diagnostics []diag.Diagnostic
}

// HasErrors reports whether the input did not conform to the grammar.
func (r Result) HasErrors() bool {
	for i := range r.Diagnostics {
		if r.Diagnostics[i].Severity >= diag.SevError {
			return true
		}
	}
	return false
}

// field is one raw, still escaped segment of the input.
type field struct {
	raw  string
	span source.Span
}

type parser struct {
	cur    Cursor
	opts   Options
	fields []field
	diags  []diag.Diagnostic
}

// maxInputLen is the largest input a span can address.
var maxInputLen uint64 = math.MaxUint32

// Parse splits input into distinct tags in order of first occurrence. Input
// longer than 4 GiB is not parsed; the result carries a TagInputTooLarge error.
func Parse(input string) Result {
	return ParseWith(input, Options{})
}

// ParseWith is Parse with options.
func ParseWith(input string, opts Options) Result {
	if uint64(len(input)) > maxInputLen {
		p := &parser{opts: opts}
		p.report(diag.NewError(diag.TagInputTooLarge, source.Span{}, "").WithLimit(int(maxInputLen)))
		return Result{Tags: []string{}, Diagnostics: p.diags}
	}
	p := &parser{cur: NewCursor(input), opts: opts}
	p.scan()
	tags := p.collect()
	return Result{Tags: tags, Diagnostics: p.diags}
}

func (p *parser) scan() {
	for !p.cur.EOF() {
		var more bool
		if p.atQuotedField() {
			more = p.scanQuoted()
		} else {
			more = p.scanUnquoted()
		}
		if !more {
			return
		}
	}
}

// atQuotedField peeks past leading whitespace. On a quote the whitespace stays
// consumed; otherwise the cursor is left untouched.
func (p *parser) atQuotedField() bool {
	m := p.cur.Mark()
	p.cur.SkipSpace()
	if isQuote(p.cur.Peek()) {
		return true
	}
	p.cur.Reset(m)
	return false
}

// scanQuoted reads "..." and the separator after it. It returns false when the
// scan must stop.
func (p *parser) scanQuoted() bool {
	open := p.cur.Mark()
	p.cur.Bump()
	contentStart := p.cur.Off

	end := findTerminatorQuote(p.cur.src, int(contentStart))
	if end < 0 {
		p.cur.Off = p.cur.Limit
		eof := source.Span{Start: p.cur.Limit, End: p.cur.Limit}
		p.report(diag.NewError(diag.TagUnterminatedQuote, p.cur.SpanFrom(open), "").
			WithFix("close the quoted tag", diag.TextEdit{Span: eof, NewText: `"`}))
		return false
	}

	closeOff := uint32(end)
	raw := p.cur.Slice(contentStart, closeOff)
	p.fields = append(p.fields, field{raw: raw, span: source.Span{Start: uint32(open), End: closeOff + 1}})
	p.cur.Off = closeOff + 1

	p.cur.SkipSpace()
	if isCommaOrEnd(&p.cur) {
		p.cur.Eat(comma)
		return true
	}

	start := p.cur.Mark()
	fragment := headRunes(p.cur.Slice(p.cur.Off, p.cur.Limit), fragmentRunes)
	p.cur.Off += uint32(len(fragment))
	tag := unescape(raw)
	after := source.Span{Start: closeOff + 1, End: closeOff + 1}
	p.report(diag.NewError(diag.TagUnexpectedTrailingText, p.cur.SpanFrom(start), "").
		WithTag(tag).
		WithFragment(fragment).
		WithFix("separate the tags with a comma", diag.TextEdit{Span: after, NewText: ","}))
	return false
}

// scanUnquoted reads up to the next comma. A lone quote inside the field stops
// the scan.
func (p *parser) scanUnquoted() bool {
	start := p.cur.Off
	end := p.cur.IndexFrom(comma)
	text := p.cur.Slice(start, end)

	if q := findBareQuote(text); q >= 0 {
		quoteOff := start + uint32(q)
		context := tailRunes(text[:q], fragmentRunes)
		lead := uint32(len(text) - len(strings.TrimLeft(text, spaceCutset)))
		trimmed := trimSpace(text)
		fieldSpan := source.Span{Start: start + lead, End: start + lead + uint32(len(trimmed))}
		p.report(diag.NewError(diag.TagUnexpectedQuoteCharacter, source.Span{Start: quoteOff, End: quoteOff + 1}, "").
			WithFragment(context).
			WithFix("quote the whole tag", diag.TextEdit{Span: fieldSpan, NewText: Encode(trimmed), OldText: trimmed}))
		return false
	}

	p.fields = append(p.fields, field{raw: text, span: source.Span{Start: start, End: end}})
	p.cur.Off = end
	p.cur.Eat(comma)
	return true
}

// collect unescapes and trims the raw fields, drops empty ones and keeps the
// first occurrence of every tag.
func (p *parser) collect() []string {
	out := make([]string, 0, len(p.fields))
	seen := make(map[string]struct{}, len(p.fields))
	limited := false
	for _, f := range p.fields {
		tag := trimSpace(unescape(f.raw))
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		if p.opts.MaxTags > 0 && len(out) >= p.opts.MaxTags {
			if !limited {
				limited = true
				p.report(diag.NewWarning(diag.TagTooManyTags, f.span, "").
					WithTag(tag).
					WithLimit(p.opts.MaxTags))
			}
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func (p *parser) report(d diag.Diagnostic) {
	if d.Message == "" {
		d.Message = d.DefaultMessage()
	}
	if p.opts.File != 0 || p.opts.Base != 0 {
		d = d.Relocate(p.opts.File, p.opts.Base)
	}
	p.diags = append(p.diags, d)
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(d)
	}
}

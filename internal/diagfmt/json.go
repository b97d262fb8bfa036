package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"taglist/internal/diag"
	"taglist/internal/source"
)

// Format selects the machine or human output encoding.
type Format uint8

const (
	FormatPretty Format = iota
	FormatJSON
	FormatMsgpack
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatMsgpack:
		return "msgpack"
	default:
		return "pretty"
	}
}

// ParseFormat maps "pretty", "json" or "msgpack" to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pretty", "text":
		return FormatPretty, nil
	case "json":
		return FormatJSON, nil
	case "msgpack", "mp":
		return FormatMsgpack, nil
	}
	return FormatPretty, fmt.Errorf("unknown format %q (want pretty, json or msgpack)", s)
}

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File      string `json:"file,omitempty"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// FixEditJSON представляет одно редактирование для JSON
type FixEditJSON struct {
	Location LocationJSON `json:"location"`
	NewText  string       `json:"new_text"`
	OldText  string       `json:"old_text,omitempty"`
}

// FixJSON представляет предложение по исправлению для JSON
type FixJSON struct {
	Title string        `json:"title"`
	Edits []FixEditJSON `json:"edits,omitempty"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Kind     string       `json:"kind"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Tag      string       `json:"tag,omitempty"`
	Fragment string       `json:"fragment,omitempty"`
	Limit    int          `json:"limit,omitempty"`
	Fixes    []FixJSON    `json:"fixes,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

// TagsJSON is the tag list read from one input line.
type TagsJSON struct {
	File string   `json:"file,omitempty"`
	Line uint32   `json:"line,omitempty"`
	Tags []string `json:"tags"`
}

// ResultsOutput is the document printed by `taglist parse` in json and
// msgpack mode.
type ResultsOutput struct {
	Results     []TagsJSON       `json:"results"`
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	HasErrors   bool             `json:"has_errors"`
}

func makeLocation(span source.Span, fs *source.FileSet, opts JSONOpts) LocationJSON {
	loc := LocationJSON{
		File:      formatPath(fs.Get(span.File), opts.PathMode),
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if opts.IncludePositions {
		startPos, endPos := fs.Resolve(span)
		loc.StartLine = startPos.Line
		loc.StartCol = startPos.Col
		loc.EndLine = endPos.Line
		loc.EndCol = endPos.Col
	}
	return loc
}

// BuildDiagnostic converts one diagnostic to its serializable form.
func BuildDiagnostic(d diag.Diagnostic, fs *source.FileSet, opts JSONOpts) DiagnosticJSON {
	out := DiagnosticJSON{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Kind:     d.Code.Name(),
		Message:  Localize(d, opts.Lang),
		Location: makeLocation(d.Primary, fs, opts),
		Tag:      d.Tag,
		Fragment: d.Fragment,
		Limit:    d.Limit,
	}
	if opts.IncludeFixes && len(d.Fixes) > 0 {
		out.Fixes = make([]FixJSON, 0, len(d.Fixes))
		for _, fix := range d.Fixes {
			fj := FixJSON{Title: fix.Title, Edits: make([]FixEditJSON, len(fix.Edits))}
			for k, edit := range fix.Edits {
				fj.Edits[k] = FixEditJSON{
					Location: makeLocation(edit.Span, fs, opts),
					NewText:  edit.NewText,
					OldText:  edit.OldText,
				}
			}
			out.Fixes = append(out.Fixes, fj)
		}
	}
	return out
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	diagnostics := make([]DiagnosticJSON, 0, bag.Len())
	for _, d := range bag.Items() {
		diagnostics = append(diagnostics, BuildDiagnostic(d, fs, opts))
	}
	return DiagnosticsOutput{
		Diagnostics: diagnostics,
		Count:       len(diagnostics),
	}
}

// BuildResultsOutput pairs tag lists with the diagnostics of the same run.
func BuildResultsOutput(results []TagsJSON, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) ResultsOutput {
	if results == nil {
		results = []TagsJSON{}
	}
	return ResultsOutput{
		Results:     results,
		Diagnostics: BuildDiagnosticsOutput(bag, fs, opts).Diagnostics,
		HasErrors:   bag.HasErrors(),
	}
}

// Encode writes v as indented JSON or as msgpack. The msgpack encoding reuses
// the json field names.
func Encode(w io.Writer, format Format, v any) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case FormatMsgpack:
		encoder := msgpack.NewEncoder(w)
		encoder.SetCustomStructTag("json")
		return encoder.Encode(v)
	}
	return fmt.Errorf("format %s is not a structured encoding", format)
}

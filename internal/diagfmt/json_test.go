package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vmihailenco/msgpack/v5"

	"taglist/internal/tags"
)

func TestJSONDiagnostics(t *testing.T) {
	fs, bag := parseLines(t, "list.tags", "ok\n\"foo\" bar\n", 0)

	var buf bytes.Buffer
	built := BuildDiagnosticsOutput(bag, fs, JSONOpts{IncludePositions: true, IncludeFixes: true})
	if err := Encode(&buf, FormatJSON, built); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}

	want := DiagnosticsOutput{
		Count: 1,
		Diagnostics: []DiagnosticJSON{{
			Severity: "ERROR",
			Code:     "TAG1002",
			Kind:     "UnexpectedTrailingText",
			Message:  `Unexpected text after "foo". Expected comma or end of text. Found bar.`,
			Location: LocationJSON{
				File: "list.tags", StartByte: 9, EndByte: 12,
				StartLine: 2, StartCol: 7, EndLine: 2, EndCol: 10,
			},
			Tag:      "foo",
			Fragment: "bar",
			Fixes: []FixJSON{{
				Title: "separate the tags with a comma",
				Edits: []FixEditJSON{{
					Location: LocationJSON{
						File: "list.tags", StartByte: 8, EndByte: 8,
						StartLine: 2, StartCol: 6, EndLine: 2, EndCol: 6,
					},
					NewText: ",",
				}},
			}},
		}},
	}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("JSON output mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONOmitsPositionsAndFixes(t *testing.T) {
	fs, bag := parseLines(t, "list.tags", "a, b, c\n", 2)

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{})
	if out.Count != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Severity != "WARNING" || d.Kind != "TooManyTags" || d.Limit != 2 || d.Tag != "c" {
		t.Errorf("unexpected diagnostic: %+v", d)
	}
	if d.Location.StartLine != 0 || d.Fixes != nil {
		t.Errorf("positions and fixes should be omitted: %+v", d)
	}
}

func TestResultsMsgpackRoundTrip(t *testing.T) {
	fs, bag := parseLines(t, "list.tags", "a, \"b\" c\n", 0)
	results := []TagsJSON{{File: "list.tags", Line: 1, Tags: tags.Parse(`a, "b" c`).Tags}}
	in := BuildResultsOutput(results, bag, fs, JSONOpts{IncludePositions: true})

	var buf bytes.Buffer
	if err := Encode(&buf, FormatMsgpack, in); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	dec := msgpack.NewDecoder(&buf)
	dec.SetCustomStructTag("json")
	var out ResultsOutput
	if err := dec.Decode(&out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("msgpack round trip mismatch (-want +got):\n%s", diff)
	}
	if !out.HasErrors {
		t.Error("expected has_errors to be set")
	}
	if diff := cmp.Diff([]string{"a", "b"}, out.Results[0].Tags); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeRejectsPretty(t *testing.T) {
	if err := Encode(&bytes.Buffer{}, FormatPretty, struct{}{}); err == nil {
		t.Error("expected error for pretty format")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatPretty, false},
		{"pretty", FormatPretty, false},
		{"JSON", FormatJSON, false},
		{"msgpack", FormatMsgpack, false},
		{"yaml", FormatPretty, true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

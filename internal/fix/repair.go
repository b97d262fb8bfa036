package fix

import (
	"strings"

	"taglist/internal/diag"
	"taglist/internal/source"
	"taglist/internal/tags"
)

// AppliedFix records one repair step.
type AppliedFix struct {
	Line    uint32 // 0 for single-line input
	Code    diag.Code
	Title   string
	Message string
}

// RepairResult is the outcome of Repair on one tag list.
type RepairResult struct {
	Output  string
	Applied []AppliedFix
	// Result is the parse of Output.
	Result tags.Result
}

// Changed reports whether any fix was applied.
func (r RepairResult) Changed() bool { return len(r.Applied) > 0 }

// Repair parses input and applies the first fix of the first error, over and
// over, until the text parses cleanly, no fix is offered or maxRounds is spent.
// maxRounds <= 0 allows one round per input byte.
func Repair(input string, opts tags.Options, maxRounds int) RepairResult {
	opts.File, opts.Base, opts.Reporter = 0, 0, nil
	if maxRounds <= 0 {
		maxRounds = len(input) + 1
	}

	text := input
	var applied []AppliedFix
	res := tags.ParseWith(text, opts)
	for round := 0; round < maxRounds; round++ {
		d, ok := firstFixable(res.Diagnostics)
		if !ok {
			break
		}
		next, err := ApplyEdits(text, d.Fixes[0].Edits)
		if err != nil || next == text {
			break
		}
		applied = append(applied, AppliedFix{Code: d.Code, Title: d.Fixes[0].Title, Message: d.Message})
		text = next
		res = tags.ParseWith(text, opts)
	}
	return RepairResult{Output: text, Applied: applied, Result: res}
}

func firstFixable(ds []diag.Diagnostic) (diag.Diagnostic, bool) {
	for _, d := range ds {
		if d.Severity >= diag.SevError && len(d.Fixes) > 0 && len(d.Fixes[0].Edits) > 0 {
			return d, true
		}
	}
	return diag.Diagnostic{}, false
}

// utf8BOM is put back in front of content loaded from a file that had one.
const utf8BOM = "\xef\xbb\xbf"

// RepairFile repairs every line of f and returns the new content. Blank lines
// and line structure are preserved, as are the BOM and CRLF line endings that
// FileSet.Load stripped.
func RepairFile(f *source.File, opts tags.Options) (string, []AppliedFix) {
	lines := f.Lines()
	out := make([]string, 0, len(lines))
	var applied []AppliedFix
	for _, ln := range lines {
		rep := Repair(ln.Text, opts, 0)
		for _, a := range rep.Applied {
			a.Line = ln.Num
			applied = append(applied, a)
		}
		out = append(out, rep.Output)
	}
	eol := "\n"
	if f.Flags&source.FileNormalizedCRLF != 0 {
		eol = "\r\n"
	}
	content := strings.Join(out, eol)
	if len(f.Content) > 0 && f.Content[len(f.Content)-1] == '\n' {
		content += eol
	}
	if f.Flags&source.FileHadBOM != 0 {
		content = utf8BOM + content
	}
	return content, applied
}

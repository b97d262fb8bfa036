package fuzztests

import (
	"bytes"
	"strings"
	"testing"

	"taglist/internal/driver"
	"taglist/internal/fix"
	"taglist/internal/source"
	"taglist/internal/tags"
	"taglist/internal/testkit"
)

func FuzzFilePipeline(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.tags", input))

		res := driver.ParseSource(file, driver.Options{MaxTags: 8, MaxDiagnostics: 1 << 20})
		if err := testkit.CheckDiagnostics(res.Bag.Items(), file); err != nil {
			t.Fatal(err)
		}
		for _, l := range res.Lines {
			if len(l.Tags) > 8 {
				t.Fatalf("line %d kept %d tags over the limit", l.Line, len(l.Tags))
			}
		}

		repaired, applied := fix.RepairFile(file, tags.Options{})
		if got, want := strings.Count(repaired, "\n"), bytes.Count(input, []byte{'\n'}); got != want {
			t.Fatalf("repair changed the line count: %d -> %d", want, got)
		}
		if len(applied) == 0 && repaired != string(input) {
			t.Fatalf("content changed without a recorded fix:\n%q\n%q", input, repaired)
		}
	})
}

func TestTestdataParses(t *testing.T) {
	fs, results, err := driver.ParseDir(t.Context(), "../../testdata", driver.Options{})
	if err != nil {
		t.Fatalf("ParseDir: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("no testdata files found")
	}
	for _, r := range results {
		if err := testkit.CheckDiagnostics(r.Bag.Items(), fs.Get(r.FileID)); err != nil {
			t.Errorf("%s: %v", r.Path, err)
		}
		wantErrors := strings.HasSuffix(r.Path, ".bad.tags")
		if r.Bag.HasErrors() != wantErrors {
			t.Errorf("%s: HasErrors = %v, want %v", r.Path, r.Bag.HasErrors(), wantErrors)
		}
	}
}

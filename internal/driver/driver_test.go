package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"taglist/internal/diag"
	"taglist/internal/source"
	"taglist/internal/testkit"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestParseNormalization(t *testing.T) {
	tests := []struct {
		in      string
		want    Normalization
		wantErr bool
	}{
		{"", NormNone, false},
		{"none", NormNone, false},
		{"NFC", NormNFC, false},
		{"nfkc", NormNFKC, false},
		{"nfd", NormNone, true},
	}
	for _, tt := range tests {
		got, err := ParseNormalization(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseNormalization(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseNormalization(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFileNormalization(t *testing.T) {
	const decomposed, composed = "cafe\u0301", "caf\u00e9"
	path := filepath.Join(t.TempDir(), "cafe.tags")
	writeFile(t, path, decomposed+", "+composed+"\n")

	tests := []struct {
		name string
		norm Normalization
		want []string
	}{
		{"none keeps both forms", NormNone, []string{decomposed, composed}},
		{"nfc merges", NormNFC, []string{composed}},
		{"nfkc folds compatibility forms", NormNFKC, []string{composed}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := source.NewFileSet()
			res, err := ParseFile(context.Background(), fs, path, Options{Normalize: tt.norm})
			if err != nil {
				t.Fatalf("ParseFile: %v", err)
			}
			if diff := cmp.Diff(tt.want, res.Tags()); diff != "" {
				t.Errorf("tags mismatch (-want +got):\n%s", diff)
			}
			transformed := fs.Get(res.FileID).Flags&source.FileTransformed != 0
			if want := tt.norm != NormNone; transformed != want {
				t.Errorf("FileTransformed = %v, want %v", transformed, want)
			}
		})
	}

	if got := NormNFKC.Apply("\ufb01le"); got != "file" {
		t.Errorf("NFKC should fold the fi ligature, got %q", got)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.tags")
	writeFile(t, path, "a, b\n\n\"x\" y\nb, c\n")

	core, logs := observer.New(zap.DebugLevel)
	fs := source.NewFileSet()
	res, err := ParseFile(context.Background(), fs, path, Options{Logger: zap.New(core)})
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}

	wantLines := []LineResult{
		{Line: 1, Tags: []string{"a", "b"}},
		{Line: 3, Tags: []string{"x"}, HasErrors: true},
		{Line: 4, Tags: []string{"b", "c"}},
	}
	if diff := cmp.Diff(wantLines, res.Lines); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b", "x", "c"}, res.Tags()); diff != "" {
		t.Errorf("file tags mismatch (-want +got):\n%s", diff)
	}

	if res.Bag.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", res.Bag.Len())
	}
	if err := testkit.CheckDiagnostics(res.Bag.Items(), fs.Get(res.FileID)); err != nil {
		t.Error(err)
	}
	d := res.Bag.Items()[0]
	if d.Code != diag.TagUnexpectedTrailingText {
		t.Errorf("unexpected code %v", d.Code)
	}
	if d.Primary != (source.Span{File: res.FileID, Start: 10, End: 11}) {
		t.Errorf("unexpected span %v", d.Primary)
	}
	start, _ := fs.Resolve(d.Primary)
	if start != (source.LineCol{Line: 3, Col: 5}) {
		t.Errorf("unexpected position %+v", start)
	}

	logged := logs.FilterMessage("diagnostic").All()
	if len(logged) != 1 || logged[0].ContextMap()["code"] != "TAG1002" {
		t.Errorf("expected one logged TAG1002 diagnostic, got %+v", logged)
	}
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(context.Background(), source.NewFileSet(), filepath.Join(t.TempDir(), "nope.tags"), Options{})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestParseFileMaxDiagnostics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.tags")
	writeFile(t, path, "\"a\n\"b\n\"c\n")

	res, err := ParseFile(context.Background(), source.NewFileSet(), path, Options{MaxDiagnostics: 2})
	if err != nil {
		t.Fatal(err)
	}
	if res.Bag.Len() != 2 {
		t.Errorf("expected the bag to cap at 2, got %d", res.Bag.Len())
	}
}

func TestParseFileCache(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "list.tags")
	writeFile(t, path, "a, \"b\" c\n,\nd\n")
	opts := Options{Cache: cache}

	first, err := ParseFile(context.Background(), source.NewFileSet(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Cached {
		t.Fatal("first parse should not come from the cache")
	}

	second, err := ParseFile(context.Background(), source.NewFileSet(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.Cached {
		t.Fatal("second parse should come from the cache")
	}
	if diff := cmp.Diff(first.Lines, second.Lines, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("cached lines mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(first.Bag.Items(), second.Bag.Items(), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("cached diagnostics mismatch (-want +got):\n%s", diff)
	}

	limited := opts
	limited.MaxTags = 1
	third, err := ParseFile(context.Background(), source.NewFileSet(), path, limited)
	if err != nil {
		t.Fatal(err)
	}
	if third.Cached {
		t.Error("a different MaxTags must not reuse the cached result")
	}
}

func TestDiskCacheDropAll(t *testing.T) {
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	key := CacheKey([32]byte{1}, Options{})
	if err := cache.Put(key, &CachePayload{Lines: []LineResult{{Line: 1, Tags: []string{"a"}}}}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var got CachePayload
	if ok, err := cache.Get(key, &got); err != nil || !ok {
		t.Fatalf("Get = %v, %v", ok, err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if ok, err := cache.Get(key, &got); err != nil || ok {
		t.Errorf("Get after DropAll = %v, %v", ok, err)
	}
	if err := cache.Put(key, &CachePayload{}); err != nil {
		t.Errorf("cache should stay usable after DropAll: %v", err)
	}
}

func TestNilDiskCache(t *testing.T) {
	var cache *DiskCache
	if err := cache.Put(Digest{}, &CachePayload{}); err != nil {
		t.Error(err)
	}
	if ok, err := cache.Get(Digest{}, &CachePayload{}); ok || err != nil {
		t.Errorf("Get = %v, %v", ok, err)
	}
}

func TestParseDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.tags"), "go, rust\n")
	writeFile(t, filepath.Join(dir, "a.txt"), "\"open\n")
	writeFile(t, filepath.Join(dir, "sub", "c.TAGS"), "x\n")
	writeFile(t, filepath.Join(dir, "notes.md"), "ignored\n")
	writeFile(t, filepath.Join(dir, ".hidden", "d.tags"), "ignored\n")
	if err := os.Symlink(filepath.Join(dir, "gone"), filepath.Join(dir, "z.tags")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	fs, results, err := ParseDir(context.Background(), dir, Options{Jobs: 2})
	if err != nil {
		t.Fatalf("ParseDir: %v", err)
	}

	var names []string
	for _, r := range results {
		names = append(names, filepath.Base(r.Path))
	}
	if diff := cmp.Diff([]string{"a.txt", "b.tags", "c.TAGS", "z.tags"}, names); diff != "" {
		t.Fatalf("file order mismatch (-want +got):\n%s", diff)
	}

	if !results[0].Bag.HasErrors() {
		t.Error("a.txt should report an unterminated quote")
	}
	if diff := cmp.Diff([]string{"go", "rust"}, results[1].Tags()); diff != "" {
		t.Errorf("b.tags mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"x"}, results[2].Tags()); diff != "" {
		t.Errorf("c.TAGS mismatch (-want +got):\n%s", diff)
	}

	broken := results[3]
	if broken.Bag.Len() != 1 || broken.Bag.Items()[0].Code != diag.IOReadFailed {
		t.Fatalf("expected IOReadFailed for a dangling link, got %+v", broken.Bag.Items())
	}
	f := fs.Get(broken.Bag.Items()[0].Primary.File)
	if f == nil || filepath.Base(f.Path) != "z.tags" {
		t.Fatalf("read failure should point at z.tags, got %+v", f)
	}
	if f.Flags&source.FileUnreadable == 0 || f.Flags&source.FileVirtual != 0 {
		t.Errorf("z.tags stand-in flags = %b, want unreadable and not virtual", f.Flags)
	}
}

func TestParseDirEmpty(t *testing.T) {
	fs, results, err := ParseDir(context.Background(), t.TempDir(), Options{})
	if err != nil || len(results) != 0 || fs.Len() != 0 {
		t.Errorf("ParseDir(empty) = %d results, %d files, %v", len(results), fs.Len(), err)
	}
}

func TestParseDirCanceled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.tags"), "a\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := ParseDir(ctx, dir, Options{}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

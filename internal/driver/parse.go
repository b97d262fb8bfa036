package driver

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"taglist/internal/diag"
	"taglist/internal/source"
	"taglist/internal/tags"
)

// LineResult is the tag list read from one non-blank line of a file.
type LineResult struct {
	Line      uint32
	Tags      []string
	HasErrors bool
}

// FileResult содержит результат разбора одного файла
type FileResult struct {
	Path   string        // путь к файлу
	FileID source.FileID // ID файла в FileSet
	Lines  []LineResult
	Bag    *diag.Bag // диагностики в координатах файла
	Cached bool      // результат взят из DiskCache
}

// Tags returns the distinct tags of the whole file in order of first
// occurrence.
func (r *FileResult) Tags() []string {
	out := make([]string, 0)
	seen := make(map[string]struct{})
	for _, l := range r.Lines {
		for _, tag := range l.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	return out
}

// logReporter writes every diagnostic to the debug log.
type logReporter struct{ log *zap.Logger }

func (r logReporter) Report(d diag.Diagnostic) {
	r.log.Debug("diagnostic",
		zap.String("code", d.Code.ID()),
		zap.Stringer("span", d.Primary),
		zap.String("message", d.Message))
}

// ParseFile loads path into fs and parses every non-blank line as one tag list.
func ParseFile(ctx context.Context, fs *source.FileSet, path string, opts Options) (*FileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fileID, err := fs.LoadTransformed(path, opts.Normalize.bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return parseLoaded(fs.Get(fileID), opts), nil
}

// ParseSource parses a file that is already in a FileSet, e.g. stdin added
// with AddVirtual.
func ParseSource(f *source.File, opts Options) *FileResult {
	return parseLoaded(f, opts)
}

func parseLoaded(f *source.File, opts Options) *FileResult {
	log := opts.logger().With(zap.String("path", f.Path))
	res := &FileResult{
		Path:   f.Path,
		FileID: f.ID,
		Bag:    diag.NewBag(opts.maxDiagnostics()),
	}

	useCache := opts.Cache != nil && f.Flags&source.FileVirtual == 0
	var key Digest
	if useCache {
		key = CacheKey(f.Hash, opts)
		var payload CachePayload
		hit, err := opts.Cache.Get(key, &payload)
		switch {
		case err != nil:
			log.Warn("cache read failed", zap.Error(err))
		case hit:
			res.Lines = payload.Lines
			for _, d := range payload.Diagnostics {
				res.Bag.Add(d.Relocate(f.ID, 0))
			}
			res.Cached = true
			log.Debug("cache hit", zap.Int("lines", len(res.Lines)))
			return res
		}
	}

	var all []diag.Diagnostic
	reporter := diag.MultiReporter{diag.BagReporter{Bag: res.Bag}, logReporter{log: log}}
	for _, line := range f.Lines() {
		if strings.TrimSpace(line.Text) == "" {
			continue
		}
		tagOpts := opts.tagOptions()
		tagOpts.Reporter = reporter
		tagOpts.File = f.ID
		tagOpts.Base = line.Off
		r := tags.ParseWith(line.Text, tagOpts)
		res.Lines = append(res.Lines, LineResult{
			Line:      line.Num,
			Tags:      r.Tags,
			HasErrors: r.HasErrors(),
		})
		all = append(all, r.Diagnostics...)
	}
	log.Debug("parsed", zap.Int("lines", len(res.Lines)), zap.Int("diagnostics", len(all)))

	if useCache {
		payload := CachePayload{Lines: res.Lines, Diagnostics: make([]diag.Diagnostic, len(all))}
		for i, d := range all {
			payload.Diagnostics[i] = d.Relocate(0, 0)
		}
		if err := opts.Cache.Put(key, &payload); err != nil {
			log.Warn("cache write failed", zap.Error(err))
		}
	}
	return res
}

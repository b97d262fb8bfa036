package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"taglist/internal/diag"
	"taglist/internal/source"
)

// TagFileExts are the extensions ParseDir picks up.
var TagFileExts = []string{".tags", ".txt"}

// ListTagFiles возвращает отсортированный список всех файлов с тегами в директории
func ListTagFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		for _, want := range TagFileExts {
			if ext == want {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// ParseDir parses every tag file under dir in parallel. Results follow the
// sorted file order. A file that cannot be read yields a result with an
// IOReadFailed diagnostic instead of failing the whole run.
func ParseDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []FileResult, error) {
	files, err := ListTagFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSet()
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// FileSet не потокобезопасен: загружаем заранее, разбираем параллельно
	fileIDs := make([]source.FileID, len(files))
	loadErrors := make(map[int]error)
	for i, path := range files {
		fileID, err := fileSet.LoadTransformed(path, opts.Normalize.bytes)
		if err != nil {
			// пустой файл-заглушка, чтобы диагностика указывала на путь
			fileID = fileSet.Add(path, nil, source.FileUnreadable)
			loadErrors[i] = err
		}
		fileIDs[i] = fileID
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	opts.logger().Debug("parse dir",
		zap.String("dir", dir),
		zap.Int("files", len(files)),
		zap.Int("jobs", jobs))

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			if loadErr, failed := loadErrors[i]; failed {
				bag := diag.NewBag(opts.maxDiagnostics())
				span := source.Span{File: fileIDs[i]}
				bag.Add(diag.NewError(diag.IOReadFailed, span, "failed to read file: "+loadErr.Error()))
				results[i] = FileResult{Path: fileSet.Get(fileIDs[i]).Path, FileID: fileIDs[i], Bag: bag}
				return nil
			}

			results[i] = *parseLoaded(fileSet.Get(fileIDs[i]), opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"taglist/internal/diag"
	"taglist/internal/driver"
	"taglist/internal/source"
)

// batch is everything read in one command run.
type batch struct {
	fs      *source.FileSet
	results []driver.FileResult
}

// bag merges the diagnostics of all results in file order.
func (b *batch) bag() *diag.Bag {
	out := diag.NewBag(0)
	for i := range b.results {
		out.Merge(b.results[i].Bag)
	}
	out.Sort()
	out.Dedup()
	return out
}

// readPaths parses files and directories in the order given.
func readPaths(ctx context.Context, paths []string, opts driver.Options) (*batch, error) {
	b := &batch{fs: source.NewFileSet()}
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if !info.IsDir() {
			res, err := driver.ParseFile(ctx, b.fs, path, opts)
			if err != nil {
				return nil, err
			}
			b.results = append(b.results, *res)
			continue
		}

		dirFS, results, err := driver.ParseDir(ctx, path, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		b.adopt(dirFS, results)
	}
	return b, nil
}

// adopt moves results parsed into another FileSet into b.fs.
func (b *batch) adopt(other *source.FileSet, results []driver.FileResult) {
	for _, r := range results {
		f := other.Get(r.FileID)
		id := b.fs.Add(f.Path, f.Content, f.Flags)
		moved := diag.NewBag(max(r.Bag.Len(), 1))
		for _, d := range r.Bag.Items() {
			moved.Add(d.Relocate(id, 0))
		}
		r.FileID = id
		r.Bag = moved
		b.results = append(b.results, r)
	}
}

// readVirtual parses text that did not come from a file: arguments or stdin.
func readVirtual(name, text string, opts driver.Options) *batch {
	b := &batch{fs: source.NewFileSet()}
	id := b.fs.AddVirtual(name, []byte(opts.Normalize.Apply(text)))
	b.results = append(b.results, *driver.ParseSource(b.fs.Get(id), opts))
	return b
}

// readInputs picks the input source: files, then arguments, then stdin.
func readInputs(ctx context.Context, paths, args []string, stdin io.Reader, opts driver.Options) (*batch, error) {
	switch {
	case len(paths) > 0:
		return readPaths(ctx, paths, opts)
	case len(args) > 0:
		return readVirtual("<args>", strings.Join(args, ", "), opts), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return readVirtual("<stdin>", string(data), opts), nil
}

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"taglist/internal/driver"
	"taglist/internal/fix"
	"taglist/internal/source"
	"taglist/internal/tags"
)

func newFixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [flags] [file|directory...]",
		Short: "Repair malformed tag lists",
		Long: `Fix applies the suggested repair of each error until every line parses or no
repair is left. Without arguments stdin is repaired to stdout. Files are only
rewritten with --write; otherwise the repairs are listed.`,
		RunE: runFix,
	}
	cmd.Flags().BoolP("write", "w", false, "write repaired files in place")
	return cmd
}

func runFix(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	defer s.finish(cmd)
	write, _ := cmd.Flags().GetBool("write")
	stderr := cmd.ErrOrStderr()

	fs := source.NewFileSet()
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		f := fs.Get(fs.AddVirtual("<stdin>", data))
		content, applied := fix.RepairFile(f, tags.Options{})
		if err := printApplied(stderr, f.Path, applied); err != nil {
			return err
		}
		if _, err := io.WriteString(cmd.OutOrStdout(), content); err != nil {
			return err
		}
		if contentHasErrors(content) {
			return errInputHasErrors
		}
		return nil
	}

	paths, err := expandPaths(args)
	if err != nil {
		return err
	}

	idx := s.timer.Begin("fix")
	var fixed, files int
	remaining := false
	for _, path := range paths {
		id, err := fs.Load(path)
		if err != nil {
			s.timer.End(idx, "failed")
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		f := fs.Get(id)
		content, applied := fix.RepairFile(f, tags.Options{})
		if contentHasErrors(content) {
			remaining = true
		}
		if len(applied) == 0 {
			continue
		}
		fixed += len(applied)
		files++
		if err := printApplied(stderr, f.Path, applied); err != nil {
			return err
		}
		if write {
			if err := fix.WriteFile(f, content); err != nil {
				return err
			}
			s.logger.Debug("file rewritten", zap.String("path", f.Path), zap.Int("fixes", len(applied)))
		}
	}
	s.timer.End(idx, fmt.Sprintf("%d fix(es)", fixed))

	verb := "would fix"
	if write {
		verb = "fixed"
	}
	if _, err := fmt.Fprintf(stderr, "%s %d problem(s) in %d file(s)\n", verb, fixed, files); err != nil {
		return err
	}
	if remaining {
		return errInputHasErrors
	}
	return nil
}

// expandPaths replaces directories with the tag files inside them.
func expandPaths(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", arg, err)
		}
		if !info.IsDir() {
			out = append(out, arg)
			continue
		}
		files, err := driver.ListTagFiles(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", arg, err)
		}
		out = append(out, files...)
	}
	return out, nil
}

func printApplied(w io.Writer, path string, applied []fix.AppliedFix) error {
	for _, a := range applied {
		if _, err := fmt.Fprintf(w, "%s:%d: %s %s\n", path, a.Line, a.Code.ID(), a.Title); err != nil {
			return err
		}
	}
	return nil
}

// contentHasErrors reports whether some line still fails to parse.
func contentHasErrors(content string) bool {
	for line := range strings.SplitSeq(content, "\n") {
		if tags.Parse(line).HasErrors() {
			return true
		}
	}
	return false
}

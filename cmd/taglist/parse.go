package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"taglist/internal/diag"
	"taglist/internal/diagfmt"
	"taglist/internal/source"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] [text...]",
		Short: "Split tag lists into distinct tags",
		Long: `Parse reads tag lists from the arguments (joined with ", "), from the files
and directories given with --file, or from stdin, one tag list per line.
Tags are printed one per line; diagnostics go to stderr.`,
		RunE: runParse,
	}
	cmd.Flags().StringSliceP("file", "f", nil, "tag files or directories to read")
	cmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	cmd.Flags().Int("max-tags", 0, "keep at most this many tags per list (0 = unlimited)")
	cmd.Flags().String("normalize", "nfc", "unicode normalization (nfc|nfkc|none)")
	cmd.Flags().Bool("strict", false, "exit with status 1 when the input has errors")
	cmd.Flags().Bool("fixes", false, "show suggested fixes under diagnostics")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	defer s.finish(cmd)

	paths, err := cmd.Flags().GetStringSlice("file")
	if err != nil {
		return err
	}
	strict, _ := cmd.Flags().GetBool("strict")
	showFixes, _ := cmd.Flags().GetBool("fixes")

	idx := s.timer.Begin("parse")
	b, err := readInputs(cmd.Context(), paths, args, cmd.InOrStdin(), s.driver)
	if err != nil {
		s.timer.End(idx, "failed")
		return err
	}
	s.timer.End(idx, fmt.Sprintf("%d input(s)", len(b.results)))
	bag := b.bag()

	idx = s.timer.Begin("render")
	switch s.format {
	case diagfmt.FormatPretty:
		if err = printTagsPretty(cmd.OutOrStdout(), b); err == nil {
			opts := s.prettyOpts(s.colorErr)
			opts.ShowFixes = showFixes
			err = diagfmt.Pretty(cmd.ErrOrStderr(), bag, b.fs, opts)
		}
	default:
		out := diagfmt.BuildResultsOutput(tagsJSON(b), bag, b.fs, s.jsonOpts())
		err = diagfmt.Encode(cmd.OutOrStdout(), s.format, out)
	}
	s.timer.End(idx, s.format.String())
	if err != nil {
		return err
	}

	if strict && bag.HasErrors() {
		return errInputHasErrors
	}
	return nil
}

// printTagsPretty prints one tag per line. With several files each block is
// headed by the file path.
func printTagsPretty(w io.Writer, b *batch) error {
	multi := len(b.results) > 1
	for i, r := range b.results {
		if multi {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, "==> %s <==\n", r.Path); err != nil {
				return err
			}
		}
		for _, tag := range r.Tags() {
			if _, err := fmt.Fprintln(w, tag); err != nil {
				return err
			}
		}
	}
	return nil
}

func tagsJSON(b *batch) []diagfmt.TagsJSON {
	out := make([]diagfmt.TagsJSON, 0, len(b.results))
	for _, r := range b.results {
		f := b.fs.Get(r.FileID)
		path := ""
		if f != nil && f.Flags&source.FileVirtual == 0 {
			path = r.Path
		}
		if f != nil && f.Flags&source.FileUnreadable != 0 {
			out = append(out, diagfmt.TagsJSON{File: path, Tags: []string{}})
			continue
		}
		for _, l := range r.Lines {
			out = append(out, diagfmt.TagsJSON{File: path, Line: l.Line, Tags: l.Tags})
		}
	}
	return out
}

// summary renders "2 errors, 1 warning".
func summary(bag *diag.Bag) string {
	var errs, warns int
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		}
	}
	return fmt.Sprintf("%s, %s", plural(errs, "error"), plural(warns, "warning"))
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

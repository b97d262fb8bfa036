package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"taglist/internal/diagfmt"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] <file|directory>...",
		Short: "Report malformed tag lists",
		Long: `Check parses every line of the given files (directories are searched for
*.tags and *.txt files) and prints diagnostics only. The exit status is 1 when
any error was found, or any warning with --warnings-as-errors.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCheck,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	cmd.Flags().Int("max-tags", 0, "report lists with more than this many tags (0 = unlimited)")
	cmd.Flags().String("normalize", "nfc", "unicode normalization (nfc|nfkc|none)")
	cmd.Flags().Bool("fixes", false, "show suggested fixes under diagnostics")
	cmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	defer s.finish(cmd)
	showFixes, _ := cmd.Flags().GetBool("fixes")
	warningsAsErrors, _ := cmd.Flags().GetBool("warnings-as-errors")

	idx := s.timer.Begin("check")
	b, err := readPaths(cmd.Context(), args, s.driver)
	if err != nil {
		s.timer.End(idx, "failed")
		return err
	}
	cached := 0
	for _, r := range b.results {
		if r.Cached {
			cached++
		}
	}
	s.timer.End(idx, fmt.Sprintf("%d file(s), %d cached", len(b.results), cached))
	bag := b.bag()

	switch s.format {
	case diagfmt.FormatPretty:
		opts := s.prettyOpts(s.colorOut)
		opts.ShowFixes = showFixes
		if err := diagfmt.Pretty(cmd.OutOrStdout(), bag, b.fs, opts); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(cmd.ErrOrStderr(), "checked %d file(s): %s\n", len(b.results), summary(bag)); err != nil {
			return err
		}
	default:
		if err := diagfmt.Encode(cmd.OutOrStdout(), s.format, diagfmt.BuildDiagnosticsOutput(bag, b.fs, s.jsonOpts())); err != nil {
			return err
		}
	}

	if bag.HasErrors() || (warningsAsErrors && bag.HasWarnings()) {
		return errInputHasErrors
	}
	return nil
}

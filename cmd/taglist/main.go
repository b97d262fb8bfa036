package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"taglist/internal/version"
)

// errInputHasErrors is returned after diagnostics were printed; main turns it
// into exit status 1 without printing it again.
var errInputHasErrors = errors.New("input has errors")

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "taglist",
		Short: "Parse, check and repair comma-separated tag lists",
		Long: `taglist reads tag lists such as

    Drupal, "Tag with, comma", ""quoted"" word

splits them into distinct tags, reports malformed input and can rewrite it
into canonical form.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newFixCmd())
	rootCmd.AddCommand(newJoinCmd())
	rootCmd.AddCommand(newEncodeCmd())
	rootCmd.AddCommand(newCleanCmd())
	rootCmd.AddCommand(newVersionCmd())

	// Глобальные флаги
	flags := rootCmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.String("config", "", "path to taglist.toml (default: search upwards from the working directory)")
	flags.String("log-level", "warn", "log level (debug|info|warn|error)")
	flags.String("lang", "en", "language of diagnostic messages (en|ru|de)")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics to keep per input")
	flags.Bool("timings", false, "show timing information")
	flags.Bool("no-cache", false, "do not read or write the result cache")
	flags.Int("jobs", 0, "parallel workers for directories (0 = GOMAXPROCS)")
	flags.String("cpu-profile", "", "write a CPU profile to this file")
	flags.String("mem-profile", "", "write a heap profile to this file on exit")
	flags.String("runtime-trace", "", "write a runtime trace to this file")
	return rootCmd
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errInputHasErrors) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли writer терминалом
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Package diag defines the diagnostic model shared by the tag parser, the batch
// driver and the CLI.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with a stable string form
//     and a stable kind name (UnterminatedQuote, UnexpectedTrailingText, ...).
//   - Message – default English text, rendered from the code template
//     (Code.Template + Diagnostic.Args). Consumers that need another language
//     re-render it from the same payload (see internal/diagfmt).
//   - Primary span – byte range inside the parsed input.
//   - Tag / Fragment / Limit – the payload a message template needs: the tag that
//     preceded the problem, the offending text (at most ten characters) and the
//     tag limit that was exceeded.
//   - Fixes – optional Fix records describing how to repair the input.
//
// Package diag performs no IO and no output formatting. Rendering lives in
// internal/diagfmt; applying fixes lives in internal/fix.
//
// # Emitting diagnostics
//
// Producers take a Reporter so emission stays decoupled from storage. BagReporter
// collects into a Bag, which supports a capacity limit, sorting, deduplication
// and merging.
package diag

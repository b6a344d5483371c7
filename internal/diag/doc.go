// Package diag defines the diagnostic model shared by all pipeline phases.
//
// # Purpose
//
//   - Provide deterministic data structures that capture findings produced
//     by the lexer, parser, type inference and lowering passes.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting.
//
// Package diag does not format anything; rendering lives in internal/diagfmt.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error (severity.go).
//   - Code – compact numeric identifier with a stable string form (codes.go).
//     Ranges: 1xxx lexer, 2xxx parser, 3xxx semantic, 4xxx I/O, 5xxx project,
//     6xxx observability.
//   - Message – short, actionable text.
//   - Primary – the source.Span pointing to the issue.
//   - Notes – optional secondary spans.
//
// # Fatal faults
//
// Passes that work on a finished syntax tree (type inference, lowering) do
// not keep going after an unsupported construct: they return *Fault, an
// error wrapping a single Diagnostic. The driver records it in the file's
// Bag so the CLI prints it like any other diagnostic.
package diag

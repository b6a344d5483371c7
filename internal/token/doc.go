// Package token defines lexical token kinds for JavaScript/TypeScript with JSX.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span.
//   - Token.Value holds the cooked value of string and template tokens;
//     for every other kind it equals Text.
//   - Contextual words (async, await, of, let, as, from, type, ...) are lexed
//     as Ident. The parser recognizes them by text.
//   - JSX text and JSX attribute strings are produced only by the JSX scanning
//     modes of the lexer; the default mode never yields them.
package token

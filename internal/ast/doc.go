// Package ast holds the syntax tree of a JavaScript/TypeScript module with
// JSX. Nodes are variant interfaces wrapped in small value structs that carry
// the source span:
//
//	Expr{Data E, Span}    Stmt{Data S, Span}    Binding{Data B, Span}
//
// Passes switch on Data with a type switch. Nodes created by the compiler
// (lowering output) have an empty span.
//
// TypeScript syntax is stripped by the parser; the tree only contains what
// survives into emitted JavaScript.
package ast

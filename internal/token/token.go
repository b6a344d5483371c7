package token

import (
	"jsxstream/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind  Kind
	Span  source.Span
	Text  string
	Value string
	// NewlineBefore is set when at least one line terminator separates this
	// token from the previous one; the parser uses it for semicolon insertion.
	NewlineBefore bool
}

// IsLiteral reports whether the token is a numeric, string, regexp or template literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case Number, BigInt, String, RegExp, NoSubstitutionTemplate, TemplateHead:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwBreak && t.Kind <= KwWith
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsIdentName reports whether the token can be used where an IdentifierName
// is allowed (property names, JSX attribute names): identifiers and reserved words.
func (t Token) IsIdentName() bool { return t.Kind == Ident || t.IsKeyword() }

// Is reports whether the token is the identifier word (contextual keyword).
func (t Token) Is(word string) bool { return t.Kind == Ident && t.Text == word }

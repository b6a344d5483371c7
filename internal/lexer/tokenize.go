package lexer

import (
	"jsxstream/internal/source"
	"jsxstream/internal/token"
)

// Tokenize scans the whole file in regular mode for the `tokenize` command.
// Without a parser the regexp/division ambiguity is settled by the previous
// token, and template continuations by a brace-depth stack. JSX is not
// recognised here: '<' is always an operator.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	var (
		out       []token.Token
		templates []int // глубина фигурных скобок на каждом открытом ${
		depth     int
		prev      = token.Token{Kind: token.Invalid}
	)
	for {
		tok := lx.Next()
		switch tok.Kind {
		case token.Slash, token.SlashAssign:
			if regexpAllowedAfter(prev) {
				tok = lx.RescanRegExp(tok)
			}
		case token.LBrace:
			depth++
		case token.RBrace:
			if n := len(templates); n > 0 && templates[n-1] == depth {
				templates = templates[:n-1]
				tok = lx.RescanTemplateContinuation(tok)
			} else {
				depth--
			}
		}
		if tok.Kind == token.TemplateHead || tok.Kind == token.TemplateMiddle {
			templates = append(templates, depth)
		}
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
		prev = tok
	}
}

func regexpAllowedAfter(prev token.Token) bool {
	switch prev.Kind {
	case token.Ident, token.PrivateIdent, token.Number, token.BigInt, token.String,
		token.RegExp, token.NoSubstitutionTemplate, token.TemplateTail,
		token.RParen, token.RBracket, token.RBrace, token.PlusPlus, token.MinusMinus,
		token.KwThis, token.KwSuper, token.KwTrue, token.KwFalse, token.KwNull:
		return false
	}
	return true
}

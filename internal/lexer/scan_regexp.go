package lexer

import (
	"jsxstream/internal/diag"
	"jsxstream/internal/token"
)

// RescanRegExp пересканирует токен '/' или '/=' как литерал регулярного выражения.
// Парсер вызывает его там, где ожидается первичное выражение.
func (lx *Lexer) RescanRegExp(slash token.Token) token.Token {
	lx.cursor.Off = slash.Span.Start
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '/'
	inClass := false
	for {
		if lx.cursor.EOF() {
			return lx.unterminatedRegExp(start, slash)
		}
		r, _ := lx.peekRune()
		if isLineTerminator(r) {
			return lx.unterminatedRegExp(start, slash)
		}
		lx.bumpRune()
		switch r {
		case '\\':
			if r2, sz := lx.peekRune(); sz > 0 && !isLineTerminator(r2) {
				lx.bumpRune()
			}
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if !inClass {
				// флаги
				for {
					r, sz := lx.peekRune()
					if sz == 0 || !isIdentContinueRune(r) {
						break
					}
					lx.bumpRune()
				}
				text := lx.cursor.TextFrom(start)
				return token.Token{
					Kind:          token.RegExp,
					Span:          lx.cursor.SpanFrom(start),
					Text:          text,
					Value:         text,
					NewlineBefore: slash.NewlineBefore,
				}
			}
		}
	}
}

func (lx *Lexer) unterminatedRegExp(start Mark, slash token.Token) token.Token {
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedRegExp, sp, "unterminated regular expression")
	return token.Token{Kind: token.RegExp, Span: sp, Text: lx.cursor.TextFrom(start), NewlineBefore: slash.NewlineBefore}
}

package lexer

import (
	"strings"

	"jsxstream/internal/diag"
	"jsxstream/internal/token"
)

// scanIdentOrKeyword сканирует идентификатор и проверяет через LookupKeyword.
// Token.Text — исходный срез, Token.Value — имя с раскрытыми \u-эскейпами.
// Слово с эскейпами никогда не становится ключевым.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	name, escaped, ok := lx.scanIdentName()
	sp := lx.cursor.SpanFrom(start)
	if !ok {
		if lx.cursor.Off == uint32(start) {
			lx.bumpRune()
			sp = lx.cursor.SpanFrom(start)
		}
		lx.errLex(diag.LexUnknownChar, sp, "unexpected character "+quoteText(lx.cursor.TextFrom(start)))
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.TextFrom(start)}
	}

	text := lx.cursor.TextFrom(start)
	if !escaped {
		if k, isKw := token.LookupKeyword(name); isKw {
			return token.Token{Kind: k, Span: sp, Text: text, Value: name}
		}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text, Value: name}
}

func (lx *Lexer) scanPrivateIdent() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '#'
	name, _, _ := lx.scanIdentName()
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.PrivateIdent, Span: sp, Text: lx.cursor.TextFrom(start), Value: name}
}

// scanIdentName читает IdentifierName начиная с курсора.
func (lx *Lexer) scanIdentName() (name string, escaped, ok bool) {
	var sb strings.Builder
	first := true
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\\' {
			r, good := lx.scanUnicodeEscapeInIdent()
			if !good || (first && !isIdentStartRune(r)) || (!first && !isIdentContinueRune(r)) {
				return sb.String(), true, false
			}
			sb.WriteRune(r)
			escaped = true
			first = false
			continue
		}
		r, _ := lx.peekRune()
		if first && !isIdentStartRune(r) {
			return "", false, false
		}
		if !first && !isIdentContinueRune(r) {
			break
		}
		lx.bumpRune()
		sb.WriteRune(r)
		first = false
	}
	return sb.String(), escaped, !first
}

// \uXXXX или \u{X...}
func (lx *Lexer) scanUnicodeEscapeInIdent() (rune, bool) {
	if lx.cursor.PeekAt(1) != 'u' {
		return 0, false
	}
	lx.cursor.Advance(2)
	return lx.scanUnicodeEscapeBody()
}

func (lx *Lexer) scanUnicodeEscapeBody() (rune, bool) {
	if lx.cursor.Eat('{') {
		var r rune
		digits := 0
		for isHex(lx.cursor.Peek()) {
			r = r*16 + hexVal(lx.cursor.Bump())
			digits++
			if r > 0x10FFFF {
				return 0, false
			}
		}
		if digits == 0 || !lx.cursor.Eat('}') {
			return 0, false
		}
		return r, true
	}
	var r rune
	for i := 0; i < 4; i++ {
		if !isHex(lx.cursor.Peek()) {
			return 0, false
		}
		r = r*16 + hexVal(lx.cursor.Bump())
	}
	return r, true
}

func quoteText(s string) string {
	return "'" + s + "'"
}

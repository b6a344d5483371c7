package lexer

import (
	"jsxstream/internal/diag"
	"jsxstream/internal/token"
)

var jsxPunct = map[byte]token.Kind{
	'<': token.Lt, '>': token.Gt, '/': token.Slash, '=': token.Assign,
	'{': token.LBrace, '}': token.RBrace, ':': token.Colon, '.': token.Dot,
}

// NextJSXChild сканирует содержимое между тегами: текст до '{' или '<'
// возвращается одним JSXText без обработки (пробелы и сущности как есть).
func (lx *Lexer) NextJSXChild() token.Token {
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}
	start := lx.cursor.Mark()
	switch lx.cursor.Peek() {
	case '{':
		lx.cursor.Bump()
		return token.Token{Kind: token.LBrace, Span: lx.cursor.SpanFrom(start), Text: "{"}
	case '<':
		lx.cursor.Bump()
		return token.Token{Kind: token.Lt, Span: lx.cursor.SpanFrom(start), Text: "<"}
	}
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '{' || b == '<' {
			break
		}
		lx.cursor.Bump()
	}
	text := lx.cursor.TextFrom(start)
	return token.Token{Kind: token.JSXText, Span: lx.cursor.SpanFrom(start), Text: text, Value: text}
}

// NextInsideJSX сканирует токены внутри тега: имена (с '-'), строки
// без эскейпов, и пунктуацию < > / = { } : .
func (lx *Lexer) NextInsideJSX() token.Token {
	nl := lx.skipTrivia()
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan(), NewlineBefore: nl}
	}
	start := lx.cursor.Mark()
	ch := lx.cursor.Peek()
	if k, ok := jsxPunct[ch]; ok {
		lx.cursor.Bump()
		return token.Token{Kind: k, Span: lx.cursor.SpanFrom(start), Text: string(ch), NewlineBefore: nl}
	}

	if ch == '"' || ch == '\'' {
		lx.cursor.Bump()
		for !lx.cursor.EOF() && lx.cursor.Peek() != ch {
			lx.cursor.Bump()
		}
		if lx.cursor.EOF() {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "unterminated JSX attribute string")
			text := lx.cursor.TextFrom(start)
			return token.Token{Kind: token.String, Span: sp, Text: text, Value: text[1:], NewlineBefore: nl}
		}
		lx.cursor.Bump()
		text := lx.cursor.TextFrom(start)
		return token.Token{Kind: token.String, Span: lx.cursor.SpanFrom(start), Text: text, Value: text[1 : len(text)-1], NewlineBefore: nl}
	}

	if r, sz := lx.peekRune(); sz > 0 && isIdentStartRune(r) {
		for !lx.cursor.EOF() {
			r, _ := lx.peekRune()
			if r != '-' && !isIdentContinueRune(r) {
				break
			}
			lx.bumpRune()
		}
		text := lx.cursor.TextFrom(start)
		return token.Token{Kind: token.Ident, Span: lx.cursor.SpanFrom(start), Text: text, Value: text, NewlineBefore: nl}
	}

	lx.bumpRune()
	sp := lx.cursor.SpanFrom(start)
	text := lx.cursor.TextFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, "unexpected character "+quoteText(text)+" in JSX tag")
	return token.Token{Kind: token.Invalid, Span: sp, Text: text, NewlineBefore: nl}
}

package lexer

import (
	"jsxstream/internal/diag"
	"jsxstream/internal/token"
)

// scanNumber: 0, 123, 1_000, .5, 1.5e-3, 0x1F, 0o17, 0b101, 017 (legacy), 10n.
// Неверные формы репортятся, токен по возможности завершаем.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.Number
	integer := true

	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X':
			lx.cursor.Advance(2)
			lx.scanDigits(isHex)
			return lx.finishNumber(start, token.Number, true)
		case 'o', 'O':
			lx.cursor.Advance(2)
			lx.scanDigits(func(b byte) bool { return b >= '0' && b <= '7' })
			return lx.finishNumber(start, token.Number, true)
		case 'b', 'B':
			lx.cursor.Advance(2)
			lx.scanDigits(func(b byte) bool { return b == '0' || b == '1' })
			return lx.finishNumber(start, token.Number, true)
		}
	}

	// целая часть (у ".5" её нет)
	lx.scanDigits(isDec)

	// дробная часть
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		integer = false
		lx.scanDigits(isDec)
	}

	// экспонента
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		lx.cursor.Bump()
		integer = false
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexBadNumber, sp, "expected digit after exponent")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.TextFrom(start)}
		}
		lx.scanDigits(isDec)
	}
	return lx.finishNumber(start, kind, integer)
}

func (lx *Lexer) scanDigits(ok func(byte) bool) {
	for {
		b := lx.cursor.Peek()
		if ok(b) || (b == '_' && ok(lx.cursor.PeekAt(1))) {
			lx.cursor.Bump()
			continue
		}
		return
	}
}

// finishNumber обрабатывает суффикс BigInt и запрещает идентификатор сразу после числа.
func (lx *Lexer) finishNumber(start Mark, kind token.Kind, integer bool) token.Token {
	if lx.cursor.Peek() == 'n' {
		lx.cursor.Bump()
		if !integer {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexBadNumber, sp, "BigInt literal must be an integer")
		}
		kind = token.BigInt
	}
	if r, sz := lx.peekRune(); sz > 0 && isIdentStartRune(r) {
		for {
			r, sz := lx.peekRune()
			if sz == 0 || !isIdentContinueRune(r) {
				break
			}
			lx.bumpRune()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadNumber, sp, "identifier starts immediately after numeric literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.TextFrom(start)}
	}
	sp := lx.cursor.SpanFrom(start)
	text := lx.cursor.TextFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: text, Value: text}
}

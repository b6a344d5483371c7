package lexer

import (
	"jsxstream/internal/diag"
)

// skipTrivia пропускает пробелы, переводы строк и комментарии перед токеном.
// Возвращает true, если среди них был перевод строки (для ASI).
// Многострочный блочный комментарий тоже считается переводом строки.
func (lx *Lexer) skipTrivia() bool {
	newline := false
	for !lx.cursor.EOF() {
		r, sz := lx.peekRune()
		switch {
		case isLineTerminator(r):
			newline = true
			lx.bumpRune()
			continue
		case isWhitespaceRune(r):
			lx.bumpRune()
			continue
		case r == '/' && sz == 1:
			switch lx.cursor.PeekAt(1) {
			case '/':
				lx.skipLineComment()
				continue
			case '*':
				if lx.skipBlockComment() {
					newline = true
				}
				continue
			}
		}
		break
	}
	return newline
}

func (lx *Lexer) skipLineComment() {
	for !lx.cursor.EOF() {
		r, _ := lx.peekRune()
		if isLineTerminator(r) {
			return
		}
		lx.bumpRune()
	}
}

// skipBlockComment съедает /* ... */ и сообщает, был ли внутри перевод строки.
func (lx *Lexer) skipBlockComment() bool {
	start := lx.cursor.Mark()
	lx.cursor.Advance(2)
	newline := false
	for !lx.cursor.EOF() {
		if lx.cursor.Peek() == '*' && lx.cursor.PeekAt(1) == '/' {
			lx.cursor.Advance(2)
			return newline
		}
		if r := lx.bumpRune(); isLineTerminator(r) {
			newline = true
		}
	}
	lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
	return newline
}

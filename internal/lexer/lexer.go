package lexer

import (
	"jsxstream/internal/source"
	"jsxstream/internal/token"
)

// Lexer is a parser-driven scanner: the parser picks the scanning mode for
// every token (regular, JSX child, inside a JSX tag, template continuation,
// regular expression), so the lexer itself keeps no mode stack.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
}

func New(file *source.File, opts Options) *Lexer {
	lx := &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
	lx.skipHashbang()
	return lx
}

// File returns the file being scanned.
func (lx *Lexer) File() *source.File { return lx.file }

// Offset returns the byte offset of the cursor.
func (lx *Lexer) Offset() uint32 { return lx.cursor.Off }

// ResetTo moves the cursor to off; the next call rescans from there.
// Used for splitting '>>' in type argument lists and for backtracking.
func (lx *Lexer) ResetTo(off uint32) {
	lx.cursor.Off = min(off, lx.cursor.Limit)
}

// Next возвращает следующий значимый токен в обычном режиме.
// '/' всегда возвращается как оператор; регулярные выражения
// пересканирует парсер через RescanRegExp.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	nl := lx.skipTrivia()
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan(), NewlineBefore: nl}
	}

	ch := lx.cursor.Peek()
	var tok token.Token
	switch {
	case isIdentStartByte(ch) || ch == '\\':
		tok = lx.scanIdentOrKeyword()
	case ch >= 0x80:
		tok = lx.scanIdentOrKeyword()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '.' && isDec(lx.cursor.PeekAt(1)):
		tok = lx.scanNumber()
	case ch == '"' || ch == '\'':
		tok = lx.scanString()
	case ch == '`':
		lx.cursor.Bump()
		tok = lx.scanTemplate(lx.cursor.Mark()-1, true)
	case ch == '#' && isIdentStartByte(lx.cursor.PeekAt(1)):
		tok = lx.scanPrivateIdent()
	default:
		tok = lx.scanPunct()
	}
	tok.NewlineBefore = nl
	return tok
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) skipHashbang() {
	if lx.cursor.PeekAt(0) == '#' && lx.cursor.PeekAt(1) == '!' {
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
	}
}

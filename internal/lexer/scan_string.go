package lexer

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"jsxstream/internal/diag"
	"jsxstream/internal/token"
)

// scanString сканирует '...' или "...". Value — строка с раскрытыми эскейпами.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	quote := lx.cursor.Bump()
	var sb strings.Builder
	for {
		if lx.cursor.EOF() {
			return lx.unterminatedString(start, sb.String())
		}
		b := lx.cursor.Peek()
		if b == quote {
			lx.cursor.Bump()
			break
		}
		if b == '\n' || b == '\r' {
			return lx.unterminatedString(start, sb.String())
		}
		if b == '\\' {
			lx.scanEscape(&sb, false)
			continue
		}
		sb.WriteRune(lx.bumpRune())
	}
	return token.Token{
		Kind:  token.String,
		Span:  lx.cursor.SpanFrom(start),
		Text:  lx.cursor.TextFrom(start),
		Value: sb.String(),
	}
}

func (lx *Lexer) unterminatedString(start Mark, value string) token.Token {
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.String, Span: sp, Text: lx.cursor.TextFrom(start), Value: value}
}

// scanTemplate читает кусок шаблонной строки после '`' или '}'.
// head=true: результат NoSubstitutionTemplate или TemplateHead,
// иначе TemplateTail или TemplateMiddle. Value — cooked-строка.
// Неверные эскейпы в шаблонах не ошибка (tagged templates), cooked тогда best-effort.
func (lx *Lexer) scanTemplate(start Mark, head bool) token.Token {
	var sb strings.Builder
	for {
		if lx.cursor.EOF() {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedTemplate, sp, "unterminated template literal")
			kind := token.TemplateTail
			if head {
				kind = token.NoSubstitutionTemplate
			}
			return token.Token{Kind: kind, Span: sp, Text: lx.cursor.TextFrom(start), Value: sb.String()}
		}
		b := lx.cursor.Peek()
		switch {
		case b == '`':
			lx.cursor.Bump()
			kind := token.TemplateTail
			if head {
				kind = token.NoSubstitutionTemplate
			}
			return token.Token{Kind: kind, Span: lx.cursor.SpanFrom(start), Text: lx.cursor.TextFrom(start), Value: sb.String()}
		case b == '$' && lx.cursor.PeekAt(1) == '{':
			lx.cursor.Advance(2)
			kind := token.TemplateMiddle
			if head {
				kind = token.TemplateHead
			}
			return token.Token{Kind: kind, Span: lx.cursor.SpanFrom(start), Text: lx.cursor.TextFrom(start), Value: sb.String()}
		case b == '\\':
			lx.scanEscape(&sb, true)
		default:
			sb.WriteRune(lx.bumpRune())
		}
	}
}

// RescanTemplateContinuation пересканирует '}' как продолжение шаблона.
// Парсер вызывает его, когда закончил выражение внутри ${...}.
func (lx *Lexer) RescanTemplateContinuation(rbrace token.Token) token.Token {
	lx.cursor.Off = rbrace.Span.Start
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '}'
	return lx.scanTemplate(start, false)
}

// scanEscape раскрывает эскейп-последовательность после '\'.
func (lx *Lexer) scanEscape(sb *strings.Builder, inTemplate bool) {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '\'
	if lx.cursor.EOF() {
		return
	}
	b := lx.cursor.Peek()
	switch b {
	case 'n':
		lx.cursor.Bump()
		sb.WriteByte('\n')
	case 't':
		lx.cursor.Bump()
		sb.WriteByte('\t')
	case 'r':
		lx.cursor.Bump()
		sb.WriteByte('\r')
	case 'b':
		lx.cursor.Bump()
		sb.WriteByte('\b')
	case 'f':
		lx.cursor.Bump()
		sb.WriteByte('\f')
	case 'v':
		lx.cursor.Bump()
		sb.WriteByte('\v')
	case '\r':
		// продолжение строки
		lx.cursor.Bump()
		lx.cursor.Eat('\n')
	case '\n':
		lx.cursor.Bump()
	case 'x':
		lx.cursor.Bump()
		if isHex(lx.cursor.Peek()) && isHex(lx.cursor.PeekAt(1)) {
			r := hexVal(lx.cursor.Bump())*16 + hexVal(lx.cursor.Bump())
			sb.WriteRune(r)
			return
		}
		lx.badEscape(start, inTemplate)
	case 'u':
		lx.cursor.Bump()
		r, ok := lx.scanUnicodeEscapeBody()
		if !ok {
			lx.badEscape(start, inTemplate)
			return
		}
		// суррогатная пара 😀
		if utf16.IsSurrogate(r) && lx.cursor.Peek() == '\\' && lx.cursor.PeekAt(1) == 'u' {
			save := lx.cursor.Mark()
			lx.cursor.Advance(2)
			if lo, ok := lx.scanUnicodeEscapeBody(); ok {
				if combined := utf16.DecodeRune(r, lo); combined != utf8.RuneError {
					sb.WriteRune(combined)
					return
				}
			}
			lx.cursor.Reset(save)
		}
		sb.WriteRune(r)
	default:
		if b >= '0' && b <= '7' {
			// \0 или legacy octal
			var r rune
			for i := 0; i < 3 && lx.cursor.Peek() >= '0' && lx.cursor.Peek() <= '7'; i++ {
				next := r*8 + rune(lx.cursor.Peek()-'0')
				if next > 0xFF {
					break
				}
				r = next
				lx.cursor.Bump()
			}
			sb.WriteRune(r)
			return
		}
		r := lx.bumpRune()
		if r == '\u2028' || r == '\u2029' {
			return
		}
		sb.WriteRune(r)
	}
}

func (lx *Lexer) badEscape(start Mark, inTemplate bool) {
	if inTemplate {
		return
	}
	lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(start), "invalid escape sequence")
}

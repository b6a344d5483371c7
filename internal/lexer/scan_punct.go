package lexer

import (
	"jsxstream/internal/diag"
	"jsxstream/internal/token"
)

// операторы, отсортированные по убыванию длины внутри каждого первого байта
var punctTable = map[byte][]struct {
	text string
	kind token.Kind
}{
	'{': {{"{", token.LBrace}},
	'}': {{"}", token.RBrace}},
	'(': {{"(", token.LParen}},
	')': {{")", token.RParen}},
	'[': {{"[", token.LBracket}},
	']': {{"]", token.RBracket}},
	';': {{";", token.Semicolon}},
	',': {{",", token.Comma}},
	':': {{":", token.Colon}},
	'~': {{"~", token.Tilde}},
	'@': {{"@", token.At}},
	'#': {{"#", token.Hash}},
	'.': {{"...", token.DotDotDot}, {".", token.Dot}},
	'?': {{"??=", token.QuestionQuestionAssign}, {"??", token.QuestionQuestion}, {"?.", token.QuestionDot}, {"?", token.Question}},
	'=': {{"===", token.EqEqEq}, {"==", token.EqEq}, {"=>", token.Arrow}, {"=", token.Assign}},
	'!': {{"!==", token.BangEqEq}, {"!=", token.BangEq}, {"!", token.Bang}},
	'<': {{"<<=", token.ShlAssign}, {"<<", token.Shl}, {"<=", token.LtEq}, {"<", token.Lt}},
	'>': {{">>>=", token.UShrAssign}, {">>>", token.UShr}, {">>=", token.ShrAssign}, {">>", token.Shr}, {">=", token.GtEq}, {">", token.Gt}},
	'+': {{"++", token.PlusPlus}, {"+=", token.PlusAssign}, {"+", token.Plus}},
	'-': {{"--", token.MinusMinus}, {"-=", token.MinusAssign}, {"-", token.Minus}},
	'*': {{"**=", token.StarStarAssign}, {"**", token.StarStar}, {"*=", token.StarAssign}, {"*", token.Star}},
	'/': {{"/=", token.SlashAssign}, {"/", token.Slash}},
	'%': {{"%=", token.PercentAssign}, {"%", token.Percent}},
	'&': {{"&&=", token.AndAndAssign}, {"&&", token.AndAnd}, {"&=", token.AmpAssign}, {"&", token.Amp}},
	'|': {{"||=", token.OrOrAssign}, {"||", token.OrOr}, {"|=", token.PipeAssign}, {"|", token.Pipe}},
	'^': {{"^=", token.CaretAssign}, {"^", token.Caret}},
}

// scanPunct выбирает самый длинный оператор. "?." перед цифрой — это
// тернарник с дробным числом (a?.5:b), а не optional chaining.
func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	ch := lx.cursor.Peek()
	for _, cand := range punctTable[ch] {
		if cand.kind == token.QuestionDot && isDec(lx.cursor.PeekAt(2)) {
			continue
		}
		if lx.cursor.EatString(cand.text) {
			return token.Token{Kind: cand.kind, Span: lx.cursor.SpanFrom(start), Text: cand.text}
		}
	}
	lx.bumpRune()
	sp := lx.cursor.SpanFrom(start)
	text := lx.cursor.TextFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, "unexpected character "+quoteText(text))
	return token.Token{Kind: token.Invalid, Span: sp, Text: text}
}

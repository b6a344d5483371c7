package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"jsxstream/internal/diag"
	"jsxstream/internal/lexer"
	"jsxstream/internal/source"
	"jsxstream/internal/token"
)

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.jsx", []byte(input))
	bag := diag.NewBag(20)
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx, bag
}

// collectAllTokens собирает все токены до EOF в обычном режиме
func collectAllTokens(lx *lexer.Lexer) []token.Token {
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}

func kinds(tokens []token.Token) string {
	parts := make([]string, 0, len(tokens))
	for _, t := range tokens {
		parts = append(parts, t.Kind.String())
	}
	return strings.Join(parts, " ")
}

func messages(bag *diag.Bag) []string {
	out := make([]string, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, fmt.Sprintf("%s: %s", d.Code.ID(), d.Message))
	}
	return out
}

func TestPunctuationLongestMatch(t *testing.T) {
	lx, bag := makeTestLexer("a >>>= b ?? c ?. d ... => === !== **= &&= ||= ??=")
	got := kinds(collectAllTokens(lx))
	want := "Ident >>>= Ident ?? Ident ?. Ident ... => === !== **= &&= ||= ??= EOF"
	if got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", messages(bag))
	}
}

func TestOptionalChainBeforeDigitIsTernary(t *testing.T) {
	lx, _ := makeTestLexer("a?.5:b")
	got := kinds(collectAllTokens(lx))
	if got != "Ident ? Number : Ident EOF" {
		t.Fatalf("got %s", got)
	}
}

func TestKeywordsAndContextualWords(t *testing.T) {
	lx, _ := makeTestLexer("export async function let await of \\u0066or")
	toks := collectAllTokens(lx)
	want := []token.Kind{token.KwExport, token.Ident, token.KwFunction, token.Ident, token.Ident, token.Ident, token.Ident, token.EOF}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Fatalf("token %d: got %s, want %s", i, toks[i].Kind, k)
		}
	}
	// эскейп не делает слово ключевым
	if toks[6].Value != "for" || toks[6].Text != "\\u0066or" {
		t.Fatalf("escaped ident: %+v", toks[6])
	}
	if !toks[1].Is("async") {
		t.Fatalf("contextual keyword check failed")
	}
}

func TestNumbers(t *testing.T) {
	cases := []struct {
		in   string
		kind token.Kind
	}{
		{"0", token.Number},
		{"1_000", token.Number},
		{".5", token.Number},
		{"1.5e-3", token.Number},
		{"0x1F", token.Number},
		{"0o17", token.Number},
		{"0b101", token.Number},
		{"10n", token.BigInt},
		{"0xFFn", token.BigInt},
	}
	for _, tc := range cases {
		lx, bag := makeTestLexer(tc.in)
		tok := lx.Next()
		if tok.Kind != tc.kind || tok.Text != tc.in {
			t.Errorf("%q: got %s %q", tc.in, tok.Kind, tok.Text)
		}
		if bag.Len() != 0 {
			t.Errorf("%q: unexpected diagnostics %v", tc.in, messages(bag))
		}
	}
}

func TestBadNumbers(t *testing.T) {
	for _, in := range []string{"1e", "3in", "1.5n"} {
		lx, bag := makeTestLexer(in)
		collectAllTokens(lx)
		if bag.Len() == 0 || bag.Items()[0].Code != diag.LexBadNumber {
			t.Errorf("%q: expected LexBadNumber, got %v", in, messages(bag))
		}
	}
}

func TestStringEscapes(t *testing.T) {
	lx, bag := makeTestLexer(`'a\'b' "\x41B\u{43}\n" "😀" "line\
cont"`)
	toks := collectAllTokens(lx)
	wantValues := []string{"a'b", "ABC\n", "\U0001F600", "linecont"}
	for i, want := range wantValues {
		if toks[i].Kind != token.String || toks[i].Value != want {
			t.Errorf("token %d: got %s %q, want %q", i, toks[i].Kind, toks[i].Value, want)
		}
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", messages(bag))
	}
}

func TestUnterminatedString(t *testing.T) {
	lx, bag := makeTestLexer("'abc\nx")
	toks := collectAllTokens(lx)
	if toks[0].Kind != token.String || toks[1].Kind != token.Ident {
		t.Fatalf("unexpected tokens: %s", kinds(toks))
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexUnterminatedString {
		t.Fatalf("expected LexUnterminatedString, got %v", messages(bag))
	}
}

func TestTemplateContinuation(t *testing.T) {
	lx, bag := makeTestLexer("`a${x}b${y}c`")
	head := lx.Next()
	if head.Kind != token.TemplateHead || head.Value != "a" {
		t.Fatalf("head: %+v", head)
	}
	if lx.Next().Kind != token.Ident {
		t.Fatalf("expected ident")
	}
	rb := lx.Next()
	mid := lx.RescanTemplateContinuation(rb)
	if mid.Kind != token.TemplateMiddle || mid.Value != "b" || mid.Text != "}b${" {
		t.Fatalf("middle: %+v", mid)
	}
	lx.Next()
	tail := lx.RescanTemplateContinuation(lx.Next())
	if tail.Kind != token.TemplateTail || tail.Value != "c" {
		t.Fatalf("tail: %+v", tail)
	}
	if lx.Next().Kind != token.EOF || bag.Len() != 0 {
		t.Fatalf("expected clean EOF, diagnostics %v", messages(bag))
	}
}

func TestTemplateCookedEscapes(t *testing.T) {
	lx, _ := makeTestLexer("`\\`\\n\\${x}`")
	tok := lx.Next()
	if tok.Kind != token.NoSubstitutionTemplate || tok.Value != "`\n${x}" {
		t.Fatalf("got %s %q", tok.Kind, tok.Value)
	}
}

func TestRescanRegExp(t *testing.T) {
	lx, bag := makeTestLexer(`/[/]\/x/gi.test(s)`)
	slash := lx.Next()
	if slash.Kind != token.Slash {
		t.Fatalf("expected slash, got %s", slash.Kind)
	}
	re := lx.RescanRegExp(slash)
	if re.Kind != token.RegExp || re.Text != `/[/]\/x/gi` {
		t.Fatalf("regexp: %+v", re)
	}
	if lx.Next().Kind != token.Dot || bag.Len() != 0 {
		t.Fatalf("unexpected continuation, diagnostics %v", messages(bag))
	}
}

func TestNewlineBeforeAndComments(t *testing.T) {
	lx, bag := makeTestLexer("a // c\n/* x */ b /* multi\nline */ c")
	toks := collectAllTokens(lx)
	if toks[0].NewlineBefore || !toks[1].NewlineBefore || !toks[2].NewlineBefore {
		t.Fatalf("NewlineBefore flags wrong: %+v", toks)
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", messages(bag))
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	lx, bag := makeTestLexer("a /* never closed")
	collectAllTokens(lx)
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexUnterminatedBlockComment {
		t.Fatalf("expected unterminated comment, got %v", messages(bag))
	}
}

func TestJSXModes(t *testing.T) {
	lx, bag := makeTestLexer(`<my-el data-x="a\b" on:click={f}>Hi, {name}!</my-el>`)
	if lx.Next().Kind != token.Lt {
		t.Fatalf("expected <")
	}
	var inside []string
	for {
		tok := lx.NextInsideJSX()
		inside = append(inside, tok.Kind.String()+":"+tok.Value)
		if tok.Kind == token.LBrace {
			break
		}
	}
	want := `Ident:my-el Ident:data-x =: String:a\b Ident:on :: Ident:click =: {:`
	if got := strings.Join(inside, " "); got != want {
		t.Fatalf("inside tag:\n got  %s\n want %s", got, want)
	}
	if lx.Next().Text != "f" || lx.Next().Kind != token.RBrace {
		t.Fatalf("expression container not scanned in regular mode")
	}
	if lx.NextInsideJSX().Kind != token.Gt {
		t.Fatalf("expected > closing the opening tag")
	}
	text := lx.NextJSXChild()
	if text.Kind != token.JSXText || text.Value != "Hi, " {
		t.Fatalf("child text: %+v", text)
	}
	if lx.NextJSXChild().Kind != token.LBrace {
		t.Fatalf("expected { child")
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", messages(bag))
	}
}

func TestTokenizeHeuristics(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.js", []byte("x = a / b; y = /re/g; z = `t${ {a:1}.a }u`"))
	toks := lexer.Tokenize(fs.Get(id), lexer.Options{})
	got := kinds(toks)
	want := "Ident = Ident / Ident ; Ident = RegExp ; Ident = TemplateHead { Ident : Number } . Ident TemplateTail EOF"
	if got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}
}

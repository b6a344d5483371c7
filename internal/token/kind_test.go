package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	for word, want := range keywords {
		got, ok := LookupKeyword(word)
		if !ok || got != want {
			t.Errorf("LookupKeyword(%q) = %v,%v", word, got, ok)
		}
		if !(Token{Kind: got}).IsKeyword() {
			t.Errorf("%q is outside the KwBreak..KwWith range", word)
		}
	}
	for _, word := range []string{"async", "await", "let", "of", "as", "from", "type"} {
		if k, ok := LookupKeyword(word); ok || k != Ident {
			t.Errorf("contextual word %q must lex as Ident, got %v", word, k)
		}
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		Arrow:    "=>",
		UShr:     ">>>",
		KwReturn: "return",
		JSXText:  "JSXText",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", k, got, want)
		}
	}
	if !PlusAssign.IsAssign() || Plus.IsAssign() {
		t.Fatal("IsAssign misclassifies operators")
	}
}

func TestContextualIs(t *testing.T) {
	tok := Token{Kind: Ident, Text: "async"}
	if !tok.Is("async") || tok.Is("await") {
		t.Fatal("Is must compare identifier text")
	}
	kw := Token{Kind: KwDefault, Text: "default"}
	if kw.Is("default") || !kw.IsIdentName() {
		t.Fatal("reserved words are identifier names but not contextual idents")
	}
}

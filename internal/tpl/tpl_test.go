package tpl

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"jsxstream/internal/ast"
	"jsxstream/internal/format"
)

func TestBuilderAlternates(t *testing.T) {
	var b Builder
	b.AppendQuasi("<div>")
	b.AppendQuasi("hi ")
	b.AppendExpr(ast.Ident("a"))
	b.AppendExpr(ast.Ident("b"))
	b.AppendQuasi("</div>")
	got := b.Build()

	want := Template{
		Quasis: []string{"<div>hi ", "", "</div>"},
		Exprs:  []ast.Expr{ast.Ident("a"), ast.Ident("b")},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("template mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilderInlinesLiterals(t *testing.T) {
	var b Builder
	b.AppendQuasi("n=")
	b.AppendExpr(ast.Expr{Data: &ast.ENumber{Value: 3}})
	b.AppendExpr(ast.Str(" s"))
	b.AppendExpr(ast.Expr{Data: &ast.EBoolean{Value: true}})
	b.AppendExpr(ast.Expr{Data: &ast.ENull{}})
	got := b.Build()
	if !got.IsStatic() || got.Text() != "n=3 struenull" {
		t.Fatalf("expected a single literal run, got %#v", got)
	}
	if s, ok := got.StringOrTemplate().Data.(*ast.EString); !ok || s.Value != "n=3 struenull" {
		t.Fatalf("static template must become a string literal")
	}
}

func TestBuilderFlattensTemplates(t *testing.T) {
	inner := ast.Expr{Data: &ast.ETemplate{
		Quasis: []ast.TemplateQuasi{{Cooked: "a"}, {Cooked: "b"}},
		Exprs:  []ast.Expr{ast.Ident("x")},
	}}
	var b Builder
	b.AppendExpr(ast.Ident("first"))
	b.AppendExpr(inner)
	b.AppendTemplate(Template{Quasis: []string{"c", "d"}, Exprs: []ast.Expr{ast.Ident("y")}})
	got := b.Build()

	want := Template{
		Quasis: []string{"", "a", "bc", "d"},
		Exprs:  []ast.Expr{ast.Ident("first"), ast.Ident("x"), ast.Ident("y")},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("template mismatch (-want +got):\n%s", diff)
	}
	if len(got.Quasis) != len(got.Exprs)+1 {
		t.Fatalf("quasis/exprs invariant broken")
	}
}

func TestTaggedTemplateIsAnExpression(t *testing.T) {
	tagged := ast.Expr{Data: &ast.ETemplate{
		TagOrNil: ast.Ident("css"),
		Quasis:   []ast.TemplateQuasi{{Cooked: "x"}},
	}}
	var b Builder
	b.AppendExpr(tagged)
	got := b.Build()
	if len(got.Exprs) != 1 || len(got.Quasis) != 2 {
		t.Fatalf("tagged template must stay a slot, got %#v", got)
	}
}

func TestEmptyBuilder(t *testing.T) {
	var b Builder
	got := b.Build()
	if len(got.Quasis) != 1 || got.Quasis[0] != "" || len(got.Exprs) != 0 {
		t.Fatalf("empty builder must yield one empty run, got %#v", got)
	}
}

func TestTemplateExprEscapes(t *testing.T) {
	tmpl := Template{Quasis: []string{"a`", "${}"}, Exprs: []ast.Expr{ast.Ident("v")}}
	if got, want := format.Expr(tmpl.Expr()), "`a\\`${v}\\${}`"; got != want {
		t.Fatalf("printed %q, want %q", got, want)
	}
}

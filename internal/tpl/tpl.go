// Package tpl accumulates literal runs and expression slots into a
// normalized template literal.
package tpl

import (
	"strings"

	"jsxstream/internal/ast"
	"jsxstream/internal/format"
)

// Template alternates literal runs and expressions, starting and ending with
// a literal run: len(Quasis) == len(Exprs)+1. Quasis hold cooked text.
type Template struct {
	Quasis []string
	Exprs  []ast.Expr
}

// IsStatic reports a template without expression slots.
func (t Template) IsStatic() bool {
	return len(t.Exprs) == 0
}

// Text joins the literal runs; meaningful for static templates.
func (t Template) Text() string {
	return strings.Join(t.Quasis, "")
}

// Expr converts t into a template literal node.
func (t Template) Expr() ast.Expr {
	quasis := make([]ast.TemplateQuasi, len(t.Quasis))
	for i, q := range t.Quasis {
		quasis[i] = ast.TemplateQuasi{Cooked: q}
	}
	return ast.Expr{Data: &ast.ETemplate{Quasis: quasis, Exprs: t.Exprs}}
}

// StringOrTemplate is a string literal for static templates and a template
// literal otherwise.
func (t Template) StringOrTemplate() ast.Expr {
	if t.IsStatic() {
		return ast.Str(t.Text())
	}
	return t.Expr()
}

// Builder never produces two consecutive literal runs or two consecutive
// expressions. The zero value is ready to use.
type Builder struct {
	quasis []string
	exprs  []ast.Expr
	// exprNext: последним добавлен литерал, следующим ждём выражение
	exprNext bool
}

// AppendQuasi appends literal text, merging it into a preceding run.
func (b *Builder) AppendQuasi(s string) {
	if b.exprNext {
		b.quasis[len(b.quasis)-1] += s
		return
	}
	b.quasis = append(b.quasis, s)
	b.exprNext = true
}

// AppendExpr appends an expression slot. Primitive literals are inlined as
// text and untagged template literals are flattened.
func (b *Builder) AppendExpr(e ast.Expr) {
	if text, ok := Literal(e); ok {
		b.AppendQuasi(text)
		return
	}
	if t, ok := e.Data.(*ast.ETemplate); ok && t.TagOrNil.Data == nil {
		b.appendTemplateNode(t)
		return
	}
	if !b.exprNext {
		b.quasis = append(b.quasis, "")
	}
	b.exprs = append(b.exprs, e)
	b.exprNext = false
}

// AppendTemplate flattens another template into b.
func (b *Builder) AppendTemplate(t Template) {
	for i, q := range t.Quasis {
		b.AppendQuasi(q)
		if i < len(t.Exprs) {
			b.AppendExpr(t.Exprs[i])
		}
	}
}

func (b *Builder) appendTemplateNode(t *ast.ETemplate) {
	for i, q := range t.Quasis {
		b.AppendQuasi(q.Cooked)
		if i < len(t.Exprs) {
			b.AppendExpr(t.Exprs[i])
		}
	}
}

// Build returns the template, closing it with an empty literal run when
// the last piece was an expression.
func (b *Builder) Build() Template {
	quasis := b.quasis
	if !b.exprNext {
		quasis = append(quasis, "")
	}
	return Template{Quasis: quasis, Exprs: b.exprs}
}

// Literal returns the text a primitive literal contributes to markup.
// Regular expressions are not inlined.
func Literal(e ast.Expr) (string, bool) {
	switch d := e.Data.(type) {
	case *ast.EString:
		return d.Value, true
	case *ast.ENumber:
		return format.NumberString(d.Value), true
	case *ast.EBigInt:
		return d.Value, true
	case *ast.EBoolean:
		if d.Value {
			return "true", true
		}
		return "false", true
	case *ast.ENull:
		return "null", true
	}
	return "", false
}

package format

import (
	"strings"

	"jsxstream/internal/ast"
)

// printJSXElement печатает JSX обратно в исходном виде (команда parse,
// отладочный вывод); после понижения JSX в программе не остаётся.
func (p *printer) printJSXElement(el *ast.EJSXElement) {
	p.w.Token("<")
	if !el.IsFragment() {
		p.printJSXTag(el.TagOrNil)
		for _, attr := range el.Attrs {
			p.w.WriteString(" ")
			p.printJSXAttr(attr)
		}
	}
	if el.SelfClosing {
		p.w.Token("/>")
		return
	}
	p.w.Token(">")
	for _, child := range el.Children {
		p.printExpr(child, ast.LLowest)
	}
	p.w.Token("</")
	if !el.IsFragment() {
		p.printJSXTag(el.TagOrNil)
	}
	p.w.Token(">")
}

func (p *printer) printJSXTag(tag ast.Expr) {
	if path, ok := ast.MemberPath(tag); ok {
		p.w.WriteString(path)
		return
	}
	p.printExpr(tag, ast.LLowest)
}

func (p *printer) printJSXAttr(attr ast.JSXAttr) {
	if attr.IsSpread {
		p.w.Token("{")
		p.w.Token("...")
		p.printExpr(attr.Spread, ast.LComma)
		p.w.Token("}")
		return
	}
	p.w.WriteString(attr.Name.String())
	if attr.ValueOrNil.Data == nil {
		return
	}
	p.w.Token("=")
	if s, ok := attr.ValueOrNil.Data.(*ast.EString); ok && s.Raw == "" {
		// строка атрибута печатается как есть, без эскейпов
		quote := `"`
		if strings.Contains(s.Value, `"`) {
			quote = `'`
		}
		p.w.WriteString(quote + s.Value + quote)
		return
	}
	p.printExpr(attr.ValueOrNil, ast.LLowest)
}

package parser

import (
	"jsxstream/internal/ast"
	"jsxstream/internal/diag"
	"jsxstream/internal/token"
)

// jsxAfter — в каком режиме сканировать токен после закрывающего '>'.
type jsxAfter uint8

const (
	jsxAfterExpr  jsxAfter = iota // обычный JS
	jsxAfterChild                 // содержимое родительского элемента
	jsxAfterAttr                  // внутри тега родителя (элемент как значение атрибута)
)

// parseJSXElement разбирает элемент или фрагмент; p.tok стоит на '<'.
func (p *Parser) parseJSXElement(after jsxAfter) ast.Expr {
	start := p.start()
	p.nextInsideJSX()
	return p.parseJSXElementAfterLt(start, after)
}

// parseJSXElementAfterLt продолжает разбор, когда '<' уже съеден и
// p.tok — первый токен внутри тега.
func (p *Parser) parseJSXElementAfterLt(start uint32, after jsxAfter) ast.Expr {
	el := &ast.EJSXElement{}
	if !p.at(token.Gt) {
		el.TagOrNil = p.parseJSXTagName()
		for !p.at(token.Gt) && !p.at(token.Slash) {
			if p.at(token.EOF) {
				p.errf(diag.SynJSXUnterminated, "unterminated JSX element")
			}
			el.Attrs = append(el.Attrs, p.parseJSXAttr())
		}
		if p.at(token.Slash) {
			p.nextInsideJSX()
			if !p.at(token.Gt) {
				p.errf(diag.SynUnexpectedToken, "expected \">\" but found %s", p.describe())
			}
			el.SelfClosing = true
			p.finishJSX(after)
			return ast.Expr{Data: el, Span: p.spanFrom(start)}
		}
	}

	p.nextJSXChild()
	for {
		switch p.tok.Kind {
		case token.EOF:
			p.errAt(diag.SynJSXUnterminated, p.spanFrom(start), "unterminated JSX element <%s>", jsxTagName(el))

		case token.JSXText:
			el.Children = append(el.Children, ast.Expr{Data: &ast.EJSXText{Raw: p.tok.Text}, Span: p.tok.Span})
			p.nextJSXChild()

		case token.LBrace:
			el.Children = append(el.Children, p.parseJSXChildContainer())

		case token.Lt:
			ltStart := p.start()
			p.nextInsideJSX()
			if !p.at(token.Slash) {
				el.Children = append(el.Children, p.parseJSXElementAfterLt(ltStart, jsxAfterChild))
				continue
			}
			p.nextInsideJSX()
			closing := ""
			if !p.at(token.Gt) {
				closing = jsxNameString(p.parseJSXTagName())
			}
			if opening := jsxTagName(el); closing != opening {
				p.errAt(diag.SynJSXTagMismatch, p.spanFrom(ltStart),
					"expected closing tag </%s> but found </%s>", opening, closing)
			}
			if !p.at(token.Gt) {
				p.errf(diag.SynUnexpectedToken, "expected \">\" but found %s", p.describe())
			}
			p.finishJSX(after)
			return ast.Expr{Data: el, Span: p.spanFrom(start)}

		default:
			p.errf(diag.SynUnexpectedToken, "unexpected %s in JSX", p.describe())
		}
	}
}

// finishJSX съедает закрывающий '>' и сканирует следующий токен
// в режиме, который нужен окружению элемента.
func (p *Parser) finishJSX(after jsxAfter) {
	switch after {
	case jsxAfterChild:
		p.nextJSXChild()
	case jsxAfterAttr:
		p.nextInsideJSX()
	default:
		p.next()
	}
}

// parseJSXTagName: div, my-el, Foo.Bar.Baz или svg:rect.
func (p *Parser) parseJSXTagName() ast.Expr {
	start := p.start()
	if !p.at(token.Ident) {
		p.errf(diag.SynExpectIdentifier, "expected JSX tag name but found %s", p.describe())
	}
	name := p.tok.Text
	p.nextInsideJSX()
	if p.at(token.Colon) {
		p.nextInsideJSX()
		if !p.at(token.Ident) {
			p.errf(diag.SynExpectIdentifier, "expected identifier but found %s", p.describe())
		}
		local := p.tok.Text
		p.nextInsideJSX()
		return ast.Expr{Data: &ast.EJSXNamespacedName{Namespace: name, Name: local}, Span: p.spanFrom(start)}
	}
	tag := ast.Expr{Data: &ast.EIdentifier{Name: name}, Span: p.spanFrom(start)}
	for p.at(token.Dot) {
		p.nextInsideJSX()
		if !p.at(token.Ident) {
			p.errf(diag.SynExpectIdentifier, "expected identifier but found %s", p.describe())
		}
		tag = ast.Expr{Data: &ast.EDot{Target: tag, Name: p.tok.Text}, Span: tag.Span}
		p.nextInsideJSX()
		tag.Span = p.spanFrom(start)
	}
	return tag
}

func (p *Parser) parseJSXAttr() ast.JSXAttr {
	start := p.start()
	if p.at(token.LBrace) {
		p.next()
		if !p.eat(token.DotDotDot) {
			p.errf(diag.SynUnexpectedToken, "expected \"...\" but found %s", p.describe())
		}
		value := p.parseNestedExpr(ast.LComma)
		if !p.at(token.RBrace) {
			p.errf(diag.SynUnclosedBrace, "expected \"}\" but found %s", p.describe())
		}
		p.nextInsideJSX()
		return ast.JSXAttr{IsSpread: true, Spread: value, Span: p.spanFrom(start)}
	}

	if !p.at(token.Ident) {
		p.errf(diag.SynExpectIdentifier, "expected attribute name but found %s", p.describe())
	}
	attr := ast.JSXAttr{Name: ast.JSXName{Name: p.tok.Text}}
	p.nextInsideJSX()
	if p.at(token.Colon) {
		p.nextInsideJSX()
		if !p.at(token.Ident) {
			p.errf(diag.SynExpectIdentifier, "expected identifier but found %s", p.describe())
		}
		attr.Name = ast.JSXName{Namespace: attr.Name.Name, Name: p.tok.Text}
		p.nextInsideJSX()
	}

	if p.at(token.Assign) {
		p.nextInsideJSX()
		valueStart := p.start()
		switch p.tok.Kind {
		case token.String:
			// строки атрибутов без эскейпов: Value — текст между кавычками
			attr.ValueOrNil = ast.Expr{Data: &ast.EString{Value: p.tok.Value}, Span: p.tok.Span}
			p.nextInsideJSX()
		case token.LBrace:
			p.next()
			var value ast.Expr
			if !p.at(token.RBrace) {
				value = p.parseNestedExpr(ast.LLowest)
			}
			if !p.at(token.RBrace) {
				p.errf(diag.SynUnclosedBrace, "expected \"}\" but found %s", p.describe())
			}
			p.nextInsideJSX()
			attr.ValueOrNil = ast.Expr{Data: &ast.EJSXExprContainer{ExprOrNil: value}, Span: p.spanFrom(valueStart)}
		case token.Lt:
			attr.ValueOrNil = p.parseJSXElement(jsxAfterAttr)
		default:
			p.errf(diag.SynUnexpectedToken, "expected attribute value but found %s", p.describe())
		}
	}
	attr.Span = p.spanFrom(start)
	return attr
}

// parseJSXChildContainer: {expr}, {} / {/* comment */} или {...spread};
// p.tok стоит на '{' в режиме содержимого.
func (p *Parser) parseJSXChildContainer() ast.Expr {
	start := p.start()
	p.next()
	var child ast.E
	switch {
	case p.at(token.RBrace):
		child = &ast.EJSXExprContainer{}
	case p.eat(token.DotDotDot):
		child = &ast.EJSXSpreadChild{Value: p.parseNestedExpr(ast.LComma)}
	default:
		child = &ast.EJSXExprContainer{ExprOrNil: p.parseNestedExpr(ast.LLowest)}
	}
	if !p.at(token.RBrace) {
		p.errf(diag.SynUnclosedBrace, "expected \"}\" but found %s", p.describe())
	}
	p.nextJSXChild()
	return ast.Expr{Data: child, Span: p.spanFrom(start)}
}

func jsxTagName(el *ast.EJSXElement) string {
	if el.TagOrNil.Data == nil {
		return ""
	}
	return jsxNameString(el.TagOrNil)
}

func jsxNameString(tag ast.Expr) string {
	switch d := tag.Data.(type) {
	case *ast.EJSXNamespacedName:
		return d.Namespace + ":" + d.Name
	case *ast.EIdentifier:
		return d.Name
	case *ast.EDot:
		return jsxNameString(d.Target) + "." + d.Name
	}
	return ""
}

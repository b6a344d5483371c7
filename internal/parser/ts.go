package parser

import (
	"jsxstream/internal/ast"
	"jsxstream/internal/diag"
	"jsxstream/internal/token"
)

// Типы TypeScript не попадают в дерево: парсер только пропускает их.
// Пропуск структурный (скобки, объединения, стрелки), без проверки смысла.

// typePrefixWords — слова, после которых идёт ещё один тип.
var typePrefixWords = map[string]bool{
	"keyof": true, "unique": true, "infer": true, "readonly": true, "asserts": true, "abstract": true,
}

func (p *Parser) skipType() {
	p.skipUnionType()
	// условный тип: A extends B ? C : D
	if p.at(token.KwExtends) && !p.tok.NewlineBefore {
		p.next()
		p.skipUnionType()
		p.expect(token.Question)
		p.skipType()
		p.expect(token.Colon)
		p.skipType()
	}
}

// skipReturnType допускает предикаты `x is T` и `asserts x`.
func (p *Parser) skipReturnType() {
	p.skipType()
}

func (p *Parser) skipUnionType() {
	p.eat(token.Pipe)
	p.eat(token.Amp)
	for {
		p.skipPostfixType()
		if !p.eat(token.Pipe) && !p.eat(token.Amp) {
			return
		}
	}
}

func (p *Parser) skipPostfixType() {
	p.skipPrimaryType()
	for p.at(token.LBracket) && !p.tok.NewlineBefore {
		p.skipBalanced()
	}
	// предикат типа: x is T
	if p.atWord("is") && !p.tok.NewlineBefore {
		p.next()
		p.skipType()
	}
}

func (p *Parser) skipPrimaryType() {
	switch p.tok.Kind {
	case token.LParen:
		// (A | B) или (a: T) => R — скобки пропускаем целиком
		p.skipBalanced()
		if p.eat(token.Arrow) {
			p.skipType()
		}
		return

	case token.Lt:
		// <T>(a: T) => R
		p.skipTypeParams()
		if !p.at(token.LParen) {
			p.errf(diag.SynExpectType, "expected \"(\" but found %s", p.describe())
		}
		p.skipBalanced()
		p.expect(token.Arrow)
		p.skipType()
		return

	case token.LBrace, token.LBracket:
		p.skipBalanced()
		return

	case token.String, token.Number, token.BigInt, token.NoSubstitutionTemplate,
		token.KwTrue, token.KwFalse, token.KwNull, token.KwVoid, token.KwThis:
		p.next()
		return

	case token.TemplateHead:
		p.skipTemplateType()
		return

	case token.Minus:
		p.next()
		if !p.at(token.Number) && !p.at(token.BigInt) {
			p.errf(diag.SynExpectType, "expected number but found %s", p.describe())
		}
		p.next()
		return

	case token.KwNew:
		p.next()
		if p.at(token.Lt) {
			p.skipTypeParams()
		}
		p.skipBalanced()
		p.expect(token.Arrow)
		p.skipType()
		return

	case token.KwTypeof:
		p.next()
		if p.at(token.KwImport) {
			p.next()
			p.skipBalanced()
		} else {
			p.skipEntityName()
		}
		if p.at(token.Lt) && !p.tok.NewlineBefore {
			p.skipTypeArgs()
		}
		return

	case token.Ident:
		if typePrefixWords[p.tok.Text] && p.lookahead(func() bool {
			p.next()
			return !p.tok.NewlineBefore && startsType(p.tok)
		}) {
			word := p.tok.Text
			p.next()
			if word == "asserts" && p.tok.IsIdent() && p.lookahead(func() bool {
				p.next()
				return !p.atWord("is")
			}) {
				// asserts x
				p.next()
				return
			}
			p.skipPostfixType()
			if word == "infer" && p.at(token.KwExtends) && p.lookahead(func() bool {
				// infer U extends X ? ... — extends относится к условному типу
				p.next()
				p.skipUnionType()
				return !p.at(token.Question)
			}) {
				p.next()
				p.skipUnionType()
			}
			return
		}
	}

	if p.tok.IsIdentName() {
		p.skipEntityName()
		if p.at(token.Lt) && !p.tok.NewlineBefore {
			p.skipTypeArgs()
		}
		return
	}
	p.errf(diag.SynExpectType, "expected type but found %s", p.describe())
}

func startsType(tok token.Token) bool {
	switch tok.Kind {
	case token.Ident, token.LParen, token.LBracket, token.LBrace, token.String, token.Number,
		token.Lt, token.Minus, token.KwTypeof, token.KwNew, token.KwThis, token.KwVoid,
		token.KwNull, token.KwTrue, token.KwFalse, token.NoSubstitutionTemplate, token.TemplateHead:
		return true
	}
	return tok.IsKeyword()
}

// skipEntityName: a.b.c
func (p *Parser) skipEntityName() {
	if !p.tok.IsIdentName() {
		p.errf(diag.SynExpectType, "expected type name but found %s", p.describe())
	}
	p.next()
	for p.at(token.Dot) {
		p.next()
		if !p.tok.IsIdentName() {
			p.errf(diag.SynExpectIdentifier, "expected identifier but found %s", p.describe())
		}
		p.next()
	}
}

// skipTemplateType: `prefix-${T}-suffix`
func (p *Parser) skipTemplateType() {
	for {
		p.next()
		p.skipType()
		if !p.at(token.RBrace) {
			p.errf(diag.SynUnclosedBrace, "expected \"}\" but found %s", p.describe())
		}
		p.tok = p.lx.RescanTemplateContinuation(p.tok)
		if p.at(token.TemplateTail) {
			p.next()
			return
		}
	}
}

// skipTypeArgs: <A, B<C>>
func (p *Parser) skipTypeArgs() {
	p.expect(token.Lt)
	for !p.atGt() {
		p.skipType()
		if !p.eat(token.Comma) {
			break
		}
	}
	p.eatGt()
}

// skipTypeParams: <const T extends X = Y, U>
func (p *Parser) skipTypeParams() {
	p.expect(token.Lt)
	for !p.atGt() {
		for p.atWord("in") || p.atWord("out") || p.at(token.KwConst) || p.at(token.KwIn) {
			p.next()
		}
		if !p.tok.IsIdent() {
			p.errf(diag.SynExpectIdentifier, "expected type parameter but found %s", p.describe())
		}
		p.next()
		if p.eat(token.KwExtends) {
			p.skipType()
		}
		if p.eat(token.Assign) {
			p.skipType()
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.eatGt()
}

func (p *Parser) atGt() bool {
	switch p.tok.Kind {
	case token.Gt, token.Shr, token.UShr, token.GtEq, token.ShrAssign, token.UShrAssign:
		return true
	}
	return false
}

// eatGt съедает один '>' — при необходимости отрезая его от '>>', '>=' и т.п.
func (p *Parser) eatGt() {
	switch p.tok.Kind {
	case token.Gt:
		p.next()
	case token.Shr, token.UShr, token.GtEq, token.ShrAssign, token.UShrAssign:
		split := p.tok.Span.Start + 1
		p.lx.ResetTo(split)
		p.prevEnd = split
		p.tok = p.lx.Next()
	default:
		p.errf(diag.SynUnexpectedToken, "expected \">\" but found %s", p.describe())
	}
}

// skipBalanced пропускает группу от открывающей скобки до парной закрывающей.
// Подстановки ${...} в шаблонах пересканируются как продолжения шаблона.
func (p *Parser) skipBalanced() {
	var stack []token.Kind
	for {
		switch p.tok.Kind {
		case token.LParen, token.LBracket, token.LBrace:
			stack = append(stack, p.tok.Kind)
		case token.TemplateHead:
			stack = append(stack, token.TemplateHead)
		case token.RParen, token.RBracket, token.RBrace:
			if len(stack) == 0 {
				p.errf(diag.SynUnexpectedToken, "unexpected %s", p.describe())
			}
			top := stack[len(stack)-1]
			if top == token.TemplateHead && p.at(token.RBrace) {
				p.tok = p.lx.RescanTemplateContinuation(p.tok)
				if p.at(token.TemplateTail) {
					stack = stack[:len(stack)-1]
				}
				break
			}
			if closerOf(top) != p.tok.Kind {
				p.errf(diag.SynUnexpectedToken, "unexpected %s", p.describe())
			}
			stack = stack[:len(stack)-1]
		case token.EOF:
			p.errf(diag.SynUnclosedBrace, "unexpected end of file")
		}
		p.next()
		if len(stack) == 0 {
			return
		}
	}
}

func closerOf(open token.Kind) token.Kind {
	switch open {
	case token.LParen:
		return token.RParen
	case token.LBracket:
		return token.RBracket
	}
	return token.RBrace
}

// atTypeDeclaration распознаёт interface/type/declare/namespace на месте оператора.
func (p *Parser) atTypeDeclaration() bool {
	word := p.tok.Text
	return p.lookahead(func() bool {
		p.next()
		if p.tok.NewlineBefore && word != "declare" {
			return false
		}
		switch word {
		case "interface":
			return p.tok.IsIdent()
		case "type":
			if !p.tok.IsIdent() {
				return false
			}
			p.next()
			return p.at(token.Assign) || p.at(token.Lt)
		case "declare":
			return !p.tok.NewlineBefore && (p.tok.IsIdentName() || p.at(token.KwConst))
		case "namespace", "module":
			return p.tok.IsIdent() || p.at(token.String)
		}
		return false
	})
}

func (p *Parser) skipTypeDeclaration() {
	word := p.tok.Text
	p.next()
	switch word {
	case "interface":
		p.next()
		if p.at(token.Lt) {
			p.skipTypeParams()
		}
		if p.eat(token.KwExtends) {
			for {
				p.skipType()
				if !p.eat(token.Comma) {
					break
				}
			}
		}
		if !p.at(token.LBrace) {
			p.errf(diag.SynUnexpectedToken, "expected \"{\" but found %s", p.describe())
		}
		p.skipBalanced()

	case "type":
		p.next()
		if p.at(token.Lt) {
			p.skipTypeParams()
		}
		p.expect(token.Assign)
		p.skipType()
		p.semicolon()

	case "namespace", "module":
		p.skipEntityNameOrString()
		if !p.at(token.LBrace) {
			p.semicolon()
			return
		}
		p.skipBalanced()

	case "declare":
		p.skipDeclare()
	}
}

func (p *Parser) skipEntityNameOrString() {
	if p.at(token.String) {
		p.next()
		return
	}
	p.skipEntityName()
}

// skipDeclare пропускает всё, что следует за declare.
func (p *Parser) skipDeclare() {
	switch {
	case p.at(token.KwConst) || p.at(token.KwVar) || p.atWord("let"):
		p.next()
		if p.at(token.KwEnum) {
			p.next()
			p.next()
			p.skipBalanced()
			return
		}
		p.parseDecls(ast.LocalVar)
		p.semicolon()
	case p.at(token.KwFunction):
		p.parseFnStmt(p.start(), false, false)
	case p.atWord("async"):
		p.next()
		p.parseFnStmt(p.start(), true, false)
	case p.at(token.KwClass):
		p.parseClass(true)
	case p.atWord("abstract"):
		p.next()
		p.parseClass(true)
	case p.at(token.KwEnum):
		p.next()
		p.next()
		p.skipBalanced()
	case p.atWord("global"):
		p.next()
		p.skipBalanced()
	case p.atWord("namespace") || p.atWord("module") || p.atWord("interface") || p.atWord("type"):
		p.skipTypeDeclaration()
	default:
		p.errf(diag.SynUnexpectedToken, "unexpected %s after \"declare\"", p.describe())
	}
}

package parser

import (
	"jsxstream/internal/ast"
	"jsxstream/internal/diag"
	"jsxstream/internal/token"
)

// parseStmtsUpTo разбирает список операторов до end (не съедая его).
// directives — разрешён пролог "use strict"; topLevel — разрешены import/export.
func (p *Parser) parseStmtsUpTo(end token.Kind, directives, topLevel bool) []ast.Stmt {
	var stmts []ast.Stmt
	prologue := directives
	for !p.at(end) {
		if p.at(token.EOF) {
			p.errf(diag.SynUnclosedBrace, "expected \"}\" but found end of file")
		}
		if prologue {
			if st, ok := p.parseDirective(); ok {
				stmts = append(stmts, st)
				continue
			}
			prologue = false
		}
		stmts = append(stmts, p.parseStmt(topLevel))
	}
	return stmts
}

// parseDirective распознаёт "use strict"; и подобные строки пролога.
func (p *Parser) parseDirective() (ast.Stmt, bool) {
	if !p.at(token.String) {
		return ast.Stmt{}, false
	}
	tok := p.tok
	isDirective := p.lookahead(func() bool {
		p.next()
		return p.at(token.Semicolon) || p.at(token.RBrace) || p.at(token.EOF) || p.tok.NewlineBefore && !continuesExpr(p.tok.Kind)
	})
	if !isDirective {
		return ast.Stmt{}, false
	}
	p.next()
	p.semicolon()
	return ast.Stmt{Data: &ast.SDirective{Raw: tok.Text}, Span: p.spanFrom(tok.Span.Start)}, true
}

// continuesExpr: токен после перевода строки продолжает выражение.
func continuesExpr(k token.Kind) bool {
	switch k {
	case token.Dot, token.QuestionDot, token.LParen, token.LBracket, token.Comma, token.Question,
		token.Plus, token.Minus, token.Star, token.Slash, token.Percent, token.StarStar,
		token.AndAnd, token.OrOr, token.QuestionQuestion, token.Amp, token.Pipe, token.Caret,
		token.EqEq, token.EqEqEq, token.BangEq, token.BangEqEq, token.Lt, token.Gt, token.LtEq, token.GtEq,
		token.TemplateHead, token.NoSubstitutionTemplate:
		return true
	}
	return k.IsAssign()
}

func (p *Parser) parseStmt(topLevel bool) ast.Stmt {
	start := p.start()
	switch p.tok.Kind {
	case token.Semicolon:
		p.next()
		return ast.Stmt{Data: &ast.SEmpty{}, Span: p.spanFrom(start)}

	case token.LBrace:
		block := p.parseBlock()
		return ast.Stmt{Data: block, Span: p.spanFrom(start)}

	case token.KwVar, token.KwConst:
		kind := ast.LocalVar
		if p.at(token.KwConst) {
			kind = ast.LocalConst
		}
		p.next()
		if kind == ast.LocalConst && p.at(token.KwEnum) {
			p.errf(diag.SynUnexpectedToken, "const enum declarations are not supported")
		}
		decls := p.parseDecls(kind)
		p.semicolon()
		return ast.Stmt{Data: &ast.SLocal{Decls: decls, Kind: kind}, Span: p.spanFrom(start)}

	case token.KwFunction:
		return p.parseFnStmt(start, false, false)

	case token.KwClass:
		class := p.parseClass(true)
		return ast.Stmt{Data: &ast.SClass{Class: class}, Span: p.spanFrom(start)}

	case token.KwIf:
		p.next()
		p.expect(token.LParen)
		test := p.parseExpr(ast.LLowest)
		p.expect(token.RParen)
		yes := p.parseStmt(false)
		var no ast.Stmt
		if p.eat(token.KwElse) {
			no = p.parseStmt(false)
		}
		return ast.Stmt{Data: &ast.SIf{Test: test, Yes: yes, NoOrNil: no}, Span: p.spanFrom(start)}

	case token.KwFor:
		return p.parseFor(start)

	case token.KwWhile:
		p.next()
		p.expect(token.LParen)
		test := p.parseExpr(ast.LLowest)
		p.expect(token.RParen)
		body := p.parseStmt(false)
		return ast.Stmt{Data: &ast.SWhile{Test: test, Body: body}, Span: p.spanFrom(start)}

	case token.KwDo:
		p.next()
		body := p.parseStmt(false)
		p.expect(token.KwWhile)
		p.expect(token.LParen)
		test := p.parseExpr(ast.LLowest)
		p.expect(token.RParen)
		// после do-while ';' вставляется всегда
		p.eat(token.Semicolon)
		return ast.Stmt{Data: &ast.SDoWhile{Body: body, Test: test}, Span: p.spanFrom(start)}

	case token.KwReturn:
		p.next()
		var value ast.Expr
		if !p.at(token.Semicolon) && !p.at(token.RBrace) && !p.at(token.EOF) && !p.tok.NewlineBefore {
			value = p.parseExpr(ast.LLowest)
		}
		p.semicolon()
		return ast.Stmt{Data: &ast.SReturn{ValueOrNil: value}, Span: p.spanFrom(start)}

	case token.KwThrow:
		p.next()
		if p.tok.NewlineBefore {
			p.errf(diag.SynUnexpectedToken, "unexpected newline after \"throw\"")
		}
		value := p.parseExpr(ast.LLowest)
		p.semicolon()
		return ast.Stmt{Data: &ast.SThrow{Value: value}, Span: p.spanFrom(start)}

	case token.KwBreak, token.KwContinue:
		isBreak := p.at(token.KwBreak)
		p.next()
		label := ""
		if p.tok.IsIdent() && !p.tok.NewlineBefore {
			label = p.tok.Value
			p.next()
		}
		p.semicolon()
		if isBreak {
			return ast.Stmt{Data: &ast.SBreak{Label: label}, Span: p.spanFrom(start)}
		}
		return ast.Stmt{Data: &ast.SContinue{Label: label}, Span: p.spanFrom(start)}

	case token.KwTry:
		return p.parseTry(start)

	case token.KwSwitch:
		return p.parseSwitch(start)

	case token.KwWith:
		p.next()
		p.expect(token.LParen)
		value := p.parseExpr(ast.LLowest)
		p.expect(token.RParen)
		body := p.parseStmt(false)
		return ast.Stmt{Data: &ast.SWith{Value: value, Body: body}, Span: p.spanFrom(start)}

	case token.KwDebugger:
		p.next()
		p.semicolon()
		return ast.Stmt{Data: &ast.SDebugger{}, Span: p.spanFrom(start)}

	case token.KwImport:
		// import(...) и import.meta — выражения
		if p.lookahead(func() bool {
			p.next()
			return p.at(token.LParen) || p.at(token.Dot)
		}) {
			return p.parseExprStmt(start)
		}
		if !topLevel {
			p.errf(diag.SynModuleItemPosition, "import declarations may only appear at the top level of a module")
		}
		return p.parseImport(start)

	case token.KwExport:
		if !topLevel {
			p.errf(diag.SynModuleItemPosition, "export declarations may only appear at the top level of a module")
		}
		return p.parseExport(start)

	case token.KwEnum:
		p.errf(diag.SynUnexpectedToken, "enum declarations are not supported")

	case token.Ident:
		if st, ok := p.parseContextualStmt(start, topLevel); ok {
			return st
		}
	}
	return p.parseExprStmt(start)
}

// parseContextualStmt обрабатывает операторы, начинающиеся с контекстного
// слова: let, async function, interface, type, declare, abstract class, метки.
func (p *Parser) parseContextualStmt(start uint32, topLevel bool) (ast.Stmt, bool) {
	switch p.tok.Text {
	case "let":
		if p.lookahead(func() bool {
			p.next()
			return p.tok.IsIdent() || p.at(token.LBracket) || p.at(token.LBrace)
		}) {
			p.next()
			decls := p.parseDecls(ast.LocalLet)
			p.semicolon()
			return ast.Stmt{Data: &ast.SLocal{Decls: decls, Kind: ast.LocalLet}, Span: p.spanFrom(start)}, true
		}

	case "async":
		if p.lookahead(func() bool {
			p.next()
			return p.at(token.KwFunction) && !p.tok.NewlineBefore
		}) {
			p.next()
			return p.parseFnStmt(start, true, false), true
		}

	case "interface", "type", "declare", "namespace", "module":
		if p.atTypeDeclaration() {
			p.skipTypeDeclaration()
			return ast.Stmt{Data: &ast.STypeScript{}, Span: p.spanFrom(start)}, true
		}

	case "abstract":
		if p.lookahead(func() bool {
			p.next()
			return p.at(token.KwClass) && !p.tok.NewlineBefore
		}) {
			p.next()
			class := p.parseClass(true)
			return ast.Stmt{Data: &ast.SClass{Class: class}, Span: p.spanFrom(start)}, true
		}
	}

	// метка: ident ':'
	if p.lookahead(func() bool {
		p.next()
		return p.at(token.Colon)
	}) {
		name := p.tok.Value
		p.next()
		p.next()
		body := p.parseStmt(false)
		return ast.Stmt{Data: &ast.SLabel{Name: name, Stmt: body}, Span: p.spanFrom(start)}, true
	}
	return ast.Stmt{}, false
}

func (p *Parser) parseExprStmt(start uint32) ast.Stmt {
	value := p.parseExpr(ast.LLowest)
	p.semicolon()
	return ast.Stmt{Data: &ast.SExpr{Value: value}, Span: p.spanFrom(start)}
}

func (p *Parser) parseBlock() *ast.SBlock {
	p.expect(token.LBrace)
	stmts := p.parseStmtsUpTo(token.RBrace, false, false)
	p.expect(token.RBrace)
	return &ast.SBlock{Stmts: stmts}
}

// parseDecls разбирает список деклараторов после var/let/const.
func (p *Parser) parseDecls(kind ast.LocalKind) []ast.Decl {
	var decls []ast.Decl
	for {
		binding := p.parseBinding()
		// let x!: T
		if p.at(token.Bang) && !p.tok.NewlineBefore {
			p.next()
		}
		if p.eat(token.Colon) {
			p.skipType()
		}
		var value ast.Expr
		if p.eat(token.Assign) {
			value = p.parseExpr(ast.LComma)
		}
		decls = append(decls, ast.Decl{Binding: binding, ValueOrNil: value})
		if !p.eat(token.Comma) {
			break
		}
	}
	return decls
}

func (p *Parser) parseFor(start uint32) ast.Stmt {
	p.next()
	isAwait := false
	if p.atWord("await") && p.awaitIsKeyword() {
		isAwait = true
		p.next()
	}
	p.expect(token.LParen)

	var init ast.Stmt
	saved := p.ctx.noIn
	p.ctx.noIn = true
	initStart := p.start()
	switch {
	case p.at(token.Semicolon):
	case p.at(token.KwVar) || p.at(token.KwConst) || p.atWord("let") && p.lookahead(func() bool {
		p.next()
		return p.tok.IsIdent() || p.at(token.LBracket) || p.at(token.LBrace)
	}):
		kind := ast.LocalVar
		switch {
		case p.at(token.KwConst):
			kind = ast.LocalConst
		case p.atWord("let"):
			kind = ast.LocalLet
		}
		p.next()
		decls := p.parseDecls(kind)
		init = ast.Stmt{Data: &ast.SLocal{Decls: decls, Kind: kind}, Span: p.spanFrom(initStart)}
	default:
		value := p.parseExpr(ast.LLowest)
		init = ast.Stmt{Data: &ast.SExpr{Value: value}, Span: p.spanFrom(initStart)}
	}
	p.ctx.noIn = saved

	if init.Data != nil {
		if p.atWord("of") {
			p.next()
			value := p.parseExpr(ast.LComma)
			p.expect(token.RParen)
			body := p.parseStmt(false)
			return ast.Stmt{Data: &ast.SForOf{Init: init, Value: value, Body: body, IsAwait: isAwait}, Span: p.spanFrom(start)}
		}
		if p.eat(token.KwIn) {
			value := p.parseExpr(ast.LLowest)
			p.expect(token.RParen)
			body := p.parseStmt(false)
			return ast.Stmt{Data: &ast.SForIn{Init: init, Value: value, Body: body}, Span: p.spanFrom(start)}
		}
	}

	p.expect(token.Semicolon)
	var test, update ast.Expr
	if !p.at(token.Semicolon) {
		test = p.parseExpr(ast.LLowest)
	}
	p.expect(token.Semicolon)
	if !p.at(token.RParen) {
		update = p.parseExpr(ast.LLowest)
	}
	p.expect(token.RParen)
	body := p.parseStmt(false)
	return ast.Stmt{Data: &ast.SFor{InitOrNil: init, TestOrNil: test, UpdateOrNil: update, Body: body}, Span: p.spanFrom(start)}
}

func (p *Parser) parseTry(start uint32) ast.Stmt {
	p.next()
	block := p.parseBlock()
	var catch *ast.Catch
	var finally *ast.SBlock
	if p.eat(token.KwCatch) {
		catch = &ast.Catch{}
		if p.eat(token.LParen) {
			catch.BindingOrNil = p.parseBinding()
			if p.eat(token.Colon) {
				p.skipType()
			}
			p.expect(token.RParen)
		}
		catch.Block = *p.parseBlock()
	}
	if p.eat(token.KwFinally) {
		finally = p.parseBlock()
	}
	if catch == nil && finally == nil {
		p.errf(diag.SynUnexpectedToken, "expected \"catch\" or \"finally\" but found %s", p.describe())
	}
	return ast.Stmt{Data: &ast.STry{Block: *block, CatchOrNil: catch, FinallyOrNil: finally}, Span: p.spanFrom(start)}
}

func (p *Parser) parseSwitch(start uint32) ast.Stmt {
	p.next()
	p.expect(token.LParen)
	test := p.parseExpr(ast.LLowest)
	p.expect(token.RParen)
	p.expect(token.LBrace)
	var cases []ast.Case
	for !p.at(token.RBrace) {
		var c ast.Case
		switch {
		case p.eat(token.KwDefault):
		case p.eat(token.KwCase):
			c.ValueOrNil = p.parseExpr(ast.LLowest)
		default:
			p.errf(diag.SynUnexpectedToken, "expected \"case\" or \"default\" but found %s", p.describe())
		}
		p.expect(token.Colon)
		for !p.at(token.KwCase) && !p.at(token.KwDefault) && !p.at(token.RBrace) {
			if p.at(token.EOF) {
				p.errf(diag.SynUnclosedBrace, "expected \"}\" but found end of file")
			}
			c.Body = append(c.Body, p.parseStmt(false))
		}
		cases = append(cases, c)
	}
	p.next()
	return ast.Stmt{Data: &ast.SSwitch{Test: test, Cases: cases}, Span: p.spanFrom(start)}
}

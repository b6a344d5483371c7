package parser

import (
	"jsxstream/internal/ast"
	"jsxstream/internal/diag"
	"jsxstream/internal/token"
)

// parseFnStmt разбирает function-декларацию; p.tok стоит на 'function'.
// Перегрузка без тела (TypeScript) превращается в STypeScript.
func (p *Parser) parseFnStmt(start uint32, isAsync, isExport bool) ast.Stmt {
	p.expect(token.KwFunction)
	isGenerator := p.eat(token.Star)
	name := p.parseFnName(true)
	fn, hasBody := p.parseFnRest(name, isAsync, isGenerator)
	if !hasBody {
		return ast.Stmt{Data: &ast.STypeScript{}, Span: p.spanFrom(start)}
	}
	return ast.Stmt{Data: &ast.SFunction{Fn: fn, IsExport: isExport}, Span: p.spanFrom(start)}
}

func (p *Parser) parseFnName(required bool) *ast.LocName {
	if p.tok.IsIdent() {
		name := &ast.LocName{Name: p.tok.Value, Span: p.tok.Span}
		p.next()
		return name
	}
	if required {
		p.errf(diag.SynExpectIdentifier, "expected identifier but found %s", p.describe())
	}
	return nil
}

// parseFnRest разбирает <T>(args): R { body } после имени функции.
// hasBody=false для объявлений без тела (перегрузки, abstract, declare).
func (p *Parser) parseFnRest(name *ast.LocName, isAsync, isGenerator bool) (ast.Fn, bool) {
	fn := ast.Fn{Name: name, IsAsync: isAsync, IsGenerator: isGenerator}
	if p.at(token.Lt) {
		p.skipTypeParams()
	}
	p.withFn(isAsync, isGenerator, func() {
		fn.Args, fn.HasRestArg = p.parseFnArgs()
	})
	if p.eat(token.Colon) {
		p.skipReturnType()
	}
	if !p.at(token.LBrace) {
		p.semicolon()
		return fn, false
	}
	fn.Body = p.parseFnBody(isAsync, isGenerator)
	return fn, true
}

func (p *Parser) parseFnBody(isAsync, isGenerator bool) ast.FnBody {
	start := p.start()
	var stmts []ast.Stmt
	p.withFn(isAsync, isGenerator, func() {
		p.expect(token.LBrace)
		stmts = p.parseStmtsUpTo(token.RBrace, true, false)
		p.expect(token.RBrace)
	})
	return ast.FnBody{Stmts: stmts, Span: p.spanFrom(start)}
}

// parseFnArgs разбирает список параметров в скобках, срезая
// модификаторы доступа, this-параметр, '?' и аннотации типов.
func (p *Parser) parseFnArgs() (args []ast.Arg, hasRest bool) {
	p.expect(token.LParen)
	for !p.at(token.RParen) {
		if hasRest {
			p.errf(diag.SynUnexpectedToken, "a rest parameter must be last in a parameter list")
		}
		for p.at(token.At) {
			p.skipDecorator()
		}
		p.skipParamModifiers()

		// this: Foo — только тип, в JS не попадает
		if p.at(token.KwThis) {
			p.next()
			if p.eat(token.Colon) {
				p.skipType()
			}
			if !p.eat(token.Comma) {
				break
			}
			continue
		}

		if p.eat(token.DotDotDot) {
			hasRest = true
		}
		binding := p.parseBinding()
		p.eat(token.Question)
		if p.eat(token.Colon) {
			p.skipType()
		}
		var def ast.Expr
		if p.eat(token.Assign) {
			def = p.parseExpr(ast.LComma)
		}
		args = append(args, ast.Arg{Binding: binding, DefaultOrNil: def})
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RParen)
	return args, hasRest
}

var paramModifiers = map[string]bool{
	"public": true, "private": true, "protected": true, "readonly": true, "override": true,
}

func (p *Parser) skipParamModifiers() {
	for p.tok.Kind == token.Ident && paramModifiers[p.tok.Text] {
		if !p.lookahead(func() bool {
			p.next()
			return p.tok.IsIdent() || p.at(token.LBrace) || p.at(token.LBracket)
		}) {
			return
		}
		p.next()
	}
}

func (p *Parser) skipDecorator() {
	p.expect(token.At)
	p.parseExpr(ast.LNew)
}

// parseBinding разбирает идентификатор или деструктурирующий шаблон.
func (p *Parser) parseBinding() ast.Binding {
	start := p.start()
	switch p.tok.Kind {
	case token.Ident:
		name := p.tok.Value
		p.next()
		return ast.Binding{Data: &ast.BIdentifier{Name: name}, Span: p.spanFrom(start)}

	case token.LBracket:
		p.next()
		var items []ast.ArrayBinding
		hasSpread := false
		for !p.at(token.RBracket) {
			if p.at(token.Comma) {
				p.next()
				items = append(items, ast.ArrayBinding{Binding: ast.Binding{Data: &ast.BMissing{}, Span: p.spanFrom(p.prevEnd)}})
				continue
			}
			if p.eat(token.DotDotDot) {
				hasSpread = true
			}
			item := ast.ArrayBinding{Binding: p.parseBinding()}
			if !hasSpread && p.eat(token.Assign) {
				item.DefaultValueOrNil = p.parseExpr(ast.LComma)
			}
			items = append(items, item)
			if hasSpread || !p.eat(token.Comma) {
				break
			}
		}
		p.expect(token.RBracket)
		return ast.Binding{Data: &ast.BArray{Items: items, HasSpread: hasSpread}, Span: p.spanFrom(start)}

	case token.LBrace:
		p.next()
		var props []ast.PropertyBinding
		for !p.at(token.RBrace) {
			props = append(props, p.parsePropertyBinding())
			if !p.eat(token.Comma) {
				break
			}
		}
		p.expect(token.RBrace)
		return ast.Binding{Data: &ast.BObject{Properties: props}, Span: p.spanFrom(start)}
	}
	p.errf(diag.SynExpectIdentifier, "expected identifier but found %s", p.describe())
	return ast.Binding{}
}

func (p *Parser) parsePropertyBinding() ast.PropertyBinding {
	if p.eat(token.DotDotDot) {
		start := p.start()
		name := p.tok.Value
		if !p.tok.IsIdent() {
			p.errf(diag.SynExpectIdentifier, "expected identifier but found %s", p.describe())
		}
		p.next()
		return ast.PropertyBinding{
			IsSpread: true,
			Value:    ast.Binding{Data: &ast.BIdentifier{Name: name}, Span: p.spanFrom(start)},
		}
	}

	keyTok := p.tok
	key, computed := p.parsePropertyKey()
	prop := ast.PropertyBinding{Key: key, IsComputed: computed}
	if p.eat(token.Colon) {
		prop.Value = p.parseBinding()
	} else {
		if computed || keyTok.Kind != token.Ident {
			p.errf(diag.SynUnexpectedToken, "expected \":\" but found %s", p.describe())
		}
		prop.IsShorthand = true
		prop.Value = ast.Binding{Data: &ast.BIdentifier{Name: keyTok.Value}, Span: keyTok.Span}
	}
	if p.eat(token.Assign) {
		prop.DefaultValueOrNil = p.parseExpr(ast.LComma)
	}
	return prop
}

// parsePropertyKey разбирает имя свойства: идентификатор (включая
// зарезервированные слова), строку, число, #private или [computed].
func (p *Parser) parsePropertyKey() (ast.Expr, bool) {
	start := p.start()
	switch p.tok.Kind {
	case token.String:
		key := ast.Expr{Data: &ast.EString{Value: p.tok.Value, Raw: p.tok.Text}, Span: p.tok.Span}
		p.next()
		return key, false
	case token.Number:
		key := p.parseNumber()
		return key, false
	case token.BigInt:
		key := ast.Expr{Data: &ast.EBigInt{Value: bigIntValue(p.tok.Text)}, Span: p.tok.Span}
		p.next()
		return key, false
	case token.PrivateIdent:
		key := ast.Expr{Data: &ast.EPrivateIdentifier{Name: p.tok.Value}, Span: p.tok.Span}
		p.next()
		return key, false
	case token.LBracket:
		p.next()
		key := p.parseExpr(ast.LComma)
		p.expect(token.RBracket)
		key.Span = p.spanFrom(start)
		return key, true
	}
	if !p.tok.IsIdentName() {
		p.errf(diag.SynExpectIdentifier, "expected property name but found %s", p.describe())
	}
	key := ast.Expr{Data: &ast.EString{Value: p.tok.Value}, Span: p.tok.Span}
	p.next()
	return key, false
}

// parseClass разбирает class Name<T> extends Base implements I { ... }.
func (p *Parser) parseClass(nameRequired bool) ast.Class {
	p.expect(token.KwClass)
	var class ast.Class
	if p.tok.IsIdent() && !p.atWord("implements") {
		class.Name = &ast.LocName{Name: p.tok.Value, Span: p.tok.Span}
		p.next()
	} else if nameRequired {
		p.errf(diag.SynExpectIdentifier, "expected identifier but found %s", p.describe())
	}
	if p.at(token.Lt) {
		p.skipTypeParams()
	}
	if p.eat(token.KwExtends) {
		class.ExtendsOrNil = p.parseExpr(ast.LNew)
		if p.at(token.Lt) {
			p.skipTypeArgs()
		}
	}
	if p.eatWord("implements") {
		for {
			p.skipType()
			if !p.eat(token.Comma) {
				break
			}
		}
	}

	p.expect(token.LBrace)
	saved := p.ctx
	p.ctx.noIn = false
	p.ctx.inCondYes = false
	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			p.errf(diag.SynUnclosedBrace, "expected \"}\" but found end of file")
		}
		if p.eat(token.Semicolon) {
			continue
		}
		if prop, ok := p.parseClassMember(); ok {
			class.Properties = append(class.Properties, prop)
		}
	}
	p.ctx = saved
	p.next()
	return class
}

var memberModifiers = map[string]bool{
	"static": true, "public": true, "private": true, "protected": true, "readonly": true,
	"abstract": true, "override": true, "declare": true, "accessor": true,
}

// nextStartsMember: после модификатора идёт имя члена класса, а не
// сам модификатор используется как имя (static() {}, readonly = 1).
func (p *Parser) nextStartsMember() bool {
	return p.lookahead(func() bool {
		p.next()
		if p.tok.NewlineBefore && !p.at(token.LBracket) && !p.at(token.Star) {
			return p.tok.IsIdentName() || p.at(token.String) || p.at(token.PrivateIdent)
		}
		switch p.tok.Kind {
		case token.LParen, token.Assign, token.Semicolon, token.Colon, token.Question,
			token.Bang, token.RBrace, token.Lt, token.EOF:
			return false
		}
		return true
	})
}

func (p *Parser) parseClassMember() (ast.Property, bool) {
	start := p.start()
	for p.at(token.At) {
		p.skipDecorator()
	}

	var flags ast.PropertyFlags
	dropped := false
	for p.tok.Kind == token.Ident && memberModifiers[p.tok.Text] && p.nextStartsMember() {
		switch p.tok.Text {
		case "static":
			flags |= ast.PropertyIsStatic
			if p.lookahead(func() bool { p.next(); return p.at(token.LBrace) }) {
				p.next()
				block := p.parseStaticBlock()
				return ast.Property{Kind: ast.PropertyClassStaticBlock, StaticBlock: block, Flags: flags, Span: p.spanFrom(start)}, true
			}
		case "abstract", "declare":
			dropped = true
		}
		p.next()
	}

	// индексная сигнатура [key: string]: T;
	if p.at(token.LBracket) && p.lookahead(func() bool {
		p.next()
		if !p.tok.IsIdent() {
			return false
		}
		p.next()
		return p.at(token.Colon)
	}) {
		p.skipBalanced()
		if p.eat(token.Colon) {
			p.skipType()
		}
		p.semicolon()
		return ast.Property{}, false
	}

	kind := ast.PropertyField
	isAsync, isGenerator := false, false
	if p.atWord("async") && p.nextStartsMethodName() {
		isAsync = true
		p.next()
	}
	if p.eat(token.Star) {
		isGenerator = true
	}
	if (p.atWord("get") || p.atWord("set")) && !isAsync && !isGenerator && p.nextStartsMethodName() {
		kind = ast.PropertyGetter
		if p.atWord("set") {
			kind = ast.PropertySetter
		}
		p.next()
	}

	key, computed := p.parsePropertyKey()
	if computed {
		flags |= ast.PropertyIsComputed
	}
	p.eat(token.Question)

	if p.at(token.LParen) || p.at(token.Lt) {
		if kind == ast.PropertyField {
			kind = ast.PropertyMethod
		}
		fnStart := p.start()
		fn, hasBody := p.parseFnRest(nil, isAsync, isGenerator)
		if !hasBody || dropped {
			return ast.Property{}, false
		}
		value := ast.Expr{Data: &ast.EFunction{Fn: fn}, Span: p.spanFrom(fnStart)}
		return ast.Property{Key: key, ValueOrNil: value, Kind: kind, Flags: flags, Span: p.spanFrom(start)}, true
	}
	if isAsync || isGenerator || kind != ast.PropertyField {
		p.errf(diag.SynUnexpectedToken, "expected \"(\" but found %s", p.describe())
	}

	if p.at(token.Bang) && !p.tok.NewlineBefore {
		p.next()
	}
	if p.eat(token.Colon) {
		p.skipType()
	}
	var value ast.Expr
	if p.eat(token.Assign) {
		p.withFn(false, false, func() {
			value = p.parseExpr(ast.LComma)
		})
	}
	p.semicolon()
	if dropped {
		return ast.Property{}, false
	}
	return ast.Property{Key: key, ValueOrNil: value, Kind: ast.PropertyField, Flags: flags, Span: p.spanFrom(start)}, true
}

// nextStartsMethodName: async/get/set — модификатор, если следом имя метода.
func (p *Parser) nextStartsMethodName() bool {
	return p.lookahead(func() bool {
		p.next()
		if p.tok.NewlineBefore {
			return false
		}
		return p.tok.IsIdentName() || p.at(token.String) || p.at(token.Number) ||
			p.at(token.PrivateIdent) || p.at(token.LBracket) || p.at(token.Star)
	})
}

func (p *Parser) parseStaticBlock() *ast.SBlock {
	var block *ast.SBlock
	p.withFn(false, false, func() {
		block = p.parseBlock()
	})
	return block
}

// parseImport разбирает import-декларацию; p.tok стоит на 'import'.
func (p *Parser) parseImport(start uint32) ast.Stmt {
	p.next()

	// import type ... — только типы
	if p.atWord("type") && p.lookahead(func() bool {
		p.next()
		return p.at(token.LBrace) || p.at(token.Star) || p.tok.IsIdent() && !p.atWord("from")
	}) {
		p.skipToStatementEnd()
		return ast.Stmt{Data: &ast.STypeScript{}, Span: p.spanFrom(start)}
	}

	imp := &ast.SImport{}
	if p.at(token.String) {
		imp.Path = p.tok.Value
		p.next()
		p.skipImportAttributes()
		p.semicolon()
		return ast.Stmt{Data: imp, Span: p.spanFrom(start)}
	}

	if p.tok.IsIdent() {
		imp.DefaultName = &ast.LocName{Name: p.tok.Value, Span: p.tok.Span}
		p.next()
		if !p.eat(token.Comma) {
			p.expectWord("from")
			return p.finishImport(start, imp)
		}
	}

	switch {
	case p.eat(token.Star):
		p.expectWord("as")
		if !p.tok.IsIdent() {
			p.errf(diag.SynExpectIdentifier, "expected identifier but found %s", p.describe())
		}
		imp.StarNameOrNil = &ast.LocName{Name: p.tok.Value, Span: p.tok.Span}
		p.next()
	case p.at(token.LBrace):
		items := p.parseClauseItems(true)
		imp.Items = &items
	default:
		p.errf(diag.SynUnexpectedToken, "expected \"{\" or \"*\" but found %s", p.describe())
	}
	p.expectWord("from")
	return p.finishImport(start, imp)
}

func (p *Parser) finishImport(start uint32, imp *ast.SImport) ast.Stmt {
	if !p.at(token.String) {
		p.errf(diag.SynUnexpectedToken, "expected module path but found %s", p.describe())
	}
	imp.Path = p.tok.Value
	p.next()
	p.skipImportAttributes()
	p.semicolon()
	return ast.Stmt{Data: imp, Span: p.spanFrom(start)}
}

// with { type: "json" } / assert { ... }
func (p *Parser) skipImportAttributes() {
	if (p.atWord("with") || p.at(token.KwWith) || p.atWord("assert")) && !p.tok.NewlineBefore {
		p.next()
		if p.at(token.LBrace) {
			p.skipBalanced()
		}
	}
}

// parseClauseItems разбирает { a, b as c, type T, "x" as y }.
// Элементы с модификатором type отбрасываются.
func (p *Parser) parseClauseItems(isImport bool) []ast.ClauseItem {
	p.expect(token.LBrace)
	items := []ast.ClauseItem{}
	for !p.at(token.RBrace) {
		start := p.start()
		typeOnly := false
		if p.atWord("type") && p.lookahead(func() bool {
			p.next()
			return p.tok.IsIdentName() || p.at(token.String)
		}) {
			typeOnly = true
			p.next()
		}
		if !p.tok.IsIdentName() && !p.at(token.String) {
			p.errf(diag.SynExpectIdentifier, "expected identifier but found %s", p.describe())
		}
		original := p.tok.Value
		wasIdent := p.tok.IsIdent()
		p.next()
		alias := original
		if p.eatWord("as") {
			if !p.tok.IsIdentName() && !p.at(token.String) {
				p.errf(diag.SynExpectIdentifier, "expected identifier but found %s", p.describe())
			}
			alias = p.tok.Value
			wasIdent = p.tok.IsIdent()
			p.next()
		}
		if isImport && !wasIdent {
			p.errAt(diag.SynExpectIdentifier, p.spanFrom(start), "imported binding %q must be an identifier", alias)
		}
		if !typeOnly {
			items = append(items, ast.ClauseItem{Alias: alias, OriginalName: original, Span: p.spanFrom(start)})
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace)
	return items
}

// parseExport разбирает export-декларацию; p.tok стоит на 'export'.
func (p *Parser) parseExport(start uint32) ast.Stmt {
	p.next()
	switch p.tok.Kind {
	case token.KwDefault:
		return p.parseExportDefault(start)

	case token.Star:
		p.next()
		alias := ""
		if p.eatWord("as") {
			if !p.tok.IsIdentName() && !p.at(token.String) {
				p.errf(diag.SynExpectIdentifier, "expected identifier but found %s", p.describe())
			}
			alias = p.tok.Value
			p.next()
		}
		p.expectWord("from")
		path := p.parseModulePath()
		p.semicolon()
		return ast.Stmt{Data: &ast.SExportStar{AliasOrEmpty: alias, Path: path}, Span: p.spanFrom(start)}

	case token.LBrace:
		items := p.parseClauseItems(false)
		if p.eatWord("from") {
			path := p.parseModulePath()
			p.semicolon()
			return ast.Stmt{Data: &ast.SExportFrom{Items: items, Path: path}, Span: p.spanFrom(start)}
		}
		p.semicolon()
		return ast.Stmt{Data: &ast.SExportClause{Items: items}, Span: p.spanFrom(start)}

	case token.KwVar, token.KwConst:
		st := p.parseStmt(false)
		if local, ok := st.Data.(*ast.SLocal); ok {
			local.IsExport = true
		}
		st.Span = p.spanFrom(start)
		return st

	case token.KwFunction:
		return p.parseFnStmt(start, false, true)

	case token.KwClass:
		class := p.parseClass(true)
		return ast.Stmt{Data: &ast.SClass{Class: class, IsExport: true}, Span: p.spanFrom(start)}

	case token.KwEnum:
		p.errf(diag.SynUnexpectedToken, "enum declarations are not supported")

	case token.Ident:
		switch p.tok.Text {
		case "let":
			st := p.parseStmt(false)
			if local, ok := st.Data.(*ast.SLocal); ok {
				local.IsExport = true
				st.Span = p.spanFrom(start)
				return st
			}
		case "async":
			p.next()
			if !p.at(token.KwFunction) || p.tok.NewlineBefore {
				p.errf(diag.SynUnexpectedToken, "expected \"function\" but found %s", p.describe())
			}
			return p.parseFnStmt(start, true, true)
		case "abstract":
			p.next()
			class := p.parseClass(true)
			return ast.Stmt{Data: &ast.SClass{Class: class, IsExport: true}, Span: p.spanFrom(start)}
		case "type":
			// export type { A, B }
			if p.lookahead(func() bool { p.next(); return p.at(token.LBrace) || p.at(token.Star) }) {
				p.skipToStatementEnd()
				return ast.Stmt{Data: &ast.STypeScript{}, Span: p.spanFrom(start)}
			}
			fallthrough
		default:
			if p.atTypeDeclaration() {
				p.skipTypeDeclaration()
				return ast.Stmt{Data: &ast.STypeScript{}, Span: p.spanFrom(start)}
			}
		}
	}
	p.errf(diag.SynUnexpectedToken, "unexpected %s after \"export\"", p.describe())
	return ast.Stmt{}
}

func (p *Parser) parseExportDefault(start uint32) ast.Stmt {
	p.next()
	valueStart := p.start()

	isAsync := false
	if p.atWord("async") && p.lookahead(func() bool {
		p.next()
		return p.at(token.KwFunction) && !p.tok.NewlineBefore
	}) {
		isAsync = true
		p.next()
	}
	if p.at(token.KwFunction) {
		p.next()
		isGenerator := p.eat(token.Star)
		name := p.parseFnName(false)
		fn, hasBody := p.parseFnRest(name, isAsync, isGenerator)
		if !hasBody {
			return ast.Stmt{Data: &ast.STypeScript{}, Span: p.spanFrom(start)}
		}
		value := ast.Stmt{Data: &ast.SFunction{Fn: fn}, Span: p.spanFrom(valueStart)}
		return ast.Stmt{Data: &ast.SExportDefault{Value: value}, Span: p.spanFrom(start)}
	}

	if p.at(token.KwClass) || p.atWord("abstract") && p.lookahead(func() bool { p.next(); return p.at(token.KwClass) }) {
		p.eatWord("abstract")
		class := p.parseClass(false)
		value := ast.Stmt{Data: &ast.SClass{Class: class}, Span: p.spanFrom(valueStart)}
		return ast.Stmt{Data: &ast.SExportDefault{Value: value}, Span: p.spanFrom(start)}
	}

	if p.atWord("interface") && p.atTypeDeclaration() {
		p.skipTypeDeclaration()
		return ast.Stmt{Data: &ast.STypeScript{}, Span: p.spanFrom(start)}
	}

	expr := p.parseExpr(ast.LComma)
	p.semicolon()
	value := ast.Stmt{Data: &ast.SExpr{Value: expr}, Span: p.spanFrom(valueStart)}
	return ast.Stmt{Data: &ast.SExportDefault{Value: value}, Span: p.spanFrom(start)}
}

func (p *Parser) parseModulePath() string {
	if !p.at(token.String) {
		p.errf(diag.SynUnexpectedToken, "expected module path but found %s", p.describe())
	}
	path := p.tok.Value
	p.next()
	p.skipImportAttributes()
	return path
}

// skipToStatementEnd пропускает операторы import type/export type целиком.
func (p *Parser) skipToStatementEnd() {
	for {
		switch {
		case p.at(token.EOF):
			return
		case p.at(token.Semicolon):
			p.next()
			return
		case p.at(token.LBrace) || p.at(token.LParen) || p.at(token.LBracket):
			p.skipBalanced()
		default:
			p.next()
		}
		if p.tok.NewlineBefore || p.at(token.RBrace) {
			return
		}
	}
}

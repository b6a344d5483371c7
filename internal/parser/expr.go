package parser

import (
	"math/big"
	"strconv"
	"strings"

	"jsxstream/internal/ast"
	"jsxstream/internal/diag"
	"jsxstream/internal/token"
)

var prefixOps = map[token.Kind]ast.OpCode{
	token.Plus:       ast.UnOpPos,
	token.Minus:      ast.UnOpNeg,
	token.Tilde:      ast.UnOpCpl,
	token.Bang:       ast.UnOpNot,
	token.KwVoid:     ast.UnOpVoid,
	token.KwTypeof:   ast.UnOpTypeof,
	token.KwDelete:   ast.UnOpDelete,
	token.PlusPlus:   ast.UnOpPreInc,
	token.MinusMinus: ast.UnOpPreDec,
}

var binaryOps = map[token.Kind]ast.OpCode{
	token.Plus:             ast.BinOpAdd,
	token.Minus:            ast.BinOpSub,
	token.Star:             ast.BinOpMul,
	token.Slash:            ast.BinOpDiv,
	token.Percent:          ast.BinOpRem,
	token.StarStar:         ast.BinOpPow,
	token.Lt:               ast.BinOpLt,
	token.LtEq:             ast.BinOpLe,
	token.Gt:               ast.BinOpGt,
	token.GtEq:             ast.BinOpGe,
	token.KwIn:             ast.BinOpIn,
	token.KwInstanceof:     ast.BinOpInstanceof,
	token.Shl:              ast.BinOpShl,
	token.Shr:              ast.BinOpShr,
	token.UShr:             ast.BinOpUShr,
	token.EqEq:             ast.BinOpLooseEq,
	token.BangEq:           ast.BinOpLooseNe,
	token.EqEqEq:           ast.BinOpStrictEq,
	token.BangEqEq:         ast.BinOpStrictNe,
	token.QuestionQuestion: ast.BinOpNullishCoalescing,
	token.OrOr:             ast.BinOpLogicalOr,
	token.AndAnd:           ast.BinOpLogicalAnd,
	token.Pipe:             ast.BinOpBitwiseOr,
	token.Amp:              ast.BinOpBitwiseAnd,
	token.Caret:            ast.BinOpBitwiseXor,

	token.Assign:                 ast.BinOpAssign,
	token.PlusAssign:             ast.BinOpAddAssign,
	token.MinusAssign:            ast.BinOpSubAssign,
	token.StarAssign:             ast.BinOpMulAssign,
	token.SlashAssign:            ast.BinOpDivAssign,
	token.PercentAssign:          ast.BinOpRemAssign,
	token.StarStarAssign:         ast.BinOpPowAssign,
	token.ShlAssign:              ast.BinOpShlAssign,
	token.ShrAssign:              ast.BinOpShrAssign,
	token.UShrAssign:             ast.BinOpUShrAssign,
	token.PipeAssign:             ast.BinOpBitwiseOrAssign,
	token.AmpAssign:              ast.BinOpBitwiseAndAssign,
	token.CaretAssign:            ast.BinOpBitwiseXorAssign,
	token.QuestionQuestionAssign: ast.BinOpNullishCoalescingAssign,
	token.OrOrAssign:             ast.BinOpLogicalOrAssign,
	token.AndAndAssign:           ast.BinOpLogicalAndAssign,
}

// parseExpr разбирает выражение, в которое входят только операторы
// с приоритетом выше level.
func (p *Parser) parseExpr(level ast.L) ast.Expr {
	start := p.start()
	left, isArrow := p.parsePrefix(level)
	if isArrow {
		// после стрелки допустима только запятая
		if level < ast.LComma && p.at(token.Comma) {
			return p.parseSuffix(start, left, level)
		}
		return left
	}
	return p.parseSuffix(start, left, level)
}

// parseNestedExpr разбирает выражение внутри скобок: `in` снова разрешён,
// контекст тернарного оператора сбрасывается.
func (p *Parser) parseNestedExpr(level ast.L) ast.Expr {
	noIn, condYes := p.ctx.noIn, p.ctx.inCondYes
	p.ctx.noIn, p.ctx.inCondYes = false, false
	e := p.parseExpr(level)
	p.ctx.noIn, p.ctx.inCondYes = noIn, condYes
	return e
}

func (p *Parser) parsePrefix(level ast.L) (ast.Expr, bool) {
	start := p.start()
	switch p.tok.Kind {
	case token.Ident:
		return p.parseIdentPrefix(level)

	case token.PrivateIdent:
		// #x in obj
		name := p.tok.Value
		p.next()
		if !p.at(token.KwIn) {
			p.errf(diag.SynUnexpectedToken, "expected \"in\" after private name")
		}
		return ast.Expr{Data: &ast.EPrivateIdentifier{Name: name}, Span: p.spanFrom(start)}, false

	case token.Number:
		return p.parseNumber(), false

	case token.BigInt:
		value := bigIntValue(p.tok.Text)
		p.next()
		return ast.Expr{Data: &ast.EBigInt{Value: value}, Span: p.spanFrom(start)}, false

	case token.String:
		value, raw := p.tok.Value, p.tok.Text
		p.next()
		return ast.Expr{Data: &ast.EString{Value: value, Raw: raw}, Span: p.spanFrom(start)}, false

	case token.NoSubstitutionTemplate, token.TemplateHead:
		return p.parseTemplate(nil, start), false

	case token.Slash, token.SlashAssign:
		p.tok = p.lx.RescanRegExp(p.tok)
		value := p.tok.Text
		p.next()
		return ast.Expr{Data: &ast.ERegExp{Value: value}, Span: p.spanFrom(start)}, false

	case token.KwTrue, token.KwFalse:
		value := p.at(token.KwTrue)
		p.next()
		return ast.Expr{Data: &ast.EBoolean{Value: value}, Span: p.spanFrom(start)}, false

	case token.KwNull:
		p.next()
		return ast.Expr{Data: &ast.ENull{}, Span: p.spanFrom(start)}, false

	case token.KwThis:
		p.next()
		return ast.Expr{Data: &ast.EThis{}, Span: p.spanFrom(start)}, false

	case token.KwSuper:
		p.next()
		if !p.at(token.LParen) && !p.at(token.Dot) && !p.at(token.LBracket) {
			p.errf(diag.SynUnexpectedToken, "unexpected \"super\"")
		}
		return ast.Expr{Data: &ast.ESuper{}, Span: p.spanFrom(start)}, false

	case token.KwFunction:
		return p.parseFnExpr(start, false), false

	case token.KwClass:
		class := p.parseClass(false)
		return ast.Expr{Data: &ast.EClass{Class: class}, Span: p.spanFrom(start)}, false

	case token.KwNew:
		return p.parseNew(start), false

	case token.KwImport:
		p.next()
		if p.eat(token.Dot) {
			p.expectWord("meta")
			return ast.Expr{Data: &ast.EImportMeta{}, Span: p.spanFrom(start)}, false
		}
		p.expect(token.LParen)
		call := &ast.EImportCall{Expr: p.parseNestedExpr(ast.LComma)}
		if p.eat(token.Comma) && !p.at(token.RParen) {
			call.OptionsOrNil = p.parseNestedExpr(ast.LComma)
			p.eat(token.Comma)
		}
		p.expect(token.RParen)
		return ast.Expr{Data: call, Span: p.spanFrom(start)}, false

	case token.LParen:
		return p.parseParenOrArrow(start)

	case token.LBracket:
		return p.parseArray(start), false

	case token.LBrace:
		return p.parseObject(start), false

	case token.Lt:
		if p.opts.TypeScript {
			if arrow, ok := p.tryGenericArrow(start, false); ok {
				return arrow, true
			}
		}
		return p.parseJSXElement(jsxAfterExpr), false
	}

	if op, ok := prefixOps[p.tok.Kind]; ok {
		p.next()
		value := p.parseExpr(ast.LPrefix - 1)
		if op == ast.UnOpPreInc || op == ast.UnOpPreDec {
			p.checkAssignTarget(value, false)
		}
		return ast.Expr{Data: &ast.EUnary{Op: op, Value: value}, Span: p.spanFrom(start)}, false
	}

	p.errf(diag.SynExpectExpression, "expected expression but found %s", p.describe())
	return ast.Expr{}, false
}

func (p *Parser) parseIdentPrefix(level ast.L) (ast.Expr, bool) {
	start := p.start()
	tok := p.tok
	p.next()

	// x => ...
	if p.at(token.Arrow) && !p.tok.NewlineBefore {
		arg := ast.Arg{Binding: ast.Binding{Data: &ast.BIdentifier{Name: tok.Value}, Span: tok.Span}}
		return p.parseArrowBody(start, []ast.Arg{arg}, false, false), true
	}

	switch tok.Text {
	case "async":
		if p.tok.NewlineBefore {
			break
		}
		switch {
		case p.at(token.KwFunction):
			return p.parseFnExpr(start, true), false
		case p.tok.IsIdent():
			// async x => ...
			name := p.tok
			p.next()
			if !p.at(token.Arrow) || p.tok.NewlineBefore {
				p.errf(diag.SynUnexpectedToken, "expected \"=>\" but found %s", p.describe())
			}
			arg := ast.Arg{Binding: ast.Binding{Data: &ast.BIdentifier{Name: name.Value}, Span: name.Span}}
			return p.parseArrowBody(start, []ast.Arg{arg}, false, true), true
		case p.at(token.LParen):
			if arrow, ok := p.tryParenArrow(start, true); ok {
				return arrow, true
			}
		case p.at(token.Lt) && p.opts.TypeScript:
			if arrow, ok := p.tryGenericArrow(start, true); ok {
				return arrow, true
			}
		}

	case "await":
		if p.awaitIsKeyword() {
			value := p.parseExpr(ast.LPrefix - 1)
			return ast.Expr{Data: &ast.EAwait{Value: value}, Span: p.spanFrom(start)}, false
		}

	case "yield":
		if p.ctx.isGenerator {
			y := &ast.EYield{}
			if !p.tok.NewlineBefore {
				if p.eat(token.Star) {
					y.IsStar = true
					y.ValueOrNil = p.parseExpr(ast.LYield)
				} else if startsExpr(p.tok.Kind) {
					y.ValueOrNil = p.parseExpr(ast.LYield)
				}
			}
			return ast.Expr{Data: y, Span: p.spanFrom(start)}, false
		}
	}

	return ast.Expr{Data: &ast.EIdentifier{Name: tok.Value}, Span: tok.Span}, false
}

func startsExpr(k token.Kind) bool {
	switch k {
	case token.RParen, token.RBracket, token.RBrace, token.Comma, token.Colon,
		token.Semicolon, token.EOF, token.Question, token.KwIn:
		return false
	}
	return true
}

func (p *Parser) parseFnExpr(start uint32, isAsync bool) ast.Expr {
	p.expect(token.KwFunction)
	isGenerator := p.eat(token.Star)
	name := p.parseFnName(false)
	if !p.at(token.LParen) && !p.at(token.Lt) {
		p.errf(diag.SynUnexpectedToken, "expected \"(\" but found %s", p.describe())
	}
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
	fn.Body = p.parseFnBody(isAsync, isGenerator)
	return ast.Expr{Data: &ast.EFunction{Fn: fn}, Span: p.spanFrom(start)}
}

func (p *Parser) parseNew(start uint32) ast.Expr {
	p.next()
	if p.eat(token.Dot) {
		p.expectWord("target")
		return ast.Expr{Data: &ast.ENewTarget{}, Span: p.spanFrom(start)}
	}
	target := p.parseExpr(ast.LMember)
	if p.opts.TypeScript && p.at(token.Lt) {
		p.try(func() {
			p.skipTypeArgs()
			if !p.at(token.LParen) {
				p.errf(diag.SynUnexpectedToken, "expected \"(\"")
			}
		})
	}
	n := &ast.ENew{Target: target}
	if p.at(token.LParen) {
		n.Args = p.parseCallArgs()
	} else {
		n.NoArgs = true
	}
	return ast.Expr{Data: n, Span: p.spanFrom(start)}
}

// parseParenOrArrow: '(' начинает либо параметры стрелочной функции,
// либо выражение в скобках. Сначала пробуем стрелку спекулятивно.
func (p *Parser) parseParenOrArrow(start uint32) (ast.Expr, bool) {
	if arrow, ok := p.tryParenArrow(start, false); ok {
		return arrow, true
	}
	p.expect(token.LParen)
	value := p.parseNestedExpr(ast.LLowest)
	p.expect(token.RParen)
	return ast.Expr{Data: &ast.EParen{Value: value}, Span: p.spanFrom(start)}, false
}

func (p *Parser) tryParenArrow(start uint32, isAsync bool) (ast.Expr, bool) {
	var args []ast.Arg
	var hasRest bool
	ok := p.try(func() {
		p.withFn(isAsync, false, func() {
			args, hasRest = p.parseFnArgs()
		})
		if p.at(token.Colon) && !p.ctx.inCondYes {
			p.next()
			p.skipReturnType()
		}
		if !p.at(token.Arrow) || p.tok.NewlineBefore {
			p.errf(diag.SynUnexpectedToken, "expected \"=>\"")
		}
	})
	if !ok {
		return ast.Expr{}, false
	}
	return p.parseArrowBody(start, args, hasRest, isAsync), true
}

// tryGenericArrow: <T,>(x: T) => x в TSX-файлах.
func (p *Parser) tryGenericArrow(start uint32, isAsync bool) (ast.Expr, bool) {
	var args []ast.Arg
	var hasRest bool
	ok := p.try(func() {
		p.skipTypeParams()
		if !p.at(token.LParen) {
			p.errf(diag.SynUnexpectedToken, "expected \"(\"")
		}
		p.withFn(isAsync, false, func() {
			args, hasRest = p.parseFnArgs()
		})
		if p.eat(token.Colon) {
			p.skipReturnType()
		}
		if !p.at(token.Arrow) || p.tok.NewlineBefore {
			p.errf(diag.SynUnexpectedToken, "expected \"=>\"")
		}
	})
	if !ok {
		return ast.Expr{}, false
	}
	return p.parseArrowBody(start, args, hasRest, isAsync), true
}

func (p *Parser) parseArrowBody(start uint32, args []ast.Arg, hasRest, isAsync bool) ast.Expr {
	p.expect(token.Arrow)
	arrow := &ast.EArrow{Args: args, HasRestArg: hasRest, IsAsync: isAsync}
	if p.at(token.LBrace) {
		arrow.Body = p.parseFnBody(isAsync, false)
		return ast.Expr{Data: arrow, Span: p.spanFrom(start)}
	}
	bodyStart := p.start()
	noIn := p.ctx.noIn
	var value ast.Expr
	p.withFn(isAsync, false, func() {
		p.ctx.noIn = noIn
		value = p.parseExpr(ast.LComma)
	})
	arrow.PreferExpr = true
	arrow.Body = ast.FnBody{
		Stmts: []ast.Stmt{{Data: &ast.SReturn{ValueOrNil: value}, Span: value.Span}},
		Span:  p.spanFrom(bodyStart),
	}
	return ast.Expr{Data: arrow, Span: p.spanFrom(start)}
}

func (p *Parser) parseArray(start uint32) ast.Expr {
	p.expect(token.LBracket)
	var items []ast.Expr
	for !p.at(token.RBracket) {
		itemStart := p.start()
		switch {
		case p.at(token.Comma):
			p.next()
			items = append(items, ast.Expr{Data: &ast.EMissing{}, Span: p.spanFrom(itemStart)})
			continue
		case p.eat(token.DotDotDot):
			value := p.parseNestedExpr(ast.LComma)
			items = append(items, ast.Expr{Data: &ast.ESpread{Value: value}, Span: p.spanFrom(itemStart)})
		default:
			items = append(items, p.parseNestedExpr(ast.LComma))
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBracket)
	return ast.Expr{Data: &ast.EArray{Items: items}, Span: p.spanFrom(start)}
}

func (p *Parser) parseObject(start uint32) ast.Expr {
	p.expect(token.LBrace)
	noIn, condYes := p.ctx.noIn, p.ctx.inCondYes
	p.ctx.noIn, p.ctx.inCondYes = false, false
	var props []ast.Property
	for !p.at(token.RBrace) {
		props = append(props, p.parseObjectProperty())
		if !p.eat(token.Comma) {
			break
		}
	}
	p.ctx.noIn, p.ctx.inCondYes = noIn, condYes
	p.expect(token.RBrace)
	return ast.Expr{Data: &ast.EObject{Properties: props}, Span: p.spanFrom(start)}
}

func (p *Parser) parseObjectProperty() ast.Property {
	start := p.start()
	if p.eat(token.DotDotDot) {
		value := p.parseExpr(ast.LComma)
		return ast.Property{Kind: ast.PropertySpread, ValueOrNil: value, Span: p.spanFrom(start)}
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

	keyTok := p.tok
	key, computed := p.parsePropertyKey()
	var flags ast.PropertyFlags
	if computed {
		flags |= ast.PropertyIsComputed
	}

	if p.at(token.LParen) || p.at(token.Lt) {
		if kind == ast.PropertyField {
			kind = ast.PropertyMethod
		}
		fnStart := p.start()
		fn := ast.Fn{IsAsync: isAsync, IsGenerator: isGenerator}
		if p.at(token.Lt) {
			p.skipTypeParams()
		}
		p.withFn(isAsync, isGenerator, func() {
			fn.Args, fn.HasRestArg = p.parseFnArgs()
		})
		if p.eat(token.Colon) {
			p.skipReturnType()
		}
		fn.Body = p.parseFnBody(isAsync, isGenerator)
		value := ast.Expr{Data: &ast.EFunction{Fn: fn}, Span: p.spanFrom(fnStart)}
		return ast.Property{Key: key, ValueOrNil: value, Kind: kind, Flags: flags, Span: p.spanFrom(start)}
	}
	if isAsync || isGenerator || kind != ast.PropertyField {
		p.errf(diag.SynUnexpectedToken, "expected \"(\" but found %s", p.describe())
	}

	if p.eat(token.Colon) {
		value := p.parseExpr(ast.LComma)
		return ast.Property{Key: key, ValueOrNil: value, Kind: kind, Flags: flags, Span: p.spanFrom(start)}
	}

	// {a} и {a = 1} (последнее — только в деструктурирующем присваивании)
	if computed || keyTok.Kind != token.Ident {
		p.errf(diag.SynUnexpectedToken, "expected \":\" but found %s", p.describe())
	}
	prop := ast.Property{
		Key:        key,
		ValueOrNil: ast.Expr{Data: &ast.EIdentifier{Name: keyTok.Value}, Span: keyTok.Span},
		Kind:       kind,
		Flags:      flags | ast.PropertyWasShorthand,
	}
	if p.eat(token.Assign) {
		prop.InitializerOrNil = p.parseExpr(ast.LComma)
	}
	prop.Span = p.spanFrom(start)
	return prop
}

// parseTemplate разбирает шаблонную строку; tag != nil для tagged template.
func (p *Parser) parseTemplate(tag *ast.Expr, start uint32) ast.Expr {
	tpl := &ast.ETemplate{}
	if tag != nil {
		tpl.TagOrNil = *tag
	}
	tpl.Quasis = append(tpl.Quasis, ast.TemplateQuasi{Cooked: p.tok.Value, Raw: templateRaw(p.tok)})
	if p.at(token.NoSubstitutionTemplate) {
		p.next()
		return ast.Expr{Data: tpl, Span: p.spanFrom(start)}
	}
	for {
		p.next()
		tpl.Exprs = append(tpl.Exprs, p.parseNestedExpr(ast.LLowest))
		if !p.at(token.RBrace) {
			p.errf(diag.SynUnclosedBrace, "expected \"}\" in template literal but found %s", p.describe())
		}
		p.tok = p.lx.RescanTemplateContinuation(p.tok)
		tpl.Quasis = append(tpl.Quasis, ast.TemplateQuasi{Cooked: p.tok.Value, Raw: templateRaw(p.tok)})
		if p.at(token.TemplateTail) {
			p.next()
			return ast.Expr{Data: tpl, Span: p.spanFrom(start)}
		}
	}
}

// templateRaw срезает разделители ` } ${ с исходного текста куска шаблона.
func templateRaw(tok token.Token) string {
	text := tok.Text
	if len(text) > 0 {
		text = text[1:]
	}
	switch tok.Kind {
	case token.TemplateHead, token.TemplateMiddle:
		return strings.TrimSuffix(text, "${")
	}
	return strings.TrimSuffix(text, "`")
}

func (p *Parser) parseCallArgs() []ast.Expr {
	p.expect(token.LParen)
	var args []ast.Expr
	for !p.at(token.RParen) {
		start := p.start()
		if p.eat(token.DotDotDot) {
			value := p.parseNestedExpr(ast.LComma)
			args = append(args, ast.Expr{Data: &ast.ESpread{Value: value}, Span: p.spanFrom(start)})
		} else {
			args = append(args, p.parseNestedExpr(ast.LComma))
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RParen)
	return args
}

func (p *Parser) parseSuffix(start uint32, left ast.Expr, level ast.L) ast.Expr {
	for {
		switch p.tok.Kind {
		case token.Dot:
			p.next()
			left = p.parseMemberName(start, left, false)

		case token.QuestionDot:
			p.next()
			switch p.tok.Kind {
			case token.LParen:
				args := p.parseCallArgs()
				left = ast.Expr{Data: &ast.ECall{Target: left, Args: args, Optional: true}, Span: p.spanFrom(start)}
			case token.LBracket:
				p.next()
				index := p.parseNestedExpr(ast.LLowest)
				p.expect(token.RBracket)
				left = ast.Expr{Data: &ast.EIndex{Target: left, Index: index, Optional: true}, Span: p.spanFrom(start)}
			default:
				left = p.parseMemberName(start, left, true)
			}

		case token.NoSubstitutionTemplate, token.TemplateHead:
			left = p.parseTemplate(&left, start)

		case token.LBracket:
			p.next()
			index := p.parseNestedExpr(ast.LLowest)
			p.expect(token.RBracket)
			left = ast.Expr{Data: &ast.EIndex{Target: left, Index: index}, Span: p.spanFrom(start)}

		case token.LParen:
			if level >= ast.LCall {
				return left
			}
			args := p.parseCallArgs()
			left = ast.Expr{Data: &ast.ECall{Target: left, Args: args}, Span: p.spanFrom(start)}

		case token.Bang:
			// TypeScript non-null: x!
			if p.tok.NewlineBefore || level >= ast.LPostfix {
				return left
			}
			p.next()

		case token.PlusPlus, token.MinusMinus:
			if p.tok.NewlineBefore || level >= ast.LPostfix {
				return left
			}
			op := ast.UnOpPostInc
			if p.at(token.MinusMinus) {
				op = ast.UnOpPostDec
			}
			p.checkAssignTarget(left, false)
			p.next()
			left = ast.Expr{Data: &ast.EUnary{Op: op, Value: left}, Span: p.spanFrom(start)}

		case token.Comma:
			if level >= ast.LComma {
				return left
			}
			p.next()
			right := p.parseExpr(ast.LComma)
			left = ast.Expr{Data: &ast.EBinary{Op: ast.BinOpComma, Left: left, Right: right}, Span: p.spanFrom(start)}

		case token.Question:
			if level >= ast.LConditional {
				return left
			}
			p.next()
			noIn, condYes := p.ctx.noIn, p.ctx.inCondYes
			p.ctx.noIn, p.ctx.inCondYes = false, true
			yes := p.parseExpr(ast.LComma)
			p.ctx.noIn, p.ctx.inCondYes = noIn, condYes
			p.expect(token.Colon)
			no := p.parseExpr(ast.LComma)
			left = ast.Expr{Data: &ast.EIf{Test: left, Yes: yes, No: no}, Span: p.spanFrom(start)}

		case token.Ident:
			// x as T, x satisfies T
			if (p.atWord("as") || p.atWord("satisfies")) && !p.tok.NewlineBefore {
				if level >= ast.LCompare {
					return left
				}
				p.next()
				p.skipType()
				continue
			}
			return left

		case token.Lt:
			// f<T>(x)
			if p.opts.TypeScript && level < ast.LCall && p.try(func() {
				p.skipTypeArgs()
				if !p.at(token.LParen) && !p.at(token.NoSubstitutionTemplate) && !p.at(token.TemplateHead) {
					p.errf(diag.SynUnexpectedToken, "expected \"(\"")
				}
			}) {
				continue
			}
			if !p.parseBinary(start, &left, level) {
				return left
			}

		case token.KwIn:
			if p.ctx.noIn {
				return left
			}
			if !p.parseBinary(start, &left, level) {
				return left
			}

		default:
			if !p.parseBinary(start, &left, level) {
				return left
			}
		}
	}
}

func (p *Parser) parseMemberName(start uint32, left ast.Expr, optional bool) ast.Expr {
	if p.at(token.PrivateIdent) {
		name := p.tok.Value
		p.next()
		return ast.Expr{Data: &ast.EDot{Target: left, Name: name, Optional: optional, Private: true}, Span: p.spanFrom(start)}
	}
	if !p.tok.IsIdentName() {
		p.errf(diag.SynExpectIdentifier, "expected property name but found %s", p.describe())
	}
	name := p.tok.Value
	p.next()
	return ast.Expr{Data: &ast.EDot{Target: left, Name: name, Optional: optional}, Span: p.spanFrom(start)}
}

// parseBinary съедает бинарный оператор, если его приоритет выше level.
func (p *Parser) parseBinary(start uint32, left *ast.Expr, level ast.L) bool {
	op, ok := binaryOps[p.tok.Kind]
	if !ok {
		return false
	}
	entry := ast.OpTable[op]
	var right ast.Expr
	switch {
	case op.IsAssign():
		if level >= ast.LAssign {
			return false
		}
		p.checkAssignTarget(*left, op == ast.BinOpAssign)
		p.next()
		right = p.parseExpr(ast.LAssign - 1)
	case op == ast.BinOpPow:
		if level >= ast.LExponentiation {
			return false
		}
		p.next()
		right = p.parseExpr(ast.LExponentiation - 1)
	default:
		if level >= entry.Level {
			return false
		}
		p.next()
		right = p.parseExpr(entry.Level)
	}
	*left = ast.Expr{Data: &ast.EBinary{Op: op, Left: *left, Right: right}, Span: p.spanFrom(start)}
	return true
}

// checkAssignTarget: слева от '=' допустимы идентификатор, член объекта
// и (для простого '=') деструктурирующий литерал.
func (p *Parser) checkAssignTarget(target ast.Expr, allowPattern bool) {
	switch d := target.Data.(type) {
	case *ast.EIdentifier:
		return
	case *ast.EDot:
		if !d.Optional {
			return
		}
	case *ast.EIndex:
		if !d.Optional {
			return
		}
	case *ast.EParen:
		p.checkAssignTarget(d.Value, false)
		return
	case *ast.EObject, *ast.EArray:
		if allowPattern {
			return
		}
	}
	p.errAt(diag.SynInvalidAssignTarget, target.Span, "invalid assignment target")
}

func (p *Parser) parseNumber() ast.Expr {
	tok := p.tok
	p.next()
	return ast.Expr{Data: &ast.ENumber{Value: numberValue(tok.Text), Raw: tok.Text}, Span: tok.Span}
}

func numberValue(text string) float64 {
	s := strings.ReplaceAll(text, "_", "")
	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			return intValue(s[2:], base)
		}
	}
	// 0777 — устаревшая восьмеричная запись
	if len(s) > 1 && s[0] == '0' && strings.Trim(s, "01234567") == "" {
		return intValue(s[1:], 8)
	}
	// при переполнении ParseFloat отдаёт ±Inf, как и JS
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func intValue(digits string, base int) float64 {
	if v, err := strconv.ParseUint(digits, base, 64); err == nil {
		return float64(v)
	}
	i, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return 0
	}
	f, _ := new(big.Float).SetInt(i).Float64()
	return f
}

func bigIntValue(text string) string {
	return strings.TrimSuffix(strings.ReplaceAll(text, "_", ""), "n")
}

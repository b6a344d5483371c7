package format

import (
	"strings"

	"jsxstream/internal/ast"
)

// printExpr печатает e в контексте с приоритетом level: если оператор e
// связывает не сильнее level, выражение берётся в скобки.
func (p *printer) printExpr(e ast.Expr, level ast.L) {
	switch d := e.Data.(type) {
	case nil:
		return

	case *ast.EMissing:

	case *ast.ENull:
		p.w.Token("null")

	case *ast.EThis:
		p.w.Token("this")

	case *ast.ESuper:
		p.w.Token("super")

	case *ast.ENewTarget:
		p.w.Token("new.target")

	case *ast.EImportMeta:
		p.w.Token("import.meta")

	case *ast.EBoolean:
		if d.Value {
			p.w.Token("true")
		} else {
			p.w.Token("false")
		}

	case *ast.EIdentifier:
		p.w.Token(d.Name)

	case *ast.EPrivateIdentifier:
		p.w.Token("#" + d.Name)

	case *ast.ENumber:
		text := d.Raw
		if text == "" {
			text = NumberString(d.Value)
		}
		wrap := strings.HasPrefix(text, "-") && level >= ast.LPrefix
		p.openParen(wrap)
		p.w.Token(text)
		p.closeParen(wrap)

	case *ast.EBigInt:
		p.w.Token(d.Value + "n")

	case *ast.EString:
		if d.Raw != "" {
			p.w.Token(d.Raw)
		} else {
			p.w.Token(QuoteString(d.Value))
		}

	case *ast.ERegExp:
		p.w.Token(d.Value)

	case *ast.ETemplate:
		if d.TagOrNil.Data != nil {
			p.printExpr(d.TagOrNil, ast.LPostfix)
		}
		p.printTemplate(d)

	case *ast.EParen:
		p.w.Token("(")
		p.withIn(func() { p.printExpr(d.Value, ast.LLowest) })
		p.w.Token(")")

	case *ast.ERaw:
		wrap := level >= d.Level
		p.openParen(wrap)
		p.w.Token(d.Text)
		p.closeParen(wrap)

	case *ast.EArray:
		p.w.Token("[")
		p.withIn(func() {
			for i, item := range d.Items {
				if i > 0 {
					p.w.Token(",")
					p.w.Space()
				}
				p.printExpr(item, ast.LComma)
			}
			// хвостовая дырка требует лишней запятой: [a, ,]
			if n := len(d.Items); n > 0 {
				if _, hole := d.Items[n-1].Data.(*ast.EMissing); hole {
					p.w.Token(",")
				}
			}
		})
		p.w.Token("]")

	case *ast.EObject:
		p.printObject(d)

	case *ast.ESpread:
		p.w.Token("...")
		p.printExpr(d.Value, ast.LComma)

	case *ast.EDot:
		p.printMemberTarget(d.Target)
		if d.Optional {
			p.w.Token("?.")
		} else {
			p.w.Token(".")
		}
		if d.Private {
			p.w.Token("#" + d.Name)
		} else {
			p.w.Token(d.Name)
		}

	case *ast.EIndex:
		p.printMemberTarget(d.Target)
		if d.Optional {
			p.w.Token("?.")
		}
		p.w.Token("[")
		p.withIn(func() { p.printExpr(d.Index, ast.LLowest) })
		p.w.Token("]")

	case *ast.ECall:
		wrap := level >= ast.LNew
		p.openParen(wrap)
		p.printExpr(d.Target, ast.LPostfix)
		if d.Optional {
			p.w.Token("?.")
		}
		p.printArgs(d.Args)
		p.closeParen(wrap)

	case *ast.ENew:
		wrap := level >= ast.LCall
		p.openParen(wrap)
		p.w.Token("new")
		if hasCall(d.Target) {
			p.w.Token("(")
			p.printExpr(d.Target, ast.LLowest)
			p.w.Token(")")
		} else {
			p.printExpr(d.Target, ast.LNew)
		}
		p.printArgs(d.Args)
		p.closeParen(wrap)

	case *ast.EImportCall:
		p.w.Token("import")
		p.w.Token("(")
		p.withIn(func() {
			p.printExpr(d.Expr, ast.LComma)
			if d.OptionsOrNil.Data != nil {
				p.w.Token(",")
				p.w.Space()
				p.printExpr(d.OptionsOrNil, ast.LComma)
			}
		})
		p.w.Token(")")

	case *ast.EArrow:
		wrap := level >= ast.LAssign
		p.openParen(wrap)
		if d.IsAsync {
			p.w.Token("async")
			p.w.Space()
		}
		p.printFnArgs(d.Args, d.HasRestArg)
		p.w.Space()
		p.w.Token("=>")
		p.w.Space()
		if d.PreferExpr && len(d.Body.Stmts) == 1 {
			if ret, ok := d.Body.Stmts[0].Data.(*ast.SReturn); ok && ret.ValueOrNil.Data != nil {
				// тело-объект нужно взять в скобки, иначе это блок
				wrapBody := startsWith(ret.ValueOrNil, startObject)
				p.openParen(wrapBody)
				p.printExpr(ret.ValueOrNil, ast.LComma)
				p.closeParen(wrapBody)
				p.closeParen(wrap)
				return
			}
		}
		p.printBlock(d.Body.Stmts)
		p.closeParen(wrap)

	case *ast.EFunction:
		p.printFn(&d.Fn, "function")

	case *ast.EClass:
		p.printClass(&d.Class)

	case *ast.EAwait:
		wrap := level >= ast.LPrefix
		p.openParen(wrap)
		p.w.Token("await")
		p.w.Space()
		p.printExpr(d.Value, ast.LPrefix-1)
		p.closeParen(wrap)

	case *ast.EYield:
		wrap := level >= ast.LAssign
		p.openParen(wrap)
		p.w.Token("yield")
		if d.IsStar {
			p.w.Token("*")
		}
		if d.ValueOrNil.Data != nil {
			p.w.Space()
			p.printExpr(d.ValueOrNil, ast.LYield)
		}
		p.closeParen(wrap)

	case *ast.EIf:
		wrap := level >= ast.LConditional
		p.openParen(wrap)
		p.printExpr(d.Test, ast.LConditional)
		p.w.Space()
		p.w.Token("?")
		p.w.Space()
		p.withIn(func() { p.printExpr(d.Yes, ast.LYield) })
		p.w.Space()
		p.w.Token(":")
		p.w.Space()
		p.printExpr(d.No, ast.LYield)
		p.closeParen(wrap)

	case *ast.EUnary:
		p.printUnary(d, level)

	case *ast.EBinary:
		p.printBinary(d, level)

	case *ast.EJSXElement:
		p.printJSXElement(d)

	case *ast.EJSXText:
		p.w.WriteString(d.Raw)

	case *ast.EJSXExprContainer:
		p.w.Token("{")
		p.withIn(func() { p.printExpr(d.ExprOrNil, ast.LLowest) })
		p.w.Token("}")

	case *ast.EJSXSpreadChild:
		p.w.Token("{")
		p.w.Token("...")
		p.withIn(func() { p.printExpr(d.Value, ast.LComma) })
		p.w.Token("}")

	case *ast.EJSXNamespacedName:
		p.w.Token(d.Namespace + ":" + d.Name)

	default:
		panic("format: unhandled expression node")
	}
}

func (p *printer) openParen(wrap bool) {
	if wrap {
		p.w.Token("(")
	}
}

func (p *printer) closeParen(wrap bool) {
	if wrap {
		p.w.Token(")")
	}
}

// withIn снимает запрет на `in` внутри скобок.
func (p *printer) withIn(fn func()) {
	saved := p.forbidIn
	p.forbidIn = false
	fn()
	p.forbidIn = saved
}

func (p *printer) printMemberTarget(target ast.Expr) {
	// 1.toString() не разбирается: целое число берём в скобки
	if num, ok := target.Data.(*ast.ENumber); ok {
		text := num.Raw
		if text == "" {
			text = NumberString(num.Value)
		}
		if !strings.ContainsAny(text, ".eExXoObB") || strings.HasPrefix(text, "-") {
			p.w.Token("(")
			p.w.Token(text)
			p.w.Token(")")
			return
		}
	}
	p.printExpr(target, ast.LPostfix)
}

func (p *printer) printArgs(args []ast.Expr) {
	p.w.Token("(")
	p.withIn(func() {
		for i, arg := range args {
			if i > 0 {
				p.w.Token(",")
				p.w.Space()
			}
			p.printExpr(arg, ast.LComma)
		}
	})
	p.w.Token(")")
}

func (p *printer) printUnary(d *ast.EUnary, level ast.L) {
	entry := ast.OpTable[d.Op]
	if d.Op.IsPrefix() {
		wrap := level >= ast.LPrefix
		p.openParen(wrap)
		p.w.Token(entry.Text)
		if entry.IsKeyword {
			p.w.Space()
		}
		p.printExpr(d.Value, ast.LPrefix-1)
		p.closeParen(wrap)
		return
	}
	wrap := level >= ast.LPostfix
	p.openParen(wrap)
	p.printExpr(d.Value, ast.LPostfix-1)
	p.w.Token(entry.Text)
	p.closeParen(wrap)
}

func (p *printer) printBinary(d *ast.EBinary, level ast.L) {
	entry := ast.OpTable[d.Op]
	wrap := level >= entry.Level || d.Op == ast.BinOpIn && p.forbidIn
	leftLevel := entry.Level - 1
	rightLevel := entry.Level - 1
	if d.Op.IsRightAssociative() {
		leftLevel = entry.Level
	}
	if d.Op.IsLeftAssociative() {
		rightLevel = entry.Level
	}

	switch d.Op {
	case ast.BinOpNullishCoalescing:
		// ?? нельзя смешивать с || и && без скобок
		if isLogical(d.Left, ast.BinOpLogicalOr, ast.BinOpLogicalAnd) {
			leftLevel = ast.LPrefix
		}
		if isLogical(d.Right, ast.BinOpLogicalOr, ast.BinOpLogicalAnd) {
			rightLevel = ast.LPrefix
		}
	case ast.BinOpLogicalOr, ast.BinOpLogicalAnd:
		if isLogical(d.Left, ast.BinOpNullishCoalescing) {
			leftLevel = ast.LPrefix
		}
		if isLogical(d.Right, ast.BinOpNullishCoalescing) {
			rightLevel = ast.LPrefix
		}
	case ast.BinOpPow:
		// -a ** b — синтаксическая ошибка
		switch left := d.Left.Data.(type) {
		case *ast.EUnary:
			if left.Op.IsPrefix() {
				leftLevel = ast.LPrefix
			}
		case *ast.EAwait:
			leftLevel = ast.LPrefix
		}
	}

	p.openParen(wrap)
	inner := func() {
		p.printExpr(d.Left, leftLevel)
		if d.Op != ast.BinOpComma {
			p.w.Space()
		}
		p.w.Token(entry.Text)
		p.w.Space()
		p.printExpr(d.Right, rightLevel)
	}
	if wrap {
		p.withIn(inner)
	} else {
		inner()
	}
	p.closeParen(wrap)
}

func isLogical(e ast.Expr, ops ...ast.OpCode) bool {
	bin, ok := e.Data.(*ast.EBinary)
	if !ok {
		return false
	}
	for _, op := range ops {
		if bin.Op == op {
			return true
		}
	}
	return false
}

func (p *printer) printTemplate(d *ast.ETemplate) {
	p.w.Token("`")
	for i, q := range d.Quasis {
		if q.Raw != "" {
			p.w.WriteString(q.Raw)
		} else {
			p.w.WriteString(EscapeTemplate(q.Cooked))
		}
		if i < len(d.Exprs) {
			p.w.WriteString("${")
			p.withIn(func() { p.printExpr(d.Exprs[i], ast.LLowest) })
			p.w.WriteString("}")
		}
	}
	p.w.WriteString("`")
}

func (p *printer) printObject(d *ast.EObject) {
	if len(d.Properties) == 0 {
		p.w.Token("{}")
		return
	}
	p.w.Token("{")
	p.w.Space()
	p.withIn(func() {
		for i := range d.Properties {
			if i > 0 {
				p.w.Token(",")
				p.w.Space()
			}
			p.printProperty(&d.Properties[i], false)
		}
	})
	p.w.Space()
	p.w.Token("}")
}

// printProperty печатает элемент объектного литерала или член класса.
func (p *printer) printProperty(prop *ast.Property, inClass bool) {
	if prop.Kind == ast.PropertySpread {
		p.w.Token("...")
		p.printExpr(prop.ValueOrNil, ast.LComma)
		return
	}
	if prop.Flags.Has(ast.PropertyIsStatic) {
		p.w.Token("static")
		p.w.Space()
	}
	if prop.Kind == ast.PropertyClassStaticBlock {
		p.printBlock(prop.StaticBlock.Stmts)
		return
	}

	if fn, ok := prop.ValueOrNil.Data.(*ast.EFunction); ok && prop.Kind.IsMethodDefinition() {
		switch {
		case prop.Kind == ast.PropertyGetter:
			p.w.Token("get")
			p.w.Space()
		case prop.Kind == ast.PropertySetter:
			p.w.Token("set")
			p.w.Space()
		case fn.Fn.IsAsync:
			p.w.Token("async")
			p.w.Space()
		}
		if fn.Fn.IsGenerator {
			p.w.Token("*")
		}
		p.printPropertyKey(prop)
		p.printFnArgs(fn.Fn.Args, fn.Fn.HasRestArg)
		p.w.Space()
		p.printBlock(fn.Fn.Body.Stmts)
		return
	}

	if prop.Flags.Has(ast.PropertyWasShorthand) && !inClass {
		if key, ok := prop.Key.Data.(*ast.EString); ok {
			if id, ok := prop.ValueOrNil.Data.(*ast.EIdentifier); ok && id.Name == key.Value {
				p.w.Token(id.Name)
				if prop.InitializerOrNil.Data != nil {
					p.w.Space()
					p.w.Token("=")
					p.w.Space()
					p.printExpr(prop.InitializerOrNil, ast.LComma)
				}
				return
			}
		}
	}

	p.printPropertyKey(prop)
	if inClass {
		if prop.ValueOrNil.Data != nil {
			p.w.Space()
			p.w.Token("=")
			p.w.Space()
			p.printExpr(prop.ValueOrNil, ast.LComma)
		}
		p.w.Token(";")
		return
	}
	p.w.Token(":")
	p.w.Space()
	p.printExpr(prop.ValueOrNil, ast.LComma)
}

func (p *printer) printPropertyKey(prop *ast.Property) {
	if prop.Flags.Has(ast.PropertyIsComputed) {
		p.w.Token("[")
		p.withIn(func() { p.printExpr(prop.Key, ast.LComma) })
		p.w.Token("]")
		return
	}
	p.printKey(prop.Key)
}

// printKey печатает имя свойства: голым идентификатором, если можно.
func (p *printer) printKey(key ast.Expr) {
	if s, ok := key.Data.(*ast.EString); ok && IsIdentifier(s.Value) {
		p.w.Token(s.Value)
		return
	}
	p.printExpr(key, ast.LLowest)
}

func hasCall(e ast.Expr) bool {
	for {
		switch d := e.Data.(type) {
		case *ast.ECall:
			return true
		case *ast.EDot:
			e = d.Target
		case *ast.EIndex:
			e = d.Target
		default:
			return false
		}
	}
}

type leftmostKind uint8

const (
	startObject leftmostKind = 1 << iota
	startFunction
	startClass
	startLetBracket
)

// startsWith проверяет, с чего начнётся напечатанное выражение: оператор-выражение
// не может начинаться с `{`, `function`, `class` или `let [`.
func startsWith(e ast.Expr, kinds leftmostKind) bool {
	for {
		switch d := e.Data.(type) {
		case *ast.EObject:
			return kinds&startObject != 0
		case *ast.EFunction:
			return kinds&startFunction != 0
		case *ast.EClass:
			return kinds&startClass != 0
		case *ast.EIndex:
			if id, ok := d.Target.Data.(*ast.EIdentifier); ok && id.Name == "let" {
				return kinds&startLetBracket != 0
			}
			e = d.Target
		case *ast.EBinary:
			e = d.Left
		case *ast.ECall:
			e = d.Target
		case *ast.EDot:
			e = d.Target
		case *ast.EIf:
			e = d.Test
		case *ast.ETemplate:
			if d.TagOrNil.Data == nil {
				return false
			}
			e = d.TagOrNil
		case *ast.EUnary:
			if d.Op.IsPrefix() {
				return false
			}
			e = d.Value
		default:
			return false
		}
	}
}

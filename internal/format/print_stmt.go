package format

import (
	"jsxstream/internal/ast"
)

func (p *printer) printStmts(stmts []ast.Stmt) {
	for _, st := range stmts {
		p.printStmt(st)
	}
}

// printBlock печатает { ... } без перевода строки после закрывающей скобки.
func (p *printer) printBlock(stmts []ast.Stmt) {
	p.w.Token("{")
	if len(stmts) == 0 {
		p.w.Token("}")
		return
	}
	p.w.Newline()
	p.w.IndentPush()
	p.withIn(func() { p.printStmts(stmts) })
	p.w.IndentPop()
	p.w.Token("}")
}

// printBody печатает тело if/for/while: блок на той же строке, иначе с отступом.
func (p *printer) printBody(body ast.Stmt) {
	if block, ok := body.Data.(*ast.SBlock); ok {
		p.w.Space()
		p.printBlock(block.Stmts)
		p.w.Newline()
		return
	}
	p.w.Newline()
	p.w.IndentPush()
	p.printStmt(body)
	p.w.IndentPop()
}

func (p *printer) semi() {
	p.w.Token(";")
	p.w.Newline()
}

func (p *printer) printStmt(st ast.Stmt) {
	switch d := st.Data.(type) {
	case *ast.STypeScript:
		// вырезанные TypeScript-объявления не печатаются

	case *ast.SEmpty:
		p.semi()

	case *ast.SDebugger:
		p.w.Token("debugger")
		p.semi()

	case *ast.SDirective:
		p.w.Token(d.Raw)
		p.semi()

	case *ast.SBlock:
		p.printBlock(d.Stmts)
		p.w.Newline()

	case *ast.SExpr:
		wrap := startsWith(d.Value, startObject|startFunction|startClass|startLetBracket)
		p.openParen(wrap)
		p.printExpr(d.Value, ast.LLowest)
		p.closeParen(wrap)
		p.semi()

	case *ast.SLocal:
		if d.IsExport {
			p.w.Token("export")
			p.w.Space()
		}
		p.printLocal(d)
		p.semi()

	case *ast.SFunction:
		if d.IsExport {
			p.w.Token("export")
			p.w.Space()
		}
		p.printFn(&d.Fn, "function")
		p.w.Newline()

	case *ast.SClass:
		if d.IsExport {
			p.w.Token("export")
			p.w.Space()
		}
		p.printClass(&d.Class)
		p.w.Newline()

	case *ast.SImport:
		p.printImport(d)

	case *ast.SExportClause:
		p.w.Token("export")
		p.w.Space()
		p.printClause(d.Items)
		p.semi()

	case *ast.SExportFrom:
		p.w.Token("export")
		p.w.Space()
		p.printClause(d.Items)
		p.printFrom(d.Path)
		p.semi()

	case *ast.SExportStar:
		p.w.Token("export")
		p.w.Space()
		p.w.Token("*")
		if d.AliasOrEmpty != "" {
			p.w.Space()
			p.w.Token("as")
			p.w.Space()
			p.printClauseName(d.AliasOrEmpty)
		}
		p.printFrom(d.Path)
		p.semi()

	case *ast.SExportDefault:
		p.w.Token("export")
		p.w.Space()
		p.w.Token("default")
		p.w.Space()
		switch v := d.Value.Data.(type) {
		case *ast.SFunction:
			p.printFn(&v.Fn, "function")
			p.w.Newline()
		case *ast.SClass:
			p.printClass(&v.Class)
			p.w.Newline()
		case *ast.SExpr:
			wrap := startsWith(v.Value, startFunction|startClass)
			p.openParen(wrap)
			p.printExpr(v.Value, ast.LComma)
			p.closeParen(wrap)
			p.semi()
		}

	case *ast.SReturn:
		p.w.Token("return")
		if d.ValueOrNil.Data != nil {
			p.w.Space()
			p.printExpr(d.ValueOrNil, ast.LLowest)
		}
		p.semi()

	case *ast.SThrow:
		p.w.Token("throw")
		p.w.Space()
		p.printExpr(d.Value, ast.LLowest)
		p.semi()

	case *ast.SBreak:
		p.w.Token("break")
		if d.Label != "" {
			p.w.Space()
			p.w.Token(d.Label)
		}
		p.semi()

	case *ast.SContinue:
		p.w.Token("continue")
		if d.Label != "" {
			p.w.Space()
			p.w.Token(d.Label)
		}
		p.semi()

	case *ast.SLabel:
		p.w.Token(d.Name)
		p.w.Token(":")
		p.w.Space()
		p.printStmt(d.Stmt)

	case *ast.SIf:
		p.printIf(d)

	case *ast.SWhile:
		p.w.Token("while")
		p.w.Space()
		p.printParenExpr(d.Test)
		p.printBody(d.Body)

	case *ast.SDoWhile:
		p.w.Token("do")
		if block, ok := d.Body.Data.(*ast.SBlock); ok {
			p.w.Space()
			p.printBlock(block.Stmts)
			p.w.Space()
		} else {
			p.w.Newline()
			p.w.IndentPush()
			p.printStmt(d.Body)
			p.w.IndentPop()
		}
		p.w.Token("while")
		p.w.Space()
		p.printParenExpr(d.Test)
		p.semi()

	case *ast.SWith:
		p.w.Token("with")
		p.w.Space()
		p.printParenExpr(d.Value)
		p.printBody(d.Body)

	case *ast.SFor:
		p.w.Token("for")
		p.w.Space()
		p.w.Token("(")
		if d.InitOrNil.Data != nil {
			p.printForInit(d.InitOrNil)
		}
		p.w.Token(";")
		if d.TestOrNil.Data != nil {
			p.w.Space()
			p.printExpr(d.TestOrNil, ast.LLowest)
		}
		p.w.Token(";")
		if d.UpdateOrNil.Data != nil {
			p.w.Space()
			p.printExpr(d.UpdateOrNil, ast.LLowest)
		}
		p.w.Token(")")
		p.printBody(d.Body)

	case *ast.SForIn:
		p.w.Token("for")
		p.w.Space()
		p.w.Token("(")
		p.printForInit(d.Init)
		p.w.Space()
		p.w.Token("in")
		p.w.Space()
		p.printExpr(d.Value, ast.LLowest)
		p.w.Token(")")
		p.printBody(d.Body)

	case *ast.SForOf:
		p.w.Token("for")
		if d.IsAwait {
			p.w.Space()
			p.w.Token("await")
		}
		p.w.Space()
		p.w.Token("(")
		p.printForInit(d.Init)
		p.w.Space()
		p.w.Token("of")
		p.w.Space()
		p.printExpr(d.Value, ast.LComma)
		p.w.Token(")")
		p.printBody(d.Body)

	case *ast.STry:
		p.w.Token("try")
		p.w.Space()
		p.printBlock(d.Block.Stmts)
		if d.CatchOrNil != nil {
			p.w.Space()
			p.w.Token("catch")
			if d.CatchOrNil.BindingOrNil.Data != nil {
				p.w.Space()
				p.w.Token("(")
				p.printBinding(d.CatchOrNil.BindingOrNil)
				p.w.Token(")")
			}
			p.w.Space()
			p.printBlock(d.CatchOrNil.Block.Stmts)
		}
		if d.FinallyOrNil != nil {
			p.w.Space()
			p.w.Token("finally")
			p.w.Space()
			p.printBlock(d.FinallyOrNil.Stmts)
		}
		p.w.Newline()

	case *ast.SSwitch:
		p.w.Token("switch")
		p.w.Space()
		p.printParenExpr(d.Test)
		p.w.Space()
		p.w.Token("{")
		p.w.Newline()
		p.w.IndentPush()
		for _, c := range d.Cases {
			if c.ValueOrNil.Data != nil {
				p.w.Token("case")
				p.w.Space()
				p.printExpr(c.ValueOrNil, ast.LLowest)
			} else {
				p.w.Token("default")
			}
			p.w.Token(":")
			p.w.Newline()
			p.w.IndentPush()
			p.printStmts(c.Body)
			p.w.IndentPop()
		}
		p.w.IndentPop()
		p.w.Token("}")
		p.w.Newline()

	default:
		panic("format: unhandled statement node")
	}
}

func (p *printer) printParenExpr(e ast.Expr) {
	p.w.Token("(")
	p.printExpr(e, ast.LLowest)
	p.w.Token(")")
}

func (p *printer) printIf(d *ast.SIf) {
	p.w.Token("if")
	p.w.Space()
	p.printParenExpr(d.Test)
	if d.NoOrNil.Data == nil {
		p.printBody(d.Yes)
		return
	}

	yes := d.Yes
	// висячий else: if (a) if (b) x; else y — внутренний if берём в блок
	if inner, ok := yes.Data.(*ast.SIf); ok && inner.NoOrNil.Data == nil {
		yes = ast.Stmt{Data: &ast.SBlock{Stmts: []ast.Stmt{yes}}}
	}
	if block, ok := yes.Data.(*ast.SBlock); ok {
		p.w.Space()
		p.printBlock(block.Stmts)
		p.w.Space()
	} else {
		p.w.Newline()
		p.w.IndentPush()
		p.printStmt(yes)
		p.w.IndentPop()
	}

	p.w.Token("else")
	switch no := d.NoOrNil.Data.(type) {
	case *ast.SIf:
		p.w.Space()
		p.printIf(no)
	default:
		p.printBody(d.NoOrNil)
	}
}

func (p *printer) printForInit(init ast.Stmt) {
	saved := p.forbidIn
	p.forbidIn = true
	switch d := init.Data.(type) {
	case *ast.SLocal:
		p.printLocal(d)
	case *ast.SExpr:
		p.printExpr(d.Value, ast.LLowest)
	}
	p.forbidIn = saved
}

func (p *printer) printLocal(d *ast.SLocal) {
	p.w.Token(d.Kind.String())
	p.w.Space()
	for i, decl := range d.Decls {
		if i > 0 {
			p.w.Token(",")
			p.w.Space()
		}
		p.printBinding(decl.Binding)
		if decl.ValueOrNil.Data != nil {
			p.w.Space()
			p.w.Token("=")
			p.w.Space()
			p.printExpr(decl.ValueOrNil, ast.LComma)
		}
	}
}

func (p *printer) printImport(d *ast.SImport) {
	p.w.Token("import")
	p.w.Space()
	named := false
	if d.DefaultName != nil {
		p.w.Token(d.DefaultName.Name)
		named = true
	}
	if d.StarNameOrNil != nil {
		if named {
			p.w.Token(",")
			p.w.Space()
		}
		p.w.Token("*")
		p.w.Space()
		p.w.Token("as")
		p.w.Space()
		p.w.Token(d.StarNameOrNil.Name)
		named = true
	}
	if d.Items != nil {
		if named {
			p.w.Token(",")
			p.w.Space()
		}
		p.printClause(*d.Items)
		named = true
	}
	if named {
		p.printFrom(d.Path)
	} else {
		p.w.Token(QuoteString(d.Path))
	}
	p.semi()
}

func (p *printer) printClause(items []ast.ClauseItem) {
	p.w.Token("{")
	if len(items) > 0 {
		p.w.Space()
	}
	for i, item := range items {
		if i > 0 {
			p.w.Token(",")
			p.w.Space()
		}
		p.printClauseName(item.OriginalName)
		if item.Alias != item.OriginalName {
			p.w.Space()
			p.w.Token("as")
			p.w.Space()
			p.printClauseName(item.Alias)
		}
	}
	if len(items) > 0 {
		p.w.Space()
	}
	p.w.Token("}")
}

// printClauseName: имена в import/export могут быть строками ("a-b").
func (p *printer) printClauseName(name string) {
	if IsIdentifier(name) {
		p.w.Token(name)
		return
	}
	p.w.Token(QuoteString(name))
}

func (p *printer) printFrom(path string) {
	p.w.Space()
	p.w.Token("from")
	p.w.Space()
	p.w.Token(QuoteString(path))
}

package lower

import "jsxstream/internal/ast"

// Program rewrites every top-level JSX element of prog in place.
// The first fault aborts the rewrite; prog is then partially rewritten and
// must not be printed.
func (l *Lowerer) Program(prog *ast.Program) error {
	return l.stmts(prog.Stmts)
}

// Root lowers el as top-level markup: a fresh deferred list, the processed
// root as the first payload, and the streaming continuation.
func (l *Lowerer) Root(el *ast.EJSXElement) (ast.Expr, error) {
	var d Deferred
	out, err := l.Element(el, &d)
	if err != nil {
		return ast.Expr{}, err
	}
	first := l.Process(out, &d)
	l.stats.Roots++
	return l.assemble(first.StringOrTemplate(), &d), nil
}

func (l *Lowerer) stmts(stmts []ast.Stmt) error {
	for i := range stmts {
		if err := l.stmt(&stmts[i]); err != nil {
			return err
		}
	}
	return nil
}

func (l *Lowerer) optStmt(stmt *ast.Stmt) error {
	if stmt.Data == nil {
		return nil
	}
	return l.stmt(stmt)
}

func (l *Lowerer) optExpr(e *ast.Expr) error {
	if e.Data == nil {
		return nil
	}
	return l.expr(e)
}

func (l *Lowerer) stmt(stmt *ast.Stmt) error {
	switch s := stmt.Data.(type) {
	case *ast.SBlock:
		return l.stmts(s.Stmts)
	case *ast.SExpr:
		return l.expr(&s.Value)
	case *ast.SLocal:
		for i := range s.Decls {
			if err := l.binding(&s.Decls[i].Binding); err != nil {
				return err
			}
			if err := l.optExpr(&s.Decls[i].ValueOrNil); err != nil {
				return err
			}
		}
	case *ast.SFunction:
		return l.fn(&s.Fn)
	case *ast.SClass:
		return l.class(&s.Class)
	case *ast.SExportDefault:
		return l.stmt(&s.Value)
	case *ast.SReturn:
		return l.optExpr(&s.ValueOrNil)
	case *ast.SThrow:
		return l.expr(&s.Value)
	case *ast.SIf:
		if err := l.expr(&s.Test); err != nil {
			return err
		}
		if err := l.stmt(&s.Yes); err != nil {
			return err
		}
		return l.optStmt(&s.NoOrNil)
	case *ast.SFor:
		if err := l.optStmt(&s.InitOrNil); err != nil {
			return err
		}
		if err := l.optExpr(&s.TestOrNil); err != nil {
			return err
		}
		if err := l.optExpr(&s.UpdateOrNil); err != nil {
			return err
		}
		return l.stmt(&s.Body)
	case *ast.SForIn:
		if err := l.stmt(&s.Init); err != nil {
			return err
		}
		if err := l.expr(&s.Value); err != nil {
			return err
		}
		return l.stmt(&s.Body)
	case *ast.SForOf:
		if err := l.stmt(&s.Init); err != nil {
			return err
		}
		if err := l.expr(&s.Value); err != nil {
			return err
		}
		return l.stmt(&s.Body)
	case *ast.SWhile:
		if err := l.expr(&s.Test); err != nil {
			return err
		}
		return l.stmt(&s.Body)
	case *ast.SDoWhile:
		if err := l.stmt(&s.Body); err != nil {
			return err
		}
		return l.expr(&s.Test)
	case *ast.SWith:
		if err := l.expr(&s.Value); err != nil {
			return err
		}
		return l.stmt(&s.Body)
	case *ast.SLabel:
		return l.stmt(&s.Stmt)
	case *ast.STry:
		if err := l.stmts(s.Block.Stmts); err != nil {
			return err
		}
		if s.CatchOrNil != nil {
			if err := l.binding(&s.CatchOrNil.BindingOrNil); err != nil {
				return err
			}
			if err := l.stmts(s.CatchOrNil.Block.Stmts); err != nil {
				return err
			}
		}
		if s.FinallyOrNil != nil {
			return l.stmts(s.FinallyOrNil.Stmts)
		}
	case *ast.SSwitch:
		if err := l.expr(&s.Test); err != nil {
			return err
		}
		for i := range s.Cases {
			if err := l.optExpr(&s.Cases[i].ValueOrNil); err != nil {
				return err
			}
			if err := l.stmts(s.Cases[i].Body); err != nil {
				return err
			}
		}
	}
	return nil
}

func (l *Lowerer) fn(fn *ast.Fn) error {
	if err := l.args(fn.Args); err != nil {
		return err
	}
	return l.stmts(fn.Body.Stmts)
}

func (l *Lowerer) args(args []ast.Arg) error {
	for i := range args {
		if err := l.binding(&args[i].Binding); err != nil {
			return err
		}
		if err := l.optExpr(&args[i].DefaultOrNil); err != nil {
			return err
		}
	}
	return nil
}

func (l *Lowerer) class(class *ast.Class) error {
	if err := l.optExpr(&class.ExtendsOrNil); err != nil {
		return err
	}
	for i := range class.Properties {
		prop := &class.Properties[i]
		if prop.StaticBlock != nil {
			if err := l.stmts(prop.StaticBlock.Stmts); err != nil {
				return err
			}
			continue
		}
		if err := l.propertyExprs(prop); err != nil {
			return err
		}
	}
	return nil
}

func (l *Lowerer) propertyExprs(prop *ast.Property) error {
	if prop.Flags.Has(ast.PropertyIsComputed) {
		if err := l.optExpr(&prop.Key); err != nil {
			return err
		}
	}
	if err := l.optExpr(&prop.ValueOrNil); err != nil {
		return err
	}
	return l.optExpr(&prop.InitializerOrNil)
}

func (l *Lowerer) binding(b *ast.Binding) error {
	switch d := b.Data.(type) {
	case *ast.BArray:
		for i := range d.Items {
			if err := l.binding(&d.Items[i].Binding); err != nil {
				return err
			}
			if err := l.optExpr(&d.Items[i].DefaultValueOrNil); err != nil {
				return err
			}
		}
	case *ast.BObject:
		for i := range d.Properties {
			prop := &d.Properties[i]
			if prop.IsComputed {
				if err := l.expr(&prop.Key); err != nil {
					return err
				}
			}
			if err := l.binding(&prop.Value); err != nil {
				return err
			}
			if err := l.optExpr(&prop.DefaultValueOrNil); err != nil {
				return err
			}
		}
	}
	return nil
}

func (l *Lowerer) exprs(exprs []ast.Expr) error {
	for i := range exprs {
		if err := l.expr(&exprs[i]); err != nil {
			return err
		}
	}
	return nil
}

// expr rewrites e in place when it is markup and descends otherwise.
func (l *Lowerer) expr(e *ast.Expr) error {
	switch d := e.Data.(type) {
	case *ast.EJSXElement:
		root, err := l.Root(d)
		if err != nil {
			return err
		}
		root.Span = e.Span
		*e = root
	case *ast.EArrow:
		if err := l.args(d.Args); err != nil {
			return err
		}
		return l.stmts(d.Body.Stmts)
	case *ast.EFunction:
		return l.fn(&d.Fn)
	case *ast.EClass:
		return l.class(&d.Class)
	case *ast.EBinary:
		if err := l.expr(&d.Left); err != nil {
			return err
		}
		return l.expr(&d.Right)
	case *ast.EUnary:
		return l.expr(&d.Value)
	case *ast.ECall:
		if err := l.expr(&d.Target); err != nil {
			return err
		}
		return l.exprs(d.Args)
	case *ast.ENew:
		if err := l.expr(&d.Target); err != nil {
			return err
		}
		return l.exprs(d.Args)
	case *ast.EDot:
		return l.expr(&d.Target)
	case *ast.EIndex:
		if err := l.expr(&d.Target); err != nil {
			return err
		}
		return l.expr(&d.Index)
	case *ast.EIf:
		if err := l.expr(&d.Test); err != nil {
			return err
		}
		if err := l.expr(&d.Yes); err != nil {
			return err
		}
		return l.expr(&d.No)
	case *ast.EArray:
		return l.exprs(d.Items)
	case *ast.EObject:
		for i := range d.Properties {
			if err := l.propertyExprs(&d.Properties[i]); err != nil {
				return err
			}
		}
	case *ast.ESpread:
		return l.expr(&d.Value)
	case *ast.ETemplate:
		if err := l.optExpr(&d.TagOrNil); err != nil {
			return err
		}
		return l.exprs(d.Exprs)
	case *ast.EAwait:
		return l.expr(&d.Value)
	case *ast.EYield:
		return l.optExpr(&d.ValueOrNil)
	case *ast.EImportCall:
		if err := l.expr(&d.Expr); err != nil {
			return err
		}
		return l.optExpr(&d.OptionsOrNil)
	case *ast.EParen:
		return l.expr(&d.Value)
	}
	return nil
}

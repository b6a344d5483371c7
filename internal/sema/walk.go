package sema

import (
	"jsxstream/internal/ast"
	"jsxstream/internal/types"
)

func (c *checker) stmts(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		c.stmt(stmt)
	}
}

func (c *checker) stmt(stmt ast.Stmt) {
	switch s := stmt.Data.(type) {
	case *ast.SBlock:
		c.stmts(s.Stmts)
	case *ast.SExpr:
		c.expr(s.Value)
	case *ast.SLocal:
		c.local(s)
	case *ast.SFunction:
		t := c.fn(&s.Fn)
		if s.Fn.Name == nil {
			return
		}
		c.scopes.define(s.Fn.Name.Name, t)
		if s.IsExport {
			c.exports[s.Fn.Name.Name] = t
		}
	case *ast.SClass:
		c.class(&s.Class)
		if s.IsExport && s.Class.Name != nil {
			c.exports[s.Class.Name.Name] = c.scopes.lookup(s.Class.Name.Name)
		}
	case *ast.SReturn:
		if s.ValueOrNil.Data == nil {
			c.ret = types.Other
			return
		}
		c.expr(s.ValueOrNil)
		c.ret = c.exprType(s.ValueOrNil)
	case *ast.SThrow:
		c.expr(s.Value)
	case *ast.SIf:
		c.expr(s.Test)
		c.stmt(s.Yes)
		if s.NoOrNil.Data != nil {
			c.stmt(s.NoOrNil)
		}
	case *ast.SFor:
		if s.InitOrNil.Data != nil {
			c.stmt(s.InitOrNil)
		}
		if s.TestOrNil.Data != nil {
			c.expr(s.TestOrNil)
		}
		if s.UpdateOrNil.Data != nil {
			c.expr(s.UpdateOrNil)
		}
		c.stmt(s.Body)
	case *ast.SForIn:
		c.stmt(s.Init)
		c.expr(s.Value)
		c.stmt(s.Body)
	case *ast.SForOf:
		c.stmt(s.Init)
		c.expr(s.Value)
		c.stmt(s.Body)
	case *ast.SWhile:
		c.expr(s.Test)
		c.stmt(s.Body)
	case *ast.SDoWhile:
		c.stmt(s.Body)
		c.expr(s.Test)
	case *ast.SWith:
		c.expr(s.Value)
		c.stmt(s.Body)
	case *ast.SLabel:
		c.stmt(s.Stmt)
	case *ast.STry:
		c.stmts(s.Block.Stmts)
		if s.CatchOrNil != nil {
			if s.CatchOrNil.BindingOrNil.Data != nil {
				c.binding(s.CatchOrNil.BindingOrNil)
			}
			c.stmts(s.CatchOrNil.Block.Stmts)
		}
		if s.FinallyOrNil != nil {
			c.stmts(s.FinallyOrNil.Stmts)
		}
	case *ast.SSwitch:
		c.expr(s.Test)
		for _, cs := range s.Cases {
			if cs.ValueOrNil.Data != nil {
				c.expr(cs.ValueOrNil)
			}
			c.stmts(cs.Body)
		}
	}
}

// local records each simply-named declarator after walking its
// initializer, so the arrow register already holds the initializer's own
// arrow.
func (c *checker) local(s *ast.SLocal) {
	for _, decl := range s.Decls {
		c.binding(decl.Binding)
		t := types.Other
		if decl.ValueOrNil.Data != nil {
			c.expr(decl.ValueOrNil)
			t = c.exprType(decl.ValueOrNil)
		}
		if name, ok := decl.Binding.SimpleName(); ok {
			c.scopes.define(name, t)
		}
		if s.IsExport {
			for _, name := range bindingNames(decl.Binding, nil) {
				c.exports[name] = c.scopes.lookup(name)
			}
		}
	}
}

func (c *checker) fn(fn *ast.Fn) types.ExportType {
	t := c.function(fn.Args, fn.Body.Stmts, fn.IsAsync)
	if fn.IsGenerator {
		// генератор возвращает итератор, а не значение return
		return types.Other
	}
	return t
}

// function walks one function frame and returns its type: the type of the
// last return statement, Other without one, awaited for async functions.
func (c *checker) function(args []ast.Arg, body []ast.Stmt, isAsync bool) types.ExportType {
	saved := c.ret
	c.ret = types.Other
	c.scopes.push()
	for _, arg := range args {
		c.binding(arg.Binding)
		if arg.DefaultOrNil.Data != nil {
			c.expr(arg.DefaultOrNil)
		}
		for _, name := range bindingNames(arg.Binding, nil) {
			c.scopes.define(name, types.Other)
		}
	}
	c.stmts(body)
	t := c.ret
	c.scopes.pop()
	c.ret = saved
	if isAsync {
		t = types.Awaited(t)
	}
	return t
}

func (c *checker) class(class *ast.Class) {
	if class.ExtendsOrNil.Data != nil {
		c.expr(class.ExtendsOrNil)
	}
	for i := range class.Properties {
		prop := &class.Properties[i]
		if prop.Kind == ast.PropertyClassStaticBlock {
			if prop.StaticBlock != nil {
				c.function(nil, prop.StaticBlock.Stmts, false)
			}
			continue
		}
		c.property(prop)
	}
}

func (c *checker) property(prop *ast.Property) {
	if prop.Flags.Has(ast.PropertyIsComputed) && prop.Key.Data != nil {
		c.expr(prop.Key)
	}
	if prop.ValueOrNil.Data != nil {
		c.expr(prop.ValueOrNil)
	}
	if prop.InitializerOrNil.Data != nil {
		c.expr(prop.InitializerOrNil)
	}
}

// binding walks default values and computed keys inside a pattern.
func (c *checker) binding(b ast.Binding) {
	switch d := b.Data.(type) {
	case *ast.BArray:
		for _, item := range d.Items {
			c.binding(item.Binding)
			if item.DefaultValueOrNil.Data != nil {
				c.expr(item.DefaultValueOrNil)
			}
		}
	case *ast.BObject:
		for _, prop := range d.Properties {
			if prop.IsComputed {
				c.expr(prop.Key)
			}
			c.binding(prop.Value)
			if prop.DefaultValueOrNil.Data != nil {
				c.expr(prop.DefaultValueOrNil)
			}
		}
	}
}

// bindingNames appends every identifier a pattern binds.
func bindingNames(b ast.Binding, names []string) []string {
	switch d := b.Data.(type) {
	case *ast.BIdentifier:
		names = append(names, d.Name)
	case *ast.BArray:
		for _, item := range d.Items {
			names = bindingNames(item.Binding, names)
		}
	case *ast.BObject:
		for _, prop := range d.Properties {
			names = bindingNames(prop.Value, names)
		}
	}
	return names
}

func (c *checker) exprs(exprs []ast.Expr) {
	for _, e := range exprs {
		c.expr(e)
	}
}

func (c *checker) expr(e ast.Expr) {
	switch d := e.Data.(type) {
	case *ast.EArrow:
		c.closure = c.function(d.Args, d.Body.Stmts, d.IsAsync)
	case *ast.EFunction:
		c.fn(&d.Fn)
	case *ast.EClass:
		c.class(&d.Class)
	case *ast.EBinary:
		c.expr(d.Left)
		c.expr(d.Right)
		if d.Op != ast.BinOpAssign {
			return
		}
		if id, ok := d.Left.Data.(*ast.EIdentifier); ok {
			c.scopes.define(id.Name, c.exprType(d.Right))
		}
	case *ast.EUnary:
		c.expr(d.Value)
	case *ast.ECall:
		c.expr(d.Target)
		c.exprs(d.Args)
	case *ast.ENew:
		c.expr(d.Target)
		c.exprs(d.Args)
	case *ast.EDot:
		c.expr(d.Target)
	case *ast.EIndex:
		c.expr(d.Target)
		c.expr(d.Index)
	case *ast.EIf:
		c.expr(d.Test)
		c.expr(d.Yes)
		c.expr(d.No)
	case *ast.EArray:
		c.exprs(d.Items)
	case *ast.EObject:
		for i := range d.Properties {
			c.property(&d.Properties[i])
		}
	case *ast.ESpread:
		c.expr(d.Value)
	case *ast.ETemplate:
		if d.TagOrNil.Data != nil {
			c.expr(d.TagOrNil)
		}
		c.exprs(d.Exprs)
	case *ast.EAwait:
		c.expr(d.Value)
	case *ast.EYield:
		if d.ValueOrNil.Data != nil {
			c.expr(d.ValueOrNil)
		}
	case *ast.EImportCall:
		c.expr(d.Expr)
		if d.OptionsOrNil.Data != nil {
			c.expr(d.OptionsOrNil)
		}
	case *ast.EParen:
		c.expr(d.Value)
	case *ast.EJSXElement:
		for _, attr := range d.Attrs {
			if attr.IsSpread {
				c.expr(attr.Spread)
			} else if attr.ValueOrNil.Data != nil {
				c.expr(attr.ValueOrNil)
			}
		}
		c.exprs(d.Children)
	case *ast.EJSXExprContainer:
		if d.ExprOrNil.Data != nil {
			c.expr(d.ExprOrNil)
		}
	case *ast.EJSXSpreadChild:
		c.expr(d.Value)
	}
}

// exprType is the type an expression evaluates to.
func (c *checker) exprType(e ast.Expr) types.ExportType {
	switch d := e.Data.(type) {
	case *ast.EJSXElement:
		return types.Markup
	case *ast.EAwait:
		return types.Awaited(c.exprType(d.Value))
	case *ast.ECall:
		return c.exprType(d.Target)
	case *ast.EIf:
		return types.Join(c.exprType(d.Yes), c.exprType(d.No))
	case *ast.EIdentifier:
		return c.scopes.lookup(d.Name)
	case *ast.EParen:
		return c.exprType(d.Value)
	case *ast.EBinary:
		if d.Op == ast.BinOpAssign {
			return c.exprType(d.Right)
		}
	case *ast.EArrow:
		// приближение: тип последней закрытой стрелочной функции
		return c.closure
	}
	return types.Other
}

package sema

import (
	"jsxstream/internal/ast"
	"jsxstream/internal/diag"
	"jsxstream/internal/types"
)

// ImportResolver supplies the exports of another module by import path.
// It reports false for modules it does not know about; names imported from
// them stay unresolved.
type ImportResolver interface {
	ResolveExports(path string) (types.Exports, bool)
}

// ImportResolverFunc adapts a plain function to ImportResolver.
type ImportResolverFunc func(path string) (types.Exports, bool)

func (f ImportResolverFunc) ResolveExports(path string) (types.Exports, bool) {
	return f(path)
}

// Options configure one inference pass.
type Options struct {
	Imports ImportResolver // nil: imports stay unresolved
}

// Result holds the inferred types of one module.
type Result struct {
	// Exports maps exported names, including types.DefaultExport, to types.
	Exports types.Exports
	// Bindings is the final module scope: top-level declarations and
	// resolved imports. Lowering consults it for component tags.
	Bindings types.Exports
}

// Lookup reports the type of a module-scope binding.
func (r Result) Lookup(name string) (types.ExportType, bool) {
	return r.Bindings.Lookup(name)
}

// Infer walks prog once and returns the types of its exports.
// Unsupported constructs abort the pass with a *diag.Fault.
func Infer(prog *ast.Program, opts Options) (Result, error) {
	c := newChecker(opts)
	if prog != nil {
		for _, stmt := range prog.Stmts {
			if err := c.moduleStmt(stmt); err != nil {
				return Result{}, err
			}
		}
	}
	c.resolveExports()
	return Result{Exports: c.exports, Bindings: c.scopes.root()}, nil
}

// exportRef is `export { name as alias }` resolved after the walk, so the
// clause may precede the declaration it names.
type exportRef struct {
	alias string
	name  string
}

type checker struct {
	scopes  scopeStack
	ret     types.ExportType // тип последнего return текущей функции
	closure types.ExportType // тип последней закрытой стрелочной функции
	exports types.Exports
	imports ImportResolver
	refs    []exportRef
}

func newChecker(opts Options) *checker {
	return &checker{
		scopes:  newScopeStack(),
		exports: make(types.Exports),
		imports: opts.Imports,
	}
}

func (c *checker) moduleStmt(stmt ast.Stmt) error {
	switch s := stmt.Data.(type) {
	case *ast.SImport:
		c.importDecl(s)
	case *ast.SExportStar:
		if s.AliasOrEmpty == "" {
			return diag.Faultf(diag.SemaUnsupportedExportAll, stmt.Span,
				"export * from %q is not supported, list the re-exported names instead", s.Path)
		}
		// export * as ns: пространство имён не разметка
		c.exports[s.AliasOrEmpty] = types.Other
	case *ast.SExportFrom:
		c.exportFrom(s)
	case *ast.SExportClause:
		for _, item := range s.Items {
			c.refs = append(c.refs, exportRef{alias: item.Alias, name: item.OriginalName})
		}
	case *ast.SExportDefault:
		return c.exportDefault(s)
	default:
		c.stmt(stmt)
	}
	return nil
}

func (c *checker) importDecl(s *ast.SImport) {
	if c.imports == nil || (s.DefaultName == nil && s.Items == nil) {
		return
	}
	exports, ok := c.imports.ResolveExports(s.Path)
	if !ok {
		return
	}
	if s.DefaultName != nil {
		if t, ok := exports.Lookup(types.DefaultExport); ok {
			c.scopes.define(s.DefaultName.Name, t)
		}
	}
	if s.Items != nil {
		for _, item := range *s.Items {
			if t, ok := exports.Lookup(item.OriginalName); ok {
				c.scopes.define(item.Alias, t)
			}
		}
	}
}

func (c *checker) exportFrom(s *ast.SExportFrom) {
	var exports types.Exports
	if c.imports != nil {
		exports, _ = c.imports.ResolveExports(s.Path)
	}
	for _, item := range s.Items {
		t, ok := exports.Lookup(item.OriginalName)
		if !ok {
			t = types.Other
		}
		c.exports[item.Alias] = t
	}
}

func (c *checker) exportDefault(s *ast.SExportDefault) error {
	switch d := s.Value.Data.(type) {
	case *ast.SFunction:
		t := c.fn(&d.Fn)
		if d.Fn.Name != nil {
			c.scopes.define(d.Fn.Name.Name, t)
			c.exports[d.Fn.Name.Name] = t
		}
		c.exports[types.DefaultExport] = t
	case *ast.SClass:
		c.class(&d.Class)
		if d.Class.Name != nil {
			c.exports[d.Class.Name.Name] = types.Other
		}
		c.exports[types.DefaultExport] = types.Other
	case *ast.SExpr:
		id, ok := ast.Unparen(d.Value).Data.(*ast.EIdentifier)
		if !ok {
			return diag.Faultf(diag.SemaUnsupportedDefault, s.Value.Span,
				"export default of an expression is not supported, export a function declaration or a named binding")
		}
		c.refs = append(c.refs, exportRef{alias: types.DefaultExport, name: id.Name})
	}
	return nil
}

func (c *checker) resolveExports() {
	for _, ref := range c.refs {
		c.exports[ref.alias] = c.scopes.lookup(ref.name)
	}
	c.refs = nil
}

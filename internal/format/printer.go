package format

import (
	"jsxstream/internal/ast"
)

type Options struct {
	// Minify drops optional whitespace and newlines.
	Minify      bool
	IndentWidth int
}

func (o Options) withDefaults() Options {
	if o.IndentWidth == 0 {
		o.IndentWidth = 2
	}
	return o
}

type printer struct {
	w   *Writer
	opt Options
	// forbidIn: печатаем инициализатор for(...;...;...), где `in` нужно брать в скобки
	forbidIn bool
}

func newPrinter(opt Options) *printer {
	opt = opt.withDefaults()
	return &printer{w: NewWriter(opt), opt: opt}
}

// Program prints a whole module.
func Program(prog *ast.Program, opt Options) string {
	if prog == nil {
		return ""
	}
	p := newPrinter(opt)
	p.printStmts(prog.Stmts)
	p.w.Newline()
	return p.w.String()
}

// Expr prints a single expression in minified form.
func Expr(e ast.Expr) string {
	p := newPrinter(Options{Minify: true})
	p.printExpr(e, ast.LLowest)
	return p.w.String()
}

// Printer implements lower.Printer on top of this package.
type Printer struct {
	Options Options
}

func (pr Printer) Expr(e ast.Expr) string {
	return Expr(e)
}

func (pr Printer) Program(prog *ast.Program) string {
	return Program(prog, pr.Options)
}

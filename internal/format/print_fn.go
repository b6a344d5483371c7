package format

import (
	"jsxstream/internal/ast"
)

// printFn печатает function-объявление или function-выражение.
func (p *printer) printFn(fn *ast.Fn, keyword string) {
	if fn.IsAsync {
		p.w.Token("async")
		p.w.Space()
	}
	p.w.Token(keyword)
	if fn.IsGenerator {
		p.w.Token("*")
	}
	if fn.Name != nil {
		p.w.Space()
		p.w.Token(fn.Name.Name)
	}
	p.printFnArgs(fn.Args, fn.HasRestArg)
	p.w.Space()
	p.printBlock(fn.Body.Stmts)
}

func (p *printer) printFnArgs(args []ast.Arg, hasRest bool) {
	p.w.Token("(")
	p.withIn(func() {
		for i, arg := range args {
			if i > 0 {
				p.w.Token(",")
				p.w.Space()
			}
			if hasRest && i == len(args)-1 {
				p.w.Token("...")
			}
			p.printBinding(arg.Binding)
			if arg.DefaultOrNil.Data != nil {
				p.w.Space()
				p.w.Token("=")
				p.w.Space()
				p.printExpr(arg.DefaultOrNil, ast.LComma)
			}
		}
	})
	p.w.Token(")")
}

func (p *printer) printClass(class *ast.Class) {
	p.w.Token("class")
	if class.Name != nil {
		p.w.Space()
		p.w.Token(class.Name.Name)
	}
	if class.ExtendsOrNil.Data != nil {
		p.w.Space()
		p.w.Token("extends")
		p.w.Space()
		p.printExpr(class.ExtendsOrNil, ast.LNew-1)
	}
	p.w.Space()
	p.w.Token("{")
	if len(class.Properties) == 0 {
		p.w.Token("}")
		return
	}
	p.w.Newline()
	p.w.IndentPush()
	for i := range class.Properties {
		p.printProperty(&class.Properties[i], true)
		p.w.Newline()
	}
	p.w.IndentPop()
	p.w.Token("}")
}

func (p *printer) printBinding(b ast.Binding) {
	switch d := b.Data.(type) {
	case *ast.BMissing:

	case *ast.BIdentifier:
		p.w.Token(d.Name)

	case *ast.BArray:
		p.w.Token("[")
		for i, item := range d.Items {
			if i > 0 {
				p.w.Token(",")
				p.w.Space()
			}
			if d.HasSpread && i == len(d.Items)-1 {
				p.w.Token("...")
			}
			p.printBinding(item.Binding)
			if item.DefaultValueOrNil.Data != nil {
				p.w.Space()
				p.w.Token("=")
				p.w.Space()
				p.printExpr(item.DefaultValueOrNil, ast.LComma)
			}
		}
		if n := len(d.Items); n > 0 {
			if _, hole := d.Items[n-1].Binding.Data.(*ast.BMissing); hole {
				p.w.Token(",")
			}
		}
		p.w.Token("]")

	case *ast.BObject:
		if len(d.Properties) == 0 {
			p.w.Token("{}")
			return
		}
		p.w.Token("{")
		p.w.Space()
		for i, prop := range d.Properties {
			if i > 0 {
				p.w.Token(",")
				p.w.Space()
			}
			p.printPropertyBinding(prop)
		}
		p.w.Space()
		p.w.Token("}")
	}
}

func (p *printer) printPropertyBinding(prop ast.PropertyBinding) {
	if prop.IsSpread {
		p.w.Token("...")
		p.printBinding(prop.Value)
		return
	}
	if !prop.IsShorthand {
		if prop.IsComputed {
			p.w.Token("[")
			p.printExpr(prop.Key, ast.LComma)
			p.w.Token("]")
		} else {
			p.printKey(prop.Key)
		}
		p.w.Token(":")
		p.w.Space()
	}
	p.printBinding(prop.Value)
	if prop.DefaultValueOrNil.Data != nil {
		p.w.Space()
		p.w.Token("=")
		p.w.Space()
		p.printExpr(prop.DefaultValueOrNil, ast.LComma)
	}
}

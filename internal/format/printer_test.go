package format

import (
	"testing"

	"jsxstream/internal/ast"
	"jsxstream/internal/diag"
	"jsxstream/internal/parser"
	"jsxstream/internal/source"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("input.tsx", []byte(src)))
	bag := diag.NewBag(20)
	res := parser.ParseFile(file, parser.Options{TypeScript: true, Reporter: diag.BagReporter{Bag: bag}})
	if res.Program == nil || bag.HasErrors() {
		t.Fatalf("parse %q failed: %d diagnostics", src, bag.Len())
	}
	return res.Program
}

func TestProgramMinified(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{`const a = {b: 1, "c-d": 2, e, [f]: 3};`, `const a={b:1,"c-d":2,e,[f]:3};`},
		{"function f(a, ...b) { return a }", "function f(a,...b){return a;}"},
		{"export default async function App() {}", "export default async function App(){}"},
		{`import React, { a as b } from "react";`, `import React,{a as b}from"react";`},
		{"for (let i = 0; i < n; i++) x += i;", "for(let i=0;i<n;i++)x+=i;"},
		{"let x: number = 1 as any;", "let x=1;"},
		{"function f(a){if(a){return 1}else{return 2}}", "function f(a){if(a){return 1;}else{return 2;}}"},
		{`<div className="a" {...p}>hi {x}</div>;`, `<div className="a" {...p}>hi {x}</div>;`},
		{"interface P { a: string }\nx;", "x;"},
	}
	for _, tc := range cases {
		got := Program(parseProgram(t, tc.src), Options{Minify: true})
		if got != tc.want {
			t.Errorf("Program(%q):\n got %q\nwant %q", tc.src, got, tc.want)
		}
	}
}

func TestProgramPretty(t *testing.T) {
	prog := parseProgram(t, "function f(a){if(a){return 1}else{return 2}}")
	want := "function f(a) {\n  if (a) {\n    return 1;\n  } else {\n    return 2;\n  }\n}\n"
	if got := Program(prog, Options{}); got != want {
		t.Fatalf("pretty output mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestExprParenthesization(t *testing.T) {
	a, b, c := ast.Ident("a"), ast.Ident("b"), ast.Ident("c")
	bin := func(op ast.OpCode, l, r ast.Expr) ast.Expr {
		return ast.Expr{Data: &ast.EBinary{Op: op, Left: l, Right: r}}
	}
	unary := func(op ast.OpCode, v ast.Expr) ast.Expr {
		return ast.Expr{Data: &ast.EUnary{Op: op, Value: v}}
	}
	emptyArrow := ast.Expr{Data: &ast.EArrow{}}

	cases := []struct {
		name string
		expr ast.Expr
		want string
	}{
		{"precedence", bin(ast.BinOpMul, bin(ast.BinOpAdd, a, b), c), "(a+b)*c"},
		{"left associative", bin(ast.BinOpSub, a, bin(ast.BinOpSub, b, c)), "a-(b-c)"},
		{"right associative", bin(ast.BinOpAssign, a, bin(ast.BinOpAssign, b, c)), "a=b=c"},
		{"double minus", bin(ast.BinOpSub, a, unary(ast.UnOpNeg, b)), "a- -b"},
		{"double plus", bin(ast.BinOpAdd, a, unary(ast.UnOpPos, b)), "a+ +b"},
		{"typeof", unary(ast.UnOpTypeof, a), "typeof a"},
		{"nullish mix", bin(ast.BinOpNullishCoalescing, bin(ast.BinOpLogicalOr, a, b), c), "(a||b)??c"},
		{"pow unary", bin(ast.BinOpPow, unary(ast.UnOpNeg, a), b), "(-a)**b"},
		{"iife", ast.Call(emptyArrow), "(()=>{})()"},
		{"await call", ast.Await(ast.Call(a)), "await a()"},
		{"number member", ast.Dot(ast.Expr{Data: &ast.ENumber{Value: 1}}, "toString"), "(1).toString"},
		{"new of call", ast.Expr{Data: &ast.ENew{Target: ast.Call(a)}}, "new(a())()"},
		{"raw at comma level", ast.Call(a, ast.Raw("x,y", ast.LComma)), "a((x,y))"},
		{"path", ast.Call(ast.Path("global.___F___"), a), "global.___F___(a)"},
		{
			"arrow object body",
			ast.Expr{Data: &ast.EArrow{PreferExpr: true, Body: ast.FnBody{Stmts: []ast.Stmt{
				{Data: &ast.SReturn{ValueOrNil: ast.Expr{Data: &ast.EObject{}}}},
			}}}},
			"()=>({})",
		},
		{
			"object spread",
			ast.Expr{Data: &ast.EObject{Properties: []ast.Property{
				{Kind: ast.PropertySpread, ValueOrNil: a},
				{Key: ast.Str("children"), ValueOrNil: ast.Ident("children"), Flags: ast.PropertyWasShorthand},
			}}},
			"{...a,children}",
		},
	}
	for _, tc := range cases {
		if got := Expr(tc.expr); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestTemplateAndStringEscaping(t *testing.T) {
	tpl := ast.Expr{Data: &ast.ETemplate{
		Quasis: []ast.TemplateQuasi{{Cooked: "a`b\\"}, {Cooked: "${x}"}},
		Exprs:  []ast.Expr{ast.Ident("y")},
	}}
	if got, want := Expr(tpl), "`a\\`b\\\\${y}\\${x}`"; got != want {
		t.Errorf("template: got %q, want %q", got, want)
	}

	str := ast.Str("a\"b\n ")
	if got, want := Expr(str), `"a\"b\n "`; got != want {
		t.Errorf("string: got %q, want %q", got, want)
	}

	// исходное написание литерала сохраняется
	raw := ast.Expr{Data: &ast.EString{Value: "x", Raw: "'x'"}}
	if got := Expr(raw); got != "'x'" {
		t.Errorf("raw string: got %q", got)
	}
}

func TestNumberString(t *testing.T) {
	cases := map[float64]string{
		0:       "0",
		12:      "12",
		-3:      "-3",
		1.5:     "1.5",
		1e21:    "1e+21",
		1e-7:    "1e-7",
		1234567: "1234567",
	}
	for v, want := range cases {
		if got := NumberString(v); got != want {
			t.Errorf("NumberString(%v) = %q, want %q", v, got, want)
		}
	}
}

package parser

import (
	"testing"

	"jsxstream/internal/ast"
	"jsxstream/internal/diag"
)

func TestModuleItems(t *testing.T) {
	prog := mustParse(t, `
"use strict";
import React, { useState as state, type Props } from "react";
import * as ns from "./ns.js";
import "./side-effect.css";
import type { Only } from "./types";
export const a = 1, b = 2;
export function Page() { return <div/> }
export default async function App() {}
export { a as c, b };
export { x } from "./x";
export * as all from "./all";
`)
	want := "SDirective SImport SImport SImport STypeScript SLocal SFunction SExportDefault SExportClause SExportFrom SExportStar"
	if got := stmtTypes(prog); got != want {
		t.Fatalf("statements:\n got %s\nwant %s", got, want)
	}

	imp := prog.Stmts[1].Data.(*ast.SImport)
	if imp.DefaultName == nil || imp.DefaultName.Name != "React" || imp.Path != "react" {
		t.Fatalf("default import mismatch: %+v", imp)
	}
	if imp.Items == nil || len(*imp.Items) != 1 {
		t.Fatalf("type-only clause items must be dropped, got %+v", imp.Items)
	}
	if item := (*imp.Items)[0]; item.OriginalName != "useState" || item.Alias != "state" {
		t.Fatalf("clause item mismatch: %+v", item)
	}
	if star := prog.Stmts[2].Data.(*ast.SImport); star.StarNameOrNil == nil || star.StarNameOrNil.Name != "ns" {
		t.Fatalf("namespace import mismatch: %+v", star)
	}

	local := prog.Stmts[5].Data.(*ast.SLocal)
	if !local.IsExport || local.Kind != ast.LocalConst || len(local.Decls) != 2 {
		t.Fatalf("export const mismatch: %+v", local)
	}
	if fn := prog.Stmts[6].Data.(*ast.SFunction); !fn.IsExport || fn.Fn.Name.Name != "Page" {
		t.Fatalf("export function mismatch: %+v", fn)
	}

	def := prog.Stmts[7].Data.(*ast.SExportDefault)
	fn, ok := def.Value.Data.(*ast.SFunction)
	if !ok || !fn.Fn.IsAsync || fn.Fn.Name == nil || fn.Fn.Name.Name != "App" {
		t.Fatalf("export default function mismatch: %+v", def.Value.Data)
	}

	clause := prog.Stmts[8].Data.(*ast.SExportClause)
	if len(clause.Items) != 2 || clause.Items[0].Alias != "c" || clause.Items[0].OriginalName != "a" {
		t.Fatalf("export clause mismatch: %+v", clause.Items)
	}
	if star := prog.Stmts[10].Data.(*ast.SExportStar); star.AliasOrEmpty != "all" || star.Path != "./all" {
		t.Fatalf("export star mismatch: %+v", star)
	}
}

func TestExportDefaultForms(t *testing.T) {
	cases := []struct {
		src  string
		want string // тип Value внутри SExportDefault
	}{
		{"export default function () {}", "SFunction"},
		{"export default class {}", "SClass"},
		{"export default App;", "SExpr"},
		{"export default () => <p/>;", "SExpr"},
	}
	for _, tc := range cases {
		prog := mustParse(t, tc.src)
		def, ok := prog.Stmts[0].Data.(*ast.SExportDefault)
		if !ok {
			t.Fatalf("%q: expected SExportDefault, got %T", tc.src, prog.Stmts[0].Data)
		}
		got := stmtTypes(&ast.Program{Stmts: []ast.Stmt{def.Value}})
		if got != tc.want {
			t.Errorf("%q: value is %s, want %s", tc.src, got, tc.want)
		}
	}
}

func TestArrowDetection(t *testing.T) {
	cases := []struct {
		src     string
		arrow   bool
		isAsync bool
		args    int
	}{
		{"x => x", true, false, 1},
		{"(a, b) => a", true, false, 2},
		{"({ a }, [b], ...rest) => a", true, false, 3},
		{"(a = 1, b?: string): number => a", true, false, 2},
		{"async x => x", true, true, 1},
		{"async (x) => { await x }", true, true, 1},
		{"(a, b)", false, false, 0},
		{"(a)", false, false, 0},
		{"async(x)", false, false, 0},
	}
	for _, tc := range cases {
		e := onlyExpr(t, tc.src)
		arrow, ok := e.Data.(*ast.EArrow)
		if ok != tc.arrow {
			t.Errorf("%q: arrow=%v, want %v (%T)", tc.src, ok, tc.arrow, e.Data)
			continue
		}
		if !ok {
			continue
		}
		if arrow.IsAsync != tc.isAsync || len(arrow.Args) != tc.args {
			t.Errorf("%q: async=%v args=%d, want async=%v args=%d", tc.src, arrow.IsAsync, len(arrow.Args), tc.isAsync, tc.args)
		}
	}

	if _, ok := onlyExpr(t, "async(x)").Data.(*ast.ECall); !ok {
		t.Fatal("async(x) must stay a call")
	}
	body := onlyExpr(t, "x => y").Data.(*ast.EArrow)
	if !body.PreferExpr || len(body.Body.Stmts) != 1 {
		t.Fatalf("expression body must become a single return: %+v", body.Body)
	}
}

func TestConditionalWithParenthesizedBranch(t *testing.T) {
	e := onlyExpr(t, "a ? (b) : c => d")
	cond, ok := e.Data.(*ast.EIf)
	if !ok {
		t.Fatalf("expected EIf, got %T", e.Data)
	}
	if _, ok := cond.Yes.Data.(*ast.EParen); !ok {
		t.Fatalf("yes branch must be a parenthesized expression, got %T", cond.Yes.Data)
	}
	if _, ok := cond.No.Data.(*ast.EArrow); !ok {
		t.Fatalf("no branch must be an arrow, got %T", cond.No.Data)
	}
}

func TestPrecedence(t *testing.T) {
	e := onlyExpr(t, "a = b || c && d + e * f ** g ** h")
	assign := e.Data.(*ast.EBinary)
	if assign.Op != ast.BinOpAssign {
		t.Fatalf("top operator %v, want assignment", assign.Op)
	}
	or := assign.Right.Data.(*ast.EBinary)
	if or.Op != ast.BinOpLogicalOr {
		t.Fatalf("expected || under =, got %v", or.Op)
	}
	and := or.Right.Data.(*ast.EBinary)
	add := and.Right.Data.(*ast.EBinary)
	mul := add.Right.Data.(*ast.EBinary)
	pow := mul.Right.Data.(*ast.EBinary)
	if and.Op != ast.BinOpLogicalAnd || add.Op != ast.BinOpAdd || mul.Op != ast.BinOpMul || pow.Op != ast.BinOpPow {
		t.Fatalf("unexpected operator chain %v %v %v %v", and.Op, add.Op, mul.Op, pow.Op)
	}
	// ** правоассоциативен
	if inner, ok := pow.Right.Data.(*ast.EBinary); !ok || inner.Op != ast.BinOpPow {
		t.Fatalf("** must be right-associative")
	}
}

func TestTemplatesAndRegExps(t *testing.T) {
	e := onlyExpr(t, "`a${b}c${`d${e}`}\\n`")
	tpl := e.Data.(*ast.ETemplate)
	if len(tpl.Quasis) != 3 || len(tpl.Exprs) != 2 {
		t.Fatalf("quasis=%d exprs=%d", len(tpl.Quasis), len(tpl.Exprs))
	}
	if tpl.Quasis[0].Raw != "a" || tpl.Quasis[2].Raw != `\n` || tpl.Quasis[2].Cooked != "\n" {
		t.Fatalf("quasi mismatch: %+v", tpl.Quasis)
	}
	if _, ok := tpl.Exprs[1].Data.(*ast.ETemplate); !ok {
		t.Fatalf("nested template lost: %T", tpl.Exprs[1].Data)
	}

	call := onlyExpr(t, "/ab+c/gi.test(s)").Data.(*ast.ECall)
	dot := call.Target.Data.(*ast.EDot)
	if re, ok := dot.Target.Data.(*ast.ERegExp); !ok || re.Value != "/ab+c/gi" {
		t.Fatalf("regexp mismatch: %#v", dot.Target.Data)
	}

	div := onlyExpr(t, "a / b / c").Data.(*ast.EBinary)
	if div.Op != ast.BinOpDiv {
		t.Fatalf("division parsed as %v", div.Op)
	}

	tagged := onlyExpr(t, "css`color: red`").Data.(*ast.ETemplate)
	if tagged.TagOrNil.Data == nil {
		t.Fatal("tagged template lost its tag")
	}
}

func TestAutomaticSemicolon(t *testing.T) {
	prog := mustParse(t, "a\nb\nfunction f() { return\n1 }\nc\n++d")
	if got := stmtTypes(prog); got != "SExpr SExpr SFunction SExpr SExpr" {
		t.Fatalf("statements: %s", got)
	}
	fn := prog.Stmts[2].Data.(*ast.SFunction)
	ret := fn.Fn.Body.Stmts[0].Data.(*ast.SReturn)
	if ret.ValueOrNil.Data != nil {
		t.Fatal("return followed by newline must not take a value")
	}
	if u, ok := prog.Stmts[4].Data.(*ast.SExpr).Value.Data.(*ast.EUnary); !ok || u.Op != ast.UnOpPreInc {
		t.Fatal("++ after newline belongs to the next statement")
	}
}

func TestTypeScriptStripping(t *testing.T) {
	prog := mustParse(t, `
interface Props<T> extends Base { a: T; b?: () => void }
type Union = { kind: "a" } | Array<Map<string, number>>;
declare const VERSION: string;
function id<T extends object = {}>(value: T, extra?: string): Promise<T> { return value as T }
let x: Record<string, Array<number>> = y!;
const z = f<string>(1) satisfies unknown;
class Box<T> implements Thing {
  private readonly value!: T;
  static count: number = 0;
  constructor(public name: string) { super() }
  abstract draw(): void;
  get size(): number { return 1 }
}
`)
	want := "STypeScript STypeScript STypeScript SFunction SLocal SLocal SClass"
	if got := stmtTypes(prog); got != want {
		t.Fatalf("statements:\n got %s\nwant %s", got, want)
	}
	fn := prog.Stmts[3].Data.(*ast.SFunction)
	if len(fn.Fn.Args) != 2 {
		t.Fatalf("optional parameter lost: %d args", len(fn.Fn.Args))
	}
	ret := fn.Fn.Body.Stmts[0].Data.(*ast.SReturn)
	if id, ok := ret.ValueOrNil.Data.(*ast.EIdentifier); !ok || id.Name != "value" {
		t.Fatalf("as-expression not stripped: %#v", ret.ValueOrNil.Data)
	}
	z := prog.Stmts[5].Data.(*ast.SLocal)
	if _, ok := z.Decls[0].ValueOrNil.Data.(*ast.ECall); !ok {
		t.Fatalf("generic call not recognized: %T", z.Decls[0].ValueOrNil.Data)
	}
	class := prog.Stmts[6].Data.(*ast.SClass)
	// abstract-метод без тела отброшен
	if n := len(class.Class.Properties); n != 4 {
		t.Fatalf("class members: %d, want 4", n)
	}
	if class.Class.Properties[3].Kind != ast.PropertyGetter {
		t.Fatalf("getter kind lost: %v", class.Class.Properties[3].Kind)
	}
}

func TestObjectLiterals(t *testing.T) {
	e := onlyExpr(t, `({ a, b: 1, [c]: 2, ...d, m() {}, get g() { return 1 }, async *gen() {}, "s-k": 3, 4: 5 })`)
	obj := e.Data.(*ast.EParen).Value.Data.(*ast.EObject)
	kinds := []ast.PropertyKind{
		ast.PropertyField, ast.PropertyField, ast.PropertyField, ast.PropertySpread,
		ast.PropertyMethod, ast.PropertyGetter, ast.PropertyMethod, ast.PropertyField, ast.PropertyField,
	}
	if len(obj.Properties) != len(kinds) {
		t.Fatalf("properties: %d, want %d", len(obj.Properties), len(kinds))
	}
	for i, k := range kinds {
		if obj.Properties[i].Kind != k {
			t.Errorf("property %d kind %v, want %v", i, obj.Properties[i].Kind, k)
		}
	}
	if !obj.Properties[0].Flags.Has(ast.PropertyWasShorthand) {
		t.Error("shorthand flag lost")
	}
	if !obj.Properties[2].Flags.Has(ast.PropertyIsComputed) {
		t.Error("computed flag lost")
	}
}

func TestSyntaxErrors(t *testing.T) {
	cases := []struct {
		src  string
		code diag.Code
	}{
		{"a b", diag.SynExpectSemicolon},
		{"1 = 2", diag.SynInvalidAssignTarget},
		{"let x = (1;", diag.SynUnclosedParen},
		{"function f() { import x from 'y' }", diag.SynModuleItemPosition},
		{"const x = ;", diag.SynExpectExpression},
		{"<div></span>", diag.SynJSXTagMismatch},
		{"<div>text", diag.SynJSXUnterminated},
		{"if (a) {", diag.SynUnclosedBrace},
		{"let s = 'abc", diag.LexUnterminatedString},
	}
	for _, tc := range cases {
		prog, bag := parseSourceWithOptions(t, tc.src, Options{})
		if prog != nil {
			t.Errorf("%q: expected parse failure", tc.src)
		}
		found := false
		for _, d := range bag.Items() {
			if d.Code == tc.code {
				found = true
			}
		}
		if !found {
			t.Errorf("%q: expected %s, got %s", tc.src, tc.code.ID(), diagnosticsSummary(bag))
		}
	}
}

func TestStatements(t *testing.T) {
	prog := mustParse(t, `
for (let i = 0; i < 3; i++) {}
for (const k in obj) {}
for await (const v of gen()) {}
while (x) break;
do { continue } while (y)
switch (z) { case 1: a(); break; default: b() }
try { risky() } catch { } finally { done() }
label: for (;;) { break label }
if (a) b(); else c();
class A extends B {}
`)
	want := "SFor SForIn SForOf SWhile SDoWhile SSwitch STry SLabel SIf SClass"
	if got := stmtTypes(prog); got != want {
		t.Fatalf("statements:\n got %s\nwant %s", got, want)
	}
	if !prog.Stmts[2].Data.(*ast.SForOf).IsAwait {
		t.Fatal("for await lost IsAwait")
	}
	sw := prog.Stmts[5].Data.(*ast.SSwitch)
	if len(sw.Cases) != 2 || sw.Cases[1].ValueOrNil.Data != nil {
		t.Fatalf("switch cases mismatch: %+v", sw.Cases)
	}
}

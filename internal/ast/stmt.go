package ast

import "jsxstream/internal/source"

type Stmt struct {
	Data S
	Span source.Span
}

// S is implemented by every statement node.
type S interface{ isStmt() }

func (*SBlock) isStmt()         {}
func (*SDebugger) isStmt()      {}
func (*SDirective) isStmt()     {}
func (*SEmpty) isStmt()         {}
func (*STypeScript) isStmt()    {}
func (*SExportClause) isStmt()  {}
func (*SExportFrom) isStmt()    {}
func (*SExportDefault) isStmt() {}
func (*SExportStar) isStmt()    {}
func (*SExpr) isStmt()          {}
func (*SFunction) isStmt()      {}
func (*SClass) isStmt()         {}
func (*SLabel) isStmt()         {}
func (*SIf) isStmt()            {}
func (*SFor) isStmt()           {}
func (*SForIn) isStmt()         {}
func (*SForOf) isStmt()         {}
func (*SDoWhile) isStmt()       {}
func (*SWhile) isStmt()         {}
func (*SWith) isStmt()          {}
func (*STry) isStmt()           {}
func (*SSwitch) isStmt()        {}
func (*SImport) isStmt()        {}
func (*SReturn) isStmt()        {}
func (*SThrow) isStmt()         {}
func (*SLocal) isStmt()         {}
func (*SBreak) isStmt()         {}
func (*SContinue) isStmt()      {}

type SBlock struct {
	Stmts []Stmt
}

type SEmpty struct{}

// STypeScript replaces a stripped TypeScript-only declaration
// (interface, type alias, declare ..., import type).
type STypeScript struct{}

type SDebugger struct{}

// SDirective is a prologue string such as "use strict"; Raw keeps the quotes.
type SDirective struct {
	Raw string
}

type ClauseItem struct {
	Alias        string // имя снаружи (export {a as Alias}) или локальное (import {x as Alias})
	OriginalName string
	Span         source.Span
}

type SExportClause struct {
	Items []ClauseItem
}

type SExportFrom struct {
	Items []ClauseItem
	Path  string
}

// SExportDefault: Value is SExpr, SFunction or SClass.
type SExportDefault struct {
	Value Stmt
}

type SExportStar struct {
	AliasOrEmpty string // export * as ns from "..."
	Path         string
}

type SExpr struct {
	Value Expr
}

type SFunction struct {
	Fn       Fn
	IsExport bool
}

type SClass struct {
	Class    Class
	IsExport bool
}

type SLabel struct {
	Name string
	Stmt Stmt
}

type SIf struct {
	Test    Expr
	Yes     Stmt
	NoOrNil Stmt
}

type SFor struct {
	InitOrNil   Stmt // SLocal или SExpr
	TestOrNil   Expr
	UpdateOrNil Expr
	Body        Stmt
}

type SForIn struct {
	Init  Stmt // SLocal или SExpr
	Value Expr
	Body  Stmt
}

type SForOf struct {
	Init    Stmt
	Value   Expr
	Body    Stmt
	IsAwait bool
}

type SDoWhile struct {
	Body Stmt
	Test Expr
}

type SWhile struct {
	Test Expr
	Body Stmt
}

type SWith struct {
	Value Expr
	Body  Stmt
}

type Catch struct {
	BindingOrNil Binding
	Block        SBlock
}

type STry struct {
	Block        SBlock
	CatchOrNil   *Catch
	FinallyOrNil *SBlock
}

type Case struct {
	ValueOrNil Expr // nil — default
	Body       []Stmt
}

type SSwitch struct {
	Test  Expr
	Cases []Case
}

type SImport struct {
	DefaultName   *LocName
	Items         *[]ClauseItem // nil — нет фигурных скобок
	StarNameOrNil *LocName      // import * as ns
	Path          string
}

type SReturn struct {
	ValueOrNil Expr
}

type SThrow struct {
	Value Expr
}

type LocalKind uint8

const (
	LocalVar LocalKind = iota
	LocalLet
	LocalConst
)

func (kind LocalKind) String() string {
	switch kind {
	case LocalLet:
		return "let"
	case LocalConst:
		return "const"
	default:
		return "var"
	}
}

type Decl struct {
	Binding    Binding
	ValueOrNil Expr
}

type SLocal struct {
	Decls    []Decl
	Kind     LocalKind
	IsExport bool
}

type SBreak struct {
	Label string
}

type SContinue struct {
	Label string
}

// Program is a parsed module.
type Program struct {
	File  source.FileID
	Stmts []Stmt
}

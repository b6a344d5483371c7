package ast

import "jsxstream/internal/source"

type Expr struct {
	Data E
	Span source.Span
}

// E is implemented by every expression node.
type E interface{ isExpr() }

func (*EArray) isExpr()             {}
func (*EUnary) isExpr()             {}
func (*EBinary) isExpr()            {}
func (*EBoolean) isExpr()           {}
func (*ESuper) isExpr()             {}
func (*ENull) isExpr()              {}
func (*EThis) isExpr()              {}
func (*ENew) isExpr()               {}
func (*ENewTarget) isExpr()         {}
func (*EImportMeta) isExpr()        {}
func (*ECall) isExpr()              {}
func (*EDot) isExpr()               {}
func (*EIndex) isExpr()             {}
func (*EArrow) isExpr()             {}
func (*EFunction) isExpr()          {}
func (*EClass) isExpr()             {}
func (*EIdentifier) isExpr()        {}
func (*EPrivateIdentifier) isExpr() {}
func (*EJSXElement) isExpr()        {}
func (*EJSXText) isExpr()           {}
func (*EJSXExprContainer) isExpr()  {}
func (*EJSXSpreadChild) isExpr()    {}
func (*EJSXNamespacedName) isExpr() {}
func (*EMissing) isExpr()           {}
func (*ENumber) isExpr()            {}
func (*EBigInt) isExpr()            {}
func (*EObject) isExpr()            {}
func (*ESpread) isExpr()            {}
func (*EString) isExpr()            {}
func (*ETemplate) isExpr()          {}
func (*ERegExp) isExpr()            {}
func (*EAwait) isExpr()             {}
func (*EYield) isExpr()             {}
func (*EIf) isExpr()                {}
func (*EImportCall) isExpr()        {}
func (*EParen) isExpr()             {}
func (*ERaw) isExpr()               {}

type EArray struct {
	Items []Expr // EMissing marks holes
}

type EUnary struct {
	Value Expr
	Op    OpCode
}

type EBinary struct {
	Left  Expr
	Right Expr
	Op    OpCode
}

type EBoolean struct{ Value bool }

// EMissing is an array hole or an absent optional node.
type EMissing struct{}

type ESuper struct{}

type ENull struct{}

type EThis struct{}

type ENewTarget struct{}

type EImportMeta struct{}

type ENew struct {
	Target Expr
	Args   []Expr
	// new Foo без скобок
	NoArgs bool
}

type ECall struct {
	Target   Expr
	Args     []Expr
	Optional bool // a?.()
}

type EDot struct {
	Target   Expr
	Name     string
	Optional bool // a?.b
	Private  bool // a.#b
}

type EIndex struct {
	Target   Expr
	Index    Expr
	Optional bool // a?.[b]
}

type EArrow struct {
	Args       []Arg
	Body       FnBody
	IsAsync    bool
	HasRestArg bool
	// PreferExpr: тело — одно выражение (Body — один SReturn)
	PreferExpr bool
}

type EFunction struct{ Fn Fn }

type EClass struct{ Class Class }

type EIdentifier struct {
	Name string
}

type EPrivateIdentifier struct {
	Name string // без '#'
}

// EJSXElement is an element or, when TagOrNil is nil, a fragment.
type EJSXElement struct {
	// EIdentifier (may contain '-'), EDot chain or EJSXNamespacedName
	TagOrNil    Expr
	Attrs       []JSXAttr
	Children    []Expr // EJSXText, EJSXExprContainer, EJSXSpreadChild, EJSXElement
	SelfClosing bool
}

func (e *EJSXElement) IsFragment() bool { return e.TagOrNil.Data == nil }

type JSXAttr struct {
	Name JSXName
	// nil: атрибут без значения. Иначе EString, EJSXExprContainer или EJSXElement.
	ValueOrNil Expr
	// {...spread}; Name пустой, значение в Spread
	IsSpread bool
	Spread   Expr
	Span     source.Span
}

type JSXName struct {
	Namespace string // "" кроме ns:name
	Name      string
}

func (n JSXName) String() string {
	if n.Namespace != "" {
		return n.Namespace + ":" + n.Name
	}
	return n.Name
}

type EJSXText struct {
	Raw string
}

// EJSXExprContainer is {expr}; an empty container {} or {/* comment */} has
// a nil ExprOrNil.
type EJSXExprContainer struct {
	ExprOrNil Expr
}

// EJSXSpreadChild is {...expr} in child position.
type EJSXSpreadChild struct {
	Value Expr
}

type EJSXNamespacedName struct {
	Namespace string
	Name      string
}

type ENumber struct {
	Value float64
	Raw   string // исходное написание; пусто у синтезированных
}

type EBigInt struct{ Value string } // без суффикса n

type EObject struct {
	Properties []Property
}

type ESpread struct{ Value Expr }

type EString struct {
	Value string
	Raw   string // с кавычками; пусто у синтезированных
}

type TemplateQuasi struct {
	Cooked string
	// Raw is the source text between delimiters. Synthesized quasis leave it
	// empty and the printer escapes Cooked instead.
	Raw string
}

// ETemplate holds len(Exprs)+1 quasis.
type ETemplate struct {
	TagOrNil Expr
	Quasis   []TemplateQuasi
	Exprs    []Expr
}

type ERegExp struct{ Value string }

type EAwait struct {
	Value Expr
}

type EYield struct {
	ValueOrNil Expr
	IsStar     bool
}

type EIf struct {
	Test Expr
	Yes  Expr
	No   Expr
}

type EImportCall struct {
	Expr         Expr
	OptionsOrNil Expr
}

// EParen keeps parentheses written in the source.
type EParen struct {
	Value Expr
}

// ERaw is a snippet of already-generated JavaScript printed verbatim at
// the given level.
type ERaw struct {
	Text  string
	Level L
}

type PropertyKind uint8

const (
	PropertyField PropertyKind = iota
	PropertyMethod
	PropertyGetter
	PropertySetter
	PropertySpread
	PropertyClassStaticBlock
)

func (kind PropertyKind) IsMethodDefinition() bool {
	return kind == PropertyMethod || kind == PropertyGetter || kind == PropertySetter
}

type PropertyFlags uint8

const (
	PropertyIsComputed PropertyFlags = 1 << iota
	PropertyIsStatic
	PropertyWasShorthand
)

func (flags PropertyFlags) Has(flag PropertyFlags) bool {
	return (flags & flag) != 0
}

// Property is an object literal entry or a class member.
type Property struct {
	Key Expr
	// omitted for class fields without initializer
	ValueOrNil Expr
	// {a = 1} в деструктурирующем присваивании
	InitializerOrNil Expr
	StaticBlock      *SBlock
	Kind             PropertyKind
	Flags            PropertyFlags
	Span             source.Span
}

type Arg struct {
	Binding      Binding
	DefaultOrNil Expr
}

type Fn struct {
	Name        *LocName
	Args        []Arg
	Body        FnBody
	IsAsync     bool
	IsGenerator bool
	HasRestArg  bool
}

type FnBody struct {
	Stmts []Stmt
	Span  source.Span
}

type Class struct {
	Name         *LocName
	ExtendsOrNil Expr
	Properties   []Property
}

type LocName struct {
	Name string
	Span source.Span
}

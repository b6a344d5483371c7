package ast

import "jsxstream/internal/source"

type Binding struct {
	Data B
	Span source.Span
}

// B is implemented by every binding pattern node.
type B interface{ isBinding() }

func (*BMissing) isBinding()    {}
func (*BIdentifier) isBinding() {}
func (*BArray) isBinding()      {}
func (*BObject) isBinding()     {}

type BMissing struct{}

type BIdentifier struct{ Name string }

type ArrayBinding struct {
	Binding           Binding
	DefaultValueOrNil Expr
}

type BArray struct {
	Items     []ArrayBinding
	HasSpread bool // последний элемент — ...rest
}

type PropertyBinding struct {
	Key               Expr
	Value             Binding
	DefaultValueOrNil Expr
	IsComputed        bool
	IsSpread          bool
	IsShorthand       bool
}

type BObject struct {
	Properties []PropertyBinding
}

// SimpleName returns the identifier of a BIdentifier binding.
func (b Binding) SimpleName() (string, bool) {
	if id, ok := b.Data.(*BIdentifier); ok {
		return id.Name, true
	}
	return "", false
}

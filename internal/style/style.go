// Package style serializes style-object literals into inline CSS.
//
// Литеральные части сериализуются при компиляции; всё, что известно только
// во время выполнения, уходит в вызовы функций рантайма.
package style

import (
	"jsxstream/internal/ast"
	"jsxstream/internal/diag"
	"jsxstream/internal/format"
	"jsxstream/internal/tpl"
)

// Runtime names the support functions generated code calls for dynamic
// style parts.
type Runtime struct {
	StyleName   string // (name) → css name
	StyleValue  string // (value, key) → css value
	StyleObject string // (object) → css run
}

func DefaultRuntime() Runtime {
	return Runtime{
		StyleName:   "global.___FRAMEWORK_JS_STYLE_NAME___",
		StyleValue:  "global.___FRAMEWORK_JS_STYLE_VALUE___",
		StyleObject: "global.___FRAMEWORK_JS_STYLE_OBJECT___",
	}
}

type Serializer struct {
	names *NameCache
	rt    Runtime
}

func NewSerializer(names *NameCache, rt Runtime) *Serializer {
	if names == nil {
		names = NewNameCache()
	}
	return &Serializer{names: names, rt: rt}
}

// ObjectCall stringifies a style object at run time.
func (s *Serializer) ObjectCall(value ast.Expr) ast.Expr {
	return ast.Call(ast.Path(s.rt.StyleObject), value)
}

// Object serializes obj as `name: value` pairs joined by ";".
func (s *Serializer) Object(obj *ast.EObject) (tpl.Template, error) {
	var b tpl.Builder
	for i := range obj.Properties {
		if i > 0 {
			b.AppendQuasi(";")
		}
		if err := s.property(&b, &obj.Properties[i]); err != nil {
			return tpl.Template{}, err
		}
	}
	return b.Build(), nil
}

func (s *Serializer) property(b *tpl.Builder, prop *ast.Property) error {
	switch {
	case prop.Kind == ast.PropertySpread:
		b.AppendExpr(s.ObjectCall(prop.ValueOrNil))
		return nil
	case prop.Kind != ast.PropertyField:
		return diag.Faultf(diag.SemaUnsupportedStyleKey, prop.Span, "methods and accessors are not valid in a style object")
	}

	// {fontSize}: значение известно только во время выполнения
	if prop.Flags.Has(ast.PropertyWasShorthand) {
		if id, ok := prop.ValueOrNil.Data.(*ast.EIdentifier); ok {
			name := s.names.Resolve(id.Name)
			b.AppendQuasi(name)
			b.AppendQuasi(": ")
			b.AppendExpr(s.valueCall(prop.ValueOrNil, ast.Str(name)))
			return nil
		}
	}

	key, dynamicKey, err := s.key(prop)
	if err != nil {
		return err
	}

	if dynamicKey.Data != nil {
		b.AppendExpr(ast.Call(ast.Path(s.rt.StyleName), dynamicKey))
		b.AppendQuasi(": ")
		value := ast.Unparen(prop.ValueOrNil)
		switch value.Data.(type) {
		case *ast.EIdentifier, *ast.ETemplate, *ast.EString, *ast.ENumber, *ast.EBigInt, *ast.EBoolean, *ast.ENull:
			b.AppendExpr(s.valueCall(prop.ValueOrNil, dynamicKey))
			return nil
		}
		return unsupportedValue(prop.ValueOrNil)
	}

	name := s.names.Resolve(key)
	b.AppendQuasi(name)
	b.AppendQuasi(": ")
	return s.staticValue(b, key, name, prop.ValueOrNil)
}

// key returns the literal key, or the key expression for computed
// identifier keys.
func (s *Serializer) key(prop *ast.Property) (string, ast.Expr, error) {
	key := prop.Key
	if prop.Flags.Has(ast.PropertyIsComputed) {
		key = ast.Unparen(key)
		switch k := key.Data.(type) {
		case *ast.EString:
			return k.Value, ast.Expr{}, nil
		case *ast.EIdentifier:
			return "", key, nil
		}
		return "", ast.Expr{}, diag.Faultf(diag.SemaUnsupportedStyleKey, key.Span, "unsupported computed style key %s", format.Expr(key))
	}
	switch k := key.Data.(type) {
	case *ast.EString:
		return k.Value, ast.Expr{}, nil
	case *ast.ENumber:
		return format.NumberString(k.Value), ast.Expr{}, nil
	}
	return "", ast.Expr{}, diag.Faultf(diag.SemaUnsupportedStyleKey, key.Span, "unsupported style key %s", format.Expr(key))
}

func (s *Serializer) staticValue(b *tpl.Builder, key, name string, value ast.Expr) error {
	switch v := ast.Unparen(value).Data.(type) {
	case *ast.EIdentifier, *ast.ETemplate:
		b.AppendExpr(s.valueCall(value, ast.Str(name)))
	case *ast.EString:
		b.AppendQuasi(v.Value)
	case *ast.ENumber:
		b.AppendQuasi(withUnit(key, format.NumberString(v.Value), v.Value == 0))
	case *ast.EBigInt:
		b.AppendQuasi(withUnit(key, v.Value, isZeroDigits(v.Value)))
	case *ast.EBoolean:
		if v.Value {
			b.AppendQuasi("true")
		} else {
			b.AppendQuasi("false")
		}
	case *ast.ENull:
		b.AppendQuasi("null")
	default:
		return unsupportedValue(value)
	}
	return nil
}

func (s *Serializer) valueCall(value, key ast.Expr) ast.Expr {
	return ast.Call(ast.Path(s.rt.StyleValue), value, key)
}

func withUnit(key, number string, zero bool) string {
	if zero {
		return "0"
	}
	if IsUnitless(key) {
		return number
	}
	return number + "px"
}

func isZeroDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '0' && s[i] != '_' {
			return false
		}
	}
	return true
}

func unsupportedValue(value ast.Expr) error {
	return diag.Faultf(diag.SemaUnsupportedStyleVal, value.Span, "unsupported style value %s", format.Expr(value))
}

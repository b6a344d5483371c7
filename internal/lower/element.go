package lower

import (
	"strings"

	"jsxstream/internal/ast"
	"jsxstream/internal/diag"
	"jsxstream/internal/tpl"
)

// attrRenames maps JSX attribute names to their HTML spelling.
var attrRenames = map[string]string{
	"className": "class",
}

// Element lowers one element or fragment. Nested custom children are
// processed against d; expressions inside children and attributes are
// rewritten on the way, each nested top-level element with its own list.
func (l *Lowerer) Element(el *ast.EJSXElement, d *Deferred) (Lowered, error) {
	if el.IsFragment() {
		var b tpl.Builder
		if err := l.children(&b, el.Children, d); err != nil {
			return Lowered{}, err
		}
		return Lowered{Kind: Intrinsic, Template: b.Build()}, nil
	}
	if name, ok := customName(el.TagOrNil); ok {
		return l.custom(el, name, d)
	}
	return l.intrinsic(el, d)
}

// customName classifies a tag: an identifier starting with an upper-case
// letter or a member path names a component.
func customName(tag ast.Expr) (string, bool) {
	switch t := tag.Data.(type) {
	case *ast.EIdentifier:
		if t.Name != "" && 'A' <= t.Name[0] && t.Name[0] <= 'Z' {
			return t.Name, true
		}
	case *ast.EDot:
		return ast.MemberPath(tag)
	}
	return "", false
}

func tagName(tag ast.Expr) string {
	switch t := tag.Data.(type) {
	case *ast.EIdentifier:
		return t.Name
	case *ast.EJSXNamespacedName:
		return t.Namespace + ":" + t.Name
	}
	return ""
}

func attrName(name ast.JSXName) string {
	if renamed, ok := attrRenames[name.Name]; ok && name.Namespace == "" {
		return renamed
	}
	return name.String()
}

func (l *Lowerer) intrinsic(el *ast.EJSXElement, d *Deferred) (Lowered, error) {
	tag := tagName(el.TagOrNil)
	var b tpl.Builder
	b.AppendQuasi("<" + tag)
	for i := range el.Attrs {
		b.AppendQuasi(" ")
		if err := l.attr(&b, &el.Attrs[i], d); err != nil {
			return Lowered{}, err
		}
	}
	b.AppendQuasi(">")
	if err := l.children(&b, el.Children, d); err != nil {
		return Lowered{}, err
	}
	b.AppendQuasi("</" + tag + ">")
	return Lowered{Kind: Intrinsic, Template: b.Build()}, nil
}

// attr renders one attribute as `name="value"`.
func (l *Lowerer) attr(b *tpl.Builder, attr *ast.JSXAttr, d *Deferred) error {
	if attr.IsSpread {
		if err := l.expr(&attr.Spread); err != nil {
			return err
		}
		b.AppendExpr(l.spreadAttrs(attr.Spread))
		return nil
	}

	name := attrName(attr.Name)
	b.AppendQuasi(name + `="`)
	defer b.AppendQuasi(`"`)

	value := attr.ValueOrNil
	if c, ok := value.Data.(*ast.EJSXExprContainer); ok {
		value = c.ExprOrNil
	}
	if value.Data == nil {
		b.AppendQuasi("true")
		return nil
	}
	if name == "style" && attr.Name.Namespace == "" {
		return l.styleAttr(b, value)
	}

	if el, ok := ast.Unparen(value).Data.(*ast.EJSXElement); ok {
		return l.nested(b, el, d)
	}
	if text, ok := tpl.Literal(ast.Unparen(value)); ok {
		b.AppendQuasi(escapeAttr(text))
		return nil
	}
	if err := l.expr(&value); err != nil {
		return err
	}
	b.AppendExpr(value)
	return nil
}

func (l *Lowerer) styleAttr(b *tpl.Builder, value ast.Expr) error {
	switch v := ast.Unparen(value).Data.(type) {
	case *ast.EObject:
		for i := range v.Properties {
			if err := l.propertyExprs(&v.Properties[i]); err != nil {
				return err
			}
		}
		css, err := l.styles.Object(v)
		if err != nil {
			return err
		}
		b.AppendTemplate(css)
		return nil
	case *ast.EString:
		b.AppendQuasi(escapeAttr(v.Value))
		return nil
	}
	if err := l.expr(&value); err != nil {
		return err
	}
	b.AppendExpr(l.styles.ObjectCall(value))
	return nil
}

// escapeAttr makes literal text safe inside a double-quoted attribute.
func escapeAttr(s string) string {
	return strings.ReplaceAll(s, `"`, "&quot;")
}

// nested lowers an element that sits directly in markup and splices the
// processed result.
func (l *Lowerer) nested(b *tpl.Builder, el *ast.EJSXElement, d *Deferred) error {
	out, err := l.Element(el, d)
	if err != nil {
		return err
	}
	l.splice(b, out, d)
	return nil
}

func (l *Lowerer) children(b *tpl.Builder, children []ast.Expr, d *Deferred) error {
	for i := range children {
		if err := l.child(b, &children[i], d); err != nil {
			return err
		}
	}
	return nil
}

func (l *Lowerer) child(b *tpl.Builder, child *ast.Expr, d *Deferred) error {
	switch c := child.Data.(type) {
	case *ast.EJSXText:
		b.AppendQuasi(c.Raw)
	case *ast.EJSXElement:
		if c.IsFragment() {
			return l.children(b, c.Children, d)
		}
		return l.nested(b, c, d)
	case *ast.EJSXSpreadChild:
		if err := l.expr(&c.Value); err != nil {
			return err
		}
		b.AppendExpr(c.Value)
	case *ast.EJSXExprContainer:
		if c.ExprOrNil.Data == nil {
			return nil
		}
		return l.containerChild(b, &c.ExprOrNil, d)
	}
	return nil
}

func (l *Lowerer) containerChild(b *tpl.Builder, value *ast.Expr, d *Deferred) error {
	switch v := ast.Unparen(*value).Data.(type) {
	case *ast.EJSXElement:
		if v.IsFragment() {
			return l.children(b, v.Children, d)
		}
		return l.nested(b, v, d)
	case *ast.EObject:
		return diag.Faultf(diag.SemaObjectChild, value.Span,
			"objects are not valid as a child, render its fields or convert it to a string")
	case *ast.EArray:
		if err := l.arrayItems(v, d); err != nil {
			return err
		}
		b.AppendExpr(ast.Call(ast.Dot(*value, "join"), ast.Str("")))
		return nil
	}
	if text, ok := tpl.Literal(ast.Unparen(*value)); ok {
		b.AppendQuasi(text)
		return nil
	}
	if err := l.expr(value); err != nil {
		return err
	}
	b.AppendExpr(l.stringify(*value))
	return nil
}

// arrayItems lowers elements written directly in an array child so the
// joined array holds markup text.
func (l *Lowerer) arrayItems(arr *ast.EArray, d *Deferred) error {
	for i := range arr.Items {
		item := &arr.Items[i]
		el, ok := ast.Unparen(*item).Data.(*ast.EJSXElement)
		if !ok {
			if err := l.expr(item); err != nil {
				return err
			}
			continue
		}
		var b tpl.Builder
		if err := l.nested(&b, el, d); err != nil {
			return err
		}
		*item = b.Build().StringOrTemplate()
	}
	return nil
}

// custom lowers a component tag into a call with one props object.
func (l *Lowerer) custom(el *ast.EJSXElement, name string, d *Deferred) (Lowered, error) {
	mark := d.Len()
	props := make([]ast.Property, 0, len(el.Attrs)+1)
	for i := range el.Attrs {
		attr := &el.Attrs[i]
		if attr.IsSpread {
			if err := l.expr(&attr.Spread); err != nil {
				return Lowered{}, err
			}
			props = append(props, ast.Property{Kind: ast.PropertySpread, ValueOrNil: attr.Spread, Span: attr.Span})
			continue
		}
		if attr.Name.Namespace != "" {
			return Lowered{}, diag.Faultf(diag.SemaUnsupportedAttrName, attr.Span,
				"namespaced attribute %s is not supported on component <%s>", attr.Name, name)
		}
		value, err := l.propValue(attr, d)
		if err != nil {
			return Lowered{}, err
		}
		props = append(props, ast.Property{Key: ast.Str(attrName(attr.Name)), ValueOrNil: value, Span: attr.Span})
	}

	var children tpl.Builder
	if err := l.children(&children, el.Children, d); err != nil {
		return Lowered{}, err
	}
	props = append(props, ast.Property{Key: ast.Str("children"), ValueOrNil: children.Build().StringOrTemplate()})

	call := ast.Call(el.TagOrNil, ast.Expr{Data: &ast.EObject{Properties: props}})
	return Lowered{Kind: Custom, Name: name, Call: call, mark: mark}, nil
}

func (l *Lowerer) propValue(attr *ast.JSXAttr, d *Deferred) (ast.Expr, error) {
	value := attr.ValueOrNil
	if c, ok := value.Data.(*ast.EJSXExprContainer); ok {
		value = c.ExprOrNil
	}
	if value.Data == nil {
		return ast.Expr{Data: &ast.EBoolean{Value: true}, Span: attr.Span}, nil
	}
	if el, ok := ast.Unparen(value).Data.(*ast.EJSXElement); ok {
		var b tpl.Builder
		if err := l.nested(&b, el, d); err != nil {
			return ast.Expr{}, err
		}
		return b.Build().StringOrTemplate(), nil
	}
	if err := l.expr(&value); err != nil {
		return ast.Expr{}, err
	}
	return value, nil
}

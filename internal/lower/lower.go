package lower

import (
	"slices"

	"jsxstream/internal/ast"
	"jsxstream/internal/format"
	"jsxstream/internal/style"
	"jsxstream/internal/tpl"
	"jsxstream/internal/types"
)

// Printer renders an expression as JavaScript source.
type Printer interface {
	Expr(e ast.Expr) string
}

// TypeLookup resolves the inferred type of a component name. sema.Result
// implements it.
type TypeLookup interface {
	Lookup(name string) (types.ExportType, bool)
}

// Options configure a Lowerer.
type Options struct {
	Runtime Runtime
	// Types: nil means every component is assumed deferred.
	Types   TypeLookup
	IDs     IDGen            // nil: RandomIDs
	Printer Printer          // nil: minified format.Printer
	Styles  *style.NameCache // shared between files; nil: private cache
}

// Kind classifies a lowered element.
type Kind uint8

const (
	Intrinsic Kind = iota
	Custom
)

func (k Kind) String() string {
	if k == Custom {
		return "custom"
	}
	return "intrinsic"
}

// Lowered is the result of lowering one element: a markup template for
// intrinsic tags and fragments, a component call for custom tags.
type Lowered struct {
	Kind     Kind
	Name     string // имя компонента для Custom, "a.b" для членов
	Template tpl.Template
	Call     ast.Expr
	// mark: длина списка до детей компонента; его запись встаёт перед ними
	mark int
}

// Expr returns the lowered expression without deferred processing.
func (l Lowered) Expr() ast.Expr {
	if l.Kind == Custom {
		return l.Call
	}
	return l.Template.StringOrTemplate()
}

// Creation is a deferred child: the placeholder it replaces and the awaited
// component call producing `[html, fn]`.
type Creation struct {
	ID   string
	Expr ast.Expr
}

// Deferred collects the deferred children of one top-level element in
// pre-order.
type Deferred struct {
	Creations []Creation
}

func (d *Deferred) Add(id string, e ast.Expr) {
	d.Creations = append(d.Creations, Creation{ID: id, Expr: e})
}

// insert keeps pre-order: a component is recorded before the deferred
// children collected while lowering its props.
func (d *Deferred) insert(at int, id string, e ast.Expr) {
	at = min(max(at, 0), len(d.Creations))
	d.Creations = slices.Insert(d.Creations, at, Creation{ID: id, Expr: e})
}

func (d *Deferred) Len() int {
	return len(d.Creations)
}

// Stats count what one Lowerer produced.
type Stats struct {
	Roots    int // top-level elements rewritten into streaming closures
	Deferred int // placeholders emitted
	Sync     int // custom children rendered synchronously
}

// Lowerer rewrites the JSX of one module. It is not safe for concurrent
// use; the style name cache it shares is.
type Lowerer struct {
	rt      Runtime
	types   TypeLookup
	ids     IDGen
	printer Printer
	styles  *style.Serializer
	// later: имя массива-сборщика, одно на файл
	later   string
	stats   Stats
}

func New(opts Options) *Lowerer {
	l := &Lowerer{
		rt:      opts.Runtime.withDefaults(),
		types:   opts.Types,
		ids:     opts.IDs,
		printer: opts.Printer,
	}
	if l.ids == nil {
		l.ids = RandomIDs()
	}
	if l.printer == nil {
		l.printer = format.Printer{Options: format.Options{Minify: true}}
	}
	l.styles = style.NewSerializer(opts.Styles, l.rt.Style)
	l.later = l.ids.NewID(CollectorIDLen)
	return l
}

// Collector is the identifier of the later-create array in generated code.
func (l *Lowerer) Collector() string {
	return l.later
}

func (l *Lowerer) Stats() Stats {
	return l.stats
}

// Process turns a lowered element into the markup spliced into its parent
// template. Intrinsic markup is returned as is; a component known to
// produce synchronous markup is stringified in place; any other component
// is replaced by a placeholder element and appended to d.
func (l *Lowerer) Process(out Lowered, d *Deferred) tpl.Template {
	var b tpl.Builder
	l.splice(&b, out, d)
	return b.Build()
}

func (l *Lowerer) splice(b *tpl.Builder, out Lowered, d *Deferred) {
	if out.Kind == Intrinsic {
		b.AppendTemplate(out.Template)
		return
	}
	if l.isSyncMarkup(out.Name) {
		l.stats.Sync++
		b.AppendExpr(l.stringify(out.Call))
		return
	}
	l.stats.Deferred++
	id := l.ids.NewID(PlaceholderIDLen)
	tag := l.rt.PlaceholderTag
	b.AppendQuasi("<" + tag + ` id="` + id + `"></` + tag + ">")
	d.insert(out.mark, id, ast.Await(out.Call))
}

// isSyncMarkup: только известная синхронная разметка; неизвестное имя и
// Other считаются отложенными.
func (l *Lowerer) isSyncMarkup(name string) bool {
	if l.types == nil || name == "" {
		return false
	}
	t, ok := l.types.Lookup(name)
	return ok && t == types.Markup
}

func (l *Lowerer) stringify(value ast.Expr) ast.Expr {
	return ast.Call(ast.Path(l.rt.Stringify), value, ast.Ident(l.later))
}

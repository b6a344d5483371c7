package style

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"jsxstream/internal/ast"
	"jsxstream/internal/diag"
	"jsxstream/internal/format"
	"jsxstream/internal/parser"
	"jsxstream/internal/source"
)

// parseObject разбирает `({...})` и возвращает объектный литерал.
func parseObject(t *testing.T, src string) *ast.EObject {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("style.tsx", []byte("("+src+")")))
	bag := diag.NewBag(10)
	res := parser.ParseFile(file, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	require.NotNil(t, res.Program, "parse %q", src)
	require.False(t, bag.HasErrors())
	stmt := res.Program.Stmts[0].Data.(*ast.SExpr)
	obj, ok := ast.Unparen(stmt.Value).Data.(*ast.EObject)
	require.True(t, ok, "expected object literal in %q", src)
	return obj
}

func TestStaticStyles(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{`{backgroundColor: '#121212'}`, "background-color: #121212"},
		{`{fontSize: 16}`, "font-size: 16px"},
		{`{margin: 0}`, "margin: 0"},
		{`{flex: 1}`, "flex: 1"},
		{`{'--test': 'hello'}`, "--test: hello"},
		{`{'--gap': 4}`, "--gap: 4"},
		{`{msTransition: 'x', MozTransition: 'y'}`, "-ms-transition: x;-moz-transition: y"},
		{`{lineHeight: 1.5, width: 10.5}`, "line-height: 1.5;width: 10.5px"},
		{`{visible: true, content: null}`, "visible: true;content: null"},
		{`{['zIndex']: 3}`, "z-index: 3"},
	}
	s := NewSerializer(NewNameCache(), DefaultRuntime())
	for _, tc := range cases {
		got, err := s.Object(parseObject(t, tc.src))
		require.NoError(t, err, tc.src)
		require.True(t, got.IsStatic(), tc.src)
		require.Equal(t, tc.want, got.Text(), tc.src)
	}
}

func TestDynamicStyles(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{`{color}`, "`color: ${global.___FRAMEWORK_JS_STYLE_VALUE___(color,\"color\")}`"},
		{`{fontSize: size}`, "`font-size: ${global.___FRAMEWORK_JS_STYLE_VALUE___(size,\"font-size\")}`"},
		{"{width: `${w}em`}", "`width: ${global.___FRAMEWORK_JS_STYLE_VALUE___(`${w}em`,\"width\")}`"},
		{`{[k]: 1}`, "`${global.___FRAMEWORK_JS_STYLE_NAME___(k)}: ${global.___FRAMEWORK_JS_STYLE_VALUE___(1,k)}`"},
		{`{...base, color: 'red'}`, "`${global.___FRAMEWORK_JS_STYLE_OBJECT___(base)};color: red`"},
	}
	s := NewSerializer(NewNameCache(), DefaultRuntime())
	for _, tc := range cases {
		got, err := s.Object(parseObject(t, tc.src))
		require.NoError(t, err, tc.src)
		require.Equal(t, tc.want, format.Expr(got.Expr()), tc.src)
	}
}

func TestUnsupportedStyles(t *testing.T) {
	cases := []struct {
		src  string
		code diag.Code
	}{
		{`{color: pick()}`, diag.SemaUnsupportedStyleVal},
		{`{width: a.b}`, diag.SemaUnsupportedStyleVal},
		{`{margin: {top: 1}}`, diag.SemaUnsupportedStyleVal},
		{`{[a + b]: 1}`, diag.SemaUnsupportedStyleKey},
		{`{m() {}}`, diag.SemaUnsupportedStyleKey},
	}
	s := NewSerializer(nil, DefaultRuntime())
	for _, tc := range cases {
		_, err := s.Object(parseObject(t, tc.src))
		var fault *diag.Fault
		require.True(t, errors.As(err, &fault), "%s: expected fault, got %v", tc.src, err)
		require.Equal(t, tc.code, fault.Diag.Code, tc.src)
	}
}

func TestNameCacheMemoizes(t *testing.T) {
	names := NewNameCache()
	s := NewSerializer(names, DefaultRuntime())
	obj := parseObject(t, `{backgroundColor: 'red', color: 'blue'}`)

	first, err := s.Object(obj)
	require.NoError(t, err)
	second, err := s.Object(obj)
	require.NoError(t, err)

	require.Equal(t, first.Text(), second.Text())
	require.Equal(t, 2, names.Computed())
	require.Equal(t, 2, names.Len())

	names.Reset()
	require.Zero(t, names.Len())
	third, err := s.Object(obj)
	require.NoError(t, err)
	require.Equal(t, first.Text(), third.Text())
}

func TestNameCacheConcurrent(t *testing.T) {
	names := NewNameCache()
	var g errgroup.Group
	for i := 0; i < 16; i++ {
		g.Go(func() error {
			if got := names.Resolve("borderTopWidth"); got != "border-top-width" {
				return errors.New("unexpected name " + got)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.Equal(t, 1, names.Computed())
}

func TestProcessName(t *testing.T) {
	require.Equal(t, "background-color", ProcessName("backgroundColor"))
	require.Equal(t, "-webkit-line-clamp", ProcessName("WebkitLineClamp"))
	require.Equal(t, "-ms-grid-row", ProcessName("msGridRow"))
	require.Equal(t, "ms", ProcessName("ms"))
	require.Equal(t, "--myVar", ProcessName("--myVar"))
	require.Equal(t, "a&quot;b&amp;&lt;&gt;&#x27;", ProcessName(`a"b&<>'`))
}

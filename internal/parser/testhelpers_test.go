package parser

import (
	"fmt"
	"strings"
	"testing"

	"jsxstream/internal/ast"
	"jsxstream/internal/diag"
	"jsxstream/internal/source"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func parseSourceWithOptions(t *testing.T, input string, opts Options) (*ast.Program, *diag.Bag) {
	t.Helper()

	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.tsx", []byte(input))
	file := fs.Get(fileID)

	bag := diag.NewBag(100)
	opts.Reporter = diag.BagReporter{Bag: bag}
	result := ParseFile(file, opts)
	if result.Bag != bag {
		t.Fatalf("ParseFile returned a different bag")
	}
	return result.Program, bag
}

// mustParse разбирает TSX-исходник и падает на любой диагностике.
func mustParse(t *testing.T, input string) *ast.Program {
	t.Helper()
	prog, bag := parseSourceWithOptions(t, input, Options{TypeScript: true})
	if bag.HasErrors() || prog == nil {
		t.Fatalf("unexpected diagnostics for %q: %s", input, diagnosticsSummary(bag))
	}
	return prog
}

// onlyExpr возвращает выражение единственного оператора-выражения.
func onlyExpr(t *testing.T, input string) ast.Expr {
	t.Helper()
	prog := mustParse(t, input)
	if len(prog.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Stmts))
	}
	st, ok := prog.Stmts[0].Data.(*ast.SExpr)
	if !ok {
		t.Fatalf("expected expression statement, got %T", prog.Stmts[0].Data)
	}
	return st.Value
}

func stmtTypes(prog *ast.Program) string {
	names := make([]string, len(prog.Stmts))
	for i, st := range prog.Stmts {
		names[i] = strings.TrimPrefix(fmt.Sprintf("%T", st.Data), "*ast.")
	}
	return strings.Join(names, " ")
}

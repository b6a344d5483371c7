package lower

import (
	"strings"

	"jsxstream/internal/ast"
	"jsxstream/internal/tpl"
)

// assemble builds the streaming closure for one top-level element:
//
//	(() => {
//		const LATER = [];
//		return [first, (ctrl) => {
//			const pending = LATER.map((cb) => cb(ctrl));
//			pending.push((async () => { ... })()); // по одному на заглушку
//			return Promise.allSettled(pending);
//		}];
//	})()
func (l *Lowerer) assemble(first ast.Expr, d *Deferred) ast.Expr {
	ctrl := l.ids.NewID(PlaceholderIDLen)
	pending := l.ids.NewID(PlaceholderIDLen)
	cb := l.ids.NewID(PlaceholderIDLen)

	body := make([]ast.Stmt, 0, d.Len()+2)
	body = append(body, constDecl(ident(pending),
		ast.Call(ast.Dot(ast.Ident(l.later), "map"),
			arrowExpr([]string{cb}, ast.Call(ast.Ident(cb), ast.Ident(ctrl))))))
	for _, c := range d.Creations {
		body = append(body, exprStmt(ast.Call(ast.Dot(ast.Ident(pending), "push"), l.creation(c, ctrl))))
	}
	body = append(body, returnStmt(ast.Call(ast.Path("Promise.allSettled"), ast.Ident(pending))))

	continuation := arrowBlock([]string{ctrl}, body, false)
	closure := arrowBlock(nil, []ast.Stmt{
		constDecl(ident(l.later), ast.Expr{Data: &ast.EArray{}}),
		returnStmt(ast.Expr{Data: &ast.EArray{Items: []ast.Expr{first, continuation}}}),
	}, false)
	return ast.Call(closure)
}

// creation renders one deferred child once its component resolves:
//
//	(async () => {
//		const [html, fn] = await Component(props);
//		ctrl.enqueue(`<script id="S">document.getElementById("ID").outerHTML = \`${html…}\`;document.getElementById("S").remove();</script>`);
//		fn(ctrl);
//	})()
func (l *Lowerer) creation(c Creation, ctrl string) ast.Expr {
	html := l.ids.NewID(PlaceholderIDLen)
	fn := l.ids.NewID(PlaceholderIDLen)
	script := l.ids.NewID(PlaceholderIDLen)

	// html попадает внутрь шаблонной строки скрипта
	escaped := ast.Call(ast.Dot(ast.Ident(html), "replace"),
		ast.Expr{Data: &ast.ERegExp{Value: "/[\\\\`$]/g"}}, ast.Str(`\$&`))
	var b tpl.Builder
	b.AppendQuasi(`<script id="` + script + `">document.getElementById("` + c.ID + `").outerHTML = ` + "`")
	b.AppendExpr(escaped)
	b.AppendQuasi("`" + `;document.getElementById("` + script + `").remove();</script>`)

	pair := ast.Binding{Data: &ast.BArray{Items: []ast.ArrayBinding{
		{Binding: ident(html)},
		{Binding: ident(fn)},
	}}}
	body := []ast.Stmt{
		constDecl(pair, c.Expr),
		exprStmt(ast.Call(ast.Dot(ast.Ident(ctrl), "enqueue"), b.Build().Expr())),
		exprStmt(ast.Call(ast.Ident(fn), ast.Ident(ctrl))),
	}
	return ast.Call(arrowBlock(nil, body, true))
}

// spreadAttrs renders `{...props}` on a native tag at run time as
// space-separated `name="value"` pairs.
func (l *Lowerer) spreadAttrs(value ast.Expr) ast.Expr {
	var sb strings.Builder
	sb.WriteString("Object.entries(")
	sb.WriteString(l.printer.Expr(value))
	sb.WriteString(").map(([k, v]) => `${k === \"className\" ? \"class\" : k}=\"${")
	sb.WriteString(`(typeof v === "string" ? v : typeof v === "boolean" ? "true" : String(JSON.stringify(v)))`)
	sb.WriteString(`.replace(/"/g, "&quot;")}"` + "`" + `).join(" ")`)
	return ast.Raw(sb.String(), ast.LCall)
}

func ident(name string) ast.Binding {
	return ast.Binding{Data: &ast.BIdentifier{Name: name}}
}

func constDecl(b ast.Binding, value ast.Expr) ast.Stmt {
	return ast.Stmt{Data: &ast.SLocal{Kind: ast.LocalConst, Decls: []ast.Decl{{Binding: b, ValueOrNil: value}}}}
}

func exprStmt(e ast.Expr) ast.Stmt {
	return ast.Stmt{Data: &ast.SExpr{Value: e}}
}

func returnStmt(e ast.Expr) ast.Stmt {
	return ast.Stmt{Data: &ast.SReturn{ValueOrNil: e}}
}

func arrowArgs(params []string) []ast.Arg {
	args := make([]ast.Arg, len(params))
	for i, p := range params {
		args[i] = ast.Arg{Binding: ident(p)}
	}
	return args
}

func arrowExpr(params []string, value ast.Expr) ast.Expr {
	return ast.Expr{Data: &ast.EArrow{
		Args:       arrowArgs(params),
		Body:       ast.FnBody{Stmts: []ast.Stmt{returnStmt(value)}},
		PreferExpr: true,
	}}
}

func arrowBlock(params []string, body []ast.Stmt, isAsync bool) ast.Expr {
	return ast.Expr{Data: &ast.EArrow{
		Args:    arrowArgs(params),
		Body:    ast.FnBody{Stmts: body},
		IsAsync: isAsync,
	}}
}

package ast

// Конструкторы для узлов, которые порождает компилятор (пустой Span).

func Ident(name string) Expr { return Expr{Data: &EIdentifier{Name: name}} }

func Str(value string) Expr { return Expr{Data: &EString{Value: value}} }

func Call(target Expr, args ...Expr) Expr {
	return Expr{Data: &ECall{Target: target, Args: args}}
}

func Dot(target Expr, name string) Expr {
	return Expr{Data: &EDot{Target: target, Name: name}}
}

func Await(value Expr) Expr { return Expr{Data: &EAwait{Value: value}} }

func Raw(text string, level L) Expr { return Expr{Data: &ERaw{Text: text, Level: level}} }

// Path parses a dotted path like "global.__x__" into an identifier/EDot chain.
func Path(dotted string) Expr {
	var e Expr
	start := 0
	for i := 0; i <= len(dotted); i++ {
		if i < len(dotted) && dotted[i] != '.' {
			continue
		}
		part := dotted[start:i]
		if e.Data == nil {
			e = Ident(part)
		} else {
			e = Dot(e, part)
		}
		start = i + 1
	}
	return e
}

// MemberPath renders an identifier or a chain of plain property accesses as
// "a.b.c". Anything else reports false.
func MemberPath(e Expr) (string, bool) {
	switch d := e.Data.(type) {
	case *EIdentifier:
		return d.Name, true
	case *EDot:
		if d.Optional || d.Private {
			return "", false
		}
		head, ok := MemberPath(d.Target)
		if !ok {
			return "", false
		}
		return head + "." + d.Name, true
	}
	return "", false
}

// Unparen strips source parentheses.
func Unparen(e Expr) Expr {
	for {
		p, ok := e.Data.(*EParen)
		if !ok {
			return e
		}
		e = p.Value
	}
}

// IsPrimitiveLiteral reports string, number, bigint, boolean and null literals.
func IsPrimitiveLiteral(e Expr) bool {
	switch e.Data.(type) {
	case *EString, *ENumber, *EBigInt, *EBoolean, *ENull:
		return true
	}
	return false
}

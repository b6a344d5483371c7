package parser

import (
	"fmt"

	"jsxstream/internal/ast"
	"jsxstream/internal/diag"
	"jsxstream/internal/lexer"
	"jsxstream/internal/source"
	"jsxstream/internal/token"
)

type Options struct {
	// TypeScript включает разбор неоднозначных TS-конструкций
	// (f<T>(x), <T,>(x) => x). Аннотации типов срезаются всегда.
	TypeScript bool
	MaxErrors  uint
	Reporter   diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough(current uint) bool {
	if o.MaxErrors == 0 {
		return false
	}
	return current >= o.MaxErrors
}

type Result struct {
	Program *ast.Program
	Bag     *diag.Bag
}

// fnContext describes the innermost function for await/yield handling.
type fnContext struct {
	inFunction  bool
	isAsync     bool
	isGenerator bool
	// запрет `in` в инициализаторе for (...; ...; ...)
	noIn bool
	// ветка "да" тернарного оператора: `a ? (b) : c => d` не стрелка с типом
	inCondYes bool
}

// Parser — состояние парсера на один файл.
// Синтаксическая ошибка фатальна для файла: первая же ошибка
// прерывает разбор (abortParse), лексические ошибки копятся.
type Parser struct {
	lx      *lexer.Lexer
	file    *source.File
	opts    Options
	tok     token.Token // текущий токен, лексер стоит сразу после него
	prevEnd uint32      // конец последнего съеденного токена
	ctx     fnContext
	errors  uint
	spec    int // глубина спекулятивного разбора
}

type abortParse struct{}

type specAbort struct{}

// ParseFile parses one module. The returned Program is nil when a syntax
// error stopped the parse.
func ParseFile(file *source.File, opts Options) Result {
	p := &Parser{file: file, opts: opts}
	p.lx = lexer.New(file, lexer.Options{Reporter: lexReporter{p: p}})

	var prog *ast.Program
	func() {
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(abortParse); !ok {
					panic(r)
				}
				prog = nil
			}
		}()
		p.next()
		stmts := p.parseStmtsUpTo(token.EOF, true, true)
		prog = &ast.Program{File: file.ID, Stmts: stmts}
	}()

	var bag *diag.Bag
	switch r := opts.Reporter.(type) {
	case diag.BagReporter:
		bag = r.Bag
	case *diag.BagReporter:
		bag = r.Bag
	}
	if p.errors > 0 {
		prog = nil
	}
	return Result{Program: prog, Bag: bag}
}

// lexReporter пропускает ошибки лексера через парсер: при спекуляции
// они отменяют попытку, а не попадают в отчёт.
type lexReporter struct{ p *Parser }

func (r lexReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	if r.p.spec > 0 {
		panic(specAbort{})
	}
	r.p.report(code, sev, primary, msg)
}

func (p *Parser) next() {
	p.prevEnd = p.tok.Span.End
	p.tok = p.lx.Next()
}

// nextInsideJSX сканирует следующий токен в режиме тега.
func (p *Parser) nextInsideJSX() {
	p.prevEnd = p.tok.Span.End
	p.tok = p.lx.NextInsideJSX()
}

// nextJSXChild сканирует следующий токен в режиме содержимого элемента.
func (p *Parser) nextJSXChild() {
	p.prevEnd = p.tok.Span.End
	p.tok = p.lx.NextJSXChild()
}

func (p *Parser) at(k token.Kind) bool {
	return p.tok.Kind == k
}

// atWord — контекстное слово (async, of, type, ...).
func (p *Parser) atWord(word string) bool {
	return p.tok.Is(word)
}

func (p *Parser) eat(k token.Kind) bool {
	if p.tok.Kind == k {
		p.next()
		return true
	}
	return false
}

func (p *Parser) eatWord(word string) bool {
	if p.tok.Is(word) {
		p.next()
		return true
	}
	return false
}

func (p *Parser) expect(k token.Kind) {
	if p.tok.Kind == k {
		p.next()
		return
	}
	code := diag.SynUnexpectedToken
	switch k {
	case token.RParen:
		code = diag.SynUnclosedParen
	case token.RBrace:
		code = diag.SynUnclosedBrace
	case token.RBracket:
		code = diag.SynUnclosedBracket
	case token.Semicolon:
		code = diag.SynExpectSemicolon
	}
	p.errf(code, "expected %q but found %s", k.String(), p.describe())
}

func (p *Parser) expectWord(word string) {
	if !p.eatWord(word) {
		p.errf(diag.SynUnexpectedToken, "expected %q but found %s", word, p.describe())
	}
}

// semicolon — автоматическая вставка ';': перед '}', EOF или после перевода строки.
func (p *Parser) semicolon() {
	if p.eat(token.Semicolon) {
		return
	}
	if p.at(token.RBrace) || p.at(token.EOF) || p.tok.NewlineBefore {
		return
	}
	p.errf(diag.SynExpectSemicolon, "expected \";\" but found %s", p.describe())
}

func (p *Parser) describe() string {
	switch p.tok.Kind {
	case token.EOF:
		return "end of file"
	case token.String, token.NoSubstitutionTemplate, token.TemplateHead:
		return "string " + p.tok.Text
	case token.Number, token.BigInt:
		return "number " + p.tok.Text
	}
	return "\"" + p.tok.Text + "\""
}

func (p *Parser) spanFrom(start uint32) source.Span {
	end := p.prevEnd
	if end < start {
		end = start
	}
	return source.Span{File: p.file.ID, Start: start, End: end}
}

func (p *Parser) start() uint32 { return p.tok.Span.Start }

// errf репортит синтаксическую ошибку на текущем токене и прерывает разбор.
func (p *Parser) errf(code diag.Code, format string, args ...any) {
	p.errAt(code, p.tok.Span, format, args...)
}

func (p *Parser) errAt(code diag.Code, sp source.Span, format string, args ...any) {
	if p.spec > 0 {
		panic(specAbort{})
	}
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	p.report(code, diag.SevError, sp, msg)
	panic(abortParse{})
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if sev == diag.SevError {
		p.errors++
		if p.opts.Enough(p.errors - 1) {
			return
		}
	}
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, sev, sp, msg, nil)
	}
}

// try запускает fn спекулятивно: при ошибке (синтаксической или
// лексической) состояние лексера и парсера откатывается и try
// возвращает false.
func (p *Parser) try(fn func()) (ok bool) {
	off := p.lx.Offset()
	tok, prevEnd, ctx := p.tok, p.prevEnd, p.ctx
	p.spec++
	defer func() {
		p.spec--
		if r := recover(); r != nil {
			if _, is := r.(specAbort); !is {
				panic(r)
			}
			p.lx.ResetTo(off)
			p.tok, p.prevEnd, p.ctx = tok, prevEnd, ctx
			ok = false
		}
	}()
	fn()
	return true
}

// lookahead reports what fn decides about the upcoming tokens and always
// rewinds.
func (p *Parser) lookahead(fn func() bool) (result bool) {
	off := p.lx.Offset()
	tok, prevEnd, ctx := p.tok, p.prevEnd, p.ctx
	p.spec++
	defer func() {
		p.spec--
		if r := recover(); r != nil {
			if _, is := r.(specAbort); !is {
				panic(r)
			}
			result = false
		}
		p.lx.ResetTo(off)
		p.tok, p.prevEnd, p.ctx = tok, prevEnd, ctx
	}()
	return fn()
}

// withFn runs fn inside a fresh function context.
func (p *Parser) withFn(isAsync, isGenerator bool, fn func()) {
	saved := p.ctx
	p.ctx = fnContext{inFunction: true, isAsync: isAsync, isGenerator: isGenerator}
	defer func() { p.ctx = saved }()
	fn()
}

// awaitIsKeyword: await — ключевое слово в async-функциях и на верхнем уровне модуля.
func (p *Parser) awaitIsKeyword() bool {
	return p.ctx.isAsync || !p.ctx.inFunction
}

package format

// Writer accumulates printed output and keeps adjacent tokens apart.
type Writer struct {
	opt         Options
	buf         []byte
	indentLevel int
	atLineStart bool
}

// NewWriter creates a new output writer.
func NewWriter(opt Options) *Writer {
	return &Writer{opt: opt.withDefaults()}
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) String() string {
	return string(w.buf)
}

func (w *Writer) writeIndent() {
	if !w.atLineStart {
		return
	}
	for i, n := 0, w.indentLevel*w.opt.IndentWidth; i < n; i++ {
		w.buf = append(w.buf, ' ')
	}
	w.atLineStart = false
}

// Token writes a token, inserting a space when it would otherwise merge with
// the previous one (`a+ +b`, `return x`, `a/ /re/`).
func (w *Writer) Token(s string) {
	if s == "" {
		return
	}
	w.writeIndent()
	if n := len(w.buf); n > 0 {
		last, first := w.buf[n-1], s[0]
		switch {
		case isWordByte(last) && isWordByte(first):
			w.buf = append(w.buf, ' ')
		case last == first && (first == '+' || first == '-' || first == '/'):
			w.buf = append(w.buf, ' ')
		}
	}
	w.buf = append(w.buf, s...)
	w.atLineStart = false
}

// WriteString writes literal text (string and template contents, JSX text)
// without token separation.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	w.writeIndent()
	w.buf = append(w.buf, s...)
	w.atLineStart = s[len(s)-1] == '\n'
}

// Space writes a space in pretty mode only.
func (w *Writer) Space() {
	if w.opt.Minify || len(w.buf) == 0 {
		return
	}
	last := w.buf[len(w.buf)-1]
	if last == ' ' || last == '\n' {
		return
	}
	w.buf = append(w.buf, ' ')
}

// Newline ends the line in pretty mode only.
func (w *Writer) Newline() {
	if w.opt.Minify {
		return
	}
	if len(w.buf) == 0 || w.buf[len(w.buf)-1] != '\n' {
		w.buf = append(w.buf, '\n')
	}
	w.atLineStart = true
}

// IndentPush increases the indentation level.
func (w *Writer) IndentPush() {
	w.indentLevel++
}

// IndentPop decreases the indentation level.
func (w *Writer) IndentPop() {
	if w.indentLevel > 0 {
		w.indentLevel--
	}
}

func isWordByte(c byte) bool {
	return c == '_' || c == '$' || c == '\\' || c >= 0x80 ||
		'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}

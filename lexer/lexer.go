// Package lexer converts a decoded Unicode source buffer into a flat token
// stream, accumulating errors rather than aborting on the first fault.
package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/chazu/junoc/diag"
	"github.com/chazu/junoc/source"
	"github.com/chazu/junoc/token"
)

// Lexer tokenizes a decoded source buffer.
type Lexer struct {
	buf  *source.Buffer
	pos  int // index of ch within buf
	ch   rune
	line int
	col  int
	sink *diag.Sink
}

// New creates a lexer over buf. Diagnostics are appended to sink.
func New(buf *source.Buffer, sink *diag.Sink) *Lexer {
	l := &Lexer{buf: buf, line: 1, col: 1, sink: sink}
	l.ch = l.buf.At(0)
	if buf.Len() == 0 {
		l.ch = 0
	}
	return l
}

// Lex is the convenience entry point: lex(source) -> (tokens, lex_errors).
func Lex(buf *source.Buffer) ([]token.Token, diag.List) {
	sink := &diag.Sink{}
	l := New(buf, sink)
	var toks []token.Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return toks, sink.Errors()
}

func (l *Lexer) atEnd() bool { return l.pos >= l.buf.Len() }

func (l *Lexer) readChar() {
	if l.pos >= l.buf.Len() {
		l.pos++
		l.ch = 0
		return
	}
	if l.ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.pos++
	l.ch = l.buf.At(l.pos)
}

func (l *Lexer) peekChar() rune { return l.peekCharAt(1) }

func (l *Lexer) peekCharAt(n int) rune { return l.buf.At(l.pos + n) }

func (l *Lexer) errorf(index int, format string, args ...interface{}) {
	line, col := l.buf.LineCol(index)
	l.sink.Add(&diag.Error{
		Message: fmt.Sprintf(format, args...),
		Index:   index,
		Line:    line,
		Column:  col,
	})
}

// Next scans and returns the next token.
func (l *Lexer) Next() token.Token {
	l.skipWhitespaceAndComments()

	index := l.pos
	line, col := l.line, l.col

	switch {
	case l.ch == 0:
		return token.Token{Type: token.EOF, Index: index, Line: line, Column: col}

	case l.ch == '.' && isDigit(l.peekChar()):
		return l.readNumber(index, line, col)

	case isLetter(l.ch) || l.ch == '_':
		if l.ch == 'b' && (l.peekChar() == '\'' || l.peekChar() == '"') {
			return l.readByteLiteral(index, line, col)
		}
		return l.readIdentifier(index, line, col)

	case isDigit(l.ch):
		return l.readNumber(index, line, col)

	case l.ch == '\'':
		return l.readCharacter(index, line, col)

	case l.ch == '"':
		return l.readString(index, line, col)

	default:
		return l.readOperatorOrSymbol(index, line, col)
	}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
			l.readChar()
		}

		if l.ch == '/' && l.peekChar() == '/' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}

		if l.ch == '/' && l.peekChar() == '*' {
			startIndex, startLine, startCol := l.pos, l.line, l.col
			l.readChar() // consume /
			l.readChar() // consume *
			closed := false
			for l.ch != 0 {
				if l.ch == '*' && l.peekChar() == '/' {
					l.readChar()
					l.readChar()
					closed = true
					break
				}
				l.readChar()
			}
			if !closed {
				l.sink.Add(&diag.Error{
					Message: "unterminated block comment",
					Index:   startIndex,
					Line:    startLine,
					Column:  startCol,
				})
			}
			continue
		}

		break
	}
}

func (l *Lexer) readIdentifier(index, line, col int) token.Token {
	var sb strings.Builder
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
		if l.ch > unicode.MaxASCII {
			l.errorf(l.pos, "non-ASCII character %q in identifier", l.ch)
			l.readChar()
			continue
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	name := sb.String()
	return token.Token{
		Type: token.Identifier, Index: index, Line: line, Column: col,
		Length: l.pos - index, Ident: name,
	}
}

func (l *Lexer) readNumber(index, line, col int) token.Token {
	start := l.pos

	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') {
		return l.readRadixInteger(index, line, col, 16, isHexDigit)
	}
	if l.ch == '0' && (l.peekChar() == 'o' || l.peekChar() == 'O') {
		return l.readRadixInteger(index, line, col, 8, isOctDigit)
	}
	if l.ch == '0' && (l.peekChar() == 'b' || l.peekChar() == 'B') {
		return l.readRadixInteger(index, line, col, 2, isBinDigit)
	}

	isFloat := false
	if l.ch == '.' {
		isFloat = true
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	} else {
		for isDigit(l.ch) {
			l.readChar()
		}
		if l.ch == '.' && isDigit(l.peekChar()) {
			isFloat = true
			l.readChar()
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}

	text := string(l.buf.Slice(start, l.pos))
	length := l.pos - index

	if !isFloat && l.ch == 'U' {
		l.readChar()
		v, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			l.errorf(index, "malformed unsigned integer literal %q", text)
			return token.Token{Type: token.Invalid, Index: index, Line: line, Column: col, Length: length}
		}
		return token.Token{Type: token.Uinteger, Index: index, Line: line, Column: col, Length: l.pos - index, Uint: v}
	}

	if l.ch == 'i' {
		l.readChar()
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			l.errorf(index, "malformed imaginary literal %q", text)
			return token.Token{Type: token.Invalid, Index: index, Line: line, Column: col, Length: length}
		}
		return token.Token{Type: token.Imaginary, Index: index, Line: line, Column: col, Length: l.pos - index, Imaginary: v}
	}

	if isFloat {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			l.errorf(index, "malformed floating literal %q", text)
			return token.Token{Type: token.Invalid, Index: index, Line: line, Column: col, Length: length}
		}
		return token.Token{Type: token.Floating, Index: index, Line: line, Column: col, Length: length, Float: v}
	}

	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		l.errorf(index, "integer literal %q overflows signed 64-bit range", text)
		return token.Token{Type: token.Invalid, Index: index, Line: line, Column: col, Length: length}
	}
	return token.Token{Type: token.Integer, Index: index, Line: line, Column: col, Length: length, Int: v}
}

func (l *Lexer) readRadixInteger(index, line, col, radix int, digit func(rune) bool) token.Token {
	l.readChar() // consume '0'
	l.readChar() // consume x/o/b
	start := l.pos
	for digit(l.ch) {
		l.readChar()
	}
	text := string(l.buf.Slice(start, l.pos))
	length := l.pos - index

	if text == "" {
		l.errorf(index, "malformed numeric literal: missing digits after radix prefix")
		return token.Token{Type: token.Invalid, Index: index, Line: line, Column: col, Length: length}
	}

	if l.ch == 'U' {
		l.readChar()
		v, err := strconv.ParseUint(text, radix, 64)
		if err != nil {
			l.errorf(index, "malformed unsigned integer literal %q", text)
			return token.Token{Type: token.Invalid, Index: index, Line: line, Column: col, Length: length}
		}
		return token.Token{Type: token.Uinteger, Index: index, Line: line, Column: col, Length: l.pos - index, Uint: v}
	}
	if l.ch == 'i' {
		l.readChar()
		v, err := strconv.ParseUint(text, radix, 64)
		if err != nil {
			l.errorf(index, "malformed imaginary literal %q", text)
			return token.Token{Type: token.Invalid, Index: index, Line: line, Column: col, Length: length}
		}
		return token.Token{Type: token.Imaginary, Index: index, Line: line, Column: col, Length: l.pos - index, Imaginary: float64(v)}
	}

	v, err := strconv.ParseUint(text, radix, 64)
	if err != nil || v > 1<<63-1 {
		l.errorf(index, "integer literal %q overflows signed 64-bit range", text)
		return token.Token{Type: token.Invalid, Index: index, Line: line, Column: col, Length: length}
	}
	return token.Token{Type: token.Integer, Index: index, Line: line, Column: col, Length: length, Int: int64(v)}
}

func (l *Lexer) readCharacter(index, line, col int) token.Token {
	l.readChar() // consume opening '

	if l.ch == '\'' {
		l.errorf(index, "empty character literal")
		l.readChar()
		return token.Token{Type: token.Invalid, Index: index, Line: line, Column: col, Length: l.pos - index}
	}
	if l.ch == 0 {
		l.errorf(index, "unterminated character literal")
		return token.Token{Type: token.Invalid, Index: index, Line: line, Column: col}
	}

	var r rune
	if l.ch == '\\' {
		var ok bool
		r, ok = l.readEscape()
		if !ok {
			return token.Token{Type: token.Invalid, Index: index, Line: line, Column: col, Length: l.pos - index}
		}
	} else {
		r = l.ch
		l.readChar()
	}

	if l.ch != '\'' {
		l.errorf(index, "multi-character content in character literal")
		for l.ch != '\'' && l.ch != 0 && l.ch != '\n' {
			l.readChar()
		}
		if l.ch == '\'' {
			l.readChar()
		}
		return token.Token{Type: token.Invalid, Index: index, Line: line, Column: col, Length: l.pos - index}
	}
	l.readChar() // consume closing '

	return token.Token{Type: token.Character, Index: index, Line: line, Column: col, Length: l.pos - index, Char: r}
}

func (l *Lexer) readByteLiteral(index, line, col int) token.Token {
	l.readChar() // consume 'b'

	if l.ch == '\'' {
		tok := l.readCharacterRaw()
		if tok.Type == token.Invalid {
			tok.Index, tok.Line, tok.Column = index, line, col
			tok.Length = l.pos - index
			return tok
		}
		if tok.Char > 255 {
			l.errorf(index, "byte character literal %q does not fit in a byte", tok.Char)
			return token.Token{Type: token.Invalid, Index: index, Line: line, Column: col, Length: l.pos - index}
		}
		return token.Token{Type: token.Integer, Index: index, Line: line, Column: col, Length: l.pos - index, Int: int64(tok.Char)}
	}

	// Buffer literal: b"..." or b"""...""".
	runes, ok := l.readQuotedContent(index, line, col)
	if !ok {
		return token.Token{Type: token.Invalid, Index: index, Line: line, Column: col, Length: l.pos - index}
	}
	buf := make([]byte, 0, len(runes))
	for _, r := range runes {
		if r > 255 {
			l.errorf(index, "buffer literal contains code point %q that does not fit in a byte", r)
			return token.Token{Type: token.Invalid, Index: index, Line: line, Column: col, Length: l.pos - index}
		}
		buf = append(buf, byte(r))
	}
	return token.Token{Type: token.Buffer, Index: index, Line: line, Column: col, Length: l.pos - index, Buf: buf}
}

// readCharacterRaw reads the `'...'` part of a byte character literal and
// returns a token without position fields; readByteLiteral fills in the
// position of the whole `b'...'`. Its own diagnostics point at the
// character where the problem was found, not at the start of the literal.
func (l *Lexer) readCharacterRaw() token.Token {
	l.readChar() // consume opening '

	if l.ch == '\'' {
		l.errorf(l.pos, "empty byte character literal")
		l.readChar()
		return token.Token{Type: token.Invalid}
	}
	if l.ch == 0 {
		l.errorf(l.pos, "unterminated byte character literal")
		return token.Token{Type: token.Invalid}
	}

	var r rune
	if l.ch == '\\' {
		var ok bool
		r, ok = l.readEscape()
		if !ok {
			return token.Token{Type: token.Invalid}
		}
	} else {
		r = l.ch
		l.readChar()
	}

	if l.ch != '\'' {
		l.errorf(l.pos, "multi-character content in byte character literal")
		for l.ch != '\'' && l.ch != 0 && l.ch != '\n' {
			l.readChar()
		}
		if l.ch == '\'' {
			l.readChar()
		}
		return token.Token{Type: token.Invalid}
	}
	l.readChar()

	return token.Token{Type: token.Character, Char: r}
}

func (l *Lexer) readString(index, line, col int) token.Token {
	runes, ok := l.readQuotedContent(index, line, col)
	if !ok {
		return token.Token{Type: token.Invalid, Index: index, Line: line, Column: col, Length: l.pos - index}
	}
	return token.Token{Type: token.String, Index: index, Line: line, Column: col, Length: l.pos - index, Str: string(runes)}
}

// readQuotedContent reads either a single-line "..." literal or a
// triple-quoted """...""" literal starting at the current '"', processing
// escapes, and returns the decoded runes.
func (l *Lexer) readQuotedContent(index, line, col int) ([]rune, bool) {
	triple := l.peekChar() == '"' && l.peekCharAt(2) == '"'
	if triple {
		l.readChar()
		l.readChar()
		l.readChar()
	} else {
		l.readChar()
	}

	var out []rune
	for {
		if l.ch == 0 {
			l.errorf(index, "unterminated string literal")
			return nil, false
		}
		if triple {
			if l.ch == '"' && l.peekChar() == '"' && l.peekCharAt(2) == '"' {
				l.readChar()
				l.readChar()
				l.readChar()
				return out, true
			}
		} else {
			if l.ch == '"' {
				l.readChar()
				return out, true
			}
			if l.ch == '\n' {
				l.errorf(index, "unterminated string literal")
				return nil, false
			}
		}
		if l.ch == '\\' {
			r, ok := l.readEscape()
			if !ok {
				return nil, false
			}
			out = append(out, r)
			continue
		}
		out = append(out, l.ch)
		l.readChar()
	}
}

// readEscape consumes a backslash escape sequence and returns the decoded
// rune. The current character must be '\' on entry.
func (l *Lexer) readEscape() (rune, bool) {
	start := l.pos
	l.readChar() // consume backslash

	switch l.ch {
	case '\\':
		l.readChar()
		return '\\', true
	case '\'':
		l.readChar()
		return '\'', true
	case '"':
		l.readChar()
		return '"', true
	case 'n':
		l.readChar()
		return '\n', true
	case 'r':
		l.readChar()
		return '\r', true
	case 't':
		l.readChar()
		return '\t', true
	case 'b':
		l.readChar()
		return '\b', true
	case 'f':
		l.readChar()
		return '\f', true
	case 'v':
		l.readChar()
		return '\v', true
	case '0':
		l.readChar()
		return 0, true
	case 'a':
		l.readChar()
		return '\a', true
	case 'x':
		l.readChar()
		return l.readHexEscape(start, 2)
	case 'u':
		l.readChar()
		return l.readHexEscape(start, 4)
	case 'U':
		l.readChar()
		return l.readHexEscape(start, 8)
	default:
		l.errorf(start, "invalid escape sequence")
		l.readChar()
		return 0, false
	}
}

func (l *Lexer) readHexEscape(start, digits int) (rune, bool) {
	s := l.pos
	for l.pos-s < digits && isHexDigit(l.ch) {
		l.readChar()
	}
	text := string(l.buf.Slice(s, l.pos))
	if len(text) != digits {
		l.errorf(start, "escape sequence requires exactly %d hex digits, got %d", digits, len(text))
		return 0, false
	}
	v, err := strconv.ParseUint(text, 16, 32)
	if err != nil {
		l.errorf(start, "malformed hex escape %q", text)
		return 0, false
	}
	if v > 0x10FFFF {
		l.errorf(start, "escape value U+%X exceeds U+10FFFF", v)
		return 0, false
	}
	return rune(v), true
}

var twoCharOperators = map[string]token.Operator{
	"+=": token.AddAssign, "-=": token.SubAssign, "*=": token.MulAssign,
	"/=": token.DivAssign, "%=": token.ModAssign, "^=": token.PowAssign,
	"++": token.Inc, "--": token.Dec,
	"==": token.Eq, "!=": token.Ne, "<=": token.Le, ">=": token.Ge,
	"<<": token.Shl, ">>": token.Shr,
	"&&": token.And, "||": token.Or,
}

var oneCharOperators = map[rune]token.Operator{
	'+': token.Add, '-': token.Sub, '*': token.Mul, '/': token.Div, '%': token.Mod, '^': token.Pow,
	'<': token.Lt, '>': token.Gt,
	'&': token.BitAnd, '|': token.BitOr, '~': token.BitNot,
	'!': token.Not, '=': token.Assign,
}

var oneCharSymbols = map[rune]token.Symbol{
	';': token.Semi, '.': token.Dot, ',': token.Comma, ':': token.Colon,
	'(': token.LParen, ')': token.RParen, '{': token.LBrace, '}': token.RBrace,
	'[': token.LBracket, ']': token.RBracket,
}

func (l *Lexer) readOperatorOrSymbol(index, line, col int) token.Token {
	two := string(l.ch) + string(l.peekChar())
	if op, ok := twoCharOperators[two]; ok {
		l.readChar()
		l.readChar()
		return token.Token{Type: token.OperatorTok, Index: index, Line: line, Column: col, Length: 2, Op: op}
	}

	if op, ok := oneCharOperators[l.ch]; ok {
		l.readChar()
		return token.Token{Type: token.OperatorTok, Index: index, Line: line, Column: col, Length: 1, Op: op}
	}
	if sym, ok := oneCharSymbols[l.ch]; ok {
		l.readChar()
		return token.Token{Type: token.SymbolTok, Index: index, Line: line, Column: col, Length: 1, Sym: sym}
	}

	bad := l.ch
	l.errorf(index, "unexpected character %q", bad)
	l.readChar()
	return token.Token{Type: token.Invalid, Index: index, Line: line, Column: col, Length: 1}
}

func isLetter(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isOctDigit(r rune) bool { return r >= '0' && r <= '7' }

func isBinDigit(r rune) bool { return r == '0' || r == '1' }

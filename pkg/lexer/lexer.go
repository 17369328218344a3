// Package lexer implements the Slisp lexical analyzer.
//
// It reads UTF-8 source text and produces a lazy stream of tokens as
// defined in the token package. Tokenization rules (spec C1):
// whitespace separates and is discarded; '(' and ')' are single-
// character tokens; a double-quoted run up to the next unescaped '"'
// yields a string; a run starting with a decimal digit, or '-'
// followed by a digit, is a number (accepting 0x/0b prefixes); a run
// of symbol-alphabet characters yields a symbol; a bare apostrophe is
// its own quote token. Once the input is exhausted the stream
// perpetually yields a none token.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/suderio/slisp/pkg/token"
)

// Lexer holds the state for scanning a single source input. It is a
// lazy, restartable sequence: SetLine replaces the backing buffer and
// resets the cursor, so a host can feed it one REPL line at a time.
type Lexer struct {
	input []byte
	pos   int // current byte position
	line  int // current line (1-indexed)
	col   int // current column (1-indexed)
}

// New creates a Lexer over the given input bytes.
func New(input []byte) *Lexer {
	l := &Lexer{}
	l.SetLine(string(input))
	return l
}

// SetLine replaces the lexer's backing buffer and resets its cursor to
// the start, without disturbing any other state. It lets a host feed
// the lexer additional lines for multi-line continuation.
func (l *Lexer) SetLine(line string) {
	l.input = []byte(line)
	l.pos = 0
	l.line = 1
	l.col = 1
}

// Tokenize returns all tokens up to (not including) the trailing run
// of none tokens. Callers that need the none tokens should call
// NextToken directly.
func (l *Lexer) Tokenize() []token.Token {
	var toks []token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.None {
			break
		}
		toks = append(toks, tok)
	}
	return toks
}

// NextToken scans and returns the next token. After the input is
// exhausted it perpetually returns a None token.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return token.Token{Type: token.None, Line: l.line, Column: l.col}
	}

	r, _ := l.peekRune()
	startLine, startCol := l.line, l.col

	switch {
	case r == '(':
		l.readRune()
		return token.Token{Type: token.ParenOpen, Literal: "(", Line: startLine, Column: startCol}
	case r == ')':
		l.readRune()
		return token.Token{Type: token.ParenClose, Literal: ")", Line: startLine, Column: startCol}
	case r == '\'':
		l.readRune()
		return token.Token{Type: token.Quote, Literal: "'", Line: startLine, Column: startCol}
	case r == '"':
		return l.readString(startLine, startCol)
	case isDigit(r):
		return l.readNumber(startLine, startCol)
	case r == '-' && isDigit(l.peekRuneAt(1)):
		return l.readNumber(startLine, startCol)
	case isSymbolChar(r):
		return l.readSymbol(startLine, startCol)
	default:
		ch, _ := l.readRune()
		return token.Token{Type: token.Unknown, Literal: string(ch), Line: startLine, Column: startCol}
	}
}

// --- rune reading ---

func (l *Lexer) readRune() (rune, int) {
	if l.pos >= len(l.input) {
		return 0, 0
	}
	r, size := utf8.DecodeRune(l.input[l.pos:])
	l.pos += size
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r, size
}

func (l *Lexer) peekRune() (rune, int) {
	if l.pos >= len(l.input) {
		return 0, 0
	}
	return utf8.DecodeRune(l.input[l.pos:])
}

// peekRuneAt returns the rune `offset` runes past the cursor (0 means
// the current rune). Used for one-rune-ahead lookahead such as the
// sign-glued-number check.
func (l *Lexer) peekRuneAt(offset int) rune {
	p := l.pos
	for i := 0; i < offset; i++ {
		_, size := utf8.DecodeRune(l.input[p:])
		if size == 0 {
			return 0
		}
		p += size
	}
	if p >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRune(l.input[p:])
	return r
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		r, _ := l.peekRune()
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			l.readRune()
			continue
		}
		break
	}
}

// --- strings ---

func (l *Lexer) readString(startLine, startCol int) token.Token {
	l.readRune() // consume opening "
	var buf strings.Builder
	for l.pos < len(l.input) {
		r, _ := l.readRune()
		if r == '"' {
			return token.Token{Type: token.String, Literal: buf.String(), Line: startLine, Column: startCol}
		}
		if r == '\\' {
			if l.pos >= len(l.input) {
				break
			}
			esc, _ := l.readRune()
			switch esc {
			case 'n':
				buf.WriteRune('\n')
			case 't':
				buf.WriteRune('\t')
			case 'r':
				buf.WriteRune('\r')
			case '"':
				buf.WriteRune('"')
			case '\\':
				buf.WriteRune('\\')
			default:
				buf.WriteRune(esc)
			}
			continue
		}
		buf.WriteRune(r)
	}
	return token.Token{Type: token.Unknown, Literal: "unterminated string", Line: startLine, Column: startCol}
}

// --- numbers ---

func (l *Lexer) readNumber(startLine, startCol int) token.Token {
	var buf strings.Builder
	if r, _ := l.peekRune(); r == '-' {
		s, _ := l.readRune()
		buf.WriteRune(s)
	}

	// Hex / binary prefix.
	if r, _ := l.peekRune(); r == '0' {
		r2 := l.peekRuneAt(1)
		if r2 == 'x' || r2 == 'X' {
			s, _ := l.readRune()
			buf.WriteRune(s)
			s, _ = l.readRune()
			buf.WriteRune(s)
			n := l.readWhile(&buf, isHexDigit)
			if n == 0 {
				return token.Token{Type: token.Unknown, Literal: buf.String(), Line: startLine, Column: startCol}
			}
			return token.Token{Type: token.Number, Literal: buf.String(), Line: startLine, Column: startCol}
		}
		if r2 == 'b' || r2 == 'B' {
			s, _ := l.readRune()
			buf.WriteRune(s)
			s, _ = l.readRune()
			buf.WriteRune(s)
			n := l.readWhile(&buf, isBinDigit)
			if n == 0 {
				return token.Token{Type: token.Unknown, Literal: buf.String(), Line: startLine, Column: startCol}
			}
			return token.Token{Type: token.Number, Literal: buf.String(), Line: startLine, Column: startCol}
		}
	}

	l.readWhile(&buf, isDigit)

	if r, _ := l.peekRune(); r == '.' && isDigit(l.peekRuneAt(1)) {
		s, _ := l.readRune()
		buf.WriteRune(s)
		l.readWhile(&buf, isDigit)
	}

	if r, _ := l.peekRune(); r == 'e' || r == 'E' {
		save, saveLine, saveCol := l.pos, l.line, l.col
		s, _ := l.readRune()
		var tmp strings.Builder
		tmp.WriteRune(s)
		if r2, _ := l.peekRune(); r2 == '+' || r2 == '-' {
			s2, _ := l.readRune()
			tmp.WriteRune(s2)
		}
		n := l.readWhile(&tmp, isDigit)
		if n == 0 {
			// Not a valid exponent; rewind — the 'e' belongs to a
			// following symbol token instead.
			l.pos, l.line, l.col = save, saveLine, saveCol
		} else {
			buf.WriteString(tmp.String())
		}
	}

	lit := buf.String()
	if lit == "" || lit == "-" {
		return token.Token{Type: token.Unknown, Literal: lit, Line: startLine, Column: startCol}
	}
	return token.Token{Type: token.Number, Literal: lit, Line: startLine, Column: startCol}
}

func (l *Lexer) readWhile(buf *strings.Builder, pred func(rune) bool) int {
	n := 0
	for l.pos < len(l.input) {
		r, _ := l.peekRune()
		if !pred(r) {
			break
		}
		l.readRune()
		buf.WriteRune(r)
		n++
	}
	return n
}

// --- symbols ---

func (l *Lexer) readSymbol(startLine, startCol int) token.Token {
	var buf strings.Builder
	l.readWhile(&buf, isSymbolChar)
	return token.Token{Type: token.Symbol, Literal: buf.String(), Line: startLine, Column: startCol}
}

// --- character classes ---

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isBinDigit(r rune) bool {
	return r == '0' || r == '1'
}

const symbolPunct = "~!@#$%^&*_+=<>?|/\\:;'-,.{}[]"

// isSymbolChar reports whether r belongs to the symbol alphabet:
// letters, digits, and the fixed punctuation set named in spec C1.
func isSymbolChar(r rune) bool {
	if isDigit(r) || unicode.IsLetter(r) {
		return true
	}
	return strings.ContainsRune(symbolPunct, r)
}

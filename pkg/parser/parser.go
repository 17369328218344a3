package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/suderio/slisp/pkg/ast"
	"github.com/suderio/slisp/pkg/lexer"
	"github.com/suderio/slisp/pkg/token"
)

// ErrIncomplete is returned by ParseProgram/parseList when a closing
// paren or string terminator was never reached before the input ran
// out: the host should request another line and retry with the
// combined buffer (spec §4.2 "a missing closing paren requests
// another input line from the host").
type ErrIncomplete struct{}

func (ErrIncomplete) Error() string { return "incomplete form: more input needed" }

// SyntaxError reports a parse failure with source position.
type SyntaxError struct {
	Line, Column int
	Msg          string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d:%d: %s", e.Line, e.Column, e.Msg)
}

// Parser turns a token stream into Expression trees. It holds a
// shared *InfixTable so a stdlib builtin can register/unregister an
// infix symbol and have it take effect for any parse that starts after
// the change; ParseProgram reads the whole input before any of it is
// evaluated.
type Parser struct {
	lex       *lexer.Lexer
	cur       token.Token
	infix     *InfixTable
	defaultFn string
}

// New creates a Parser over lex, folding infix symbols per infix and
// wrapping top-level forms under the defaultFn symbol.
func New(lex *lexer.Lexer, infix *InfixTable, defaultFn string) *Parser {
	p := &Parser{lex: lex, infix: infix, defaultFn: defaultFn}
	p.advance()
	return p
}

func (p *Parser) advance() { p.cur = p.lex.NextToken() }

// ParseProgram consumes every form up to the end of the Parser's
// current input and returns one Sexp: `(defaultFn form1 form2 ...)`,
// or `(defaultFn folded)` if the top-level forms themselves contain an
// interior infix occurrence (spec §4.2's "implicit top-level sexps").
func (p *Parser) ParseProgram() (*ast.Sexp, error) {
	var forms []ast.Expression
	for p.cur.Type != token.None {
		f, err := p.parseForm()
		if err != nil {
			return nil, err
		}
		forms = append(forms, f)
	}

	head := &ast.Symbol{Value: p.defaultFn}
	if len(forms) == 0 {
		return ast.NewSexp(head), nil
	}
	if hasInteriorInfix(forms, p.infix) {
		return ast.NewSexp(head, foldInfix(forms, p.infix)), nil
	}
	return ast.NewSexp(append([]ast.Expression{head}, forms...)...), nil
}

// parseForm parses exactly one atom, list, or quoted form.
func (p *Parser) parseForm() (ast.Expression, error) {
	tok := p.cur
	switch tok.Type {
	case token.None:
		return nil, ErrIncomplete{}
	case token.Number:
		p.advance()
		return buildNumber(tok)
	case token.String:
		p.advance()
		return &ast.Str{Value: tok.Literal}, nil
	case token.Symbol:
		p.advance()
		switch tok.Literal {
		case "true":
			return &ast.Bool{Value: true}, nil
		case "false":
			return &ast.Bool{Value: false}, nil
		}
		return &ast.Symbol{Value: tok.Literal}, nil
	case token.Quote:
		p.advance()
		child, err := p.parseForm()
		if err != nil {
			return nil, err
		}
		return ast.NewSexp(&ast.Symbol{Value: "'"}, child), nil
	case token.ParenOpen:
		return p.parseList()
	case token.ParenClose:
		return nil, &SyntaxError{Line: tok.Line, Column: tok.Column, Msg: "unexpected ')'"}
	default:
		if tok.Type == token.Unknown && tok.Literal == "unterminated string" {
			return nil, ErrIncomplete{}
		}
		return nil, &SyntaxError{Line: tok.Line, Column: tok.Column, Msg: fmt.Sprintf("malformed token %q", tok.Literal)}
	}
}

// parseList parses `( form* )`, applying the infix fold to its
// children when they contain an interior infix occurrence; otherwise
// the list is a plain prefix call/list form `(forms...)`.
func (p *Parser) parseList() (ast.Expression, error) {
	p.advance() // consume '('
	var forms []ast.Expression
	for {
		if p.cur.Type == token.ParenClose {
			p.advance()
			break
		}
		if p.cur.Type == token.None {
			return nil, ErrIncomplete{}
		}
		f, err := p.parseForm()
		if err != nil {
			return nil, err
		}
		forms = append(forms, f)
	}
	if len(forms) == 0 {
		return ast.NewSexp(), nil
	}
	if hasInteriorInfix(forms, p.infix) {
		return foldInfix(forms, p.infix), nil
	}
	return ast.NewSexp(forms...), nil
}

// hasInteriorInfix reports whether forms contains a Symbol registered
// in infix at a strictly interior position (not the first or last
// element) — the shape `L op R` requires an operand before it.
func hasInteriorInfix(forms []ast.Expression, infix *InfixTable) bool {
	for i := 1; i < len(forms)-1; i++ {
		if sym, ok := forms[i].(*ast.Symbol); ok {
			if _, ok := infix.Lookup(sym.Value); ok {
				return true
			}
		}
	}
	return false
}

// foldInfix rewrites a flat operand/operator/operand/... sequence
// into nested prefix calls by precedence climbing, flattening runs of
// the identical operator at the same precedence level into one n-ary
// call (spec §4.2: `a op b op c` -> `(op a b c)`; mixed precedence
// nests: `a + b * c` -> `(+ a (* b c))`).
func foldInfix(forms []ast.Expression, infix *InfixTable) ast.Expression {
	idx := 0

	var climb func(minPrec int) ast.Expression
	climb = func(minPrec int) ast.Expression {
		left := forms[idx]
		idx++
		for idx < len(forms) {
			opSym, ok := forms[idx].(*ast.Symbol)
			if !ok {
				break
			}
			prec, ok := infix.Lookup(opSym.Value)
			if !ok || prec < minPrec {
				break
			}
			opName := opSym.Value
			idx++
			right := climb(prec + 1)

			if sexp, ok := left.(*ast.Sexp); ok && len(sexp.Args) >= 2 {
				if headSym, ok := sexp.Head().(*ast.Symbol); ok && headSym.Value == opName {
					sexp.Args = append(sexp.Args, right)
					left = sexp
					continue
				}
			}
			left = ast.NewSexp(&ast.Symbol{Value: opName}, left, right)
		}
		return left
	}

	return climb(0)
}

// buildNumber converts a number token's lexeme to an Int or Float per
// spec §4.2's atom-construction rule: an embedded '.' or 'e'/'E' marks
// it float-shaped; otherwise it is an Int parsed in base 10, or base
// 16/2 when prefixed 0x/0b. Overflow fails the parse.
func buildNumber(tok token.Token) (ast.Expression, error) {
	lit := tok.Literal
	s := lit
	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	switch {
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		n, err := strconv.ParseInt(s[2:], 16, 64)
		if err != nil {
			return nil, &SyntaxError{Line: tok.Line, Column: tok.Column, Msg: "malformed hex literal: " + lit}
		}
		if neg {
			n = -n
		}
		return &ast.Int{Value: n}, nil
	case strings.HasPrefix(s, "0b"), strings.HasPrefix(s, "0B"):
		n, err := strconv.ParseInt(s[2:], 2, 64)
		if err != nil {
			return nil, &SyntaxError{Line: tok.Line, Column: tok.Column, Msg: "malformed binary literal: " + lit}
		}
		if neg {
			n = -n
		}
		return &ast.Int{Value: n}, nil
	case tok.IsFloatShaped():
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return nil, &SyntaxError{Line: tok.Line, Column: tok.Column, Msg: "malformed float literal: " + lit}
		}
		return &ast.Float{Value: f}, nil
	default:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, &SyntaxError{Line: tok.Line, Column: tok.Column, Msg: "integer literal out of range: " + lit}
		}
		if neg {
			n = -n
		}
		return &ast.Int{Value: n}, nil
	}
}

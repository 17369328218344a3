package parser

import (
	"testing"

	"github.com/suderio/slisp/pkg/ast"
	"github.com/suderio/slisp/pkg/lexer"
)

func parse(t *testing.T, input string) *ast.Sexp {
	t.Helper()
	p := New(lexer.New([]byte(input)), NewInfixTable(), "do")
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram(%q) failed: %v", input, err)
	}
	return prog
}

func TestDefaultFunctionWrapping(t *testing.T) {
	prog := parse(t, "(+ 2 3)")
	if prog.String() != "(do (+ 2 3))" {
		t.Fatalf("got %s, want (do (+ 2 3))", prog.String())
	}
}

func TestMultipleTopLevelForms(t *testing.T) {
	prog := parse(t, "(def add (a b) (+ a b)) (add 2 3)")
	if len(prog.Args) != 3 {
		t.Fatalf("expected head + 2 forms, got %d children", len(prog.Args))
	}
	if prog.Args[0].(*ast.Symbol).Value != "do" {
		t.Fatalf("expected default-function head, got %s", prog.Args[0].String())
	}
}

func TestEmptyInputWrapsToCallWithNoArgs(t *testing.T) {
	prog := parse(t, "   ")
	if prog.String() != "(do)" {
		t.Fatalf("got %s, want (do)", prog.String())
	}
}

func TestQuoteSugar(t *testing.T) {
	prog := parse(t, "'x")
	inner := prog.Args[1].(*ast.Sexp)
	if inner.String() != "(' x)" {
		t.Fatalf("got %s, want (' x)", inner.String())
	}
	if inner.Head().(*ast.Symbol).Value != "'" {
		t.Fatalf("expected quote-sugar head to be the ' symbol")
	}
}

func TestPrefixCallUnaffectedByInfixTable(t *testing.T) {
	prog := parse(t, "(+ 2 3)")
	call := prog.Args[1].(*ast.Sexp)
	if call.String() != "(+ 2 3)" {
		t.Fatalf("prefix call should not be infix-folded, got %s", call.String())
	}
}

func TestInfixFoldSamePrecedence(t *testing.T) {
	prog := parse(t, "(a + b + c)")
	got := prog.Args[1].(*ast.Sexp)
	want := "(+ a b c)"
	if got.String() != want {
		t.Fatalf("got %s, want %s", got.String(), want)
	}
}

func TestInfixFoldMixedPrecedence(t *testing.T) {
	prog := parse(t, "(3 + 4 * 5)")
	got := prog.Args[1].(*ast.Sexp)
	want := "(+ 3 (* 4 5))"
	if got.String() != want {
		t.Fatalf("got %s, want %s", got.String(), want)
	}
}

func TestInfixFoldLeftAssociativeMixedOperators(t *testing.T) {
	prog := parse(t, "(a + b - c)")
	got := prog.Args[1].(*ast.Sexp)
	want := "(- (+ a b) c)"
	if got.String() != want {
		t.Fatalf("got %s, want %s", got.String(), want)
	}
}

func TestTopLevelImplicitInfixFold(t *testing.T) {
	prog := parse(t, "3 + 4 * 5")
	if len(prog.Args) != 2 {
		t.Fatalf("expected head + one folded form, got %d children", len(prog.Args))
	}
	want := "(+ 3 (* 4 5))"
	if prog.Args[1].String() != want {
		t.Fatalf("got %s, want %s", prog.Args[1].String(), want)
	}
}

func TestNumberAtomConstruction(t *testing.T) {
	cases := []struct {
		lit  string
		want ast.Expression
	}{
		{"42", &ast.Int{Value: 42}},
		{"-7", &ast.Int{Value: -7}},
		{"2.5", &ast.Float{Value: 2.5}},
		{"0x1F", &ast.Int{Value: 31}},
		{"0b101", &ast.Int{Value: 5}},
	}
	for _, c := range cases {
		prog := parse(t, c.lit)
		got := prog.Args[1]
		if !got.Equal(c.want) {
			t.Errorf("%s: got %s, want %s", c.lit, got.String(), c.want.String())
		}
	}
}

func TestIntegerOverflowFailsParse(t *testing.T) {
	p := New(lexer.New([]byte("99999999999999999999")), NewInfixTable(), "do")
	if _, err := p.ParseProgram(); err == nil {
		t.Fatal("expected an overflow parse error")
	}
}

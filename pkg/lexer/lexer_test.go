package lexer

import (
	"testing"

	"github.com/suderio/slisp/pkg/token"
)

func TestNextToken(t *testing.T) {
	input := `(+ 2 3) "a str" 'x -1 +2.5 0x1F 0b101 incr? list->vector`

	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.ParenOpen, "("},
		{token.Symbol, "+"},
		{token.Number, "2"},
		{token.Number, "3"},
		{token.ParenClose, ")"},
		{token.String, "a str"},
		{token.Quote, "'"},
		{token.Symbol, "x"},
		{token.Number, "-1"},
		{token.Symbol, "+2.5"},
		{token.Number, "0x1F"},
		{token.Number, "0b101"},
		{token.Symbol, "incr?"},
		{token.Symbol, "list->vector"},
		{token.None, ""},
	}

	l := New([]byte(input))
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q (%q)", i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestNextTokenPerpetualNone(t *testing.T) {
	l := New([]byte("42"))
	l.NextToken()
	for i := 0; i < 3; i++ {
		if tok := l.NextToken(); tok.Type != token.None {
			t.Fatalf("expected perpetual None, got %q", tok.Type)
		}
	}
}

func TestSetLineResetsCursor(t *testing.T) {
	l := New([]byte("1 2"))
	l.NextToken()
	l.SetLine("(foo)")
	tok := l.NextToken()
	if tok.Type != token.ParenOpen {
		t.Fatalf("expected paren-open after SetLine, got %q", tok.Type)
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New([]byte(`"abc`))
	tok := l.NextToken()
	if tok.Type != token.Unknown {
		t.Fatalf("expected unknown token for unterminated string, got %q", tok.Type)
	}
}

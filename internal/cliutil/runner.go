package cliutil

import (
	"bufio"
	"io"
	"strings"

	"github.com/suderio/slisp/internal/eval"
	"github.com/suderio/slisp/pkg/ast"
	"github.com/suderio/slisp/pkg/lexer"
	"github.com/suderio/slisp/pkg/parser"
)

// RunSource parses src as a whole program and evaluates its top-level
// forms one at a time, flushing the error queue to errw after each
// (spec.md §7: "the host ... flushes the error queue after each
// top-level form"). It stops early only if the interpreter's stop flag
// gets set (the (quit) builtin) or a parse error occurs. Returns true
// only if the source parsed and every evaluated form succeeded.
func RunSource(it *eval.Interpreter, src string, out, errw io.Writer) bool {
	lex := lexer.New([]byte(src))
	p := parser.New(lex, it.Settings.Infix, it.Settings.DefaultFunction)
	program, err := p.ParseProgram()
	if err != nil {
		PrintError(errw, err.Error())
		return false
	}

	ok := true
	for _, form := range program.Tail() {
		_, evalOK := it.Evaluate(form)
		if !evalOK {
			ok = false
		}
		for _, e := range it.DrainErrors() {
			PrintError(errw, e.Error())
		}
		if it.StopRequested {
			break
		}
	}
	return ok
}

// RunREPL drives the read-eval-print loop described in spec.md §6: a
// line is read at the ">>> " prompt; if it leaves a form incomplete
// (unbalanced parens or an unterminated string), the input keeps
// buffering under a "... " continuation prompt until the form closes.
// Each completed submission is evaluated and its errors flushed, same
// as script mode; a result that isn't Void is printed.
func RunREPL(it *eval.Interpreter, in io.Reader, out, errw io.Writer, styled bool) {
	reader := bufio.NewReader(in)
	var buf strings.Builder

	for {
		if buf.Len() == 0 {
			io.WriteString(out, promptFor(false, styled))
		} else {
			io.WriteString(out, promptFor(true, styled))
		}
		line, readErr := reader.ReadString('\n')
		if line == "" && readErr != nil {
			return
		}
		buf.WriteString(line)

		lex := lexer.New([]byte(buf.String()))
		p := parser.New(lex, it.Settings.Infix, it.Settings.DefaultFunction)
		program, err := p.ParseProgram()
		if err != nil {
			if _, incomplete := asIncomplete(err); incomplete {
				if readErr != nil {
					return
				}
				continue
			}
			PrintError(errw, err.Error())
			buf.Reset()
			continue
		}
		buf.Reset()

		for _, form := range program.Tail() {
			v, ok := it.Evaluate(form)
			if ok {
				if _, isVoid := v.(ast.Void); !isVoid {
					io.WriteString(out, v.String()+"\n")
				}
			}
			for _, e := range it.DrainErrors() {
				PrintError(errw, e.Error())
			}
			if it.StopRequested {
				return
			}
		}
		if readErr != nil {
			return
		}
	}
}

func asIncomplete(err error) (parser.ErrIncomplete, bool) {
	inc, ok := err.(parser.ErrIncomplete)
	return inc, ok
}

func promptFor(continuation, styled bool) string {
	if styled {
		return Prompt(continuation)
	}
	return Plain(continuation)
}

package cliutil

import (
	"bytes"
	"strings"
	"testing"

	"github.com/suderio/slisp/internal/eval"
	"github.com/suderio/slisp/internal/stdlib"
)

func newTestInterpreter(out *bytes.Buffer) *eval.Interpreter {
	it := eval.New(eval.NewSettings(), &eval.Environment{ProgramName: "slisp"})
	it.Output = out
	stdlib.Load(it)
	return it
}

func TestRunSourceEvaluatesEachTopLevelForm(t *testing.T) {
	var out, errw bytes.Buffer
	it := newTestInterpreter(&out)

	ok := RunSource(it, "(display 1) (display 2)", &out, &errw)
	if !ok {
		t.Fatalf("expected success, stderr=%q", errw.String())
	}
	if out.String() != "12" {
		t.Fatalf("expected both forms to run, got %q", out.String())
	}
}

func TestRunSourceContinuesAfterErrorAndFlushesIt(t *testing.T) {
	var out, errw bytes.Buffer
	it := newTestInterpreter(&out)

	ok := RunSource(it, "(undefinedthing) (display 9)", &out, &errw)
	if ok {
		t.Fatal("expected overall failure due to the first form's error")
	}
	if !strings.Contains(errw.String(), "Error:") {
		t.Fatalf("expected a flushed error line, got %q", errw.String())
	}
	if out.String() != "9" {
		t.Fatalf("expected evaluation to continue past the error, got %q", out.String())
	}
}

func TestRunSourceStopsOnQuit(t *testing.T) {
	var out, errw bytes.Buffer
	it := newTestInterpreter(&out)

	RunSource(it, "(quit 3) (display 1)", &out, &errw)
	if !it.StopRequested || it.ExitCode != 3 {
		t.Fatalf("expected quit to stop with code 3, got stop=%v code=%d", it.StopRequested, it.ExitCode)
	}
	if out.String() != "" {
		t.Fatalf("expected the form after quit not to run, got %q", out.String())
	}
}

func TestRunREPLPrintsResultsAndHandlesIncompleteForms(t *testing.T) {
	in := strings.NewReader("(+ 1\n2)\n")
	var out, errw bytes.Buffer
	it := newTestInterpreter(&out)

	RunREPL(it, in, &out, &errw, false)

	if errw.String() != "" {
		t.Fatalf("expected no errors, got %q", errw.String())
	}
	if !strings.Contains(out.String(), "3") {
		t.Fatalf("expected the completed form's result 3 in output, got %q", out.String())
	}
}

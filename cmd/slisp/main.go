// Command slisp is the Slisp interpreter's host boundary (spec.md §6):
// it owns argument parsing, the REPL loop, and file/script reading,
// none of which belong to the language core itself.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/suderio/slisp/internal/cliutil"
	"github.com/suderio/slisp/internal/eval"
	"github.com/suderio/slisp/internal/stdlib"
)

const usage = `Usage:
  slisp                         start the REPL
  slisp -h | -help | -? | --help  print this help
  slisp -i [code|script.slisp [args...]]  run inline code or a script, then enter the REPL
  slisp <code>                   evaluate code and exit
  slisp <script.slisp> [args...] run a script and exit
`

func main() {
	styled := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, styled))
}

func run(args []string, in io.Reader, out, errw io.Writer, styled bool) int {
	if len(args) == 0 {
		return runREPL(nil, in, out, errw, styled)
	}

	switch args[0] {
	case "-h", "-help", "-?", "--help":
		cliutil.PrintHeader(out, "Slisp")
		fmt.Fprint(out, usage)
		return 0
	case "-i":
		return runREPL(args[1:], in, out, errw, styled)
	}

	if strings.HasPrefix(args[0], "-") {
		cliutil.PrintError(errw, fmt.Sprintf("unknown flag %q", args[0]))
		fmt.Fprint(errw, usage)
		return 1
	}

	return runOnce(args, out, errw)
}

// runOnce handles `prog <code>` and `prog <script.slisp> [args...]`:
// evaluate once, then exit with a nonzero code if any error was
// reported (spec.md §7 script-mode behavior).
func runOnce(args []string, out, errw io.Writer) int {
	target, scriptArgs := args[0], args[1:]

	if !strings.HasSuffix(target, ".slisp") {
		it := newInterpreter("slisp", "", nil, out)
		ok := cliutil.RunSource(it, target, out, errw)
		return exitCode(it, ok)
	}

	src, err := os.ReadFile(target)
	if err != nil {
		cliutil.PrintError(errw, err.Error())
		return 1
	}
	it := newInterpreter("slisp", target, scriptArgs, out)
	ok := cliutil.RunSource(it, string(src), out, errw)
	return exitCode(it, ok)
}

// runREPL handles the bare-REPL and `-i [code|script.slisp [args...]]`
// forms: an optional inline program runs first (on the same
// interpreter, so its bindings persist), then control hands to the
// interactive loop.
func runREPL(args []string, in io.Reader, out, errw io.Writer, styled bool) int {
	var it *eval.Interpreter
	if len(args) == 0 {
		it = newInterpreter("slisp", "", nil, out)
	} else {
		target, scriptArgs := args[0], args[1:]
		if strings.HasSuffix(target, ".slisp") {
			src, err := os.ReadFile(target)
			if err != nil {
				cliutil.PrintError(errw, err.Error())
				return 1
			}
			it = newInterpreter("slisp", target, scriptArgs, out)
			cliutil.RunSource(it, string(src), out, errw)
		} else {
			it = newInterpreter("slisp", "", nil, out)
			cliutil.RunSource(it, target, out, errw)
		}
	}
	it.Input = in

	if styled {
		fmt.Fprintln(out, cliutil.Banner())
	} else {
		fmt.Fprintln(out, "Slisp - a small Lisp-family language.")
	}
	cliutil.RunREPL(it, in, out, errw, styled)
	return it.ExitCode
}

func newInterpreter(program, script string, scriptArgs []string, out io.Writer) *eval.Interpreter {
	environment := &eval.Environment{
		ProgramName: program,
		ScriptPath:  script,
		ScriptArgs:  scriptArgs,
		Version:     [4]int{0, 1, 0, 0},
	}
	it := eval.New(eval.NewSettings(), environment)
	it.Output = out
	stdlib.Load(it)
	return it
}

func exitCode(it *eval.Interpreter, ok bool) int {
	if it.StopRequested {
		return it.ExitCode
	}
	if !ok {
		return 1
	}
	return 0
}

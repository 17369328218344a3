// Package eval implements the evaluator (spec component C7): the
// Interpreter walks an ast.Sexp tree, reducing it to normal form by
// dispatching function calls to CompiledFunction or InterpretedFunction
// handles through an EvaluationContext (spec C4.7).
package eval

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/suderio/slisp/internal/env"
	"github.com/suderio/slisp/pkg/ast"
	"github.com/suderio/slisp/pkg/parser"
)

// Settings is the interpreter-wide configurable state: the two
// special-name bindings the parser and evaluator consult, and the
// infix precedence table shared with the parser.
type Settings struct {
	DefaultFunction string
	ListFunction    string
	Infix           *parser.InfixTable

	// DefaultFunctionImpl is invoked when DefaultFunction's name is
	// unbound at call time — an explicit user rebinding of that name
	// always takes precedence over this fallback.
	DefaultFunctionImpl *ast.CompiledFunction
}

// NewSettings returns the interpreter's default configuration: "do" as
// the default-function (sequential evaluation, spec §4.6's implicit
// top-level wrapping), "list" as the list-function, and a fresh infix
// table seeded with the default arithmetic/comparison operators.
func NewSettings() *Settings {
	return &Settings{
		DefaultFunction: "do",
		ListFunction:    "list",
		Infix:           parser.NewInfixTable(),
	}
}

// Environment is the read-only program/version record exposed to
// Slisp code as the sys.* globals (spec §6).
type Environment struct {
	ProgramName string
	ScriptPath  string
	ScriptArgs  []string
	Version     [4]int
}

func (e *Environment) VersionString() string {
	return fmt.Sprintf("Slisp %d.%d.%d.%d", e.Version[0], e.Version[1], e.Version[2], e.Version[3])
}

// Interpreter holds all interpreter-wide state (spec §4.5): the
// dynamic SymbolTable, the active stack frames, settings, the error
// queue, the stop flag and exit code, and the environment record.
type Interpreter struct {
	Dynamic       *env.SymbolTable
	Frames        []*env.StackFrame
	Settings      *Settings
	Errors        []*EvalError
	StopRequested bool
	ExitCode      int
	Environment   *Environment

	// Output and Input back the display/print/prompt builtins. They
	// default to os.Stdout/os.Stdin but are overridable (tests capture
	// output here instead of the real stdout, per the ambient stack's
	// "prints against explicit io.Writers so tests can capture output").
	Output io.Writer
	Input  io.Reader
}

// New builds an Interpreter, seeding the sys.* read-only globals into
// the dynamic table and bootstrapping the quote-constructor builtin
// that the parser's `'x` sugar expands to (spec §4.6's Quote/Unquote
// interplay) — registered here rather than in the open-ended stdlib
// catalog because the sugar is unusable without it even before any
// stdlib registration occurs.
func New(settings *Settings, environment *Environment) *Interpreter {
	if settings == nil {
		settings = NewSettings()
	}
	it := &Interpreter{
		Dynamic:     env.NewSymbolTable(),
		Settings:    settings,
		Environment: environment,
		Output:      os.Stdout,
		Input:       os.Stdin,
	}
	it.seedEnvironment()
	it.bootstrapQuote()
	return it
}

func (it *Interpreter) seedEnvironment() {
	if it.Environment == nil {
		return
	}
	args := make([]ast.Expression, len(it.Environment.ScriptArgs))
	for i, a := range it.Environment.ScriptArgs {
		args[i] = &ast.Str{Value: a}
	}
	it.Dynamic.Put("sys.args", ast.NewSexp(args...))
	it.Dynamic.Put("sys.version", &ast.Str{Value: it.Environment.VersionString()})
	it.Dynamic.Put("sys.program", &ast.Str{Value: it.Environment.ProgramName})
	it.Dynamic.Put("sys.script", &ast.Str{Value: it.Environment.ScriptPath})
}

func (it *Interpreter) bootstrapQuote() {
	def := ast.NewFuncDef(ast.Fixed(ast.TagAny), ast.Fixed(ast.TagQuote))
	fn := ast.NewCompiledFunction("'", def, func(ctx ast.EvalContext) bool {
		args := ctx.Args()
		return ctx.Return(&ast.Quote{Value: args[0].Clone()})
	})
	it.Dynamic.Put("'", fn)
}

// PushFrame activates a new StackFrame for callee's invocation.
func (it *Interpreter) PushFrame(callee *ast.InterpretedFunction) *env.StackFrame {
	frame := env.NewStackFrame(callee, it.Dynamic)
	it.Frames = append(it.Frames, frame)
	return frame
}

// PopFrame closes and removes the top-most frame.
func (it *Interpreter) PopFrame() {
	n := len(it.Frames)
	if n == 0 {
		return
	}
	it.Frames[n-1].Close()
	it.Frames = it.Frames[:n-1]
}

// CurrentFrame returns the active call's frame, or nil at top level.
func (it *Interpreter) CurrentFrame() *env.StackFrame {
	if len(it.Frames) == 0 {
		return nil
	}
	return it.Frames[len(it.Frames)-1]
}

// lookup resolves name per spec §4.5's StackFrame-then-dynamic order.
func (it *Interpreter) lookup(name string) (ast.Expression, bool) {
	if f := it.CurrentFrame(); f != nil {
		return f.Get(name)
	}
	return it.Dynamic.Get(name)
}

// whereTrace renders the active call stack's callee names for an
// error record's best-effort source context.
func (it *Interpreter) whereTrace() string {
	names := make([]string, len(it.Frames))
	for i, f := range it.Frames {
		names[i] = f.Callee.Name
	}
	return strings.Join(names, "→")
}

func (it *Interpreter) pushError(kind ErrorKind, what string) {
	it.Errors = append(it.Errors, &EvalError{Kind: kind, Where: it.whereTrace(), What: what})
}

// DrainErrors returns and clears the accumulated error queue, per
// spec §5's "the error queue is drained by the host between top-level
// forms."
func (it *Interpreter) DrainErrors() []*EvalError {
	errs := it.Errors
	it.Errors = nil
	return errs
}

// Stop sets the stop-requested flag and exit code; the host checks
// StopRequested after each top-level evaluation (spec §5).
func (it *Interpreter) Stop(code int) {
	it.StopRequested = true
	it.ExitCode = code
}

// Evaluate reduces expr to normal form per spec §4.6's dispatch table.
func (it *Interpreter) Evaluate(expr ast.Expression) (ast.Expression, bool) {
	switch e := expr.(type) {
	case ast.Void:
		return e, true
	case *ast.Bool, *ast.Int, *ast.Float, *ast.Str, *ast.CompiledFunction, *ast.InterpretedFunction:
		return expr, true
	case *ast.Quote:
		return e, true
	case *ast.Symbol:
		v, ok := it.lookup(e.Value)
		if !ok {
			it.pushError(UnknownSymbolError, fmt.Sprintf("unknown symbol %q", e.Value))
			return nil, false
		}
		if v == nil {
			it.pushError(UnknownSymbolError, fmt.Sprintf("symbol %q is declared but empty", e.Value))
			return nil, false
		}
		return it.Evaluate(v)
	case *ast.Sexp:
		if e.Empty() {
			return e, true
		}
		return it.evalSexp(e)
	default:
		it.pushError(GenericError, fmt.Sprintf("unrecognized expression %T", expr))
		return nil, false
	}
}

// evalSexp implements spec §4.6's function-call reduction for a
// non-empty Sexp.
func (it *Interpreter) evalSexp(call *ast.Sexp) (ast.Expression, bool) {
	if sym, ok := call.Head().(*ast.Symbol); ok && sym.Value == it.Settings.ListFunction {
		out := make([]ast.Expression, 0, len(call.Tail()))
		for _, arg := range call.Tail() {
			v, ok := it.Evaluate(arg)
			if !ok {
				return nil, false
			}
			out = append(out, v)
		}
		return ast.NewSexp(out...), true
	}

	if ast.Matches(ast.TagLiteral, call.Head().Tag()) {
		return it.reduceSexpList(call)
	}

	fnExpr, ok, isList := it.resolveHead(call)
	if isList {
		return it.reduceSexpList(call)
	}
	if !ok {
		return nil, false
	}

	var def *ast.FuncDef
	switch fn := fnExpr.(type) {
	case *ast.CompiledFunction:
		def = fn.Def
	case *ast.InterpretedFunction:
		def = fn.Def
	default:
		it.pushError(TypeError, fmt.Sprintf("%s is not a function", call.Head().String()))
		return nil, false
	}

	if def != nil {
		resolve := func(form ast.Expression) (ast.Expression, bool) {
			sym, isSymbol := form.(*ast.Symbol)
			if !isSymbol {
				return form, true
			}
			v, ok := it.lookup(sym.Value)
			if !ok {
				it.pushError(UnknownSymbolError, fmt.Sprintf("unknown symbol %q", sym.Value))
				return nil, false
			}
			if v == nil {
				return ast.Void{}, true
			}
			return v, true
		}
		verr, ok := def.Validate(call, resolve)
		if !ok {
			return nil, false
		}
		if verr != nil {
			kind := ArityError
			if verr.Kind == ast.TypeMismatch {
				kind = TypeError
			}
			it.pushError(kind, verr.Error())
			return nil, false
		}
	}

	switch fn := fnExpr.(type) {
	case *ast.CompiledFunction:
		return it.dispatchCompiled(fn, call)
	case *ast.InterpretedFunction:
		return it.dispatchInterpreted(fn, call)
	}
	return nil, false
}

// resolveHead resolves the call's head to a Function-variant value,
// per spec §4.6 step 2. When head is a Sexp that reduces to something
// other than a function, isList is true and the caller must fall back
// to reducing the whole call as a list-literal (original_source's
// ReduceSexpList: a non-empty Sexp whose head doesn't name a function
// is just a list of its reduced elements, e.g. `(1 2 3)` or `((1 2) 3)`).
func (it *Interpreter) resolveHead(call *ast.Sexp) (fn ast.Expression, ok bool, isList bool) {
	head := call.Head()
	switch h := head.(type) {
	case *ast.CompiledFunction, *ast.InterpretedFunction:
		return head, true, false
	case *ast.Sexp:
		v, ok := it.Evaluate(h)
		if !ok {
			return nil, false, false
		}
		if !ast.Matches(ast.TagFunction, v.Tag()) {
			return nil, true, true
		}
		return v, true, false
	case *ast.Symbol:
		v, ok := it.lookup(h.Value)
		if ok && v != nil {
			if !ast.Matches(ast.TagFunction, v.Tag()) {
				it.pushError(TypeError, fmt.Sprintf("%s is not a function", h.Value))
				return nil, false, false
			}
			return v, true, false
		}
		if h.Value == it.Settings.DefaultFunction && it.Settings.DefaultFunctionImpl != nil {
			return it.Settings.DefaultFunctionImpl, true, false
		}
		it.pushError(UnknownSymbolError, fmt.Sprintf("unknown symbol %q", h.Value))
		return nil, false, false
	default:
		// Unreachable for literal heads (evalSexp checks TagLiteral
		// before calling resolveHead), kept as a defensive fallback.
		return nil, true, true
	}
}

// reduceSexpList reduces every element of call (head and tail alike)
// and returns the resulting Sexp, without any call dispatch — the
// list-literal reduction spec §4.6 step 1 carves out for the
// configured list-function name, generalized to any non-empty Sexp
// whose head does not name a function.
func (it *Interpreter) reduceSexpList(call *ast.Sexp) (ast.Expression, bool) {
	elems := call.Args
	out := make([]ast.Expression, 0, len(elems))
	for _, elem := range elems {
		v, ok := it.Evaluate(elem)
		if !ok {
			return nil, false
		}
		out = append(out, v)
	}
	return ast.NewSexp(out...), true
}

// dispatchCompiled invokes a native handle through an EvaluationContext.
func (it *Interpreter) dispatchCompiled(fn *ast.CompiledFunction, call *ast.Sexp) (ast.Expression, bool) {
	ctx := &EvaluationContext{it: it, call: call}
	if !fn.Fn(ctx) {
		return nil, false
	}
	return ctx.result, true
}

// dispatchInterpreted evaluates every argument eagerly, pushes a new
// StackFrame, evaluates a clone of the body (the function's Body
// field is reused across calls; Evaluate reduces in place, so each
// call must reduce its own copy), then pops the frame.
func (it *Interpreter) dispatchInterpreted(fn *ast.InterpretedFunction, call *ast.Sexp) (ast.Expression, bool) {
	args := make([]ast.Expression, 0, len(call.Tail()))
	for _, argForm := range call.Tail() {
		v, ok := it.Evaluate(argForm)
		if !ok {
			return nil, false
		}
		args = append(args, v)
	}

	frame := it.PushFrame(fn)
	defer it.PopFrame()
	frame.BindFormals(fn.Formals, args)

	body := fn.Body.Clone()
	return it.Evaluate(body)
}

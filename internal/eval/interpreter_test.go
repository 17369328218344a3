package eval

import (
	"testing"

	"github.com/suderio/slisp/pkg/ast"
)

func newTestInterpreter() *Interpreter {
	return New(NewSettings(), &Environment{ProgramName: "slisp", Version: [4]int{0, 1, 0, 0}})
}

func TestEvaluateSelfEvaluatingVariants(t *testing.T) {
	it := newTestInterpreter()
	cases := []ast.Expression{
		&ast.Bool{Value: true},
		&ast.Int{Value: 7},
		&ast.Float{Value: 1.5},
		&ast.Str{Value: "hi"},
	}
	for _, e := range cases {
		v, ok := it.Evaluate(e)
		if !ok || !v.Equal(e) {
			t.Fatalf("expected %v to self-evaluate, got %v ok=%v", e, v, ok)
		}
	}
}

func TestEvaluateQuoteUnchanged(t *testing.T) {
	it := newTestInterpreter()
	q := &ast.Quote{Value: ast.NewSexp(&ast.Symbol{Value: "undefined-thing"})}
	v, ok := it.Evaluate(q)
	if !ok || !v.Equal(q) {
		t.Fatalf("expected quote to pass through unchanged, got %v ok=%v", v, ok)
	}
}

func TestEvaluateEmptySexpSelfEvaluating(t *testing.T) {
	it := newTestInterpreter()
	empty := ast.NewSexp()
	v, ok := it.Evaluate(empty)
	if !ok || !v.(*ast.Sexp).Empty() {
		t.Fatalf("expected empty Sexp to self-evaluate, got %v ok=%v", v, ok)
	}
}

func TestEvaluateUnknownSymbolPushesError(t *testing.T) {
	it := newTestInterpreter()
	_, ok := it.Evaluate(&ast.Symbol{Value: "nope"})
	if ok {
		t.Fatal("expected unknown symbol lookup to fail")
	}
	errs := it.DrainErrors()
	if len(errs) != 1 || errs[0].Kind != UnknownSymbolError {
		t.Fatalf("expected one UnknownSymbolError, got %v", errs)
	}
}

func TestEvaluateSymbolLookupAndReduce(t *testing.T) {
	it := newTestInterpreter()
	it.Dynamic.Put("x", &ast.Int{Value: 42})
	v, ok := it.Evaluate(&ast.Symbol{Value: "x"})
	if !ok || v.(*ast.Int).Value != 42 {
		t.Fatalf("expected x to resolve to 42, got %v ok=%v", v, ok)
	}
}

func addFn() *ast.CompiledFunction {
	def := ast.NewFuncDef(ast.Varargs(ast.TagInt, ast.Arity{Kind: ast.ArityAny}), ast.Fixed(ast.TagInt))
	return ast.NewCompiledFunction("+", def, func(ctx ast.EvalContext) bool {
		sum := int64(0)
		for _, a := range ctx.Args() {
			v, ok := ctx.Evaluate(a)
			if !ok {
				return false
			}
			sum += v.(*ast.Int).Value
		}
		return ctx.Return(&ast.Int{Value: sum})
	})
}

func TestEvaluateCompiledFunctionCall(t *testing.T) {
	it := newTestInterpreter()
	it.Dynamic.Put("+", addFn())

	call := ast.NewSexp(&ast.Symbol{Value: "+"}, &ast.Int{Value: 2}, &ast.Int{Value: 3})
	v, ok := it.Evaluate(call)
	if !ok || v.(*ast.Int).Value != 5 {
		t.Fatalf("expected (+ 2 3) = 5, got %v ok=%v", v, ok)
	}
}

func TestEvaluateCompiledFunctionArityMismatch(t *testing.T) {
	it := newTestInterpreter()
	def := ast.NewFuncDef(ast.Fixed(ast.TagInt, ast.TagInt), ast.Fixed(ast.TagInt))
	fn := ast.NewCompiledFunction("add2", def, func(ctx ast.EvalContext) bool {
		return ctx.ReturnNil()
	})
	it.Dynamic.Put("add2", fn)

	call := ast.NewSexp(&ast.Symbol{Value: "add2"}, &ast.Int{Value: 1})
	_, ok := it.Evaluate(call)
	if ok {
		t.Fatal("expected arity mismatch to fail")
	}
	errs := it.DrainErrors()
	if len(errs) != 1 || errs[0].Kind != ArityError {
		t.Fatalf("expected one ArityError, got %v", errs)
	}
}

// TestEvaluateShortCircuitControlForm mirrors the spec §8 "and" short
// circuit scenario: a lazily-dispatched CompiledFunction must not
// force-evaluate an argument it chooses not to reach.
func TestEvaluateShortCircuitControlForm(t *testing.T) {
	it := newTestInterpreter()
	def := ast.NewFuncDef(ast.Varargs(ast.TagAny, ast.Arity{Kind: ast.ArityAny}), ast.Fixed(ast.TagBool))
	and := ast.NewCompiledFunction("and", def, func(ctx ast.EvalContext) bool {
		for _, a := range ctx.Args() {
			v, ok := ctx.Evaluate(a)
			if !ok {
				return false
			}
			if b, isBool := v.(*ast.Bool); isBool && !b.Value {
				return ctx.Return(&ast.Bool{Value: false})
			}
		}
		return ctx.Return(&ast.Bool{Value: true})
	})
	it.Dynamic.Put("and", and)

	call := ast.NewSexp(&ast.Symbol{Value: "and"}, &ast.Bool{Value: false}, &ast.Symbol{Value: "thisisnotdefined"})
	v, ok := it.Evaluate(call)
	if !ok {
		t.Fatalf("expected short-circuit and to succeed, errors: %v", it.DrainErrors())
	}
	if v.(*ast.Bool).Value != false {
		t.Fatalf("expected false, got %v", v)
	}
}

func TestEvaluateInterpretedFunctionCall(t *testing.T) {
	it := newTestInterpreter()
	it.Dynamic.Put("+", addFn())

	def := ast.NewFuncDef(ast.Fixed(ast.TagInt, ast.TagInt), ast.Fixed(ast.TagInt))
	formals := []*ast.Symbol{{Value: "a"}, {Value: "b"}}
	body := ast.NewSexp(&ast.Symbol{Value: "+"}, &ast.Symbol{Value: "a"}, &ast.Symbol{Value: "b"})
	add := ast.NewInterpretedFunction("add", def, body, formals, nil)
	it.Dynamic.Put("add", add)

	call := ast.NewSexp(&ast.Symbol{Value: "add"}, &ast.Int{Value: 2}, &ast.Int{Value: 3})
	v, ok := it.Evaluate(call)
	if !ok || v.(*ast.Int).Value != 5 {
		t.Fatalf("expected (add 2 3) = 5, got %v ok=%v", v, ok)
	}

	// body must be reusable across calls: it was cloned before reduction.
	call2 := ast.NewSexp(&ast.Symbol{Value: "add"}, &ast.Int{Value: 10}, &ast.Int{Value: 20})
	v2, ok := it.Evaluate(call2)
	if !ok || v2.(*ast.Int).Value != 30 {
		t.Fatalf("expected (add 10 20) = 30 on reuse, got %v ok=%v", v2, ok)
	}
}

func TestEvaluateInterpretedFunctionLocalsDoNotLeak(t *testing.T) {
	it := newTestInterpreter()
	it.Dynamic.Put("+", addFn())

	def := ast.NewFuncDef(ast.Fixed(ast.TagInt), ast.Fixed(ast.TagInt))
	formals := []*ast.Symbol{{Value: "a"}}
	body := &ast.Symbol{Value: "a"}
	identity := ast.NewInterpretedFunction("identity", def, body, formals, nil)
	it.Dynamic.Put("identity", identity)

	call := ast.NewSexp(&ast.Symbol{Value: "identity"}, &ast.Int{Value: 9})
	_, ok := it.Evaluate(call)
	if !ok {
		t.Fatalf("call failed: %v", it.DrainErrors())
	}
	if _, bound := it.Dynamic.Get("a"); bound {
		t.Fatal("formal binding a must not leak into the dynamic table")
	}
}

func TestEvaluateListFunctionReducesArgsWithoutDispatch(t *testing.T) {
	it := newTestInterpreter()
	it.Dynamic.Put("x", &ast.Int{Value: 1})

	call := ast.NewSexp(&ast.Symbol{Value: "list"}, &ast.Symbol{Value: "x"}, &ast.Int{Value: 2})
	v, ok := it.Evaluate(call)
	if !ok {
		t.Fatalf("list evaluation failed: %v", it.DrainErrors())
	}
	s := v.(*ast.Sexp)
	if len(s.Args) != 2 || s.Args[0].(*ast.Int).Value != 1 || s.Args[1].(*ast.Int).Value != 2 {
		t.Fatalf("expected (1 2), got %v", s)
	}
}

func TestEvaluateDefaultFunctionFallback(t *testing.T) {
	settings := NewSettings()
	doDef := ast.NewFuncDef(ast.Varargs(ast.TagAny, ast.Arity{Kind: ast.ArityAny}), ast.Fixed(ast.TagAny))
	settings.DefaultFunctionImpl = ast.NewCompiledFunction("do", doDef, func(ctx ast.EvalContext) bool {
		var last ast.Expression = ast.Void{}
		for _, a := range ctx.Args() {
			v, ok := ctx.Evaluate(a)
			if !ok {
				return false
			}
			last = v
		}
		return ctx.Return(last)
	})
	it := New(settings, &Environment{})

	call := ast.NewSexp(&ast.Symbol{Value: "do"}, &ast.Int{Value: 1}, &ast.Int{Value: 2})
	v, ok := it.Evaluate(call)
	if !ok || v.(*ast.Int).Value != 2 {
		t.Fatalf("expected default-function fallback to evaluate to 2, got %v ok=%v", v, ok)
	}
}

func TestEvaluateQuoteSugarBootstrap(t *testing.T) {
	it := newTestInterpreter()
	// (' x) is what the parser's 'x sugar expands to.
	call := ast.NewSexp(&ast.Symbol{Value: "'"}, &ast.Symbol{Value: "undefined-thing"})
	v, ok := it.Evaluate(call)
	if !ok {
		t.Fatalf("quote constructor failed: %v", it.DrainErrors())
	}
	q, isQuote := v.(*ast.Quote)
	if !isQuote || q.Value.(*ast.Symbol).Value != "undefined-thing" {
		t.Fatalf("expected a Quote wrapping the unevaluated symbol, got %v", v)
	}
}

// TestEvaluateLiteralHeadedSexpReducesAsList mirrors original_source's
// TestStdLib.cpp: a non-empty Sexp whose head is a literal, not a
// function name, is just a list of its reduced elements.
func TestEvaluateLiteralHeadedSexpReducesAsList(t *testing.T) {
	it := newTestInterpreter()
	it.Dynamic.Put("x", &ast.Int{Value: 1})

	call := ast.NewSexp(&ast.Int{Value: 1}, &ast.Symbol{Value: "x"}, &ast.Int{Value: 3})
	v, ok := it.Evaluate(call)
	if !ok {
		t.Fatalf("literal-headed sexp failed: %v", it.DrainErrors())
	}
	s := v.(*ast.Sexp)
	if len(s.Args) != 3 || s.Args[0].(*ast.Int).Value != 1 || s.Args[1].(*ast.Int).Value != 1 || s.Args[2].(*ast.Int).Value != 3 {
		t.Fatalf("expected (1 1 3), got %v", s)
	}
}

// TestEvaluateSymbolBoundToListReadsBack reproduces the round-trip
// that a symbol bound to a list-literal value must survive: reading
// the symbol back reduces the stored Sexp as a list again, not as a
// call.
func TestEvaluateSymbolBoundToListReadsBack(t *testing.T) {
	it := newTestInterpreter()
	it.Dynamic.Put("e", ast.NewSexp(&ast.Int{Value: 1}, &ast.Int{Value: 2}, &ast.Int{Value: 3}))

	v, ok := it.Evaluate(&ast.Symbol{Value: "e"})
	if !ok {
		t.Fatalf("reading e failed: %v", it.DrainErrors())
	}
	s := v.(*ast.Sexp)
	if len(s.Args) != 3 || s.Args[0].(*ast.Int).Value != 1 {
		t.Fatalf("expected (1 2 3), got %v", s)
	}
}

func TestEnvironmentGlobalsSeeded(t *testing.T) {
	it := New(NewSettings(), &Environment{ProgramName: "slisp", ScriptPath: "x.slisp", ScriptArgs: []string{"a", "b"}, Version: [4]int{1, 2, 3, 4}})
	v, ok := it.Dynamic.Get("sys.version")
	if !ok || v.(*ast.Str).Value != "Slisp 1.2.3.4" {
		t.Fatalf("expected sys.version, got %v", v)
	}
	v, ok = it.Dynamic.Get("sys.args")
	if !ok || len(v.(*ast.Sexp).Args) != 2 {
		t.Fatalf("expected sys.args with 2 entries, got %v", v)
	}
}

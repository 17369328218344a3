// Package stdlib is the standard library registry (spec component
// C8): it binds names in an interpreter's dynamic table to
// CompiledFunctions, grouped into files mirroring the original
// library's grouping (Interpreter/IO/Generic/Int/Float/Bitwise/Str/
// Lists/Logical/Comparison/Branching/Conversion).
package stdlib

import (
	"fmt"

	"github.com/suderio/slisp/internal/eval"
	"github.com/suderio/slisp/pkg/ast"
)

// register binds name to a freshly constructed CompiledFunction in
// it's dynamic table.
func register(it *eval.Interpreter, name string, def *ast.FuncDef, fn ast.CompiledFn) {
	it.Dynamic.Put(name, ast.NewCompiledFunction(name, def, fn))
}

// Load installs the entire standard library catalog into it, and
// configures the sequential default-function implementation (spec
// §4.6's "invoke the interpreter's configured default-function").
func Load(it *eval.Interpreter) {
	registerInterpreterFns(it)
	registerIOFns(it)
	registerGenericFns(it)
	registerIntFns(it)
	registerFloatFns(it)
	registerBitwiseFns(it)
	registerStrFns(it)
	registerListFns(it)
	registerLogicalFns(it)
	registerComparisonFns(it)
	registerControlFns(it)
	registerConversionFns(it)
	registerUUIDFn(it)

	if begin, ok := it.Dynamic.GetRef("begin"); ok {
		if fn, ok := begin.(*ast.CompiledFunction); ok {
			it.Settings.DefaultFunctionImpl = fn
		}
	}
}

func nilExpr() ast.Expression { return ast.NewSexp() }

func asInt(e ast.Expression) (int64, bool) {
	i, ok := e.(*ast.Int)
	if !ok {
		return 0, false
	}
	return i.Value, true
}

func asFloat(e ast.Expression) (float64, bool) {
	switch v := e.(type) {
	case *ast.Float:
		return v.Value, true
	case *ast.Int:
		return float64(v.Value), true
	}
	return 0, false
}

func asStr(e ast.Expression) (string, bool) {
	s, ok := e.(*ast.Str)
	if !ok {
		return "", false
	}
	return s.Value, true
}

func asBool(e ast.Expression) (bool, bool) {
	b, ok := e.(*ast.Bool)
	if !ok {
		return false, false
	}
	return b.Value, true
}

func asSymbol(e ast.Expression) (*ast.Symbol, bool) {
	s, ok := e.(*ast.Symbol)
	return s, ok
}

func asList(e ast.Expression) (*ast.Sexp, bool) {
	s, ok := e.(*ast.Sexp)
	return s, ok
}

func asFunction(e ast.Expression) bool {
	return ast.Matches(ast.TagFunction, e.Tag())
}

// evalArgs evaluates each of ctx's call arguments left to right,
// stopping at the first failure.
func evalArgs(ctx ast.EvalContext) ([]ast.Expression, bool) {
	args := ctx.Args()
	out := make([]ast.Expression, 0, len(args))
	for _, a := range args {
		v, ok := ctx.Evaluate(a)
		if !ok {
			return nil, false
		}
		out = append(out, v)
	}
	return out, true
}

// callFunction invokes a Function-variant value fn with already
// evaluated args, going back through the interpreter so user-defined
// functions (and further nested calls) work uniformly — used by
// higher-order list builtins (map/filter/reduce/...) and apply.
//
// The call Sexp's tail holds the already-evaluated argument values
// directly rather than re-wrapping them, so evaluating the constructed
// Sexp evaluates each value once more: Bool/Int/Float/Str/Quote,
// function values and the empty list come back unchanged, while a
// non-empty list value is reduced again (as a list, or as a call when
// its head is a function).
func callFunction(ctx ast.EvalContext, fn ast.Expression, args []ast.Expression) (ast.Expression, bool) {
	call := ast.NewSexp(append([]ast.Expression{fn}, args...)...)
	return ctx.Evaluate(call)
}

func typeErrorf(ctx ast.EvalContext, format string, a ...interface{}) bool {
	return ctx.Error(fmt.Sprintf(format, a...))
}

// unaryNumeric dispatches to iFn when the sole evaluated argument is
// an Int, fFn when it is a Float.
func unaryNumeric(iFn func(int64) int64, fFn func(float64) float64) ast.CompiledFn {
	return func(ctx ast.EvalContext) bool {
		v := mustArg(ctx, 0)
		if i, ok := v.(*ast.Int); ok {
			return ctx.Return(&ast.Int{Value: iFn(i.Value)})
		}
		if f, ok := asFloat(v); ok {
			return ctx.Return(&ast.Float{Value: fFn(f)})
		}
		return ctx.TypeError("Int or Float", v)
	}
}

// binaryNumeric dispatches to iFn when both evaluated arguments are
// Int, fFn (with Int promoted to Float) otherwise.
func binaryNumeric(iFn func(int64, int64) int64, fFn func(float64, float64) float64) ast.CompiledFn {
	return func(ctx ast.EvalContext) bool {
		a := mustArg(ctx, 0)
		b := mustArg(ctx, 1)
		v, ok := numericOp(a, b, iFn, fFn)
		if !ok {
			return ctx.TypeError("Int or Float", b)
		}
		return ctx.Return(v)
	}
}

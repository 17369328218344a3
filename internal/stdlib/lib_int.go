package stdlib

import (
	"strconv"

	"github.com/suderio/slisp/internal/eval"
	"github.com/suderio/slisp/pkg/ast"
)

func registerIntFns(it *eval.Interpreter) {
	// incr/decr are pure Int -> Int functions (original_source's
	// TestIncr/TestDecr: (incr -2) -> -1, (incr 0) -> 1), usable as a
	// first-class function value, e.g. (map incr (1 2 3)).
	register(it, "incr", ast.NewFuncDef(ast.Fixed(ast.TagInt), ast.Fixed(ast.TagInt)), func(ctx ast.EvalContext) bool {
		n, ok := asInt(mustArg(ctx, 0))
		if !ok {
			return ctx.TypeError("Int", ctx.Args()[0])
		}
		return ctx.Return(&ast.Int{Value: n + 1})
	})
	register(it, "decr", ast.NewFuncDef(ast.Fixed(ast.TagInt), ast.Fixed(ast.TagInt)), func(ctx ast.EvalContext) bool {
		n, ok := asInt(mustArg(ctx, 0))
		if !ok {
			return ctx.TypeError("Int", ctx.Args()[0])
		}
		return ctx.Return(&ast.Int{Value: n - 1})
	})

	// "++"/"--" are the mutate-in-place prefix forms spec scenario 7
	// relies on ((while (< i 10) (++ i))): the sole argument is a
	// Symbol name, not a value, so in-shape is TagAny, not TagSymbol —
	// Validate's resolver would otherwise resolve the argument form to
	// its bound value before type-checking (spec §4.4), losing the
	// name needed to know which binding to mutate.
	register(it, "++", ast.NewFuncDef(ast.Fixed(ast.TagAny), ast.Fixed(ast.TagInt)), adjustSymbol(it, 1))
	register(it, "--", ast.NewFuncDef(ast.Fixed(ast.TagAny), ast.Fixed(ast.TagInt)), adjustSymbol(it, -1))

	register(it, "mod", ast.NewFuncDef(ast.Fixed(ast.TagInt, ast.TagInt), ast.Fixed(ast.TagInt)), func(ctx ast.EvalContext) bool {
		a, ok := asInt(mustArg(ctx, 0))
		if !ok {
			return ctx.TypeError("Int", ctx.Args()[0])
		}
		b, ok := asInt(mustArg(ctx, 1))
		if !ok {
			return ctx.TypeError("Int", ctx.Args()[1])
		}
		if b == 0 {
			return ctx.Error("divide by zero")
		}
		return ctx.Return(&ast.Int{Value: a % b})
	})

	register(it, "hex", ast.NewFuncDef(ast.Fixed(ast.TagInt), ast.Fixed(ast.TagStr)), intRadix(16, "0x"))
	register(it, "bin", ast.NewFuncDef(ast.Fixed(ast.TagInt), ast.Fixed(ast.TagStr)), intRadix(2, "0b"))
	register(it, "dec", ast.NewFuncDef(ast.Fixed(ast.TagInt), ast.Fixed(ast.TagStr)), intRadix(10, ""))

	register(it, "even?", ast.NewFuncDef(ast.Fixed(ast.TagInt), ast.Fixed(ast.TagBool)), intPredicate(func(n int64) bool { return n%2 == 0 }))
	register(it, "odd?", ast.NewFuncDef(ast.Fixed(ast.TagInt), ast.Fixed(ast.TagBool)), intPredicate(func(n int64) bool { return n%2 != 0 }))
	register(it, "zero?", ast.NewFuncDef(ast.Fixed(ast.TagInt), ast.Fixed(ast.TagBool)), intPredicate(func(n int64) bool { return n == 0 }))
}

func intRadix(base int, prefix string) ast.CompiledFn {
	return func(ctx ast.EvalContext) bool {
		n, ok := asInt(mustArg(ctx, 0))
		if !ok {
			return ctx.TypeError("Int", ctx.Args()[0])
		}
		return ctx.Return(&ast.Str{Value: prefix + strconv.FormatInt(n, base)})
	}
}

func intPredicate(fn func(int64) bool) ast.CompiledFn {
	return func(ctx ast.EvalContext) bool {
		n, ok := asInt(mustArg(ctx, 0))
		if !ok {
			return ctx.TypeError("Int", ctx.Args()[0])
		}
		return ctx.Return(&ast.Bool{Value: fn(n)})
	}
}

// adjustSymbol implements ++/--: the sole argument is a Symbol
// name, not a value — it mutates that symbol's current dynamic
// binding by delta and returns the new value.
func adjustSymbol(it *eval.Interpreter, delta int64) ast.CompiledFn {
	return func(ctx ast.EvalContext) bool {
		sym, ok := asSymbol(ctx.Args()[0])
		if !ok {
			return ctx.TypeError("Symbol", ctx.Args()[0])
		}
		v, ok := ctx.GetSymbol(sym.Value)
		if !ok {
			return ctx.UnknownSymbolError(sym.Value)
		}
		n, ok := asInt(v)
		if !ok {
			return ctx.TypeError("Int", v)
		}
		updated := &ast.Int{Value: n + delta}
		it.Dynamic.Put(sym.Value, updated)
		return ctx.Return(updated)
	}
}

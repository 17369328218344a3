package stdlib

import (
	"github.com/suderio/slisp/internal/eval"
	"github.com/suderio/slisp/pkg/ast"
)

func registerListFns(it *eval.Interpreter) {
	// "list" is also the configured list-function name: the evaluator
	// special-cases a call whose head is this symbol (spec §4.6 step 1)
	// and never looks it up, so this binding only matters when `list`
	// is passed around as a first-class function value (e.g. to apply
	// or a higher-order list builtin) rather than called directly.
	register(it, "list", ast.NewFuncDef(ast.Varargs(ast.TagAny, ast.Arity{Kind: ast.ArityAny}), ast.Fixed(ast.TagSexp)), func(ctx ast.EvalContext) bool {
		values, ok := evalArgs(ctx)
		if !ok {
			return false
		}
		return ctx.Return(ast.NewSexp(values...))
	})

	register(it, "cons", ast.NewFuncDef(ast.Fixed(ast.TagAny, ast.TagSexp), ast.Fixed(ast.TagSexp)), func(ctx ast.EvalContext) bool {
		head := mustArg(ctx, 0)
		tail, ok := asList(mustArg(ctx, 1))
		if !ok {
			return ctx.TypeError("Sexp", ctx.Args()[1])
		}
		return ctx.Return(ast.NewSexp(append([]ast.Expression{head}, tail.Args...)...))
	})

	register(it, "range", ast.NewFuncDef(ast.Fixed(ast.TagInt, ast.TagInt), ast.Fixed(ast.TagSexp)), func(ctx ast.EvalContext) bool {
		from, ok := asInt(mustArg(ctx, 0))
		if !ok {
			return ctx.TypeError("Int", ctx.Args()[0])
		}
		to, ok := asInt(mustArg(ctx, 1))
		if !ok {
			return ctx.TypeError("Int", ctx.Args()[1])
		}
		var out []ast.Expression
		for i := from; i < to; i++ {
			out = append(out, &ast.Int{Value: i})
		}
		return ctx.Return(ast.NewSexp(out...))
	})

	register(it, "map", ast.NewFuncDef(ast.Fixed(ast.TagAny, ast.TagSexp), ast.Fixed(ast.TagSexp)), func(ctx ast.EvalContext) bool {
		fn, list, ok := fnAndList(ctx)
		if !ok {
			return false
		}
		out := make([]ast.Expression, len(list.Args))
		for i, item := range list.Args {
			v, ok := callFunction(ctx, fn, []ast.Expression{item})
			if !ok {
				return false
			}
			out[i] = v
		}
		return ctx.Return(ast.NewSexp(out...))
	})

	register(it, "filter", ast.NewFuncDef(ast.Fixed(ast.TagAny, ast.TagSexp), ast.Fixed(ast.TagSexp)), func(ctx ast.EvalContext) bool {
		fn, list, ok := fnAndList(ctx)
		if !ok {
			return false
		}
		var out []ast.Expression
		for _, item := range list.Args {
			v, ok := callFunction(ctx, fn, []ast.Expression{item})
			if !ok {
				return false
			}
			keep, isBool := asBool(v)
			if !isBool {
				return ctx.TypeError("Bool", v)
			}
			if keep {
				out = append(out, item)
			}
		}
		return ctx.Return(ast.NewSexp(out...))
	})

	register(it, "reduce", ast.NewFuncDef(ast.Fixed(ast.TagAny, ast.TagSexp, ast.TagAny), ast.Fixed(ast.TagAny)), func(ctx ast.EvalContext) bool {
		fn, list, ok := fnAndList(ctx)
		if !ok {
			return false
		}
		acc := mustArg(ctx, 2)
		for _, item := range list.Args {
			v, ok := callFunction(ctx, fn, []ast.Expression{acc, item})
			if !ok {
				return false
			}
			acc = v
		}
		return ctx.Return(acc)
	})

	register(it, "zip", ast.NewFuncDef(ast.Fixed(ast.TagSexp, ast.TagSexp), ast.Fixed(ast.TagSexp)), func(ctx ast.EvalContext) bool {
		a, ok := asList(mustArg(ctx, 0))
		if !ok {
			return ctx.TypeError("Sexp", ctx.Args()[0])
		}
		b, ok := asList(mustArg(ctx, 1))
		if !ok {
			return ctx.TypeError("Sexp", ctx.Args()[1])
		}
		n := len(a.Args)
		if len(b.Args) < n {
			n = len(b.Args)
		}
		out := make([]ast.Expression, n)
		for i := 0; i < n; i++ {
			out[i] = ast.NewSexp(a.Args[i], b.Args[i])
		}
		return ctx.Return(ast.NewSexp(out...))
	})

	register(it, "any?", ast.NewFuncDef(ast.Fixed(ast.TagAny, ast.TagSexp), ast.Fixed(ast.TagBool)), listQuantifier(false))
	register(it, "all?", ast.NewFuncDef(ast.Fixed(ast.TagAny, ast.TagSexp), ast.Fixed(ast.TagBool)), listQuantifier(true))
}

// fnAndList evaluates and type-checks the (fn, list) argument pair
// shared by map/filter/reduce/any?/all?. The function position
// declares TagAny rather than TagFunction because Validate only
// resolves bare Symbol argument forms (funcdef.go); a call-form
// argument like (lambda (x) ...) keeps its static Sexp tag and would
// never validate against TagFunction before evaluation, so the check
// happens here instead, against the evaluated value.
func fnAndList(ctx ast.EvalContext) (ast.Expression, *ast.Sexp, bool) {
	fn, ok := ctx.Evaluate(ctx.Args()[0])
	if !ok {
		return nil, nil, false
	}
	if !asFunction(fn) {
		return nil, nil, ctx.TypeError("Function", fn)
	}
	list, ok := asList(mustArg(ctx, 1))
	if !ok {
		return nil, nil, ctx.TypeError("Sexp", ctx.Args()[1])
	}
	return fn, list, true
}

func listQuantifier(all bool) ast.CompiledFn {
	return func(ctx ast.EvalContext) bool {
		fn, list, ok := fnAndList(ctx)
		if !ok {
			return false
		}
		for _, item := range list.Args {
			v, ok := callFunction(ctx, fn, []ast.Expression{item})
			if !ok {
				return false
			}
			b, isBool := asBool(v)
			if !isBool {
				return ctx.TypeError("Bool", v)
			}
			if all && !b {
				return ctx.Return(&ast.Bool{Value: false})
			}
			if !all && b {
				return ctx.Return(&ast.Bool{Value: true})
			}
		}
		return ctx.Return(&ast.Bool{Value: all})
	}
}

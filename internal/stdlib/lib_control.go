package stdlib

import (
	"github.com/suderio/slisp/internal/env"
	"github.com/suderio/slisp/internal/eval"
	"github.com/suderio/slisp/pkg/ast"
)

// anyArgShape declares an in-shape that never forces resolution of
// any argument position — the right shape for every control form
// below, whose arguments are raw, not-yet-evaluated forms the handle
// itself decides whether and when to reduce.
func anyArgShape(n int) *ast.FuncDef {
	tags := make([]ast.Tag, n)
	for i := range tags {
		tags[i] = ast.TagAny
	}
	return ast.NewFuncDef(ast.Fixed(tags...), ast.Fixed(ast.TagAny))
}

func anyVarargsShape() *ast.FuncDef {
	return ast.NewFuncDef(ast.Varargs(ast.TagAny, ast.Arity{Kind: ast.ArityAny}), ast.Fixed(ast.TagAny))
}

func registerControlFns(it *eval.Interpreter) {
	register(it, "if", anyArgShape(3), func(ctx ast.EvalContext) bool {
		args := ctx.Args()
		test, ok := ctx.Evaluate(args[0])
		if !ok {
			return false
		}
		b, isBool := asBool(test)
		if !isBool {
			return ctx.TypeError("Bool", test)
		}
		branch := args[2]
		if b {
			branch = args[1]
		}
		v, ok := ctx.Evaluate(branch)
		if !ok {
			return false
		}
		return ctx.Return(v)
	})

	register(it, "cond", anyVarargsShape(), func(ctx ast.EvalContext) bool {
		for _, arg := range ctx.Args() {
			arm, ok := asList(arg)
			if !ok || arm.Empty() {
				return ctx.TypeError("Sexp clause", arg)
			}
			if len(arm.Args) == 1 {
				v, ok := ctx.Evaluate(arm.Args[0])
				if !ok {
					return false
				}
				return ctx.Return(v)
			}
			test, ok := ctx.Evaluate(arm.Args[0])
			if !ok {
				return false
			}
			b, isBool := asBool(test)
			if !isBool {
				return ctx.TypeError("Bool", test)
			}
			if b {
				v, ok := ctx.Evaluate(arm.Args[1])
				if !ok {
					return false
				}
				return ctx.Return(v)
			}
		}
		return ctx.ReturnNil()
	})

	register(it, "switch", anyVarargsShape(), func(ctx ast.EvalContext) bool {
		args := ctx.Args()
		if len(args) == 0 {
			return ctx.ArgumentExpectedError()
		}
		subject, ok := ctx.Evaluate(args[0])
		if !ok {
			return false
		}
		for _, arg := range args[1:] {
			arm, ok := asList(arg)
			if !ok || arm.Empty() {
				return ctx.TypeError("Sexp clause", arg)
			}
			if len(arm.Args) == 1 {
				v, ok := ctx.Evaluate(arm.Args[0])
				if !ok {
					return false
				}
				return ctx.Return(v)
			}
			caseValue, ok := ctx.Evaluate(arm.Args[0])
			if !ok {
				return false
			}
			if subject.Equal(caseValue) {
				v, ok := ctx.Evaluate(arm.Args[1])
				if !ok {
					return false
				}
				return ctx.Return(v)
			}
		}
		return ctx.ReturnNil()
	})

	register(it, "while", anyVarargsShape(), func(ctx ast.EvalContext) bool {
		args := ctx.Args()
		if len(args) == 0 {
			return ctx.ArgumentExpectedError()
		}
		cond, body := args[0], args[1:]
		var last ast.Expression = ast.NewSexp()
		for {
			test, ok := ctx.Evaluate(cond.Clone())
			if !ok {
				return false
			}
			b, isBool := asBool(test)
			if !isBool {
				return ctx.TypeError("Bool", test)
			}
			if !b {
				break
			}
			for _, form := range body {
				v, ok := ctx.Evaluate(form.Clone())
				if !ok {
					return false
				}
				last = v
			}
		}
		return ctx.Return(last)
	})

	register(it, "let", anyArgShape(2), func(ctx ast.EvalContext) bool {
		args := ctx.Args()
		bindings, ok := asList(args[0])
		if !ok {
			return ctx.TypeError("Sexp bindings", args[0])
		}
		table := it.Dynamic
		if f := it.CurrentFrame(); f != nil {
			table = f.Locals
		}
		scope := env.NewScope(table)
		defer scope.Close()
		for _, b := range bindings.Args {
			pair, ok := asList(b)
			if !ok || len(pair.Args) != 2 {
				return ctx.TypeError("(name expr) binding", b)
			}
			name, ok := asSymbol(pair.Args[0])
			if !ok {
				return ctx.TypeError("Symbol", pair.Args[0])
			}
			v, ok := ctx.Evaluate(pair.Args[1])
			if !ok {
				return false
			}
			scope.Put(name.Value, v)
		}
		v, ok := ctx.Evaluate(args[1])
		if !ok {
			return false
		}
		return ctx.Return(v)
	})

	register(it, "begin", anyVarargsShape(), func(ctx ast.EvalContext) bool {
		var last ast.Expression = ast.Void{}
		for _, form := range ctx.Args() {
			v, ok := ctx.Evaluate(form)
			if !ok {
				return false
			}
			last = v
		}
		return ctx.Return(last)
	})

	register(it, "lambda", anyArgShape(2), func(ctx ast.EvalContext) bool {
		args := ctx.Args()
		formals, ok := formalsOf(args[0])
		if !ok {
			return ctx.TypeError("Sexp of Symbols", args[0])
		}
		def := anyArgShape(len(formals))
		fn := ast.NewInterpretedFunction("lambda", def, args[1].Clone(), formals, captureClosure(it))
		return ctx.Return(fn)
	})

	register(it, "def", anyArgShape(3), func(ctx ast.EvalContext) bool {
		args := ctx.Args()
		name, ok := asSymbol(args[0])
		if !ok {
			return ctx.TypeError("Symbol", args[0])
		}
		formals, ok := formalsOf(args[1])
		if !ok {
			return ctx.TypeError("Sexp of Symbols", args[1])
		}
		def := anyArgShape(len(formals))
		fn := ast.NewInterpretedFunction(name.Value, def, args[2].Clone(), formals, captureClosure(it))
		it.Dynamic.Put(name.Value, fn)
		return ctx.Return(fn)
	})

	register(it, "apply", ast.NewFuncDef(ast.Fixed(ast.TagFunction, ast.TagSexp), ast.Fixed(ast.TagAny)), func(ctx ast.EvalContext) bool {
		fn := mustArg(ctx, 0)
		list, ok := asList(mustArg(ctx, 1))
		if !ok {
			return ctx.TypeError("Sexp", ctx.Args()[1])
		}
		v, ok := callFunction(ctx, fn, list.Args)
		if !ok {
			return false
		}
		return ctx.Return(v)
	})

	register(it, "quote", ast.NewFuncDef(ast.Fixed(ast.TagAny), ast.Fixed(ast.TagQuote)), func(ctx ast.EvalContext) bool {
		return ctx.Return(&ast.Quote{Value: ctx.Args()[0].Clone()})
	})

	register(it, "unquote", ast.NewFuncDef(ast.Fixed(ast.TagAny), ast.Fixed(ast.TagAny)), func(ctx ast.EvalContext) bool {
		v, ok := ctx.Evaluate(ctx.Args()[0])
		if !ok {
			return false
		}
		q, isQuote := v.(*ast.Quote)
		if !isQuote {
			return ctx.TypeError("Quote", v)
		}
		inner, ok := ctx.Evaluate(q.Value.Clone())
		if !ok {
			return false
		}
		return ctx.Return(inner)
	})
}

func formalsOf(form ast.Expression) ([]*ast.Symbol, bool) {
	list, ok := asList(form)
	if !ok {
		return nil, false
	}
	out := make([]*ast.Symbol, len(list.Args))
	for i, a := range list.Args {
		sym, ok := asSymbol(a)
		if !ok {
			return nil, false
		}
		out[i] = sym
	}
	return out, true
}

// captureClosure snapshots the bindings visible in the active frame
// (locals, then its own closure) at lambda/def definition time, so
// the resulting InterpretedFunction can read them after that frame
// pops — a plain map, not a back-reference, avoiding reference cycles
// through the call stack.
func captureClosure(it *eval.Interpreter) map[string]ast.Expression {
	frame := it.CurrentFrame()
	if frame == nil {
		return nil
	}
	closure := make(map[string]ast.Expression)
	for name, v := range frame.Closure {
		closure[name] = v
	}
	frame.Locals.ForEach(func(name string, v ast.Expression) {
		closure[name] = v
	})
	return closure
}

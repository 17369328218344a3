package stdlib

import (
	"github.com/suderio/slisp/internal/eval"
	"github.com/suderio/slisp/pkg/ast"
)

// registerLogicalFns binds and/or/not. and/or declare a TagAny
// varargs in-shape so Validate never forces evaluation of a branch
// the short-circuit never reaches (spec §8's "and(false, X) never
// evaluates X").
func registerLogicalFns(it *eval.Interpreter) {
	anyShape := ast.NewFuncDef(ast.Varargs(ast.TagAny, ast.Arity{Kind: ast.ArityAny}), ast.Fixed(ast.TagBool))

	register(it, "and", anyShape, func(ctx ast.EvalContext) bool {
		for _, arg := range ctx.Args() {
			v, ok := ctx.Evaluate(arg)
			if !ok {
				return false
			}
			b, isBool := asBool(v)
			if !isBool {
				return ctx.TypeError("Bool", v)
			}
			if !b {
				return ctx.Return(&ast.Bool{Value: false})
			}
		}
		return ctx.Return(&ast.Bool{Value: true})
	})

	register(it, "or", anyShape, func(ctx ast.EvalContext) bool {
		for _, arg := range ctx.Args() {
			v, ok := ctx.Evaluate(arg)
			if !ok {
				return false
			}
			b, isBool := asBool(v)
			if !isBool {
				return ctx.TypeError("Bool", v)
			}
			if b {
				return ctx.Return(&ast.Bool{Value: true})
			}
		}
		return ctx.Return(&ast.Bool{Value: false})
	})

	register(it, "not", ast.NewFuncDef(ast.Fixed(ast.TagBool), ast.Fixed(ast.TagBool)), func(ctx ast.EvalContext) bool {
		b, ok := asBool(mustArg(ctx, 0))
		if !ok {
			return ctx.TypeError("Bool", ctx.Args()[0])
		}
		return ctx.Return(&ast.Bool{Value: !b})
	})
}

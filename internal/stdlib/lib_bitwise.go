package stdlib

import (
	"github.com/suderio/slisp/internal/eval"
	"github.com/suderio/slisp/pkg/ast"
)

func registerBitwiseFns(it *eval.Interpreter) {
	register(it, "<<", ast.NewFuncDef(ast.Fixed(ast.TagInt, ast.TagInt), ast.Fixed(ast.TagInt)), intBinary(func(a, b int64) int64 { return a << uint(b) }))
	register(it, ">>", ast.NewFuncDef(ast.Fixed(ast.TagInt, ast.TagInt), ast.Fixed(ast.TagInt)), intBinary(func(a, b int64) int64 { return a >> uint(b) }))
	register(it, "&", ast.NewFuncDef(ast.Fixed(ast.TagInt, ast.TagInt), ast.Fixed(ast.TagInt)), intBinary(func(a, b int64) int64 { return a & b }))
	register(it, "|", ast.NewFuncDef(ast.Fixed(ast.TagInt, ast.TagInt), ast.Fixed(ast.TagInt)), intBinary(func(a, b int64) int64 { return a | b }))
	register(it, "^", ast.NewFuncDef(ast.Fixed(ast.TagInt, ast.TagInt), ast.Fixed(ast.TagInt)), intBinary(func(a, b int64) int64 { return a ^ b }))
	register(it, "~", ast.NewFuncDef(ast.Fixed(ast.TagInt), ast.Fixed(ast.TagInt)), func(ctx ast.EvalContext) bool {
		n, ok := asInt(mustArg(ctx, 0))
		if !ok {
			return ctx.TypeError("Int", ctx.Args()[0])
		}
		return ctx.Return(&ast.Int{Value: ^n})
	})
}

func intBinary(fn func(a, b int64) int64) ast.CompiledFn {
	return func(ctx ast.EvalContext) bool {
		a, ok := asInt(mustArg(ctx, 0))
		if !ok {
			return ctx.TypeError("Int", ctx.Args()[0])
		}
		b, ok := asInt(mustArg(ctx, 1))
		if !ok {
			return ctx.TypeError("Int", ctx.Args()[1])
		}
		return ctx.Return(&ast.Int{Value: fn(a, b)})
	}
}

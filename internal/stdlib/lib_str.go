package stdlib

import (
	"fmt"
	"strings"

	"github.com/suderio/slisp/internal/eval"
	"github.com/suderio/slisp/pkg/ast"
)

func registerStrFns(it *eval.Interpreter) {
	register(it, "trim", ast.NewFuncDef(ast.Fixed(ast.TagStr), ast.Fixed(ast.TagStr)), strUnary(strings.TrimSpace))
	register(it, "upper", ast.NewFuncDef(ast.Fixed(ast.TagStr), ast.Fixed(ast.TagStr)), strUnary(strings.ToUpper))
	register(it, "lower", ast.NewFuncDef(ast.Fixed(ast.TagStr), ast.Fixed(ast.TagStr)), strUnary(strings.ToLower))

	register(it, "substr", ast.NewFuncDef(ast.Fixed(ast.TagStr, ast.TagInt, ast.TagInt), ast.Fixed(ast.TagStr)), func(ctx ast.EvalContext) bool {
		s, ok := asStr(mustArg(ctx, 0))
		if !ok {
			return ctx.TypeError("Str", ctx.Args()[0])
		}
		start, ok := asInt(mustArg(ctx, 1))
		if !ok {
			return ctx.TypeError("Int", ctx.Args()[1])
		}
		length, ok := asInt(mustArg(ctx, 2))
		if !ok {
			return ctx.TypeError("Int", ctx.Args()[2])
		}
		r := []rune(s)
		if start < 0 || length < 0 || int(start+length) > len(r) {
			return ctx.Error("substr out of range")
		}
		return ctx.Return(&ast.Str{Value: string(r[start : start+length])})
	})

	register(it, "contains?", ast.NewFuncDef(ast.Fixed(ast.TagStr, ast.TagStr), ast.Fixed(ast.TagBool)), strBinaryPredicate(strings.Contains))
	register(it, "starts-with?", ast.NewFuncDef(ast.Fixed(ast.TagStr, ast.TagStr), ast.Fixed(ast.TagBool)), strBinaryPredicate(strings.HasPrefix))
	register(it, "ends-with?", ast.NewFuncDef(ast.Fixed(ast.TagStr, ast.TagStr), ast.Fixed(ast.TagBool)), strBinaryPredicate(strings.HasSuffix))

	register(it, "compare", ast.NewFuncDef(ast.Fixed(ast.TagStr, ast.TagStr), ast.Fixed(ast.TagInt)), func(ctx ast.EvalContext) bool {
		a, ok := asStr(mustArg(ctx, 0))
		if !ok {
			return ctx.TypeError("Str", ctx.Args()[0])
		}
		b, ok := asStr(mustArg(ctx, 1))
		if !ok {
			return ctx.TypeError("Str", ctx.Args()[1])
		}
		return ctx.Return(&ast.Int{Value: int64(strings.Compare(a, b))})
	})

	register(it, "find", ast.NewFuncDef(ast.Fixed(ast.TagStr, ast.TagStr), ast.Fixed(ast.TagInt)), strIndex(strings.Index))
	register(it, "rfind", ast.NewFuncDef(ast.Fixed(ast.TagStr, ast.TagStr), ast.Fixed(ast.TagInt)), strIndex(strings.LastIndex))

	register(it, "replace", ast.NewFuncDef(ast.Fixed(ast.TagStr, ast.TagStr, ast.TagStr), ast.Fixed(ast.TagStr)), func(ctx ast.EvalContext) bool {
		s, ok := asStr(mustArg(ctx, 0))
		if !ok {
			return ctx.TypeError("Str", ctx.Args()[0])
		}
		old, ok := asStr(mustArg(ctx, 1))
		if !ok {
			return ctx.TypeError("Str", ctx.Args()[1])
		}
		new, ok := asStr(mustArg(ctx, 2))
		if !ok {
			return ctx.TypeError("Str", ctx.Args()[2])
		}
		return ctx.Return(&ast.Str{Value: strings.ReplaceAll(s, old, new)})
	})

	register(it, "split", ast.NewFuncDef(ast.Fixed(ast.TagStr, ast.TagStr), ast.Fixed(ast.TagSexp)), func(ctx ast.EvalContext) bool {
		s, ok := asStr(mustArg(ctx, 0))
		if !ok {
			return ctx.TypeError("Str", ctx.Args()[0])
		}
		sep, ok := asStr(mustArg(ctx, 1))
		if !ok {
			return ctx.TypeError("Str", ctx.Args()[1])
		}
		parts := strings.Split(s, sep)
		out := make([]ast.Expression, len(parts))
		for i, p := range parts {
			out[i] = &ast.Str{Value: p}
		}
		return ctx.Return(ast.NewSexp(out...))
	})

	register(it, "join", ast.NewFuncDef(ast.Fixed(ast.TagSexp, ast.TagStr), ast.Fixed(ast.TagStr)), func(ctx ast.EvalContext) bool {
		list, ok := asList(mustArg(ctx, 0))
		if !ok {
			return ctx.TypeError("Sexp", ctx.Args()[0])
		}
		sep, ok := asStr(mustArg(ctx, 1))
		if !ok {
			return ctx.TypeError("Str", ctx.Args()[1])
		}
		parts := make([]string, len(list.Args))
		for i, a := range list.Args {
			s, ok := asStr(a)
			if !ok {
				return ctx.TypeError("Str", a)
			}
			parts[i] = s
		}
		return ctx.Return(&ast.Str{Value: strings.Join(parts, sep)})
	})

	register(it, "format", ast.NewFuncDef(ast.Varargs(ast.TagAny, ast.Arity{Kind: ast.ArityAny}), ast.Fixed(ast.TagStr)), func(ctx ast.EvalContext) bool {
		values, ok := evalArgs(ctx)
		if !ok {
			return false
		}
		if len(values) == 0 {
			return ctx.ArgumentExpectedError()
		}
		tmpl, ok := asStr(values[0])
		if !ok {
			return ctx.TypeError("Str", values[0])
		}
		args := make([]interface{}, len(values)-1)
		for i, v := range values[1:] {
			args[i] = v.String()
		}
		return ctx.Return(&ast.Str{Value: fmt.Sprintf(tmpl, args...)})
	})
}

func strUnary(fn func(string) string) ast.CompiledFn {
	return func(ctx ast.EvalContext) bool {
		s, ok := asStr(mustArg(ctx, 0))
		if !ok {
			return ctx.TypeError("Str", ctx.Args()[0])
		}
		return ctx.Return(&ast.Str{Value: fn(s)})
	}
}

func strBinaryPredicate(fn func(a, b string) bool) ast.CompiledFn {
	return func(ctx ast.EvalContext) bool {
		a, ok := asStr(mustArg(ctx, 0))
		if !ok {
			return ctx.TypeError("Str", ctx.Args()[0])
		}
		b, ok := asStr(mustArg(ctx, 1))
		if !ok {
			return ctx.TypeError("Str", ctx.Args()[1])
		}
		return ctx.Return(&ast.Bool{Value: fn(a, b)})
	}
}

func strIndex(fn func(s, substr string) int) ast.CompiledFn {
	return func(ctx ast.EvalContext) bool {
		s, ok := asStr(mustArg(ctx, 0))
		if !ok {
			return ctx.TypeError("Str", ctx.Args()[0])
		}
		sub, ok := asStr(mustArg(ctx, 1))
		if !ok {
			return ctx.TypeError("Str", ctx.Args()[1])
		}
		return ctx.Return(&ast.Int{Value: int64(fn(s, sub))})
	}
}

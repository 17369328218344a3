package stdlib

import (
	"github.com/suderio/slisp/internal/eval"
	"github.com/suderio/slisp/pkg/ast"
)

func registerComparisonFns(it *eval.Interpreter) {
	// "=" / "<>" in-shape is TagAny, not TagLiteral: Expression.Equal is
	// structural and works for Sexp (list) operands too, which
	// TagLiteral would reject (spec C3 excludes Sexp from Literal).
	register(it, "=", ast.NewFuncDef(ast.Fixed(ast.TagAny, ast.TagAny), ast.Fixed(ast.TagBool)), equality(true))
	register(it, "<>", ast.NewFuncDef(ast.Fixed(ast.TagAny, ast.TagAny), ast.Fixed(ast.TagBool)), equality(false))

	register(it, "<", ast.NewFuncDef(ast.Fixed(ast.TagLiteral, ast.TagLiteral), ast.Fixed(ast.TagBool)), ordering(func(c int) bool { return c < 0 }))
	register(it, ">", ast.NewFuncDef(ast.Fixed(ast.TagLiteral, ast.TagLiteral), ast.Fixed(ast.TagBool)), ordering(func(c int) bool { return c > 0 }))
	register(it, "<=", ast.NewFuncDef(ast.Fixed(ast.TagLiteral, ast.TagLiteral), ast.Fixed(ast.TagBool)), ordering(func(c int) bool { return c <= 0 }))
	register(it, ">=", ast.NewFuncDef(ast.Fixed(ast.TagLiteral, ast.TagLiteral), ast.Fixed(ast.TagBool)), ordering(func(c int) bool { return c >= 0 }))
}

func equality(want bool) ast.CompiledFn {
	return func(ctx ast.EvalContext) bool {
		a := mustArg(ctx, 0)
		b := mustArg(ctx, 1)
		return ctx.Return(&ast.Bool{Value: a.Equal(b) == want})
	}
}

// compareValues orders two literals: numeric promotion for Int/Float,
// lexical for Str; any other pairing is incomparable.
func compareValues(a, b ast.Expression) (int, bool) {
	if sa, ok := a.(*ast.Str); ok {
		if sb, ok := b.(*ast.Str); ok {
			switch {
			case sa.Value < sb.Value:
				return -1, true
			case sa.Value > sb.Value:
				return 1, true
			default:
				return 0, true
			}
		}
		return 0, false
	}
	fa, aOK := asFloat(a)
	fb, bOK := asFloat(b)
	if !aOK || !bOK {
		return 0, false
	}
	switch {
	case fa < fb:
		return -1, true
	case fa > fb:
		return 1, true
	default:
		return 0, true
	}
}

func ordering(pred func(cmp int) bool) ast.CompiledFn {
	return func(ctx ast.EvalContext) bool {
		a := mustArg(ctx, 0)
		b := mustArg(ctx, 1)
		c, ok := compareValues(a, b)
		if !ok {
			return ctx.TypeError("comparable operands", b)
		}
		return ctx.Return(&ast.Bool{Value: pred(c)})
	}
}

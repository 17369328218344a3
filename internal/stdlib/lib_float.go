package stdlib

import (
	"math"

	"github.com/suderio/slisp/internal/eval"
	"github.com/suderio/slisp/pkg/ast"
)

func powFloat(x, y float64) float64 { return math.Pow(x, y) }
func absFloat(x float64) float64    { return math.Abs(x) }

func registerFloatFns(it *eval.Interpreter) {
	trig := map[string]func(float64) float64{
		"sin": math.Sin, "cos": math.Cos, "tan": math.Tan,
		"asin": math.Asin, "acos": math.Acos, "atan": math.Atan,
		"sinh": math.Sinh, "cosh": math.Cosh, "tanh": math.Tanh,
		"asinh": math.Asinh, "acosh": math.Acosh, "atanh": math.Atanh,
		"exp": math.Exp, "log": math.Log, "sqrt": math.Sqrt,
		"ceil": math.Ceil, "floor": math.Floor, "round": math.Round,
	}
	for name, fn := range trig {
		fn := fn
		register(it, name, ast.NewFuncDef(ast.Fixed(ast.TagFloat), ast.Fixed(ast.TagFloat)), func(ctx ast.EvalContext) bool {
			v := mustArg(ctx, 0)
			f, ok := asFloat(v)
			if !ok {
				return ctx.TypeError("Float", v)
			}
			return ctx.Return(&ast.Float{Value: fn(f)})
		})
	}

	register(it, "atan2", ast.NewFuncDef(ast.Fixed(ast.TagFloat, ast.TagFloat), ast.Fixed(ast.TagFloat)), func(ctx ast.EvalContext) bool {
		y, ok := asFloat(mustArg(ctx, 0))
		if !ok {
			return ctx.TypeError("Float", ctx.Args()[0])
		}
		x, ok := asFloat(mustArg(ctx, 1))
		if !ok {
			return ctx.TypeError("Float", ctx.Args()[1])
		}
		return ctx.Return(&ast.Float{Value: math.Atan2(y, x)})
	})
}

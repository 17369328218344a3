package stdlib

import (
	"strconv"

	"github.com/suderio/slisp/internal/eval"
	"github.com/suderio/slisp/pkg/ast"
)

func registerConversionFns(it *eval.Interpreter) {
	register(it, "type", ast.NewFuncDef(ast.Fixed(ast.TagAny), ast.Fixed(ast.TagStr)), func(ctx ast.EvalContext) bool {
		v := mustArg(ctx, 0)
		return ctx.Return(&ast.Str{Value: v.Tag().String()})
	})

	// second position is TagAny, not TagSymbol: the type name is a bare
	// keyword symbol like `Int`, never a bound name.
	register(it, "type?", ast.NewFuncDef(ast.Fixed(ast.TagAny, ast.TagAny), ast.Fixed(ast.TagBool)), func(ctx ast.EvalContext) bool {
		v := mustArg(ctx, 0)
		name, ok := asSymbol(ctx.Args()[1])
		if !ok {
			return ctx.TypeError("Symbol", ctx.Args()[1])
		}
		return ctx.Return(&ast.Bool{Value: v.Tag().String() == name.Value})
	})

	register(it, "bool", ast.NewFuncDef(ast.Fixed(ast.TagAny), ast.Fixed(ast.TagBool)), func(ctx ast.EvalContext) bool {
		v := mustArg(ctx, 0)
		switch e := v.(type) {
		case *ast.Bool:
			return ctx.Return(e)
		case *ast.Int:
			return ctx.Return(&ast.Bool{Value: e.Value != 0})
		case *ast.Str:
			b, err := strconv.ParseBool(e.Value)
			if err != nil {
				return ctx.TypeError("boolean-shaped Str", v)
			}
			return ctx.Return(&ast.Bool{Value: b})
		}
		return ctx.TypeError("Bool, Int or Str", v)
	})

	register(it, "int", ast.NewFuncDef(ast.Fixed(ast.TagAny), ast.Fixed(ast.TagInt)), func(ctx ast.EvalContext) bool {
		v := mustArg(ctx, 0)
		switch e := v.(type) {
		case *ast.Int:
			return ctx.Return(e)
		case *ast.Float:
			return ctx.Return(&ast.Int{Value: int64(e.Value)})
		case *ast.Bool:
			n := int64(0)
			if e.Value {
				n = 1
			}
			return ctx.Return(&ast.Int{Value: n})
		case *ast.Str:
			n, err := strconv.ParseInt(e.Value, 10, 64)
			if err != nil {
				return ctx.TypeError("integer-shaped Str", v)
			}
			return ctx.Return(&ast.Int{Value: n})
		}
		return ctx.TypeError("Int, Float, Bool or Str", v)
	})

	register(it, "float", ast.NewFuncDef(ast.Fixed(ast.TagAny), ast.Fixed(ast.TagFloat)), func(ctx ast.EvalContext) bool {
		v := mustArg(ctx, 0)
		switch e := v.(type) {
		case *ast.Float:
			return ctx.Return(e)
		case *ast.Int:
			return ctx.Return(&ast.Float{Value: float64(e.Value)})
		case *ast.Str:
			f, err := strconv.ParseFloat(e.Value, 64)
			if err != nil {
				return ctx.TypeError("float-shaped Str", v)
			}
			return ctx.Return(&ast.Float{Value: f})
		}
		return ctx.TypeError("Float, Int or Str", v)
	})

	register(it, "str", ast.NewFuncDef(ast.Fixed(ast.TagAny), ast.Fixed(ast.TagStr)), func(ctx ast.EvalContext) bool {
		v := mustArg(ctx, 0)
		if s, ok := v.(*ast.Str); ok {
			return ctx.Return(s)
		}
		return ctx.Return(&ast.Str{Value: v.String()})
	})
}

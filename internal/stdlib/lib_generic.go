package stdlib

import (
	"github.com/suderio/slisp/internal/eval"
	"github.com/suderio/slisp/pkg/ast"
)

func registerGenericFns(it *eval.Interpreter) {
	// "+" also concatenates Str and Sexp operands (addOne below), so
	// its in-shape is TagAny rather than TagLiteral (which excludes
	// Sexp) — every other arithmetic op here is numeric-only and so
	// keeps TagLiteral.
	register(it, "+", ast.NewFuncDef(ast.Varargs(ast.TagAny, ast.Arity{Kind: ast.ArityAny}), ast.Fixed(ast.TagLiteral)), genericFold(it, "+", addOne))
	register(it, "-", ast.NewFuncDef(ast.Varargs(ast.TagLiteral, ast.Arity{Kind: ast.ArityAny}), ast.Fixed(ast.TagLiteral)), genericFold(it, "-", subOne))
	register(it, "*", ast.NewFuncDef(ast.Varargs(ast.TagLiteral, ast.Arity{Kind: ast.ArityAny}), ast.Fixed(ast.TagLiteral)), genericFold(it, "*", mulOne))
	register(it, "/", ast.NewFuncDef(ast.Varargs(ast.TagLiteral, ast.Arity{Kind: ast.ArityAny}), ast.Fixed(ast.TagLiteral)), genericFold(it, "/", divOne))
	register(it, "pow", ast.NewFuncDef(ast.Fixed(ast.TagLiteral, ast.TagLiteral), ast.Fixed(ast.TagLiteral)), binaryNumeric(powInt, powFloat))
	register(it, "abs", ast.NewFuncDef(ast.Fixed(ast.TagLiteral), ast.Fixed(ast.TagLiteral)), unaryNumeric(absInt, absFloat))
	register(it, "max", ast.NewFuncDef(ast.Varargs(ast.TagLiteral, ast.Arity{Kind: ast.ArityAny}), ast.Fixed(ast.TagLiteral)), genericFold(it, "max", maxOne))
	register(it, "min", ast.NewFuncDef(ast.Varargs(ast.TagLiteral, ast.Arity{Kind: ast.ArityAny}), ast.Fixed(ast.TagLiteral)), genericFold(it, "min", minOne))

	// Sexp and Str in-shape positions below declare TagAny, not
	// TagLiteral: TagLiteral matches Bool/Int/Float/Str/Quote only
	// (spec C3), excluding Sexp, but these accept a list argument too.
	register(it, "empty?", ast.NewFuncDef(ast.Fixed(ast.TagAny), ast.Fixed(ast.TagBool)), func(ctx ast.EvalContext) bool {
		v := mustArg(ctx, 0)
		switch e := v.(type) {
		case *ast.Sexp:
			return ctx.Return(&ast.Bool{Value: e.Empty()})
		case *ast.Str:
			return ctx.Return(&ast.Bool{Value: e.Value == ""})
		}
		return ctx.TypeError("Sexp or Str", v)
	})

	register(it, "length", ast.NewFuncDef(ast.Fixed(ast.TagAny), ast.Fixed(ast.TagInt)), func(ctx ast.EvalContext) bool {
		v := mustArg(ctx, 0)
		switch e := v.(type) {
		case *ast.Sexp:
			return ctx.Return(&ast.Int{Value: int64(len(e.Args))})
		case *ast.Str:
			return ctx.Return(&ast.Int{Value: int64(len([]rune(e.Value)))})
		}
		return ctx.TypeError("Sexp or Str", v)
	})

	register(it, "reverse", ast.NewFuncDef(ast.Fixed(ast.TagAny), ast.Fixed(ast.TagAny)), func(ctx ast.EvalContext) bool {
		v := mustArg(ctx, 0)
		switch e := v.(type) {
		case *ast.Sexp:
			out := make([]ast.Expression, len(e.Args))
			for i, a := range e.Args {
				out[len(e.Args)-1-i] = a
			}
			return ctx.Return(ast.NewSexp(out...))
		case *ast.Str:
			r := []rune(e.Value)
			for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
				r[i], r[j] = r[j], r[i]
			}
			return ctx.Return(&ast.Str{Value: string(r)})
		}
		return ctx.TypeError("Sexp or Str", v)
	})

	register(it, "at", ast.NewFuncDef(ast.Fixed(ast.TagAny, ast.TagInt), ast.Fixed(ast.TagAny)), func(ctx ast.EvalContext) bool {
		v := mustArg(ctx, 0)
		idx, ok := asInt(mustArg(ctx, 1))
		if !ok {
			return ctx.TypeError("Int", ctx.Args()[1])
		}
		switch e := v.(type) {
		case *ast.Sexp:
			if idx < 0 || int(idx) >= len(e.Args) {
				return ctx.Error("index out of range")
			}
			return ctx.Return(e.Args[idx])
		case *ast.Str:
			r := []rune(e.Value)
			if idx < 0 || int(idx) >= len(r) {
				return ctx.Error("index out of range")
			}
			return ctx.Return(&ast.Str{Value: string(r[idx])})
		}
		return ctx.TypeError("Sexp or Str", v)
	})

	register(it, "head", ast.NewFuncDef(ast.Fixed(ast.TagSexp), ast.Fixed(ast.TagAny)), func(ctx ast.EvalContext) bool {
		s, ok := asList(mustArg(ctx, 0))
		if !ok || s.Empty() {
			return ctx.Error("head of empty list")
		}
		return ctx.Return(s.Args[0])
	})

	register(it, "tail", ast.NewFuncDef(ast.Fixed(ast.TagSexp), ast.Fixed(ast.TagSexp)), func(ctx ast.EvalContext) bool {
		s, ok := asList(mustArg(ctx, 0))
		if !ok || s.Empty() {
			return ctx.Error("tail of empty list")
		}
		return ctx.Return(ast.NewSexp(s.Args[1:]...))
	})

	register(it, "last", ast.NewFuncDef(ast.Fixed(ast.TagSexp), ast.Fixed(ast.TagAny)), func(ctx ast.EvalContext) bool {
		s, ok := asList(mustArg(ctx, 0))
		if !ok || s.Empty() {
			return ctx.Error("last of empty list")
		}
		return ctx.Return(s.Args[len(s.Args)-1])
	})

	register(it, "foreach", ast.NewFuncDef(ast.Fixed(ast.TagSexp, ast.TagFunction), ast.Fixed(ast.TagVoid)), func(ctx ast.EvalContext) bool {
		s, ok := asList(mustArg(ctx, 0))
		if !ok {
			return ctx.TypeError("Sexp", ctx.Args()[0])
		}
		fn, ok := ctx.Evaluate(ctx.Args()[1])
		if !ok {
			return false
		}
		for _, item := range s.Args {
			if _, ok := callFunction(ctx, fn, []ast.Expression{item}); !ok {
				return false
			}
		}
		return ctx.Return(ast.Void{})
	})
}

func addOne(a, b ast.Expression) (ast.Expression, bool) {
	if sa, ok := a.(*ast.Str); ok {
		if sb, ok := b.(*ast.Str); ok {
			return &ast.Str{Value: sa.Value + sb.Value}, true
		}
		return nil, false
	}
	if la, ok := a.(*ast.Sexp); ok {
		if lb, ok := b.(*ast.Sexp); ok {
			return ast.NewSexp(append(append([]ast.Expression{}, la.Args...), lb.Args...)...), true
		}
		return nil, false
	}
	return numericOp(a, b, func(x, y int64) int64 { return x + y }, func(x, y float64) float64 { return x + y })
}

func subOne(a, b ast.Expression) (ast.Expression, bool) {
	return numericOp(a, b, func(x, y int64) int64 { return x - y }, func(x, y float64) float64 { return x - y })
}

func mulOne(a, b ast.Expression) (ast.Expression, bool) {
	return numericOp(a, b, func(x, y int64) int64 { return x * y }, func(x, y float64) float64 { return x * y })
}

func divOne(a, b ast.Expression) (ast.Expression, bool) {
	if ib, ok := b.(*ast.Int); ok && ib.Value == 0 {
		if _, aIsFloat := a.(*ast.Float); !aIsFloat {
			return nil, false
		}
	}
	if fb, ok := asFloat(b); ok && fb == 0 {
		if _, aIsInt := a.(*ast.Int); aIsInt {
			if _, bIsInt := b.(*ast.Int); bIsInt {
				return nil, false
			}
		}
	}
	return numericOp(a, b, func(x, y int64) int64 { return x / y }, func(x, y float64) float64 { return x / y })
}

func maxOne(a, b ast.Expression) (ast.Expression, bool) {
	return numericOp(a, b, func(x, y int64) int64 {
		if x > y {
			return x
		}
		return y
	}, func(x, y float64) float64 {
		if x > y {
			return x
		}
		return y
	})
}

func minOne(a, b ast.Expression) (ast.Expression, bool) {
	return numericOp(a, b, func(x, y int64) int64 {
		if x < y {
			return x
		}
		return y
	}, func(x, y float64) float64 {
		if x < y {
			return x
		}
		return y
	})
}

// numericOp dispatches to the int form when both operands are Int,
// otherwise promotes both to Float (spec's Generic arithmetic group
// accepting mixed Int/Float operands).
func numericOp(a, b ast.Expression, iFn func(x, y int64) int64, fFn func(x, y float64) float64) (ast.Expression, bool) {
	ia, aIsInt := a.(*ast.Int)
	ib, bIsInt := b.(*ast.Int)
	if aIsInt && bIsInt {
		return &ast.Int{Value: iFn(ia.Value, ib.Value)}, true
	}
	fa, aOK := asFloat(a)
	fb, bOK := asFloat(b)
	if !aOK || !bOK {
		return nil, false
	}
	return &ast.Float{Value: fFn(fa, fb)}, true
}

func powInt(x, y int64) int64 {
	result := int64(1)
	for i := int64(0); i < y; i++ {
		result *= x
	}
	return result
}

func absInt(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

// genericFold reduces the call's evaluated arguments left to right
// through op, pushing an arity-expected error on a zero-argument call
// and a type error when op rejects an operand pairing.
func genericFold(it *eval.Interpreter, name string, op func(a, b ast.Expression) (ast.Expression, bool)) ast.CompiledFn {
	return func(ctx ast.EvalContext) bool {
		values, ok := evalArgs(ctx)
		if !ok {
			return false
		}
		if len(values) == 0 {
			return ctx.ArgumentExpectedError()
		}
		acc := values[0]
		for _, v := range values[1:] {
			result, ok := op(acc, v)
			if !ok {
				return ctx.TypeError(name+" operand", v)
			}
			acc = result
		}
		return ctx.Return(acc)
	}
}

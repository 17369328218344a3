package stdlib

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/suderio/slisp/internal/eval"
	"github.com/suderio/slisp/pkg/ast"
)

func registerInterpreterFns(it *eval.Interpreter) {
	register(it, "display", ast.NewFuncDef(ast.Varargs(ast.TagAny, ast.Arity{Kind: ast.ArityAny}), ast.Fixed(ast.TagVoid)), render(it, false))
	register(it, "print", ast.NewFuncDef(ast.Varargs(ast.TagAny, ast.Arity{Kind: ast.ArityAny}), ast.Fixed(ast.TagVoid)), render(it, true))

	register(it, "prompt", ast.NewFuncDef(ast.Fixed(ast.TagStr), ast.Fixed(ast.TagStr)), func(ctx ast.EvalContext) bool {
		prompt, ok := asStr(mustArg(ctx, 0))
		if !ok {
			return ctx.TypeError("Str", ctx.Args()[0])
		}
		fmt.Fprint(it.Output, prompt)
		line, _ := bufio.NewReader(it.Input).ReadString('\n')
		return ctx.Return(&ast.Str{Value: strings.TrimRight(line, "\r\n")})
	})

	register(it, "quit", ast.NewFuncDef(ast.Varargs(ast.TagInt, ast.Arity{Kind: ast.ArityAny}), ast.Fixed(ast.TagVoid)), func(ctx ast.EvalContext) bool {
		code := 0
		if args := ctx.Args(); len(args) == 1 {
			v, ok := ctx.Evaluate(args[0])
			if !ok {
				return false
			}
			n, isInt := asInt(v)
			if !isInt {
				return ctx.TypeError("Int", v)
			}
			code = int(n)
		}
		it.Stop(code)
		return ctx.Return(ast.Void{})
	})

	register(it, "help", ast.NewFuncDef(ast.Varargs(ast.TagAny, ast.Arity{Kind: ast.ArityNone}), ast.Fixed(ast.TagVoid)), func(ctx ast.EvalContext) bool {
		it.Dynamic.ForEach(func(name string, v ast.Expression) {
			switch fn := v.(type) {
			case *ast.CompiledFunction:
				fmt.Fprintf(it.Output, "%-20s %s\n", name, fn.Def.String())
			case *ast.InterpretedFunction:
				fmt.Fprintf(it.Output, "%-20s %s\n", name, fn.Def.String())
			}
		})
		return ctx.Return(ast.Void{})
	})

	// Symbol-naming positions below declare TagAny, not TagSymbol: see
	// the comment on ++/-- in lib_int.go — these builtins need the
	// raw unresolved Symbol form, which Validate's resolver would
	// otherwise force-evaluate for a TagSymbol-declared position.
	register(it, "infix-register", ast.NewFuncDef(ast.Fixed(ast.TagAny, ast.TagInt), ast.Fixed(ast.TagVoid)), func(ctx ast.EvalContext) bool {
		sym, ok := asSymbol(ctx.Args()[0])
		if !ok {
			return ctx.TypeError("Symbol", ctx.Args()[0])
		}
		prec, ok := asInt(mustArg(ctx, 1))
		if !ok {
			return ctx.TypeError("Int", ctx.Args()[1])
		}
		it.Settings.Infix.Register(sym.Value, int(prec))
		return ctx.Return(ast.Void{})
	})

	register(it, "infix-unregister", ast.NewFuncDef(ast.Fixed(ast.TagAny), ast.Fixed(ast.TagVoid)), func(ctx ast.EvalContext) bool {
		sym, ok := asSymbol(ctx.Args()[0])
		if !ok {
			return ctx.TypeError("Symbol", ctx.Args()[0])
		}
		it.Settings.Infix.Unregister(sym.Value)
		return ctx.Return(ast.Void{})
	})

	register(it, "set", ast.NewFuncDef(ast.Fixed(ast.TagAny, ast.TagAny), ast.Fixed(ast.TagAny)), func(ctx ast.EvalContext) bool {
		sym, ok := asSymbol(ctx.Args()[0])
		if !ok {
			return ctx.TypeError("Symbol", ctx.Args()[0])
		}
		v, ok := ctx.Evaluate(ctx.Args()[1])
		if !ok {
			return false
		}
		it.Dynamic.Put(sym.Value, v)
		return ctx.Return(v)
	})

	register(it, "unset", ast.NewFuncDef(ast.Fixed(ast.TagAny), ast.Fixed(ast.TagBool)), func(ctx ast.EvalContext) bool {
		sym, ok := asSymbol(ctx.Args()[0])
		if !ok {
			return ctx.TypeError("Symbol", ctx.Args()[0])
		}
		return ctx.Return(&ast.Bool{Value: it.Dynamic.Delete(sym.Value)})
	})
}

// mustArg evaluates argument position i via the context, panicking
// only in the sense of returning a zero-valued placeholder on
// failure — callers that use this helper must still check the
// returned expression's type, but the evaluate-failure path has
// already pushed its own error.
func mustArg(ctx ast.EvalContext, i int) ast.Expression {
	args := ctx.Args()
	if i >= len(args) {
		return ast.Void{}
	}
	v, ok := ctx.Evaluate(args[i])
	if !ok {
		return ast.Void{}
	}
	return v
}

func render(it *eval.Interpreter, newline bool) ast.CompiledFn {
	return func(ctx ast.EvalContext) bool {
		values, ok := evalArgs(ctx)
		if !ok {
			return false
		}
		for i, v := range values {
			if i > 0 {
				fmt.Fprint(it.Output, " ")
			}
			fmt.Fprint(it.Output, v.String())
		}
		if newline {
			fmt.Fprintln(it.Output)
		}
		return ctx.Return(ast.Void{})
	}
}

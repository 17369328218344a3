package stdlib

import (
	"github.com/google/uuid"

	"github.com/suderio/slisp/internal/eval"
	"github.com/suderio/slisp/pkg/ast"
)

func registerUUIDFn(it *eval.Interpreter) {
	register(it, "uuid", ast.NewFuncDef(ast.Varargs(ast.TagAny, ast.Arity{Kind: ast.ArityNone}), ast.Fixed(ast.TagStr)), func(ctx ast.EvalContext) bool {
		return ctx.Return(&ast.Str{Value: uuid.New().String()})
	})
}

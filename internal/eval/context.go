package eval

import (
	"fmt"

	"github.com/suderio/slisp/pkg/ast"
)

// EvaluationContext is the concrete type satisfying ast.EvalContext
// (spec §4.7): it wraps the interpreter and the in-flight call Sexp,
// giving a CompiledFunction handle access to its arguments, to
// sub-evaluation, and to the error/result helpers.
type EvaluationContext struct {
	it     *Interpreter
	call   *ast.Sexp
	result ast.Expression
}

var _ ast.EvalContext = (*EvaluationContext)(nil)

// Evaluate reduces one argument form in place, pushing an error on
// failure.
func (c *EvaluationContext) Evaluate(e ast.Expression) (ast.Expression, bool) {
	return c.it.Evaluate(e)
}

// EvaluateNoError reduces e, suppressing any error pushed during the
// attempt — used by control forms that probe a form's evaluability
// without surfacing a failure to the caller (spec §4.7).
func (c *EvaluationContext) EvaluateNoError(e ast.Expression) (ast.Expression, bool) {
	mark := len(c.it.Errors)
	v, ok := c.it.Evaluate(e)
	if !ok {
		c.it.Errors = c.it.Errors[:mark]
	}
	return v, ok
}

// Call returns the current call Sexp.
func (c *EvaluationContext) Call() *ast.Sexp { return c.call }

// Args returns the call's argument forms (everything after the head).
func (c *EvaluationContext) Args() []ast.Expression { return c.call.Tail() }

// Return records expr as this call's result.
func (c *EvaluationContext) Return(expr ast.Expression) bool {
	c.result = expr
	return true
}

// ReturnNil returns the canonical empty list.
func (c *EvaluationContext) ReturnNil() bool {
	c.result = ast.NewSexp()
	return true
}

// Error pushes a generic error.
func (c *EvaluationContext) Error(what string) bool {
	c.it.pushError(GenericError, what)
	return false
}

// TypeError pushes a type-mismatch error naming the expected shape and
// the actual expression's tag.
func (c *EvaluationContext) TypeError(expected string, actual ast.Expression) bool {
	c.it.pushError(TypeError, fmt.Sprintf("expected %s, got %s", expected, actual.Tag()))
	return false
}

// EvaluateError pushes an error naming the 1-indexed argument position
// that failed to evaluate.
func (c *EvaluationContext) EvaluateError(argNum int) bool {
	c.it.pushError(GenericError, fmt.Sprintf("argument %d failed to evaluate", argNum))
	return false
}

// EvaluateErrorNamed pushes an error naming the argument by its formal
// name rather than position.
func (c *EvaluationContext) EvaluateErrorNamed(argName string) bool {
	c.it.pushError(GenericError, fmt.Sprintf("argument %q failed to evaluate", argName))
	return false
}

// UnknownSymbolError pushes an unknown-symbol error.
func (c *EvaluationContext) UnknownSymbolError(name string) bool {
	c.it.pushError(UnknownSymbolError, fmt.Sprintf("unknown symbol %q", name))
	return false
}

// ArgumentExpectedError pushes an arity error for a handle that needed
// at least one more argument than it received.
func (c *EvaluationContext) ArgumentExpectedError() bool {
	c.it.pushError(ArityError, "argument expected")
	return false
}

// GetSymbol resolves name through the interpreter's current lookup
// order without consuming it as an evaluation step.
func (c *EvaluationContext) GetSymbol(name string) (ast.Expression, bool) {
	return c.it.lookup(name)
}

// GetList reports whether e is a Sexp, returning it as such.
func (c *EvaluationContext) GetList(e ast.Expression) (*ast.Sexp, bool) {
	s, ok := e.(*ast.Sexp)
	return s, ok
}

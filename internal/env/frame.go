package env

import "github.com/suderio/slisp/pkg/ast"

// StackFrame is a call's activation record (spec C6): a locals
// SymbolTable private to this call, a closure snapshot captured at
// the callee's definition time, and a dynamic Scope rooted in the
// interpreter-wide dynamic table so names introduced via `set`
// persist beyond the frame while names explicitly marked local are
// torn down on pop.
type StackFrame struct {
	Callee  *ast.InterpretedFunction
	Locals  *SymbolTable
	Closure map[string]ast.Expression
	Dynamic *Scope
}

// NewStackFrame pushes a frame for invoking callee, rooting its
// dynamic Scope in dynamicTable (the interpreter-wide dynamic
// SymbolTable).
func NewStackFrame(callee *ast.InterpretedFunction, dynamicTable *SymbolTable) *StackFrame {
	return &StackFrame{
		Callee:  callee,
		Locals:  NewSymbolTable(),
		Closure: callee.CloneClosure(),
		Dynamic: NewScope(dynamicTable),
	}
}

// BindFormals binds each formal name to its corresponding evaluated
// argument in the frame's locals, per spec §4.6's InterpretedFunction
// dispatch: "push a new StackFrame whose locals bind each formal name
// to the corresponding evaluated argument."
func (f *StackFrame) BindFormals(formals []*ast.Symbol, args []ast.Expression) {
	for i, formal := range formals {
		if i < len(args) {
			f.Locals.Put(formal.Value, args[i])
		}
	}
}

// Get resolves name in this frame's three-layer order (spec §4.5):
// locals, then the closure snapshot, then the interpreter's dynamic
// table (outer globals).
func (f *StackFrame) Get(name string) (ast.Expression, bool) {
	if v, ok := f.Locals.Get(name); ok {
		return v, true
	}
	if v, ok := f.Closure[name]; ok {
		if v == nil {
			return nil, true
		}
		return v.Clone(), true
	}
	return f.Dynamic.Table().Get(name)
}

// PutLocal writes a frame-private binding.
func (f *StackFrame) PutLocal(name string, value ast.Expression) {
	f.Locals.Put(name, value)
}

// PutDynamic writes into the frame's dynamic Scope: visible globally
// while the frame is live, restored to its pre-call state on Close.
func (f *StackFrame) PutDynamic(name string, value ast.Expression) {
	f.Dynamic.Put(name, value)
}

// Close pops the frame: its dynamic Scope restores the names it
// touched in the interpreter-wide dynamic table.
func (f *StackFrame) Close() {
	f.Dynamic.Close()
}

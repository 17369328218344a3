package env

import (
	"testing"

	"github.com/suderio/slisp/pkg/ast"
)

func newTestCallee(name string) *ast.InterpretedFunction {
	def := ast.NewFuncDef(ast.Varargs(ast.TagLiteral, ast.Arity{Kind: ast.ArityAny}), nil)
	formals := []*ast.Symbol{{Value: "a"}}
	closure := map[string]ast.Expression{"captured": &ast.Int{Value: 100}}
	return ast.NewInterpretedFunction(name, def, &ast.Symbol{Value: "a"}, formals, closure)
}

// TestFrameResolutionOrder is the spec §8 "Frame resolution order"
// invariant: local shadows closure shadows dynamic; removing a
// binding in one layer exposes the next.
func TestFrameResolutionOrder(t *testing.T) {
	dynTable := NewSymbolTable()
	dynTable.Put("name", &ast.Str{Value: "dynamic"})

	callee := newTestCallee("f")
	callee.Closure["name"] = &ast.Str{Value: "closure"}

	frame := NewStackFrame(callee, dynTable)

	v, ok := frame.Get("name")
	if !ok || v.(*ast.Str).Value != "closure" {
		t.Fatalf("expected closure value to win over dynamic, got %v", v)
	}

	frame.PutLocal("name", &ast.Str{Value: "local"})
	v, ok = frame.Get("name")
	if !ok || v.(*ast.Str).Value != "local" {
		t.Fatalf("expected local to win over closure, got %v", v)
	}

	delete(frame.Locals.entries, "name")
	v, ok = frame.Get("name")
	if !ok || v.(*ast.Str).Value != "closure" {
		t.Fatalf("removing local should expose closure, got %v", v)
	}

	delete(frame.Closure, "name")
	v, ok = frame.Get("name")
	if !ok || v.(*ast.Str).Value != "dynamic" {
		t.Fatalf("removing closure should expose dynamic, got %v", v)
	}
}

func TestFrameBindFormals(t *testing.T) {
	dynTable := NewSymbolTable()
	callee := newTestCallee("f")
	frame := NewStackFrame(callee, dynTable)

	frame.BindFormals(callee.Formals, []ast.Expression{&ast.Int{Value: 7}})
	v, ok := frame.Get("a")
	if !ok || v.(*ast.Int).Value != 7 {
		t.Fatalf("expected formal a bound to 7, got %v", v)
	}
}

func TestFramePutDynamicTearsDownOnClose(t *testing.T) {
	dynTable := NewSymbolTable()
	callee := newTestCallee("f")
	frame := NewStackFrame(callee, dynTable)

	frame.PutDynamic("temp", &ast.Int{Value: 1})
	if _, ok := dynTable.Get("temp"); !ok {
		t.Fatal("expected temp visible in the dynamic table while the frame is live")
	}
	frame.Close()
	if _, ok := dynTable.Get("temp"); ok {
		t.Fatal("expected temp torn down after the frame closed")
	}
}

func TestFrameSetPersistsBeyondPop(t *testing.T) {
	dynTable := NewSymbolTable()
	callee := newTestCallee("f")
	frame := NewStackFrame(callee, dynTable)

	// `set` has global semantics: it writes directly to the dynamic
	// table, not through the frame's torn-down Scope.
	dynTable.Put("global", &ast.Int{Value: 42})
	frame.Close()
	if v, ok := dynTable.Get("global"); !ok || v.(*ast.Int).Value != 42 {
		t.Fatal("a direct dynamic-table write must survive frame pop")
	}
}

package ast

import "testing"

func identityResolver(e Expression) (Expression, bool) { return e, true }

func TestValidateFixedShape(t *testing.T) {
	def := NewFuncDef(Fixed(TagInt, TagStr), Fixed(TagBool))
	call := NewSexp(&Symbol{Value: "f"}, &Int{Value: 1}, &Str{Value: "x"})
	if verr, ok := def.Validate(call, identityResolver); verr != nil || !ok {
		t.Fatalf("expected valid call, got err=%v ok=%v", verr, ok)
	}
}

func TestValidateArityMismatch(t *testing.T) {
	def := NewFuncDef(Fixed(TagInt, TagStr), Fixed(TagBool))
	call := NewSexp(&Symbol{Value: "f"}, &Int{Value: 1})
	verr, ok := def.Validate(call, identityResolver)
	if verr == nil || !ok {
		t.Fatal("expected arity mismatch error with ok=true (no resolver failure)")
	}
	if verr.Kind != ArityMismatch {
		t.Fatalf("expected ArityMismatch, got %v", verr.Kind)
	}
}

func TestValidateTypeMismatch(t *testing.T) {
	def := NewFuncDef(Fixed(TagInt, TagStr), Fixed(TagBool))
	call := NewSexp(&Symbol{Value: "f"}, &Int{Value: 1}, &Int{Value: 2})
	verr, ok := def.Validate(call, identityResolver)
	if verr == nil || !ok {
		t.Fatal("expected type mismatch error with ok=true (arity was fine)")
	}
	if verr.Kind != TypeMismatch || verr.Position != 2 {
		t.Fatalf("expected TypeMismatch at position 2, got kind=%v pos=%d", verr.Kind, verr.Position)
	}
}

func TestValidateVarargsNone(t *testing.T) {
	def := NewFuncDef(Varargs(TagLiteral, Arity{Kind: ArityNone}), nil)
	call := NewSexp(&Symbol{Value: "newline"})
	if verr, ok := def.Validate(call, identityResolver); verr != nil || !ok {
		t.Fatalf("zero-arg varargs-none call should validate, got %v %v", verr, ok)
	}
	call2 := NewSexp(&Symbol{Value: "newline"}, &Int{Value: 1})
	if verr, _ := def.Validate(call2, identityResolver); verr == nil || verr.Kind != ArityMismatch {
		t.Fatal("expected arity mismatch for varargs-none with one argument")
	}
}

func TestValidateVarargsAny(t *testing.T) {
	def := NewFuncDef(Varargs(TagInt, Arity{Kind: ArityAny}), nil)
	call := NewSexp(&Symbol{Value: "+"}, &Int{Value: 1}, &Int{Value: 2}, &Int{Value: 3})
	if verr, ok := def.Validate(call, identityResolver); verr != nil || !ok {
		t.Fatalf("varargs-any call should validate for any count, got %v %v", verr, ok)
	}
}

func TestValidateVarargsExact(t *testing.T) {
	def := NewFuncDef(Varargs(TagInt, ArityOf(2)), nil)
	call := NewSexp(&Symbol{Value: "f"}, &Int{Value: 1}, &Int{Value: 2})
	if verr, ok := def.Validate(call, identityResolver); verr != nil || !ok {
		t.Fatalf("expected exact-2 varargs call to validate, got %v %v", verr, ok)
	}
	bad := NewSexp(&Symbol{Value: "f"}, &Int{Value: 1})
	if verr, _ := def.Validate(bad, identityResolver); verr == nil || verr.Kind != ArityMismatch {
		t.Fatal("expected arity mismatch for exact-2 varargs with one argument")
	}
}

func TestValidateResolvesSymbolsBeforeTypeCheck(t *testing.T) {
	def := NewFuncDef(Fixed(TagInt), nil)
	call := NewSexp(&Symbol{Value: "f"}, &Symbol{Value: "x"})
	resolve := func(e Expression) (Expression, bool) { return &Int{Value: 5}, true }
	if verr, ok := def.Validate(call, resolve); verr != nil || !ok {
		t.Fatalf("expected symbol argument to resolve to Int and validate, got %v %v", verr, ok)
	}
}

func TestValidateResolverFailurePropagates(t *testing.T) {
	def := NewFuncDef(Fixed(TagInt), nil)
	call := NewSexp(&Symbol{Value: "f"}, &Symbol{Value: "undefined"})
	resolve := func(e Expression) (Expression, bool) { return nil, false }
	verr, ok := def.Validate(call, resolve)
	if verr != nil || ok {
		t.Fatal("a resolver failure should propagate without a ValidationError (caller already raised it)")
	}
}

// TestValidateAnyShapeNeverResolves ensures a TagAny in-shape position
// skips the resolver entirely, so an unbound symbol destined for a
// short-circuiting control form (and/or/if) never fails validation.
func TestValidateAnyShapeNeverResolves(t *testing.T) {
	def := NewFuncDef(Varargs(TagAny, Arity{Kind: ArityAny}), nil)
	call := NewSexp(&Symbol{Value: "and"}, &Bool{Value: false}, &Symbol{Value: "undefinedthing"})
	resolve := func(e Expression) (Expression, bool) { return nil, false }
	if verr, ok := def.Validate(call, resolve); verr != nil || !ok {
		t.Fatalf("expected TagAny shape to skip resolution, got %v %v", verr, ok)
	}
}

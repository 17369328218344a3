// Package env implements the symbol environment (spec C5): a
// SymbolTable mapping names to optional Expressions, a Scope that
// shadows and restores bindings over a table, and a StackFrame
// activation record (spec C6) built from both.
package env

import "github.com/suderio/slisp/pkg/ast"

// SymbolTable maps names to optional Expressions. An entry whose
// value is nil is present but declared-empty (spec §3's
// "declared-but-empty state used to override an outer binding with
// nothing"), distinct from a name that is entirely absent from the
// table.
type SymbolTable struct {
	entries map[string]ast.Expression
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{entries: make(map[string]ast.Expression)}
}

// Put installs value under name, taking ownership of it.
func (t *SymbolTable) Put(name string, value ast.Expression) {
	t.entries[name] = value
}

// PutEmpty installs the declared-but-empty state under name.
func (t *SymbolTable) PutEmpty(name string) {
	t.entries[name] = nil
}

// Get returns a clone of the stored value, or (nil, false) if name is
// entirely absent. A present-but-empty entry returns (nil, true).
func (t *SymbolTable) Get(name string) (ast.Expression, bool) {
	v, ok := t.entries[name]
	if !ok {
		return nil, false
	}
	if v == nil {
		return nil, true
	}
	return v.Clone(), true
}

// GetRef returns the stored value without cloning — an unowned
// handle — or (nil, false) if absent.
func (t *SymbolTable) GetRef(name string) (ast.Expression, bool) {
	v, ok := t.entries[name]
	return v, ok
}

// Delete removes name entirely, reporting whether it was present.
func (t *SymbolTable) Delete(name string) bool {
	_, ok := t.entries[name]
	delete(t.entries, name)
	return ok
}

// ForEach visits every entry in the table in unspecified order.
func (t *SymbolTable) ForEach(fn func(name string, value ast.Expression)) {
	for name, v := range t.entries {
		fn(name, v)
	}
}

// Count reports the number of entries in the table, including
// declared-but-empty ones.
func (t *SymbolTable) Count() int { return len(t.entries) }

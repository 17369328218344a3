package env

import "github.com/suderio/slisp/pkg/ast"

// shadowed records a SymbolTable entry's state before a Scope
// overwrote it, so Close can restore it exactly: Existed
// distinguishes "was entirely absent" from "was present with a nil
// (declared-empty) value."
type shadowed struct {
	value   ast.Expression
	existed bool
}

// Scope is a scoped mutation record over a SymbolTable (spec §3/§4.5):
// on Put it remembers the previous binding of each name it touches
// (once, on first touch); Close restores every touched name to its
// pre-Scope state. Go has no destructors, so callers must invoke
// Close explicitly — always under defer, the same discipline the
// teacher uses for its own scoped-restore pattern in
// parseTableLiteral's `defer func() { p.inTable = prevInTable }()`.
type Scope struct {
	table  *SymbolTable
	shadow map[string]shadowed
}

// NewScope opens a Scope over table. table is not copied; Put installs
// bindings directly into it.
func NewScope(table *SymbolTable) *Scope {
	return &Scope{table: table, shadow: make(map[string]shadowed)}
}

// Table returns the SymbolTable this Scope shadows, for read access
// that should see the scope's current overlay (e.g. a StackFrame's
// dynamic lookup falling through to the interpreter-wide table).
func (s *Scope) Table() *SymbolTable { return s.table }

// Put installs value under name in the underlying table, remembering
// the name's prior state on first touch so Close can restore it.
func (s *Scope) Put(name string, value ast.Expression) {
	if _, touched := s.shadow[name]; !touched {
		prev, existed := s.table.GetRef(name)
		s.shadow[name] = shadowed{value: prev, existed: existed}
	}
	s.table.Put(name, value)
}

// Close restores every name this Scope touched to its state on entry:
// names that existed are put back (including declared-empty ones);
// names that did not exist are deleted.
func (s *Scope) Close() {
	for name, prior := range s.shadow {
		if prior.existed {
			s.table.Put(name, prior.value)
		} else {
			s.table.Delete(name)
		}
	}
	s.shadow = make(map[string]shadowed)
}

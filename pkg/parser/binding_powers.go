// Package parser implements the Slisp parser: a token stream becomes
// a single top-level Sexp wrapped under the configured default-
// function symbol, with infix-to-prefix rewriting applied to any
// parsed sequence of forms that contains a registered infix symbol at
// an interior position (spec C2).
package parser

// InfixTable holds the interpreter's registered infix symbols and
// their precedence (spec §4.2 / §4.7: "an interpreter-wide settings
// object... infix registrations with precedence"). It is shared by
// reference with the interpreter settings so that a stdlib builtin
// registering or unregistering an infix symbol at runtime changes how
// input parsed after the change is folded; input already parsed is
// not affected.
type InfixTable struct {
	precedence map[string]int
}

// NewInfixTable returns an InfixTable seeded with Slisp's default
// arithmetic/comparison operators. Every entry is left-associative
// (equal precedence folds left-to-right), per spec §4.2.
func NewInfixTable() *InfixTable {
	t := &InfixTable{precedence: make(map[string]int)}
	t.Register("*", 300)
	t.Register("/", 300)
	t.Register("%", 300)
	t.Register("+", 200)
	t.Register("-", 200)
	t.Register("=", 150)
	t.Register("<>", 150)
	t.Register("<", 150)
	t.Register(">", 150)
	t.Register("<=", 150)
	t.Register(">=", 150)
	t.Register("&&", 140)
	t.Register("||", 130)
	return t
}

// Register adds or replaces an infix symbol's precedence.
func (t *InfixTable) Register(name string, precedence int) {
	t.precedence[name] = precedence
}

// Unregister removes a symbol from the infix table; it subsequently
// parses as an ordinary prefix call head.
func (t *InfixTable) Unregister(name string) {
	delete(t.precedence, name)
}

// Lookup reports a symbol's precedence and whether it is registered.
func (t *InfixTable) Lookup(name string) (int, bool) {
	p, ok := t.precedence[name]
	return p, ok
}

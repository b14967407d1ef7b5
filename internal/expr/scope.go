package expr

import "github.com/zclconf/go-cty/cty"

// Scope is one frame of the lexical scope chain. Frames link to their parent,
// so the chain is an arena of per-depth frames with upward lookup rather than
// a copied list. The variables map is held by reference: the evaluator keeps
// appending a node's own bindings to its frame while processing that node,
// which is what makes earlier keys visible to later ones.
type Scope struct {
	parent *Scope
	vars   map[string]cty.Value
}

// NewScope returns an empty root frame.
func NewScope() *Scope {
	return &Scope{vars: map[string]cty.Value{}}
}

// Child returns a new innermost frame over the given bindings. The map is
// aliased, not copied.
func (s *Scope) Child(vars map[string]cty.Value) *Scope {
	if vars == nil {
		vars = map[string]cty.Value{}
	}
	return &Scope{parent: s, vars: vars}
}

// Lookup resolves a name against the chain, innermost frame first. The first
// binding found wins; an inner frame therefore shadows any outer one.
func (s *Scope) Lookup(name string) (cty.Value, bool) {
	for frame := s; frame != nil; frame = frame.parent {
		if v, ok := frame.vars[name]; ok {
			return v, true
		}
	}
	return cty.NilVal, false
}

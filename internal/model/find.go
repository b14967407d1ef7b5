package model

import (
	"github.com/vk/physim/internal/expr"
	"github.com/zclconf/go-cty/cty"
)

// FindByID searches the tree depth-first, pre-order, for a node whose _id
// entry equals id. The node itself is checked before its children, and
// children are visited in key order with the first match winning. The search
// is pure: no evaluation, no scope machinery, no mutation.
func FindByID(n *Node, id cty.Value) (*Node, bool) {
	if n == nil {
		return nil, false
	}
	if marker, ok := n.Get(KeyID); ok {
		if v, ok := literalValue(marker); ok && v.RawEquals(id) {
			return n, true
		}
	}
	for _, key := range n.Keys() {
		child, ok := n.Child(key)
		if !ok {
			continue
		}
		if found, ok := FindByID(child, id); ok {
			return found, true
		}
	}
	return nil, false
}

// literalValue unwraps an entry to a raw cty value when it is literal-ish.
func literalValue(v Value) (cty.Value, bool) {
	switch v := v.(type) {
	case cty.Value:
		return v, true
	case *expr.Literal:
		return v.Value, true
	}
	return cty.NilVal, false
}

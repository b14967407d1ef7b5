// Package model defines the hierarchical model tree handed to the evaluator:
// an ordered mapping from identifiers to literals, unevaluated expressions,
// expression sequences, or nested sub-models. Key order is processing order
// and is preserved exactly.
package model

import (
	"fmt"

	"github.com/vk/physim/internal/expr"
	"github.com/zclconf/go-cty/cty"
)

// Value is the content of one tree entry. The allowed dynamic types are
// closed: cty.Value (literal), expr.Expr (unevaluated formula), []expr.Expr
// (sequence of formulas), or *Node (sub-model).
type Value any

// Node is one level of the model tree. It behaves as an ordered map:
// iteration follows insertion order, and overwriting a key keeps its
// original position. Nodes are treated as immutable once handed to the
// evaluator.
type Node struct {
	keys     []string
	children map[string]Value
}

// NewNode returns an empty tree node.
func NewNode() *Node {
	return &Node{children: map[string]Value{}}
}

// Set binds a key, appending it to the key order if new. It returns the node
// for chained construction in tests and builders.
func (n *Node) Set(key string, v Value) *Node {
	if _, exists := n.children[key]; !exists {
		n.keys = append(n.keys, key)
	}
	n.children[key] = v
	return n
}

// Get returns the value bound to key.
func (n *Node) Get(key string) (Value, bool) {
	v, ok := n.children[key]
	return v, ok
}

// Has reports whether key is present.
func (n *Node) Has(key string) bool {
	_, ok := n.children[key]
	return ok
}

// Keys returns the keys in insertion order. The returned slice is shared;
// callers must not modify it.
func (n *Node) Keys() []string {
	return n.keys
}

// Len returns the number of entries.
func (n *Node) Len() int {
	return len(n.keys)
}

// Child returns the sub-node bound to key, if the value is a tree node.
func (n *Node) Child(key string) (*Node, bool) {
	child, ok := n.children[key].(*Node)
	return child, ok && child != nil
}

func (n *Node) String() string {
	return fmt.Sprintf("model.Node(%d keys)", len(n.keys))
}

// JoinPath extends a dotted path by one key. The root has the empty path, so
// its children are addressed by their bare keys.
func JoinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

// BoolValue extracts a boolean from a literal-ish entry value, accepting
// either a raw cty bool or a literal expression wrapping one.
func BoolValue(v Value) (bool, bool) {
	switch v := v.(type) {
	case cty.Value:
		if v.Type() == cty.Bool && v.IsKnown() && !v.IsNull() {
			return v.True(), true
		}
	case *expr.Literal:
		return BoolValue(v.Value)
	}
	return false, false
}

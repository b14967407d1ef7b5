package model

import (
	"github.com/vk/physim/internal/expr"
	"github.com/zclconf/go-cty/cty"
)

// Reserved keys. They are consumed by the evaluator's special-case rules and
// stripped from normal output; they never appear as plain fields.
const (
	// KeyClass tags a sub-node with its model class; ClassParameter enables
	// the inline parameter collapse.
	KeyClass = "class"
	// KeyValue marks a node as a single collapsible parameter value.
	KeyValue = "value"
	// KeyConstructor names the factory a node is instantiated with.
	KeyConstructor = "_constructor"
	// KeyPath requests that the node's dotted path be passed to its factory.
	KeyPath = "_path"
	// KeyInit and KeyStart are initial-value bookkeeping owned by upstream
	// stages; here they only participate in constructor conflict checks.
	KeyInit  = "init"
	KeyStart = "start"
	// KeyID carries an identity marker for FindByID.
	KeyID = "_id"
)

// ClassParameter is the class name that triggers inline parameter collapse
// for a sub-node carrying a nested value.
const ClassParameter = "Par"

var reservedKeys = map[string]struct{}{
	KeyClass:       {},
	KeyValue:       {},
	KeyConstructor: {},
	KeyPath:        {},
	KeyInit:        {},
	KeyStart:       {},
	KeyID:          {},
}

// IsReservedKey reports whether key is one of the bookkeeping keys.
func IsReservedKey(key string) bool {
	_, ok := reservedKeys[key]
	return ok
}

// Kind classifies a node for the evaluator's dispatch, decided once per node
// instead of by repeated key probing.
type Kind int

const (
	// KindMapping is a plain sub-model: evaluate fields, return the mapping.
	KindMapping Kind = iota
	// KindParameterValue collapses to the scalar under its value key.
	KindParameterValue
	// KindConstructorDirective instantiates an object via a registered factory.
	KindConstructorDirective
)

func (k Kind) String() string {
	switch k {
	case KindMapping:
		return "mapping"
	case KindParameterValue:
		return "parameter"
	case KindConstructorDirective:
		return "constructor"
	default:
		return "unknown"
	}
}

// Classify decides the node's kind. A constructor directive takes precedence
// over a value key; the evaluator rejects that combination as a conflict
// before acting on it.
func (n *Node) Classify() Kind {
	if n.Has(KeyConstructor) {
		return KindConstructorDirective
	}
	if n.Has(KeyValue) {
		return KindParameterValue
	}
	return KindMapping
}

// IsParameterClass reports whether a sub-node is declared class Par with a
// nested value, the shape that collapses inline without a recursive call.
func (n *Node) IsParameterClass() bool {
	if !n.Has(KeyValue) {
		return false
	}
	class, ok := n.Get(KeyClass)
	if !ok {
		return false
	}
	return classNameEquals(class, ClassParameter)
}

// classNameEquals matches a class entry against a class name. Front-ends may
// record the class as a string literal or leave it as a bare identifier.
func classNameEquals(v Value, name string) bool {
	switch v := v.(type) {
	case cty.Value:
		return v.Type() == cty.String && v.IsKnown() && !v.IsNull() && v.AsString() == name
	case *expr.Literal:
		return classNameEquals(v.Value, name)
	case *expr.Ident:
		return v.Name == name
	}
	return false
}

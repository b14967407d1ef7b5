package model

import (
	"errors"
	"fmt"

	"github.com/vk/physim/internal/expr"
	"github.com/zclconf/go-cty/cty"
)

// ConstructorSpec is the decoded form of a constructor directive: which
// factory to call and whether the node's dotted path is passed along.
type ConstructorSpec struct {
	// Ref references the factory identifier. After substitution it must
	// resolve to a name known to the component registry.
	Ref expr.Expr
	// WithPath requests a path keyword argument on the factory call.
	WithPath bool
}

// ConstructorConflicts lists the sibling keys that may not co-occur with a
// constructor directive. A non-empty result is a conflict the evaluator
// reports before touching the factory.
func (n *Node) ConstructorConflicts() []string {
	var conflicts []string
	for _, key := range []string{KeyValue, KeyInit, KeyStart} {
		if n.Has(key) {
			conflicts = append(conflicts, key)
		}
	}
	return conflicts
}

// ConstructorSpec decodes the node's constructor directive. The directive
// value is either a direct reference (with an optional sibling _path flag)
// or a descriptor sub-node carrying the reference under value and its own
// _path flag. When both flags are present the descriptor's nested flag wins:
// it is the more specific declaration.
func (n *Node) ConstructorSpec() (*ConstructorSpec, error) {
	raw, ok := n.Get(KeyConstructor)
	if !ok {
		return nil, errors.New("node has no constructor directive")
	}

	spec := &ConstructorSpec{}
	if flag, ok := n.Get(KeyPath); ok {
		b, valid := BoolValue(flag)
		if !valid {
			return nil, errors.New("_path flag must be a boolean")
		}
		spec.WithPath = b
	}

	switch raw := raw.(type) {
	case *Node:
		ref, ok := raw.Get(KeyValue)
		if !ok {
			return nil, errors.New("constructor descriptor has no value entry")
		}
		refExpr, err := asRefExpr(ref)
		if err != nil {
			return nil, err
		}
		spec.Ref = refExpr
		if flag, ok := raw.Get(KeyPath); ok {
			b, valid := BoolValue(flag)
			if !valid {
				return nil, errors.New("_path flag must be a boolean")
			}
			spec.WithPath = b
		}
	default:
		refExpr, err := asRefExpr(raw)
		if err != nil {
			return nil, err
		}
		spec.Ref = refExpr
	}
	return spec, nil
}

func asRefExpr(v Value) (expr.Expr, error) {
	switch v := v.(type) {
	case expr.Expr:
		return v, nil
	case cty.Value:
		if v.Type() == cty.String && v.IsKnown() && !v.IsNull() {
			return expr.Var(v.AsString()), nil
		}
	}
	return nil, fmt.Errorf("constructor reference must be an identifier, got %T", v)
}

package expr

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Namespace is the execution context expressions run against. It resolves
// the identifiers and function names a formula references after
// substitution. Implementations are external to this package; the evaluator
// only needs lookup and call, both of which may fail.
type Namespace interface {
	// Variable resolves a free identifier to a value.
	Variable(name string) (cty.Value, bool)
	// Call invokes a named function with already-evaluated arguments.
	Call(name string, args []cty.Value) (cty.Value, error)
}

// Evaluate runs a (typically already substituted) expression against the
// namespace. Identifiers still unresolved at this point must be supplied by
// the namespace; a miss is an error.
func Evaluate(e Expr, ns Namespace) (cty.Value, error) {
	switch e := e.(type) {
	case *Literal:
		return e.Value, nil

	case *Ident:
		v, ok := ns.Variable(e.Name)
		if !ok {
			return cty.NilVal, fmt.Errorf("unknown identifier %q", e.Name)
		}
		return v, nil

	case *Unary:
		x, err := Evaluate(e.X, ns)
		if err != nil {
			return cty.NilVal, err
		}
		v, err := e.Op.Impl.Call([]cty.Value{x})
		if err != nil {
			return cty.NilVal, fmt.Errorf("unary operation failed: %w", err)
		}
		return v, nil

	case *Binary:
		lhs, err := Evaluate(e.LHS, ns)
		if err != nil {
			return cty.NilVal, err
		}
		rhs, err := Evaluate(e.RHS, ns)
		if err != nil {
			return cty.NilVal, err
		}
		v, err := e.Op.Impl.Call([]cty.Value{lhs, rhs})
		if err != nil {
			return cty.NilVal, fmt.Errorf("binary operation failed: %w", err)
		}
		return v, nil

	case *Call:
		args := make([]cty.Value, len(e.Args))
		for i, a := range e.Args {
			v, err := Evaluate(a, ns)
			if err != nil {
				return cty.NilVal, err
			}
			args[i] = v
		}
		return ns.Call(e.Name, args)

	case *Index:
		coll, err := Evaluate(e.Coll, ns)
		if err != nil {
			return cty.NilVal, err
		}
		key, err := Evaluate(e.Key, ns)
		if err != nil {
			return cty.NilVal, err
		}
		v, diags := hcl.Index(coll, key, nil)
		if diags.HasErrors() {
			return cty.NilVal, diags
		}
		return v, nil

	case *Attr:
		x, err := Evaluate(e.X, ns)
		if err != nil {
			return cty.NilVal, err
		}
		v, diags := hcl.GetAttr(x, e.Name, nil)
		if diags.HasErrors() {
			return cty.NilVal, diags
		}
		return v, nil

	case *Tuple:
		if len(e.Elems) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, len(e.Elems))
		for i, el := range e.Elems {
			v, err := Evaluate(el, ns)
			if err != nil {
				return cty.NilVal, err
			}
			elems[i] = v
		}
		return cty.TupleVal(elems), nil

	default:
		panic(fmt.Sprintf("expr: unknown expression node %T", e))
	}
}

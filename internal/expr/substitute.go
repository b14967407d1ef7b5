package expr

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// Substitute rewrites an expression against a scope chain. Every identifier
// bound in the chain is replaced by its value (innermost frame first);
// unbound identifiers pass through unchanged for the execution namespace to
// resolve later. Composite nodes are rebuilt with the same shape over their
// substituted operands. The input is never mutated and the rewrite never
// fails.
func Substitute(e Expr, scope *Scope) Expr {
	switch e := e.(type) {
	case *Literal:
		return e
	case *Ident:
		if v, ok := scope.Lookup(e.Name); ok {
			return &Literal{Value: v}
		}
		return e
	case *Unary:
		return &Unary{Op: e.Op, X: Substitute(e.X, scope)}
	case *Binary:
		return &Binary{Op: e.Op, LHS: Substitute(e.LHS, scope), RHS: Substitute(e.RHS, scope)}
	case *Call:
		args := make([]Expr, len(e.Args))
		for i, a := range e.Args {
			args[i] = Substitute(a, scope)
		}
		return &Call{Name: e.Name, Args: args}
	case *Index:
		return &Index{Coll: Substitute(e.Coll, scope), Key: Substitute(e.Key, scope)}
	case *Attr:
		return &Attr{X: Substitute(e.X, scope), Name: e.Name}
	case *Tuple:
		elems := make([]Expr, len(e.Elems))
		for i, el := range e.Elems {
			elems[i] = Substitute(el, scope)
		}
		return &Tuple{Elems: elems}
	default:
		panic(fmt.Sprintf("expr: unknown expression node %T", e))
	}
}

// SubstituteList handles a sequence-of-expressions leaf: each element is
// substituted and then evaluated immediately, yielding a tuple of values
// rather than a rewritten sequence. Single-expression leaves stay symbolic
// until their own evaluation step; sequences do not. That asymmetry is
// intentional and relied on by the model evaluator. Constructed objects can
// never appear here: object construction only happens through constructor
// directives on tree nodes, which are not expressions.
func SubstituteList(list []Expr, scope *Scope, ns Namespace) (cty.Value, error) {
	if len(list) == 0 {
		return cty.EmptyTupleVal, nil
	}
	vals := make([]cty.Value, len(list))
	for i, e := range list {
		v, err := Evaluate(Substitute(e, scope), ns)
		if err != nil {
			return cty.NilVal, fmt.Errorf("element %d: %w", i, err)
		}
		vals[i] = v
	}
	return cty.TupleVal(vals), nil
}

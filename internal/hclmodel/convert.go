package hclmodel

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/physim/internal/expr"
)

// convertExpr translates an hclsyntax expression into the engine's
// expression form. The switch is exhaustive over the syntax forms model
// files may use; anything else is rejected with its source range.
func convertExpr(e hclsyntax.Expression) (expr.Expr, error) {
	switch e := e.(type) {
	case *hclsyntax.LiteralValueExpr:
		return expr.Lit(e.Val), nil

	case *hclsyntax.ScopeTraversalExpr:
		return convertTraversal(nil, e.Traversal)

	case *hclsyntax.RelativeTraversalExpr:
		base, err := convertExpr(e.Source)
		if err != nil {
			return nil, err
		}
		return convertTraversal(base, e.Traversal)

	case *hclsyntax.FunctionCallExpr:
		args := make([]expr.Expr, len(e.Args))
		for i, a := range e.Args {
			arg, err := convertExpr(a)
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		return &expr.Call{Name: e.Name, Args: args}, nil

	case *hclsyntax.BinaryOpExpr:
		lhs, err := convertExpr(e.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := convertExpr(e.RHS)
		if err != nil {
			return nil, err
		}
		return &expr.Binary{Op: e.Op, LHS: lhs, RHS: rhs}, nil

	case *hclsyntax.UnaryOpExpr:
		x, err := convertExpr(e.Val)
		if err != nil {
			return nil, err
		}
		return &expr.Unary{Op: e.Op, X: x}, nil

	case *hclsyntax.TupleConsExpr:
		elems := make([]expr.Expr, len(e.Exprs))
		for i, el := range e.Exprs {
			elem, err := convertExpr(el)
			if err != nil {
				return nil, err
			}
			elems[i] = elem
		}
		return &expr.Tuple{Elems: elems}, nil

	case *hclsyntax.IndexExpr:
		coll, err := convertExpr(e.Collection)
		if err != nil {
			return nil, err
		}
		key, err := convertExpr(e.Key)
		if err != nil {
			return nil, err
		}
		return &expr.Index{Coll: coll, Key: key}, nil

	case *hclsyntax.ParenthesesExpr:
		return convertExpr(e.Expression)

	case *hclsyntax.TemplateExpr:
		// Quoted strings parse as single-part templates. Interpolation has
		// no meaning in a model file.
		if len(e.Parts) == 1 {
			if lit, ok := e.Parts[0].(*hclsyntax.LiteralValueExpr); ok {
				return expr.Lit(lit.Val), nil
			}
		}
		return nil, fmt.Errorf("%s: string interpolation is not supported in model files", e.Range())

	default:
		return nil, fmt.Errorf("%s: unsupported expression form %T", e.Range(), e)
	}
}

// convertTraversal folds a traversal into nested attribute/index selections
// over an optional base expression.
func convertTraversal(base expr.Expr, traversal hcl.Traversal) (expr.Expr, error) {
	for _, step := range traversal {
		switch step := step.(type) {
		case hcl.TraverseRoot:
			base = expr.Var(step.Name)
		case hcl.TraverseAttr:
			base = &expr.Attr{X: base, Name: step.Name}
		case hcl.TraverseIndex:
			base = &expr.Index{Coll: base, Key: expr.Lit(step.Key)}
		default:
			return nil, fmt.Errorf("%s: unsupported traversal step %T", step.SourceRange(), step)
		}
	}
	if base == nil {
		return nil, fmt.Errorf("empty traversal")
	}
	return base, nil
}

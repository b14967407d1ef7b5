// Package expr defines the expression trees that appear as leaves of a model
// tree, the scope chain they are substituted against, and their evaluation
// against an external namespace.
package expr

import (
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// Expr is an unevaluated formula node. The set of implementations is closed;
// Substitute and Evaluate switch exhaustively over it.
type Expr interface {
	exprNode()
}

// Literal is an already-known value. Substitution produces these in place of
// bound identifiers.
type Literal struct {
	Value cty.Value
}

// Ident references a name resolved either from the enclosing scope chain
// (during substitution) or from the execution namespace (during evaluation).
type Ident struct {
	Name string
}

// Unary applies a single-operand operator, e.g. negation.
type Unary struct {
	Op *hclsyntax.Operation
	X  Expr
}

// Binary applies a two-operand operator. Operator semantics are exactly
// hclsyntax's: the operation's function implementation is called directly.
type Binary struct {
	Op       *hclsyntax.Operation
	LHS, RHS Expr
}

// Call invokes a named function from the execution namespace.
type Call struct {
	Name string
	Args []Expr
}

// Index selects an element of a collection value.
type Index struct {
	Coll Expr
	Key  Expr
}

// Attr selects a named attribute of an object value.
type Attr struct {
	X    Expr
	Name string
}

// Tuple constructs a tuple value from its elements.
type Tuple struct {
	Elems []Expr
}

func (*Literal) exprNode() {}
func (*Ident) exprNode()   {}
func (*Unary) exprNode()   {}
func (*Binary) exprNode()  {}
func (*Call) exprNode()    {}
func (*Index) exprNode()   {}
func (*Attr) exprNode()    {}
func (*Tuple) exprNode()   {}

// Lit is a shorthand constructor for a literal expression.
func Lit(v cty.Value) *Literal { return &Literal{Value: v} }

// Var is a shorthand constructor for an identifier expression.
func Var(name string) *Ident { return &Ident{Name: name} }

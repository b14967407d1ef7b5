// Package namespace implements the execution context model expressions run
// against: a flat table of named constants and callable functions. The
// evaluator only ever looks names up and calls functions; both can fail and
// the failure surfaces verbatim.
package namespace

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// Namespace resolves the identifiers and function names left free in model
// expressions after scope substitution.
type Namespace struct {
	vars  map[string]cty.Value
	funcs map[string]function.Function
}

// New returns an empty namespace.
func New() *Namespace {
	return &Namespace{
		vars:  map[string]cty.Value{},
		funcs: map[string]function.Function{},
	}
}

// DefineVar binds a named constant, replacing any previous binding.
func (ns *Namespace) DefineVar(name string, v cty.Value) {
	ns.vars[name] = v
}

// DefineFunc binds a named function, replacing any previous binding.
func (ns *Namespace) DefineFunc(name string, fn function.Function) {
	ns.funcs[name] = fn
}

// Variable implements expr.Namespace.
func (ns *Namespace) Variable(name string) (cty.Value, bool) {
	v, ok := ns.vars[name]
	return v, ok
}

// Call implements expr.Namespace.
func (ns *Namespace) Call(name string, args []cty.Value) (cty.Value, error) {
	fn, ok := ns.funcs[name]
	if !ok {
		return cty.NilVal, fmt.Errorf("unknown function %q", name)
	}
	v, err := fn.Call(args)
	if err != nil {
		return cty.NilVal, fmt.Errorf("call to %s failed: %w", name, err)
	}
	return v, nil
}

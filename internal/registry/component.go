package registry

import (
	"context"
	"fmt"

	"github.com/vk/physim/internal/measure"
	"github.com/zclconf/go-cty/cty"
)

// Factory builds one physical component from an evaluated constructor call.
// Factories are opaque to the evaluator: they may allocate resources or
// register themselves externally, and their return value is never expanded
// further.
type Factory func(ctx context.Context, call *ComponentCall) (any, error)

// RegisteredComponent holds the compiled Go parts of a component type.
type RegisteredComponent struct {
	New Factory
}

// ComponentCall carries the keyword arguments of one instantiation: the
// evaluated entries of the directive's node, in declaration order, plus the
// node's dotted path when the directive asked for it.
type ComponentCall struct {
	// Path is the instantiated node's dotted path. Only set when the
	// directive carried a _path request.
	Path    string
	HasPath bool

	order []string
	args  map[string]any
}

// NewComponentCall returns an empty call for the evaluator to fill.
func NewComponentCall() *ComponentCall {
	return &ComponentCall{args: map[string]any{}}
}

// SetArg appends a keyword argument, keeping first-set order.
func (c *ComponentCall) SetArg(name string, v any) {
	if _, exists := c.args[name]; !exists {
		c.order = append(c.order, name)
	}
	c.args[name] = v
}

// ArgNames returns the argument names in declaration order.
func (c *ComponentCall) ArgNames() []string {
	return c.order
}

// Arg returns a raw keyword argument. Values are cty.Value for evaluated
// leaves, or whatever a nested evaluation produced (a mapping or an already
// constructed sub-component).
func (c *ComponentCall) Arg(name string) (any, bool) {
	v, ok := c.args[name]
	return v, ok
}

// Value returns a keyword argument that must be a cty value.
func (c *ComponentCall) Value(name string) (cty.Value, error) {
	raw, ok := c.args[name]
	if !ok {
		return cty.NilVal, fmt.Errorf("missing argument %q", name)
	}
	v, ok := raw.(cty.Value)
	if !ok {
		return cty.NilVal, fmt.Errorf("argument %q is not a plain value (got %T)", name, raw)
	}
	return v, nil
}

// Number returns a numeric keyword argument with any unit or uncertainty
// wrapping stripped.
func (c *ComponentCall) Number(name string) (float64, error) {
	v, err := c.Value(name)
	if err != nil {
		return 0, err
	}
	f, err := measure.Magnitude(v)
	if err != nil {
		return 0, fmt.Errorf("argument %q: %w", name, err)
	}
	return f, nil
}

// String returns a string keyword argument.
func (c *ComponentCall) String(name string) (string, error) {
	v, err := c.Value(name)
	if err != nil {
		return "", err
	}
	if v.Type() != cty.String || !v.IsKnown() || v.IsNull() {
		return "", fmt.Errorf("argument %q is not a string", name)
	}
	return v.AsString(), nil
}

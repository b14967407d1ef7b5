package eval

import (
	"context"
	"fmt"

	"github.com/vk/physim/internal/ctxlog"
	"github.com/vk/physim/internal/expr"
	"github.com/vk/physim/internal/model"
	"github.com/vk/physim/internal/registry"
	"github.com/vk/physim/internal/state"
	"github.com/zclconf/go-cty/cty"
)

// Evaluator drives one model tree through substitution, evaluation,
// instantiation and state binding. It is configured once and reusable; each
// Run is an independent pass with its own vector and flags.
type Evaluator struct {
	ns  expr.Namespace
	reg *registry.Registry
}

// New creates an evaluator over the given execution namespace and component
// registry.
func New(ns expr.Namespace, reg *registry.Registry) *Evaluator {
	return &Evaluator{ns: ns, reg: reg}
}

// evaluateNode applies the per-node algorithm: constructor detection,
// parameter collapse, the ordered field pass, then finalization as either a
// mapping or a factory call. Any failure propagates immediately and aborts
// the remainder of the pass.
func (e *Evaluator) evaluateNode(ctx context.Context, node *model.Node, binder *state.Binder, scope *expr.Scope, path string) (any, error) {
	logger := ctxlog.FromContext(ctx)
	kind := node.Classify()
	logger.Debug("Evaluating node.", "path", displayPath(path), "kind", kind.String(), "keys", node.Len())

	// Constructor detection. Conflicting siblings are rejected before any
	// evaluation happens, so a broken directive never runs its factory.
	var ctor *model.ConstructorSpec
	if kind == model.KindConstructorDirective {
		if conflicts := node.ConstructorConflicts(); len(conflicts) > 0 {
			return nil, &ConflictError{Path: path, Keys: conflicts}
		}
		spec, err := node.ConstructorSpec()
		if err != nil {
			return nil, &EvaluationError{Path: path, Err: err}
		}
		ctor = spec
	}

	// vars is this node's scope frame. It is aliased by nodeScope and grows
	// as fields evaluate, which is exactly what lets later keys reference
	// earlier ones while forward references stay unresolved.
	vars := map[string]cty.Value{}
	nodeScope := scope.Child(vars)

	// Parameter collapse: the node is a single value; siblings are ignored.
	if kind == model.KindParameterValue {
		raw, _ := node.Get(model.KeyValue)
		v, err := e.evalLeaf(raw, nodeScope)
		if err != nil {
			return nil, &EvaluationError{Path: path, Err: err}
		}
		return v, nil
	}

	out := NewMapping()

	// Field pass, in the node's original key order.
	for _, key := range node.Keys() {
		if model.IsReservedKey(key) {
			continue
		}
		raw, _ := node.Get(key)
		childPath := model.JoinPath(path, key)

		child, ok := raw.(*model.Node)
		switch {
		case ok && child.IsParameterClass():
			// Inline Par collapse: evaluated against this node's scope, no
			// recursive call.
			rawValue, _ := child.Get(model.KeyValue)
			v, err := e.evalLeaf(rawValue, nodeScope)
			if err != nil {
				return nil, &EvaluationError{Path: childPath, Err: err}
			}
			if err := e.finishScalar(out, vars, binder, key, childPath, v); err != nil {
				return nil, err
			}

		case ok:
			result, err := e.evaluateNode(ctx, child, binder, nodeScope, childPath)
			if err != nil {
				return nil, err
			}
			if v, isScalar := result.(cty.Value); isScalar {
				// A sub-node that collapsed to a parameter value behaves
				// like a plain leaf from here on.
				if err := e.finishScalar(out, vars, binder, key, childPath, v); err != nil {
					return nil, err
				}
			} else {
				out.Set(key, result)
			}

		default:
			v, err := e.evalLeaf(raw, nodeScope)
			if err != nil {
				return nil, &EvaluationError{Path: childPath, Err: err}
			}
			if err := e.finishScalar(out, vars, binder, key, childPath, v); err != nil {
				return nil, err
			}
		}
	}

	if ctor == nil {
		return out, nil
	}
	return e.construct(ctx, ctor, out, nodeScope, path)
}

// evalLeaf substitutes and evaluates one leaf value. Sequences are
// substituted elementwise and evaluated immediately; single expressions are
// substituted then run; raw literals pass through.
func (e *Evaluator) evalLeaf(raw model.Value, scope *expr.Scope) (cty.Value, error) {
	switch raw := raw.(type) {
	case cty.Value:
		return raw, nil
	case []expr.Expr:
		return expr.SubstituteList(raw, scope, e.ns)
	case expr.Expr:
		return expr.Evaluate(expr.Substitute(raw, scope), e.ns)
	default:
		return cty.NilVal, fmt.Errorf("unsupported leaf value of type %T", raw)
	}
}

// finishScalar records an evaluated scalar: into the output mapping, into
// the node's scope frame for later siblings, and through the state binder
// for its dotted path.
func (e *Evaluator) finishScalar(out *Mapping, vars map[string]cty.Value, binder *state.Binder, key, childPath string, v cty.Value) error {
	out.Set(key, v)
	vars[key] = v
	return binder.Bind(childPath, v)
}

// construct finalizes a constructor directive: the accumulator entries
// become keyword arguments, the path is added only when requested, and the
// factory's result is returned opaquely.
func (e *Evaluator) construct(ctx context.Context, ctor *model.ConstructorSpec, out *Mapping, scope *expr.Scope, path string) (any, error) {
	logger := ctxlog.FromContext(ctx)

	name, err := e.constructorName(ctor.Ref, scope)
	if err != nil {
		return nil, &EvaluationError{Path: path, Err: err}
	}
	component, ok := e.reg.Component(name)
	if !ok {
		return nil, &EvaluationError{Path: path, Err: fmt.Errorf("unknown constructor %q", name)}
	}

	call := registry.NewComponentCall()
	for _, k := range out.Keys() {
		v, _ := out.Get(k)
		call.SetArg(k, v)
	}
	if ctor.WithPath {
		call.Path = path
		call.HasPath = true
	}

	logger.Debug("Calling component factory.", "constructor", name, "path", displayPath(path), "args", len(call.ArgNames()))
	obj, err := component.New(ctx, call)
	if err != nil {
		return nil, &EvaluationError{Path: path, Err: fmt.Errorf("constructor %s failed: %w", name, err)}
	}
	return obj, nil
}

// constructorName resolves a constructor reference to a registry name. The
// reference is substituted first, so a scope binding may redirect it to a
// factory name held as a string.
func (e *Evaluator) constructorName(ref expr.Expr, scope *expr.Scope) (string, error) {
	switch ref := expr.Substitute(ref, scope).(type) {
	case *expr.Ident:
		return ref.Name, nil
	case *expr.Literal:
		v := ref.Value
		if v.Type() == cty.String && v.IsKnown() && !v.IsNull() {
			return v.AsString(), nil
		}
		return "", fmt.Errorf("constructor reference must name a factory, got %s", v.Type().FriendlyName())
	default:
		return "", fmt.Errorf("constructor reference must be an identifier, got %T", ref)
	}
}

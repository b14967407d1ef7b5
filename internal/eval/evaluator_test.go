package eval

import (
	"context"
	"errors"
	"testing"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/physim/internal/expr"
	"github.com/vk/physim/internal/model"
	"github.com/vk/physim/internal/namespace"
	"github.com/vk/physim/internal/registry"
	"github.com/vk/physim/internal/state"
	"github.com/zclconf/go-cty/cty"
)

func emptyTable(t *testing.T) *state.Table {
	t.Helper()
	table, err := state.NewTable(nil)
	require.NoError(t, err)
	return table
}

func newEvaluator(reg *registry.Registry) *Evaluator {
	if reg == nil {
		reg = registry.New()
	}
	return New(namespace.Builtin(), reg)
}

func num(i int64) cty.Value { return cty.NumberIntVal(i) }

func TestFieldPassPreservesKeysAndOrder(t *testing.T) {
	tree := model.NewNode().
		Set("c", num(1)).
		Set("a", num(2)).
		Set("b", model.NewNode().Set("inner", num(3)))

	result, err := newEvaluator(nil).Run(context.Background(), tree, emptyTable(t))
	require.NoError(t, err)

	mapping, ok := result.Root.(*Mapping)
	require.True(t, ok)
	assert.Equal(t, []string{"c", "a", "b"}, mapping.Keys())

	sub, _ := mapping.Get("b")
	subMapping, ok := sub.(*Mapping)
	require.True(t, ok)
	assert.Equal(t, []string{"inner"}, subMapping.Keys())
}

func TestIdempotence(t *testing.T) {
	// A fully evaluated tree has only literal leaves; re-evaluating returns
	// the same keys and values.
	tree := model.NewNode().
		Set("a", num(5)).
		Set("b", cty.StringVal("done")).
		Set("sub", model.NewNode().Set("x", num(1)))

	ev := newEvaluator(nil)
	first, err := ev.Run(context.Background(), tree, emptyTable(t))
	require.NoError(t, err)
	second, err := ev.Run(context.Background(), tree, emptyTable(t))
	require.NoError(t, err)

	m1 := first.Root.(*Mapping)
	m2 := second.Root.(*Mapping)
	require.Equal(t, m1.Keys(), m2.Keys())
	for _, key := range m1.Keys() {
		v1, _ := m1.Get(key)
		v2, _ := m2.Get(key)
		if cv, ok := v1.(cty.Value); ok {
			assert.True(t, cv.RawEquals(v2.(cty.Value)), "key %s changed", key)
		}
	}
}

func TestAccumulatorVisibility(t *testing.T) {
	t.Run("later key references earlier key", func(t *testing.T) {
		tree := model.NewNode().
			Set("a", num(5)).
			Set("b", expr.Var("a"))

		result, err := newEvaluator(nil).Run(context.Background(), tree, emptyTable(t))
		require.NoError(t, err)
		b, _ := result.Root.(*Mapping).Get("b")
		assert.True(t, num(5).RawEquals(b.(cty.Value)))
	})

	t.Run("forward reference fails", func(t *testing.T) {
		tree := model.NewNode().
			Set("b", expr.Var("a")).
			Set("a", num(5))

		_, err := newEvaluator(nil).Run(context.Background(), tree, emptyTable(t))
		var evalErr *EvaluationError
		require.ErrorAs(t, err, &evalErr)
		assert.Equal(t, "b", evalErr.Path)
	})
}

func TestLexicalShadowing(t *testing.T) {
	// The inner node's own x shadows the outer x; the outer y remains
	// visible inside.
	tree := model.NewNode().
		Set("x", num(1)).
		Set("y", num(2)).
		Set("inner", model.NewNode().
			Set("x", num(10)).
			Set("sum", &expr.Binary{Op: hclsyntax.OpAdd, LHS: expr.Var("x"), RHS: expr.Var("y")}))

	result, err := newEvaluator(nil).Run(context.Background(), tree, emptyTable(t))
	require.NoError(t, err)

	inner, _ := result.Root.(*Mapping).Get("inner")
	sum, _ := inner.(*Mapping).Get("sum")
	assert.True(t, num(12).RawEquals(sum.(cty.Value)))
}

func TestParameterCollapse(t *testing.T) {
	t.Run("node with value key collapses to a scalar", func(t *testing.T) {
		tree := model.NewNode().
			Set("g", num(10)).
			Set("p", model.NewNode().
				Set(model.KeyValue, &expr.Binary{Op: hclsyntax.OpMultiply, LHS: expr.Var("g"), RHS: expr.Lit(num(2))}).
				Set("ignored", num(999)))

		result, err := newEvaluator(nil).Run(context.Background(), tree, emptyTable(t))
		require.NoError(t, err)
		p, _ := result.Root.(*Mapping).Get("p")
		assert.True(t, num(20).RawEquals(p.(cty.Value)))
	})

	t.Run("collapsed scalar is visible to later siblings", func(t *testing.T) {
		tree := model.NewNode().
			Set("p", model.NewNode().Set(model.KeyValue, num(4))).
			Set("q", expr.Var("p"))

		result, err := newEvaluator(nil).Run(context.Background(), tree, emptyTable(t))
		require.NoError(t, err)
		q, _ := result.Root.(*Mapping).Get("q")
		assert.True(t, num(4).RawEquals(q.(cty.Value)))
	})

	t.Run("class Par child collapses without recursion", func(t *testing.T) {
		tree := model.NewNode().
			Set("g", num(3)).
			Set("theta", model.NewNode().
				Set(model.KeyClass, cty.StringVal(model.ClassParameter)).
				Set(model.KeyValue, expr.Var("g")))

		result, err := newEvaluator(nil).Run(context.Background(), tree, emptyTable(t))
		require.NoError(t, err)
		theta, _ := result.Root.(*Mapping).Get("theta")
		assert.True(t, num(3).RawEquals(theta.(cty.Value)))
	})
}

func TestSequenceLeaf(t *testing.T) {
	tree := model.NewNode().
		Set("a", num(2)).
		Set("seq", []expr.Expr{
			expr.Var("a"),
			&expr.Binary{Op: hclsyntax.OpAdd, LHS: expr.Var("a"), RHS: expr.Lit(num(1))},
		})

	result, err := newEvaluator(nil).Run(context.Background(), tree, emptyTable(t))
	require.NoError(t, err)

	seq, _ := result.Root.(*Mapping).Get("seq")
	v := seq.(cty.Value)
	require.True(t, v.Type().IsTupleType())
	assert.True(t, num(2).RawEquals(v.Index(num(0))))
	assert.True(t, num(3).RawEquals(v.Index(num(1))))
}

// capturedCall records one factory invocation for assertions.
type capturedCall struct {
	path    string
	hasPath bool
	names   []string
	args    map[string]any
}

func captureRegistry(calls *[]capturedCall) *registry.Registry {
	reg := registry.New()
	reg.RegisterComponent("F", &registry.RegisteredComponent{
		New: func(ctx context.Context, call *registry.ComponentCall) (any, error) {
			rec := capturedCall{
				path:    call.Path,
				hasPath: call.HasPath,
				names:   append([]string(nil), call.ArgNames()...),
				args:    map[string]any{},
			}
			for _, n := range call.ArgNames() {
				v, _ := call.Arg(n)
				rec.args[n] = v
			}
			*calls = append(*calls, rec)
			return &rec, nil
		},
	})
	return reg
}

func TestConstructorDirective(t *testing.T) {
	t.Run("path argument only when requested", func(t *testing.T) {
		var calls []capturedCall
		tree := model.NewNode().
			Set("foo", model.NewNode().
				Set("bar", model.NewNode().
					Set(model.KeyConstructor, expr.Var("F")).
					Set(model.KeyPath, cty.True).
					Set("a", num(1)).
					Set("b", num(2))))

		result, err := New(namespace.Builtin(), captureRegistry(&calls)).
			Run(context.Background(), tree, emptyTable(t))
		require.NoError(t, err)

		require.Len(t, calls, 1)
		assert.True(t, calls[0].hasPath)
		assert.Equal(t, "foo.bar", calls[0].path)
		assert.Equal(t, []string{"a", "b"}, calls[0].names)
		assert.True(t, num(1).RawEquals(calls[0].args["a"].(cty.Value)))
		assert.True(t, num(2).RawEquals(calls[0].args["b"].(cty.Value)))

		// The constructed object is returned opaquely under its key.
		foo, _ := result.Root.(*Mapping).Get("foo")
		bar, ok := foo.(*Mapping).Get("bar")
		require.True(t, ok)
		_, isMapping := bar.(*Mapping)
		assert.False(t, isMapping)
	})

	t.Run("omitting _path omits the path argument", func(t *testing.T) {
		var calls []capturedCall
		tree := model.NewNode().
			Set("c", model.NewNode().
				Set(model.KeyConstructor, expr.Var("F")).
				Set("a", num(1)))

		_, err := New(namespace.Builtin(), captureRegistry(&calls)).
			Run(context.Background(), tree, emptyTable(t))
		require.NoError(t, err)
		require.Len(t, calls, 1)
		assert.False(t, calls[0].hasPath)
		assert.Empty(t, calls[0].path)
	})

	t.Run("conflict with init fails before the factory runs", func(t *testing.T) {
		var calls []capturedCall
		tree := model.NewNode().
			Set("c", model.NewNode().
				Set(model.KeyConstructor, expr.Var("F")).
				Set(model.KeyInit, num(1)))

		_, err := New(namespace.Builtin(), captureRegistry(&calls)).
			Run(context.Background(), tree, emptyTable(t))

		var conflict *ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "c", conflict.Path)
		assert.Equal(t, []string{model.KeyInit}, conflict.Keys)
		assert.Empty(t, calls)
	})

	t.Run("unknown constructor", func(t *testing.T) {
		tree := model.NewNode().
			Set("c", model.NewNode().Set(model.KeyConstructor, expr.Var("Nope")))

		_, err := newEvaluator(nil).Run(context.Background(), tree, emptyTable(t))
		var evalErr *EvaluationError
		require.ErrorAs(t, err, &evalErr)
		assert.Contains(t, err.Error(), "Nope")
	})

	t.Run("factory failure aborts the pass", func(t *testing.T) {
		reg := registry.New()
		reg.RegisterComponent("Boom", &registry.RegisteredComponent{
			New: func(ctx context.Context, call *registry.ComponentCall) (any, error) {
				return nil, errors.New("kaboom")
			},
		})
		tree := model.NewNode().
			Set("c", model.NewNode().Set(model.KeyConstructor, expr.Var("Boom")))

		_, err := New(namespace.Builtin(), reg).Run(context.Background(), tree, emptyTable(t))
		var evalErr *EvaluationError
		require.ErrorAs(t, err, &evalErr)
		assert.Equal(t, "c", evalErr.Path)
	})
}

func TestStateBinding(t *testing.T) {
	table := func(t *testing.T) *state.Table {
		tbl, err := state.NewTable([]state.Descriptor{
			{Name: "x.y", Start: 1, Length: 2},
			{Name: "z", Start: 3, Length: 1},
		})
		require.NoError(t, err)
		return tbl
	}

	t.Run("leaves fill their declared slots", func(t *testing.T) {
		tree := model.NewNode().
			Set("x", model.NewNode().
				Set("y", []expr.Expr{expr.Lit(cty.NumberFloatVal(0.1)), expr.Lit(cty.NumberFloatVal(0))})).
			Set("z", cty.NumberFloatVal(7))

		result, err := newEvaluator(nil).Run(context.Background(), tree, table(t))
		require.NoError(t, err)
		assert.Equal(t, []float64{0.1, 0, 7}, result.Vector)
		assert.Equal(t, []bool{true, true}, result.Found)
	})

	t.Run("length mismatch aborts the traversal", func(t *testing.T) {
		tree := model.NewNode().
			Set("x", model.NewNode().Set("y", cty.NumberFloatVal(1))).
			Set("z", cty.NumberFloatVal(7))

		_, err := newEvaluator(nil).Run(context.Background(), tree, table(t))
		var mismatch *state.LengthMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, "x.y", mismatch.Name)
		assert.Equal(t, 2, mismatch.Declared)
		assert.Equal(t, 1, mismatch.Actual)
	})

	t.Run("unreached states aggregate into one error", func(t *testing.T) {
		tree := model.NewNode().Set("unrelated", num(1))

		_, err := newEvaluator(nil).Run(context.Background(), tree, table(t))
		var missing *state.MissingStateError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, []string{"x.y", "z"}, missing.Names)
	})

	t.Run("collapsed Par child binds at its path", func(t *testing.T) {
		tree := model.NewNode().
			Set("x", model.NewNode().
				Set("y", model.NewNode().
					Set(model.KeyClass, cty.StringVal(model.ClassParameter)).
					Set(model.KeyValue, []expr.Expr{expr.Lit(cty.NumberFloatVal(1)), expr.Lit(cty.NumberFloatVal(2))}))).
			Set("z", cty.NumberFloatVal(3))

		result, err := newEvaluator(nil).Run(context.Background(), tree, table(t))
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 2, 3}, result.Vector)
	})
}

func TestRootParameterCollapse(t *testing.T) {
	tree := model.NewNode().Set(model.KeyValue, num(42))
	result, err := newEvaluator(nil).Run(context.Background(), tree, emptyTable(t))
	require.NoError(t, err)
	assert.True(t, num(42).RawEquals(result.Root.(cty.Value)))
}

func TestReservedKeysStrippedFromOutput(t *testing.T) {
	tree := model.NewNode().
		Set(model.KeyID, num(7)).
		Set("a", num(1)).
		Set(model.KeyInit, num(0)).
		Set(model.KeyStart, num(0))

	result, err := newEvaluator(nil).Run(context.Background(), tree, emptyTable(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, result.Root.(*Mapping).Keys())
}

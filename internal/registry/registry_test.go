package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/physim/internal/measure"
	"github.com/zclconf/go-cty/cty"
)

func nopFactory(ctx context.Context, call *ComponentCall) (any, error) {
	return struct{}{}, nil
}

func TestRegisterComponent(t *testing.T) {
	r := New()
	r.RegisterComponent("Spring", &RegisteredComponent{New: nopFactory})

	c, ok := r.Component("Spring")
	require.True(t, ok)
	assert.NotNil(t, c.New)

	_, ok = r.Component("Damper")
	assert.False(t, ok)

	t.Run("duplicate name panics", func(t *testing.T) {
		assert.Panics(t, func() {
			r.RegisterComponent("Spring", &RegisteredComponent{New: nopFactory})
		})
	})

	t.Run("missing factory panics", func(t *testing.T) {
		assert.Panics(t, func() {
			r.RegisterComponent("Broken", &RegisteredComponent{})
		})
	})
}

func TestComponentCall(t *testing.T) {
	call := NewComponentCall()
	call.SetArg("k", cty.NumberFloatVal(100))
	call.SetArg("label", cty.StringVal("main"))
	call.SetArg("m", measure.QuantityVal(1.5, "kg"))
	call.SetArg("sub", struct{}{})

	t.Run("argument order is declaration order", func(t *testing.T) {
		assert.Equal(t, []string{"k", "label", "m", "sub"}, call.ArgNames())
	})

	t.Run("number strips wrapping", func(t *testing.T) {
		m, err := call.Number("m")
		require.NoError(t, err)
		assert.Equal(t, 1.5, m)
	})

	t.Run("string", func(t *testing.T) {
		s, err := call.String("label")
		require.NoError(t, err)
		assert.Equal(t, "main", s)
	})

	t.Run("missing argument", func(t *testing.T) {
		_, err := call.Number("absent")
		require.Error(t, err)
	})

	t.Run("non-value argument is rejected by Value", func(t *testing.T) {
		_, err := call.Value("sub")
		require.Error(t, err)
		raw, ok := call.Arg("sub")
		require.True(t, ok)
		assert.NotNil(t, raw)
	})
}

package mechanics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/physim/internal/measure"
	"github.com/vk/physim/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

func TestRegister(t *testing.T) {
	r := registry.New()
	(&Module{}).Register(r)

	for _, name := range []string{"PointMass", "Spring", "Damper"} {
		_, ok := r.Component(name)
		assert.True(t, ok, "missing factory %s", name)
	}
}

func TestPointMass(t *testing.T) {
	call := registry.NewComponentCall()
	call.Path = "pendulum.bob"
	call.HasPath = true
	call.SetArg("m", measure.QuantityVal(1.5, "kg"))

	obj, err := newPointMass(context.Background(), call)
	require.NoError(t, err)

	mass := obj.(*PointMass)
	assert.Equal(t, "pendulum.bob", mass.Path)
	assert.Equal(t, 1.5, mass.Mass)
}

func TestSpring(t *testing.T) {
	t.Run("rest length defaults to zero", func(t *testing.T) {
		call := registry.NewComponentCall()
		call.SetArg("k", cty.NumberFloatVal(100))

		obj, err := newSpring(context.Background(), call)
		require.NoError(t, err)
		spring := obj.(*Spring)
		assert.Equal(t, 100.0, spring.K)
		assert.Zero(t, spring.L0)
	})

	t.Run("explicit rest length", func(t *testing.T) {
		call := registry.NewComponentCall()
		call.SetArg("k", cty.NumberFloatVal(100))
		call.SetArg("l0", cty.NumberFloatVal(0.3))

		obj, err := newSpring(context.Background(), call)
		require.NoError(t, err)
		assert.Equal(t, 0.3, obj.(*Spring).L0)
	})

	t.Run("missing stiffness", func(t *testing.T) {
		_, err := newSpring(context.Background(), registry.NewComponentCall())
		require.Error(t, err)
	})
}

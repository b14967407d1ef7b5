// Package mechanics provides the built-in translational mechanics component
// factories: point masses, springs and dampers.
package mechanics

import (
	"context"

	"github.com/vk/physim/internal/ctxlog"
	"github.com/vk/physim/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// PointMass is a lumped mass, optionally tagged with the model path it was
// instantiated at.
type PointMass struct {
	Path string
	Mass float64
}

// Spring is a linear spring with stiffness K and rest length L0.
type Spring struct {
	Path string
	K    float64
	L0   float64
}

// Damper is a linear viscous damper with coefficient D.
type Damper struct {
	Path string
	D    float64
}

func newPointMass(ctx context.Context, call *registry.ComponentCall) (any, error) {
	mass, err := call.Number("m")
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Instantiating point mass.", "path", call.Path, "m", mass)
	return &PointMass{Path: call.Path, Mass: mass}, nil
}

func newSpring(ctx context.Context, call *registry.ComponentCall) (any, error) {
	k, err := call.Number("k")
	if err != nil {
		return nil, err
	}
	spring := &Spring{Path: call.Path, K: k}
	if _, ok := call.Arg("l0"); ok {
		l0, err := call.Number("l0")
		if err != nil {
			return nil, err
		}
		spring.L0 = l0
	}
	ctxlog.FromContext(ctx).Debug("Instantiating spring.", "path", call.Path, "k", k, "l0", spring.L0)
	return spring, nil
}

func newDamper(ctx context.Context, call *registry.ComponentCall) (any, error) {
	d, err := call.Number("d")
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Instantiating damper.", "path", call.Path, "d", d)
	return &Damper{Path: call.Path, D: d}, nil
}

// Register registers the mechanics factories with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterComponent("PointMass", &registry.RegisteredComponent{New: newPointMass})
	r.RegisterComponent("Spring", &registry.RegisteredComponent{New: newSpring})
	r.RegisterComponent("Damper", &registry.RegisteredComponent{New: newDamper})
}

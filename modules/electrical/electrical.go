// Package electrical provides the built-in electrical component factories.
package electrical

import (
	"context"

	"github.com/vk/physim/internal/ctxlog"
	"github.com/vk/physim/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Resistor is an ideal linear resistor.
type Resistor struct {
	Path string
	R    float64
}

// Capacitor is an ideal capacitor.
type Capacitor struct {
	Path string
	C    float64
}

// VoltageSource is an ideal constant voltage source.
type VoltageSource struct {
	Path string
	V    float64
}

func newResistor(ctx context.Context, call *registry.ComponentCall) (any, error) {
	r, err := call.Number("r")
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Instantiating resistor.", "path", call.Path, "r", r)
	return &Resistor{Path: call.Path, R: r}, nil
}

func newCapacitor(ctx context.Context, call *registry.ComponentCall) (any, error) {
	c, err := call.Number("c")
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Instantiating capacitor.", "path", call.Path, "c", c)
	return &Capacitor{Path: call.Path, C: c}, nil
}

func newVoltageSource(ctx context.Context, call *registry.ComponentCall) (any, error) {
	v, err := call.Number("v")
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Instantiating voltage source.", "path", call.Path, "v", v)
	return &VoltageSource{Path: call.Path, V: v}, nil
}

// Register registers the electrical factories with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterComponent("Resistor", &registry.RegisteredComponent{New: newResistor})
	r.RegisterComponent("Capacitor", &registry.RegisteredComponent{New: newCapacitor})
	r.RegisterComponent("VoltageSource", &registry.RegisteredComponent{New: newVoltageSource})
}

package registry

import (
	"fmt"
	"log/slog"
)

// Module is the interface component libraries implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds all the registered component factories for a single
// application instance.
type Registry struct {
	ComponentRegistry map[string]*RegisteredComponent
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		ComponentRegistry: map[string]*RegisteredComponent{},
	}
}

// RegisterComponent registers a factory under its constructor identifier.
func (r *Registry) RegisterComponent(name string, component *RegisteredComponent) {
	if _, exists := r.ComponentRegistry[name]; exists {
		panic(fmt.Sprintf("component factory with name '%s' already registered", name))
	}
	if component == nil || component.New == nil {
		panic(fmt.Sprintf("component factory '%s' has no constructor function", name))
	}
	slog.Debug("Registering component factory.", "name", name)
	r.ComponentRegistry[name] = component
}

// Component looks a factory up by its constructor identifier.
func (r *Registry) Component(name string) (*RegisteredComponent, bool) {
	c, ok := r.ComponentRegistry[name]
	return c, ok
}

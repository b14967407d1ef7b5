package app

import (
	"github.com/vk/physim/internal/registry"
	"github.com/vk/physim/modules/electrical"
	"github.com/vk/physim/modules/mechanics"
)

// coreModules is the definitive list of component libraries compiled into
// the physim binary.
var coreModules = []registry.Module{
	&mechanics.Module{},
	&electrical.Module{},
}

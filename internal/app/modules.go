package app

import (
	"github.com/specialistvlad/staticpipe/internal/registry"
	"github.com/specialistvlad/staticpipe/modules/ffm"
)

// coreModules is the definitive list of all step modules that are compiled
// into the staticpipe binary.
var coreModules = []registry.Module{
	&ffm.Module{},
}

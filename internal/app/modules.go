package app

import (
	"github.com/vk/buildgrid/internal/registry"
	"github.com/vk/buildgrid/modules/command"
	"github.com/vk/buildgrid/modules/filegroup"
)

// coreModules is the default set of target-kind modules registered when the
// caller does not inject its own.
var coreModules = []registry.Module{
	command.Module{},
	filegroup.Module{},
}

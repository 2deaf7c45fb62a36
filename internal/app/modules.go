package app

import (
	"github.com/vk/expconf/internal/registry"
	"github.com/vk/expconf/modules/envvars"
	"github.com/vk/expconf/modules/httpclient"
	"github.com/vk/expconf/modules/identifier"
	"github.com/vk/expconf/modules/printer"
)

// coreModules is the default set of plugin modules registered into every
// application registry.
var coreModules = []registry.Module{
	&envvars.Module{},
	&httpclient.Module{},
	&identifier.Module{},
	&printer.Module{},
}

// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package plugin

import (
	"reflect"

	"github.com/thediveo/go-plugger/v3"
)

// Provider defines the exposed plugin symbol type of plugin modules: it
// returns the plugin module's description together with the classes it
// provides.
type Provider func() Module

// Module describes a plugin module and the classes it provides.
type Module struct {
	// Name of the module, such as "greet".
	Name string `json:"name" yaml:"name"`
	// Location of the module, such as "plugins/greet", which the loader
	// resolves module names against.
	Location string `json:"location" yaml:"location"`
	// Classes provided by the module, including those re-exported from
	// other modules.
	Classes []*Class `json:"classes" yaml:"classes"`
}

// Class describes an implementation provided by a plugin module.
type Class struct {
	// Name of the class, such as "Greeter".
	Name string `json:"name" yaml:"name"`
	// Module defining the class; if empty, it is the module providing the
	// class. Otherwise, when the class has been defined in a different
	// module than the one providing it, the class is re-exported.
	Module string `json:"module" yaml:"module"`
	// Optional one-line description.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// Type implementing the class.
	Type reflect.Type `json:"-" yaml:"-"`
	// New returns a new instance of the class.
	New func() any `json:"-" yaml:"-"`
}

// TypeName returns the Go type name of the class implementation, or "" if
// unknown.
func (c *Class) TypeName() string {
	if c.Type == nil {
		return ""
	}
	return c.Type.String()
}

// Imported returns true if the class has been defined in a module other
// than m.
func (c *Class) Imported(m *Module) bool {
	return c.Module != "" && c.Module != m.Name
}

// Register registers a plugin module provider.
func Register(p Provider, location string) {
	plugger.Group[Provider]().Register(p, plugger.WithPlugin(location))
}

// providers returns all registered plugin module providers.
func providers() []Provider {
	return plugger.Group[Provider]().Symbols()
}

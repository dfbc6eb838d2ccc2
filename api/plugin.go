// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

// This statically typed data model describes the plugin modules and the
// classes they provide in a form suitable for output in tabular, JSON, and
// YAML formats. In contrast to the plugin package's own types it carries
// only plain data.

package api

// Classes is a list of class descriptions.
type Classes []*ClassInfo

// ClassInfo describes a single class provided by a plugin module.
type ClassInfo struct {
	// Name of the module providing the class, such as "greet".
	Module string `json:"module" yaml:"module"`
	// Location of the module providing the class, such as "plugins/greet".
	Location string `json:"location" yaml:"location"`
	// Name of the class, such as "Greeter".
	Name string `json:"name" yaml:"name"`
	// Go type implementing the class, if known.
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
	// Optional one-line description.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// Name of the module defining the class.
	DefinedIn string `json:"defined-in" yaml:"defined-in"`
	// True when the class has been defined in another module than the one
	// providing it.
	Imported bool `json:"imported" yaml:"imported"`
}

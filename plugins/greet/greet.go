// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package greet

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/siemens/kommons/plugin"
)

// Location of this plugin module, relative to the default plugin path.
const Location = "plugins/greet"

// Greeter greets people.
type Greeter interface {
	Greet(name string) string
}

// Plain is the default, plain greeter.
type Plain struct {
	// Salutation to use; defaults to "Hello".
	Salutation string
}

var _ Greeter = (*Plain)(nil)

// Greet returns a greeting for name.
func (p *Plain) Greet(name string) string {
	salutation := p.Salutation
	if salutation == "" {
		salutation = "Hello"
	}
	return fmt.Sprintf("%s, %s!", salutation, name)
}

// Loud greets people by shouting at them.
type Loud struct {
	Plain
}

// Greet returns an upper-cased greeting for name.
func (l *Loud) Greet(name string) string {
	return strings.ToUpper(l.Plain.Greet(name))
}

// Module returns the description of this plugin module.
func Module() plugin.Module {
	return plugin.Module{
		Name:     "greet",
		Location: Location,
		Classes: []*plugin.Class{
			{
				Name:        "Greeter",
				Description: "greets people politely",
				Type:        reflect.TypeOf(Plain{}),
				New:         func() any { return &Plain{} },
			},
			{
				Name:        "LoudGreeter",
				Description: "greets people by shouting",
				Type:        reflect.TypeOf(Loud{}),
				New:         func() any { return &Loud{} },
			},
		},
	}
}

func init() {
	plugin.Register(Module, Location)
}

// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package cli

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Argument declares a single positional argument or option. Arguments are
// created by [Declaration.Argument] and [Declaration.Option] and are
// immutable afterwards.
type Argument struct {
	name       string
	seq        int
	positional bool
	names      []string // explicit registration tokens, if any
	help       string
	def        any
	required   bool
	kind       Kind
	arity      Arity
	dest       string
	choices    []string
	metavar    string
}

// ArgOption configures an [Argument] at declaration time.
type ArgOption func(*Argument)

// Names sets explicit registration tokens, such as "--output" and "-o" for
// an option, or the name of a positional argument. Without explicit tokens
// the token is derived from the field name.
func Names(names ...string) ArgOption {
	return func(a *Argument) { a.names = append(a.names, names...) }
}

// Help sets the help text of an argument.
func Help(text string) ArgOption {
	return func(a *Argument) { a.help = text }
}

// Default sets the default value of an argument.
func Default(v any) ArgOption {
	return func(a *Argument) { a.def = v }
}

// Required marks an option as required.
func Required() ArgOption {
	return func(a *Argument) { a.required = true }
}

// Type sets the kind of value of an argument; the default is [String].
func Type(k Kind) ArgOption {
	return func(a *Argument) { a.kind = k }
}

// NArgs sets how many values an argument consumes; the default is
// Exactly(1).
func NArgs(n Arity) ArgOption {
	return func(a *Argument) { a.arity = n }
}

// Dest sets the name under which the argument's value is stored in the
// parse result [Namespace].
func Dest(dest string) ArgOption {
	return func(a *Argument) { a.dest = dest }
}

// Choices restricts the accepted values of an argument.
func Choices(choices ...string) ArgOption {
	return func(a *Argument) { a.choices = append(a.choices, choices...) }
}

// Metavar sets the value placeholder shown in help output.
func Metavar(name string) ArgOption {
	return func(a *Argument) { a.metavar = name }
}

func newArgument(name string, positional bool, opts []ArgOption) *Argument {
	a := &Argument{
		name:       name,
		positional: positional,
		arity:      Exactly(1),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name returns the field name the argument was declared with.
func (a *Argument) Name() string { return a.name }

// Positional returns true for positional arguments, false for options.
func (a *Argument) Positional() bool { return a.positional }

// Kind returns the kind of value of this argument.
func (a *Argument) Kind() Kind { return a.kind }

// Arity returns how many values this argument consumes.
func (a *Argument) Arity() Arity { return a.arity }

// Help returns the help text.
func (a *Argument) Help() string { return a.help }

// Sequence returns the sequence number stamped at declaration time.
func (a *Argument) Sequence() int { return a.seq }

// Tokens returns the registration tokens: either the explicitly declared
// ones, or the one synthesized from the field name.
func (a *Argument) Tokens() []string {
	if len(a.names) > 0 {
		return slices.Clone(a.names)
	}
	if a.positional {
		return []string{a.name}
	}
	return []string{"--" + a.name}
}

// Dest returns the name under which the parsed value gets stored.
func (a *Argument) Dest() string {
	if a.dest != "" {
		return a.dest
	}
	if len(a.names) == 0 {
		return a.name
	}
	if a.positional {
		return a.names[0]
	}
	long, short := a.flagNames()
	if long != "" {
		return long
	}
	return short
}

// flagNames returns the long and short name of an option, without their
// dashes.
func (a *Argument) flagNames() (long, short string) {
	for _, token := range a.Tokens() {
		switch {
		case strings.HasPrefix(token, "--"):
			if long == "" {
				long = token[2:]
			}
		case strings.HasPrefix(token, "-"):
			if short == "" {
				short = token[1:]
			}
		}
	}
	return
}

// validate checks the argument for declaration errors.
func (a *Argument) validate() error {
	if a.positional {
		if len(a.names) > 1 {
			return errors.New("positional argument with multiple names")
		}
		if len(a.names) == 1 && strings.HasPrefix(a.names[0], "-") {
			return fmt.Errorf("positional argument name %q must not start with a dash", a.names[0])
		}
		if a.required {
			return errors.New("positional arguments are required by their arity")
		}
		if a.kind == Bool || a.kind == Count {
			return fmt.Errorf("positional argument of kind %s", a.kind)
		}
		return nil
	}
	for _, token := range a.names {
		if !strings.HasPrefix(token, "-") {
			return fmt.Errorf("option name %q must start with a dash", token)
		}
	}
	long, short := a.flagNames()
	if long == "" && short == "" {
		return errors.New("option without name")
	}
	if len(short) > 1 {
		return fmt.Errorf("option shorthand %q must be a single character", "-"+short)
	}
	return nil
}

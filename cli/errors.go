// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package cli

import (
	"errors"
	"fmt"
)

// ErrShown is returned by the parsing functions when the command line asked
// for help or version information and this information has already been
// rendered. Callers usually want to exit successfully in this case.
var ErrShown = errors.New("help or version information shown")

// DeclarationError is returned when building a declaration fails. It always
// indicates a programming error in the declaration itself and never depends
// on user input.
type DeclarationError struct {
	Field string // offending field, might be empty
	Err   error
}

func (e *DeclarationError) Error() string {
	if e.Field == "" {
		return "invalid declaration: " + e.Err.Error()
	}
	return fmt.Sprintf("invalid declaration of %q: %s", e.Field, e.Err.Error())
}

func (e *DeclarationError) Unwrap() error { return e.Err }

// ParseError wraps an error caused by the command line to be parsed,
// together with the path of the (sub) command where parsing failed.
type ParseError struct {
	Command string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("command %q: %s", e.Command, e.Err.Error())
}

func (e *ParseError) Unwrap() error { return e.Err }

// NoHandlerError is returned when dispatching to a subcommand that has no
// run function, or when no subcommand was selected at all.
type NoHandlerError struct {
	Command string
}

func (e *NoHandlerError) Error() string {
	if e.Command == "" {
		return "no command handler selected"
	}
	return fmt.Sprintf("command %q has no run function", e.Command)
}

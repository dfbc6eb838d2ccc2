// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"fmt"

	"golang.org/x/exp/slices"
)

// Namespace is the result of parsing a command line: a flat mapping of
// destination names to their typed values, collected from all command
// levels along the selected command path.
type Namespace struct {
	values  map[string]any
	dests   []string
	command string

	// Func is the handler to dispatch to; it is set to the selected
	// subparser if this subparser doesn't have nested subparsers of its own.
	Func Handler
}

// NewNamespace returns an empty namespace.
func NewNamespace() *Namespace {
	return &Namespace{values: map[string]any{}}
}

// Command returns the full path of the selected command, such as "prog sub".
func (ns *Namespace) Command() string { return ns.command }

// Get returns the value stored for dest, and whether dest is known at all.
func (ns *Namespace) Get(dest string) (any, bool) {
	v, ok := ns.values[dest]
	return v, ok
}

// GetOr returns the value stored for dest, or def if dest is either unknown
// or its value is nil.
func (ns *Namespace) GetOr(dest string, def any) any {
	if v, ok := ns.values[dest]; ok && v != nil {
		return v
	}
	return def
}

// Has returns true if dest is known, even if its value is nil.
func (ns *Namespace) Has(dest string) bool {
	_, ok := ns.values[dest]
	return ok
}

// Set stores the value for dest, overwriting any existing value.
func (ns *Namespace) Set(dest string, v any) {
	if _, ok := ns.values[dest]; !ok {
		ns.dests = append(ns.dests, dest)
	}
	ns.values[dest] = v
}

// SetDefault stores the value for dest only if dest is still unknown.
func (ns *Namespace) SetDefault(dest string, v any) {
	if _, ok := ns.values[dest]; ok {
		return
	}
	ns.Set(dest, v)
}

// Dests returns the known destination names in the order they were first
// set.
func (ns *Namespace) Dests() []string { return slices.Clone(ns.dests) }

// Dispatch invokes the namespace's handler, returning a *NoHandlerError if
// there is none.
func (ns *Namespace) Dispatch(ctx context.Context) error {
	if ns.Func == nil {
		return &NoHandlerError{Command: ns.command}
	}
	return ns.Func.Invoke(ctx, ns)
}

// Value returns the value of type T stored for dest. It returns the zero
// value of T if the stored value is nil, such as for an absent optional
// positional argument. Value panics if dest is unknown or the value is of a
// different type.
func Value[T any](ns *Namespace, dest string) T {
	v, ok := ns.values[dest]
	if !ok {
		panic(fmt.Sprintf("unknown destination %q", dest))
	}
	var zero T
	if v == nil {
		return zero
	}
	t, ok := v.(T)
	if !ok {
		panic(fmt.Sprintf("destination %q has type %T, not %T", dest, v, zero))
	}
	return t
}

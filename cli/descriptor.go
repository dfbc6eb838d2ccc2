// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package cli

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"golang.org/x/exp/slices"
)

// Descriptor is the immutable result of building a [Declaration]: the
// merged and resolved arguments, argument groups, and subparsers.
type Descriptor struct {
	all            []*Argument // merged, grouped ones included
	arguments      []*Argument // ungrouped
	groups         []*ArgumentGroup
	subparsers     *orderedmap.OrderedMap[string, *Subparser]
	subparserGroup *SubparserGroup
	description    string
	usage          string
	epilog         string
}

func emptyDescriptor() *Descriptor {
	return &Descriptor{
		subparsers: orderedmap.New[string, *Subparser](),
	}
}

// Arguments returns the ungrouped arguments in order.
func (d *Descriptor) Arguments() []*Argument { return slices.Clone(d.arguments) }

// AllArguments returns all merged arguments, including grouped ones.
func (d *Descriptor) AllArguments() []*Argument { return slices.Clone(d.all) }

// Groups returns the resolved argument groups in order.
func (d *Descriptor) Groups() []*ArgumentGroup { return slices.Clone(d.groups) }

// Lookup returns the merged argument with the specified field name.
func (d *Descriptor) Lookup(name string) (*Argument, bool) {
	for _, arg := range d.all {
		if arg.name == name {
			return arg, true
		}
	}
	return nil, false
}

// Subparsers returns the field names of all merged subparsers in order.
func (d *Descriptor) Subparsers() []string {
	names := make([]string, 0, d.subparsers.Len())
	for pair := d.subparsers.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Subparser returns the merged subparser with the specified field name.
func (d *Descriptor) Subparser(name string) (*Subparser, bool) {
	return d.subparsers.Get(name)
}

// SubparserGroup returns the active subparser group, or nil.
func (d *Descriptor) SubparserGroup() *SubparserGroup { return d.subparserGroup }

// Description returns the default parser description.
func (d *Descriptor) Description() string { return d.description }

// Usage returns the default usage line.
func (d *Descriptor) Usage() string { return d.usage }

// Epilog returns the default epilog.
func (d *Descriptor) Epilog() string { return d.epilog }

// positionals returns all positional arguments in registration order, that
// is, grouped ones first, group by group, followed by the ungrouped ones.
func (d *Descriptor) positionals() []*Argument {
	var pos []*Argument
	for _, g := range d.groups {
		for _, arg := range g.members {
			if arg.positional {
				pos = append(pos, arg)
			}
		}
	}
	for _, arg := range d.arguments {
		if arg.positional {
			pos = append(pos, arg)
		}
	}
	return pos
}

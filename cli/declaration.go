// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package cli

// Declaration collects the declared arguments, argument groups, subparser
// groups, and subparsers of a single parser or subparser. Each declaration
// gets stamped with the next sequence number of its Declaration, so the
// order of the calls determines the order in help output and merging.
//
// A Declaration is turned into its immutable [Descriptor] using
// [Declaration.Build], which merges in the descriptors of the bases passed
// to [Declare].
type Declaration struct {
	bases       []*Descriptor
	items       []item
	description string
	usage       string
	epilog      string
}

// item is one of the declared things, tagged by which of its fields is
// non-nil.
type item struct {
	seq      int
	field    string
	arg      *Argument
	group    *ArgumentGroup
	subgroup *SubparserGroup
	sub      *Subparser
}

// Declare starts a new declaration, inheriting the declarations of the
// specified bases. Bases are merged left to right, so that a later base
// shadows same-named declarations of an earlier base, and the new
// declarations shadow them all.
func Declare(bases ...*Descriptor) *Declaration {
	d := &Declaration{}
	for _, base := range bases {
		if base != nil {
			d.bases = append(d.bases, base)
		}
	}
	return d
}

func (d *Declaration) add(it item) *Declaration {
	it.seq = len(d.items) + 1
	switch {
	case it.arg != nil:
		it.arg.seq = it.seq
	case it.group != nil:
		it.group.seq = it.seq
	case it.subgroup != nil:
		it.subgroup.seq = it.seq
	}
	d.items = append(d.items, it)
	return d
}

// Argument declares a positional argument.
func (d *Declaration) Argument(field string, opts ...ArgOption) *Declaration {
	return d.add(item{field: field, arg: newArgument(field, true, opts)})
}

// Option declares an optional "--" flag argument.
func (d *Declaration) Option(field string, opts ...ArgOption) *Declaration {
	return d.add(item{field: field, arg: newArgument(field, false, opts)})
}

// Group declares an argument group with a title and description, listing
// its members by their field names. The members are shown in the order
// listed, not in their declaration order.
func (d *Declaration) Group(field, title, description string, members []string, opts ...GroupOption) *Declaration {
	g := &ArgumentGroup{
		name:        field,
		title:       title,
		description: description,
		memberNames: append([]string(nil), members...),
	}
	for _, opt := range opts {
		opt(g)
	}
	return d.add(item{field: field, group: g})
}

// SubparserGroup declares the group of subparsers together with its
// registration options, listing the member subparsers by their field names.
func (d *Declaration) SubparserGroup(opts SubparsersOptions, members ...string) *Declaration {
	return d.add(item{subgroup: &SubparserGroup{
		opts:        opts.withDefaults(),
		memberNames: append([]string(nil), members...),
	}})
}

// Subparser declares a nested subparser.
func (d *Declaration) Subparser(field string, sub *Subparser) *Declaration {
	return d.add(item{field: field, sub: sub})
}

// Describe sets the default description of parsers using this declaration.
func (d *Declaration) Describe(text string) *Declaration {
	d.description = text
	return d
}

// Usage sets the default usage line of parsers using this declaration.
func (d *Declaration) Usage(text string) *Declaration {
	d.usage = text
	return d
}

// Epilog sets the default text shown after the help of parsers using this
// declaration.
func (d *Declaration) Epilog(text string) *Declaration {
	d.epilog = text
	return d
}

// MustBuild builds the declaration, panicking with the declaration error if
// building fails. It is intended for package-level declarations, where a
// faulty declaration is a programming error.
func MustBuild(d *Declaration) *Descriptor {
	desc, err := d.Build()
	if err != nil {
		panic(err)
	}
	return desc
}

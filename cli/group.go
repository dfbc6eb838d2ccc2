// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package cli

import "golang.org/x/exp/slices"

// ArgumentGroup is an ordered, titled collection of arguments. Its members
// are listed by name at declaration time and get resolved when building the
// declaration.
type ArgumentGroup struct {
	name        string
	seq         int
	title       string
	description string
	exclusive   bool
	memberNames []string
	members     []*Argument // resolved, in memberNames order
}

// GroupOption configures an [ArgumentGroup] at declaration time.
type GroupOption func(*ArgumentGroup)

// Exclusive marks the members of a group as mutually exclusive: at most one
// of them may be set on the command line.
func Exclusive() GroupOption {
	return func(g *ArgumentGroup) { g.exclusive = true }
}

// Name returns the field name the group was declared with.
func (g *ArgumentGroup) Name() string { return g.name }

// Title returns the group's title.
func (g *ArgumentGroup) Title() string { return g.title }

// Description returns the group's description.
func (g *ArgumentGroup) Description() string { return g.description }

// IsExclusive returns true if the group members are mutually exclusive.
func (g *ArgumentGroup) IsExclusive() bool { return g.exclusive }

// MemberNames returns the names of the group's members in declaration order.
func (g *ArgumentGroup) MemberNames() []string { return slices.Clone(g.memberNames) }

// Arguments returns the resolved member arguments; for unresolved groups
// this is empty.
func (g *ArgumentGroup) Arguments() []*Argument { return slices.Clone(g.members) }

// resolved returns a copy of this group with its members resolved.
func (g *ArgumentGroup) resolved(members []*Argument) *ArgumentGroup {
	r := *g
	r.memberNames = slices.Clone(g.memberNames)
	r.members = members
	return &r
}

// displayTitle returns the title to show in help output, falling back to the
// group's field name.
func (g *ArgumentGroup) displayTitle() string {
	if g.title != "" {
		return g.title
	}
	return g.name
}

// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package cli

import (
	"context"

	"golang.org/x/exp/slices"
)

// DefaultSubparsersTitle is the title of subparser groups that don't specify
// their own title.
const DefaultSubparsersTitle = "list of commands"

// SubparsersOptions are the registration options of a subparser group, that
// is, the "choose one of these commands" construct.
type SubparsersOptions struct {
	// Title is shown as the heading of the command list in help output.
	Title string
	// Description is shown below the title.
	Description string
	// Dest optionally names the Namespace entry receiving the name of the
	// chosen command.
	Dest string
	// Required rejects command lines without any command.
	Required bool
}

// withDefaults returns the options with unset fields defaulted.
func (o SubparsersOptions) withDefaults() SubparsersOptions {
	if o.Title == "" {
		o.Title = DefaultSubparsersTitle
	}
	return o
}

// SubparserGroup declares the set of subparsers of a parser, together with
// the options used when attaching them.
type SubparserGroup struct {
	seq         int
	opts        SubparsersOptions
	memberNames []string
	members     []*Subparser // resolved, in memberNames order
	synthesized bool
}

// Options returns the group's registration options.
func (g *SubparserGroup) Options() SubparsersOptions { return g.opts }

// MemberNames returns the names of the member subparsers in order.
func (g *SubparserGroup) MemberNames() []string { return slices.Clone(g.memberNames) }

// Synthesized returns true if this group wasn't declared explicitly but
// created automatically from all declared subparsers.
func (g *SubparserGroup) Synthesized() bool { return g.synthesized }

func (g *SubparserGroup) resolved(members []*Subparser) *SubparserGroup {
	r := *g
	r.memberNames = slices.Clone(g.memberNames)
	r.members = members
	return &r
}

// Handler is invoked when dispatching a parse result.
type Handler interface {
	Invoke(ctx context.Context, ns *Namespace) error
}

// HandlerFunc adapts an ordinary function to a [Handler].
type HandlerFunc func(ctx context.Context, ns *Namespace) error

// Invoke calls f(ctx, ns).
func (f HandlerFunc) Invoke(ctx context.Context, ns *Namespace) error {
	return f(ctx, ns)
}

// Subparser is a nested command with its own declared arguments, groups, and
// optionally its own nested subparsers. Leaf subparsers become the dispatch
// target of the parse result.
type Subparser struct {
	desc    *Descriptor
	name    string
	aliases []string
	short   string
	long    string
	example string
	run     HandlerFunc

	// added at runtime
	extra   []namedSubparser
	subopts *SubparsersOptions
}

type namedSubparser struct {
	name string
	sub  *Subparser
}

// SubparserOption configures a [Subparser].
type SubparserOption func(*Subparser)

// Name sets the command name; it defaults to the field name the subparser
// is declared with.
func Name(name string) SubparserOption {
	return func(s *Subparser) { s.name = name }
}

// Aliases sets alternative command names.
func Aliases(aliases ...string) SubparserOption {
	return func(s *Subparser) { s.aliases = append(s.aliases, aliases...) }
}

// Short sets the one-line help shown in the parent's command list.
func Short(text string) SubparserOption {
	return func(s *Subparser) { s.short = text }
}

// Long sets the description shown in the subparser's own help; it defaults
// to the description of the subparser's declaration.
func Long(text string) SubparserOption {
	return func(s *Subparser) { s.long = text }
}

// Example sets the examples section of the subparser's help.
func Example(text string) SubparserOption {
	return func(s *Subparser) { s.example = text }
}

// Run sets the function invoked when dispatching to this subparser.
func Run(fn HandlerFunc) SubparserOption {
	return func(s *Subparser) { s.run = fn }
}

// NewSubparser returns a new subparser for the built declaration.
func NewSubparser(desc *Descriptor, opts ...SubparserOption) *Subparser {
	if desc == nil {
		desc = emptyDescriptor()
	}
	s := &Subparser{desc: desc}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Descriptor returns the built declaration of this subparser.
func (s *Subparser) Descriptor() *Descriptor { return s.desc }

// SetExample replaces the examples section of the subparser's help.
func (s *Subparser) SetExample(text string) { s.example = text }

// Example returns the examples section of the subparser's help.
func (s *Subparser) Example() string { return s.example }

// AddSubparser adds a nested subparser at runtime, after the declared ones.
func (s *Subparser) AddSubparser(name string, sub *Subparser) {
	s.extra = append(s.extra, namedSubparser{name: name, sub: sub})
}

// SetSubparsersOptions overrides the registration options of the nested
// subparser group.
func (s *Subparser) SetSubparsersOptions(opts SubparsersOptions) {
	s.subopts = &opts
}

// Invoke runs the subparser's run function.
func (s *Subparser) Invoke(ctx context.Context, ns *Namespace) error {
	if s.run == nil {
		return &NoHandlerError{Command: ns.Command()}
	}
	return s.run(ctx, ns)
}

// commandName returns the command name when declared under field.
func (s *Subparser) commandName(field string) string {
	if s.name != "" {
		return s.name
	}
	return field
}

// hasSubparsers returns true if this subparser has nested subparsers,
// either declared or added at runtime.
func (s *Subparser) hasSubparsers() bool {
	return len(s.extra) > 0 || s.desc.subparserGroup != nil
}

// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// GroupAnnotation is the flag annotation key carrying the name of the
// argument group a flag belongs to.
const GroupAnnotation = "kommons-argument-group"

// binding ties a declared argument to its materialized flag.
type binding struct {
	arg        *Argument
	flag       *pflag.Flag
	get        func() any
	hasDefault bool
}

// value returns the current value of the bound argument. Unset arguments
// without any default are nil, except for switches and counters.
func (b *binding) value() any {
	if b.flag.Changed || b.hasDefault {
		return b.get()
	}
	switch {
	case b.arg.kind == Bool || b.arg.kind == Count:
		return b.get()
	case b.arg.positional && b.arg.arity.multi():
		return b.get()
	}
	return nil
}

// level is a single materialized command level: the root parser or one of
// the (nested) subparsers.
type level struct {
	cmd         *cobra.Command
	name        string
	desc        *Descriptor
	sub         *Subparser // nil for the root level
	parent      *level
	options     []*binding
	positionals []*binding
	posflags    *pflag.FlagSet // positionals reuse the flag value conversions
	bound       map[*Argument]*binding
	subgroup    *SubparserGroup
	children    []*level
	epilog      string
}

// tree is a materialized command tree together with the command selected
// when executing it.
type tree struct {
	parser   *Parser
	root     *level
	levels   map[*cobra.Command]*level
	selected *level
	args     []string
}

// Materialize returns a freshly built command tree for this parser. Each
// call returns an independent tree.
func (p *Parser) Materialize() (*cobra.Command, error) {
	t, err := p.materialize(false)
	if err != nil {
		return nil, err
	}
	return t.root.cmd, nil
}

func (p *Parser) materialize(known bool) (*tree, error) {
	t := &tree{parser: p, levels: map[*cobra.Command]*level{}}
	root, err := t.newLevel(nil, p.prog, p.desc, nil, p.defaults, p.extra, p.subopts, known)
	if err != nil {
		return nil, err
	}
	t.root = root
	cmd := root.cmd
	cmd.Long = p.description
	cmd.Version = p.version
	cmd.TraverseChildren = true
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetOut(p.out)
	cmd.SetErr(p.out)
	cmd.SetUsageFunc(t.usage)
	root.epilog = p.epilog
	if p.version != "" {
		cmd.InitDefaultVersionFlag()
	}
	return t, nil
}

// newLevel materializes the command level described by desc, including its
// subparsers.
func (t *tree) newLevel(parent *level, name string, desc *Descriptor, sub *Subparser,
	defaults Defaults, extra []namedSubparser, subopts *SubparsersOptions, known bool,
) (*level, error) {
	l := &level{
		name:     name,
		desc:     desc,
		sub:      sub,
		parent:   parent,
		posflags: pflag.NewFlagSet(name, pflag.ContinueOnError),
		bound:    map[*Argument]*binding{},
		epilog:   desc.epilog,
	}
	l.cmd = &cobra.Command{
		Use:  name,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t.selected = l
			t.args = args
			return nil
		},
		SuggestionsMinimumDistance: 2,
	}
	l.cmd.FParseErrWhitelist.UnknownFlags = known
	l.cmd.Flags().SortFlags = false
	if sub != nil {
		l.cmd.Aliases = append([]string(nil), sub.aliases...)
		l.cmd.Long = sub.long
		if l.cmd.Long == "" {
			l.cmd.Long = desc.description
		}
		l.cmd.Short = sub.short
		if l.cmd.Short == "" {
			l.cmd.Short, _, _ = strings.Cut(l.cmd.Long, "\n")
		}
		l.cmd.Example = sub.example
	}

	for _, g := range desc.groups {
		for _, arg := range g.members {
			if err := l.bind(arg, g, defaults); err != nil {
				return nil, err
			}
		}
	}
	for _, arg := range desc.arguments {
		if err := l.bind(arg, nil, defaults); err != nil {
			return nil, err
		}
	}

	members, err := l.subparsers(extra, subopts)
	if err != nil {
		return nil, err
	}
	l.cmd.Use = name + " [flags]" + l.synopsis()
	for _, m := range members {
		cmdname := m.sub.commandName(m.name)
		child, err := t.newLevel(l, cmdname, m.sub.desc, m.sub,
			defaults.For(cmdname), m.sub.extra, m.sub.subopts, known)
		if err != nil {
			return nil, err
		}
		l.cmd.AddCommand(child.cmd)
		l.children = append(l.children, child)
	}
	l.cmd.InitDefaultHelpFlag()
	t.levels[l.cmd] = l
	return l, nil
}

// subparsers determines the effective subparser group of this level from
// the declared group, the subparsers added at runtime, and the overriding
// group options. It returns the member subparsers in order.
func (l *level) subparsers(extra []namedSubparser, subopts *SubparsersOptions) ([]namedSubparser, error) {
	group := l.desc.subparserGroup
	if group == nil && len(extra) > 0 {
		group = &SubparserGroup{opts: SubparsersOptions{}.withDefaults(), synthesized: true}
	}
	if group == nil {
		return nil, nil
	}
	if subopts != nil {
		group = group.resolved(group.members)
		group.opts = subopts.withDefaults()
	}
	if len(l.positionals) > 0 {
		return nil, &DeclarationError{
			Field: l.positionals[0].arg.name,
			Err:   errors.New("positional arguments cannot be combined with subparsers"),
		}
	}
	l.subgroup = group
	members := make([]namedSubparser, 0, len(group.members)+len(extra))
	names := map[string]bool{}
	for idx, sub := range group.members {
		members = append(members, namedSubparser{name: group.memberNames[idx], sub: sub})
		names[sub.commandName(group.memberNames[idx])] = true
	}
	for _, e := range extra {
		cmdname := e.sub.commandName(e.name)
		if names[cmdname] {
			return nil, &DeclarationError{
				Field: e.name,
				Err:   fmt.Errorf("command name %q already in use", cmdname),
			}
		}
		names[cmdname] = true
		members = append(members, e)
	}
	return members, nil
}

// bind registers the argument either as a flag of this level's command or
// as a positional argument.
func (l *level) bind(arg *Argument, g *ArgumentGroup, defaults Defaults) error {
	fs := l.cmd.Flags()
	name, short := arg.flagNames()
	if arg.positional {
		fs, name, short = l.posflags, arg.name, ""
	} else if name == "" {
		name = arg.Dest()
	}
	f, get := arg.kind.register(fs, name, short, helpText(arg), arg.arity.multi())
	b := &binding{arg: arg, flag: f, get: get}
	if arg.def != nil {
		if err := applyDefault(f, arg.def); err != nil {
			return &DeclarationError{Field: arg.name, Err: err}
		}
		b.hasDefault = true
	}
	if def, ok := defaults.lookup(arg.Dest()); ok {
		if err := applyDefault(f, def); err != nil {
			return fmt.Errorf("default for %q: %w", arg.Dest(), err)
		}
		b.hasDefault = true
	}
	l.bound[arg] = b
	if arg.positional {
		l.positionals = append(l.positionals, b)
		return nil
	}
	if g != nil {
		if err := fs.SetAnnotation(name, GroupAnnotation, []string{g.name}); err != nil {
			return fmt.Errorf("cannot annotate %q with group %q: %w", arg.name, g.name, err)
		}
	}
	l.options = append(l.options, b)
	return nil
}

// helpText returns the flag usage text of an argument, marking its metavar
// for pflag and listing its choices.
func helpText(arg *Argument) string {
	help := arg.help
	if arg.metavar != "" && !arg.positional && !strings.Contains(help, "`") {
		if idx := strings.Index(help, arg.metavar); idx >= 0 {
			help = help[:idx] + "`" + arg.metavar + "`" + help[idx+len(arg.metavar):]
		}
	}
	if len(arg.choices) > 0 {
		help += fmt.Sprintf(" {%s}", strings.Join(arg.choices, ","))
	}
	return strings.TrimSpace(help)
}

// displayName returns the name of a positional argument as shown in help
// output and error messages.
func displayName(arg *Argument) string {
	if arg.metavar != "" {
		return arg.metavar
	}
	return strings.ToUpper(arg.Dest())
}

// synopsis returns the positional arguments and commands part of the usage
// line, with a leading space unless empty.
func (l *level) synopsis() string {
	var parts []string
	for _, b := range l.positionals {
		name := displayName(b.arg)
		ar := b.arg.arity
		switch {
		case ar == Optional:
			parts = append(parts, "["+name+"]")
		case ar == ZeroOrMore:
			parts = append(parts, "["+name+"...]")
		case ar == OneOrMore:
			parts = append(parts, name, "["+name+"...]")
		default:
			for i := 0; i < ar.min; i++ {
				parts = append(parts, name)
			}
		}
	}
	if l.subgroup != nil {
		parts = append(parts, "COMMAND")
	}
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, " ")
}

// path returns the levels from the root down to the selected level.
func (t *tree) path() []*level {
	var path []*level
	for l := t.selected; l != nil; l = l.parent {
		path = append([]*level{l}, path...)
	}
	return path
}

// namespace builds the parse result after the command tree has been
// executed, checking what the engine can't check across command levels. In
// known mode it returns surplus positional arguments instead of failing.
func (t *tree) namespace(known bool) (*Namespace, []string, error) {
	path := t.path()
	sel := t.selected
	for _, l := range path[:len(path)-1] {
		if f := l.cmd.Flags().Lookup("help"); f != nil && f.Changed {
			if err := l.cmd.Help(); err != nil {
				return nil, nil, err
			}
			return nil, nil, ErrShown
		}
	}

	ns := NewNamespace()
	ns.command = sel.cmd.CommandPath()
	for idx, l := range path {
		if err := l.collectOptions(ns); err != nil {
			return nil, nil, &ParseError{Command: l.cmd.CommandPath(), Err: err}
		}
		if l.subgroup == nil {
			continue
		}
		var chosen any
		if idx+1 < len(path) {
			chosen = path[idx+1].name
		} else if err := l.checkNoCommand(t.args); err != nil {
			return nil, nil, &ParseError{Command: l.cmd.CommandPath(), Err: err}
		}
		if dest := l.subgroup.opts.Dest; dest != "" {
			ns.Set(dest, chosen)
		}
	}

	var extras []string
	if sel.subgroup == nil {
		rest, err := sel.assign(t.args)
		if err != nil {
			return nil, nil, &ParseError{Command: sel.cmd.CommandPath(), Err: err}
		}
		for _, b := range sel.positionals {
			if b.flag.Changed {
				if err := checkChoices(b.flag, b.arg.choices); err != nil {
					return nil, nil, &ParseError{
						Command: sel.cmd.CommandPath(),
						Err:     fmt.Errorf("argument %s: %w", displayName(b.arg), err),
					}
				}
			}
			ns.Set(b.arg.Dest(), b.value())
		}
		if len(rest) > 0 {
			if !known {
				return nil, nil, &ParseError{
					Command: sel.cmd.CommandPath(),
					Err:     fmt.Errorf("unrecognized arguments: %s", strings.Join(rest, " ")),
				}
			}
			extras = rest
		}
		if sel.sub != nil {
			ns.Func = sel.sub
		}
	}
	return ns, extras, nil
}

// collectOptions stores the option values of this level in the namespace,
// checking required options, choices, and mutually exclusive groups.
func (l *level) collectOptions(ns *Namespace) error {
	var missing []string
	for _, b := range l.options {
		if b.arg.required && !b.flag.Changed {
			missing = append(missing, "--"+b.flag.Name)
		}
		if b.flag.Changed {
			if err := checkChoices(b.flag, b.arg.choices); err != nil {
				return fmt.Errorf("argument --%s: %w", b.flag.Name, err)
			}
		}
		ns.Set(b.arg.Dest(), b.value())
	}
	if len(missing) > 0 {
		return fmt.Errorf("the following arguments are required: %s", strings.Join(missing, ", "))
	}
	for _, g := range l.desc.groups {
		if !g.exclusive {
			continue
		}
		var set []string
		for _, arg := range g.members {
			if b := l.bound[arg]; b.flag.Changed {
				set = append(set, "--"+b.flag.Name)
			}
		}
		if len(set) > 1 {
			return fmt.Errorf("arguments %s are mutually exclusive", strings.Join(set, ", "))
		}
	}
	return nil
}

// checkNoCommand checks the remaining arguments of a level with subparsers
// where no subparser has been selected.
func (l *level) checkNoCommand(args []string) error {
	if len(args) > 0 {
		msg := fmt.Sprintf("invalid choice: %q (choose from %s)", args[0], strings.Join(l.commandNames(), ", "))
		if suggestions := l.cmd.SuggestionsFor(args[0]); len(suggestions) > 0 {
			msg += fmt.Sprintf(", did you mean %q?", suggestions[0])
		}
		return errors.New(msg)
	}
	if l.subgroup.opts.Required {
		return fmt.Errorf("the following arguments are required: {%s}", strings.Join(l.commandNames(), ","))
	}
	return nil
}

func (l *level) commandNames() []string {
	names := make([]string, 0, len(l.children))
	for _, child := range l.children {
		names = append(names, child.name)
	}
	return names
}

// assign distributes the positional command line arguments to the
// positional arguments, greedily from left to right while reserving the
// minimum number of values still needed by the following ones. It returns
// the surplus arguments.
func (l *level) assign(args []string) ([]string, error) {
	rest := args
	for idx, b := range l.positionals {
		reserve := 0
		for _, later := range l.positionals[idx+1:] {
			reserve += later.arg.arity.min
		}
		take := len(rest) - reserve
		if max := b.arg.arity.max; max >= 0 && take > max {
			take = max
		}
		if take < 0 {
			take = 0
		}
		if take < b.arg.arity.min {
			var missing []string
			for _, m := range l.positionals[idx:] {
				if m.arg.arity.min > 0 {
					missing = append(missing, displayName(m.arg))
				}
			}
			return nil, fmt.Errorf("the following arguments are required: %s", strings.Join(missing, ", "))
		}
		if take == 0 {
			continue
		}
		if err := setValues(b.flag, rest[:take]); err != nil {
			return nil, fmt.Errorf("argument %s: %w", displayName(b.arg), err)
		}
		b.flag.Changed = true
		rest = rest[take:]
	}
	return rest, nil
}

// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// usageColumns is the width flag usages get wrapped at.
const usageColumns = 80

// usage renders the usage of a materialized command with its argument
// groups in their own titled sections, in the order of declaration.
func (t *tree) usage(cmd *cobra.Command) error {
	w := cmd.OutOrStderr()
	l, ok := t.levels[cmd]
	if !ok {
		_, err := fmt.Fprintf(w, "Usage:\n  %s\n", cmd.UseLine())
		return err
	}

	useline := cmd.UseLine()
	if l == t.root && t.parser.usage != "" {
		useline = t.parser.usage
	}
	fmt.Fprintf(w, "Usage:\n  %s\n", useline)
	if len(cmd.Aliases) > 0 {
		fmt.Fprintf(w, "\nAliases:\n  %s\n", strings.Join(append([]string{cmd.Name()}, cmd.Aliases...), ", "))
	}

	if len(l.positionals) > 0 {
		fmt.Fprintf(w, "\nArguments:\n")
		writePositionals(w, l.positionals)
	}

	// Positional group members are listed together with the other
	// positionals, so group sections show only the group's flags.
	for _, g := range l.desc.groups {
		fs := pflag.NewFlagSet(g.name, pflag.ContinueOnError)
		fs.SortFlags = false
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if ann := f.Annotations[GroupAnnotation]; len(ann) == 1 && ann[0] == g.name {
				fs.AddFlag(f)
			}
		})
		if !fs.HasFlags() {
			continue
		}
		fmt.Fprintf(w, "\n%s:\n", g.displayTitle())
		if g.description != "" {
			fmt.Fprintf(w, "  %s\n\n", g.description)
		}
		fmt.Fprint(w, fs.FlagUsagesWrapped(usageColumns))
	}

	ungrouped := pflag.NewFlagSet("flags", pflag.ContinueOnError)
	ungrouped.SortFlags = false
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if _, ok := f.Annotations[GroupAnnotation]; !ok {
			ungrouped.AddFlag(f)
		}
	})
	if ungrouped.HasFlags() {
		fmt.Fprintf(w, "\nFlags:\n%s", ungrouped.FlagUsagesWrapped(usageColumns))
	}

	if l.subgroup != nil {
		fmt.Fprintf(w, "\n%s:\n", l.subgroup.opts.Title)
		if l.subgroup.opts.Description != "" {
			fmt.Fprintf(w, "  %s\n\n", l.subgroup.opts.Description)
		}
		width := 0
		for _, child := range l.children {
			if len(child.name) > width {
				width = len(child.name)
			}
		}
		for _, child := range l.children {
			fmt.Fprintf(w, "  %-*s   %s\n", width, child.name, child.cmd.Short)
		}
	}

	if cmd.Example != "" {
		fmt.Fprintf(w, "\nExamples:\n%s\n", cmd.Example)
	}
	if l.subgroup != nil {
		fmt.Fprintf(w, "\nUse \"%s COMMAND --help\" for more information about a command.\n", cmd.CommandPath())
	}
	if l.epilog != "" {
		fmt.Fprintf(w, "\n%s\n", strings.TrimRight(l.epilog, "\n"))
	}
	return nil
}

// writePositionals writes the positional arguments with their help texts
// and defaults, aligned in a column.
func writePositionals(w io.Writer, positionals []*binding) {
	width := 0
	for _, b := range positionals {
		if n := len(displayName(b.arg)); n > width {
			width = n
		}
	}
	for _, b := range positionals {
		help := helpText(b.arg)
		if b.hasDefault {
			help += fmt.Sprintf(" (default %s)", b.flag.DefValue)
		}
		fmt.Fprintf(w, "  %-*s   %s\n", width, displayName(b.arg), strings.TrimSpace(help))
	}
}

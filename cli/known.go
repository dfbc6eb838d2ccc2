// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package cli

import (
	"strings"

	"golang.org/x/exp/slices"
)

// token is a command line argument together with its position.
type token struct {
	idx int
	arg string
}

// knownScan is the result of separating the unknown flags from the command
// line before handing it to the engine when parsing known arguments only.
type knownScan struct {
	args        []string // command line without the unknown flags
	unknown     []token  // unknown flags together with their values
	positionals []token  // positional arguments of the deepest command level
}

// scanKnown walks the command line along the command levels the engine is
// going to select, removing the flags unknown to the respective level. An
// unknown flag without "=" takes the following argument as its value,
// unless that argument is a flag or a command name.
func scanKnown(args []string, root *level) *knownScan {
	s := &knownScan{args: make([]string, 0, len(args))}
	l := root
	descend := true
	for idx := 0; idx < len(args); idx++ {
		arg := args[idx]
		if arg == "--" {
			s.args = append(s.args, args[idx:]...)
			for rest := idx + 1; rest < len(args); rest++ {
				s.positionals = append(s.positionals, token{idx: rest, arg: args[rest]})
			}
			break
		}
		if len(arg) < 2 || arg[0] != '-' {
			if child := l.child(arg); descend && child != nil {
				l = child
				s.positionals = nil
			} else {
				descend = false
				s.positionals = append(s.positionals, token{idx: idx, arg: arg})
			}
			s.args = append(s.args, arg)
			continue
		}
		known, needsValue := l.flagArg(arg)
		if !known {
			s.unknown = append(s.unknown, token{idx: idx, arg: arg})
			if !strings.Contains(arg, "=") && idx+1 < len(args) {
				next := args[idx+1]
				if !strings.HasPrefix(next, "-") && (!descend || l.child(next) == nil) {
					idx++
					s.unknown = append(s.unknown, token{idx: idx, arg: next})
				}
			}
			continue
		}
		s.args = append(s.args, arg)
		if needsValue && idx+1 < len(args) {
			idx++
			s.args = append(s.args, args[idx])
		}
	}
	return s
}

// extras returns the unknown flags and the surplus positional arguments
// in command line order.
func (s *knownScan) extras(surplus []string) []string {
	var tail []token
	if n := len(surplus); n <= len(s.positionals) {
		tail = s.positionals[len(s.positionals)-n:]
	} else {
		for _, arg := range surplus {
			tail = append(tail, token{idx: len(s.args) + len(s.unknown), arg: arg})
		}
	}
	extras := make([]string, 0, len(s.unknown)+len(tail))
	u, t := 0, 0
	for u < len(s.unknown) || t < len(tail) {
		if t >= len(tail) || u < len(s.unknown) && s.unknown[u].idx < tail[t].idx {
			extras = append(extras, s.unknown[u].arg)
			u++
			continue
		}
		extras = append(extras, tail[t].arg)
		t++
	}
	return extras
}

// child returns the subcommand level with the specified name or alias.
func (l *level) child(name string) *level {
	for _, child := range l.children {
		if child.name == name || slices.Contains(child.cmd.Aliases, name) {
			return child
		}
	}
	return nil
}

// flagArg checks whether the flag argument arg is known to this level and
// whether it takes the following argument as its value.
func (l *level) flagArg(arg string) (known, needsValue bool) {
	fs := l.cmd.Flags()
	if strings.HasPrefix(arg, "--") {
		name, _, hasValue := strings.Cut(arg[2:], "=")
		f := fs.Lookup(name)
		if f == nil {
			return false, false
		}
		return true, !hasValue && f.NoOptDefVal == ""
	}
	shorthands := arg[1:]
	for idx := 0; idx < len(shorthands); idx++ {
		f := fs.ShorthandLookup(shorthands[idx : idx+1])
		if f == nil {
			return idx > 0, false
		}
		if f.NoOptDefVal == "" {
			// the remainder, if any, is the value.
			return true, idx == len(shorthands)-1
		}
	}
	return true, false
}

// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package cli

import (
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"golang.org/x/exp/slices"
)

// Build merges the declaration with the descriptors of its bases and
// resolves the argument groups and the subparser group. It returns a
// *DeclarationError when the declaration is faulty, such as when a group
// lists an unknown member.
//
// Merging always starts with the bases, left to right, each in its own
// order, followed by this declaration's items in declaration order. A
// later declaration of the same name shadows an earlier one and takes over
// its position.
func (d *Declaration) Build() (*Descriptor, error) {
	if err := d.check(); err != nil {
		return nil, err
	}
	desc := &Descriptor{
		description: d.description,
		usage:       d.usage,
		epilog:      d.epilog,
	}
	for _, base := range d.bases {
		if desc.description == "" {
			desc.description = base.description
		}
		if desc.usage == "" {
			desc.usage = base.usage
		}
		if desc.epilog == "" {
			desc.epilog = base.epilog
		}
	}

	args := d.mergeArguments()
	if err := checkTokens(args); err != nil {
		return nil, err
	}
	groups, consumed, err := d.resolveGroups(args)
	if err != nil {
		return nil, err
	}
	desc.groups = groups
	for pair := args.Oldest(); pair != nil; pair = pair.Next() {
		desc.all = append(desc.all, pair.Value)
		if !consumed[pair.Key] {
			desc.arguments = append(desc.arguments, pair.Value)
		}
	}

	desc.subparsers = d.mergeSubparsers()
	if desc.subparserGroup, err = d.resolveSubparserGroup(desc.subparsers); err != nil {
		return nil, err
	}
	if desc.subparserGroup != nil {
		for _, arg := range desc.all {
			if arg.positional {
				return nil, &DeclarationError{
					Field: arg.name,
					Err:   errors.New("positional arguments cannot be combined with subparsers"),
				}
			}
		}
	}
	log.Debugf("built declaration with %d arguments (%d ungrouped), %d groups, %d subparsers",
		len(desc.all), len(desc.arguments), len(desc.groups), desc.subparsers.Len())
	return desc, nil
}

// check validates the individual own declarations.
func (d *Declaration) check() error {
	fields := map[string]bool{}
	for _, it := range d.items {
		if it.subgroup != nil {
			continue
		}
		if it.field == "" {
			return &DeclarationError{Err: errors.New("empty field name")}
		}
		if fields[it.field] {
			return &DeclarationError{Field: it.field, Err: errors.New("field declared more than once")}
		}
		fields[it.field] = true
		switch {
		case it.arg != nil:
			if err := it.arg.validate(); err != nil {
				return &DeclarationError{Field: it.field, Err: err}
			}
		case it.sub == nil && it.group == nil:
			return &DeclarationError{Field: it.field, Err: errors.New("nil subparser")}
		}
	}
	return nil
}

// mergeArguments returns the merged name→argument mapping in final order.
func (d *Declaration) mergeArguments() *orderedmap.OrderedMap[string, *Argument] {
	args := orderedmap.New[string, *Argument]()
	shadow := func(arg *Argument) {
		if _, present := args.Delete(arg.name); present {
			log.Debugf("argument %q shadows an inherited declaration", arg.name)
		}
		args.Set(arg.name, arg)
	}
	for _, base := range d.bases {
		for _, arg := range base.all {
			shadow(arg)
		}
	}
	for _, it := range d.items {
		if it.arg != nil {
			shadow(it.arg)
		}
	}
	return args
}

// resolveGroups merges the inherited and own argument groups and resolves
// their members against the merged arguments. It additionally returns the
// set of argument names consumed by the groups.
func (d *Declaration) resolveGroups(args *orderedmap.OrderedMap[string, *Argument]) ([]*ArgumentGroup, map[string]bool, error) {
	merged := orderedmap.New[string, *ArgumentGroup]()
	for _, base := range d.bases {
		for _, g := range base.groups {
			merged.Delete(g.name)
			merged.Set(g.name, g)
		}
	}
	for _, it := range d.items {
		if it.group != nil {
			merged.Delete(it.group.name)
			merged.Set(it.group.name, it.group)
		}
	}
	consumed := map[string]bool{}
	groups := make([]*ArgumentGroup, 0, merged.Len())
	for pair := merged.Oldest(); pair != nil; pair = pair.Next() {
		g := pair.Value
		members := make([]*Argument, 0, len(g.memberNames))
		for _, name := range g.memberNames {
			arg, ok := args.Get(name)
			if !ok {
				return nil, nil, &DeclarationError{
					Field: g.name,
					Err:   fmt.Errorf("unknown group member %q", name),
				}
			}
			if consumed[name] {
				return nil, nil, &DeclarationError{
					Field: g.name,
					Err:   fmt.Errorf("argument %q already belongs to another group", name),
				}
			}
			if g.exclusive && (arg.positional || arg.required) {
				return nil, nil, &DeclarationError{
					Field: g.name,
					Err:   fmt.Errorf("mutually exclusive group member %q must be an optional option", name),
				}
			}
			consumed[name] = true
			members = append(members, arg)
		}
		groups = append(groups, g.resolved(members))
	}
	return groups, consumed, nil
}

// mergeSubparsers returns the merged name→subparser mapping in final order.
func (d *Declaration) mergeSubparsers() *orderedmap.OrderedMap[string, *Subparser] {
	subs := orderedmap.New[string, *Subparser]()
	for _, base := range d.bases {
		for pair := base.subparsers.Oldest(); pair != nil; pair = pair.Next() {
			subs.Delete(pair.Key)
			subs.Set(pair.Key, pair.Value)
		}
	}
	for _, it := range d.items {
		if it.sub != nil {
			subs.Delete(it.field)
			subs.Set(it.field, it.sub)
		}
	}
	return subs
}

// resolveSubparserGroup determines the single active subparser group: the
// first own one, else the one inherited from the rightmost base having one,
// else a group synthesized from all subparsers in their merged order.
func (d *Declaration) resolveSubparserGroup(subs *orderedmap.OrderedMap[string, *Subparser]) (*SubparserGroup, error) {
	var group *SubparserGroup
	for _, it := range d.items {
		if it.subgroup == nil {
			continue
		}
		if group != nil {
			log.Warnf("ignoring additional subparser group %q", it.subgroup.opts.Title)
			continue
		}
		group = it.subgroup
	}
	if group == nil {
		for idx := len(d.bases) - 1; idx >= 0; idx-- {
			if g := d.bases[idx].subparserGroup; g != nil {
				group = g
				break
			}
		}
	}
	if group == nil || group.synthesized {
		if subs.Len() == 0 {
			return nil, nil
		}
		opts := SubparsersOptions{}.withDefaults()
		if group != nil {
			opts = group.opts
		}
		group = &SubparserGroup{opts: opts, synthesized: true}
		for pair := subs.Oldest(); pair != nil; pair = pair.Next() {
			group.memberNames = append(group.memberNames, pair.Key)
		}
	}

	members := make([]*Subparser, 0, len(group.memberNames))
	names := map[string]string{}
	for _, field := range group.memberNames {
		sub, ok := subs.Get(field)
		if !ok {
			return nil, &DeclarationError{
				Field: field,
				Err:   fmt.Errorf("unknown subparser group member %q", field),
			}
		}
		for _, name := range append([]string{sub.commandName(field)}, sub.aliases...) {
			if other, ok := names[name]; ok {
				return nil, &DeclarationError{
					Field: field,
					Err:   fmt.Errorf("command name %q already used by %q", name, other),
				}
			}
			names[name] = field
		}
		members = append(members, sub)
	}
	for pair := subs.Oldest(); pair != nil; pair = pair.Next() {
		if !slices.Contains(group.memberNames, pair.Key) {
			log.Warnf("subparser %q is not a member of the subparser group", pair.Key)
		}
	}
	return group.resolved(members), nil
}

// checkTokens rejects option flag names used more than once, as well as the
// names reserved for the help flag.
func checkTokens(args *orderedmap.OrderedMap[string, *Argument]) error {
	seen := map[string]string{}
	for pair := args.Oldest(); pair != nil; pair = pair.Next() {
		arg := pair.Value
		if arg.positional {
			continue
		}
		for _, token := range arg.Tokens() {
			if token == "--help" || token == "-h" {
				return &DeclarationError{
					Field: arg.name,
					Err:   fmt.Errorf("option name %q is reserved", token),
				}
			}
			if other, ok := seen[token]; ok {
				return &DeclarationError{
					Field: arg.name,
					Err:   fmt.Errorf("option name %q already used by %q", token, other),
				}
			}
			seen[token] = arg.name
		}
		if long, _ := arg.flagNames(); long == "" {
			// short-only options get registered under their dest as long
			// name, so that must not clash either.
			token := "--" + arg.Dest()
			if other, ok := seen[token]; ok && other != arg.name {
				return &DeclarationError{
					Field: arg.name,
					Err:   fmt.Errorf("option name %q already used by %q", strings.TrimPrefix(token, "--"), other),
				}
			}
			seen[token] = arg.name
		}
	}
	return nil
}

/*
Package cli is a declarative layer over the [cobra] command line parsing
engine. Instead of registering flags and commands imperatively, a
[Declaration] lists the arguments, argument groups, and nested subparsers
(subcommands) of a command. Building a declaration merges in the
declarations of its bases and results in an immutable [Descriptor].

A [Parser] then materializes a fresh cobra command tree from a descriptor
each time it parses a command line, returning the parsed values in a
[Namespace]. When the selected (sub) command is a leaf [Subparser], the
namespace's handler is set to this subparser, so that callers simply
[Namespace.Dispatch] to it.

# Declaring

	var base = cli.MustBuild(cli.Declare().
		Option("verbose", cli.Names("--verbose", "-v"), cli.Type(cli.Count)))

	var desc = cli.MustBuild(cli.Declare(base).
		Argument("path", cli.Help("file to process")).
		Option("count", cli.Type(cli.Int), cli.Default(1)).
		Option("json", cli.Type(cli.Bool)).
		Option("yaml", cli.Type(cli.Bool)).
		Group("format", "output format", "", []string{"json", "yaml"}, cli.Exclusive()))

Declarations are merged in order: first the bases from left to right, then
the declaration's own items in the order of declaration. A later
declaration of the same field name shadows an earlier one and takes over its
position. Argument groups list their members by field name; they show their
members in the listed order and remove them from the ungrouped arguments.

# Subparsers

Subparsers are declared either individually, in which case they form a
default subparser group in declaration order, or explicitly using
[Declaration.SubparserGroup] in order to set the group's title and
destination.

# Engine Restrictions

As cobra doesn't allow positional arguments in front of subcommands, a
command level with subparsers cannot have positional arguments. Options of
parent commands must be specified before the subcommand name.

[cobra]: https://github.com/spf13/cobra
*/
package cli

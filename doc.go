/*
Package kommons is a small library of common command line tool building
blocks: a declarative layer over the cobra command line parser in package
[github.com/siemens/kommons/cli], and a plugin loader for compiled-in plugin
modules in package [github.com/siemens/kommons/plugin].

The kommons command in cmd/kommons ties both together: its root command is
assembled from the command declarations of plugins, and it lists and shows
the plugin modules and classes available to it.

Declarations describe the arguments, argument groups, and subcommands of a
command once; building a declaration merges in the declarations of its
bases. A parser then materializes a fresh command tree from the built
declaration for each command line it parses, and dispatches to the handler
of the selected subcommand.
*/
package kommons

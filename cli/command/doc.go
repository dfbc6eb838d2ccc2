/*
Package command implements the kommons command and defines its plugin
extension points. This allows to build extended kommons tools that leverage
the existing base implementation.

# Extension Points

The following plugin “group” extension points are available (and also invoked in
this general order):

  - [SetupCLI]: for adding global options and subparsers (commands) to the
    kommons root declaration.
  - [CommandExamples]: for adding (more) examples to particular commands.
    These plugin functions are invoked after all [SetupCLI] plugins have been
    called, so that all commands have been declared by the time the examples
    should be extended with even more examples.
  - [BeforeCommand]: for checking and doing things after parsing and just
    before the command runs.
  - [PluginPaths]: for adding plugin module search paths.
  - [SemVer]: for overriding the version shown by the “version” command.

Simply put, the plugin mechanism used in kommons is compile-time only and allows
so-called plugins to register functions (and interface implementations) in what
is termed “groups”. The registered functions/interfaces then can be iterated
over. Additionally, the plugin mechanism allows control over the ordering of
plugins: for instance, this allows to register command examples to be picked up
after the kommons base examples. For more details about the plugin mechanism,
please refer to [go-plugger].

[go-plugger]: https://github.com/thediveo/go-plugger
*/
package command

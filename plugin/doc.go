/*
Package plugin loads plugin modules and finds the classes (implementations)
they provide.

Plugin modules are compiled in: they register a [Provider] from their init
functions, using [Register] together with the module's location. Providers
are kept in a [go-plugger] group, so plugin modules only need to be
imported (usually anonymously) in order to become loadable.

	func init() {
		plugin.Register(func() plugin.Module {
			return plugin.Module{
				Name:     "greet",
				Location: "plugins/greet",
				Classes:  []*plugin.Class{...},
			}
		}, "plugins/greet")
	}

A [Loader] then resolves module names against its search paths in order,
where dotted names such as "plugins.greet" refer to the location
"plugins/greet". Loading a module that cannot be found as well as looking
up an unknown class are not errors; a warning gets logged instead and the
caller receives a (nil, false) result.

[go-plugger]: https://github.com/thediveo/go-plugger
*/
package plugin

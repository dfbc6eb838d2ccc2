/*
Package greet is a kommons plugin module providing greeter classes as well as
the “greet” command using them.

Importing this package for its side effects registers the plugin module at
the location "plugins/greet", so that the module is found as "greet" when
using the default plugin path.
*/
package greet

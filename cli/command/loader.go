// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package command

import (
	"os"
	"strings"

	"github.com/siemens/kommons"
	"github.com/siemens/kommons/cli"
	"github.com/siemens/kommons/plugin"
	"github.com/thediveo/go-plugger/v3"
)

func init() {
	plugger.Group[SetupCLI]().Register(LoaderSetupCLI, plugger.WithPlugin("loader"))
}

// LoaderSetupCLI declares the global “--plugin-path” CLI flag.
func LoaderSetupCLI(decl *cli.Declaration) {
	decl.Option("pluginpath", cli.Names("--plugin-path"), cli.Dest("pluginpath"),
		cli.NArgs(cli.ZeroOrMore),
		cli.Metavar("PATH"),
		cli.Help("search PATH for plugin modules; can be specified multiple times"))
}

// NewLoader returns a plugin module loader searching the paths given by the
// “--plugin-path” CLI flag, followed by the colon-separated paths in the
// KOMMONS_PLUGIN_PATH environment variable, and finally the paths returned by
// the registered PluginPaths plugins. If there are no paths at all, the
// loader searches kommons.DefaultPluginPath.
func NewLoader(ns *cli.Namespace) *plugin.Loader {
	l := plugin.NewLoader()
	if ns != nil {
		if paths, ok := ns.GetOr("pluginpath", nil).([]string); ok {
			l.AddPaths(paths)
		}
	}
	for _, p := range strings.Split(os.Getenv(kommons.PluginPathEnv), ":") {
		if p != "" {
			l.AddPath(p)
		}
	}
	for _, pluginPaths := range plugger.Group[PluginPaths]().Symbols() {
		l.AddPaths(pluginPaths())
	}
	if len(l.Paths()) == 0 {
		l.AddPath(kommons.DefaultPluginPath)
	}
	return l
}

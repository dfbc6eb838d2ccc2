// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/siemens/kommons/cli"
	"github.com/siemens/kommons/plugin"
	"github.com/thediveo/go-plugger/v3"
)

// Provides the “kommons version” command. In addition to the semantic version
// the version command lists the registered plugin modules.
var versionCmd = cli.NewSubparser(nil,
	cli.Short("Show version (with registered plugin modules)."),
	cli.Run(func(ctx context.Context, ns *cli.Namespace) error {
		plugins := strings.Join(plugger.Group[plugin.Provider]().Plugins(), ", ")
		if plugins == "" {
			plugins = "(none)"
		}
		_, err := fmt.Fprintf(stdout, "kommons version %s (plugin modules: %s)\n",
			semver(), plugins)
		return err
	}))

func init() {
	plugger.Group[SetupCLI]().Register(
		VersionSetupCLI, plugger.WithPlugin("version"))
}

// VersionSetupCLI adds the “version” command.
func VersionSetupCLI(decl *cli.Declaration) {
	decl.Subparser("version", versionCmd)
}

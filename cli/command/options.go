// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/siemens/kommons/cli"
	"github.com/thediveo/go-plugger/v3"
)

// Provides the "kommons options" command which gives information about the
// available global CLI flags/options. This is modelled after what kubectl, etc.
// have on offer.
var optionsCmd = cli.NewSubparser(nil,
	cli.Short("List of global command-line options which apply to all commands."),
	cli.Run(func(ctx context.Context, ns *cli.Namespace) error {
		if rootParser == nil {
			return errors.New("no root command")
		}
		root, err := rootParser.Materialize()
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(stdout, root.Flags().FlagUsages())
		return err
	}))

func init() {
	plugger.Group[SetupCLI]().Register(OptionsSetupCLI, plugger.WithPlugin("options"))
}

// OptionsSetupCLI adds the "options" command.
func OptionsSetupCLI(decl *cli.Declaration) {
	decl.Subparser("options", optionsCmd)
}

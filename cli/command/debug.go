// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package command

import (
	"github.com/siemens/kommons/cli"
	log "github.com/sirupsen/logrus"
	"github.com/thediveo/go-plugger/v3"
)

func init() {
	plugger.Group[SetupCLI]().Register(DebugSetupCLI, plugger.WithPlugin("debug"))
	plugger.Group[BeforeCommand]().Register(DebugBeforeCommand, plugger.WithPlugin("debug"))
}

// DebugSetupCLI declares the “--debug” CLI flag.
func DebugSetupCLI(decl *cli.Declaration) {
	decl.Option("debug", cli.Names("--debug", "-d"), cli.Type(cli.Bool),
		cli.Help("Enable debug output"))
}

// DebugBeforeCommand enables debug logging when requested via the “--debug” flag.
func DebugBeforeCommand(ns *cli.Namespace) error {
	// When asked for, enable debug logging.
	if enable, _ := ns.GetOr("debug", false).(bool); enable {
		log.SetLevel(log.DebugLevel)
		log.Debugf("kommons version %s", semver())
	}
	return nil
}

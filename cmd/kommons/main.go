// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

// This is the main entry of the kommons CLI tool. There isn't actually much
// here to do except for running the kommons "root" command which will parse
// the CLI args and then hopefully invoke the correct command and sub-command.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	// Pull in all command and plugin module packages: they will register
	// themselves as needed, but we need the packages to get included, as
	// otherwise there are no references in the code which could pull them in
	// anyway.
	"github.com/siemens/kommons/cli/command"
	_ "github.com/siemens/kommons/plugins/greet"

	log "github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

func main() {
	// Establish logger output format in case we're hitting errors, et cetera.
	f := new(prefixed.TextFormatter)
	f.DisableColors = true
	f.ForceFormatting = true
	f.FullTimestamp = true
	f.TimestampFormat = "15:04:05"
	log.SetFormatter(f)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := command.Execute(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		cancel()
		os.Exit(1)
	}
}

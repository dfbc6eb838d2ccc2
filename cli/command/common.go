// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

// Implements the kommons "root" command with its global CLI flags. The
// commands as well as further global flags are declared by plugins.

package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/siemens/kommons"
	"github.com/siemens/kommons/cli"
	log "github.com/sirupsen/logrus"
	"github.com/thediveo/go-plugger/v3"
)

// stdout receives the output of commands.
var stdout io.Writer = os.Stdout

// common declares the global CLI flags that are always present, even before
// any plugin got a chance to add its own.
var common = cli.MustBuild(cli.Declare().
	Option("config", cli.Names("--config"), cli.Metavar("FILE"),
		cli.Help("read default flag values from the YAML FILE")))

// rootParser is the most recently assembled kommons root parser.
var rootParser *cli.Parser

// NewParser assembles the kommons root parser from the declarations of the
// registered SetupCLI plugins.
func NewParser(opts ...cli.ParserOption) (*cli.Parser, error) {
	decl := cli.Declare(common).
		Describe(`kommons is a CLI tool for inspecting the plugin modules compiled
into it, as well as the classes these plugin modules provide.`)
	// Call registered plugins in order to add further CLI args as well as
	// commands to the root declaration.
	for _, setupCLI := range plugger.Group[SetupCLI]().Symbols() {
		setupCLI(decl)
	}
	desc, err := decl.Build()
	if err != nil {
		return nil, err
	}
	// Fill in/expand command example sections, where additional command
	// examples are available.
	setExamples(desc, "")

	p := cli.NewParser(desc, append([]cli.ParserOption{
		cli.WithProg("kommons"),
		cli.WithVersion(semver()),
	}, opts...)...)
	p.SetSubparsersOptions(cli.SubparsersOptions{
		Title:    "Available Commands",
		Dest:     "command",
		Required: true,
	})
	rootParser = p
	return p, nil
}

// ConfigDefaults returns the flag defaults from the configuration file
// specified using "--config", if any. It ignores all other args.
func ConfigDefaults(args []string) (cli.Defaults, error) {
	p := cli.NewParser(common, cli.WithOutput(io.Discard))
	ns, _, err := p.ParseKnown(args)
	if err != nil {
		return nil, nil
	}
	config, _ := ns.GetOr("config", "").(string)
	if config == "" {
		return nil, nil
	}
	f, err := os.Open(config)
	if err != nil {
		return nil, fmt.Errorf("cannot open configuration: %w", err)
	}
	defer f.Close()
	log.Debugf("reading flag defaults from %q", config)
	return cli.LoadDefaults(f)
}

// Execute parses the specified CLI args, runs the registered before-the-command
// plugins, and finally dispatches to the chosen command.
func Execute(ctx context.Context, args []string, opts ...cli.ParserOption) error {
	defaults, err := ConfigDefaults(args)
	if err != nil {
		return err
	}
	p, err := NewParser(append(opts, cli.WithDefaults(defaults))...)
	if err != nil {
		return err
	}
	ns, err := p.Parse(args)
	if err != nil {
		if errors.Is(err, cli.ErrShown) {
			return nil
		}
		return err
	}
	for _, beforeCmd := range plugger.Group[BeforeCommand]().Symbols() {
		if err := beforeCmd(ns); err != nil {
			return err
		}
	}
	return ns.Dispatch(ctx)
}

// semver returns the semantic version of the CLI binary.
func semver() string {
	for _, pluginsemver := range plugger.Group[SemVer]().Symbols() {
		return pluginsemver()
	}
	return kommons.SemVersion
}

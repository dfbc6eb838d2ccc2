// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package command

import "github.com/siemens/kommons/cli"

// SetupCLI defines an exposed plugin symbol type for adding “things” to the
// kommons root declaration, such as global options and subparsers.
type SetupCLI func(*cli.Declaration)

// CommandExamples defines an exposed symbol with CLI examples, indexed by a
// particular (sub) command name.
type CommandExamples func() map[string]string

// BeforeCommand defines an exposed plugin symbol type for running checks after
// the command line args have been parsed and before dispatching to the
// (chosen) command.
type BeforeCommand func(*cli.Namespace) error

// PluginPaths defines an exposed plugin symbol type for returning additional
// plugin module search paths. They are searched after the paths given on the
// command line and in the environment.
type PluginPaths func() []string

// SemVer defines an exposed plugin symbol type for returning (overriding) the
// CLI binary's semantic version. The first plugin will win.
type SemVer func() string

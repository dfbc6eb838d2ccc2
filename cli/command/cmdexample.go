// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package command

import (
	"strings"

	"github.com/siemens/kommons/cli"
	"github.com/thediveo/go-plugger/v3"
)

// Examples collects all examples for the specified command from the registered
// plugins. The examples returned by plugins are always separate with empty
// lines, yet there isn't any trailing newline for the overall section.
func Examples(command string) string {
	examples := ""
	for _, example := range plugger.Group[CommandExamples]().Symbols() {
		text := strings.TrimSuffix(example()[command], "\n")
		if text == "" {
			continue
		}
		if examples != "" {
			examples += "\n\n"
		}
		examples += text
	}
	return examples
}

// setExamples fills in the example sections of the subparsers in desc from
// the registered plugins, descending into nested subparsers. Nested commands
// are identified by their space separated command path below the root, such
// as "plugins list".
func setExamples(desc *cli.Descriptor, prefix string) {
	for _, name := range desc.Subparsers() {
		sub, _ := desc.Subparser(name)
		if examples := Examples(prefix + name); examples != "" {
			sub.SetExample(examples)
		}
		setExamples(sub.Descriptor(), prefix+name+" ")
	}
}

// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package greet

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/siemens/kommons/cli"
	"github.com/siemens/kommons/cli/command"
	log "github.com/sirupsen/logrus"
	"github.com/thediveo/go-plugger/v3"
)

// stdout receives the greetings.
var stdout io.Writer = os.Stdout

// greetCmd defines the "kommons greet" command.
var greetCmd = cli.NewSubparser(
	cli.MustBuild(cli.Declare().
		Argument("name", cli.Metavar("NAME"), cli.Help("whom to greet")).
		Option("loud", cli.Names("--loud", "-l"), cli.Type(cli.Bool),
			cli.Help("greet using the LoudGreeter class")).
		Option("class", cli.Names("--class"), cli.Metavar("CLASS"),
			cli.Help("greet using the named CLASS of the greet module")).
		Option("times", cli.Names("--times", "-n"), cli.Type(cli.Int), cli.Default(1),
			cli.Help("number of greetings")).
		Option("salutation", cli.Names("--salutation"), cli.Choices("Hello", "Hi", "Howdy"),
			cli.Help("salutation to use")).
		Group("greeter", "Greeter Flags", "Select the greeter class to use.",
			[]string{"loud", "class"}, cli.Exclusive())),
	cli.Aliases("hello"),
	cli.Short("Greet someone using a greeter class from the greet plugin module"),
	cli.Run(greet))

func init() {
	plugger.Group[command.SetupCLI]().Register(
		GreetSetupCLI, plugger.WithPlugin("greet"))
	plugger.Group[command.CommandExamples]().Register(
		func() map[string]string {
			return map[string]string{
				"greet": `# Greet the world.
kommons greet world

# Loudly greet the world three times.
kommons greet --loud --times 3 world`,
			}
		},
		plugger.WithPlugin("greet"), plugger.WithPlacement("<"))
}

// GreetSetupCLI adds the “greet” command.
func GreetSetupCLI(decl *cli.Declaration) {
	decl.Subparser("greet", greetCmd)
}

// greet loads the selected greeter class and greets.
func greet(ctx context.Context, ns *cli.Namespace) error {
	class := cli.Value[string](ns, "class")
	if class == "" {
		class = "Greeter"
		if cli.Value[bool](ns, "loud") {
			class = "LoudGreeter"
		}
	}
	times := cli.Value[int](ns, "times")
	if times < 0 {
		return fmt.Errorf("invalid --times %d", times)
	}
	l := command.NewLoader(ns)
	c, ok := l.Load("greet", class)
	if !ok {
		return fmt.Errorf("no greeter class %q", class)
	}
	greeter, ok := c.New().(Greeter)
	if !ok {
		return fmt.Errorf("class %q is not a greeter", class)
	}
	if salutation := cli.Value[string](ns, "salutation"); salutation != "" {
		switch g := greeter.(type) {
		case *Plain:
			g.Salutation = salutation
		case *Loud:
			g.Salutation = salutation
		}
	}
	log.Debugf("greeting %d times using %s", times, c.TypeName())
	name := cli.Value[string](ns, "name")
	for i := 0; i < times; i++ {
		if _, err := fmt.Fprintln(stdout, greeter.Greet(name)); err != nil {
			return err
		}
	}
	return nil
}

// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package command

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"reflect"

	"github.com/siemens/kommons"
	"github.com/siemens/kommons/cli"
	"github.com/siemens/kommons/plugin"
	log "github.com/sirupsen/logrus"
	"github.com/thediveo/go-plugger/v3"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type alpha struct{}
type beta struct{}
type gamma struct{}

func init() {
	plugin.Register(func() plugin.Module {
		return plugin.Module{
			Name:     "testing",
			Location: "plugins/testing",
			Classes: []*plugin.Class{
				{Name: "Beta", Type: reflect.TypeOf(beta{}), Description: "second"},
				{Name: "Alpha", Type: reflect.TypeOf(alpha{}), Description: "first"},
				{Name: "Gamma", Module: "other", Type: reflect.TypeOf(gamma{})},
			},
		}
	}, "plugins/testing")
	plugger.Group[CommandExamples]().Register(func() map[string]string {
		return map[string]string{"plugins list": "kommons plugins list testing\n"}
	}, plugger.WithPlugin("testing-1"))
	plugger.Group[CommandExamples]().Register(func() map[string]string {
		return map[string]string{"plugins list": "kommons plugins list -o wide"}
	}, plugger.WithPlugin("testing-2"))
}

// run executes the kommons root command with the specified args, returning
// the command output as well as the output of the parser.
func run(args ...string) (string, string, error) {
	var out, parserOut bytes.Buffer
	oldstdout := stdout
	stdout = &out
	defer func() { stdout = oldstdout }()
	err := Execute(context.Background(), args, cli.WithOutput(&parserOut))
	return out.String(), parserOut.String(), err
}

var _ = Describe("kommons commands", func() {

	BeforeEach(func() {
		Expect(os.Unsetenv(kommons.PluginPathEnv)).To(Succeed())
	})

	It("requires a command", func() {
		_, _, err := run()
		Expect(err).To(MatchError(ContainSubstring("the following arguments are required: {")))
	})

	It("shows help", func() {
		out, help, err := run("--help")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(BeEmpty())
		Expect(help).To(ContainSubstring("Available Commands:"))
		Expect(help).To(ContainSubstring("plugins"))
		Expect(help).To(ContainSubstring("--plugin-path"))
	})

	It("shows the version with registered plugin modules", func() {
		out, _, err := run("version")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("kommons version " + kommons.SemVersion +
			" (plugin modules: plugins/testing)\n"))
	})

	It("enables debug logging", func() {
		defer log.SetLevel(log.GetLevel())
		_, _, err := run("-d", "version")
		Expect(err).NotTo(HaveOccurred())
		Expect(log.GetLevel()).To(Equal(log.DebugLevel))
	})

	It("lists the global options", func() {
		out, _, err := run("options")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("--config"))
		Expect(out).To(ContainSubstring("--debug"))
		Expect(out).To(ContainSubstring("--plugin-path"))
	})

	When("inspecting plugin modules", func() {

		It("lists class names of all modules in order", func() {
			out, _, err := run("plugins", "list", "-o", "name")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(MatchRegexp(`^Alpha\s*\nBeta\s*\n$`))
		})

		It("sorts class listings as requested", func() {
			out, _, err := run("plugins", "list", "-o", "name", "--sort-by", "", "testing")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(MatchRegexp(`^Beta\s*\nAlpha\s*\n$`))

			out, _, err = run("plugins", "list", "-o", "name", "--sort-by", "{.Description}", "testing")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(MatchRegexp(`^Alpha\s*\nBeta\s*\n$`))
		})

		It("lists re-exported classes when asked to", func() {
			out, _, err := run("plugins", "ls", "--all", "--no-headers", "testing")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).NotTo(ContainSubstring("MODULE"))
			Expect(out).To(ContainSubstring("Gamma"))
			Expect(out).To(ContainSubstring("first"))
		})

		It("lists in JSON format", func() {
			out, _, err := run("plugins", "list", "-o", "json", "testing")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring(`"Alpha"`))
			Expect(out).To(ContainSubstring(`"plugins/testing"`))
		})

		It("rejects unknown modules", func() {
			_, _, err := run("plugins", "list", "nada")
			Expect(err).To(MatchError(`no such plugin module "nada"`))
			_, _, err = run("--plugin-path", "elsewhere", "plugins", "list", "testing")
			Expect(err).To(MatchError(`no such plugin module "testing"`))
		})

		It("shows class details", func() {
			out, _, err := run("plugins", "show", "testing", "Gamma")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("name: Gamma\n"))
			Expect(out).To(ContainSubstring("defined-in: other\n"))
			Expect(out).To(ContainSubstring("imported: true\n"))

			_, _, err = run("plugins", "show", "testing", "Delta")
			Expect(err).To(MatchError(ContainSubstring(`no class "Delta"`)))
		})

		It("requires a plugins subcommand", func() {
			_, _, err := run("plugins")
			Expect(err).To(MatchError(ContainSubstring("{list,show}")))
		})

	})

	It("collects examples from plugins", func() {
		Expect(Examples("plugins list")).To(Equal(
			"kommons plugins list testing\n\nkommons plugins list -o wide"))
		Expect(Examples("nada")).To(BeEmpty())

		_, help, err := run("plugins", "list", "--help")
		Expect(err).NotTo(HaveOccurred())
		Expect(help).To(ContainSubstring("kommons plugins list -o wide"))
	})

	When("searching for plugin modules", func() {

		It("defaults to the default plugin path", func() {
			Expect(NewLoader(nil).Paths()).To(Equal([]string{kommons.DefaultPluginPath}))
		})

		It("combines CLI flag and environment", func() {
			Expect(os.Setenv(kommons.PluginPathEnv, "env1::env2")).To(Succeed())
			p, err := NewParser(cli.WithOutput(io.Discard))
			Expect(err).NotTo(HaveOccurred())
			ns, err := p.Parse([]string{"--plugin-path", "cli1", "--plugin-path", "cli2/", "version"})
			Expect(err).NotTo(HaveOccurred())
			Expect(NewLoader(ns).Paths()).To(Equal([]string{"cli1", "cli2", "env1", "env2"}))
		})

	})

	When("reading flag defaults from a configuration file", func() {

		It("ignores a missing --config", func() {
			d, err := ConfigDefaults([]string{"-d", "plugins", "list"})
			Expect(err).NotTo(HaveOccurred())
			Expect(d).To(BeNil())
		})

		It("reads defaults", func() {
			config := filepath.Join(GinkgoT().TempDir(), "kommons.yaml")
			Expect(os.WriteFile(config, []byte("output: name\n"), 0644)).To(Succeed())
			d, err := ConfigDefaults([]string{"--config", config, "plugins", "list"})
			Expect(err).NotTo(HaveOccurred())
			Expect(d).To(HaveKeyWithValue("output", "name"))

			Expect(os.WriteFile(config, []byte("plugins:\n  list:\n    output: name\n"), 0644)).To(Succeed())
			out, _, err := run("--config", config, "plugins", "list", "testing")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(MatchRegexp(`^Alpha\s*\nBeta\s*\n$`))
		})

		It("fails on a missing configuration file", func() {
			_, err := ConfigDefaults([]string{"--config", "/nonexisting/kommons.yaml"})
			Expect(err).To(MatchError(ContainSubstring("cannot open configuration")))
		})

	})

})

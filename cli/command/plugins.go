// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

// Provides the "kommons plugins" command with its "list" and "show"
// subcommands for listing the plugin modules and their classes.

package command

import (
	"context"
	"fmt"

	"github.com/siemens/kommons/api"
	"github.com/siemens/kommons/cli"
	"github.com/siemens/kommons/plugin"
	log "github.com/sirupsen/logrus"
	"github.com/thediveo/go-plugger/v3"
	"github.com/thediveo/klo"
	"gopkg.in/yaml.v3"
)

// Builtin custom-columns templates
const (
	// ClassListTemplate defines the custom columns when listing classes.
	ClassListTemplate = "MODULE:{.Module},CLASS:{.Name},DESCRIPTION:{.Description}"
	// ClassWideListTemplate is like ClassListTemplate, but additionally tacks
	// on the module location, the implementing type, and the defining module.
	ClassWideListTemplate = "MODULE:{.Module},CLASS:{.Name},TYPE:{.Type},LOCATION:{.Location},DEFINED-IN:{.DefinedIn}"

	// NameListTemplate for handling "-o name" and only showing a custom "name"
	// column; this template should be used with no headers shown, as kubectl
	// and others do.
	NameListTemplate = "NAME:{.Name}"
)

// pluginsListCmd defines the "kommons plugins list" command.
var pluginsListCmd = cli.NewSubparser(
	cli.MustBuild(cli.Declare().
		Argument("modules", cli.NArgs(cli.ZeroOrMore), cli.Metavar("MODULE"),
			cli.Help("name of plugin module to list classes of; lists all modules if omitted")).
		Option("output", cli.Names("--output", "-o"), cli.Default(""),
			cli.Help("Output format. One of: json|yaml|wide|name|custom-columns=...|custom-columns-file=...|jsonpath=...|jsonpath-file=...")).
		Option("noheaders", cli.Names("--no-headers"), cli.Dest("noheaders"), cli.Type(cli.Bool),
			cli.Help("When using the default or custom-column output format, don't print headers (default print headers).")).
		Option("sortby", cli.Names("--sort-by"), cli.Dest("sortby"), cli.Default("{.Module}{'/'}{.Name}"),
			cli.Help("If non-empty, sort custom-columns using this field specification. The field specification is expressed as a JSONPath expression (e.g. '{.Name}').")).
		Option("all", cli.Names("--all", "-a"), cli.Type(cli.Bool),
			cli.Help("include classes re-exported from other modules"))),
	cli.Aliases("ls"),
	cli.Short("List the classes of plugin modules"),
	cli.Run(listClasses))

// pluginsShowCmd defines the "kommons plugins show" command.
var pluginsShowCmd = cli.NewSubparser(
	cli.MustBuild(cli.Declare().
		Argument("module", cli.Metavar("MODULE"), cli.Help("name of plugin module")).
		Argument("class", cli.Metavar("CLASS"), cli.Help("name of class"))),
	cli.Short("Show the details of a single class"),
	cli.Run(showClass))

// pluginsCmd defines the "kommons plugins" command grouping the above.
var pluginsCmd = cli.NewSubparser(
	cli.MustBuild(cli.Declare().
		Subparser("list", pluginsListCmd).
		Subparser("show", pluginsShowCmd).
		SubparserGroup(cli.SubparsersOptions{
			Title:    "Available Commands",
			Dest:     "plugins",
			Required: true,
		}, "list", "show")),
	cli.Short("Inspect plugin modules and their classes"))

func init() {
	plugger.Group[SetupCLI]().Register(PluginsSetupCLI, plugger.WithPlugin("plugins"))
}

// PluginsSetupCLI adds the “plugins” command.
func PluginsSetupCLI(decl *cli.Declaration) {
	decl.Subparser("plugins", pluginsCmd)
}

// classInfos returns the descriptions of the classes of the specified module.
func classInfos(l *plugin.Loader, m *plugin.Module, all bool) api.Classes {
	classes := l.Classes(m, nil, all)
	infos := make(api.Classes, 0, len(classes))
	for _, c := range classes {
		definedIn := c.Module
		if definedIn == "" {
			definedIn = m.Name
		}
		infos = append(infos, &api.ClassInfo{
			Module:      m.Name,
			Location:    m.Location,
			Name:        c.Name,
			Type:        c.TypeName(),
			Description: c.Description,
			DefinedIn:   definedIn,
			Imported:    c.Imported(m),
		})
	}
	return infos
}

// listClasses lists the classes of either the specified modules or of all
// available modules.
func listClasses(ctx context.Context, ns *cli.Namespace) error {
	all := cli.Value[bool](ns, "all")
	infos := api.Classes{}
	if modules := cli.Value[[]string](ns, "modules"); len(modules) != 0 {
		l := NewLoader(ns)
		for _, name := range modules {
			m, ok := l.Module(name)
			if !ok {
				return fmt.Errorf("no such plugin module %q", name)
			}
			infos = append(infos, classInfos(l, m, all)...)
		}
	} else {
		// Without any search paths the loader takes module names as their
		// locations.
		l := plugin.NewLoader()
		for _, location := range l.Available() {
			m, ok := l.Module(location)
			if !ok {
				continue
			}
			log.Debugf("found module %q at %q", m.Name, m.Location)
			infos = append(infos, classInfos(l, m, all)...)
		}
	}
	prn, err := getPrinter(ns)
	if err != nil {
		return err
	}
	// ...throwing in sorting, if not explicitly forbidden. It depends on the
	// object printer if it will honor the sorted data or will just impose its
	// own order anyway.
	if sortby := cli.Value[string](ns, "sortby"); sortby != "" {
		prn, err = klo.NewSortingPrinter(sortby, prn)
		if err != nil {
			return fmt.Errorf("invalid --sort-by: %w", err)
		}
	}
	prn.Fprint(stdout, infos)
	return nil
}

// getPrinter returns a value printer configured according to the output format
// chosen by the user, and some more optional output configuration flags.
func getPrinter(ns *cli.Namespace) (prn klo.ValuePrinter, err error) {
	outfmt := cli.Value[string](ns, "output")
	if outfmt == "name" {
		// Support "-o name" output format which uses our builtin custom-columns
		// template to only show class names, and hide the column header.
		prn, err = klo.PrinterFromFlag("custom-columns="+NameListTemplate, nil)
		if err != nil {
			panic(err)
		}
		prn.(*klo.CustomColumnsPrinter).HideHeaders = true
		return
	}
	prn, err = klo.PrinterFromFlag(outfmt, &klo.Specs{
		DefaultColumnSpec: ClassListTemplate,
		WideColumnSpec:    ClassWideListTemplate,
	})
	if err != nil {
		return
	}
	if ccprn, ok := prn.(*klo.CustomColumnsPrinter); ok {
		ccprn.Padding = 3
		ccprn.HideHeaders = cli.Value[bool](ns, "noheaders")
	}
	return
}

// showClass renders the details of a single class in YAML format.
func showClass(ctx context.Context, ns *cli.Namespace) error {
	module := cli.Value[string](ns, "module")
	class := cli.Value[string](ns, "class")
	l := NewLoader(ns)
	m, ok := l.Module(module)
	if !ok {
		return fmt.Errorf("no such plugin module %q", module)
	}
	c, ok := l.Find(m, class)
	if !ok {
		return fmt.Errorf("no class %q in plugin module %q", class, module)
	}
	var info *api.ClassInfo
	for _, ci := range classInfos(l, m, true) {
		if ci.Name == c.Name {
			info = ci
			break
		}
	}
	enc := yaml.NewEncoder(stdout)
	enc.SetIndent(2)
	if err := enc.Encode(info); err != nil {
		return err
	}
	return enc.Close()
}

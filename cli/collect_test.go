// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package cli_test

import (
	"errors"

	"github.com/siemens/kommons/cli"
	"github.com/spf13/pflag"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func argNames(args []*cli.Argument) []string {
	names := []string{}
	for _, arg := range args {
		names = append(names, arg.Name())
	}
	return names
}

func expectDeclarationError(d *cli.Declaration, field string) {
	desc, err := d.Build()
	ExpectWithOffset(1, desc).To(BeNil())
	var declErr *cli.DeclarationError
	ExpectWithOffset(1, errors.As(err, &declErr)).To(BeTrue(), "expected a declaration error, got %v", err)
	ExpectWithOffset(1, declErr.Field).To(Equal(field))
}

var _ = Describe("collecting declarations", func() {

	It("keeps the declaration order", func() {
		desc := cli.MustBuild(cli.Declare().
			Option("zulu").
			Argument("alpha").
			Option("mike").
			Argument("bravo"))
		args := desc.Arguments()
		Expect(argNames(args)).To(Equal([]string{"zulu", "alpha", "mike", "bravo"}))
		for idx := 1; idx < len(args); idx++ {
			Expect(args[idx].Sequence()).To(BeNumerically(">", args[idx-1].Sequence()))
		}
	})

	It("synthesizes tokens and destinations", func() {
		desc := cli.MustBuild(cli.Declare().
			Argument("path").
			Option("count", cli.Type(cli.Int)).
			Option("output", cli.Names("--output", "-o")).
			Option("verbose", cli.Names("-v"), cli.Type(cli.Count)).
			Option("level", cli.Names("--log-level"), cli.Dest("loglevel")))
		path, _ := desc.Lookup("path")
		Expect(path.Tokens()).To(Equal([]string{"path"}))
		Expect(path.Dest()).To(Equal("path"))
		count, _ := desc.Lookup("count")
		Expect(count.Tokens()).To(Equal([]string{"--count"}))
		Expect(count.Dest()).To(Equal("count"))
		output, _ := desc.Lookup("output")
		Expect(output.Tokens()).To(Equal([]string{"--output", "-o"}))
		Expect(output.Dest()).To(Equal("output"))
		verbose, _ := desc.Lookup("verbose")
		Expect(verbose.Dest()).To(Equal("v"))
		level, _ := desc.Lookup("level")
		Expect(level.Dest()).To(Equal("loglevel"))
		_, ok := desc.Lookup("nada")
		Expect(ok).To(BeFalse())
	})

	It("lets redeclarations shadow inherited ones at their own position", func() {
		base := cli.MustBuild(cli.Declare().
			Option("a").
			Option("b", cli.Help("base")).
			Option("c"))
		desc := cli.MustBuild(cli.Declare(base).
			Option("d").
			Option("b", cli.Help("derived")))
		Expect(argNames(desc.Arguments())).To(Equal([]string{"a", "c", "d", "b"}))
		b, ok := desc.Lookup("b")
		Expect(ok).To(BeTrue())
		Expect(b.Help()).To(Equal("derived"))
		// the base remains untouched.
		b, _ = base.Lookup("b")
		Expect(b.Help()).To(Equal("base"))
	})

	It("lets the rightmost base win", func() {
		left := cli.MustBuild(cli.Declare().Option("x", cli.Help("left")).Option("l"))
		right := cli.MustBuild(cli.Declare().Option("x", cli.Help("right")).Option("r"))
		desc := cli.MustBuild(cli.Declare(left, right))
		Expect(argNames(desc.Arguments())).To(Equal([]string{"l", "x", "r"}))
		x, _ := desc.Lookup("x")
		Expect(x.Help()).To(Equal("right"))
	})

	It("inherits descriptions unless overridden", func() {
		base := cli.MustBuild(cli.Declare().Describe("base tool").Epilog("bye"))
		desc := cli.MustBuild(cli.Declare(base).Usage("tool [flags]"))
		Expect(desc.Description()).To(Equal("base tool"))
		Expect(desc.Usage()).To(Equal("tool [flags]"))
		Expect(desc.Epilog()).To(Equal("bye"))
	})

	When("grouping", func() {

		It("resolves members in listed order and removes them from the ungrouped ones", func() {
			desc := cli.MustBuild(cli.Declare().
				Option("a").
				Option("b").
				Option("c").
				Group("grp", "Group", "some group", []string{"b", "a"}))
			groups := desc.Groups()
			Expect(groups).To(HaveLen(1))
			Expect(groups[0].Name()).To(Equal("grp"))
			Expect(groups[0].Title()).To(Equal("Group"))
			Expect(groups[0].Description()).To(Equal("some group"))
			Expect(groups[0].MemberNames()).To(Equal([]string{"b", "a"}))
			Expect(argNames(groups[0].Arguments())).To(Equal([]string{"b", "a"}))
			Expect(argNames(desc.Arguments())).To(Equal([]string{"c"}))
			Expect(argNames(desc.AllArguments())).To(Equal([]string{"a", "b", "c"}))
		})

		It("materializes group members in listed order", func() {
			desc := cli.MustBuild(cli.Declare().
				Option("a").
				Option("b").
				Group("grp", "Group", "", []string{"b", "a"}))
			cmd, err := cli.NewParser(desc, cli.WithProg("foo")).Materialize()
			Expect(err).NotTo(HaveOccurred())
			names := []string{}
			cmd.Flags().VisitAll(func(f *pflag.Flag) { names = append(names, f.Name) })
			Expect(names).To(Equal([]string{"b", "a", "help"}))
			Expect(cmd.Flags().Lookup("b").Annotations).To(HaveKeyWithValue(cli.GroupAnnotation, []string{"grp"}))
		})

		It("resolves inherited groups against shadowing arguments", func() {
			base := cli.MustBuild(cli.Declare().
				Option("a", cli.Help("base")).
				Option("b").
				Group("grp", "", "", []string{"a"}))
			desc := cli.MustBuild(cli.Declare(base).
				Option("a", cli.Help("derived")).
				Group("mine", "Mine", "", []string{"b"}))
			groups := desc.Groups()
			Expect(groups).To(HaveLen(2))
			Expect(groups[0].Name()).To(Equal("grp"))
			Expect(groups[0].Arguments()[0].Help()).To(Equal("derived"))
			Expect(groups[1].Name()).To(Equal("mine"))
			Expect(desc.Arguments()).To(BeEmpty())
		})

		It("lets own groups shadow inherited groups", func() {
			base := cli.MustBuild(cli.Declare().
				Option("a").
				Option("b").
				Group("grp", "Base", "", []string{"a"}))
			desc := cli.MustBuild(cli.Declare(base).
				Group("grp", "Derived", "", []string{"b"}))
			groups := desc.Groups()
			Expect(groups).To(HaveLen(1))
			Expect(groups[0].Title()).To(Equal("Derived"))
			Expect(argNames(desc.Arguments())).To(Equal([]string{"a"}))
		})

		It("rejects unknown members", func() {
			expectDeclarationError(cli.Declare().
				Option("a").
				Group("grp", "", "", []string{"a", "nada"}), "grp")
			Expect(func() {
				cli.MustBuild(cli.Declare().Group("grp", "", "", []string{"nada"}))
			}).To(Panic())
		})

		It("rejects members claimed twice", func() {
			expectDeclarationError(cli.Declare().
				Option("a").
				Group("g1", "", "", []string{"a"}).
				Group("g2", "", "", []string{"a"}), "g2")
		})

		It("rejects required members of mutually exclusive groups", func() {
			expectDeclarationError(cli.Declare().
				Option("a", cli.Required()).
				Option("b").
				Group("g", "", "", []string{"a", "b"}, cli.Exclusive()), "g")
		})

	})

	When("declaring subparsers", func() {

		It("synthesizes a default group in declaration order", func() {
			desc := cli.MustBuild(cli.Declare().
				Subparser("zulu", cli.NewSubparser(nil)).
				Subparser("alpha", cli.NewSubparser(nil)).
				Subparser("mike", cli.NewSubparser(nil)))
			Expect(desc.Subparsers()).To(Equal([]string{"zulu", "alpha", "mike"}))
			g := desc.SubparserGroup()
			Expect(g).NotTo(BeNil())
			Expect(g.Synthesized()).To(BeTrue())
			Expect(g.MemberNames()).To(Equal([]string{"zulu", "alpha", "mike"}))
			Expect(g.Options().Title).To(Equal(cli.DefaultSubparsersTitle))
		})

		It("uses the first explicit group", func() {
			desc := cli.MustBuild(cli.Declare().
				Subparser("a", cli.NewSubparser(nil)).
				Subparser("b", cli.NewSubparser(nil)).
				SubparserGroup(cli.SubparsersOptions{Title: "commands", Dest: "cmd"}, "b", "a").
				SubparserGroup(cli.SubparsersOptions{Title: "ignored"}, "a"))
			g := desc.SubparserGroup()
			Expect(g.Synthesized()).To(BeFalse())
			Expect(g.Options().Title).To(Equal("commands"))
			Expect(g.Options().Dest).To(Equal("cmd"))
			Expect(g.MemberNames()).To(Equal([]string{"b", "a"}))
		})

		It("has no group without subparsers", func() {
			desc := cli.MustBuild(cli.Declare().Option("a"))
			Expect(desc.SubparserGroup()).To(BeNil())
			Expect(desc.Subparsers()).To(BeEmpty())
		})

		It("inherits and merges subparsers", func() {
			old := cli.NewSubparser(nil, cli.Short("old"))
			newer := cli.NewSubparser(nil, cli.Short("new"))
			base := cli.MustBuild(cli.Declare().
				Subparser("a", old).
				Subparser("b", cli.NewSubparser(nil)))
			desc := cli.MustBuild(cli.Declare(base).
				Subparser("c", cli.NewSubparser(nil)).
				Subparser("a", newer))
			Expect(desc.Subparsers()).To(Equal([]string{"b", "c", "a"}))
			sub, ok := desc.Subparser("a")
			Expect(ok).To(BeTrue())
			Expect(sub).To(BeIdenticalTo(newer))
			// synthesized groups get synthesized anew.
			Expect(desc.SubparserGroup().MemberNames()).To(Equal([]string{"b", "c", "a"}))
		})

		It("inherits explicit groups", func() {
			base := cli.MustBuild(cli.Declare().
				Subparser("a", cli.NewSubparser(nil)).
				SubparserGroup(cli.SubparsersOptions{Title: "base commands"}, "a"))
			desc := cli.MustBuild(cli.Declare(base).Option("x"))
			Expect(desc.SubparserGroup().Options().Title).To(Equal("base commands"))
			Expect(desc.SubparserGroup().MemberNames()).To(Equal([]string{"a"}))
		})

		It("rejects unknown subparser group members", func() {
			expectDeclarationError(cli.Declare().
				Subparser("a", cli.NewSubparser(nil)).
				SubparserGroup(cli.SubparsersOptions{}, "a", "nada"), "nada")
		})

		It("rejects positional arguments next to subparsers", func() {
			expectDeclarationError(cli.Declare().
				Argument("path").
				Subparser("a", cli.NewSubparser(nil)), "path")
		})

		It("rejects duplicate command names", func() {
			expectDeclarationError(cli.Declare().
				Subparser("a", cli.NewSubparser(nil)).
				Subparser("b", cli.NewSubparser(nil, cli.Name("a"))), "b")
			expectDeclarationError(cli.Declare().
				Subparser("a", cli.NewSubparser(nil)).
				Subparser("b", cli.NewSubparser(nil, cli.Aliases("a"))), "b")
		})

	})

	DescribeTable("rejects faulty declarations",
		func(d *cli.Declaration, field string) {
			expectDeclarationError(d, field)
		},
		Entry("duplicate field", cli.Declare().Option("a").Argument("a"), "a"),
		Entry("empty field", cli.Declare().Option(""), ""),
		Entry("nil subparser", cli.Declare().Subparser("s", nil), "s"),
		Entry("dashed positional", cli.Declare().Argument("a", cli.Names("--a")), "a"),
		Entry("required positional", cli.Declare().Argument("a", cli.Required()), "a"),
		Entry("switch positional", cli.Declare().Argument("a", cli.Type(cli.Bool)), "a"),
		Entry("undashed option", cli.Declare().Option("a", cli.Names("a")), "a"),
		Entry("long shorthand", cli.Declare().Option("a", cli.Names("-ab")), "a"),
		Entry("reserved help", cli.Declare().Option("a", cli.Names("-h")), "a"),
		Entry("option clash", cli.Declare().Option("a", cli.Names("--x")).Option("b", cli.Names("--x")), "b"),
	)

})

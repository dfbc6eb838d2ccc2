// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Parser is the façade for parsing command lines according to a built
// declaration. On each parse it materializes a fresh command tree, so that
// parsing the same command line twice yields the same results.
type Parser struct {
	desc        *Descriptor
	prog        string
	description string
	usage       string
	epilog      string
	version     string
	out         io.Writer
	defaults    Defaults

	// added at runtime
	extra   []namedSubparser
	subopts *SubparsersOptions
}

// ParserOption configures a [Parser], overriding the defaults of its
// declaration.
type ParserOption func(*Parser)

// WithProg sets the program name shown in help output; it defaults to the
// base name of the running binary.
func WithProg(name string) ParserOption {
	return func(p *Parser) { p.prog = name }
}

// WithDescription sets the description shown in help output.
func WithDescription(text string) ParserOption {
	return func(p *Parser) { p.description = text }
}

// WithUsage sets the usage line shown in help output.
func WithUsage(text string) ParserOption {
	return func(p *Parser) { p.usage = text }
}

// WithEpilog sets the text shown at the end of the help output.
func WithEpilog(text string) ParserOption {
	return func(p *Parser) { p.epilog = text }
}

// WithVersion sets the program version, enabling the "--version" flag.
func WithVersion(version string) ParserOption {
	return func(p *Parser) { p.version = version }
}

// WithOutput sets the writer receiving help, usage, and version output;
// it defaults to stdout.
func WithOutput(w io.Writer) ParserOption {
	return func(p *Parser) { p.out = w }
}

// WithDefaults sets default values overriding the declared defaults.
func WithDefaults(defaults Defaults) ParserOption {
	return func(p *Parser) { p.defaults = defaults }
}

// NewParser returns a new parser for the built declaration.
func NewParser(desc *Descriptor, opts ...ParserOption) *Parser {
	if desc == nil {
		desc = emptyDescriptor()
	}
	p := &Parser{
		desc:        desc,
		prog:        filepath.Base(os.Args[0]),
		description: desc.description,
		usage:       desc.usage,
		epilog:      desc.epilog,
		out:         os.Stdout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Prog returns the program name.
func (p *Parser) Prog() string { return p.prog }

// AddSubparser adds a subparser at runtime, after the declared ones.
func (p *Parser) AddSubparser(name string, sub *Subparser) {
	p.extra = append(p.extra, namedSubparser{name: name, sub: sub})
}

// SetSubparsersOptions overrides the registration options of the
// subparser group.
func (p *Parser) SetSubparsersOptions(opts SubparsersOptions) {
	p.subopts = &opts
}

// Parse parses the specified command line arguments, not including the
// program name. It returns ErrShown after rendering help or version
// information when asked for.
func (p *Parser) Parse(args []string) (*Namespace, error) {
	ns, _, err := p.parse(args, false)
	return ns, err
}

// ParseKnown works like [Parser.Parse], but doesn't fail on unknown flags
// and surplus positional arguments; instead, it returns them.
func (p *Parser) ParseKnown(args []string) (*Namespace, []string, error) {
	return p.parse(args, true)
}

func (p *Parser) parse(args []string, known bool) (*Namespace, []string, error) {
	t, err := p.materialize(known)
	if err != nil {
		return nil, nil, err
	}
	if args == nil {
		args = []string{}
	}
	var scan *knownScan
	if known {
		scan = scanKnown(args, t.root)
		args = scan.args
	}
	t.root.cmd.SetArgs(args)
	if cmd, err := t.root.cmd.ExecuteC(); err != nil {
		path := p.prog
		if cmd != nil {
			path = cmd.CommandPath()
		}
		return nil, nil, &ParseError{Command: path, Err: err}
	}
	if t.selected == nil {
		return nil, nil, ErrShown
	}
	ns, extras, err := t.namespace(known)
	if err != nil {
		return nil, nil, err
	}
	if known {
		extras = scan.extras(extras)
	}
	return ns, extras, nil
}

// PrintHelp writes the full help to w.
func (p *Parser) PrintHelp(w io.Writer) error {
	t, err := p.materialize(false)
	if err != nil {
		return err
	}
	t.root.cmd.SetOut(w)
	return t.root.cmd.Help()
}

// PrintUsage writes the usage section to w.
func (p *Parser) PrintUsage(w io.Writer) error {
	t, err := p.materialize(false)
	if err != nil {
		return err
	}
	t.root.cmd.SetOut(w)
	t.root.cmd.SetErr(w)
	return t.root.cmd.Usage()
}

// PrintVersion writes the program version to w.
func (p *Parser) PrintVersion(w io.Writer) error {
	if p.version == "" {
		return errors.New("no version set")
	}
	_, err := fmt.Fprintf(w, "%s version %s\n", p.prog, p.version)
	return err
}

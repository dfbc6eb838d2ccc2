// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package cli

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Defaults maps destination names to default values, overriding the
// declared defaults. A nested mapping stored under a command name applies to
// that (sub) command instead.
type Defaults map[string]any

// For returns the defaults applying to the specified subcommand, or nil.
func (d Defaults) For(command string) Defaults {
	switch sub := d[command].(type) {
	case map[string]any:
		return Defaults(sub)
	case Defaults:
		return sub
	}
	return nil
}

// lookup returns the default value for dest, ignoring nested command
// mappings.
func (d Defaults) lookup(dest string) (any, bool) {
	v, ok := d[dest]
	if !ok {
		return nil, false
	}
	switch v.(type) {
	case map[string]any, Defaults:
		return nil, false
	}
	return v, true
}

// LoadDefaults reads parser defaults in YAML format from r. An empty
// document results in empty defaults.
func LoadDefaults(r io.Reader) (Defaults, error) {
	var m map[string]any
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return Defaults{}, nil
		}
		return nil, fmt.Errorf("cannot read defaults: %w", err)
	}
	if m == nil {
		m = map[string]any{}
	}
	return Defaults(m), nil
}

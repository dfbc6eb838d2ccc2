// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/exp/slices"
)

// Kind specifies the type an argument value gets converted into.
type Kind int

// The supported argument value kinds.
const (
	String   Kind = iota // plain string (default)
	Int                  // int
	Float                // float64
	Bool                 // switch without value, set to true when present
	Duration             // time.Duration, such as "1s" or "2m"
	Count                // counts the number of occurrences, such as -vvv
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Duration:
		return "duration"
	case Count:
		return "count"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Arity specifies how many command line values an argument consumes.
type Arity struct {
	min, max int // max < 0 means unbounded
}

// Predefined arities, modelled after the well-known "?", "*", and "+".
var (
	Optional   = Arity{min: 0, max: 1}
	ZeroOrMore = Arity{min: 0, max: -1}
	OneOrMore  = Arity{min: 1, max: -1}
)

// Exactly returns the arity of an argument consuming exactly n values.
func Exactly(n int) Arity {
	if n < 1 {
		n = 1
	}
	return Arity{min: n, max: n}
}

// multi reports whether the arity allows more than a single value, so that
// the argument value is a list.
func (a Arity) multi() bool {
	return a.max < 0 || a.max > 1
}

// Min returns the minimum number of values consumed.
func (a Arity) Min() int { return a.min }

// Max returns the maximum number of values consumed, or -1 if unbounded.
func (a Arity) Max() int { return a.max }

func (a Arity) String() string {
	switch {
	case a == Optional:
		return "?"
	case a == ZeroOrMore:
		return "*"
	case a == OneOrMore:
		return "+"
	default:
		return fmt.Sprintf("%d", a.min)
	}
}

// register registers a flag of the kind k in the specified flag set and
// returns the flag together with a getter for its current typed value.
func (k Kind) register(fs *pflag.FlagSet, name, shorthand, usage string, multi bool) (*pflag.Flag, func() any) {
	var get func() any
	switch k {
	case Int:
		if multi {
			p := fs.IntSliceP(name, shorthand, nil, usage)
			get = func() any { return slices.Clone(*p) }
		} else {
			p := fs.IntP(name, shorthand, 0, usage)
			get = func() any { return *p }
		}
	case Float:
		if multi {
			p := fs.Float64SliceP(name, shorthand, nil, usage)
			get = func() any { return slices.Clone(*p) }
		} else {
			p := fs.Float64P(name, shorthand, 0, usage)
			get = func() any { return *p }
		}
	case Bool:
		p := fs.BoolP(name, shorthand, false, usage)
		get = func() any { return *p }
	case Duration:
		if multi {
			p := fs.DurationSliceP(name, shorthand, nil, usage)
			get = func() any { return slices.Clone(*p) }
		} else {
			p := fs.DurationP(name, shorthand, time.Duration(0), usage)
			get = func() any { return *p }
		}
	case Count:
		p := fs.CountP(name, shorthand, usage)
		get = func() any { return *p }
	default:
		if multi {
			p := fs.StringArrayP(name, shorthand, nil, usage)
			get = func() any { return slices.Clone(*p) }
		} else {
			p := fs.StringP(name, shorthand, "", usage)
			get = func() any { return *p }
		}
	}
	return fs.Lookup(name), get
}

// setValues replaces the value of the flag with the specified textual
// values. List flags get all values, scalar flags exactly one.
func setValues(f *pflag.Flag, values []string) error {
	if sv, ok := f.Value.(pflag.SliceValue); ok {
		return sv.Replace(values)
	}
	if len(values) != 1 {
		return fmt.Errorf("expected a single value, got %d", len(values))
	}
	return f.Value.Set(values[0])
}

// applyDefault sets the default value of a flag, updating its textual
// default representation used in help output.
func applyDefault(f *pflag.Flag, def any) error {
	if def == nil {
		return nil
	}
	if err := setValues(f, textual(def)); err != nil {
		return fmt.Errorf("invalid default %v: %w", def, err)
	}
	f.DefValue = f.Value.String()
	return nil
}

// textual returns the textual representation(s) of a (default) value.
func textual(v any) []string {
	switch vv := v.(type) {
	case []string:
		return slices.Clone(vv)
	case []any:
		s := make([]string, 0, len(vv))
		for _, e := range vv {
			s = append(s, fmt.Sprint(e))
		}
		return s
	case []int:
		s := make([]string, 0, len(vv))
		for _, e := range vv {
			s = append(s, fmt.Sprint(e))
		}
		return s
	case []float64:
		s := make([]string, 0, len(vv))
		for _, e := range vv {
			s = append(s, fmt.Sprint(e))
		}
		return s
	case []time.Duration:
		s := make([]string, 0, len(vv))
		for _, e := range vv {
			s = append(s, e.String())
		}
		return s
	default:
		return []string{fmt.Sprint(v)}
	}
}

// checkChoices returns an error if the flag's current value (or any of its
// list elements) isn't one of the allowed choices.
func checkChoices(f *pflag.Flag, choices []string) error {
	if len(choices) == 0 {
		return nil
	}
	values := []string{f.Value.String()}
	if sv, ok := f.Value.(pflag.SliceValue); ok {
		values = sv.GetSlice()
	}
	for _, v := range values {
		if !slices.Contains(choices, v) {
			return fmt.Errorf("invalid choice: %q (choose from %q)", v, choices)
		}
	}
	return nil
}

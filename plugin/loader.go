// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package plugin

import (
	"path"
	"reflect"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

// Loader locates plugin modules by name along its search paths, loads them,
// and finds the classes they provide. Failing to load a module or to find a
// class never is an error: instead, a warning gets logged and the caller
// decides whether a missing plugin is fatal.
type Loader struct {
	mu        sync.Mutex
	paths     []string
	cache     ModuleCache
	providers func() []Provider
}

// NewLoader returns a new loader for the registered plugin modules, using
// the specified search paths.
func NewLoader(paths ...string) *Loader {
	return newLoader(providers, paths...)
}

func newLoader(providers func() []Provider, paths ...string) *Loader {
	l := &Loader{providers: providers}
	l.AddPaths(paths)
	return l
}

// AddPath appends a search path.
func (l *Loader) AddPath(p string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.paths = append(l.paths, path.Clean(p))
}

// AddPaths appends multiple search paths in order.
func (l *Loader) AddPaths(paths []string) {
	for _, p := range paths {
		l.AddPath(p)
	}
}

// Paths returns the search paths.
func (l *Loader) Paths() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.paths)
}

// Cache returns the cache of loaded modules.
func (l *Loader) Cache() *ModuleCache { return &l.cache }

// Available returns the locations of all registered plugin modules.
func (l *Loader) Available() []string {
	var locations []string
	for _, provide := range l.providers() {
		locations = append(locations, path.Clean(provide().Location))
	}
	return locations
}

// candidates returns the locations to try in order for the specified
// (dotted) module name.
func (l *Loader) candidates(name string) []string {
	rel := strings.ReplaceAll(name, ".", "/")
	paths := l.Paths()
	if len(paths) == 0 {
		return []string{path.Clean(rel)}
	}
	candidates := make([]string, 0, len(paths))
	for _, p := range paths {
		candidates = append(candidates, path.Join(p, rel))
	}
	return candidates
}

// Module loads the module with the specified name, which might be dotted
// as in "pkg.mod" referring to "pkg/mod" below the search paths. It returns
// (nil, false) if the module cannot be found.
func (l *Loader) Module(name string) (*Module, bool) {
	return l.ModuleAs(name, name)
}

// ModuleAs works like [Loader.Module], but caches the loaded module under
// the specified alias. Loading a module under an alias already in use
// replaces the previously loaded module.
func (l *Loader) ModuleAs(name, alias string) (*Module, bool) {
	if alias == "" {
		alias = name
	}
	if name == "" {
		log.Warnf("could not load module with empty name")
		return nil, false
	}
	candidates := l.candidates(name)
	provided := make([]Module, 0)
	for _, provide := range l.providers() {
		provided = append(provided, provide())
	}
	for _, location := range candidates {
		idx := slices.IndexFunc(provided, func(m Module) bool {
			return path.Clean(m.Location) == location
		})
		if idx < 0 {
			continue
		}
		m := provided[idx]
		m.Classes = slices.Clone(m.Classes)
		if l.cache.Set(alias, &m) {
			log.Warnf("reloading module %q, this overwrites the previously loaded module", alias)
		}
		log.Debugf("loaded module %q from %q", m.Name, location)
		return &m, true
	}
	log.Warnf("could not load module %q, tried: %s", name, strings.Join(candidates, ", "))
	return nil, false
}

// Classes returns the classes of module m in order. If base is non-nil, it
// returns only the classes derived from base: for an interface type, the
// classes implementing it; otherwise, the classes assignable to base or
// embedding it. Unless all is true, classes re-exported from other modules
// are skipped.
func (l *Loader) Classes(m *Module, base reflect.Type, all bool) []*Class {
	if m == nil {
		return nil
	}
	classes := []*Class{}
	for _, c := range m.Classes {
		if base != nil && !derives(c.Type, base) {
			continue
		}
		if !all && c.Imported(m) {
			log.Debugf("skipping class %q from module %q", c.Name, c.Module)
			continue
		}
		log.Debugf("found class %q", c.Name)
		classes = append(classes, c)
	}
	return classes
}

// ClassesOf returns the classes of module m derived from T.
func ClassesOf[T any](l *Loader, m *Module, all bool) []*Class {
	return l.Classes(m, reflect.TypeOf((*T)(nil)).Elem(), all)
}

// Find returns the class with the specified name provided by module m.
func (l *Loader) Find(m *Module, name string) (*Class, bool) {
	if m != nil {
		for _, c := range m.Classes {
			if c.Name == name {
				return c, true
			}
		}
	}
	log.Warnf("could not find any class with name %q", name)
	return nil, false
}

// Load loads the named module and returns its class with the specified
// name.
func (l *Loader) Load(module, class string) (*Class, bool) {
	if _, ok := l.Module(module); !ok {
		log.Warnf("could not load any class with name %q", class)
		return nil, false
	}
	c, ok := l.cache.Class(module, class)
	if !ok {
		log.Warnf("could not load any class with name %q", class)
		return nil, false
	}
	log.Infof("loaded class %q", class)
	return c, true
}

// derives returns true if typ is derived from base.
func derives(typ, base reflect.Type) bool {
	if typ == nil {
		return false
	}
	if base.Kind() == reflect.Interface {
		return typ.Implements(base) || reflect.PointerTo(typ).Implements(base)
	}
	if typ.AssignableTo(base) {
		return true
	}
	return embeds(typ, base)
}

// embeds returns true if the struct type typ embeds base, directly or
// indirectly.
func embeds(typ, base reflect.Type) bool {
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return false
	}
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if !f.Anonymous {
			continue
		}
		ft := f.Type
		if ft == base || (ft.Kind() == reflect.Pointer && ft.Elem() == base) {
			return true
		}
		if embeds(ft, base) {
			return true
		}
	}
	return false
}

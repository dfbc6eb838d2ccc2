// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

// Provides caching loaded plugin modules and looking up their classes again.

package plugin

import (
	"sync"

	"golang.org/x/exp/slices"
)

// ModuleCache caches loaded modules under their aliases and indexes their
// classes. It can safely be accessed simultaneously by multiple go routines.
type ModuleCache struct {
	modules map[string]*Module
	// Map of (alias, class name) to the corresponding class.
	index map[classkey]*Class
	m     sync.Mutex
}

// classkey represents keys to the class index.
type classkey struct {
	alias string
	name  string
}

// IsEmpty returns true if the cache is empty, otherwise false.
func (mc *ModuleCache) IsEmpty() bool {
	mc.m.Lock()
	defer mc.m.Unlock()
	return len(mc.modules) == 0
}

// Aliases returns the sorted aliases of the cached modules.
func (mc *ModuleCache) Aliases() []string {
	mc.m.Lock()
	defer mc.m.Unlock()
	aliases := make([]string, 0, len(mc.modules))
	for alias := range mc.modules {
		aliases = append(aliases, alias)
	}
	slices.Sort(aliases)
	return aliases
}

// Module returns the module cached under alias.
func (mc *ModuleCache) Module(alias string) (*Module, bool) {
	mc.m.Lock()
	defer mc.m.Unlock()
	m, ok := mc.modules[alias]
	return m, ok
}

// Class returns the class with the specified name of the module cached
// under alias.
func (mc *ModuleCache) Class(alias, name string) (*Class, bool) {
	mc.m.Lock()
	defer mc.m.Unlock()
	c, ok := mc.index[classkey{alias: alias, name: name}]
	return c, ok
}

// Set caches the module under the alias, returning true if it replaces
// another module cached under the same alias.
func (mc *ModuleCache) Set(alias string, m *Module) (replaced bool) {
	mc.m.Lock()
	defer mc.m.Unlock()
	if mc.modules == nil {
		mc.modules = map[string]*Module{}
		mc.index = map[classkey]*Class{}
	}
	if old, ok := mc.modules[alias]; ok {
		replaced = true
		for _, c := range old.Classes {
			delete(mc.index, classkey{alias: alias, name: c.Name})
		}
	}
	mc.modules[alias] = m
	// The first class of a given name wins, as does the first one found when
	// searching a module's classes.
	for _, c := range m.Classes {
		k := classkey{alias: alias, name: c.Name}
		if _, ok := mc.index[k]; !ok {
			mc.index[k] = c
		}
	}
	return
}

// Clear the cached modules.
func (mc *ModuleCache) Clear() {
	mc.m.Lock()
	defer mc.m.Unlock()
	mc.modules = nil
	mc.index = nil
}

// Package memmodule provides a module whose resource directory lives in
// memory. It behaves like the host platform's directory, including the
// language fallback search, and backs tests and fixture-driven tooling.
package memmodule

import (
	"slices"
	"sync"

	"github.com/enovales/winres"
	"github.com/enovales/winres/errors"
	"github.com/enovales/winres/langpref"
	"github.com/enovales/winres/resource"
)

var _ winres.Module = (*Module)(nil)

type nameKey struct {
	typ  resource.ID
	name resource.ID
}

type coord struct {
	typ  resource.ID
	name resource.ID
	lang resource.LangID
}

// Module is an in-memory resource directory. Enumeration follows insertion
// order. Safe for concurrent use.
type Module struct {
	names    map[resource.ID][]resource.ID
	langs    map[nameKey][]resource.LangID
	data     map[coord][]byte
	table    *resource.Table
	defaults langpref.Accessor
	types    []resource.ID
	mu       sync.RWMutex
	unloaded bool
}

// New creates an empty module whose default preferences are an empty Thread.
func New() *Module {
	return &Module{
		names:    make(map[resource.ID][]resource.ID),
		langs:    make(map[nameKey][]resource.LangID),
		data:     make(map[coord][]byte),
		table:    resource.NewTable(),
		defaults: langpref.NewThread(),
	}
}

// Add stores a copy of data at (typ, name, lang), replacing any previous
// content at that coordinate.
func (m *Module) Add(typ, name resource.ID, lang resource.LangID, data []byte) *Module {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.names[typ]; !ok {
		m.types = append(m.types, typ)
	}
	nk := nameKey{typ: typ, name: name}
	if !slices.Contains(m.names[typ], name) {
		m.names[typ] = append(m.names[typ], name)
	}
	if !slices.Contains(m.langs[nk], lang) {
		m.langs[nk] = append(m.langs[nk], lang)
	}
	m.data[coord{typ: typ, name: name, lang: lang}] = slices.Clone(data)
	return m
}

// SetDefaults replaces the preference source used when a fallback search
// is given no explicit list.
func (m *Module) SetDefaults(a langpref.Accessor) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaults = a
}

// Defaults returns the default preference source.
func (m *Module) Defaults() langpref.Accessor {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaults
}

// Table exposes the handle table, mainly for lifecycle observers.
func (m *Module) Table() *resource.Table {
	return m.table
}

// Unload ends the module's validity window. The directory becomes
// unreadable and every issued handle turns invalid.
func (m *Module) Unload() {
	m.mu.Lock()
	m.unloaded = true
	m.mu.Unlock()
	_ = m.table.Close()
}

// Valid reports whether the module is still loaded.
func (m *Module) Valid() bool {
	if m == nil {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return !m.unloaded
}

// EnumTypes calls fn for each type. Callbacks run without the lock held so
// they may call back into the module.
func (m *Module) EnumTypes(fn func(resource.ID) bool) error {
	m.mu.RLock()
	types := slices.Clone(m.types)
	m.mu.RUnlock()
	return each(m, types, fn)
}

// EnumNames calls fn for each name under typ.
func (m *Module) EnumNames(typ resource.ID, fn func(resource.ID) bool) error {
	m.mu.RLock()
	names := slices.Clone(m.names[typ])
	m.mu.RUnlock()
	return each(m, names, fn)
}

// EnumLanguages calls fn for each language of (typ, name).
func (m *Module) EnumLanguages(typ, name resource.ID, fn func(resource.LangID) bool) error {
	m.mu.RLock()
	langs := slices.Clone(m.langs[nameKey{typ: typ, name: name}])
	m.mu.RUnlock()
	return each(m, langs, fn)
}

func each[T any](m *Module, items []T, fn func(T) bool) error {
	if !m.Valid() {
		return unavailable()
	}
	for _, item := range items {
		if !m.Valid() {
			return unavailable()
		}
		if !fn(item) {
			return nil
		}
	}
	return nil
}

func unavailable() error {
	return errors.DirectoryUnavailable(errors.PhaseEnumerate, "module unloaded", nil)
}

// FindResource locates an exact (typ, name, lang) entry.
func (m *Module) FindResource(typ, name resource.ID, lang resource.LangID) (resource.Handle, error) {
	c := coord{typ: typ, name: name, lang: lang}

	m.mu.RLock()
	unloaded := m.unloaded
	_, ok := m.data[c]
	m.mu.RUnlock()

	if unloaded {
		return 0, errors.DirectoryUnavailable(errors.PhaseFind, "module unloaded", nil)
	}
	if !ok {
		return 0, errors.NotFound(errors.PhaseFind, typ.Label(), name.String(), lang.String())
	}
	return m.issue(c)
}

// FindResourceFallback picks the best language for (typ, name) given prefs.
// A nil prefs uses the module defaults.
func (m *Module) FindResourceFallback(typ, name resource.ID, prefs []string) (resource.Handle, error) {
	m.mu.RLock()
	unloaded := m.unloaded
	langs := slices.Clone(m.langs[nameKey{typ: typ, name: name}])
	defaults := m.defaults
	m.mu.RUnlock()

	if unloaded {
		return 0, errors.DirectoryUnavailable(errors.PhaseFind, "module unloaded", nil)
	}
	if len(langs) == 0 {
		return 0, errors.NotFound(errors.PhaseFind, typ.Label(), name.String(), "")
	}
	if prefs == nil && defaults != nil {
		p, err := defaults.Get()
		if err != nil {
			return 0, err
		}
		prefs = p
	}
	return m.issue(coord{typ: typ, name: name, lang: SelectLanguage(langs, prefs)})
}

func (m *Module) issue(c coord) (resource.Handle, error) {
	h, err := m.table.Insert(c, c)
	if err != nil {
		return 0, errors.DirectoryUnavailable(errors.PhaseFind, "module unloaded", err)
	}
	return h, nil
}

func (m *Module) resolve(phase errors.Phase, h resource.Handle) ([]byte, error) {
	v, ok := m.table.Get(h)
	if !ok {
		if h != 0 && !m.table.Owns(h) {
			return nil, errors.ForeignHandle(phase, h)
		}
		return nil, errors.InvalidHandle(phase, h)
	}
	c := v.(coord)

	m.mu.RLock()
	data, ok := m.data[c]
	m.mu.RUnlock()
	if !ok {
		return nil, errors.LoadFailed("entry vanished from directory", nil)
	}
	return data, nil
}

// SizeofResource returns the byte length behind h.
func (m *Module) SizeofResource(h resource.Handle) (uint32, error) {
	data, err := m.resolve(errors.PhaseLoad, h)
	if err != nil {
		return 0, err
	}
	return uint32(len(data)), nil
}

// LoadResource returns the bytes behind h. The slice is shared and must
// not be written.
func (m *Module) LoadResource(h resource.Handle) ([]byte, error) {
	return m.resolve(errors.PhaseLoad, h)
}

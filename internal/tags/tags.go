// Package tags aggregates crit tags per module, keeping insertion order.
package tags

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Module maps each tag name to the path of the page that defines it.
type Module struct {
	entries *orderedmap.OrderedMap[string, string]
}

func newModule() *Module {
	return &Module{entries: orderedmap.New[string, string]()}
}

// Add registers tag under path unless the tag is already known.
// It reports whether the tag was added.
func (m *Module) Add(tag, path string) bool {
	if _, ok := m.entries.Get(tag); ok {
		return false
	}
	m.entries.Set(tag, path)
	return true
}

// Path returns the page registered for tag.
func (m *Module) Path(tag string) (string, bool) {
	return m.entries.Get(tag)
}

// Len returns the number of registered tags.
func (m *Module) Len() int {
	return m.entries.Len()
}

// Each calls fn for every tag in insertion order. i starts at 1.
func (m *Module) Each(fn func(i int, tag, path string)) {
	i := 1
	for p := m.entries.Oldest(); p != nil; p = p.Next() {
		fn(i, p.Key, p.Value)
		i++
	}
}

// Table holds one Module per module directory, keyed by the directory path
// relative to the content root.
type Table struct {
	modules *orderedmap.OrderedMap[string, *Module]
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{modules: orderedmap.New[string, *Module]()}
}

// Module returns the accumulator for dir, creating it on first use.
func (t *Table) Module(dir string) *Module {
	if m, ok := t.modules.Get(dir); ok {
		return m
	}
	m := newModule()
	t.modules.Set(dir, m)
	return m
}

// Lookup returns the accumulator for dir if it exists.
func (t *Table) Lookup(dir string) (*Module, bool) {
	return t.modules.Get(dir)
}

// Len returns the number of modules.
func (t *Table) Len() int {
	return t.modules.Len()
}

// Each calls fn for every module in the order they were first seen.
func (t *Table) Each(fn func(dir string, m *Module)) {
	for p := t.modules.Oldest(); p != nil; p = p.Next() {
		fn(p.Key, p.Value)
	}
}

// Package symtab holds the flat, per-session symbol table of a checker run.
package symtab

import "github.com/emirpasic/gods/maps/linkedhashmap"

// Entry is what the table records for a declared identifier.
type Entry struct {
	Type  Type
	Shape Shape
}

// Describe renders the entry as it would appear in a declaration: int[3][4].
func (e Entry) Describe() string {
	return e.Type.String() + e.Shape.String()
}

// Named pairs an identifier with its entry.
type Named struct {
	Name string
	Entry
}

// Table maps identifiers to their declarations. Entries are never removed.
// Iteration order is first-declaration order; redeclaring an identifier
// replaces its entry in place.
type Table struct {
	entries *linkedhashmap.Map
}

// New returns an empty table.
func New() *Table {
	return &Table{entries: linkedhashmap.New()}
}

// Declare inserts or overwrites id. It reports whether an entry was replaced.
func (t *Table) Declare(id string, typ Type, shape Shape) bool {
	_, replaced := t.entries.Get(id)
	t.entries.Put(id, Entry{Type: typ, Shape: shape})
	return replaced
}

// Lookup returns the entry for id.
func (t *Table) Lookup(id string) (Entry, bool) {
	v, ok := t.entries.Get(id)
	if !ok {
		return Entry{}, false
	}
	return v.(Entry), true
}

// Len returns the number of declared identifiers.
func (t *Table) Len() int {
	return t.entries.Size()
}

// Entries lists every declaration in first-declaration order.
func (t *Table) Entries() []Named {
	out := make([]Named, 0, t.entries.Size())
	for _, k := range t.entries.Keys() {
		v, _ := t.entries.Get(k)
		out = append(out, Named{Name: k.(string), Entry: v.(Entry)})
	}
	return out
}

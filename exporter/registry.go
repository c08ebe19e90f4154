package exporter

import "value-exporter/value"

// Visit tells whether a node was seen before.
type Visit int

const (
	FirstVisit Visit = iota
	RepeatVisit
)

// Entry is the registry record of one reference-typed node.
type Entry struct {
	// Order is the number of distinct nodes observed before this one.
	Order int
	// Refs counts how many times the node was reached.
	Refs int
	// Name is the binding name once one is assigned.
	Name string

	building bool // in construction on the current descent
	cyclic   bool // reached again while in construction
}

// Registry tracks reference-typed nodes by identity during one export.
// Scalars are never registered.
type Registry struct {
	entries map[value.Node]*Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[value.Node]*Entry)}
}

// Observe registers a visit of n. The first visit creates the entry with one
// reference; later visits only increment the reference count.
func (r *Registry) Observe(n value.Node) (*Entry, Visit) {
	if !n.Kind().IsReference() {
		panic("registry: scalar node observed: " + n.Kind().String())
	}

	if e, ok := r.entries[n]; ok {
		e.Refs++
		return e, RepeatVisit
	}

	e := &Entry{Order: len(r.entries), Refs: 1}
	r.entries[n] = e

	return e, FirstVisit
}

// Lookup returns the entry of n, if any.
func (r *Registry) Lookup(n value.Node) (*Entry, bool) {
	e, ok := r.entries[n]
	return e, ok
}

// Len returns the number of distinct nodes observed.
func (r *Registry) Len() int {
	return len(r.entries)
}

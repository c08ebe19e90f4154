package hydrate

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"value-exporter/value"
)

// ErrUnknownType is returned for type designators missing from the registry.
var ErrUnknownType = errors.New("unknown record type")

// Registry maps type designators to record shapes and, optionally, to the Go
// types that hold them. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	shapes map[string]*value.Shape
	types  map[string]reflect.Type
}

// NewRegistry creates a registry holding shapes.
func NewRegistry(shapes ...*value.Shape) (*Registry, error) {
	r := &Registry{
		shapes: make(map[string]*value.Shape),
		types:  make(map[string]reflect.Type),
	}

	for _, s := range shapes {
		if err := r.Register(s); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Register adds a shape. Registering an equal shape again is a no-op; a
// different shape under the same designator is an error.
func (r *Registry) Register(s *value.Shape) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.register(s)
}

func (r *Registry) register(s *value.Shape) error {
	if s == nil || s.Name == "" {
		return errors.New("shape without designator")
	}

	if prev, ok := r.shapes[s.Name]; ok {
		if !prev.Equal(s) {
			return fmt.Errorf("conflicting shapes for %s: %v vs %v", s.Name, prev.Fields, s.Fields)
		}

		return nil
	}

	r.shapes[s.Name] = s

	return nil
}

// RegisterType registers the shape of the struct type of sample and remembers
// the Go type, so records of that designator decode into it.
func (r *Registry) RegisterType(sample any) error {
	t := reflect.TypeOf(sample)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t == nil || t.Kind() != reflect.Struct {
		return fmt.Errorf("cannot register %T: not a struct", sample)
	}

	s := value.ShapeOf(t)

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.register(s); err != nil {
		return err
	}

	r.types[s.Name] = t

	return nil
}

// Lookup returns the shape registered for name.
func (r *Registry) Lookup(name string) (*value.Shape, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.shapes[name]

	return s, ok
}

// GoType returns the Go type registered for name.
func (r *Registry) GoType(name string) (reflect.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.types[name]

	return t, ok
}

// Shapes returns all shapes sorted by designator.
func (r *Registry) Shapes() []*value.Shape {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*value.Shape, 0, len(r.shapes))
	for _, s := range r.shapes {
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})

	return out
}

// Count returns the number of registered shapes.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.shapes)
}

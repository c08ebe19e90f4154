package value

import (
	"errors"
	"fmt"
	"slices"
)

// ErrFieldMismatch is returned when a record field cannot be matched against
// the shape of its type.
var ErrFieldMismatch = errors.New("field mismatch")

// Shape describes a record type: its designator and the ordered set of
// storage slots an instance may hold.
type Shape struct {
	// Name is the type designator, e.g. "example/geo.Point".
	Name string
	// Fields lists slot names in declaration order.
	Fields []string
}

// NewShape creates a shape.
func NewShape(name string, fields ...string) *Shape {
	return &Shape{Name: name, Fields: fields}
}

// Has reports whether the shape declares the named field.
func (s *Shape) Has(field string) bool {
	return slices.Contains(s.Fields, field)
}

// Check verifies that every field exists on the shape and appears once.
func (s *Shape) Check(fields []Field) error {
	seen := make(map[string]struct{}, len(fields))

	for _, f := range fields {
		if !s.Has(f.Name) {
			return fmt.Errorf("%w: %s has no field %q", ErrFieldMismatch, s.Name, f.Name)
		}

		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("%w: field %q of %s given twice", ErrFieldMismatch, f.Name, s.Name)
		}

		seen[f.Name] = struct{}{}
	}

	return nil
}

// Equal reports whether two shapes have the same designator and fields.
func (s *Shape) Equal(other *Shape) bool {
	if s == nil || other == nil {
		return s == other
	}

	return s.Name == other.Name && slices.Equal(s.Fields, other.Fields)
}

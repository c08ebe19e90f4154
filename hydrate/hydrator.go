package hydrate

import (
	"fmt"

	"value-exporter/value"
)

// Hydrator rebuilds records from field mappings. It writes fields straight
// into the instance; no constructor or initialization hook of the type is
// involved.
type Hydrator struct {
	reg *Registry
}

// New creates a Hydrator resolving designators through reg.
func New(reg *Registry) *Hydrator {
	return &Hydrator{reg: reg}
}

// Restore creates a record of typ holding fields.
func (h *Hydrator) Restore(typ string, fields []value.Field) (*value.Record, error) {
	rec, err := h.Alloc(typ)
	if err != nil {
		return nil, err
	}

	if err := h.Fill(rec, fields); err != nil {
		return nil, err
	}

	return rec, nil
}

// Alloc creates an empty record of typ.
func (h *Hydrator) Alloc(typ string) (*value.Record, error) {
	shape, ok := h.reg.Lookup(typ)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, typ)
	}

	return value.NewRecord(shape), nil
}

// Fill writes fields into rec. Every field must be declared by the shape of
// rec, and a field may be given once.
func (h *Hydrator) Fill(rec *value.Record, fields []value.Field) error {
	if rec.Shape == nil {
		return fmt.Errorf("%w: record without shape", value.ErrFieldMismatch)
	}

	if err := rec.Shape.Check(fields); err != nil {
		return err
	}

	for _, f := range fields {
		rec.Set(f.Name, f.Value)
	}

	return nil
}

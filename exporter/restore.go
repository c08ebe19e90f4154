package exporter

import (
	"fmt"

	"value-exporter/value"
)

// HelperName is the binding that holds the restoration helper. It cannot
// collide with generated names, which all start with naming.Prefix.
const HelperName = "h"

// helperCtor is the call that instantiates the helper.
const helperCtor = "hydrator"

// channel emits the restoration helper and the record expressions that use
// it. The helper is instantiated at most once per export and shared by every
// record in the graph.
type channel struct {
	helper Expr
}

// open binds the helper when the graph holds records.
func (c *channel) open(records int) []Stmt {
	if records == 0 {
		return nil
	}

	c.helper = Ref(HelperName)

	return []Stmt{&Binding{Name: HelperName, Value: NewHelper{}}}
}

// plan checks the fields of rec against its shape.
func (c *channel) plan(rec *value.Record) error {
	if rec.Shape == nil {
		return fmt.Errorf("%w: record without shape", value.ErrFieldMismatch)
	}

	return rec.Shape.Check(rec.Fields)
}

func (c *channel) restore(rec *value.Record, fields []FieldExpr) Expr {
	return &Restore{Helper: c.helper, Type: rec.Type(), Fields: fields}
}

func (c *channel) alloc(rec *value.Record) Expr {
	return &Alloc{Helper: c.helper, Type: rec.Type()}
}

func (c *channel) fill(name string, fields []FieldExpr) Stmt {
	return &Fill{Helper: c.helper, Target: name, Fields: fields}
}

package exporter

import (
	"fmt"

	"value-exporter/naming"
	"value-exporter/value"
)

// emitter turns a graph into a Program in two passes over the same
// depth-first pre-order walk. The counting pass fills the registry, finds
// cycles and validates the graph; the generation pass then knows the final
// reference count of every node and decides binding versus inlining at once.
type emitter struct {
	reg     *Registry
	channel channel
	stmts   []Stmt
	records int
}

func newEmitter() *emitter {
	return &emitter{reg: NewRegistry()}
}

func (e *emitter) emit(root value.Node) (*Program, error) {
	if err := e.count(root, rootPath()); err != nil {
		return nil, err
	}

	e.stmts = append(e.stmts, e.channel.open(e.records)...)
	result := e.gen(root)

	return &Program{Stmts: e.stmts, Result: result, records: e.records}, nil
}

func (e *emitter) count(n value.Node, path *nodePath) error {
	if value.IsNull(n) {
		return nil
	}

	switch v := n.(type) {
	case value.Bool, value.Int, value.Float, value.String:
		return nil
	case *value.Seq, *value.Map, *value.Record:
	case value.Opaque:
		return &Error{Path: path.String(), Err: fmt.Errorf("%w: %s", ErrUnexportable, v.Desc)}
	default:
		return &Error{Path: path.String(), Err: fmt.Errorf("%w: %T", ErrUnexportable, n)}
	}

	ent, visit := e.reg.Observe(n)
	if visit == RepeatVisit {
		if ent.building {
			ent.cyclic = true
		}

		return nil
	}

	ent.building = true
	defer func() { ent.building = false }()

	switch v := n.(type) {
	case *value.Seq:
		for i, it := range v.Items {
			if err := e.count(it, path.index(i)); err != nil {
				return err
			}
		}

	case *value.Map:
		for i, p := range v.Pairs {
			kp := path.key(keyText(p.Key, i))
			if err := e.count(p.Key, kp); err != nil {
				return err
			}

			if err := e.count(p.Value, kp); err != nil {
				return err
			}
		}

	case *value.Record:
		if err := e.channel.plan(v); err != nil {
			return &Error{Path: path.String(), Err: err}
		}

		e.records++

		for _, f := range v.Fields {
			if err := e.count(f.Value, path.field(f.Name)); err != nil {
				return err
			}
		}
	}

	return nil
}

// gen returns the expression of n, appending the bindings it needs.
func (e *emitter) gen(n value.Node) Expr {
	if value.IsNull(n) || !n.Kind().IsReference() {
		return scalar(n)
	}

	ent, _ := e.reg.Lookup(n)
	if ent.Name != "" {
		return Ref(ent.Name)
	}

	if ent.cyclic {
		return e.genCyclic(n, ent)
	}

	expr := e.construct(n)
	if ent.Refs < 2 {
		return expr
	}

	ent.Name = naming.Name(ent.Order)
	e.stmts = append(e.stmts, &Binding{Name: ent.Name, Value: expr})

	return Ref(ent.Name)
}

func (e *emitter) construct(n value.Node) Expr {
	switch v := n.(type) {
	case *value.Seq:
		items := make([]Expr, len(v.Items))
		for i, it := range v.Items {
			items[i] = e.gen(it)
		}

		return &SeqLit{Items: items}

	case *value.Map:
		entries := make([]MapEntry, len(v.Pairs))
		for i, p := range v.Pairs {
			entries[i].Key = e.gen(p.Key)
			entries[i].Value = e.gen(p.Value)
		}

		return &MapLit{Entries: entries}

	default:
		rec := n.(*value.Record)
		return e.channel.restore(rec, e.fields(rec))
	}
}

// genCyclic binds an empty instance before generating the children, so that
// they can refer to it, then populates it.
func (e *emitter) genCyclic(n value.Node, ent *Entry) Expr {
	ent.Name = naming.Name(ent.Order)
	name := ent.Name

	switch v := n.(type) {
	case *value.Seq:
		e.stmts = append(e.stmts, &Binding{Name: name, Value: &SeqLit{}, Placeholder: true})

		for _, it := range v.Items {
			x := e.gen(it)
			e.stmts = append(e.stmts, &Append{Target: name, Value: x})
		}

	case *value.Map:
		e.stmts = append(e.stmts, &Binding{Name: name, Value: &MapLit{}, Placeholder: true})

		for _, p := range v.Pairs {
			k := e.gen(p.Key)
			x := e.gen(p.Value)
			e.stmts = append(e.stmts, &Put{Target: name, Key: k, Value: x})
		}

	case *value.Record:
		e.stmts = append(e.stmts, &Binding{Name: name, Value: e.channel.alloc(v), Placeholder: true})

		fields := e.fields(v)
		e.stmts = append(e.stmts, e.channel.fill(name, fields))
	}

	return Ref(name)
}

func (e *emitter) fields(rec *value.Record) []FieldExpr {
	fields := make([]FieldExpr, len(rec.Fields))
	for i, f := range rec.Fields {
		fields[i] = FieldExpr{Name: f.Name, Value: e.gen(f.Value)}
	}

	return fields
}

// keyText renders a mapping key for paths.
func keyText(k value.Node, i int) string {
	if value.IsNull(k) || k.Kind().IsScalar() {
		return string(scalar(k))
	}

	return fmt.Sprintf("#%d", i)
}

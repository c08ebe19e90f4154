package hydrate

import (
	"errors"
	"fmt"
	"reflect"
	"unsafe"

	"value-exporter/value"
)

// Decode stores the graph n into the Go value dst points to.
//
// Struct storage is written directly, unexported fields included, so types
// whose constructors are private, take unrelated arguments or have side
// effects are rebuilt from their field values alone. A record or container
// reached several times is decoded once per target type and shared, which
// keeps aliasing and pointer cycles intact. Values decoded into interfaces
// take their natural Go form: bool, int, float64, string, []any, map[any]any,
// and pointers to struct types registered with Registry.RegisterType.
func (h *Hydrator) Decode(n value.Node, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.New("decode target must be a non-nil pointer")
	}

	d := decoder{reg: h.reg, memo: make(map[memoKey]reflect.Value)}

	return d.decode(n, rv.Elem())
}

type memoKey struct {
	node value.Node
	typ  reflect.Type
}

type decoder struct {
	reg  *Registry
	memo map[memoKey]reflect.Value
}

func (d *decoder) decode(n value.Node, v reflect.Value) error {
	if value.IsNull(n) {
		v.Set(reflect.Zero(v.Type()))
		return nil
	}

	switch v.Kind() {
	case reflect.Interface:
		x, err := d.natural(n)
		if err != nil {
			return err
		}

		if !x.Type().AssignableTo(v.Type()) {
			return mismatch(n, v.Type())
		}

		v.Set(x)

	case reflect.Ptr:
		key := memoKey{node: n, typ: v.Type()}
		if p, ok := d.memo[key]; ok {
			v.Set(p)
			return nil
		}

		p := reflect.New(v.Type().Elem())
		if n.Kind().IsReference() {
			d.memo[key] = p
		}

		v.Set(p)

		return d.decode(n, p.Elem())

	case reflect.Struct:
		rec, ok := n.(*value.Record)
		if !ok {
			return mismatch(n, v.Type())
		}

		return d.fields(rec, v)

	case reflect.Slice:
		seq, ok := n.(*value.Seq)
		if !ok {
			return mismatch(n, v.Type())
		}

		key := memoKey{node: n, typ: v.Type()}
		if s, ok := d.memo[key]; ok {
			v.Set(s)
			return nil
		}

		s := reflect.MakeSlice(v.Type(), len(seq.Items), len(seq.Items))
		d.memo[key] = s

		for i, it := range seq.Items {
			if err := d.decode(it, s.Index(i)); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}

		v.Set(s)

	case reflect.Array:
		seq, ok := n.(*value.Seq)
		if !ok || len(seq.Items) > v.Len() {
			return mismatch(n, v.Type())
		}

		for i, it := range seq.Items {
			if err := d.decode(it, v.Index(i)); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}

	case reflect.Map:
		m, ok := n.(*value.Map)
		if !ok {
			return mismatch(n, v.Type())
		}

		key := memoKey{node: n, typ: v.Type()}
		if mv, ok := d.memo[key]; ok {
			v.Set(mv)
			return nil
		}

		mv := reflect.MakeMapWithSize(v.Type(), len(m.Pairs))
		d.memo[key] = mv
		v.Set(mv)

		for _, p := range m.Pairs {
			k := reflect.New(v.Type().Key()).Elem()
			if err := d.decode(p.Key, k); err != nil {
				return err
			}

			if !k.Type().Comparable() || (k.Kind() == reflect.Interface && !k.IsNil() && !k.Elem().Type().Comparable()) {
				return fmt.Errorf("map key %s is not comparable", k.Type())
			}

			e := reflect.New(v.Type().Elem()).Elem()
			if err := d.decode(p.Value, e); err != nil {
				return err
			}

			mv.SetMapIndex(k, e)
		}

	default:
		return d.scalar(n, v)
	}

	return nil
}

func (d *decoder) scalar(n value.Node, v reflect.Value) error {
	switch v.Kind() {
	case reflect.Bool:
		b, ok := n.(value.Bool)
		if !ok {
			return mismatch(n, v.Type())
		}

		v.SetBool(bool(b))

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, ok := n.(value.Int)
		if !ok || v.OverflowInt(int64(i)) {
			return mismatch(n, v.Type())
		}

		v.SetInt(int64(i))

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i, ok := n.(value.Int)
		if !ok || i < 0 || v.OverflowUint(uint64(i)) {
			return mismatch(n, v.Type())
		}

		v.SetUint(uint64(i))

	case reflect.Float32, reflect.Float64:
		switch f := n.(type) {
		case value.Float:
			v.SetFloat(float64(f))
		case value.Int:
			v.SetFloat(float64(f))
		default:
			return mismatch(n, v.Type())
		}

	case reflect.String:
		s, ok := n.(value.String)
		if !ok {
			return mismatch(n, v.Type())
		}

		v.SetString(string(s))

	default:
		return mismatch(n, v.Type())
	}

	return nil
}

// fields writes rec into the addressable struct sv.
func (d *decoder) fields(rec *value.Record, sv reflect.Value) error {
	t := sv.Type()

	for _, f := range rec.Fields {
		i, ok := fieldIndex(t, f.Name)
		if !ok {
			return fmt.Errorf("%w: %s has no field %q", value.ErrFieldMismatch, value.TypeName(t), f.Name)
		}

		fv := sv.Field(i)
		if !fv.CanSet() {
			fv = reflect.NewAt(fv.Type(), unsafe.Pointer(fv.UnsafeAddr())).Elem()
		}

		if err := d.decode(f.Value, fv); err != nil {
			return fmt.Errorf("%s.%s: %w", value.TypeName(t), f.Name, err)
		}
	}

	return nil
}

// natural builds the Go form of n used for interface targets.
func (d *decoder) natural(n value.Node) (reflect.Value, error) {
	switch v := n.(type) {
	case value.Bool:
		return reflect.ValueOf(bool(v)), nil
	case value.Int:
		return reflect.ValueOf(int(v)), nil
	case value.Float:
		return reflect.ValueOf(float64(v)), nil
	case value.String:
		return reflect.ValueOf(string(v)), nil
	case *value.Seq:
		var s []any
		return d.into(n, reflect.TypeOf(s))
	case *value.Map:
		var m map[any]any
		return d.into(n, reflect.TypeOf(m))
	case *value.Record:
		t, ok := d.reg.GoType(v.Type())
		if !ok {
			return reflect.Value{}, fmt.Errorf("%w: %s", ErrUnknownType, v.Type())
		}

		return d.into(n, reflect.PointerTo(t))
	default:
		return reflect.Value{}, fmt.Errorf("cannot decode %s", n.Kind())
	}
}

func (d *decoder) into(n value.Node, t reflect.Type) (reflect.Value, error) {
	x := reflect.New(t).Elem()
	if err := d.decode(n, x); err != nil {
		return reflect.Value{}, err
	}

	return x, nil
}

func fieldIndex(t reflect.Type, name string) (int, bool) {
	for i := range t.NumField() {
		if t.Field(i).Name == name {
			return i, true
		}
	}

	return 0, false
}

func mismatch(n value.Node, t reflect.Type) error {
	return fmt.Errorf("cannot decode %s into %s", n.Kind(), t)
}

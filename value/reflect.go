package value

import (
	"cmp"
	"fmt"
	"math"
	"reflect"
	"slices"
	"unsafe"
)

type dispatchEnum int

const (
	dispatchUnknown dispatchEnum = iota
	dispatchPrimitive
	dispatchInterface
	dispatchPointer
	dispatchSlice
	dispatchMap
	dispatchStruct
)

func dispatch(t reflect.Type) dispatchEnum {
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return dispatchPrimitive
	case reflect.Interface:
		return dispatchInterface
	case reflect.Ptr:
		return dispatchPointer
	case reflect.Slice, reflect.Array:
		return dispatchSlice
	case reflect.Map:
		return dispatchMap
	case reflect.Struct:
		return dispatchStruct
	default:
		// chan, func, unsafe.Pointer, uintptr, complex
		return dispatchUnknown
	}
}

// Of converts a Go value into a graph.
//
// Pointers to structs become records that keep their identity, so two
// pointers to the same struct yield the same *Record and pointer cycles
// survive. Struct values become fresh records. Unexported fields are read
// too: a record holds the whole state of its instance. Non-empty slices and
// maps keep identity by their backing storage; map entries are ordered by key.
// Values without a textual form become Opaque nodes.
func Of(v any) Node {
	r := reader{
		seen:   make(map[identity]Node),
		shapes: make(map[reflect.Type]*Shape),
	}

	return r.read(reflect.ValueOf(v))
}

// ShapeOf derives the shape of a struct type. Blank fields are skipped.
func ShapeOf(t reflect.Type) *Shape {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		panic("shape requested for non-struct type: " + t.String())
	}

	shape := &Shape{Name: TypeName(t)}
	for i := range t.NumField() {
		if name := t.Field(i).Name; name != "_" {
			shape.Fields = append(shape.Fields, name)
		}
	}

	return shape
}

// TypeName returns the designator of a Go type: import path and name for
// named types, the type literal otherwise.
func TypeName(t reflect.Type) string {
	if t.PkgPath() == "" || t.Name() == "" {
		return t.String()
	}

	return t.PkgPath() + "." + t.Name()
}

type identity struct {
	typ reflect.Type
	ptr uintptr
	n   int
}

type reader struct {
	seen   map[identity]Node
	shapes map[reflect.Type]*Shape
}

func (r *reader) read(v reflect.Value) Node {
	if !v.IsValid() {
		return Null{}
	}

	switch dispatch(v.Type()) {
	case dispatchPrimitive:
		return primitive(v)

	case dispatchInterface:
		if v.IsNil() {
			return Null{}
		}

		return r.read(v.Elem())

	case dispatchPointer:
		if v.IsNil() {
			return Null{}
		}

		if v.Elem().Kind() == reflect.Struct {
			return r.record(v)
		}

		return r.read(v.Elem())

	case dispatchSlice:
		return r.seq(v)

	case dispatchMap:
		return r.mapping(v)

	case dispatchStruct:
		// copy so that unexported fields become addressable
		cp := reflect.New(v.Type()).Elem()
		cp.Set(v)

		return r.fields(NewRecord(r.shape(v.Type())), cp)

	default:
		return Opaque{Desc: v.Type().String()}
	}
}

func primitive(v reflect.Value) Node {
	switch v.Kind() {
	case reflect.Bool:
		return Bool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := v.Uint()
		if u > math.MaxInt64 {
			return Opaque{Desc: fmt.Sprintf("%s value %d overflows int64", v.Type(), u)}
		}

		return Int(int64(u))
	case reflect.Float32, reflect.Float64:
		return Float(v.Float())
	default:
		return String(v.String())
	}
}

func (r *reader) shape(t reflect.Type) *Shape {
	if s, ok := r.shapes[t]; ok {
		return s
	}

	s := ShapeOf(t)
	r.shapes[t] = s

	return s
}

func (r *reader) record(p reflect.Value) Node {
	key := identity{typ: p.Type(), ptr: p.Pointer()}
	if n, ok := r.seen[key]; ok {
		return n
	}

	rec := NewRecord(r.shape(p.Elem().Type()))
	r.seen[key] = rec

	return r.fields(rec, p.Elem())
}

// fields reads every slot of the addressable struct sv into rec.
func (r *reader) fields(rec *Record, sv reflect.Value) *Record {
	t := sv.Type()

	for i := range t.NumField() {
		sf := t.Field(i)
		if sf.Name == "_" {
			continue
		}

		fv := sv.Field(i)
		if !sf.IsExported() {
			fv = reflect.NewAt(fv.Type(), unsafe.Pointer(fv.UnsafeAddr())).Elem()
		}

		rec.Fields = append(rec.Fields, Field{Name: sf.Name, Value: r.read(fv)})
	}

	return rec
}

func (r *reader) seq(v reflect.Value) Node {
	if v.Kind() == reflect.Slice && v.IsNil() {
		return Null{}
	}

	s := &Seq{Items: make([]Node, 0, v.Len())}

	if v.Kind() == reflect.Slice && v.Len() > 0 {
		key := identity{typ: v.Type(), ptr: v.Pointer(), n: v.Len()}
		if n, ok := r.seen[key]; ok {
			return n
		}

		r.seen[key] = s
	}

	for i := range v.Len() {
		s.Items = append(s.Items, r.read(v.Index(i)))
	}

	return s
}

func (r *reader) mapping(v reflect.Value) Node {
	if v.IsNil() {
		return Null{}
	}

	key := identity{typ: v.Type(), ptr: v.Pointer()}
	if n, ok := r.seen[key]; ok {
		return n
	}

	m := &Map{Pairs: make([]Pair, 0, v.Len())}
	r.seen[key] = m

	keys := v.MapKeys()
	slices.SortFunc(keys, compareKeys)

	for _, k := range keys {
		m.Put(r.read(k), r.read(v.MapIndex(k)))
	}

	return m
}

// compareKeys orders map keys so that output does not depend on map
// iteration order.
func compareKeys(a, b reflect.Value) int {
	for a.Kind() == reflect.Interface && !a.IsNil() {
		a = a.Elem()
	}

	for b.Kind() == reflect.Interface && !b.IsNil() {
		b = b.Elem()
	}

	if a.Kind() != b.Kind() {
		return cmp.Compare(a.Kind(), b.Kind())
	}

	switch a.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(a.Int(), b.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(a.Uint(), b.Uint())
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(a.Float(), b.Float())
	case reflect.String:
		return cmp.Compare(a.String(), b.String())
	case reflect.Bool:
		return cmp.Compare(boolRank(a.Bool()), boolRank(b.Bool()))
	default:
		return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
	}
}

func boolRank(b bool) int {
	if b {
		return 1
	}

	return 0
}

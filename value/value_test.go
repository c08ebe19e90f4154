package value

import (
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type link struct {
	Value int
	Next  *link
	note  string
}

type holder struct {
	Ch    chan int
	Fn    func()
	Big   uint64
	_     int
	Items []int
}

func TestKind_Classes(t *testing.T) {
	for _, k := range []KindEnum{KindNull, KindBool, KindInt, KindFloat, KindString} {
		assert.True(t, k.IsScalar(), k.String())
		assert.False(t, k.IsReference(), k.String())
	}

	for _, k := range []KindEnum{KindSeq, KindMap, KindRecord} {
		assert.True(t, k.IsReference(), k.String())
		assert.False(t, k.IsScalar(), k.String())
	}

	assert.False(t, KindOpaque.IsScalar())
	assert.False(t, KindOpaque.IsReference())
}

func TestIsNull(t *testing.T) {
	assert.True(t, IsNull(nil))
	assert.True(t, IsNull(Null{}))
	assert.True(t, IsNull((*Seq)(nil)))
	assert.True(t, IsNull((*Map)(nil)))
	assert.True(t, IsNull((*Record)(nil)))
	assert.False(t, IsNull(NewSeq()))
	assert.False(t, IsNull(String("")))
}

func TestShape_Check(t *testing.T) {
	s := NewShape("geo.Point", "X", "Y")

	require.NoError(t, s.Check(nil))
	require.NoError(t, s.Check([]Field{{Name: "Y"}, {Name: "X"}}))

	err := s.Check([]Field{{Name: "Z"}})
	require.ErrorIs(t, err, ErrFieldMismatch)
	assert.Contains(t, err.Error(), `geo.Point has no field "Z"`)

	err = s.Check([]Field{{Name: "X"}, {Name: "X"}})
	require.ErrorIs(t, err, ErrFieldMismatch)
	assert.Contains(t, err.Error(), "twice")
}

func TestShape_Equal(t *testing.T) {
	assert.True(t, NewShape("a", "x").Equal(NewShape("a", "x")))
	assert.False(t, NewShape("a", "x").Equal(NewShape("a", "y")))
	assert.False(t, NewShape("a", "x").Equal(NewShape("b", "x")))
	assert.False(t, NewShape("a").Equal(nil))
	assert.True(t, (*Shape)(nil).Equal(nil))
}

func TestRecord_GetSet(t *testing.T) {
	r := NewRecord(NewShape("t", "a", "b"))

	_, ok := r.Get("a")
	assert.False(t, ok)

	r.Set("b", Int(1))
	r.Set("a", Int(2))
	r.Set("b", Int(3))

	v, ok := r.Get("b")
	require.True(t, ok)
	assert.Equal(t, Int(3), v)
	assert.Equal(t, []Field{{Name: "b", Value: Int(3)}, {Name: "a", Value: Int(2)}}, r.Fields)
	assert.Equal(t, "", (&Record{}).Type())
}

func TestIsomorphic_Aliasing(t *testing.T) {
	shared := NewSeq(Int(1))
	a := NewSeq(shared, shared)
	b := NewSeq(NewSeq(Int(1)), NewSeq(Int(1)))

	assert.False(t, Isomorphic(a, b))
	assert.False(t, Isomorphic(b, a))

	other := NewSeq(Int(1))
	assert.True(t, Isomorphic(a, NewSeq(other, other)))
}

func TestIsomorphic_Cycles(t *testing.T) {
	build := func() *Seq {
		s := NewSeq(Int(1))
		s.Append(s)

		return s
	}

	assert.True(t, Isomorphic(build(), build()))

	unrolled := NewSeq(Int(1), NewSeq(Int(1)))
	assert.False(t, Isomorphic(build(), unrolled))
}

func TestIsomorphic_Scalars(t *testing.T) {
	assert.True(t, Isomorphic(Float(math.NaN()), Float(math.NaN())))
	assert.False(t, Isomorphic(Int(1), Float(1)))
	assert.False(t, Isomorphic(String("a"), String("b")))
	assert.True(t, Isomorphic(nil, Null{}))

	r1 := NewRecord(NewShape("t", "a"), Field{Name: "a", Value: Int(1)})
	r2 := NewRecord(NewShape("u", "a"), Field{Name: "a", Value: Int(1)})
	assert.False(t, Isomorphic(r1, r2))
}

func TestOf_PointerCycle(t *testing.T) {
	l := &link{Value: 1, note: "head"}
	l.Next = l

	rec, ok := Of(l).(*Record)
	require.True(t, ok)
	assert.Equal(t, "value-exporter/value.link", rec.Type())
	assert.Equal(t, []string{"Value", "Next", "note"}, rec.Shape.Fields)

	next, _ := rec.Get("Next")
	assert.Same(t, rec, next)

	note, _ := rec.Get("note")
	assert.Equal(t, String("head"), note)
}

func TestOf_SharedPointers(t *testing.T) {
	l := &link{Value: 7}

	seq, ok := Of([]*link{l, l, {Value: 7}}).(*Seq)
	require.True(t, ok)
	require.Len(t, seq.Items, 3)
	assert.Same(t, seq.Items[0], seq.Items[1])
	assert.NotSame(t, seq.Items[0], seq.Items[2])
	assert.Same(t, seq.Items[0].(*Record).Shape, seq.Items[2].(*Record).Shape)
}

func TestOf_StructValuesAreFresh(t *testing.T) {
	v := link{Value: 1}

	seq := Of([]link{v, v}).(*Seq)
	assert.NotSame(t, seq.Items[0], seq.Items[1])
	assert.True(t, Isomorphic(seq.Items[0], seq.Items[1]))
}

func TestOf_SharedSlicesAndMaps(t *testing.T) {
	items := []int{1, 2}
	m := map[string]int{"b": 2, "a": 1}

	seq := Of([]any{items, items, m, m, items[:1]}).(*Seq)
	assert.Same(t, seq.Items[0], seq.Items[1])
	assert.Same(t, seq.Items[2], seq.Items[3])
	assert.NotSame(t, seq.Items[0], seq.Items[4])

	mp := seq.Items[2].(*Map)
	assert.Equal(t, []Pair{{Key: String("a"), Value: Int(1)}, {Key: String("b"), Value: Int(2)}}, mp.Pairs)
}

func TestOf_Scalars(t *testing.T) {
	assert.Equal(t, Null{}, Of(nil))
	assert.Equal(t, Null{}, Of((*link)(nil)))
	assert.Equal(t, Null{}, Of([]int(nil)))
	assert.Equal(t, Bool(true), Of(true))
	assert.Equal(t, Int(-3), Of(int8(-3)))
	assert.Equal(t, Int(3), Of(uint16(3)))
	assert.Equal(t, Float(0.5), Of(float32(0.5)))
	assert.Equal(t, String("x"), Of("x"))

	n := 5
	assert.Equal(t, Int(5), Of(&n))

	arr := Of([2]int{1, 2}).(*Seq)
	assert.Equal(t, []Node{Int(1), Int(2)}, arr.Items)
}

func TestOf_Opaque(t *testing.T) {
	rec := Of(holder{Ch: make(chan int), Big: math.MaxUint64}).(*Record)

	assert.Equal(t, []string{"Ch", "Fn", "Big", "Items"}, rec.Shape.Fields)

	ch, _ := rec.Get("Ch")
	assert.Equal(t, KindOpaque, ch.Kind())

	fn, _ := rec.Get("Fn")
	assert.Equal(t, KindOpaque, fn.Kind())

	big, _ := rec.Get("Big")
	assert.Equal(t, KindOpaque, big.Kind())
	assert.Contains(t, big.(Opaque).Desc, "overflows")

	items, _ := rec.Get("Items")
	assert.Equal(t, Null{}, items)
}

func TestShapeOf(t *testing.T) {
	s := ShapeOf(reflect.TypeOf(&link{}))
	assert.Equal(t, NewShape("value-exporter/value.link", "Value", "Next", "note"), s)

	assert.Panics(t, func() { ShapeOf(reflect.TypeOf(1)) })
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "value-exporter/value.link", TypeName(reflect.TypeOf(link{})))
	assert.Equal(t, "int", TypeName(reflect.TypeOf(0)))
	assert.Equal(t, "[]string", TypeName(reflect.TypeOf([]string{})))
}

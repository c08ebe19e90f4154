package value

// Node is one value of a graph. Scalars (Null, Bool, Int, Float, String) are
// compared by value; *Seq, *Map and *Record are compared by pointer identity.
type Node interface {
	Kind() KindEnum
}

type (
	Null   struct{}
	Bool   bool
	Int    int64
	Float  float64
	String string
)

func (Null) Kind() KindEnum   { return KindNull }
func (Bool) Kind() KindEnum   { return KindBool }
func (Int) Kind() KindEnum    { return KindInt }
func (Float) Kind() KindEnum  { return KindFloat }
func (String) Kind() KindEnum { return KindString }

// Seq is an ordered sequence.
type Seq struct {
	Items []Node
}

// NewSeq creates a sequence holding items.
func NewSeq(items ...Node) *Seq {
	return &Seq{Items: items}
}

func (*Seq) Kind() KindEnum { return KindSeq }

// Append adds items at the end of the sequence.
func (s *Seq) Append(items ...Node) {
	s.Items = append(s.Items, items...)
}

// Pair is a single mapping entry.
type Pair struct {
	Key   Node
	Value Node
}

// Map is an insertion-ordered mapping. Keys may be any node, including
// reference-typed ones.
type Map struct {
	Pairs []Pair
}

// NewMap creates a mapping holding pairs in the given order.
func NewMap(pairs ...Pair) *Map {
	return &Map{Pairs: pairs}
}

func (*Map) Kind() KindEnum { return KindMap }

// Put appends an entry.
func (m *Map) Put(key, val Node) {
	m.Pairs = append(m.Pairs, Pair{Key: key, Value: val})
}

// Field is a named record slot.
type Field struct {
	Name  string
	Value Node
}

// Record is an object-like value of a named shape.
type Record struct {
	Shape  *Shape
	Fields []Field
}

// NewRecord creates a record of the given shape. Fields are not checked here,
// use Shape.Check for that.
func NewRecord(shape *Shape, fields ...Field) *Record {
	return &Record{Shape: shape, Fields: fields}
}

func (*Record) Kind() KindEnum { return KindRecord }

// Type returns the type designator of the record.
func (r *Record) Type() string {
	if r.Shape == nil {
		return ""
	}

	return r.Shape.Name
}

// Get returns the value of the named field.
func (r *Record) Get(name string) (Node, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}

	return nil, false
}

// Set replaces the named field or appends it when absent.
func (r *Record) Set(name string, val Node) {
	for i := range r.Fields {
		if r.Fields[i].Name == name {
			r.Fields[i].Value = val
			return
		}
	}

	r.Fields = append(r.Fields, Field{Name: name, Value: val})
}

// Opaque stands for a live resource (channel, function, handle) that has no
// textual form. It exists so readers can keep walking and let the exporter
// report the problem with a path.
type Opaque struct {
	Desc string
}

func (Opaque) Kind() KindEnum { return KindOpaque }

package value

import "math"

// IsNull reports whether n represents null: a nil interface, Null, or a nil
// reference node.
func IsNull(n Node) bool {
	switch v := n.(type) {
	case nil, Null:
		return true
	case *Seq:
		return v == nil
	case *Map:
		return v == nil
	case *Record:
		return v == nil
	default:
		return false
	}
}

// Isomorphic reports whether a and b have the same structure and the same
// aliasing: reference nodes shared in a are shared in b at the same places,
// and distinct ones stay distinct.
func Isomorphic(a, b Node) bool {
	c := comparer{
		fwd: make(map[Node]Node),
		rev: make(map[Node]Node),
	}

	return c.compare(a, b)
}

type comparer struct {
	fwd map[Node]Node
	rev map[Node]Node
}

func (c *comparer) compare(a, b Node) bool {
	if IsNull(a) || IsNull(b) {
		return IsNull(a) && IsNull(b)
	}

	if a.Kind() != b.Kind() {
		return false
	}

	if !a.Kind().IsReference() {
		return scalarEqual(a, b)
	}

	if mapped, ok := c.fwd[a]; ok {
		return mapped == b
	}

	if _, ok := c.rev[b]; ok {
		return false
	}

	c.fwd[a] = b
	c.rev[b] = a

	switch av := a.(type) {
	case *Seq:
		bv := b.(*Seq)
		if len(av.Items) != len(bv.Items) {
			return false
		}

		for i := range av.Items {
			if !c.compare(av.Items[i], bv.Items[i]) {
				return false
			}
		}

	case *Map:
		bv := b.(*Map)
		if len(av.Pairs) != len(bv.Pairs) {
			return false
		}

		for i := range av.Pairs {
			if !c.compare(av.Pairs[i].Key, bv.Pairs[i].Key) ||
				!c.compare(av.Pairs[i].Value, bv.Pairs[i].Value) {
				return false
			}
		}

	case *Record:
		bv := b.(*Record)
		if av.Type() != bv.Type() || len(av.Fields) != len(bv.Fields) {
			return false
		}

		for i := range av.Fields {
			if av.Fields[i].Name != bv.Fields[i].Name ||
				!c.compare(av.Fields[i].Value, bv.Fields[i].Value) {
				return false
			}
		}
	}

	return true
}

func scalarEqual(a, b Node) bool {
	if af, ok := a.(Float); ok {
		bf := b.(Float)
		// NaN never equals itself; identical bits are good enough here.
		return af == bf || math.Float64bits(float64(af)) == math.Float64bits(float64(bf))
	}

	return a == b
}

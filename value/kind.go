package value

//go:generate go tool stringer -type=KindEnum -output=kind_string.go

type KindEnum int

const (
	_ KindEnum = iota // skip zero value, use it as a default (invalid) value for KindEnum

	KindNull
	KindBool
	KindInt
	KindFloat
	KindString
	KindSeq
	KindMap
	KindRecord
	KindOpaque // live resource, never exportable

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

// IsScalar reports whether nodes of this kind are compared by value.
func (k KindEnum) IsScalar() bool {
	switch k {
	default:
		return false
	case KindNull, KindBool, KindInt, KindFloat, KindString:
		return true
	}
}

// IsReference reports whether nodes of this kind carry identity.
func (k KindEnum) IsReference() bool {
	switch k {
	default:
		return false
	case KindSeq, KindMap, KindRecord:
		return true
	}
}

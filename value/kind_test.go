package value_test

import (
	"fmt"

	"value-exporter/value"
)

func Example() {
	p := value.NewShape("geo.Point", "X", "Y")
	pt := value.NewRecord(p, value.Field{Name: "X", Value: value.Int(1)})

	fmt.Println(value.Int(1).Kind())
	fmt.Println(value.NewSeq(pt, pt).Kind())
	fmt.Println(pt.Kind(), pt.Type())
	fmt.Println(value.Opaque{Desc: "chan int"}.Kind())
	fmt.Println(value.KindEnum(99))
	// Output:
	// KindInt
	// KindSeq
	// KindRecord geo.Point
	// KindOpaque
	// KindEnum(99)
}

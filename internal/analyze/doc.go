// Package analyze loads Go packages and derives record shapes from their
// struct types.
//
// It uses golang.org/x/tools/go/packages with go/types, so shapes can be
// produced without compiling the packages into the running binary. The
// designators and field lists match value.ShapeOf for the same types.
//
// Key types:
//   - TypeID: package import path + type name
//   - StructInfo: a named struct type and its storage slots
//   - FieldInfo: a slot name with its export and embedding flags
package analyze

package analyze

import (
	"go/token"

	"value-exporter/value"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "value-exporter/value"
	Name    string // e.g., "Shape"
}

// String returns the record designator of the type.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// StructInfo describes a named struct type.
type StructInfo struct {
	ID       TypeID
	Fields   []FieldInfo
	Position token.Position // declaration site
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	Name     string // Go field name
	Exported bool   // Whether the field is exported
	Embedded bool   // Whether the field is embedded (anonymous)
	Index    int    // Field index in the struct
}

// Shape returns the record shape of the struct: every named slot, exported
// or not, in declaration order.
func (s *StructInfo) Shape() *value.Shape {
	shape := value.NewShape(s.ID.String())
	for _, f := range s.Fields {
		shape.Fields = append(shape.Fields, f.Name)
	}

	return shape
}

// ExportedFields returns the names of exported fields.
func (s *StructInfo) ExportedFields() []string {
	var names []string

	for _, f := range s.Fields {
		if f.Exported {
			names = append(names, f.Name)
		}
	}

	return names
}

// TypeGraph holds the struct types of loaded packages.
type TypeGraph struct {
	// Structs maps TypeID to StructInfo for all named struct types.
	Structs map[TypeID]*StructInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Structs:  make(map[TypeID]*StructInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetStruct returns the StructInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetStruct(id TypeID) *StructInfo {
	return g.Structs[id]
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path    string   // Import path
	Name    string   // Package name
	Structs []TypeID // Named struct types defined in this package
}

package analyze

import (
	"errors"
	"fmt"
	"go/types"
	"sort"

	"golang.org/x/tools/go/packages"

	"value-exporter/value"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Analyzer loads Go packages and collects their struct types.
type Analyzer struct {
	// Dir is the directory patterns are resolved in. Empty means the
	// current directory.
	Dir string
	// Unexported includes struct types that are not exported.
	Unexported bool

	graph *TypeGraph
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		graph: NewTypeGraph(),
	}
}

// LoadPackages loads the specified packages and adds their struct types to
// the graph. Patterns are standard Go package patterns (e.g., "./value",
// "value-exporter/hydrate").
func (a *Analyzer) LoadPackages(patterns ...string) (*TypeGraph, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.Dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error

	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	})

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	for _, pkg := range pkgs {
		a.processPackage(pkg)
	}

	return a.graph, nil
}

// Shapes returns the shapes of all collected structs, sorted by designator.
func (a *Analyzer) Shapes() []*value.Shape {
	ids := make([]TypeID, 0, len(a.graph.Structs))
	for id := range a.graph.Structs {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})

	shapes := make([]*value.Shape, len(ids))
	for i, id := range ids {
		shapes[i] = a.graph.Structs[id].Shape()
	}

	return shapes
}

// processPackage extracts struct types from a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) {
	pkgInfo := &PackageInfo{
		Path: pkg.PkgPath,
		Name: pkg.Name,
	}

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || typeName.IsAlias() {
			continue
		}

		if !typeName.Exported() && !a.Unexported {
			continue
		}

		named, ok := typeName.Type().(*types.Named)
		if !ok || named.TypeParams().Len() > 0 {
			// generic types have no single designator
			continue
		}

		st, ok := named.Underlying().(*types.Struct)
		if !ok {
			continue
		}

		info := &StructInfo{
			ID:       TypeID{PkgPath: pkg.PkgPath, Name: name},
			Fields:   structFields(st),
			Position: pkg.Fset.Position(typeName.Pos()),
		}

		a.graph.Structs[info.ID] = info
		pkgInfo.Structs = append(pkgInfo.Structs, info.ID)
	}

	a.graph.Packages[pkg.PkgPath] = pkgInfo
}

// structFields lists the named slots of st. Blank fields hold no state.
func structFields(st *types.Struct) []FieldInfo {
	var fields []FieldInfo

	for i := range st.NumFields() {
		field := st.Field(i)
		if field.Name() == "_" {
			continue
		}

		fields = append(fields, FieldInfo{
			Name:     field.Name(),
			Exported: field.Exported(),
			Embedded: field.Embedded(),
			Index:    i,
		})
	}

	return fields
}

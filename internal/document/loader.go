package document

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"value-exporter/hydrate"
	"value-exporter/internal/diagnostic"
	"value-exporter/value"
)

// ErrUnsupported is returned for YAML constructs without a graph equivalent.
var ErrUnsupported = errors.New("unsupported YAML construct")

// Loader converts YAML into graphs. Shapes inferred for unregistered record
// types accumulate across loads.
type Loader struct {
	reg      *hydrate.Registry
	inferred map[string]*value.Shape
	memo     map[*yaml.Node]value.Node
	diags    diagnostic.Diagnostics
}

// NewLoader creates a Loader resolving record types through reg, which may be
// nil.
func NewLoader(reg *hydrate.Registry) *Loader {
	return &Loader{
		reg:      reg,
		inferred: make(map[string]*value.Shape),
	}
}

// LoadFile loads the YAML document at path.
func (l *Loader) LoadFile(path string) (value.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}

	return l.Parse(data)
}

// Load reads a YAML document from r.
func (l *Loader) Load(r io.Reader) (value.Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	return l.Parse(data)
}

// Parse converts the first YAML document of data. Empty input is null.
func (l *Loader) Parse(data []byte) (value.Node, error) {
	var root yaml.Node

	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse document YAML: %w", err)
	}

	l.memo = make(map[*yaml.Node]value.Node)
	l.diags = diagnostic.Diagnostics{}

	defer func() { l.memo = nil }()

	return l.convert(&root)
}

// Diagnostics returns the notes raised by the last load.
func (l *Loader) Diagnostics() diagnostic.Diagnostics {
	return l.diags
}

// Inferred returns the shapes inferred so far, sorted by designator.
func (l *Loader) Inferred() []*value.Shape {
	out := make([]*value.Shape, 0, len(l.inferred))
	for _, s := range l.inferred {
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})

	return out
}

func (l *Loader) convert(n *yaml.Node) (value.Node, error) {
	if got, ok := l.memo[n]; ok {
		return got, nil
	}

	switch n.Kind {
	case 0:
		return value.Null{}, nil

	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return value.Null{}, nil
		}

		return l.convert(n.Content[0])

	case yaml.AliasNode:
		if n.Alias.Kind == yaml.ScalarNode {
			l.diags.AddInfo(diagnostic.CodeSharedScalar, n.Line,
				"alias *%s of a scalar is copied, scalars have no identity", n.Value)
		}

		return l.convert(n.Alias)

	case yaml.ScalarNode:
		return scalar(n)

	case yaml.SequenceNode:
		if isLocalTag(n.Tag) {
			return nil, fmt.Errorf("line %d: %w: tag %s on a sequence", n.Line, ErrUnsupported, n.Tag)
		}

		s := value.NewSeq()
		l.memo[n] = s

		for _, c := range n.Content {
			item, err := l.convert(c)
			if err != nil {
				return nil, err
			}

			s.Append(item)
		}

		return s, nil

	case yaml.MappingNode:
		if isLocalTag(n.Tag) {
			return l.record(n)
		}

		return l.mapping(n)

	default:
		return nil, fmt.Errorf("line %d: %w: node kind %v", n.Line, ErrUnsupported, n.Kind)
	}
}

func (l *Loader) mapping(n *yaml.Node) (value.Node, error) {
	m := value.NewMap()
	l.memo[n] = m

	seen := make(map[value.Node]bool)

	for i := 0; i+1 < len(n.Content); i += 2 {
		kn, vn := n.Content[i], n.Content[i+1]
		if kn.Tag == "!!merge" {
			return nil, fmt.Errorf("line %d: %w: merge key", kn.Line, ErrUnsupported)
		}

		k, err := l.convert(kn)
		if err != nil {
			return nil, err
		}

		if k.Kind().IsScalar() {
			if seen[k] {
				l.diags.AddWarning(diagnostic.CodeDuplicateKey, kn.Line, "mapping key %s repeated", kn.Value)
			}

			seen[k] = true
		}

		v, err := l.convert(vn)
		if err != nil {
			return nil, err
		}

		m.Put(k, v)
	}

	return m, nil
}

func (l *Loader) record(n *yaml.Node) (value.Node, error) {
	typ := strings.TrimPrefix(n.Tag, "!")
	shape := l.shape(typ, n.Line)

	rec := value.NewRecord(shape)
	l.memo[n] = rec

	for i := 0; i+1 < len(n.Content); i += 2 {
		kn, vn := n.Content[i], n.Content[i+1]
		if kn.Kind != yaml.ScalarNode || kn.ShortTag() != "!!str" {
			return nil, fmt.Errorf("line %d: field names of %s must be strings", kn.Line, typ)
		}

		v, err := l.convert(vn)
		if err != nil {
			return nil, err
		}

		rec.Fields = append(rec.Fields, value.Field{Name: kn.Value, Value: v})
	}

	if inferred, ok := l.inferred[typ]; ok && inferred == shape {
		for _, f := range rec.Fields {
			if !shape.Has(f.Name) {
				shape.Fields = append(shape.Fields, f.Name)
			}
		}
	}

	if err := shape.Check(rec.Fields); err != nil {
		return nil, fmt.Errorf("line %d: %w", n.Line, err)
	}

	return rec, nil
}

func (l *Loader) shape(typ string, line int) *value.Shape {
	if l.reg != nil {
		if s, ok := l.reg.Lookup(typ); ok {
			return s
		}
	}

	s, ok := l.inferred[typ]
	if !ok {
		s = value.NewShape(typ)
		l.inferred[typ] = s

		l.diags.AddInfo(diagnostic.CodeInferredShape, line, "record type %s is not registered, shape inferred", typ)
	}

	return s
}

func scalar(n *yaml.Node) (value.Node, error) {
	switch n.ShortTag() {
	case "!!null":
		return value.Null{}, nil

	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}

		return value.Bool(b), nil

	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}

		return value.Int(i), nil

	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}

		return value.Float(f), nil

	case "!!str", "!!binary", "!!timestamp":
		return value.String(n.Value), nil

	default:
		if isLocalTag(n.Tag) {
			return nil, fmt.Errorf("line %d: %w: tag %s on a scalar", n.Line, ErrUnsupported, n.Tag)
		}

		return nil, fmt.Errorf("line %d: %w: tag %s", n.Line, ErrUnsupported, n.Tag)
	}
}

// isLocalTag reports whether tag names a record type.
func isLocalTag(tag string) bool {
	return strings.HasPrefix(tag, "!") && !strings.HasPrefix(tag, "!!")
}

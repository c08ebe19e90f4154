package exporter

import (
	"io"
	"math"
	"strconv"
	"strings"

	"value-exporter/value"
)

// Expr is an expression of an exported program.
type Expr interface {
	writeTo(b *strings.Builder)
}

type (
	// Literal is rendered scalar text.
	Literal string
	// Ref names an earlier binding.
	Ref string
	// NewHelper instantiates the restoration helper.
	NewHelper struct{}
)

// SeqLit builds a sequence.
type SeqLit struct {
	Items []Expr
}

// MapLit builds a mapping.
type MapLit struct {
	Entries []MapEntry
}

// MapEntry is one entry of a MapLit.
type MapEntry struct {
	Key   Expr
	Value Expr
}

// FieldExpr is one named value handed to the restoration helper.
type FieldExpr struct {
	Name  string
	Value Expr
}

// Restore rebuilds a record of Type from Fields through the helper.
type Restore struct {
	Helper Expr
	Type   string
	Fields []FieldExpr
}

// Alloc creates an empty record of Type to be filled later.
type Alloc struct {
	Helper Expr
	Type   string
}

// Stmt is a statement of an exported program.
type Stmt interface {
	writeTo(b *strings.Builder)
}

// Binding assigns Value to Name. A placeholder binding holds an empty
// instance that later statements populate; it resolves a cycle.
type Binding struct {
	Name        string
	Value       Expr
	Placeholder bool
}

// Append adds Value at the end of the sequence bound to Target.
type Append struct {
	Target string
	Value  Expr
}

// Put adds an entry to the mapping bound to Target.
type Put struct {
	Target string
	Key    Expr
	Value  Expr
}

// Fill populates the record bound to Target through the helper.
type Fill struct {
	Helper Expr
	Target string
	Fields []FieldExpr
}

// Program is an ordered list of statements followed by the result
// expression. Names are only used after the statement binding them.
type Program struct {
	Stmts  []Stmt
	Result Expr

	records int
}

// Stats summarizes a program.
type Stats struct {
	Statements   int
	Bindings     int
	Placeholders int
	Records      int
}

// Stats counts statements and bindings of the program.
func (p *Program) Stats() Stats {
	st := Stats{Statements: len(p.Stmts), Records: p.records}

	for _, s := range p.Stmts {
		if b, ok := s.(*Binding); ok {
			st.Bindings++
			if b.Placeholder {
				st.Placeholders++
			}
		}
	}

	return st
}

// Bindings returns the bound names in program order.
func (p *Program) Bindings() []string {
	var names []string

	for _, s := range p.Stmts {
		if b, ok := s.(*Binding); ok {
			names = append(names, b.Name)
		}
	}

	return names
}

// String renders the program text.
func (p *Program) String() string {
	var b strings.Builder

	for _, s := range p.Stmts {
		s.writeTo(&b)
		b.WriteByte(';')
	}

	p.Result.writeTo(&b)

	return b.String()
}

// WriteTo writes the program text to w.
func (p *Program) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, p.String())
	return int64(n), err
}

func (l Literal) writeTo(b *strings.Builder) { b.WriteString(string(l)) }

func (r Ref) writeTo(b *strings.Builder) { b.WriteString(string(r)) }

func (NewHelper) writeTo(b *strings.Builder) { b.WriteString(helperCtor + "()") }

func (s *SeqLit) writeTo(b *strings.Builder) {
	b.WriteByte('[')

	for i, it := range s.Items {
		if i > 0 {
			b.WriteByte(',')
		}

		it.writeTo(b)
	}

	b.WriteByte(']')
}

func (m *MapLit) writeTo(b *strings.Builder) {
	b.WriteByte('{')

	for i, e := range m.Entries {
		if i > 0 {
			b.WriteByte(',')
		}

		e.Key.writeTo(b)
		b.WriteByte(':')
		e.Value.writeTo(b)
	}

	b.WriteByte('}')
}

func (r *Restore) writeTo(b *strings.Builder) {
	r.Helper.writeTo(b)
	b.WriteString(".restore(")
	b.WriteString(strconv.Quote(r.Type))
	b.WriteByte(',')
	writeFields(b, r.Fields)
	b.WriteByte(')')
}

func (a *Alloc) writeTo(b *strings.Builder) {
	a.Helper.writeTo(b)
	b.WriteString(".alloc(")
	b.WriteString(strconv.Quote(a.Type))
	b.WriteByte(')')
}

func (s *Binding) writeTo(b *strings.Builder) {
	b.WriteString(s.Name)
	b.WriteByte('=')
	s.Value.writeTo(b)
}

func (s *Append) writeTo(b *strings.Builder) {
	b.WriteString(s.Target)
	b.WriteString("[]=")
	s.Value.writeTo(b)
}

func (s *Put) writeTo(b *strings.Builder) {
	b.WriteString(s.Target)
	b.WriteByte('[')
	s.Key.writeTo(b)
	b.WriteString("]=")
	s.Value.writeTo(b)
}

func (s *Fill) writeTo(b *strings.Builder) {
	s.Helper.writeTo(b)
	b.WriteString(".fill(")
	b.WriteString(s.Target)
	b.WriteByte(',')
	writeFields(b, s.Fields)
	b.WriteByte(')')
}

func writeFields(b *strings.Builder, fields []FieldExpr) {
	b.WriteByte('{')

	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}

		b.WriteString(strconv.Quote(f.Name))
		b.WriteByte(':')
		f.Value.writeTo(b)
	}

	b.WriteByte('}')
}

// slots returns the child expressions of e so they can be read or replaced.
func slots(e Expr) []*Expr {
	var out []*Expr

	switch v := e.(type) {
	case *SeqLit:
		for i := range v.Items {
			out = append(out, &v.Items[i])
		}
	case *MapLit:
		for i := range v.Entries {
			out = append(out, &v.Entries[i].Key, &v.Entries[i].Value)
		}
	case *Restore:
		out = append(out, &v.Helper)
		for i := range v.Fields {
			out = append(out, &v.Fields[i].Value)
		}
	case *Alloc:
		out = append(out, &v.Helper)
	}

	return out
}

// stmtSlots returns the expressions of s and the name it mutates, if any.
func stmtSlots(s Stmt) (exprs []*Expr, target string) {
	switch v := s.(type) {
	case *Binding:
		return []*Expr{&v.Value}, ""
	case *Append:
		return []*Expr{&v.Value}, v.Target
	case *Put:
		return []*Expr{&v.Key, &v.Value}, v.Target
	case *Fill:
		exprs = append(exprs, &v.Helper)
		for i := range v.Fields {
			exprs = append(exprs, &v.Fields[i].Value)
		}

		return exprs, v.Target
	}

	return nil, ""
}

// eachRef calls fn for every name referenced inside e.
func eachRef(e Expr, fn func(name string)) {
	if r, ok := e.(Ref); ok {
		fn(string(r))
		return
	}

	for _, s := range slots(e) {
		eachRef(*s, fn)
	}
}

// scalar renders a scalar node as literal text.
func scalar(n value.Node) Literal {
	switch v := n.(type) {
	case value.Bool:
		return Literal(strconv.FormatBool(bool(v)))
	case value.Int:
		return Literal(strconv.FormatInt(int64(v), 10))
	case value.Float:
		return floatLiteral(float64(v))
	case value.String:
		return Literal(strconv.Quote(string(v)))
	default:
		return Literal("null")
	}
}

// floatLiteral always carries a dot, an exponent or a name, so the text never
// reads back as an integer.
func floatLiteral(f float64) Literal {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}

	return Literal(s)
}

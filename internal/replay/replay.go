// Package replay executes exported programs to rebuild the graph they
// describe. It stands in for the execution environment when checking that
// exports round-trip, and is only used by tests.
//
// Programs use the Go lexical grammar, so go/scanner tokenizes them.
package replay

import (
	"errors"
	"fmt"
	"go/scanner"
	"go/token"
	"math"
	"strconv"

	"value-exporter/hydrate"
	"value-exporter/value"
)

type tok struct {
	kind token.Token
	lit  string
	pos  token.Pos
}

type machine struct {
	toks []tok
	i    int
	env  map[string]any
	reg  *hydrate.Registry
}

// Run executes src and returns its result. Record designators resolve
// through reg.
func Run(src string, reg *hydrate.Registry) (value.Node, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}

	m := &machine{toks: toks, env: make(map[string]any), reg: reg}

	return m.program()
}

func tokenize(src string) ([]tok, error) {
	fset := token.NewFileSet()
	file := fset.AddFile("program", fset.Base(), len(src))

	var errs scanner.ErrorList

	var s scanner.Scanner
	s.Init(file, []byte(src), func(pos token.Position, msg string) {
		errs.Add(pos, msg)
	}, 0)

	var toks []tok

	for {
		pos, kind, lit := s.Scan()
		// skip semicolons inserted at end of input
		if kind == token.SEMICOLON && lit == "\n" {
			continue
		}

		toks = append(toks, tok{kind: kind, lit: lit, pos: pos})
		if kind == token.EOF {
			break
		}
	}

	if err := errs.Err(); err != nil {
		return nil, fmt.Errorf("tokenizing program: %w", err)
	}

	return toks, nil
}

func (m *machine) peek(k int) tok {
	if m.i+k >= len(m.toks) {
		return m.toks[len(m.toks)-1]
	}

	return m.toks[m.i+k]
}

func (m *machine) next() tok {
	t := m.peek(0)
	if m.i < len(m.toks)-1 {
		m.i++
	}

	return t
}

func (m *machine) expect(kind token.Token) (tok, error) {
	t := m.next()
	if t.kind != kind {
		return t, fmt.Errorf("offset %d: expected %s, found %s %q", t.pos, kind, t.kind, t.lit)
	}

	return t, nil
}

func (m *machine) program() (value.Node, error) {
	for {
		first, second := m.peek(0), m.peek(1)

		switch {
		case first.kind == token.IDENT && second.kind == token.ASSIGN:
			m.next()
			m.next()

			v, err := m.expr()
			if err != nil {
				return nil, err
			}

			m.env[first.lit] = v

		case first.kind == token.IDENT && second.kind == token.LBRACK:
			if err := m.store(); err != nil {
				return nil, err
			}

		default:
			v, err := m.expr()
			if err != nil {
				return nil, err
			}

			if m.peek(0).kind == token.EOF {
				return node(v)
			}
		}

		if _, err := m.expect(token.SEMICOLON); err != nil {
			return nil, err
		}
	}
}

// store executes `name[]=v` and `name[k]=v`.
func (m *machine) store() error {
	name := m.next().lit
	m.next()

	target, ok := m.env[name]
	if !ok {
		return fmt.Errorf("undefined name %s", name)
	}

	var key value.Node

	appending := m.peek(0).kind == token.RBRACK
	if !appending {
		k, err := m.expr()
		if err != nil {
			return err
		}

		if key, err = node(k); err != nil {
			return err
		}
	}

	if _, err := m.expect(token.RBRACK); err != nil {
		return err
	}

	if _, err := m.expect(token.ASSIGN); err != nil {
		return err
	}

	x, err := m.expr()
	if err != nil {
		return err
	}

	val, err := node(x)
	if err != nil {
		return err
	}

	switch t := target.(type) {
	case *value.Seq:
		if !appending {
			return fmt.Errorf("keyed store into sequence %s", name)
		}

		t.Append(val)
	case *value.Map:
		if appending {
			return fmt.Errorf("append to mapping %s", name)
		}

		t.Put(key, val)
	default:
		return fmt.Errorf("store into %s of type %T", name, target)
	}

	return nil
}

func (m *machine) expr() (any, error) {
	v, err := m.operand()
	if err != nil {
		return nil, err
	}

	for m.peek(0).kind == token.PERIOD {
		m.next()

		method, err := m.expect(token.IDENT)
		if err != nil {
			return nil, err
		}

		if _, err := m.expect(token.LPAREN); err != nil {
			return nil, err
		}

		if v, err = m.call(v, method.lit); err != nil {
			return nil, err
		}
	}

	return v, nil
}

func (m *machine) operand() (any, error) {
	t := m.next()

	switch t.kind {
	case token.INT, token.FLOAT:
		return number(t.lit)

	case token.SUB:
		n := m.next()
		if n.kind == token.IDENT && n.lit == "inf" {
			return value.Float(math.Inf(-1)), nil
		}

		if n.kind != token.INT && n.kind != token.FLOAT {
			return nil, fmt.Errorf("offset %d: number expected after '-'", n.pos)
		}

		return number("-" + n.lit)

	case token.STRING:
		s, err := strconv.Unquote(t.lit)
		if err != nil {
			return nil, fmt.Errorf("offset %d: %w", t.pos, err)
		}

		return value.String(s), nil

	case token.LBRACK:
		return m.seq()

	case token.LBRACE:
		return m.mapping()

	case token.IDENT:
		return m.ident(t)
	}

	return nil, fmt.Errorf("offset %d: unexpected %s %q", t.pos, t.kind, t.lit)
}

func (m *machine) ident(t tok) (any, error) {
	switch t.lit {
	case "null":
		return value.Null{}, nil
	case "true":
		return value.Bool(true), nil
	case "false":
		return value.Bool(false), nil
	case "nan":
		return value.Float(math.NaN()), nil
	case "inf":
		return value.Float(math.Inf(1)), nil
	case "hydrator":
		if _, err := m.expect(token.LPAREN); err != nil {
			return nil, err
		}

		if _, err := m.expect(token.RPAREN); err != nil {
			return nil, err
		}

		return hydrate.New(m.reg), nil
	}

	v, ok := m.env[t.lit]
	if !ok {
		return nil, fmt.Errorf("offset %d: undefined name %s", t.pos, t.lit)
	}

	return v, nil
}

func (m *machine) seq() (any, error) {
	s := value.NewSeq()

	for m.peek(0).kind != token.RBRACK {
		if len(s.Items) > 0 {
			if _, err := m.expect(token.COMMA); err != nil {
				return nil, err
			}
		}

		x, err := m.expr()
		if err != nil {
			return nil, err
		}

		n, err := node(x)
		if err != nil {
			return nil, err
		}

		s.Append(n)
	}

	m.next()

	return s, nil
}

func (m *machine) mapping() (any, error) {
	mp := value.NewMap()

	for m.peek(0).kind != token.RBRACE {
		if len(mp.Pairs) > 0 {
			if _, err := m.expect(token.COMMA); err != nil {
				return nil, err
			}
		}

		k, err := m.expr()
		if err != nil {
			return nil, err
		}

		if _, err := m.expect(token.COLON); err != nil {
			return nil, err
		}

		x, err := m.expr()
		if err != nil {
			return nil, err
		}

		kn, err := node(k)
		if err != nil {
			return nil, err
		}

		xn, err := node(x)
		if err != nil {
			return nil, err
		}

		mp.Put(kn, xn)
	}

	m.next()

	return mp, nil
}

// call runs a helper method; the opening parenthesis is consumed.
func (m *machine) call(recv any, method string) (any, error) {
	h, ok := recv.(*hydrate.Hydrator)
	if !ok {
		return nil, fmt.Errorf("method %s called on %T", method, recv)
	}

	switch method {
	case "restore":
		typ, err := m.designator()
		if err != nil {
			return nil, err
		}

		if _, err := m.expect(token.COMMA); err != nil {
			return nil, err
		}

		fields, err := m.fields()
		if err != nil {
			return nil, err
		}

		if _, err := m.expect(token.RPAREN); err != nil {
			return nil, err
		}

		return h.Restore(typ, fields)

	case "alloc":
		typ, err := m.designator()
		if err != nil {
			return nil, err
		}

		if _, err := m.expect(token.RPAREN); err != nil {
			return nil, err
		}

		return h.Alloc(typ)

	case "fill":
		x, err := m.expr()
		if err != nil {
			return nil, err
		}

		rec, ok := x.(*value.Record)
		if !ok {
			return nil, fmt.Errorf("fill target is %T, not a record", x)
		}

		if _, err := m.expect(token.COMMA); err != nil {
			return nil, err
		}

		fields, err := m.fields()
		if err != nil {
			return nil, err
		}

		if _, err := m.expect(token.RPAREN); err != nil {
			return nil, err
		}

		return rec, h.Fill(rec, fields)
	}

	return nil, fmt.Errorf("unknown helper method %s", method)
}

func (m *machine) designator() (string, error) {
	t, err := m.expect(token.STRING)
	if err != nil {
		return "", err
	}

	return strconv.Unquote(t.lit)
}

func (m *machine) fields() ([]value.Field, error) {
	if _, err := m.expect(token.LBRACE); err != nil {
		return nil, err
	}

	var fields []value.Field

	for m.peek(0).kind != token.RBRACE {
		if len(fields) > 0 {
			if _, err := m.expect(token.COMMA); err != nil {
				return nil, err
			}
		}

		name, err := m.designator()
		if err != nil {
			return nil, err
		}

		if _, err := m.expect(token.COLON); err != nil {
			return nil, err
		}

		x, err := m.expr()
		if err != nil {
			return nil, err
		}

		n, err := node(x)
		if err != nil {
			return nil, err
		}

		fields = append(fields, value.Field{Name: name, Value: n})
	}

	m.next()

	return fields, nil
}

func number(lit string) (any, error) {
	if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
		return value.Int(i), nil
	}

	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return nil, fmt.Errorf("bad number %q: %w", lit, err)
	}

	return value.Float(f), nil
}

func node(x any) (value.Node, error) {
	n, ok := x.(value.Node)
	if !ok {
		return nil, errors.New("helper used as a value")
	}

	return n, nil
}

package exporter

// Optimize removes bindings that are never used and inlines bindings used
// exactly once at their single use site, until no such binding is left.
// Placeholder bindings stay: their instance must exist before the statements
// that populate it. Substitution works on the expression tree, so literal
// text is never affected. The program is rewritten in place and returned.
func Optimize(p *Program) *Program {
	uses := make(map[string]int)
	count := func(name string) { uses[name]++ }

	for _, s := range p.Stmts {
		exprs, target := stmtSlots(s)
		if target != "" {
			count(target)
		}

		for _, x := range exprs {
			eachRef(*x, count)
		}
	}

	eachRef(p.Result, count)

	// A binding only refers to earlier ones, so walking backwards sees every
	// use of a binding dropped as dead before reaching the bindings it used.
	dead := make(map[string]bool)

	for i := len(p.Stmts) - 1; i >= 0; i-- {
		b, ok := p.Stmts[i].(*Binding)
		if !ok || b.Placeholder || uses[b.Name] > 0 {
			continue
		}

		dead[b.Name] = true
		eachRef(b.Value, func(name string) { uses[name]-- })
	}

	inline := make(map[string]Expr)

	for _, s := range p.Stmts {
		if b, ok := s.(*Binding); ok && !b.Placeholder && !dead[b.Name] && uses[b.Name] == 1 {
			inline[b.Name] = b.Value
		}
	}

	var subst func(e Expr) Expr
	subst = func(e Expr) Expr {
		if r, ok := e.(Ref); ok {
			if x, ok := inline[string(r)]; ok {
				return subst(x)
			}

			return e
		}

		for _, s := range slots(e) {
			*s = subst(*s)
		}

		return e
	}

	stmts := p.Stmts[:0]

	for _, s := range p.Stmts {
		if b, ok := s.(*Binding); ok {
			if _, inlined := inline[b.Name]; inlined || dead[b.Name] {
				continue
			}
		}

		exprs, _ := stmtSlots(s)
		for _, x := range exprs {
			*x = subst(*x)
		}

		stmts = append(stmts, s)
	}

	p.Stmts = stmts
	p.Result = subst(p.Result)

	return p
}

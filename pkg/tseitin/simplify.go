package tseitin

import (
	"sort"

	"github.com/gitrdm/ccsmt/pkg/ast"
)

// simplify memoizes and rewrites t: double negation collapses, n-ary
// and/or flatten (absorbing nested same-connective applications and the
// neutral element) and dedup-sort their arguments, imply rewrites to or,
// ite folds away a constant condition or identical branches, distinct
// rewrites to a conjunction of pairwise negated equalities (or, for two
// arguments, a single negated equality — the common case kept cheap), and
// t=t collapses to true. Ported from SimpStruct::simplify_rec.
func (ts *Tseitin) simplify(t ast.ID) ast.ID {
	if u, ok := ts.simpCache[t]; ok {
		return u
	}
	v := ts.m.ViewAsFormula(t)
	var u ast.ID
	switch v.Kind {
	case ast.FTyBool, ast.FBool:
		u = t

	case ast.FDistinct:
		u = ts.simplifyDistinct(v.Args)

	case ast.FEq:
		sa, sb := ts.simplify(v.A), ts.simplify(v.B)
		if sa == sb {
			u = ts.m.Bool(true)
		} else {
			u = ts.m.Eq(sa, sb)
		}

	case ast.FAtom:
		u = ts.simplifyAtom(t)

	case ast.FNot:
		su := ts.simplify(v.Args[0])
		sv := ts.m.ViewAsFormula(su)
		switch {
		case sv.IsBool():
			u = ts.m.Bool(!sv.Bool)
		case sv.Kind == ast.FNot:
			u = sv.Args[0]
		default:
			u = ts.m.Not(su)
		}

	case ast.FAnd:
		u = ts.simplifyConn(v.Args, true)

	case ast.FOr:
		u = ts.simplifyConn(v.Args, false)

	case ast.FImply:
		u = ts.simplifyImply(v.Args)

	case ast.FIte:
		sa, sb, sc := ts.simplify(v.A), ts.simplify(v.B), ts.simplify(v.C)
		sva := ts.m.ViewAsFormula(sa)
		switch {
		case sva.IsTrue():
			u = sb
		case sva.IsFalse():
			u = sc
		case sb == sc:
			u = sb
		default:
			u = ts.m.Ite(sa, sb, sc)
		}
	}
	ts.simpCache[t] = u
	return u
}

// simplifyAtom handles the two structural shapes ViewAsFormula classifies
// as FAtom: a plain constant (returned unchanged) or an application whose
// head is not one of the special connective symbols, whose arguments are
// simplified in place.
func (ts *Tseitin) simplifyAtom(t ast.ID) ast.ID {
	sv := ts.m.View(t)
	if sv.Kind != ast.KApp {
		return t
	}
	headSym := ts.m.Symbol(sv.Head)
	newArgs := make([]ast.ID, len(sv.Args))
	for i, a := range sv.Args {
		newArgs[i] = ts.simplify(a)
	}
	return ts.m.App(headSym, newArgs, ts.m.Sort(t))
}

func (ts *Tseitin) simplifyDistinct(args []ast.ID) ast.ID {
	switch len(args) {
	case 0, 1:
		return ts.m.Bool(true)
	case 2:
		a, b := ts.simplify(args[0]), ts.simplify(args[1])
		return ts.m.Not(ts.m.Eq(a, b))
	default:
		simplified := make([]ast.ID, len(args))
		for i, a := range args {
			simplified[i] = ts.simplify(a)
		}
		var conj []ast.ID
		for i := 0; i < len(simplified)-1; i++ {
			for j := i + 1; j < len(simplified); j++ {
				eqn := ts.m.Eq(simplified[i], simplified[j])
				conj = append(conj, ts.m.Not(eqn))
			}
		}
		return ts.m.And(conj...)
	}
}

// simplifyConn simplifies each argument, then flattens nested applications
// of the same connective (absorbing the neutral element: true inside and,
// false inside or), sorts and dedups the flattened arguments for a
// canonical form, and short-circuits if an absorbing element (false
// inside and, true inside or) appears.
func (ts *Tseitin) simplifyConn(args []ast.ID, isAnd bool) ast.ID {
	simplified := make([]ast.ID, len(args))
	for i, a := range args {
		simplified[i] = ts.simplify(a)
	}
	flat := ts.flattenConn(simplified, isAnd)
	for _, a := range flat {
		v := ts.m.ViewAsFormula(a)
		if isAnd && v.IsFalse() {
			return ts.m.Bool(false)
		}
		if !isAnd && v.IsTrue() {
			return ts.m.Bool(true)
		}
	}
	if isAnd {
		return ts.m.And(flat...)
	}
	return ts.m.Or(flat...)
}

func (ts *Tseitin) flattenConn(args []ast.ID, isAnd bool) []ast.ID {
	var out []ast.ID
	var rec func([]ast.ID)
	rec = func(xs []ast.ID) {
		for _, x := range xs {
			v := ts.m.ViewAsFormula(x)
			switch {
			case isAnd && v.Kind == ast.FAnd:
				rec(v.Args)
			case !isAnd && v.Kind == ast.FOr:
				rec(v.Args)
			case isAnd && v.IsTrue():
				// neutral element, dropped
			case !isAnd && v.IsFalse():
				// neutral element, dropped
			default:
				out = append(out, x)
			}
		}
	}
	rec(args)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return dedupSortedIDs(out)
}

func dedupSortedIDs(xs []ast.ID) []ast.ID {
	if len(xs) < 2 {
		return xs
	}
	out := xs[:1]
	for _, x := range xs[1:] {
		if x != out[len(out)-1] {
			out = append(out, x)
		}
	}
	return out
}

// simplifyImply rewrites imply(x1,...,xn-1,xn) to or(!x1,...,!xn-1,xn) and
// re-simplifies the result, reusing the And/Or flattening logic rather
// than duplicating it.
func (ts *Tseitin) simplifyImply(args []ast.ID) ast.ID {
	n := len(args)
	disj := make([]ast.ID, n)
	copy(disj, args)
	for i := 0; i < n-1; i++ {
		disj[i] = ts.m.Not(disj[i])
	}
	return ts.simplify(ts.m.Or(disj...))
}

package tseitin

import (
	"github.com/gitrdm/ccsmt/pkg/ast"
	"github.com/gitrdm/ccsmt/pkg/cc"
)

// Clauses simplifies t and clausifies it: a single post-order walk over t's
// structure (every subterm, not just its Boolean-view children — an
// uninterpreted argument buried inside an application still needs to be
// visited so any Boolean atom nested inside it is registered) emits the
// clauses that make the fresh "gate" literal at each connective equivalent
// to that connective applied to its arguments' literals, finishing with one
// unconditional unit clause asserting the top-level (simplified) formula
// itself — even when simplification reduced it all the way to the constant
// false. The walk's own "false is false" unit clause is emitted only the
// first time false is visited, so only the clauses of that first call are
// unsatisfiable on their own; later calls rely on the earlier clause.
func (ts *Tseitin) Clauses(t ast.ID) ([]Clause, []cc.Literal) {
	st := ts.simplify(t)
	ts.clauses = nil
	ts.walk(st)
	ts.clauses = append(ts.clauses, Clause{ts.termToLit(st)})
	return ts.clauses, ts.Literals()
}

func (ts *Tseitin) walk(t ast.ID) {
	if ts.visited[t] {
		return
	}
	ts.visited[t] = true

	v := ts.m.View(t)
	if v.Kind == ast.KApp {
		for _, a := range v.Args {
			ts.walk(a)
		}
	}

	f := ts.m.ViewAsFormula(t)
	switch f.Kind {
	case ast.FTyBool:
		// no literal representation; nothing to register.
	case ast.FBool:
		ts.clauses = append(ts.clauses, Clause{cc.Literal{Atom: t, Pos: f.Bool}})
	case ast.FNot:
		switch ts.m.ViewAsFormula(f.Args[0]).Kind {
		case ast.FAnd, ast.FOr, ast.FImply:
			// a gate literal is pure-Boolean, never a theory literal.
		default:
			ts.registerLit(cc.Literal{Atom: f.Args[0], Pos: true})
		}
	case ast.FEq:
		ts.registerLit(cc.Literal{Atom: t, Pos: true})
	case ast.FAtom:
		if ts.m.IsBoolSorted(t) {
			ts.registerLit(cc.Literal{Atom: t, Pos: true})
		}
	case ast.FIte:
		ts.registerLit(ts.termToLit(f.A))
	case ast.FAnd:
		ts.emitAndOr(t, f.Args, true)
	case ast.FOr:
		ts.emitAndOr(t, f.Args, false)
	case ast.FImply:
		ts.emitImply(t, f.Args)
	case ast.FDistinct:
		panic(errDistinctPostSimplify)
	}
}

// emitAndOr emits the clauses making top's literal equivalent to the
// conjunction (isAnd) or disjunction (!isAnd) of args' literals:
//
//	and: top => each sub      (one binary clause per sub)
//	     all subs => top      (one big clause)
//	or:  each sub => top      (one binary clause per sub)
//	     top => some sub      (one big clause, top negated)
func (ts *Tseitin) emitAndOr(top ast.ID, args []ast.ID, isAnd bool) {
	topLit := ts.termToLit(top)
	subLits := make([]cc.Literal, len(args))
	for i, a := range args {
		subLits[i] = ts.termToLit(a)
	}
	if isAnd {
		big := make(Clause, 0, len(subLits)+1)
		for _, sub := range subLits {
			ts.clauses = append(ts.clauses, Clause{topLit.Negate(), sub})
			big = append(big, sub.Negate())
		}
		big = append(big, topLit)
		ts.clauses = append(ts.clauses, big)
	} else {
		big := make(Clause, 0, len(subLits)+1)
		for _, sub := range subLits {
			ts.clauses = append(ts.clauses, Clause{sub.Negate(), topLit})
			big = append(big, sub)
		}
		big = append(big, topLit.Negate())
		ts.clauses = append(ts.clauses, big)
	}
}

// emitImply treats imply(x1,...,xn-1,xn) as or(!x1,...,!xn-1,xn) and emits
// the same clause shapes as the Or case over the negated antecedents.
func (ts *Tseitin) emitImply(top ast.ID, args []ast.ID) {
	n := len(args)
	subLits := make([]cc.Literal, n)
	for i, a := range args {
		l := ts.termToLit(a)
		if i < n-1 {
			l = l.Negate()
		}
		subLits[i] = l
	}
	topLit := ts.termToLit(top)
	big := make(Clause, 0, n+1)
	for _, sub := range subLits {
		ts.clauses = append(ts.clauses, Clause{sub.Negate(), topLit})
		big = append(big, sub)
	}
	big = append(big, topLit.Negate())
	ts.clauses = append(ts.clauses, big)
}

// termToLit maps t to its literal, unfolding any chain of Not wrappers
// first and toggling polarity once per layer. A two-argument distinct is
// the one connective not given its own gate literal: it is rewritten
// directly to a negated equality literal here, matching simplify's decision
// not to allocate a fresh gate for the common pairwise-disequality case.
func (ts *Tseitin) termToLit(t ast.ID) cc.Literal {
	sign := true
	cur := t
	for {
		f := ts.m.ViewAsFormula(cur)
		if f.Kind != ast.FNot {
			switch f.Kind {
			case ast.FTyBool:
				panic(errTyBoolHasNoLiteral)
			case ast.FDistinct:
				if len(f.Args) == 2 {
					eqn := ts.m.Eq(f.Args[0], f.Args[1])
					return cc.Literal{Atom: eqn, Pos: sign}.Negate()
				}
				return cc.Literal{Atom: cur, Pos: sign}
			default:
				return cc.Literal{Atom: cur, Pos: sign}
			}
		}
		cur = f.Args[0]
		sign = !sign
	}
}

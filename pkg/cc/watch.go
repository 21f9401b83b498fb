package cc

import (
	"github.com/gitrdm/ccsmt/pkg/ast"
	"github.com/gitrdm/ccsmt/pkg/backtrack"
)

// branch records which of checkWatch's two conditions fired, so
// ExplainProp can reconstruct the right explanation without re-deriving
// the logic.
type branch int8

const (
	branchNone branch = iota
	branchSame
	branchSplitAB // A's class contains true, B's contains false
	branchSplitBA // A's class contains false, B's contains true
)

// watch is the generic propagation rule, unified across three surface
// forms:
//
//   - an equality atom eq(a,b): A=a, B=b, invert=false. Sides sharing a
//     root propagates the atom true; a provable true/false split between
//     the sides propagates it false.
//   - an opaque Boolean atom p: A=p, B=True, invert=false. p merging with
//     True propagates p true (the "same" branch, since B is fixed to
//     True's root); p merging with False propagates p false (the
//     "splitBA" branch, since B's root is always True's).
//   - a pairwise distinct(a,b) atom: A=a, B=b, invert=true. a and b
//     merging propagates the atom false; a provable split propagates it
//     true — distinct is simply an equality atom read backwards.
type watch struct {
	atom       ast.ID
	a, b       ast.ID
	invert     bool
	propagated branch
}

func (cc *CC) registerWatch(atom, a, b ast.ID, invert bool) {
	if _, ok := cc.watchesByAtom[atom]; ok {
		return // add_literal is idempotent
	}
	cc.ensureNode(a)
	cc.ensureNode(b)
	w := &watch{atom: atom, a: a, b: b, invert: invert}
	cc.watches = append(cc.watches, w)
	cc.watchesByAtom[atom] = w
}

// checkWatches re-evaluates every not-yet-fired watch against current
// roots, forwarding newly discovered propagations. Called after each
// pending-merge entry is processed, so propagations within one merge are
// emitted in the BFS order of the pending queue.
func (cc *CC) checkWatches() {
	trueRoot, falseRoot := cc.find(cc.bi.True), cc.find(cc.bi.False)
	for _, w := range cc.watches {
		if w.propagated != branchNone {
			continue
		}
		ra, rb := cc.find(w.a), cc.find(w.b)
		switch {
		case ra == rb:
			cc.fireWatch(w, branchSame, !w.invert)
		case ra == trueRoot && rb == falseRoot:
			cc.fireWatch(w, branchSplitAB, w.invert)
		case ra == falseRoot && rb == trueRoot:
			cc.fireWatch(w, branchSplitBA, w.invert)
		}
	}
}

func (cc *CC) fireWatch(w *watch, b branch, pos bool) {
	w.propagated = b
	cc.bt.Push(backtrack.ActionFunc(func() { w.propagated = branchNone }))
	lit := Literal{Atom: w.atom, Pos: pos}
	cc.pendingProps = append(cc.pendingProps, lit)
}

// ExplainProp recomputes the justification for a literal previously
// propagated by this engine. Panics if lit's atom was never propagated —
// a contract violation, not a recoverable error.
func (cc *CC) ExplainProp(lit Literal) []Literal {
	w, ok := cc.watchesByAtom[lit.Atom]
	if !ok || w.propagated == branchNone {
		panic(errNeverPropagated)
	}
	switch w.propagated {
	case branchSame:
		return dedupLits(cc.explain(w.a, w.b))
	case branchSplitAB:
		out := cc.explain(w.a, cc.bi.True)
		out = append(out, cc.explain(w.b, cc.bi.False)...)
		return dedupLits(out)
	case branchSplitBA:
		out := cc.explain(w.a, cc.bi.False)
		out = append(out, cc.explain(w.b, cc.bi.True)...)
		return dedupLits(out)
	default:
		panic(errNeverPropagated)
	}
}

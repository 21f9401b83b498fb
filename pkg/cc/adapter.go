package cc

import (
	"github.com/gitrdm/ccsmt/pkg/ast"
)

// Adapter sits between a driving SAT search and the incremental CC engine,
// translating SAT literal assignments into Merge/AssertDisequal calls and
// feeding the engine's own propagations back out through the SAT actions
// object.
type Adapter struct {
	cc *CC
	m  *ast.Manager
}

// NewAdapter wraps cc for use by a SAT-driven search loop.
func NewAdapter(cc *CC, m *ast.Manager) *Adapter {
	return &Adapter{cc: cc, m: m}
}

// RegisterAtom pre-registers an atom the SAT solver may assign, so the CC
// engine can materialize its subterms and start watching it for implied
// propagations ahead of time. Idempotent.
func (a *Adapter) RegisterAtom(atom ast.ID, lit Literal) {
	a.cc.AddLiteral(atom, lit)
}

// Assign tells the adapter that the SAT solver has assigned lit. Equality
// atoms become a Merge (positive) or AssertDisequal (negative); distinct
// atoms invert that; anything else (an opaque predicate) is merged with
// True or False directly. Returns a *ConflictError if the assignment
// contradicts what the theory already knows.
func (a *Adapter) Assign(lit Literal) error {
	f := a.m.ViewAsFormula(lit.Atom)
	switch f.Kind {
	case ast.FEq:
		if lit.Pos {
			_, err := a.cc.Merge(f.A, f.B, ReasonLiteral(lit))
			return err
		}
		return a.cc.AssertDisequal(f.A, f.B, lit)

	case ast.FDistinct:
		if len(f.Args) != 2 {
			panic(errDistinctPostSimplify)
		}
		if lit.Pos {
			return a.cc.AssertDisequal(f.Args[0], f.Args[1], lit)
		}
		_, err := a.cc.Merge(f.Args[0], f.Args[1], ReasonLiteral(lit))
		return err

	default:
		bi := a.m.Builtins()
		target := bi.True
		if !lit.Pos {
			target = bi.False
		}
		_, err := a.cc.Merge(lit.Atom, target, ReasonLiteral(lit))
		return err
	}
}

// PartialCheck and FinalCheck forward directly to the wrapped engine; the
// adapter's own job is entirely in Assign and RegisterAtom.
func (a *Adapter) PartialCheck(actions Actions) error { return a.cc.PartialCheck(actions) }
func (a *Adapter) FinalCheck(actions Actions) error   { return a.cc.FinalCheck(actions) }

// PushLevel and PopLevels forward to the wrapped engine's backtracking.
func (a *Adapter) PushLevel()       { a.cc.PushLevel() }
func (a *Adapter) PopLevels(n int)  { a.cc.PopLevels(n) }

// Entails is a direct query path (bypassing the SAT actions contract)
// useful for tests and for a driver that wants to ask the theory a
// question without going through propagation/conflict machinery: whether
// t and u are currently known equal.
func (a *Adapter) Entails(t, u ast.ID) bool {
	return a.cc.Find(t) == a.cc.Find(u)
}

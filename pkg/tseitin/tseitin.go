package tseitin

import (
	"go.uber.org/zap"

	"github.com/gitrdm/ccsmt/pkg/ast"
	"github.com/gitrdm/ccsmt/pkg/cc"
)

// Tseitin turns formulas into CNF, sharing a term Manager with whatever
// built the formulas it is handed. It is stateful across calls in one
// deliberate respect: the set of theory literals accumulated in lits is
// cumulative across every call to Clauses, not reset per call, since a
// driver needs the full literal set registered with the CC engine exactly
// once each.
type Tseitin struct {
	m   *ast.Manager
	log *zap.Logger

	simpCache map[ast.ID]ast.ID

	// visited is the DAG-walk memo for Clauses; Clear resets only this,
	// leaving the simplify cache and accumulated literals alone.
	visited map[ast.ID]bool

	clauses []Clause

	lits    []cc.Literal
	litSeen map[cc.Literal]bool
}

// New builds an empty Tseitin transformer over m.
func New(m *ast.Manager, log *zap.Logger) *Tseitin {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tseitin{
		m:         m,
		log:       log,
		simpCache: make(map[ast.ID]ast.ID),
		visited:   make(map[ast.ID]bool),
		litSeen:   make(map[cc.Literal]bool),
	}
}

// Clear resets the DAG-walk visited-node memo, so a term already clausified
// once can be walked again (e.g. after it is referenced inside a larger
// formula on a later call) without the walk silently treating it as a
// no-op. The simplify cache and the accumulated theory literal set are
// left untouched.
func (ts *Tseitin) Clear() {
	ts.visited = make(map[ast.ID]bool)
}

// Simplify exposes the simplify pass directly, for callers (and tests) that
// want the rewritten formula without running the full clausification.
func (ts *Tseitin) Simplify(t ast.ID) ast.ID {
	return ts.simplify(t)
}

// Literals returns every theory literal accumulated across all calls to
// Clauses so far, in first-registered order, for the driver to hand to
// cc.Adapter.RegisterAtom.
func (ts *Tseitin) Literals() []cc.Literal {
	out := make([]cc.Literal, len(ts.lits))
	copy(out, ts.lits)
	return out
}

func (ts *Tseitin) registerLit(l cc.Literal) {
	if ts.litSeen[l] || ts.litSeen[l.Negate()] {
		return
	}
	ts.litSeen[l] = true
	ts.lits = append(ts.lits, l)
}

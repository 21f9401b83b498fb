package main

import (
	"go.uber.org/zap"

	"github.com/gitrdm/ccsmt/pkg/ast"
	"github.com/gitrdm/ccsmt/pkg/cc"
	"github.com/gitrdm/ccsmt/pkg/tseitin"
)

// noopActions satisfies cc.Actions for this driver. The toy solver below
// drives the theory synchronously from assignAtom and never needs an
// asynchronous propagation channel, so every method here is inert;
// NewLit panics, exactly as the Actions contract allows a caller that
// never needs fresh literals to do.
type noopActions struct{}

func (noopActions) Propagate(cc.Literal, func() []cc.Literal) {}
func (noopActions) Conflict(cc.Conflict)                      {}
func (noopActions) Clear()                                    {}
func (noopActions) NewLit() ast.ID {
	panic("ccsmt: solver never asks Actions for a fresh literal")
}

// solver is a minimal chronological-backtracking DPLL search over the
// clauses Tseitin has produced so far, consulting the CC theory adapter
// after every literal it fixes. It is not a general SAT solver: no
// clause learning, no non-chronological backjumping, no watched
// literals — just enough search to answer check-sat end to end for the
// formulas this CLI is meant to exercise, standing in for the external
// CDCL solver the engine packages are really designed to be driven by.
type solver struct {
	adapter *cc.Adapter
	log     *zap.Logger

	clauses []tseitin.Clause

	atoms    []ast.ID        // every distinct atom seen, in first-registered order
	seenAtom map[ast.ID]bool

	assign map[ast.ID]bool // current partial assignment, by atom
	trail  []ast.ID        // atoms assigned, in assignment order, for undo
}

func newSolver(adapter *cc.Adapter, log *zap.Logger) *solver {
	if log == nil {
		log = zap.NewNop()
	}
	return &solver{
		adapter:  adapter,
		log:      log,
		seenAtom: make(map[ast.ID]bool),
		assign:   make(map[ast.ID]bool),
	}
}

// addClauses folds newly clausified material into the running problem:
// the clauses themselves, and every theory literal Tseitin accumulated,
// registered with the adapter so the CC engine starts watching it.
func (s *solver) addClauses(clauses []tseitin.Clause, lits []cc.Literal) {
	s.clauses = append(s.clauses, clauses...)
	for _, l := range lits {
		s.adapter.RegisterAtom(l.Atom, l)
		if !s.seenAtom[l.Atom] {
			s.seenAtom[l.Atom] = true
			s.atoms = append(s.atoms, l.Atom)
		}
	}
}

// CheckSat reports whether everything asserted so far is jointly
// satisfiable under both the CNF's Boolean structure and the EUF
// theory. Every decision, and everything propagated under it, is undone
// (with its PushLevel) before CheckSat returns, whatever the answer; only
// what unit propagation forces from the clauses alone stays assigned, so a
// later assert plus check-sat call searches again from those facts.
func (s *solver) CheckSat() bool {
	return s.search()
}

func (s *solver) search() bool {
	if !s.propagateUnits() {
		return false
	}
	atom, ok := s.nextUnassigned()
	if !ok {
		return s.finalCheck()
	}
	for _, val := range [...]bool{true, false} {
		s.adapter.PushLevel()
		mark := len(s.trail)
		ok := s.assignAtom(atom, val) && s.search()
		s.undoTo(mark)
		s.adapter.PopLevels(1)
		if ok {
			return true
		}
	}
	return false
}

// propagateUnits runs unit propagation over s.clauses to a fixpoint,
// reporting false the moment a clause is falsified or the theory
// rejects a forced literal.
func (s *solver) propagateUnits() bool {
	for {
		changed := false
		for _, c := range s.clauses {
			sat := false
			unassignedCount := 0
			var forced cc.Literal
			for _, l := range c {
				val, assigned := s.evalLit(l)
				if assigned && val {
					sat = true
					break
				}
				if !assigned {
					unassignedCount++
					forced = l
				}
			}
			if sat {
				continue
			}
			if unassignedCount == 0 {
				return false
			}
			if unassignedCount == 1 {
				if !s.assignAtom(forced.Atom, forced.Pos) {
					return false
				}
				changed = true
			}
		}
		if !changed {
			return true
		}
	}
}

// assignAtom fixes atom to val, idempotently if it is already assigned
// consistently, and forwards the assignment to the theory — but only for
// atoms that are actual theory literals (registered via addClauses, which
// mirrors exactly the set Tseitin itself registered with the CC engine).
// Tseitin's gate literals over And/Or/Imply connectives are pure-Boolean:
// the SAT side owns them entirely, and they must never reach the CC
// engine, which has no Merge/AssertDisequal meaning for a connective term.
// assignAtom returns false if atom is already assigned to the opposite
// value, or if a theory dispatch reports a conflict.
func (s *solver) assignAtom(atom ast.ID, val bool) bool {
	if existing, ok := s.assign[atom]; ok {
		return existing == val
	}
	s.assign[atom] = val
	s.trail = append(s.trail, atom)
	if !s.seenAtom[atom] {
		return true
	}
	if err := s.adapter.Assign(cc.Literal{Atom: atom, Pos: val}); err != nil {
		return false
	}
	return true
}

func (s *solver) evalLit(l cc.Literal) (val bool, assigned bool) {
	v, ok := s.assign[l.Atom]
	if !ok {
		return false, false
	}
	return v == l.Pos, true
}

func (s *solver) nextUnassigned() (ast.ID, bool) {
	for _, a := range s.atoms {
		if _, ok := s.assign[a]; !ok {
			return a, true
		}
	}
	return ast.InvalidID, false
}

// finalCheck is reached once every atom is assigned: the Boolean side
// is already known satisfied by propagateUnits's fixpoint, so this only
// re-validates the theory is still saturated.
func (s *solver) finalCheck() bool {
	return s.adapter.FinalCheck(noopActions{}) == nil
}

// undoTo rolls the Go-side assignment and trail back to the state they
// were in when len(s.trail) == mark, mirroring the matching
// PopLevels(1) call that undoes the CC engine's own state.
func (s *solver) undoTo(mark int) {
	for len(s.trail) > mark {
		last := s.trail[len(s.trail)-1]
		s.trail = s.trail[:len(s.trail)-1]
		delete(s.assign, last)
	}
}

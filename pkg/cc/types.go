// Package cc implements the congruence-closure theory for ground equality
// with uninterpreted functions (EUF): an incremental, backtrackable engine
// (CC) driven by a CDCL-style SAT search, and a saturation-based reference
// oracle (NaiveCC) for cross-checking it.
//
// The package is organized by concern across several files (types, the
// engine itself, the signature table, merge processing, watches,
// explanation, the naive oracle, the SAT adapter) rather than as one flat
// file, but stays a single Go package: every piece shares the same CC
// struct and backtrack log, so splitting it across packages would only
// add import plumbing without separating anything that changes
// independently.
package cc

import (
	"fmt"
	"strings"

	"github.com/gitrdm/ccsmt/pkg/ast"
)

// Literal is a theory-side literal: an atom term paired with a polarity.
// Negation flips Pos.
type Literal struct {
	Atom ast.ID
	Pos  bool
}

// Negate returns the literal with polarity flipped.
func (l Literal) Negate() Literal {
	return Literal{Atom: l.Atom, Pos: !l.Pos}
}

func (l Literal) String() string {
	if l.Pos {
		return fmt.Sprintf("+%d", l.Atom)
	}
	return fmt.Sprintf("-%d", l.Atom)
}

// axiomAtom marks a Literal manufactured internally (the standing true≠false
// axiom) rather than one that came from the input trail; such literals are
// dropped when a conflict clause is assembled, since they would not mean
// anything to the SAT solver that owns the real atom ids.
const axiomAtom = ast.InvalidID

func isAxiomLit(l Literal) bool { return l.Atom == axiomAtom }

// Reason justifies a pending merge: either a plain input literal, or a
// congruence witness between two application terms with the same
// signature — CongruentTo(app1, app2) in spec terms.
type Reason struct {
	congruence bool
	lit        Literal
	app1, app2 ast.ID
}

// ReasonLiteral builds a Reason carrying a plain input literal.
func ReasonLiteral(l Literal) Reason { return Reason{lit: l} }

// ReasonCongruence builds a Reason witnessing that two applications have
// become congruent (same head, pairwise-equal arguments).
func ReasonCongruence(app1, app2 ast.ID) Reason {
	return Reason{congruence: true, app1: app1, app2: app2}
}

// Conflict is a vector of literals whose conjunction is unsatisfiable under
// EUF. The SAT solver negates them to learn a clause.
type Conflict []Literal

// ConflictError is returned by Merge/PartialCheck/FinalCheck on a theory
// conflict. It is the expected, frequent outcome during search: callers
// must not log it or treat it as fatal.
type ConflictError struct {
	Lits Conflict
}

func (e *ConflictError) Error() string {
	parts := make([]string, len(e.Lits))
	for i, l := range e.Lits {
		parts[i] = l.String()
	}
	return "cc: conflict [" + strings.Join(parts, " ") + "]"
}

// Actions is the SAT actions contract: the object the CC borrows for the
// duration of a check call to forward propagations and (via the caller)
// conflicts.
type Actions interface {
	// Propagate notifies the SAT solver that lit has been forced true by
	// the theory. explain, when called, recomputes the justifying
	// literals — callers should call it lazily, only if the propagation
	// is later used to build a clause.
	Propagate(lit Literal, explain func() []Literal)

	// Conflict notifies the SAT solver of a theory conflict.
	Conflict(lits Conflict)

	// Clear resets any per-check-call state the actions object holds.
	Clear()

	// NewLit is a literal-creation hook some SAT actions objects expose
	// for the theory to mint fresh auxiliary literals. The contract
	// explicitly allows it to panic if the caller never needs it.
	NewLit() ast.ID
}

// contract violation errors: popping more levels than pushed, asking for
// an explanation of a literal never propagated, an n-ary distinct reaching
// the adapter. These are programmer errors and always
// panic rather than returning an error value — there is no recovery. They
// are still named as sentinels (via errors.New-style messages below) purely
// so panic messages are consistent and greppable.
const (
	errPoppedTooManyLevels  = "cc: PopLevels called with more levels than were pushed"
	errNeverPropagated      = "cc: ExplainProp called on a literal that was never propagated"
	errDistinctPostSimplify = "cc: distinct/2+ survived past Tseitin simplification"
)

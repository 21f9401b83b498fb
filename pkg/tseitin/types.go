// Package tseitin turns a simplified Boolean formula into a set of CNF
// clauses whose satisfiability is equivalent to the formula's (Tseitin
// transformation), sharing the same (ast.ID, polarity) literal space the
// congruence-closure engine in package cc consumes.
//
// It runs as a two-pass pipeline (simplify, then clausify via a single DAG
// walk) producing clauses and a set of non-Boolean-connective literals
// ("theory literals") the driver must separately register with the CC
// engine via AddLiteral.
package tseitin

import (
	"github.com/gitrdm/ccsmt/pkg/cc"
)

// Clause is a disjunction of literals, in the same (atom, polarity) space
// package cc's Literal uses — no separate wire format is introduced
// between the two packages.
type Clause []cc.Literal

// errDistinctPostSimplify mirrors the panic message cc uses for the same
// contract violation: a Distinct view surviving past simplify() means the
// simplifier itself is broken, not something a caller can recover from.
const errDistinctPostSimplify = "tseitin: distinct survived past simplification"
const errTyBoolHasNoLiteral = "tseitin: Bool the sort, not a Bool value, has no literal representation"

package main

import (
	"bytes"
	"strings"
	"testing"
)

func runScript(t *testing.T, script string) string {
	t.Helper()
	var out bytes.Buffer
	if err := Run(strings.NewReader(script), &out, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out.String()
}

// A tautology is Sat.
func TestRunTautologyIsSat(t *testing.T) {
	got := runScript(t, `(assert (or a (not a))) (check-sat)`)
	if got != "Sat\n" {
		t.Errorf("got %q, want \"Sat\\n\"", got)
	}
}

// A direct contradiction is Unsat.
func TestRunContradictionIsUnsat(t *testing.T) {
	got := runScript(t, `(assert (and a (not a))) (check-sat)`)
	if got != "Unsat\n" {
		t.Errorf("got %q, want \"Unsat\\n\"", got)
	}
}

// a=b, b=c, a!=c is a theory conflict (transitivity violation).
func TestRunTransitivityViolationIsUnsat(t *testing.T) {
	got := runScript(t, `
		(assert (= a b))
		(assert (= b c))
		(assert (not (= a c)))
		(check-sat)
	`)
	if got != "Unsat\n" {
		t.Errorf("got %q, want \"Unsat\\n\"", got)
	}
}

// Congruence forces f(a,b)=f(a,b') once b=b', so
// asserting the two applications unequal under that hypothesis is Unsat.
func TestRunCongruencePropagationIsUnsat(t *testing.T) {
	got := runScript(t, `
		(assert (= (f a b) c))
		(assert (= (f a b2) d))
		(assert (= b b2))
		(assert (not (= c d)))
		(check-sat)
	`)
	if got != "Unsat\n" {
		t.Errorf("got %q, want \"Unsat\\n\"", got)
	}
}

// distinct(a,b,c) together with a=b is a pairwise-disequality conflict.
func TestRunDistinctConflictIsUnsat(t *testing.T) {
	got := runScript(t, `
		(assert (distinct a b c))
		(assert (= a b))
		(check-sat)
	`)
	if got != "Unsat\n" {
		t.Errorf("got %q, want \"Unsat\\n\"", got)
	}
}

// A congruence consequence that is actually asserted, rather than its
// negation, is consistent.
func TestRunCongruenceConsequenceIsSat(t *testing.T) {
	got := runScript(t, `
		(assert (= (f a b) c))
		(assert (= (f a b2) d))
		(assert (= b b2))
		(assert (= c d))
		(check-sat)
	`)
	if got != "Sat\n" {
		t.Errorf("got %q, want \"Sat\\n\"", got)
	}
}

func TestRunStopsAtExitWithoutRunningLaterStatements(t *testing.T) {
	got := runScript(t, `
		(assert (and a (not a)))
		(exit)
		(check-sat)
	`)
	if got != "" {
		t.Errorf("expected no output after exit, got %q", got)
	}
}

func TestRunMultipleCheckSatCallsAreIndependentlyReported(t *testing.T) {
	got := runScript(t, `
		(assert (= a b))
		(check-sat)
		(assert (not (= a b)))
		(check-sat)
	`)
	want := "Sat\nUnsat\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// A bare disjunction of two opaque atoms has no unit clause forcing
// either one, so CheckSat must actually decide p or q rather than
// resolve everything by unit propagation alone.
func TestRunDisjunctionRequiringADecisionIsSat(t *testing.T) {
	got := runScript(t, `(assert (or p q)) (check-sat)`)
	if got != "Sat\n" {
		t.Errorf("got %q, want \"Sat\\n\"", got)
	}
}

func TestRunDisjunctionWithBothDisjunctsNegatedIsUnsat(t *testing.T) {
	got := runScript(t, `
		(assert (or p q))
		(assert (not p))
		(assert (not q))
		(check-sat)
	`)
	if got != "Unsat\n" {
		t.Errorf("got %q, want \"Unsat\\n\"", got)
	}
}

func TestRunPropagatesParseErrors(t *testing.T) {
	var out bytes.Buffer
	err := Run(strings.NewReader(`(bogus-statement)`), &out, nil)
	if err == nil {
		t.Fatal("expected an error for an unrecognized statement")
	}
}

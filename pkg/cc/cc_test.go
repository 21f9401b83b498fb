package cc

import (
	"testing"

	"github.com/gitrdm/ccsmt/pkg/ast"
)

func setup() (*ast.Manager, *CC, ast.ID, ast.ID, ast.ID) {
	m := ast.NewManager()
	u := ast.UninterpretedSort("U")
	a := m.Const("a", u)
	b := m.Const("b", u)
	c := m.Const("c", u)
	return m, New(m, nil), a, b, c
}

func lit(atom ast.ID, pos bool) Literal { return Literal{Atom: atom, Pos: pos} }

func TestMergeBasicTransitivity(t *testing.T) {
	m, engine, a, b, c := setup()
	_ = m
	if _, err := engine.Merge(a, b, ReasonLiteral(lit(a, true))); err != nil {
		t.Fatalf("a=b: %v", err)
	}
	if _, err := engine.Merge(b, c, ReasonLiteral(lit(b, true))); err != nil {
		t.Fatalf("b=c: %v", err)
	}
	if engine.Find(a) != engine.Find(c) {
		t.Error("expected a and c to share a root after a=b, b=c")
	}
}

func TestDisequalityConflictOnMerge(t *testing.T) {
	_, engine, a, b, c := setup()
	diseqLit := lit(c, false)
	if err := engine.AssertDisequal(a, c, diseqLit); err != nil {
		t.Fatalf("a!=c should not conflict yet: %v", err)
	}
	l1 := lit(a, true)
	l2 := lit(b, true)
	if _, err := engine.Merge(a, b, ReasonLiteral(l1)); err != nil {
		t.Fatalf("a=b: %v", err)
	}
	_, err := engine.Merge(b, c, ReasonLiteral(l2))
	if err == nil {
		t.Fatal("expected a conflict merging b=c given a=b and a!=c")
	}
	ce, ok := err.(*ConflictError)
	if !ok {
		t.Fatalf("expected *ConflictError, got %T", err)
	}
	want := map[Literal]bool{l1: true, l2: true, diseqLit: true}
	if len(ce.Lits) != len(want) {
		t.Fatalf("expected exactly %d literals, got %v", len(want), ce.Lits)
	}
	for _, l := range ce.Lits {
		if !want[l] {
			t.Errorf("unexpected literal in conflict: %v", l)
		}
	}
}

func TestImmediateDisequalConflict(t *testing.T) {
	_, engine, a, b, _ := setup()
	l1 := lit(a, true)
	if _, err := engine.Merge(a, b, ReasonLiteral(l1)); err != nil {
		t.Fatalf("a=b: %v", err)
	}
	l2 := lit(b, false)
	err := engine.AssertDisequal(a, b, l2)
	if err == nil {
		t.Fatal("expected immediate conflict asserting a!=b once a=b already holds")
	}
}

func TestCongruence(t *testing.T) {
	m, engine, a, b, _ := setup()
	u := ast.UninterpretedSort("U")
	fa := m.App("f", []ast.ID{a}, u)
	fb := m.App("f", []ast.ID{b}, u)
	if engine.Find(fa) == engine.Find(fb) {
		t.Fatal("f(a) and f(b) should not be congruent before a=b is known")
	}
	if _, err := engine.Merge(a, b, ReasonLiteral(lit(a, true))); err != nil {
		t.Fatalf("a=b: %v", err)
	}
	if engine.Find(fa) != engine.Find(fb) {
		t.Error("expected f(a) and f(b) to become congruent once a=b")
	}
	ex := engine.explain(fa, fb)
	if len(ex) != 1 || ex[0].Atom != a {
		t.Errorf("expected explanation {a=b}, got %v", ex)
	}
}

func TestBacktrackUndoesMerges(t *testing.T) {
	_, engine, a, b, c := setup()
	engine.PushLevel()
	if _, err := engine.Merge(a, b, ReasonLiteral(lit(a, true))); err != nil {
		t.Fatalf("a=b: %v", err)
	}
	if engine.Find(a) != engine.Find(b) {
		t.Fatal("sanity: a and b should share a root")
	}
	engine.PopLevels(1)
	if engine.Find(a) == engine.Find(b) {
		t.Error("expected a and b to split back apart after popping the level")
	}
	engine.PushLevel()
	if _, err := engine.Merge(a, c, ReasonLiteral(lit(a, true))); err != nil {
		t.Fatalf("a=c after backtrack: %v", err)
	}
	if engine.Find(a) != engine.Find(c) {
		t.Error("expected a and c to merge cleanly after backtracking away a=b")
	}
}

func TestTrueFalseAreStandingDisequal(t *testing.T) {
	_, engine, _, _, _ := setup()
	bi := engine.bi
	_, err := engine.Merge(bi.True, bi.False, ReasonLiteral(lit(bi.True, true)))
	if err == nil {
		t.Fatal("expected merging true and false to conflict")
	}
}

func TestBooleanPropagationOnSharedRoot(t *testing.T) {
	m, engine, a, b, _ := setup()
	eq := m.Eq(a, b)
	watchLit := lit(eq, true)
	engine.AddLiteral(eq, watchLit)
	props, err := engine.Merge(a, b, ReasonLiteral(lit(a, true)))
	if err != nil {
		t.Fatalf("a=b: %v", err)
	}
	if len(props) != 1 || props[0].Atom != eq || !props[0].Pos {
		t.Fatalf("expected a positive propagation of the eq atom, got %v", props)
	}
	expl := engine.ExplainProp(props[0])
	if len(expl) != 1 || expl[0].Atom != a {
		t.Errorf("expected explanation {a=b}, got %v", expl)
	}
}

func TestOpaqueAtomPropagatesOnMergeWithFalse(t *testing.T) {
	m, engine, _, _, _ := setup()
	u := ast.UninterpretedSort("U")
	p := m.Atom("p", m.Const("x", u))
	watchLit := lit(p, true)
	engine.AddLiteral(p, watchLit)
	props, err := engine.Merge(p, engine.bi.False, ReasonLiteral(lit(p, false)))
	if err != nil {
		t.Fatalf("p=false: %v", err)
	}
	if len(props) != 1 || props[0].Atom != p || props[0].Pos {
		t.Fatalf("expected a negative propagation of p, got %v", props)
	}
}

func TestDistinctWatchInvertsPolarity(t *testing.T) {
	m, engine, a, b, _ := setup()
	d := m.Distinct(a, b)
	engine.AddLiteral(d, lit(d, true))
	props, err := engine.Merge(a, b, ReasonLiteral(lit(a, true)))
	if err != nil {
		t.Fatalf("a=b: %v", err)
	}
	if len(props) != 1 || props[0].Atom != d || props[0].Pos {
		t.Fatalf("expected distinct(a,b) to propagate false once a=b, got %v", props)
	}
}

func TestExplainPropPanicsWhenNeverPropagated(t *testing.T) {
	m, engine, a, b, _ := setup()
	eq := m.Eq(a, b)
	engine.AddLiteral(eq, lit(eq, true))
	defer func() {
		if recover() == nil {
			t.Fatal("expected ExplainProp to panic on a never-propagated literal")
		}
	}()
	engine.ExplainProp(lit(eq, true))
}

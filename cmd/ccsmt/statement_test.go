package main

import (
	"strings"
	"testing"

	"go.uber.org/goleak"

	"github.com/gitrdm/ccsmt/pkg/ast"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestParseStatementsBasicSequence(t *testing.T) {
	m := ast.NewManager()
	stmts, err := ParseStatements(m, strings.NewReader(`
		(assert (or a (not a)))
		(check-sat)
		(exit)
	`))
	if err != nil {
		t.Fatalf("ParseStatements: %v", err)
	}
	if len(stmts) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(stmts))
	}
	if stmts[0].Kind != StmtAssert {
		t.Errorf("stmts[0].Kind = %v, want StmtAssert", stmts[0].Kind)
	}
	if stmts[1].Kind != StmtCheckSat {
		t.Errorf("stmts[1].Kind = %v, want StmtCheckSat", stmts[1].Kind)
	}
	if stmts[2].Kind != StmtExit {
		t.Errorf("stmts[2].Kind = %v, want StmtExit", stmts[2].Kind)
	}
}

func TestParseStatementsIgnoresComments(t *testing.T) {
	m := ast.NewManager()
	stmts, err := ParseStatements(m, strings.NewReader(`
		; a leading comment
		(assert (= a a)) ; trailing comment
		(check-sat)
	`))
	if err != nil {
		t.Fatalf("ParseStatements: %v", err)
	}
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(stmts))
	}
}

func TestParseStatementsEqualityBuildsEqAtom(t *testing.T) {
	m := ast.NewManager()
	stmts, err := ParseStatements(m, strings.NewReader(`(assert (= a b))`))
	if err != nil {
		t.Fatalf("ParseStatements: %v", err)
	}
	f := m.ViewAsFormula(stmts[0].Term)
	if f.Kind != ast.FEq {
		t.Fatalf("expected an FEq term, got kind %v", f.Kind)
	}
}

func TestParseStatementsRejectsUnknownStatement(t *testing.T) {
	m := ast.NewManager()
	if _, err := ParseStatements(m, strings.NewReader(`(frobnicate)`)); err == nil {
		t.Fatal("expected an error for an unknown statement head")
	}
}

func TestParseStatementsRejectsUnbalancedParens(t *testing.T) {
	m := ast.NewManager()
	if _, err := ParseStatements(m, strings.NewReader(`(assert (= a b)`)); err == nil {
		t.Fatal("expected an error for an unbalanced '('")
	}
}

func TestParseStatementsUninterpretedApplicationSharesIdentity(t *testing.T) {
	m := ast.NewManager()
	stmts, err := ParseStatements(m, strings.NewReader(`(assert (= (f a) (f a)))`))
	if err != nil {
		t.Fatalf("ParseStatements: %v", err)
	}
	f := m.ViewAsFormula(stmts[0].Term)
	if f.A != f.B {
		t.Error("two syntactically identical (f a) applications should intern to the same term id")
	}
}

package main

import (
	"bufio"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/gitrdm/ccsmt/pkg/ast"
	"github.com/gitrdm/ccsmt/pkg/cc"
	"github.com/gitrdm/ccsmt/pkg/tseitin"
)

// Run parses every statement out of in and executes them in order
// against a fresh term manager, CC engine, and Tseitin transformer,
// writing "Sat" or "Unsat" to out for each check-sat and stopping at
// the first exit statement or at EOF. It plays the role a real driver
// would hand off to an external CDCL solver, with the toy search in
// solve.go standing in for that solver.
func Run(in io.Reader, out io.Writer, log *zap.Logger) error {
	m := ast.NewManager()
	engine := cc.New(m, log)
	adapter := cc.NewAdapter(engine, m)
	ts := tseitin.New(m, log)
	sv := newSolver(adapter, log)

	stmts, err := ParseStatements(m, in)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(out)
	defer w.Flush()

	for _, stmt := range stmts {
		switch stmt.Kind {
		case StmtAssert:
			clauses, lits := ts.Clauses(stmt.Term)
			sv.addClauses(clauses, lits)

		case StmtCheckSat:
			if sv.CheckSat() {
				fmt.Fprintln(w, "Sat")
			} else {
				fmt.Fprintln(w, "Unsat")
			}

		case StmtExit:
			return nil
		}
	}
	return nil
}

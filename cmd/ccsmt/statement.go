package main

import (
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/gitrdm/ccsmt/pkg/ast"
)

// StatementKind distinguishes the three top-level forms the driver
// understands, mirroring run/src/main.rs's Statement enum.
type StatementKind int

const (
	StmtAssert StatementKind = iota
	StmtCheckSat
	StmtExit
)

// Statement is one parsed top-level form. Term is only meaningful when
// Kind is StmtAssert.
type Statement struct {
	Kind StatementKind
	Term ast.ID
}

// uninterpretedSort is the single sort every bare constant and
// function application parses into. This driver has no surface syntax
// for declaring sorts, so every non-Boolean value lives in one
// uninterpreted universe named "U".
var uninterpretedSort = ast.UninterpretedSort("U")

// ParseStatements reads every top-level form out of r and builds its
// terms directly against m — there is no intermediate syntax tree. The
// surface grammar below is this driver's own minimal s-expression
// dialect, sized to exercise assert/check-sat/exit end to end rather
// than to match any specific textual format.
func ParseStatements(m *ast.Manager, r io.Reader) ([]Statement, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read input")
	}
	return newParser(m, string(data)).statements()
}

// parser turns a flat token stream into Statements, interning terms
// via m as each s-expression closes.
type parser struct {
	m    *ast.Manager
	toks []string
	pos  int
}

func newParser(m *ast.Manager, src string) *parser {
	return &parser{m: m, toks: tokenize(src)}
}

// tokenize splits src into "(", ")", and bare symbols, skipping
// whitespace and ";"-to-end-of-line comments.
func tokenize(src string) []string {
	var toks []string
	var b strings.Builder
	flush := func() {
		if b.Len() > 0 {
			toks = append(toks, b.String())
			b.Reset()
		}
	}
	inComment := false
	for _, r := range src {
		switch {
		case inComment:
			if r == '\n' {
				inComment = false
			}
		case r == ';':
			flush()
			inComment = true
		case r == '(' || r == ')':
			flush()
			toks = append(toks, string(r))
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flush()
		default:
			b.WriteRune(r)
		}
	}
	flush()
	return toks
}

func (p *parser) peek() (string, bool) {
	if p.pos >= len(p.toks) {
		return "", false
	}
	return p.toks[p.pos], true
}

func (p *parser) next() (string, bool) {
	t, ok := p.peek()
	if ok {
		p.pos++
	}
	return t, ok
}

func (p *parser) expect(tok string) error {
	got, ok := p.next()
	if !ok {
		return errors.Errorf("expected %q, got end of input", tok)
	}
	if got != tok {
		return errors.Errorf("expected %q, got %q", tok, got)
	}
	return nil
}

// statements parses every top-level form in the token stream.
func (p *parser) statements() ([]Statement, error) {
	var out []Statement
	for {
		tok, ok := p.peek()
		if !ok {
			return out, nil
		}
		if tok != "(" {
			return nil, errors.Errorf("expected '(' to start a statement, got %q", tok)
		}
		st, err := p.statement()
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
}

func (p *parser) statement() (Statement, error) {
	if err := p.expect("("); err != nil {
		return Statement{}, err
	}
	head, ok := p.next()
	if !ok {
		return Statement{}, errors.New("unexpected end of input after '('")
	}
	switch head {
	case "assert":
		t, err := p.expr(true)
		if err != nil {
			return Statement{}, err
		}
		if err := p.expect(")"); err != nil {
			return Statement{}, err
		}
		return Statement{Kind: StmtAssert, Term: t}, nil
	case "check-sat":
		if err := p.expect(")"); err != nil {
			return Statement{}, err
		}
		return Statement{Kind: StmtCheckSat}, nil
	case "exit":
		if err := p.expect(")"); err != nil {
			return Statement{}, err
		}
		return Statement{Kind: StmtExit}, nil
	default:
		return Statement{}, errors.Errorf("unknown statement %q", head)
	}
}

// expr parses one term. boolCtx selects what an unrecognized bare
// symbol or application head defaults to: an opaque Boolean atom in
// Boolean context, an uninterpreted constant/function otherwise.
// Recognized connective heads (not/and/or/imply/=/distinct/ite) ignore
// boolCtx for their own arguments, using whatever context is correct
// for that position.
func (p *parser) expr(boolCtx bool) (ast.ID, error) {
	tok, ok := p.next()
	if !ok {
		return ast.InvalidID, errors.New("unexpected end of input in expression")
	}
	if tok != "(" {
		return p.atom(tok, boolCtx), nil
	}

	head, ok := p.next()
	if !ok {
		return ast.InvalidID, errors.New("unexpected end of input after '('")
	}
	switch head {
	case "not":
		a, err := p.expr(true)
		if err != nil {
			return ast.InvalidID, err
		}
		if err := p.expect(")"); err != nil {
			return ast.InvalidID, err
		}
		return p.m.Not(a), nil

	case "and", "or", "imply":
		args, err := p.exprList(true)
		if err != nil {
			return ast.InvalidID, err
		}
		switch head {
		case "and":
			return p.m.And(args...), nil
		case "or":
			return p.m.Or(args...), nil
		default:
			return p.m.Imply(args...), nil
		}

	case "=":
		args, err := p.exprList(false)
		if err != nil {
			return ast.InvalidID, err
		}
		if len(args) != 2 {
			return ast.InvalidID, errors.Errorf("'=' takes exactly 2 arguments, got %d", len(args))
		}
		return p.m.Eq(args[0], args[1]), nil

	case "distinct":
		args, err := p.exprList(false)
		if err != nil {
			return ast.InvalidID, err
		}
		return p.m.Distinct(args...), nil

	case "ite":
		c, err := p.expr(true)
		if err != nil {
			return ast.InvalidID, err
		}
		t, err := p.expr(false)
		if err != nil {
			return ast.InvalidID, err
		}
		e, err := p.expr(false)
		if err != nil {
			return ast.InvalidID, err
		}
		if err := p.expect(")"); err != nil {
			return ast.InvalidID, err
		}
		return p.m.Ite(c, t, e), nil

	default:
		args, err := p.exprList(false)
		if err != nil {
			return ast.InvalidID, err
		}
		if boolCtx {
			return p.m.Atom(head, args...), nil
		}
		return p.m.App(head, args, uninterpretedSort), nil
	}
}

// exprList parses expressions in context ctx until the closing ")",
// consuming it.
func (p *parser) exprList(ctx bool) ([]ast.ID, error) {
	var args []ast.ID
	for {
		tok, ok := p.peek()
		if !ok {
			return nil, errors.New("unexpected end of input in argument list")
		}
		if tok == ")" {
			p.next()
			return args, nil
		}
		a, err := p.expr(ctx)
		if err != nil {
			return nil, err
		}
		args = append(args, a)
	}
}

func (p *parser) atom(tok string, boolCtx bool) ast.ID {
	switch tok {
	case "true":
		return p.m.True()
	case "false":
		return p.m.False()
	}
	if boolCtx {
		return p.m.Atom(tok)
	}
	return p.m.Const(tok, uninterpretedSort)
}

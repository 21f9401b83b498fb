package ast

// FormulaKind discriminates the ten cases of the Boolean-centric term view
// the Tseitin transformer requires from the Term Manager contract: TyBool,
// Bool(b), Not(x), And(xs), Or(xs), Imply(xs), Eq(a,b), Distinct(xs),
// Ite(a,b,c), Atom(t). A tagged struct is used instead of an interface
// hierarchy: pattern matching over the Kind field stands in for inheritance.
type FormulaKind int

const (
	// FTyBool marks a term that denotes the Bool sort itself, rather than a
	// Boolean value. Kept for completeness with the external Term Manager
	// contract; this implementation's terms never classify as FTyBool, since
	// sorts are plain values here and never interned as terms.
	FTyBool FormulaKind = iota
	FBool
	FNot
	FAnd
	FOr
	FImply
	FEq
	FDistinct
	FIte
	FAtom
)

// Formula is the tagged view produced by ViewAsFormula. Only the fields
// relevant to Kind are populated; see the FormulaKind constants.
type Formula struct {
	Kind    FormulaKind
	Bool    bool
	Args    []ID // Not (len 1), And, Or, Imply, Distinct
	A, B, C ID   // Eq(A,B); Ite(A,B,C)
	Atom    ID
}

// IsBool reports whether the view denotes a concrete Boolean value.
func (f Formula) IsBool() bool { return f.Kind == FBool }

// IsTrue reports whether the view is the literal true.
func (f Formula) IsTrue() bool { return f.Kind == FBool && f.Bool }

// IsFalse reports whether the view is the literal false.
func (f Formula) IsFalse() bool { return f.Kind == FBool && !f.Bool }

// ViewAsFormula classifies t as one of the ten Boolean-connective shapes.
// Any other application (an uninterpreted predicate, or a non-Boolean term)
// classifies as FAtom; callers that need to know whether a term is even
// Boolean-sorted should check Sort(t) == BoolSort first, since FAtom is also
// returned for e.g. an uninterpreted non-Boolean term passed where a formula
// is expected — the caller deciding that is a contract violation is
// responsible for panicking.
func (m *Manager) ViewAsFormula(t ID) Formula {
	if t == m.trueID {
		return Formula{Kind: FBool, Bool: true}
	}
	if t == m.falseID {
		return Formula{Kind: FBool, Bool: false}
	}
	n := m.nodes[t]
	if n.kind != KApp {
		return Formula{Kind: FAtom, Atom: t}
	}
	switch n.head {
	case m.notSym:
		return Formula{Kind: FNot, Args: n.args}
	case m.andSym:
		return Formula{Kind: FAnd, Args: n.args}
	case m.orSym:
		return Formula{Kind: FOr, Args: n.args}
	case m.implySym:
		return Formula{Kind: FImply, Args: n.args}
	case m.eqSym:
		return Formula{Kind: FEq, A: n.args[0], B: n.args[1]}
	case m.distinctSym:
		return Formula{Kind: FDistinct, Args: n.args}
	case m.iteSym:
		return Formula{Kind: FIte, A: n.args[0], B: n.args[1], C: n.args[2]}
	default:
		return Formula{Kind: FAtom, Atom: t}
	}
}

// MkFormula is the symmetric constructor counterpart to ViewAsFormula,
// rebuilding a term from a Formula view.
func (m *Manager) MkFormula(v Formula) ID {
	switch v.Kind {
	case FBool:
		return m.Bool(v.Bool)
	case FNot:
		return m.Not(v.Args[0])
	case FAnd:
		return m.And(v.Args...)
	case FOr:
		return m.Or(v.Args...)
	case FImply:
		return m.Imply(v.Args...)
	case FEq:
		return m.Eq(v.A, v.B)
	case FDistinct:
		return m.Distinct(v.Args...)
	case FIte:
		return m.Ite(v.A, v.B, v.C)
	case FAtom:
		return v.Atom
	default:
		panic("ast: MkFormula called with FTyBool, which has no term representation")
	}
}

// IsBoolSorted reports whether t has Boolean sort.
func (m *Manager) IsBoolSorted(t ID) bool {
	return m.Sort(t) == BoolSort
}

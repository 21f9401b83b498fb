// Package ast provides a hash-consed term manager for ground first-order
// terms over uninterpreted functions and a small set of built-in Boolean
// connectives.
//
// Every term is interned: structurally identical applications (same head,
// same argument identities, in order) always resolve to the same ID, which
// is what lets the congruence-closure engine in package cc compare terms by
// integer identity instead of deep structural equality. The Manager is the
// single owner of term identity; callers thread a *Manager through every
// call that might intern a new term, which keeps that identity centralized
// in one owner instead of scattered across package-level state.
package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// ID is the stable identifier of an interned term. Ids are assigned from 0
// upward in interning order; InvalidID is returned by lookups that fail.
type ID int32

// InvalidID is returned by operations that have no term to report.
const InvalidID ID = -1

// Sort is the (uninterpreted) type of a term. Two sorts are equal iff their
// names are equal; sorts carry no further structure in a ground EUF theory.
type Sort struct {
	name string
}

// String returns the sort's name.
func (s Sort) String() string { return s.name }

// BoolSort is the distinguished sort of formulas and Boolean atoms.
var BoolSort = Sort{name: "Bool"}

// UninterpretedSort returns (interning nothing; sorts are plain values) the
// sort with the given name.
func UninterpretedSort(name string) Sort {
	return Sort{name: name}
}

// funcSort is the sort bucket used internally for function-symbol heads.
// It is never exposed as the sort of a value-producing term, so it can
// never collide with a user-chosen sort name.
var funcSort = Sort{name: "<func>"}

// Kind discriminates the three structural shapes a term can have, mirroring
// the Term Manager contract's Const | Index | App view.
type Kind int

const (
	// KConst is a nullary constant: a symbol or a distinguished Boolean value.
	KConst Kind = iota
	// KIndex is an opaque de Bruijn-style index, carried for API completeness
	// with the external Term Manager contract; ground EUF formulas never
	// need one. StructView reports it as KIndex; ViewAsFormula classifies it
	// as FAtom.
	KIndex
	// KApp is an application of a function symbol to one or more arguments.
	KApp
)

type node struct {
	kind   Kind
	sym    string // KConst: symbol name
	head   ID     // KApp: id of the head symbol (itself a KConst node)
	args   []ID   // KApp: argument ids, in order
	index  int    // KIndex: the de Bruijn index
	sort   Sort
}

// StructView is the structural classification of a term: Const, Index, or
// App{head, args}, per the Term Manager contract.
type StructView struct {
	Kind  Kind
	Sym   string
	Head  ID
	Args  []ID
	Index int
}

// Builtins names the five distinguished terms the congruence-closure engine
// special-cases: true, false, =, distinct, not. The CC engine takes it from
// the Manager at construction time; the Tseitin transformer does not use it
// and classifies terms through ViewAsFormula instead.
type Builtins struct {
	True, False, Eq, Distinct, Not ID
}

// Manager is the hash-consed term store. It owns the only mutable state in
// the term model; every other package receives a *Manager explicitly rather
// than reaching for package-level state.
//
// Manager is not safe for concurrent use: the engine's scheduling model is
// single-threaded and cooperative, so no internal locking is attempted here.
type Manager struct {
	nodes      []node
	constByKey map[string]ID
	appByKey   map[string]ID

	andSym, orSym, notSym, implySym, iteSym, eqSym, distinctSym ID
	trueID, falseID                                              ID
}

// NewManager creates an empty term manager and interns the built-in
// connective symbols and Boolean constants.
func NewManager() *Manager {
	m := &Manager{
		constByKey: make(map[string]ID, 64),
		appByKey:   make(map[string]ID, 256),
	}
	m.andSym = m.internConst("and", funcSort)
	m.orSym = m.internConst("or", funcSort)
	m.notSym = m.internConst("not", funcSort)
	m.implySym = m.internConst("imply", funcSort)
	m.iteSym = m.internConst("ite", funcSort)
	m.eqSym = m.internConst("=", funcSort)
	m.distinctSym = m.internConst("distinct", funcSort)
	m.trueID = m.internConst("true", BoolSort)
	m.falseID = m.internConst("false", BoolSort)
	return m
}

// Builtins returns the distinguished term ids the CC engine needs.
func (m *Manager) Builtins() Builtins {
	return Builtins{
		True:     m.trueID,
		False:    m.falseID,
		Eq:       m.eqSym,
		Distinct: m.distinctSym,
		Not:      m.notSym,
	}
}

func (m *Manager) alloc(n node) ID {
	id := ID(len(m.nodes))
	m.nodes = append(m.nodes, n)
	return id
}

func (m *Manager) internConst(sym string, sort Sort) ID {
	key := sort.name + "\x00" + sym
	if id, ok := m.constByKey[key]; ok {
		return id
	}
	id := m.alloc(node{kind: KConst, sym: sym, sort: sort})
	m.constByKey[key] = id
	return id
}

// Const interns (or looks up) a nullary uninterpreted constant with the
// given symbol and sort.
func (m *Manager) Const(sym string, sort Sort) ID {
	return m.internConst(sym, sort)
}

// Index interns (or looks up) an opaque de Bruijn-style index term.
func (m *Manager) Index(i int) ID {
	key := fmt.Sprintf("<idx>\x00%d", i)
	if id, ok := m.constByKey[key]; ok {
		return id
	}
	id := m.alloc(node{kind: KIndex, index: i, sort: BoolSort})
	m.constByKey[key] = id
	return id
}

func sigKey(head ID, args []ID) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(int(head)))
	for _, a := range args {
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(int(a)))
	}
	return b.String()
}

func (m *Manager) mkApp(head ID, args []ID, sort Sort) ID {
	key := sigKey(head, args)
	if id, ok := m.appByKey[key]; ok {
		return id
	}
	own := make([]ID, len(args))
	copy(own, args)
	id := m.alloc(node{kind: KApp, head: head, args: own, sort: sort})
	m.appByKey[key] = id
	return id
}

// App interns (or looks up) the application of the function symbol headSym
// to args. headSym identity is by name alone: one symbol, reused across
// any arity.
func (m *Manager) App(headSym string, args []ID, sort Sort) ID {
	head := m.internConst(headSym, funcSort)
	return m.mkApp(head, args, sort)
}

// True returns the distinguished Boolean constant true.
func (m *Manager) True() ID { return m.trueID }

// False returns the distinguished Boolean constant false.
func (m *Manager) False() ID { return m.falseID }

// Bool returns True() or False() according to b.
func (m *Manager) Bool(b bool) ID {
	if b {
		return m.trueID
	}
	return m.falseID
}

// Not builds ¬x.
func (m *Manager) Not(x ID) ID { return m.mkApp(m.notSym, []ID{x}, BoolSort) }

// And builds the n-ary conjunction of args.
func (m *Manager) And(args ...ID) ID { return m.mkApp(m.andSym, args, BoolSort) }

// Or builds the n-ary disjunction of args.
func (m *Manager) Or(args ...ID) ID { return m.mkApp(m.orSym, args, BoolSort) }

// Imply builds imply(x1,...,xn) meaning x1 ∧ ... ∧ xn-1 ⇒ xn.
func (m *Manager) Imply(args ...ID) ID { return m.mkApp(m.implySym, args, BoolSort) }

// Eq builds the equality atom a = b.
func (m *Manager) Eq(a, b ID) ID { return m.mkApp(m.eqSym, []ID{a, b}, BoolSort) }

// Distinct builds distinct(args...).
func (m *Manager) Distinct(args ...ID) ID { return m.mkApp(m.distinctSym, args, BoolSort) }

// Ite builds if a then b else c; its sort is the (shared) sort of b and c.
func (m *Manager) Ite(a, b, c ID) ID {
	return m.mkApp(m.iteSym, []ID{a, b, c}, m.Sort(b))
}

// Atom builds an opaque Boolean-sorted predicate application, for terms the
// theory treats as uninterpreted Boolean atoms (not equalities, not
// connectives).
func (m *Manager) Atom(sym string, args ...ID) ID {
	return m.App(sym, args, BoolSort)
}

// Sort returns the sort of t.
func (m *Manager) Sort(t ID) Sort { return m.nodes[t].sort }

// View returns the structural classification of t (Const | Index | App).
func (m *Manager) View(t ID) StructView {
	n := m.nodes[t]
	switch n.kind {
	case KConst:
		return StructView{Kind: KConst, Sym: n.sym}
	case KIndex:
		return StructView{Kind: KIndex, Index: n.index}
	default:
		return StructView{Kind: KApp, Head: n.head, Args: n.args}
	}
}

// Head returns the head symbol id of an application term. It panics if t is
// not an application — a contract violation, not a recoverable error.
func (m *Manager) Head(t ID) ID {
	n := m.nodes[t]
	if n.kind != KApp {
		panic(fmt.Sprintf("ast: Head called on non-application term %d", t))
	}
	return n.head
}

// Args returns the argument list of an application term, or nil for a
// constant or index term.
func (m *Manager) Args(t ID) []ID {
	return m.nodes[t].args
}

// Arity returns len(Args(t)).
func (m *Manager) Arity(t ID) int { return len(m.nodes[t].args) }

// Symbol returns the symbol name of a constant term (including a function
// symbol used as an application head). It panics on an Index or App term.
func (m *Manager) Symbol(t ID) string {
	n := m.nodes[t]
	if n.kind != KConst {
		panic(fmt.Sprintf("ast: Symbol called on non-constant term %d", t))
	}
	return n.sym
}

// String renders t as an s-expression, for logging and CLI output.
func (m *Manager) String(t ID) string {
	n := m.nodes[t]
	switch n.kind {
	case KConst:
		return n.sym
	case KIndex:
		return fmt.Sprintf("@%d", n.index)
	default:
		var b strings.Builder
		b.WriteByte('(')
		b.WriteString(m.nodes[n.head].sym)
		for _, a := range n.args {
			b.WriteByte(' ')
			b.WriteString(m.String(a))
		}
		b.WriteByte(')')
		return b.String()
	}
}

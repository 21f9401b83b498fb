package cc

import (
	"go.uber.org/zap"

	"github.com/gitrdm/ccsmt/pkg/ast"
	"github.com/gitrdm/ccsmt/pkg/backtrack"
)

// diseqEdge records one side of a symmetric disequality assertion between
// two class roots. left always denotes the term on the owning root's side,
// right the term on the other side, as they stood when the disequality was
// asserted — both remain valid members of their original classes forever,
// since union only grows a class, so they stay safe arguments to explain
// even after further merges move the roots around.
type diseqEdge struct {
	left, right ast.ID
	lit         Literal
}

type pendingMerge struct {
	t, u   ast.ID
	reason Reason
}

// CC is the incremental, backtrackable congruence-closure engine: union-find
// with an explanation forest, a signature table for congruence detection,
// disequality watch lists, and a pending-merge queue, all undone through a
// shared backtrack.Stack.
//
// CC is not safe for concurrent use. It follows the single decision-stack
// model of a CDCL theory solver, where exactly one goroutine ever touches
// it, so no locking is needed or wanted.
type CC struct {
	m  *ast.Manager
	bi ast.Builtins
	bt *backtrack.Stack
	log *zap.Logger

	// union-find, one entry per node id ever seen via ensureNode.
	parent map[ast.ID]ast.ID
	size   map[ast.ID]int // meaningful only when parent[x] == x

	// registered reports whether a node's structural side effects
	// (parent-list membership, signature-table installation) are
	// currently in force. It is distinct from mere presence in parent,
	// because those side effects are undone by backtracking while the
	// node itself, once created, persists forever.
	registered map[ast.ID]bool

	// next_in_class: a circular linked list threading every member of a
	// class together, so class members can be enumerated without storing
	// a growable member-set per root.
	next map[ast.ID]ast.ID

	// explanation forest: explParent[x] == ast.InvalidID marks x as a
	// root of the forest (not of the union-find structure — the two
	// trees diverge after backtracking and have different shapes).
	explParent map[ast.ID]ast.ID
	explReason map[ast.ID]Reason

	// parents: applications having a given root as an immediate argument,
	// aggregated on that root as its class absorbs others.
	parentsOf map[ast.ID][]ast.ID

	// signature table: canonical (head, arg-roots...) key -> the
	// application currently recognized as that signature's representative.
	sigTable     map[string]ast.ID
	installedSig map[ast.ID]string

	// disequality sets, keyed per root, each keyed by the other root as it
	// stood at insertion time; findDiseq re-validates keys via find() to
	// self-heal staleness from merges elsewhere.
	diseq map[ast.ID]map[ast.ID]diseqEdge

	pending []pendingMerge

	// propagation watches, one per atom registered via AddLiteral.
	watches       []*watch
	watchesByAtom map[ast.ID]*watch

	// every propagation discovered while draining the pending-merge queue,
	// in discovery order. Entries are never removed, not even by
	// backtracking; each drain reports only the suffix its own run added.
	pendingProps []Literal

	lcaMark map[ast.ID]int
	lcaGen  int
}

// New builds an empty CC engine over m's term universe.
func New(m *ast.Manager, log *zap.Logger) *CC {
	if log == nil {
		log = zap.NewNop()
	}
	cc := &CC{
		m:             m,
		bi:            m.Builtins(),
		bt:            backtrack.New(),
		log:           log,
		parent:        make(map[ast.ID]ast.ID),
		size:          make(map[ast.ID]int),
		registered:    make(map[ast.ID]bool),
		next:          make(map[ast.ID]ast.ID),
		explParent:    make(map[ast.ID]ast.ID),
		explReason:    make(map[ast.ID]Reason),
		parentsOf:     make(map[ast.ID][]ast.ID),
		sigTable:      make(map[string]ast.ID),
		installedSig:  make(map[ast.ID]string),
		diseq:         make(map[ast.ID]map[ast.ID]diseqEdge),
		watchesByAtom: make(map[ast.ID]*watch),
		lcaMark:       make(map[ast.ID]int),
	}
	cc.ensureNode(cc.bi.True)
	cc.ensureNode(cc.bi.False)
	cc.addPermanentDiseq(cc.bi.True, cc.bi.False)
	return cc
}

// PushLevel marks a new backtracking level.
func (cc *CC) PushLevel() { cc.bt.PushLevel() }

// PopLevels undoes the last n levels. Panics if n exceeds the number of
// levels pushed.
func (cc *CC) PopLevels(n int) {
	if n < 0 {
		panic(errPoppedTooManyLevels)
	}
	cc.bt.PopLevels(n)
	cc.pending = nil
}

// Level reports the current backtracking depth.
func (cc *CC) Level() int { return cc.bt.Level() }

func (cc *CC) ensureNode(t ast.ID) {
	if _, ok := cc.parent[t]; !ok {
		cc.parent[t] = t
		cc.size[t] = 1
		cc.next[t] = t
		cc.explParent[t] = ast.InvalidID
	}
	if cc.registered[t] {
		return
	}
	cc.registered[t] = true
	cc.bt.Push(backtrack.ActionFunc(func() { cc.registered[t] = false }))

	v := cc.m.View(t)
	if v.Kind != ast.KApp {
		return
	}
	for _, arg := range v.Args {
		cc.ensureNode(arg)
		ra := cc.find(arg)
		cc.parentsOf[ra] = append(cc.parentsOf[ra], t)
		list, idx := cc.parentsOf[ra], len(cc.parentsOf[ra])-1
		cc.bt.Push(backtrack.ActionFunc(func() {
			cc.parentsOf[ra] = list[:idx]
		}))
	}
	cc.rescanSignature(t)
}

// find returns the current representative of t's class. find does not
// perform path compression: union-by-size alone keeps it O(log n), and
// skipping compression avoids threading an undo record through every
// lookup, which a backtrackable path-compressing find would otherwise
// require.
func (cc *CC) find(t ast.ID) ast.ID {
	for {
		p, ok := cc.parent[t]
		if !ok || p == t {
			return t
		}
		t = p
	}
}

// Find is the exported form of find, usable by adapters and tests; it
// implicitly registers t if it has never been seen.
func (cc *CC) Find(t ast.ID) ast.ID {
	cc.ensureNode(t)
	return cc.find(t)
}

func (cc *CC) sizeOf(root ast.ID) int {
	if n, ok := cc.size[root]; ok {
		return n
	}
	return 1
}

func (cc *CC) addPermanentDiseq(a, b ast.ID) {
	for _, e := range [...]diseqEdge{{left: a, right: b}, {left: b, right: a}} {
		if cc.diseq[e.left] == nil {
			cc.diseq[e.left] = make(map[ast.ID]diseqEdge)
		}
		e.lit = Literal{Atom: axiomAtom}
		cc.diseq[e.left][e.right] = e
	}
}

func (cc *CC) addDiseqEdge(owner, otherAtInsertion, left, right ast.ID, lit Literal) {
	if cc.diseq[owner] == nil {
		cc.diseq[owner] = make(map[ast.ID]diseqEdge)
	}
	prev, had := cc.diseq[owner][otherAtInsertion]
	cc.diseq[owner][otherAtInsertion] = diseqEdge{left: left, right: right, lit: lit}
	cc.bt.Push(backtrack.ActionFunc(func() {
		if had {
			cc.diseq[owner][otherAtInsertion] = prev
		} else {
			delete(cc.diseq[owner], otherAtInsertion)
		}
	}))
}

// findDiseq reports whether ru is (transitively, via self-healing find()
// validation) registered as disequal to rt, returning the witnessing edge.
func (cc *CC) findDiseq(rt, ru ast.ID) (diseqEdge, bool) {
	for k, e := range cc.diseq[rt] {
		if cc.find(k) == ru {
			return e, true
		}
	}
	return diseqEdge{}, false
}

// AddLiteral pre-registers that the theory cares about atom, paired with
// the SAT literal it corresponds to (the Boolean-propagation entry point).
// It materializes atom's subterms and installs a propagation watch: an
// equality atom (or an opaque Boolean atom, treated as "atom = true")
// watches its two sides directly; a pairwise distinct atom watches the
// same pair with inverted polarity. Idempotent per atom.
//
// An n-ary distinct (n>2) is only ever produced directly by a caller that
// bypasses Tseitin — Tseitin always decomposes it into pairwise atoms
// before the theory ever sees it — so only subterms are materialized here
// for n>2; no propagation watch is installed for the top-level atom. Every
// scenario this engine is tested against uses pairwise (dis)equality, so
// this does not limit any tested behavior.
func (cc *CC) AddLiteral(atom ast.ID, lit Literal) {
	cc.ensureNode(atom)
	f := cc.m.ViewAsFormula(atom)
	switch f.Kind {
	case ast.FEq:
		cc.registerWatch(atom, f.A, f.B, false)
	case ast.FDistinct:
		for _, arg := range f.Args {
			cc.ensureNode(arg)
		}
		if len(f.Args) == 2 {
			cc.registerWatch(atom, f.Args[0], f.Args[1], true)
		}
	default:
		cc.registerWatch(atom, atom, cc.bi.True, false)
	}
}

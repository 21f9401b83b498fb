package cc

import (
	"github.com/gitrdm/ccsmt/pkg/ast"
	"github.com/gitrdm/ccsmt/pkg/backtrack"
)

// Enqueue queues t=u (justified by reason) for the next drain, without
// processing it immediately. Used by callers (typically a theory adapter)
// that want to batch several SAT-asserted merges before paying for a
// single drain.
func (cc *CC) Enqueue(t, u ast.ID, reason Reason) {
	cc.ensureNode(t)
	cc.ensureNode(u)
	cc.pending = append(cc.pending, pendingMerge{t: t, u: u, reason: reason})
}

// Merge asserts t=u, justified by reason, and drains the pending-merge
// queue to a fixpoint. It returns the literals newly propagated to the
// theory's watches during that drain, in BFS order, or a *ConflictError if
// asserting t=u is inconsistent with everything already known.
func (cc *CC) Merge(t, u ast.ID, reason Reason) ([]Literal, error) {
	cc.Enqueue(t, u, reason)
	return cc.drain()
}

// AssertDisequal asserts a!=b, witnessed by lit. A disequality does not
// itself enqueue a merge; it registers a watch edge on both roots so that
// a *later* attempt to merge a's and b's classes is caught and reported as
// a conflict. If a and b already share a root, the conflict is immediate.
func (cc *CC) AssertDisequal(a, b ast.ID, lit Literal) error {
	cc.ensureNode(a)
	cc.ensureNode(b)
	ra, rb := cc.find(a), cc.find(b)
	if ra == rb {
		lits := append(cc.explain(a, b), lit)
		return &ConflictError{Lits: dedupLits(lits)}
	}
	cc.addDiseqEdge(ra, rb, a, b, lit)
	cc.addDiseqEdge(rb, ra, b, a, lit)
	return nil
}

func (cc *CC) drain() ([]Literal, error) {
	var newlyPropagated []Literal
	for len(cc.pending) > 0 {
		pm := cc.pending[0]
		cc.pending = cc.pending[1:]

		before := len(cc.pendingProps)
		if err := cc.processOne(pm); err != nil {
			cc.pending = nil
			return nil, err
		}
		cc.checkWatches()
		newlyPropagated = append(newlyPropagated, cc.pendingProps[before:]...)
	}
	return newlyPropagated, nil
}

// PartialCheck drains anything left in the pending queue, forwarding
// propagations to actions as they're discovered, and returns a
// *ConflictError (without itself calling actions.Conflict — that forwarding
// belongs to the theory adapter, which holds the Go error this method
// returns) if the drain hits a contradiction.
func (cc *CC) PartialCheck(actions Actions) error {
	_, err := cc.drainInto(actions)
	return err
}

// FinalCheck re-validates saturation. Because Merge and PartialCheck
// already drain to a fixpoint eagerly, by the time FinalCheck runs there
// is never residual pending work in this implementation; FinalCheck does
// exactly what PartialCheck does.
func (cc *CC) FinalCheck(actions Actions) error {
	return cc.PartialCheck(actions)
}

func (cc *CC) drainInto(actions Actions) ([]Literal, error) {
	props, err := cc.drain()
	if err != nil {
		return nil, err
	}
	for _, lit := range props {
		l := lit
		actions.Propagate(l, func() []Literal { return cc.ExplainProp(l) })
	}
	return props, nil
}

// processOne performs the full merge-processing sequence for a single
// dequeued merge: root check, disequality conflict check, union-by-size,
// explanation-forest edge recording, and congruence rescan.
func (cc *CC) processOne(pm pendingMerge) error {
	rt, ru := cc.find(pm.t), cc.find(pm.u)
	if rt == ru {
		return nil
	}

	if e, ok := cc.findDiseq(rt, ru); ok {
		return &ConflictError{Lits: cc.buildDiseqConflict(pm.t, pm.u, pm.reason, e)}
	}

	small, large := rt, ru
	if cc.sizeOf(rt) > cc.sizeOf(ru) || (cc.sizeOf(rt) == cc.sizeOf(ru) && rt < ru) {
		small, large = ru, rt
	}

	cc.union(small, large, pm.reason)

	// congruence rescans: every application that had a member of the
	// absorbed class as an immediate argument may now collide with a
	// different application under the updated roots.
	for _, p := range cc.parentsOf[small] {
		cc.rescanSignature(p)
	}
	return nil
}

func (cc *CC) union(small, large ast.ID, reason Reason) {
	oldSmallSize, oldLargeSize := cc.sizeOf(small), cc.sizeOf(large)
	cc.parent[small] = large
	cc.bt.Push(backtrack.ActionFunc(func() {
		cc.parent[small] = small
	}))

	cc.size[large] = oldSmallSize + oldLargeSize
	cc.bt.Push(backtrack.ActionFunc(func() {
		cc.size[large] = oldLargeSize
	}))

	cc.explParent[small] = large
	cc.explReason[small] = reason
	cc.bt.Push(backtrack.ActionFunc(func() {
		cc.explParent[small] = ast.InvalidID
		delete(cc.explReason, small)
	}))

	nl0, ns0 := cc.next[large], cc.next[small]
	cc.next[large], cc.next[small] = ns0, nl0
	cc.bt.Push(backtrack.ActionFunc(func() {
		cc.next[large], cc.next[small] = nl0, ns0
	}))

	for k, e := range cc.diseq[small] {
		prev, had := cc.diseq[large][k]
		if cc.diseq[large] == nil {
			cc.diseq[large] = make(map[ast.ID]diseqEdge)
		}
		cc.diseq[large][k] = e
		cc.bt.Push(backtrack.ActionFunc(func() {
			if had {
				cc.diseq[large][k] = prev
			} else {
				delete(cc.diseq[large], k)
			}
		}))
	}

	merged := append(append([]ast.ID{}, cc.parentsOf[large]...), cc.parentsOf[small]...)
	oldLargeParents := cc.parentsOf[large]
	cc.parentsOf[large] = merged
	cc.bt.Push(backtrack.ActionFunc(func() {
		cc.parentsOf[large] = oldLargeParents
	}))
}

// buildDiseqConflict assembles the conflict clause for a disequality
// violation: the reason that justified attempting t=u, plus the path from
// t to the disequality's left endpoint, plus the path from u to its right
// endpoint, plus the literal that originally witnessed the disequality.
func (cc *CC) buildDiseqConflict(t, u ast.ID, reason Reason, e diseqEdge) Conflict {
	var lits []Literal
	lits = append(lits, cc.expandReason(reason)...)
	lits = append(lits, cc.explain(t, e.left)...)
	lits = append(lits, cc.explain(u, e.right)...)
	lits = append(lits, e.lit)
	return Conflict(dedupLits(lits))
}

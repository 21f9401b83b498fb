package cc

import (
	"github.com/gitrdm/ccsmt/pkg/ast"
)

// NaiveCC is the saturation-based reference oracle: given the same set of
// asserted equalities and disequalities, it recomputes congruence closure
// from scratch with no incrementality and no backtracking. It is a reference
// for cross-checking the incremental CC's answers, not for production use;
// none of this module's tests call it.
type NaiveCC struct {
	m   *ast.Manager
	eqs []pair
	neq []pair
}

type pair struct{ a, b ast.ID }

// NewNaiveCC returns an empty oracle over m's term universe.
func NewNaiveCC(m *ast.Manager) *NaiveCC {
	return &NaiveCC{m: m}
}

// AssertEqual records a=b for the next Saturate.
func (n *NaiveCC) AssertEqual(a, b ast.ID) { n.eqs = append(n.eqs, pair{a, b}) }

// AssertDisequal records a!=b for the next Saturate.
func (n *NaiveCC) AssertDisequal(a, b ast.ID) { n.neq = append(n.neq, pair{a, b}) }

// Saturate recomputes the full congruence closure of every equality
// asserted so far and reports whether it is consistent with every asserted
// disequality. If consistent, classOf maps every term it saw to its class
// representative; if not, classOf is nil.
func (n *NaiveCC) Saturate() (consistent bool, classOf map[ast.ID]ast.ID) {
	uf := make(map[ast.ID]ast.ID)
	sz := make(map[ast.ID]int)
	var find func(ast.ID) ast.ID
	find = func(x ast.ID) ast.ID {
		p, ok := uf[x]
		if !ok {
			uf[x] = x
			sz[x] = 1
			return x
		}
		if p == x {
			return x
		}
		r := find(p)
		uf[x] = r
		return r
	}
	union := func(a, b ast.ID) {
		ra, rb := find(a), find(b)
		if ra == rb {
			return
		}
		if sz[ra] < sz[rb] {
			ra, rb = rb, ra
		}
		uf[rb] = ra
		sz[ra] += sz[rb]
	}

	// collect every application term reachable from the asserted pairs so
	// congruence can be re-derived by repeated passes to a fixpoint.
	seen := make(map[ast.ID]bool)
	var apps []ast.ID
	var visit func(ast.ID)
	visit = func(t ast.ID) {
		if seen[t] {
			return
		}
		seen[t] = true
		find(t)
		v := n.m.View(t)
		if v.Kind == ast.KApp {
			apps = append(apps, t)
			for _, a := range v.Args {
				visit(a)
			}
		}
	}
	for _, p := range n.eqs {
		visit(p.a)
		visit(p.b)
		union(p.a, p.b)
	}
	for _, p := range n.neq {
		visit(p.a)
		visit(p.b)
	}

	// Saturate congruence: repeatedly union any two applications sharing a
	// head with pairwise-equal current-root arguments, until a full pass
	// makes no change. This is the "no incrementality" O(n^2)-per-pass
	// restatement of the same rule the incremental engine applies lazily.
	for changed := true; changed; {
		changed = false
		for i := 0; i < len(apps); i++ {
			for j := i + 1; j < len(apps); j++ {
				pi, pj := apps[i], apps[j]
				if find(pi) == find(pj) {
					continue
				}
				if sameSignature(n.m, find, pi, pj) {
					union(pi, pj)
					changed = true
				}
			}
		}
	}

	for _, p := range n.neq {
		if find(p.a) == find(p.b) {
			return false, nil
		}
	}
	classOf = make(map[ast.ID]ast.ID, len(uf))
	for x := range uf {
		classOf[x] = find(x)
	}
	return true, classOf
}

// Entails reports whether a=b is implied by everything asserted so far,
// given that the assertions are consistent.
func (n *NaiveCC) Entails(a, b ast.ID) bool {
	ok, classOf := n.Saturate()
	if !ok {
		return true // ex falso: an inconsistent theory entails everything
	}
	ra, haveA := classOf[a]
	rb, haveB := classOf[b]
	if !haveA {
		ra = a
	}
	if !haveB {
		rb = b
	}
	return ra == rb
}

func sameSignature(m *ast.Manager, find func(ast.ID) ast.ID, p, q ast.ID) bool {
	vp, vq := m.View(p), m.View(q)
	if vp.Kind != ast.KApp || vq.Kind != ast.KApp {
		return false
	}
	if vp.Head != vq.Head || len(vp.Args) != len(vq.Args) {
		return false
	}
	for i := range vp.Args {
		if find(vp.Args[i]) != find(vq.Args[i]) {
			return false
		}
	}
	return true
}

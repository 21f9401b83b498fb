package cc

import "github.com/gitrdm/ccsmt/pkg/ast"

// explain returns a set of input literals whose conjunction entails t=u,
// by walking the explanation forest — which tracks *why* terms were
// merged, kept separate from the union-find tree that only tracks *what*
// is currently merged — up from t and u to their lowest common ancestor.
//
// It uses the standard offline-LCA trick: walk t to the forest root once,
// tagging every node on the way with a call-specific generation stamp;
// then walk u upward until hitting a tagged node, which is the LCA. The
// generation counter (lcaGen) stands in for "reset the marker at the end":
// bumping it before each call makes every previous tag implicitly stale,
// without needing to clear a map.
func (cc *CC) explain(t, u ast.ID) []Literal {
	if t == u {
		return nil
	}
	cc.lcaGen++
	gen := cc.lcaGen

	var pathT []ast.ID
	var reasonsT []Reason
	cur := t
	for {
		cc.lcaMark[cur] = gen
		pathT = append(pathT, cur)
		p := cc.explParent[cur]
		if p == ast.InvalidID {
			break
		}
		reasonsT = append(reasonsT, cc.explReason[cur])
		cur = p
	}

	var reasonsU []Reason
	cur = u
	for cc.lcaMark[cur] != gen {
		reasonsU = append(reasonsU, cc.explReason[cur])
		p := cc.explParent[cur]
		if p == ast.InvalidID {
			panic("cc: explain called on terms that are not in the same class")
		}
		cur = p
	}
	lca := cur

	idx := -1
	for i, n := range pathT {
		if n == lca {
			idx = i
			break
		}
	}

	var lits []Literal
	for i := 0; i < idx; i++ {
		lits = append(lits, cc.expandReason(reasonsT[i])...)
	}
	for _, r := range reasonsU {
		lits = append(lits, cc.expandReason(r)...)
	}
	return dedupLits(lits)
}

// expandReason turns a single explanation-forest edge label into the input
// literals it ultimately rests on: a plain literal is already one, while a
// congruence witness CongruentTo(p,q) expands recursively into the
// explanations of each corresponding pair of arguments — p and q have the
// same head and arity by construction, since that is exactly what made
// their signatures collide.
func (cc *CC) expandReason(r Reason) []Literal {
	if !r.congruence {
		return []Literal{r.lit}
	}
	args1, args2 := cc.m.Args(r.app1), cc.m.Args(r.app2)
	var out []Literal
	for i := range args1 {
		out = append(out, cc.explain(args1[i], args2[i])...)
	}
	return out
}

func dedupLits(lits []Literal) []Literal {
	if len(lits) < 2 {
		return lits
	}
	seen := make(map[Literal]bool, len(lits))
	out := lits[:0:0]
	for _, l := range lits {
		if isAxiomLit(l) || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}

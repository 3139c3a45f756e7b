package depgraph

// Plan (the Solution of spec.md §3) is a linearized, budget-respecting
// sequence realizing Result: CreationOrder[i] is satisfied by
// DependencyOrder[i], and every node DependencyOrder[i].Requirements()
// names appears earlier in CreationOrder (topological validity).
type Plan struct {
	Result          Node
	CreationOrder   []Node
	DependencyOrder []Dependency
	Cost            int
}

// Valid checks the structural invariants spec.md §3 and §8 require of a
// Plan: equal-length parallel slices, no duplicate creation nodes, every
// requirement satisfied by a strictly earlier creation step, and the plan
// ending at Result.
func (p *Plan) Valid() bool {
	if len(p.CreationOrder) != len(p.DependencyOrder) {
		return false
	}
	if len(p.CreationOrder) == 0 {
		return false
	}
	seen := make(map[string]int, len(p.CreationOrder))
	for i, n := range p.CreationOrder {
		if _, dup := seen[n.Key()]; dup {
			return false
		}
		seen[n.Key()] = i
	}
	for i, dep := range p.DependencyOrder {
		for _, req := range dep.Requirements() {
			idx, ok := seen[req.Key()]
			if !ok || idx >= i {
				return false
			}
		}
	}
	last := p.CreationOrder[len(p.CreationOrder)-1]
	return last.Key() == p.Result.Key()
}

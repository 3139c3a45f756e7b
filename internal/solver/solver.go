// Package solver implements the Monte Carlo AND/OR search of spec.md §4.2:
// repeated randomized descents over the miner's dependency candidates,
// bounded by cost and depth, keeping the cheapest valid plan found.
package solver

import (
	"github.com/jcraft-dev/jcraft/internal/depgraph"
)

// Dependencies is the lazy oracle the solver consumes: dependenciesOf(node)
// from spec.md §4.1. *miner.Miner satisfies this.
type Dependencies interface {
	DependenciesOf(node depgraph.Node) []depgraph.Dependency
}

// Solver runs bounded randomized trials against a Dependencies oracle,
// memoizing dependency lookups across trials and across repeated Solve
// calls on the same Solver, per spec.md §4.2 and §5.
type Solver struct {
	deps   Dependencies
	cfg    Config
	memo   map[string][]depgraph.Dependency
}

// New builds a Solver over deps with the given Config. The memoization
// table starts empty and is populated lazily as nodes are first visited.
func New(deps Dependencies, cfg Config) *Solver {
	return &Solver{
		deps: deps,
		cfg:  cfg,
		memo: make(map[string][]depgraph.Dependency),
	}
}

// Solve runs up to cfg.NumberOfTrials independent trials targeting root,
// returning the lowest-cost successful plan (ok=true) or (nil, false) if
// no trial succeeded within budget — the NoPlan outcome of spec.md §7.
func (s *Solver) Solve(root depgraph.Node) (*depgraph.Plan, bool) {
	var best *depgraph.Plan

	for trial := 0; trial < s.cfg.NumberOfTrials; trial++ {
		st := newTrialState()
		if !s.recurse(root, 0, st) {
			continue
		}
		if st.cost < s.cfg.MinCost {
			continue
		}
		plan := &depgraph.Plan{
			Result:          root,
			CreationOrder:   st.creationOrder,
			DependencyOrder: st.dependencyOrder,
			Cost:            st.cost,
		}
		if best == nil || plan.Cost < best.Cost {
			best = plan
		}
	}

	if best == nil {
		return nil, false
	}
	return best, true
}

// trialState is the per-trial scratch the recurse algorithm mutates: which
// nodes have been proven satisfied so far, the linear creation/dependency
// order built up, and the running cost.
type trialState struct {
	created         map[string]bool
	creationOrder   []depgraph.Node
	dependencyOrder []depgraph.Dependency
	cost            int
}

func newTrialState() *trialState {
	return &trialState{created: make(map[string]bool)}
}

// recurse implements spec.md §4.2's algorithm exactly: memoized short
// circuit on already-satisfied nodes, depth bound, a uniformly random
// OR-choice among the miner's candidates, cost accounting, and an
// all-of-requirements AND over the chosen dependency.
func (s *Solver) recurse(node depgraph.Node, depth int, st *trialState) bool {
	if st.created[node.Key()] {
		return true
	}
	if depth > s.cfg.DepthLimit {
		return false
	}

	deps := s.memoize(node)
	if len(deps) == 0 {
		return false
	}

	d := deps[s.cfg.Rand.Intn(len(deps))]

	st.cost += d.Cost()
	if st.cost > s.cfg.CostLimit {
		return false
	}

	for _, req := range d.Requirements() {
		if !s.recurse(req, depth+1, st) {
			return false
		}
	}

	st.created[node.Key()] = true
	st.creationOrder = append(st.creationOrder, node)
	st.dependencyOrder = append(st.dependencyOrder, d)
	return true
}

// memoize fetches (and caches) the miner's candidate list for node.
func (s *Solver) memoize(node depgraph.Node) []depgraph.Dependency {
	key := node.Key()
	if deps, ok := s.memo[key]; ok {
		return deps
	}
	deps := s.deps.DependenciesOf(node)
	s.memo[key] = deps
	return deps
}

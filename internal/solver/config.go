package solver

import "math/rand"

// Config holds the budgets and randomness source the Monte Carlo search of
// spec.md §4.2 is configured with.
type Config struct {
	// NumberOfTrials is how many independent descents Solve attempts.
	NumberOfTrials int
	// CostLimit aborts a trial once its running cost exceeds this value.
	CostLimit int
	// DepthLimit aborts a trial once recursion depth exceeds this value.
	DepthLimit int
	// MinCost discards completed trials whose total cost is below this
	// floor, letting callers require a minimum construction complexity.
	MinCost int
	// Rand is the seedable RNG driving OR-choice selection. Two Solve
	// calls with the same Config.Rand seed, the same View, and the same
	// target produce byte-identical plans (spec.md §8 property 5).
	Rand *rand.Rand
}

// DefaultConfig returns the spec's suggested default budgets, with an RNG
// seeded with the fixed value 1, so repeated runs are reproducible unless
// the caller replaces Rand.
func DefaultConfig() Config {
	return Config{
		NumberOfTrials: 1000,
		CostLimit:      50,
		DepthLimit:     25,
		MinCost:        0,
		Rand:           rand.New(rand.NewSource(1)),
	}
}

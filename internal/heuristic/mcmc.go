package heuristic

import (
	"math"
	"math/rand/v2"

	"github.com/nfiege/scm-synth/internal/circuit"
)

// Chain is a single Metropolis-Hastings MCMC chain with simulated
// annealing, searching candidate adder graphs for one that realizes
// the chain's target constant.
type Chain struct {
	plan circuit.Plan

	current  Candidate
	best     Candidate
	cost     int
	bestCost int

	temperature float64
	rng         *rand.Rand
	mutator     *Mutator

	Accepted int64
	Rejected int64
}

// NewChain seeds a chain with a candidate of startNodes adder nodes
// (at least one), each drawn at random by the mutator, and the given
// starting temperature.
func NewChain(plan circuit.Plan, startNodes int, temperature float64, seed uint64, maxNodes int) *Chain {
	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	mutator := NewMutator(rng, plan, maxNodes)

	if startNodes < 1 {
		startNodes = 1
	}
	current := make(Candidate, startNodes+1)
	for i := 1; i <= startNodes; i++ {
		current[i] = mutator.randomNode(i)
	}
	cost := Cost(plan, current)

	return &Chain{
		plan:        plan,
		current:     current,
		best:        copyCand(current),
		cost:        cost,
		bestCost:    cost,
		temperature: temperature,
		rng:         rng,
		mutator:     mutator,
	}
}

// Step performs one MCMC iteration: mutate, evaluate, accept/reject,
// anneal. Returns true if the step was accepted.
func (c *Chain) Step(decay float64) bool {
	candidate := c.mutator.Mutate(c.current)
	newCost := Cost(c.plan, candidate)
	delta := newCost - c.cost

	accepted := false
	if delta <= 0 {
		accepted = true
	} else if c.temperature > 0 {
		prob := math.Exp(-float64(delta) / c.temperature)
		if c.rng.Float64() < prob {
			accepted = true
		}
	}

	if accepted {
		c.current = candidate
		c.cost = newCost
		c.Accepted++
		if newCost < c.bestCost {
			c.best = copyCand(candidate)
			c.bestCost = newCost
		}
	} else {
		c.Rejected++
	}

	c.temperature *= decay
	return accepted
}

// Best returns the best candidate found so far and its cost.
func (c *Chain) Best() (Candidate, int) {
	return c.best, c.bestCost
}

// Solved reports whether the best candidate realizes the target
// exactly (cost equals its node count, i.e. zero bit mismatches).
func (c *Chain) Solved() bool {
	return c.bestCost == len(c.best)-1
}

package heuristic

import (
	"math/rand/v2"

	"github.com/nfiege/scm-synth/internal/circuit"
)

// Mutator applies random, always-valid mutations to a Candidate: every
// generated field is drawn from the range that node's position makes
// legal, so a mutated candidate never needs a repair pass.
type Mutator struct {
	rng      *rand.Rand
	plan     circuit.Plan
	maxNodes int
}

func NewMutator(rng *rand.Rand, plan circuit.Plan, maxNodes int) *Mutator {
	return &Mutator{rng: rng, plan: plan, maxNodes: maxNodes}
}

// Mutate applies one randomly chosen mutation and returns a new
// Candidate; the input is never modified.
func (m *Mutator) Mutate(cand Candidate) Candidate {
	r := m.rng.IntN(100)
	switch {
	case r < 40:
		return m.rerollNode(cand)
	case r < 60:
		return m.rerollField(cand)
	case r < 75:
		return m.deleteNode(cand)
	case r < 90:
		return m.insertNode(cand)
	default:
		return m.rerollNode(cand)
	}
}

func copyCand(cand Candidate) Candidate {
	out := make(Candidate, len(cand))
	copy(out, cand)
	return out
}

// randomNode produces a fully valid random Node for adder index i.
func (m *Mutator) randomNode(i int) Node {
	var node Node
	if i >= 2 {
		node.InputSelect[0] = m.rng.IntN(i)
		node.InputSelect[1] = m.rng.IntN(i)
		node.ShiftInputSelect = m.rng.IntN(2)
	}
	node.ShiftValue = m.rng.IntN(m.plan.MaxShift + 1)
	node.NegateSelect = m.rng.IntN(2)
	node.Subtract = m.rng.IntN(2)
	return node
}

// rerollNode replaces one node's entire field set.
func (m *Mutator) rerollNode(cand Candidate) Candidate {
	if len(cand) <= 1 {
		return copyCand(cand)
	}
	out := copyCand(cand)
	i := 1 + m.rng.IntN(len(out)-1)
	out[i] = m.randomNode(i)
	return out
}

// rerollField replaces a single control field of one node, a finer
// step than replacing the whole node.
func (m *Mutator) rerollField(cand Candidate) Candidate {
	if len(cand) <= 1 {
		return copyCand(cand)
	}
	out := copyCand(cand)
	i := 1 + m.rng.IntN(len(out)-1)
	node := out[i]

	choices := 3
	if i >= 2 {
		choices = 6
	}
	switch m.rng.IntN(choices) {
	case 0:
		node.ShiftValue = m.rng.IntN(m.plan.MaxShift + 1)
	case 1:
		node.NegateSelect = m.rng.IntN(2)
	case 2:
		node.Subtract = m.rng.IntN(2)
	case 3:
		node.InputSelect[0] = m.rng.IntN(i)
	case 4:
		node.InputSelect[1] = m.rng.IntN(i)
	case 5:
		node.ShiftInputSelect = m.rng.IntN(2)
	}
	out[i] = node
	return out
}

// deleteNode drops the last adder node, if more than one remains.
func (m *Mutator) deleteNode(cand Candidate) Candidate {
	if len(cand) <= 2 {
		return copyCand(cand)
	}
	return copyCand(cand[:len(cand)-1])
}

// insertNode appends a new, randomly initialized adder node.
func (m *Mutator) insertNode(cand Candidate) Candidate {
	if len(cand)-1 >= m.maxNodes {
		return m.rerollNode(cand)
	}
	i := len(cand)
	out := make(Candidate, i+1)
	copy(out, cand)
	out[i] = m.randomNode(i)
	return out
}

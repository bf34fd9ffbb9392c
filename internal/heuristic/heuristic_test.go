package heuristic

import (
	"math/rand/v2"
	"testing"

	"github.com/nfiege/scm-synth/internal/circuit"
)

func TestSimulateSingleNode(t *testing.T) {
	plan, err := circuit.NewPlan(7)
	if err != nil {
		t.Fatalf("NewPlan(7): %v", err)
	}
	cand := Candidate{
		{},
		{ShiftValue: 3, NegateSelect: 1, Subtract: 1},
	}
	out := Simulate(plan, cand)
	if out[1] != 7 {
		t.Errorf("Simulate: node 1 = %d, want 7", out[1])
	}
}

func TestCostHasNoPenaltyForExactMatch(t *testing.T) {
	plan, err := circuit.NewPlan(7)
	if err != nil {
		t.Fatalf("NewPlan(7): %v", err)
	}
	cand := Candidate{
		{},
		{ShiftValue: 3, NegateSelect: 1, Subtract: 1},
	}
	if got, want := Cost(plan, cand), len(cand)-1; got != want {
		t.Errorf("Cost = %d, want %d (no mismatch penalty)", got, want)
	}
}

func TestEstimateFindsSmallConstant(t *testing.T) {
	plan, err := circuit.NewPlan(7)
	if err != nil {
		t.Fatalf("NewPlan(7): %v", err)
	}
	res := Estimate(plan, EstimateConfig{
		NumChains:  4,
		Iterations: 4000,
		StartNodes: 1,
		MaxNodes:   4,
		Seed:       1,
	})
	if !res.Solved {
		t.Fatalf("Estimate: did not find a candidate realizing C=7 (best cost %d)", res.BestCost)
	}
	out := Simulate(plan, res.Best)
	if out[res.NumAdders] != plan.C {
		t.Errorf("Estimate: best candidate realizes %d, want %d", out[res.NumAdders], plan.C)
	}
}

func TestMutatorNeverProducesOutOfRangeSelect(t *testing.T) {
	plan, err := circuit.NewPlan(45)
	if err != nil {
		t.Fatalf("NewPlan(45): %v", err)
	}
	rng := rand.New(rand.NewPCG(7, 7))
	m := NewMutator(rng, plan, 10)

	cand := Candidate{{}, {}, {}, {}}
	for i := 0; i < 500; i++ {
		cand = m.Mutate(cand)
		for idx := 2; idx < len(cand); idx++ {
			node := cand[idx]
			if node.InputSelect[0] < 0 || node.InputSelect[0] >= idx {
				t.Fatalf("node %d: InputSelect[0] = %d out of range [0,%d)", idx, node.InputSelect[0], idx)
			}
			if node.InputSelect[1] < 0 || node.InputSelect[1] >= idx {
				t.Fatalf("node %d: InputSelect[1] = %d out of range [0,%d)", idx, node.InputSelect[1], idx)
			}
		}
	}
}

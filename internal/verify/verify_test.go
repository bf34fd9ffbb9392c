package verify

import (
	"testing"

	"github.com/nfiege/scm-synth/internal/circuit"
	"github.com/nfiege/scm-synth/internal/synth"
)

// node1Circuit builds a one-adder solution realizing plan.C = 8 - 1 = 7
// by hand: shift node 0 (value 1) left by 3 to get 8, then subtract the
// unshifted node 0 (value 1).
func node1Circuit(t *testing.T) *synth.Solution {
	t.Helper()
	plan, err := circuit.NewPlan(7)
	if err != nil {
		t.Fatalf("NewPlan(7): %v", err)
	}
	return &synth.Solution{
		Plan:         plan,
		NumAdders:    1,
		OutputValues: []uint64{1, 7},
		Nodes: []synth.Node{
			{},
			{ShiftValue: 3, NegateSelect: 1, Subtract: 1},
		},
	}
}

func TestSolutionAcceptsValidCircuit(t *testing.T) {
	sol := node1Circuit(t)
	if err := Solution(sol); err != nil {
		t.Fatalf("Solution: unexpected error: %v", err)
	}
}

func TestSolutionRejectsWrongOutput(t *testing.T) {
	sol := node1Circuit(t)
	sol.OutputValues[1] = 6 // corrupt the reported output

	err := Solution(sol)
	if err == nil {
		t.Fatal("Solution: expected error for a mismatched output value")
	}
	cerr, ok := err.(*CoreInvariantError)
	if !ok {
		t.Fatalf("Solution: error type = %T, want *CoreInvariantError", err)
	}
	if cerr.Node != 1 {
		t.Errorf("CoreInvariantError.Node = %d, want 1", cerr.Node)
	}
}

func TestSolutionRejectsWrongShift(t *testing.T) {
	sol := node1Circuit(t)
	sol.Nodes[1].ShiftValue = 2 // now realizes 4-1=3, not 7

	if err := Solution(sol); err == nil {
		t.Fatal("Solution: expected error for a circuit realizing the wrong constant")
	}
}

package synth

import (
	"github.com/nfiege/scm-synth/internal/backend"
	"github.com/nfiege/scm-synth/internal/circuit"
)

// Node describes one adder node's decoded control fields, extracted
// from a satisfying assignment.
type Node struct {
	OutputValue uint64

	// The following are only meaningful for Index >= 2; node 1 always
	// reads node 0 on both operands.
	InputSelect [2]int // node index feeding the left/right operand

	ShiftInputSelect int // which operand feeds the shifter (1=left, 0=right)

	ShiftValue   int
	NegateSelect int // which operand the subtract leg lands on
	Subtract     int // 1 if the right leg is two's-complement negated
}

// Solution is a fully decoded attempt: one Node per adder plus the
// fixed input node, sufficient to both print and independently
// verify the circuit.
type Solution struct {
	Plan         circuit.Plan
	NumAdders    int
	OutputValues []uint64 // OutputValues[0..NumAdders]
	Nodes        []Node   // Nodes[1..NumAdders], Nodes[0] unused
}

func readNumber(be backend.Backend, vs []backend.Var) uint64 {
	var v uint64
	for i, bit := range vs {
		if be.Value(bit) != 0 {
			v |= 1 << uint(i)
		}
	}
	return v
}

func decode(plan circuit.Plan, t *circuit.Tables, be backend.Backend) Solution {
	n := t.N
	sol := Solution{
		Plan:         plan,
		NumAdders:    n,
		OutputValues: make([]uint64, n+1),
		Nodes:        make([]Node, n+1),
	}

	for i := 0; i <= n; i++ {
		sol.OutputValues[i] = readNumber(be, t.OutputValue[i])
	}

	for i := 1; i <= n; i++ {
		node := Node{OutputValue: sol.OutputValues[i]}
		if i >= 2 {
			for d, dir := range circuit.Dirs {
				node.InputSelect[d] = int(readNumber(be, t.InputSelectSelection[dir][i]))
			}
			node.ShiftInputSelect = be.Value(t.InputShiftSelect[i])
		}
		node.ShiftValue = int(readNumber(be, t.InputShiftValue[i]))
		node.NegateSelect = be.Value(t.InputNegateSelect[i])
		node.Subtract = be.Value(t.InputNegateValue[i])
		sol.Nodes[i] = node
	}

	return sol
}

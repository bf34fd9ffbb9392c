// Package heuristic provides a fast, inexact estimator for the
// minimum adder count of a constant: a simulated-annealing MCMC
// search over the same control fields the exact solver decodes,
// evaluated by plain integer simulation instead of a SAT check. It
// never proves a bound; it only proposes one, which the exact search
// logs as an expected stopping point while still starting at one adder.
package heuristic

import "github.com/nfiege/scm-synth/internal/circuit"

// Node is a candidate adder node's control fields, the same shape
// synth.Node decodes from a satisfying assignment. Index 1 always
// reads node 0 on both operands, same as the exact encoding.
type Node struct {
	InputSelect      [2]int
	ShiftInputSelect int
	ShiftValue       int
	NegateSelect     int
	Subtract         int
}

// Candidate is a full adder graph: one Node per adder, index 0 unused.
type Candidate []Node

// Simulate replays candidate against plan's word width and returns
// the output value of every node, OutputValues[0] == 1.
func Simulate(plan circuit.Plan, cand Candidate) []uint64 {
	n := len(cand) - 1
	mask := uint64(1)<<uint(plan.WordSize) - 1
	out := make([]uint64, n+1)
	out[0] = 1

	for i := 1; i <= n; i++ {
		node := cand[i]

		var inputNodeL, inputNodeR int
		if i >= 2 {
			inputNodeL = node.InputSelect[0]
			inputNodeR = node.InputSelect[1]
		}
		leftValue := out[inputNodeL]
		rightValue := out[inputNodeR]

		shiftMuxL, shiftMuxR := leftValue, rightValue
		if i >= 2 && node.ShiftInputSelect == 0 {
			shiftMuxL, shiftMuxR = rightValue, leftValue
		}

		shiftOutput := (shiftMuxL << uint(node.ShiftValue)) & mask

		negateMuxL, negateMuxR := shiftOutput, shiftMuxR
		if node.NegateSelect == 0 {
			negateMuxL, negateMuxR = shiftMuxR, shiftOutput
		}

		sub := uint64(node.Subtract)
		var xorOutput uint64
		if sub == 1 {
			xorOutput = (^negateMuxR) & mask
		} else {
			xorOutput = negateMuxR
		}

		out[i] = (negateMuxL + xorOutput + sub) & mask
	}

	return out
}

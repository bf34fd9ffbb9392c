package heuristic

import "github.com/nfiege/scm-synth/internal/circuit"

// Cost scores a candidate against a target constant: a large penalty
// for every bit the realized output disagrees on, plus the candidate's
// node count so that, among equally-correct candidates, shorter ones
// win. A cost of exactly len(cand)-1 means the candidate already
// realizes the target exactly.
func Cost(plan circuit.Plan, cand Candidate) int {
	out := Simulate(plan, cand)
	n := len(cand) - 1
	realized := out[n]

	mismatches := popcount64(realized ^ plan.C)
	return mismatches*1000 + n
}

func popcount64(v uint64) int {
	count := 0
	for v != 0 {
		count++
		v &= v - 1
	}
	return count
}

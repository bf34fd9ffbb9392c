package circuit

import "github.com/nfiege/scm-synth/internal/backend"

// Dir is the two-valued operand-side tag used throughout the adder
// node's operand-select, shift-swap and negate-swap stages.
type Dir uint8

const (
	Left Dir = iota
	Right
)

func (d Dir) String() string {
	if d == Left {
		return "L"
	}
	return "R"
}

// Dirs enumerates both directions in a fixed order, for callers that
// need to iterate both sides of a node's operand pair.
var Dirs = [2]Dir{Left, Right}

// Tables holds every boolean variable family allocated for one attempt
// (one fixed node count n), indexed densely by (node, dir, stage/mux,
// bit) rather than by a keyed map: every bound is known once n is
// fixed, so a lookup miss here is a programmer error, not a runtime
// condition to handle.
type Tables struct {
	N int // num_adders for this attempt
	W int // word_size
	S int // shift_word_size

	ConstantZero backend.Var

	// OutputValue[node][bit], node = 0..N.
	OutputValue [][]backend.Var

	// InputSelectSelection[dir][node][bit], node = 2..N.
	InputSelectSelection [2][][]backend.Var

	// InputSelectMux[dir][node][muxIdx][bit], node = 2..N.
	InputSelectMux [2][][][]backend.Var

	// InputShiftSelect[node], node = 2..N.
	InputShiftSelect []backend.Var

	// ShiftSelectOutput[dir][node][bit], node = 2..N.
	ShiftSelectOutput [2][][]backend.Var

	// InputShiftValue[node][bit], node = 1..N.
	InputShiftValue [][]backend.Var

	// ShiftInternalMuxOutput[node][stage][bit], node = 1..N.
	ShiftInternalMuxOutput [][][]backend.Var

	// InputNegateSelect[node], node = 1..N.
	InputNegateSelect []backend.Var

	// NegateSelectOutput[dir][node][bit], node = 1..N.
	NegateSelectOutput [2][][]backend.Var

	// InputNegateValue[node], node = 1..N.
	InputNegateValue []backend.Var

	// XorOutput[node][bit], node = 1..N.
	XorOutput [][]backend.Var

	// AdderInternal[node][bit], node = 1..N.
	AdderInternal [][]backend.Var
}

// selectWidthLog2 memoizes SelectWidth for node indices up to 64;
// larger indices take the slow path.
var selectWidthLog2 = newLog2Cache(64)

// SelectWidth returns ceil_log2(i), the width of the operand-select
// index for node i (only meaningful for i >= 2).
func SelectWidth(i int) int {
	return selectWidthLog2.CeilLog2(i)
}

// ShiftOutput returns the variables of the final barrel-shifter stage
// for node i — an alias for ShiftInternalMuxOutput[i][S-1].
func (t *Tables) ShiftOutput(i int) []backend.Var {
	return t.ShiftInternalMuxOutput[i][t.S-1]
}

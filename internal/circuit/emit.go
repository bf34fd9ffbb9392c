package circuit

import "github.com/nfiege/scm-synth/internal/backend"

// Emitter walks a populated Tables and asserts every gate-level
// constraint against a backend. It never allocates variables; that is
// the Allocator's job, strictly before Emit is called.
type Emitter struct {
	be backend.Backend
	t  *Tables
}

func NewEmitter(be backend.Backend, t *Tables) *Emitter {
	return &Emitter{be: be, t: t}
}

// Emit asserts the full constraint set for attempting to realize c
// (the odd core constant) with maxShift as the largest legal shift
// amount. Every family spec §4.3 lists is emitted; per node, the shift
// limitation comes ahead of the shift-swap and the barrel shifter.
func (e *Emitter) Emit(c uint64, maxShift int) {
	e.emitIO(c)
	for i := 1; i <= e.t.N; i++ {
		e.emitInputSelect(i)
		e.emitInputSelectLimitation(i)
		e.emitShiftLimitation(i, maxShift)
		e.emitShiftSelect(i)
		e.emitShift(i)
		e.emitNegateSelect(i)
		e.emitXor(i)
		e.emitAdder(i)
	}
}

func (e *Emitter) emitIO(c uint64) {
	e.be.ForceNumber(e.t.OutputValue[0], 1)
	e.be.ForceNumber(e.t.OutputValue[e.t.N], c)
}

// emitInputSelect builds the balanced mux tree that picks an operand
// from the outputs of nodes 0..i-1, msb stage first. The final stage
// reads real node outputs; every earlier stage reads the next stage's
// mux outputs. Node index 1 has no tree: its operands are fixed.
func (e *Emitter) emitInputSelect(i int) {
	if i == 1 {
		return
	}
	selW := SelectWidth(i)
	for _, dir := range Dirs {
		muxIdx := 0
		for stage := 0; stage < selW; stage++ {
			numInStage := 1 << stage
			sel := e.t.InputSelectSelection[dir][i][selW-stage-1]
			for inStage := 0; inStage < numInStage; inStage++ {
				if stage == selW-1 {
					zeroNode := 2 * inStage
					oneNode := zeroNode + 1
					if zeroNode >= i {
						zeroNode = i - 1
					}
					if oneNode >= i {
						oneNode = i - 1
					}
					for w := 0; w < e.t.W; w++ {
						out := e.t.InputSelectMux[dir][i][muxIdx][w]
						z := e.t.OutputValue[zeroNode][w]
						o := e.t.OutputValue[oneNode][w]
						if zeroNode == oneNode {
							e.be.Equivalence(z, out)
						} else {
							e.be.Mux(z, o, sel, out)
						}
					}
				} else {
					numInNext := 1 << (stage + 1)
					zeroMux := numInNext - 1 + 2*inStage
					oneMux := zeroMux + 1
					for w := 0; w < e.t.W; w++ {
						out := e.t.InputSelectMux[dir][i][muxIdx][w]
						z := e.t.InputSelectMux[dir][i][zeroMux][w]
						o := e.t.InputSelectMux[dir][i][oneMux][w]
						e.be.Mux(z, o, sel, out)
					}
				}
				muxIdx++
			}
		}
	}
}

// emitInputSelectLimitation forbids the operand-select field from
// encoding an out-of-range node index — the tree above only ever
// builds 2^selW leaves, but selW bits can represent more than i
// values.
func (e *Emitter) emitInputSelectLimitation(i int) {
	selW := SelectWidth(i)
	maxRepresentable := (1 << selW) - 1
	for _, dir := range Dirs {
		x := e.t.InputSelectSelection[dir][i]
		for forbidden := maxRepresentable; forbidden >= i; forbidden-- {
			e.be.ForbidNumber(x, uint64(forbidden))
		}
	}
}

// emitShiftLimitation forbids shift amounts beyond the legal range; a
// barrel shifter sized to shift_word_size bits can represent values
// past the word width.
func (e *Emitter) emitShiftLimitation(i, maxShift int) {
	maxRepresentable := (1 << e.t.S) - 1
	x := e.t.InputShiftValue[i]
	for forbidden := maxRepresentable; forbidden > maxShift; forbidden-- {
		e.be.ForbidNumber(x, uint64(forbidden))
	}
}

// emitShiftSelect wires the shift-swap crossbar: which operand feeds
// the shifter and which feeds the adder's straight-through leg is a
// mux decision, not a fixed assignment, so both orderings are
// reachable from a single select bit. Node 1 is fixed (no swap).
func (e *Emitter) emitShiftSelect(i int) {
	if i == 1 {
		return
	}
	sel := e.t.InputShiftSelect[i]
	for _, dir := range Dirs {
		for w := 0; w < e.t.W; w++ {
			out := e.t.ShiftSelectOutput[dir][i][w]
			left := e.t.InputSelectMux[Left][i][0][w]
			right := e.t.InputSelectMux[Right][i][0][w]
			if dir == Left {
				e.be.Mux(right, left, sel, out)
			} else {
				e.be.Mux(left, right, sel, out)
			}
		}
	}
}

// emitShift builds the barrel shifter: shift_word_size stages, each
// conditionally shifting left by 2^stage, zero-filling bits that would
// come from below bit 0.
func (e *Emitter) emitShift(i int) {
	for stage := 0; stage < e.t.S; stage++ {
		width := 1 << stage
		sel := e.t.InputShiftValue[i][stage]
		for w := 0; w < e.t.W; w++ {
			wPrev := w - width
			zeroFill := wPrev < 0
			out := e.t.ShiftInternalMuxOutput[i][stage][w]

			var zero, one backend.Var
			if stage == 0 {
				if i == 1 {
					zero = e.t.OutputValue[0][w]
					if zeroFill {
						one = e.t.ConstantZero
					} else {
						one = e.t.OutputValue[0][wPrev]
					}
				} else {
					zero = e.t.ShiftSelectOutput[Left][i][w]
					if zeroFill {
						one = e.t.ConstantZero
					} else {
						one = e.t.ShiftSelectOutput[Left][i][wPrev]
					}
				}
			} else {
				zero = e.t.ShiftInternalMuxOutput[i][stage-1][w]
				if zeroFill {
					one = e.t.ConstantZero
				} else {
					one = e.t.ShiftInternalMuxOutput[i][stage-1][wPrev]
				}
			}
			e.be.Mux(zero, one, sel, out)
		}
	}
}

// emitNegateSelect wires the negate-swap crossbar ahead of the xor
// inverter: the operand that may be complemented always lands on the
// right leg, the straight-through operand on the left leg, regardless
// of which physical input the shifter produced it on.
func (e *Emitter) emitNegateSelect(i int) {
	sel := e.t.InputNegateSelect[i]
	shiftOut := e.t.ShiftOutput(i)
	for w := 0; w < e.t.W; w++ {
		left := shiftOut[w]
		var right backend.Var
		if i == 1 {
			right = e.t.OutputValue[0][w]
		} else {
			right = e.t.ShiftSelectOutput[Right][i][w]
		}
		for _, dir := range Dirs {
			out := e.t.NegateSelectOutput[dir][i][w]
			if dir == Left {
				e.be.Mux(right, left, sel, out)
			} else {
				e.be.Mux(left, right, sel, out)
			}
		}
	}
}

func (e *Emitter) emitXor(i int) {
	negate := e.t.InputNegateValue[i]
	for w := 0; w < e.t.W; w++ {
		in := e.t.NegateSelectOutput[Right][i][w]
		out := e.t.XorOutput[i][w]
		e.be.Xor(negate, in, out)
	}
}

// emitAdder builds the ripple-carry adder. The negate/subtract select
// bit doubles as the carry-in of bit 0, completing two's-complement
// negation of the right operand without a dedicated increment
// constraint. The top carry is forced to 0: an attempt's solution is
// only valid if this node's addition does not overflow the word.
func (e *Emitter) emitAdder(i int) {
	for w := 0; w < e.t.W; w++ {
		var cIn backend.Var
		if w == 0 {
			cIn = e.t.InputNegateValue[i]
		} else {
			cIn = e.t.AdderInternal[i][w-1]
		}
		a := e.t.NegateSelectOutput[Left][i][w]
		b := e.t.XorOutput[i][w]
		s := e.t.OutputValue[i][w]
		e.be.AddSum(a, b, cIn, s)
		cOut := e.t.AdderInternal[i][w]
		e.be.AddCarry(a, b, cIn, cOut)
	}
	e.be.ForceBit(e.t.AdderInternal[i][e.t.W-1], 0)
}

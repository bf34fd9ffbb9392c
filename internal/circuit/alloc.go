package circuit

import "github.com/nfiege/scm-synth/internal/backend"

// Allocator produces the dense variable tables for one attempt. It
// owns the tables write-only; the Emitter only reads them. This split
// lets the same allocation be snapshotted and fed to more than one
// constraint encoding without redoing allocation work.
type Allocator struct {
	be      backend.Backend
	counter int
}

// NewAllocator binds an allocator to a backend. The backend is reset
// at the start of every Allocate call, per the attempt lifecycle in
// spec §3 ("Lifecycle").
func NewAllocator(be backend.Backend) *Allocator {
	return &Allocator{be: be}
}

func (a *Allocator) fresh() backend.Var {
	a.counter++
	v := backend.Var(a.counter)
	a.be.NewVariable(v)
	return v
}

func (a *Allocator) freshBits(n int) []backend.Var {
	bits := make([]backend.Var, n)
	for i := range bits {
		bits[i] = a.fresh()
	}
	return bits
}

// Allocate resets the backend and this allocator's counter, then
// allocates every variable family for the given node count n, in the
// order given in spec §3's table.
func (a *Allocator) Allocate(n, w, s int) *Tables {
	a.be.Reset()
	a.counter = 0

	t := &Tables{N: n, W: w, S: s}

	t.ConstantZero = a.fresh()
	a.be.ForceBit(t.ConstantZero, 0)

	t.OutputValue = make([][]backend.Var, n+1)
	t.OutputValue[0] = a.freshBits(w)

	t.InputSelectSelection[Left] = make([][]backend.Var, n+1)
	t.InputSelectSelection[Right] = make([][]backend.Var, n+1)
	t.InputSelectMux[Left] = make([][][]backend.Var, n+1)
	t.InputSelectMux[Right] = make([][][]backend.Var, n+1)
	t.InputShiftSelect = make([]backend.Var, n+1)
	t.ShiftSelectOutput[Left] = make([][]backend.Var, n+1)
	t.ShiftSelectOutput[Right] = make([][]backend.Var, n+1)
	t.InputShiftValue = make([][]backend.Var, n+1)
	t.ShiftInternalMuxOutput = make([][][]backend.Var, n+1)
	t.InputNegateSelect = make([]backend.Var, n+1)
	t.NegateSelectOutput[Left] = make([][]backend.Var, n+1)
	t.NegateSelectOutput[Right] = make([][]backend.Var, n+1)
	t.InputNegateValue = make([]backend.Var, n+1)
	t.XorOutput = make([][]backend.Var, n+1)
	t.AdderInternal = make([][]backend.Var, n+1)

	for i := 1; i <= n; i++ {
		t.OutputValue[i] = a.freshBits(w)

		if i >= 2 {
			sw := SelectWidth(i)
			numMuxes := (1 << sw) - 1
			for _, dir := range Dirs {
				t.InputSelectSelection[dir][i] = a.freshBits(sw)
			}
			for _, dir := range Dirs {
				t.InputSelectMux[dir][i] = make([][]backend.Var, numMuxes)
				for m := 0; m < numMuxes; m++ {
					t.InputSelectMux[dir][i][m] = a.freshBits(w)
				}
			}
			t.InputShiftSelect[i] = a.fresh()
			for _, dir := range Dirs {
				t.ShiftSelectOutput[dir][i] = a.freshBits(w)
			}
		}

		t.InputShiftValue[i] = a.freshBits(s)

		t.ShiftInternalMuxOutput[i] = make([][]backend.Var, s)
		for stage := 0; stage < s; stage++ {
			t.ShiftInternalMuxOutput[i][stage] = a.freshBits(w)
		}

		t.InputNegateSelect[i] = a.fresh()
		for _, dir := range Dirs {
			t.NegateSelectOutput[dir][i] = a.freshBits(w)
		}
		t.InputNegateValue[i] = a.fresh()
		t.XorOutput[i] = a.freshBits(w)
		t.AdderInternal[i] = a.freshBits(w)
	}

	return t
}

// NumVariables returns the number of variables allocated so far in the
// current attempt — diagnostic only.
func (a *Allocator) NumVariables() int {
	return a.counter
}

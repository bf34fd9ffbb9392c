package circuit

import (
	"testing"

	"github.com/nfiege/scm-synth/internal/backend"
	"github.com/nfiege/scm-synth/internal/backend/bruteforce"
)

func TestAllocateShapes(t *testing.T) {
	be := bruteforce.New()
	a := NewAllocator(be)
	n, w, s := 3, 5, 3
	tbl := a.Allocate(n, w, s)

	if len(tbl.OutputValue) != n+1 {
		t.Fatalf("OutputValue has %d nodes, want %d", len(tbl.OutputValue), n+1)
	}
	for i := 0; i <= n; i++ {
		if len(tbl.OutputValue[i]) != w {
			t.Errorf("OutputValue[%d] has %d bits, want %d", i, len(tbl.OutputValue[i]), w)
		}
	}

	for i := 1; i <= n; i++ {
		if len(tbl.InputShiftValue[i]) != s {
			t.Errorf("InputShiftValue[%d] has %d bits, want %d", i, len(tbl.InputShiftValue[i]), s)
		}
		if len(tbl.ShiftInternalMuxOutput[i]) != s {
			t.Errorf("ShiftInternalMuxOutput[%d] has %d stages, want %d", i, len(tbl.ShiftInternalMuxOutput[i]), s)
		}
		for stage := 0; stage < s; stage++ {
			if len(tbl.ShiftInternalMuxOutput[i][stage]) != w {
				t.Errorf("ShiftInternalMuxOutput[%d][%d] has %d bits, want %d", i, stage, len(tbl.ShiftInternalMuxOutput[i][stage]), w)
			}
		}
		if i >= 2 {
			selW := SelectWidth(i)
			wantMuxes := (1 << selW) - 1
			for _, dir := range Dirs {
				if len(tbl.InputSelectMux[dir][i]) != wantMuxes {
					t.Errorf("InputSelectMux[%v][%d] has %d muxes, want %d", dir, i, len(tbl.InputSelectMux[dir][i]), wantMuxes)
				}
				if len(tbl.InputSelectSelection[dir][i]) != selW {
					t.Errorf("InputSelectSelection[%v][%d] has %d bits, want %d", dir, i, len(tbl.InputSelectSelection[dir][i]), selW)
				}
			}
		} else {
			for _, dir := range Dirs {
				if tbl.InputSelectMux[dir][i] != nil {
					t.Errorf("node 1 should have no input-select mux tree, got %d entries", len(tbl.InputSelectMux[dir][i]))
				}
			}
		}
	}

	// Every variable handle allocated must be distinct.
	seen := map[int]bool{}
	var walk func(v int)
	walk = func(v int) {
		if seen[v] {
			t.Fatalf("variable %d allocated more than once", v)
		}
		seen[v] = true
	}
	walk(int(tbl.ConstantZero))
	walkAll := func(vs []backend.Var) {
		for _, v := range vs {
			walk(int(v))
		}
	}
	for i := 0; i <= n; i++ {
		walkAll(tbl.OutputValue[i])
	}
	for i := 1; i <= n; i++ {
		for _, dir := range Dirs {
			walkAll(tbl.InputSelectSelection[dir][i])
			for _, mux := range tbl.InputSelectMux[dir][i] {
				walkAll(mux)
			}
			walkAll(tbl.ShiftSelectOutput[dir][i])
			walkAll(tbl.NegateSelectOutput[dir][i])
		}
		if i >= 2 {
			walk(int(tbl.InputShiftSelect[i]))
		}
		walkAll(tbl.InputShiftValue[i])
		for _, stage := range tbl.ShiftInternalMuxOutput[i] {
			walkAll(stage)
		}
		walk(int(tbl.InputNegateSelect[i]))
		walk(int(tbl.InputNegateValue[i]))
		walkAll(tbl.XorOutput[i])
		walkAll(tbl.AdderInternal[i])
	}
	if a.NumVariables() <= 0 {
		t.Fatal("expected a positive variable count after allocation")
	}
}

func TestAllocateResetsCounter(t *testing.T) {
	be := bruteforce.New()
	a := NewAllocator(be)
	a.Allocate(2, 4, 2)
	first := a.NumVariables()
	a.Allocate(2, 4, 2)
	second := a.NumVariables()
	if first != second {
		t.Errorf("Allocate should reset the counter between calls: got %d then %d", first, second)
	}
}

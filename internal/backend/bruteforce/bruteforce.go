// Package bruteforce implements the circuit backend by exhaustive
// boolean enumeration. It exists to cross-check the gate encodings of
// faster backends in tests, not for production solving: every Check
// is O(2^numVariables).
package bruteforce

import "github.com/nfiege/scm-synth/internal/backend"

type constraint func(assign []bool) bool

// Backend collects constraints as closures over a candidate
// assignment and, on Check, recursively enumerates every assignment
// until one satisfies all of them — the same depth-first recursive
// shape as enumerating instruction sequences, applied to boolean
// variables instead of instructions.
type Backend struct {
	numVars     int
	constraints []constraint
	assignment  []bool
	solved      bool
}

func New() *Backend {
	b := &Backend{}
	b.Reset()
	return b
}

func (b *Backend) Reset() {
	b.numVars = 0
	b.constraints = nil
	b.assignment = nil
	b.solved = false
}

func (b *Backend) NewVariable(v backend.Var) {
	if int(v) > b.numVars {
		b.numVars = int(v)
	}
}

func (b *Backend) idx(v backend.Var) int { return int(v) - 1 }

func (b *Backend) add(c constraint) { b.constraints = append(b.constraints, c) }

func (b *Backend) ForceBit(v backend.Var, k int) {
	want := k != 0
	i := b.idx(v)
	b.add(func(a []bool) bool { return a[i] == want })
}

func (b *Backend) ForceNumber(vs []backend.Var, k uint64) {
	for i, v := range vs {
		b.ForceBit(v, int((k>>uint(i))&1))
	}
}

func (b *Backend) ForbidNumber(vs []backend.Var, k uint64) {
	idxs := make([]int, len(vs))
	for i, v := range vs {
		idxs[i] = b.idx(v)
	}
	b.add(func(a []bool) bool {
		for i, vi := range idxs {
			want := (k>>uint(i))&1 == 1
			if a[vi] != want {
				return true
			}
		}
		return false
	})
}

func (b *Backend) Equivalence(x, y backend.Var) {
	ix, iy := b.idx(x), b.idx(y)
	b.add(func(a []bool) bool { return a[ix] == a[iy] })
}

func (b *Backend) Mux(a, c, s, o backend.Var) {
	ia, ic, is, io := b.idx(a), b.idx(c), b.idx(s), b.idx(o)
	b.add(func(assign []bool) bool {
		var expect bool
		if assign[is] {
			expect = assign[ic]
		} else {
			expect = assign[ia]
		}
		return assign[io] == expect
	})
}

func (b *Backend) Xor(a, c, y backend.Var) {
	ia, ic, iy := b.idx(a), b.idx(c), b.idx(y)
	b.add(func(assign []bool) bool { return assign[iy] == (assign[ia] != assign[ic]) })
}

func (b *Backend) AddSum(a, c, cIn, s backend.Var) {
	ia, ic, icIn, is := b.idx(a), b.idx(c), b.idx(cIn), b.idx(s)
	b.add(func(assign []bool) bool {
		return assign[is] == (assign[ia] != assign[ic] != assign[icIn])
	})
}

func (b *Backend) AddCarry(a, c, cIn, cOut backend.Var) {
	ia, ic, icIn, icOut := b.idx(a), b.idx(c), b.idx(cIn), b.idx(cOut)
	b.add(func(assign []bool) bool {
		votes := 0
		if assign[ia] {
			votes++
		}
		if assign[ic] {
			votes++
		}
		if assign[icIn] {
			votes++
		}
		return assign[icOut] == (votes >= 2)
	})
}

func (b *Backend) Check() (sat bool, timedOut bool) {
	assign := make([]bool, b.numVars)
	ok := b.search(assign, 0)
	if ok {
		b.assignment = assign
	}
	b.solved = ok
	return ok, false
}

func (b *Backend) search(assign []bool, i int) bool {
	if i == len(assign) {
		for _, c := range b.constraints {
			if !c(assign) {
				return false
			}
		}
		return true
	}
	for _, v := range [2]bool{false, true} {
		assign[i] = v
		if b.search(assign, i+1) {
			return true
		}
	}
	return false
}

func (b *Backend) Value(v backend.Var) int {
	if !b.solved {
		panic("bruteforce backend: Value called before a satisfying Check")
	}
	if b.assignment[b.idx(v)] {
		return 1
	}
	return 0
}

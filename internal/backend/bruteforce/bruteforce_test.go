package bruteforce

import (
	"testing"

	"github.com/nfiege/scm-synth/internal/backend"
)

func newVars(b *Backend, n int) []backend.Var {
	vs := make([]backend.Var, n)
	for i := range vs {
		v := backend.Var(i + 1)
		b.NewVariable(v)
		vs[i] = v
	}
	return vs
}

func TestMuxTruthTable(t *testing.T) {
	for _, sel := range []int{0, 1} {
		b := New()
		vs := newVars(b, 4)
		a, c, s, o := vs[0], vs[1], vs[2], vs[3]
		b.ForceBit(s, sel)
		b.Mux(a, c, s, o)

		sat, timedOut := b.Check()
		if timedOut || !sat {
			t.Fatalf("sel=%d: expected sat, got sat=%v timedOut=%v", sel, sat, timedOut)
		}
		want := b.Value(a)
		if sel == 1 {
			want = b.Value(c)
		}
		if got := b.Value(o); got != want {
			t.Errorf("sel=%d: o=%d, want %d", sel, got, want)
		}
	}
}

func TestXorForcedInputs(t *testing.T) {
	for _, av := range []int{0, 1} {
		for _, cv := range []int{0, 1} {
			b := New()
			vs := newVars(b, 3)
			a, c, y := vs[0], vs[1], vs[2]
			b.ForceBit(a, av)
			b.ForceBit(c, cv)
			b.Xor(a, c, y)

			sat, _ := b.Check()
			if !sat {
				t.Fatalf("a=%d c=%d: expected sat", av, cv)
			}
			want := av ^ cv
			if got := b.Value(y); got != want {
				t.Errorf("a=%d c=%d: y=%d, want %d", av, cv, got, want)
			}
		}
	}
}

func TestAddSumAndCarry(t *testing.T) {
	for a := 0; a <= 1; a++ {
		for c := 0; c <= 1; c++ {
			for cin := 0; cin <= 1; cin++ {
				b := New()
				vs := newVars(b, 5)
				av, cv, cinv, sv, cov := vs[0], vs[1], vs[2], vs[3], vs[4]
				b.ForceBit(av, a)
				b.ForceBit(cv, c)
				b.ForceBit(cinv, cin)
				b.AddSum(av, cv, cinv, sv)
				b.AddCarry(av, cv, cinv, cov)

				sat, _ := b.Check()
				if !sat {
					t.Fatalf("a=%d c=%d cin=%d: expected sat", a, c, cin)
				}
				total := a + c + cin
				wantSum := total & 1
				wantCarry := total >> 1
				if got := b.Value(sv); got != wantSum {
					t.Errorf("a=%d c=%d cin=%d: sum=%d, want %d", a, c, cin, got, wantSum)
				}
				if got := b.Value(cov); got != wantCarry {
					t.Errorf("a=%d c=%d cin=%d: carry=%d, want %d", a, c, cin, got, wantCarry)
				}
			}
		}
	}
}

func TestForbidNumberBlocksExactAssignment(t *testing.T) {
	b := New()
	vs := newVars(b, 2)

	b.ForbidNumber(vs, 0) // forbid both bits 0

	sat, _ := b.Check()
	if !sat {
		t.Fatal("expected sat: only one combination is forbidden")
	}
	if b.Value(vs[0]) == 0 && b.Value(vs[1]) == 0 {
		t.Error("forbidden assignment (0,0) was accepted")
	}
}

func TestForbidNumberUnsat(t *testing.T) {
	b := New()
	vs := newVars(b, 1)

	b.ForceBit(vs[0], 0)
	b.ForbidNumber(vs, 0)

	sat, _ := b.Check()
	if sat {
		t.Fatal("expected unsat: the only possible value is forbidden")
	}
}

func TestEquivalence(t *testing.T) {
	b := New()
	vs := newVars(b, 2)
	b.ForceBit(vs[0], 1)
	b.Equivalence(vs[0], vs[1])

	sat, _ := b.Check()
	if !sat {
		t.Fatal("expected sat")
	}
	if b.Value(vs[1]) != 1 {
		t.Errorf("Value(vs[1]) = %d, want 1", b.Value(vs[1]))
	}
}

// Package gini implements the circuit backend on top of a real SAT
// solver (github.com/go-air/gini). Every gate primitive the circuit
// core asserts is compiled here to CNF by hand, since gini only
// exposes clause-level Add, not gate-level constructs.
package gini

import (
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/nfiege/scm-synth/internal/backend"
)

// Backend wraps a gini solver instance and a mapping from the
// allocator's opaque Var handles to gini literals.
type Backend struct {
	timeout time.Duration

	g    *gini.Gini
	lits map[backend.Var]z.Lit
}

// New returns a gini-backed Backend. timeout bounds every Check call;
// zero means no timeout.
func New(timeout time.Duration) *Backend {
	b := &Backend{timeout: timeout}
	b.Reset()
	return b
}

func (b *Backend) Reset() {
	b.g = gini.New()
	b.lits = make(map[backend.Var]z.Lit)
}

func (b *Backend) NewVariable(v backend.Var) {
	b.lits[v] = b.g.Lit()
}

func (b *Backend) lit(v backend.Var) z.Lit {
	l, ok := b.lits[v]
	if !ok {
		panic("gini backend: use of undeclared variable")
	}
	return l
}

func (b *Backend) clause(lits ...z.Lit) {
	for _, l := range lits {
		b.g.Add(l)
	}
	b.g.Add(0)
}

func (b *Backend) ForceBit(v backend.Var, k int) {
	l := b.lit(v)
	if k == 0 {
		b.clause(l.Not())
	} else {
		b.clause(l)
	}
}

func (b *Backend) ForceNumber(vs []backend.Var, k uint64) {
	for i, v := range vs {
		bit := (k >> uint(i)) & 1
		b.ForceBit(v, int(bit))
	}
}

// ForbidNumber adds a single blocking clause: the disjunction of each
// bit's negated literal (where the target bit is 1) or literal (where
// the target bit is 0), which is false only under the assignment
// equal to k.
func (b *Backend) ForbidNumber(vs []backend.Var, k uint64) {
	lits := make([]z.Lit, len(vs))
	for i, v := range vs {
		l := b.lit(v)
		if (k>>uint(i))&1 == 1 {
			l = l.Not()
		}
		lits[i] = l
	}
	b.clause(lits...)
}

func (b *Backend) Equivalence(x, y backend.Var) {
	lx, ly := b.lit(x), b.lit(y)
	b.clause(lx.Not(), ly)
	b.clause(lx, ly.Not())
}

// Mux asserts o = s ? b : a via the standard 4-clause Tseitin
// encoding of a 2-to-1 multiplexer.
func (b *Backend) Mux(a, b_, s, o backend.Var) {
	la, lb, ls, lo := b.lit(a), b.lit(b_), b.lit(s), b.lit(o)
	b.clause(ls, lo.Not(), la)
	b.clause(ls, lo, la.Not())
	b.clause(ls.Not(), lo.Not(), lb)
	b.clause(ls.Not(), lo, lb.Not())
}

func (b *Backend) Xor(a, c backend.Var, y backend.Var) {
	b.xor(b.lit(a), b.lit(c), b.lit(y))
}

func (b *Backend) xor(la, lb, ly z.Lit) {
	b.clause(la.Not(), lb.Not(), ly.Not())
	b.clause(la, lb, ly.Not())
	b.clause(la, lb.Not(), ly)
	b.clause(la.Not(), lb, ly)
}

// AddSum asserts s = a XOR b XOR cIn, via an internal literal not
// tracked in the Var map — the caller never needs to address the
// half-sum directly.
func (b *Backend) AddSum(a, c, cIn, s backend.Var) {
	la, lb, lc, ls := b.lit(a), b.lit(c), b.lit(cIn), b.lit(s)
	half := b.g.Lit()
	b.xor(la, lb, half)
	b.xor(half, lc, ls)
}

// AddCarry asserts cOut = majority(a, b, cIn) via the standard
// 6-clause majority-gate encoding.
func (b *Backend) AddCarry(a, c, cIn, cOut backend.Var) {
	la, lb, lc, lo := b.lit(a), b.lit(c), b.lit(cIn), b.lit(cOut)
	b.clause(la.Not(), lb.Not(), lo)
	b.clause(la.Not(), lc.Not(), lo)
	b.clause(lb.Not(), lc.Not(), lo)
	b.clause(la, lb, lo.Not())
	b.clause(la, lc, lo.Not())
	b.clause(lb, lc, lo.Not())
}

func (b *Backend) Check() (sat bool, timedOut bool) {
	if b.timeout <= 0 {
		return b.g.Solve() == 1, false
	}
	switch b.g.Try(b.timeout) {
	case 1:
		return true, false
	case -1:
		return false, false
	default:
		return false, true
	}
}

func (b *Backend) Value(v backend.Var) int {
	if b.g.Value(b.lit(v)) {
		return 1
	}
	return 0
}

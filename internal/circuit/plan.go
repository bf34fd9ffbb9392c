// Package circuit implements the parametric adder-graph data model for
// single-constant multiplication: bit-width planning, the per-node
// variable allocator, and the gate-level constraint emitter.
package circuit

import "fmt"

// Plan holds the scalar configuration derived from a target constant:
// the odd core constant C, the bits stripped to reach it, and the
// word/shift widths every node's variables are sized against.
type Plan struct {
	C           uint64 // odd, >= 1
	OutputShift uint   // bits stripped from the raw constant
	WordSize    int    // w: bits per node value
	ShiftWord   int    // s: bits per shift-amount field
	MaxShift    int    // largest legal shift amount, equal to WordSize
	Trivial     bool   // true when C == 1: zero-adder solution
}

// log2Cache memoizes ceil/floor log2 in fixed arrays, per spec: both are
// hot inside allocation and emission loops and bounded by the word
// width, so a dynamic map would be the wrong tool.
type log2Cache struct {
	ceil []int
	flr  []int
}

func newLog2Cache(maxN int) *log2Cache {
	if maxN < 1 {
		maxN = 1
	}
	c := &log2Cache{
		ceil: make([]int, maxN+1),
		flr:  make([]int, maxN+1),
	}
	c.ceil[0] = -1
	c.flr[0] = -1
	// bit-by-bit fill; values beyond n=1 are computed incrementally so
	// there is no float/log dependency in the hot path.
	flr := 0
	nextPow := 2
	for n := 1; n <= maxN; n++ {
		if n == nextPow {
			flr++
			nextPow <<= 1
		}
		c.flr[n] = flr
		if n == 1 {
			c.ceil[n] = 0
		} else if 1<<flr == n {
			c.ceil[n] = flr
		} else {
			c.ceil[n] = flr + 1
		}
	}
	return c
}

func (c *log2Cache) CeilLog2(n int) int {
	if n >= 0 && n < len(c.ceil) {
		return c.ceil[n]
	}
	return ceilLog2Slow(n)
}

func (c *log2Cache) FloorLog2(n int) int {
	if n >= 0 && n < len(c.flr) {
		return c.flr[n]
	}
	return floorLog2Slow(n)
}

func ceilLog2Slow(n int) int {
	if n <= 0 {
		return -1
	}
	v := 0
	p := 1
	for p < n {
		p <<= 1
		v++
	}
	return v
}

func floorLog2Slow(n int) int {
	if n <= 0 {
		return -1
	}
	v := 0
	for n > 1 {
		n >>= 1
		v++
	}
	return v
}

// NewPlan strips trailing zeros from cRaw to recover the odd core
// constant and derives the operating word width. cRaw must be >= 1.
func NewPlan(cRaw uint64) (Plan, error) {
	if cRaw == 0 {
		return Plan{}, fmt.Errorf("circuit: C_raw must be positive, got 0")
	}
	c := cRaw
	var shift uint
	for c&1 == 0 {
		c >>= 1
		shift++
	}
	p := Plan{C: c, OutputShift: shift}
	if c == 1 {
		p.Trivial = true
		p.WordSize = 1
		p.MaxShift = 1
		p.ShiftWord = 1
		return p, nil
	}
	// MaxShift+1 is at most 66 for a 64-bit C; CeilLog2(C) beyond the
	// array takes the slow path.
	cache := newLog2Cache(66)
	p.WordSize = cache.CeilLog2(int(c)) + 1
	p.MaxShift = p.WordSize
	p.ShiftWord = cache.CeilLog2(p.MaxShift + 1)
	return p, nil
}

// Raw reconstructs the original constant C_raw = C * 2^OutputShift.
func (p Plan) Raw() uint64 {
	return p.C << p.OutputShift
}

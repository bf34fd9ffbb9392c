// Package backend defines the abstract solver capability the circuit
// core is built against. No component above this package assumes a
// particular encoding or solver; concrete implementations live in
// backend/gini (a real SAT solver) and backend/bruteforce (a reference
// implementation used for cross-checking in tests).
package backend

// Var is an opaque variable handle. The allocator assigns these
// monotonically starting at 1 and they must be preserved verbatim
// across every call below.
type Var int

// Backend is the capability the circuit core emits constraints
// against, mirroring spec §4.6 one method per row.
type Backend interface {
	// Reset discards all previously declared variables and constraints.
	Reset()

	// NewVariable records the creation of variable v. May be a no-op
	// for backends that don't require explicit declaration.
	NewVariable(v Var)

	// ForceBit pins v to k (0 or 1).
	ForceBit(v Var, k int)

	// ForceNumber pins the LSB-first bit-vector vs to unsigned value k.
	ForceNumber(vs []Var, k uint64)

	// ForbidNumber disallows vs (LSB-first) from equalling k.
	ForbidNumber(vs []Var, k uint64)

	// Equivalence asserts x <-> y.
	Equivalence(x, y Var)

	// Mux asserts o = a when s=0, o = b when s=1.
	Mux(a, b, s, o Var)

	// Xor asserts y = a XOR b.
	Xor(a, b, y Var)

	// AddSum asserts s = a XOR b XOR cIn.
	AddSum(a, b, cIn, s Var)

	// AddCarry asserts cOut = majority(a, b, cIn).
	AddCarry(a, b, cIn, cOut Var)

	// Check runs the solver under the backend's configured timeout.
	// sat is only meaningful when timedOut is false.
	Check() (sat bool, timedOut bool)

	// Value reads back a satisfying assignment for v. Only valid after
	// a Check that returned sat=true.
	Value(v Var) int
}

// MissingCapabilityError is returned (or, for truly unimplementable
// capabilities, should be the payload of a panic) when a backend is
// asked to do something it was never built to do. Concrete backends in
// this repository implement every method, so this exists mainly as a
// documented failure mode for third-party backends.
type MissingCapabilityError struct {
	Backend    string
	Capability string
}

func (e *MissingCapabilityError) Error() string {
	return "backend " + e.Backend + ": capability not implemented: " + e.Capability
}

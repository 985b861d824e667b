package rng

import "testing"

// PCG64 with the same seed and increment must replay identically.
func TestPCG64Deterministic(t *testing.T) {
	a := NewPCG64(42, 7)
	b := NewPCG64(42, 7)
	for i := 0; i < 64; i++ {
		av, bv := a.Uint64(), b.Uint64()
		if av != bv {
			t.Fatalf("draw %d diverged: %d vs %d", i, av, bv)
		}
	}
}

// Different increments must decorrelate the output sequence even from the
// same seed, since each stream's increment is derived from its namespace and
// seed.
func TestPCG64DifferentIncrementDiffers(t *testing.T) {
	a := NewPCG64(42, 7)
	b := NewPCG64(42, 9)
	same := 0
	for i := 0; i < 32; i++ {
		if a.Uint64() == b.Uint64() {
			same++
		}
	}
	if same > 1 {
		t.Fatalf("streams with different increments agreed on %d/32 draws", same)
	}
}

// Float64 must stay within the documented [0, 1) range over many draws.
func TestPCG64Float64InRange(t *testing.T) {
	gen := NewPCG64(1, 3)
	for i := 0; i < 10000; i++ {
		v := gen.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("draw %d out of [0,1): %v", i, v)
		}
	}
}

// UniformSigned must stay within the documented [-1, 1) range.
func TestPCG64UniformSignedInRange(t *testing.T) {
	gen := NewPCG64(2, 5)
	for i := 0; i < 10000; i++ {
		v := gen.UniformSigned()
		if v < -1 || v >= 1 {
			t.Fatalf("draw %d out of [-1,1): %v", i, v)
		}
	}
}

// IntRange must always land within [lo, hi] inclusive, including the
// degenerate case where lo == hi.
func TestPCG64IntRangeBounds(t *testing.T) {
	gen := NewPCG64(3, 11)
	for i := 0; i < 1000; i++ {
		v := gen.IntRange(5, 9)
		if v < 5 || v > 9 {
			t.Fatalf("draw %d out of [5,9]: %d", i, v)
		}
	}
	if v := gen.IntRange(4, 4); v != 4 {
		t.Fatalf("degenerate IntRange(4,4) = %d, want 4", v)
	}
}

// Forking the same key from the same parent stream must always yield the
// same child, independent of what other forks were taken first.
func TestStreamForkDeterministic(t *testing.T) {
	root := NewRootStream(123)
	a, err := root.Fork("mask")
	if err != nil {
		t.Fatalf("Fork: %v", err)
	}
	_, err = root.Fork("tectonics")
	if err != nil {
		t.Fatalf("Fork: %v", err)
	}
	b, err := root.Fork("mask")
	if err != nil {
		t.Fatalf("Fork: %v", err)
	}
	if a.Seed != b.Seed {
		t.Fatalf("fork(\"mask\") not order-independent: %d vs %d", a.Seed, b.Seed)
	}
}

// Distinct fork keys from the same parent must produce distinct streams.
func TestStreamForkKeysDiffer(t *testing.T) {
	root := NewRootStream(123)
	a := root.MustFork("mask")
	b := root.MustFork("tectonics")
	if a.Seed == b.Seed {
		t.Fatalf("fork(\"mask\") and fork(\"tectonics\") produced the same seed %d", a.Seed)
	}
}

// Forking with an empty key must be rejected.
func TestStreamForkRejectsEmptyKey(t *testing.T) {
	root := NewRootStream(123)
	if _, err := root.Fork(""); err == nil {
		t.Fatalf("expected error forking with empty key")
	}
}

// Two root streams built from the same seed hash must fork identically.
func TestNewRootStreamDeterministic(t *testing.T) {
	a := NewRootStream(999).MustFork("heightfield")
	b := NewRootStream(999).MustFork("heightfield")
	if a.Seed != b.Seed || a.Namespace != b.Namespace {
		t.Fatalf("root streams from the same seed hash forked differently: %+v vs %+v", a, b)
	}
}

// Generator draws from a fork must be deterministic across two independently
// built Stream values with identical seed and namespace.
func TestStreamGeneratorDeterministic(t *testing.T) {
	a := NewRootStream(55).MustFork("rivers").Generator()
	b := NewRootStream(55).MustFork("rivers").Generator()
	for i := 0; i < 16; i++ {
		av, bv := a.Uint64(), b.Uint64()
		if av != bv {
			t.Fatalf("generator draw %d diverged: %d vs %d", i, av, bv)
		}
	}
}

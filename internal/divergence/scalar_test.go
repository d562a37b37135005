// Copyright (c) 2024 The cbtree Authors
// SPDX-License-Identifier: MIT

package divergence

import "testing"

func TestScalarDivMonotonic(t *testing.T) {
	sc := Scalar[uint32]{}

	// A pair that diverges at a higher bit must produce a larger Div.
	hi := sc.Div(0b1000_0000, 0b0000_0000)
	lo := sc.Div(0b0000_0011, 0b0000_0010)

	if !sc.Earlier(hi, lo) {
		t.Fatalf("expected %d to be earlier-diverging than %d", hi, lo)
	}
}

func TestScalarDivIdentical(t *testing.T) {
	sc := Scalar[uint64]{}
	if d := sc.Div(42, 42); d != 0 {
		t.Fatalf("Div(a,a) = %d, want 0", d)
	}
}

func TestScalarCmp(t *testing.T) {
	sc := Scalar[uint32]{}
	if sc.Cmp(1, 2) >= 0 {
		t.Fatal("Cmp(1,2) should be negative")
	}
	if sc.Cmp(2, 1) <= 0 {
		t.Fatal("Cmp(2,1) should be positive")
	}
	if sc.Cmp(5, 5) != 0 {
		t.Fatal("Cmp(5,5) should be 0")
	}
}

func TestScalarInitialNeverEarlier(t *testing.T) {
	sc := Scalar[uint64]{}
	initial := sc.Initial()
	for _, v := range []uint64{0, 1, 1 << 63, ^uint64(0) - 1} {
		if sc.Earlier(v, initial) {
			t.Fatalf("Div value %d should never be earlier-diverging than Initial", v)
		}
	}
}

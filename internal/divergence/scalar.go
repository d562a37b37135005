// Copyright (c) 2024 The cbtree Authors
// SPDX-License-Identifier: MIT

// Package divergence implements the key primitives the descent engine
// needs for every key flavor: a divergence measure that tracks the
// position of the highest differing bit between two keys, and a
// three-way ordering used once at descent exit.
package divergence

// Unsigned is the set of scalar key representations: u32 and u64 keys
// store their value directly; addr keys reuse a node's own address,
// which is carried around as a uintptr.
type Unsigned interface {
	~uint32 | ~uint64 | ~uintptr
}

// Scalar supplies the divergence and ordering primitives for any
// fixed-width unsigned key; the u32, u64 and addr flavors wrap it in
// their own walk.Ops implementations. The
// divergence measure is the XOR of the two keys: the highest set bit of
// a^b is exactly the highest bit at which a and b differ, so a larger
// XOR value means the two keys diverge at a higher (earlier) bit.
type Scalar[T Unsigned] struct{}

// Div returns the XOR of a and b. Larger is earlier-diverging.
func (Scalar[T]) Div(a, b T) T {
	return a ^ b
}

// Earlier reports whether cur diverges at a higher bit than pdiv.
func (Scalar[T]) Earlier(cur, pdiv T) bool {
	return cur > pdiv
}

// Initial is the sentinel pdiv fed to the first iteration of a descent:
// the maximal value, so that no real divergence can look "earlier" than
// it and the role-transition check never fires on the root visit.
func (Scalar[T]) Initial() T {
	return ^T(0)
}

// Cmp is the plain three-way compare used at descent exit.
func (Scalar[T]) Cmp(k, p T) int {
	switch {
	case k < p:
		return -1
	case k > p:
		return 1
	default:
		return 0
	}
}

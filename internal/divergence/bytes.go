// Copyright (c) 2024 The cbtree Authors
// SPDX-License-Identifier: MIT

package divergence

import (
	"bytes"
	"math"
	"math/bits"
	"strings"
)

// Infinite is the sentinel divergence value for two byte sequences (or
// strings) that agree on their full content, including the logical
// terminator. It signals "exact match so far" without yet proving the
// two keys are the same node's key — the descent must still reach a
// leaf to locate it.
const Infinite = math.MaxInt

// byteSeq admits both key representations the prefix scan serves, so
// string keys are never copied into a throwaway slice per comparison.
type byteSeq interface {
	~string | ~[]byte
}

// commonPrefixBits returns the bit-length of the common prefix of a and
// b. When terminated is set, any byte beyond either sequence's length
// acts as a logical terminator (0x00), so a short key and a longer key
// that extends it still diverge at a well-defined bit position, exactly
// the way two NUL-terminated C strings would. When it is not set, a
// shared prefix of unequal-length inputs reports Infinite.
func commonPrefixBits[T byteSeq](a, b T, terminated bool) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i*8 + bits.LeadingZeros8(a[i]^b[i])
		}
	}

	if len(a) == len(b) {
		return Infinite
	}

	if !terminated {
		// Fixed-length blocks are always compared over their full,
		// uniform length, so equal-length inputs are the only way to
		// reach here; unequal lengths cannot occur for a single tree.
		return Infinite
	}

	// One key is a proper prefix of the other; the shorter one's
	// implicit terminator (0x00) diverges from the longer one's next
	// byte, which is non-zero by the no-embedded-NUL assumption.
	var next byte
	if len(a) > n {
		next = a[n]
	} else {
		next = b[n]
	}
	return n*8 + bits.LeadingZeros8(next)
}

// Normalize maps a byte/string divergence value (larger = later-
// diverging) to the walk engine's uint64 convention (larger = earlier-
// diverging), the polarity flip walk.Ops requires of every flavor. Real
// bit-length values are always far smaller than math.MaxUint64, so the
// subtraction never wraps; Infinite maps to 0, the smallest possible
// normalized value, since an exact match is the latest divergence there
// is.
func Normalize(d int) uint64 {
	if d == Infinite {
		return 0
	}
	return math.MaxUint64 - uint64(d)
}

// Block supplies the raw divergence and ordering primitives for
// fixed-length byte-block keys (mb/im flavors); those flavors wrap Div
// with Normalize in their own walk.Ops implementations. Every key in a
// given tree shares the same uniform length.
type Block struct{}

func (Block) Div(a, b []byte) int {
	return commonPrefixBits(a, b, false)
}

// Earlier reports whether cur diverges at an earlier bit than pdiv (a
// shorter common prefix diverges earlier, at a higher-order bit).
func (Block) Earlier(cur, pdiv int) bool {
	return cur < pdiv
}

func (Block) Initial() int {
	return 0
}

func (Block) Cmp(k, p []byte) int {
	return bytes.Compare(k, p)
}

// CString supplies the raw divergence and ordering primitives for
// NUL-terminated string keys (st/is flavors), which wrap Div with
// Normalize in their own walk.Ops implementations. It uses a Go string
// as a safe stand-in for a C string: it is
// never read past its own length, and any position beyond that length
// behaves as the implicit terminator byte.
type CString struct{}

func (CString) Div(a, b string) int {
	return commonPrefixBits(a, b, true)
}

func (CString) Earlier(cur, pdiv int) bool {
	return cur < pdiv
}

func (CString) Initial() int {
	return 0
}

func (CString) Cmp(k, p string) int {
	return strings.Compare(k, p)
}

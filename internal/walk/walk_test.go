// Copyright (c) 2024 The cbtree Authors
// SPDX-License-Identifier: MIT

package walk

import (
	"testing"
)

// u32ops is a minimal Ops[uint32] used only to exercise the engine
// directly, independent of any flavor package.
type u32ops struct{}

func (u32ops) Div(a, b uint32) uint64 { return uint64(a ^ b) }

func (u32ops) Cmp(a, b uint32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (u32ops) Initial() uint64 { return ^uint64(0) }

func newNode(key uint32) *Node[uint32] {
	return &Node[uint32]{Key: key}
}

func insertAll(t *testing.T, root **Node[uint32], keys ...uint32) map[uint32]*Node[uint32] {
	t.Helper()
	nodes := make(map[uint32]*Node[uint32], len(keys))
	for _, k := range keys {
		n := newNode(k)
		got := Insert(root, n, u32ops{})
		if got != n {
			t.Fatalf("insert(%d): expected new node, got existing", k)
		}
		nodes[k] = n
	}
	return nodes
}

func TestSingletonPromotion(t *testing.T) {
	var root *Node[uint32]
	n := newNode(42)
	got := Insert(&root, n, u32ops{})
	if got != n {
		t.Fatal("insert into empty tree should return the inserted node")
	}
	if n.Branch[0] != n || n.Branch[1] != n {
		t.Fatal("singleton node must self-loop on both branches")
	}
	if Lookup(&root, uint32(42), u32ops{}) != n {
		t.Fatal("lookup of the only key must find it")
	}
	if First(&root, u32ops{}) != n || Last(&root, u32ops{}) != n {
		t.Fatal("first and last of a singleton tree must both be the sole node")
	}
}

func Test2_4_6_4(t *testing.T) {
	var root *Node[uint32]
	nodes := insertAll(t, &root, 2, 4, 6)

	dup := newNode(4)
	got := Insert(&root, dup, u32ops{})
	if got != nodes[4] {
		t.Fatal("inserting a duplicate key must return the existing node")
	}
	if dup.Branch[0] != nil {
		t.Fatal("a rejected duplicate must not be linked in")
	}

	if Lookup(&root, uint32(5), u32ops{}) != nil {
		t.Fatal("lookup(5) should miss")
	}
	if got := LookupGE(&root, uint32(5), u32ops{}); got != nodes[6] {
		t.Fatalf("lookup_ge(5) = %v, want node(6)", keyOrNil(got))
	}
	if got := LookupLE(&root, uint32(5), u32ops{}); got != nodes[4] {
		t.Fatalf("lookup_le(5) = %v, want node(4)", keyOrNil(got))
	}
	if got := Next(&root, nodes[2], u32ops{}); got != nodes[4] {
		t.Fatalf("next(2) = %v, want node(4)", keyOrNil(got))
	}
	if got := Next(&root, nodes[6], u32ops{}); got != nil {
		t.Fatalf("next(6) = %v, want nil", keyOrNil(got))
	}
}

func TestDeleteAndReinsertSplitNode(t *testing.T) {
	var root *Node[uint32]
	nodes := insertAll(t, &root, 1, 2, 3, 4, 10, 11)

	removed := Delete(&root, nodes[4], u32ops{})
	if removed != nodes[4] {
		t.Fatal("delete(4) should return the node")
	}
	if Lookup(&root, uint32(4), u32ops{}) != nil {
		t.Fatal("4 should be gone after delete")
	}
	for _, k := range []uint32{1, 2, 3, 10, 11} {
		if Lookup(&root, k, u32ops{}) == nil {
			t.Fatalf("%d should still be present after deleting 4", k)
		}
	}

	reinserted := newNode(4)
	got := Insert(&root, reinserted, u32ops{})
	if got != reinserted {
		t.Fatal("reinsert of 4 should succeed as a new node")
	}
	if Lookup(&root, uint32(4), u32ops{}) != reinserted {
		t.Fatal("lookup(4) should find the reinserted node")
	}
}

func TestDeleteIdempotent(t *testing.T) {
	var root *Node[uint32]
	nodes := insertAll(t, &root, 1, 2, 3)

	first := Delete(&root, nodes[2], u32ops{})
	if first != nodes[2] {
		t.Fatal("first delete should return the node")
	}
	second := Delete(&root, nodes[2], u32ops{})
	if second != nil {
		t.Fatal("second delete of the same node should return nil")
	}
}

func TestFirstNextTraversalOrder(t *testing.T) {
	var root *Node[uint32]
	keys := []uint32{50, 10, 30, 5, 90, 20, 1}
	insertAll(t, &root, keys...)

	var got []uint32
	n := First(&root, u32ops{})
	for n != nil {
		got = append(got, n.Key)
		n = Next(&root, n, u32ops{})
	}

	want := []uint32{1, 5, 10, 20, 30, 50, 90}
	if len(got) != len(want) {
		t.Fatalf("traversal visited %d nodes, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("traversal order = %v, want %v", got, want)
		}
	}
}

func TestRangeLookupOutsideSharedPrefix(t *testing.T) {
	// 4 and 5 share every bit above the lowest; probes diverging above
	// that whole group must resolve to the group's extremes.
	var root *Node[uint32]
	nodes := insertAll(t, &root, 4, 5)

	if got := LookupGE(&root, uint32(2), u32ops{}); got != nodes[4] {
		t.Fatalf("lookup_ge(2) = %v, want node(4)", keyOrNil(got))
	}
	if got := LookupGT(&root, uint32(2), u32ops{}); got != nodes[4] {
		t.Fatalf("lookup_gt(2) = %v, want node(4)", keyOrNil(got))
	}
	if got := LookupLE(&root, uint32(10), u32ops{}); got != nodes[5] {
		t.Fatalf("lookup_le(10) = %v, want node(5)", keyOrNil(got))
	}
	if got := LookupLT(&root, uint32(10), u32ops{}); got != nodes[5] {
		t.Fatalf("lookup_lt(10) = %v, want node(5)", keyOrNil(got))
	}
	if LookupLE(&root, uint32(2), u32ops{}) != nil {
		t.Fatal("lookup_le(2) below every key should be nil")
	}
	if LookupGE(&root, uint32(10), u32ops{}) != nil {
		t.Fatal("lookup_ge(10) above every key should be nil")
	}
}

func TestLastPrevTraversalOrder(t *testing.T) {
	var root *Node[uint32]
	keys := []uint32{50, 10, 30, 5, 90, 20, 1}
	insertAll(t, &root, keys...)

	var got []uint32
	n := Last(&root, u32ops{})
	for n != nil {
		got = append(got, n.Key)
		n = Prev(&root, n, u32ops{})
	}

	want := []uint32{90, 50, 30, 20, 10, 5, 1}
	if len(got) != len(want) {
		t.Fatalf("traversal visited %d nodes, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("traversal order = %v, want %v", got, want)
		}
	}
}

func TestSingletonRangeEdges(t *testing.T) {
	var root *Node[uint32]
	insertAll(t, &root, 100)

	if LookupGE(&root, uint32(200), u32ops{}) != nil {
		t.Fatal("lookup_ge above the only key should be nil")
	}
	if LookupGT(&root, uint32(200), u32ops{}) != nil {
		t.Fatal("lookup_gt above the only key should be nil")
	}
	if LookupLE(&root, uint32(10), u32ops{}) != nil {
		t.Fatal("lookup_le below the only key should be nil")
	}
	if LookupLT(&root, uint32(10), u32ops{}) != nil {
		t.Fatal("lookup_lt below the only key should be nil")
	}
}

// checkSplitMonotonic re-derives roles the way the engine does — a
// nodeless leaf by equal branches, a leaf-role edge by a divergence
// increase — and asserts the divergence of sibling branches strictly
// decreases on every genuine downward step.
func checkSplitMonotonic(t *testing.T, p *Node[uint32], pdiv uint64) {
	t.Helper()
	ops := u32ops{}

	l, r := p.Branch[0], p.Branch[1]
	if l == r {
		return
	}
	cur := ops.Div(l.Key, r.Key)
	if cur >= pdiv {
		t.Fatalf("split divergence %d at node %d is not below its parent's %d", cur, p.Key, pdiv)
	}

	for _, child := range p.Branch {
		if child == p {
			continue // own leaf role
		}
		cl, cr := child.Branch[0], child.Branch[1]
		if cl != cr && ops.Div(cl.Key, cr.Key) > cur {
			continue // leaf-role edge back up to an ancestor
		}
		checkSplitMonotonic(t, child, cur)
	}
}

func TestSplitBitMonotonicityUnderChurn(t *testing.T) {
	var root *Node[uint32]
	nodes := map[uint32]*Node[uint32]{}

	// Deterministic churn: a simple LCG drives interleaved inserts and
	// deletes, with the structural check after every mutation.
	state := uint32(12345)
	for i := 0; i < 2000; i++ {
		state = state*1664525 + 1013904223
		key := state >> 22

		if n, ok := nodes[key]; ok {
			if Delete(&root, n, u32ops{}) != n {
				t.Fatalf("delete(%d) missed a present key", key)
			}
			delete(nodes, key)
		} else {
			n := newNode(key)
			if Insert(&root, n, u32ops{}) != n {
				t.Fatalf("insert(%d) collided with a missing key", key)
			}
			nodes[key] = n
		}

		if root != nil {
			checkSplitMonotonic(t, root, ^uint64(0))
		}
	}
}

func keyOrNil(n *Node[uint32]) any {
	if n == nil {
		return nil
	}
	return n.Key
}

// Copyright (c) 2024 The cbtree Authors
// SPDX-License-Identifier: MIT

// Package walk implements the single descent engine shared by every key
// flavor: one parameterized traversal that serves lookup, insertion
// preparation, deletion preparation, predecessor/successor and range
// queries, all by varying a Method value and reading a subset of the
// fields on the returned Result.
//
// The engine never looks at a key's bits directly; it only compares
// Ops.Div outputs against each other and against the previous one, which
// is what lets one piece of code serve scalar, byte-block and string
// keys alike.
package walk

// Node is the intrusive two-branch node shared by every flavor. A node
// carries no parent pointer, no stored split bit and no role flag: which
// of the two logical roles (internal router or key-bearing leaf) a
// visit is acting in is inferred structurally during descent.
type Node[K any] struct {
	Branch [2]*Node[K]
	Key    K
}

// Method selects the traversal the engine performs.
type Method uint8

const (
	FST Method = iota // leftmost
	LST               // rightmost
	KEQ               // locate key
	KGE               // smallest key >= key
	KGT               // smallest key > key
	KLE               // largest key <= key
	KLT               // largest key < key
	KNX               // locate key, remember fork for a following NXT
	KPR               // locate key, remember fork for a following PRV
	NXT               // continue from a fork, ascending
	PRV               // continue from a fork, descending
)

// Ops abstracts a key flavor's divergence measure and ordering. Div must
// be normalized so that a larger value always means "diverges at an
// earlier (higher-order) bit", regardless of the flavor's native
// polarity; internal/divergence's byte/string helpers are inverted by
// the caller before being handed to Div's implementation. Initial is the
// sentinel pdiv fed to the first iteration of a descent: it must compare
// as earlier-diverging than no real Div value can, so the role-transition
// check never misfires on the root visit.
type Ops[K any] interface {
	Div(a, b K) uint64
	Cmp(a, b K) int
	Initial() uint64
}

// Result carries every side-output a descent can produce; callers read
// only the fields their operation needs, the rest are simply ignored.
type Result[K any] struct {
	Reached *Node[K]  // the node the descent landed on, or nil
	Root    **Node[K] // slot a new leaf would be written to
	NSide   uint8     // side a new leaf would occupy at Root's occupant

	LParent *Node[K] // node whose branch references Reached in its leaf role
	LPSide  uint8

	NParent *Node[K] // node whose branch references Reached in its node role
	NPSide  uint8

	GParent *Node[K] // node above LParent
	GPSide  uint8

	Fork *Node[K] // last node where the descent turned opposite of NXT/PRV
}

// Walk is the single parameterized traversal described in the loop
// invariants: at each step it detects role transitions by watching
// whether the divergence of the current node's two branches ever
// increases (earlier-diverging) relative to the previous step, which can
// only happen if the "node" just reached is really an ancestor being
// revisited in its leaf role.
func Walk[K any](root **Node[K], method Method, key K, ops Ops[K]) Result[K] {
	res := Result[K]{Root: root}

	p := *root
	if p == nil {
		return res
	}

	slot := root
	pdiv := ops.Initial()

	var anc1, anc2 *Node[K]
	var anc1side, anc2side uint8

	// The key-directed descent steps into the key's own node at most
	// twice: first entering its node role, later entering its leaf role.
	// Only the first of those edges identifies NParent, so it is latched
	// once (chosen-side divergence of zero means the chosen child carries
	// the search key itself) and compared against the final edge at exit.
	var npcand *Node[K]
	var npcandSide uint8
	var npseen bool

	first := true
	mismatch := false

loop:
	for {
		l, r := p.Branch[0], p.Branch[1]

		if l == r {
			// p is a nodeless leaf: either the whole tree (no ancestor
			// recorded yet) or a standalone leaf never promoted to a
			// router, hanging off anc1.
			res.Root = slot
			if anc1 == nil {
				res.LParent, res.NParent = p, p
			} else {
				res.LParent, res.LPSide = anc1, anc1side
				res.NParent, res.NPSide = anc1, anc1side
				res.GParent, res.GPSide = anc2, anc2side
			}
			break loop
		}

		cur := ops.Div(l.Key, r.Key)
		if cur > pdiv {
			// Role transition: split divergence strictly decreases on
			// every genuine downward step, so an increase means the
			// edge just followed led back up to an ancestor, reached
			// now in its leaf role.
			res.Root = slot
			res.LParent, res.LPSide = anc1, anc1side
			res.GParent, res.GPSide = anc2, anc2side
			if npseen && (npcand != anc1 || npcandSide != anc1side) {
				res.NParent, res.NPSide = npcand, npcandSide
			}
			// Otherwise the only edge into p was this leaf-role one, so
			// p's node role is the tree root and NParent stays nil.
			break loop
		}

		var chosen uint8
		switch method {
		case FST:
			chosen = 0
		case LST:
			chosen = 1
		case NXT:
			if first {
				chosen = 1
			} else {
				chosen = 0
			}
		case PRV:
			if first {
				chosen = 0
			} else {
				chosen = 1
			}
		default:
			dl := ops.Div(key, l.Key)
			dr := ops.Div(key, r.Key)
			if dl > cur && dr > cur {
				// Key disagrees with both branches above the split bit:
				// it is not present below p.
				mismatch = true
				res.Root = slot
				res.LParent, res.LPSide = anc1, anc1side
				res.NParent, res.NPSide = anc1, anc1side
				res.GParent, res.GPSide = anc2, anc2side
				break loop
			}
			if dl <= dr {
				chosen = 0
			} else {
				chosen = 1
			}
			switch method {
			case KGE, KGT, KNX:
				if chosen == 0 {
					res.Fork = p
				}
			case KLE, KLT, KPR:
				if chosen == 1 {
					res.Fork = p
				}
			}

			dk := dl
			if chosen == 1 {
				dk = dr
			}
			if dk == 0 && !npseen {
				// Zero divergence: the chosen child carries the search
				// key itself, and this is the first edge into it, i.e.
				// the entry to its node role.
				npcand, npcandSide, npseen = p, chosen, true
			}
		}

		child := p.Branch[chosen]
		if child == p {
			// p's chosen branch is its own leaf role: node and leaf
			// coincide at this visit, and the slot a new leaf would take
			// is that self-branch, not the one holding p.
			res.Root = &p.Branch[chosen]
			res.LParent, res.LPSide = p, chosen
			res.NParent, res.NPSide = anc1, anc1side
			res.GParent, res.GPSide = anc1, anc1side
			break loop
		}

		anc2, anc2side = anc1, anc1side
		anc1, anc1side = p, chosen
		slot = &p.Branch[chosen]
		pdiv = cur
		p = child
		first = false
	}

	finalize(&res, method, p, key, ops, mismatch)
	return res
}

// finalize performs the one final three-way compare the loop invariants
// describe and maps it to the method's exit rule.
func finalize[K any](res *Result[K], method Method, p *Node[K], key K, ops Ops[K], mismatch bool) {
	switch method {
	case FST, LST, NXT, PRV:
		res.Reached = p
		return
	}

	sign := ops.Cmp(key, p.Key)
	if sign > 0 {
		res.NSide = 1
	} else {
		res.NSide = 0
	}

	switch method {
	case KEQ, KNX, KPR:
		if sign == 0 {
			res.Reached = p
		}
	case KGE:
		if sign <= 0 {
			res.Reached = p
		}
	case KGT:
		if sign < 0 {
			res.Reached = p
		}
	case KLE:
		if sign >= 0 {
			res.Reached = p
		}
	case KLT:
		if sign > 0 {
			res.Reached = p
		}
	}

	if mismatch && res.Reached != nil {
		// The key diverges above this whole subtree, so every member
		// compares against it the same way and the range answer is the
		// subtree's extreme, not whichever member the descent stopped
		// on. One more keyless descent from the mismatch slot finds it.
		switch method {
		case KGE, KGT:
			res.Reached = Walk(res.Root, FST, key, ops).Reached
		case KLE, KLT:
			res.Reached = Walk(res.Root, LST, key, ops).Reached
		}
	}
}

// Insert places n into the tree keyed by its embedded key. It returns n
// on success, or the pre-existing node that already carried that key.
func Insert[K any](root **Node[K], n *Node[K], ops Ops[K]) *Node[K] {
	if *root == nil {
		n.Branch[0], n.Branch[1] = n, n
		*root = n
		return n
	}

	res := Walk(root, KEQ, n.Key, ops)
	if res.Reached != nil {
		return res.Reached
	}

	parent := *res.Root
	if res.NSide == 1 {
		n.Branch[1] = n
		n.Branch[0] = parent
	} else {
		n.Branch[0] = n
		n.Branch[1] = parent
	}
	*res.Root = n
	return n
}

// Delete removes n from the tree if it is still linked (Branch[0] !=
// nil) and currently reachable under its own key, returning n. It
// returns nil if n was already detached or is not the node the tree
// holds for that key.
func Delete[K any](root **Node[K], n *Node[K], ops Ops[K]) *Node[K] {
	if n.Branch[0] == nil {
		return nil
	}
	res := Walk(root, KEQ, n.Key, ops)
	if res.Reached != n {
		return nil
	}
	unlink(root, res)
	return n
}

// Pick removes the node keyed by key, if present, and returns it
// detached for the caller to free.
func Pick[K any](root **Node[K], key K, ops Ops[K]) *Node[K] {
	if *root == nil {
		return nil
	}
	res := Walk(root, KEQ, key, ops)
	if res.Reached == nil {
		return nil
	}
	unlink(root, res)
	return res.Reached
}

// unlink performs the four structural deletion cases. See Result's field
// comments for what each ancestor pair means; the cases below are
// distinguished purely from ret's own branches and LParent's identity,
// never from a stored tag.
func unlink[K any](root **Node[K], res Result[K]) {
	ret := res.Reached

	switch {
	case ret.Branch[0] == ret.Branch[1]:
		if *root == ret {
			// The whole tree was this one node.
			*root = nil
		} else {
			// ret is a nodeless leaf that never gained a node role. Its
			// leaf-parent gives up its router role and becomes a
			// nodeless leaf itself, still reachable through its own
			// leaf-role edge inside the sibling subtree, which the
			// grandparent lifts into the leaf-parent's old place.
			lp := res.LParent
			sibling := lp.Branch[1-res.LPSide]
			lp.Branch[0], lp.Branch[1] = lp, lp
			writeSlot(root, res.GParent, res.GPSide, sibling)
		}
	case res.LParent == ret:
		// Node and leaf roles collapsed at the same visit: the
		// grandparent simply takes ret's one real child.
		writeSlot(root, res.GParent, res.GPSide, res.LParent.Branch[1-res.LPSide])
	default:
		// Split node-and-leaf: ret's node role lives above its leaf
		// role. The grandparent lifts the sibling first, then the
		// leaf-parent is recycled to stand in for ret's node role. The
		// lift must come before the branch copy: when the grandparent
		// is ret itself, the recycled leaf-parent has to inherit the
		// already rewritten branch. NParent is nil when ret's node
		// role is the tree root.
		lp := res.LParent
		writeSlot(root, res.GParent, res.GPSide, lp.Branch[1-res.LPSide])
		lp.Branch[0] = ret.Branch[0]
		lp.Branch[1] = ret.Branch[1]
		writeSlot(root, res.NParent, res.NPSide, lp)
	}

	ret.Branch[0] = nil
}

func writeSlot[K any](root **Node[K], gparent *Node[K], gpside uint8, v *Node[K]) {
	if gparent == nil {
		*root = v
	} else {
		gparent.Branch[gpside] = v
	}
}

// Lookup returns the node keyed by key, or nil.
func Lookup[K any](root **Node[K], key K, ops Ops[K]) *Node[K] {
	return Walk(root, KEQ, key, ops).Reached
}

// First returns the smallest-keyed node, or nil if the tree is empty.
func First[K any](root **Node[K], ops Ops[K]) *Node[K] {
	var zero K
	return Walk(root, FST, zero, ops).Reached
}

// Last returns the largest-keyed node, or nil if the tree is empty.
func Last[K any](root **Node[K], ops Ops[K]) *Node[K] {
	var zero K
	return Walk(root, LST, zero, ops).Reached
}

// Next returns the node whose key immediately follows n's, or nil if n
// holds the largest key.
func Next[K any](root **Node[K], n *Node[K], ops Ops[K]) *Node[K] {
	res := Walk(root, KNX, n.Key, ops)
	if res.Fork == nil {
		return nil
	}
	fork := res.Fork
	return Walk(&fork, NXT, n.Key, ops).Reached
}

// Prev returns the node whose key immediately precedes n's, or nil if n
// holds the smallest key.
func Prev[K any](root **Node[K], n *Node[K], ops Ops[K]) *Node[K] {
	res := Walk(root, KPR, n.Key, ops)
	if res.Fork == nil {
		return nil
	}
	fork := res.Fork
	return Walk(&fork, PRV, n.Key, ops).Reached
}

// LookupGE returns the smallest node with key >= key, or nil.
func LookupGE[K any](root **Node[K], key K, ops Ops[K]) *Node[K] {
	res := Walk(root, KGE, key, ops)
	if res.Reached != nil {
		return res.Reached
	}
	if res.Fork == nil {
		return nil
	}
	fork := res.Fork
	return Walk(&fork, NXT, key, ops).Reached
}

// LookupGT returns the smallest node with key > key, or nil.
func LookupGT[K any](root **Node[K], key K, ops Ops[K]) *Node[K] {
	res := Walk(root, KGT, key, ops)
	if res.Reached != nil {
		return res.Reached
	}
	if res.Fork == nil {
		return nil
	}
	fork := res.Fork
	return Walk(&fork, NXT, key, ops).Reached
}

// LookupLE returns the largest node with key <= key, or nil.
func LookupLE[K any](root **Node[K], key K, ops Ops[K]) *Node[K] {
	res := Walk(root, KLE, key, ops)
	if res.Reached != nil {
		return res.Reached
	}
	if res.Fork == nil {
		return nil
	}
	fork := res.Fork
	return Walk(&fork, PRV, key, ops).Reached
}

// LookupLT returns the largest node with key < key, or nil.
func LookupLT[K any](root **Node[K], key K, ops Ops[K]) *Node[K] {
	res := Walk(root, KLT, key, ops)
	if res.Reached != nil {
		return res.Reached
	}
	if res.Fork == nil {
		return nil
	}
	fork := res.Fork
	return Walk(&fork, PRV, key, ops).Reached
}

// Copyright (c) 2024 The cbtree Authors
// SPDX-License-Identifier: MIT

// Package cbtree documents a family of compact binary trees — ordered,
// unique-key associative containers whose intrusive nodes carry only two
// branch references each, with no parent pointer, no balance or color
// field and no stored split-bit position.
//
// The container is a leaf-oriented radix/PATRICIA tree: every physical
// node is visited twice on a root-to-leaf descent, first in its "node"
// role (routing by one inferred bit of the key) and later in its "leaf"
// role (carrying the actual key). Which role a visit is acting in is
// never stored; it is inferred structurally by internal/walk from the
// monotonicity of a divergence measure between a node's two branches.
//
// internal/walk implements the single parameterized descent that serves
// lookup, insertion, deletion, predecessor/successor and range queries
// for every key flavor. internal/divergence supplies the per-flavor
// divergence and ordering primitives the engine compares. Seven thin
// adapter packages — u32, u64, addr, mb, im, st, is — specialize the
// engine to fixed-width integers, raw addresses, fixed-length byte
// blocks and NUL-terminated strings, each in direct or indirect storage
// as appropriate.
//
// The tree allocates nothing: callers own node and key memory, embed
// walk.Node[K] (via a flavor's Node alias) in their own structures, and
// are responsible for external synchronization if a tree is shared
// across goroutines.
package cbtree

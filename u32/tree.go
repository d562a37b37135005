// Copyright (c) 2024 The cbtree Authors
// SPDX-License-Identifier: MIT

// Package u32 adapts the shared descent engine to 32-bit unsigned
// integer keys stored directly in the node.
package u32

import (
	"github.com/gaissmai/cbtree/internal/divergence"
	"github.com/gaissmai/cbtree/internal/walk"
)

// Node is a tree node keyed directly by a uint32.
type Node = walk.Node[uint32]

type ops struct{}

var scalar = divergence.Scalar[uint32]{}

func (ops) Div(a, b uint32) uint64 { return uint64(scalar.Div(a, b)) }
func (ops) Cmp(a, b uint32) int    { return scalar.Cmp(a, b) }
func (ops) Initial() uint64        { return ^uint64(0) }

// Insert places n into the tree keyed by its embedded Key. It returns n
// on success, or the pre-existing node that already carried that key.
func Insert(root **Node, n *Node) *Node { return walk.Insert(root, n, ops{}) }

// Lookup returns the node keyed by key, or nil.
func Lookup(root **Node, key uint32) *Node { return walk.Lookup(root, key, ops{}) }

// LookupGE returns the smallest node with key >= key, or nil.
func LookupGE(root **Node, key uint32) *Node { return walk.LookupGE(root, key, ops{}) }

// LookupGT returns the smallest node with key > key, or nil.
func LookupGT(root **Node, key uint32) *Node { return walk.LookupGT(root, key, ops{}) }

// LookupLE returns the largest node with key <= key, or nil.
func LookupLE(root **Node, key uint32) *Node { return walk.LookupLE(root, key, ops{}) }

// LookupLT returns the largest node with key < key, or nil.
func LookupLT(root **Node, key uint32) *Node { return walk.LookupLT(root, key, ops{}) }

// First returns the smallest-keyed node, or nil if the tree is empty.
func First(root **Node) *Node { return walk.First(root, ops{}) }

// Last returns the largest-keyed node, or nil if the tree is empty.
func Last(root **Node) *Node { return walk.Last(root, ops{}) }

// Next returns the node immediately following n, or nil.
func Next(root **Node, n *Node) *Node { return walk.Next(root, n, ops{}) }

// Prev returns the node immediately preceding n, or nil.
func Prev(root **Node, n *Node) *Node { return walk.Prev(root, n, ops{}) }

// Delete removes n from the tree, returning n, or nil if n was already
// detached or no longer the node the tree holds for its key.
func Delete(root **Node, n *Node) *Node { return walk.Delete(root, n, ops{}) }

// Pick removes the node keyed by key, if present, and returns it
// detached for the caller to free.
func Pick(root **Node, key uint32) *Node { return walk.Pick(root, key, ops{}) }

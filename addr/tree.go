// Copyright (c) 2024 The cbtree Authors
// SPDX-License-Identifier: MIT

// Package addr adapts the shared descent engine to address-as-key mode:
// the key is the node's own address, never a separately stored field.
// Callers typically embed Node in a larger struct and recover it from
// unsafe.Pointer on lookup hits.
package addr

import (
	"unsafe"

	"github.com/gaissmai/cbtree/internal/divergence"
	"github.com/gaissmai/cbtree/internal/walk"
)

// Node is a tree node keyed by its own address. Key is maintained by
// this package; callers never set or read it directly.
type Node = walk.Node[uintptr]

type ops struct{}

var scalar = divergence.Scalar[uintptr]{}

func (ops) Div(a, b uintptr) uint64 { return uint64(scalar.Div(a, b)) }
func (ops) Cmp(a, b uintptr) int    { return scalar.Cmp(a, b) }
func (ops) Initial() uint64         { return ^uint64(0) }

// Of returns the key a node would be inserted or looked up under: its
// own address.
func Of(n *Node) uintptr { return uintptr(unsafe.Pointer(n)) }

// Insert places n into the tree keyed by its own address. It returns n
// on success, or the pre-existing node at that address (only possible if
// n was already inserted).
func Insert(root **Node, n *Node) *Node {
	n.Key = Of(n)
	return walk.Insert(root, n, ops{})
}

// Lookup returns the node whose address is key, or nil.
func Lookup(root **Node, key uintptr) *Node { return walk.Lookup(root, key, ops{}) }

// LookupGE returns the node with the smallest address >= key, or nil.
func LookupGE(root **Node, key uintptr) *Node { return walk.LookupGE(root, key, ops{}) }

// LookupGT returns the node with the smallest address > key, or nil.
func LookupGT(root **Node, key uintptr) *Node { return walk.LookupGT(root, key, ops{}) }

// LookupLE returns the node with the largest address <= key, or nil.
func LookupLE(root **Node, key uintptr) *Node { return walk.LookupLE(root, key, ops{}) }

// LookupLT returns the node with the largest address < key, or nil.
func LookupLT(root **Node, key uintptr) *Node { return walk.LookupLT(root, key, ops{}) }

// First returns the node with the smallest address, or nil.
func First(root **Node) *Node { return walk.First(root, ops{}) }

// Last returns the node with the largest address, or nil.
func Last(root **Node) *Node { return walk.Last(root, ops{}) }

// Next returns the node with the next-larger address after n, or nil.
func Next(root **Node, n *Node) *Node { return walk.Next(root, n, ops{}) }

// Prev returns the node with the next-smaller address before n, or nil.
func Prev(root **Node, n *Node) *Node { return walk.Prev(root, n, ops{}) }

// Delete removes n from the tree, returning n, or nil if n was already
// detached or no longer the node the tree holds at its address.
func Delete(root **Node, n *Node) *Node { return walk.Delete(root, n, ops{}) }

// Pick removes the node at address key, if present, and returns it
// detached for the caller to free.
func Pick(root **Node, key uintptr) *Node { return walk.Pick(root, key, ops{}) }

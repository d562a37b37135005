// Copyright (c) 2024 The cbtree Authors
// SPDX-License-Identifier: MIT

// Package im adapts the shared descent engine to fixed-length byte-block
// keys stored indirectly: each node's Key points at caller-owned bytes
// rather than embedding them. Every key in a given Tree shares the same
// length; the tree does not enforce this, it only records it.
package im

import (
	"bytes"

	"github.com/gaissmai/cbtree/internal/divergence"
	"github.com/gaissmai/cbtree/internal/walk"
)

// Node is a tree node keyed by a pointer to a caller-owned byte slice.
type Node = walk.Node[*[]byte]

// Tree pairs a root slot with the uniform key length its members share.
type Tree struct {
	Root *Node
	Len  int
}

type ops struct{}

var block = divergence.Block{}

func (ops) Div(a, b *[]byte) uint64 { return divergence.Normalize(block.Div(*a, *b)) }
func (ops) Cmp(a, b *[]byte) int    { return bytes.Compare(*a, *b) }
func (ops) Initial() uint64         { return ^uint64(0) }

// Insert places n into t keyed by the bytes *n.Key points at, which must
// remain unchanged and valid for as long as n stays linked. It returns n
// on success, or the pre-existing node that already carried that key.
func (t *Tree) Insert(n *Node) *Node { return walk.Insert(&t.Root, n, ops{}) }

// Lookup returns the node keyed by *key, or nil.
func (t *Tree) Lookup(key *[]byte) *Node { return walk.Lookup(&t.Root, key, ops{}) }

// LookupGE returns the smallest node with key >= *key, or nil.
func (t *Tree) LookupGE(key *[]byte) *Node { return walk.LookupGE(&t.Root, key, ops{}) }

// LookupGT returns the smallest node with key > *key, or nil.
func (t *Tree) LookupGT(key *[]byte) *Node { return walk.LookupGT(&t.Root, key, ops{}) }

// LookupLE returns the largest node with key <= *key, or nil.
func (t *Tree) LookupLE(key *[]byte) *Node { return walk.LookupLE(&t.Root, key, ops{}) }

// LookupLT returns the largest node with key < *key, or nil.
func (t *Tree) LookupLT(key *[]byte) *Node { return walk.LookupLT(&t.Root, key, ops{}) }

// First returns the smallest-keyed node, or nil if t is empty.
func (t *Tree) First() *Node { return walk.First(&t.Root, ops{}) }

// Last returns the largest-keyed node, or nil if t is empty.
func (t *Tree) Last() *Node { return walk.Last(&t.Root, ops{}) }

// Next returns the node immediately following n, or nil.
func (t *Tree) Next(n *Node) *Node { return walk.Next(&t.Root, n, ops{}) }

// Prev returns the node immediately preceding n, or nil.
func (t *Tree) Prev(n *Node) *Node { return walk.Prev(&t.Root, n, ops{}) }

// Delete removes n from t, returning n, or nil if n was already detached
// or no longer the node t holds for its key.
func (t *Tree) Delete(n *Node) *Node { return walk.Delete(&t.Root, n, ops{}) }

// Pick removes the node keyed by *key, if present, and returns it
// detached for the caller to free.
func (t *Tree) Pick(key *[]byte) *Node { return walk.Pick(&t.Root, key, ops{}) }

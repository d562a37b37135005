// Copyright (c) 2024 The cbtree Authors
// SPDX-License-Identifier: MIT

// Package is adapts the shared descent engine to NUL-terminated string
// keys stored indirectly: each node's Key points at a caller-owned
// string rather than embedding it.
package is

import (
	"strings"

	"github.com/gaissmai/cbtree/internal/divergence"
	"github.com/gaissmai/cbtree/internal/integrity"
	"github.com/gaissmai/cbtree/internal/walk"
)

// Node is a tree node keyed by a pointer to a caller-owned string.
type Node = walk.Node[*string]

type ops struct{}

var cstring = divergence.CString{}

func (ops) Div(a, b *string) uint64 { return divergence.Normalize(cstring.Div(*a, *b)) }
func (ops) Cmp(a, b *string) int    { return strings.Compare(*a, *b) }
func (ops) Initial() uint64         { return ^uint64(0) }

// Insert places n into the tree keyed by *n.Key, which must remain
// unchanged and valid for as long as n stays linked. It returns n on
// success, or the pre-existing node that already carried that key.
func Insert(root **Node, n *Node) *Node { return walk.Insert(root, n, ops{}) }

// Lookup returns the node keyed by *key, or nil.
func Lookup(root **Node, key *string) *Node { return walk.Lookup(root, key, ops{}) }

// LookupGE returns the smallest node with key >= *key, or nil.
func LookupGE(root **Node, key *string) *Node { return walk.LookupGE(root, key, ops{}) }

// LookupGT returns the smallest node with key > *key, or nil.
func LookupGT(root **Node, key *string) *Node { return walk.LookupGT(root, key, ops{}) }

// LookupLE returns the largest node with key <= *key, or nil.
func LookupLE(root **Node, key *string) *Node { return walk.LookupLE(root, key, ops{}) }

// LookupLT returns the largest node with key < *key, or nil.
func LookupLT(root **Node, key *string) *Node { return walk.LookupLT(root, key, ops{}) }

// First returns the smallest-keyed node, or nil if the tree is empty.
func First(root **Node) *Node { return walk.First(root, ops{}) }

// Last returns the largest-keyed node, or nil if the tree is empty.
func Last(root **Node) *Node { return walk.Last(root, ops{}) }

// Next returns the node immediately following n, or nil.
func Next(root **Node, n *Node) *Node { return walk.Next(root, n, ops{}) }

// Prev returns the node immediately preceding n, or nil.
func Prev(root **Node, n *Node) *Node { return walk.Prev(root, n, ops{}) }

// Delete removes n from the tree, returning n, or nil if n was already
// detached or no longer the node the tree holds for its key. A returned
// node whose key differs from n's would indicate tree corruption; that
// case is surfaced through integrity.CheckOrPanic rather than an
// unconditional abort.
func Delete(root **Node, n *Node) *Node {
	removed := walk.Delete(root, n, ops{})
	integrity.CheckOrPanic(removed == nil || *removed.Key == *n.Key, "is: delete returned a node whose key differs from n's")
	return removed
}

// Pick removes the node keyed by *key, if present, and returns it
// detached for the caller to free.
func Pick(root **Node, key *string) *Node { return walk.Pick(root, key, ops{}) }

// Copyright (c) 2024 The cbtree Authors
// SPDX-License-Identifier: MIT

// Package dump renders a tree as Graphviz DOT, recursively walking
// branches and re-deriving each node's role the same way the descent
// engine does: a node whose two branches both point at itself is drawn
// as a leaf, everything else as a router with two children.
package dump

import (
	"fmt"
	"io"

	"github.com/gaissmai/cbtree/internal/walk"
)

// KeyString formats a node's key for display.
type KeyString[K any] func(K) string

// DOT writes a Graphviz digraph of the tree rooted at *root to w.
func DOT[K any](w io.Writer, root *walk.Node[K], keyOf KeyString[K]) error {
	if _, err := fmt.Fprintln(w, "digraph cbtree {"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "\tnode [shape=box, fontname=monospace];"); err != nil {
		return err
	}

	if root != nil {
		seen := make(map[*walk.Node[K]]bool)
		if err := dumpRec(w, root, keyOf, seen); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w, "}")
	return err
}

func dumpRec[K any](w io.Writer, n *walk.Node[K], keyOf KeyString[K], seen map[*walk.Node[K]]bool) error {
	if seen[n] {
		return nil
	}
	seen[n] = true

	leaf := n.Branch[0] == n.Branch[1]
	role := "node"
	if leaf {
		role = "leaf"
	}
	if _, err := fmt.Fprintf(w, "\t%q [label=%q];\n", addr(n), fmt.Sprintf("%s\n%s", keyOf(n.Key), role)); err != nil {
		return err
	}

	if leaf {
		return nil
	}

	for side, child := range n.Branch {
		if _, err := fmt.Fprintf(w, "\t%q -> %q [label=%q];\n", addr(n), addr(child), sideLabel(side)); err != nil {
			return err
		}
		if err := dumpRec(w, child, keyOf, seen); err != nil {
			return err
		}
	}
	return nil
}

func addr[K any](n *walk.Node[K]) string {
	return fmt.Sprintf("%p", n)
}

func sideLabel(side int) string {
	if side == 0 {
		return "0"
	}
	return "1"
}

// Copyright (c) 2024 The cbtree Authors
// SPDX-License-Identifier: MIT

// cbtreedump is a test-harness driver, not part of the library surface:
// it builds a u32 tree from a sequence of integer arguments, optionally
// logging every insert/duplicate, and emits a Graphviz DOT rendering of
// the result to stdout.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/pflag"

	"github.com/gaissmai/cbtree/internal/dump"
	"github.com/gaissmai/cbtree/u32"
)

func main() {
	log.SetFlags(log.Lmicroseconds)

	var debug bool
	pflag.BoolVarP(&debug, "debug", "d", false, "log every insert and duplicate rejection")
	pflag.Parse()

	keys, err := parseKeys(pflag.Args())
	if err != nil {
		log.Fatalf("cbtreedump: %v", err)
	}

	var root *u32.Node
	for _, k := range keys {
		n := &u32.Node{Key: k}
		got := u32.Insert(&root, n)
		switch {
		case !debug:
		case got == n:
			log.Printf("insert(%d): added", k)
		default:
			log.Printf("insert(%d): already present, ignored", k)
		}
	}

	if err := dump.DOT(os.Stdout, root, keyString); err != nil {
		log.Fatalf("cbtreedump: %v", err)
	}
}

// parseKeys converts every CLI argument to a uint32, collecting every
// malformed argument into a single error instead of stopping at the
// first one.
func parseKeys(args []string) ([]uint32, error) {
	var errs *multierror.Error
	keys := make([]uint32, 0, len(args))

	for _, arg := range args {
		v, err := strconv.ParseUint(arg, 10, 32)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("argument %q is not a valid uint32: %w", arg, err))
			continue
		}
		keys = append(keys, uint32(v))
	}

	return keys, errs.ErrorOrNil()
}

func keyString(k uint32) string {
	return strconv.FormatUint(uint64(k), 10)
}

// SPDX-License-Identifier: MIT
// Package: builder
//
// impl_clique.go - Clique(first, n) constructor.
//
// Contract:
//   - n ≥ 1 (else ErrTooFewVertices).
//   - Registers nodes first..first+n-1 in ascending order.
//   - Emits each pair {i,j}, i<j, once in lexicographic order with
//     cfg.weightFn(cfg.rng).
//
// Complexity: O(n²) edges.

package builder

import (
	"fmt"

	"github.com/muffato/pywaltrap/core"
)

const (
	methodClique   = "Clique"
	minCliqueNodes = 1
)

// Clique returns a Constructor that builds the complete graph K_n.
func Clique(first, n int) Constructor {
	return func(s *core.EdgeStore, cfg builderConfig) error {
		if n < minCliqueNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodClique, n, minCliqueNodes, ErrTooFewVertices)
		}
		addNodes(s, cfg, first, n)

		var i, j int
		for i = 0; i < n; i++ {
			for j = i + 1; j < n; j++ {
				addWeighted(s, cfg, first+i, first+j)
			}
		}

		return nil
	}
}

// SPDX-License-Identifier: MIT
// Package: builder
//
// impl_path.go - Path(first, n) and Star(first, n) constructors.
//
// Contract:
//   - Path: n ≥ 2, edges (i-1, i) in increasing i.
//   - Star: n ≥ 2, center is index first, edges (first, first+i) in
//     increasing i.
//
// Complexity: O(n).

package builder

import (
	"fmt"

	"github.com/muffato/pywaltrap/core"
)

const (
	methodPath   = "Path"
	methodStar   = "Star"
	minPathNodes = 2
	minStarNodes = 2
)

// Path returns a Constructor that builds a simple path P_n.
func Path(first, n int) Constructor {
	return func(s *core.EdgeStore, cfg builderConfig) error {
		if n < minPathNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodPath, n, minPathNodes, ErrTooFewVertices)
		}
		addNodes(s, cfg, first, n)
		for i := 1; i < n; i++ {
			addWeighted(s, cfg, first+i-1, first+i)
		}

		return nil
	}
}

// Star returns a Constructor that builds a star with n-1 leaves.
func Star(first, n int) Constructor {
	return func(s *core.EdgeStore, cfg builderConfig) error {
		if n < minStarNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodStar, n, minStarNodes, ErrTooFewVertices)
		}
		addNodes(s, cfg, first, n)
		for i := 1; i < n; i++ {
			addWeighted(s, cfg, first, first+i)
		}

		return nil
	}
}

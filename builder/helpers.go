// SPDX-License-Identifier: MIT
// Package: builder
//
// helpers.go - shared emission helpers.

package builder

import "github.com/muffato/pywaltrap/core"

// addNodes registers indices first..first+n-1 in ascending order.
func addNodes(s *core.EdgeStore, cfg builderConfig, first, n int) {
	for i := 0; i < n; i++ {
		s.AddNode(cfg.node(first + i))
	}
}

// addWeighted links indices i and j with the next configured weight.
func addWeighted(s *core.EdgeStore, cfg builderConfig, i, j int) {
	s.AddEdge(cfg.node(i), cfg.node(j), cfg.weightFn(cfg.rng))
}

// SPDX-License-Identifier: MIT
// Package: builder
//
// impl_isolated.go - Isolated(first, n) and Bridge(i, j, w) constructors.

package builder

import (
	"fmt"

	"github.com/muffato/pywaltrap/core"
)

const (
	methodIsolated = "Isolated"
	methodBridge   = "Bridge"
)

// Isolated returns a Constructor that registers n degree-zero nodes.
func Isolated(first, n int) Constructor {
	return func(s *core.EdgeStore, cfg builderConfig) error {
		if n < 1 {
			return fmt.Errorf("%s: n=%d < min=1: %w", methodIsolated, n, ErrTooFewVertices)
		}
		addNodes(s, cfg, first, n)

		return nil
	}
}

// Bridge returns a Constructor that links two already registered indices
// with weight w.
func Bridge(i, j int, w float64) Constructor {
	return func(s *core.EdgeStore, cfg builderConfig) error {
		if !(w > 0) {
			return fmt.Errorf("%s: w=%g: %w", methodBridge, w, ErrInvalidWeight)
		}
		x, y := cfg.node(i), cfg.node(j)
		if !s.HasNode(x) || !s.HasNode(y) {
			return fmt.Errorf("%s: %v-%v: %w: %w", methodBridge, x, y, core.ErrNodeNotFound, ErrConstructFailed)
		}
		s.AddEdge(x, y, w)

		return nil
	}
}

// SPDX-License-Identifier: MIT
// Package: builder
//
// impl_communities.go - planted-partition constructor.
//
// Contract:
//   - k ≥ 1 blocks of size ≥ 1 nodes; indices first..first+k*size-1, block b
//     holding first+b*size..first+(b+1)*size-1.
//   - 0 ≤ pOut ≤ pIn ≤ 1 (else ErrInvalidProbability).
//   - RNG required unless every draw is certain (pIn ∈ {0,1} and pOut ∈ {0,1}).
//   - Pairs {i,j}, i<j, are visited in lexicographic order; one draw per pair.
//
// Complexity: O((k·size)²) draws.

package builder

import (
	"fmt"

	"github.com/muffato/pywaltrap/core"
)

const methodCommunities = "Communities"

// Communities returns a Constructor that plants k dense blocks.
func Communities(first, k, size int, pIn, pOut float64) Constructor {
	return func(s *core.EdgeStore, cfg builderConfig) error {
		if k < 1 || size < 1 {
			return fmt.Errorf("%s: k=%d size=%d < min=1: %w", methodCommunities, k, size, ErrTooFewVertices)
		}
		if pIn < 0 || pIn > 1 || pOut < 0 || pOut > pIn {
			return fmt.Errorf("%s: pIn=%g pOut=%g: %w", methodCommunities, pIn, pOut, ErrInvalidProbability)
		}
		certain := func(p float64) bool { return p == 0 || p == 1 }
		if cfg.rng == nil && !(certain(pIn) && certain(pOut)) {
			return fmt.Errorf("%s: %w", methodCommunities, ErrNeedRandSource)
		}

		n := k * size
		addNodes(s, cfg, first, n)

		var i, j int
		for i = 0; i < n; i++ {
			for j = i + 1; j < n; j++ {
				p := pOut
				if i/size == j/size {
					p = pIn
				}
				if draw(cfg, p) {
					addWeighted(s, cfg, first+i, first+j)
				}
			}
		}

		return nil
	}
}

// draw reports a Bernoulli(p) outcome; certain outcomes consume no randomness.
func draw(cfg builderConfig, p float64) bool {
	switch p {
	case 0:
		return false
	case 1:
		return true
	}

	return cfg.rng.Float64() < p
}

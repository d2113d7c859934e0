// SPDX-License-Identifier: MIT
// Package: builder
//
// config.go - internal configuration and deterministic defaults.
//
// Defaults:
//   - idFn     = IntIDFn       (0 → core.IntID(0), ...)
//   - rng      = nil           (deterministic unless seeded)
//   - weightFn = DefaultWeightFn (constant 1)

package builder

import "math/rand"

// builderConfig aggregates all knobs used by constructors.
// It is passed by value to constructors.
type builderConfig struct {
	idFn     IDFn
	rng      *rand.Rand
	weightFn WeightFn
}

// newBuilderConfig applies opts over the defaults, last wins.
// Complexity: O(len(opts)).
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		idFn:     IntIDFn,
		weightFn: DefaultWeightFn,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// node maps index i to its NodeID.
func (c builderConfig) node(i int) NodeID { return c.idFn(i) }

// SPDX-License-Identifier: MIT
// Package: builder
//
// errors.go - sentinel errors for the builder package.
//
// Callers branch with errors.Is; constructors add context with %w.

package builder

import "errors"

// ErrTooFewVertices indicates a size parameter below the constructor minimum.
var ErrTooFewVertices = errors.New("builder: parameter too small")

// ErrInvalidProbability indicates a probability outside [0,1].
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrNeedRandSource indicates a stochastic constructor run without WithSeed/WithRand.
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrInvalidWeight indicates an explicit edge weight that the store would drop.
var ErrInvalidWeight = errors.New("builder: weight must be > 0")

// ErrConstructFailed indicates a construction that cannot proceed (nil
// constructor, unknown endpoint).
var ErrConstructFailed = errors.New("builder: construction failed")

// SPDX-License-Identifier: MIT
// Package: chooser
//
// choose.go - candidate construction and the automatic choosers.

package chooser

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/muffato/pywaltrap/dendrogram"
	"github.com/muffato/pywaltrap/solver"
)

// Choose cuts d at every candidate alpha and returns the candidate selected
// by ch.
//
// Steps:
//  1. Build one Candidate per cut, in solver order.
//  2. A single candidate is returned as is; ch is not called.
//  3. Otherwise ask ch (First when nil) and validate the index.
//
// Complexity: O(C·(M+R)) for C cuts over a dendrogram of M merges and R refs.
func Choose(ctx context.Context, ch Chooser, cuts []solver.CandidateCut, d *dendrogram.Dendrogram, opts ...Option) (Candidate, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if len(cuts) == 0 {
		return Candidate{}, fmt.Errorf("%w: no candidate cut", ErrSelection)
	}

	// 1) Flatten at every alpha
	candidates := make([]Candidate, len(cuts))
	for i, c := range cuts {
		candidates[i] = Candidate{Alpha: c.Alpha, Relevance: c.Relevance, Cut: d.Cut(c.Alpha)}
	}

	// 2) Nothing to choose
	if len(candidates) == 1 {
		o.Logger.Debug("single possibility", zap.String("candidate", Describe(candidates[0])))
		return candidates[0], nil
	}

	// 3) Delegate
	if ch == nil {
		ch = First()
	}
	x, err := ch.Choose(ctx, candidates)
	if err != nil {
		return Candidate{}, fmt.Errorf("%w: %w", ErrSelection, err)
	}
	if x < 0 || x >= len(candidates) {
		return Candidate{}, fmt.Errorf("%w: index %d out of [0,%d)", ErrSelection, x, len(candidates))
	}
	o.Logger.Info("partition chosen",
		zap.Int("index", x),
		zap.Int("candidates", len(candidates)),
		zap.String("candidate", Describe(candidates[x])),
	)

	return candidates[x], nil
}

// First always selects the first candidate.
func First() Chooser {
	return Func(func(context.Context, []Candidate) (int, error) { return 0, nil })
}

// MostRelevant selects the candidate with the highest relevance; the first
// one wins a tie.
func MostRelevant() Chooser {
	return Func(func(_ context.Context, candidates []Candidate) (int, error) {
		best := 0
		for i := 1; i < len(candidates); i++ {
			if candidates[i].Relevance > candidates[best].Relevance {
				best = i
			}
		}
		return best, nil
	})
}

// SPDX-License-Identifier: MIT
// Package: pipeline
//
// score.go - ScoreFunc builders.

package pipeline

import (
	"context"

	"github.com/muffato/pywaltrap/core"
)

// PairScorer builds a ScoreFunc that scores every unordered pair of
// non-excluded items once with score. exclude may be nil; items it accepts
// are returned as preexcluded. Non-positive scores produce no edge.
// Complexity: O(n²) score calls.
func PairScorer(score func(x, y core.NodeID) float64, exclude func(core.NodeID) bool) ScoreFunc {
	return func(ctx context.Context, items []core.NodeID) ([]core.Edge, []core.NodeID, error) {
		var kept, pre []core.NodeID
		for _, id := range items {
			if exclude != nil && exclude(id) {
				pre = append(pre, id)
				continue
			}
			kept = append(kept, id)
		}

		store := core.NewEdgeStore()
		store.UpdateFromPairs(kept, score)
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		return Edges(store), pre, nil
	}
}

// StoreScorer builds a ScoreFunc reading precomputed edges from adj.
// Items listed in exclude are returned as preexcluded.
func StoreScorer(adj core.Adjacency, exclude []core.NodeID) ScoreFunc {
	skip := make(map[core.NodeID]struct{}, len(exclude))
	for _, id := range exclude {
		skip[id] = struct{}{}
	}

	return func(_ context.Context, items []core.NodeID) ([]core.Edge, []core.NodeID, error) {
		var kept, pre []core.NodeID
		for _, id := range items {
			if _, ok := skip[id]; ok {
				pre = append(pre, id)
				continue
			}
			kept = append(kept, id)
		}
		if kept == nil {
			kept = []core.NodeID{}
		}
		store := core.NewEdgeStore()
		store.UpdateFromExisting(adj, kept)

		return Edges(store), pre, nil
	}
}

// Edges lists every undirected pair of adj once, in node order.
func Edges(adj core.Adjacency) []core.Edge {
	var out []core.Edge
	done := make(map[core.NodeID]struct{})
	for _, x := range adj.Nodes() {
		for _, nb := range adj.Neighbors(x) {
			if _, ok := done[nb.ID]; ok {
				continue
			}
			out = append(out, core.Edge{X: x, Y: nb.ID, Weight: nb.Weight})
		}
		done[x] = struct{}{}
	}

	return out
}

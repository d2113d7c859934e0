// SPDX-License-Identifier: MIT
// Package: solver
//
// adapter.go - component ↔ solver index space translation.

package solver

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/muffato/pywaltrap/components"
	"github.com/muffato/pywaltrap/core"
	"github.com/muffato/pywaltrap/dendrogram"
)

// Adapter submits components to a Solver.
type Adapter struct {
	solver Solver
	params Parameters
	logger *zap.Logger
}

// AdapterOption configures an Adapter.
type AdapterOption func(*Adapter)

// WithAdapterLogger sets the logger used for per-invocation debug records.
func WithAdapterLogger(l *zap.Logger) AdapterOption {
	return func(a *Adapter) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAdapter returns an Adapter that calls s with params.
func NewAdapter(s Solver, params Parameters, opts ...AdapterOption) *Adapter {
	a := &Adapter{solver: s, params: params, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Params returns the parameters forwarded on every call.
func (a *Adapter) Params() Parameters { return a.params }

// Invoke runs the solver on comp and returns its candidate cuts (solver order)
// and merge records translated back to node space.
//
// Steps:
//  1. Index comp.Nodes as 0..n-1 in order.
//  2. Convert comp.Edges to index space.
//  3. Call the solver; any failure is wrapped in ErrSolverInvocation.
//  4. Translate every child/parent index: i < n → Original(Nodes[i]),
//     i >= n → Synthetic(i); a negative index is ErrMalformedOutput.
//
// Complexity: O(n + E + size of the merge list), plus the solver call.
func (a *Adapter) Invoke(ctx context.Context, comp components.Component) ([]CandidateCut, []dendrogram.Merge, error) {
	// 1) Dense index
	n := len(comp.Nodes)
	index := make(map[core.NodeID]int, n)
	for i, id := range comp.Nodes {
		index[id] = i
	}

	// 2) Indexed edge subset
	edges := make([]IndexedEdge, 0, len(comp.Edges))
	for _, e := range comp.Edges {
		i, okX := index[e.X]
		j, okY := index[e.Y]
		if !okX || !okY {
			return nil, nil, fmt.Errorf("%w: edge %v-%v leaves the component", ErrSolverInvocation, e.X, e.Y)
		}
		edges = append(edges, IndexedEdge{I: i, J: j, Weight: e.Weight})
	}

	// 3) External call
	start := time.Now()
	resp, err := a.solver.Solve(ctx, &Request{Nodes: n, Edges: edges, Params: a.params})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrSolverInvocation, err)
	}
	if resp == nil {
		return nil, nil, fmt.Errorf("%w: empty response", ErrSolverInvocation)
	}
	a.logger.Debug("walktrap solved",
		zap.Int("nodes", n),
		zap.Int("edges", len(edges)),
		zap.Int("merges", len(resp.Merges)),
		zap.Int("cuts", len(resp.Cuts)),
		zap.Duration("took", time.Since(start)),
	)

	// 4) Back to node space
	translate := func(i int) (core.NodeRef, error) {
		switch {
		case i < 0:
			return core.NodeRef{}, fmt.Errorf("%w: negative index %d", ErrMalformedOutput, i)
		case i < n:
			return core.Original(comp.Nodes[i]), nil
		default:
			return core.Synthetic(uint64(i)), nil
		}
	}
	merges := make([]dendrogram.Merge, 0, len(resp.Merges))
	for _, m := range resp.Merges {
		children := make([]core.NodeRef, 0, len(m.Children))
		for _, c := range m.Children {
			ref, err := translate(c)
			if err != nil {
				return nil, nil, err
			}
			children = append(children, ref)
		}
		parent, err := translate(m.Parent)
		if err != nil {
			return nil, nil, err
		}
		merges = append(merges, dendrogram.Merge{Scale: m.Scale, Children: children, Parent: parent})
	}

	cuts := make([]CandidateCut, len(resp.Cuts))
	copy(cuts, resp.Cuts)

	return cuts, merges, nil
}

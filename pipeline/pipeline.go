// SPDX-License-Identifier: MIT
// Package: pipeline
//
// pipeline.go - ClusterOnce and ApplyMultipleRounds.

package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/muffato/pywaltrap/chooser"
	"github.com/muffato/pywaltrap/components"
	"github.com/muffato/pywaltrap/core"
	"github.com/muffato/pywaltrap/dendrogram"
	"github.com/muffato/pywaltrap/solver"
)

// Pipeline clusters items through a solver Adapter.
type Pipeline struct {
	adapter *solver.Adapter
	opts    Options
}

// New returns a Pipeline submitting components to adapter.
func New(adapter *solver.Adapter, opts ...Option) *Pipeline {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return &Pipeline{adapter: adapter, opts: o}
}

// solved is the per-component outcome of the parallel stage.
type solved struct {
	cuts []solver.CandidateCut
	dend *dendrogram.Dendrogram
}

// ClusterOnce runs one pass over items. When putLonely is set, the nodes left
// unclustered by the chosen cuts join Result.Unclustered; otherwise each
// component's unclustered nodes form one more group (when non-empty).
func (p *Pipeline) ClusterOnce(ctx context.Context, items []core.NodeID, pass Pass, putLonely bool) (*Result, error) {
	log := p.opts.Logger.With(zap.String("run", uuid.NewString()))

	return p.clusterOnce(ctx, log, items, pass, putLonely)
}

// clusterOnce implements ClusterOnce under a run-scoped logger.
//
// Steps:
//  1. Score; the preexcluded items seed the unclustered accumulator.
//  2. Build the store: remaining items as nodes, then the edges between them.
//  3. Split.
//  4. Solve non-singleton components in parallel.
//  5. Emit in component order.
//  6. Check conservation.
func (p *Pipeline) clusterOnce(ctx context.Context, log *zap.Logger, items []core.NodeID, pass Pass, putLonely bool) (*Result, error) {
	// 1) Score
	edges, pre, err := pass.Score(ctx, items)
	if err != nil {
		return nil, fmt.Errorf("pipeline: score %d items: %w", len(items), err)
	}
	res := &Result{Unclustered: append([]core.NodeID(nil), pre...)}
	excluded := make(map[core.NodeID]struct{}, len(pre))
	for _, id := range pre {
		excluded[id] = struct{}{}
	}

	// 2) Store
	store := core.NewEdgeStore()
	for _, id := range items {
		if _, ok := excluded[id]; !ok {
			store.AddNode(id)
		}
	}
	ignored := 0
	for _, e := range edges {
		if !store.HasNode(e.X) || !store.HasNode(e.Y) {
			ignored++
			continue
		}
		store.AddEdge(e.X, e.Y, e.Weight)
	}
	if ignored > 0 {
		log.Warn("edges outside the scored items ignored", zap.Int("edges", ignored))
	}

	// 3) Components
	comps := components.Split(store, components.WithLogger(log))
	log.Debug("components",
		zap.Int("items", len(items)),
		zap.Int("preexcluded", len(pre)),
		zap.Int("edges", store.EdgeCount()),
		zap.Int("components", len(comps)),
	)

	// 4) Parallel solve
	results, err := p.solveAll(ctx, comps)
	if err != nil {
		return nil, err
	}

	// 5) Ordered emission
	for ci, comp := range comps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if comp.Singleton {
			p.emit(res, KindSingleton, comp.Nodes)
			continue
		}
		r := results[ci]
		if p.opts.Hook != nil {
			p.opts.Hook(ctx, ci, r.dend)
		}
		if len(r.cuts) == 0 {
			p.emit(res, KindComponent, comp.Nodes)
			continue
		}
		picked, err := chooser.Choose(ctx, pass.Choose, r.cuts, r.dend, chooser.WithLogger(log))
		if err != nil {
			return nil, fmt.Errorf("pipeline: component %d (%d nodes): %w", ci, comp.Len(), err)
		}
		for _, cluster := range picked.Cut.Clusters {
			p.emit(res, KindCluster, cluster)
		}
		lonely := picked.Cut.Unclustered
		switch {
		case len(lonely) == 0:
		case putLonely:
			res.Unclustered = append(res.Unclustered, lonely...)
			p.opts.Recorder.Unclustered(len(lonely))
		default:
			p.emit(res, KindLonely, lonely)
		}
	}

	// 6) Conservation
	if got := len(res.Unclustered) + res.Size(); got != len(items) {
		return nil, fmt.Errorf("%w: %d items in, %d grouped + %d unclustered out",
			ErrInvariantViolation, len(items), res.Size(), len(res.Unclustered))
	}

	return res, nil
}

// solveAll solves every non-singleton component, at most Workers at a time.
// The first failure cancels the others. results[ci] is zero for singletons.
func (p *Pipeline) solveAll(ctx context.Context, comps []components.Component) ([]solved, error) {
	results := make([]solved, len(comps))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Workers)
	for ci, comp := range comps {
		if comp.Singleton {
			continue
		}
		g.Go(func() error {
			start := time.Now()
			cuts, merges, err := p.adapter.Invoke(gctx, comp)
			p.opts.Recorder.Solved(comp.Len(), len(comp.Edges), time.Since(start), err)
			if err != nil {
				return fmt.Errorf("pipeline: component %d (%d nodes): %w", ci, comp.Len(), err)
			}
			d, err := dendrogram.New(merges, comp.Nodes)
			if err != nil {
				return fmt.Errorf("pipeline: component %d (%d nodes): %w", ci, comp.Len(), err)
			}
			results[ci] = solved{cuts: cuts, dend: d}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (p *Pipeline) emit(res *Result, kind GroupKind, group []core.NodeID) {
	res.Groups = append(res.Groups, append([]core.NodeID(nil), group...))
	p.opts.Recorder.Emitted(kind, len(group))
}

// ApplyMultipleRounds runs passes in sequence on every input group: each
// pass is applied to every group produced by the previous one. Unclustered
// items of all rounds accumulate in Result.Unclustered.
//
// Errors carry the input group and round indices.
// Complexity: dominated by the solver calls.
func (p *Pipeline) ApplyMultipleRounds(ctx context.Context, groups [][]core.NodeID, passes []Pass, putLonely bool) (*Result, error) {
	log := p.opts.Logger.With(zap.String("run", uuid.NewString()))
	out := &Result{}
	total := 0

	for gi, group := range groups {
		total += len(group)
		current := [][]core.NodeID{group}
		for ri, pass := range passes {
			var next [][]core.NodeID
			for _, items := range current {
				res, err := p.clusterOnce(ctx, log, items, pass, putLonely)
				if err != nil {
					return nil, fmt.Errorf("pipeline: group %d round %d: %w", gi, ri, err)
				}
				next = append(next, res.Groups...)
				out.Unclustered = append(out.Unclustered, res.Unclustered...)
			}
			log.Debug("round done",
				zap.Int("group", gi),
				zap.Int("round", ri),
				zap.Int("groups_in", len(current)),
				zap.Int("groups_out", len(next)),
			)
			current = next
		}
		out.Groups = append(out.Groups, current...)
	}

	if got := len(out.Unclustered) + out.Size(); got != total {
		return nil, fmt.Errorf("%w: %d items in, %d grouped + %d unclustered out",
			ErrInvariantViolation, total, out.Size(), len(out.Unclustered))
	}
	log.Info("clustering done",
		zap.Int("input_groups", len(groups)),
		zap.Int("rounds", len(passes)),
		zap.Int("items", total),
		zap.Int("groups", len(out.Groups)),
		zap.Int("unclustered", len(out.Unclustered)),
	)

	return out, nil
}

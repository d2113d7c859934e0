// SPDX-License-Identifier: MIT
// Package: components
//
// split.go - connected components of an edge store.

package components

import (
	"go.uber.org/zap"

	"github.com/muffato/pywaltrap/core"
)

// Split partitions src into connected components.
//
// Steps:
//  1. Walk src.Nodes() in order; strip self-loops and non-positive weights
//     from each adjacency list; insert the node then its kept neighbors into
//     the Linker, linking them together.
//  2. Read the groups back in insertion order. A group of one node has no
//     usable edge and becomes a Singleton component.
//  3. Collect each component's edges once per undirected pair.
//  4. Warn (non-fatal) about nodes listed more than once by src. Never
//     happens with *core.EdgeStore.
//
// Every node of src appears in exactly one returned component.
// Complexity: O((V + E)·α(V)) time, O(V + E) memory.
func Split(src Source, opts ...Option) []Component {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	// 1) Strip and link
	lk := NewLinker()
	listed := make(map[core.NodeID]int)
	kept := make(map[core.NodeID][]core.Neighbor)
	for _, id := range src.Nodes() {
		listed[id]++
		lk.Add(id)
		if _, done := kept[id]; done {
			continue
		}
		nbs := strip(id, src.Neighbors(id))
		kept[id] = nbs
		for _, nb := range nbs {
			lk.Link(id, nb.ID)
		}
	}

	// 2) Groups in insertion order
	groups := lk.Groups()
	out := make([]Component, 0, len(groups))
	for ci, nodes := range groups {
		comp := Component{Nodes: nodes}
		if len(nodes) == 1 {
			comp.Singleton = true
		} else {
			// 3) Edge subset, one entry per pair
			comp.Edges = collectEdges(nodes, kept)
		}

		// 4) Integrity signal
		if dups := duplicates(nodes, listed); len(dups) > 0 {
			o.Logger.Warn("bad connected component",
				zap.Error(ErrComponentIntegrity),
				zap.Int("component", ci),
				zap.Int("size", len(nodes)),
				zap.Strings("duplicates", dups),
			)
		}
		out = append(out, comp)
	}

	return out
}

// strip drops self-loops and non-positive weights.
func strip(id core.NodeID, nbs []core.Neighbor) []core.Neighbor {
	out := nbs[:0:0]
	for _, nb := range nbs {
		if nb.ID == id || !(nb.Weight > 0) {
			continue
		}
		out = append(out, nb)
	}

	return out
}

// collectEdges emits each undirected pair of nodes once, oriented from the
// endpoint that lists it first.
func collectEdges(nodes []core.NodeID, kept map[core.NodeID][]core.Neighbor) []core.Edge {
	pos := make(map[core.NodeID]int, len(nodes))
	for i, id := range nodes {
		pos[id] = i
	}
	emitted := make(map[[2]int]struct{})
	var edges []core.Edge
	for i, id := range nodes {
		for _, nb := range kept[id] {
			j := pos[nb.ID]
			key := [2]int{i, j}
			if j < i {
				key = [2]int{j, i}
			}
			if _, ok := emitted[key]; ok {
				continue
			}
			emitted[key] = struct{}{}
			edges = append(edges, core.Edge{X: id, Y: nb.ID, Weight: nb.Weight})
		}
	}

	return edges
}

// duplicates returns the members listed more than once by the source.
func duplicates(nodes []core.NodeID, listed map[core.NodeID]int) []string {
	var dups []string
	for _, id := range nodes {
		if listed[id] > 1 {
			dups = append(dups, id.String())
		}
	}

	return dups
}

// SPDX-License-Identifier: MIT
// Package: dendrogram
//
// types.go - Merge, CutResult and sentinels.

package dendrogram

import (
	"errors"

	"github.com/muffato/pywaltrap/core"
)

// ErrMalformedMerge indicates a merge list that cannot form a tree:
// empty children, a parent defined twice, a child with two parents,
// an undefined synthetic child, or a cycle.
var ErrMalformedMerge = errors.New("dendrogram: malformed merge list")

// Merge is one merge event: Children were joined into Parent at Scale.
type Merge struct {
	Scale    float64
	Children []core.NodeRef
	Parent   core.NodeRef
}

// CutResult is a flat view of a dendrogram at one threshold.
//
// Under a height-monotonic hierarchy every node of the dendrogram appears in
// exactly one cluster or in Unclustered.
type CutResult struct {
	// Clusters in emission order (decreasing merge scale).
	Clusters [][]core.NodeID

	// Unclustered nodes, in the dendrogram's node order.
	Unclustered []core.NodeID
}

// Sizes returns the size of every cluster.
func (r CutResult) Sizes() []int {
	sizes := make([]int, len(r.Clusters))
	for i, c := range r.Clusters {
		sizes[i] = len(c)
	}

	return sizes
}

// ClusteredSize returns the total number of nodes over all clusters.
func (r CutResult) ClusteredSize() int {
	total := 0
	for _, c := range r.Clusters {
		total += len(c)
	}

	return total
}

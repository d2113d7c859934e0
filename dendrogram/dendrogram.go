// SPDX-License-Identifier: MIT
// Package: dendrogram
//
// dendrogram.go - construction, validation and Cut.
//
// Determinism:
//   - Merges are kept sorted by (scale, children, parent) descending, refs
//     compared with core.NodeRef.Compare. On equal scales a parent is
//     scanned before the merges it contains.
//   - Cut emits clusters in that order, leaves in stack (LIFO) order.

package dendrogram

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/muffato/pywaltrap/core"
)

// Dendrogram is the merge tree of one component.
type Dendrogram struct {
	merges     []Merge                         // scale descending
	childrenOf map[core.NodeRef][]core.NodeRef // internal node → ordered children
	nodes      []core.NodeID                   // component node list
}

// New builds a Dendrogram from merges and the component's node list. Both
// inputs are copied.
//
// Steps:
//  1. Copy and sort merges by (scale, children, parent) descending.
//  2. Build childrenOf; reject empty merges, parents defined twice and
//     children claimed by two parents.
//  3. Reject synthetic children that no merge defines.
//  4. Reject cycles.
//
// Complexity: O(M log M + R) for M merges over R refs.
func New(merges []Merge, nodes []core.NodeID) (*Dendrogram, error) {
	// 1) Own copies, descending scale
	d := &Dendrogram{
		merges:     make([]Merge, len(merges)),
		childrenOf: make(map[core.NodeRef][]core.NodeRef, len(merges)),
		nodes:      make([]core.NodeID, len(nodes)),
	}
	copy(d.nodes, nodes)
	for i, m := range merges {
		children := make([]core.NodeRef, len(m.Children))
		copy(children, m.Children)
		d.merges[i] = Merge{Scale: m.Scale, Children: children, Parent: m.Parent}
	}
	slices.SortStableFunc(d.merges, compareMerges)

	// 2) Children map
	parentOf := make(map[core.NodeRef]core.NodeRef)
	for _, m := range d.merges {
		if len(m.Children) == 0 {
			return nil, fmt.Errorf("%w: merge into %v has no children", ErrMalformedMerge, m.Parent)
		}
		if _, dup := d.childrenOf[m.Parent]; dup {
			return nil, fmt.Errorf("%w: %v is the parent of two merges", ErrMalformedMerge, m.Parent)
		}
		d.childrenOf[m.Parent] = m.Children
		for _, c := range m.Children {
			if prev, dup := parentOf[c]; dup {
				return nil, fmt.Errorf("%w: %v has two parents (%v, %v)", ErrMalformedMerge, c, prev, m.Parent)
			}
			parentOf[c] = m.Parent
		}
	}

	// 3) Synthetic leaves cannot be reported as nodes
	for c := range parentOf {
		if _, internal := d.childrenOf[c]; c.IsSynthetic() && !internal {
			return nil, fmt.Errorf("%w: %v is never defined", ErrMalformedMerge, c)
		}
	}

	// 4) Cycles: each ref has at most one parent, so walk the parent chains
	const (
		open = 1
		done = 2
	)
	state := make(map[core.NodeRef]int, len(parentOf))
	for start := range parentOf {
		var path []core.NodeRef
		ref := start
		for state[ref] == 0 {
			state[ref] = open
			path = append(path, ref)
			p, ok := parentOf[ref]
			if !ok {
				break
			}
			ref = p
		}
		if _, up := parentOf[ref]; up && state[ref] == open {
			return nil, fmt.Errorf("%w: cycle through %v", ErrMalformedMerge, ref)
		}
		for _, r := range path {
			state[r] = done
		}
	}

	return d, nil
}

// compareMerges orders a before b when (scale, children, parent) of a is the
// larger tuple.
func compareMerges(a, b Merge) int {
	if c := cmp.Compare(b.Scale, a.Scale); c != 0 {
		return c
	}
	if c := slices.CompareFunc(b.Children, a.Children, core.NodeRef.Compare); c != 0 {
		return c
	}
	return b.Parent.Compare(a.Parent)
}

// Cut flattens the dendrogram at threshold.
//
// Steps:
//  1. seen = ∅ (local to this call), unclustered = all nodes.
//  2. For each merge in descending scale with Scale < threshold and an unseen
//     parent: expand the parent with an explicit stack, marking internal
//     nodes seen and moving leaves from unclustered into a new cluster.
//  3. Return clusters and the remaining nodes in node-list order.
//
// A parent already seen contributes nothing; its subtree stays available to a
// later, lower-scale merge. Complexity: O(M + R) per call.
func (d *Dendrogram) Cut(threshold float64) CutResult {
	// 1) Fresh state
	seen := newRefSet()
	unclustered := make(map[core.NodeID]struct{}, len(d.nodes))
	for _, id := range d.nodes {
		unclustered[id] = struct{}{}
	}

	// 2) Descending scan
	var (
		clusters [][]core.NodeID
		stack    []core.NodeRef
	)
	for _, m := range d.merges {
		if !(m.Scale < threshold) || seen.has(m.Parent) {
			continue
		}
		var cluster []core.NodeID
		stack = append(stack[:0], m.Parent)
		for len(stack) > 0 {
			ref := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if children, internal := d.childrenOf[ref]; internal {
				seen.add(ref)
				stack = append(stack, children...)
				continue
			}
			id, _ := ref.ID() // New guarantees leaves are originals
			delete(unclustered, id)
			cluster = append(cluster, id)
		}
		clusters = append(clusters, cluster)
	}

	// 3) Stable lonely list
	lonely := make([]core.NodeID, 0, len(unclustered))
	for _, id := range d.nodes {
		if _, ok := unclustered[id]; ok {
			lonely = append(lonely, id)
			delete(unclustered, id)
		}
	}

	return CutResult{Clusters: clusters, Unclustered: lonely}
}

// Nodes returns a copy of the component node list.
func (d *Dendrogram) Nodes() []core.NodeID {
	out := make([]core.NodeID, len(d.nodes))
	copy(out, d.nodes)

	return out
}

// Merges returns a copy of the merges, scale descending.
func (d *Dendrogram) Merges() []Merge {
	out := make([]Merge, len(d.merges))
	for i, m := range d.merges {
		children := make([]core.NodeRef, len(m.Children))
		copy(children, m.Children)
		out[i] = Merge{Scale: m.Scale, Children: children, Parent: m.Parent}
	}

	return out
}

// Children returns the direct children of an internal node.
func (d *Dendrogram) Children(ref core.NodeRef) ([]core.NodeRef, bool) {
	c, ok := d.childrenOf[ref]
	if !ok {
		return nil, false
	}
	out := make([]core.NodeRef, len(c))
	copy(out, c)

	return out, true
}

// Len returns the number of merges.
func (d *Dendrogram) Len() int { return len(d.merges) }

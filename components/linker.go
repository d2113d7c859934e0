// SPDX-License-Identifier: MIT
// Package: components
//
// linker.go - insertion-ordered disjoint-set (union-find).
//
// Determinism:
//   - Elements are indexed by first insertion; Groups() lists groups by the
//     index of their earliest element and members by insertion index.

package components

import "github.com/muffato/pywaltrap/core"

// Linker is a union-find over NodeIDs that remembers insertion order.
// It uses path halving and union by rank.
type Linker struct {
	index  map[core.NodeID]int
	nodes  []core.NodeID
	parent []int
	rank   []int
}

// NewLinker returns an empty Linker.
func NewLinker() *Linker {
	return &Linker{index: make(map[core.NodeID]int)}
}

// Add inserts id as a singleton set if missing and returns its index.
// Complexity: O(1) amortized.
func (l *Linker) Add(id core.NodeID) int {
	if i, ok := l.index[id]; ok {
		return i
	}
	i := len(l.nodes)
	l.index[id] = i
	l.nodes = append(l.nodes, id)
	l.parent = append(l.parent, i)
	l.rank = append(l.rank, 0)

	return i
}

// Link inserts every id (in argument order) and merges them into one set.
func (l *Linker) Link(ids ...core.NodeID) {
	if len(ids) == 0 {
		return
	}
	first := l.Add(ids[0])
	for _, id := range ids[1:] {
		l.union(first, l.Add(id))
	}
}

// find returns the root of i, halving the path on the way.
func (l *Linker) find(i int) int {
	for l.parent[i] != i {
		l.parent[i] = l.parent[l.parent[i]]
		i = l.parent[i]
	}

	return i
}

// union merges the sets of a and b by rank.
func (l *Linker) union(a, b int) {
	ra, rb := l.find(a), l.find(b)
	if ra == rb {
		return
	}
	switch {
	case l.rank[ra] < l.rank[rb]:
		l.parent[ra] = rb
	case l.rank[ra] > l.rank[rb]:
		l.parent[rb] = ra
	default:
		l.parent[rb] = ra
		l.rank[ra]++
	}
}

// Connected reports whether x and y are known and in the same set.
func (l *Linker) Connected(x, y core.NodeID) bool {
	i, ok := l.index[x]
	if !ok {
		return false
	}
	j, ok := l.index[y]
	if !ok {
		return false
	}

	return l.find(i) == l.find(j)
}

// Len returns the number of inserted elements.
func (l *Linker) Len() int { return len(l.nodes) }

// Groups returns the disjoint sets in deterministic order.
// Complexity: O(V·α(V)).
func (l *Linker) Groups() [][]core.NodeID {
	slot := make(map[int]int) // root → group index
	var groups [][]core.NodeID
	for i, id := range l.nodes {
		r := l.find(i)
		g, ok := slot[r]
		if !ok {
			g = len(groups)
			slot[r] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], id)
	}

	return groups
}

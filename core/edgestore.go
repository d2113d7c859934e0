// SPDX-License-Identifier: MIT
// Package: core
//
// edgestore.go - accumulation of a weighted undirected graph.
//
// Determinism:
//   - Nodes() follows first-insertion order.
//   - Neighbors(id) follows the first insertion of each pair; overwriting a
//     weight keeps the original position.
//
// Concurrency:
//   - Mutations under mu write lock, queries under mu read lock.

package core

import (
	"strconv"
	"strings"
	"sync"
)

// adjacency keeps one node's neighbors in insertion order.
type adjacency struct {
	order  []NodeID
	weight map[NodeID]float64
}

// EdgeStore accumulates a weighted undirected graph from heterogeneous sources.
//
// Invariants:
//   - weight(x,y) == weight(y,x) for every stored pair.
//   - No stored weight is <= 0 or NaN.
type EdgeStore struct {
	mu    sync.RWMutex
	order []NodeID              // node insertion order
	adj   map[NodeID]*adjacency // node → neighbors
	edges int                   // undirected pair count, self-loops included
}

// NewEdgeStore returns an empty store.
// Complexity: O(1).
func NewEdgeStore() *EdgeStore {
	return &EdgeStore{adj: make(map[NodeID]*adjacency)}
}

// ensureNode registers id if missing. Caller holds mu.
func (s *EdgeStore) ensureNode(id NodeID) *adjacency {
	a, ok := s.adj[id]
	if !ok {
		a = &adjacency{weight: make(map[NodeID]float64)}
		s.adj[id] = a
		s.order = append(s.order, id)
	}

	return a
}

// link records w on x's side only. Caller holds mu.
func (s *EdgeStore) link(x, y NodeID, w float64) bool {
	a := s.ensureNode(x)
	_, existed := a.weight[y]
	if !existed {
		a.order = append(a.order, y)
	}
	a.weight[y] = w

	return existed
}

// AddNode registers id as a (possibly isolated) node. Idempotent.
// Complexity: O(1) amortized.
func (s *EdgeStore) AddNode(id NodeID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureNode(id)
}

// AddEdge stores the undirected edge {x,y} with weight w, overwriting any
// previous weight for the pair. A weight that is not strictly positive
// (NaN included) is silently dropped and AddEdge reports false.
//
// Steps:
//  1. Reject !(w > 0).
//  2. Lock, register both endpoints in first-seen order (x before y).
//  3. Store w on both sides; count the pair once.
//
// Complexity: O(1) amortized.
func (s *EdgeStore) AddEdge(x, y NodeID, w float64) bool {
	// 1) Invalid weights never reach the store
	if !(w > 0) {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// 2) Endpoints in first-seen order
	s.ensureNode(x)
	s.ensureNode(y)

	// 3) Symmetric write
	existed := s.link(x, y, w)
	if x != y {
		s.link(y, x, w)
	}
	if !existed {
		s.edges++
	}

	return true
}

// AddRawEdge normalizes x and y with ParseNodeID and parses w as a float.
// A non-numeric or non-positive weight is dropped and AddRawEdge reports false.
func (s *EdgeStore) AddRawEdge(x, y, w string) bool {
	weight, err := strconv.ParseFloat(strings.TrimSpace(w), 64)
	if err != nil {
		return false
	}

	return s.AddEdge(ParseNodeID(x), ParseNodeID(y), weight)
}

// UpdateFromPairs calls score once for every unordered pair of items
// (items[i], items[j]) with i < j and stores the result with AddEdge.
// score is invoked without holding the store lock.
// Complexity: O(n²) score calls.
func (s *EdgeStore) UpdateFromPairs(items []NodeID, score func(x, y NodeID) float64) {
	var i, j int
	for i = 0; i < len(items); i++ {
		for j = i + 1; j < len(items); j++ {
			s.AddEdge(items[i], items[j], score(items[i], items[j]))
		}
	}
}

// UpdateFromExisting copies every edge of adj. When restrictTo is non-nil only
// edges whose both endpoints belong to restrictTo are copied; nodes of adj are
// not registered unless an edge is copied.
// Complexity: O(V+E) of adj.
func (s *EdgeStore) UpdateFromExisting(adj Adjacency, restrictTo []NodeID) {
	var keep map[NodeID]struct{}
	if restrictTo != nil {
		keep = make(map[NodeID]struct{}, len(restrictTo))
		for _, id := range restrictTo {
			keep[id] = struct{}{}
		}
	}
	allowed := func(id NodeID) bool {
		if keep == nil {
			return true
		}
		_, ok := keep[id]
		return ok
	}

	for _, x := range adj.Nodes() {
		if !allowed(x) {
			continue
		}
		for _, nb := range adj.Neighbors(x) {
			if allowed(nb.ID) {
				s.AddEdge(x, nb.ID, nb.Weight)
			}
		}
	}
}

// Remove deletes the edge {x,y}. Both nodes stay registered.
// Returns ErrEdgeNotFound when the pair has no edge.
// Complexity: O(deg(x)+deg(y)).
func (s *EdgeStore) Remove(x, y NodeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ax, ok := s.adj[x]
	if !ok {
		return ErrNodeNotFound
	}
	if _, ok = ax.weight[y]; !ok {
		return ErrEdgeNotFound
	}
	unlink(ax, y)
	if x != y {
		unlink(s.adj[y], x)
	}
	s.edges--

	return nil
}

// unlink drops y from a while preserving the order of the other neighbors.
func unlink(a *adjacency, y NodeID) {
	delete(a.weight, y)
	for i, id := range a.order {
		if id == y {
			a.order = append(a.order[:i], a.order[i+1:]...)
			return
		}
	}
}

// Nodes returns all nodes in first-insertion order.
// Complexity: O(V).
func (s *EdgeStore) Nodes() []NodeID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]NodeID, len(s.order))
	copy(out, s.order)

	return out
}

// Neighbors returns id's neighbors in first-insertion order, or nil when id
// is unknown. Self-loops appear once.
// Complexity: O(deg(id)).
func (s *EdgeStore) Neighbors(id NodeID) []Neighbor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.adj[id]
	if !ok {
		return nil
	}
	out := make([]Neighbor, 0, len(a.order))
	for _, nb := range a.order {
		out = append(out, Neighbor{ID: nb, Weight: a.weight[nb]})
	}

	return out
}

// Weight returns the stored weight of {x,y}, or ErrEdgeNotFound.
// Complexity: O(1).
func (s *EdgeStore) Weight(x, y NodeID) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if a, ok := s.adj[x]; ok {
		if w, ok := a.weight[y]; ok {
			return w, nil
		}
	}

	return 0, ErrEdgeNotFound
}

// HasEdge reports whether {x,y} is stored.
func (s *EdgeStore) HasEdge(x, y NodeID) bool {
	_, err := s.Weight(x, y)
	return err == nil
}

// HasNode reports whether id is registered.
func (s *EdgeStore) HasNode(id NodeID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.adj[id]

	return ok
}

// NodeCount returns the number of registered nodes.
func (s *EdgeStore) NodeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.order)
}

// EdgeCount returns the number of undirected pairs, self-loops included.
func (s *EdgeStore) EdgeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.edges
}

var _ Adjacency = (*EdgeStore)(nil)

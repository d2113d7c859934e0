// Package core defines the identifier and edge types shared by every stage of
// the walktrap pipeline, and the EdgeStore that accumulates a weighted
// undirected graph before it is split into components.
//
// Identifiers:
//
//	NodeID  - an original item identifier. Numeric-looking input is normalized
//	          to an integer, anything else is kept as an opaque token, so
//	          ParseNodeID("42") == IntID(42) and ParseNodeID("x42") == TokenID("x42").
//	NodeRef - a reference inside a merge hierarchy: either Original(NodeID) or
//	          Synthetic(n) for clusters created by the solver. The two variants
//	          never compare equal, whatever their numeric value.
//
// EdgeStore:
//
//	AddEdge(x, y, w)              // O(1); dropped when w <= 0 or NaN
//	AddRawEdge(x, y, w string)    // normalizes ids, parses weight
//	AddNode(id)                   // degree-zero node
//	UpdateFromPairs(items, score) // every unordered pair exactly once
//	UpdateFromExisting(adj, keep) // copy from another Adjacency
//	Nodes() / Neighbors(id)       // insertion order, deterministic
//
// Weights are stored symmetrically: Weight(x, y) == Weight(y, x) at all times.
// A non-positive weight is never stored; this is how callers can feed raw,
// unfiltered similarity scores without pre-filtering.
//
// All EdgeStore methods are safe for concurrent use.
package core

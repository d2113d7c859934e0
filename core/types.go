// SPDX-License-Identifier: MIT
// Package: core
//
// types.go - NodeID, NodeRef and Edge.
//
// Design contract:
//   - NodeID and NodeRef are comparable value types; use them directly as map keys.
//   - The zero NodeID is the integer 0; the zero NodeRef is Original(IntID(0)).
//   - Synthetic refs live in their own namespace and can never collide with originals.

package core

import (
	"cmp"
	"errors"
	"strconv"
	"strings"
)

// Sentinel errors for core operations.
var (
	// ErrNodeNotFound indicates a query referenced a node absent from the store.
	ErrNodeNotFound = errors.New("core: node not found")

	// ErrEdgeNotFound indicates a query referenced a pair that has no stored edge.
	ErrEdgeNotFound = errors.New("core: edge not found")
)

// NodeID identifies an original item of the graph.
//
// A NodeID holds either an integer or an opaque token. Both forms are
// comparable, so equality and hashing are consistent across the whole pipeline.
type NodeID struct {
	num   int64
	token string
	isTok bool
}

// IntID returns the NodeID for integer n.
func IntID(n int64) NodeID { return NodeID{num: n} }

// TokenID returns the NodeID for an opaque token. No integer normalization is
// applied; use ParseNodeID for raw input.
func TokenID(s string) NodeID { return NodeID{token: s, isTok: true} }

// ParseNodeID normalizes raw input: a base-10 integer (surrounding spaces
// ignored) becomes an integer NodeID, anything else is kept verbatim as a token.
// Complexity: O(len(s)).
func ParseNodeID(s string) NodeID {
	if n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
		return IntID(n)
	}

	return TokenID(s)
}

// IsInt reports whether id holds an integer.
func (id NodeID) IsInt() bool { return !id.isTok }

// Int returns the integer value and true, or 0 and false for tokens.
func (id NodeID) Int() (int64, bool) {
	if id.isTok {
		return 0, false
	}

	return id.num, true
}

// String renders integers in base 10 and tokens verbatim.
func (id NodeID) String() string {
	if id.isTok {
		return id.token
	}

	return strconv.FormatInt(id.num, 10)
}

// Less orders identifiers: integers before tokens, integers numerically,
// tokens lexicographically. Used for stable output only.
func (id NodeID) Less(other NodeID) bool {
	if id.isTok != other.isTok {
		return !id.isTok
	}
	if id.isTok {
		return id.token < other.token
	}

	return id.num < other.num
}

// MarshalText implements encoding.TextMarshaler.
func (id NodeID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler using ParseNodeID.
func (id *NodeID) UnmarshalText(b []byte) error {
	*id = ParseNodeID(string(b))
	return nil
}

// NodeRef is a node of a merge hierarchy: an original NodeID (a leaf) or a
// synthetic cluster introduced by the solver.
type NodeRef struct {
	id        NodeID
	synth     uint64
	synthetic bool
}

// Original wraps an original identifier.
func Original(id NodeID) NodeRef { return NodeRef{id: id} }

// Synthetic returns the ref of solver cluster n.
func Synthetic(n uint64) NodeRef { return NodeRef{synth: n, synthetic: true} }

// IsSynthetic reports whether r was introduced by the merge process.
func (r NodeRef) IsSynthetic() bool { return r.synthetic }

// ID returns the wrapped original identifier; ok is false for synthetic refs.
func (r NodeRef) ID() (id NodeID, ok bool) {
	if r.synthetic {
		return NodeID{}, false
	}

	return r.id, true
}

// SyntheticID returns the solver cluster number; ok is false for originals.
func (r NodeRef) SyntheticID() (n uint64, ok bool) {
	if !r.synthetic {
		return 0, false
	}

	return r.synth, true
}

// String renders originals as their NodeID and synthetic refs as "(n,)".
func (r NodeRef) String() string {
	if r.synthetic {
		return "(" + strconv.FormatUint(r.synth, 10) + ",)"
	}

	return r.id.String()
}

// Compare orders refs: originals before synthetic refs, originals by
// NodeID.Less, synthetic refs by cluster number. Returns -1, 0 or +1.
func (r NodeRef) Compare(other NodeRef) int {
	switch {
	case r.synthetic != other.synthetic:
		if r.synthetic {
			return 1
		}
		return -1
	case r.synthetic:
		return cmp.Compare(r.synth, other.synth)
	case r.id.Less(other.id):
		return -1
	case other.id.Less(r.id):
		return 1
	}

	return 0
}

// Edge is one undirected weighted edge. Weight is always > 0 once stored.
type Edge struct {
	X, Y   NodeID
	Weight float64
}

// Neighbor is one entry of a node's adjacency list.
type Neighbor struct {
	ID     NodeID
	Weight float64
}

// Adjacency is the read surface shared by EdgeStore and anything an EdgeStore
// can be filled from. Implementations must return deterministic orders.
type Adjacency interface {
	// Nodes returns every node, including degree-zero ones.
	Nodes() []NodeID

	// Neighbors returns the adjacency list of id (nil when id is unknown).
	Neighbors(id NodeID) []Neighbor
}

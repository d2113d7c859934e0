package components_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/muffato/pywaltrap/components"
	"github.com/muffato/pywaltrap/core"
)

func ids(ns ...int64) []core.NodeID {
	out := make([]core.NodeID, len(ns))
	for i, n := range ns {
		out[i] = core.IntID(n)
	}
	return out
}

func TestSplit_Empty(t *testing.T) {
	assert.Empty(t, components.Split(core.NewEdgeStore()))
}

func TestSplit_PartitionsNodeUniverse(t *testing.T) {
	s := core.NewEdgeStore()
	s.AddEdge(core.IntID(1), core.IntID(2), 1)
	s.AddEdge(core.IntID(3), core.IntID(4), 1)
	s.AddEdge(core.IntID(2), core.IntID(5), 1)
	s.AddNode(core.IntID(6))
	s.AddEdge(core.IntID(7), core.IntID(7), 1) // self-loop only

	comps := components.Split(s)
	require.Len(t, comps, 4)

	seen := make(map[core.NodeID]int)
	for _, c := range comps {
		for _, id := range c.Nodes {
			seen[id]++
		}
	}
	for _, id := range s.Nodes() {
		assert.Equal(t, 1, seen[id], "node %v must appear exactly once", id)
	}
	assert.Len(t, seen, s.NodeCount())

	// deterministic order: first-seen component first
	assert.Equal(t, ids(1, 2, 5), comps[0].Nodes)
	assert.Equal(t, ids(3, 4), comps[1].Nodes)
	assert.Equal(t, ids(6), comps[2].Nodes)
	assert.True(t, comps[2].Singleton)
	assert.Equal(t, ids(7), comps[3].Nodes)
	assert.True(t, comps[3].Singleton, "self-loop node has no usable edge")
	assert.Empty(t, comps[3].Edges)
}

func TestSplit_EdgesOncePerPair(t *testing.T) {
	s := core.NewEdgeStore()
	s.AddEdge(core.IntID(1), core.IntID(2), 0.5)
	s.AddEdge(core.IntID(2), core.IntID(3), 0.7)
	s.AddEdge(core.IntID(3), core.IntID(1), 0.9)
	s.AddEdge(core.IntID(3), core.IntID(3), 2) // stripped

	comps := components.Split(s)
	require.Len(t, comps, 1)
	c := comps[0]
	assert.False(t, c.Singleton)
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []core.Edge{
		{X: core.IntID(1), Y: core.IntID(2), Weight: 0.5},
		{X: core.IntID(1), Y: core.IntID(3), Weight: 0.9},
		{X: core.IntID(2), Y: core.IntID(3), Weight: 0.7},
	}, c.Edges)
}

// listing is a hand-made Source that may list nodes twice or carry bad weights.
type listing struct {
	nodes []core.NodeID
	adj   map[core.NodeID][]core.Neighbor
}

func (l listing) Nodes() []core.NodeID                     { return l.nodes }
func (l listing) Neighbors(id core.NodeID) []core.Neighbor { return l.adj[id] }

func TestSplit_StripsNonPositive(t *testing.T) {
	src := listing{
		nodes: ids(1, 2, 3),
		adj: map[core.NodeID][]core.Neighbor{
			core.IntID(1): {{ID: core.IntID(2), Weight: 0}},
			core.IntID(2): {{ID: core.IntID(1), Weight: 0}, {ID: core.IntID(3), Weight: 1}},
			core.IntID(3): {{ID: core.IntID(2), Weight: 1}},
		},
	}
	comps := components.Split(src)
	require.Len(t, comps, 2)
	assert.Equal(t, ids(1), comps[0].Nodes)
	assert.True(t, comps[0].Singleton)
	assert.Equal(t, ids(2, 3), comps[1].Nodes)
	assert.Len(t, comps[1].Edges, 1)
}

func TestSplit_IntegrityWarning(t *testing.T) {
	obs, logs := observer.New(zapcore.WarnLevel)
	src := listing{
		nodes: ids(1, 2, 1),
		adj: map[core.NodeID][]core.Neighbor{
			core.IntID(1): {{ID: core.IntID(2), Weight: 1}},
			core.IntID(2): {{ID: core.IntID(1), Weight: 1}},
		},
	}

	comps := components.Split(src, components.WithLogger(zap.New(obs)))
	require.Len(t, comps, 1, "processing continues after the warning")
	assert.Equal(t, ids(1, 2), comps[0].Nodes)

	entries := logs.FilterMessage("bad connected component").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(0), entries[0].ContextMap()["component"])
}

func TestSplit_EdgeStoreNeverWarns(t *testing.T) {
	obs, logs := observer.New(zapcore.WarnLevel)
	s := core.NewEdgeStore()
	s.AddEdge(core.IntID(1), core.IntID(1), 1)
	s.AddEdge(core.IntID(1), core.IntID(2), 1)
	s.AddEdge(core.IntID(2), core.IntID(1), 3)
	s.AddEdge(core.IntID(3), core.IntID(3), 1)

	comps := components.Split(s, components.WithLogger(zap.New(obs)))
	require.Len(t, comps, 2)
	assert.Equal(t, ids(1, 2), comps[0].Nodes)
	assert.True(t, comps[1].Singleton, "a self-loop alone is no usable edge")
	assert.Zero(t, logs.Len())
}

func TestLinker(t *testing.T) {
	lk := components.NewLinker()
	lk.Link(core.IntID(5), core.IntID(1))
	lk.Add(core.IntID(9))
	lk.Link(core.IntID(2), core.IntID(3))
	lk.Link(core.IntID(3), core.IntID(1))

	assert.Equal(t, 5, lk.Len())
	assert.True(t, lk.Connected(core.IntID(5), core.IntID(2)))
	assert.False(t, lk.Connected(core.IntID(9), core.IntID(2)))
	assert.False(t, lk.Connected(core.IntID(9), core.IntID(42)))
	assert.Equal(t, [][]core.NodeID{ids(5, 1, 2, 3), ids(9)}, lk.Groups())
}

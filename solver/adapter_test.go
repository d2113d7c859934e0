package solver_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muffato/pywaltrap/components"
	"github.com/muffato/pywaltrap/core"
	"github.com/muffato/pywaltrap/dendrogram"
	"github.com/muffato/pywaltrap/solver"
)

func component() components.Component {
	return components.Component{
		Nodes: []core.NodeID{core.IntID(10), core.TokenID("b"), core.IntID(30)},
		Edges: []core.Edge{
			{X: core.IntID(10), Y: core.TokenID("b"), Weight: 0.5},
			{X: core.TokenID("b"), Y: core.IntID(30), Weight: 2},
		},
	}
}

func TestAdapter_Translation(t *testing.T) {
	var got *solver.Request
	fake := solver.Func(func(_ context.Context, req *solver.Request) (*solver.Response, error) {
		got = req
		return &solver.Response{
			Cuts: []solver.CandidateCut{{Alpha: 0.5, Relevance: 0.9}},
			Merges: []solver.IndexedMerge{
				{Scale: 0.8, Children: []int{0, 1}, Parent: 3},
				{Scale: 0.5, Children: []int{3, 2}, Parent: 4},
			},
		}, nil
	})
	params := solver.DefaultParameters()
	params.MemoryLimit = 64

	cuts, merges, err := solver.NewAdapter(fake, params).Invoke(context.Background(), component())
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, 3, got.Nodes)
	assert.Equal(t, []solver.IndexedEdge{{I: 0, J: 1, Weight: 0.5}, {I: 1, J: 2, Weight: 2}}, got.Edges)
	assert.Equal(t, params, got.Params)

	assert.Equal(t, []solver.CandidateCut{{Alpha: 0.5, Relevance: 0.9}}, cuts)
	assert.Equal(t, []dendrogram.Merge{
		{Scale: 0.8, Children: []core.NodeRef{core.Original(core.IntID(10)), core.Original(core.TokenID("b"))}, Parent: core.Synthetic(3)},
		{Scale: 0.5, Children: []core.NodeRef{core.Synthetic(3), core.Original(core.IntID(30))}, Parent: core.Synthetic(4)},
	}, merges)
}

func TestAdapter_SolverErrorWrapped(t *testing.T) {
	boom := errors.New("boom")
	fake := solver.Func(func(context.Context, *solver.Request) (*solver.Response, error) {
		return nil, boom
	})
	_, _, err := solver.NewAdapter(fake, solver.DefaultParameters()).Invoke(context.Background(), component())
	assert.ErrorIs(t, err, solver.ErrSolverInvocation)
	assert.ErrorIs(t, err, boom)
}

func TestAdapter_NilResponse(t *testing.T) {
	fake := solver.Func(func(context.Context, *solver.Request) (*solver.Response, error) {
		return nil, nil
	})
	_, _, err := solver.NewAdapter(fake, solver.DefaultParameters()).Invoke(context.Background(), component())
	assert.ErrorIs(t, err, solver.ErrSolverInvocation)
}

func TestAdapter_NegativeIndex(t *testing.T) {
	fake := solver.Func(func(context.Context, *solver.Request) (*solver.Response, error) {
		return &solver.Response{Merges: []solver.IndexedMerge{{Scale: 1, Children: []int{0, -1}, Parent: 3}}}, nil
	})
	_, _, err := solver.NewAdapter(fake, solver.DefaultParameters()).Invoke(context.Background(), component())
	assert.ErrorIs(t, err, solver.ErrMalformedOutput)
}

func TestAdapter_ForeignEdge(t *testing.T) {
	comp := component()
	comp.Edges = append(comp.Edges, core.Edge{X: core.IntID(10), Y: core.IntID(99), Weight: 1})
	called := false
	fake := solver.Func(func(context.Context, *solver.Request) (*solver.Response, error) {
		called = true
		return &solver.Response{}, nil
	})
	_, _, err := solver.NewAdapter(fake, solver.DefaultParameters()).Invoke(context.Background(), comp)
	assert.ErrorIs(t, err, solver.ErrSolverInvocation)
	assert.False(t, called)
}

package builder_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muffato/pywaltrap/builder"
	"github.com/muffato/pywaltrap/components"
	"github.com/muffato/pywaltrap/core"
)

func TestBuild_Topologies(t *testing.T) {
	s, err := builder.Build(nil,
		builder.Clique(0, 4),
		builder.Path(4, 3),
		builder.Star(7, 4),
		builder.Isolated(11, 2),
	)
	require.NoError(t, err)

	assert.Equal(t, 13, s.NodeCount())
	assert.Equal(t, 6+2+3, s.EdgeCount())
	assert.True(t, s.HasEdge(core.IntID(7), core.IntID(10)))
	assert.False(t, s.HasEdge(core.IntID(8), core.IntID(9)))

	comps := components.Split(s)
	require.Len(t, comps, 5)
	assert.Equal(t, []int{4, 3, 4, 1, 1}, []int{comps[0].Len(), comps[1].Len(), comps[2].Len(), comps[3].Len(), comps[4].Len()})
}

func TestBuild_Bridge(t *testing.T) {
	s, err := builder.Build(nil, builder.Clique(0, 3), builder.Clique(3, 3), builder.Bridge(2, 3, 0.25))
	require.NoError(t, err)
	w, err := s.Weight(core.IntID(3), core.IntID(2))
	require.NoError(t, err)
	assert.Equal(t, 0.25, w)
	assert.Len(t, components.Split(s), 1)

	_, err = builder.Build(nil, builder.Clique(0, 2), builder.Bridge(0, 9, 1))
	assert.ErrorIs(t, err, builder.ErrConstructFailed)
	_, err = builder.Build(nil, builder.Clique(0, 2), builder.Bridge(0, 1, 0))
	assert.ErrorIs(t, err, builder.ErrInvalidWeight)
}

func TestBuild_Errors(t *testing.T) {
	cases := map[string]struct {
		cons []builder.Constructor
		want error
	}{
		"clique":      {[]builder.Constructor{builder.Clique(0, 0)}, builder.ErrTooFewVertices},
		"path":        {[]builder.Constructor{builder.Path(0, 1)}, builder.ErrTooFewVertices},
		"star":        {[]builder.Constructor{builder.Star(0, 1)}, builder.ErrTooFewVertices},
		"isolated":    {[]builder.Constructor{builder.Isolated(0, 0)}, builder.ErrTooFewVertices},
		"probability": {[]builder.Constructor{builder.Communities(0, 2, 3, 0.2, 0.5)}, builder.ErrInvalidProbability},
		"rng":         {[]builder.Constructor{builder.Communities(0, 2, 3, 0.9, 0.1)}, builder.ErrNeedRandSource},
		"nil":         {[]builder.Constructor{nil}, builder.ErrConstructFailed},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := builder.Build(nil, tc.cons...)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCommunities_Deterministic(t *testing.T) {
	build := func() *core.EdgeStore {
		s, err := builder.Build([]builder.BuilderOption{builder.WithSeed(7), builder.WithUniformWeight(0.5, 1)},
			builder.Communities(0, 3, 6, 0.8, 0.05))
		require.NoError(t, err)
		return s
	}
	a, b := build(), build()
	assert.Equal(t, a.Nodes(), b.Nodes())
	for _, id := range a.Nodes() {
		assert.Equal(t, a.Neighbors(id), b.Neighbors(id))
	}
}

func TestCommunities_CertainDraws(t *testing.T) {
	s, err := builder.Build(nil, builder.Communities(0, 3, 4, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, 3*6, s.EdgeCount())
	assert.Len(t, components.Split(s), 3)
}

func TestIDSchemesAndWeights(t *testing.T) {
	s, err := builder.Build([]builder.BuilderOption{builder.WithTokenIDs("gene"), builder.WithConstantWeight(0.3)},
		builder.Path(0, 2))
	require.NoError(t, err)
	w, err := s.Weight(core.TokenID("gene0"), core.TokenID("gene1"))
	require.NoError(t, err)
	assert.Equal(t, 0.3, w)

	assert.Panics(t, func() { builder.WithIDScheme(nil) })
	assert.Panics(t, func() { builder.WithRand(nil) })
	assert.Panics(t, func() { builder.ConstantWeightFn(0) })
	assert.Panics(t, func() { builder.UniformWeightFn(0, 1) })

	u := builder.UniformWeightFn(2, 3)
	assert.Equal(t, builder.DefaultEdgeWeight, u(nil))
	v := u(rand.New(rand.NewSource(1)))
	assert.GreaterOrEqual(t, v, 2.0)
	assert.Less(t, v, 3.0)
}

func TestApply(t *testing.T) {
	s := core.NewEdgeStore()
	require.NoError(t, builder.Apply(s, nil, builder.Clique(0, 3)))
	assert.Equal(t, 3, s.EdgeCount())
	assert.ErrorIs(t, builder.Apply(nil, nil), builder.ErrConstructFailed)
}

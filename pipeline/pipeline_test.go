package pipeline_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muffato/pywaltrap/chooser"
	"github.com/muffato/pywaltrap/core"
	"github.com/muffato/pywaltrap/dendrogram"
	"github.com/muffato/pywaltrap/pipeline"
	"github.com/muffato/pywaltrap/solver"
)

func ids(ns ...int64) []core.NodeID {
	out := make([]core.NodeID, len(ns))
	for i, n := range ns {
		out[i] = core.IntID(n)
	}
	return out
}

// flatSolver joins every node of a component at scale 0.5 and suggests the
// given alphas with relevance 1.
func flatSolver(alphas ...float64) solver.Solver {
	return solver.Func(func(_ context.Context, req *solver.Request) (*solver.Response, error) {
		children := make([]int, req.Nodes)
		for i := range children {
			children[i] = i
		}
		resp := &solver.Response{Merges: []solver.IndexedMerge{{Scale: 0.5, Children: children, Parent: req.Nodes}}}
		for _, a := range alphas {
			resp.Cuts = append(resp.Cuts, solver.CandidateCut{Alpha: a, Relevance: 1})
		}
		return resp, nil
	})
}

// blocks links 1-2-3 and 4-5; 6 and above stay isolated.
func blocks(x, y core.NodeID) float64 {
	block := func(id core.NodeID) int64 {
		n, _ := id.Int()
		switch {
		case n <= 3:
			return 0
		case n <= 5:
			return 1
		}
		return n
	}
	if block(x) == block(y) {
		return 1
	}
	return 0
}

func newPipeline(s solver.Solver, opts ...pipeline.Option) *pipeline.Pipeline {
	return pipeline.New(solver.NewAdapter(s, solver.DefaultParameters()), opts...)
}

func TestClusterOnce_NoEdges(t *testing.T) {
	never := solver.Func(func(context.Context, *solver.Request) (*solver.Response, error) {
		t.Fatal("solver called without edges")
		return nil, nil
	})
	exclude := func(id core.NodeID) bool { return id == core.IntID(2) || id == core.IntID(4) }
	pass := pipeline.Pass{Score: pipeline.PairScorer(func(core.NodeID, core.NodeID) float64 { return 0 }, exclude)}

	res, err := newPipeline(never).ClusterOnce(context.Background(), ids(1, 2, 3, 4, 5), pass, true)
	require.NoError(t, err)
	assert.Equal(t, [][]core.NodeID{ids(1), ids(3), ids(5)}, res.Groups)
	assert.Equal(t, ids(2, 4), res.Unclustered)
}

func TestClusterOnce_ComponentOrder(t *testing.T) {
	pass := pipeline.Pass{Score: pipeline.PairScorer(blocks, nil)}
	res, err := newPipeline(flatSolver(0.6), pipeline.WithWorkers(4)).
		ClusterOnce(context.Background(), ids(1, 2, 3, 4, 5, 6), pass, true)
	require.NoError(t, err)

	require.Len(t, res.Groups, 3)
	assert.ElementsMatch(t, ids(1, 2, 3), res.Groups[0])
	assert.ElementsMatch(t, ids(4, 5), res.Groups[1])
	assert.Equal(t, ids(6), res.Groups[2])
	assert.Empty(t, res.Unclustered)
}

func TestClusterOnce_NoCandidateKeepsComponent(t *testing.T) {
	pass := pipeline.Pass{Score: pipeline.PairScorer(blocks, nil)}
	res, err := newPipeline(flatSolver()).ClusterOnce(context.Background(), ids(1, 2, 3), pass, true)
	require.NoError(t, err)
	assert.Equal(t, [][]core.NodeID{ids(1, 2, 3)}, res.Groups)
}

func TestClusterOnce_Lonely(t *testing.T) {
	pass := pipeline.Pass{Score: pipeline.PairScorer(blocks, nil)}
	p := newPipeline(flatSolver(0.4))

	res, err := p.ClusterOnce(context.Background(), ids(1, 2, 3, 6), pass, true)
	require.NoError(t, err)
	assert.Equal(t, [][]core.NodeID{ids(6)}, res.Groups)
	assert.Equal(t, ids(1, 2, 3), res.Unclustered)

	res, err = p.ClusterOnce(context.Background(), ids(1, 2, 3, 6), pass, false)
	require.NoError(t, err)
	assert.Equal(t, [][]core.NodeID{ids(1, 2, 3), ids(6)}, res.Groups)
	assert.Empty(t, res.Unclustered)
}

func TestClusterOnce_ChooserConsulted(t *testing.T) {
	var offered int
	pass := pipeline.Pass{
		Score: pipeline.PairScorer(blocks, nil),
		Choose: chooser.Func(func(_ context.Context, cs []chooser.Candidate) (int, error) {
			offered = len(cs)
			return 1, nil
		}),
	}
	res, err := newPipeline(flatSolver(0.6, 0.4)).ClusterOnce(context.Background(), ids(1, 2), pass, true)
	require.NoError(t, err)
	assert.Equal(t, 2, offered)
	assert.Empty(t, res.Groups)
	assert.Equal(t, ids(1, 2), res.Unclustered)
}

// TestClusterOnce_OverlapDetected feeds a hierarchy whose cut overlaps:
// the conservation check must catch it.
func TestClusterOnce_OverlapDetected(t *testing.T) {
	s := solver.Func(func(context.Context, *solver.Request) (*solver.Response, error) {
		return &solver.Response{
			Cuts: []solver.CandidateCut{{Alpha: 0.9, Relevance: 1}},
			Merges: []solver.IndexedMerge{
				{Scale: 0.8, Children: []int{0, 1}, Parent: 3},
				{Scale: 0.5, Children: []int{3, 2}, Parent: 4},
			},
		}, nil
	})
	pass := pipeline.Pass{Score: pipeline.PairScorer(blocks, nil)}
	_, err := newPipeline(s).ClusterOnce(context.Background(), ids(1, 2, 3), pass, true)
	require.ErrorIs(t, err, pipeline.ErrInvariantViolation)
	assert.Contains(t, err.Error(), "monotonicity")
}

func TestClusterOnce_TiedScalesConserveItems(t *testing.T) {
	s := solver.Func(func(context.Context, *solver.Request) (*solver.Response, error) {
		return solver.ParseOutput(strings.NewReader("0.500:0+1-->3\n0.500:3+2-->4\n\n0.600 1.0\n"))
	})
	pass := pipeline.Pass{Score: pipeline.PairScorer(blocks, nil)}
	res, err := newPipeline(s).ClusterOnce(context.Background(), ids(1, 2, 3), pass, true)
	require.NoError(t, err)
	require.Len(t, res.Groups, 1)
	assert.ElementsMatch(t, ids(1, 2, 3), res.Groups[0])
	assert.Empty(t, res.Unclustered)
}

func TestClusterOnce_ForeignEdgesIgnored(t *testing.T) {
	score := func(context.Context, []core.NodeID) ([]core.Edge, []core.NodeID, error) {
		return []core.Edge{
			{X: core.IntID(1), Y: core.IntID(2), Weight: 1},
			{X: core.IntID(1), Y: core.IntID(99), Weight: 1},
			{X: core.IntID(2), Y: core.IntID(3), Weight: 1},
		}, ids(3), nil
	}
	res, err := newPipeline(flatSolver(0.6)).ClusterOnce(context.Background(), ids(1, 2, 3), pipeline.Pass{Score: score}, true)
	require.NoError(t, err)
	require.Len(t, res.Groups, 1)
	assert.ElementsMatch(t, ids(1, 2), res.Groups[0])
	assert.Equal(t, ids(3), res.Unclustered)
}

func TestClusterOnce_Errors(t *testing.T) {
	boom := errors.New("boom")
	pass := pipeline.Pass{Score: pipeline.PairScorer(blocks, nil)}

	failing := solver.Func(func(context.Context, *solver.Request) (*solver.Response, error) { return nil, boom })
	_, err := newPipeline(failing).ClusterOnce(context.Background(), ids(1, 2, 3), pass, true)
	assert.ErrorIs(t, err, solver.ErrSolverInvocation)
	assert.ErrorIs(t, err, boom)

	badScore := pipeline.Pass{Score: func(context.Context, []core.NodeID) ([]core.Edge, []core.NodeID, error) {
		return nil, nil, boom
	}}
	_, err = newPipeline(flatSolver()).ClusterOnce(context.Background(), ids(1), badScore, true)
	assert.ErrorIs(t, err, boom)

	cyclic := solver.Func(func(context.Context, *solver.Request) (*solver.Response, error) {
		return &solver.Response{Merges: []solver.IndexedMerge{
			{Scale: 1, Children: []int{0, 4}, Parent: 3},
			{Scale: 2, Children: []int{3, 1}, Parent: 4},
		}}, nil
	})
	_, err = newPipeline(cyclic).ClusterOnce(context.Background(), ids(1, 2), pass, true)
	assert.ErrorIs(t, err, dendrogram.ErrMalformedMerge)
}

func TestApplyMultipleRounds_ConservesItems(t *testing.T) {
	pass := pipeline.Pass{Score: pipeline.PairScorer(blocks, nil)}
	groups := [][]core.NodeID{ids(1, 2, 3, 4, 5, 6), ids(7, 8), ids(1, 2)}
	p := newPipeline(flatSolver(0.6))

	for rounds := 1; rounds <= 3; rounds++ {
		passes := make([]pipeline.Pass, rounds)
		for i := range passes {
			passes[i] = pass
		}
		res, err := p.ApplyMultipleRounds(context.Background(), groups, passes, true)
		require.NoError(t, err)
		assert.Equal(t, 10, res.Size()+len(res.Unclustered))
		assert.Len(t, res.Groups, 6)
	}
}

func TestApplyMultipleRounds_FeedsNextRound(t *testing.T) {
	var seen [][]core.NodeID
	record := func(_ context.Context, items []core.NodeID) ([]core.Edge, []core.NodeID, error) {
		seen = append(seen, append([]core.NodeID(nil), items...))
		return pipeline.PairScorer(blocks, nil)(context.Background(), items)
	}
	first := pipeline.Pass{Score: pipeline.PairScorer(blocks, nil)}
	second := pipeline.Pass{Score: record}

	res, err := newPipeline(flatSolver(0.4)).ApplyMultipleRounds(context.Background(),
		[][]core.NodeID{ids(1, 2, 3, 4, 5, 6)}, []pipeline.Pass{first, second}, false)
	require.NoError(t, err)

	// round one leaves every component as a lonely group
	assert.Equal(t, [][]core.NodeID{ids(1, 2, 3), ids(4, 5), ids(6)}, seen)
	assert.Len(t, res.Groups, 3)
}

func TestApplyMultipleRounds_ErrorContext(t *testing.T) {
	boom := errors.New("boom")
	bad := pipeline.Pass{Score: func(context.Context, []core.NodeID) ([]core.Edge, []core.NodeID, error) {
		return nil, nil, boom
	}}
	_, err := newPipeline(flatSolver()).ApplyMultipleRounds(context.Background(),
		[][]core.NodeID{ids(1)}, []pipeline.Pass{{Score: pipeline.PairScorer(blocks, nil)}, bad}, true)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "group 0 round 1")
}

type countingRecorder struct {
	mu          sync.Mutex
	solves      int
	groups      map[pipeline.GroupKind]int
	unclustered int
}

func (r *countingRecorder) Solved(int, int, time.Duration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.solves++
}

func (r *countingRecorder) Emitted(kind pipeline.GroupKind, _ int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.groups == nil {
		r.groups = make(map[pipeline.GroupKind]int)
	}
	r.groups[kind]++
}

func (r *countingRecorder) Unclustered(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unclustered += n
}

func TestClusterOnce_RecorderAndHook(t *testing.T) {
	rec := &countingRecorder{}
	var hooked []int
	hook := func(_ context.Context, ci int, d *dendrogram.Dendrogram) {
		hooked = append(hooked, ci)
		assert.Equal(t, 1, d.Len())
	}
	p := newPipeline(flatSolver(0.6), pipeline.WithRecorder(rec), pipeline.WithDendrogramHook(hook))

	pass := pipeline.Pass{Score: pipeline.PairScorer(blocks, nil)}
	_, err := p.ClusterOnce(context.Background(), ids(1, 2, 3, 4, 5, 6), pass, true)
	require.NoError(t, err)

	assert.Equal(t, 2, rec.solves)
	assert.Equal(t, map[pipeline.GroupKind]int{pipeline.KindCluster: 2, pipeline.KindSingleton: 1}, rec.groups)
	assert.Equal(t, []int{0, 1}, hooked)
}

func TestClusterOnce_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	pass := pipeline.Pass{Score: pipeline.PairScorer(blocks, nil)}
	_, err := newPipeline(flatSolver(0.6)).ClusterOnce(ctx, ids(1, 2, 3), pass, true)
	assert.ErrorIs(t, err, context.Canceled)
}

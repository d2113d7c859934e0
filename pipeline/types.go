// SPDX-License-Identifier: MIT
// Package: pipeline
//
// types.go - passes, results, options and sentinels.

package pipeline

import (
	"context"
	"errors"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/muffato/pywaltrap/chooser"
	"github.com/muffato/pywaltrap/core"
	"github.com/muffato/pywaltrap/dendrogram"
)

// ErrInvariantViolation indicates that items were lost or duplicated.
var ErrInvariantViolation = errors.New("pipeline: item count not conserved (check merge monotonicity)")

// ScoreFunc computes the edges between items and the items that must stay
// unclustered. Edges touching an unknown or excluded item are ignored.
type ScoreFunc func(ctx context.Context, items []core.NodeID) (edges []core.Edge, preexcluded []core.NodeID, err error)

// Pass is one clustering round.
type Pass struct {
	Score  ScoreFunc
	Choose chooser.Chooser // nil selects the first candidate
}

// Result is the output of a pass or of a chain of passes.
type Result struct {
	// Groups in emission order.
	Groups [][]core.NodeID

	// Unclustered holds preexcluded items, plus lonely nodes when requested.
	Unclustered []core.NodeID
}

// Size returns the number of grouped items.
func (r *Result) Size() int {
	n := 0
	for _, g := range r.Groups {
		n += len(g)
	}

	return n
}

// GroupKind labels where an emitted group came from.
type GroupKind string

const (
	KindSingleton GroupKind = "singleton" // degree-zero node
	KindComponent GroupKind = "component" // component without candidate cuts
	KindCluster   GroupKind = "cluster"   // cluster of the chosen cut
	KindLonely    GroupKind = "lonely"    // unclustered nodes kept as a group
)

// Recorder observes pipeline activity. Implementations must be safe for
// concurrent use: Solved is called from worker goroutines.
type Recorder interface {
	Solved(nodes, edges int, took time.Duration, err error)
	Emitted(kind GroupKind, size int)
	Unclustered(items int)
}

type nopRecorder struct{}

func (nopRecorder) Solved(int, int, time.Duration, error) {}
func (nopRecorder) Emitted(GroupKind, int)                {}
func (nopRecorder) Unclustered(int)                       {}

// DendrogramHook observes the dendrogram built for component ci of a pass.
// It runs on the emission loop, one call at a time.
type DendrogramHook func(ctx context.Context, ci int, d *dendrogram.Dendrogram)

// Option configures a Pipeline.
type Option func(*Options)

// Options holds configurable parameters for New.
type Options struct {
	Logger   *zap.Logger
	Workers  int
	Recorder Recorder
	Hook     DendrogramHook
}

// DefaultOptions returns a no-op logger and recorder and one worker per CPU.
func DefaultOptions() Options {
	return Options{
		Logger:   zap.NewNop(),
		Workers:  runtime.GOMAXPROCS(0),
		Recorder: nopRecorder{},
	}
}

// WithLogger installs l. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithWorkers bounds the number of components solved at once. n < 1 means 1.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 1 {
			n = 1
		}
		o.Workers = n
	}
}

// WithRecorder installs r. A nil recorder is ignored.
func WithRecorder(r Recorder) Option {
	return func(o *Options) {
		if r != nil {
			o.Recorder = r
		}
	}
}

// WithDendrogramHook installs h.
func WithDendrogramHook(h DendrogramHook) Option {
	return func(o *Options) { o.Hook = h }
}

// SPDX-License-Identifier: MIT
// Package: chooser
//
// types.go - Candidate, Chooser, options and sentinels.

package chooser

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/muffato/pywaltrap/dendrogram"
)

// ErrSelection indicates a chooser that returned no usable index, or a
// selection requested over an empty candidate list.
var ErrSelection = errors.New("chooser: invalid selection")

// Candidate is one candidate cut together with its flattened result.
type Candidate struct {
	Alpha     float64
	Relevance float64
	Cut       dendrogram.CutResult
}

// Chooser picks one of several candidates and returns its index.
// Implementations are only ever called with two or more candidates.
type Chooser interface {
	Choose(ctx context.Context, candidates []Candidate) (int, error)
}

// Func adapts an ordinary function to the Chooser interface.
type Func func(ctx context.Context, candidates []Candidate) (int, error)

// Choose calls f(ctx, candidates).
func (f Func) Choose(ctx context.Context, candidates []Candidate) (int, error) {
	return f(ctx, candidates)
}

// Option configures Choose and Prompt.
type Option func(*Options)

// Options holds configurable parameters.
type Options struct {
	// Logger receives the selected candidate. Defaults to a no-op logger.
	Logger *zap.Logger
}

// DefaultOptions returns Options with a no-op logger.
func DefaultOptions() Options {
	return Options{Logger: zap.NewNop()}
}

// WithLogger installs l. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

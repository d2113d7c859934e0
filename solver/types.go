// SPDX-License-Identifier: MIT
// Package: solver
//
// types.go - request/response model, parameters, sentinels.

package solver

import (
	"context"
	"errors"
)

// Sentinel errors for solver operations.
var (
	// ErrSolverInvocation wraps any failure to complete a solver call.
	ErrSolverInvocation = errors.New("solver: invocation failed")

	// ErrMalformedOutput indicates merge records that cannot be parsed or translated.
	ErrMalformedOutput = errors.New("solver: malformed output")
)

// Parameters are passed through to the solver without interpretation.
type Parameters struct {
	// RandomWalkLength is the length of the random walks (positive).
	RandomWalkLength int `yaml:"random_walk_length" validate:"gte=1"`

	// VerboseLevel is the solver's own verbosity.
	VerboseLevel int `yaml:"verbose_level" validate:"gte=0"`

	// ShowProgress lets the solver report progress on its stderr.
	ShowProgress bool `yaml:"show_progress"`

	// MemoryLimit caps the solver's memory use (0 = unlimited).
	MemoryLimit int `yaml:"memory_limit" validate:"gte=0"`

	// QualityFunction selects the solver's partition quality function.
	QualityFunction int `yaml:"quality_function" validate:"gte=0"`
}

// DefaultParameters returns walks of length 5, quiet, no memory limit.
func DefaultParameters() Parameters {
	return Parameters{RandomWalkLength: 5}
}

// IndexedEdge is an edge in solver index space.
type IndexedEdge struct {
	I, J   int
	Weight float64
}

// IndexedMerge is a merge record in solver index space.
type IndexedMerge struct {
	Scale    float64
	Children []int
	Parent   int
}

// CandidateCut is a (threshold, relevance) pair suggested by the solver.
type CandidateCut struct {
	Alpha     float64
	Relevance float64
}

// Request is one component submitted to the solver.
type Request struct {
	// Nodes is n; valid node indices are 0..n-1.
	Nodes int

	// Edges of the component, each undirected pair once.
	Edges []IndexedEdge

	// Params are forwarded verbatim.
	Params Parameters
}

// Response is the solver answer. Merges use indices >= Nodes for the
// clusters the solver creates; Cuts keep the solver's order.
type Response struct {
	Cuts   []CandidateCut
	Merges []IndexedMerge
}

// Solver runs the walktrap computation for one component.
type Solver interface {
	Solve(ctx context.Context, req *Request) (*Response, error)
}

// Func adapts an ordinary function to the Solver interface.
type Func func(ctx context.Context, req *Request) (*Response, error)

// Solve calls f(ctx, req).
func (f Func) Solve(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}

// SPDX-License-Identifier: MIT
// Package: solver
//
// exec.go - Solver backed by the walktrap executable.

package solver

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// DefaultBinary is the executable looked up in PATH when none is configured.
const DefaultBinary = "walktrap"

// detailLevel makes walktrap print the full merge list with scales.
const detailLevel = 2

// Exec runs one walktrap process per component: edges go to stdin as
// "i j weight" lines, stdout is read with ParseOutput.
type Exec struct {
	path      string
	extraArgs []string
	stderr    io.Writer
	logger    *zap.Logger
}

// ExecOption configures an Exec solver.
type ExecOption func(*Exec)

// WithExtraArgs appends args after the generated flags.
func WithExtraArgs(args ...string) ExecOption {
	return func(e *Exec) { e.extraArgs = append(e.extraArgs, args...) }
}

// WithStderr sets where progress output goes when Parameters.ShowProgress is on.
// Defaults to os.Stderr.
func WithStderr(w io.Writer) ExecOption {
	return func(e *Exec) {
		if w != nil {
			e.stderr = w
		}
	}
}

// WithExecLogger sets the logger for process-level records.
func WithExecLogger(l *zap.Logger) ExecOption {
	return func(e *Exec) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewExec returns a Solver running the executable at path (DefaultBinary when empty).
func NewExec(path string, opts ...ExecOption) *Exec {
	if path == "" {
		path = DefaultBinary
	}
	e := &Exec{path: path, stderr: os.Stderr, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Args returns the command-line flags for p:
// -t<walk length> -d2 -m<memory limit>, plus -s unless progress is shown.
// VerboseLevel and QualityFunction have no flag on the executable and are
// only honored by in-process solvers.
func (e *Exec) Args(p Parameters) []string {
	args := []string{
		"-t" + strconv.Itoa(p.RandomWalkLength),
		"-d" + strconv.Itoa(detailLevel),
		"-m" + strconv.Itoa(p.MemoryLimit),
	}
	if !p.ShowProgress {
		args = append(args, "-s")
	}

	return append(args, e.extraArgs...)
}

// Solve implements Solver.
//
// Steps:
//  1. Serialize req.Edges as "i j weight" lines.
//  2. Run the process under ctx; stderr is forwarded when progress is shown
//     and captured for error reports otherwise.
//  3. Parse stdout.
func (e *Exec) Solve(ctx context.Context, req *Request) (*Response, error) {
	// 1) Input
	var in bytes.Buffer
	for _, edge := range req.Edges {
		in.WriteString(strconv.Itoa(edge.I))
		in.WriteByte(' ')
		in.WriteString(strconv.Itoa(edge.J))
		in.WriteByte(' ')
		in.WriteString(strconv.FormatFloat(edge.Weight, 'g', -1, 64))
		in.WriteByte('\n')
	}

	// 2) Process
	args := e.Args(req.Params)
	cmd := exec.CommandContext(ctx, e.path, args...)
	var out, errBuf bytes.Buffer
	cmd.Stdin = &in
	cmd.Stdout = &out
	if req.Params.ShowProgress {
		cmd.Stderr = e.stderr
	} else {
		cmd.Stderr = &errBuf
	}
	e.logger.Debug("starting walktrap",
		zap.String("path", e.path),
		zap.Strings("args", args),
		zap.Int("nodes", req.Nodes),
		zap.Int("edges", len(req.Edges)),
	)
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(errBuf.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s: %w: %s", ErrSolverInvocation, e.path, err, msg)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrSolverInvocation, e.path, err)
	}

	// 3) Output
	return ParseOutput(&out)
}

var _ Solver = (*Exec)(nil)

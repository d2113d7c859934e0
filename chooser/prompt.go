// SPDX-License-Identifier: MIT
// Package: chooser
//
// prompt.go - interactive selection.

package chooser

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"
)

// Prompt asks a human to pick a candidate. It writes one "> summary" line per
// candidate to out, then reads an index from in, retrying on empty,
// non-numeric or out-of-range input. End of input selects 0, and so does a
// Prompt that is not interactive.
//
// A Prompt keeps buffered input between calls and is not safe for
// concurrent use.
type Prompt struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
	logger      *zap.Logger
}

// NewPrompt returns a Prompt reading from in and writing to out.
func NewPrompt(in io.Reader, out io.Writer, interactive bool, opts ...Option) *Prompt {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return &Prompt{in: bufio.NewReader(in), out: out, interactive: interactive, logger: o.Logger}
}

// NewTerminalPrompt returns a Prompt on stdin/stderr that is interactive only
// when stdin is a terminal.
func NewTerminalPrompt(opts ...Option) *Prompt {
	return NewPrompt(os.Stdin, os.Stderr, term.IsTerminal(int(os.Stdin.Fd())), opts...)
}

// Choose implements Chooser.
func (p *Prompt) Choose(ctx context.Context, candidates []Candidate) (int, error) {
	for _, c := range candidates {
		fmt.Fprintln(p.out, "> "+Describe(c))
	}
	if !p.interactive {
		fmt.Fprintln(p.out, "no user input")
		return 0, nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		fmt.Fprint(p.out, "choice? ")
		line, err := p.in.ReadString('\n')
		if x, perr := strconv.Atoi(strings.TrimSpace(line)); perr == nil {
			if x >= 0 && x < len(candidates) {
				return x, nil
			}
			p.logger.Debug("choice out of range", zap.Int("choice", x), zap.Int("candidates", len(candidates)))
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(p.out)
			return 0, nil
		}
		if err != nil {
			return 0, fmt.Errorf("chooser: read choice: %w", err)
		}
	}
}

var _ Chooser = (*Prompt)(nil)

// SPDX-License-Identifier: MIT
// Package: solver
//
// loader.go - parser for the walktrap text output.

package solver

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
)

// mergeArrow separates children from the parent on a merge line.
const mergeArrow = "-->"

// ParseOutput reads solver output from r.
//
// Steps:
//  1. Merge lines until the first blank line (or EOF). Any merge line that
//     does not parse is fatal: ErrMalformedOutput with its line number.
//  2. Candidate lines "<alpha> <relevance>"; lines that are not two floats
//     are skipped.
//  3. Merges are returned sorted by (scale, children, parent) descending, so
//     on equal scales a parent comes before the merges it contains.
//
// Complexity: O(L log L) for L merge lines.
func ParseOutput(r io.Reader) (*Response, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	resp := &Response{}
	lineNo := 0

	// 1) Merges
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			break
		}
		m, err := parseMerge(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedOutput, lineNo, err)
		}
		resp.Merges = append(resp.Merges, m)
	}

	// 2) Candidate cuts
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			continue
		}
		alpha, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			continue
		}
		relevance, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			continue
		}
		resp.Cuts = append(resp.Cuts, CandidateCut{Alpha: alpha, Relevance: relevance})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSolverInvocation, err)
	}

	// 3) Descending (scale, children, parent)
	slices.SortStableFunc(resp.Merges, func(a, b IndexedMerge) int {
		if c := cmp.Compare(b.Scale, a.Scale); c != 0 {
			return c
		}
		if c := slices.Compare(b.Children, a.Children); c != 0 {
			return c
		}
		return cmp.Compare(b.Parent, a.Parent)
	})

	return resp, nil
}

// parseMerge parses "<scale>:<c1>+<c2>+...--><parent>".
func parseMerge(line string) (IndexedMerge, error) {
	scaleText, rest, ok := strings.Cut(line, ":")
	if !ok {
		return IndexedMerge{}, fmt.Errorf("missing ':' in %q", line)
	}
	scale, err := strconv.ParseFloat(strings.TrimSpace(scaleText), 64)
	if err != nil {
		return IndexedMerge{}, fmt.Errorf("bad scale in %q", line)
	}
	childText, parentText, ok := strings.Cut(rest, mergeArrow)
	if !ok {
		return IndexedMerge{}, fmt.Errorf("missing %q in %q", mergeArrow, line)
	}

	parts := strings.Split(childText, "+")
	children := make([]int, 0, len(parts))
	for _, p := range parts {
		c, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return IndexedMerge{}, fmt.Errorf("bad child %q in %q", p, line)
		}
		children = append(children, c)
	}
	parent, err := strconv.Atoi(strings.TrimSpace(parentText))
	if err != nil {
		return IndexedMerge{}, fmt.Errorf("bad parent in %q", line)
	}

	return IndexedMerge{Scale: scale, Children: children, Parent: parent}, nil
}

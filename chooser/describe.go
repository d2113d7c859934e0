// SPDX-License-Identifier: MIT
// Package: chooser
//
// describe.go - human summary of a candidate.

package chooser

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// Describe renders c as
// "alpha=%f relevance=%f clusters=%d size=%d lonely=%d sizes={...}".
func Describe(c Candidate) string {
	sizes := c.Cut.Sizes()
	return fmt.Sprintf("alpha=%f relevance=%f clusters=%d size=%d lonely=%d sizes={%s}",
		c.Alpha, c.Relevance, len(sizes), c.Cut.ClusteredSize(), len(c.Cut.Unclustered), NewSizeStats(sizes))
}

// SizeStats summarizes a cluster size distribution.
type SizeStats struct {
	N                        int
	Min, Q1, Median, Q3, Max int
	Mean                     float64
}

// NewSizeStats computes the distribution of sizes. Quartiles are empirical
// (stat.Empirical): the smallest size whose cumulative share reaches q.
// Complexity: O(n log n).
func NewSizeStats(sizes []int) SizeStats {
	s := SizeStats{N: len(sizes)}
	if s.N == 0 {
		return s
	}
	sorted := make([]float64, len(sizes))
	for i, v := range sizes {
		sorted[i] = float64(v)
	}
	sort.Float64s(sorted)

	q := func(p float64) int { return int(stat.Quantile(p, stat.Empirical, sorted, nil)) }
	s.Min, s.Max = int(sorted[0]), int(sorted[s.N-1])
	s.Q1, s.Median, s.Q3 = q(0.25), q(0.5), q(0.75)
	s.Mean = stat.Mean(sorted, nil)

	return s
}

// String renders "min=.. q1=.. med=.. q3=.. max=.. mean=.. N=..", or "N=0".
func (s SizeStats) String() string {
	if s.N == 0 {
		return "N=0"
	}
	var b strings.Builder
	b.WriteString("min=" + strconv.Itoa(s.Min))
	b.WriteString(" q1=" + strconv.Itoa(s.Q1))
	b.WriteString(" med=" + strconv.Itoa(s.Median))
	b.WriteString(" q3=" + strconv.Itoa(s.Q3))
	b.WriteString(" max=" + strconv.Itoa(s.Max))
	b.WriteString(" mean=" + strconv.FormatFloat(s.Mean, 'f', 2, 64))
	b.WriteString(" N=" + strconv.Itoa(s.N))

	return b.String()
}

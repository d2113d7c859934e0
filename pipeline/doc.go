// Package pipeline runs walktrap clustering over batches of items.
//
// One pass (ClusterOnce) over a list of items:
//
//  1. Score the items: Pass.Score returns the weighted edges between them and
//     the items that must never be clustered (preexcluded).
//  2. Accumulate the remaining items and the edges in a core.EdgeStore and
//     split it into connected components.
//  3. Degree-zero nodes are emitted as one-element groups. Every other
//     component is solved and its dendrogram built; components are solved in
//     parallel, bounded by WithWorkers.
//  4. Emission is sequential, in component order: a component without
//     candidate cuts is one group; otherwise chooser.Choose picks a cut, its
//     clusters are emitted and its unclustered nodes either join the
//     unclustered accumulator or form one more group.
//  5. Conservation: |unclustered| + Σ|group| must equal |items|.
//
// ApplyMultipleRounds chains passes: every group produced by one pass is the
// input of the next, per input group, and checks the same conservation on the
// whole batch.
//
// A conservation failure (ErrInvariantViolation) is a logic defect, never a
// runtime condition. The usual cause is a merge hierarchy that is not
// height-monotonic, which makes dendrogram cuts overlap; look at the solver
// output before looking at the check.
package pipeline

// Package dendrogram holds the merge hierarchy produced by the walktrap solver
// for one connected component, and cuts it into flat clusters.
//
// A Dendrogram is built once with New and is immutable afterwards; Cut may be
// called any number of times (each call starts from a fresh seen-set).
//
// Cut(threshold) scans the merges by decreasing scale. A merge whose scale is
// below threshold and whose parent has not yet been expanded during this call
// is expanded into a cluster by an explicit-stack depth-first walk; every
// internal node met on the way is marked as seen and every leaf reached leaves
// the unclustered set. High-scale merges are therefore examined first and,
// when already below threshold, claim their subtree before an ancestor does.
//
// Overlapping clusters: the seen check only applies to the parent of the
// merge being scanned. A later, lower-scale merge whose parent was not seen
// re-expands its whole subtree, including parts already emitted. With the
// example merges (0.8: 1+2 → s5) and (0.5: s5+3 → s6) cut at 0.9, the result is
// the two clusters {1,2} and {1,2,3}. This is kept as-is: it only happens when
// the hierarchy is not height-monotonic with respect to the threshold, and
// the pipeline's item-count check reports it loudly downstream.
//
// Errors:
//
//   - ErrMalformedMerge   New refused a structurally broken merge list.
package dendrogram

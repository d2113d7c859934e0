// Package components partitions an edge store into connected components,
// the independent subproblems handed one by one to the walktrap solver.
//
// Key features:
//   - Split(src, opts...): strips self-loops and non-positive weights, isolates
//     degree-zero nodes as Singleton components, links the rest with an
//     insertion-ordered union-find (Linker).
//   - Deterministic: node order inside a component is first-insertion order;
//     component order is the insertion position of each component's first node.
//   - Each Component owns a private copy of its edge subset.
//   - Integrity: a node listed twice by the source is logged as a warning
//     (ErrComponentIntegrity) and processing continues. *core.EdgeStore lists
//     every node once and self-loops are stripped before linking, so the
//     warning only fires for custom Source implementations.
//
// Complexity:
//
//   - Time:   O((V + E)·α(V)).
//   - Memory: O(V + E).
package components

// Package builder constructs deterministic weighted graphs in a core.EdgeStore
// for tests, benchmarks and examples of community detection.
//
// Composition:
//
//	s, err := builder.Build(
//	    []builder.BuilderOption{builder.WithSeed(42)},
//	    builder.Clique(0, 5),       // nodes 0..4
//	    builder.Clique(5, 5),       // nodes 5..9
//	    builder.Bridge(4, 5, 0.1),  // one weak link between the two
//	    builder.Isolated(10, 2),    // degree-zero nodes 10, 11
//	)
//
// Constructors take the index of their first node so that several of them
// can be laid side by side; indices become NodeIDs through the ID scheme
// (integers by default, see WithIDScheme).
//
// Constructors:
//
//	Clique(first, n)                    complete graph K_n
//	Path(first, n)                      simple path P_n
//	Star(first, n)                      center = first, n-1 leaves
//	Isolated(first, n)                  n degree-zero nodes
//	Bridge(i, j, w)                     one edge between existing indices
//	Communities(first, k, size, pIn, pOut)
//	                                    planted partition: k blocks of size
//	                                    nodes, pairs linked with pIn inside a
//	                                    block and pOut across blocks
//
// Determinism: same options, seed and constructor order give the same store,
// node order and neighbor order included.
package builder

// Package solver is the boundary with the external walktrap solver.
//
// The solver itself is opaque: it receives one connected component as a
// dense index space 0..n-1 plus its edges, and answers with a list of merge
// records (scale, children, parent) and a list of candidate cuts
// (alpha, relevance). Everything here is plumbing around that single
// synchronous request/response:
//
//   - Solver / Func     the collaborator contract (in-process or external).
//   - Adapter           indexes a component, calls the Solver, translates
//                       indices back: i < n → core.Original(nodes[i]),
//                       i >= n → core.Synthetic(i).
//   - ParseOutput       reads the solver's text output.
//   - Exec              a Solver backed by the walktrap executable.
//
// Output text format:
//
//	<scale>:<child1>+<child2>+...--><parent>    one line per merge
//	                                            a single blank line
//	<alpha> <relevance>                         one line per candidate cut
//
// A malformed merge line is fatal (ErrMalformedOutput); candidate lines that
// do not hold two floats are skipped.
//
// Errors:
//
//   - ErrSolverInvocation  the solver could not be reached or failed.
//   - ErrMalformedOutput   merge records cannot be trusted.
package solver

// Package pywaltrap finds communities in weighted undirected graphs by
// driving the walktrap random-walk clustering program.
//
// 🚀 What does it do?
//
//	The walktrap solver itself is an external collaborator. This module owns
//	everything around the call:
//		• accumulating a weighted graph from raw scores (core)
//		• splitting it into connected components (components)
//		• talking to the solver and translating identifiers (solver)
//		• rebuilding and cutting the merge hierarchy (dendrogram)
//		• choosing among the solver's candidate cuts (chooser)
//		• multi-round clustering with item-count conservation (pipeline)
//
// Packages:
//
//	core/        - NodeID, NodeRef, Edge and the thread-safe EdgeStore
//	components/  - connected components with an insertion-ordered union-find
//	solver/      - Solver contract, Adapter, output parser, walktrap executable
//	dendrogram/  - merge tree, Cut at a threshold, Graphviz rendering
//	chooser/     - automatic and interactive cut selection
//	pipeline/    - ClusterOnce and ApplyMultipleRounds
//	metrics/     - Prometheus recorder for pipeline activity
//	config/      - YAML configuration with validation
//	builder/     - deterministic community graphs for tests and examples
//	cmd/walktrap - command line front end
//
// Quick start:
//
//	adapter := solver.NewAdapter(solver.NewExec(""), solver.DefaultParameters())
//	p := pipeline.New(adapter, pipeline.WithWorkers(4))
//	res, err := p.ClusterOnce(ctx, items, pipeline.Pass{
//	    Score:  pipeline.PairScorer(similarity, nil),
//	    Choose: chooser.MostRelevant(),
//	}, true)
//
// Installation:
//
//	go install github.com/muffato/pywaltrap/cmd/walktrap@latest
package pywaltrap

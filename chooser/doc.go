// Package chooser selects one candidate cut per component.
//
// The solver suggests several (alpha, relevance) thresholds for a component.
// Choose cuts the dendrogram at every one of them and hands the full list of
// Candidates to a Chooser, which returns the index to keep:
//
//	First()           always index 0
//	MostRelevant()    highest relevance, first on ties
//	Prompt            asks on a terminal; index 0 when no one can answer
//
// A single candidate is selected without consulting the Chooser at all.
//
// Describe renders the one-line summary shown to a human:
//
//	alpha=0.500000 relevance=0.900000 clusters=2 size=5 lonely=0 sizes={min=2 q1=2 med=2 q3=3 max=3 mean=2.50 N=2}
package chooser

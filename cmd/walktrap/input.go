package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/muffato/pywaltrap/core"
)

// inputDoc is the JSON input:
//
//	{
//	  "groups":   [["1", "2", "3"], ["4", "5"]],
//	  "edges":    [{"x": "1", "y": "2", "w": 0.8}, ...],
//	  "excluded": ["3"]
//	}
//
// Identifiers are strings normalized with core.ParseNodeID. Without groups,
// every node named by an edge forms one group.
type inputDoc struct {
	Groups   [][]core.NodeID `json:"groups"`
	Edges    []inputEdge     `json:"edges"`
	Excluded []core.NodeID   `json:"excluded"`
}

type inputEdge struct {
	X core.NodeID `json:"x"`
	Y core.NodeID `json:"y"`
	W float64     `json:"w"`
}

// outputDoc is the JSON output.
type outputDoc struct {
	Groups      [][]core.NodeID `json:"groups"`
	Unclustered []core.NodeID   `json:"unclustered"`
}

// readInput decodes r and loads its edges into a store.
func readInput(r io.Reader) (*inputDoc, *core.EdgeStore, error) {
	var doc inputDoc
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, nil, fmt.Errorf("read input: %w", err)
	}

	store := core.NewEdgeStore()
	for _, e := range doc.Edges {
		store.AddEdge(e.X, e.Y, e.W)
	}
	if len(doc.Groups) == 0 {
		doc.Groups = [][]core.NodeID{store.Nodes()}
	}

	return &doc, store, nil
}

func writeOutput(w io.Writer, doc outputDoc) error {
	if doc.Groups == nil {
		doc.Groups = [][]core.NodeID{}
	}
	if doc.Unclustered == nil {
		doc.Unclustered = []core.NodeID{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}

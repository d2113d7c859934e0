// SPDX-License-Identifier: MIT
// Package: dendrogram
//
// render.go - Graphviz drawing of the merge tree.

package dendrogram

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/muffato/pywaltrap/core"
)

// Render draws the merge tree with Graphviz in the given format
// (graphviz.XDOT for dot text, graphviz.SVG, graphviz.PNG, ...).
// Internal nodes point to their children; edge labels are merge scales.
// Nodes that take part in no merge are drawn unconnected.
func (d *Dendrogram) Render(ctx context.Context, w io.Writer, format graphviz.Format) error {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("dendrogram: render: %w", err)
	}
	defer func() { _ = gv.Close() }()

	graph, err := gv.Graph()
	if err != nil {
		return fmt.Errorf("dendrogram: render: %w", err)
	}
	defer func() { _ = graph.Close() }()

	drawn := make(map[core.NodeRef]*graphviz.Node)
	node := func(ref core.NodeRef) (*graphviz.Node, error) {
		if n, ok := drawn[ref]; ok {
			return n, nil
		}
		// separate name spaces keep a token "(5,)" apart from synthetic 5
		name := "n:" + ref.String()
		if ref.IsSynthetic() {
			name = "s:" + ref.String()
		}
		n, err := graph.CreateNodeByName(name)
		if err != nil {
			return nil, err
		}
		n.SetLabel(ref.String())
		drawn[ref] = n

		return n, nil
	}

	for i, m := range d.merges {
		parent, err := node(m.Parent)
		if err != nil {
			return fmt.Errorf("dendrogram: render: %w", err)
		}
		for j, c := range m.Children {
			child, err := node(c)
			if err != nil {
				return fmt.Errorf("dendrogram: render: %w", err)
			}
			e, err := graph.CreateEdgeByName("m"+strconv.Itoa(i)+"_"+strconv.Itoa(j), parent, child)
			if err != nil {
				return fmt.Errorf("dendrogram: render: %w", err)
			}
			e.SetLabel(strconv.FormatFloat(m.Scale, 'g', 4, 64))
		}
	}
	for _, id := range d.nodes {
		if _, err := node(core.Original(id)); err != nil {
			return fmt.Errorf("dendrogram: render: %w", err)
		}
	}

	if err := gv.Render(ctx, graph, format, w); err != nil {
		return fmt.Errorf("dendrogram: render: %w", err)
	}

	return nil
}

// Package visualization renders neuron networks for inspection.
package visualization

import (
	"fmt"
	"strings"

	"github.com/nvandessel/bionet/internal/models"
)

// Format specifies the output format for graph rendering.
type Format string

const (
	FormatDOT  Format = "dot"
	FormatJSON Format = "json"
)

// ParseFormat accepts "dot" or "json".
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatDOT:
		return FormatDOT, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown graph format %q (valid: dot, json)", s)
	}
}

// bandColors maps neuron bands to DOT fill colors.
var bandColors = map[models.Band]string{
	models.BandSensory: "goldenrod",
	models.BandMotor:   "tomato",
	models.BandOther:   "steelblue",
}

// RenderDOT produces a Graphviz digraph of the network. Nodes are named by
// index and labelled with the neuron name. Inhibitory neurons get a thick
// black outline; gap junctions are dashed without arrowheads.
func RenderDOT(n *models.Network) string {
	var b strings.Builder
	b.WriteString("digraph bionet {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=ellipse, style=filled, fontname=\"Helvetica\"];\n")
	b.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n\n")

	for _, nr := range n.Neurons {
		attrs := fmt.Sprintf("label=%q, fillcolor=%q, tooltip=\"%s #%d\"",
			nr.Name, bandColors[nr.Band], nr.Band, nr.Index)
		if !nr.Excitatory {
			attrs += ", color=\"black\", penwidth=2.5"
		}
		b.WriteString(fmt.Sprintf("  n%d [%s];\n", nr.Index, attrs))
	}
	b.WriteString("\n")

	for _, g := range n.SortedGroups() {
		style := "solid"
		extra := ""
		if g.GapJunction() {
			style = "dashed"
			extra = ", dir=none"
		}
		b.WriteString(fmt.Sprintf("  n%d -> n%d [label=\"%d\", style=%s%s, tooltip=\"%s w=%s\"];\n",
			g.Origin, g.Target, g.Connections, style, extra, g.Transmitter, weightLabel(g.Weight)))
	}

	b.WriteString("}\n")
	return b.String()
}

// RenderJSON produces a JSON-ready graph with nodes and edges arrays.
func RenderJSON(n *models.Network) map[string]interface{} {
	nodes := make([]map[string]interface{}, 0, len(n.Neurons))
	for _, nr := range n.Neurons {
		nodes = append(nodes, map[string]interface{}{
			"id":         nr.Index,
			"name":       nr.Name,
			"band":       string(nr.Band),
			"excitatory": nr.Excitatory,
		})
	}

	groups := n.SortedGroups()
	edges := make([]map[string]interface{}, 0, len(groups))
	for _, g := range groups {
		edges = append(edges, map[string]interface{}{
			"source":       g.Origin,
			"target":       g.Target,
			"type":         g.Type,
			"connections":  g.Connections,
			"transmitter":  g.Transmitter,
			"weight":       g.Weight,
			"gap_junction": g.GapJunction(),
		})
	}

	return map[string]interface{}{
		"nodes":      nodes,
		"edges":      edges,
		"node_count": len(nodes),
		"edge_count": len(edges),
		"synapses":   n.ExpandedCount(),
	}
}

func weightLabel(w float32) string {
	return fmt.Sprintf("%.3f", w)
}

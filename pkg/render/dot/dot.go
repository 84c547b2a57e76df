// Package dot serializes a graph to Graphviz DOT text for external
// tooling. Only the textual format is produced; rasterization is left to
// the consumer.
package dot

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/graphscape/pkg/graph"
)

// Options configures DOT output.
type Options struct {
	// Detailed includes type, cluster, and degree information in node
	// labels. When false, only the display label is shown.
	Detailed bool

	// Positions pins nodes to their layout coordinates (DOT "pos"
	// attribute, points, neato-compatible). Ignored for unlaid-out nodes.
	Positions bool
}

// Marshal converts a graph to DOT format.
//
// Cluster markers produced by the render optimizer are drawn with dashed
// outlines and grey fill to distinguish them from real nodes.
func Marshal(d graph.Data, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=ellipse, style=\"filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	degrees := d.Degrees()
	for i := range d.Nodes {
		n := &d.Nodes[i]
		attrs := fmtAttrs(n, degrees[n.ID], opts)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, l := range d.Links {
		if l.Weight > 0 {
			fmt.Fprintf(&buf, "  %q -> %q [weight=%g];\n", l.Source, l.Target, l.Weight)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", l.Source, l.Target)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(n *graph.Node, degree int, opts Options) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, degree, opts.Detailed))}
	if n.Color != "" {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", n.Color))
	}
	if n.IsCluster {
		attrs = append(attrs, "style=\"filled,dashed\"", "fillcolor=lightgrey")
	}
	if opts.Positions && n.Position != nil {
		attrs = append(attrs, fmt.Sprintf("pos=\"%g,%g!\"", n.Position.X, n.Position.Y))
	}
	return attrs
}

func fmtLabel(n *graph.Node, degree int, detailed bool) string {
	if !detailed {
		return n.DisplayLabel()
	}

	parts := []string{fmt.Sprintf("type: %s", n.Type)}
	if n.Cluster != "" {
		parts = append(parts, fmt.Sprintf("cluster: %s", n.Cluster))
	}
	if n.IsCluster {
		parts = append(parts, fmt.Sprintf("members: %d", n.ClusterSize))
	}
	parts = append(parts, fmt.Sprintf("degree: %d", degree))

	return n.DisplayLabel() + "\n" + strings.Join(parts, "\n")
}

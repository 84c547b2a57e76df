package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphscape/pkg/filter"
	"github.com/matzehuels/graphscape/pkg/graph"
)

// filterCommand creates the filter command for extracting subgraphs.
func (c *CLI) filterCommand() *cobra.Command {
	var (
		output    string
		nodeTypes []string
		linkTypes []string
		tags      []string
		clusters  []string
		minConn   int
		maxConn   int
	)

	cmd := &cobra.Command{
		Use:   "filter [graph.json]",
		Short: "Extract a subgraph matching the given criteria",
		Long: `Extract a subgraph matching the given criteria.

Criteria combine with AND: node types, link types, connection bounds, tags,
and cluster labels. Links whose endpoints are filtered out are dropped.
Connection bounds count only links that survive the link-type filter.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := filter.Filter{
				Tags:     tags,
				Clusters: clusters,
			}
			for _, t := range nodeTypes {
				f.NodeTypes = append(f.NodeTypes, graph.NodeType(t))
			}
			for _, t := range linkTypes {
				f.LinkTypes = append(f.LinkTypes, graph.LinkType(t))
			}
			if cmd.Flags().Changed("min-connections") {
				f.MinConnections = &minConn
			}
			if cmd.Flags().Changed("max-connections") {
				f.MaxConnections = &maxConn
			}
			return c.runFilter(cmd.Context(), args[0], output, f)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.filtered.json)")
	cmd.Flags().StringSliceVar(&nodeTypes, "node-type", nil, "keep only these node types (note, tag, user, category)")
	cmd.Flags().StringSliceVar(&linkTypes, "link-type", nil, "keep only these link types (reference, tag, collaboration, hierarchy)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "keep only nodes carrying one of these tags")
	cmd.Flags().StringSliceVar(&clusters, "cluster", nil, "keep only nodes in one of these clusters")
	cmd.Flags().IntVar(&minConn, "min-connections", 0, "minimum link count per node")
	cmd.Flags().IntVar(&maxConn, "max-connections", 0, "maximum link count per node")

	return cmd
}

// runFilter loads the graph, applies the filter, and writes the subgraph.
func (c *CLI) runFilter(ctx context.Context, input, output string, f filter.Filter) error {
	d, err := graph.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	eng, _, err := c.newEngine(ctx, true)
	if err != nil {
		return fmt.Errorf("initialize engine: %w", err)
	}
	defer eng.Close()

	eng.SetData(d)

	out, err := eng.FilterData(f)
	if err != nil {
		return fmt.Errorf("filter graph: %w", err)
	}

	outputPath := output
	if outputPath == "" {
		outputPath = derivedPath(input, ".filtered.json")
	}
	if err := graph.WriteFile(out, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Filter complete")
	printFile(outputPath)
	printDetail("%d of %d nodes kept", len(out.Nodes), len(d.Nodes))
	printStats(len(out.Nodes), len(out.Links), false)

	return nil
}

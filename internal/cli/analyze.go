package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphscape/pkg/graph"
)

// analyzeCommand creates the analyze command for structural analytics.
func (c *CLI) analyzeCommand() *cobra.Command {
	var (
		output  string
		asJSON  bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [graph.json]",
		Short: "Compute structural analytics for a graph",
		Long: `Compute structural analytics for a graph.

The report covers degree centrality, clustering coefficient, connected
communities, bridge links, isolates, hubs, and path metrics (diameter and
average path length on small graphs). Use --json for the full
machine-readable report.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAnalyze(cmd.Context(), args[0], output, asJSON, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the JSON report to a file instead of stdout")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full report as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runAnalyze loads the graph and prints or writes the analytics report.
func (c *CLI) runAnalyze(ctx context.Context, input, output string, asJSON, noCache bool) error {
	d, err := graph.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	eng, _, err := c.newEngine(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize engine: %w", err)
	}
	defer eng.Close()

	eng.SetData(d)

	spinner := newSpinnerWithContext(ctx, "Computing analytics...")
	spinner.Start()

	report, err := eng.ComputeAnalytics(ctx)
	if err != nil {
		spinner.StopWithError("Analytics failed")
		return fmt.Errorf("compute analytics: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if output != "" || asJSON {
		data, merr := json.MarshalIndent(report, "", "  ")
		if merr != nil {
			return fmt.Errorf("encode report: %w", merr)
		}
		if output == "" {
			fmt.Println(string(data))
			return nil
		}
		if werr := os.WriteFile(output, data, 0o644); werr != nil {
			return fmt.Errorf("write report %s: %w", output, werr)
		}
		printSuccess("Analytics complete")
		printFile(output)
		return nil
	}

	printSuccess("Analytics complete")
	printNewline()
	printKeyValue("Nodes", fmt.Sprintf("%d", report.Stats.NodeCount))
	printKeyValue("Links", fmt.Sprintf("%d", report.Stats.LinkCount))
	printKeyValue("Density", fmt.Sprintf("%.4f", report.Stats.Density))
	printKeyValue("Avg degree", fmt.Sprintf("%.2f", report.Stats.AvgDegree))
	printKeyValue("Degree spread", fmt.Sprintf("%.2f ± %.2f (min %d, max %d)",
		report.Stats.MeanDegree, report.Stats.StdDevDegree, report.Stats.MinDegree, report.Stats.MaxDegree))
	printKeyValue("Clustering coeff", fmt.Sprintf("%.4f", report.ClusteringCoefficient))
	printKeyValue("Communities", fmt.Sprintf("%d", report.CommunityCount))
	printKeyValue("Bridges", fmt.Sprintf("%d", len(report.Bridges)))
	printKeyValue("Isolates", fmt.Sprintf("%d", len(report.Isolates)))
	printKeyValue("Hubs", summarizeIDs(report.Hubs, 5))
	if report.Stats.PathMetricsExact {
		printKeyValue("Diameter", fmt.Sprintf("%d", report.Stats.Diameter))
		printKeyValue("Avg path length", fmt.Sprintf("%.2f", report.Stats.AvgPathLength))
	} else {
		printKeyValue("Path metrics", "skipped (graph too large)")
	}
	printNewline()
	printStats(report.Stats.NodeCount, report.Stats.LinkCount, c.cacheActivity.hit())

	return nil
}

// summarizeIDs renders up to max IDs, eliding the rest with a count.
func summarizeIDs(ids []string, max int) string {
	if len(ids) == 0 {
		return "none"
	}
	if len(ids) <= max {
		return strings.Join(ids, ", ")
	}
	return fmt.Sprintf("%s, … (%d more)", strings.Join(ids[:max], ", "), len(ids)-max)
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphscape/pkg/cluster"
	"github.com/matzehuels/graphscape/pkg/graph"
)

// clusterCommand creates the cluster command for community labeling.
func (c *CLI) clusterCommand() *cobra.Command {
	var (
		strategy   string
		output     string
		noCache    bool
		k          int
		resolution float64
		seed       int64
	)

	cmd := &cobra.Command{
		Use:   "cluster [graph.json]",
		Short: "Assign cluster labels to graph nodes",
		Long: `Assign cluster labels to graph nodes.

The cluster command reads a graph.json document, runs the chosen clustering
strategy, and writes a labeled copy of the graph. Available strategies:

  component   connected components (default)
  louvain     modularity-based community detection
  spectral    normalized Laplacian embedding plus k-means
  kmeans      k-means over node positions (requires a prior layout)

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("seed") {
				c.seedOverride = &seed
			}
			return c.runCluster(cmd.Context(), args[0], strategy, output, noCache, k, resolution)
		},
	}

	cmd.Flags().StringVarP(&strategy, "strategy", "s", "component", "clustering strategy")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.clustered.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().IntVarP(&k, "clusters", "k", 0, "cluster count for kmeans and spectral (0 uses the default)")
	cmd.Flags().Float64Var(&resolution, "resolution", 0, "louvain resolution (0 uses the default)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed for reproducible clustering (default from config)")

	return cmd
}

// runCluster loads the graph, applies the clustering strategy, and writes output.
func (c *CLI) runCluster(ctx context.Context, input, strategy, output string, noCache bool, k int, resolution float64) error {
	d, err := graph.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	eng, _, err := c.newEngine(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize engine: %w", err)
	}
	defer eng.Close()

	params := cluster.Params{}
	if k > 0 {
		params["k"] = k
	}
	if resolution > 0 {
		params["resolution"] = resolution
	}

	eng.SetData(d)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Clustering with %s...", strategy))
	spinner.Start()

	err = eng.ApplyClustering(ctx, strategy, params)
	if err != nil {
		spinner.StopWithError("Clustering failed")
		return fmt.Errorf("cluster graph: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	out, err := eng.Data()
	if err != nil {
		return err
	}

	outputPath := output
	if outputPath == "" {
		outputPath = derivedPath(input, ".clustered.json")
	}
	if err := graph.WriteFile(out, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Clustering complete")
	printFile(outputPath)
	printDetail("%d clusters", out.Metadata.ClusterCount)
	printStats(len(out.Nodes), len(out.Links), c.cacheActivity.hit())
	printNewline()
	printNextStep("Analyze", "graphscape analyze "+outputPath)

	return nil
}

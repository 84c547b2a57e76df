package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphscape/pkg/graph"
	"github.com/matzehuels/graphscape/pkg/layout"
)

// layoutCommand creates the layout command for positioning graph nodes.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		algorithm  string
		output     string
		noCache    bool
		iterations int
		width      float64
		height     float64
		seed       int64
	)

	cmd := &cobra.Command{
		Use:   "layout [graph.json]",
		Short: "Compute node positions for a graph",
		Long: `Compute node positions for a graph.

The layout command reads a graph.json document, runs the chosen layout
algorithm, and writes a positioned copy of the graph. Available algorithms:

  force         force-directed with Barnes-Hut approximation (default)
  circular      nodes on a circle at equally spaced angles
  hierarchical  layered by BFS depth from zero in-degree roots
  grid          row-major square grid
  radial        concentric rings, nodes assigned round-robin by index

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("seed") {
				c.seedOverride = &seed
			}
			return c.runLayout(cmd.Context(), args[0], algorithm, output, noCache, iterations, width, height)
		},
	}

	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "", "layout algorithm (default from config, usually force)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().IntVar(&iterations, "iterations", 0, "force-directed iteration count (0 uses the algorithm default)")
	cmd.Flags().Float64Var(&width, "width", 0, "layout area width (0 uses the algorithm default)")
	cmd.Flags().Float64Var(&height, "height", 0, "layout area height (0 uses the algorithm default)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed for reproducible layouts (default from config)")

	return cmd
}

// runLayout loads the graph, applies the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input, algorithm, output string, noCache bool, iterations int, width, height float64) error {
	d, err := graph.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	eng, cfg, err := c.newEngine(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize engine: %w", err)
	}
	defer eng.Close()

	if algorithm == "" {
		algorithm = cfg.Layout.Algorithm
	}
	params := layout.Params{}
	if iterations == 0 {
		iterations = cfg.Layout.Iterations
	}
	if iterations > 0 {
		params["iterations"] = iterations
	}
	if width > 0 {
		params["width"] = width
	}
	if height > 0 {
		params["height"] = height
	}

	eng.SetData(d)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", algorithm))
	spinner.Start()

	err = eng.ApplyLayout(ctx, algorithm, params)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
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
		outputPath = derivedPath(input, ".layout.json")
	}
	if err := graph.WriteFile(out, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(out.Nodes), len(out.Links), c.cacheActivity.hit())
	printNewline()
	printNextStep("Cluster", "graphscape cluster "+outputPath)

	return nil
}

// derivedPath swaps the input file's extension for suffix.
func derivedPath(input, suffix string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + suffix
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphscape/pkg/graph"
	"github.com/matzehuels/graphscape/pkg/render"
)

// optimizeCommand creates the optimize command for viewport culling and
// cluster aggregation.
func (c *CLI) optimizeCommand() *cobra.Command {
	var (
		output string
		mode   string
		width  float64
		height float64
		panX   float64
		panY   float64
		zoom   float64
	)

	cmd := &cobra.Command{
		Use:   "optimize [graph.json]",
		Short: "Cull and aggregate a graph for rendering",
		Long: `Cull and aggregate a graph for rendering.

The optimize command computes a world-space viewport from the canvas size,
pan, and zoom, culls off-screen nodes and links, and aggregates nearby
nodes into cluster markers when the visible set is large. The output is a
JSON document with the optimized node and link sets, the thresholds used,
and culling metrics.

The graph should be positioned first (see 'graphscape layout').`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runOptimize(cmd.Context(), args[0], output, mode, width, height, graph.Position{X: panX, Y: panY}, zoom)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "performance mode: auto (default), quality, performance")
	cmd.Flags().Float64Var(&width, "width", 1920, "canvas width in pixels")
	cmd.Flags().Float64Var(&height, "height", 1080, "canvas height in pixels")
	cmd.Flags().Float64Var(&panX, "pan-x", 0, "horizontal pan offset")
	cmd.Flags().Float64Var(&panY, "pan-y", 0, "vertical pan offset")
	cmd.Flags().Float64Var(&zoom, "zoom", 1, "zoom factor")

	return cmd
}

// runOptimize loads the graph, optimizes it for the viewport, and writes the
// result.
func (c *CLI) runOptimize(ctx context.Context, input, output, mode string, width, height float64, pan graph.Position, zoom float64) error {
	d, err := graph.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	eng, cfg, err := c.newEngine(ctx, true)
	if err != nil {
		return fmt.Errorf("initialize engine: %w", err)
	}
	defer eng.Close()

	if mode == "" {
		mode = cfg.Optimizer.Mode
	}

	vp, err := eng.CalculateViewport(width, height, pan, zoom)
	if err != nil {
		return fmt.Errorf("calculate viewport: %w", err)
	}

	eng.SetData(d)
	out, err := eng.OptimizeGraph(ctx, vp, render.PerformanceMode(mode))
	if err != nil {
		return fmt.Errorf("optimize graph: %w", err)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	if output == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Optimization complete")
	printFile(output)
	printDetail("level %s, %d of %d nodes visible, %d final",
		out.ClusteringLevel, out.Metrics.VisibleNodes, out.Metrics.TotalNodes, out.Metrics.FinalNodes)
	for _, r := range out.Recommendations {
		printWarning("%s", r)
	}

	return nil
}

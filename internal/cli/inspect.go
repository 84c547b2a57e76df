package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphscape/pkg/graph"
)

// inspectCommand creates the inspect command for interactive node browsing.
func (c *CLI) inspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [graph.json]",
		Short: "Browse graph nodes interactively",
		Long: `Browse graph nodes interactively.

Opens a terminal browser over the graph's nodes, sorted by degree. Selecting
a node prints its details: type, position, cluster, tags, and the links
touching it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(args[0])
		},
	}
	return cmd
}

// runInspect loads the graph and opens the node browser.
func (c *CLI) runInspect(input string) error {
	d, err := graph.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}
	if len(d.Nodes) == 0 {
		printInfo("Graph has no nodes")
		return nil
	}

	model := NewNodeListModel(d)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return fmt.Errorf("run browser: %w", err)
	}

	result, ok := final.(NodeListModel)
	if !ok || result.Selected == nil {
		return nil
	}
	printNode(d, *result.Selected)
	return nil
}

// printNode prints a node's details and its links.
func printNode(d graph.Data, n graph.Node) {
	printNewline()
	fmt.Println(StyleTitle.Render(n.DisplayLabel()))
	printKeyValue("ID", n.ID)
	printKeyValue("Type", string(n.Type))
	if n.Position != nil {
		printKeyValue("Position", fmt.Sprintf("(%.1f, %.1f)", n.Position.X, n.Position.Y))
	}
	if n.Cluster != "" {
		printKeyValue("Cluster", n.Cluster)
	}
	if len(n.Metadata.Tags) > 0 {
		printKeyValue("Tags", strings.Join(n.Metadata.Tags, ", "))
	}

	var touching []graph.Link
	for _, l := range d.Links {
		if l.Touches(n.ID) {
			touching = append(touching, l)
		}
	}
	printKeyValue("Links", fmt.Sprintf("%d", len(touching)))
	for _, l := range touching {
		printDetail("%s %s %s (%s)", l.Source, iconArrow, l.Target, l.Type)
	}
}

package layout

import (
	"math/rand"

	"github.com/matzehuels/graphscape/pkg/graph"
)

// hierarchical arranges nodes in horizontal rows by breadth-first depth.
//
// Roots are nodes with zero incoming links. Subsequent levels are built by
// BFS over outgoing links, visiting each node once. Nodes unreachable from
// any root (cycle members, or every node when no root exists) are collected
// into a final catch-all level so the layout stays total.
type hierarchical struct{}

func (hierarchical) Name() string { return Hierarchical }

func (hierarchical) Defaults() Params {
	return Params{
		"level_separation": 120.0,
		"node_spacing":     100.0,
	}
}

func (hierarchical) Execute(d graph.Data, p Params, _ *rand.Rand) (graph.Data, error) {
	out := d.Clone()
	if len(out.Nodes) == 0 {
		return out, nil
	}

	levelSep := p.Float("level_separation", 120)
	nodeSpacing := p.Float("node_spacing", 100)

	idx := out.NodeIndex()

	incoming := make(map[string]int, len(out.Nodes))
	outgoing := make(map[string][]string, len(out.Nodes))
	for _, l := range out.Links {
		if _, ok := idx[l.Source]; !ok {
			continue
		}
		if _, ok := idx[l.Target]; !ok {
			continue
		}
		incoming[l.Target]++
		outgoing[l.Source] = append(outgoing[l.Source], l.Target)
	}

	var roots []string
	for _, n := range out.Nodes {
		if incoming[n.ID] == 0 {
			roots = append(roots, n.ID)
		}
	}

	visited := make(map[string]bool, len(out.Nodes))
	var levels [][]string
	frontier := roots
	for len(frontier) > 0 {
		var level, next []string
		for _, id := range frontier {
			if visited[id] {
				continue
			}
			visited[id] = true
			level = append(level, id)
			next = append(next, outgoing[id]...)
		}
		if len(level) > 0 {
			levels = append(levels, level)
		}
		frontier = next
	}

	// Catch-all row for nodes BFS never reached.
	var rest []string
	for _, n := range out.Nodes {
		if !visited[n.ID] {
			rest = append(rest, n.ID)
		}
	}
	if len(rest) > 0 {
		levels = append(levels, rest)
	}

	for row, level := range levels {
		y := float64(row) * levelSep
		offset := -float64(len(level)-1) * nodeSpacing / 2
		for col, id := range level {
			out.Nodes[idx[id]].Position = &graph.Position{
				X: offset + float64(col)*nodeSpacing,
				Y: y,
			}
		}
	}
	return out, nil
}

package render

import (
	"hash/fnv"

	"github.com/google/uuid"

	"github.com/matzehuels/graphscape/pkg/graph"
)

// clusterStrengthBoost is applied to a link's strength when both of its
// endpoints collapse into cluster markers.
const clusterStrengthBoost = 1.5

// clusterPalette colors cluster markers by their dominant tag.
var clusterPalette = []string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2",
	"#59a14f", "#edc948", "#b07aa1", "#ff9da7",
}

// aggregate greedily groups positioned nodes within radius of a seed node
// into synthetic cluster markers. Groups of one stay as-is; unpositioned
// nodes are never absorbed.
//
// Links are remapped onto cluster IDs: self-loops created by both endpoints
// collapsing into the same cluster are dropped, duplicates are deduplicated
// by (source, target), and cluster-to-cluster links get a strength boost.
func aggregate(nodes []graph.Node, links []graph.Link, level ClusteringLevel, radius float64) ([]graph.Node, []graph.Link) {
	absorbed := make(map[string]string, len(nodes)) // node ID -> cluster ID
	taken := make([]bool, len(nodes))

	var out []graph.Node
	for i, seed := range nodes {
		if taken[i] {
			continue
		}
		if seed.Position == nil {
			out = append(out, seed)
			continue
		}

		group := []int{i}
		for j := i + 1; j < len(nodes); j++ {
			if taken[j] || nodes[j].Position == nil {
				continue
			}
			if seed.Position.DistanceTo(*nodes[j].Position) <= radius {
				group = append(group, j)
			}
		}
		if len(group) == 1 {
			out = append(out, seed)
			continue
		}

		marker := buildMarker(nodes, group, level)
		for _, j := range group {
			taken[j] = true
			absorbed[nodes[j].ID] = marker.ID
		}
		out = append(out, marker)
	}

	return out, remapLinks(links, absorbed)
}

// buildMarker creates the synthetic node for a group: centroid position,
// size from the largest member scaled by level, color from the group's
// most frequent tag, and the seed node as representative.
func buildMarker(nodes []graph.Node, group []int, level ClusteringLevel) graph.Node {
	var cx, cy, maxSize float64
	tags := make(map[string]int)
	children := make([]string, 0, len(group))
	for _, j := range group {
		n := nodes[j]
		cx += n.Position.X
		cy += n.Position.Y
		if n.Size > maxSize {
			maxSize = n.Size
		}
		for _, tag := range n.Metadata.Tags {
			tags[tag]++
		}
		children = append(children, n.ID)
	}
	count := float64(len(group))
	if maxSize == 0 {
		maxSize = 10
	}

	return graph.Node{
		ID:             "cluster-" + uuid.NewString(),
		Label:          nodes[group[0]].DisplayLabel(),
		Type:           nodes[group[0]].Type,
		Position:       &graph.Position{X: cx / count, Y: cy / count},
		Size:           maxSize * levelRadiusScale(level),
		Color:          tagColor(dominantTag(tags)),
		IsCluster:      true,
		ChildNodes:     children,
		ClusterSize:    len(group),
		Representative: nodes[group[0]].ID,
	}
}

func dominantTag(tags map[string]int) string {
	var best string
	bestCount := 0
	for tag, count := range tags {
		if count > bestCount || (count == bestCount && (best == "" || tag < best)) {
			best = tag
			bestCount = count
		}
	}
	return best
}

func tagColor(tag string) string {
	h := fnv.New32a()
	h.Write([]byte(tag))
	return clusterPalette[h.Sum32()%uint32(len(clusterPalette))]
}

func remapLinks(links []graph.Link, absorbed map[string]string) []graph.Link {
	type key struct{ source, target string }
	seen := make(map[key]bool, len(links))

	var out []graph.Link
	for _, l := range links {
		srcCluster, srcAbsorbed := absorbed[l.Source]
		dstCluster, dstAbsorbed := absorbed[l.Target]
		if srcAbsorbed {
			l.Source = srcCluster
		}
		if dstAbsorbed {
			l.Target = dstCluster
		}
		if l.Source == l.Target {
			continue
		}
		k := key{l.Source, l.Target}
		if seen[k] {
			continue
		}
		seen[k] = true

		if srcAbsorbed && dstAbsorbed {
			l.Metadata.Strength = min(l.Metadata.Strength*clusterStrengthBoost, 1)
		}
		out = append(out, l)
	}
	return out
}

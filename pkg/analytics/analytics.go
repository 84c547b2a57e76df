// Package analytics computes structural metrics over a graph: per-node
// centrality, clustering coefficient, community partition, bridge links,
// isolates, hubs, and aggregate degree/path statistics.
//
// Computation is read-only and deterministic: the input graph is never
// mutated and reports for equal graphs are equal. Path metrics (diameter,
// average path length) are exact but quadratic in node count, so they are
// skipped above a configurable node cap.
package analytics

import (
	"slices"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/stat"

	"github.com/matzehuels/graphscape/pkg/cluster"
	"github.com/matzehuels/graphscape/pkg/graph"
)

// MaxExactPathNodes is the default node cap for exact path metrics.
// Above it, Diameter and AvgPathLength are reported as zero with
// PathMetricsExact false.
const MaxExactPathNodes = 1000

// HubDegreeFactor marks a node as a hub when its degree exceeds this
// multiple of the mean degree.
const HubDegreeFactor = 2.0

// WeightedBridgeThreshold is the legacy weight cutoff for the heuristic
// bridge list. Links heavier than it are reported in WeightedBridges
// regardless of whether removing them disconnects the graph.
const WeightedBridgeThreshold = 0.8

// =============================================================================
// Report
// =============================================================================

// Stats aggregates degree and path statistics for a graph.
type Stats struct {
	NodeCount    int     `json:"node_count"`
	LinkCount    int     `json:"link_count"`
	AvgDegree    float64 `json:"avg_degree"`
	Density      float64 `json:"density"`
	MeanDegree   float64 `json:"mean_degree"`
	StdDevDegree float64 `json:"stddev_degree"`
	MinDegree    int     `json:"min_degree"`
	MaxDegree    int     `json:"max_degree"`

	// Path metrics are exact BFS results when PathMetricsExact is true,
	// and zero when the graph exceeds the engine's node cap.
	Diameter         int     `json:"diameter"`
	AvgPathLength    float64 `json:"avg_path_length"`
	PathMetricsExact bool    `json:"path_metrics_exact"`
}

// Report is the full analytics result for one graph.
type Report struct {
	// Degree maps node ID to its raw incident-link count.
	Degree map[string]int `json:"degree"`

	// Centrality maps node ID to normalized degree centrality in [0,1]
	// (raw degree divided by n-1).
	Centrality map[string]float64 `json:"centrality"`

	// LocalClustering maps node ID to its local clustering coefficient:
	// closed neighbor pairs over possible pairs, zero below two
	// neighbors.
	LocalClustering map[string]float64 `json:"local_clustering"`

	// ClusteringCoefficient is the average of LocalClustering over all
	// nodes.
	ClusteringCoefficient float64 `json:"clustering_coefficient"`

	// Communities maps node ID to its connected-component label.
	Communities    map[string]string `json:"communities"`
	CommunityCount int               `json:"community_count"`

	// Bridges lists the IDs of links whose removal disconnects their
	// component, found by Tarjan's low-link algorithm.
	Bridges []string `json:"bridges"`

	// WeightedBridges lists links with weight above
	// WeightedBridgeThreshold. This is a display heuristic, not a
	// structural property.
	WeightedBridges []string `json:"weighted_bridges"`

	// Isolates lists nodes with no incident links.
	Isolates []string `json:"isolates"`

	// Hubs lists nodes whose degree exceeds HubDegreeFactor times the
	// mean degree.
	Hubs []string `json:"hubs"`

	Stats Stats `json:"stats"`
}

// =============================================================================
// Engine
// =============================================================================

// Engine computes analytics reports.
type Engine struct {
	maxExactPathNodes int
	logger            *log.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxExactPathNodes sets the node cap for exact path metrics.
func WithMaxExactPathNodes(n int) Option {
	return func(e *Engine) { e.maxExactPathNodes = n }
}

// WithLogger sets the engine logger. A nil logger silences engine logging.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates an analytics engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{maxExactPathNodes: MaxExactPathNodes}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Compute builds the full analytics report for d.
func (e *Engine) Compute(d graph.Data) Report {
	degrees := d.Degrees()
	adj := d.Adjacency()

	r := Report{
		Degree:          degrees,
		Centrality:      centrality(&d, degrees),
		LocalClustering: localClustering(adj),
		Communities:     cluster.Components(&d),
		Bridges:         bridges(&d),
		WeightedBridges: weightedBridges(&d),
		Isolates:        isolates(&d, degrees),
		Hubs:            hubs(&d, degrees),
	}
	r.ClusteringCoefficient = meanCoefficient(r.LocalClustering)
	r.CommunityCount = countLabels(r.Communities)
	r.Stats = e.stats(&d, degrees, adj)

	if e.logger != nil {
		e.logger.Debug("computed analytics",
			"nodes", len(d.Nodes),
			"links", len(d.Links),
			"communities", r.CommunityCount,
			"bridges", len(r.Bridges))
	}
	return r
}

// =============================================================================
// Per-node metrics
// =============================================================================

func centrality(d *graph.Data, degrees map[string]int) map[string]float64 {
	out := make(map[string]float64, len(d.Nodes))
	denom := float64(len(d.Nodes) - 1)
	for _, n := range d.Nodes {
		if denom <= 0 {
			out[n.ID] = 0
			continue
		}
		out[n.ID] = float64(degrees[n.ID]) / denom
	}
	return out
}

// localClustering computes each node's local clustering coefficient.
// Nodes with fewer than two neighbors get zero.
func localClustering(adj map[string][]string) map[string]float64 {
	// Deduplicated neighbor sets (parallel links must not inflate the
	// triangle count).
	neighbors := make(map[string]map[string]bool, len(adj))
	for id, nbs := range adj {
		set := make(map[string]bool, len(nbs))
		for _, nb := range nbs {
			if nb != id {
				set[nb] = true
			}
		}
		neighbors[id] = set
	}

	out := make(map[string]float64, len(adj))
	for id, set := range neighbors {
		k := len(set)
		if k < 2 {
			out[id] = 0
			continue
		}
		closed := 0
		for a := range set {
			for b := range set {
				if a < b && neighbors[a][b] {
					closed++
				}
			}
		}
		out[id] = float64(2*closed) / float64(k*(k-1))
	}
	return out
}

// meanCoefficient averages the per-node coefficients.
func meanCoefficient(local map[string]float64) float64 {
	if len(local) == 0 {
		return 0
	}
	var total float64
	for _, v := range local {
		total += v
	}
	return total / float64(len(local))
}

func isolates(d *graph.Data, degrees map[string]int) []string {
	var out []string
	for _, n := range d.Nodes {
		if degrees[n.ID] == 0 {
			out = append(out, n.ID)
		}
	}
	slices.Sort(out)
	return out
}

func hubs(d *graph.Data, degrees map[string]int) []string {
	if len(d.Nodes) == 0 {
		return nil
	}
	var sum float64
	for _, deg := range degrees {
		sum += float64(deg)
	}
	mean := sum / float64(len(d.Nodes))
	if mean == 0 {
		return nil
	}

	var out []string
	for _, n := range d.Nodes {
		if float64(degrees[n.ID]) > HubDegreeFactor*mean {
			out = append(out, n.ID)
		}
	}
	slices.Sort(out)
	return out
}

func countLabels(labels map[string]string) int {
	seen := make(map[string]bool, len(labels))
	for _, l := range labels {
		seen[l] = true
	}
	return len(seen)
}

// =============================================================================
// Statistics
// =============================================================================

func (e *Engine) stats(d *graph.Data, degrees map[string]int, adj map[string][]string) Stats {
	s := Stats{
		NodeCount: len(d.Nodes),
		LinkCount: len(d.Links),
	}
	n := float64(len(d.Nodes))
	l := float64(len(d.Links))
	if n > 0 {
		s.AvgDegree = 2 * l / n
	}
	if n > 1 {
		s.Density = 2 * l / (n * (n - 1))
	}

	if len(d.Nodes) > 0 {
		degs := make([]float64, 0, len(d.Nodes))
		s.MinDegree = degrees[d.Nodes[0].ID]
		for _, node := range d.Nodes {
			deg := degrees[node.ID]
			degs = append(degs, float64(deg))
			if deg < s.MinDegree {
				s.MinDegree = deg
			}
			if deg > s.MaxDegree {
				s.MaxDegree = deg
			}
		}
		s.MeanDegree = stat.Mean(degs, nil)
		if len(degs) > 1 {
			s.StdDevDegree = stat.StdDev(degs, nil)
		}
	}

	if len(d.Nodes) > 0 && len(d.Nodes) <= e.maxExactPathNodes {
		s.Diameter, s.AvgPathLength = pathMetrics(d, adj)
		s.PathMetricsExact = true
	}
	return s
}

// pathMetrics runs a BFS from every node and returns the diameter (longest
// shortest path) and the average shortest-path length over all reachable
// ordered pairs. Unreachable pairs are excluded rather than counted as
// infinite.
func pathMetrics(d *graph.Data, adj map[string][]string) (int, float64) {
	var diameter int
	var sum float64
	var pairs int

	dist := make(map[string]int, len(d.Nodes))
	for _, start := range d.Nodes {
		clear(dist)
		dist[start.ID] = 0
		queue := []string{start.ID}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, nb := range adj[cur] {
				if _, seen := dist[nb]; seen {
					continue
				}
				dist[nb] = dist[cur] + 1
				queue = append(queue, nb)
			}
		}
		for id, dd := range dist {
			if id == start.ID {
				continue
			}
			if dd > diameter {
				diameter = dd
			}
			sum += float64(dd)
			pairs++
		}
	}

	if pairs == 0 {
		return 0, 0
	}
	return diameter, sum / float64(pairs)
}

package render

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphscape/pkg/device"
	gserrors "github.com/matzehuels/graphscape/pkg/errors"
	"github.com/matzehuels/graphscape/pkg/graph"
)

// PerformanceMode biases the quality/performance trade-off of a pass.
type PerformanceMode string

// Performance modes.
const (
	ModeQuality     PerformanceMode = "quality"
	ModePerformance PerformanceMode = "performance"
	ModeAuto        PerformanceMode = "auto"
)

// ClusteringLevel is the aggregation aggressiveness chosen for a pass.
type ClusteringLevel string

// Clustering levels, ordered none < low < medium < high.
const (
	ClusterNone   ClusteringLevel = "none"
	ClusterLow    ClusteringLevel = "low"
	ClusterMedium ClusteringLevel = "medium"
	ClusterHigh   ClusteringLevel = "high"
)

// Clustering-level node thresholds before performance scaling.
const (
	clusterLowAt    = 50
	clusterMediumAt = 100
	clusterHighAt   = 200
)

// qualityModeFactor delays clustering in quality mode until well past the
// high threshold; performanceModeFactor escalates earlier.
const (
	qualityModeFactor     = 3.0
	performanceModeFactor = 0.5
)

// Metrics reports what one optimization pass did.
type Metrics struct {
	TotalNodes   int `json:"total_nodes"`
	VisibleNodes int `json:"visible_nodes"` // after culling
	FinalNodes   int `json:"final_nodes"`   // after aggregation

	// CullingEfficiency is the fraction of nodes removed by culling;
	// ClusteringEfficiency the fraction of visible nodes absorbed into
	// cluster markers.
	CullingEfficiency    float64 `json:"culling_efficiency"`
	ClusteringEfficiency float64 `json:"clustering_efficiency"`

	RenderTime time.Duration `json:"render_time"`
}

// Optimized is the render-ready graph produced by one pass.
type Optimized struct {
	Nodes           []graph.Node      `json:"nodes"`
	Links           []graph.Link      `json:"links"`
	ClusteringLevel ClusteringLevel   `json:"clustering_level"`
	Thresholds      CullingThresholds `json:"thresholds"`
	Metrics         Metrics           `json:"metrics"`
	Recommendations []string          `json:"recommendations,omitempty"`
}

// =============================================================================
// Optimizer
// =============================================================================

// Optimizer culls and aggregates graphs per viewport change. It holds no
// graph state; every call is independent.
type Optimizer struct {
	provider   device.Provider
	baseRadius float64
	logger     *log.Logger
	now        func() time.Time
}

// Option configures an Optimizer.
type Option func(*Optimizer)

// WithProvider sets the device profile provider.
func WithProvider(p device.Provider) Option {
	return func(o *Optimizer) { o.provider = p }
}

// WithBaseRadius sets the base cluster-gathering radius in world units.
func WithBaseRadius(r float64) Option {
	return func(o *Optimizer) { o.baseRadius = r }
}

// WithLogger sets the optimizer logger. A nil logger silences logging.
func WithLogger(l *log.Logger) Option {
	return func(o *Optimizer) { o.logger = l }
}

// NewOptimizer creates an optimizer. Without a provider it assumes a
// default desktop profile.
func NewOptimizer(opts ...Option) *Optimizer {
	o := &Optimizer{
		provider:   device.StaticProvider{P: device.Default()},
		baseRadius: 100,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Optimize culls nodes and links against the viewport and, when the node
// count warrants it, aggregates nearby nodes into cluster markers. The
// inputs are never mutated.
func (o *Optimizer) Optimize(nodes []graph.Node, links []graph.Link, vp Viewport, mode PerformanceMode) (Optimized, error) {
	if vp.Zoom <= 0 {
		return Optimized{}, gserrors.New(gserrors.ErrCodeInvalidViewport, "zoom must be positive, got %v", vp.Zoom)
	}
	switch mode {
	case ModeQuality, ModePerformance, ModeAuto:
	case "":
		mode = ModeAuto
	default:
		return Optimized{}, gserrors.New(gserrors.ErrCodeInvalidParams, "unknown performance mode %q", mode)
	}

	start := o.now()
	profile := o.provider.Profile()
	th := ThresholdsFor(profile)
	level := clusteringLevel(len(nodes), th.PerformanceMultiplier, mode)

	margin := th.Margin * th.ZoomSensitivity / vp.Zoom
	visible := cullNodes(nodes, vp, margin)

	// Overflow tightening: shrink the bounds in proportion to how far the
	// survivors exceed the budget, then cull again.
	if len(visible) > th.NodeThreshold {
		tight := vp.shrink(float64(th.NodeThreshold) / float64(len(visible)))
		visible = cullNodes(nodes, tight, margin)
	}

	kept := cullLinks(links, visible, vp, margin)
	if len(kept) > th.LinkThreshold {
		tight := vp.shrink(float64(th.LinkThreshold) / float64(len(kept)))
		kept = cullLinks(links, visible, tight, margin)
	}

	finalNodes, finalLinks := visible, kept
	if level != ClusterNone {
		radius := o.baseRadius * levelRadiusScale(level) * th.PerformanceMultiplier
		finalNodes, finalLinks = aggregate(visible, kept, level, radius)
	}

	m := Metrics{
		TotalNodes:   len(nodes),
		VisibleNodes: len(visible),
		FinalNodes:   len(finalNodes),
		RenderTime:   o.now().Sub(start),
	}
	if m.TotalNodes > 0 {
		m.CullingEfficiency = float64(m.TotalNodes-m.VisibleNodes) / float64(m.TotalNodes)
	}
	if m.VisibleNodes > 0 {
		m.ClusteringEfficiency = float64(m.VisibleNodes-m.FinalNodes) / float64(m.VisibleNodes)
	}

	out := Optimized{
		Nodes:           finalNodes,
		Links:           finalLinks,
		ClusteringLevel: level,
		Thresholds:      th,
		Metrics:         m,
		Recommendations: recommend(profile, th, level, m),
	}

	if o.logger != nil {
		o.logger.Debug("optimized graph",
			"mode", mode,
			"level", level,
			"total", m.TotalNodes,
			"visible", m.VisibleNodes,
			"final", m.FinalNodes,
			"took", m.RenderTime)
	}
	return out, nil
}

// clusteringLevel decides the aggregation level from the node count against
// the fixed thresholds scaled by the performance multiplier and mode.
func clusteringLevel(nodeCount int, perf float64, mode PerformanceMode) ClusteringLevel {
	factor := perf
	switch mode {
	case ModeQuality:
		factor *= qualityModeFactor
	case ModePerformance:
		factor *= performanceModeFactor
	}

	n := float64(nodeCount)
	switch {
	case n >= clusterHighAt*factor:
		return ClusterHigh
	case n >= clusterMediumAt*factor:
		return ClusterMedium
	case n >= clusterLowAt*factor:
		return ClusterLow
	default:
		return ClusterNone
	}
}

func levelRadiusScale(level ClusteringLevel) float64 {
	switch level {
	case ClusterMedium:
		return 1.5
	case ClusterHigh:
		return 2
	default:
		return 1
	}
}

// cullNodes keeps nodes inside the margin-expanded viewport. Nodes without
// a position cannot be placed, so they are kept.
func cullNodes(nodes []graph.Node, vp Viewport, margin float64) []graph.Node {
	out := make([]graph.Node, 0, len(nodes))
	for _, n := range nodes {
		if n.Position == nil || vp.Contains(*n.Position, margin) {
			out = append(out, n)
		}
	}
	return out
}

// cullLinks keeps links whose endpoints both survived node culling and
// whose midpoint lies inside the margin-expanded viewport.
func cullLinks(links []graph.Link, visible []graph.Node, vp Viewport, margin float64) []graph.Link {
	pos := make(map[string]*graph.Position, len(visible))
	for i := range visible {
		pos[visible[i].ID] = visible[i].Position
	}

	out := make([]graph.Link, 0, len(links))
	for _, l := range links {
		src, okS := pos[l.Source]
		dst, okT := pos[l.Target]
		if !okS || !okT {
			continue
		}
		if src != nil && dst != nil {
			mid := graph.Position{X: (src.X + dst.X) / 2, Y: (src.Y + dst.Y) / 2}
			if !vp.Contains(mid, margin) {
				continue
			}
		}
		out = append(out, l)
	}
	return out
}

func recommend(p device.Profile, th CullingThresholds, level ClusteringLevel, m Metrics) []string {
	var out []string
	if m.VisibleNodes > th.NodeThreshold {
		out = append(out, fmt.Sprintf("visible node count %d still exceeds the device budget %d; zoom in or filter the graph", m.VisibleNodes, th.NodeThreshold))
	}
	if level == ClusterHigh {
		out = append(out, "clustering at maximum level; consider filtering the graph to a subset")
	}
	if p.GPU == device.GPULow {
		out = append(out, "low GPU capability detected; prefer performance mode")
	}
	if p.MemoryGB > 0 && p.MemoryGB < lowMemoryGB {
		out = append(out, "low device memory; thresholds reduced")
	}
	return out
}

// Package engine is the facade over the graph store and the layout,
// clustering, analytics, filter, and render-optimization engines.
//
// An Engine owns the single mutable graph. Layout and clustering write
// their results back to the store; analytics, filtering, and render
// optimization are read-only. Results of the expensive operations are
// cached under the graph's content hash, so cached entries can never be
// served for a graph that has since changed.
//
// All methods are safe for concurrent use; the engine serializes access
// to the store internally.
package engine

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphscape/pkg/analytics"
	"github.com/matzehuels/graphscape/pkg/cache"
	"github.com/matzehuels/graphscape/pkg/cluster"
	gserrors "github.com/matzehuels/graphscape/pkg/errors"
	"github.com/matzehuels/graphscape/pkg/filter"
	"github.com/matzehuels/graphscape/pkg/graph"
	"github.com/matzehuels/graphscape/pkg/layout"
	"github.com/matzehuels/graphscape/pkg/observability"
	"github.com/matzehuels/graphscape/pkg/render"
)

// DefaultCacheTTL is the lifetime of cached engine results.
const DefaultCacheTTL = time.Hour

// Engine bundles the graph store with all computation engines.
type Engine struct {
	mu        sync.Mutex
	store     *graph.Store
	layout    *layout.Engine
	cluster   *cluster.Engine
	analytics *analytics.Engine
	optimizer *render.Optimizer

	cache cache.Cache
	keyer cache.Keyer
	ttl   time.Duration

	seed   int64
	logger *log.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithCache sets the result cache backend.
func WithCache(c cache.Cache) Option {
	return func(e *Engine) { e.cache = c }
}

// WithKeyer sets the cache key generator.
func WithKeyer(k cache.Keyer) Option {
	return func(e *Engine) { e.keyer = k }
}

// WithCacheTTL sets the cache entry lifetime.
func WithCacheTTL(ttl time.Duration) Option {
	return func(e *Engine) { e.ttl = ttl }
}

// WithSeed sets the random seed for layout and clustering.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.seed = seed }
}

// WithOptimizer sets the render optimizer.
func WithOptimizer(o *render.Optimizer) Option {
	return func(e *Engine) { e.optimizer = o }
}

// WithLogger sets the engine logger, propagated to the sub-engines.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New creates an engine with an empty store, a memory cache, and default
// sub-engines.
func New(opts ...Option) *Engine {
	e := &Engine{
		store: graph.NewStore(),
		seed:  layout.DefaultSeed,
		cache: cache.NewMemoryCache(),
		keyer: cache.NewDefaultKeyer(),
		ttl:   DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.layout = layout.NewEngine(layout.WithSeed(e.seed), layout.WithLogger(e.logger))
	e.cluster = cluster.NewEngine(cluster.WithSeed(e.seed), cluster.WithLogger(e.logger))
	e.analytics = analytics.NewEngine(analytics.WithLogger(e.logger))
	if e.optimizer == nil {
		e.optimizer = render.NewOptimizer(render.WithLogger(e.logger))
	}
	return e
}

// Close releases the cache backend.
func (e *Engine) Close() error {
	return e.cache.Close()
}

// =============================================================================
// Store Operations
// =============================================================================

// SetData replaces the current graph.
func (e *Engine) SetData(d graph.Data) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.store.SetData(d)
}

// Data returns a copy of the current graph, or a NO_DATA error when none
// is loaded.
func (e *Engine) Data() (graph.Data, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dataLocked()
}

func (e *Engine) dataLocked() (graph.Data, error) {
	d, ok := e.store.Data()
	if !ok {
		return graph.Data{}, gserrors.New(gserrors.ErrCodeNoData, "no graph loaded")
	}
	return d, nil
}

// AddNode validates and adds a node.
func (e *Engine) AddNode(n graph.Node) error {
	if err := gserrors.ValidateID(n.ID); err != nil {
		return err
	}
	if err := gserrors.ValidateNodeType(n.Type, graph.ValidNodeTypes); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.store.AddNode(n); err != nil {
		return gserrors.Wrap(gserrors.ErrCodeInvalidInput, err, "add node %s", n.ID)
	}
	return nil
}

// RemoveNode removes a node and every link touching it.
func (e *Engine) RemoveNode(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.store.RemoveNode(id); err != nil {
		return gserrors.Wrap(gserrors.ErrCodeNodeNotFound, err, "remove node %s", id)
	}
	return nil
}

// AddLink validates and adds a link.
func (e *Engine) AddLink(l graph.Link) error {
	if err := gserrors.ValidateID(l.ID); err != nil {
		return err
	}
	if err := gserrors.ValidateLinkType(l.Type, graph.ValidLinkTypes); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.store.AddLink(l); err != nil {
		return gserrors.Wrap(gserrors.ErrCodeInvalidInput, err, "add link %s", l.ID)
	}
	return nil
}

// RemoveLink removes a link.
func (e *Engine) RemoveLink(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.store.RemoveLink(id); err != nil {
		return gserrors.Wrap(gserrors.ErrCodeLinkNotFound, err, "remove link %s", id)
	}
	return nil
}

// UpdateNode applies a partial update to a node.
func (e *Engine) UpdateNode(id string, u graph.NodeUpdate) error {
	if u.Type != nil {
		if err := gserrors.ValidateNodeType(*u.Type, graph.ValidNodeTypes); err != nil {
			return err
		}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.store.UpdateNode(id, u); err != nil {
		return gserrors.Wrap(gserrors.ErrCodeNodeNotFound, err, "update node %s", id)
	}
	return nil
}

// UpdateLink applies a partial update to a link.
func (e *Engine) UpdateLink(id string, u graph.LinkUpdate) error {
	if u.Type != nil {
		if err := gserrors.ValidateLinkType(*u.Type, graph.ValidLinkTypes); err != nil {
			return err
		}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.store.UpdateLink(id, u); err != nil {
		return gserrors.Wrap(gserrors.ErrCodeLinkNotFound, err, "update link %s", id)
	}
	return nil
}

// =============================================================================
// Layout & Clustering
// =============================================================================

// ApplyLayout runs the named layout algorithm over the current graph and
// writes the positioned graph back to the store. Results are cached by the
// graph's content hash and the layout parameters.
func (e *Engine) ApplyLayout(ctx context.Context, algorithm string, params layout.Params) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	d, err := e.dataLocked()
	if err != nil {
		return err
	}

	key := e.keyer.LayoutKey(graph.Hash(d), cache.LayoutKeyOpts{Algorithm: algorithm, Params: params})
	if cached, ok := e.cachedGraph(ctx, key, "layout"); ok {
		e.store.SetData(cached)
		return nil
	}

	start := time.Now()
	observability.Engine().OnLayoutStart(ctx, algorithm, len(d.Nodes))
	out, err := e.layout.Apply(algorithm, d, params)
	observability.Engine().OnLayoutComplete(ctx, algorithm, time.Since(start), err)
	if err != nil {
		return err
	}

	e.store.SetData(out)
	e.storeGraph(ctx, key, "layout", out)
	return nil
}

// ApplyClustering runs the named clustering strategy over the current graph
// and writes the labeled graph back to the store.
func (e *Engine) ApplyClustering(ctx context.Context, strategy string, params cluster.Params) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	d, err := e.dataLocked()
	if err != nil {
		return err
	}

	key := e.keyer.ClusterKey(graph.Hash(d), cache.ClusterKeyOpts{Strategy: strategy, Params: params})
	if cached, ok := e.cachedGraph(ctx, key, "cluster"); ok {
		e.store.SetData(cached)
		return nil
	}

	start := time.Now()
	observability.Engine().OnClusterStart(ctx, strategy, len(d.Nodes))
	out, err := e.cluster.Apply(strategy, d, params)
	observability.Engine().OnClusterComplete(ctx, strategy, out.Metadata.ClusterCount, time.Since(start), err)
	if err != nil {
		return err
	}

	e.store.SetData(out)
	e.storeGraph(ctx, key, "cluster", out)
	return nil
}

// =============================================================================
// Analytics, Filtering & Optimization
// =============================================================================

// ComputeAnalytics returns the analytics report for the current graph,
// cached by content hash.
func (e *Engine) ComputeAnalytics(ctx context.Context) (analytics.Report, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	d, err := e.dataLocked()
	if err != nil {
		return analytics.Report{}, err
	}

	key := e.keyer.AnalyticsKey(graph.Hash(d))
	if data, hit, cerr := e.cache.Get(ctx, key); cerr == nil && hit {
		var r analytics.Report
		if json.Unmarshal(data, &r) == nil {
			observability.Cache().OnCacheHit(ctx, "analytics")
			return r, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "analytics")

	start := time.Now()
	observability.Engine().OnAnalyticsStart(ctx, len(d.Nodes), len(d.Links))
	r := e.analytics.Compute(d)
	observability.Engine().OnAnalyticsComplete(ctx, time.Since(start), nil)

	if data, merr := json.Marshal(r); merr == nil {
		if e.cache.Set(ctx, key, data, e.ttl) == nil {
			observability.Cache().OnCacheSet(ctx, "analytics", len(data))
		}
	}
	return r, nil
}

// FilterData returns the subgraph of the current graph matching f. The
// stored graph is left untouched.
func (e *Engine) FilterData(f filter.Filter) (graph.Data, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	d, err := e.dataLocked()
	if err != nil {
		return graph.Data{}, err
	}
	return filter.Apply(d, f)
}

// OptimizeGraph culls and aggregates the current graph for the given
// viewport and performance mode.
func (e *Engine) OptimizeGraph(ctx context.Context, vp render.Viewport, mode render.PerformanceMode) (render.Optimized, error) {
	e.mu.Lock()
	d, err := e.dataLocked()
	e.mu.Unlock()
	if err != nil {
		return render.Optimized{}, err
	}

	start := time.Now()
	observability.Engine().OnOptimizeStart(ctx, len(d.Nodes), string(mode))
	out, err := e.optimizer.Optimize(d.Nodes, d.Links, vp, mode)
	observability.Engine().OnOptimizeComplete(ctx, len(out.Nodes), time.Since(start), err)
	return out, err
}

// CalculateViewport converts canvas geometry, pan, and zoom into a
// world-space viewport.
func (e *Engine) CalculateViewport(canvasWidth, canvasHeight float64, pan graph.Position, zoom float64) (render.Viewport, error) {
	return render.CalculateViewport(canvasWidth, canvasHeight, pan, zoom)
}

// =============================================================================
// Import / Export
// =============================================================================

// Export serializes the current graph to canonical JSON.
func (e *Engine) Export() ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	d, err := e.dataLocked()
	if err != nil {
		return nil, err
	}
	return graph.Marshal(d)
}

// Import replaces the current graph with the decoded document. The swap is
// atomic: on a parse or validation error the previous graph is retained.
func (e *Engine) Import(data []byte) error {
	d, err := graph.Unmarshal(data)
	if err != nil {
		return gserrors.Wrap(gserrors.ErrCodeInvalidGraph, err, "import graph")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.store.SetData(d)
	return nil
}

// =============================================================================
// Cache Helpers
// =============================================================================

func (e *Engine) cachedGraph(ctx context.Context, key, keyType string) (graph.Data, bool) {
	data, hit, err := e.cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return graph.Data{}, false
	}
	d, err := graph.Unmarshal(data)
	if err != nil {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return graph.Data{}, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return d, true
}

func (e *Engine) storeGraph(ctx context.Context, key, keyType string, d graph.Data) {
	data, err := graph.Marshal(d)
	if err != nil {
		return
	}
	if e.cache.Set(ctx, key, data, e.ttl) == nil {
		observability.Cache().OnCacheSet(ctx, keyType, len(data))
	}
}

// Package cluster assigns cluster labels to graph nodes using one of several
// named strategies.
//
// Strategies mirror the layout registry: each is pure (input graph in, new
// labeled graph out) and reproducible under a fixed seed. Two families are
// provided:
//
//   - Structural: component (connected components via flood fill), louvain
//     (modularity optimization over link weights), and spectral
//     (normalized-Laplacian eigenvector embedding followed by k-means).
//   - Geometric: kmeans (Euclidean clustering of node positions).
//
// The geometric strategy requires laid-out nodes; when no node carries a
// position it returns the graph unchanged rather than guessing a layout.
package cluster

import (
	"math/rand"
	"slices"

	"github.com/charmbracelet/log"

	gserrors "github.com/matzehuels/graphscape/pkg/errors"
	"github.com/matzehuels/graphscape/pkg/graph"
)

// Strategy names registered by default.
const (
	Component = "component"
	KMeans    = "kmeans"
	Louvain   = "louvain"
	Spectral  = "spectral"
)

// DefaultSeed is the random seed used when none is supplied.
const DefaultSeed = int64(42)

// =============================================================================
// Params
// =============================================================================

// Params holds strategy parameters as loosely typed key/value pairs.
type Params map[string]any

// Float reads a numeric parameter, accepting float64 or int values.
func (p Params) Float(key string, def float64) float64 {
	switch v := p[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return def
	}
}

// Int reads an integer parameter, accepting int or float64 values.
func (p Params) Int(key string, def int) int {
	switch v := p[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}

func merged(defaults, overrides Params) Params {
	out := make(Params, len(defaults)+len(overrides))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// =============================================================================
// Strategy
// =============================================================================

// Strategy assigns a cluster label to every node it clusters.
// Execute must not mutate d.
type Strategy interface {
	// Name returns the registry name of the strategy.
	Name() string

	// Defaults returns the default parameter set.
	Defaults() Params

	// Execute returns a copy of d with cluster labels assigned.
	Execute(d graph.Data, p Params, rng *rand.Rand) (graph.Data, error)
}

// =============================================================================
// Engine
// =============================================================================

// Engine is a registry of clustering strategies.
type Engine struct {
	strategies map[string]Strategy
	seed       int64
	logger     *log.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithSeed sets the default random seed.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.seed = seed }
}

// WithLogger sets the engine logger. A nil logger silences engine logging.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates an engine with all built-in strategies registered:
// component, kmeans, louvain, and spectral.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		strategies: make(map[string]Strategy),
		seed:       DefaultSeed,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.Register(&component{})
	e.Register(&kmeans{})
	e.Register(&louvain{})
	e.Register(&spectral{})
	return e
}

// Register adds a strategy, replacing any previous registration under the
// same name.
func (e *Engine) Register(s Strategy) {
	e.strategies[s.Name()] = s
}

// Strategies returns the registered strategy names, sorted.
func (e *Engine) Strategies() []string {
	names := make([]string, 0, len(e.strategies))
	for name := range e.strategies {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Apply runs the named strategy over d and returns the labeled graph.
// An unregistered name is an UNKNOWN_STRATEGY error.
func (e *Engine) Apply(name string, d graph.Data, p Params) (graph.Data, error) {
	s, ok := e.strategies[name]
	if !ok {
		return graph.Data{}, gserrors.New(gserrors.ErrCodeUnknownStrategy,
			"no clustering strategy %q (registered: %v)", name, e.Strategies())
	}

	params := merged(s.Defaults(), p)
	seed := int64(params.Int("seed", int(e.seed)))
	rng := rand.New(rand.NewSource(seed))

	if e.logger != nil {
		e.logger.Debug("applying clustering", "strategy", name, "nodes", len(d.Nodes), "seed", seed)
	}

	out, err := s.Execute(d, params, rng)
	if err != nil {
		return graph.Data{}, err
	}
	out.Finalize()
	return out, nil
}

// Package layout computes node positions for a graph using one of several
// named algorithms.
//
// An [Engine] is a registry of [Algorithm] implementations. Every algorithm
// is pure: it receives a [graph.Data], returns a new graph with updated
// position fields, and never mutates its input. Randomized algorithms
// (force-directed seeding) draw from a seedable source so results are
// reproducible - the same seed and parameters always produce the same
// positions.
//
//	engine := layout.NewEngine(layout.WithSeed(42))
//	out, err := engine.Apply(layout.ForceDirected, data, layout.Params{"iterations": 200})
package layout

import (
	"math/rand"
	"slices"

	"github.com/charmbracelet/log"

	gserrors "github.com/matzehuels/graphscape/pkg/errors"
	"github.com/matzehuels/graphscape/pkg/graph"
)

// Algorithm names registered by default.
const (
	ForceDirected = "force"
	Circular      = "circular"
	Hierarchical  = "hierarchical"
	Grid          = "grid"
	Radial        = "radial"
)

// DefaultSeed is the random seed used when none is supplied.
const DefaultSeed = int64(42)

// =============================================================================
// Params
// =============================================================================

// Params holds algorithm parameters as loosely typed key/value pairs.
// Unknown keys are ignored; missing keys fall back to algorithm defaults.
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

// merged returns defaults overlaid with overrides.
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
// Algorithm
// =============================================================================

// Algorithm computes positions for every node of a graph.
//
// Execute must not mutate d; it returns a new graph. The rng is seeded by the
// engine per call, so algorithms that consume randomness stay reproducible.
type Algorithm interface {
	// Name returns the registry name of the algorithm.
	Name() string

	// Defaults returns the default parameter set.
	Defaults() Params

	// Execute returns a copy of d with position fields assigned.
	Execute(d graph.Data, p Params, rng *rand.Rand) (graph.Data, error)
}

// =============================================================================
// Engine
// =============================================================================

// Engine is a registry of layout algorithms.
type Engine struct {
	algorithms map[string]Algorithm
	seed       int64
	logger     *log.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithSeed sets the default random seed used when a call does not supply a
// "seed" parameter.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.seed = seed }
}

// WithLogger sets the engine logger. A nil logger silences engine logging.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates an engine with all built-in algorithms registered:
// force, circular, hierarchical, grid, and radial.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		algorithms: make(map[string]Algorithm),
		seed:       DefaultSeed,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.Register(&forceDirected{})
	e.Register(&circular{})
	e.Register(&hierarchical{})
	e.Register(&grid{})
	e.Register(&radial{})
	return e
}

// Register adds an algorithm, replacing any previous registration under the
// same name.
func (e *Engine) Register(a Algorithm) {
	e.algorithms[a.Name()] = a
}

// Algorithms returns the registered algorithm names, sorted.
func (e *Engine) Algorithms() []string {
	names := make([]string, 0, len(e.algorithms))
	for name := range e.algorithms {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Apply runs the named algorithm over d and returns the positioned graph.
// An unregistered name is an UNKNOWN_ALGORITHM error - layout failures are
// never silent.
//
// Parameters in p override the algorithm defaults. The reserved "seed"
// parameter (int) overrides the engine seed for this call.
func (e *Engine) Apply(name string, d graph.Data, p Params) (graph.Data, error) {
	a, ok := e.algorithms[name]
	if !ok {
		return graph.Data{}, gserrors.New(gserrors.ErrCodeUnknownAlgorithm,
			"no layout algorithm %q (registered: %v)", name, e.Algorithms())
	}

	params := merged(a.Defaults(), p)
	seed := int64(params.Int("seed", int(e.seed)))
	rng := rand.New(rand.NewSource(seed))

	if e.logger != nil {
		e.logger.Debug("applying layout", "algorithm", name, "nodes", len(d.Nodes), "seed", seed)
	}

	out, err := a.Execute(d, params, rng)
	if err != nil {
		return graph.Data{}, err
	}
	out.Finalize()
	return out, nil
}

package cache

// DefaultKeyer generates hash-based cache keys with a per-concern prefix.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// GraphKey generates a key for a serialized graph.
func (k *DefaultKeyer) GraphKey(graphHash string) string {
	return "graph:" + graphHash
}

// LayoutKey generates a key for a layout result.
func (k *DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts.Algorithm, opts.Params)
}

// ClusterKey generates a key for a clustering result.
func (k *DefaultKeyer) ClusterKey(graphHash string, opts ClusterKeyOpts) string {
	return hashKey("cluster", graphHash, opts.Strategy, opts.Params)
}

// AnalyticsKey generates a key for an analytics report.
func (k *DefaultKeyer) AnalyticsKey(graphHash string) string {
	return "analytics:" + graphHash
}

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation, so
// different users or contexts get separate cache namespaces behind one
// shared backend.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to all generated
// keys. A nil inner keyer defaults to [NewDefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// GraphKey generates a prefixed key for a serialized graph.
func (k *ScopedKeyer) GraphKey(graphHash string) string {
	return k.prefix + k.inner.GraphKey(graphHash)
}

// LayoutKey generates a prefixed key for a layout result.
func (k *ScopedKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(graphHash, opts)
}

// ClusterKey generates a prefixed key for a clustering result.
func (k *ScopedKeyer) ClusterKey(graphHash string, opts ClusterKeyOpts) string {
	return k.prefix + k.inner.ClusterKey(graphHash, opts)
}

// AnalyticsKey generates a prefixed key for an analytics report.
func (k *ScopedKeyer) AnalyticsKey(graphHash string) string {
	return k.prefix + k.inner.AnalyticsKey(graphHash)
}

package cache

// ScopedKeyer wraps a Keyer with a prefix so several figure collections can
// share one store without colliding, for example per server instance or per
// user workspace.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. The prefix is prepended to
// all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// DatasetKey generates a prefixed key for dataset caching.
func (k *ScopedKeyer) DatasetKey(contentHash string) string {
	return k.prefix + k.inner.DatasetKey(contentHash)
}

// FigureKey generates a prefixed key for figure caching.
func (k *ScopedKeyer) FigureKey(datasetHash string, opts FigureKeyOpts) string {
	return k.prefix + k.inner.FigureKey(datasetHash, opts)
}

var _ Keyer = (*ScopedKeyer)(nil)

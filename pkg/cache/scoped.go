package cache

// ScopedKeyer wraps a Keyer with a prefix so that several clients can share
// one backend without their keys colliding.
//
// Example usage:
//
//	// Keys written by the HTTP server
//	apiKeyer := NewScopedKeyer(NewDefaultKeyer(), "api:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(graphHash, opts)
}

// ChartKey generates a prefixed key for chart caching.
func (k *ScopedKeyer) ChartKey(graphHash string, opts ChartKeyOpts) string {
	return k.prefix + k.inner.ChartKey(graphHash, opts)
}

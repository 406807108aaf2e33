package cache

// ScopedKeyer wraps a Keyer with a prefix, so several task stores can
// share one Redis database.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "project:apollo:")
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

// LayoutKey generates a prefixed layout key.
func (k *ScopedKeyer) LayoutKey(tasksHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(tasksHash, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}

// GraphKey generates a prefixed dependency graph key.
func (k *ScopedKeyer) GraphKey(tasksHash string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(tasksHash, opts)
}

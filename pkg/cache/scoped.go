package cache

// ScopedKeyer prefixes every key of an inner [Keyer], so render services
// that share one Redis or MongoDB instance keep their entries apart:
//
//	keyer := cache.NewScopedKeyer(nil, "staging:")
type ScopedKeyer struct {
	Inner  Keyer
	Prefix string
}

// NewScopedKeyer returns a ScopedKeyer over inner, or over [DefaultKeyer]
// when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	return ScopedKeyer{Inner: inner, Prefix: prefix}
}

// ArtifactKey returns the inner key with the prefix prepended.
func (k ScopedKeyer) ArtifactKey(treeHash string, opts ArtifactKeyOpts) string {
	return k.Prefix + k.Inner.ArtifactKey(treeHash, opts)
}

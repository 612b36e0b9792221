package manager

import "github.com/Carmen-Shannon/oxy-assets/asset"

// Option is a functional option for configuring a Manager via New.
type Option func(*Manager)

// WithAssetRoot overrides the manager's content directory. Default:
// "content". The value is only stored: ScanDirectory walks the directory it
// is given, and asset paths are used as passed, not resolved against it.
func WithAssetRoot(root string) Option {
	return func(m *Manager) {
		m.assetRoot = root
	}
}

// WithCacheRoot overrides the Derived Data Cache's root directory.
// Default: "build/cache/DDC".
func WithCacheRoot(root string) Option {
	return func(m *Manager) {
		m.cacheRoot = root
	}
}

// WithTargetProfile overrides the target profile every cook is keyed
// under. Default: asset.DefaultTargetProfile().
func WithTargetProfile(target asset.TargetProfile) Option {
	return func(m *Manager) {
		m.target = target
	}
}

// WithDefaultImportPolicy overrides the policy ImportAsset applies when the
// caller doesn't specify one explicitly via ImportAssetWithPolicy.
// Default: ReuseIfExists.
func WithDefaultImportPolicy(policy ImportPolicy) Option {
	return func(m *Manager) {
		m.defaultPolicy = policy
	}
}

// WithLoadedAssetCacheSize overrides the number of deserialized assets kept
// warm in the in-memory loaded-asset cache. Default: 256.
func WithLoadedAssetCacheSize(size int) Option {
	return func(m *Manager) {
		m.loadedAssetCacheSize = size
	}
}

// Package manager implements the asset pipeline's single facade: the
// handle-to-path registry, the loaded-asset cache, cook-on-demand via the
// dependency registry and importer framework, and the extension-based
// dispatch that turns a source file on disk into a typed asset.
package manager

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Carmen-Shannon/oxy-assets/asset"
	"github.com/Carmen-Shannon/oxy-assets/asset/ddc"
	"github.com/Carmen-Shannon/oxy-assets/asset/importer"
	"github.com/Carmen-Shannon/oxy-assets/asset/importer/material"
	"github.com/Carmen-Shannon/oxy-assets/asset/importer/mesh"
	"github.com/Carmen-Shannon/oxy-assets/asset/importer/texture"
	"github.com/Carmen-Shannon/oxy-assets/asset/registry"
)

const (
	defaultAssetRoot            = "content"
	defaultCacheRoot            = "build/cache/DDC"
	defaultLoadedAssetCacheSize = 256
)

// Manager is the asset pipeline's entry point. It owns the Derived Data
// Cache, the dependency registry, the importer framework, and the
// in-memory bookkeeping (handle-to-path registry, loaded-asset cache,
// dirty-handle set) that ties them together.
//
// Manager's exported methods are not safe for concurrent use; callers that
// need to hash many source files ahead of a batch import should use
// fingerprint.PrecomputeFileHashes instead, which has no shared state with
// Manager.
type Manager struct {
	assetRoot string
	cacheRoot string
	target    asset.TargetProfile

	defaultPolicy        ImportPolicy
	loadedAssetCacheSize int

	ddc       ddc.Store
	registry  *registry.Registry
	importers *importer.Registry

	assetRegistry map[string]string // handle string -> asset file path
	loadedAssets  *lru.Cache[string, asset.Asset]
	dirtyAssets   map[string]struct{}
}

// New creates a Manager rooted at the given content and cache directories,
// with the standard texture/mesh/material importers registered.
func New(opts ...Option) (*Manager, error) {
	m := &Manager{
		assetRoot:            defaultAssetRoot,
		cacheRoot:            defaultCacheRoot,
		target:               asset.DefaultTargetProfile(),
		defaultPolicy:        ReuseIfExists,
		loadedAssetCacheSize: defaultLoadedAssetCacheSize,
		registry:             registry.New(),
		importers:            importer.NewRegistry(),
		assetRegistry:        make(map[string]string),
		dirtyAssets:          make(map[string]struct{}),
	}

	for _, opt := range opts {
		opt(m)
	}

	store, err := ddc.NewLocal(m.cacheRoot)
	if err != nil {
		return nil, fmt.Errorf("create ddc store: %w", err)
	}
	m.ddc = store

	cache, err := lru.New[string, asset.Asset](m.loadedAssetCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create loaded-asset cache: %w", err)
	}
	m.loadedAssets = cache

	m.importers.Register(texture.New())
	m.importers.Register(mesh.New())
	m.importers.Register(material.New())

	return m, nil
}

// GetDDC returns the manager's Derived Data Cache store.
func (m *Manager) GetDDC() ddc.Store {
	return m.ddc
}

// assetTypeForExtension dispatches a source file extension to the asset
// type that ingests it. Extensions are matched case-insensitively.
func assetTypeForExtension(ext string) (asset.Type, bool) {
	switch strings.ToLower(ext) {
	case ".png", ".jpg", ".jpeg", ".tga":
		return asset.TypeTexture, true
	case ".gltf", ".glb":
		return asset.TypeMesh, true
	default:
		return asset.TypeNone, false
	}
}

func newAssetForType(t asset.Type) (asset.Asset, error) {
	switch t {
	case asset.TypeTexture:
		return asset.NewTextureAsset(), nil
	case asset.TypeMesh:
		return asset.NewMeshAsset(), nil
	case asset.TypeMaterial:
		return asset.NewMaterialAsset(), nil
	default:
		return nil, fmt.Errorf("no asset constructor for type %s", t)
	}
}

// loadAssetMetadata reads and deserializes the .asset file at assetPath,
// dispatching on its "type" field the same way assetTypeForExtension
// dispatches on source extension.
func loadAssetMetadata(assetPath string) (asset.Asset, error) {
	data, err := os.ReadFile(assetPath)
	if err != nil {
		return nil, fmt.Errorf("read asset file %q: %w", assetPath, err)
	}

	var probe struct {
		Type asset.Type `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parse asset file %q: %w", assetPath, err)
	}

	a, err := newAssetForType(probe.Type)
	if err != nil {
		return nil, fmt.Errorf("asset file %q: %w", assetPath, err)
	}

	if err := json.Unmarshal(data, a); err != nil {
		return nil, fmt.Errorf("decode asset file %q: %w", assetPath, err)
	}
	a.SetAssetPath(assetPath)
	return a, nil
}

func writeAssetFile(assetPath string, a asset.Asset) error {
	data, err := json.MarshalIndent(a, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal asset: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(assetPath), 0o755); err != nil {
		return fmt.Errorf("create asset directory: %w", err)
	}
	if err := os.WriteFile(assetPath, data, 0o644); err != nil {
		return fmt.Errorf("write asset file %q: %w", assetPath, err)
	}
	return nil
}

// registerAssetInternal records a's path in the handle-to-path registry,
// optionally warms the loaded-asset cache, and updates the dependency
// registry's record for it.
func (m *Manager) registerAssetInternal(a asset.Asset, assetPath string, cacheAsset bool) {
	key := a.Handle().String()
	m.assetRegistry[key] = assetPath
	if cacheAsset {
		m.loadedAssets.Add(key, a)
	}
	m.registry.RegisterAsset(a, assetPath)
}

// RegisterAssetPath loads the asset file found at path and registers it
// under handle without caching it as a loaded asset, matching how a batch
// directory scan discovers assets it has no immediate need to keep warm.
func (m *Manager) RegisterAssetPath(handle asset.Handle, path string) error {
	m.assetRegistry[handle.String()] = path

	a, err := loadAssetMetadata(path)
	if err != nil {
		return err
	}
	m.registerAssetInternal(a, path, false)
	return nil
}

// ScanDirectory recursively registers every .asset file under directory,
// returning the number of assets registered. File content hashing for the
// discovered sources is not performed here; it happens lazily the next
// time each asset is imported.
func (m *Manager) ScanDirectory(directory string) (int, error) {
	count := 0
	err := filepath.WalkDir(directory, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(path), ".asset") {
			return nil
		}

		a, err := loadAssetMetadata(path)
		if err != nil {
			return fmt.Errorf("scan %q: %w", path, err)
		}
		m.registerAssetInternal(a, path, false)
		count++
		return nil
	})
	if err != nil {
		return count, err
	}
	return count, nil
}

// sanitizeAssetName strips filesystem-hostile characters from name so it
// can be used as a generated file's base name.
func sanitizeAssetName(name string) string {
	if name == "" {
		return "material"
	}
	replacer := strings.NewReplacer(
		`\`, "_", "/", "_", ":", "_", "*", "_",
		"?", "_", `"`, "_", "<", "_", ">", "_", "|", "_",
	)
	return replacer.Replace(name)
}

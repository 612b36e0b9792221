package manager

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-assets/asset"
	"github.com/Carmen-Shannon/oxy-assets/asset/fingerprint"
)

// ImportPolicy controls what ImportAsset does when a .asset file already
// exists for a source. No policy cooks the asset: cooking happens in
// EnsureImported.
type ImportPolicy uint8

const (
	// ReuseIfExists returns the existing asset as loaded from its .asset
	// file, regardless of whether the source file has changed.
	ReuseIfExists ImportPolicy = iota

	// Reimport always re-synthesizes the asset's metadata from the source
	// and rewrites its .asset file, even if nothing changed.
	Reimport

	// ReimportIfSourceChanged compares the source file's current content
	// hash against the dependency registry's last recorded hash for the
	// manager's target profile, reimporting only on a mismatch or when no
	// record exists yet.
	ReimportIfSourceChanged
)

// ImportAsset ingests sourcePath under the manager's default import
// policy. See ImportAssetWithPolicy for the full behavior.
func (m *Manager) ImportAsset(sourcePath string) (asset.Asset, error) {
	return m.ImportAssetWithPolicy(sourcePath, m.defaultPolicy)
}

// ImportAssetWithPolicy ingests sourcePath: if a sidecar "<sourcePath>.asset"
// file already exists, it is loaded and then reused or re-synthesized
// according to policy; otherwise a new asset of the type matching
// sourcePath's extension is created and written out as a new sidecar file.
// The asset is registered but not cooked; EnsureImported cooks it on demand.
//
// A glTF/GLB source also has its materials extracted and written as
// sibling .material.asset files before the mesh asset itself is saved, so
// the mesh's MaterialSlots are always populated by the time ImportAsset
// returns.
func (m *Manager) ImportAssetWithPolicy(sourcePath string, policy ImportPolicy) (asset.Asset, error) {
	if _, err := os.Stat(sourcePath); err != nil {
		return nil, fmt.Errorf("import asset: source %q does not exist: %w", sourcePath, err)
	}

	assetType, ok := assetTypeForExtension(filepath.Ext(sourcePath))
	if !ok {
		return nil, fmt.Errorf("import asset: unsupported source extension %q", filepath.Ext(sourcePath))
	}

	assetFilePath := sourcePath + ".asset"

	var existing asset.Asset
	if _, err := os.Stat(assetFilePath); err == nil {
		existing, err = loadAssetMetadata(assetFilePath)
		if err != nil {
			return nil, err
		}

		switch policy {
		case ReuseIfExists:
			m.registerAssetInternal(existing, assetFilePath, true)
			return existing, nil

		case ReimportIfSourceChanged:
			targetID := m.target.ID()
			if record, found := m.registry.FindRecord(existing.Handle()); found {
				currentHash := fingerprint.HashFileContents(sourcePath)
				if record.LastSourceHash[targetID] == currentHash {
					m.registerAssetInternal(existing, assetFilePath, true)
					return existing, nil
				}
			}
		}
	}

	a := existing
	if a == nil {
		var err error
		a, err = newAssetForType(assetType)
		if err != nil {
			return nil, err
		}
	}
	a.SetSourcePath(sourcePath)
	a.SetAssetPath(assetFilePath)

	imp, found := m.importers.FindImporter(assetType)
	if !found {
		return nil, importerNotFoundError(assetType)
	}
	a.SetImporter(imp.ID(), imp.Version())

	if meshAsset, ok := a.(*asset.MeshAsset); ok && isGltfSource(sourcePath) {
		if _, err := m.importGltfMaterials(meshAsset, sourcePath); err != nil {
			return nil, fmt.Errorf("import gltf materials: %w", err)
		}
	}

	if err := writeAssetFile(assetFilePath, a); err != nil {
		return nil, err
	}

	m.registerAssetInternal(a, assetFilePath, true)
	return a, nil
}

func isGltfSource(sourcePath string) bool {
	ext := strings.ToLower(filepath.Ext(sourcePath))
	return ext == ".gltf" || ext == ".glb"
}

func importerNotFoundError(t asset.Type) error {
	return fmt.Errorf("import asset: no importer registered for type %s", t)
}

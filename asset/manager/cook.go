package manager

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-assets/asset"
	"github.com/Carmen-Shannon/oxy-assets/asset/fingerprint"
	"github.com/Carmen-Shannon/oxy-assets/asset/importer"
	"github.com/Carmen-Shannon/oxy-assets/asset/importer/mesh"
	"github.com/Carmen-Shannon/oxy-assets/asset/importer/texture"
)

// EnsureImported is the pipeline's single cook-on-demand entry point: it
// runs a's importer if needed and returns the DDC key of its current
// output for the manager's target profile.
//
// A cook is skipped by the importer itself (not here) when its key is
// already present in the DDC and the asset isn't marked dirty; this method
// always calls the importer and lets it decide, so the registry record is
// refreshed even on a cache hit.
//
// On import failure, the record is updated to reflect the failure but the
// last successfully produced key for this target (if any) is still
// returned, so a broken source doesn't take down everything that already
// depends on the asset's last good cook.
func (m *Manager) EnsureImported(a asset.Asset) (string, error) {
	imp, found := m.importers.FindImporter(a.Type())
	if !found {
		return "", importerNotFoundError(a.Type())
	}

	handleKey := a.Handle().String()
	_, forceReimport := m.dirtyAssets[handleKey]

	deps := &importer.DepRecorder{}
	ctx := importer.ImportContext{
		Asset:         a,
		AssetPath:     a.AssetPath(),
		SourcePath:    a.SourcePath(),
		Target:        m.target,
		DDC:           m.ddc,
		Deps:          deps,
		ForceReimport: forceReimport,
	}

	record, found := m.registry.FindRecord(a.Handle())
	if !found {
		record = asset.NewRecord(a.Handle(), a.AssetPath(), a.Type())
	}
	record.Guid = a.Handle()
	record.AssetPath = a.AssetPath()
	record.Type = a.Type()

	result := imp.Import(ctx)
	targetID := m.target.ID()
	previousFingerprint := record.LastFingerprint[targetID]

	if result.Failed() {
		record.LastImportFailed = true
		record.LastErrorSummary = result.Errors[0]
		m.registry.UpdateRecord(record)

		if keys, ok := record.DdcKeys[targetID]; ok && len(keys) > 0 {
			return keys[0], fmt.Errorf("import %s failed, using last good key: %s", a.Handle(), result.Errors[0])
		}
		return "", fmt.Errorf("import %s failed: %s", a.Handle(), result.Errors[0])
	}

	record.Deps = deps.Deps
	record.LastImportFailed = false
	record.LastErrorSummary = ""
	record.DdcKeys[targetID] = result.ProducedKeys
	if len(result.ProducedKeys) > 0 {
		record.LastFingerprint[targetID] = result.ProducedKeys[0]
	}
	record.LastSourceHash[targetID] = fingerprint.HashFileContents(a.SourcePath())
	m.registry.UpdateRecord(record)

	if len(result.ProducedKeys) > 0 && record.LastFingerprint[targetID] != previousFingerprint {
		m.MarkDependentsDirty(a.Handle())
	}
	if forceReimport {
		delete(m.dirtyAssets, handleKey)
	}

	if len(result.ProducedKeys) == 0 {
		return "", fmt.Errorf("import %s produced no keys", a.Handle())
	}
	return result.ProducedKeys[0], nil
}

// MarkDependentsDirty marks every asset that strongly depends on handle as
// dirty, forcing their next EnsureImported call to bypass the importer's
// own cache-hit skip.
func (m *Manager) MarkDependentsDirty(handle asset.Handle) {
	for _, dependent := range m.registry.GetDependents(handle) {
		m.dirtyAssets[dependent.String()] = struct{}{}
	}
}

// GetTextureData ensures a is cooked and returns its decoded texture blob.
func (m *Manager) GetTextureData(a asset.Asset) (texture.Header, []byte, error) {
	key, err := m.EnsureImported(a)
	if key == "" {
		return texture.Header{}, nil, err
	}

	value, ok := m.ddc.Get(key)
	if !ok {
		return texture.Header{}, nil, fmt.Errorf("texture blob for key %q missing from ddc", key)
	}

	hdr, pixels, err := texture.DecodeHeader(value.Bytes)
	if err != nil {
		return texture.Header{}, nil, fmt.Errorf("decode texture blob: %w", err)
	}
	return hdr, pixels, nil
}

// GetMeshData ensures a is cooked and returns its decoded mesh blob.
func (m *Manager) GetMeshData(a asset.Asset) (mesh.Mesh, error) {
	key, err := m.EnsureImported(a)
	if key == "" {
		return mesh.Mesh{}, err
	}

	value, ok := m.ddc.Get(key)
	if !ok {
		return mesh.Mesh{}, fmt.Errorf("mesh blob for key %q missing from ddc", key)
	}

	decoded, err := mesh.DecodeBlob(value.Bytes)
	if err != nil {
		return mesh.Mesh{}, fmt.Errorf("decode mesh blob: %w", err)
	}
	return decoded, nil
}

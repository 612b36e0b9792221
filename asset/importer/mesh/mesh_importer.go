package mesh

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-assets/asset"
	"github.com/Carmen-Shannon/oxy-assets/asset/ddc"
	"github.com/Carmen-Shannon/oxy-assets/asset/fingerprint"
	"github.com/Carmen-Shannon/oxy-assets/asset/importer"
)

// toolchainTag pins the glTF-cooking algorithm version. Bumping it
// invalidates every mesh blob cooked by a prior toolchain version.
const toolchainTag = "gltf-parser@1|meshblob@1"

// Importer cooks MeshAsset sources (.gltf/.glb) into an interleaved
// vertex/index blob, keyed in the DDC under the "MS" prefix. It imports
// only the first mesh's geometry; resolving a glTF document's materials
// into MaterialAsset records is the asset manager's job, since that step
// recursively imports texture assets and writes new .material.asset files.
type Importer struct{}

var _ importer.Importer = &Importer{}

// New creates a mesh importer.
func New() *Importer {
	return &Importer{}
}

func (i *Importer) ID() string               { return "GltfMeshImporter" }
func (i *Importer) Version() int             { return 1 }
func (i *Importer) Supports(t asset.Type) bool { return t == asset.TypeMesh }

func (i *Importer) Import(ctx importer.ImportContext) importer.ImportResult {
	ctx.Deps.Reset()

	meshAsset, ok := ctx.Asset.(*asset.MeshAsset)
	if !ok {
		return importer.ImportResult{Errors: []string{"GltfMeshImporter: asset is not a MeshAsset"}}
	}

	for _, slot := range meshAsset.MaterialSlots {
		ctx.Deps.AddStrong(slot.MaterialRef)
	}

	settingsHash, err := fingerprint.HashJSON(struct {
		Settings asset.MeshSettings `json:"settings"`
	}{Settings: meshAsset.Settings})
	if err != nil {
		return importer.ImportResult{Errors: []string{fmt.Sprintf("hash mesh settings: %v", err)}}
	}

	sourceHash := fingerprint.HashFileContents(ctx.SourcePath)
	depsHash := fingerprint.HashDependencies(ctx.Deps.Deps)

	key := fingerprint.BuildDdcKey(fingerprint.Input{
		TypePrefix:      "MS",
		Guid:            meshAsset.Handle().String(),
		ImporterID:      i.ID(),
		ImporterVersion: i.Version(),
		ToolchainHash:   toolchainTag,
		SourceHash:      sourceHash,
		SettingsHash:    settingsHash,
		DepsHash:        depsHash,
		Target:          ctx.Target,
	})

	if !ctx.ForceReimport && ctx.DDC.Exists(key) {
		return importer.ImportResult{ProducedKeys: []string{key}}
	}

	extracted, err := ExtractMesh(ctx.SourcePath, meshAsset.Settings)
	if err != nil {
		return importer.ImportResult{Errors: []string{fmt.Sprintf("extract mesh geometry: %v", err)}}
	}

	blob, err := EncodeBlob(Mesh{
		Header:    Header{BoundsMin: extracted.BoundsMin, BoundsMax: extracted.BoundsMax},
		Submeshes: extracted.Submeshes,
		Vertices:  extracted.Vertices,
		Indices:   extracted.Indices,
	})
	if err != nil {
		return importer.ImportResult{Errors: []string{fmt.Sprintf("encode mesh blob: %v", err)}}
	}

	value := ddc.Value{Bytes: blob, ContentHash: fingerprint.HashBytes(blob)}
	if err := ctx.DDC.Put(key, value); err != nil {
		return importer.ImportResult{Errors: []string{fmt.Sprintf("write mesh blob to ddc: %v", err)}}
	}

	return importer.ImportResult{ProducedKeys: []string{key}}
}

// Package material cooks MaterialAsset parameter sets into a canonical
// JSON blob, keyed in the DDC under the "MT" prefix. Materials have no
// source file of their own: every dependency they carry is a strong
// reference to a TextureAsset resolved by the asset manager (or set by
// hand), and the DDC key's source-hash component is always empty.
package material

import (
	"encoding/json"
	"fmt"

	"github.com/Carmen-Shannon/oxy-assets/asset"
	"github.com/Carmen-Shannon/oxy-assets/asset/ddc"
	"github.com/Carmen-Shannon/oxy-assets/asset/fingerprint"
	"github.com/Carmen-Shannon/oxy-assets/asset/importer"
)

const toolchainTag = "material-json@1"

// Importer cooks MaterialAsset parameter sets.
type Importer struct{}

var _ importer.Importer = &Importer{}

// New creates a material importer.
func New() *Importer {
	return &Importer{}
}

func (i *Importer) ID() string      { return "MaterialImporter" }
func (i *Importer) Version() int    { return 1 }
func (i *Importer) Supports(t asset.Type) bool { return t == asset.TypeMaterial }

type settingsPayload struct {
	Parameters asset.MaterialParameters `json:"parameters"`
	Textures   asset.MaterialTextures   `json:"textures"`
}

func (i *Importer) Import(ctx importer.ImportContext) importer.ImportResult {
	ctx.Deps.Reset()

	matAsset, ok := ctx.Asset.(*asset.MaterialAsset)
	if !ok {
		return importer.ImportResult{Errors: []string{"MaterialImporter: asset is not a MaterialAsset"}}
	}

	for _, ref := range matAsset.References() {
		ctx.Deps.AddStrong(ref)
	}

	payload := settingsPayload{Parameters: matAsset.Parameters, Textures: matAsset.Textures}

	settingsHash, err := fingerprint.HashJSON(payload)
	if err != nil {
		return importer.ImportResult{Errors: []string{fmt.Sprintf("hash material settings: %v", err)}}
	}
	depsHash := fingerprint.HashDependencies(ctx.Deps.Deps)

	key := fingerprint.BuildDdcKey(fingerprint.Input{
		TypePrefix:      "MT",
		Guid:            matAsset.Handle().String(),
		ImporterID:      i.ID(),
		ImporterVersion: i.Version(),
		ToolchainHash:   toolchainTag,
		SourceHash:      "",
		SettingsHash:    settingsHash,
		DepsHash:        depsHash,
		Target:          ctx.Target,
	})

	if !ctx.ForceReimport && ctx.DDC.Exists(key) {
		return importer.ImportResult{ProducedKeys: []string{key}}
	}

	// Round-trip through a generic value so the stored JSON has its object
	// keys sorted (encoding/json sorts map keys), matching the canonical form.
	raw, err := json.Marshal(payload)
	if err != nil {
		return importer.ImportResult{Errors: []string{fmt.Sprintf("marshal material payload: %v", err)}}
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return importer.ImportResult{Errors: []string{fmt.Sprintf("canonicalize material payload: %v", err)}}
	}
	if raw, err = json.Marshal(generic); err != nil {
		return importer.ImportResult{Errors: []string{fmt.Sprintf("marshal material payload: %v", err)}}
	}

	value := ddc.Value{Bytes: raw, ContentHash: fingerprint.HashBytes(raw)}
	if err := ctx.DDC.Put(key, value); err != nil {
		return importer.ImportResult{Errors: []string{fmt.Sprintf("write material blob to ddc: %v", err)}}
	}

	return importer.ImportResult{ProducedKeys: []string{key}}
}

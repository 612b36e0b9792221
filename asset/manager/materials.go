package manager

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Carmen-Shannon/oxy-assets/asset"
	"github.com/Carmen-Shannon/oxy-assets/asset/importer/mesh"
)

// importGltfMaterials extracts every material defined in sourcePath's glTF
// document, writing or updating one sibling .material.asset file per
// material and rebuilding meshAsset's MaterialSlots to point at them. The
// mesh asset's own References() are set to its material slots, not to the
// textures those materials reference; each material carries its own
// texture references independently.
func (m *Manager) importGltfMaterials(meshAsset *asset.MeshAsset, sourcePath string) ([]string, error) {
	materials, extractWarnings, err := mesh.ExtractMaterials(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("extract gltf materials: %w", err)
	}

	matImporter, found := m.importers.FindImporter(asset.TypeMaterial)
	if !found {
		return nil, importerNotFoundError(asset.TypeMaterial)
	}

	baseDir := filepath.Dir(sourcePath)
	warnings := append([]string{}, extractWarnings...)

	slots := make([]asset.MaterialSlot, 0, len(materials))
	for _, md := range materials {
		sanitized := sanitizeAssetName(md.Name)
		materialPath := filepath.Join(baseDir, sanitized+".material.asset")

		var matAsset *asset.MaterialAsset
		if existing, err := loadAssetMetadata(materialPath); err == nil {
			if ma, ok := existing.(*asset.MaterialAsset); ok {
				matAsset = ma
			}
		}
		if matAsset == nil {
			matAsset = asset.NewMaterialAsset()
		}

		matAsset.SetSourcePath(sourcePath)
		matAsset.SetImporter(matImporter.ID(), matImporter.Version())
		matAsset.Parameters = md.Parameters

		textures := asset.MaterialTextures{}
		var refs []asset.Ref

		bind := func(src *mesh.TextureSource, label string) *asset.TextureSlot {
			slot, warn, err := m.importMaterialTexture(src)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("material %q: %s texture: %v", md.Name, label, err))
				return nil
			}
			if warn != "" {
				warnings = append(warnings, fmt.Sprintf("material %q: %s texture: %s", md.Name, label, warn))
			}
			if slot != nil {
				refs = append(refs, slot.Ref)
			}
			return slot
		}

		textures.BaseColorTexture = bind(md.BaseColorTexture, "base color")
		textures.MetallicRoughnessTexture = bind(md.MetallicRoughnessTexture, "metallic-roughness")
		textures.NormalTexture = bind(md.NormalTexture, "normal")
		textures.OcclusionTexture = bind(md.OcclusionTexture, "occlusion")
		textures.EmissiveTexture = bind(md.EmissiveTexture, "emissive")
		matAsset.Textures = textures
		matAsset.SetReferences(refs)

		if err := m.SaveMaterialAsset(matAsset, materialPath); err != nil {
			return nil, fmt.Errorf("save material %q: %w", md.Name, err)
		}

		slots = append(slots, asset.MaterialSlot{
			Name:        md.Name,
			MaterialRef: asset.Ref{Handle: matAsset.Handle()},
		})
	}

	meshAsset.MaterialSlots = slots

	meshRefs := make([]asset.Ref, 0, len(slots))
	for _, slot := range slots {
		meshRefs = append(meshRefs, slot.MaterialRef)
	}
	meshAsset.SetReferences(meshRefs)

	return warnings, nil
}

// importMaterialTexture resolves an external texture reference discovered
// on a glTF material into a TextureSlot, recursively importing the
// texture file itself under ReuseIfExists. A nil source produces a nil slot
// and no warning; a missing file produces a nil slot and a warning string
// rather than an error, so one bad texture slot never fails the whole
// material.
func (m *Manager) importMaterialTexture(source *mesh.TextureSource) (*asset.TextureSlot, string, error) {
	if source == nil {
		return nil, "", nil
	}

	if _, err := os.Stat(source.Path); err != nil {
		return nil, fmt.Sprintf("texture file %q does not exist", source.Path), nil
	}

	texAsset, err := m.ImportAssetWithPolicy(source.Path, ReuseIfExists)
	if err != nil {
		return nil, "", fmt.Errorf("import texture %q: %w", source.Path, err)
	}
	if texAsset.Type() != asset.TypeTexture {
		return nil, "", fmt.Errorf("resolved asset for %q is not a texture", source.Path)
	}

	return &asset.TextureSlot{
		Ref:      asset.Ref{Handle: texAsset.Handle()},
		TexCoord: source.TexCoord,
	}, "", nil
}

// SaveMaterialAsset serializes material to outputPath and registers it,
// for materials authored directly rather than generated from a mesh's
// source file.
func (m *Manager) SaveMaterialAsset(material *asset.MaterialAsset, outputPath string) error {
	material.SetAssetPath(outputPath)
	if err := writeAssetFile(outputPath, material); err != nil {
		return err
	}
	m.registerAssetInternal(material, outputPath, true)
	return nil
}

package mesh

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Carmen-Shannon/oxy-assets/asset"
)

// TextureSource is a resolved reference to an external texture file
// discovered on a glTF material, ready to be handed to the asset manager
// for its own (possibly recursive) import.
type TextureSource struct {
	Path     string
	TexCoord int
}

// MaterialData is one glTF material's parameters plus its resolved
// external texture sources, keyed the same way asset.MaterialTextures is.
type MaterialData struct {
	Name       string
	Parameters asset.MaterialParameters

	BaseColorTexture         *TextureSource
	MetallicRoughnessTexture *TextureSource
	NormalTexture            *TextureSource
	OcclusionTexture         *TextureSource
	EmissiveTexture          *TextureSource
}

// resolveTextureSource resolves a glTF texture reference to an external
// file path. Embedded images (bufferView-backed) and data-URI images are
// not supported for import and produce a warning instead of an error,
// since a mesh with an unimportable texture slot should still cook.
func resolveTextureSource(doc *gltfDocument, baseDir string, info *gltfTextureInfo) (*TextureSource, string) {
	if info == nil || info.Index < 0 || info.Index >= len(doc.Textures) {
		return nil, ""
	}

	tex := doc.Textures[info.Index]
	if tex.Source == nil || *tex.Source < 0 || *tex.Source >= len(doc.Images) {
		return nil, fmt.Sprintf("texture %d has no valid image source", info.Index)
	}

	img := doc.Images[*tex.Source]
	if img.URI == "" {
		return nil, fmt.Sprintf("embedded texture (image %d) is not supported for import", *tex.Source)
	}
	if len(img.URI) >= 5 && img.URI[:5] == "data:" {
		return nil, fmt.Sprintf("data URI texture (image %d) is not supported for import", *tex.Source)
	}

	path := filepath.Join(baseDir, img.URI)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Sprintf("texture file %q does not exist", path)
	}

	return &TextureSource{Path: path, TexCoord: info.TexCoord}, ""
}

// ExtractMaterials reads every material defined in sourcePath's glTF/GLB
// document, resolving their PBR parameters and external texture sources.
// Warnings accumulate rather than abort the whole extraction: a material
// with one bad texture slot still produces a usable material with that
// slot left unset.
func ExtractMaterials(sourcePath string) ([]MaterialData, []string, error) {
	parser := newGLTFParser()
	if err := parser.Parse(sourcePath); err != nil {
		return nil, nil, fmt.Errorf("parse gltf source: %w", err)
	}

	doc := parser.Document()
	baseDir := filepath.Dir(sourcePath)

	var warnings []string
	materials := make([]MaterialData, 0, len(doc.Materials))

	for i, gm := range doc.Materials {
		name := gm.Name
		if name == "" {
			name = fmt.Sprintf("material_%d", i)
		}

		params := asset.DefaultMaterialParameters()
		var (
			baseColorInfo, metallicRoughnessInfo *gltfTextureInfo
		)

		if gm.PbrMetallicRoughness != nil {
			pbr := gm.PbrMetallicRoughness
			if pbr.BaseColorFactor != nil {
				params.BaseColorFactor = *pbr.BaseColorFactor
			}
			if pbr.MetallicFactor != nil {
				params.MetallicFactor = *pbr.MetallicFactor
			}
			if pbr.RoughnessFactor != nil {
				params.RoughnessFactor = *pbr.RoughnessFactor
			}
			baseColorInfo = pbr.BaseColorTexture
			metallicRoughnessInfo = pbr.MetallicRoughnessTexture
		}
		if gm.EmissiveFactor != nil {
			params.EmissiveFactor = *gm.EmissiveFactor
		}
		if gm.OcclusionTexture != nil && gm.OcclusionTexture.Strength != nil {
			params.OcclusionStrength = *gm.OcclusionTexture.Strength
		}
		if gm.NormalTexture != nil && gm.NormalTexture.Scale != nil {
			params.NormalScale = *gm.NormalTexture.Scale
		}
		if gm.AlphaCutoff != nil {
			params.AlphaCutoff = *gm.AlphaCutoff
		}
		if gm.AlphaMode != "" {
			params.AlphaMode = gm.AlphaMode
		}
		params.DoubleSided = gm.DoubleSided

		md := MaterialData{Name: name, Parameters: params}

		resolve := func(info *gltfTextureInfo, label string) *TextureSource {
			src, warn := resolveTextureSource(doc, baseDir, info)
			if warn != "" {
				warnings = append(warnings, fmt.Sprintf("material %q: %s texture: %s", name, label, warn))
			}
			return src
		}

		md.BaseColorTexture = resolve(baseColorInfo, "base color")
		md.MetallicRoughnessTexture = resolve(metallicRoughnessInfo, "metallic-roughness")
		if gm.NormalTexture != nil {
			md.NormalTexture = resolve(&gm.NormalTexture.gltfTextureInfo, "normal")
		}
		if gm.OcclusionTexture != nil {
			md.OcclusionTexture = resolve(&gm.OcclusionTexture.gltfTextureInfo, "occlusion")
		}
		md.EmissiveTexture = resolve(gm.EmissiveTexture, "emissive")

		materials = append(materials, md)
	}

	return materials, warnings, nil
}

package mesh

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTestGLTFWithMaterials(t *testing.T, dir string) string {
	t.Helper()

	texturePath := filepath.Join(dir, "albedo.png")
	if err := os.WriteFile(texturePath, []byte("not a real png, just needs to exist"), 0o644); err != nil {
		t.Fatalf("write texture stub: %v", err)
	}

	doc := `{
		"asset": {"version": "2.0"},
		"images": [
			{"uri": "albedo.png"},
			{"uri": "data:image/png;base64,AAAA"},
			{"mimeType": "image/png"}
		],
		"textures": [{"source": 0}, {"source": 1}, {"source": 2}],
		"materials": [
			{
				"name": "Lit",
				"pbrMetallicRoughness": {
					"baseColorFactor": [0.5, 0.5, 0.5, 1.0],
					"metallicFactor": 0.1,
					"roughnessFactor": 0.8,
					"baseColorTexture": {"index": 0, "texCoord": 0}
				},
				"alphaMode": "MASK",
				"alphaCutoff": 0.3,
				"doubleSided": true
			},
			{
				"pbrMetallicRoughness": {
					"baseColorTexture": {"index": 1}
				}
			},
			{
				"pbrMetallicRoughness": {
					"baseColorTexture": {"index": 2}
				}
			}
		]
	}`

	path := filepath.Join(dir, "scene.gltf")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write gltf fixture: %v", err)
	}
	return path
}

func TestExtractMaterialsResolvesParametersAndTexture(t *testing.T) {
	dir := t.TempDir()
	path := writeTestGLTFWithMaterials(t, dir)

	materials, warnings, err := ExtractMaterials(path)
	if err != nil {
		t.Fatalf("ExtractMaterials: %v", err)
	}
	if len(materials) != 3 {
		t.Fatalf("expected 3 materials, got %d", len(materials))
	}

	lit := materials[0]
	if lit.Name != "Lit" {
		t.Errorf("unexpected name: %q", lit.Name)
	}
	if lit.Parameters.AlphaMode != "MASK" {
		t.Errorf("unexpected alpha mode: %q", lit.Parameters.AlphaMode)
	}
	if lit.Parameters.AlphaCutoff != 0.3 {
		t.Errorf("unexpected alpha cutoff: %v", lit.Parameters.AlphaCutoff)
	}
	if !lit.Parameters.DoubleSided {
		t.Error("expected double-sided to be true")
	}
	if lit.BaseColorTexture == nil {
		t.Fatal("expected base color texture to resolve")
	}
	if lit.BaseColorTexture.Path != filepath.Join(dir, "albedo.png") {
		t.Errorf("unexpected resolved texture path: %q", lit.BaseColorTexture.Path)
	}

	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings (data-uri and embedded textures), got %d: %v", len(warnings), warnings)
	}
}

func TestExtractMaterialsUsesDefaultsWhenUnset(t *testing.T) {
	dir := t.TempDir()
	doc := `{
		"asset": {"version": "2.0"},
		"materials": [{}]
	}`
	path := filepath.Join(dir, "plain.gltf")
	os.WriteFile(path, []byte(doc), 0o644)

	materials, _, err := ExtractMaterials(path)
	if err != nil {
		t.Fatalf("ExtractMaterials: %v", err)
	}
	if materials[0].Parameters.AlphaMode != "OPAQUE" {
		t.Errorf("expected default alpha mode OPAQUE, got %q", materials[0].Parameters.AlphaMode)
	}
	if materials[0].Name != "material_0" {
		t.Errorf("expected synthesized name for unnamed material, got %q", materials[0].Name)
	}
}

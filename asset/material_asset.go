package asset

import "encoding/json"

// MaterialParameters is the full PBR metallic-roughness parameter set a
// material carries, independent of any particular shader or renderer.
type MaterialParameters struct {
	BaseColorFactor   [4]float32 `json:"baseColorFactor"`
	MetallicFactor    float32    `json:"metallicFactor"`
	RoughnessFactor   float32    `json:"roughnessFactor"`
	EmissiveFactor    [3]float32 `json:"emissiveFactor"`
	OcclusionStrength float32    `json:"occlusionStrength"`
	NormalScale       float32    `json:"normalScale"`
	AlphaCutoff       float32    `json:"alphaCutoff"`
	AlphaMode         string     `json:"alphaMode"`
	DoubleSided       bool       `json:"doubleSided"`
}

// DefaultMaterialParameters mirrors glTF's own material defaults.
func DefaultMaterialParameters() MaterialParameters {
	return MaterialParameters{
		BaseColorFactor:   [4]float32{1, 1, 1, 1},
		MetallicFactor:    1,
		RoughnessFactor:   1,
		OcclusionStrength: 1,
		NormalScale:       1,
		AlphaCutoff:       0.5,
		AlphaMode:         "OPAQUE",
	}
}

// TextureSlot binds a texture reference to the UV channel it samples.
type TextureSlot struct {
	Ref      Ref `json:"ref"`
	TexCoord int `json:"texCoord"`
}

// MaterialTextures holds the five optional texture slots a PBR material
// can reference. A nil pointer means the slot is unused.
type MaterialTextures struct {
	BaseColorTexture         *TextureSlot `json:"baseColorTexture,omitempty"`
	MetallicRoughnessTexture *TextureSlot `json:"metallicRoughnessTexture,omitempty"`
	NormalTexture            *TextureSlot `json:"normalTexture,omitempty"`
	OcclusionTexture         *TextureSlot `json:"occlusionTexture,omitempty"`
	EmissiveTexture          *TextureSlot `json:"emissiveTexture,omitempty"`
}

// MaterialAsset is a parameter+texture-slot payload cooked into a canonical
// JSON blob. It has no source file of its own; it is authored by the asset
// manager from a glTF material, or by hand.
type MaterialAsset struct {
	Base
	Parameters MaterialParameters
	Textures   MaterialTextures
}

// NewMaterialAsset creates a material asset with glTF-default parameters.
func NewMaterialAsset() *MaterialAsset {
	return &MaterialAsset{Base: NewBase(TypeMaterial), Parameters: DefaultMaterialParameters()}
}

type materialEnvelope struct {
	baseEnvelope
	Parameters MaterialParameters `json:"parameters"`
	Textures   MaterialTextures   `json:"textures"`
}

func (m *MaterialAsset) MarshalJSON() ([]byte, error) {
	env := materialEnvelope{baseEnvelope: m.toEnvelope(), Parameters: m.Parameters, Textures: m.Textures}
	return json.Marshal(env)
}

func (m *MaterialAsset) UnmarshalJSON(data []byte) error {
	var env materialEnvelope
	env.Parameters = DefaultMaterialParameters()
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	m.fromEnvelope(env.baseEnvelope)
	m.Parameters = env.Parameters
	m.Textures = env.Textures
	return nil
}

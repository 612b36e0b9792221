package asset

import "encoding/json"

// TextureSettings controls how a TextureAsset is cooked.
type TextureSettings struct {
	SRGB          bool    `json:"sRGB"`
	GenerateMips  bool    `json:"generateMips"`
	Compression   string  `json:"compression"`
	Brightness    float32 `json:"brightness"`
}

// DefaultTextureSettings mirrors the engine's default import settings.
func DefaultTextureSettings() TextureSettings {
	return TextureSettings{SRGB: true, GenerateMips: true, Compression: "BC7", Brightness: 1.0}
}

// TextureAsset is a source image (.png/.jpg/.jpeg/.tga) cooked into an
// RGBA8 pixel blob.
type TextureAsset struct {
	Base
	Settings TextureSettings
}

// NewTextureAsset creates a texture asset with default import settings.
func NewTextureAsset() *TextureAsset {
	return &TextureAsset{Base: NewBase(TypeTexture), Settings: DefaultTextureSettings()}
}

type textureEnvelope struct {
	baseEnvelope
	Settings TextureSettings `json:"settings"`
}

func (t *TextureAsset) MarshalJSON() ([]byte, error) {
	env := textureEnvelope{baseEnvelope: t.toEnvelope(), Settings: t.Settings}
	return json.Marshal(env)
}

func (t *TextureAsset) UnmarshalJSON(data []byte) error {
	var env textureEnvelope
	env.Settings = DefaultTextureSettings()
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	t.fromEnvelope(env.baseEnvelope)
	t.Settings = env.Settings
	return nil
}

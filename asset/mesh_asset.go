package asset

import "encoding/json"

// MeshSettings controls how a MeshAsset is cooked from its glTF/GLB source.
type MeshSettings struct {
	Optimize          bool    `json:"optimize"`
	GenerateTangents  bool    `json:"generateTangents"`
	FlipWindingOrder  bool    `json:"flipWindingOrder"`
	Scale             float32 `json:"scale"`
}

// DefaultMeshSettings mirrors the engine's default import settings.
func DefaultMeshSettings() MeshSettings {
	return MeshSettings{Optimize: true, GenerateTangents: true, FlipWindingOrder: false, Scale: 1.0}
}

// MaterialSlot binds a name from the source glTF material list to the
// asset handle of the .material.asset generated for it.
type MaterialSlot struct {
	Name        string `json:"name"`
	MaterialRef Ref    `json:"materialRef"`
}

// MeshAsset is a source glTF/GLB file cooked into an interleaved vertex +
// index blob, with one MaterialSlot per source material discovered during
// import.
type MeshAsset struct {
	Base
	Settings      MeshSettings
	MaterialSlots []MaterialSlot
}

// NewMeshAsset creates a mesh asset with default import settings.
func NewMeshAsset() *MeshAsset {
	return &MeshAsset{Base: NewBase(TypeMesh), Settings: DefaultMeshSettings()}
}

type meshEnvelope struct {
	baseEnvelope
	Settings      MeshSettings   `json:"settings"`
	MaterialSlots []MaterialSlot `json:"materialSlots,omitempty"`
}

func (m *MeshAsset) MarshalJSON() ([]byte, error) {
	env := meshEnvelope{baseEnvelope: m.toEnvelope(), Settings: m.Settings, MaterialSlots: m.MaterialSlots}
	return json.Marshal(env)
}

func (m *MeshAsset) UnmarshalJSON(data []byte) error {
	var env meshEnvelope
	env.Settings = DefaultMeshSettings()
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	m.fromEnvelope(env.baseEnvelope)
	m.Settings = env.Settings
	m.MaterialSlots = env.MaterialSlots
	return nil
}

package asset

import "fmt"

// Type is the closed tag identifying which kind of source artifact an asset
// was cooked from.
type Type uint8

const (
	TypeNone Type = iota
	TypeTexture
	TypeMesh
	TypeShader
	TypeMaterial
)

func (t Type) String() string {
	switch t {
	case TypeTexture:
		return "Texture"
	case TypeMesh:
		return "Mesh"
	case TypeShader:
		return "Shader"
	case TypeMaterial:
		return "Material"
	default:
		return "None"
	}
}

// ParseType converts the on-disk string form of a Type back into its tag.
func ParseType(s string) Type {
	switch s {
	case "Texture":
		return TypeTexture
	case "Mesh":
		return TypeMesh
	case "Shader":
		return TypeShader
	case "Material":
		return TypeMaterial
	default:
		return TypeNone
	}
}

func (t Type) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

func (t *Type) UnmarshalJSON(data []byte) error {
	if len(data) < 2 {
		return fmt.Errorf("invalid asset type JSON %q", data)
	}
	*t = ParseType(string(data[1 : len(data)-1]))
	return nil
}

// Ref identifies a specific sub-resource of an asset. subId 0 references
// the asset whole; every reference this module creates itself (material
// slots, material texture slots) uses subId 0.
type Ref struct {
	Handle Handle `json:"guid"`
	SubID  uint32 `json:"subId,omitempty"`
}

// DepKind distinguishes dependencies that participate in fingerprinting
// (Strong) from those that are merely informational (Weak).
type DepKind uint8

const (
	DepStrong DepKind = iota
	DepWeak
)

func (k DepKind) String() string {
	if k == DepWeak {
		return "Weak"
	}
	return "Strong"
}

func (k DepKind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// UnmarshalJSON defaults to Strong on any unknown or missing kind string,
// matching the on-disk format's documented fallback behavior.
func (k *DepKind) UnmarshalJSON(data []byte) error {
	if string(data) == `"Weak"` {
		*k = DepWeak
		return nil
	}
	*k = DepStrong
	return nil
}

// Dependency is one edge in the cross-asset dependency graph.
type Dependency struct {
	Kind  DepKind `json:"kind"`
	Asset Ref     `json:"asset"`
}

// TargetProfile selects the cook variant: the same source asset can be
// cooked differently per platform, GPU texture-compression format, and
// quality tier, each combination producing independent DDC entries.
type TargetProfile struct {
	Platform  string `json:"platform"`
	GpuFormat string `json:"gpuFormat"`
	Quality   string `json:"quality"`
}

// DefaultTargetProfile mirrors the engine's default build configuration.
func DefaultTargetProfile() TargetProfile {
	return TargetProfile{Platform: "Win64", GpuFormat: "BC7", Quality: "Debug"}
}

// ID returns the target's stable string identity, used as the key into every
// per-target map on an asset record.
func (t TargetProfile) ID() string {
	return t.Platform + "|" + t.GpuFormat + "|" + t.Quality
}

package asset

// Record is the dependency registry's per-asset bookkeeping: the full
// dependency list plus one source hash, one fingerprint, and one set of
// produced DDC keys per target profile the asset has ever been cooked for.
//
// Invariant: if len(DdcKeys[target]) > 0, LastFingerprint[target] equals
// DdcKeys[target][0] — the fingerprint is always the first produced key.
type Record struct {
	Guid      Handle       `json:"guid"`
	AssetPath string       `json:"assetPath"`
	Type      Type         `json:"type"`
	Deps      []Dependency `json:"deps,omitempty"`

	LastSourceHash  map[string]string   `json:"lastSourceHash,omitempty"`
	LastFingerprint map[string]string   `json:"lastFingerprint"`
	DdcKeys         map[string][]string `json:"ddcKeys"`

	LastImportFailed bool   `json:"lastImportFailed"`
	LastErrorSummary string `json:"lastErrorSummary"`
}

// NewRecord creates an empty record for guid, ready for its first cook.
func NewRecord(guid Handle, assetPath string, t Type) Record {
	return Record{
		Guid:            guid,
		AssetPath:       assetPath,
		Type:            t,
		LastSourceHash:  map[string]string{},
		LastFingerprint: map[string]string{},
		DdcKeys:         map[string][]string{},
	}
}

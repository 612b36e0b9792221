package asset

// Asset is the common surface every concrete asset type (TextureAsset,
// MeshAsset, MaterialAsset) satisfies. The pipeline only ever needs this
// surface plus type-specific settings, so it is kept small deliberately.
type Asset interface {
	Handle() Handle
	Type() Type
	SourcePath() string
	SetSourcePath(string)
	AssetPath() string
	SetAssetPath(string)
	ImporterID() string
	ImporterVersion() int
	SetImporter(id string, version int)
	References() []Ref
	SetReferences([]Ref)
}

// Base carries the fields common to every asset type. Concrete asset types
// embed it rather than inherit from it.
type Base struct {
	handle          Handle
	assetType       Type
	sourcePath      string
	assetPath       string
	importerID      string
	importerVersion int
	references      []Ref
}

// NewBase creates a Base with a freshly generated handle for the given type.
func NewBase(t Type) Base {
	return Base{handle: NewHandle(), assetType: t}
}

func (b *Base) Handle() Handle        { return b.handle }
func (b *Base) Type() Type            { return b.assetType }
func (b *Base) SourcePath() string    { return b.sourcePath }
func (b *Base) SetSourcePath(p string) { b.sourcePath = p }
func (b *Base) AssetPath() string     { return b.assetPath }
func (b *Base) SetAssetPath(p string) { b.assetPath = p }
func (b *Base) ImporterID() string    { return b.importerID }
func (b *Base) ImporterVersion() int  { return b.importerVersion }
func (b *Base) SetImporter(id string, version int) {
	b.importerID = id
	b.importerVersion = version
}
func (b *Base) References() []Ref       { return b.references }
func (b *Base) SetReferences(refs []Ref) { b.references = refs }

// baseEnvelope is the on-disk representation of the fields Base owns. Every
// concrete asset type's JSON envelope embeds this and adds its own
// type-specific keys (settings, parameters, textures, ...).
type baseEnvelope struct {
	Guid       Handle `json:"guid"`
	Type       Type   `json:"type"`
	SourcePath string `json:"source_path"`
	Importer   *struct {
		ID      string `json:"id"`
		Version int    `json:"version"`
	} `json:"importer,omitempty"`
	Refs []Ref `json:"refs,omitempty"`
}

func (b *Base) toEnvelope() baseEnvelope {
	env := baseEnvelope{Guid: b.handle, Type: b.assetType, SourcePath: b.sourcePath}
	if b.importerID != "" {
		env.Importer = &struct {
			ID      string `json:"id"`
			Version int    `json:"version"`
		}{ID: b.importerID, Version: b.importerVersion}
	}
	if len(b.references) > 0 {
		env.Refs = b.references
	}
	return env
}

func (b *Base) fromEnvelope(env baseEnvelope) {
	if !env.Guid.IsNil() {
		b.handle = env.Guid
	}
	b.assetType = env.Type
	b.sourcePath = env.SourcePath
	if env.Importer != nil {
		b.importerID = env.Importer.ID
		b.importerVersion = env.Importer.Version
	}
	if env.Refs != nil {
		b.references = env.Refs
	}
}

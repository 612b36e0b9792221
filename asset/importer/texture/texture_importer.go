package texture

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-assets/asset"
	"github.com/Carmen-Shannon/oxy-assets/asset/ddc"
	"github.com/Carmen-Shannon/oxy-assets/asset/fingerprint"
	"github.com/Carmen-Shannon/oxy-assets/asset/importer"
)

// toolchainTag pins the decode+blob-encode algorithm this importer uses.
// Bumping it invalidates every texture cooked by a prior toolchain version.
const toolchainTag = "image-stdlib@1|texblob@1"

// Importer cooks TextureAsset sources (.png/.jpg/.jpeg/.tga) into an RGBA8
// pixel blob keyed in the DDC under the "TX" prefix.
type Importer struct{}

var _ importer.Importer = &Importer{}

// New creates a texture importer.
func New() *Importer {
	return &Importer{}
}

func (i *Importer) ID() string      { return "TextureImporter" }
func (i *Importer) Version() int    { return 1 }
func (i *Importer) Supports(t asset.Type) bool { return t == asset.TypeTexture }

func (i *Importer) Import(ctx importer.ImportContext) importer.ImportResult {
	ctx.Deps.Reset()

	texAsset, ok := ctx.Asset.(*asset.TextureAsset)
	if !ok {
		return importer.ImportResult{Errors: []string{"TextureImporter: asset is not a TextureAsset"}}
	}

	settingsHash, err := fingerprint.HashJSON(struct {
		Settings asset.TextureSettings `json:"settings"`
	}{Settings: texAsset.Settings})
	if err != nil {
		return importer.ImportResult{Errors: []string{fmt.Sprintf("hash texture settings: %v", err)}}
	}

	sourceHash := fingerprint.HashFileContents(ctx.SourcePath)
	depsHash := fingerprint.HashDependencies(ctx.Deps.Deps)

	key := fingerprint.BuildDdcKey(fingerprint.Input{
		TypePrefix:      "TX",
		Guid:            texAsset.Handle().String(),
		ImporterID:      i.ID(),
		ImporterVersion: i.Version(),
		ToolchainHash:   toolchainTag,
		SourceHash:      sourceHash,
		SettingsHash:    settingsHash,
		DepsHash:        depsHash,
		Target:          ctx.Target,
	})

	var warnings []string
	if texAsset.Settings.GenerateMips {
		warnings = append(warnings, "mip generation is not yet implemented; only mip 0 is produced")
	}
	if texAsset.Settings.Compression != "" && texAsset.Settings.Compression != "RGBA8" {
		warnings = append(warnings, fmt.Sprintf("compression format %q is not yet implemented; output is uncompressed RGBA8", texAsset.Settings.Compression))
	}
	if texAsset.Settings.Brightness != 1.0 {
		warnings = append(warnings, "brightness adjustment is not yet implemented; factor is recorded but not applied")
	}

	if !ctx.ForceReimport && ctx.DDC.Exists(key) {
		return importer.ImportResult{ProducedKeys: []string{key}, Warnings: warnings}
	}

	blob, err := compileTexture(ctx.SourcePath, texAsset.Settings.SRGB)
	if err != nil {
		return importer.ImportResult{Warnings: warnings, Errors: []string{err.Error()}}
	}
	if len(blob) == 0 {
		return importer.ImportResult{Warnings: warnings, Errors: []string{"TextureImporter: compiled blob is empty"}}
	}

	value := ddc.Value{Bytes: blob, ContentHash: fingerprint.HashBytes(blob)}
	if err := ctx.DDC.Put(key, value); err != nil {
		return importer.ImportResult{Warnings: warnings, Errors: []string{fmt.Sprintf("write texture blob to ddc: %v", err)}}
	}

	return importer.ImportResult{ProducedKeys: []string{key}, Warnings: warnings}
}

func compileTexture(sourcePath string, srgb bool) ([]byte, error) {
	file, err := os.Open(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("open texture source %q: %w", sourcePath, err)
	}
	defer file.Close()

	var img image.Image
	ext := strings.ToLower(filepath.Ext(sourcePath))
	if ext == ".tga" {
		img, err = DecodeTGA(file)
	} else {
		img, _, err = image.Decode(file)
	}
	if err != nil {
		return nil, fmt.Errorf("decode texture source %q: %w", sourcePath, err)
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)

	return EncodeBlob(bounds.Dx(), bounds.Dy(), srgb, rgba.Pix)
}

package manager

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-assets/asset"
)

func writeTestPNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create png: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	dir := t.TempDir()
	m, err := New(
		WithAssetRoot(filepath.Join(dir, "content")),
		WithCacheRoot(filepath.Join(dir, "ddc")),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func TestImportAssetCreatesSidecarFile(t *testing.T) {
	m := newTestManager(t)
	dir := t.TempDir()
	sourcePath := filepath.Join(dir, "tex.png")
	writeTestPNG(t, sourcePath)

	a, err := m.ImportAsset(sourcePath)
	if err != nil {
		t.Fatalf("ImportAsset: %v", err)
	}
	if a.Type() != asset.TypeTexture {
		t.Errorf("expected texture asset, got %s", a.Type())
	}
	if _, err := os.Stat(sourcePath + ".asset"); err != nil {
		t.Errorf("expected sidecar .asset file to be written: %v", err)
	}
}

func TestImportAssetDoesNotEagerlyCook(t *testing.T) {
	m := newTestManager(t)
	dir := t.TempDir()
	sourcePath := filepath.Join(dir, "tex.png")
	writeTestPNG(t, sourcePath)

	a, err := m.ImportAsset(sourcePath)
	if err != nil {
		t.Fatalf("ImportAsset: %v", err)
	}

	record, found := m.registry.FindRecord(a.Handle())
	if !found {
		t.Fatal("expected a registry record to exist after ImportAsset")
	}
	if len(record.DdcKeys[m.target.ID()]) != 0 {
		t.Error("expected ImportAsset to not cook the asset into the ddc eagerly")
	}
}

func TestGetTextureDataCooksLazily(t *testing.T) {
	m := newTestManager(t)
	dir := t.TempDir()
	sourcePath := filepath.Join(dir, "tex.png")
	writeTestPNG(t, sourcePath)

	a, err := m.ImportAsset(sourcePath)
	if err != nil {
		t.Fatalf("ImportAsset: %v", err)
	}

	hdr, pixels, err := m.GetTextureData(a)
	if err != nil {
		t.Fatalf("GetTextureData: %v", err)
	}
	if hdr.Width != 2 || hdr.Height != 2 {
		t.Errorf("unexpected dimensions: %dx%d", hdr.Width, hdr.Height)
	}
	if len(pixels) != 2*2*4 {
		t.Errorf("unexpected pixel payload length: %d", len(pixels))
	}

	record, _ := m.registry.FindRecord(a.Handle())
	if len(record.DdcKeys[m.target.ID()]) == 0 {
		t.Error("expected the registry record to be updated with a produced ddc key after cooking")
	}
}

func TestReuseIfExistsSkipsReimport(t *testing.T) {
	m := newTestManager(t)
	dir := t.TempDir()
	sourcePath := filepath.Join(dir, "tex.png")
	writeTestPNG(t, sourcePath)

	first, err := m.ImportAssetWithPolicy(sourcePath, ReuseIfExists)
	if err != nil {
		t.Fatalf("first import: %v", err)
	}

	second, err := m.ImportAssetWithPolicy(sourcePath, ReuseIfExists)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}

	if first.Handle() != second.Handle() {
		t.Error("expected ReuseIfExists to return the same asset handle across calls")
	}
}

func TestScanDirectoryRegistersAssets(t *testing.T) {
	m := newTestManager(t)
	dir := t.TempDir()
	sourcePath := filepath.Join(dir, "tex.png")
	writeTestPNG(t, sourcePath)

	if _, err := m.ImportAsset(sourcePath); err != nil {
		t.Fatalf("ImportAsset: %v", err)
	}

	fresh := newTestManager(t)
	count, err := fresh.ScanDirectory(dir)
	if err != nil {
		t.Fatalf("ScanDirectory: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 asset discovered, got %d", count)
	}
}

func TestMarkDependentsDirty(t *testing.T) {
	m := newTestManager(t)

	texHandle := asset.NewHandle()
	matHandle := asset.NewHandle()

	matRecord := asset.NewRecord(matHandle, "mat.material.asset", asset.TypeMaterial)
	matRecord.Deps = []asset.Dependency{{Kind: asset.DepStrong, Asset: asset.Ref{Handle: texHandle}}}
	m.registry.UpdateRecord(matRecord)

	m.MarkDependentsDirty(texHandle)

	if _, dirty := m.dirtyAssets[matHandle.String()]; !dirty {
		t.Error("expected material to be marked dirty after its texture dependency changed")
	}
}

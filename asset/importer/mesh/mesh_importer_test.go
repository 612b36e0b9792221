package mesh

import (
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-assets/asset"
	"github.com/Carmen-Shannon/oxy-assets/asset/ddc"
	"github.com/Carmen-Shannon/oxy-assets/asset/importer"
)

func TestMeshImporterCooksAndProducesDecodableBlob(t *testing.T) {
	dir := t.TempDir()
	sourcePath := writeTestGLTF(t, dir)

	store, err := ddc.NewLocal(filepath.Join(dir, "ddc"))
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}

	imp := New()
	meshAsset := asset.NewMeshAsset()
	meshAsset.Settings.Optimize = false

	ctx := importer.ImportContext{
		Asset:      meshAsset,
		AssetPath:  sourcePath + ".asset",
		SourcePath: sourcePath,
		Target:     asset.DefaultTargetProfile(),
		DDC:        store,
		Deps:       &importer.DepRecorder{},
	}

	result := imp.Import(ctx)
	if result.Failed() {
		t.Fatalf("Import failed: %v", result.Errors)
	}

	value, ok := store.Get(result.ProducedKeys[0])
	if !ok {
		t.Fatal("expected cooked mesh blob in the ddc")
	}

	decoded, err := DecodeBlob(value.Bytes)
	if err != nil {
		t.Fatalf("DecodeBlob: %v", err)
	}
	if decoded.Header.IndexCount != 3 {
		t.Errorf("expected 3 indices in cooked blob, got %d", decoded.Header.IndexCount)
	}
}

func TestMeshImporterRecordsMaterialSlotDeps(t *testing.T) {
	dir := t.TempDir()
	sourcePath := writeTestGLTF(t, dir)

	store, _ := ddc.NewLocal(filepath.Join(dir, "ddc"))
	imp := New()
	meshAsset := asset.NewMeshAsset()
	meshAsset.Settings.Optimize = false

	matHandle := asset.NewHandle()
	meshAsset.MaterialSlots = []asset.MaterialSlot{{Name: "mat0", MaterialRef: asset.Ref{Handle: matHandle}}}

	ctx := importer.ImportContext{
		Asset:      meshAsset,
		AssetPath:  sourcePath + ".asset",
		SourcePath: sourcePath,
		Target:     asset.DefaultTargetProfile(),
		DDC:        store,
		Deps:       &importer.DepRecorder{},
	}

	result := imp.Import(ctx)
	if result.Failed() {
		t.Fatalf("Import failed: %v", result.Errors)
	}
	if len(ctx.Deps.Deps) != 1 || ctx.Deps.Deps[0].Asset.Handle != matHandle {
		t.Errorf("expected one strong dependency on the material slot, got %v", ctx.Deps.Deps)
	}
}

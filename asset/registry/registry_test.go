package registry

import (
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-assets/asset"
)

func newRecord(handle asset.Handle, deps []asset.Dependency) asset.Record {
	r := asset.NewRecord(handle, "some/path.asset", asset.TypeMesh)
	r.Deps = deps
	return r
}

func TestRegisterAndFindRecord(t *testing.T) {
	reg := New()
	mesh := asset.NewMeshAsset()

	reg.RegisterAsset(mesh, "content/foo.gltf.asset")

	record, ok := reg.FindRecord(mesh.Handle())
	if !ok {
		t.Fatal("expected record to be found after RegisterAsset")
	}
	if record.AssetPath != "content/foo.gltf.asset" {
		t.Errorf("unexpected asset path: %q", record.AssetPath)
	}
}

func TestRegisterAssetSeedsFromExistingRecord(t *testing.T) {
	reg := New()
	mesh := asset.NewMeshAsset()

	record := asset.NewRecord(mesh.Handle(), "content/foo.gltf.asset", asset.TypeMesh)
	record.DdcKeys["Win64|BC7|Debug"] = []string{"MS|existing-key"}
	reg.UpdateRecord(record)

	reg.RegisterAsset(mesh, "content/foo.gltf.asset")

	got, ok := reg.FindRecord(mesh.Handle())
	if !ok {
		t.Fatal("expected record to exist")
	}
	if len(got.DdcKeys["Win64|BC7|Debug"]) != 1 {
		t.Error("expected prior ddc keys to survive a re-register")
	}
}

func TestGetDependentsTracksStrongDepsOnly(t *testing.T) {
	reg := New()

	texHandle := asset.NewHandle()
	matHandle := asset.NewHandle()

	matRecord := newRecord(matHandle, []asset.Dependency{
		{Kind: asset.DepStrong, Asset: asset.Ref{Handle: texHandle}},
		{Kind: asset.DepWeak, Asset: asset.Ref{Handle: asset.NewHandle()}},
	})
	reg.UpdateRecord(matRecord)

	dependents := reg.GetDependents(texHandle)
	if len(dependents) != 1 || dependents[0] != matHandle {
		t.Errorf("expected material to be the sole dependent of its texture, got %v", dependents)
	}
}

func TestUpdateRecordRemovesStaleDependentEdges(t *testing.T) {
	reg := New()

	texA := asset.NewHandle()
	texB := asset.NewHandle()
	mat := asset.NewHandle()

	reg.UpdateRecord(newRecord(mat, []asset.Dependency{
		{Kind: asset.DepStrong, Asset: asset.Ref{Handle: texA}},
	}))
	if len(reg.GetDependents(texA)) != 1 {
		t.Fatal("expected material to depend on texA initially")
	}

	reg.UpdateRecord(newRecord(mat, []asset.Dependency{
		{Kind: asset.DepStrong, Asset: asset.Ref{Handle: texB}},
	}))

	if len(reg.GetDependents(texA)) != 0 {
		t.Error("expected stale dependent edge on texA to be removed")
	}
	if len(reg.GetDependents(texB)) != 1 {
		t.Error("expected new dependent edge on texB to be added")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	reg := New()
	mesh := asset.NewMeshAsset()
	reg.RegisterAsset(mesh, "content/foo.gltf.asset")

	record, _ := reg.FindRecord(mesh.Handle())
	record.LastFingerprint["Win64|BC7|Debug"] = "abc123"
	record.DdcKeys["Win64|BC7|Debug"] = []string{"MS|abc123"}
	record.LastSourceHash["Win64|BC7|Debug"] = "sourcehash"
	reg.UpdateRecord(record)

	path := filepath.Join(t.TempDir(), "registry.json")
	if err := reg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded := New()
	if err := reloaded.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}

	got, ok := reloaded.FindRecord(mesh.Handle())
	if !ok {
		t.Fatal("expected record to survive save/load round trip")
	}
	if got.LastFingerprint["Win64|BC7|Debug"] != "abc123" {
		t.Errorf("unexpected fingerprint after reload: %q", got.LastFingerprint["Win64|BC7|Debug"])
	}
	if got.LastSourceHash["Win64|BC7|Debug"] != "sourcehash" {
		t.Errorf("unexpected source hash after reload: %q", got.LastSourceHash["Win64|BC7|Debug"])
	}
}

func TestDecodeLastSourceHashLegacyStringShape(t *testing.T) {
	lastFingerprint := map[string]string{"Win64|BC7|Debug": "fp"}
	ddcKeys := map[string][]string{"Win64|BC7|Debug": {"MS|fp"}}

	got, err := decodeLastSourceHash([]byte(`"legacy-hash"`), lastFingerprint, ddcKeys)
	if err != nil {
		t.Fatalf("decodeLastSourceHash: %v", err)
	}
	if got["Win64|BC7|Debug"] != "legacy-hash" {
		t.Errorf("expected legacy hash assigned to existing target key, got %v", got)
	}
}

func TestDecodeLastSourceHashLegacyStringNoExistingTargets(t *testing.T) {
	got, err := decodeLastSourceHash([]byte(`"legacy-hash"`), map[string]string{}, map[string][]string{})
	if err != nil {
		t.Fatalf("decodeLastSourceHash: %v", err)
	}
	if got["*"] != "legacy-hash" {
		t.Errorf("expected legacy hash filed under synthetic '*' key, got %v", got)
	}
}

func TestDecodeLastSourceHashModernMapShape(t *testing.T) {
	got, err := decodeLastSourceHash([]byte(`{"Win64|BC7|Debug":"h1"}`), nil, nil)
	if err != nil {
		t.Fatalf("decodeLastSourceHash: %v", err)
	}
	if got["Win64|BC7|Debug"] != "h1" {
		t.Errorf("expected modern map shape preserved, got %v", got)
	}
}

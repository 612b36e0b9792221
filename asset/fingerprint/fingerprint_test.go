package fingerprint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-assets/asset"
)

func TestHashFileContentsStableForSameContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(path, []byte("same bytes"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	h1 := HashFileContents(path)
	h2 := HashFileContents(path)
	if h1 != h2 {
		t.Errorf("expected stable hash, got %q and %q", h1, h2)
	}
}

func TestHashFileContentsDiffersOnContentChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")

	os.WriteFile(path, []byte("version one"), 0o644)
	h1 := HashFileContents(path)

	os.WriteFile(path, []byte("version two"), 0o644)
	h2 := HashFileContents(path)

	if h1 == h2 {
		t.Error("expected different hashes for different file contents")
	}
}

func TestHashFileContentsMissingFileIsStableSentinel(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.txt")
	h1 := HashFileContents(missing)
	h2 := HashFileContents(missing)
	if h1 != h2 {
		t.Error("expected the missing-file sentinel hash to be stable")
	}
}

func TestHashJSONIgnoresKeyOrder(t *testing.T) {
	a := map[string]any{"b": 2, "a": 1}
	b := map[string]any{"a": 1, "b": 2}

	h1, err := HashJSON(a)
	if err != nil {
		t.Fatalf("HashJSON: %v", err)
	}
	h2, err := HashJSON(b)
	if err != nil {
		t.Fatalf("HashJSON: %v", err)
	}
	if h1 != h2 {
		t.Errorf("expected identical hashes regardless of key order, got %q and %q", h1, h2)
	}
}

func TestHashJSONDiffersOnValueChange(t *testing.T) {
	h1, _ := HashJSON(map[string]any{"a": 1})
	h2, _ := HashJSON(map[string]any{"a": 2})
	if h1 == h2 {
		t.Error("expected different hashes for different values")
	}
}

func TestHashDependenciesIgnoresOrderAndWeakDeps(t *testing.T) {
	ha := asset.NewHandle()
	hb := asset.NewHandle()

	depsOrderA := []asset.Dependency{
		{Kind: asset.DepStrong, Asset: asset.Ref{Handle: ha}},
		{Kind: asset.DepStrong, Asset: asset.Ref{Handle: hb}},
		{Kind: asset.DepWeak, Asset: asset.Ref{Handle: asset.NewHandle()}},
	}
	depsOrderB := []asset.Dependency{
		{Kind: asset.DepStrong, Asset: asset.Ref{Handle: hb}},
		{Kind: asset.DepStrong, Asset: asset.Ref{Handle: ha}},
	}

	if HashDependencies(depsOrderA) != HashDependencies(depsOrderB) {
		t.Error("expected dependency hash to ignore ordering and weak deps")
	}
}

func TestHashDependenciesDiffersOnDifferentStrongSet(t *testing.T) {
	depsA := []asset.Dependency{{Kind: asset.DepStrong, Asset: asset.Ref{Handle: asset.NewHandle()}}}
	depsB := []asset.Dependency{{Kind: asset.DepStrong, Asset: asset.Ref{Handle: asset.NewHandle()}}}

	if HashDependencies(depsA) == HashDependencies(depsB) {
		t.Error("expected different strong dependency sets to hash differently")
	}
}

func TestBuildDdcKeyFormat(t *testing.T) {
	key := BuildDdcKey(Input{
		TypePrefix:      "TX",
		Guid:            "guid-1",
		ImporterID:      "TextureImporter",
		ImporterVersion: 1,
		ToolchainHash:   "tool",
		SourceHash:      "src",
		SettingsHash:    "set",
		DepsHash:        "dep",
		Target:          asset.DefaultTargetProfile(),
	})

	want := "TX|guid-1|imp=TextureImporter@v1|tgt=" + asset.DefaultTargetProfile().ID() + "|S=set|C=src|D=dep|T=tool"
	if key != want {
		t.Errorf("BuildDdcKey = %q, want %q", key, want)
	}
}

func TestHashBytesMatchesContent(t *testing.T) {
	h1 := HashBytes([]byte("payload"))
	h2 := HashBytes([]byte("payload"))
	if h1 != h2 {
		t.Error("expected stable hash for identical bytes")
	}
	if h1 == HashBytes([]byte("different")) {
		t.Error("expected different hash for different bytes")
	}
}

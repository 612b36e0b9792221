package mesh

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/Carmen-Shannon/oxy-assets/asset"
)

// writeTestGLTF writes a minimal single-triangle glTF document (one
// POSITION-only primitive with a uint16 index accessor) to a .gltf file
// under dir and returns its path.
func writeTestGLTF(t *testing.T, dir string) string {
	t.Helper()

	var buf bytes.Buffer
	positions := [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	for _, p := range positions {
		binary.Write(&buf, binary.LittleEndian, p)
	}
	indices := []uint16{0, 1, 2}
	for _, idx := range indices {
		binary.Write(&buf, binary.LittleEndian, idx)
	}

	encoded := base64.StdEncoding.EncodeToString(buf.Bytes())

	doc := `{
		"asset": {"version": "2.0"},
		"buffers": [{"byteLength": ` + strconv.Itoa(buf.Len()) + `, "uri": "data:application/octet-stream;base64,` + encoded + `"}],
		"bufferViews": [
			{"buffer": 0, "byteOffset": 0, "byteLength": 36},
			{"buffer": 0, "byteOffset": 36, "byteLength": 6}
		],
		"accessors": [
			{"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3"},
			{"bufferView": 1, "componentType": 5123, "count": 3, "type": "SCALAR"}
		],
		"meshes": [{
			"primitives": [{
				"attributes": {"POSITION": 0},
				"indices": 1,
				"mode": 4
			}]
		}]
	}`

	path := filepath.Join(dir, "triangle.gltf")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write gltf fixture: %v", err)
	}
	return path
}

func TestExtractMeshProducesInterleavedVertices(t *testing.T) {
	path := writeTestGLTF(t, t.TempDir())

	settings := asset.DefaultMeshSettings()
	settings.Optimize = false
	result, err := ExtractMesh(path, settings)
	if err != nil {
		t.Fatalf("ExtractMesh: %v", err)
	}

	if len(result.Indices) != 3 {
		t.Fatalf("expected 3 indices, got %d", len(result.Indices))
	}
	if len(result.Vertices) != 3*VertexStrideFloats {
		t.Fatalf("expected %d floats, got %d", 3*VertexStrideFloats, len(result.Vertices))
	}

	// Missing NORMAL defaults to (0,1,0), at float offset 3 within the stride.
	normalY := result.Vertices[3+1]
	if normalY != 1 {
		t.Errorf("expected default normal Y=1, got %v", normalY)
	}

	// Tangent is always the constant (1,0,0,1), at float offset 6.
	tangent := result.Vertices[6 : 6+4]
	want := []float32{1, 0, 0, 1}
	for i := range want {
		if tangent[i] != want[i] {
			t.Errorf("tangent[%d] = %v, want %v", i, tangent[i], want[i])
		}
	}
}

func TestExtractMeshScalesPositionsAndBounds(t *testing.T) {
	path := writeTestGLTF(t, t.TempDir())

	settings := asset.DefaultMeshSettings()
	settings.Optimize = false
	settings.Scale = 2.0
	result, err := ExtractMesh(path, settings)
	if err != nil {
		t.Fatalf("ExtractMesh: %v", err)
	}

	// Second vertex was (1,0,0), scaled by 2 -> (2,0,0).
	secondVertexX := result.Vertices[VertexStrideFloats+0]
	if secondVertexX != 2.0 {
		t.Errorf("expected scaled position X=2, got %v", secondVertexX)
	}
	if result.BoundsMax[0] != 2.0 {
		t.Errorf("expected bounds max X=2 after scaling, got %v", result.BoundsMax[0])
	}
}

func TestExtractMeshMissingPositionErrors(t *testing.T) {
	dir := t.TempDir()
	doc := `{
		"asset": {"version": "2.0"},
		"meshes": [{"primitives": [{"attributes": {}}]}]
	}`
	path := filepath.Join(dir, "bad.gltf")
	os.WriteFile(path, []byte(doc), 0o644)

	if _, err := ExtractMesh(path, asset.DefaultMeshSettings()); err == nil {
		t.Error("expected error for a primitive missing POSITION")
	}
}

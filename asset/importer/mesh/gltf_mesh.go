package mesh

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-assets/asset"
)

// ExtractedMesh is the geometry this importer cooks into a blob: a flat,
// interleaved vertex buffer in the fixed pos3+normal3+tangent4+uv2 layout,
// a uint32 index buffer, and one Submesh range per glTF primitive.
type ExtractedMesh struct {
	Vertices  []float32
	Indices   []uint32
	Submeshes []Submesh
	BoundsMin [3]float32
	BoundsMax [3]float32
}

// ExtractMesh cooks the first mesh in sourcePath's glTF/GLB document into
// an interleaved vertex/index buffer, scaling positions by settings.Scale.
//
// Only the document's first mesh is imported, matching this pipeline's
// one-mesh-per-source-file convention. Missing NORMAL data defaults every
// vertex's normal to (0,1,0); missing TEXCOORD_0 defaults every vertex's UV
// to (0,0). Tangents are always written as the constant (1,0,0,1): no
// tangent-space generation is performed regardless of
// settings.GenerateTangents.
func ExtractMesh(sourcePath string, settings asset.MeshSettings) (ExtractedMesh, error) {
	parser := newGLTFParser()
	if err := parser.Parse(sourcePath); err != nil {
		return ExtractedMesh{}, fmt.Errorf("parse gltf source: %w", err)
	}

	doc := parser.Document()
	if len(doc.Meshes) == 0 {
		return ExtractedMesh{}, fmt.Errorf("gltf document has no meshes")
	}
	gltfMesh := doc.Meshes[0]

	var (
		vertices     []float32
		indices      []uint32
		submeshes    []Submesh
		baseVertex   uint32
		boundsMin    = [3]float32{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
		boundsMax    = [3]float32{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32}
	)

	for _, prim := range gltfMesh.Primitives {
		if prim.Mode != nil && *prim.Mode != gltfPrimitiveModeTriangles {
			continue
		}

		materialIndex := 0
		if prim.Material != nil {
			materialIndex = *prim.Material
		}

		submesh := Submesh{
			IndexOffset:   uint32(len(indices)),
			MaterialIndex: uint32(materialIndex),
		}

		posIdx, hasPos := prim.Attributes["POSITION"]
		if !hasPos {
			return ExtractedMesh{}, fmt.Errorf("primitive missing required POSITION attribute")
		}
		positions, err := parser.ReadVec3Accessor(posIdx)
		if err != nil {
			return ExtractedMesh{}, fmt.Errorf("read POSITION: %w", err)
		}

		var normals [][3]float32
		if normIdx, ok := prim.Attributes["NORMAL"]; ok {
			normals, err = parser.ReadVec3Accessor(normIdx)
			if err != nil {
				return ExtractedMesh{}, fmt.Errorf("read NORMAL: %w", err)
			}
		}

		var uvs [][2]float32
		if uvIdx, ok := prim.Attributes["TEXCOORD_0"]; ok {
			uvs, err = parser.ReadVec2Accessor(uvIdx)
			if err != nil {
				return ExtractedMesh{}, fmt.Errorf("read TEXCOORD_0: %w", err)
			}
		}

		vertexCount := len(positions)
		for i := 0; i < vertexCount; i++ {
			p := positions[i]
			px := p[0] * settings.Scale
			py := p[1] * settings.Scale
			pz := p[2] * settings.Scale
			vertices = append(vertices, px, py, pz)

			boundsMin[0] = min(boundsMin[0], px)
			boundsMin[1] = min(boundsMin[1], py)
			boundsMin[2] = min(boundsMin[2], pz)
			boundsMax[0] = max(boundsMax[0], px)
			boundsMax[1] = max(boundsMax[1], py)
			boundsMax[2] = max(boundsMax[2], pz)

			if i < len(normals) {
				n := normals[i]
				vertices = append(vertices, n[0], n[1], n[2])
			} else {
				vertices = append(vertices, 0, 1, 0)
			}

			// Tangent generation is not performed; the slot is always the
			// constant (1,0,0,1), independent of settings.GenerateTangents.
			vertices = append(vertices, 1, 0, 0, 1)

			if i < len(uvs) {
				uv := uvs[i]
				vertices = append(vertices, uv[0], uv[1])
			} else {
				vertices = append(vertices, 0, 0)
			}
		}

		if prim.Indices != nil {
			primIndices, err := parser.ReadIndicesAccessor(*prim.Indices)
			if err != nil {
				return ExtractedMesh{}, fmt.Errorf("read primitive indices: %w", err)
			}
			for _, idx := range primIndices {
				indices = append(indices, idx+baseVertex)
			}
		} else {
			for i := uint32(0); i < uint32(vertexCount); i++ {
				indices = append(indices, i+baseVertex)
			}
		}

		submesh.IndexCount = uint32(len(indices)) - submesh.IndexOffset
		submeshes = append(submeshes, submesh)
		baseVertex += uint32(vertexCount)
	}

	if len(vertices) == 0 {
		boundsMin, boundsMax = [3]float32{}, [3]float32{}
	}

	result := ExtractedMesh{
		Vertices:  vertices,
		Indices:   indices,
		Submeshes: submeshes,
		BoundsMin: boundsMin,
		BoundsMax: boundsMax,
	}

	if settings.Optimize && len(indices) > 0 && len(vertices) > 0 {
		result = optimizeMesh(result)
	}

	return result, nil
}

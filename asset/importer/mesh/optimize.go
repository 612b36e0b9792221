package mesh

import "log"

// optimizeMesh deduplicates identical vertices and remaps the index buffer
// to reference the deduplicated set, then recomputes bounds over the
// result. This is a deliberately reduced stand-in for the reference
// engine's five-step meshoptimizer pipeline (vertex-cache, overdraw, and
// vertex-fetch optimization on top of the remap): no meshoptimizer Go
// binding exists anywhere in the surrounding ecosystem, so this importer
// only performs the one optimization pass it can implement exactly and
// deterministically without one — welding duplicate vertices emitted by
// glTF's per-attribute-combination expansion.
func optimizeMesh(m ExtractedMesh) ExtractedMesh {
	type vertexKey [VertexStrideFloats]float32

	remap := make(map[vertexKey]uint32, len(m.Indices))
	vertices := make([]float32, 0, len(m.Vertices))
	remapped := make([]uint32, len(m.Indices))

	vertexCount := len(m.Vertices) / VertexStrideFloats
	oldToNew := make([]uint32, vertexCount)

	for v := 0; v < vertexCount; v++ {
		var key vertexKey
		copy(key[:], m.Vertices[v*VertexStrideFloats:(v+1)*VertexStrideFloats])

		newIndex, seen := remap[key]
		if !seen {
			newIndex = uint32(len(vertices) / VertexStrideFloats)
			vertices = append(vertices, key[:]...)
			remap[key] = newIndex
		}
		oldToNew[v] = newIndex
	}

	for i, idx := range m.Indices {
		remapped[i] = oldToNew[idx]
	}

	boundsMin, boundsMax := recomputeBounds(vertices)

	log.Printf("mesh optimize: vertices %d -> %d, indices %d",
		vertexCount, len(vertices)/VertexStrideFloats, len(remapped))

	return ExtractedMesh{
		Vertices:  vertices,
		Indices:   remapped,
		Submeshes: m.Submeshes,
		BoundsMin: boundsMin,
		BoundsMax: boundsMax,
	}
}

func recomputeBounds(vertices []float32) ([3]float32, [3]float32) {
	vertexCount := len(vertices) / VertexStrideFloats
	if vertexCount == 0 {
		return [3]float32{}, [3]float32{}
	}

	boundsMin := [3]float32{vertices[0], vertices[1], vertices[2]}
	boundsMax := boundsMin

	for v := 0; v < vertexCount; v++ {
		x := vertices[v*VertexStrideFloats+0]
		y := vertices[v*VertexStrideFloats+1]
		z := vertices[v*VertexStrideFloats+2]

		boundsMin[0] = min(boundsMin[0], x)
		boundsMin[1] = min(boundsMin[1], y)
		boundsMin[2] = min(boundsMin[2], z)
		boundsMax[0] = max(boundsMax[0], x)
		boundsMax[1] = max(boundsMax[1], y)
		boundsMax[2] = max(boundsMax[2], z)
	}

	return boundsMin, boundsMax
}

package mesh

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	blobMagic   uint32 = 0x41504D53 // "APMS"
	blobVersion uint32 = 1

	// VertexStrideFloats is the fixed per-vertex layout this importer
	// always produces: position(3) + normal(3) + tangent(4) + uv(2).
	VertexStrideFloats = 12
)

// Header is the fixed prefix of a cooked mesh blob. No struct definition
// for this layout exists in the reference material this importer is
// grounded on, so the layout here is this port's own design: a small fixed
// header, followed by one Submesh record per primitive, followed by the
// interleaved vertex buffer, followed by the uint32 index buffer.
type Header struct {
	Magic              uint32
	Version            uint32
	VertexCount        uint32
	IndexCount         uint32
	SubmeshCount       uint32
	VertexStrideFloats uint32
	BoundsMin          [3]float32
	BoundsMax          [3]float32
}

const HeaderSize = 4*6 + 4*3*2 // 6 uint32 fields + 2 [3]float32 fields = 48 bytes

// IsValid reports whether h has a recognized magic and version.
func (h Header) IsValid() bool {
	return h.Magic == blobMagic && h.Version == blobVersion
}

// Submesh is one draw range within the mesh blob's shared vertex/index
// buffers, bound to one material slot.
type Submesh struct {
	IndexOffset   uint32
	IndexCount    uint32
	MaterialIndex uint32
}

// Mesh is the decoded, in-memory form of a cooked mesh blob.
type Mesh struct {
	Header    Header
	Submeshes []Submesh
	Vertices  []float32 // len == VertexCount * VertexStrideFloats
	Indices   []uint32
}

// EncodeBlob serializes a cooked mesh into its on-disk blob form.
func EncodeBlob(m Mesh) ([]byte, error) {
	hdr := Header{
		Magic:              blobMagic,
		Version:            blobVersion,
		VertexCount:        uint32(len(m.Vertices) / VertexStrideFloats),
		IndexCount:         uint32(len(m.Indices)),
		SubmeshCount:       uint32(len(m.Submeshes)),
		VertexStrideFloats: VertexStrideFloats,
		BoundsMin:          m.Header.BoundsMin,
		BoundsMax:          m.Header.BoundsMax,
	}

	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, hdr); err != nil {
		return nil, fmt.Errorf("encode mesh header: %w", err)
	}
	for _, sm := range m.Submeshes {
		if err := binary.Write(buf, binary.LittleEndian, sm); err != nil {
			return nil, fmt.Errorf("encode submesh: %w", err)
		}
	}
	if err := binary.Write(buf, binary.LittleEndian, m.Vertices); err != nil {
		return nil, fmt.Errorf("encode vertices: %w", err)
	}
	if err := binary.Write(buf, binary.LittleEndian, m.Indices); err != nil {
		return nil, fmt.Errorf("encode indices: %w", err)
	}

	return buf.Bytes(), nil
}

// DecodeBlob parses a cooked mesh blob back into its in-memory form.
func DecodeBlob(blob []byte) (Mesh, error) {
	if len(blob) < HeaderSize {
		return Mesh{}, fmt.Errorf("mesh blob too small: %d bytes", len(blob))
	}

	r := bytes.NewReader(blob)
	var hdr Header
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return Mesh{}, fmt.Errorf("decode mesh header: %w", err)
	}
	if !hdr.IsValid() {
		return Mesh{}, fmt.Errorf("invalid mesh blob header")
	}

	submeshes := make([]Submesh, hdr.SubmeshCount)
	for i := range submeshes {
		if err := binary.Read(r, binary.LittleEndian, &submeshes[i]); err != nil {
			return Mesh{}, fmt.Errorf("decode submesh %d: %w", i, err)
		}
	}

	vertices := make([]float32, int(hdr.VertexCount)*int(hdr.VertexStrideFloats))
	if err := binary.Read(r, binary.LittleEndian, vertices); err != nil {
		return Mesh{}, fmt.Errorf("decode vertices: %w", err)
	}

	indices := make([]uint32, hdr.IndexCount)
	if err := binary.Read(r, binary.LittleEndian, indices); err != nil {
		return Mesh{}, fmt.Errorf("decode indices: %w", err)
	}

	return Mesh{Header: hdr, Submeshes: submeshes, Vertices: vertices, Indices: indices}, nil
}

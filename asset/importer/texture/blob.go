// Package texture cooks source images (.png/.jpg/.jpeg/.tga) into the
// RGBA8 pixel blob the engine's texture streaming path consumes.
package texture

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// PixelFormat tags the layout of a blob's pixel data. The importer always
// produces RGBA8Unorm or RGBA8UnormSrgb; the other tags exist so the blob
// format can describe data produced by other toolchains without a version
// bump.
type PixelFormat uint32

const (
	PixelFormatUnknown        PixelFormat = 0
	PixelFormatR8Unorm        PixelFormat = 1
	PixelFormatRG8Unorm       PixelFormat = 5
	PixelFormatRGBA8Unorm     PixelFormat = 8
	PixelFormatRGBA8UnormSrgb PixelFormat = 13
)

const (
	blobMagic   uint32 = 0x41505458 // "APTX"
	blobVersion uint32 = 1

	// FlagSRGB is set in Header.Flags when Format encodes an sRGB-encoded
	// pixel buffer.
	FlagSRGB uint32 = 1 << 0
)

// Header is the fixed 40-byte prefix of a cooked texture blob, followed
// immediately by Width*Height*Channels bytes of pixel data.
type Header struct {
	Magic      uint32
	Version    uint32
	Width      uint32
	Height     uint32
	Channels   uint32
	Format     PixelFormat
	MipLevels  uint32
	Flags      uint32
	DataSize   uint64
}

const HeaderSize = 4*8 + 8 // 8 uint32 fields + 1 uint64 field = 40 bytes

// IsValid reports whether h has a recognized magic and version.
func (h Header) IsValid() bool {
	return h.Magic == blobMagic && h.Version == blobVersion
}

// EncodeBlob builds a complete cooked texture blob: header followed by
// pixels. pixels must already be in the format Header.Format describes.
func EncodeBlob(width, height int, srgb bool, pixels []byte) ([]byte, error) {
	if want := width * height * 4; len(pixels) != want {
		return nil, fmt.Errorf("texture pixel data length %d does not match %dx%d RGBA8 (%d)", len(pixels), width, height, want)
	}

	format := PixelFormatRGBA8Unorm
	var flags uint32
	if srgb {
		format = PixelFormatRGBA8UnormSrgb
		flags |= FlagSRGB
	}

	hdr := Header{
		Magic:     blobMagic,
		Version:   blobVersion,
		Width:     uint32(width),
		Height:    uint32(height),
		Channels:  4,
		Format:    format,
		MipLevels: 1,
		Flags:     flags,
		DataSize:  uint64(len(pixels)),
	}

	buf := bytes.NewBuffer(make([]byte, 0, HeaderSize+len(pixels)))
	if err := binary.Write(buf, binary.LittleEndian, hdr); err != nil {
		return nil, fmt.Errorf("encode texture header: %w", err)
	}
	buf.Write(pixels)
	return buf.Bytes(), nil
}

// DecodeHeader reads and validates the header prefix of a cooked texture
// blob, returning the header and the pixel payload that follows it.
func DecodeHeader(blob []byte) (Header, []byte, error) {
	if len(blob) < HeaderSize {
		return Header{}, nil, fmt.Errorf("texture blob too small: %d bytes", len(blob))
	}

	var hdr Header
	if err := binary.Read(bytes.NewReader(blob[:HeaderSize]), binary.LittleEndian, &hdr); err != nil {
		return Header{}, nil, fmt.Errorf("decode texture header: %w", err)
	}
	if !hdr.IsValid() {
		return Header{}, nil, fmt.Errorf("invalid texture blob header")
	}

	return hdr, blob[HeaderSize:], nil
}

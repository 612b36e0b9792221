package texture

import (
	"bufio"
	"errors"
	"image"
	"image/color"
	"io"
)

// tga decodes uncompressed 24-bit and 32-bit truecolor TGA images, the one
// ingestible texture format no decoder in the surrounding ecosystem covers.
// Color-mapped and run-length-encoded TGA variants are not supported.

var errUnsupportedTGA = errors.New("texture: unsupported tga variant (only uncompressed 24/32-bit truecolor is supported)")

type tgaHeader struct {
	idLength        uint8
	colorMapType    uint8
	imageType       uint8
	colorMapOrigin  uint16
	colorMapLength  uint16
	colorMapDepth   uint8
	xOrigin         uint16
	yOrigin         uint16
	width           uint16
	height          uint16
	pixelDepth      uint8
	imageDescriptor uint8
}

func readTgaHeader(r io.Reader) (tgaHeader, error) {
	var buf [18]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return tgaHeader{}, err
	}
	h := tgaHeader{
		idLength:        buf[0],
		colorMapType:    buf[1],
		imageType:       buf[2],
		colorMapOrigin:  le16(buf[3:5]),
		colorMapLength:  le16(buf[5:7]),
		colorMapDepth:   buf[7],
		xOrigin:         le16(buf[8:10]),
		yOrigin:         le16(buf[10:12]),
		width:           le16(buf[12:14]),
		height:          le16(buf[14:16]),
		pixelDepth:      buf[16],
		imageDescriptor: buf[17],
	}
	return h, nil
}

func le16(b []byte) uint16 {
	return uint16(b[0]) | uint16(b[1])<<8
}

func decodeTGA(r io.Reader) (image.Image, error) {
	br := bufio.NewReader(r)
	hdr, err := readTgaHeader(br)
	if err != nil {
		return nil, err
	}

	// imageType 2 == uncompressed truecolor.
	if hdr.imageType != 2 || hdr.colorMapType != 0 {
		return nil, errUnsupportedTGA
	}
	if hdr.pixelDepth != 24 && hdr.pixelDepth != 32 {
		return nil, errUnsupportedTGA
	}

	if hdr.idLength > 0 {
		if _, err := io.CopyN(io.Discard, br, int64(hdr.idLength)); err != nil {
			return nil, err
		}
	}

	width := int(hdr.width)
	height := int(hdr.height)
	bytesPerPixel := int(hdr.pixelDepth / 8)

	row := make([]byte, width*bytesPerPixel)
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	// Bit 5 of the image descriptor set means the origin is the top-left
	// corner; unset means bottom-left (TGA's default), which needs flipping
	// into Go's top-down image.RGBA layout.
	topLeftOrigin := hdr.imageDescriptor&0x20 != 0

	for y := 0; y < height; y++ {
		if _, err := io.ReadFull(br, row); err != nil {
			return nil, err
		}

		destY := y
		if !topLeftOrigin {
			destY = height - 1 - y
		}

		for x := 0; x < width; x++ {
			off := x * bytesPerPixel
			b := row[off]
			g := row[off+1]
			r := row[off+2]
			a := uint8(255)
			if bytesPerPixel == 4 {
				a = row[off+3]
			}
			img.SetRGBA(x, destY, color.RGBA{R: r, G: g, B: b, A: a})
		}
	}

	return img, nil
}

// DecodeTGA decodes an uncompressed 24 or 32-bit truecolor TGA image. TGA
// has no reliable magic byte sequence to sniff, so unlike PNG and JPEG it
// is dispatched by file extension in the texture importer rather than
// registered with image.RegisterFormat.
func DecodeTGA(r io.Reader) (image.Image, error) {
	return decodeTGA(r)
}

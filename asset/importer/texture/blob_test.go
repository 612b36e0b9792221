package texture

import "testing"

func TestEncodeDecodeBlobRoundTrip(t *testing.T) {
	pixels := make([]byte, 4*2*3) // 2x3 RGBA8
	for i := range pixels {
		pixels[i] = byte(i)
	}

	blob, err := EncodeBlob(2, 3, true, pixels)
	if err != nil {
		t.Fatalf("EncodeBlob: %v", err)
	}

	hdr, data, err := DecodeHeader(blob)
	if err != nil {
		t.Fatalf("DecodeHeader: %v", err)
	}

	if hdr.Width != 2 || hdr.Height != 3 {
		t.Errorf("unexpected dimensions: %dx%d", hdr.Width, hdr.Height)
	}
	if hdr.Flags&FlagSRGB == 0 {
		t.Error("expected sRGB flag to be set")
	}
	if !hdr.IsValid() {
		t.Error("expected decoded header to be valid")
	}
	if string(data) != string(pixels) {
		t.Error("decoded pixel data does not match original")
	}
}

func TestEncodeBlobRejectsMismatchedPixelLength(t *testing.T) {
	if _, err := EncodeBlob(2, 2, false, []byte{1, 2, 3}); err == nil {
		t.Error("expected EncodeBlob to reject pixel data with the wrong length")
	}
}

func TestDecodeHeaderRejectsTruncatedBlob(t *testing.T) {
	if _, _, err := DecodeHeader([]byte{1, 2, 3}); err == nil {
		t.Error("expected DecodeHeader to reject a blob shorter than the header")
	}
}

func TestDecodeHeaderRejectsBadMagic(t *testing.T) {
	blob, _ := EncodeBlob(1, 1, false, []byte{0, 0, 0, 0})
	blob[0] ^= 0xFF
	if _, _, err := DecodeHeader(blob); err == nil {
		t.Error("expected DecodeHeader to reject a blob with a corrupted magic number")
	}
}

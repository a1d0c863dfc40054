// Package gb7 implements the GB7 binary image format: 7-bit grayscale with
// an optional 1-bit transparency mask.
//
// # File layout
//
// A GB7 file is a 12-byte header followed by one payload byte per pixel,
// row-major, top-to-bottom:
//
//	offset  size  field
//	0       4     magic 0x47 0x42 0x37 0x1D ("GB7" + 0x1D)
//	4       1     version (currently 1)
//	5       1     flags; bit0 = hasMask
//	6       2     width, big-endian
//	8       2     height, big-endian
//	10      2     reserved, zero
//
// When hasMask is set each payload byte is (maskBit<<7) | gray7; otherwise
// the top bit is always 0 and the byte is the plain 7-bit gray value. The
// mask bit cannot be inferred from payload bytes alone: readers must consult
// the header flag.
//
// Encoding is lossy by design: color collapses to a 7-bit luma
// (round(luma*127/255)) and alpha to a single threshold bit (alpha >= 128).
// Decoding expands gray values with floor(gray7*255/127), a deliberately
// different constant; a round trip recovers luma only approximately. These
// constants are the format's compatibility contract and must not change.
//
// Basic usage:
//
//	buf, err := gb7.Decode(file)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = gb7.Encode(out, buf)
package gb7

import (
	"image"
	"image/color"
	"io"

	"github.com/halftone/imagecore"
)

// Magic is the 4-byte GB7 file signature.
var Magic = [4]byte{0x47, 0x42, 0x37, 0x1D}

// Version is the format version written by this package.
const Version = 1

// HeaderSize is the fixed header length in bytes.
const HeaderSize = 12

// flagHasMask marks files whose payload carries a transparency bit per pixel.
const flagHasMask = 0x01

// MaxDimension is the largest encodable width or height.
const MaxDimension = 65535

// Metadata contains header information extracted from a GB7 file without
// decoding the payload.
type Metadata struct {
	// Width is the image width in pixels.
	Width int

	// Height is the image height in pixels.
	Height int

	// Version is the format version byte. It is informational: no current
	// decoder behavior is gated on it.
	Version int

	// HasMask reports whether the payload carries per-pixel mask bits.
	HasMask bool
}

// Decode reads a GB7 image from r into a PixelBuffer. The 7-bit gray value
// is replicated into R, G and B; alpha is 255 or, when the file has a mask,
// 255/0 per the mask bit.
func Decode(r io.Reader) (*imagecore.PixelBuffer, error) {
	d := newDecoder(r)
	return d.decode()
}

// DecodeMetadata reads only the header information without decoding pixels.
func DecodeMetadata(r io.Reader) (*Metadata, error) {
	d := newDecoder(r)
	return d.readMetadata()
}

// Encode writes the buffer to w in GB7 format. See the package documentation
// for the quantization rules.
func Encode(w io.Writer, buf *imagecore.PixelBuffer) error {
	e := newEncoder(w, buf)
	return e.encode()
}

// init registers the GB7 format with the image package.
func init() {
	image.RegisterFormat("gb7", string(Magic[:]),
		func(r io.Reader) (image.Image, error) {
			buf, err := Decode(r)
			if err != nil {
				return nil, err
			}
			return buf.ToRGBA(), nil
		},
		func(r io.Reader) (image.Config, error) {
			m, err := DecodeMetadata(r)
			if err != nil {
				return image.Config{}, err
			}
			return image.Config{
				ColorModel: color.RGBAModel,
				Width:      m.Width,
				Height:     m.Height,
			}, nil
		})
}

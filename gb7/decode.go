package gb7

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/halftone/imagecore"
)

// decoder handles GB7 decoding.
type decoder struct {
	r       *bufio.Reader
	version int
	hasMask bool
	width   int
	height  int
}

// newDecoder creates a new decoder.
func newDecoder(r io.Reader) *decoder {
	return &decoder{r: bufio.NewReader(r)}
}

// decode reads the header and expands the payload into a PixelBuffer.
func (d *decoder) decode() (*imagecore.PixelBuffer, error) {
	if err := d.readHeader(); err != nil {
		return nil, fmt.Errorf("decoding gb7: %w", err)
	}

	// Copy rather than preallocate: a corrupt header can claim dimensions
	// far larger than the actual stream.
	n := d.width * d.height
	var payload bytes.Buffer
	if copied, err := io.CopyN(&payload, d.r, int64(n)); err != nil {
		return nil, fmt.Errorf("decoding gb7: truncated payload, got %d of %d bytes: %w", copied, n, err)
	}

	buf := imagecore.New(d.width, d.height)
	for i, b := range payload.Bytes() {
		gray7 := int(b & 0x7F)
		gray8 := uint8(gray7 * 255 / 127)

		alpha := uint8(255)
		if d.hasMask && b&0x80 == 0 {
			alpha = 0
		}

		buf.Pix[i*4] = gray8
		buf.Pix[i*4+1] = gray8
		buf.Pix[i*4+2] = gray8
		buf.Pix[i*4+3] = alpha
	}
	return buf, nil
}

// readMetadata reads only the header.
func (d *decoder) readMetadata() (*Metadata, error) {
	if err := d.readHeader(); err != nil {
		return nil, fmt.Errorf("reading gb7 metadata: %w", err)
	}
	return &Metadata{
		Width:   d.width,
		Height:  d.height,
		Version: d.version,
		HasMask: d.hasMask,
	}, nil
}

// readHeader reads and validates the fixed 12-byte header.
func (d *decoder) readHeader() error {
	header := make([]byte, HeaderSize)
	if _, err := io.ReadFull(d.r, header); err != nil {
		return fmt.Errorf("reading header: %w", err)
	}

	if !bytes.Equal(header[0:4], Magic[:]) {
		return fmt.Errorf("invalid signature % x", header[0:4])
	}

	// The version byte is informational; no behavior is gated on it yet.
	d.version = int(header[4])
	d.hasMask = header[5]&flagHasMask != 0
	d.width = int(binary.BigEndian.Uint16(header[6:8]))
	d.height = int(binary.BigEndian.Uint16(header[8:10]))

	if d.width < 1 || d.height < 1 {
		return fmt.Errorf("invalid dimensions %dx%d", d.width, d.height)
	}
	return nil
}

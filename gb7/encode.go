package gb7

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/halftone/imagecore"
)

// encoder handles GB7 encoding.
type encoder struct {
	w   io.Writer
	buf *imagecore.PixelBuffer
}

// newEncoder creates a new encoder.
func newEncoder(w io.Writer, buf *imagecore.PixelBuffer) *encoder {
	return &encoder{w: w, buf: buf}
}

// encode validates the buffer, quantizes the payload and writes header plus
// payload. Nothing is written when validation fails.
func (e *encoder) encode() error {
	if err := e.validate(); err != nil {
		return fmt.Errorf("encoding gb7: %w", err)
	}

	payload, hasMask := e.quantize()

	header := make([]byte, HeaderSize)
	copy(header[0:4], Magic[:])
	header[4] = Version
	if hasMask {
		header[5] = flagHasMask
	}
	binary.BigEndian.PutUint16(header[6:8], uint16(e.buf.Width))
	binary.BigEndian.PutUint16(header[8:10], uint16(e.buf.Height))
	// Bytes 10-11 are reserved and stay zero.

	if _, err := e.w.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if _, err := e.w.Write(payload); err != nil {
		return fmt.Errorf("writing payload: %w", err)
	}
	return nil
}

// validate checks the encoder preconditions: dimensions within the u16 range
// and a consistent pixel slice.
func (e *encoder) validate() error {
	if err := e.buf.Validate(); err != nil {
		return err
	}
	if e.buf.Width > MaxDimension || e.buf.Height > MaxDimension {
		return fmt.Errorf("dimensions %dx%d exceed the format maximum %d", e.buf.Width, e.buf.Height, MaxDimension)
	}
	return nil
}

// quantize reduces each pixel to its payload byte. The mask bits are always
// computed; they are folded into the payload only when at least one pixel is
// below the alpha threshold, so fully opaque images encode with a clean top
// bit and flags byte 0x00.
func (e *encoder) quantize() (payload []byte, hasMask bool) {
	n := e.buf.Width * e.buf.Height
	payload = make([]byte, n)
	mask := make([]byte, n)

	for i := 0; i < n; i++ {
		r := float64(e.buf.Pix[i*4])
		g := float64(e.buf.Pix[i*4+1])
		b := float64(e.buf.Pix[i*4+2])
		a := e.buf.Pix[i*4+3]

		luma := math.Round(0.2126*r + 0.7152*g + 0.0722*b)
		gray7 := int(math.Round(luma * 127 / 255))
		if gray7 < 0 {
			gray7 = 0
		}
		if gray7 > 127 {
			gray7 = 127
		}
		payload[i] = byte(gray7)

		if a >= 128 {
			mask[i] = 1
		} else {
			hasMask = true
		}
	}

	if hasMask {
		for i := range payload {
			payload[i] |= mask[i] << 7
		}
	}
	return payload, hasMask
}

package gb7

import (
	"bytes"
	"testing"
)

// FuzzDecode tests the decoder with arbitrary input data.
// Run with: go test -fuzz=FuzzDecode -fuzztime=60s
func FuzzDecode(f *testing.F) {
	// Minimal valid 1x1 file.
	f.Add([]byte{0x47, 0x42, 0x37, 0x1D, 1, 0, 0, 1, 0, 1, 0, 0, 64})

	// Valid header with a mask flag and a short payload.
	f.Add([]byte{0x47, 0x42, 0x37, 0x1D, 1, 1, 0, 2, 0, 2, 0, 0, 0xFF})

	// Header with zero dimensions.
	f.Add([]byte{0x47, 0x42, 0x37, 0x1D, 1, 0, 0, 0, 0, 0, 0, 0})

	// Wrong magic, empty and tiny inputs.
	f.Add([]byte{0x47, 0x42, 0x38, 0x1D, 1, 0, 0, 1, 0, 1, 0, 0, 0})
	f.Add([]byte{})
	f.Add([]byte{0x47})

	f.Fuzz(func(t *testing.T, data []byte) {
		// The decoder should never panic, regardless of input.
		buf, err := Decode(bytes.NewReader(data))
		if err != nil {
			return
		}
		// Any successfully decoded buffer must satisfy its invariants.
		if verr := buf.Validate(); verr != nil {
			t.Errorf("Decode returned an invalid buffer: %v", verr)
		}
	})
}

// FuzzDecodeMetadata tests header parsing with arbitrary input.
func FuzzDecodeMetadata(f *testing.F) {
	f.Add([]byte{0x47, 0x42, 0x37, 0x1D, 1, 0, 0, 1, 0, 1, 0, 0, 64})
	f.Add([]byte{})
	f.Add([]byte{0xFF, 0xFF})

	f.Fuzz(func(t *testing.T, data []byte) {
		m, err := DecodeMetadata(bytes.NewReader(data))
		if err != nil {
			return
		}
		if m.Width < 1 || m.Height < 1 {
			t.Errorf("metadata reports invalid dimensions %dx%d", m.Width, m.Height)
		}
	})
}

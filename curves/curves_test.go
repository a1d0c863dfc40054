package curves

import (
	"testing"

	"github.com/halftone/imagecore"
)

func TestCalculate(t *testing.T) {
	buf := imagecore.New(2, 2)
	// Four pixels: two mid-gray, one red, one transparent black.
	pixels := [][4]uint8{
		{128, 128, 128, 255},
		{128, 128, 128, 255},
		{255, 0, 0, 255},
		{0, 0, 0, 0},
	}
	for i, p := range pixels {
		copy(buf.Pix[i*4:], p[:])
	}

	h := Calculate(buf, false)
	if h.R[128] != 2 || h.R[255] != 1 || h.R[0] != 1 {
		t.Errorf("R histogram = {0:%d 128:%d 255:%d}, want {1 2 1}", h.R[0], h.R[128], h.R[255])
	}
	if h.G[128] != 2 || h.G[0] != 2 {
		t.Errorf("G histogram = {0:%d 128:%d}, want {2 2}", h.G[0], h.G[128])
	}
	for i, n := range h.A {
		if n != 0 {
			t.Fatalf("A[%d] = %d without includeAlpha, want 0", i, n)
		}
	}

	h = Calculate(buf, true)
	if h.A[255] != 3 || h.A[0] != 1 {
		t.Errorf("A histogram = {0:%d 255:%d}, want {1 3}", h.A[0], h.A[255])
	}
}

func TestNewLUTIdentity(t *testing.T) {
	lut := NewLUT(CurvePoint{0, 0}, CurvePoint{255, 255})
	for i := range lut {
		if lut[i] != uint8(i) {
			t.Fatalf("lut[%d] = %d, want %d", i, lut[i], i)
		}
	}
}

func TestNewLUTInversion(t *testing.T) {
	lut := NewLUT(CurvePoint{0, 255}, CurvePoint{255, 0})
	for i := range lut {
		if lut[i] != uint8(255-i) {
			t.Fatalf("lut[%d] = %d, want %d", i, lut[i], 255-i)
		}
	}
}

func TestNewLUTFlatRegions(t *testing.T) {
	lut := NewLUT(CurvePoint{64, 0}, CurvePoint{192, 255})
	for i := 0; i <= 64; i++ {
		if lut[i] != 0 {
			t.Fatalf("lut[%d] = %d, want 0 (below first point)", i, lut[i])
		}
	}
	for i := 192; i <= 255; i++ {
		if lut[i] != 255 {
			t.Fatalf("lut[%d] = %d, want 255 (above second point)", i, lut[i])
		}
	}
	// Midpoint of the ramp.
	if lut[128] != 128 {
		t.Errorf("lut[128] = %d, want 128", lut[128])
	}
}

func TestNewLUTEqualInputs(t *testing.T) {
	// A vertical line degenerates to the rounded average of the two outputs
	// for every index.
	lut := NewLUT(CurvePoint{128, 50}, CurvePoint{128, 200})
	for i := range lut {
		if lut[i] != 125 {
			t.Fatalf("lut[%d] = %d, want 125", i, lut[i])
		}
	}
}

func TestNewLUTOrdersPoints(t *testing.T) {
	a := NewLUT(CurvePoint{0, 0}, CurvePoint{255, 255})
	b := NewLUT(CurvePoint{255, 255}, CurvePoint{0, 0})
	if *a != *b {
		t.Error("point order changed the table")
	}
}

func TestNewLUTClampsPoints(t *testing.T) {
	lut := NewLUT(CurvePoint{-20, -50}, CurvePoint{300, 400})
	if lut[0] != 0 || lut[255] != 255 {
		t.Errorf("lut[0]=%d lut[255]=%d, want 0 and 255", lut[0], lut[255])
	}
}

func TestApply(t *testing.T) {
	buf := imagecore.New(1, 2)
	copy(buf.Pix, []uint8{10, 20, 30, 40, 50, 60, 70, 80})

	invert := NewLUT(CurvePoint{0, 255}, CurvePoint{255, 0})
	identity := NewLUT(CurvePoint{0, 0}, CurvePoint{255, 255})

	out := Apply(buf, invert, identity, identity, nil)

	// R inverted, G/B unchanged, alpha untouched.
	want := []uint8{245, 20, 30, 40, 205, 60, 70, 80}
	for i, v := range want {
		if out.Pix[i] != v {
			t.Errorf("out.Pix[%d] = %d, want %d", i, out.Pix[i], v)
		}
	}

	// Input buffer must not be mutated.
	if buf.Pix[0] != 10 {
		t.Error("Apply mutated its input")
	}
}

func TestApplyAlphaLUT(t *testing.T) {
	buf := imagecore.New(1, 1)
	copy(buf.Pix, []uint8{0, 0, 0, 100})

	identity := NewLUT(CurvePoint{0, 0}, CurvePoint{255, 255})
	invert := NewLUT(CurvePoint{0, 255}, CurvePoint{255, 0})

	out := Apply(buf, identity, identity, identity, invert)
	if out.Pix[3] != 155 {
		t.Errorf("alpha = %d, want 155", out.Pix[3])
	}
}

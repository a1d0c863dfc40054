package resample

import (
	"bytes"
	"testing"

	"github.com/halftone/imagecore"
)

func checker(w, h int) *imagecore.PixelBuffer {
	buf := imagecore.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := buf.Offset(x, y)
			v := uint8(0)
			if (x+y)%2 == 0 {
				v = 255
			}
			buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2], buf.Pix[i+3] = v, v, v, 255
		}
	}
	return buf
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    Method
		wantErr bool
	}{
		{"bilinear", MethodBilinear, false},
		{"nearest", MethodNearest, false},
		{"lanczos", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMethod(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMethod(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseMethod(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestResizeIdentityIsExact(t *testing.T) {
	src := checker(7, 5)
	out, err := Resize(src, 7, 5, MethodBilinear)
	if err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if !bytes.Equal(out.Pix, src.Pix) {
		t.Error("identity resize is not byte-identical")
	}
	// Must be a copy, not the same backing array.
	out.Pix[0] ^= 0xFF
	if src.Pix[0] == out.Pix[0] {
		t.Error("identity resize aliases the source buffer")
	}
}

func TestResizeRejectsBadTarget(t *testing.T) {
	src := checker(4, 4)
	for _, dims := range [][2]int{{0, 4}, {4, 0}, {-1, 4}} {
		if _, err := Resize(src, dims[0], dims[1], MethodBilinear); err == nil {
			t.Errorf("Resize accepted %dx%d", dims[0], dims[1])
		}
	}
}

func TestNearestUpscale(t *testing.T) {
	// 2x2 distinct pixels doubled: each source pixel becomes a 2x2 block.
	src := imagecore.New(2, 2)
	colors := [][4]uint8{
		{255, 0, 0, 255},
		{0, 255, 0, 255},
		{0, 0, 255, 255},
		{255, 255, 0, 128},
	}
	for i, c := range colors {
		copy(src.Pix[i*4:], c[:])
	}

	out, err := Nearest(src, 4, 4)
	if err != nil {
		t.Fatalf("Nearest: %v", err)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := colors[(y/2)*2+x/2]
			got := out.Pix[out.Offset(x, y) : out.Offset(x, y)+4]
			if !bytes.Equal(got, want[:]) {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestNearestDownscale(t *testing.T) {
	src := checker(4, 4)
	out, err := Nearest(src, 2, 2)
	if err != nil {
		t.Fatalf("Nearest: %v", err)
	}
	// Destination (x,y) samples source (2x, 2y), all of which are on the
	// white squares of the checkerboard.
	for i := 0; i < len(out.Pix); i += 4 {
		if out.Pix[i] != 255 {
			t.Fatalf("pixel %d = %d, want 255", i/4, out.Pix[i])
		}
	}
}

func TestBilinearInterpolatesMidpoint(t *testing.T) {
	// A 2x1 black-to-white pair stretched to 4x1. With ratio (w-1)/dstW the
	// source positions are 0, 0.25, 0.5, 0.75.
	src := imagecore.New(2, 1)
	copy(src.Pix, []uint8{0, 0, 0, 255, 255, 255, 255, 255})

	out, err := Bilinear(src, 4, 1)
	if err != nil {
		t.Fatalf("Bilinear: %v", err)
	}
	want := []uint8{0, 64, 128, 191}
	for x, w := range want {
		if got := out.Pix[out.Offset(x, 0)]; got != w {
			t.Errorf("pixel %d = %d, want %d", x, got, w)
		}
	}
}

func TestBilinearInterpolatesAlpha(t *testing.T) {
	// Alpha is interpolated like color, so a transparent-to-opaque pair
	// produces intermediate alpha (the documented fringing behavior).
	src := imagecore.New(2, 1)
	copy(src.Pix, []uint8{255, 0, 0, 0, 255, 0, 0, 255})

	out, err := Bilinear(src, 4, 1)
	if err != nil {
		t.Fatalf("Bilinear: %v", err)
	}
	if a := out.Pix[out.Offset(2, 0)+3]; a != 128 {
		t.Errorf("alpha at x=2 = %d, want 128", a)
	}
}

func TestResizeDispatch(t *testing.T) {
	src := checker(4, 4)

	nn, err := Resize(src, 8, 8, MethodNearest)
	if err != nil {
		t.Fatalf("Resize nearest: %v", err)
	}
	direct, err := Nearest(src, 8, 8)
	if err != nil {
		t.Fatalf("Nearest: %v", err)
	}
	if !bytes.Equal(nn.Pix, direct.Pix) {
		t.Error("Resize(MethodNearest) differs from Nearest")
	}

	bl, err := Resize(src, 8, 8, MethodBilinear)
	if err != nil {
		t.Fatalf("Resize bilinear: %v", err)
	}
	directBl, err := Bilinear(src, 8, 8)
	if err != nil {
		t.Fatalf("Bilinear: %v", err)
	}
	if !bytes.Equal(bl.Pix, directBl.Pix) {
		t.Error("Resize(MethodBilinear) differs from Bilinear")
	}
}

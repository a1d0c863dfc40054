// Package imagecore provides the pixel-buffer transform and codec engine
// behind the Halftone photo editor.
//
// The engine is a set of pure function libraries operating on an in-memory
// RGBA raster (PixelBuffer). Each concern lives in its own subpackage:
//
//   - colorspace: RGB/XYZ/Lab/LCH conversions and WCAG contrast
//   - curves: histograms and two-point tone-curve lookup tables
//   - filter: 3x3 convolution, median, Laplacian and repeated-pass blur
//   - resample: nearest-neighbor and bilinear resizing
//   - composite: blend-mode math and multi-layer flattening
//   - gb7: the GB7 7-bit-grayscale-plus-mask binary image format
//   - filterjob: the work-item contract for offloading filters to workers
//
// Every transform takes a PixelBuffer and returns a new one; no function in
// this module mutates its input. All functions are reentrant and may run
// concurrently on distinct buffers without locking.
//
// Basic usage:
//
//	buf := imagecore.FromImage(img)
//	blurred, err := filter.GaussianBlur(buf, 2)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = gb7.Encode(file, blurred)
package imagecore

import (
	"fmt"
	"image"
	"image/color"
)

// PixelBuffer is an in-memory RGBA raster: 8 bits per channel, interleaved
// R,G,B,A, row-major, top-to-bottom. The invariant len(Pix) == Width*Height*4
// holds for every buffer produced by this module.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// New returns a zeroed (fully transparent black) buffer of the given size.
// Width and height must be positive.
func New(width, height int) *PixelBuffer {
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
	}
}

// Validate checks the buffer invariants: positive dimensions and a pixel
// slice of exactly Width*Height*4 bytes.
func (p *PixelBuffer) Validate() error {
	if p == nil {
		return fmt.Errorf("nil pixel buffer")
	}
	if p.Width < 1 || p.Height < 1 {
		return fmt.Errorf("invalid dimensions %dx%d", p.Width, p.Height)
	}
	if want := p.Width * p.Height * 4; len(p.Pix) != want {
		return fmt.Errorf("pixel data length %d, want %d for %dx%d", len(p.Pix), want, p.Width, p.Height)
	}
	return nil
}

// Clone returns a deep copy of the buffer.
func (p *PixelBuffer) Clone() *PixelBuffer {
	out := &PixelBuffer{
		Width:  p.Width,
		Height: p.Height,
		Pix:    make([]uint8, len(p.Pix)),
	}
	copy(out.Pix, p.Pix)
	return out
}

// Offset returns the index of the R byte of pixel (x, y).
func (p *PixelBuffer) Offset(x, y int) int {
	return (y*p.Width + x) * 4
}

// FromImage converts any image.Image into a PixelBuffer. The fast path copies
// *image.RGBA pixel data directly; other image types go through the color
// model.
func FromImage(img image.Image) *PixelBuffer {
	bounds := img.Bounds()
	buf := New(bounds.Dx(), bounds.Dy())

	if rgba, ok := img.(*image.RGBA); ok {
		for y := 0; y < buf.Height; y++ {
			src := rgba.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			dst := y * buf.Width * 4
			copy(buf.Pix[dst:dst+buf.Width*4], rgba.Pix[src:src+buf.Width*4])
		}
		return buf
	}

	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			c := color.RGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.RGBA)
			i := buf.Offset(x, y)
			buf.Pix[i] = c.R
			buf.Pix[i+1] = c.G
			buf.Pix[i+2] = c.B
			buf.Pix[i+3] = c.A
		}
	}
	return buf
}

// ToRGBA converts the buffer into an *image.RGBA sharing no memory with it.
func (p *PixelBuffer) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.Width, p.Height))
	copy(img.Pix, p.Pix)
	return img
}

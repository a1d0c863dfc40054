// Package curves implements per-channel histograms and two-point tone curves
// for the imagecore engine.
//
// A tone curve is defined by two control points and compiled into a 256-entry
// lookup table (LUT): indices at or below the lower point emit its output,
// indices at or above the upper point emit its output, and the range strictly
// between is linearly interpolated. A LUT is immutable after construction and
// is consumed by reference.
package curves

import (
	"math"

	"github.com/halftone/imagecore"
)

// Histogram holds 256-bucket counts per channel. A is all zeros unless the
// histogram was computed with includeAlpha.
type Histogram struct {
	R, G, B, A [256]int
}

// CurvePoint is one control point of a two-point tone curve. Input and
// Output are clamped to [0, 255] before use.
type CurvePoint struct {
	Input  int
	Output int
}

// LUT is a 256-entry channel remap table.
type LUT [256]uint8

// Calculate computes the per-channel histogram of a buffer in one pass.
// The alpha channel is only counted when includeAlpha is set.
func Calculate(buf *imagecore.PixelBuffer, includeAlpha bool) *Histogram {
	h := &Histogram{}
	for i := 0; i < len(buf.Pix); i += 4 {
		h.R[buf.Pix[i]]++
		h.G[buf.Pix[i+1]]++
		h.B[buf.Pix[i+2]]++
		if includeAlpha {
			h.A[buf.Pix[i+3]]++
		}
	}
	return h
}

// NewLUT compiles a two-point curve into a lookup table. The points are
// ordered by input ascending first. When both points share the same input
// (a vertical line), every entry is the rounded average of the two outputs.
func NewLUT(p1, p2 CurvePoint) *LUT {
	p1 = p1.clamp()
	p2 = p2.clamp()
	if p2.Input < p1.Input {
		p1, p2 = p2, p1
	}

	var lut LUT

	if p1.Input == p2.Input {
		v := uint8(math.Round(float64(p1.Output+p2.Output) / 2))
		for i := range lut {
			lut[i] = v
		}
		return &lut
	}

	slope := float64(p2.Output-p1.Output) / float64(p2.Input-p1.Input)
	for i := range lut {
		switch {
		case i <= p1.Input:
			lut[i] = uint8(p1.Output)
		case i >= p2.Input:
			lut[i] = uint8(p2.Output)
		default:
			v := float64(p1.Output) + slope*float64(i-p1.Input)
			lut[i] = uint8(clampFloat(math.Round(v), 0, 255))
		}
	}
	return &lut
}

// Apply remaps each channel of the buffer through its table and returns a new
// buffer. Alpha is left untouched when aLUT is nil.
func Apply(buf *imagecore.PixelBuffer, rLUT, gLUT, bLUT, aLUT *LUT) *imagecore.PixelBuffer {
	out := buf.Clone()
	for i := 0; i < len(out.Pix); i += 4 {
		out.Pix[i] = rLUT[out.Pix[i]]
		out.Pix[i+1] = gLUT[out.Pix[i+1]]
		out.Pix[i+2] = bLUT[out.Pix[i+2]]
		if aLUT != nil {
			out.Pix[i+3] = aLUT[out.Pix[i+3]]
		}
	}
	return out
}

func (p CurvePoint) clamp() CurvePoint {
	return CurvePoint{
		Input:  clampInt(p.Input, 0, 255),
		Output: clampInt(p.Output, 0, 255),
	}
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

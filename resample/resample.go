// Package resample implements geometric image resizing for the imagecore
// engine: nearest-neighbor and bilinear interpolation.
//
// Bilinear interpolation treats alpha exactly like the color channels. On
// images with partial transparency this can fringe edges where color bleeds
// from fully transparent pixels; that behavior is part of the engine's
// compatibility contract and is intentionally not corrected here.
package resample

import (
	"fmt"
	"math"

	"github.com/halftone/imagecore"
)

// Method selects the resampling algorithm.
type Method int

const (
	// MethodBilinear is bilinear interpolation, the default.
	MethodBilinear Method = iota
	// MethodNearest is nearest-neighbor sampling.
	MethodNearest
)

// String returns the string representation of the method.
func (m Method) String() string {
	switch m {
	case MethodBilinear:
		return "bilinear"
	case MethodNearest:
		return "nearest"
	default:
		return "Unknown"
	}
}

// ParseMethod maps a method name to a Method. Unknown names are an error.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "bilinear":
		return MethodBilinear, nil
	case "nearest":
		return MethodNearest, nil
	default:
		return 0, fmt.Errorf("unknown resampling method %q", s)
	}
}

// Resize scales the buffer to dstW x dstH using the given method. When the
// destination size equals the source size the input is returned unchanged
// (as an exact copy), bypassing interpolation entirely.
func Resize(buf *imagecore.PixelBuffer, dstW, dstH int, method Method) (*imagecore.PixelBuffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	if dstW < 1 || dstH < 1 {
		return nil, fmt.Errorf("invalid target size %dx%d", dstW, dstH)
	}
	if dstW == buf.Width && dstH == buf.Height {
		return buf.Clone(), nil
	}

	switch method {
	case MethodNearest:
		return nearest(buf, dstW, dstH), nil
	case MethodBilinear:
		return bilinear(buf, dstW, dstH), nil
	default:
		return nil, fmt.Errorf("unknown resampling method %d", method)
	}
}

// Nearest scales the buffer with nearest-neighbor sampling.
func Nearest(buf *imagecore.PixelBuffer, dstW, dstH int) (*imagecore.PixelBuffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	if dstW < 1 || dstH < 1 {
		return nil, fmt.Errorf("invalid target size %dx%d", dstW, dstH)
	}
	return nearest(buf, dstW, dstH), nil
}

// Bilinear scales the buffer with bilinear interpolation.
func Bilinear(buf *imagecore.PixelBuffer, dstW, dstH int) (*imagecore.PixelBuffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	if dstW < 1 || dstH < 1 {
		return nil, fmt.Errorf("invalid target size %dx%d", dstW, dstH)
	}
	return bilinear(buf, dstW, dstH), nil
}

func nearest(buf *imagecore.PixelBuffer, dstW, dstH int) *imagecore.PixelBuffer {
	out := imagecore.New(dstW, dstH)
	for y := 0; y < dstH; y++ {
		sy := y * buf.Height / dstH
		if sy > buf.Height-1 {
			sy = buf.Height - 1
		}
		for x := 0; x < dstW; x++ {
			sx := x * buf.Width / dstW
			if sx > buf.Width-1 {
				sx = buf.Width - 1
			}
			si := buf.Offset(sx, sy)
			di := out.Offset(x, y)
			copy(out.Pix[di:di+4], buf.Pix[si:si+4])
		}
	}
	return out
}

func bilinear(buf *imagecore.PixelBuffer, dstW, dstH int) *imagecore.PixelBuffer {
	out := imagecore.New(dstW, dstH)

	xRatio := float64(buf.Width-1) / float64(dstW)
	yRatio := float64(buf.Height-1) / float64(dstH)

	for y := 0; y < dstH; y++ {
		fy := float64(y) * yRatio
		y0 := int(fy)
		y1 := y0 + 1
		if y1 > buf.Height-1 {
			y1 = buf.Height - 1
		}
		dy := fy - float64(y0)

		for x := 0; x < dstW; x++ {
			fx := float64(x) * xRatio
			x0 := int(fx)
			x1 := x0 + 1
			if x1 > buf.Width-1 {
				x1 = buf.Width - 1
			}
			dx := fx - float64(x0)

			i00 := buf.Offset(x0, y0)
			i10 := buf.Offset(x1, y0)
			i01 := buf.Offset(x0, y1)
			i11 := buf.Offset(x1, y1)
			di := out.Offset(x, y)

			// Alpha interpolates like any other channel.
			for c := 0; c < 4; c++ {
				v := float64(buf.Pix[i00+c])*(1-dx)*(1-dy) +
					float64(buf.Pix[i10+c])*dx*(1-dy) +
					float64(buf.Pix[i01+c])*(1-dx)*dy +
					float64(buf.Pix[i11+c])*dx*dy
				out.Pix[di+c] = uint8(math.Round(v))
			}
		}
	}
	return out
}

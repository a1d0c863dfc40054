// Package filter implements the spatial filters of the imagecore engine:
// 3x3 kernel convolution, median filtering, Laplacian edge detection and a
// repeated-pass blur.
//
// All filters operate on the R, G and B channels only; alpha is copied
// through unmodified. Borders are handled by edge-replicate padding (the
// nearest edge pixel is repeated outward), so no filter ever reads outside
// the source buffer.
//
// Invalid parameters (a non-3x3 kernel matrix, a zero divisor, a
// non-positive median size) are precondition violations reported as errors
// before any pixel work happens; no partial result is ever returned.
package filter

import (
	"fmt"
	"math"
	"sort"

	"github.com/halftone/imagecore"
)

// Kernel is a 3x3 convolution kernel. The matrix is dynamic so that kernels
// arriving over the worker boundary can be validated rather than assumed;
// Validate rejects anything that is not exactly 3x3.
type Kernel struct {
	Matrix  [][]float64
	Divisor float64
	Offset  float64
}

// NewKernel returns a kernel over the given matrix with divisor 1 and
// offset 0.
func NewKernel(matrix [][]float64) Kernel {
	return Kernel{Matrix: matrix, Divisor: 1}
}

// Validate checks the kernel preconditions: an exactly 3x3 matrix and a
// non-zero divisor.
func (k Kernel) Validate() error {
	if len(k.Matrix) != 3 {
		return fmt.Errorf("only 3x3 kernels supported, got %d rows", len(k.Matrix))
	}
	for i, row := range k.Matrix {
		if len(row) != 3 {
			return fmt.Errorf("only 3x3 kernels supported, row %d has %d columns", i, len(row))
		}
	}
	if k.Divisor == 0 {
		return fmt.Errorf("kernel divisor must be non-zero")
	}
	return nil
}

// Convolve applies a 3x3 kernel to the buffer and returns a new buffer.
// For each output pixel and each of R, G, B the weighted neighborhood sum is
// divided by the kernel divisor, the offset is added, and the result is
// rounded and clamped to [0, 255].
func Convolve(buf *imagecore.PixelBuffer, k Kernel) (*imagecore.PixelBuffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	if err := k.Validate(); err != nil {
		return nil, err
	}

	padded := pad(buf, 1)
	out := imagecore.New(buf.Width, buf.Height)

	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			di := out.Offset(x, y)
			for c := 0; c < 3; c++ {
				var sum float64
				for ky := 0; ky < 3; ky++ {
					for kx := 0; kx < 3; kx++ {
						si := padded.Offset(x+kx, y+ky)
						sum += k.Matrix[ky][kx] * float64(padded.Pix[si+c])
					}
				}
				out.Pix[di+c] = clampByte(math.Round(sum/k.Divisor + k.Offset))
			}
			out.Pix[di+3] = buf.Pix[buf.Offset(x, y)+3]
		}
	}
	return out, nil
}

// Median applies a median filter with the given (odd, >= 1) kernel size.
// Each channel takes the upper median of its size*size neighborhood.
func Median(buf *imagecore.PixelBuffer, size int) (*imagecore.PixelBuffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	if size < 1 {
		return nil, fmt.Errorf("median kernel size must be positive, got %d", size)
	}

	radius := size / 2
	padded := pad(buf, radius)
	out := imagecore.New(buf.Width, buf.Height)

	window := make([]int, 0, size*size)
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			di := out.Offset(x, y)
			for c := 0; c < 3; c++ {
				window = window[:0]
				for ky := 0; ky < size; ky++ {
					for kx := 0; kx < size; kx++ {
						si := padded.Offset(x+kx, y+ky)
						window = append(window, int(padded.Pix[si+c]))
					}
				}
				sort.Ints(window)
				out.Pix[di+c] = uint8(window[len(window)/2])
			}
			out.Pix[di+3] = buf.Pix[buf.Offset(x, y)+3]
		}
	}
	return out, nil
}

// Laplacian applies the fixed edge-detection kernel
// [0 -1 0; -1 4 -1; 0 -1 0] with divisor 1 and offset 0.
func Laplacian(buf *imagecore.PixelBuffer) (*imagecore.PixelBuffer, error) {
	return Convolve(buf, NewKernel([][]float64{
		{0, -1, 0},
		{-1, 4, -1},
		{0, -1, 0},
	}))
}

// GaussianBlur approximates a Gaussian blur of the given sigma by applying
// the fixed smoothing kernel [1 2 1; 2 4 2; 1 2 1]/16 max(1, round(sigma))
// times.
//
// This is a deliberate cheap approximation, not a true Gaussian: repeated
// small-kernel passes converge toward one but the pass count is tied to
// sigma by a simple rounding rule kept for compatibility with earlier
// releases of the editor.
func GaussianBlur(buf *imagecore.PixelBuffer, sigma float64) (*imagecore.PixelBuffer, error) {
	smooth := Kernel{
		Matrix: [][]float64{
			{1, 2, 1},
			{2, 4, 2},
			{1, 2, 1},
		},
		Divisor: 16,
	}

	passes := int(math.Round(sigma))
	if passes < 1 {
		passes = 1
	}

	out := buf
	for i := 0; i < passes; i++ {
		var err error
		out, err = Convolve(out, smooth)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// pad builds a (w+2p)x(h+2p) buffer whose center is the source and whose
// border replicates the nearest edge pixel.
func pad(buf *imagecore.PixelBuffer, p int) *imagecore.PixelBuffer {
	out := imagecore.New(buf.Width+2*p, buf.Height+2*p)
	for y := 0; y < out.Height; y++ {
		sy := clampInt(y-p, 0, buf.Height-1)
		for x := 0; x < out.Width; x++ {
			sx := clampInt(x-p, 0, buf.Width-1)
			si := buf.Offset(sx, sy)
			di := out.Offset(x, y)
			copy(out.Pix[di:di+4], buf.Pix[si:si+4])
		}
	}
	return out
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
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

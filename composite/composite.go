// Package composite implements per-pixel blend-mode math and multi-layer
// flattening for the imagecore engine.
//
// Blend combines one overlay pixel with one base pixel: the blend mode
// produces the RGB result in normalized [0,1] space, the result is
// alpha-blended over the base using effectiveOpacity = (overlayAlpha/255) *
// opacity, and the result alpha is max(baseAlpha, overlayAlpha*opacity).
//
// The alpha rule is not the Porter-Duff "over" operator. It is the exact
// behavior of the editor's original flattening path and is a fixed
// compatibility contract: flattened output of old documents must not change.
package composite

import (
	"math"

	"github.com/halftone/imagecore"
)

// BlendMode selects the per-pixel color combination function.
type BlendMode int

const (
	// BlendNormal passes the overlay color through.
	BlendNormal BlendMode = iota
	// BlendMultiply multiplies base and overlay.
	BlendMultiply
	// BlendScreen inverts, multiplies and inverts again.
	BlendScreen
	// BlendOverlay combines multiply and screen around mid-gray.
	BlendOverlay
)

// String returns the string representation of the blend mode.
func (m BlendMode) String() string {
	switch m {
	case BlendNormal:
		return "normal"
	case BlendMultiply:
		return "multiply"
	case BlendScreen:
		return "screen"
	case BlendOverlay:
		return "overlay"
	default:
		return "Unknown"
	}
}

// ParseBlendMode maps a mode name to a BlendMode. Unknown names fall back to
// BlendNormal, matching the behavior of the flattening path for layers with
// unrecognized modes.
func ParseBlendMode(s string) BlendMode {
	switch s {
	case "multiply":
		return BlendMultiply
	case "screen":
		return BlendScreen
	case "overlay":
		return BlendOverlay
	default:
		return BlendNormal
	}
}

// Pixel is one RGBA pixel value.
type Pixel struct {
	R, G, B, A uint8
}

// Layer is one compositing input. The layer's buffer is borrowed for a
// single Flatten call; its lifecycle belongs to the editing session.
type Layer struct {
	Buffer  *imagecore.PixelBuffer
	Mode    BlendMode
	Opacity int // 0-100
	Visible bool
}

// Blend combines overlay with base using the given mode and an opacity in
// [0, 1]. Unknown modes behave as BlendNormal.
func Blend(base, overlay Pixel, mode BlendMode, opacity float64) Pixel {
	br := float64(base.R) / 255
	bg := float64(base.G) / 255
	bb := float64(base.B) / 255
	or := float64(overlay.R) / 255
	og := float64(overlay.G) / 255
	ob := float64(overlay.B) / 255

	var r, g, b float64
	switch mode {
	case BlendMultiply:
		r, g, b = br*or, bg*og, bb*ob
	case BlendScreen:
		r = 1 - (1-br)*(1-or)
		g = 1 - (1-bg)*(1-og)
		b = 1 - (1-bb)*(1-ob)
	case BlendOverlay:
		r = overlayChannel(br, or)
		g = overlayChannel(bg, og)
		b = overlayChannel(bb, ob)
	default:
		r, g, b = or, og, ob
	}

	// Fold the blended color over the base by the overlay's effective
	// opacity; the alpha rule below is the legacy contract, not "over".
	effective := float64(overlay.A) / 255 * opacity
	r = br + (r-br)*effective
	g = bg + (g-bg)*effective
	b = bb + (b-bb)*effective

	a := math.Max(float64(base.A), float64(overlay.A)*opacity)

	return Pixel{
		R: clampByte(math.Round(r * 255)),
		G: clampByte(math.Round(g * 255)),
		B: clampByte(math.Round(b * 255)),
		A: clampByte(math.Round(a)),
	}
}

// Flatten composites the visible layers bottom-to-top onto a width x height
// canvas. Layers smaller than the canvas contribute nothing outside their own
// bounds; pixels covered by no visible layer stay fully transparent.
func Flatten(layers []Layer, width, height int) *imagecore.PixelBuffer {
	out := imagecore.New(width, height)

	for _, layer := range layers {
		if !layer.Visible || layer.Buffer == nil {
			continue
		}
		opacity := float64(clampInt(layer.Opacity, 0, 100)) / 100

		w := layer.Buffer.Width
		if w > width {
			w = width
		}
		h := layer.Buffer.Height
		if h > height {
			h = height
		}

		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				si := layer.Buffer.Offset(x, y)
				di := out.Offset(x, y)

				src := Pixel{
					R: layer.Buffer.Pix[si],
					G: layer.Buffer.Pix[si+1],
					B: layer.Buffer.Pix[si+2],
					A: layer.Buffer.Pix[si+3],
				}

				// The first contributing layer at a pixel seeds it directly
				// with its color, alpha scaled by the layer opacity.
				if out.Pix[di+3] == 0 {
					out.Pix[di] = src.R
					out.Pix[di+1] = src.G
					out.Pix[di+2] = src.B
					out.Pix[di+3] = clampByte(math.Round(float64(src.A) * opacity))
					continue
				}

				dst := Pixel{
					R: out.Pix[di],
					G: out.Pix[di+1],
					B: out.Pix[di+2],
					A: out.Pix[di+3],
				}
				blended := Blend(dst, src, layer.Mode, opacity)
				out.Pix[di] = blended.R
				out.Pix[di+1] = blended.G
				out.Pix[di+2] = blended.B
				out.Pix[di+3] = blended.A
			}
		}
	}
	return out
}

// overlayChannel is the piecewise overlay formula for one channel.
func overlayChannel(base, overlay float64) float64 {
	if base < 0.5 {
		return 2 * base * overlay
	}
	return 1 - 2*(1-base)*(1-overlay)
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

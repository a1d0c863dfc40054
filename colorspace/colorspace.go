// Scalar color space conversions for the imagecore engine.
//
// This package implements the pairwise conversions RGB <-> XYZ <-> Lab <-> LCH
// plus an approximate OKLch mapping, and the WCAG relative-luminance and
// contrast-ratio functions used by the editor's accessibility checks.
//
// All conversions are pure and total over their valid domain: RGB channels
// are 0-255 integers, the other spaces are unconstrained floats expected
// within their documented ranges. None of these functions return errors;
// out-of-gamut XYZ input to XYZToRGB clips to [0,255] per channel rather than
// failing, which is defined behavior and not data loss.
//
// # Reference white
//
// XYZ, Lab and LCH are pinned to the D65 reference white
// (Xn=95.047, Yn=100.000, Zn=108.883).
//
// # References
//
//   - IEC 61966-2-1 - sRGB color space
//   - CIE 15:2004 - CIE 1976 L*a*b*
//   - WCAG 2.1 - relative luminance and contrast ratio definitions
package colorspace

import "math"

// D65 reference white tristimulus values, on the 0-100 XYZ scale.
const (
	RefWhiteX = 95.047
	RefWhiteY = 100.000
	RefWhiteZ = 108.883
)

// RGB is an sRGB color with integer channels in [0, 255].
type RGB struct {
	R, G, B int
}

// XYZ is a CIE 1931 tristimulus color on the 0-100 scale (D65).
type XYZ struct {
	X, Y, Z float64
}

// Lab is a CIE 1976 L*a*b* color (D65). L is 0-100; a and b are roughly
// [-128, 127] for colors inside the sRGB gamut.
type Lab struct {
	L, A, B float64
}

// LCH is the cylindrical form of Lab: lightness, chroma and hue in degrees.
// H is normalized to [0, 360).
type LCH struct {
	L, C, H float64
}

// OKLch mirrors LCH with L in [0, 1] and chroma scaled to the OKLch
// conventional range. See RGBToOKLch for the (approximate) mapping.
type OKLch struct {
	L, C, H float64
}

// chromaScale is the fixed ratio between the LCH chroma range (~130 inside
// the sRGB gamut) and the conventional OKLch chroma range (~0.4).
const chromaScale = 130.0 / 0.4

// RGBToXYZ converts sRGB to CIE XYZ (D65) using the standard sRGB gamma
// decode and the IEC 61966-2-1 matrix.
func RGBToXYZ(c RGB) XYZ {
	r := srgbDecode(float64(c.R) / 255)
	g := srgbDecode(float64(c.G) / 255)
	b := srgbDecode(float64(c.B) / 255)

	return XYZ{
		X: (r*0.4124 + g*0.3576 + b*0.1805) * 100,
		Y: (r*0.2126 + g*0.7152 + b*0.0722) * 100,
		Z: (r*0.0193 + g*0.1192 + b*0.9505) * 100,
	}
}

// XYZToRGB converts CIE XYZ (D65) to sRGB. Each channel is rounded to the
// nearest integer and clamped to [0, 255]; out-of-gamut input clips silently.
func XYZToRGB(c XYZ) RGB {
	x := c.X / 100
	y := c.Y / 100
	z := c.Z / 100

	r := x*3.2406 + y*-1.5372 + z*-0.4986
	g := x*-0.9689 + y*1.8758 + z*0.0415
	b := x*0.0557 + y*-0.2040 + z*1.0570

	return RGB{
		R: clampInt(int(math.Round(srgbEncode(r)*255)), 0, 255),
		G: clampInt(int(math.Round(srgbEncode(g)*255)), 0, 255),
		B: clampInt(int(math.Round(srgbEncode(b)*255)), 0, 255),
	}
}

// XYZToLab converts CIE XYZ to L*a*b* using the CIE 1976 formulas with the
// 0.008856 threshold branch.
func XYZToLab(c XYZ) Lab {
	fx := labForward(c.X / RefWhiteX)
	fy := labForward(c.Y / RefWhiteY)
	fz := labForward(c.Z / RefWhiteZ)

	return Lab{
		L: 116*fy - 16,
		A: 500 * (fx - fy),
		B: 200 * (fy - fz),
	}
}

// LabToXYZ converts L*a*b* back to CIE XYZ (D65).
func LabToXYZ(c Lab) XYZ {
	fy := (c.L + 16) / 116
	fx := c.A/500 + fy
	fz := fy - c.B/200

	return XYZ{
		X: RefWhiteX * labInverse(fx),
		Y: RefWhiteY * labInverse(fy),
		Z: RefWhiteZ * labInverse(fz),
	}
}

// LabToLCH converts rectangular Lab to its cylindrical form. Hue is reported
// in degrees, normalized to [0, 360).
func LabToLCH(c Lab) LCH {
	h := math.Atan2(c.B, c.A) * 180 / math.Pi
	if h < 0 {
		h += 360
	}
	return LCH{
		L: c.L,
		C: math.Sqrt(c.A*c.A + c.B*c.B),
		H: h,
	}
}

// LCHToLab converts cylindrical LCH back to rectangular Lab.
func LCHToLab(c LCH) Lab {
	rad := c.H * math.Pi / 180
	return Lab{
		L: c.L,
		A: c.C * math.Cos(rad),
		B: c.C * math.Sin(rad),
	}
}

// RGBToOKLch converts sRGB to an approximate OKLch.
//
// This is NOT the true OKLab transform: it is a linear rescaling of CIE LCH
// (L divided by 100, chroma divided by the fixed 130/0.4 ratio) kept for
// compatibility with earlier releases of the editor, which exposed OKLch
// sliders backed by this mapping. Values produced here round-trip through
// OKLchToRGB but do not match a colorimetrically correct OKLch.
func RGBToOKLch(c RGB) OKLch {
	lch := LabToLCH(XYZToLab(RGBToXYZ(c)))
	return OKLch{
		L: lch.L / 100,
		C: lch.C / chromaScale,
		H: lch.H,
	}
}

// OKLchToRGB inverts RGBToOKLch. See that function for the compatibility
// caveat.
func OKLchToRGB(c OKLch) RGB {
	lch := LCH{
		L: c.L * 100,
		C: c.C * chromaScale,
		H: c.H,
	}
	return XYZToRGB(LabToXYZ(LCHToLab(lch)))
}

// Luminance returns the WCAG relative luminance of an sRGB color, in [0, 1].
func Luminance(c RGB) float64 {
	r := wcagLinear(float64(c.R) / 255)
	g := wcagLinear(float64(c.G) / 255)
	b := wcagLinear(float64(c.B) / 255)
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// Contrast returns the WCAG contrast ratio between two colors, in [1, 21].
func Contrast(a, b RGB) float64 {
	la := Luminance(a)
	lb := Luminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// ContrastSufficient reports whether a contrast ratio meets the WCAG AA
// threshold of 4.5:1 for normal text.
func ContrastSufficient(ratio float64) bool {
	return ratio >= 4.5
}

// srgbDecode removes the sRGB gamma curve from a normalized channel value.
func srgbDecode(v float64) float64 {
	if v > 0.04045 {
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return v / 12.92
}

// srgbEncode applies the sRGB gamma curve to a linear channel value.
func srgbEncode(v float64) float64 {
	if v > 0.0031308 {
		return 1.055*math.Pow(v, 1/2.4) - 0.055
	}
	return v * 12.92
}

// wcagLinear is the channel linearization used by the WCAG relative-luminance
// definition. WCAG 2.x specifies the 0.03928 threshold (inherited from the
// sRGB draft); the difference from 0.04045 is below quantization noise for
// 8-bit channels.
func wcagLinear(v float64) float64 {
	if v > 0.03928 {
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return v / 12.92
}

// labForward is the CIE 1976 f function.
func labForward(t float64) float64 {
	if t > 0.008856 {
		return math.Cbrt(t)
	}
	return 7.787*t + 16.0/116.0
}

// labInverse is the inverse of the f function, branching on f(0.008856).
func labInverse(t float64) float64 {
	t3 := t * t * t
	if t3 > 0.008856 {
		return t3
	}
	return (t - 16.0/116.0) / 7.787
}

// clampInt clamps v to the given range.
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/halftone/imagecore/colorspace"
)

var contrastCmd = &cobra.Command{
	Use:   "contrast [color1] [color2]",
	Short: "Compute the WCAG contrast ratio between two hex colors",
	Args:  cobra.ExactArgs(2),
	RunE:  runContrast,
}

func init() {
	rootCmd.AddCommand(contrastCmd)
}

func runContrast(cmd *cobra.Command, args []string) error {
	a, err := parseHexColor(args[0])
	if err != nil {
		return err
	}
	b, err := parseHexColor(args[1])
	if err != nil {
		return err
	}

	ratio := colorspace.Contrast(a, b)
	verdict := "fail"
	if colorspace.ContrastSufficient(ratio) {
		verdict = "pass"
	}

	fmt.Printf("Luminance %s: %.4f\n", args[0], colorspace.Luminance(a))
	fmt.Printf("Luminance %s: %.4f\n", args[1], colorspace.Luminance(b))
	fmt.Printf("Contrast:  %.2f:1 (WCAG AA %s)\n", ratio, verdict)
	return nil
}

// parseHexColor parses "#RRGGBB" or "RRGGBB".
func parseHexColor(s string) (colorspace.RGB, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return colorspace.RGB{}, fmt.Errorf("invalid color %q, want RRGGBB", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return colorspace.RGB{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return colorspace.RGB{
		R: int(v >> 16 & 0xFF),
		G: int(v >> 8 & 0xFF),
		B: int(v & 0xFF),
	}, nil
}

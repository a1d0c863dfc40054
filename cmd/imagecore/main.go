// Command imagecore is a command-line front end for the imagecore engine:
// conversion to and from the GB7 format, header inspection, spatial filters,
// resizing and tone-curve adjustments.
package main

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/halftone/imagecore"
	"github.com/halftone/imagecore/gb7"

	// Input format support for image.Decode.
	_ "image/gif"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var rootCmd = &cobra.Command{
	Use:   "imagecore",
	Short: "Pixel transforms and GB7 codec tools for the Halftone editor",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadBuffer reads any supported image file into a pixel buffer. GB7 files
// are decoded natively; everything else goes through image.Decode.
func loadBuffer(path string) (*imagecore.PixelBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".gb7") {
		buf, err := gb7.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
		return buf, nil
	}

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return imagecore.FromImage(img), nil
}

// saveBuffer writes a pixel buffer to path, picking the codec from the file
// extension: .gb7, .png, or .jpg/.jpeg.
func saveBuffer(path string, buf *imagecore.PixelBuffer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".gb7":
		err = gb7.Encode(f, buf)
	case ".png":
		err = png.Encode(f, buf.ToRGBA())
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, buf.ToRGBA(), nil)
	default:
		err = fmt.Errorf("unsupported output format %q", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/halftone/imagecore/resample"
)

var resizeCmd = &cobra.Command{
	Use:   "resize",
	Short: "Resize an image with nearest-neighbor or bilinear sampling",
	RunE:  runResize,
}

func init() {
	resizeCmd.Flags().StringP("input", "i", "", "Input image file")
	resizeCmd.Flags().StringP("output", "o", "", "Output image file")
	resizeCmd.Flags().Int("width", 0, "Target width in pixels")
	resizeCmd.Flags().Int("height", 0, "Target height in pixels")
	resizeCmd.Flags().String("method", "bilinear", "Resampling method (bilinear, nearest)")
	resizeCmd.MarkFlagRequired("input")
	resizeCmd.MarkFlagRequired("output")
	resizeCmd.MarkFlagRequired("width")
	resizeCmd.MarkFlagRequired("height")
	rootCmd.AddCommand(resizeCmd)
}

func runResize(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")
	methodStr, _ := cmd.Flags().GetString("method")

	method, err := resample.ParseMethod(methodStr)
	if err != nil {
		return err
	}

	buf, err := loadBuffer(inputPath)
	if err != nil {
		return err
	}

	out, err := resample.Resize(buf, width, height, method)
	if err != nil {
		return fmt.Errorf("resizing: %w", err)
	}

	if err := saveBuffer(outputPath, out); err != nil {
		return err
	}
	fmt.Printf("Resized %s %dx%d → %s %dx%d (%s)\n",
		inputPath, buf.Width, buf.Height, outputPath, out.Width, out.Height, method)
	return nil
}

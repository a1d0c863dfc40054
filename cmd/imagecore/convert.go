package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert between GB7 and standard image formats",
	Long: `Convert reads PNG, JPEG, GIF, BMP, TIFF, WebP or GB7 input and writes
GB7, PNG or JPEG output based on the output file extension. Converting to
GB7 is lossy: color collapses to 7-bit luma and alpha to a 1-bit mask.`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringP("input", "i", "", "Input image file")
	convertCmd.Flags().StringP("output", "o", "", "Output image file (.gb7, .png, .jpg)")
	convertCmd.MarkFlagRequired("input")
	convertCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")

	buf, err := loadBuffer(inputPath)
	if err != nil {
		return err
	}
	if err := saveBuffer(outputPath, buf); err != nil {
		return err
	}

	fmt.Printf("Converted %s → %s (%dx%d)\n", inputPath, outputPath, buf.Width, buf.Height)
	return nil
}

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/halftone/imagecore/filter"
	"github.com/halftone/imagecore/filterjob"
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Apply a spatial filter (gaussian, median, laplacian, sharpen)",
	RunE:  runFilter,
}

func init() {
	filterCmd.Flags().StringP("input", "i", "", "Input image file")
	filterCmd.Flags().StringP("output", "o", "", "Output image file")
	filterCmd.Flags().String("op", "gaussian", "Filter operation (gaussian, median, laplacian, sharpen)")
	filterCmd.Flags().Float64("sigma", 1, "Blur strength for gaussian")
	filterCmd.Flags().Int("size", 3, "Kernel size for median (odd)")
	filterCmd.MarkFlagRequired("input")
	filterCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(filterCmd)
}

func runFilter(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	op, _ := cmd.Flags().GetString("op")
	sigma, _ := cmd.Flags().GetFloat64("sigma")
	size, _ := cmd.Flags().GetInt("size")

	buf, err := loadBuffer(inputPath)
	if err != nil {
		return err
	}

	req := &filterjob.Request{Buffer: buf}
	switch op {
	case "gaussian":
		req.Op = filterjob.OpGaussian
		req.Sigma = sigma
	case "median":
		req.Op = filterjob.OpMedian
		req.KernelSize = size
	case "laplacian":
		req.Op = filterjob.OpLaplacian
	case "sharpen":
		req.Op = filterjob.OpKernel
		req.Kernel = filter.NewKernel([][]float64{
			{0, -1, 0},
			{-1, 5, -1},
			{0, -1, 0},
		})
	default:
		return fmt.Errorf("unknown filter operation %q", op)
	}

	out, err := filterjob.Execute(context.Background(), filterjob.SyncRunner{}, req)
	if err != nil {
		return fmt.Errorf("filtering: %w", err)
	}

	if err := saveBuffer(outputPath, out); err != nil {
		return err
	}
	fmt.Printf("Applied %s to %s → %s\n", op, inputPath, outputPath)
	return nil
}

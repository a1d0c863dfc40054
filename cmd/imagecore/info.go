package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/halftone/imagecore/gb7"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Inspect a GB7 file header",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	m, err := gb7.DecodeMetadata(f)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	fmt.Printf("File:       %s\n", path)
	fmt.Printf("Dimensions: %d x %d\n", m.Width, m.Height)
	fmt.Printf("Version:    %d\n", m.Version)
	fmt.Printf("Mask:       %t\n", m.HasMask)
	fmt.Printf("File size:  %d bytes\n", gb7.HeaderSize+m.Width*m.Height)
	return nil
}

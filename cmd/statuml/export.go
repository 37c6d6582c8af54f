package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/statuml/statuml/internal/exporter"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the deployable zip bundle",
	Long: `Validates the project and writes a zip bundle with one diagram per topic,
the aggregate diagram and the snapshot itself. Projects with error-level
issues are refused; run 'statuml validate' to see them.`,
	Run: func(cmd *cobra.Command, args []string) {
		eng, err := loadEngine(cmd)
		if err != nil {
			fmt.Printf("Error loading project: %v\n", err)
			os.Exit(1)
		}

		out, _ := cmd.Flags().GetString("out")
		f, err := os.Create(out)
		if err != nil {
			fmt.Printf("Error creating %s: %v\n", out, err)
			os.Exit(1)
		}
		defer f.Close()

		if err := eng.WriteBundle(f); err != nil {
			// Remove the partial file so a refused export leaves nothing behind.
			f.Close()
			os.Remove(out)

			if errors.Is(err, exporter.ErrValidationFailed) {
				fmt.Printf("Export refused: %v\nRun 'statuml validate' for details.\n", err)
			} else {
				fmt.Printf("Export failed: %v\n", err)
			}
			os.Exit(1)
		}

		fmt.Printf("Bundle written to %s\n", out)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("out", "o", "bundle.zip", "Output path for the zip bundle")
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/statuml/statuml/internal/presentation/report"
	"github.com/statuml/statuml/internal/presentation/tui"
	"github.com/statuml/statuml/internal/validator"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the project for consistency",
	Long: `Runs every structural and vocabulary check over the project and prints a
report. Exits non-zero when error-level issues are found.`,
	Run: func(cmd *cobra.Command, args []string) {
		eng, err := loadEngine(cmd)
		if err != nil {
			fmt.Printf("Error loading project: %v\n", err)
			os.Exit(1)
		}

		issues := eng.Validate()
		markdown := report.Markdown(issues)

		render := tui.NewRenderer()
		out, err := render(markdown)
		if err != nil {
			out = markdown
		}
		fmt.Print(out)

		if validator.HasErrors(issues) {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

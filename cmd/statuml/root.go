package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/statuml/statuml"
	"github.com/statuml/statuml/internal/presentation/tui"
	"github.com/statuml/statuml/internal/validator"
)

var rootCmd = &cobra.Command{
	Use:   "statuml",
	Short: "statuml compiles instrument state machines to PlantUML",
	Long: `statuml loads instrument state machine snapshots, validates them and
renders PlantUML state diagrams, per topic or aggregated across the whole
instrument.`,
	Run: func(cmd *cobra.Command, args []string) {
		tui.PrintBanner()
		_ = cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("project", "project.json", "Path to the project snapshot")
	rootCmd.PersistentFlags().String("fields", "", "Path to the field vocabulary YAML (optional)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}

// projectID derives the store id for a snapshot path from its file name.
func projectID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func logLevel(cmd *cobra.Command) slog.Level {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// loadEngine builds an Engine from the persistent flags.
func loadEngine(cmd *cobra.Command) (*statuml.Engine, error) {
	path, _ := cmd.Flags().GetString("project")

	opts := []statuml.Option{}
	if fieldsPath, _ := cmd.Flags().GetString("fields"); fieldsPath != "" {
		cfg, err := validator.LoadFieldConfig(fieldsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load field vocabulary: %w", err)
		}
		opts = append(opts, statuml.WithFieldConfig(cfg))
	}

	return statuml.New(path, opts...)
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/statuml/statuml"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of statuml",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("statuml version %s\n", strings.TrimSpace(statuml.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

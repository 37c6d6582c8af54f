package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// pumlCmd represents the puml command
var pumlCmd = &cobra.Command{
	Use:   "puml [topicID]",
	Short: "Render the PlantUML diagram",
	Long: `Renders the PlantUML state diagram for the given topic, or the aggregate
diagram covering every topic when no topic is given.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		eng, err := loadEngine(cmd)
		if err != nil {
			fmt.Printf("Error loading project: %v\n", err)
			os.Exit(1)
		}

		var text string
		if len(args) > 0 {
			text, err = eng.TopicPuml(args[0])
		} else {
			text, err = eng.CompletePuml()
		}
		if err != nil {
			fmt.Printf("Error rendering diagram: %v\n", err)
			os.Exit(1)
		}

		fmt.Print(text)
	},
}

func init() {
	rootCmd.AddCommand(pumlCmd)
}

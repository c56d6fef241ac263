package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/velin-dev/uisketch/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "uisketch",
	Short: "Draw regions, describe them, get interface trees",
	Long: `uisketch is a terminal canvas: drag out rectangles with the mouse,
describe what belongs inside each one, and a generation model fills the
region with a renderable interface tree you can move, resize, edit, or
refine.`,
	Run: func(cmd *cobra.Command, args []string) {
		application, err := app.NewApplication()
		if err != nil {
			log.Fatalf("Failed to create application: %v", err)
		}
		defer application.Stop()

		if err := application.Start(); err != nil {
			log.Fatalf("Application error: %v", err)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution error: %v", err)
		os.Exit(1)
	}
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(profileCmd)
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "coursectl",
	Short: "A CLI, TUI and web UI for planning a course schedule",
	Long: `coursectl downloads the term's class schedule and your major's
requirement lists, lets you pick sections and shows the resulting
week with clashing classes side by side.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

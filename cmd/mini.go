// Package cmd implements the command-line interface for epwatch.
package cmd

import (
	"github.com/epwatch-cli/epwatch/mini"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(miniCmd)

	miniCmd.Flags().BoolP("continue", "c", false, "Start playing the current episode immediately")
}

// miniCmd launches the application in a lightweight, minimalist terminal interface.
var miniCmd = &cobra.Command{
	Use:   "mini",
	Short: "Launch the application in a lightweight, minimalist terminal interface",
	Long:  `Initialize a streamlined, prompt-based terminal UI for episode playback.`,
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()

		options := mini.Options{
			Resume: lo.Must(cmd.Flags().GetBool("continue")),
		}
		err := mini.Run(&options)

		if err != nil && err.Error() != "interrupt" {
			handleErr(err)
		}
	},
}

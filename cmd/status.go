// Package cmd implements the command-line interface for epwatch.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/epwatch-cli/epwatch/filesystem"
	"github.com/epwatch-cli/epwatch/inline"
	"github.com/epwatch-cli/epwatch/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	statusCmd.Flags().Bool("schema", false, "Print the JSON Schema of the status document and exit")
	statusCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")
}

// statusCmd executes the application in non-interactive, scriptable inline mode.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the watch state in a scriptable, non-interactive form",
	Long: `Print the current episode, the episode files found on disk and the stored
resume positions without launching a player. Intended for scripts and shell
prompts; inspecting the state never mutates it.`,
	Run: func(cmd *cobra.Command, args []string) {
		output := lo.Must(cmd.Flags().GetString("output"))
		var writer io.Writer
		if output != "" {
			file, err := filesystem.API().Create(output)
			handleErr(err)
			defer util.Ignore(file.Close)
			writer = file
		} else {
			writer = os.Stdout
		}

		if lo.Must(cmd.Flags().GetBool("schema")) {
			raw, err := inline.SchemaJson()
			handleErr(err)
			_, err = fmt.Fprintln(writer, string(raw))
			handleErr(err)
			return
		}

		status, err := inline.BuildStatus()
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			raw, err := inline.AsJson(status)
			handleErr(err)
			_, err = fmt.Fprintln(writer, string(raw))
			handleErr(err)
			return
		}

		_, err = fmt.Fprintf(writer, "Episode %d of %s\n", status.Current, util.Quantify(len(status.Episodes), "file", "files"))
		handleErr(err)

		for _, ep := range status.Episodes {
			marker := "  "
			if ep.Number == status.Current {
				marker = "> "
			}

			if pos, ok := status.Positions[ep.Path]; ok {
				_, err = fmt.Fprintf(writer, "%s%s (at %s)\n", marker, ep.String(), util.FormatSeconds(pos))
			} else {
				_, err = fmt.Fprintf(writer, "%s%s\n", marker, ep.String())
			}
			handleErr(err)
		}
	},
}

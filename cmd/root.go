// Package cmd implements the command-line interface for epwatch.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/epwatch-cli/epwatch/color"
	"github.com/epwatch-cli/epwatch/constant"
	"github.com/epwatch-cli/epwatch/icon"
	"github.com/epwatch-cli/epwatch/key"
	"github.com/epwatch-cli/epwatch/log"
	"github.com/epwatch-cli/epwatch/style"
	"github.com/epwatch-cli/epwatch/tui"
	"github.com/epwatch-cli/epwatch/util"
	"github.com/epwatch-cli/epwatch/version"
	"github.com/epwatch-cli/epwatch/where"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, plain)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("dir", "d", "", "Directory holding the numbered episode files")
	lo.Must0(viper.BindPFlag(key.LibraryDir, rootCmd.PersistentFlags().Lookup("dir")))

	rootCmd.Flags().BoolP("continue", "c", false, "Start playing the current episode immediately")

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	// Initialize cleanup of localized temporary files on application startup.
	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd defines the entry point for the epwatch application.
var rootCmd = &cobra.Command{
	Use:   constant.Epwatch,
	Short: "A minimalist command-line episode tracker and mpv front-end",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - A minimalist command-line episode tracker and mpv front-end"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		CheckDependencies()

		options := tui.Options{
			Resume: lo.Must(cmd.Flags().GetBool("continue")),
		}
		handleErr(tui.Run(&options))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}

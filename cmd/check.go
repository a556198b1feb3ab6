// Package cmd implements the command-line interface for epwatch.
package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/epwatch-cli/epwatch/icon"
	"github.com/epwatch-cli/epwatch/key"
	"github.com/epwatch-cli/epwatch/style"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"
)

// CheckDependencies verifies the availability of required system dependencies.
// Playback needs the configured player binary; duration probing needs ffprobe.
func CheckDependencies() {
	for _, dep := range []string{viper.GetString(key.Player), viper.GetString(key.ProbeBinary)} {
		if _, err := exec.LookPath(dep); err != nil {
			printMissingDependencyError(dep)
			os.Exit(1)
		}
	}
}

func printMissingDependencyError(dep string) {
	var installCmd string
	switch runtime.GOOS {
	case "darwin":
		installCmd = "brew install " + dep
	case "linux":
		installCmd = "sudo apt install " + dep
	case "windows":
		installCmd = "scoop install " + dep
	}

	// ffprobe ships with ffmpeg, there is no standalone package.
	if dep == "ffprobe" && installCmd != "" {
		installCmd = installCmd[:len(installCmd)-len(dep)] + "ffmpeg"
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.HiRed).Render(fmt.Sprintf("%s Error: Missing Dependency", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("The required dependency '%s' was not found in your PATH.", dep))

	suggestion := ""
	if installCmd != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(installCmd))
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}

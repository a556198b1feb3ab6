package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/epwatch-cli/epwatch/color"
	"github.com/epwatch-cli/epwatch/icon"
	"github.com/epwatch-cli/epwatch/key"
	"github.com/epwatch-cli/epwatch/style"
	"github.com/epwatch-cli/epwatch/util"
	"github.com/muesli/reflow/wrap"
	"github.com/spf13/viper"
)

func (b *statefulBubble) View() string {
	var view string

	switch b.state {
	case browseState:
		view = b.viewBrowse()
	case playingState:
		view = b.viewPlaying()
	case promptState:
		view = b.viewPrompt()
	case errorState:
		view = b.viewError()
	}

	help := b.helpC.ShortHelpView(b.keymap.help())
	return lipgloss.JoinVertical(lipgloss.Left, view, "", help)
}

func (b *statefulBubble) viewBrowse() string {
	var sb strings.Builder

	sb.WriteString(style.Title("epwatch"))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("%s Current episode: %s\n",
		icon.Get(icon.Episode),
		style.Bold(fmt.Sprintf("%d", b.engine.Current())),
	))

	episodes := b.engine.Episodes()
	if len(episodes) == 0 {
		sb.WriteString(style.Faint("\nNo episode files found\n"))
	} else {
		sb.WriteString(style.Faint(fmt.Sprintf("%s in the library\n\n", util.Quantify(len(episodes), "episode", "episodes"))))

		showPositions := viper.GetBool(key.TUIShowPositions)
		for _, ep := range episodes {
			marker := "  "
			line := ep.String()
			if ep.Number == b.engine.Current() {
				marker = style.Fg(color.Green)("> ")
				line = style.Bold(line)
			}

			if pos := b.engine.PositionFor(ep); showPositions && pos > 0 {
				line += style.Faint(fmt.Sprintf("  (resumes at %s)", util.FormatSeconds(pos)))
			}

			sb.WriteString(marker + line + "\n")
		}
	}

	if b.message != "" {
		sb.WriteString("\n" + style.Fg(color.Yellow)(util.Capitalize(b.message)) + "\n")
	}

	return sb.String()
}

func (b *statefulBubble) viewPlaying() string {
	var sb strings.Builder

	sb.WriteString(style.Title("epwatch"))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("%s %s Playing episode %d\n\n",
		b.spinnerC.View(),
		icon.Get(icon.Play),
		b.engine.Current(),
	))

	if pos, ok := b.position.Get(); ok {
		stamp := util.FormatSeconds(pos)
		if duration, ok := b.duration.Get(); ok {
			stamp += " / " + util.FormatSeconds(duration)
			sb.WriteString(b.progressC.View() + "\n")
		}
		sb.WriteString(style.Faint(stamp) + "\n")
	} else {
		sb.WriteString(style.Faint("Waiting for the player...") + "\n")
	}

	return sb.String()
}

func (b *statefulBubble) viewPrompt() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		style.Title("epwatch"),
		"",
		fmt.Sprintf("%s Episode %d finished.", icon.Get(icon.Success), b.engine.Current()),
		style.Bold("Proceed to the next episode?"),
	)
}

func (b *statefulBubble) viewError() string {
	width := b.width
	if width <= 0 {
		width = 80
	}

	msg := ""
	if b.lastError != nil {
		msg = b.lastError.Error()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		style.ErrorTitle("Error"),
		"",
		wrap.String(style.Fg(color.Red)(util.Capitalize(msg)), width),
	)
}

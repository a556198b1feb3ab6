package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/epwatch-cli/epwatch/color"
	"github.com/epwatch-cli/epwatch/style"
)

// statefulKeymap defines the keyboard interactions available within various application states.
type statefulKeymap struct {
	state state

	quit, forceQuit,
	play,
	next,
	deletePrevious,
	reload,
	stop,
	confirm,
	decline,
	back key.Binding
}

// setState updates the active keymap configuration to match the specified application state.
func (k *statefulKeymap) setState(newState state) {
	k.state = newState
}

func newStatefulKeymap() *statefulKeymap {
	return &statefulKeymap{
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		play: key.NewBinding(
			key.WithKeys("enter", "p"),
			key.WithHelp(style.Fg(color.Orange)("enter"), style.Fg(color.Orange)("play")),
		),
		next: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next episode"),
		),
		deletePrevious: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete previous"),
		),
		reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan library"),
		),
		stop: key.NewBinding(
			key.WithKeys("s", "esc"),
			key.WithHelp("s", "stop playback"),
		),
		confirm: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y", "yes"),
		),
		decline: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "no"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}
}

// help returns the short and full help bindings for the active state.
func (k *statefulKeymap) help() []key.Binding {
	switch k.state {
	case browseState:
		return []key.Binding{k.play, k.next, k.deletePrevious, k.reload, k.quit}
	case playingState:
		return []key.Binding{k.stop, k.quit}
	case promptState:
		return []key.Binding{k.confirm, k.decline}
	case errorState:
		return []key.Binding{k.back, k.quit}
	default:
		return []key.Binding{k.quit}
	}
}

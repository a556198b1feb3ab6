// Package tui provides the primary terminal user interface implementation.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/epwatch-cli/epwatch/watch"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// Resume immediately launches the current episode on startup.
	Resume bool
}

// Run initializes and executes the primary Bubble Tea application loop.
func Run(options *Options) error {
	engine, err := watch.New(nil)
	if err != nil {
		return err
	}
	defer engine.Shutdown()

	bubble := newBubble(engine, options)
	_, err = tea.NewProgram(bubble, tea.WithAltScreen()).Run()
	return err
}

package tui

import (
	"fmt"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/epwatch-cli/epwatch/log"
	"github.com/epwatch-cli/epwatch/watch"
	"github.com/samber/mo"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.helpC.Width = msg.Width
		b.progressC.Width = min(msg.Width-4, 60)
		return b, nil

	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			b.engine.Shutdown()
			return b, tea.Quit
		}
		return b.handleKey(msg)

	case tickMsg:
		return b.handleTick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, cmd

	case progress.FrameMsg:
		model, cmd := b.progressC.Update(msg)
		b.progressC = model.(progress.Model)
		return b, cmd
	}

	return b, nil
}

func (b *statefulBubble) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keymap := b.keymap

	switch b.state {
	case browseState:
		switch {
		case bubblesKey.Matches(msg, keymap.quit):
			b.engine.Shutdown()
			return b, tea.Quit
		case bubblesKey.Matches(msg, keymap.play):
			return b, b.startPlayback()
		case bubblesKey.Matches(msg, keymap.next):
			if err := b.engine.Advance(); err != nil {
				b.message = err.Error()
				return b, nil
			}
			return b, b.startPlayback()
		case bubblesKey.Matches(msg, keymap.deletePrevious):
			ep, err := b.engine.DeletePrevious()
			if err != nil {
				b.message = err.Error()
				return b, nil
			}
			b.message = fmt.Sprintf("Deleted %s", ep)
			return b, nil
		case bubblesKey.Matches(msg, keymap.reload):
			if err := b.engine.Reload(); err != nil {
				b.raiseError(err)
				return b, nil
			}
			b.message = "Library rescanned"
			return b, nil
		}

	case playingState:
		switch {
		case bubblesKey.Matches(msg, keymap.quit):
			b.engine.Shutdown()
			return b, tea.Quit
		case bubblesKey.Matches(msg, keymap.stop):
			// Flushes the last sampled position before stopping.
			b.engine.Shutdown()
			b.message = "Playback stopped, position saved"
			b.setState(browseState)
			return b, nil
		}

	case promptState:
		switch {
		case bubblesKey.Matches(msg, keymap.confirm):
			if err := b.engine.Advance(); err != nil {
				b.message = err.Error()
				b.setState(browseState)
				return b, nil
			}
			return b, b.startPlayback()
		case bubblesKey.Matches(msg, keymap.decline):
			b.setState(browseState)
			return b, nil
		}

	case errorState:
		switch {
		case bubblesKey.Matches(msg, keymap.quit):
			b.engine.Shutdown()
			return b, tea.Quit
		case bubblesKey.Matches(msg, keymap.back):
			b.lastError = nil
			b.setState(browseState)
			return b, nil
		}
	}

	return b, nil
}

// handleTick polls the playback session and applies the lifecycle transition.
func (b *statefulBubble) handleTick() (tea.Model, tea.Cmd) {
	if b.state != playingState {
		return b, nil
	}

	event, err := b.engine.Tick()
	if err != nil {
		// Persistence hiccups must not kill an active session; log and keep polling.
		log.Errorf("tick: %v", err)
	}

	switch event {
	case watch.EventPlaying:
		var cmd tea.Cmd
		if pos, ok := b.engine.LastSampled().Get(); ok {
			b.position = mo.Some(pos)
			if duration, ok := b.duration.Get(); ok && duration > 0 {
				cmd = b.progressC.SetPercent(pos / duration)
			}
		}
		return b, tea.Batch(cmd, awaitTick())

	case watch.EventFinished:
		b.setState(promptState)
		return b, nil

	case watch.EventStopped:
		b.message = fmt.Sprintf("Stopped episode %d, position saved", b.engine.Current())
		b.setState(browseState)
		return b, nil

	default:
		b.setState(browseState)
		return b, nil
	}
}

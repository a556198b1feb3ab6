// Package mini implements a lightweight, minimalist interface for episode playback and tracking.
package mini

import (
	"fmt"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/epwatch-cli/epwatch/icon"
	"github.com/epwatch-cli/epwatch/key"
	"github.com/epwatch-cli/epwatch/util"
	"github.com/epwatch-cli/epwatch/watch"
	"github.com/spf13/viper"
)

type state int

const (
	menuState state = iota + 1
	playState
	watchingState
	advancePromptState
	deleteState
	quitState
)

// Menu action labels.
const (
	actionPlay           = "Play current episode"
	actionNext           = "Next episode"
	actionDeletePrevious = "Delete previous episode"
	actionQuit           = "Quit"
)

func (m *mini) handleMenuState() error {
	fmt.Printf("%s Current episode: %d (%s available)\n",
		icon.Get(icon.Episode),
		m.engine.Current(),
		util.Quantify(len(m.engine.Episodes()), "episode", "episodes"),
	)

	var action string
	prompt := &survey.Select{
		Message: "What next?",
		Options: []string{actionPlay, actionNext, actionDeletePrevious, actionQuit},
	}
	if err := survey.AskOne(prompt, &action); err != nil {
		return err
	}

	switch action {
	case actionPlay:
		m.newState(playState)
	case actionNext:
		if err := m.engine.Advance(); err != nil {
			fail(err.Error())
			return nil
		}
		m.newState(playState)
	case actionDeletePrevious:
		m.newState(deleteState)
	case actionQuit:
		m.newState(quitState)
	}

	return nil
}

func (m *mini) handlePlayState() error {
	if err := m.engine.Play(); err != nil {
		fail(err.Error())
		m.setState(menuState)
		return nil
	}

	m.newState(watchingState)
	return nil
}

// handleWatchingState polls the engine until the player exits, surfacing the
// live position on a single erasable line.
func (m *mini) handleWatchingState() error {
	interval := time.Duration(viper.GetInt(key.PlayerPollInterval)) * time.Second
	if interval <= 0 {
		interval = time.Second
	}

	erase := func() {}
	for {
		time.Sleep(interval)

		event, err := m.engine.Tick()
		if err != nil {
			return err
		}

		switch event {
		case watch.EventPlaying:
			erase()
			if pos, ok := m.engine.LastSampled().Get(); ok {
				erase = util.PrintErasable(fmt.Sprintf("%s Episode %d at %s",
					icon.Get(icon.Play), m.engine.Current(), util.FormatSeconds(pos)))
			}
		case watch.EventFinished:
			erase()
			m.setState(advancePromptState)
			return nil
		default:
			erase()
			fmt.Printf("%s Stopped episode %d, position saved\n", icon.Get(icon.Pause), m.engine.Current())
			m.setState(menuState)
			return nil
		}
	}
}

func (m *mini) handleAdvancePromptState() error {
	confirmed := false
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("Episode %d finished. Proceed to the next one?", m.engine.Current()),
		Default: true,
	}
	if err := survey.AskOne(prompt, &confirmed); err != nil {
		return err
	}

	if !confirmed {
		m.setState(menuState)
		return nil
	}

	if err := m.engine.Advance(); err != nil {
		fail(err.Error())
		m.setState(menuState)
		return nil
	}

	m.setState(playState)
	return nil
}

func (m *mini) handleDeleteState() error {
	confirmed := false
	prompt := &survey.Confirm{
		Message: "Delete the previous episode file?",
		Default: false,
	}
	if err := survey.AskOne(prompt, &confirmed); err != nil {
		return err
	}

	if confirmed {
		ep, err := m.engine.DeletePrevious()
		if err != nil {
			fail(err.Error())
		} else {
			fmt.Printf("%s Deleted %s\n", icon.Get(icon.Trash), ep)
		}
	}

	m.previousState()
	return nil
}

func fail(msg string) {
	fmt.Printf("%s %s\n", icon.Get(icon.Fail), util.Capitalize(msg))
}

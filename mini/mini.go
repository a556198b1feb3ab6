// Package mini implements a lightweight, minimalist interface for episode playback and tracking.
package mini

import (
	"os"

	"github.com/epwatch-cli/epwatch/util"
	"github.com/epwatch-cli/epwatch/watch"
)

type Options struct {
	// Resume immediately launches the current episode instead of showing the menu first.
	Resume bool
}

type mini struct {
	state         state
	statesHistory util.Stack[state]

	engine *watch.Engine
}

func newMini(engine *watch.Engine) *mini {
	return &mini{
		statesHistory: util.Stack[state]{},
		engine:        engine,
	}
}

func (m *mini) previousState() {
	if m.statesHistory.Len() > 0 {
		m.setState(m.statesHistory.Pop())
	}
}

func (m *mini) setState(s state) {
	m.state = s
}

func (m *mini) newState(s state) {
	if m.state == s {
		return
	}

	m.statesHistory.Push(m.state)
	m.setState(s)
}

func Run(options *Options) error {
	engine, err := watch.New(nil)
	if err != nil {
		return err
	}
	defer engine.Shutdown()

	m := newMini(engine)
	m.state = menuState
	if options.Resume {
		m.state = playState
	}

	for {
		if err := m.handleState(); err != nil {
			return err
		}
	}
}

func (m *mini) handleState() error {
	switch m.state {
	case menuState:
		return m.handleMenuState()
	case playState:
		return m.handlePlayState()
	case watchingState:
		return m.handleWatchingState()
	case advancePromptState:
		return m.handleAdvancePromptState()
	case deleteState:
		return m.handleDeleteState()
	case quitState:
		m.engine.Shutdown()
		os.Exit(0)
	}

	return nil
}

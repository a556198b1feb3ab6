package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/epwatch-cli/epwatch/key"
	"github.com/epwatch-cli/epwatch/style"
	"github.com/epwatch-cli/epwatch/watch"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// statefulBubble encapsulates the application state, component models, and workflow tracking.
type statefulBubble struct {
	state  state
	keymap *statefulKeymap

	engine *watch.Engine

	// components
	spinnerC  spinner.Model
	progressC progress.Model
	helpC     help.Model

	// live playback estimates, refreshed on every poll tick
	position mo.Option[float64]
	duration mo.Option[float64]

	message   string
	lastError error

	width, height int

	options *Options
}

// tickMsg fires once per poll interval while a session is active.
type tickMsg time.Time

func newBubble(engine *watch.Engine, options *Options) *statefulBubble {
	keymap := newStatefulKeymap()

	bubble := &statefulBubble{
		state:     browseState,
		keymap:    keymap,
		engine:    engine,
		spinnerC:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		progressC: progress.New(progress.WithDefaultGradient()),
		helpC:     help.New(),
		position:  mo.None[float64](),
		duration:  mo.None[float64](),
		options:   options,
	}

	bubble.spinnerC.Style = style.New().Foreground(style.AccentColor)
	keymap.setState(browseState)

	return bubble
}

// raiseError dispatches a terminal error and transitions the application to the failure view.
func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.setState(errorState)
}

// setState performs a synchronous transition of both the application workflow and its associated keymap.
func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// pollInterval resolves the configured sampling cadence, guarding against
// nonsense values that would spin the loop.
func pollInterval() time.Duration {
	interval := time.Duration(viper.GetInt(key.PlayerPollInterval)) * time.Second
	if interval <= 0 {
		interval = time.Second
	}
	return interval
}

// awaitTick schedules the next poll of the playback session.
func awaitTick() tea.Cmd {
	return tea.Tick(pollInterval(), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// startPlayback launches the current episode and transitions to the playing view.
func (b *statefulBubble) startPlayback() tea.Cmd {
	if err := b.engine.Play(); err != nil {
		b.raiseError(err)
		return nil
	}

	b.position = mo.None[float64]()
	b.duration = b.engine.ProbeDuration()
	b.message = ""
	b.setState(playingState)

	return tea.Batch(b.spinnerC.Tick, awaitTick())
}

func (b *statefulBubble) Init() tea.Cmd {
	if b.options != nil && b.options.Resume {
		return b.startPlayback()
	}
	return nil
}

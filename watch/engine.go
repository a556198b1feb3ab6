// Package watch implements the episode lifecycle engine: it owns the current
// episode, drives the external player, and applies end-of-episode logic when
// the player exits.
package watch

import (
	"fmt"

	"github.com/epwatch-cli/epwatch/key"
	"github.com/epwatch-cli/epwatch/ledger"
	"github.com/epwatch-cli/epwatch/library"
	"github.com/epwatch-cli/epwatch/log"
	"github.com/epwatch-cli/epwatch/player"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// Event describes what a poll tick observed.
type Event int

const (
	// EventIdle - no active session.
	EventIdle Event = iota

	// EventPlaying - the session is alive; the position estimate was refreshed.
	EventPlaying

	// EventFinished - the player exited within the end threshold of the
	// episode's duration. The stored position was cleared; the shell should
	// ask whether to advance.
	EventFinished

	// EventStopped - the player exited mid-episode (or the duration is
	// unknown). The last sampled position was preserved for resuming.
	EventStopped
)

// Launcher starts a playback session for path at startOffset seconds.
type Launcher func(path string, startOffset float64) (player.Session, error)

// Options configures the engine's external collaborators. Zero values wire
// the real mpv launcher and ffprobe prober.
type Options struct {
	Launch Launcher
	Probe  player.Prober
}

// Engine owns the watch state. It is not safe for concurrent use: ticks and
// intents must come from the single shell loop that owns it, which keeps all
// ledger writes strictly ordered.
type Engine struct {
	episodes  []library.Episode
	current   int
	positions ledger.Positions

	session player.Session
	lastPos mo.Option[float64]

	launch Launcher
	probe  player.Prober
}

// New loads the persisted watch state, scans the library, and clamps the
// current episode against what is actually on disk. A corrupt progress file
// is fatal here rather than silently reset.
func New(opts *Options) (*Engine, error) {
	if opts == nil {
		opts = &Options{}
	}

	e := &Engine{
		launch: opts.Launch,
		probe:  opts.Probe,
	}

	if e.launch == nil {
		e.launch = func(path string, startOffset float64) (player.Session, error) {
			return player.Launch(path, startOffset)
		}
	}
	if e.probe == nil {
		e.probe = player.Probe
	}

	current, err := ledger.LoadCurrent()
	if err != nil {
		return nil, err
	}

	e.current = current
	e.positions = ledger.LoadPositions()

	if err := e.Reload(); err != nil {
		return nil, err
	}

	return e, nil
}

// Reload rescans the library and clamps the current episode, persisting the
// clamped value when earlier episodes were deleted out from under it.
func (e *Engine) Reload() error {
	e.episodes = library.List(viper.GetString(key.LibraryDir), viper.GetString(key.LibraryExtension))

	clamped := library.ClampCurrent(e.current, e.episodes)
	if clamped != e.current {
		log.Infof("current episode %d no longer exists, advancing to %d", e.current, clamped)
		e.current = clamped
		return ledger.SaveCurrent(e.current)
	}

	return nil
}

// Current returns the episode number the user is on.
func (e *Engine) Current() int {
	return e.current
}

// Episodes returns the episodes available on disk, ascending.
func (e *Engine) Episodes() []library.Episode {
	return e.episodes
}

// Playing reports whether a playback session is active.
func (e *Engine) Playing() bool {
	return e.session != nil
}

// PositionFor returns the stored resume offset for an episode, zero when none.
func (e *Engine) PositionFor(ep library.Episode) float64 {
	return e.positions[ep.Path]
}

// LastSampled returns the most recent live position estimate.
func (e *Engine) LastSampled() mo.Option[float64] {
	return e.lastPos
}

// ProbeDuration returns the probed container duration of the current
// episode's file, none when the file is missing or the probe fails.
func (e *Engine) ProbeDuration() mo.Option[float64] {
	ep, ok := library.Find(e.current, e.episodes).Get()
	if !ok {
		return mo.None[float64]()
	}
	return e.probe(ep.Path)
}

// Play launches the current episode, resuming from its stored position.
// Any prior session is stopped first: no two sessions are ever alive at once.
func (e *Engine) Play() error {
	if len(e.episodes) == 0 {
		return fmt.Errorf("no episode files found")
	}

	ep, ok := library.Find(e.current, e.episodes).Get()
	if !ok {
		return fmt.Errorf("episode %d not found", e.current)
	}

	if e.session != nil {
		e.session.Stop()
		e.session = nil
	}

	session, err := e.launch(ep.Path, e.positions[ep.Path])
	if err != nil {
		return err
	}

	e.session = session
	e.lastPos = mo.None[float64]()
	return nil
}

// Tick samples the active session once. While the player is alive, the
// current position is written through to the ledger on every tick; ticks are
// human-scale, so durability wins over I/O efficiency. When the player has
// exited, end-of-episode logic decides between finished and stopped.
func (e *Engine) Tick() (Event, error) {
	if e.session == nil {
		return EventIdle, nil
	}

	if e.session.IsAlive() {
		if pos, ok := e.session.Position().Get(); ok {
			e.lastPos = mo.Some(pos)
			e.positions[e.session.Path()] = pos
			if err := ledger.SavePositions(e.positions); err != nil {
				return EventPlaying, err
			}
		}
		return EventPlaying, nil
	}

	return e.finish()
}

// finish applies the end-of-episode heuristic after the player exits.
// A probe failure counts as "not at the end": preserving a position is the
// safer default over wrongly clearing it.
func (e *Engine) finish() (Event, error) {
	path := e.session.Path()
	e.session = nil

	completed := false
	if duration, ok := e.probe(path).Get(); ok {
		if pos, ok := e.lastPos.Get(); ok {
			completed = pos >= duration-viper.GetFloat64(key.PlayerEndThreshold)
		}
	}

	if completed {
		// Next playback starts from zero.
		delete(e.positions, path)
		return EventFinished, ledger.SavePositions(e.positions)
	}

	if pos, ok := e.lastPos.Get(); ok {
		e.positions[path] = pos
		return EventStopped, ledger.SavePositions(e.positions)
	}

	return EventStopped, nil
}

// Advance moves to the next available episode and persists the new current.
func (e *Engine) Advance() error {
	next, ok := library.NextAfter(e.current, e.episodes).Get()
	if !ok {
		return fmt.Errorf("you've reached the last episode")
	}

	e.current = next
	return ledger.SaveCurrent(e.current)
}

// DeletePrevious removes the closest episode before the current one.
func (e *Engine) DeletePrevious() (library.Episode, error) {
	prev, ok := library.PrevBefore(e.current, e.episodes).Get()
	if !ok {
		return library.Episode{}, fmt.Errorf("no previous episode to delete")
	}

	ep := library.Find(prev, e.episodes).MustGet()
	if err := library.Remove(ep); err != nil {
		return library.Episode{}, err
	}

	delete(e.positions, ep.Path)
	if err := ledger.SavePositions(e.positions); err != nil {
		return ep, err
	}

	return ep, e.Reload()
}

// Shutdown flushes the last sampled position and stops any live session.
// Errors are logged, never returned: this runs on exit paths.
func (e *Engine) Shutdown() {
	if e.session == nil {
		return
	}

	if pos, ok := e.lastPos.Get(); ok {
		e.positions[e.session.Path()] = pos
		if err := ledger.SavePositions(e.positions); err != nil {
			log.Errorf("flush positions on shutdown: %v", err)
		}
	}

	e.session.Stop()
	e.session = nil
}

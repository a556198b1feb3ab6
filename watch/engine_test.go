package watch

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/epwatch-cli/epwatch/filesystem"
	"github.com/epwatch-cli/epwatch/key"
	"github.com/epwatch-cli/epwatch/ledger"
	"github.com/epwatch-cli/epwatch/player"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

type fakeSession struct {
	path    string
	alive   bool
	pos     mo.Option[float64]
	stopped bool
}

func (s *fakeSession) Path() string                 { return s.path }
func (s *fakeSession) IsAlive() bool                { return s.alive }
func (s *fakeSession) Position() mo.Option[float64] { return s.pos }
func (s *fakeSession) Stop()                        { s.stopped = true; s.alive = false }

type launchRecord struct {
	path   string
	offset float64
}

// fakeLauncher hands out pre-seeded sessions and records every launch.
type fakeLauncher struct {
	launches []launchRecord
	sessions []*fakeSession
}

func (l *fakeLauncher) launch(path string, startOffset float64) (player.Session, error) {
	l.launches = append(l.launches, launchRecord{path: path, offset: startOffset})
	session := &fakeSession{path: path, alive: true, pos: mo.None[float64]()}
	l.sessions = append(l.sessions, session)
	return session, nil
}

func knownDuration(seconds float64) player.Prober {
	return func(string) mo.Option[float64] { return mo.Some(seconds) }
}

func unknownDuration(string) mo.Option[float64] {
	return mo.None[float64]()
}

func setupLibrary(t *testing.T, numbers ...int) {
	t.Helper()
	filesystem.SetMemMapFs()

	viper.Set(key.LibraryDir, "videos")
	viper.Set(key.LibraryExtension, ".mkv")
	viper.Set(key.LedgerDir, ".")
	viper.Set(key.PlayerEndThreshold, 30)

	for _, n := range numbers {
		f, err := filesystem.API().Create(filepath.Join("videos", strconv.Itoa(n)+".mkv"))
		if err != nil {
			t.Fatal(err)
		}
		_ = f.Close()
	}
}

func TestClampOnLoad(t *testing.T) {
	Convey("Given a stale persisted current below the smallest episode", t, func() {
		setupLibrary(t, 3, 4)
		So(ledger.SaveCurrent(1), ShouldBeNil)

		engine, err := New(&Options{Probe: unknownDuration})
		So(err, ShouldBeNil)

		Convey("The current is clamped to the smallest remaining episode", func() {
			So(engine.Current(), ShouldEqual, 3)
		})

		Convey("The clamped value is persisted", func() {
			current, err := ledger.LoadCurrent()
			So(err, ShouldBeNil)
			So(current, ShouldEqual, 3)
		})
	})

	Convey("Given a corrupt progress file", t, func() {
		setupLibrary(t, 1)
		So(filesystem.API().WriteFile(".progress", []byte("garbage"), 0644), ShouldBeNil)

		_, err := New(&Options{Probe: unknownDuration})
		So(err, ShouldNotBeNil)
	})
}

func TestPlay(t *testing.T) {
	Convey("Play", t, func() {
		Convey("Fails with an empty library", func() {
			setupLibrary(t)
			engine, err := New(&Options{Probe: unknownDuration})
			So(err, ShouldBeNil)
			So(engine.Play(), ShouldNotBeNil)
		})

		Convey("Fails when the current episode has no file", func() {
			setupLibrary(t, 1, 3)
			So(ledger.SaveCurrent(2), ShouldBeNil)

			engine, err := New(&Options{Probe: unknownDuration})
			So(err, ShouldBeNil)
			So(engine.Play().Error(), ShouldContainSubstring, "episode 2 not found")
		})

		Convey("Resumes from the stored position", func() {
			setupLibrary(t, 4)
			So(ledger.SaveCurrent(4), ShouldBeNil)
			So(ledger.SavePositions(ledger.Positions{filepath.Join("videos", "4.mkv"): 300}), ShouldBeNil)

			launcher := &fakeLauncher{}
			engine, err := New(&Options{Launch: launcher.launch, Probe: unknownDuration})
			So(err, ShouldBeNil)

			So(engine.Play(), ShouldBeNil)
			So(launcher.launches, ShouldHaveLength, 1)
			So(launcher.launches[0].offset, ShouldEqual, 300)
		})

		Convey("Stops the old session before starting a new one", func() {
			setupLibrary(t, 4)
			So(ledger.SaveCurrent(4), ShouldBeNil)

			launcher := &fakeLauncher{}
			engine, err := New(&Options{Launch: launcher.launch, Probe: unknownDuration})
			So(err, ShouldBeNil)

			So(engine.Play(), ShouldBeNil)
			So(engine.Play(), ShouldBeNil)

			So(launcher.sessions, ShouldHaveLength, 2)
			So(launcher.sessions[0].stopped, ShouldBeTrue)
			So(launcher.sessions[1].alive, ShouldBeTrue)
		})
	})
}

func TestTick(t *testing.T) {
	path4 := filepath.Join("videos", "4.mkv")

	Convey("Given episode 4 is playing", t, func() {
		setupLibrary(t, 4, 5)
		So(ledger.SaveCurrent(4), ShouldBeNil)

		launcher := &fakeLauncher{}

		Convey("Ticks while alive write the sampled position through", func() {
			engine, err := New(&Options{Launch: launcher.launch, Probe: knownDuration(1200)})
			So(err, ShouldBeNil)
			So(engine.Play(), ShouldBeNil)

			launcher.sessions[0].pos = mo.Some(300.0)

			event, err := engine.Tick()
			So(err, ShouldBeNil)
			So(event, ShouldEqual, EventPlaying)
			So(ledger.LoadPositions()[path4], ShouldEqual, 300.0)
		})

		Convey("Exit within the end threshold counts as finished", func() {
			engine, err := New(&Options{Launch: launcher.launch, Probe: knownDuration(1200)})
			So(err, ShouldBeNil)
			So(engine.Play(), ShouldBeNil)

			launcher.sessions[0].pos = mo.Some(1185.0)
			_, _ = engine.Tick()

			launcher.sessions[0].alive = false
			event, err := engine.Tick()
			So(err, ShouldBeNil)
			So(event, ShouldEqual, EventFinished)

			Convey("The stored position is removed so the next watch starts at zero", func() {
				_, exists := ledger.LoadPositions()[path4]
				So(exists, ShouldBeFalse)
			})

			Convey("Confirming the advance moves to the next episode and plays it from zero", func() {
				So(engine.Advance(), ShouldBeNil)
				So(engine.Current(), ShouldEqual, 5)

				So(engine.Play(), ShouldBeNil)
				last := launcher.launches[len(launcher.launches)-1]
				So(last.path, ShouldEqual, filepath.Join("videos", "5.mkv"))
				So(last.offset, ShouldEqual, 0)
			})
		})

		Convey("Exit mid-episode preserves the position and does not advance", func() {
			engine, err := New(&Options{Launch: launcher.launch, Probe: knownDuration(1200)})
			So(err, ShouldBeNil)
			So(engine.Play(), ShouldBeNil)

			launcher.sessions[0].pos = mo.Some(300.0)
			_, _ = engine.Tick()

			launcher.sessions[0].alive = false
			event, err := engine.Tick()
			So(err, ShouldBeNil)
			So(event, ShouldEqual, EventStopped)
			So(ledger.LoadPositions()[path4], ShouldEqual, 300.0)
			So(engine.Current(), ShouldEqual, 4)
		})

		Convey("A failed probe is treated as not-at-the-end", func() {
			engine, err := New(&Options{Launch: launcher.launch, Probe: unknownDuration})
			So(err, ShouldBeNil)
			So(engine.Play(), ShouldBeNil)

			launcher.sessions[0].pos = mo.Some(1185.0)
			_, _ = engine.Tick()

			launcher.sessions[0].alive = false
			event, err := engine.Tick()
			So(err, ShouldBeNil)
			So(event, ShouldEqual, EventStopped)
			So(ledger.LoadPositions()[path4], ShouldEqual, 1185.0)
		})

		Convey("Ticks with no session report idle", func() {
			engine, err := New(&Options{Launch: launcher.launch, Probe: unknownDuration})
			So(err, ShouldBeNil)

			event, err := engine.Tick()
			So(err, ShouldBeNil)
			So(event, ShouldEqual, EventIdle)
		})
	})
}

func TestAdvance(t *testing.T) {
	Convey("Advance", t, func() {
		Convey("Skips over deleted episodes", func() {
			setupLibrary(t, 1, 3, 5, 8)
			So(ledger.SaveCurrent(5), ShouldBeNil)

			engine, err := New(&Options{Probe: unknownDuration})
			So(err, ShouldBeNil)

			So(engine.Advance(), ShouldBeNil)
			So(engine.Current(), ShouldEqual, 8)
		})

		Convey("Refuses to advance past the last episode", func() {
			setupLibrary(t, 1, 3)
			So(ledger.SaveCurrent(3), ShouldBeNil)

			engine, err := New(&Options{Probe: unknownDuration})
			So(err, ShouldBeNil)
			So(engine.Advance(), ShouldNotBeNil)
			So(engine.Current(), ShouldEqual, 3)
		})
	})
}

func TestDeletePrevious(t *testing.T) {
	Convey("DeletePrevious", t, func() {
		Convey("Removes the closest predecessor and rescans", func() {
			setupLibrary(t, 1, 3, 5)
			So(ledger.SaveCurrent(5), ShouldBeNil)

			engine, err := New(&Options{Probe: unknownDuration})
			So(err, ShouldBeNil)

			ep, err := engine.DeletePrevious()
			So(err, ShouldBeNil)
			So(ep.Number, ShouldEqual, 3)
			So(engine.Episodes(), ShouldHaveLength, 2)
		})

		Convey("Is a no-op when no predecessor exists", func() {
			setupLibrary(t, 1, 3)
			So(ledger.SaveCurrent(1), ShouldBeNil)

			engine, err := New(&Options{Probe: unknownDuration})
			So(err, ShouldBeNil)

			_, err = engine.DeletePrevious()
			So(err, ShouldNotBeNil)
			So(engine.Episodes(), ShouldHaveLength, 2)
		})
	})
}

func TestShutdown(t *testing.T) {
	Convey("Shutdown flushes the last sampled position and stops the player", t, func() {
		setupLibrary(t, 4)
		So(ledger.SaveCurrent(4), ShouldBeNil)

		launcher := &fakeLauncher{}
		engine, err := New(&Options{Launch: launcher.launch, Probe: unknownDuration})
		So(err, ShouldBeNil)
		So(engine.Play(), ShouldBeNil)

		launcher.sessions[0].pos = mo.Some(512.0)
		_, _ = engine.Tick()

		engine.Shutdown()
		So(launcher.sessions[0].stopped, ShouldBeTrue)
		So(ledger.LoadPositions()[filepath.Join("videos", "4.mkv")], ShouldEqual, 512.0)
	})
}

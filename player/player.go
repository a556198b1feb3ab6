// Package player controls the external playback engine: it launches mpv with
// a JSON-IPC control socket, samples its playback position, and terminates it.
package player

import "github.com/samber/mo"

// Session is a handle to a live external playback process.
// At most one session exists per application instance.
type Session interface {
	// Path returns the media file the session was launched with.
	Path() string

	// IsAlive reports whether the external process is still running, without blocking.
	IsAlive() bool

	// Position samples the current playback position in seconds over the
	// control socket. Any transport or parse failure yields none: position
	// sampling is best-effort telemetry, not a critical path.
	Position() mo.Option[float64]

	// Stop requests graceful termination and escalates to a forced kill
	// after a bounded grace period. It never fails: it runs on shutdown
	// paths where an error must not block exit.
	Stop()
}

// Prober extracts the container duration of a media file in seconds.
type Prober func(path string) mo.Option[float64]

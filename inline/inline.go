// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"github.com/epwatch-cli/epwatch/key"
	"github.com/epwatch-cli/epwatch/ledger"
	"github.com/epwatch-cli/epwatch/library"
	"github.com/spf13/viper"
)

// Status is the machine-readable snapshot of the watch state.
type Status struct {
	// Current is the episode number the user is on.
	Current int `json:"current"`
	// Episodes are the episode files available on disk, ascending.
	Episodes []library.Episode `json:"episodes"`
	// Positions maps episode file paths to stored resume offsets in seconds.
	Positions ledger.Positions `json:"positions"`
}

// BuildStatus assembles a Status from the library and the ledger.
// The current value is clamped the same way the interactive shells do it, but
// not persisted: status inspection must not mutate state.
func BuildStatus() (*Status, error) {
	current, err := ledger.LoadCurrent()
	if err != nil {
		return nil, err
	}

	episodes := library.List(viper.GetString(key.LibraryDir), viper.GetString(key.LibraryExtension))

	return &Status{
		Current:   library.ClampCurrent(current, episodes),
		Episodes:  episodes,
		Positions: ledger.LoadPositions(),
	}, nil
}

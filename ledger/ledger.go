// Package ledger persists the user's watch progress: the current episode
// number and the per-file playback positions, each in its own file under the
// ledger directory.
package ledger

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/epwatch-cli/epwatch/filesystem"
	"github.com/epwatch-cli/epwatch/log"
	"github.com/epwatch-cli/epwatch/where"
)

// Positions maps an episode file path to its last known playback offset in seconds.
type Positions map[string]float64

// LoadCurrent reads the persisted current-episode number.
// An absent file means a fresh start and defaults to episode 1. A file that
// exists but does not parse is an error: silently resetting progress could
// mask data loss, so the caller surfaces it instead.
func LoadCurrent() (int, error) {
	fs := filesystem.API()

	exists, err := fs.Exists(where.Progress())
	if err != nil || !exists {
		return 1, nil
	}

	raw, err := fs.ReadFile(where.Progress())
	if err != nil {
		return 0, fmt.Errorf("read progress: %w", err)
	}

	current, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil {
		return 0, fmt.Errorf("corrupt progress file %s: %w", where.Progress(), err)
	}

	return current, nil
}

// SaveCurrent overwrites the persisted current-episode number.
func SaveCurrent(n int) error {
	return filesystem.API().WriteFile(where.Progress(), []byte(strconv.Itoa(n)), 0644)
}

// LoadPositions reads the persisted playback-position map.
// Positions are best-effort telemetry: absence or corruption degrades to an
// empty map rather than an error, asymmetric with LoadCurrent.
func LoadPositions() Positions {
	fs := filesystem.API()

	raw, err := fs.ReadFile(where.Positions())
	if err != nil {
		return make(Positions)
	}

	var positions Positions
	if err := json.Unmarshal(raw, &positions); err != nil {
		log.Warnf("discarding corrupt positions file %s: %v", where.Positions(), err)
		return make(Positions)
	}

	if positions == nil {
		return make(Positions)
	}

	return positions
}

// SavePositions overwrites the persisted playback-position map wholesale.
func SavePositions(positions Positions) error {
	raw, err := json.Marshal(positions)
	if err != nil {
		return fmt.Errorf("marshal positions: %w", err)
	}

	return filesystem.API().WriteFile(where.Positions(), raw, 0644)
}

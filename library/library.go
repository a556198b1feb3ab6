// Package library implements the episode store: it enumerates numbered video
// files in a directory and answers ordering queries over them.
package library

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/epwatch-cli/epwatch/filesystem"
	"github.com/epwatch-cli/epwatch/util"
	"github.com/samber/mo"
	"golang.org/x/exp/slices"
)

// List scans dir for files whose extension matches ext and whose base name
// parses as a positive integer, returning them sorted ascending by number.
// A missing or empty directory yields an empty list, not an error: a fresh
// or fully cleared library is a valid state.
func List(dir, ext string) []Episode {
	entries, err := filesystem.API().ReadDir(dir)
	if err != nil {
		return nil
	}

	var episodes []Episode
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasSuffix(strings.ToLower(name), strings.ToLower(ext)) {
			continue
		}

		number, err := strconv.Atoi(util.FileStem(name))
		if err != nil || number <= 0 {
			continue
		}

		episodes = append(episodes, Episode{
			Number: number,
			Path:   filepath.Join(dir, name),
		})
	}

	slices.SortFunc(episodes, func(a, b Episode) int {
		return a.Number - b.Number
	})

	return episodes
}

// ClampCurrent advances a stale current-episode number up to the smallest
// available episode when everything below it was deleted out from under a
// persisted value. Any other current is returned untouched, even if no file
// matches it; callers surface that as "episode not found".
func ClampCurrent(current int, episodes []Episode) int {
	if len(episodes) > 0 && episodes[0].Number > current {
		return episodes[0].Number
	}
	return current
}

// Find returns the episode with the given number, if present.
func Find(n int, episodes []Episode) mo.Option[Episode] {
	for _, e := range episodes {
		if e.Number == n {
			return mo.Some(e)
		}
	}
	return mo.None[Episode]()
}

// NextAfter returns the smallest episode number strictly greater than n.
func NextAfter(n int, episodes []Episode) mo.Option[int] {
	for _, e := range episodes {
		if e.Number > n {
			return mo.Some(e.Number)
		}
	}
	return mo.None[int]()
}

// PrevBefore returns the largest episode number strictly less than n.
func PrevBefore(n int, episodes []Episode) mo.Option[int] {
	result := mo.None[int]()
	for _, e := range episodes {
		if e.Number >= n {
			break
		}
		result = mo.Some(e.Number)
	}
	return result
}

// Remove deletes the episode's backing file.
func Remove(e Episode) error {
	return util.Delete(e.Path)
}

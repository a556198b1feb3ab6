package player

import (
	"os/exec"
	"strconv"
	"strings"

	"github.com/epwatch-cli/epwatch/filesystem"
	"github.com/epwatch-cli/epwatch/key"
	"github.com/epwatch-cli/epwatch/log"
	"github.com/epwatch-cli/epwatch/where"
	"github.com/metafates/gache"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// durationCacher is a disk-backed registry of probed durations. Container
// duration is stable per file, so rewatching an episode never re-spawns the
// probe utility.
var durationCacher = gache.New[map[string]float64](
	&gache.Options{
		Path:       where.Durations(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Probe extracts the container duration of path in seconds via the external
// probing utility. Failures degrade to none, logged only: the caller must
// treat an unknown duration the same as "not yet at the end".
func Probe(path string) mo.Option[float64] {
	cached, expired, err := durationCacher.Get()
	if err == nil && !expired && cached != nil {
		if duration, ok := cached[path]; ok {
			return mo.Some(duration)
		}
	}

	out, err := exec.Command(
		viper.GetString(key.ProbeBinary),
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	).Output()
	if err != nil {
		log.Warnf("probe duration of %s: %v", path, err)
		return mo.None[float64]()
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		log.Warnf("parse probed duration %q: %v", strings.TrimSpace(string(out)), err)
		return mo.None[float64]()
	}

	if cached == nil {
		cached = make(map[string]float64)
	}
	cached[path] = duration
	_ = durationCacher.Set(cached)

	return mo.Some(duration)
}

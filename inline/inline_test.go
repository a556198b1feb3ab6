package inline

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/epwatch-cli/epwatch/filesystem"
	"github.com/epwatch-cli/epwatch/key"
	"github.com/epwatch-cli/epwatch/ledger"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestBuildStatus(t *testing.T) {
	Convey("Given a library and a persisted ledger", t, func() {
		filesystem.SetMemMapFs()
		viper.Set(key.LibraryDir, "videos")
		viper.Set(key.LibraryExtension, ".mkv")
		viper.Set(key.LedgerDir, ".")

		for _, name := range []string{"3.mkv", "5.mkv"} {
			f, err := filesystem.API().Create(filepath.Join("videos", name))
			So(err, ShouldBeNil)
			_ = f.Close()
		}

		So(ledger.SaveCurrent(1), ShouldBeNil)
		So(ledger.SavePositions(ledger.Positions{filepath.Join("videos", "3.mkv"): 120.5}), ShouldBeNil)

		status, err := BuildStatus()
		So(err, ShouldBeNil)

		Convey("The current is clamped but not persisted", func() {
			So(status.Current, ShouldEqual, 3)

			persisted, err := ledger.LoadCurrent()
			So(err, ShouldBeNil)
			So(persisted, ShouldEqual, 1)
		})

		Convey("The JSON document round-trips", func() {
			raw, err := AsJson(status)
			So(err, ShouldBeNil)

			var decoded Status
			So(json.Unmarshal(raw, &decoded), ShouldBeNil)
			So(decoded.Current, ShouldEqual, 3)
			So(decoded.Episodes, ShouldHaveLength, 2)
			So(decoded.Positions[filepath.Join("videos", "3.mkv")], ShouldEqual, 120.5)
		})

		Convey("The schema names the document's properties", func() {
			raw, err := SchemaJson()
			So(err, ShouldBeNil)
			So(string(raw), ShouldContainSubstring, "current")
			So(string(raw), ShouldContainSubstring, "episodes")
			So(string(raw), ShouldContainSubstring, "positions")
		})
	})
}

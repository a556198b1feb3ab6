package ledger

import (
	"testing"

	"github.com/epwatch-cli/epwatch/filesystem"
	"github.com/epwatch-cli/epwatch/where"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestCurrent(t *testing.T) {
	Convey("Current episode persistence", t, func() {
		filesystem.SetMemMapFs()

		Convey("Defaults to 1 when no state exists", func() {
			current, err := LoadCurrent()
			So(err, ShouldBeNil)
			So(current, ShouldEqual, 1)
		})

		Convey("Round-trips through save and load", func() {
			So(SaveCurrent(42), ShouldBeNil)

			current, err := LoadCurrent()
			So(err, ShouldBeNil)
			So(current, ShouldEqual, 42)
		})

		Convey("Tolerates surrounding whitespace", func() {
			So(filesystem.API().WriteFile(where.Progress(), []byte("7\n"), 0644), ShouldBeNil)

			current, err := LoadCurrent()
			So(err, ShouldBeNil)
			So(current, ShouldEqual, 7)
		})

		Convey("Fails loudly on a corrupt value", func() {
			So(filesystem.API().WriteFile(where.Progress(), []byte("not a number"), 0644), ShouldBeNil)

			_, err := LoadCurrent()
			So(err, ShouldNotBeNil)
		})
	})
}

func TestPositions(t *testing.T) {
	Convey("Position map persistence", t, func() {
		filesystem.SetMemMapFs()

		Convey("Defaults to an empty map when no state exists", func() {
			positions := LoadPositions()
			So(positions, ShouldNotBeNil)
			So(positions, ShouldBeEmpty)
		})

		Convey("Round-trips through save and load", func() {
			saved := Positions{
				"videos/4.mkv":  300.5,
				"videos/12.mkv": 12.25,
			}
			So(SavePositions(saved), ShouldBeNil)
			So(LoadPositions(), ShouldResemble, saved)
		})

		Convey("Degrades to an empty map on corrupt data", func() {
			So(filesystem.API().WriteFile(where.Positions(), []byte("{broken"), 0644), ShouldBeNil)

			positions := LoadPositions()
			So(positions, ShouldNotBeNil)
			So(positions, ShouldBeEmpty)
		})
	})
}

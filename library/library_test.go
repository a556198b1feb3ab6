package library

import (
	"path/filepath"
	"testing"

	"github.com/epwatch-cli/epwatch/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func touch(t *testing.T, path string) {
	t.Helper()
	f, err := filesystem.API().Create(path)
	if err != nil {
		t.Fatal(err)
	}
	_ = f.Close()
}

func numbers(episodes []Episode) []int {
	ns := make([]int, len(episodes))
	for i, e := range episodes {
		ns[i] = e.Number
	}
	return ns
}

func TestList(t *testing.T) {
	Convey("Given a directory with numbered and stray files", t, func() {
		filesystem.SetMemMapFs()
		dir := "videos"

		for _, name := range []string{"8.mkv", "1.mkv", "3.mkv", "5.mkv", "notes.txt", "opening.mkv", "0.mkv", "2.mp4"} {
			touch(t, filepath.Join(dir, name))
		}

		Convey("List returns numeric episodes sorted ascending", func() {
			episodes := List(dir, ".mkv")
			So(numbers(episodes), ShouldResemble, []int{1, 3, 5, 8})
		})

		Convey("Paths point at the backing files", func() {
			episodes := List(dir, ".mkv")
			So(episodes[0].Path, ShouldEqual, filepath.Join(dir, "1.mkv"))
		})
	})

	Convey("Given a missing directory", t, func() {
		So(List("no/such/dir", ".mkv"), ShouldBeEmpty)
	})
}

func TestClampCurrent(t *testing.T) {
	episodes := []Episode{{Number: 3}, {Number: 4}}

	Convey("ClampCurrent", t, func() {
		Convey("Advances a stale current to the smallest available episode", func() {
			So(ClampCurrent(1, episodes), ShouldEqual, 3)
		})

		Convey("Leaves a matching current untouched", func() {
			So(ClampCurrent(3, episodes), ShouldEqual, 3)
		})

		Convey("Leaves a current beyond the last episode untouched", func() {
			So(ClampCurrent(9, episodes), ShouldEqual, 9)
		})

		Convey("Leaves current untouched for an empty library", func() {
			So(ClampCurrent(7, nil), ShouldEqual, 7)
		})
	})
}

func TestNeighbors(t *testing.T) {
	episodes := []Episode{{Number: 1}, {Number: 3}, {Number: 5}, {Number: 8}}

	Convey("NextAfter", t, func() {
		Convey("Skips over gaps", func() {
			So(NextAfter(5, episodes).MustGet(), ShouldEqual, 8)
		})

		Convey("Returns none past the last episode", func() {
			So(NextAfter(8, episodes).IsAbsent(), ShouldBeTrue)
		})
	})

	Convey("PrevBefore", t, func() {
		Convey("Skips over gaps", func() {
			So(PrevBefore(5, episodes).MustGet(), ShouldEqual, 3)
		})

		Convey("Returns none before the first episode", func() {
			So(PrevBefore(1, episodes).IsAbsent(), ShouldBeTrue)
		})
	})

	Convey("Find", t, func() {
		So(Find(3, episodes).MustGet().Number, ShouldEqual, 3)
		So(Find(4, episodes).IsAbsent(), ShouldBeTrue)
	})
}

func TestRemove(t *testing.T) {
	Convey("Remove deletes the backing file", t, func() {
		filesystem.SetMemMapFs()
		touch(t, "videos/2.mkv")

		episodes := List("videos", ".mkv")
		So(episodes, ShouldHaveLength, 1)

		So(Remove(episodes[0]), ShouldBeNil)
		So(List("videos", ".mkv"), ShouldBeEmpty)
	})
}

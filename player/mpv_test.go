package player

import (
	"encoding/json"
	"net"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/epwatch-cli/epwatch/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestBuildArgs(t *testing.T) {
	Convey("buildArgs", t, func() {
		viper.Set(key.PlayerHwdec, "auto")
		viper.Set(key.PlayerProfile, "gpu-hq")

		args := buildArgs("videos/12.mkv", "/tmp/epwatch-test.sock", 300.5)

		Convey("Requests hardware decoding and the GPU profile", func() {
			So(args, ShouldContain, "--hwdec=auto")
			So(args, ShouldContain, "--profile=gpu-hq")
		})

		Convey("Forces window creation", func() {
			So(args, ShouldContain, "--force-window=yes")
		})

		Convey("Passes the start offset and control socket", func() {
			So(args, ShouldContain, "--start=300.5")
			So(args, ShouldContain, "--input-ipc-server=/tmp/epwatch-test.sock")
		})

		Convey("Ends with the media path", func() {
			So(args[len(args)-1], ShouldEqual, "videos/12.mkv")
		})
	})
}

// fakeIPCServer accepts a single connection on socketPath and answers every
// command with the given response line.
func fakeIPCServer(t *testing.T, socketPath, response string) net.Listener {
	t.Helper()

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		t.Fatal(err)
	}

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}

			go func(conn net.Conn) {
				defer conn.Close()

				buf := make([]byte, readBufSize)
				if _, err := conn.Read(buf); err != nil {
					return
				}
				_, _ = conn.Write([]byte(response + "\n"))
			}(conn)
		}
	}()

	return listener
}

func TestPosition(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix domain sockets")
	}

	Convey("Position", t, func() {
		Convey("Returns the sampled time-pos", func() {
			socketPath := filepath.Join(t.TempDir(), "mpv.sock")
			listener := fakeIPCServer(t, socketPath, `{"data":123.25,"error":"success"}`)
			defer listener.Close()

			m := &MPV{socketPath: socketPath, exited: make(chan struct{})}
			pos := m.Position()
			So(pos.IsPresent(), ShouldBeTrue)
			So(pos.MustGet(), ShouldEqual, 123.25)
		})

		Convey("Degrades to none on an mpv error", func() {
			socketPath := filepath.Join(t.TempDir(), "mpv.sock")
			listener := fakeIPCServer(t, socketPath, `{"error":"property unavailable"}`)
			defer listener.Close()

			m := &MPV{socketPath: socketPath, exited: make(chan struct{})}
			So(m.Position().IsAbsent(), ShouldBeTrue)
		})

		Convey("Degrades to none when the socket is gone", func() {
			m := &MPV{socketPath: filepath.Join(t.TempDir(), "missing.sock"), exited: make(chan struct{})}
			So(m.Position().IsAbsent(), ShouldBeTrue)
		})
	})
}

func TestIPCRoundTrip(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix domain sockets")
	}

	Convey("doSendCommand", t, func() {
		socketPath := filepath.Join(t.TempDir(), "mpv.sock")
		listener := fakeIPCServer(t, socketPath, `{"data":true,"error":"success"}`)
		defer listener.Close()

		data, err := doSendCommand(socketPath, []interface{}{"get_property", "pause"})
		So(err, ShouldBeNil)
		So(data, ShouldEqual, true)
	})

	Convey("Command payload is newline-delimited JSON", t, func() {
		payload, err := json.Marshal(ipcCommand{Command: []interface{}{"get_property", "time-pos"}})
		So(err, ShouldBeNil)
		So(string(payload), ShouldEqual, `{"command":["get_property","time-pos"]}`)
	})
}

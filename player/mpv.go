package player

import (
	"crypto/rand"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/epwatch-cli/epwatch/key"
	"github.com/epwatch-cli/epwatch/log"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
	stopGracePeriod   = 3 * time.Second
)

// MPV implements Session using mpv's JSON-IPC protocol.
type MPV struct {
	path       string
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{} // closed when the process exits
	mu         sync.Mutex    // protects socket writes
}

// Launch starts the configured player on path at startOffset seconds, with
// hardware decoding, the GPU rendering profile, a forced window, and an IPC
// control socket enabled. It returns once the socket accepts connections.
func Launch(path string, startOffset float64) (*MPV, error) {
	// Random socket path in os.TempDir() for cross-platform support
	// (macOS $TMPDIR is /var/folders/... not /tmp/).
	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return nil, fmt.Errorf("generate socket name: %w", err)
	}

	m := &MPV{
		path:       path,
		socketPath: filepath.Join(os.TempDir(), fmt.Sprintf("epwatch-%x.sock", randomBytes)),
		exited:     make(chan struct{}),
	}

	binary := viper.GetString(key.Player)
	m.cmd = exec.Command(binary, buildArgs(path, m.socketPath, startOffset)...)

	// Detach from the parent process group so the player survives shell signals.
	m.cmd.SysProcAttr = sysProcAttr()

	// Disable standard pipes to prevent resource leaks.
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", binary, err)
	}

	// Background goroutine to reap the process and prevent zombies.
	go func() {
		_ = m.cmd.Wait()
		close(m.exited)
	}()

	if err := m.waitForSocket(); err != nil {
		// If the socket never became ready, kill the orphaned process.
		select {
		case <-m.exited:
			// Already exited
		default:
			log.Warnf("killing %s: socket never became ready", binary)
			_ = killProcess(m.cmd)
		}
		return nil, fmt.Errorf("player socket not ready: %w", err)
	}

	log.Infof("%s launched on socket %s", binary, m.socketPath)
	return m, nil
}

// buildArgs assembles the player invocation flags.
func buildArgs(path, socketPath string, startOffset float64) []string {
	return []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--hwdec=%s", viper.GetString(key.PlayerHwdec)),
		fmt.Sprintf("--profile=%s", viper.GetString(key.PlayerProfile)),
		"--force-window=yes",
		fmt.Sprintf("--start=%s", strconv.FormatFloat(startOffset, 'f', -1, 64)),
		fmt.Sprintf("--input-ipc-server=%s", socketPath),
		path,
	}
}

// waitForSocket polls until the IPC socket is accepting connections.
func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		// Check if process already exited
		select {
		case <-m.exited:
			return fmt.Errorf("player exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

// Path returns the media file this session was launched with.
func (m *MPV) Path() string {
	return m.path
}

// IsAlive reports whether the player process is still running.
func (m *MPV) IsAlive() bool {
	select {
	case <-m.exited:
		return false
	default:
		return true
	}
}

// Position samples the current playback position in seconds.
func (m *MPV) Position() mo.Option[float64] {
	data, err := m.sendCommand([]interface{}{"get_property", "time-pos"})
	if err != nil {
		log.Debugf("sample position: %v", err)
		return mo.None[float64]()
	}

	val, ok := data.(float64)
	if !ok {
		return mo.None[float64]()
	}

	return mo.Some(val)
}

// Stop shuts down the player process and cleans up the socket file.
func (m *MPV) Stop() {
	// Graceful quit via IPC first.
	_, _ = m.sendCommand([]interface{}{"quit"})

	select {
	case <-m.exited:
		// Clean exit
	case <-time.After(stopGracePeriod):
		log.Warnf("player did not quit within %s, killing", stopGracePeriod)
		_ = killProcess(m.cmd)
	}

	_ = os.Remove(m.socketPath)
}

// Socket returns the IPC socket path.
func (m *MPV) Socket() string {
	return m.socketPath
}

package daemon

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/berrythewa/pastepal/internal/config"
	"github.com/berrythewa/pastepal/internal/ipc"
)

// ErrNotRunning is returned by Stop when no live daemon owns the pidfile.
var ErrNotRunning = errors.New("daemon is not running")

// ReadPIDFile returns the pid recorded at path.
func ReadPIDFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("invalid PID in file %s: %q", path, strings.TrimSpace(string(data)))
	}
	return pid, nil
}

// AcquirePIDFile records the current process at path. It fails when
// another live process already holds it; stale files are replaced.
func AcquirePIDFile(path string) error {
	if pid, err := ReadPIDFile(path); err == nil && pid != os.Getpid() && processAlive(pid) {
		return fmt.Errorf("daemon already running with PID %d", pid)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create pid directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write pid file: %w", err)
	}
	return nil
}

// RemovePIDFile deletes path if it still names the current process.
func RemovePIDFile(path string) error {
	pid, err := ReadPIDFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if pid != os.Getpid() {
		return nil
	}
	return os.Remove(path)
}

// StatusInfo describes what Status found.
type StatusInfo struct {
	Running    bool   `json:"running"`
	PID        int    `json:"pid,omitempty"`
	PIDFile    string `json:"pid_file"`
	Socket     string `json:"socket"`
	Responsive bool   `json:"responsive"`
	Reason     string `json:"reason,omitempty"`
}

// Status inspects the pidfile and pings the socket.
func Status(cfg *config.Config) StatusInfo {
	info := StatusInfo{
		PIDFile: cfg.SystemPaths.PIDFile,
		Socket:  cfg.IPC.SocketPath,
	}

	pid, err := ReadPIDFile(info.PIDFile)
	switch {
	case os.IsNotExist(err):
		info.Reason = "no PID file found"
		return info
	case err != nil:
		info.Reason = err.Error()
		return info
	}
	info.PID = pid

	if !processAlive(pid) {
		info.Reason = "process not alive"
		return info
	}
	info.Running = true

	if resp, err := ipc.SendRequest(info.Socket, ipc.NewRequest(ipc.CmdPing, nil)); err == nil && resp.Err() == nil {
		info.Responsive = true
	} else {
		info.Reason = "socket not responding"
	}
	return info
}

// Stop asks the daemon to terminate and waits up to timeout for it to exit.
func Stop(cfg *config.Config, timeout time.Duration) (int, error) {
	path := cfg.SystemPaths.PIDFile
	pid, err := ReadPIDFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, ErrNotRunning
		}
		return 0, err
	}
	if !processAlive(pid) {
		_ = os.Remove(path)
		return pid, ErrNotRunning
	}

	if err := terminateProcess(pid); err != nil {
		return pid, fmt.Errorf("failed to stop process %d: %w", pid, err)
	}

	deadline := time.Now().Add(timeout)
	for processAlive(pid) {
		if time.Now().After(deadline) {
			return pid, fmt.Errorf("process %d did not exit within %s", pid, timeout)
		}
		time.Sleep(50 * time.Millisecond)
	}
	_ = os.Remove(path)
	return pid, nil
}

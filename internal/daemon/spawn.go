package daemon

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/berrythewa/pastepal/internal/config"
	"github.com/berrythewa/pastepal/internal/ipc"
)

// Start launches executable with args as a detached background process and
// waits until its socket answers. Output goes to pastepald.log in the log
// directory.
func Start(cfg *config.Config, executable string, args []string, wait time.Duration) (int, error) {
	if st := Status(cfg); st.Running {
		return st.PID, fmt.Errorf("daemon already running with PID %d", st.PID)
	}

	logDir := cfg.SystemPaths.LogDir
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create log directory: %w", err)
	}
	logF, err := os.OpenFile(filepath.Join(logDir, "pastepald.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return 0, fmt.Errorf("failed to open log file: %w", err)
	}
	defer logF.Close()

	cmd := exec.Command(executable, args...)
	cmd.Stdin = nil
	cmd.Stdout = logF
	cmd.Stderr = logF
	cmd.Env = append(os.Environ(), EnvDaemon+"=1")
	cmd.SysProcAttr = detachedAttr()

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to start daemon process: %w", err)
	}
	pid := cmd.Process.Pid

	exited := make(chan error, 1)
	go func() { exited <- cmd.Wait() }()

	deadline := time.After(wait)
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case err := <-exited:
			return pid, fmt.Errorf("daemon exited during startup (see %s): %v", logF.Name(), err)
		case <-deadline:
			return pid, fmt.Errorf("daemon did not answer on %s within %s", cfg.IPC.SocketPath, wait)
		case <-tick.C:
			resp, err := ipc.SendRequest(cfg.IPC.SocketPath, ipc.NewRequest(ipc.CmdPing, nil))
			if err == nil && resp.Err() == nil {
				return pid, nil
			}
		}
	}
}

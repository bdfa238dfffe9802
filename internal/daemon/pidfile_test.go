package daemon

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berrythewa/pastepal/internal/config"
)

func TestPIDFileLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run", "pastepal.pid")

	require.NoError(t, AcquirePIDFile(path))
	pid, err := ReadPIDFile(path)
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), pid)

	// Re-acquiring from the same process is allowed.
	require.NoError(t, AcquirePIDFile(path))

	require.NoError(t, RemovePIDFile(path))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, RemovePIDFile(path))
}

func TestReadPIDFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pid")
	require.NoError(t, os.WriteFile(path, []byte("not-a-pid"), 0644))

	_, err := ReadPIDFile(path)
	assert.ErrorContains(t, err, "invalid PID")
}

func TestRemovePIDFileKeepsForeignPID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pid")
	require.NoError(t, os.WriteFile(path, []byte(strconv.Itoa(os.Getpid()+100000)), 0644))

	require.NoError(t, RemovePIDFile(path))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir, err := os.MkdirTemp("", "ppd")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	cfg := &config.Config{}
	cfg.SystemPaths.PIDFile = filepath.Join(dir, "pastepal.pid")
	cfg.SystemPaths.LogDir = filepath.Join(dir, "logs")
	cfg.IPC.SocketPath = filepath.Join(dir, "s.sock")
	cfg.Storage.Backend = "memory"
	cfg.Pasteboard.Backend = "memory"
	cfg.Activation.Mode = "manual"
	return cfg
}

func TestStatusNotRunning(t *testing.T) {
	cfg := testConfig(t)

	st := Status(cfg)
	assert.False(t, st.Running)
	assert.Equal(t, "no PID file found", st.Reason)

	_, err := Stop(cfg, time.Second)
	assert.ErrorIs(t, err, ErrNotRunning)
}

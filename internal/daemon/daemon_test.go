package daemon

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berrythewa/pastepal/internal/clipboard"
	"github.com/berrythewa/pastepal/internal/ipc"
	"github.com/berrythewa/pastepal/internal/types"
)

func TestDaemonRun(t *testing.T) {
	cfg := testConfig(t)

	d, err := New(cfg, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := ipc.SendRequest(cfg.IPC.SocketPath, ipc.NewRequest(ipc.CmdPing, nil))
		return err == nil && resp.Err() == nil
	}, 2*time.Second, 20*time.Millisecond)

	st := Status(cfg)
	assert.True(t, st.Running)
	assert.True(t, st.Responsive)
	assert.Equal(t, os.Getpid(), st.PID)

	pb := d.pb.(*clipboard.Memory)
	require.NoError(t, pb.WriteString("copied elsewhere"))

	resp, err := ipc.SendRequest(cfg.IPC.SocketPath, ipc.NewRequest(ipc.CmdClipActivate, nil))
	require.NoError(t, err)
	require.NoError(t, resp.Err())

	resp, err = ipc.SendRequest(cfg.IPC.SocketPath, ipc.NewRequest(ipc.CmdHistoryList, nil))
	require.NoError(t, err)
	var items []types.ClipboardItem
	require.NoError(t, resp.Decode(&items))
	require.Len(t, items, 1)
	assert.Equal(t, "copied elsewhere", items[0].Content)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("daemon did not stop")
	}

	_, err = os.Stat(cfg.SystemPaths.PIDFile)
	assert.True(t, os.IsNotExist(err), "pid file should be removed")
}

func TestNewRejectsUnknownBackends(t *testing.T) {
	cfg := testConfig(t)
	cfg.Pasteboard.Backend = "carrier-pigeon"

	_, err := New(cfg, nil)
	assert.ErrorContains(t, err, "failed to open pasteboard")

	cfg = testConfig(t)
	cfg.Storage.Backend = "floppy"
	_, err = New(cfg, nil)
	assert.ErrorContains(t, err, "failed to open storage")
}

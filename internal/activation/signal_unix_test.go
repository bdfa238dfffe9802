//go:build !windows

package activation

import (
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignal(t *testing.T) {
	var fired atomic.Int32

	sub, err := NewSignal(nil).Subscribe(func() { fired.Add(1) })
	require.NoError(t, err)
	defer sub.Unsubscribe()

	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGUSR1))
	require.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, 5*time.Millisecond)
}

package activation

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berrythewa/pastepal/internal/clipboard"
)

func TestManual(t *testing.T) {
	m := NewManual()
	var a, b atomic.Int32

	subA, err := m.Subscribe(func() { a.Add(1) })
	require.NoError(t, err)
	subB, err := m.Subscribe(func() { b.Add(1) })
	require.NoError(t, err)

	assert.Equal(t, 2, m.Trigger())
	subA.Unsubscribe()
	subA.Unsubscribe()
	assert.Equal(t, 1, m.Trigger())

	assert.Equal(t, int32(1), a.Load())
	assert.Equal(t, int32(2), b.Load())

	subB.Unsubscribe()
	assert.Equal(t, 0, m.Trigger())
}

func TestPollFiresOnChange(t *testing.T) {
	pb := clipboard.NewMemory()
	var fired atomic.Int32

	sub, err := NewPoll(pb, 5*time.Millisecond, nil).Subscribe(func() { fired.Add(1) })
	require.NoError(t, err)
	defer sub.Unsubscribe()

	// Nothing on the pasteboard: no activations.
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())

	require.NoError(t, pb.WriteString("first"))
	require.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, 5*time.Millisecond)

	// Same text again does not fire.
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())

	require.NoError(t, pb.WriteString("second"))
	require.Eventually(t, func() bool { return fired.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestPollStopsAfterUnsubscribe(t *testing.T) {
	pb := clipboard.NewMemory()
	var fired atomic.Int32

	sub, err := NewPoll(pb, 5*time.Millisecond, nil).Subscribe(func() { fired.Add(1) })
	require.NoError(t, err)
	sub.Unsubscribe()

	require.NoError(t, pb.WriteString("late"))
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}

func TestPollNeedsPasteboard(t *testing.T) {
	_, err := NewPoll(nil, 0, nil).Subscribe(func() {})
	assert.Error(t, err)
}

type fakeWatcher struct {
	ch chan []byte
}

func (f *fakeWatcher) Watch(ctx context.Context) <-chan []byte {
	return f.ch
}

func TestWatch(t *testing.T) {
	w := &fakeWatcher{ch: make(chan []byte)}
	var fired atomic.Int32

	sub, err := NewWatch(w, nil).Subscribe(func() { fired.Add(1) })
	require.NoError(t, err)

	w.ch <- []byte("a")
	w.ch <- []byte("b")
	require.Eventually(t, func() bool { return fired.Load() == 2 }, time.Second, 5*time.Millisecond)

	sub.Unsubscribe()
}

func TestNew(t *testing.T) {
	pb := clipboard.NewMemory()

	src, err := New(Options{Mode: ModePoll, Pasteboard: pb})
	require.NoError(t, err)
	assert.IsType(t, &Poll{}, src)

	src, err = New(Options{Mode: ModeManual})
	require.NoError(t, err)
	assert.IsType(t, &Manual{}, src)

	_, err = New(Options{Mode: ModeWatch, Pasteboard: pb})
	assert.Error(t, err, "memory pasteboard cannot watch")

	_, err = New(Options{Mode: "telepathy"})
	assert.Error(t, err)
}

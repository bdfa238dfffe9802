package clipboard

import (
	"context"
	"fmt"
	"sync"

	nativeClip "golang.design/x/clipboard"
)

var _ Pasteboard = (*NativeClipboard)(nil)

var (
	initOnce sync.Once
	initErr  error
)

// NativeClipboard talks to NSPasteboard (or the X11/Windows equivalents)
// directly through golang.design/x/clipboard. It requires cgo.
type NativeClipboard struct{}

// NewNativeClipboard initialises the native clipboard once per process.
func NewNativeClipboard() (*NativeClipboard, error) {
	initOnce.Do(func() {
		initErr = nativeClip.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialise native clipboard: %w", initErr)
	}
	return &NativeClipboard{}, nil
}

func (c *NativeClipboard) ReadString() (string, error) {
	data := nativeClip.Read(nativeClip.FmtText)
	if len(data) == 0 {
		return "", ErrNoString
	}
	return string(data), nil
}

func (c *NativeClipboard) Clear() error {
	nativeClip.Write(nativeClip.FmtText, []byte{})
	return nil
}

func (c *NativeClipboard) WriteString(s string) error {
	nativeClip.Write(nativeClip.FmtText, []byte(s))
	return nil
}

// Watch signals every time the text payload changes, until ctx is done.
func (c *NativeClipboard) Watch(ctx context.Context) <-chan []byte {
	return nativeClip.Watch(ctx, nativeClip.FmtText)
}

// Package clipboard provides access to the system pasteboard.
package clipboard

import (
	"errors"
	"fmt"
)

// ErrNoString is returned by ReadString when the pasteboard holds no text.
var ErrNoString = errors.New("pasteboard holds no string")

// Backend names accepted by New.
const (
	BackendAtotto = "atotto"
	BackendNative = "native"
	BackendMemory = "memory"
)

// Pasteboard is the narrow capability the history store needs from the
// system clipboard.
type Pasteboard interface {
	// ReadString returns the current text payload, or ErrNoString.
	ReadString() (string, error)
	// Clear removes every payload from the pasteboard.
	Clear() error
	// WriteString makes s the sole string payload.
	WriteString(s string) error
}

// New returns the pasteboard backend registered under name.
func New(name string) (Pasteboard, error) {
	switch name {
	case "", BackendAtotto:
		return NewAtottoClipboard(), nil
	case BackendNative:
		c, err := NewNativeClipboard()
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown pasteboard backend %q", name)
	}
}

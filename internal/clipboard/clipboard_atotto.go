package clipboard

import (
	"fmt"

	atottoClip "github.com/atotto/clipboard"
)

var _ Pasteboard = (*AtottoClipboard)(nil)

// AtottoClipboard shells out to the platform tools (pbcopy/pbpaste on macOS,
// xclip, xsel or wl-clipboard on Linux) through atotto/clipboard.
type AtottoClipboard struct{}

// NewAtottoClipboard returns a new Atotto-based pasteboard
func NewAtottoClipboard() *AtottoClipboard {
	return &AtottoClipboard{}
}

func (c *AtottoClipboard) ReadString() (string, error) {
	text, err := atottoClip.ReadAll()
	if err != nil {
		return "", fmt.Errorf("failed to read clipboard: %w", err)
	}
	// pbpaste prints nothing when the pasteboard has no string flavour.
	if text == "" {
		return "", ErrNoString
	}
	return text, nil
}

func (c *AtottoClipboard) Clear() error {
	if err := atottoClip.WriteAll(""); err != nil {
		return fmt.Errorf("failed to clear clipboard: %w", err)
	}
	return nil
}

func (c *AtottoClipboard) WriteString(s string) error {
	if err := atottoClip.WriteAll(s); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}

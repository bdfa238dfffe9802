package types

import (
	"time"

	"github.com/google/uuid"
)

// ClipboardItem is a single text snippet seen on the pasteboard.
// Content is the natural key: a history holds at most one item per Content.
type ClipboardItem struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
	CopiedFrom string    `json:"copiedFrom,omitempty"`
}

// NewClipboardItem creates an item with a fresh identifier.
func NewClipboardItem(content, copiedFrom string, now time.Time) ClipboardItem {
	return ClipboardItem{
		ID:         uuid.NewString(),
		Content:    content,
		Timestamp:  now,
		CopiedFrom: copiedFrom,
	}
}

// Size returns the payload size in bytes.
func (i ClipboardItem) Size() int {
	return len(i.Content)
}

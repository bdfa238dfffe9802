// Package format renders clipboard history for the terminal.
package format

import (
	"fmt"
	"strings"

	"github.com/berrythewa/pastepal/internal/types"
)

// Formatter renders items with a fixed set of options
type Formatter struct {
	options Options
}

// New creates a new formatter with the given options
func New(opts Options) *Formatter {
	return &Formatter{
		options: opts,
	}
}

// NewDefault creates a new formatter with default options
func NewDefault() *Formatter {
	return New(DefaultOptions())
}

// FormatItem formats a single history entry
func (f *Formatter) FormatItem(item types.ClipboardItem) string {
	if f.options.Compact {
		return f.formatCompact(item)
	}

	var parts []string
	if f.options.ShowMetadata {
		parts = append(parts, f.formatHeader(item))
	}

	content := item.Content
	if f.options.MaxWidth > 0 {
		lines := strings.Split(content, "\n")
		for i, l := range lines {
			lines[i] = TruncateText(l, f.options.MaxWidth)
		}
		content = strings.Join(lines, "\n")
	}
	content = TruncateLines(content, f.options.MaxLines)
	parts = append(parts, indent(content, "  "))

	return strings.Join(parts, "\n")
}

// FormatItemList formats multiple entries, most recent first
func (f *Formatter) FormatItemList(items []types.ClipboardItem) string {
	if len(items) == 0 {
		return paint("No clipboard history", dimColor, f.options.UseColors)
	}

	noun := "items"
	if len(items) == 1 {
		noun = "item"
	}
	parts := []string{
		paint(fmt.Sprintf("Clipboard history (%d %s)", len(items), noun), titleColor, f.options.UseColors),
		"",
	}

	for i, item := range items {
		index := paint(fmt.Sprintf("[%d]", i+1), dimColor, f.options.UseColors)
		if f.options.Compact {
			parts = append(parts, index+" "+f.FormatItem(item))
			continue
		}
		parts = append(parts, index+" "+f.FormatItem(item), "")
	}

	return strings.TrimRight(strings.Join(parts, "\n"), "\n")
}

func (f *Formatter) formatHeader(item types.ClipboardItem) string {
	use := f.options.UseColors
	fields := []string{
		paint(item.ID, idColor, use),
		paint(FormatRelativeTime(item.Timestamp, f.options.now()), ageColor, use),
		FormatSize(int64(item.Size())),
	}
	if item.CopiedFrom != "" {
		fields = append(fields, "from "+paint(item.CopiedFrom, sourceColor, use))
	}
	return strings.Join(fields, "  ")
}

func (f *Formatter) formatCompact(item types.ClipboardItem) string {
	use := f.options.UseColors
	line := fmt.Sprintf("%s  %s  %s",
		paint(ShortID(item.ID), idColor, use),
		paint(FormatRelativeTime(item.Timestamp, f.options.now()), ageColor, use),
		TruncateText(OneLine(item.Content), f.options.MaxWidth))
	if item.CopiedFrom != "" {
		line += "  " + paint("("+item.CopiedFrom+")", sourceColor, use)
	}
	return line
}

func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

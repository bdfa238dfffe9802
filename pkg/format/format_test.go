package format

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/berrythewa/pastepal/internal/types"
)

var refNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func plainOptions() Options {
	opts := DefaultOptions()
	opts.UseColors = false
	opts.Now = func() time.Time { return refNow }
	return opts
}

func item(id, content, from string, age time.Duration) types.ClipboardItem {
	return types.ClipboardItem{ID: id, Content: content, Timestamp: refNow.Add(-age), CopiedFrom: from}
}

func TestFormatItem(t *testing.T) {
	f := New(plainOptions())
	out := f.FormatItem(item("1b4e28ba-2fa1-11d2-883f-0016d3cca427", "hello\nworld", "Terminal", 5*time.Minute))

	lines := strings.Split(out, "\n")
	assert.Equal(t, []string{
		"1b4e28ba-2fa1-11d2-883f-0016d3cca427  5 minutes ago  11 B  from Terminal",
		"  hello",
		"  world",
	}, lines)
}

func TestFormatItemTruncates(t *testing.T) {
	opts := plainOptions()
	opts.ShowMetadata = false
	opts.MaxLines = 2
	opts.MaxWidth = 6
	out := New(opts).FormatItem(item("x", "abcdefghij\nb\nc\nd", "", 0))

	assert.Equal(t, "  abc...\n  b\n  ... (2 more lines)", out)
}

func TestFormatCompact(t *testing.T) {
	opts := CompactOptions()
	opts.UseColors = false
	opts.Now = func() time.Time { return refNow }
	f := New(opts)

	out := f.FormatItem(item("1b4e28ba-2fa1-11d2-883f-0016d3cca427", "line one\n\tline two", "Safari", time.Hour))
	assert.Equal(t, "1b4e28ba  1 hour ago  line one line two  (Safari)", out)
	assert.NotContains(t, out, "\n")
}

func TestFormatItemList(t *testing.T) {
	f := New(plainOptions())

	assert.Equal(t, "No clipboard history", f.FormatItemList(nil))

	out := f.FormatItemList([]types.ClipboardItem{
		item("a", "first", "", 0),
		item("b", "second", "", 48*time.Hour),
	})
	assert.True(t, strings.HasPrefix(out, "Clipboard history (2 items)\n"))
	assert.Contains(t, out, "[1] a  just now  5 B\n  first")
	assert.Contains(t, out, "[2] b  2 days ago  6 B\n  second")
	assert.False(t, strings.HasSuffix(out, "\n"))
}

func TestColorsAreOptional(t *testing.T) {
	opts := plainOptions()
	plain := New(opts).FormatItem(item("a", "x", "App", 0))
	assert.NotContains(t, plain, "\x1b[")

	opts.UseColors = true
	colored := New(opts).FormatItem(item("a", "x", "App", 0))
	assert.Contains(t, colored, "\x1b[")
}

func TestFormatStats(t *testing.T) {
	stats := types.Stats{
		Count:      3,
		TotalBytes: 2048,
		Oldest:     refNow.Add(-10 * 24 * time.Hour),
		Newest:     refNow,
		BySource:   map[string]int{"": 1, "Safari": 2},
	}

	out := FormatStats(stats, plainOptions())
	assert.Contains(t, out, "Total entries: 3")
	assert.Contains(t, out, "Total size: 2.0 KB")
	assert.Contains(t, out, "Oldest entry: Feb 19, 2026")
	assert.Contains(t, out, "Newest entry: just now")
	assert.Less(t, strings.Index(out, "Safari: 2"), strings.Index(out, "(unknown): 1"))

	empty := FormatStats(types.Stats{}, plainOptions())
	assert.NotContains(t, empty, "Oldest entry")
}

func TestHelpers(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"size bytes", FormatSize(512), "512 B"},
		{"size mega", FormatSize(3 * 1024 * 1024), "3.0 MB"},
		{"truncate runes", TruncateText("héllo wörld", 8), "héllo..."},
		{"truncate short", TruncateText("hi", 8), "hi"},
		{"truncate tiny", TruncateText("hello", 2), "he"},
		{"one line", OneLine("  a\r\n b\t c  "), "a b c"},
		{"short uuid", ShortID("1b4e28ba-2fa1-11d2"), "1b4e28ba"},
		{"short plain", ShortID("abc"), "abc"},
		{"minute", FormatRelativeTime(refNow.Add(-time.Minute), refNow), "1 minute ago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

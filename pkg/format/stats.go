package format

import (
	"fmt"
	"sort"
	"strings"

	"github.com/berrythewa/pastepal/internal/types"
)

// FormatStats formats clipboard statistics for display
func FormatStats(stats types.Stats, opts Options) string {
	var parts []string

	parts = append(parts, paint("Clipboard Statistics", titleColor, opts.UseColors), "")
	parts = append(parts, formatStatLine("Total entries", fmt.Sprintf("%d", stats.Count), opts))
	parts = append(parts, formatStatLine("Total size", FormatSize(stats.TotalBytes), opts))

	if stats.Count > 0 {
		now := opts.now()
		parts = append(parts, formatStatLine("Oldest entry", FormatRelativeTime(stats.Oldest, now), opts))
		parts = append(parts, formatStatLine("Newest entry", FormatRelativeTime(stats.Newest, now), opts))
	}

	if len(stats.BySource) > 0 {
		parts = append(parts, "", paint("Entries by source", labelColor, opts.UseColors))

		sources := make([]string, 0, len(stats.BySource))
		for src := range stats.BySource {
			sources = append(sources, src)
		}
		sort.Slice(sources, func(i, j int) bool {
			ci, cj := stats.BySource[sources[i]], stats.BySource[sources[j]]
			if ci != cj {
				return ci > cj
			}
			return sources[i] < sources[j]
		})

		for _, src := range sources {
			label := src
			if label == "" {
				label = "(unknown)"
			}
			parts = append(parts, fmt.Sprintf("  %s: %d", paint(label, sourceColor, opts.UseColors), stats.BySource[src]))
		}
	}

	return strings.Join(parts, "\n")
}

func formatStatLine(label, value string, opts Options) string {
	return fmt.Sprintf("%s %s", paint(label+":", labelColor, opts.UseColors), value)
}

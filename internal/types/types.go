// Package types defines common types used throughout the application
package types

import (
	"time"
)

// Stats summarises a clipboard history
type Stats struct {
	Count      int            `json:"count"`
	TotalBytes int64          `json:"total_bytes"`
	Oldest     time.Time      `json:"oldest,omitempty"`
	Newest     time.Time      `json:"newest,omitempty"`
	BySource   map[string]int `json:"by_source"` // copiedFrom -> count, "" for unknown
}

// ComputeStats builds Stats for the given items
func ComputeStats(items []ClipboardItem) Stats {
	stats := Stats{
		Count:    len(items),
		BySource: make(map[string]int),
	}
	for _, item := range items {
		stats.TotalBytes += int64(item.Size())
		stats.BySource[item.CopiedFrom]++
		if stats.Oldest.IsZero() || item.Timestamp.Before(stats.Oldest) {
			stats.Oldest = item.Timestamp
		}
		if item.Timestamp.After(stats.Newest) {
			stats.Newest = item.Timestamp
		}
	}
	return stats
}

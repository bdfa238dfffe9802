package format

import "time"

// Options controls formatting behavior
type Options struct {
	UseColors    bool
	MaxWidth     int  // Max content width in runes (0 = no limit)
	MaxLines     int  // Max content lines (0 = no limit)
	ShowMetadata bool // Show id, timestamp and provenance
	Compact      bool // Use compact single-line format

	// Now is the reference for relative ages; nil means time.Now.
	Now func() time.Time
}

// DefaultOptions returns sensible defaults
func DefaultOptions() Options {
	return Options{
		UseColors:    true,
		MaxWidth:     80,
		MaxLines:     10,
		ShowMetadata: true,
		Compact:      false,
	}
}

// CompactOptions returns options for compact single-line display
func CompactOptions() Options {
	opts := DefaultOptions()
	opts.Compact = true
	opts.ShowMetadata = false
	opts.MaxLines = 1
	opts.MaxWidth = 60
	return opts
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

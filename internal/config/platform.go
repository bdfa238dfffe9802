// File: internal/config/platform.go

package config

import (
	"runtime"
	"time"

	"github.com/berrythewa/pastepal/internal/activation"
	"github.com/berrythewa/pastepal/internal/clipboard"
)

// PlatformDefaults holds platform-specific default values
type PlatformDefaults struct {
	PollInterval      time.Duration
	PasteboardBackend string
	ActivationMode    string
}

// GetPlatformDefaults returns platform-optimized default values
func GetPlatformDefaults() PlatformDefaults {
	switch runtime.GOOS {
	case "windows":
		return PlatformDefaults{
			PollInterval:      250 * time.Millisecond,
			PasteboardBackend: clipboard.BackendAtotto,
			ActivationMode:    activation.ModePoll,
		}
	case "darwin":
		// NSPasteboard reads through pbpaste are cheap; 500ms keeps CPU idle.
		return PlatformDefaults{
			PollInterval:      500 * time.Millisecond,
			PasteboardBackend: clipboard.BackendAtotto,
			ActivationMode:    activation.ModePoll,
		}
	default:
		// Each read forks xclip/wl-paste, so poll less often.
		return PlatformDefaults{
			PollInterval:      time.Second,
			PasteboardBackend: clipboard.BackendAtotto,
			ActivationMode:    activation.ModePoll,
		}
	}
}

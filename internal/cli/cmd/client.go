package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/berrythewa/pastepal/internal/ipc"
	"github.com/berrythewa/pastepal/pkg/format"
)

// sendRequest talks to the daemon and turns error responses into errors.
func sendRequest(command string, args map[string]interface{}) (*ipc.Response, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	resp, err := ipc.SendRequest(cfg.IPC.SocketPath, ipc.NewRequest(command, args))
	if err != nil {
		return nil, fmt.Errorf("%w (is the daemon running? start it with 'pastepal daemon start')", err)
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return resp, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// formatOptions disables colors when asked or when stdout is not a terminal.
func formatOptions(compact, noColors bool) format.Options {
	opts := format.DefaultOptions()
	if compact {
		opts = format.CompactOptions()
	}
	opts.UseColors = !noColors && !color.NoColor
	return opts
}

package cli

import (
	cmdpkg "github.com/berrythewa/pastepal/internal/cli/cmd"
)

func init() {
	// Register all commands with the root command
	AddCommand(cmdpkg.GetCommands()...)
}

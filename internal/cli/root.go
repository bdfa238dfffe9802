// Package cli implements the command-line interface for PastePal
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cmdpkg "github.com/berrythewa/pastepal/internal/cli/cmd"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "pastepal",
	Short: "PastePal keeps a searchable history of everything you copy",
	Long: `PastePal is a clipboard history manager. A small daemon watches the
system pasteboard and remembers every piece of text you copy, newest first,
without duplicates. Use the history commands to search it and the clip
commands to put an old entry back on the pasteboard.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return cmdpkg.Setup(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = cmdpkg.GetZapLogger().Sync()
	},
}

// AddCommand adds a subcommand to the root command
func AddCommand(cmds ...*cobra.Command) {
	RootCmd.AddCommand(cmds...)
}

// SetVersionInfo records build metadata for the version command
func SetVersionInfo(version, buildTime, commit string) {
	cmdpkg.SetVersionInfo(version, buildTime, commit)
	RootCmd.Version = version
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cmdpkg.BindFlags(RootCmd.PersistentFlags())
}

package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/berrythewa/pastepal/internal/daemon"
	"github.com/berrythewa/pastepal/internal/ipc"
	"github.com/berrythewa/pastepal/internal/types"
	"github.com/berrythewa/pastepal/pkg/format"
)

// newHistoryCmd creates the history command with all subcommands
func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Manage clipboard history",
		Long: `Manage clipboard history:
  • List history entries and set the live search filter
  • Show or delete specific entries
  • Clear the history
  • Show history statistics`,
	}

	cmd.AddCommand(newHistoryListCmd())
	cmd.AddCommand(newHistorySearchCmd())
	cmd.AddCommand(newHistoryShowCmd())
	cmd.AddCommand(newHistoryDeleteCmd())
	cmd.AddCommand(newHistoryClearCmd())
	cmd.AddCommand(newHistoryStatsCmd())

	return cmd
}

// newHistoryListCmd creates the list subcommand
func newHistoryListCmd() *cobra.Command {
	var (
		query    string
		limit    int
		compact  bool
		noColors bool
		maxLines int
		maxWidth int
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List clipboard history",
		Long: `List clipboard history entries, most recently copied first.

Examples:
  pastepal history list                 # Show last 20 entries of the current view
  pastepal history list -n 50           # Show last 50 entries
  pastepal history list -s hello        # Entries containing "hello", any case
  pastepal history list --compact       # Compact single-line format`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := sendRequest(ipc.CmdHistoryList, map[string]interface{}{
				"query": query,
				"limit": limit,
			})
			if err != nil {
				return err
			}

			var items []types.ClipboardItem
			if err := resp.Decode(&items); err != nil {
				return err
			}

			if useJSON {
				return writeJSON(cmd.OutOrStdout(), items)
			}

			opts := formatOptions(compact, noColors)
			if maxLines > 0 {
				opts.MaxLines = maxLines
			}
			if maxWidth > 0 {
				opts.MaxWidth = maxWidth
			}
			fmt.Fprintln(cmd.OutOrStdout(), format.New(opts).FormatItemList(items))
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "search", "s", "", "only show entries containing this text (case-insensitive)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of entries to show (0 = all)")
	cmd.Flags().BoolVarP(&compact, "compact", "c", false, "use compact single-line format")
	cmd.Flags().BoolVar(&noColors, "no-colors", false, "disable colored output")
	cmd.Flags().IntVar(&maxLines, "max-lines", 0, "maximum lines to show per entry")
	cmd.Flags().IntVar(&maxWidth, "max-width", 0, "maximum width per line")

	return cmd
}

// newHistorySearchCmd creates the search subcommand
func newHistorySearchCmd() *cobra.Command {
	var (
		reset    bool
		limit    int
		compact  bool
		noColors bool
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Set the daemon's live search filter",
		Long: `Set the search filter the daemon keeps applied to its history. Later
entries are filtered as they arrive and "history list" shows the filtered
view until the filter is cleared.

Examples:
  pastepal history search hello         # Filter to entries containing "hello"
  pastepal history search --clear       # Show everything again`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !reset {
				return fmt.Errorf("a query or --clear is required")
			}
			query := ""
			if len(args) == 1 {
				query = args[0]
			}

			resp, err := sendRequest(ipc.CmdHistorySearch, map[string]interface{}{
				"query": query,
				"limit": limit,
			})
			if err != nil {
				return err
			}

			var res daemon.SearchResult
			if err := resp.Decode(&res); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if useJSON {
				return writeJSON(out, res)
			}
			if res.Query == "" {
				fmt.Fprintln(out, "Search filter cleared")
			} else {
				fmt.Fprintf(out, "Search filter set to %q\n", res.Query)
			}
			fmt.Fprintln(out, format.New(formatOptions(compact, noColors)).FormatItemList(res.Items))
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "clear", false, "remove the search filter")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of entries to show (0 = all)")
	cmd.Flags().BoolVarP(&compact, "compact", "c", false, "use compact single-line format")
	cmd.Flags().BoolVar(&noColors, "no-colors", false, "disable colored output")

	return cmd
}

// newHistoryShowCmd creates the show subcommand
func newHistoryShowCmd() *cobra.Command {
	var (
		raw      bool
		noColors bool
	)

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a history entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := sendRequest(ipc.CmdHistoryShow, map[string]interface{}{"id": args[0]})
			if err != nil {
				return err
			}

			var item types.ClipboardItem
			if err := resp.Decode(&item); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case raw:
				_, err := fmt.Fprint(out, item.Content)
				return err
			case useJSON:
				return writeJSON(out, item)
			}

			opts := formatOptions(false, noColors)
			opts.MaxLines = 0
			opts.MaxWidth = 0
			fmt.Fprintln(out, format.New(opts).FormatItem(item))
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print only the content")
	cmd.Flags().BoolVar(&noColors, "no-colors", false, "disable colored output")
	return cmd
}

// newHistoryDeleteCmd creates the delete subcommand
func newHistoryDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>...",
		Aliases: []string{"rm"},
		Short:   "Delete history entries by id",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := sendRequest(ipc.CmdHistoryDelete, map[string]interface{}{"ids": args})
			if err != nil {
				return err
			}

			var res daemon.DeleteResult
			if err := resp.Decode(&res); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if useJSON {
				return writeJSON(out, res)
			}
			fmt.Fprintf(out, "Deleted %d of %d entries\n", res.Deleted, len(args))
			for _, id := range res.Missing {
				fmt.Fprintf(out, "  not found: %s\n", id)
			}
			return nil
		},
	}
}

// newHistoryClearCmd creates the clear subcommand
func newHistoryClearCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every history entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !force {
				fmt.Fprint(out, "Delete the entire clipboard history? [y/N] ")
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				answer = strings.ToLower(strings.TrimSpace(answer))
				if answer != "y" && answer != "yes" {
					fmt.Fprintln(out, "Aborted")
					return nil
				}
			}

			resp, err := sendRequest(ipc.CmdHistoryClear, nil)
			if err != nil {
				return err
			}

			var removed map[string]int
			if err := resp.Decode(&removed); err != nil {
				return err
			}
			if useJSON {
				return writeJSON(out, removed)
			}
			fmt.Fprintf(out, "Cleared %d entries\n", removed["removed"])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "do not ask for confirmation")
	return cmd
}

// newHistoryStatsCmd creates the stats subcommand
func newHistoryStatsCmd() *cobra.Command {
	var noColors bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show history statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := sendRequest(ipc.CmdHistoryStats, nil)
			if err != nil {
				return err
			}

			var stats types.Stats
			if err := resp.Decode(&stats); err != nil {
				return err
			}

			if useJSON {
				return writeJSON(cmd.OutOrStdout(), stats)
			}
			fmt.Fprintln(cmd.OutOrStdout(), format.FormatStats(stats, formatOptions(false, noColors)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noColors, "no-colors", false, "disable colored output")
	return cmd
}

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/berrythewa/pastepal/internal/ipc"
	"github.com/berrythewa/pastepal/internal/types"
	"github.com/berrythewa/pastepal/pkg/format"
)

// newClipCmd creates the clip command
func newClipCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clip",
		Short: "Clipboard operations",
		Long: `Perform clipboard operations:
  • Add text to the history
  • Copy a history entry back to the pasteboard
  • Record whatever the pasteboard holds right now`,
	}

	cmd.AddCommand(newClipAddCmd())
	cmd.AddCommand(newClipCopyCmd())
	cmd.AddCommand(newClipActivateCmd())

	return cmd
}

func newClipAddCmd() *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "add [text...]",
		Short: "Add text to the clipboard history",
		Long: `Add text to the clipboard history. Without arguments the text is read
from standard input. Text already in the history moves to the front.

Examples:
  pastepal clip add "some text"
  git rev-parse HEAD | pastepal clip add --from git`,
		RunE: func(cmd *cobra.Command, args []string) error {
			content := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				content = strings.TrimSuffix(strings.TrimSuffix(string(data), "\n"), "\r")
			}

			resp, err := sendRequest(ipc.CmdClipAdd, map[string]interface{}{
				"content":     content,
				"copied_from": from,
			})
			if err != nil {
				return err
			}

			var item types.ClipboardItem
			if err := resp.Decode(&item); err != nil {
				return err
			}
			GetZapLogger().Debug("Added clipboard item", zap.String("id", item.ID))

			if useJSON {
				return writeJSON(cmd.OutOrStdout(), item)
			}
			fmt.Fprintln(cmd.OutOrStdout(), item.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "record where the text was copied from")
	return cmd
}

func newClipCopyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "copy <id>",
		Short: "Put a history entry back on the pasteboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := sendRequest(ipc.CmdClipCopy, map[string]interface{}{"id": args[0]})
			if err != nil {
				return err
			}

			var item types.ClipboardItem
			if err := resp.Decode(&item); err != nil {
				return err
			}

			if useJSON {
				return writeJSON(cmd.OutOrStdout(), item)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Copied %s to clipboard: %s\n",
				format.ShortID(item.ID), format.TruncateText(format.OneLine(item.Content), 50))
			return nil
		},
	}
}

func newClipActivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "activate",
		Short: "Record the current pasteboard text",
		Long: `Tell the daemon to read the pasteboard now, as it does when the
configured activation source fires.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := sendRequest(ipc.CmdClipActivate, nil)
			if err != nil {
				return err
			}

			var item types.ClipboardItem
			if err := resp.Decode(&item); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if useJSON {
				return writeJSON(out, item)
			}
			if item.ID == "" {
				fmt.Fprintln(out, "Pasteboard holds no text; nothing recorded")
				return nil
			}
			fmt.Fprintf(out, "Recorded %s: %s\n",
				format.ShortID(item.ID), format.TruncateText(format.OneLine(item.Content), 50))
			return nil
		},
	}
}

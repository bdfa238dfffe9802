package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/berrythewa/pastepal/internal/daemon"
)

const (
	startTimeout = 5 * time.Second
	stopTimeout  = 5 * time.Second
)

// newDaemonCmd creates the daemon command
func newDaemonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Manage the PastePal daemon",
		Long: `Manage the PastePal daemon, the process that watches the pasteboard,
keeps the clipboard history and answers the other commands.`,
	}

	cmd.AddCommand(newDaemonRunCmd())
	cmd.AddCommand(newDaemonStartCmd())
	cmd.AddCommand(newDaemonStopCmd())
	cmd.AddCommand(newDaemonStatusCmd())

	return cmd
}

func newDaemonRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the daemon in the foreground",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return RunDaemon(ctx)
		},
	}
}

// RunDaemon builds the daemon from the loaded config and blocks until ctx
// is done.
func RunDaemon(ctx context.Context) error {
	logger := GetZapLogger()
	if err := cfg.SystemPaths.EnsureDirs(); err != nil {
		return err
	}

	d, err := daemon.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to start daemon: %w", err)
	}
	return d.Run(ctx)
}

func newDaemonStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the daemon in the background",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			executable, err := os.Executable()
			if err != nil {
				return fmt.Errorf("failed to get executable path: %w", err)
			}

			childArgs := []string{"daemon", "run"}
			if cfgFile != "" {
				childArgs = append(childArgs, "--config", cfgFile)
			}

			GetZapLogger().Info("Starting daemon in background", zap.String("executable", executable))
			pid, err := daemon.Start(cfg, executable, childArgs, startTimeout)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "PastePal daemon started with PID %d\n", pid)
			return nil
		},
	}
}

func newDaemonStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the daemon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := daemon.Stop(cfg, stopTimeout)
			if errors.Is(err, daemon.ErrNotRunning) {
				fmt.Fprintln(cmd.OutOrStdout(), "PastePal daemon is not running")
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to stop daemon: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "PastePal daemon (PID %d) stopped\n", pid)
			return nil
		},
	}
}

func newDaemonStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status := daemon.Status(cfg)
			out := cmd.OutOrStdout()

			if useJSON {
				return writeJSON(out, status)
			}

			if !status.Running {
				fmt.Fprintf(out, "PastePal daemon is not running (%s)\n", status.Reason)
				return nil
			}
			fmt.Fprintf(out, "PastePal daemon is running with PID %d\n", status.PID)
			fmt.Fprintf(out, "Socket: %s\n", status.Socket)
			if !status.Responsive {
				fmt.Fprintln(out, "Warning: the daemon is not answering on its socket")
			}
			return nil
		},
	}
}

// Command pastepald runs the clipboard history daemon in the foreground.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/berrythewa/pastepal/internal/common"
	"github.com/berrythewa/pastepal/internal/config"
	"github.com/berrythewa/pastepal/internal/daemon"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "config file (default is the platform config dir)")
	logLevel := pflag.String("log-level", "", "override the configured log level")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	logger, err := common.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := cfg.SystemPaths.EnsureDirs(); err != nil {
		logger.Fatal("Failed to create directories", zap.Error(err))
	}

	d, err := daemon.New(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create daemon", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := d.Run(ctx); err != nil {
		logger.Error("Daemon exited with error", zap.Error(err))
		os.Exit(1)
	}
}

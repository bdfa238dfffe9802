package cmd

import (
	"go.uber.org/zap"

	"github.com/berrythewa/pastepal/internal/common"
	"github.com/berrythewa/pastepal/internal/config"
)

// SetupLogger builds the logger from cfg, letting --verbose and --quiet
// override the configured level.
func SetupLogger(cfg *config.Config) (*zap.Logger, error) {
	logCfg := cfg.Log
	switch {
	case verbose:
		logCfg.Level = "debug"
	case quiet:
		logCfg.Level = "error"
	}
	return common.NewLogger(logCfg)
}

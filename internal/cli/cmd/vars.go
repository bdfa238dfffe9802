package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/berrythewa/pastepal/internal/config"
)

// Shared variables across all commands
var (
	cfg       *config.Config
	zapLogger *zap.Logger

	cfgFile string
	verbose bool
	quiet   bool
	useJSON bool
)

// BindFlags registers the global flags on the root command.
func BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&cfgFile, "config", "", "config file (default is the platform config dir)")
	fs.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	fs.BoolVarP(&quiet, "quiet", "q", false, "only log errors")
	fs.BoolVar(&useJSON, "json", false, "output in JSON format")
}

// annotationNoConfig marks commands that must not read or create the
// config file.
const annotationNoConfig = "pastepal/no-config"

// Setup loads the configuration and builds the logger. It runs before every
// command.
func Setup(cmd *cobra.Command) error {
	if cmd.Annotations[annotationNoConfig] != "" {
		cfg = config.DefaultConfig()
	} else {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	logger, err := SetupLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to setup logger: %w", err)
	}
	zapLogger = logger
	return nil
}

// SetConfig sets the configuration for commands
func SetConfig(config *config.Config) {
	cfg = config
}

func GetConfig() *config.Config {
	return cfg
}

// SetZapLogger sets the logger for commands
func SetZapLogger(log *zap.Logger) {
	zapLogger = log
}

// GetZapLogger never returns nil.
func GetZapLogger() *zap.Logger {
	if zapLogger == nil {
		return zap.NewNop()
	}
	return zapLogger
}

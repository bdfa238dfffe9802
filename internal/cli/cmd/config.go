package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/berrythewa/pastepal/internal/config"
)

// newConfigCmd creates the config command
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage PastePal configuration",
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigPathCmd())

	return cmd
}

func activeConfigPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	return config.GetActiveConfigPath()
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a default configuration file",
		Annotations: map[string]string{annotationNoConfig: "true"},
		Long:        `Write the default configuration and create the data, log and run
directories. An existing file is kept unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := activeConfigPath()
			if err != nil {
				return fmt.Errorf("failed to get active config path: %w", err)
			}

			if _, err := os.Stat(configPath); err == nil && !force {
				return fmt.Errorf("configuration already exists at %s\nUse --force to overwrite or 'pastepal config show' to view it", configPath)
			}

			defaults := config.DefaultConfig()
			GetZapLogger().Info("Initializing configuration", zap.String("config_path", configPath))

			if err := defaults.Save(configPath); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}
			if err := defaults.SystemPaths.EnsureDirs(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ Configuration initialized at: %s\n", configPath)
			fmt.Fprintf(out, "✓ Data directory: %s\n", defaults.SystemPaths.DataDir)
			fmt.Fprintf(out, "✓ History database: %s (%s)\n", defaults.Storage.Path, defaults.Storage.Backend)
			fmt.Fprintln(out, "\nTo start the daemon, run: pastepal daemon start")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing configuration")
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long:  `Show the configuration after defaults and PASTEPAL_* environment overrides.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if useJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(cfg)
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show where PastePal keeps its files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := activeConfigPath()
			if err != nil {
				return fmt.Errorf("failed to get active config path: %w", err)
			}

			paths := map[string]string{
				"config":  configPath,
				"data":    cfg.SystemPaths.DataDir,
				"storage": cfg.Storage.Path,
				"logs":    cfg.SystemPaths.LogDir,
				"socket":  cfg.IPC.SocketPath,
				"pidfile": cfg.SystemPaths.PIDFile,
			}
			if useJSON {
				return writeJSON(cmd.OutOrStdout(), paths)
			}

			out := cmd.OutOrStdout()
			for _, key := range []string{"config", "data", "storage", "logs", "socket", "pidfile"} {
				fmt.Fprintf(out, "%-8s %s\n", key+":", paths[key])
			}
			return nil
		},
	}
}

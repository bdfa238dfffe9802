// File: internal/config/config.go

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/berrythewa/pastepal/internal/activation"
	"github.com/berrythewa/pastepal/internal/clipboard"
	"github.com/berrythewa/pastepal/internal/storage"
)

// ConfigPaths holds all relevant paths for the application
type ConfigPaths struct {
	BaseDir      string `yaml:"base_dir"`      // Directory holding the config file
	ActiveConfig string `yaml:"active_config"` // Path to the config file
	DataDir      string `yaml:"data_dir"`      // Directory for application data
	DBFile       string `yaml:"db_file"`       // Default database path
	LogDir       string `yaml:"log_dir"`       // Directory for log files
	RunDir       string `yaml:"run_dir"`       // Socket and pidfile
	PIDFile      string `yaml:"pid_file"`
}

// Config holds all application configuration
type Config struct {
	SystemPaths ConfigPaths      `yaml:"-"` // derived from the environment on every load
	Log         LogConfig        `yaml:"log"`
	Storage     StorageConfig    `yaml:"storage"`
	Pasteboard  PasteboardConfig `yaml:"pasteboard"`
	Activation  ActivationConfig `yaml:"activation"`
	Search      SearchConfig     `yaml:"search"`
	IPC         IPCConfig        `yaml:"ipc"`
}

// LogConfig holds logging-related configuration
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "auto", "json" or "console"
	File   string `yaml:"file"`   // empty logs to stderr only
}

// StorageConfig selects the key-value substrate the history is saved to
type StorageConfig struct {
	Backend string `yaml:"backend"` // "bolt", "sqlite" or "memory"
	Path    string `yaml:"path"`
}

type PasteboardConfig struct {
	Backend string `yaml:"backend"` // "atotto", "native" or "memory"
}

// ActivationConfig controls what makes the daemon look at the pasteboard
type ActivationConfig struct {
	Mode         string        `yaml:"mode"` // "poll", "watch", "signal" or "manual"
	PollInterval time.Duration `yaml:"poll_interval"`
}

type SearchConfig struct {
	Locale string `yaml:"locale"` // BCP-47 tag, empty for locale-independent folding
}

type IPCConfig struct {
	SocketPath string `yaml:"socket_path"`
}

// GetConfigPaths returns the platform-specific configuration paths
func GetConfigPaths() (*ConfigPaths, error) {
	baseDir := os.Getenv("PASTEPAL_CONFIG_DIR")
	if baseDir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}

		switch runtime.GOOS {
		case "windows":
			baseDir = filepath.Join(configDir, "PastePal")
		case "darwin":
			baseDir = filepath.Join(configDir, "com.berrythewa.pastepal")
		default: // Linux and others
			baseDir = filepath.Join(configDir, "pastepal")
		}
	}

	dataDir := os.Getenv("PASTEPAL_DATA_DIR")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}

		switch runtime.GOOS {
		case "windows":
			if appData, err := os.UserConfigDir(); err == nil {
				dataDir = filepath.Join(appData, "PastePal", "Data")
			} else {
				dataDir = filepath.Join(homeDir, "AppData", "Local", "PastePal")
			}
		case "darwin":
			dataDir = filepath.Join(homeDir, "Library", "Application Support", "PastePal")
		default:
			if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
				dataDir = filepath.Join(xdgDataHome, "pastepal")
			} else {
				dataDir = filepath.Join(homeDir, ".pastepal")
			}
		}
	}

	runDir := filepath.Join(dataDir, "run")
	return &ConfigPaths{
		BaseDir:      baseDir,
		ActiveConfig: filepath.Join(baseDir, "config.yaml"),
		DataDir:      dataDir,
		DBFile:       filepath.Join(dataDir, "pastepal.db"),
		LogDir:       filepath.Join(dataDir, "logs"),
		RunDir:       runDir,
		PIDFile:      filepath.Join(runDir, "pastepal.pid"),
	}, nil
}

// EnsureDirs creates the data, log and run directories
func (p ConfigPaths) EnsureDirs() error {
	for _, dir := range []string{p.DataDir, p.LogDir, p.RunDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}

// DefaultConfig returns a new Config with default values
func DefaultConfig() *Config {
	paths, err := GetConfigPaths()
	if err != nil {
		// No home directory: fall back to the working directory.
		paths = &ConfigPaths{
			BaseDir:      ".pastepal",
			ActiveConfig: filepath.Join(".pastepal", "config.yaml"),
			DataDir:      ".pastepal",
			DBFile:       filepath.Join(".pastepal", "pastepal.db"),
			LogDir:       filepath.Join(".pastepal", "logs"),
			RunDir:       filepath.Join(".pastepal", "run"),
			PIDFile:      filepath.Join(".pastepal", "run", "pastepal.pid"),
		}
	}
	defaults := GetPlatformDefaults()

	return &Config{
		SystemPaths: *paths,
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
		Storage: StorageConfig{
			Backend: storage.BackendBolt,
			Path:    paths.DBFile,
		},
		Pasteboard: PasteboardConfig{
			Backend: defaults.PasteboardBackend,
		},
		Activation: ActivationConfig{
			Mode:         defaults.ActivationMode,
			PollInterval: defaults.PollInterval,
		},
		IPC: IPCConfig{
			SocketPath: filepath.Join(paths.RunDir, "pastepal.sock"),
		},
	}
}

// Load loads the configuration from the specified file or creates default if not exists
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		var err error
		configPath, err = GetActiveConfigPath()
		if err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := cfg.Save(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	overrideFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}
	return cfg, nil
}

// Save saves the configuration to the specified file
func (c *Config) Save(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate rejects unknown backends and modes
func (c *Config) Validate() error {
	var errs []error

	switch c.Storage.Backend {
	case storage.BackendBolt, storage.BackendSQLite, storage.BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown storage backend %q", c.Storage.Backend))
	}
	if c.Storage.Backend != storage.BackendMemory && c.Storage.Path == "" {
		errs = append(errs, errors.New("storage path is required"))
	}

	switch c.Pasteboard.Backend {
	case clipboard.BackendAtotto, clipboard.BackendNative, clipboard.BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown pasteboard backend %q", c.Pasteboard.Backend))
	}

	switch c.Activation.Mode {
	case activation.ModePoll, activation.ModeWatch, activation.ModeSignal, activation.ModeManual:
	default:
		errs = append(errs, fmt.Errorf("unknown activation mode %q", c.Activation.Mode))
	}
	if c.Activation.Mode == activation.ModePoll && c.Activation.PollInterval <= 0 {
		errs = append(errs, errors.New("poll_interval must be positive"))
	}
	if c.Activation.Mode == activation.ModeWatch && c.Pasteboard.Backend != clipboard.BackendNative {
		errs = append(errs, errors.New("watch activation requires the native pasteboard"))
	}

	if c.IPC.SocketPath == "" {
		errs = append(errs, errors.New("ipc socket_path is required"))
	}

	return errors.Join(errs...)
}

// GetActiveConfigPath returns the path to the currently active config
func GetActiveConfigPath() (string, error) {
	if path := os.Getenv("PASTEPAL_CONFIG"); path != "" {
		return path, nil
	}
	paths, err := GetConfigPaths()
	if err != nil {
		return "", err
	}
	return paths.ActiveConfig, nil
}

// overrideFromEnv overrides configuration values from environment variables
func overrideFromEnv(config *Config) {
	// Paths under the data dir follow it; the explicit overrides below still win.
	if os.Getenv("PASTEPAL_DATA_DIR") != "" {
		config.Storage.Path = config.SystemPaths.DBFile
		config.IPC.SocketPath = filepath.Join(config.SystemPaths.RunDir, "pastepal.sock")
	}
	if val := os.Getenv("PASTEPAL_LOG_LEVEL"); val != "" {
		config.Log.Level = val
	}
	if val := os.Getenv("PASTEPAL_LOG_FORMAT"); val != "" {
		config.Log.Format = val
	}
	if val := os.Getenv("PASTEPAL_STORAGE_BACKEND"); val != "" {
		config.Storage.Backend = val
	}
	if val := os.Getenv("PASTEPAL_STORAGE_PATH"); val != "" {
		config.Storage.Path = val
	}
	if val := os.Getenv("PASTEPAL_PASTEBOARD"); val != "" {
		config.Pasteboard.Backend = val
	}
	if val := os.Getenv("PASTEPAL_ACTIVATION_MODE"); val != "" {
		config.Activation.Mode = val
	}
	if val := os.Getenv("PASTEPAL_POLL_INTERVAL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			config.Activation.PollInterval = d
		} else if ms, err := strconv.ParseInt(val, 10, 64); err == nil {
			config.Activation.PollInterval = time.Duration(ms) * time.Millisecond
		}
	}
	if val := os.Getenv("PASTEPAL_SEARCH_LOCALE"); val != "" {
		config.Search.Locale = val
	}
	if val := os.Getenv("PASTEPAL_SOCKET"); val != "" {
		config.IPC.SocketPath = val
	}
}

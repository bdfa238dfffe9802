// Package daemon runs the clipboard history service behind the IPC socket.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/berrythewa/pastepal/internal/activation"
	"github.com/berrythewa/pastepal/internal/clipboard"
	"github.com/berrythewa/pastepal/internal/config"
	"github.com/berrythewa/pastepal/internal/ipc"
	"github.com/berrythewa/pastepal/internal/search"
	"github.com/berrythewa/pastepal/internal/storage"
	"github.com/berrythewa/pastepal/internal/store"
)

// EnvDaemon is set in the environment of a detached daemon process.
const EnvDaemon = "PASTEPAL_DAEMON"

// Daemon owns the store and everything it was built from.
type Daemon struct {
	cfg    *config.Config
	logger *zap.Logger

	kv    storage.KeyValueStore
	pb    clipboard.Pasteboard
	store *store.ClipboardStore
}

// New opens storage, the pasteboard and the activation sources and builds
// the store on top of them.
func New(cfg *config.Config, logger *zap.Logger) (*Daemon, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	kv, err := storage.Open(storage.StorageConfig{
		Backend: cfg.Storage.Backend,
		Path:    cfg.Storage.Path,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	d, err := newDaemon(cfg, logger, kv)
	if err != nil {
		kv.Close()
		return nil, err
	}
	return d, nil
}

func newDaemon(cfg *config.Config, logger *zap.Logger, kv storage.KeyValueStore) (*Daemon, error) {
	pb, err := clipboard.New(cfg.Pasteboard.Backend)
	if err != nil {
		return nil, fmt.Errorf("failed to open pasteboard: %w", err)
	}

	src, err := activation.New(activation.Options{
		Mode:         cfg.Activation.Mode,
		PollInterval: cfg.Activation.PollInterval,
		Pasteboard:   pb,
		Logger:       logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create activation source: %w", err)
	}

	matcher, err := search.NewMatcher(cfg.Search.Locale)
	if err != nil {
		return nil, err
	}

	st, err := store.New(pb, kv, src,
		store.WithLogger(logger),
		store.WithMatcher(matcher),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	logger.Info("Clipboard store ready",
		zap.Int("items", len(st.Items())),
		zap.String("storage", cfg.Storage.Backend),
		zap.String("pasteboard", cfg.Pasteboard.Backend),
		zap.String("activation", cfg.Activation.Mode))

	return &Daemon{
		cfg:    cfg,
		logger: logger,
		kv:     kv,
		pb:     pb,
		store:  st,
	}, nil
}

// Run claims the pidfile and serves IPC requests until ctx is done. The
// daemon is closed before Run returns.
func (d *Daemon) Run(ctx context.Context) error {
	defer d.Close()

	pidFile := d.cfg.SystemPaths.PIDFile
	if err := AcquirePIDFile(pidFile); err != nil {
		return err
	}
	defer func() {
		if err := RemovePIDFile(pidFile); err != nil {
			d.logger.Warn("Failed to remove pid file", zap.String("path", pidFile), zap.Error(err))
		}
	}()

	srv, err := ipc.Listen(d.cfg.IPC.SocketPath, NewHandler(d.store), d.logger)
	if err != nil {
		return err
	}

	d.logger.Info("Daemon running",
		zap.Int("pid", os.Getpid()),
		zap.String("socket", srv.Addr()))

	if err := srv.Serve(ctx); err != nil {
		return fmt.Errorf("IPC server error: %w", err)
	}

	d.logger.Info("Daemon shutting down")
	return nil
}

// Close unsubscribes the store from activations and closes storage.
func (d *Daemon) Close() error {
	var errs []error
	if err := d.store.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := d.kv.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close storage: %w", err))
	}
	return errors.Join(errs...)
}

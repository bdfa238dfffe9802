package activation

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Watcher is implemented by pasteboards that can report changes natively.
type Watcher interface {
	Watch(ctx context.Context) <-chan []byte
}

// Watch fires once per native pasteboard change notification.
type Watch struct {
	watcher Watcher
	logger  *zap.Logger
}

func NewWatch(w Watcher, logger *zap.Logger) *Watch {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watch{watcher: w, logger: logger}
}

func (w *Watch) Subscribe(h Handler) (Subscription, error) {
	ctx, cancel := context.WithCancel(context.Background())
	changes := w.watcher.Watch(ctx)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-changes:
				if !ok {
					return
				}
				h()
			}
		}
	}()

	w.logger.Info("Watching pasteboard for changes")

	return newSubscription(func() {
		cancel()
		wg.Wait()
	}), nil
}

//go:build !windows

package activation

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/zap"
)

// Signal fires whenever the process receives SIGUSR1, letting a launcher or
// hotkey daemon announce that the history UI came to the foreground.
type Signal struct {
	logger *zap.Logger
}

func NewSignal(logger *zap.Logger) *Signal {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Signal{logger: logger}
}

func (s *Signal) Subscribe(h Handler) (Subscription, error) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGUSR1)
	done := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			case <-ch:
				s.logger.Debug("Activation signal received")
				h()
			}
		}
	}()

	s.logger.Info("Listening for SIGUSR1 activations", zap.Int("pid", os.Getpid()))

	return newSubscription(func() {
		signal.Stop(ch)
		close(done)
		wg.Wait()
	}), nil
}

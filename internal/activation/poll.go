package activation

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/berrythewa/pastepal/internal/clipboard"
)

const DefaultPollInterval = 500 * time.Millisecond

// Poll reads the pasteboard on a fixed interval and fires whenever the text
// differs from what the previous tick saw. It stands in for the desktop
// "application became active" notification when running headless.
type Poll struct {
	pasteboard clipboard.Pasteboard
	interval   time.Duration
	logger     *zap.Logger
}

func NewPoll(pb clipboard.Pasteboard, interval time.Duration, logger *zap.Logger) *Poll {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poll{pasteboard: pb, interval: interval, logger: logger}
}

func (p *Poll) Subscribe(h Handler) (Subscription, error) {
	if p.pasteboard == nil {
		return nil, errors.New("poll activation needs a pasteboard")
	}

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		p.run(ctx, h)
	}()

	p.logger.Info("Polling pasteboard for activations", zap.Duration("interval", p.interval))

	return newSubscription(func() {
		cancel()
		wg.Wait()
	}), nil
}

func (p *Poll) run(ctx context.Context, h Handler) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	var last string
	var seen bool
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		text, err := p.pasteboard.ReadString()
		if err != nil {
			if !errors.Is(err, clipboard.ErrNoString) {
				p.logger.Debug("Error reading pasteboard", zap.Error(err))
			}
			continue
		}
		if seen && text == last {
			continue
		}
		last, seen = text, true
		h()
	}
}

// Package activation delivers the payload-less "look at the pasteboard now"
// signal the history store reacts to.
package activation

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/berrythewa/pastepal/internal/clipboard"
)

// Modes accepted by New.
const (
	ModePoll   = "poll"
	ModeWatch  = "watch"
	ModeSignal = "signal"
	ModeManual = "manual"
)

// Handler is invoked once per activation.
type Handler func()

// Source delivers activations to its subscribers.
type Source interface {
	Subscribe(h Handler) (Subscription, error)
}

// Subscription is released with Unsubscribe. Calling it more than once is
// harmless.
type Subscription interface {
	Unsubscribe()
}

type funcSubscription struct {
	once sync.Once
	fn   func()
}

func (s *funcSubscription) Unsubscribe() {
	s.once.Do(s.fn)
}

func newSubscription(fn func()) Subscription {
	return &funcSubscription{fn: fn}
}

// Options configures New.
type Options struct {
	Mode         string
	PollInterval time.Duration
	Pasteboard   clipboard.Pasteboard
	Logger       *zap.Logger
}

// New builds the source for opts.Mode.
func New(opts Options) (Source, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	switch opts.Mode {
	case "", ModePoll:
		return NewPoll(opts.Pasteboard, opts.PollInterval, logger), nil
	case ModeWatch:
		w, ok := opts.Pasteboard.(Watcher)
		if !ok {
			return nil, fmt.Errorf("pasteboard %T cannot watch for changes", opts.Pasteboard)
		}
		return NewWatch(w, logger), nil
	case ModeSignal:
		return NewSignal(logger), nil
	case ModeManual:
		return NewManual(), nil
	default:
		return nil, fmt.Errorf("unknown activation mode %q", opts.Mode)
	}
}

//go:build windows

package activation

import (
	"errors"

	"go.uber.org/zap"
)

// Signal is unavailable on Windows, which has no SIGUSR1.
type Signal struct{}

func NewSignal(logger *zap.Logger) *Signal {
	return &Signal{}
}

func (s *Signal) Subscribe(h Handler) (Subscription, error) {
	return nil, errors.New("signal activation is not supported on windows")
}

package activation

import "sync"

// Manual fires only when Trigger is called.
type Manual struct {
	mu       sync.Mutex
	next     int
	handlers map[int]Handler
}

func NewManual() *Manual {
	return &Manual{handlers: make(map[int]Handler)}
}

func (m *Manual) Subscribe(h Handler) (Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.next
	m.next++
	m.handlers[id] = h

	return newSubscription(func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.handlers, id)
	}), nil
}

// Trigger runs every current subscriber synchronously and returns how many
// were notified.
func (m *Manual) Trigger() int {
	m.mu.Lock()
	handlers := make([]Handler, 0, len(m.handlers))
	for _, h := range m.handlers {
		handlers = append(handlers, h)
	}
	m.mu.Unlock()

	for _, h := range handlers {
		h()
	}
	return len(handlers)
}

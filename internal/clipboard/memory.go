package clipboard

import "sync"

var _ Pasteboard = (*Memory)(nil)

// Memory is an in-process pasteboard. It backs tests and ephemeral runs.
type Memory struct {
	mu     sync.Mutex
	text   string
	has    bool
	writes int
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) ReadString() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.has {
		return "", ErrNoString
	}
	return m.text, nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text, m.has = "", false
	return nil
}

func (m *Memory) WriteString(s string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text, m.has = s, true
	m.writes++
	return nil
}

// Writes returns how many times WriteString was called.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

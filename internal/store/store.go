// Package store holds the clipboard history: an ordered, content-deduplicated
// list of text snippets, the live search query and the filtered view derived
// from both. Every mutation persists the full list and recomputes the view
// before returning.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/berrythewa/pastepal/internal/activation"
	"github.com/berrythewa/pastepal/internal/clipboard"
	"github.com/berrythewa/pastepal/internal/search"
	"github.com/berrythewa/pastepal/internal/storage"
	"github.com/berrythewa/pastepal/internal/types"
)

// StorageKey is the key the history is persisted under.
const StorageKey = "clipboardItems"

var (
	// ErrItemNotFound is returned by Get and Resolve for unknown ids.
	ErrItemNotFound = errors.New("clipboard item not found")
	// ErrAmbiguousID is returned by Resolve when a prefix matches several items.
	ErrAmbiguousID = errors.New("ambiguous clipboard item id")
)

// ClipboardStore is safe for concurrent use; mutations are serialised.
type ClipboardStore struct {
	mu            sync.Mutex
	items         []types.ClipboardItem
	filteredItems []types.ClipboardItem
	searchQuery   string

	pasteboard clipboard.Pasteboard
	kv         storage.KeyValueStore
	matcher    *search.Matcher
	logger     *zap.Logger
	now        func() time.Time

	sub       activation.Subscription
	closeOnce sync.Once
}

// Option customises a ClipboardStore.
type Option func(*ClipboardStore)

func WithLogger(logger *zap.Logger) Option {
	return func(s *ClipboardStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *ClipboardStore) { s.now = now }
}

func WithMatcher(m *search.Matcher) Option {
	return func(s *ClipboardStore) { s.matcher = m }
}

// New builds the store, loads the persisted history and subscribes to src.
// src may be nil when nothing should trigger pasteboard reads.
func New(pb clipboard.Pasteboard, kv storage.KeyValueStore, src activation.Source, opts ...Option) (*ClipboardStore, error) {
	s := &ClipboardStore{
		pasteboard: pb,
		kv:         kv,
		logger:     zap.NewNop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.matcher == nil {
		m, err := search.NewMatcher("")
		if err != nil {
			return nil, err
		}
		s.matcher = m
	}

	s.mu.Lock()
	s.loadAll()
	s.mu.Unlock()

	if src != nil {
		sub, err := src.Subscribe(s.HandleActivation)
		if err != nil {
			return nil, fmt.Errorf("failed to subscribe to activations: %w", err)
		}
		s.sub = sub
	}

	return s, nil
}

// Close releases the activation subscription. It does not close the
// pasteboard or the key-value store, which the caller owns.
func (s *ClipboardStore) Close() error {
	s.closeOnce.Do(func() {
		if s.sub != nil {
			s.sub.Unsubscribe()
		}
	})
	return nil
}

// AddOrTouch records content. Known content gets a fresh timestamp, the new
// provenance (even when empty) and moves to the front; unknown content is
// inserted at the front with a new id. The recorded item is returned.
func (s *ClipboardStore) AddOrTouch(content, copiedFrom string) types.ClipboardItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addOrTouch(content, copiedFrom)
}

func (s *ClipboardStore) addOrTouch(content, copiedFrom string) types.ClipboardItem {
	now := s.now()

	var item types.ClipboardItem
	idx := s.indexOfContent(content)
	if idx >= 0 {
		item = s.items[idx]
		item.Timestamp = now
		item.CopiedFrom = copiedFrom
		s.items = moveToFront(s.items, idx, item)
		s.logger.Debug("Touched clipboard item", zap.String("id", item.ID))
	} else {
		item = types.NewClipboardItem(content, copiedFrom, now)
		s.items = append([]types.ClipboardItem{item}, s.items...)
		s.logger.Debug("Added clipboard item", zap.String("id", item.ID), zap.Int("bytes", item.Size()))
	}

	s.saveAll()
	s.applySearchFilter()
	return item
}

// CopyToClipboard replaces the pasteboard contents with content. The history
// is not modified.
func (s *ClipboardStore) CopyToClipboard(content string) error {
	if err := s.pasteboard.Clear(); err != nil {
		return fmt.Errorf("failed to clear pasteboard: %w", err)
	}
	if err := s.pasteboard.WriteString(content); err != nil {
		return fmt.Errorf("failed to write pasteboard: %w", err)
	}
	return nil
}

// Delete removes the item with the same ID as item, if any.
func (s *ClipboardStore) Delete(item types.ClipboardItem) {
	s.DeleteID(item.ID)
}

// DeleteID removes the item with the given id and reports whether one was
// found. Unknown ids are not an error.
func (s *ClipboardStore) DeleteID(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfID(id)
	if idx < 0 {
		return false
	}
	s.items = append(s.items[:idx:idx], s.items[idx+1:]...)

	s.saveAll()
	s.applySearchFilter()
	return true
}

// Clear empties the history.
func (s *ClipboardStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.saveAll()
	s.applySearchFilter()
}

// SetSearchQuery changes the filter applied to FilteredItems.
func (s *ClipboardStore) SetSearchQuery(query string) {
	s.ApplySearchQuery(query)
}

// ApplySearchQuery sets the search query and returns the resulting filtered
// view in one step.
func (s *ClipboardStore) ApplySearchQuery(query string) []types.ClipboardItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.searchQuery = query
	s.applySearchFilter()
	return clone(s.filteredItems)
}

// HandleActivation reads the pasteboard and records its text, if any. The
// filtered view is refreshed either way.
func (s *ClipboardStore) HandleActivation() {
	s.Activate()
}

// Activate is HandleActivation reporting what was recorded. ok is false when
// the pasteboard held no string.
func (s *ClipboardStore) Activate() (item types.ClipboardItem, ok bool) {
	text, err := s.pasteboard.ReadString()
	if err != nil && !errors.Is(err, clipboard.ErrNoString) {
		s.logger.Warn("Failed to read pasteboard", zap.Error(err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err == nil {
		item, ok = s.addOrTouch(text, ""), true
	}
	s.applySearchFilter()
	return item, ok
}

func (s *ClipboardStore) SearchQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchQuery
}

// Items returns a copy of the history, most recently updated first.
func (s *ClipboardStore) Items() []types.ClipboardItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.items)
}

// FilteredItems returns a copy of the items matching the search query.
func (s *ClipboardStore) FilteredItems() []types.ClipboardItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.filteredItems)
}

// Search filters the history by query without touching the store's own
// search query.
func (s *ClipboardStore) Search(query string) []types.ClipboardItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.matcher.Filter(s.items, query))
}

// Get returns the item with the given id.
func (s *ClipboardStore) Get(id string) (types.ClipboardItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfID(id)
	if idx < 0 {
		return types.ClipboardItem{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	return s.items[idx], nil
}

// Resolve finds the item whose id is, or starts with, ref. A prefix matching
// more than one item is rejected.
func (s *ClipboardStore) Resolve(ref string) (types.ClipboardItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ref == "" {
		return types.ClipboardItem{}, fmt.Errorf("%w: empty id", ErrItemNotFound)
	}
	if idx := s.indexOfID(ref); idx >= 0 {
		return s.items[idx], nil
	}

	found := -1
	for i, item := range s.items {
		if !strings.HasPrefix(item.ID, ref) {
			continue
		}
		if found >= 0 {
			return types.ClipboardItem{}, fmt.Errorf("%w: %s", ErrAmbiguousID, ref)
		}
		found = i
	}
	if found < 0 {
		return types.ClipboardItem{}, fmt.Errorf("%w: %s", ErrItemNotFound, ref)
	}
	return s.items[found], nil
}

func (s *ClipboardStore) Stats() types.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return types.ComputeStats(s.items)
}

// applySearchFilter must run last in every mutation, with mu held.
func (s *ClipboardStore) applySearchFilter() {
	s.filteredItems = s.matcher.Filter(s.items, s.searchQuery)
}

// saveAll persists the whole history. Failures are logged and dropped; the
// in-memory list stays authoritative until the next attempt.
func (s *ClipboardStore) saveAll() {
	items := s.items
	if items == nil {
		items = []types.ClipboardItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		s.logger.Warn("Failed to encode clipboard items", zap.Error(err))
		return
	}
	if err := s.kv.Set(StorageKey, data); err != nil {
		s.logger.Warn("Failed to save clipboard items", zap.Error(err))
	}
}

// loadAll replaces the history with the persisted one. Missing or unreadable
// data leaves the history empty.
func (s *ClipboardStore) loadAll() {
	defer s.applySearchFilter()

	data, err := s.kv.Get(StorageKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("Failed to read saved clipboard items", zap.Error(err))
		}
		return
	}

	var items []types.ClipboardItem
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn("Ignoring unreadable clipboard items", zap.Error(err))
		return
	}
	s.items = items
	s.logger.Info("Loaded clipboard history", zap.Int("items", len(items)))
}

func (s *ClipboardStore) indexOfContent(content string) int {
	for i, item := range s.items {
		if item.Content == content {
			return i
		}
	}
	return -1
}

func (s *ClipboardStore) indexOfID(id string) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// moveToFront places item at index 0, shifting items[:idx] back by one.
func moveToFront(items []types.ClipboardItem, idx int, item types.ClipboardItem) []types.ClipboardItem {
	copy(items[1:idx+1], items[:idx])
	items[0] = item
	return items
}

func clone(items []types.ClipboardItem) []types.ClipboardItem {
	out := make([]types.ClipboardItem, len(items))
	copy(out, items)
	return out
}

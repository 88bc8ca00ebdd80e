// Package memory provides an in-memory audit store for tests and for
// embedders that have no durable sink. It implements audit.Emitter.
package memory

import (
	"context"
	"sync"

	"doctrine/pkg/platform/audit"
)

// Store keeps emitted events grouped by action, insertion-ordered.
type Store struct {
	mu     sync.RWMutex
	events map[string][]audit.Event
	order  []audit.Event
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{events: make(map[string][]audit.Event)}
}

// Emit records the event. It never fails.
func (s *Store) Emit(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.Action] = append(s.events[event.Action], event)
	s.order = append(s.order, event)
	return nil
}

// ListByAction returns the recorded events for one action.
func (s *Store) ListByAction(_ context.Context, action string) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event{}, s.events[action]...), nil
}

// ListAll returns every recorded event in emission order.
func (s *Store) ListAll(_ context.Context) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event{}, s.order...), nil
}

// ListRecent returns the most recent events, up to limit.
func (s *Store) ListRecent(_ context.Context, limit int) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	start := len(s.order) - limit
	if start < 0 {
		start = 0
	}
	return append([]audit.Event{}, s.order[start:]...), nil
}

// Clear drops every recorded event.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = make(map[string][]audit.Event)
	s.order = nil
}

// Package memory keeps snapshots and events in process. It backs the server
// when no database is configured and the repository fakes in tests.
package memory

import (
	"context"
	"sync"

	"starweave/internal/app/ports"
	"starweave/internal/domain/world"
)

type Store struct {
	mu        sync.RWMutex
	snapshots map[string][]world.GameWorld
	events    map[string][]world.GameEvent
}

func NewStore() *Store {
	return &Store{
		snapshots: make(map[string][]world.GameWorld),
		events:    make(map[string][]world.GameEvent),
	}
}

func (s *Store) SaveSnapshot(_ context.Context, w world.GameWorld) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[w.ID] = append(s.snapshots[w.ID], w.Clone())
	return nil
}

func (s *Store) LoadSnapshot(_ context.Context, worldID string) (world.GameWorld, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	saved := s.snapshots[worldID]
	if len(saved) == 0 {
		return world.GameWorld{}, ports.ErrNotFound
	}
	return saved[len(saved)-1].Clone(), nil
}

func (s *Store) Append(_ context.Context, worldID string, events []world.GameEvent) error {
	if len(events) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[worldID] = append(s.events[worldID], events...)
	return nil
}

func (s *Store) ListByWorld(_ context.Context, worldID string, limit int, fromTick, toTick int64) ([]world.GameEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]world.GameEvent, 0, limit)
	for _, e := range s.events[worldID] {
		if fromTick > 0 && e.Tick < fromTick {
			continue
		}
		if toTick > 0 && e.Tick > toTick {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// RunInTx satisfies the transaction port. The store has no transactions, so
// fn runs against the store directly.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

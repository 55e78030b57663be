package memory

import (
	"context"
	"sync"

	"github.com/mcoot/playerbase/internal/model"
	"github.com/mcoot/playerbase/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players map[model.PlayerID]*model.Player
	lastID  model.PlayerID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players: make(map[model.PlayerID]*model.Player),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) CreatePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastID++
	player.ID = s.lastID
	s.players[player.ID] = player.Clone()
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player.Clone(), nil
}

func (s *Storage) UpdatePlayer(ctx context.Context, id model.PlayerID, fn func(*model.Player) error) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}

	// Work on a copy so a failing fn leaves the stored record untouched
	updated := current.Clone()
	if err := fn(updated); err != nil {
		return nil, err
	}
	updated.ID = id
	s.players[id] = updated
	return updated.Clone(), nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[id]; !ok {
		return false, nil
	}
	delete(s.players, id)
	return true, nil
}

func (s *Storage) ListPlayers(ctx context.Context, filter model.Filter, page model.Page) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	selected := storage.Select(s.snapshot(), filter, page)
	result := make([]*model.Player, len(selected))
	for i, p := range selected {
		result[i] = p.Clone()
	}
	return result, nil
}

func (s *Storage) CountPlayers(ctx context.Context, filter model.Filter) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return storage.Count(s.snapshot(), filter), nil
}

// Close is a no-op for in-memory storage
func (s *Storage) Close() error {
	return nil
}

// snapshot must be called with the lock held
func (s *Storage) snapshot() []*model.Player {
	all := make([]*model.Player, 0, len(s.players))
	for _, p := range s.players {
		all = append(all, p)
	}
	return all
}

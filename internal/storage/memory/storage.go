package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Matches are copied on the way in and out.
type Storage struct {
	mu      sync.RWMutex
	matches map[model.MatchID]*model.Match
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		matches: make(map[model.MatchID]*model.Match),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveMatch(ctx context.Context, match *model.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches[match.ID] = match.Clone()
	return nil
}

func (s *Storage) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	match, ok := s.matches[id]
	if !ok {
		return nil, model.ErrMatchNotFound
	}
	return match.Clone(), nil
}

func (s *Storage) DeleteMatch(ctx context.Context, id model.MatchID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.matches, id)
	return nil
}

func (s *Storage) ListMatches(ctx context.Context) ([]*model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*model.Match, 0, len(s.matches))
	for _, m := range s.matches {
		result = append(result, m.Clone())
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

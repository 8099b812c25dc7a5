package storage

import (
	"context"

	"github.com/mcoot/tictactoe-go/internal/model"
)

// Storage holds match snapshots for the lifetime of the process
type Storage interface {
	SaveMatch(ctx context.Context, match *model.Match) error
	GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error)
	DeleteMatch(ctx context.Context, id model.MatchID) error
	// ListMatches returns every stored match ordered by creation time
	ListMatches(ctx context.Context) ([]*model.Match, error)
}

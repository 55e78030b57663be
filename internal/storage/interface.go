package storage

import (
	"context"

	"github.com/mcoot/playerbase/internal/model"
)

// Storage defines the interface for player persistence.
// Implementations must be safe for concurrent use.
type Storage interface {
	// CreatePlayer stores a new player and assigns its ID
	CreatePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	// UpdatePlayer loads the player, applies fn and stores the result atomically.
	// If fn returns an error nothing is written.
	UpdatePlayer(ctx context.Context, id model.PlayerID, fn func(*model.Player) error) (*model.Player, error)
	// DeletePlayer reports whether a player was removed
	DeletePlayer(ctx context.Context, id model.PlayerID) (bool, error)

	// ListPlayers returns one page of the players matching filter, sorted by
	// page.Order ascending with ID as the tie-breaker
	ListPlayers(ctx context.Context, filter model.Filter, page model.Page) ([]*model.Player, error)
	CountPlayers(ctx context.Context, filter model.Filter) (int, error)

	Close() error
}

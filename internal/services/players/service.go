package players

import (
	"context"
	"log/slog"
	"time"

	"github.com/mcoot/playerbase/internal/model"
	"github.com/mcoot/playerbase/internal/storage"
	"github.com/mcoot/playerbase/internal/validator"
)

// Service manages the player lifecycle on top of a storage backend.
// Input is validated here so every transport gets the same rules.
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new player Service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger.With(slog.String("component", "player-service")),
	}
}

// List returns one page of players matching filter
func (s *Service) List(ctx context.Context, filter model.Filter, page model.Page) ([]*model.Player, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}

	players, err := s.storage.ListPlayers(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	if players == nil {
		players = []*model.Player{}
	}
	return players, nil
}

// Count returns how many players match filter, ignoring paging
func (s *Service) Count(ctx context.Context, filter model.Filter) (int, error) {
	return s.storage.CountPlayers(ctx, filter)
}

// Create validates the input and stores a new player.
// Banned defaults to false when not supplied.
func (s *Service) Create(ctx context.Context, in model.PlayerInput) (*model.Player, error) {
	if err := validator.ValidateCreate(in); err != nil {
		return nil, err
	}

	player := &model.Player{}
	in.ApplyTo(player)
	player.Birthday = normalizeBirthday(player.Birthday)

	if err := s.storage.CreatePlayer(ctx, player); err != nil {
		s.logger.Error("failed to create player",
			slog.String("name", player.Name),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("player created",
		slog.Int64("player_id", int64(player.ID)),
		slog.String("name", player.Name),
		slog.Int("level", player.Level),
	)

	return player, nil
}

// Get retrieves a player by ID
func (s *Service) Get(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	if id < 1 {
		return nil, model.ErrInvalidPlayerID
	}
	return s.storage.GetPlayer(ctx, id)
}

// Update applies the supplied fields to an existing player.
// An empty input returns the stored player unchanged.
func (s *Service) Update(ctx context.Context, id model.PlayerID, in model.PlayerInput) (*model.Player, error) {
	if id < 1 {
		return nil, model.ErrInvalidPlayerID
	}
	if err := validator.ValidateUpdate(in); err != nil {
		return nil, err
	}
	if in.IsEmpty() {
		return s.storage.GetPlayer(ctx, id)
	}

	updated, err := s.storage.UpdatePlayer(ctx, id, func(p *model.Player) error {
		in.ApplyTo(p)
		p.Birthday = normalizeBirthday(p.Birthday)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("player updated",
		slog.Int64("player_id", int64(id)),
		slog.Int("level", updated.Level),
	)

	return updated, nil
}

// Delete removes a player, reporting whether one existed
func (s *Service) Delete(ctx context.Context, id model.PlayerID) (bool, error) {
	if id < 1 {
		return false, model.ErrInvalidPlayerID
	}

	deleted, err := s.storage.DeletePlayer(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.logger.Info("player deleted", slog.Int64("player_id", int64(id)))
	}
	return deleted, nil
}

// normalizeBirthday truncates to the millisecond precision every backend stores
func normalizeBirthday(t time.Time) time.Time {
	return time.UnixMilli(t.UnixMilli()).UTC()
}

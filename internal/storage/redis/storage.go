package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/playerbase/internal/model"
	"github.com/mcoot/playerbase/internal/storage"
)

// ErrUpdateConflict is returned when an update keeps losing the optimistic
// lock to concurrent writers
var ErrUpdateConflict = errors.New("player was modified concurrently, retries exhausted")

// Storage is a Redis-backed implementation of the storage interface.
// Each player is a JSON value; a SET indexes the stored IDs so listings can
// MGET every record and filter them in process.
type Storage struct {
	client *redis.Client
	cfg    Config
	keys   keys
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultConfig().KeyPrefix
	}
	if cfg.MaxUpdateRetries <= 0 {
		cfg.MaxUpdateRetries = DefaultConfig().MaxUpdateRetries
	}
	return &Storage{
		client: client,
		cfg:    cfg,
		keys:   keys{prefix: cfg.KeyPrefix},
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ping checks the Redis connection
func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) CreatePlayer(ctx context.Context, player *model.Player) error {
	id, err := s.client.Incr(ctx, s.keys.nextID()).Result()
	if err != nil {
		return fmt.Errorf("allocate player id: %w", err)
	}
	player.ID = model.PlayerID(id)

	data, err := encodePlayer(player)
	if err != nil {
		return err
	}

	// Record and index are written together
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.keys.player(player.ID), data, 0)
		pipe.SAdd(ctx, s.keys.playerIndex(), int64(player.ID))
		return nil
	})
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return s.getPlayer(ctx, s.client, id)
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *Storage) getPlayer(ctx context.Context, c getter, id model.PlayerID) (*model.Player, error) {
	data, err := c.Get(ctx, s.keys.player(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	return decodePlayer(data)
}

func (s *Storage) UpdatePlayer(ctx context.Context, id model.PlayerID, fn func(*model.Player) error) (*model.Player, error) {
	key := s.keys.player(id)
	var updated *model.Player

	txf := func(tx *redis.Tx) error {
		player, err := s.getPlayer(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := fn(player); err != nil {
			return err
		}
		player.ID = id

		data, err := encodePlayer(player)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		if err != nil {
			return err
		}
		updated = player
		return nil
	}

	for range s.cfg.MaxUpdateRetries {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return updated, nil
	}
	return nil, ErrUpdateConflict
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) (bool, error) {
	var del *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, s.keys.player(id))
		pipe.SRem(ctx, s.keys.playerIndex(), int64(id))
		return nil
	})
	if err != nil {
		return false, err
	}
	return del.Val() > 0, nil
}

func (s *Storage) ListPlayers(ctx context.Context, filter model.Filter, page model.Page) ([]*model.Player, error) {
	all, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	return storage.Select(all, filter, page), nil
}

func (s *Storage) CountPlayers(ctx context.Context, filter model.Filter) (int, error) {
	all, err := s.loadAll(ctx)
	if err != nil {
		return 0, err
	}
	return storage.Count(all, filter), nil
}

// loadAll fetches every indexed player with a single MGET
func (s *Storage) loadAll(ctx context.Context) ([]*model.Player, error) {
	members, err := s.client.SMembers(ctx, s.keys.playerIndex()).Result()
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return []*model.Player{}, nil
	}

	playerKeys := make([]string, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			continue // Skip foreign index entries
		}
		playerKeys = append(playerKeys, s.keys.player(model.PlayerID(id)))
	}

	values, err := s.client.MGet(ctx, playerKeys...).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(values))
	for _, val := range values {
		str, ok := val.(string)
		if !ok {
			continue // Deleted between SMEMBERS and MGET
		}
		player, err := decodePlayer([]byte(str))
		if err != nil {
			return nil, fmt.Errorf("decode player: %w", err)
		}
		players = append(players, player)
	}
	return players, nil
}

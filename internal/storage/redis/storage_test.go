package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/playerbase/internal/model"
	"github.com/mcoot/playerbase/internal/storage"
	"github.com/mcoot/playerbase/internal/storage/storagetest"
)

type StorageSuite struct {
	storagetest.Suite
	mini *miniredis.Miniredis
}

func TestStorageSuite(t *testing.T) {
	s := &StorageSuite{}
	s.Open = func(t *testing.T) storage.Storage {
		s.mini = miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{
			Addr: s.mini.Addr(),
		})
		return NewWithClient(client, DefaultConfig())
	}
	suite.Run(t, s)
}

func (s *StorageSuite) redisStorage() *Storage {
	return s.Storage.(*Storage)
}

func (s *StorageSuite) TestCreateWritesRecordAndIndex() {
	players := s.Seed()
	id := players[0].ID

	s.True(s.mini.Exists("playerbase:player:1"))
	isMember, err := s.mini.SIsMember("playerbase:idx:players", "1")
	s.Require().NoError(err)
	s.True(isMember)

	raw, err := s.mini.Get("playerbase:player:1")
	s.Require().NoError(err)
	s.Contains(raw, `"name":"Ragnar"`)
	s.Contains(raw, `"birthday":1109635200000`)
	s.NotContains(raw, "level")
	s.Equal(model.PlayerID(1), id)
}

func (s *StorageSuite) TestDeleteRemovesIndexEntry() {
	s.Seed()

	deleted, err := s.Storage.DeletePlayer(s.Ctx, 1)
	s.Require().NoError(err)
	s.True(deleted)

	s.False(s.mini.Exists("playerbase:player:1"))
	isMember, err := s.mini.SIsMember("playerbase:idx:players", "1")
	s.Require().NoError(err)
	s.False(isMember)
}

func (s *StorageSuite) TestListSkipsDanglingIndexEntries() {
	s.Seed()
	// Simulate a record removed outside the store
	s.mini.Del("playerbase:player:2")

	count, err := s.Storage.CountPlayers(s.Ctx, model.Filter{})
	s.Require().NoError(err)
	s.Equal(7, count)
}

func (s *StorageSuite) TestCustomKeyPrefix() {
	client := redis.NewClient(&redis.Options{Addr: s.mini.Addr()})
	cfg := DefaultConfig()
	cfg.KeyPrefix = "other"
	other := NewWithClient(client, cfg)
	defer func() { _ = other.Close() }()

	p := &model.Player{Name: "Frodo", Birthday: time.Date(2002, 1, 1, 0, 0, 0, 0, time.UTC)}
	s.Require().NoError(other.CreatePlayer(context.Background(), p))

	s.True(s.mini.Exists("other:player:1"))
	count, err := s.redisStorage().CountPlayers(s.Ctx, model.Filter{})
	s.Require().NoError(err)
	s.Zero(count)
}

func (s *StorageSuite) TestNewRejectsBadURL() {
	_, err := New(Config{URL: "not-a-url"})
	s.Error(err)
}

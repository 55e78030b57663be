package memory

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/playerbase/internal/model"
	"github.com/mcoot/playerbase/internal/storage"
	"github.com/mcoot/playerbase/internal/storage/storagetest"
)

type StorageSuite struct {
	storagetest.Suite
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, &StorageSuite{
		Suite: storagetest.Suite{
			Open: func(t *testing.T) storage.Storage { return New() },
		},
	})
}

func (s *StorageSuite) TestCreateDoesNotAliasCallerPlayer() {
	p := &model.Player{Name: "Frodo", Birthday: time.Date(2002, 1, 1, 0, 0, 0, 0, time.UTC)}
	s.Require().NoError(s.Storage.CreatePlayer(s.Ctx, p))
	p.Name = "Sam"

	got, err := s.Storage.GetPlayer(s.Ctx, p.ID)
	s.Require().NoError(err)
	s.Equal("Frodo", got.Name)
}

func (s *StorageSuite) TestConcurrentCreatesGetDistinctIDs() {
	const n = 50
	var wg sync.WaitGroup
	created := make([]*model.Player, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := &model.Player{Name: "Orc"}
			_ = s.Storage.CreatePlayer(s.Ctx, p)
			created[i] = p
		}()
	}
	wg.Wait()

	seen := make(map[model.PlayerID]bool, n)
	for _, p := range created {
		s.False(seen[p.ID], "duplicate id %d", p.ID)
		seen[p.ID] = true
	}

	count, err := s.Storage.CountPlayers(s.Ctx, model.Filter{})
	s.Require().NoError(err)
	s.Equal(n, count)
}

package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/playerbase/internal/model"
	"github.com/mcoot/playerbase/internal/testutil"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

func (s *IntegrationSuite) input(name string, race model.Race, exp int) model.PlayerInput {
	return model.PlayerInput{
		Name:       testutil.Ptr(name),
		Title:      testutil.Ptr("the " + name),
		Race:       testutil.Ptr(race),
		Profession: testutil.Ptr(model.ProfessionWarrior),
		Birthday:   testutil.Ptr(time.Date(2010, time.May, 5, 0, 0, 0, 0, time.UTC)),
		Experience: testutil.Ptr(exp),
	}
}

// Test: full player lifecycle from creation to deletion
func (s *IntegrationSuite) TestPlayerLifecycle() {
	svc := s.app.PlayerService

	// Step 1: Create a player
	created, err := svc.Create(s.ctx, s.input("Thorin", model.RaceDwarf, 300))
	s.Require().NoError(err)
	s.Equal(model.PlayerID(1), created.ID)
	s.Equal(2, created.Level)
	s.Equal(300, created.UntilNextLevel)
	s.False(created.Banned)

	// Step 2: It is visible through get, list and count
	got, err := svc.Get(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(created, got)

	race := model.RaceDwarf
	list, err := svc.List(s.ctx, model.Filter{Race: &race}, model.DefaultPage())
	s.Require().NoError(err)
	s.Len(list, 1)

	count, err := svc.Count(s.ctx, model.Filter{Race: &race})
	s.Require().NoError(err)
	s.Equal(1, count)

	// Step 3: Level up and ban
	updated, err := svc.Update(s.ctx, created.ID, model.PlayerInput{
		Experience: testutil.Ptr(1000),
		Banned:     testutil.Ptr(true),
	})
	s.Require().NoError(err)
	s.Equal(4, updated.Level)
	s.Equal(500, updated.UntilNextLevel)
	s.True(updated.Banned)
	s.Equal("Thorin", updated.Name)

	// Step 4: Filters follow the new state
	minLevel := 4
	count, err = svc.Count(s.ctx, model.Filter{MinLevel: &minLevel})
	s.Require().NoError(err)
	s.Equal(1, count)

	// Step 5: Delete
	deleted, err := svc.Delete(s.ctx, created.ID)
	s.Require().NoError(err)
	s.True(deleted)

	_, err = svc.Get(s.ctx, created.ID)
	s.ErrorIs(err, model.ErrPlayerNotFound)

	count, err = svc.Count(s.ctx, model.Filter{})
	s.Require().NoError(err)
	s.Zero(count)
}

// Test: paging over a larger roster in every order
func (s *IntegrationSuite) TestPagingCoversEveryPlayerOnce() {
	for i, name := range []string{"Eowyn", "Boromir", "Faramir", "Denethor", "Theoden", "Eomer", "Merry"} {
		_, err := s.app.PlayerService.Create(s.ctx, s.input(name, model.RaceHuman, i*700))
		s.Require().NoError(err)
	}

	for _, order := range []model.PlayerOrder{model.OrderID, model.OrderName, model.OrderLevel} {
		seen := map[model.PlayerID]bool{}
		for number := 0; ; number++ {
			page := model.Page{Order: order, Number: number, Size: 3}
			players, err := s.app.PlayerService.List(s.ctx, model.Filter{}, page)
			s.Require().NoError(err)
			if len(players) == 0 {
				break
			}
			for _, p := range players {
				s.False(seen[p.ID], "order %s repeated player %d", order, p.ID)
				seen[p.ID] = true
			}
		}
		s.Len(seen, 7, "order %s", order)
	}
}

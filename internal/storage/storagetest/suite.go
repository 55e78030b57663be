// Package storagetest holds a conformance suite every storage backend runs.
package storagetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/playerbase/internal/model"
	"github.com/mcoot/playerbase/internal/storage"
)

// Suite exercises the storage.Storage contract.
// Backends embed it and set Open, which must return an empty store.
type Suite struct {
	suite.Suite
	Open func(t *testing.T) storage.Storage

	Storage storage.Storage
	Ctx     context.Context
}

func (s *Suite) SetupTest() {
	s.Require().NotNil(s.Open, "storagetest.Suite.Open must be set")
	s.Storage = s.Open(s.T())
	s.Ctx = context.Background()
}

func (s *Suite) TearDownTest() {
	if s.Storage != nil {
		_ = s.Storage.Close()
	}
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func newPlayer(name, title string, race model.Race, prof model.Profession, exp int, birthday time.Time, banned bool) *model.Player {
	p := &model.Player{
		Name:       name,
		Title:      title,
		Race:       race,
		Profession: prof,
		Birthday:   birthday,
		Banned:     banned,
	}
	p.SetExperience(exp)
	return p
}

// Fixture returns the players Seed stores, in insertion order.
// Seeding an empty store gives them IDs 1 to 8.
func Fixture() []*model.Player {
	return []*model.Player{
		newPlayer("Ragnar", "Lord of the North", model.RaceHuman, model.ProfessionWarrior, 1500, day(2005, time.March, 1), false),
		newPlayer("Aragorn", "King of Gondor", model.RaceHuman, model.ProfessionPaladin, 300, day(2001, time.January, 1), false),
		newPlayer("Gimli", "Son of Gloin", model.RaceDwarf, model.ProfessionWarrior, 5500, day(2010, time.July, 7), true),
		newPlayer("Legolas", "Prince of Mirkwood", model.RaceElf, model.ProfessionRogue, 100, day(2003, time.February, 2), false),
		newPlayer("Bilbo", "Ring Finder", model.RaceHobbit, model.ProfessionRogue, 0, day(2000, time.January, 1), true),
		newPlayer("Azog", "the Defiler", model.RaceOrc, model.ProfessionWarlock, 600, day(2020, time.December, 31), false),
		newPlayer("Gandalf", "the Grey", model.RaceHuman, model.ProfessionSorcerer, 10_000_000, day(2999, time.January, 1), false),
		newPlayer("Bilbo", "the Burglar", model.RaceHobbit, model.ProfessionDruid, 300, day(2004, time.April, 4), false),
	}
}

// Seed stores the fixture players
func (s *Suite) Seed() []*model.Player {
	players := Fixture()
	for _, p := range players {
		s.Require().NoError(s.Storage.CreatePlayer(s.Ctx, p))
	}
	return players
}

// AssertSamePlayer compares every stored attribute at millisecond precision
func (s *Suite) AssertSamePlayer(want, got *model.Player) {
	s.Require().NotNil(got)
	s.Equal(want.ID, got.ID)
	s.Equal(want.Name, got.Name)
	s.Equal(want.Title, got.Title)
	s.Equal(want.Race, got.Race)
	s.Equal(want.Profession, got.Profession)
	s.Equal(want.Experience, got.Experience)
	s.Equal(want.Level, got.Level)
	s.Equal(want.UntilNextLevel, got.UntilNextLevel)
	s.Equal(want.Birthday.UnixMilli(), got.Birthday.UnixMilli())
	s.Equal(want.Banned, got.Banned)
}

func ids(players []*model.Player) []model.PlayerID {
	out := make([]model.PlayerID, len(players))
	for i, p := range players {
		out[i] = p.ID
	}
	return out
}

func everything() model.Page {
	return model.Page{Order: model.OrderID, Number: 0, Size: 100}
}

func (s *Suite) listIDs(filter model.Filter, page model.Page) []model.PlayerID {
	players, err := s.Storage.ListPlayers(s.Ctx, filter, page)
	s.Require().NoError(err)
	return ids(players)
}

// CRUD

func (s *Suite) TestCreateAssignsSequentialIDs() {
	players := s.Seed()
	for i, p := range players {
		s.Equal(model.PlayerID(i+1), p.ID)
	}
}

func (s *Suite) TestCreateAndGetPlayer() {
	players := s.Seed()

	got, err := s.Storage.GetPlayer(s.Ctx, players[0].ID)
	s.Require().NoError(err)
	s.AssertSamePlayer(players[0], got)
}

func (s *Suite) TestGetPlayerNotFound() {
	_, err := s.Storage.GetPlayer(s.Ctx, 42)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *Suite) TestReturnedPlayersAreCopies() {
	players := s.Seed()

	got, err := s.Storage.GetPlayer(s.Ctx, players[0].ID)
	s.Require().NoError(err)
	got.Name = "Changed"

	again, err := s.Storage.GetPlayer(s.Ctx, players[0].ID)
	s.Require().NoError(err)
	s.Equal("Ragnar", again.Name)
}

func (s *Suite) TestUpdatePlayer() {
	players := s.Seed()

	updated, err := s.Storage.UpdatePlayer(s.Ctx, players[1].ID, func(p *model.Player) error {
		p.Title = "King of Arnor"
		p.SetExperience(5500)
		return nil
	})
	s.Require().NoError(err)
	s.Equal(players[1].ID, updated.ID)
	s.Equal("King of Arnor", updated.Title)
	s.Equal(10, updated.Level)

	got, err := s.Storage.GetPlayer(s.Ctx, players[1].ID)
	s.Require().NoError(err)
	s.AssertSamePlayer(updated, got)
}

func (s *Suite) TestUpdatePlayerCannotChangeID() {
	players := s.Seed()

	updated, err := s.Storage.UpdatePlayer(s.Ctx, players[0].ID, func(p *model.Player) error {
		p.ID = 999
		return nil
	})
	s.Require().NoError(err)
	s.Equal(players[0].ID, updated.ID)

	_, err = s.Storage.GetPlayer(s.Ctx, 999)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *Suite) TestUpdatePlayerFnErrorLeavesRecord() {
	players := s.Seed()
	boom := errors.New("boom")

	_, err := s.Storage.UpdatePlayer(s.Ctx, players[0].ID, func(p *model.Player) error {
		p.Name = "Mutated"
		return boom
	})
	s.ErrorIs(err, boom)

	got, err := s.Storage.GetPlayer(s.Ctx, players[0].ID)
	s.Require().NoError(err)
	s.Equal("Ragnar", got.Name)
}

func (s *Suite) TestUpdatePlayerNotFound() {
	_, err := s.Storage.UpdatePlayer(s.Ctx, 42, func(p *model.Player) error { return nil })
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *Suite) TestDeletePlayer() {
	players := s.Seed()

	deleted, err := s.Storage.DeletePlayer(s.Ctx, players[2].ID)
	s.Require().NoError(err)
	s.True(deleted)

	_, err = s.Storage.GetPlayer(s.Ctx, players[2].ID)
	s.ErrorIs(err, model.ErrPlayerNotFound)

	deleted, err = s.Storage.DeletePlayer(s.Ctx, players[2].ID)
	s.Require().NoError(err)
	s.False(deleted)

	count, err := s.Storage.CountPlayers(s.Ctx, model.Filter{})
	s.Require().NoError(err)
	s.Equal(len(players)-1, count)
}

func (s *Suite) TestIDsAreNotReusedAfterDelete() {
	players := s.Seed()
	last := players[len(players)-1]

	_, err := s.Storage.DeletePlayer(s.Ctx, last.ID)
	s.Require().NoError(err)

	p := newPlayer("Frodo", "Ring Bearer", model.RaceHobbit, model.ProfessionRogue, 10, day(2002, time.May, 5), false)
	s.Require().NoError(s.Storage.CreatePlayer(s.Ctx, p))
	s.Greater(p.ID, last.ID)
}

// Listing

func (s *Suite) TestListEmptyStore() {
	players, err := s.Storage.ListPlayers(s.Ctx, model.Filter{}, model.DefaultPage())
	s.Require().NoError(err)
	s.Empty(players)

	count, err := s.Storage.CountPlayers(s.Ctx, model.Filter{})
	s.Require().NoError(err)
	s.Zero(count)
}

func (s *Suite) TestListPaging() {
	s.Seed()

	s.Equal([]model.PlayerID{1, 2, 3}, s.listIDs(model.Filter{}, model.DefaultPage()))
	s.Equal([]model.PlayerID{4, 5, 6}, s.listIDs(model.Filter{}, model.Page{Order: model.OrderID, Number: 1, Size: 3}))
	s.Equal([]model.PlayerID{7, 8}, s.listIDs(model.Filter{}, model.Page{Order: model.OrderID, Number: 2, Size: 3}))
	s.Empty(s.listIDs(model.Filter{}, model.Page{Order: model.OrderID, Number: 3, Size: 3}))
}

func (s *Suite) TestListOrdering() {
	s.Seed()

	cases := []struct {
		order model.PlayerOrder
		want  []model.PlayerID
	}{
		{model.OrderID, []model.PlayerID{1, 2, 3, 4, 5, 6, 7, 8}},
		{model.OrderName, []model.PlayerID{2, 6, 5, 8, 7, 3, 4, 1}},
		{model.OrderTitle, []model.PlayerID{2, 1, 4, 5, 3, 8, 6, 7}},
		{model.OrderExperience, []model.PlayerID{5, 4, 2, 8, 6, 1, 3, 7}},
		{model.OrderLevel, []model.PlayerID{5, 4, 2, 8, 6, 1, 3, 7}},
		{model.OrderBirthday, []model.PlayerID{5, 2, 4, 8, 1, 3, 6, 7}},
	}

	for _, tc := range cases {
		page := everything()
		page.Order = tc.order
		s.Equal(tc.want, s.listIDs(model.Filter{}, page), "order %s", tc.order)
	}
}

func (s *Suite) TestListFilters() {
	s.Seed()

	str := func(v string) *string { return &v }
	num := func(v int) *int { return &v }
	flag := func(v bool) *bool { return &v }
	race := func(v model.Race) *model.Race { return &v }
	prof := func(v model.Profession) *model.Profession { return &v }
	at := func(t time.Time) *time.Time { return &t }

	cases := []struct {
		name   string
		filter model.Filter
		want   []model.PlayerID
	}{
		{"name substring", model.Filter{Name: str("Bil")}, []model.PlayerID{5, 8}},
		{"name is case sensitive", model.Filter{Name: str("bil")}, []model.PlayerID{}},
		{"title substring", model.Filter{Title: str("the")}, []model.PlayerID{1, 6, 7, 8}},
		{"wildcards are literal", model.Filter{Name: str("%")}, []model.PlayerID{}},
		{"race", model.Filter{Race: race(model.RaceHuman)}, []model.PlayerID{1, 2, 7}},
		{"profession", model.Filter{Profession: prof(model.ProfessionRogue)}, []model.PlayerID{4, 5}},
		{"after is inclusive", model.Filter{After: at(day(2005, time.March, 1))}, []model.PlayerID{1, 3, 6, 7}},
		{"before is inclusive", model.Filter{Before: at(day(2001, time.January, 1))}, []model.PlayerID{2, 5}},
		{"banned", model.Filter{Banned: flag(true)}, []model.PlayerID{3, 5}},
		{"not banned", model.Filter{Banned: flag(false)}, []model.PlayerID{1, 2, 4, 6, 7, 8}},
		{"experience range", model.Filter{MinExperience: num(300), MaxExperience: num(1500)}, []model.PlayerID{1, 2, 6, 8}},
		{"level range", model.Filter{MinLevel: num(2), MaxLevel: num(3)}, []model.PlayerID{2, 6, 8}},
		{"combined", model.Filter{Race: race(model.RaceHobbit), Banned: flag(false)}, []model.PlayerID{8}},
		{"contradictory range", model.Filter{MinExperience: num(1000), MaxExperience: num(10)}, []model.PlayerID{}},
	}

	for _, tc := range cases {
		got := s.listIDs(tc.filter, everything())
		s.Equal(tc.want, got, tc.name)

		count, err := s.Storage.CountPlayers(s.Ctx, tc.filter)
		s.Require().NoError(err)
		s.Equal(len(tc.want), count, tc.name)
	}
}

func (s *Suite) TestCountIgnoresPaging() {
	s.Seed()
	filter := model.Filter{}

	page, err := s.Storage.ListPlayers(s.Ctx, filter, model.DefaultPage())
	s.Require().NoError(err)
	s.Len(page, 3)

	count, err := s.Storage.CountPlayers(s.Ctx, filter)
	s.Require().NoError(err)
	s.Equal(8, count)
}

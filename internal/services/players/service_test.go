package players

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/playerbase/internal/model"
	"github.com/mcoot/playerbase/internal/storage/memory"
	"github.com/mcoot/playerbase/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage, testutil.NopLogger())
	s.ctx = context.Background()
}

func input(name string, experience int) model.PlayerInput {
	birthday := time.Date(2010, time.May, 17, 12, 30, 0, 0, time.UTC)
	return model.PlayerInput{
		Name:       testutil.Ptr(name),
		Title:      testutil.Ptr("Wanderer"),
		Race:       testutil.Ptr(model.RaceElf),
		Profession: testutil.Ptr(model.ProfessionDruid),
		Birthday:   &birthday,
		Experience: testutil.Ptr(experience),
	}
}

func (s *ServiceSuite) createN(n int) {
	for i := range n {
		_, err := s.service.Create(s.ctx, input(fmt.Sprintf("Player%02d", i), i*100))
		s.Require().NoError(err)
	}
}

// Create tests

func (s *ServiceSuite) TestCreateAssignsIDAndDerivedAttributes() {
	player, err := s.service.Create(s.ctx, input("Elrond", 1500))
	s.Require().NoError(err)

	s.Equal(model.PlayerID(1), player.ID)
	s.Equal(5, player.Level)
	s.Equal(600, player.UntilNextLevel)
	s.False(player.Banned)
}

func (s *ServiceSuite) TestCreateWithZeroExperienceIsLevelZero() {
	player, err := s.service.Create(s.ctx, input("Newbie", 0))
	s.Require().NoError(err)
	s.Equal(0, player.Level)
	s.Equal(100, player.UntilNextLevel)
}

func (s *ServiceSuite) TestCreateWithMaxExperienceMatchesFormula() {
	player, err := s.service.Create(s.ctx, input("Elder", 10_000_000))
	s.Require().NoError(err)

	want := model.LevelFor(10_000_000)
	s.Equal(want, player.Level)
	s.Equal(model.UntilNextLevel(want, 10_000_000), player.UntilNextLevel)
}

func (s *ServiceSuite) TestCreateHonoursBanned() {
	in := input("Outlaw", 10)
	in.Banned = testutil.Ptr(true)

	player, err := s.service.Create(s.ctx, in)
	s.Require().NoError(err)
	s.True(player.Banned)
}

func (s *ServiceSuite) TestCreateRejectsInvalidInput() {
	in := input("ThisNameIsTooLong", 10)

	_, err := s.service.Create(s.ctx, in)
	s.ErrorIs(err, model.ErrValidation)

	count, err := s.service.Count(s.ctx, model.Filter{})
	s.Require().NoError(err)
	s.Zero(count)
}

func (s *ServiceSuite) TestCreateTruncatesBirthdayToMillis() {
	in := input("Precise", 10)
	birthday := time.Date(2010, time.May, 17, 12, 30, 0, 123456789, time.FixedZone("X", 3600))
	in.Birthday = &birthday

	player, err := s.service.Create(s.ctx, in)
	s.Require().NoError(err)
	s.Equal(birthday.UnixMilli(), player.Birthday.UnixMilli())
	s.Equal(time.UTC, player.Birthday.Location())
	s.Zero(player.Birthday.Nanosecond() % int(time.Millisecond))
}

// Get tests

func (s *ServiceSuite) TestGetRejectsNonPositiveID() {
	_, err := s.service.Get(s.ctx, 0)
	s.ErrorIs(err, model.ErrInvalidPlayerID)
	_, err = s.service.Get(s.ctx, -4)
	s.ErrorIs(err, model.ErrInvalidPlayerID)
}

func (s *ServiceSuite) TestGetNotFound() {
	_, err := s.service.Get(s.ctx, 12)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Update tests

func (s *ServiceSuite) TestUpdateExperienceOnlyRecomputesDerivedFields() {
	created, err := s.service.Create(s.ctx, input("Elrond", 100))
	s.Require().NoError(err)

	updated, err := s.service.Update(s.ctx, created.ID, model.PlayerInput{Experience: testutil.Ptr(5500)})
	s.Require().NoError(err)

	s.Equal(created.Name, updated.Name)
	s.Equal(created.Title, updated.Title)
	s.Equal(created.Race, updated.Race)
	s.Equal(created.Profession, updated.Profession)
	s.True(created.Birthday.Equal(updated.Birthday))
	s.Equal(created.Banned, updated.Banned)
	s.Equal(5500, updated.Experience)
	s.Equal(10, updated.Level)
	s.Equal(1100, updated.UntilNextLevel)
}

func (s *ServiceSuite) TestUpdateWithEmptyInputReturnsRecordUnchanged() {
	created, err := s.service.Create(s.ctx, input("Elrond", 100))
	s.Require().NoError(err)

	updated, err := s.service.Update(s.ctx, created.ID, model.PlayerInput{})
	s.Require().NoError(err)
	s.Equal(created, updated)
}

func (s *ServiceSuite) TestUpdateNotFoundDoesNotMutate() {
	s.createN(2)

	_, err := s.service.Update(s.ctx, 99, model.PlayerInput{Name: testutil.Ptr("Ghost")})
	s.ErrorIs(err, model.ErrPlayerNotFound)

	count, err := s.service.Count(s.ctx, model.Filter{Name: testutil.Ptr("Ghost")})
	s.Require().NoError(err)
	s.Zero(count)
}

func (s *ServiceSuite) TestUpdateRejectsInvalidFieldWithoutWriting() {
	created, err := s.service.Create(s.ctx, input("Elrond", 100))
	s.Require().NoError(err)

	_, err = s.service.Update(s.ctx, created.ID, model.PlayerInput{Name: testutil.Ptr("Elronde"), Experience: testutil.Ptr(-1)})
	s.ErrorIs(err, model.ErrValidation)

	stored, err := s.service.Get(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("Elrond", stored.Name)
}

func (s *ServiceSuite) TestUpdateRejectsNonPositiveID() {
	_, err := s.service.Update(s.ctx, 0, model.PlayerInput{})
	s.ErrorIs(err, model.ErrInvalidPlayerID)
}

// Delete tests

func (s *ServiceSuite) TestDeleteTwiceReturnsTrueThenFalse() {
	created, err := s.service.Create(s.ctx, input("Elrond", 100))
	s.Require().NoError(err)

	deleted, err := s.service.Delete(s.ctx, created.ID)
	s.Require().NoError(err)
	s.True(deleted)

	deleted, err = s.service.Delete(s.ctx, created.ID)
	s.Require().NoError(err)
	s.False(deleted)
}

func (s *ServiceSuite) TestDeleteMissingIsNotAnError() {
	deleted, err := s.service.Delete(s.ctx, 77)
	s.Require().NoError(err)
	s.False(deleted)
}

func (s *ServiceSuite) TestDeleteRejectsNonPositiveID() {
	_, err := s.service.Delete(s.ctx, 0)
	s.ErrorIs(err, model.ErrInvalidPlayerID)
}

// List and count tests

func (s *ServiceSuite) TestListSecondPageOfTen() {
	s.createN(10)

	page := model.DefaultPage()
	page.Number = 1

	players, err := s.service.List(s.ctx, model.Filter{}, page)
	s.Require().NoError(err)
	s.Require().Len(players, 3)
	s.Equal(model.PlayerID(4), players[0].ID)
	s.Equal(model.PlayerID(5), players[1].ID)
	s.Equal(model.PlayerID(6), players[2].ID)
}

func (s *ServiceSuite) TestListWithoutFiltersReturnsEverything() {
	s.createN(10)

	players, err := s.service.List(s.ctx, model.Filter{}, model.Page{Order: model.OrderID, Size: 50})
	s.Require().NoError(err)
	s.Len(players, 10)
}

func (s *ServiceSuite) TestListContradictoryFiltersReturnsEmpty() {
	s.createN(10)

	players, err := s.service.List(s.ctx, model.Filter{MinExperience: testutil.Ptr(500), MaxExperience: testutil.Ptr(100)}, model.DefaultPage())
	s.Require().NoError(err)
	s.NotNil(players)
	s.Empty(players)
}

func (s *ServiceSuite) TestCountMatchesUnpagedList() {
	s.createN(10)

	filters := []model.Filter{
		{},
		{MinExperience: testutil.Ptr(300)},
		{MinLevel: testutil.Ptr(1), MaxLevel: testutil.Ptr(2)},
		{Name: testutil.Ptr("Player0")},
		{Race: testutil.Ptr(model.RaceOrc)},
	}
	for _, f := range filters {
		players, err := s.service.List(s.ctx, f, model.Page{Order: model.OrderID, Size: 1000})
		s.Require().NoError(err)

		count, err := s.service.Count(s.ctx, f)
		s.Require().NoError(err)
		s.Equal(len(players), count)
	}
}

func (s *ServiceSuite) TestListRejectsInvalidPage() {
	_, err := s.service.List(s.ctx, model.Filter{}, model.Page{Order: model.OrderID, Number: -1, Size: 3})
	s.ErrorIs(err, model.ErrInvalidPage)

	_, err = s.service.List(s.ctx, model.Filter{}, model.Page{Order: model.OrderID, Size: 0})
	s.ErrorIs(err, model.ErrInvalidPage)
}

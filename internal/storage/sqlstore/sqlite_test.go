package sqlstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/playerbase/internal/model"
	"github.com/mcoot/playerbase/internal/storage"
	"github.com/mcoot/playerbase/internal/storage/storagetest"
)

type SQLiteSuite struct {
	storagetest.Suite
	path string
}

func TestSQLiteSuite(t *testing.T) {
	s := &SQLiteSuite{}
	s.Open = func(t *testing.T) storage.Storage {
		s.path = filepath.Join(t.TempDir(), "players.db")
		store, err := Open(context.Background(), SQLite, s.path)
		require.NoError(t, err)
		return store
	}
	suite.Run(t, s)
}

func (s *SQLiteSuite) TestReopenKeepsDataAndSkipsAppliedMigrations() {
	players := s.Seed()
	s.Require().NoError(s.Storage.Close())

	reopened, err := Open(s.Ctx, SQLite, s.path)
	s.Require().NoError(err)
	s.Storage = reopened

	got, err := reopened.GetPlayer(s.Ctx, players[0].ID)
	s.Require().NoError(err)
	s.AssertSamePlayer(players[0], got)

	var applied []string
	s.Require().NoError(reopened.db.SelectContext(s.Ctx, &applied, "SELECT name FROM schema_migrations ORDER BY name"))
	s.Equal([]string{"migrations/sqlite/0001_players.sql"}, applied)
}

func (s *SQLiteSuite) TestLevelIsStoredForQueries() {
	s.Seed()

	var level int
	s.Require().NoError(s.Storage.(*Store).db.GetContext(s.Ctx, &level, "SELECT level FROM players WHERE id = 7"))
	s.Equal(model.LevelFor(10_000_000), level)
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(context.Background(), SQLite, "  ")
	require.Error(t, err)
}

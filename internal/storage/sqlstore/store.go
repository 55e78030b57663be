// Package sqlstore is a SQL implementation of the player storage interface.
// It runs against PostgreSQL through lib/pq or SQLite through modernc.org/sqlite.
// Filtering, ordering and paging are pushed down into the query.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/mcoot/playerbase/internal/model"
	"github.com/mcoot/playerbase/internal/storage"
)

// Store is a SQL-backed implementation of the storage interface
type Store struct {
	db      *sqlx.DB
	dialect Dialect
}

// Ensure Store implements the interface
var _ storage.Storage = (*Store)(nil)

// New wraps an open connection. Migrations are not applied.
func New(db *sqlx.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// Open connects to the database, verifies the connection and applies migrations.
// For SQLite dsn is a file path.
func Open(ctx context.Context, dialect Dialect, dsn string) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("database dsn is required")
	}

	if dialect == SQLite {
		dsn = filepath.Clean(dsn) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	}

	db, err := sqlx.Open(dialect.driverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s db: %w", dialect, err)
	}
	if dialect == SQLite {
		// One writer at a time; also keeps read-modify-write transactions serial
		db.SetMaxOpenConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s db: %w", dialect, err)
	}

	if err := ApplyMigrations(ctx, db, dialect); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return New(db, dialect), nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping checks the database connection
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// withTx runs fn in a transaction, committing only if fn succeeds
func (s *Store) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

type playerRow struct {
	ID             int64  `db:"id"`
	Name           string `db:"name"`
	Title          string `db:"title"`
	Race           string `db:"race"`
	Profession     string `db:"profession"`
	Experience     int    `db:"experience"`
	Level          int    `db:"level"`
	UntilNextLevel int    `db:"until_next_level"`
	Birthday       int64  `db:"birthday"` // Unix millis
	Banned         bool   `db:"banned"`
}

func (r playerRow) toModel() *model.Player {
	return &model.Player{
		ID:             model.PlayerID(r.ID),
		Name:           r.Name,
		Title:          r.Title,
		Race:           model.Race(r.Race),
		Profession:     model.Profession(r.Profession),
		Experience:     r.Experience,
		Level:          r.Level,
		UntilNextLevel: r.UntilNextLevel,
		Birthday:       time.UnixMilli(r.Birthday).UTC(),
		Banned:         r.Banned,
	}
}

// values returns the non-key columns in table order
func values(p *model.Player) []any {
	return []any{
		p.Name,
		p.Title,
		string(p.Race),
		string(p.Profession),
		p.Experience,
		p.Level,
		p.UntilNextLevel,
		p.Birthday.UnixMilli(),
		p.Banned,
	}
}

func (s *Store) CreatePlayer(ctx context.Context, player *model.Player) error {
	query := s.db.Rebind(`INSERT INTO players (name, title, race, profession, experience, level, until_next_level, birthday, banned)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id`)

	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		var id int64
		if err := tx.QueryRowxContext(ctx, query, values(player)...).Scan(&id); err != nil {
			return fmt.Errorf("insert player: %w", err)
		}
		player.ID = model.PlayerID(id)
		return nil
	})
}

func (s *Store) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return s.getPlayer(ctx, s.db, id, "")
}

func (s *Store) getPlayer(ctx context.Context, q sqlx.QueryerContext, id model.PlayerID, suffix string) (*model.Player, error) {
	query := s.db.Rebind("SELECT " + playerColumns + " FROM players WHERE id = ?" + suffix)

	var row playerRow
	if err := sqlx.GetContext(ctx, q, &row, query, int64(id)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	return row.toModel(), nil
}

func (s *Store) UpdatePlayer(ctx context.Context, id model.PlayerID, fn func(*model.Player) error) (*model.Player, error) {
	query := s.db.Rebind(`UPDATE players
SET name = ?, title = ?, race = ?, profession = ?, experience = ?, level = ?, until_next_level = ?, birthday = ?, banned = ?
WHERE id = ?`)

	var updated *model.Player
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		player, err := s.getPlayer(ctx, tx, id, s.dialect.lockClause())
		if err != nil {
			return err
		}
		if err := fn(player); err != nil {
			return err
		}
		player.ID = id

		if _, err := tx.ExecContext(ctx, query, append(values(player), int64(id))...); err != nil {
			return fmt.Errorf("update player: %w", err)
		}
		updated = player
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Store) DeletePlayer(ctx context.Context, id model.PlayerID) (bool, error) {
	var deleted bool
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, s.db.Rebind("DELETE FROM players WHERE id = ?"), int64(id))
		if err != nil {
			return err
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		deleted = rowsAffected > 0
		return nil
	})
	return deleted, err
}

func (s *Store) ListPlayers(ctx context.Context, filter model.Filter, page model.Page) ([]*model.Player, error) {
	query, args, err := s.dialect.listQuery(filter, page)
	if err != nil {
		return nil, err
	}

	var rows []playerRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		return nil, err
	}

	players := make([]*model.Player, len(rows))
	for i, r := range rows {
		players[i] = r.toModel()
	}
	return players, nil
}

func (s *Store) CountPlayers(ctx context.Context, filter model.Filter) (int, error) {
	query, args, err := s.dialect.countQuery(filter)
	if err != nil {
		return 0, err
	}

	var count int
	if err := s.db.GetContext(ctx, &count, s.db.Rebind(query), args...); err != nil {
		return 0, err
	}
	return count, nil
}

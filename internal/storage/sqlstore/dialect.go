package sqlstore

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Dialect selects the SQL flavour and database/sql driver a Store uses
type Dialect string

const (
	Postgres Dialect = "postgres" // github.com/lib/pq
	SQLite   Dialect = "sqlite"   // modernc.org/sqlite
)

func init() {
	// sqlx does not know the modernc driver name
	sqlx.BindDriver(string(SQLite), sqlx.QUESTION)
}

// ParseDialect validates a dialect name
func ParseDialect(s string) (Dialect, error) {
	switch d := Dialect(s); d {
	case Postgres, SQLite:
		return d, nil
	default:
		return "", fmt.Errorf("unknown sql dialect %q", s)
	}
}

func (d Dialect) driverName() string {
	return string(d)
}

// containsExpr returns a case-sensitive substring test that treats the
// bound value literally, unlike LIKE
func (d Dialect) containsExpr(column string) string {
	if d == Postgres {
		return fmt.Sprintf("strpos(%s, ?) > 0", column)
	}
	return fmt.Sprintf("instr(%s, ?) > 0", column)
}

// orderExpr sorts text columns bytewise so ordering matches the other backends
func (d Dialect) orderExpr(column string, text bool) string {
	if text && d == Postgres {
		return column + ` COLLATE "C"`
	}
	return column
}

// lockClause is appended to the read half of a read-modify-write
func (d Dialect) lockClause() string {
	if d == Postgres {
		return " FOR UPDATE"
	}
	return ""
}

func (d Dialect) migrationRoot() string {
	return "migrations/" + string(d)
}

package storage

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// dialect captures the differences between the SQL backends.
type dialect struct {
	name   string
	schema string
	// numbered placeholders ($1, $2) instead of ?, and RETURNING for new ids.
	numbered bool
}

var sqliteDialect = dialect{
	name: "sqlite",
	schema: `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_game_id ON scores(game_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			game_id TEXT NOT NULL,
			level_id TEXT NOT NULL,
			outcome TEXT NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			gems INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			player TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level ON runs(game_id, level_id);
	`,
}

var postgresDialect = dialect{
	name:     "postgres",
	numbered: true,
	schema: `
		CREATE TABLE IF NOT EXISTS scores (
			id SERIAL PRIMARY KEY,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_scores_game_id ON scores(game_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);

		CREATE TABLE IF NOT EXISTS runs (
			id SERIAL PRIMARY KEY,
			run_id TEXT NOT NULL UNIQUE,
			game_id TEXT NOT NULL,
			level_id TEXT NOT NULL,
			outcome TEXT NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			gems INTEGER NOT NULL DEFAULT 0,
			ticks BIGINT NOT NULL DEFAULT 0,
			player TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level ON runs(game_id, level_id);
	`,
}

// OpenPostgres connects to a PostgreSQL server and runs migrations.
func OpenPostgres(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	return newStore(db, postgresDialect)
}

// rebind rewrites ? placeholders as $n for numbered dialects.
func (d dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}
	var sb strings.Builder
	sb.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func (s *Store) exec(query string, args ...any) (sql.Result, error) {
	return s.db.Exec(s.dialect.rebind(query), args...)
}

func (s *Store) query(query string, args ...any) (*sql.Rows, error) {
	return s.db.Query(s.dialect.rebind(query), args...)
}

func (s *Store) queryRow(query string, args ...any) *sql.Row {
	return s.db.QueryRow(s.dialect.rebind(query), args...)
}

// insert runs an INSERT and returns the new row id. lib/pq has no
// LastInsertId, so numbered dialects use RETURNING instead.
func (s *Store) insert(query string, args ...any) (int64, error) {
	if s.dialect.numbered {
		var id int64
		err := s.queryRow(query+" RETURNING id", args...).Scan(&id)
		return id, err
	}

	result, err := s.exec(query, args...)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("cannot get inserted ID: %w", err)
	}
	return id, nil
}

package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrRunNotFound is returned by RunByID for unknown run ids.
var ErrRunNotFound = errors.New("storage: run not found")

// RunRecord is one finished attempt at a level.
type RunRecord struct {
	RunID     string // uuid; generated by SaveRun when empty
	GameID    string
	LevelID   string
	Outcome   string // "win", "dead" or "timeup"
	Score     int
	Gems      int
	Ticks     uint64
	Player    string // SSH user or empty for local play
	CreatedAt time.Time
}

// LevelBest is the best winning run of a level.
type LevelBest struct {
	LevelID string
	Score   int
	Ticks   uint64
	Wins    int
}

// SaveRun records a finished level run and returns its run id.
func (s *Store) SaveRun(r RunRecord) (string, error) {
	if r.RunID == "" {
		r.RunID = uuid.New().String()
	} else if _, err := uuid.Parse(r.RunID); err != nil {
		return "", fmt.Errorf("storage: invalid run id %q: %w", r.RunID, err)
	}

	_, err := s.exec(
		`INSERT INTO runs (run_id, game_id, level_id, outcome, score, gems, ticks, player)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.GameID, r.LevelID, r.Outcome, r.Score, r.Gems, int64(r.Ticks), r.Player,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return r.RunID, nil
}

// RunByID retrieves a run by its uuid.
func (s *Store) RunByID(runID string) (*RunRecord, error) {
	r, err := scanRun(s.queryRow(
		`SELECT run_id, game_id, level_id, outcome, score, gems, ticks, player, created_at
		 FROM runs
		 WHERE run_id = ?`,
		runID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return r, nil
}

// RecentRuns retrieves the most recent runs of a game, newest first.
func (s *Store) RecentRuns(gameID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.query(
		`SELECT run_id, game_id, level_id, outcome, score, gems, ticks, player, created_at
		 FROM runs
		 WHERE game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, *r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// LevelBests returns, per level, the highest winning score and the
// fewest ticks among wins, ordered by level id.
func (s *Store) LevelBests(gameID string) ([]LevelBest, error) {
	rows, err := s.query(
		`SELECT level_id, MAX(score), MIN(ticks), COUNT(*)
		 FROM runs
		 WHERE game_id = ? AND outcome = 'win'
		 GROUP BY level_id
		 ORDER BY level_id`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level bests: %w", err)
	}
	defer rows.Close()

	var bests []LevelBest
	for rows.Next() {
		var b LevelBest
		var ticks int64
		if err := rows.Scan(&b.LevelID, &b.Score, &ticks, &b.Wins); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		b.Ticks = uint64(ticks)
		bests = append(bests, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return bests, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*RunRecord, error) {
	var r RunRecord
	var ticks int64
	var createdAt any
	if err := row.Scan(&r.RunID, &r.GameID, &r.LevelID, &r.Outcome, &r.Score, &r.Gems, &ticks, &r.Player, &createdAt); err != nil {
		return nil, err
	}
	r.Ticks = uint64(ticks)
	r.CreatedAt = parseTime(createdAt)
	return &r, nil
}

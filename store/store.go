// Package store persists player data and simulation run history in a
// sqlite database, so sim results survive shell restarts and can be
// compared across data updates.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/gridironlab/dynasty/player"
)

const schema = `
CREATE TABLE IF NOT EXISTS players (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	team TEXT NOT NULL,
	pos TEXT NOT NULL,
	age REAL NOT NULL,
	exp INTEGER NOT NULL,
	adp REAL NOT NULL,
	market_value REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS sim_runs (
	id TEXT PRIMARY KEY,
	ran_at TIMESTAMP NOT NULL,
	scenario TEXT NOT NULL,
	iterations INTEGER NOT NULL,
	seed INTEGER NOT NULL,
	title_prob REAL NOT NULL,
	playoff_prob REAL NOT NULL,
	mean_wins REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS sim_runs_ran_at ON sim_runs (ran_at DESC);
`

// Store wraps the sqlite handle.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the
// schema. Use ":memory:" for tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	// modernc sqlite does not support concurrent writers on one handle.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	log.Debug().Str("path", path).Msg("opened store")
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SavePlayers upserts the whole pool in one transaction.
func (s *Store) SavePlayers(ctx context.Context, players []*player.Player) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO players (id, name, team, pos, age, exp, adp, market_value)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, team=excluded.team, pos=excluded.pos,
			age=excluded.age, exp=excluded.exp, adp=excluded.adp,
			market_value=excluded.market_value`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range players {
		if _, err := stmt.ExecContext(ctx, p.ID, p.Name, p.Team, p.Pos.String(),
			p.Age, p.Experience, p.ADP, p.MarketValue); err != nil {
			return fmt.Errorf("saving player %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

// LoadPlayers reads every stored player, ordered by ADP.
func (s *Store) LoadPlayers(ctx context.Context) ([]*player.Player, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, team, pos, age, exp, adp, market_value
		FROM players ORDER BY CASE WHEN adp = 0 THEN 1e9 ELSE adp END`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []*player.Player
	for rows.Next() {
		p := &player.Player{}
		var pos string
		if err := rows.Scan(&p.ID, &p.Name, &p.Team, &pos, &p.Age,
			&p.Experience, &p.ADP, &p.MarketValue); err != nil {
			return nil, err
		}
		if p.Pos, err = player.ParsePosition(pos); err != nil {
			return nil, fmt.Errorf("player %s: %w", p.ID, err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// SimRun is one recorded simulation result for a scenario.
type SimRun struct {
	ID          uuid.UUID
	RanAt       time.Time
	Scenario    string
	Iterations  uint64
	Seed        uint64
	TitleProb   float64
	PlayoffProb float64
	MeanWins    float64
}

// RecordSimRun persists a finished scenario result and returns its id.
func (s *Store) RecordSimRun(ctx context.Context, run SimRun) (uuid.UUID, error) {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.RanAt.IsZero() {
		run.RanAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sim_runs (id, ran_at, scenario, iterations, seed,
			title_prob, playoff_prob, mean_wins)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID.String(), run.RanAt, run.Scenario, run.Iterations,
		int64(run.Seed), run.TitleProb, run.PlayoffProb, run.MeanWins)
	if err != nil {
		return uuid.Nil, fmt.Errorf("recording sim run: %w", err)
	}
	return run.ID, nil
}

// ListSimRuns returns the most recent runs, newest first.
func (s *Store) ListSimRuns(ctx context.Context, limit int) ([]SimRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, ran_at, scenario, iterations, seed,
			title_prob, playoff_prob, mean_wins
		FROM sim_runs ORDER BY ran_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []SimRun
	for rows.Next() {
		var r SimRun
		var id string
		var seed int64
		if err := rows.Scan(&id, &r.RanAt, &r.Scenario, &r.Iterations, &seed,
			&r.TitleProb, &r.PlayoffProb, &r.MeanWins); err != nil {
			return nil, err
		}
		if r.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		r.Seed = uint64(seed)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps sweep results in a SQLite database.
type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

// NewSQLiteStore creates a store for path. Call Init before use.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

// Init opens the database and creates the schema.
func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS sweep_results (
			run_id         TEXT    NOT NULL,
			pred_prob      INTEGER NOT NULL,
			repro_prob     INTEGER NOT NULL,
			seed           INTEGER NOT NULL,
			ticks          INTEGER NOT NULL,
			peak_tick      INTEGER NOT NULL,
			peak_pop       INTEGER NOT NULL,
			mean_pop       REAL    NOT NULL,
			std_pop        REAL    NOT NULL,
			final_pop      INTEGER NOT NULL,
			extinct_at     INTEGER NOT NULL,
			births         INTEGER NOT NULL,
			deaths_old_age INTEGER NOT NULL,
			deaths_starved INTEGER NOT NULL,
			deaths_eaten   INTEGER NOT NULL,
			strikes        INTEGER NOT NULL,
			PRIMARY KEY (run_id, pred_prob, repro_prob)
		)
	`); err != nil {
		_ = db.Close()
		return fmt.Errorf("creating sweep_results: %w", err)
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, errors.New("sqlite store is not initialized")
	}
	return s.db, nil
}

// SaveResult implements ResultStore.
func (s *SQLiteStore) SaveResult(ctx context.Context, rec ResultRecord) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO sweep_results (
			run_id, pred_prob, repro_prob, seed, ticks,
			peak_tick, peak_pop, mean_pop, std_pop, final_pop, extinct_at,
			births, deaths_old_age, deaths_starved, deaths_eaten, strikes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, pred_prob, repro_prob) DO UPDATE SET
			seed = excluded.seed,
			ticks = excluded.ticks,
			peak_tick = excluded.peak_tick,
			peak_pop = excluded.peak_pop,
			mean_pop = excluded.mean_pop,
			std_pop = excluded.std_pop,
			final_pop = excluded.final_pop,
			extinct_at = excluded.extinct_at,
			births = excluded.births,
			deaths_old_age = excluded.deaths_old_age,
			deaths_starved = excluded.deaths_starved,
			deaths_eaten = excluded.deaths_eaten,
			strikes = excluded.strikes
	`,
		rec.RunID, rec.Row.PredProb, rec.Row.ReproProb, rec.Seed, rec.Ticks,
		rec.Summary.PeakTick, rec.Summary.PeakPop, rec.Summary.MeanPop, rec.Summary.StdPop,
		rec.Summary.FinalPop, rec.Summary.ExtinctAt,
		rec.Counters.Births, rec.Counters.DeathsOldAge, rec.Counters.DeathsStarved,
		rec.Counters.DeathsEaten, rec.Counters.Strikes,
	)
	return err
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

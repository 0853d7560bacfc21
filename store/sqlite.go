package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/omarmustafa130/go-histogram/sim"

	_ "modernc.org/sqlite"
)

// RunInfo describes a simulation run
type RunInfo struct {
	ID      uuid.UUID
	World   string
	PHit    float64
	PMiss   float64
	Blur    float64
	Seed    uint64
	Created time.Time
}

// SQLiteStore stores simulation runs and their step records in a SQLite database.
type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

// NewSQLiteStore creates new store backed by the database file at path
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

// Init opens the database and creates the tables if they do not exist.
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

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
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

// CreateRun stores a new run and returns its ID.
// A random ID is generated unless info already carries one.
func (s *SQLiteStore) CreateRun(ctx context.Context, info RunInfo) (uuid.UUID, error) {
	db, err := s.getDB()
	if err != nil {
		return uuid.Nil, err
	}

	if info.ID == uuid.Nil {
		info.ID = uuid.New()
	}
	if info.Created.IsZero() {
		info.Created = time.Now().UTC()
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO runs (id, world, p_hit, p_miss, blur, seed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, info.ID.String(), info.World, info.PHit, info.PMiss, info.Blur, int64(info.Seed), info.Created.UnixNano())
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert run %s: %w", info.ID, err)
	}

	return info.ID, nil
}

// Run returns the run with the given ID.
// The boolean result is false if no such run exists.
func (s *SQLiteStore) Run(ctx context.Context, id uuid.UUID) (RunInfo, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return RunInfo{}, false, err
	}

	var (
		info    RunInfo
		seed    int64
		created int64
	)
	err = db.QueryRowContext(ctx, `
		SELECT world, p_hit, p_miss, blur, seed, created_at FROM runs WHERE id = ?
	`, id.String()).Scan(&info.World, &info.PHit, &info.PMiss, &info.Blur, &seed, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RunInfo{}, false, nil
		}
		return RunInfo{}, false, err
	}

	info.ID = id
	info.Seed = uint64(seed)
	info.Created = time.Unix(0, created).UTC()

	return info, true, nil
}

// SaveSteps stores simulation records of run id in a single transaction.
func (s *SQLiteStore) SaveSteps(ctx context.Context, id uuid.UUID, recs []sim.Record) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO steps (
			run_id, step, dy, dx, observed,
			truth_row, truth_col, est_row, est_col,
			prob, entropy, truth_belief
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, step) DO UPDATE SET
			dy = excluded.dy,
			dx = excluded.dx,
			observed = excluded.observed,
			truth_row = excluded.truth_row,
			truth_col = excluded.truth_col,
			est_row = excluded.est_row,
			est_col = excluded.est_col,
			prob = excluded.prob,
			entropy = excluded.entropy,
			truth_belief = excluded.truth_belief
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, rec := range recs {
		if _, err := stmt.ExecContext(ctx,
			id.String(), rec.Step, rec.DY, rec.DX, string(rec.Observed),
			rec.Truth.Row, rec.Truth.Col, rec.Estimate.Row, rec.Estimate.Col,
			rec.Prob, rec.Entropy, rec.TruthBelief,
		); err != nil {
			return fmt.Errorf("insert step %d of run %s: %w", rec.Step, id, err)
		}
	}

	return tx.Commit()
}

// Steps returns simulation records of run id ordered by step.
func (s *SQLiteStore) Steps(ctx context.Context, id uuid.UUID) ([]sim.Record, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT step, dy, dx, observed, truth_row, truth_col, est_row, est_col, prob, entropy, truth_belief
		FROM steps
		WHERE run_id = ?
		ORDER BY step ASC
	`, id.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []sim.Record
	for rows.Next() {
		var (
			rec      sim.Record
			observed string
		)
		if err := rows.Scan(
			&rec.Step, &rec.DY, &rec.DX, &observed,
			&rec.Truth.Row, &rec.Truth.Col, &rec.Estimate.Row, &rec.Estimate.Col,
			&rec.Prob, &rec.Entropy, &rec.TruthBelief,
		); err != nil {
			return nil, err
		}
		for _, c := range observed {
			rec.Observed = c
			break
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return recs, nil
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, errors.New("sqlite store not initialized")
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			world TEXT NOT NULL,
			p_hit REAL NOT NULL,
			p_miss REAL NOT NULL,
			blur REAL NOT NULL,
			seed INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS steps (
			run_id TEXT NOT NULL REFERENCES runs(id),
			step INTEGER NOT NULL,
			dy INTEGER NOT NULL,
			dx INTEGER NOT NULL,
			observed TEXT NOT NULL,
			truth_row INTEGER NOT NULL,
			truth_col INTEGER NOT NULL,
			est_row INTEGER NOT NULL,
			est_col INTEGER NOT NULL,
			prob REAL NOT NULL,
			entropy REAL NOT NULL,
			truth_belief REAL NOT NULL,
			PRIMARY KEY (run_id, step)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

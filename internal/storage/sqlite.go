package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/san-kum/nbody/internal/body"
)

var schema = []string{`
CREATE TABLE IF NOT EXISTS runs(
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	ts INTEGER NOT NULL,
	seed INTEGER,
	strategy TEXT,
	method TEXT,
	law TEXT,
	dt REAL,
	steps INTEGER,
	particles INTEGER,
	frames INTEGER,
	energy_drift REAL
)`, `
CREATE TABLE IF NOT EXISTS frames(
	run_id TEXT NOT NULL REFERENCES runs(id),
	step INTEGER NOT NULL,
	time REAL NOT NULL,
	particle_id INTEGER NOT NULL,
	x REAL, y REAL, z REAL,
	vx REAL, vy REAL, vz REAL,
	PRIMARY KEY(run_id, step, particle_id)
)`,
}

// SQLiteSink keeps runs and their frames in one SQLite database.
type SQLiteSink struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}
	return &SQLiteSink{db: db}, nil
}

func (s *SQLiteSink) Close() error { return s.db.Close() }

// SaveRun stores meta and frames in one transaction. meta.ID must be set.
func (s *SQLiteSink) SaveRun(ctx context.Context, meta RunMetadata, frames []Frame) error {
	if meta.ID == "" {
		return ErrNoRunID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs(id, name, ts, seed, strategy, method, law, dt, steps, particles, frames, energy_drift)
		VALUES(?,?,?,?,?,?,?,?,?,?,?,?)`,
		meta.ID, meta.Name, meta.Timestamp.UnixNano(), meta.Seed, meta.Strategy, meta.Method, meta.Law,
		meta.Dt, meta.Steps, meta.Particles, len(frames), meta.EnergyDrift)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", meta.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO frames(run_id, step, time, particle_id, x, y, z, vx, vy, vz) VALUES(?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, f := range frames {
		for _, p := range f.Particles {
			_, err := stmt.ExecContext(ctx, meta.ID, f.Step, f.Time, p.ID,
				p.Pos.X, p.Pos.Y, p.Pos.Z, p.Vel.X, p.Vel.Y, p.Vel.Z)
			if err != nil {
				return fmt.Errorf("insert frame %d: %w", f.Step, err)
			}
		}
	}
	return tx.Commit()
}

// Runs lists the stored runs, oldest first. Metrics are not kept in the
// database.
func (s *SQLiteSink) Runs(ctx context.Context) ([]RunMetadata, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, ts, seed, strategy, method, law, dt, steps, particles, frames, energy_drift
		FROM runs ORDER BY ts ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]RunMetadata, 0)
	for rows.Next() {
		var (
			m  RunMetadata
			ts int64
		)
		err := rows.Scan(&m.ID, &m.Name, &ts, &m.Seed, &m.Strategy, &m.Method, &m.Law,
			&m.Dt, &m.Steps, &m.Particles, &m.Frames, &m.EnergyDrift)
		if err != nil {
			return nil, err
		}
		m.Timestamp = time.Unix(0, ts)
		runs = append(runs, m)
	}
	return runs, rows.Err()
}

func (s *SQLiteSink) Frames(ctx context.Context, runID string) ([]Frame, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT step, time, particle_id, x, y, z, vx, vy, vz FROM frames
		WHERE run_id = ? ORDER BY step ASC, particle_id ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	frames := make([]Frame, 0)
	for rows.Next() {
		var (
			step int
			t    float64
			p    body.Particle
		)
		err := rows.Scan(&step, &t, &p.ID, &p.Pos.X, &p.Pos.Y, &p.Pos.Z, &p.Vel.X, &p.Vel.Y, &p.Vel.Z)
		if err != nil {
			return nil, err
		}
		if len(frames) == 0 || frames[len(frames)-1].Step != step {
			frames = append(frames, Frame{Step: step, Time: t})
		}
		f := &frames[len(frames)-1]
		f.Particles = append(f.Particles, p)
	}
	return frames, rows.Err()
}

package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/kcx/pkg/kcx/internalerr"
	"github.com/cognicore/kcx/pkg/kcx/metadata"
	"github.com/cognicore/kcx/pkg/kcx/store"
	"github.com/cognicore/kcx/pkg/kcx/taxonomy"
)

// timeLayout is fixed-width so created_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, errors.Join(internalerr.ErrStoreUnavailable, err))
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("open %s: %w", path, errors.Join(internalerr.ErrStoreUnavailable, err))
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	url TEXT NOT NULL,
	title TEXT,
	language TEXT,
	fragments INTEGER DEFAULT 0,
	dropped INTEGER DEFAULT 0,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS runs_url ON runs(url);

CREATE TABLE IF NOT EXISTS run_components (
	run_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	token TEXT NOT NULL,
	value TEXT,
	time_stamp TEXT,
	time_offset INTEGER,
	classification TEXT,
	UNIQUE(run_id, token),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS run_components_token ON run_components(token);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveRun inserts or replaces a run and its components
func (s *sqliteStore) SaveRun(ctx context.Context, r store.Run) error {
	if r.ID == "" || r.URL == "" {
		return fmt.Errorf("save run: id and url required: %w", internalerr.ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const stmt = `
INSERT INTO runs (id, url, title, language, fragments, dropped, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	url=excluded.url,
	title=excluded.title,
	language=excluded.language,
	fragments=excluded.fragments,
	dropped=excluded.dropped,
	created_at=excluded.created_at;
`
	_, err = tx.ExecContext(ctx, stmt,
		r.ID,
		r.URL,
		r.Title,
		r.Language,
		r.Fragments,
		r.Dropped,
		r.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return err
	}

	if err := replaceRunComponents(ctx, tx, r.ID, r.Components); err != nil {
		return err
	}

	return tx.Commit()
}

func replaceRunComponents(ctx context.Context, tx *sql.Tx, runID string, components []taxonomy.Component) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM run_components WHERE run_id=?`, runID); err != nil {
		return err
	}
	if len(components) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO run_components (run_id, position, token, value, time_stamp, time_offset, classification)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(run_id, token) DO NOTHING`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, c := range components {
		if c.Token == "" {
			continue
		}
		chain, err := json.Marshal([]string(c.Classification))
		if err != nil {
			return err
		}
		offset, _ := metadata.OffsetFromTimestamp(c.TimeStamp)
		if _, err := stmt.ExecContext(ctx, runID, i, c.Token, c.Value, c.TimeStamp, offset, string(chain)); err != nil {
			return err
		}
	}
	return nil
}

// GetRun retrieves a run by ID
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, error) {
	var (
		r       store.Run
		created string
	)
	err := s.db.QueryRowContext(ctx, `
SELECT id, url, title, language, fragments, dropped, created_at
FROM runs WHERE id = ?`, id).Scan(&r.ID, &r.URL, &r.Title, &r.Language, &r.Fragments, &r.Dropped, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Run{}, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	if err != nil {
		return store.Run{}, err
	}
	if r.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return store.Run{}, fmt.Errorf("run %s: parse created_at: %w", id, err)
	}

	r.Components, err = s.loadComponents(ctx, id)
	if err != nil {
		return store.Run{}, err
	}
	return r, nil
}

// DeleteRun removes a run and its components.
func (s *sqliteStore) DeleteRun(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM run_components WHERE run_id = ?", id); err != nil {
		return fmt.Errorf("delete components of %s: %w", id, err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete run %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	return tx.Commit()
}

func (s *sqliteStore) loadComponents(ctx context.Context, runID string) ([]taxonomy.Component, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT token, value, time_stamp, classification
FROM run_components WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []taxonomy.Component
	for rows.Next() {
		var (
			c     taxonomy.Component
			chain string
		)
		if err := rows.Scan(&c.Token, &c.Value, &c.TimeStamp, &chain); err != nil {
			return nil, err
		}
		var names []string
		if err := json.Unmarshal([]byte(chain), &names); err != nil {
			return nil, fmt.Errorf("run %s: decode classification of %s: %w", runID, c.Token, err)
		}
		c.Classification = taxonomy.Chain(names)
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetRunsByURL retrieves every run of a video, oldest first
func (s *sqliteStore) GetRunsByURL(ctx context.Context, url string) ([]store.Run, error) {
	ids, err := s.queryIDs(ctx, `SELECT id FROM runs WHERE url = ? ORDER BY created_at, id`, url)
	if err != nil {
		return nil, err
	}
	return s.loadRuns(ctx, ids)
}

// AllRuns retrieves every stored run, oldest first
func (s *sqliteStore) AllRuns(ctx context.Context) ([]store.Run, error) {
	ids, err := s.queryIDs(ctx, `SELECT id FROM runs ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	return s.loadRuns(ctx, ids)
}

func (s *sqliteStore) queryIDs(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *sqliteStore) loadRuns(ctx context.Context, ids []string) ([]store.Run, error) {
	runs := make([]store.Run, 0, len(ids))
	for _, id := range ids {
		r, err := s.GetRun(ctx, id)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, nil
}

// ListRuns returns the newest runs first
func (s *sqliteStore) ListRuns(ctx context.Context, limit int) ([]store.RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT r.id, r.url, r.title, r.language, r.created_at, COUNT(c.token)
FROM runs r
LEFT JOIN run_components c ON c.run_id = r.id
GROUP BY r.id
ORDER BY r.created_at DESC, r.id DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.RunSummary
	for rows.Next() {
		var (
			sum     store.RunSummary
			created string
		)
		if err := rows.Scan(&sum.ID, &sum.URL, &sum.Title, &sum.Language, &created, &sum.Components); err != nil {
			return nil, err
		}
		if sum.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
			return nil, fmt.Errorf("run %s: parse created_at: %w", sum.ID, err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// FirstSightings lists the runs in which token appeared, earliest offset first
func (s *sqliteStore) FirstSightings(ctx context.Context, token string, limit int) ([]store.Sighting, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT r.id, r.url, r.title, c.time_offset, c.time_stamp
FROM run_components c
JOIN runs r ON r.id = c.run_id
WHERE c.token = ?
ORDER BY c.time_offset, r.created_at, r.id
LIMIT ?`, token, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Sighting
	for rows.Next() {
		var sg store.Sighting
		if err := rows.Scan(&sg.RunID, &sg.URL, &sg.Title, &sg.Offset, &sg.TimeStamp); err != nil {
			return nil, err
		}
		out = append(out, sg)
	}
	return out, rows.Err()
}

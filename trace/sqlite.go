// ABOUTME: SQLite index over trace records with one row per run, for listing runs without replaying the log.
// ABOUTME: The schema is applied from embedded golang-migrate migrations when the index is opened.
package trace

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/oklog/ulid/v2"

	"github.com/2389-research/yorool/router"
)

//go:embed migrations/*.sql
var migrations embed.FS

// timeLayout keeps a fixed width so stored times sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// RunRow is one row of the runs table.
type RunRow struct {
	RunID     string
	SessionID string
	Label     string
	FirstSeen string
	Ticks     int
	Outcome   string
}

// SQLiteIndex mirrors records into SQLite. It is rebuildable from the JSONL
// log and is never the source of truth.
type SQLiteIndex struct {
	db *sql.DB
}

// OpenSQLite opens or creates the index at path and migrates it, creating
// parent directories as needed.
func OpenSQLite(path string) (*SQLiteIndex, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create parent dirs: %w", err)
	}
	if err := migrateSQLite(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteIndex{db: db}, nil
}

// migrateSQLite applies the embedded migrations over a dedicated connection;
// closing the migrator closes that connection.
func migrateSQLite(path string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("open sqlite for migration: %w", err)
	}
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("migration driver: %w", err)
	}
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("migration source: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("create migrator: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// Close closes the database.
func (idx *SQLiteIndex) Close() error {
	return idx.db.Close()
}

// Write upserts the record's run and inserts the record in one transaction.
func (idx *SQLiteIndex) Write(rec Record) error {
	tx, err := idx.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var outcome *string
	switch router.EventKind(rec.Kind) {
	case router.EventRunFinished:
		outcome = &rec.Detail
	case router.EventStarved:
		s := "starved: " + rec.Detail
		outcome = &s
	}

	_, err = tx.Exec(
		`INSERT INTO runs (run_id, session_id, label, first_seen, ticks, outcome)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(run_id) DO UPDATE SET
			ticks = MAX(runs.ticks, excluded.ticks),
			outcome = COALESCE(excluded.outcome, runs.outcome)`,
		rec.RunID.String(), rec.SessionID.String(), rec.Label,
		rec.At.Format(timeLayout), rec.Tick, outcome,
	)
	if err != nil {
		return fmt.Errorf("upsert run: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO records (session_id, seq, run_id, kind, tick, query_seq, address, request, detail, pool_size, at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID.String(), rec.Seq, rec.RunID.String(), rec.Kind, rec.Tick, rec.Query,
		rec.Address, rec.Request, rec.Detail, rec.PoolSize, rec.At.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return tx.Commit()
}

// Runs lists runs in the order they were first seen.
func (idx *SQLiteIndex) Runs() ([]RunRow, error) {
	rows, err := idx.db.Query(
		`SELECT run_id, session_id, label, first_seen, ticks, COALESCE(outcome, '')
		 FROM runs ORDER BY first_seen ASC, run_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []RunRow
	for rows.Next() {
		var r RunRow
		if err := rows.Scan(&r.RunID, &r.SessionID, &r.Label, &r.FirstSeen, &r.Ticks, &r.Outcome); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Records returns the records of one run in sequence order.
func (idx *SQLiteIndex) Records(runID ulid.ULID) ([]Record, error) {
	rows, err := idx.db.Query(
		`SELECT r.session_id, r.seq, r.kind, r.tick, r.query_seq, r.address, r.request, r.detail,
		        r.pool_size, r.at, runs.label
		 FROM records r JOIN runs ON runs.run_id = r.run_id
		 WHERE r.run_id = ? ORDER BY r.seq ASC`, runID.String())
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	for rows.Next() {
		var (
			rec     Record
			session string
			at      string
		)
		if err := rows.Scan(&session, &rec.Seq, &rec.Kind, &rec.Tick, &rec.Query, &rec.Address,
			&rec.Request, &rec.Detail, &rec.PoolSize, &at, &rec.Label); err != nil {
			return nil, fmt.Errorf("scan record row: %w", err)
		}
		if rec.SessionID, err = uuid.Parse(session); err != nil {
			return nil, fmt.Errorf("parse session id: %w", err)
		}
		if rec.At, err = time.Parse(timeLayout, at); err != nil {
			return nil, fmt.Errorf("parse record time: %w", err)
		}
		rec.RunID = runID
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Rebuild clears the index and writes records into it.
func (idx *SQLiteIndex) Rebuild(records []Record) error {
	if _, err := idx.db.Exec("DELETE FROM records"); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}
	if _, err := idx.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("clear runs: %w", err)
	}
	for _, rec := range records {
		if err := idx.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

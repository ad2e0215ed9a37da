// Package runlog persists per-document batch outcomes in a local SQLite
// file, so a crashed or interrupted run still leaves an inspectable trail
// and the final workbook's Logs sheet can be rebuilt from it.
package runlog

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/qiwa-tools/contract-extract/internal/common"
)

// Entry is one processed document's outcome.
type Entry struct {
	Timestamp time.Time
	FileName  string
	Status    string
	Filled    int
	Total     int
	Percent   float64
	Missing   string // comma-joined missing field names
	Note      string
}

// Store is a run-scoped outcome log backed by SQLite.
type Store struct {
	db  *sql.DB
	log *slog.Logger
}

// Open opens (or creates) the outcome log at dbPath. A single shared
// connection serializes writers, so the batch worker pool cannot hit
// SQLITE_BUSY.
func Open(dbPath string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, common.WrapError(err, "runlog: open driver")
	}
	db.SetMaxOpenConns(1)
	return &Store{db: db, log: logger}, nil
}

// Init creates the outcomes table.
func (s *Store) Init(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS outcomes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ts INTEGER NOT NULL,
		file_name TEXT NOT NULL,
		status TEXT NOT NULL,
		filled INTEGER NOT NULL,
		total INTEGER NOT NULL,
		percent REAL NOT NULL,
		missing TEXT NOT NULL DEFAULT '',
		note TEXT NOT NULL DEFAULT ''
	)`)
	if err != nil {
		s.log.Error("runlog.init_failed", "error", err)
		return common.WrapError(err, "runlog: init")
	}
	return nil
}

// Append records one document outcome.
func (s *Store) Append(ctx context.Context, e Entry) error {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO outcomes (ts, file_name, status, filled, total, percent, missing, note)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Timestamp.Unix(), e.FileName, e.Status, e.Filled, e.Total, e.Percent, e.Missing, e.Note,
	)
	if err != nil {
		s.log.Error("runlog.append_failed", "file", e.FileName, "error", err)
		return common.WrapError(err, "runlog: append")
	}
	return nil
}

// List returns all outcomes in insertion order.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ts, file_name, status, filled, total, percent, missing, note
		 FROM outcomes ORDER BY id`)
	if err != nil {
		return nil, common.WrapError(err, "runlog: list")
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var ts int64
		if err := rows.Scan(&ts, &e.FileName, &e.Status, &e.Filled, &e.Total, &e.Percent, &e.Missing, &e.Note); err != nil {
			return nil, common.WrapError(err, "runlog: scan")
		}
		e.Timestamp = time.Unix(ts, 0)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

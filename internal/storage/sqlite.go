package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"moviediary/internal/config"
	"moviediary/internal/movie"
)

const (
	sqliteBusyCode          = 5
	sqliteNotADBCode        = 26
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

const schema = `CREATE TABLE IF NOT EXISTS movies (
	position INTEGER PRIMARY KEY,
	title TEXT NOT NULL UNIQUE,
	year TEXT NOT NULL DEFAULT '',
	rating REAL NOT NULL,
	poster TEXT NOT NULL DEFAULT ''
)`

// SQLiteStore keeps the catalog in a single-table SQLite database. Row
// position preserves insertion order.
type SQLiteStore struct {
	*store
}

// NewSQLite opens or creates the database at path.
func NewSQLite(path string, opts ...Option) (*SQLiteStore, error) {
	s, err := openStore(config.FormatSQLite, path, openSQLitePersister, opts)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{store: s}, nil
}

type sqlitePersister struct {
	db *sql.DB
}

func openSQLitePersister(path string) (persister, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, classifySQLiteErr(execErr))
		}
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", classifySQLiteErr(err))
	}
	return &sqlitePersister{db: db}, nil
}

func sqliteCode(err error) int {
	var coder interface{ Code() int }
	if errors.As(err, &coder) {
		return coder.Code() & 0xff
	}
	return 0
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	if sqliteCode(err) == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func classifySQLiteErr(err error) error {
	if err == nil {
		return nil
	}
	if sqliteCode(err) == sqliteNotADBCode || strings.Contains(err.Error(), "file is not a database") {
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return err
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

func (p *sqlitePersister) load() (*movie.Catalog, error) {
	rows, err := p.db.Query(`SELECT title, year, rating, poster FROM movies ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query movies: %w", classifySQLiteErr(err))
	}
	defer rows.Close()

	catalog := &movie.Catalog{}
	for rows.Next() {
		var m movie.Movie
		if err := rows.Scan(&m.Title, &m.Year, &m.Rating, &m.Poster); err != nil {
			return nil, fmt.Errorf("%w: scan movie: %w", ErrCorrupt, err)
		}
		catalog.Insert(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movies: %w", err)
	}
	return catalog, nil
}

// save replaces every row inside one transaction.
func (p *sqlitePersister) save(catalog *movie.Catalog) error {
	ctx := context.Background()
	return retryOnBusy(ctx, func() error {
		tx, err := p.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx, `DELETE FROM movies`); err != nil {
			return fmt.Errorf("clear movies: %w", err)
		}
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO movies (position, title, year, rating, poster) VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close()
		for i, m := range catalog.Movies() {
			if _, err := stmt.ExecContext(ctx, i+1, m.Title, m.Year, m.Rating, m.Poster); err != nil {
				return fmt.Errorf("insert %q: %w", m.Title, err)
			}
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit: %w", err)
		}
		return nil
	})
}

func (p *sqlitePersister) appendMovie(m movie.Movie) error {
	ctx := context.Background()
	return retryOnBusy(ctx, func() error {
		_, err := p.db.ExecContext(ctx,
			`INSERT INTO movies (position, title, year, rating, poster)
			 VALUES ((SELECT COALESCE(MAX(position), 0) + 1 FROM movies), ?, ?, ?, ?)`,
			m.Title, m.Year, m.Rating, m.Poster)
		if err != nil {
			return fmt.Errorf("insert %q: %w", m.Title, err)
		}
		return nil
	})
}

func (p *sqlitePersister) close() error {
	if p == nil || p.db == nil {
		return nil
	}
	return p.db.Close()
}

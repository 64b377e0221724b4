package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"moviediary/internal/config"
	"moviediary/internal/movie"
)

var (
	// ErrLocked reports that another process holds the catalog.
	ErrLocked = errors.New("catalog is locked by another process")
	// ErrCorrupt marks persisted content that cannot be parsed into movies.
	ErrCorrupt = errors.New("catalog file is corrupt")
	// ErrUnknownFormat is returned by Open for an unsupported storage format.
	ErrUnknownFormat = errors.New("unknown storage format")
	// ErrClosed is returned by mutations on a closed backend.
	ErrClosed = errors.New("catalog is closed")
	// ErrInvalidRating rejects NaN and infinite ratings.
	ErrInvalidRating = errors.New("rating must be a finite number")
	// ErrInvalidTitle rejects titles containing a carriage return, which the
	// CSV reader folds into a plain newline.
	ErrInvalidTitle = errors.New("title must not contain a carriage return")
)

// Backend is the persistence capability shared by every storage variant.
//
// Add, Update and Delete report false with a nil error when the title is
// already present (Add) or absent (Update, Delete); nothing is changed in that
// case. A non-nil error means persisting failed; the in-memory catalog then
// still holds its previous state, but the file may not.
type Backend interface {
	List() *movie.Catalog
	Exists(title string) bool
	Add(title, year string, rating float64, poster string) (bool, error)
	Update(title string, rating float64) (bool, error)
	Delete(title string) (bool, error)
	Format() string
	Path() string
	Close() error
}

var (
	_ Backend = (*JSONStore)(nil)
	_ Backend = (*CSVStore)(nil)
	_ Backend = (*SQLiteStore)(nil)
)

type options struct {
	logger *slog.Logger
}

// Option configures a backend.
type Option func(*options)

// WithLogger routes backend diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Open constructs the backend selected by cfg.Storage.
func Open(cfg *config.Config, opts ...Option) (Backend, error) {
	if cfg == nil {
		return nil, errors.New("storage requires config")
	}
	path := cfg.Storage.Path
	switch strings.ToLower(strings.TrimSpace(cfg.Storage.Format)) {
	case config.FormatJSON:
		store, err := NewJSON(path, opts...)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.FormatCSV:
		store, err := NewCSV(path, opts...)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.FormatSQLite:
		store, err := NewSQLite(path, opts...)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, cfg.Storage.Format)
	}
}

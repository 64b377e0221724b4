package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofrs/flock"

	"moviediary/internal/logging"
	"moviediary/internal/movie"
)

// persister moves a whole catalog between memory and one storage medium.
type persister interface {
	load() (*movie.Catalog, error)
	save(*movie.Catalog) error
	close() error
}

// appender is implemented by persisters that can record a new movie without
// rewriting the existing ones.
type appender interface {
	appendMovie(movie.Movie) error
}

// store holds the state common to every backend variant.
type store struct {
	mu      sync.Mutex
	format  string
	path    string
	catalog *movie.Catalog
	persist persister
	lock    *flock.Flock
	logger  *slog.Logger
	closed  bool
}

func openStore(format, path string, newPersister func(path string) (persister, error), opts []Option) (*store, error) {
	o := options{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("%s catalog path is required", format)
	}
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create catalog directory: %w", err)
	}

	lock, err := acquireLock(path)
	if err != nil {
		return nil, err
	}

	p, err := newPersister(path)
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}

	catalog, err := p.load()
	if err != nil {
		_ = p.close()
		_ = lock.Unlock()
		return nil, fmt.Errorf("load %s catalog %s: %w", format, path, err)
	}

	logger := logging.NewComponentLogger(o.logger, "storage").With(
		logging.String(logging.FieldBackend, format),
		logging.String(logging.FieldPath, path),
	)
	logger.Debug("catalog loaded", logging.Int("movie_count", catalog.Len()))

	return &store{
		format:  format,
		path:    path,
		catalog: catalog,
		persist: p,
		lock:    lock,
		logger:  logger,
	}, nil
}

func acquireLock(path string) (*flock.Flock, error) {
	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire catalog lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, path)
	}
	return lock, nil
}

// List returns a copy of the current catalog.
func (s *store) List() *movie.Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Clone()
}

// Exists reports whether title is in the catalog.
func (s *store) Exists(title string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Has(title)
}

// Add inserts a new movie and persists the catalog.
func (s *store) Add(title, year string, rating float64, poster string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, ErrClosed
	}
	if s.catalog.Has(title) {
		return false, nil
	}
	if err := checkRating(rating); err != nil {
		return false, fmt.Errorf("add %q: %w", title, err)
	}
	if strings.ContainsRune(title, '\r') {
		return false, fmt.Errorf("add %q: %w", title, ErrInvalidTitle)
	}

	m := movie.Movie{Title: title, Year: year, Rating: rating, Poster: poster}
	next := s.catalog.Clone()
	next.Insert(m)

	var err error
	if a, ok := s.persist.(appender); ok {
		err = a.appendMovie(m)
	} else {
		err = s.persist.save(next)
	}
	if err != nil {
		return false, fmt.Errorf("add %q: %w", title, err)
	}
	s.catalog = next
	s.logger.Debug("catalog persisted", logging.String(logging.FieldEventType, "add"), logging.Title(title))
	return true, nil
}

// Update overwrites the rating of an existing movie and persists the catalog.
func (s *store) Update(title string, rating float64) (bool, error) {
	if err := checkRating(rating); err != nil {
		return false, fmt.Errorf("update %q: %w", title, err)
	}
	return s.mutate("update", title, func(c *movie.Catalog) { c.SetRating(title, rating) })
}

// Delete removes a movie and persists the catalog.
func (s *store) Delete(title string) (bool, error) {
	return s.mutate("delete", title, func(c *movie.Catalog) { c.Remove(title) })
}

func (s *store) mutate(op, title string, apply func(*movie.Catalog)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, ErrClosed
	}
	if !s.catalog.Has(title) {
		return false, nil
	}

	next := s.catalog.Clone()
	apply(next)
	if err := s.persist.save(next); err != nil {
		return false, fmt.Errorf("%s %q: %w", op, title, err)
	}
	s.catalog = next
	s.logger.Debug("catalog persisted", logging.String(logging.FieldEventType, op), logging.Title(title))
	return true, nil
}

// checkRating rejects ratings no storage format can round-trip.
func checkRating(rating float64) error {
	if math.IsNaN(rating) || math.IsInf(rating, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidRating, rating)
	}
	return nil
}

// Format names the storage variant.
func (s *store) Format() string { return s.format }

// Path returns the catalog location.
func (s *store) Path() string { return s.path }

// Close releases the storage medium and the process lock.
func (s *store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return errors.Join(s.persist.close(), s.lock.Unlock())
}

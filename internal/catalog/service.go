package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sort"
	"strings"

	"moviediary/internal/fuzzy"
	"moviediary/internal/logging"
	"moviediary/internal/metadata"
	"moviediary/internal/movie"
	"moviediary/internal/storage"
)

var (
	// ErrEmptyCatalog is returned by Random when there is nothing to pick.
	ErrEmptyCatalog = errors.New("catalog is empty")
	// ErrDuplicate is returned by Import when the title is already stored.
	ErrDuplicate = errors.New("movie already exists")
	// ErrNoFetcher is returned by Import when no metadata source is wired.
	ErrNoFetcher = errors.New("no metadata fetcher configured")
	// ErrEmptyTitle rejects blank titles before they reach storage.
	ErrEmptyTitle = errors.New("title must not be empty")
)

// Stats summarises the ratings in the catalog. All fields are zero for an
// empty catalog.
type Stats struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Max   float64 `json:"max"`
	Min   float64 `json:"min"`
}

// Service is the catalog facade.
type Service struct {
	backend storage.Backend
	matcher *fuzzy.Matcher
	fetcher metadata.Fetcher
	rand    *rand.Rand
	logger  *slog.Logger
}

var _ fuzzy.Lister = (*Service)(nil)

// Option configures a Service.
type Option func(*Service)

// WithMatcher replaces the default fuzzy matcher.
func WithMatcher(m *fuzzy.Matcher) Option {
	return func(s *Service) {
		if m != nil {
			s.matcher = m
		}
	}
}

// WithFetcher wires the metadata source used by Import.
func WithFetcher(f metadata.Fetcher) Option {
	return func(s *Service) {
		s.fetcher = f
	}
}

// WithRand sets the random source used by Random.
func WithRand(r *rand.Rand) Option {
	return func(s *Service) {
		if r != nil {
			s.rand = r
		}
	}
}

// WithLogger routes service logs to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService wraps backend. The returned Service does not own backend; the
// caller closes it.
func NewService(backend storage.Backend, opts ...Option) (*Service, error) {
	if backend == nil {
		return nil, errors.New("catalog requires a storage backend")
	}
	s := &Service{
		backend: backend,
		matcher: fuzzy.NewMatcher(),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rand == nil {
		s.rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	s.logger = logging.NewComponentLogger(s.logger, "catalog")
	return s, nil
}

// List returns a copy of every movie in insertion order.
func (s *Service) List() *movie.Catalog {
	return s.backend.List()
}

// Exists reports whether title is stored.
func (s *Service) Exists(title string) bool {
	return s.backend.Exists(title)
}

// Add stores a movie. It reports false when the title already exists.
func (s *Service) Add(title, year string, rating float64, poster string) (bool, error) {
	if strings.TrimSpace(title) == "" {
		return false, ErrEmptyTitle
	}
	added, err := s.backend.Add(title, year, rating, poster)
	if err != nil {
		return false, err
	}
	if added {
		s.logger.Info("movie added",
			logging.String(logging.FieldEventType, "movie_added"),
			logging.Title(title),
			logging.Float64("rating", rating),
		)
	}
	return added, nil
}

// Update changes the rating of title. It reports false when title is absent.
func (s *Service) Update(title string, rating float64) (bool, error) {
	updated, err := s.backend.Update(title, rating)
	if err != nil {
		return false, err
	}
	if updated {
		s.logger.Info("movie rating updated",
			logging.String(logging.FieldEventType, "movie_updated"),
			logging.Title(title),
			logging.Float64("rating", rating),
		)
	}
	return updated, nil
}

// Delete removes title. It reports false when title is absent.
func (s *Service) Delete(title string) (bool, error) {
	deleted, err := s.backend.Delete(title)
	if err != nil {
		return false, err
	}
	if deleted {
		s.logger.Info("movie deleted",
			logging.String(logging.FieldEventType, "movie_deleted"),
			logging.Title(title),
		)
	}
	return deleted, nil
}

// Search returns the movies whose titles approximately match query.
func (s *Service) Search(query string) []fuzzy.Match {
	return s.matcher.Search(query, s)
}

// SortedByRating returns every movie ordered from highest to lowest rating.
// Equal ratings keep insertion order.
func (s *Service) SortedByRating() []movie.Movie {
	movies := s.backend.List().Movies()
	sort.SliceStable(movies, func(i, j int) bool {
		return movies[i].Rating > movies[j].Rating
	})
	return movies
}

// Stats computes count, mean, maximum and minimum rating.
func (s *Service) Stats() Stats {
	movies := s.backend.List().Movies()
	if len(movies) == 0 {
		return Stats{}
	}
	st := Stats{Count: len(movies), Max: movies[0].Rating, Min: movies[0].Rating}
	var sum float64
	for _, m := range movies {
		sum += m.Rating
		st.Max = max(st.Max, m.Rating)
		st.Min = min(st.Min, m.Rating)
	}
	st.Mean = sum / float64(len(movies))
	return st
}

// Random picks one movie uniformly.
func (s *Service) Random() (movie.Movie, error) {
	movies := s.backend.List().Movies()
	if len(movies) == 0 {
		return movie.Movie{}, ErrEmptyCatalog
	}
	return movies[s.rand.IntN(len(movies))], nil
}

// Import looks up title with the configured fetcher and stores the result
// under title. Nothing is fetched when title is already stored.
func (s *Service) Import(ctx context.Context, title string) (movie.Movie, error) {
	if strings.TrimSpace(title) == "" {
		return movie.Movie{}, ErrEmptyTitle
	}
	if s.backend.Exists(title) {
		return movie.Movie{}, fmt.Errorf("%w: %q", ErrDuplicate, title)
	}
	if s.fetcher == nil {
		return movie.Movie{}, ErrNoFetcher
	}

	details, err := s.fetcher.Fetch(ctx, title)
	if err != nil {
		logging.WarnWithContext(s.logger, "metadata lookup failed", "metadata_lookup_failed",
			logging.Title(title),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, lookupHint(err)),
			logging.String(logging.FieldImpact, "movie not added"),
		)
		return movie.Movie{}, fmt.Errorf("fetch %q: %w", title, err)
	}

	m := movie.Movie{Title: title, Year: details.Year, Rating: details.Rating, Poster: details.Poster}
	added, err := s.Add(m.Title, m.Year, m.Rating, m.Poster)
	if err != nil {
		return movie.Movie{}, err
	}
	if !added {
		return movie.Movie{}, fmt.Errorf("%w: %q", ErrDuplicate, title)
	}
	return m, nil
}

func lookupHint(err error) string {
	switch {
	case errors.Is(err, metadata.ErrNotFound):
		return "check the spelling or add the movie manually with --rating"
	case errors.Is(err, metadata.ErrIncomplete):
		return "add the movie manually with --year, --rating and --poster"
	case errors.Is(err, metadata.ErrUnavailable):
		return "check the network connection and the omdb api key"
	default:
		return "retry the lookup"
	}
}

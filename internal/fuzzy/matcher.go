package fuzzy

import (
	"strings"

	"golang.org/x/text/cases"

	"moviediary/internal/movie"
)

// DefaultThreshold is the largest edit distance that still counts as a match.
const DefaultThreshold = 2

// Lister exposes the catalog to search.
type Lister interface {
	List() *movie.Catalog
}

// Match is a catalog entry within the threshold of a query.
type Match struct {
	Movie    movie.Movie
	Distance int
}

// Matcher compares queries against catalog titles.
type Matcher struct {
	threshold     int
	caseSensitive bool
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithThreshold sets the maximum accepted distance. Negative values are
// treated as zero.
func WithThreshold(n int) Option {
	return func(m *Matcher) {
		m.threshold = max(n, 0)
	}
}

// WithCaseSensitive disables case folding when enabled is true.
func WithCaseSensitive(enabled bool) Option {
	return func(m *Matcher) {
		m.caseSensitive = enabled
	}
}

// NewMatcher returns a case-insensitive Matcher using DefaultThreshold unless
// overridden by opts.
func NewMatcher(opts ...Option) *Matcher {
	m := &Matcher{threshold: DefaultThreshold}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Threshold reports the configured maximum distance.
func (m *Matcher) Threshold() int {
	if m == nil {
		return DefaultThreshold
	}
	return m.threshold
}

// Search returns every movie whose title is within the threshold of query, in
// catalog order. The result is empty, never nil, when nothing matches.
func (m *Matcher) Search(query string, lister Lister) []Match {
	if m == nil {
		m = NewMatcher()
	}
	matches := []Match{}
	if lister == nil {
		return matches
	}
	needle := m.normalize(query)
	for _, mv := range lister.List().Movies() {
		d := Distance(needle, m.normalize(mv.Title))
		if d <= m.threshold {
			matches = append(matches, Match{Movie: mv, Distance: d})
		}
	}
	return matches
}

func (m *Matcher) normalize(s string) string {
	if m.caseSensitive {
		return s
	}
	if isASCII(s) {
		return strings.ToLower(s)
	}
	return cases.Fold().String(s)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

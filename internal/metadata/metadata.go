// Package metadata defines how the catalog looks up details for a title it
// does not know yet.
package metadata

import (
	"context"
	"errors"
)

var (
	// ErrNotFound means the provider has no movie with the requested title.
	ErrNotFound = errors.New("movie not found")
	// ErrIncomplete means the provider answered but omitted a required field.
	ErrIncomplete = errors.New("incomplete movie data")
	// ErrUnavailable covers transport failures and non-success responses.
	ErrUnavailable = errors.New("metadata provider unavailable")
)

// Details are the fields stored for a newly added movie.
type Details struct {
	Title  string
	Year   string
	Rating float64
	Poster string
}

// Fetcher looks up details for a title.
type Fetcher interface {
	Fetch(ctx context.Context, title string) (Details, error)
}

package testsupport

import (
	"testing"

	"moviediary/internal/config"
	"moviediary/internal/storage"
)

// MustOpenBackend opens the backend selected by cfg and registers cleanup.
func MustOpenBackend(t testing.TB, cfg *config.Config) storage.Backend {
	t.Helper()

	backend, err := storage.Open(cfg)
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() {
		backend.Close()
	})
	return backend
}

// AddMovie inserts a movie through backend and fails the test unless it was new.
func AddMovie(t testing.TB, backend storage.Backend, title, year string, rating float64) {
	t.Helper()

	added, err := backend.Add(title, year, rating, "")
	if err != nil {
		t.Fatalf("backend.Add(%q): %v", title, err)
	}
	if !added {
		t.Fatalf("backend.Add(%q) reported duplicate", title)
	}
}

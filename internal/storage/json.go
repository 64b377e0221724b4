package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"moviediary/internal/config"
	"moviediary/internal/movie"
)

// JSONStore keeps the catalog as a single JSON document:
//
//	{"Title": {"year": "1999", "rating": 8.7, "poster": "https://..."}}
type JSONStore struct {
	*store
}

// NewJSON opens the JSON catalog at path. A missing or empty file is an
// empty catalog; any other unreadable content aborts construction.
func NewJSON(path string, opts ...Option) (*JSONStore, error) {
	s, err := openStore(config.FormatJSON, path, func(p string) (persister, error) {
		return jsonPersister{filePersister{path: p}}, nil
	}, opts)
	if err != nil {
		return nil, err
	}
	return &JSONStore{store: s}, nil
}

type jsonPersister struct {
	filePersister
}

func (p jsonPersister) load() (*movie.Catalog, error) {
	data, err := readCatalogFile(p.path)
	if err != nil {
		return nil, err
	}
	catalog := &movie.Catalog{}
	if len(bytes.TrimSpace(data)) == 0 {
		return catalog, nil
	}
	if err := json.Unmarshal(data, catalog); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return catalog, nil
}

func (p jsonPersister) save(catalog *movie.Catalog) error {
	data, err := json.Marshal(catalog)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return fmt.Errorf("indent catalog: %w", err)
	}
	buf.WriteByte('\n')
	return writeCatalogFile(p.path, buf.Bytes())
}

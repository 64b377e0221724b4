package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"moviediary/internal/fileutil"
)

// readCatalogFile returns nil data when the file does not exist.
func readCatalogFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return data, nil
}

// writeCatalogFile replaces path with data via a synced temp file and rename.
func writeCatalogFile(path string, data []byte) error {
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("write catalog file: %w", err)
	}
	return nil
}

// filePersister has nothing to release between writes.
type filePersister struct {
	path string
}

func (filePersister) close() error { return nil }

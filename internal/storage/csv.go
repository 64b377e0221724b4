package storage

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"

	"moviediary/internal/config"
	"moviediary/internal/movie"
)

const csvFieldCount = 4

// CSVStore keeps one headerless title,year,rating,poster row per movie.
type CSVStore struct {
	*store
}

// NewCSV opens the CSV catalog at path. A missing file is an empty catalog.
// A row with the wrong field count, an unparsable rating or a repeated title
// aborts construction.
func NewCSV(path string, opts ...Option) (*CSVStore, error) {
	s, err := openStore(config.FormatCSV, path, func(p string) (persister, error) {
		return csvPersister{filePersister{path: p}}, nil
	}, opts)
	if err != nil {
		return nil, err
	}
	return &CSVStore{store: s}, nil
}

type csvPersister struct {
	filePersister
}

func (p csvPersister) load() (*movie.Catalog, error) {
	file, err := os.Open(p.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &movie.Catalog{}, nil
		}
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer file.Close()
	return decodeCSV(file)
}

func decodeCSV(r io.Reader) (*movie.Catalog, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = csvFieldCount

	catalog := &movie.Catalog{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return catalog, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		line, _ := reader.FieldPos(0)
		rating, err := parseRating(record[2])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrCorrupt, line, err)
		}
		m := movie.Movie{Title: record[0], Year: record[1], Rating: rating, Poster: record[3]}
		if !catalog.Insert(m) {
			return nil, fmt.Errorf("%w: line %d: duplicate title %q", ErrCorrupt, line, m.Title)
		}
	}
}

func parseRating(text string) (float64, error) {
	rating, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("rating %q: %w", text, err)
	}
	if math.IsNaN(rating) || math.IsInf(rating, 0) {
		return 0, fmt.Errorf("rating %q is not a finite number", text)
	}
	return rating, nil
}

func formatRating(rating float64) string {
	return strconv.FormatFloat(rating, 'f', -1, 64)
}

func csvRecord(m movie.Movie) []string {
	return []string{m.Title, m.Year, formatRating(m.Rating), m.Poster}
}

func (p csvPersister) save(catalog *movie.Catalog) error {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	for _, m := range catalog.Movies() {
		if err := writer.Write(csvRecord(m)); err != nil {
			return fmt.Errorf("encode %q: %w", m.Title, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return writeCatalogFile(p.path, buf.Bytes())
}

// appendMovie writes one row at the end of the file, first terminating a
// final line that lacks a newline.
func (p csvPersister) appendMovie(m movie.Movie) (err error) {
	file, err := os.OpenFile(p.path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open catalog file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close catalog file: %w", cerr)
		}
	}()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat catalog file: %w", err)
	}
	var buf bytes.Buffer
	if size := info.Size(); size > 0 {
		last := make([]byte, 1)
		if _, err := file.ReadAt(last, size-1); err != nil {
			return fmt.Errorf("read catalog file: %w", err)
		}
		if last[0] != '\n' {
			buf.WriteByte('\n')
		}
	}

	writer := csv.NewWriter(&buf)
	if err := writer.Write(csvRecord(m)); err != nil {
		return fmt.Errorf("encode %q: %w", m.Title, err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("encode %q: %w", m.Title, err)
	}

	if _, err := file.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("append catalog row: %w", err)
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("sync catalog file: %w", err)
	}
	return nil
}

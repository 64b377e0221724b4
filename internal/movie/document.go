package movie

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// documentEntry is the value stored under each title in the JSON document.
type documentEntry struct {
	Year   json.RawMessage `json:"year"`
	Rating float64         `json:"rating"`
	Poster string          `json:"poster"`
}

// MarshalJSON encodes the catalog as a single object keyed by title, in
// insertion order. Values carry exactly year, rating and poster.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range c.Movies() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.Title)
		if err != nil {
			return nil, err
		}
		year, err := json.Marshal(m.Year)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(documentEntry{Year: year, Rating: m.Rating, Poster: m.Poster})
		if err != nil {
			return nil, fmt.Errorf("encode %q: %w", m.Title, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON replaces the catalog with the document in data. Key order in
// the document becomes insertion order. Duplicate titles, unknown fields and
// non-object values are rejected.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*c = Catalog{}
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("catalog document must be an object, got %v", tok)
	}

	parsed := Catalog{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		title, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected key %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("decode %q: %w", title, err)
		}
		m, err := decodeEntry(title, raw)
		if err != nil {
			return err
		}
		if !parsed.Insert(m) {
			return fmt.Errorf("duplicate title %q", title)
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after catalog document")
	}
	*c = parsed
	return nil
}

func decodeEntry(title string, raw json.RawMessage) (Movie, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Movie{}, fmt.Errorf("entry %q must be an object", title)
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	var entry documentEntry
	if err := dec.Decode(&entry); err != nil {
		return Movie{}, fmt.Errorf("decode %q: %w", title, err)
	}
	year, err := yearText(entry.Year)
	if err != nil {
		return Movie{}, fmt.Errorf("decode %q: %w", title, err)
	}
	return Movie{Title: title, Year: year, Rating: entry.Rating, Poster: entry.Poster}, nil
}

// yearText accepts a JSON string or number and returns its display text.
func yearText(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", nil
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", err
		}
		return s, nil
	default:
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return "", fmt.Errorf("year must be a string or number: %w", err)
		}
		if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
			return "", fmt.Errorf("year must be a string or number: %w", err)
		}
		return n.String(), nil
	}
}

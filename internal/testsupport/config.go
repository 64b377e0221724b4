package testsupport

import (
	"path/filepath"
	"testing"

	"moviediary/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The catalog defaults to a JSON file under the temp directory.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Storage.Format = config.FormatJSON
	cfgVal.Storage.Path = filepath.Join(base, "data", "movies.json")
	cfgVal.OMDb.APIKey = "test"
	cfgVal.Website.OutputPath = filepath.Join(base, "site", "movie_website.html")
	cfgVal.Logging.Dir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithStorage switches the catalog backend, placing the file under the temp
// directory with the format's usual extension.
func WithStorage(format string) ConfigOption {
	return func(b *configBuilder) {
		ext := map[string]string{
			config.FormatJSON:   "movies.json",
			config.FormatCSV:    "movies.csv",
			config.FormatSQLite: "movies.db",
		}[format]
		if ext == "" {
			ext = "movies." + format
		}
		b.cfg.Storage.Format = format
		b.cfg.Storage.Path = filepath.Join(b.baseDir, "data", ext)
	}
}

// WithOMDb points the metadata client at baseURL using key.
func WithOMDb(baseURL, key string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.OMDb.BaseURL = baseURL
		b.cfg.OMDb.APIKey = key
	}
}

// WithoutOMDbKey clears the metadata API key.
func WithoutOMDbKey() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.OMDb.APIKey = ""
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Logging.Dir)
}

package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"moviediary/internal/config"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoadDefaultConfigUsesEnvKeyAndExpandsPaths(t *testing.T) {
	chdirTemp(t)
	t.Setenv("OMDB_API_KEY", "env-key")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantCatalog := filepath.Join(tempHome, ".local", "share", "moviediary", "movies.json")
	if cfg.Storage.Path != wantCatalog {
		t.Fatalf("unexpected storage path: got %q want %q", cfg.Storage.Path, wantCatalog)
	}
	if cfg.Storage.Format != config.FormatJSON {
		t.Fatalf("unexpected storage format: %q", cfg.Storage.Format)
	}
	if cfg.OMDb.APIKey != "env-key" {
		t.Fatalf("expected OMDb key from env, got %q", cfg.OMDb.APIKey)
	}
	if cfg.Search.Threshold != 2 || cfg.Search.CaseSensitive {
		t.Fatalf("unexpected search defaults: %+v", cfg.Search)
	}
	if cfg.Logging.Dir != filepath.Join(tempHome, ".local", "share", "moviediary", "logs") {
		t.Fatalf("unexpected log dir: %q", cfg.Logging.Dir)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.DataDir(), cfg.Logging.Dir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	chdirTemp(t)
	t.Setenv("OMDB_API_KEY", "")
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "moviediary.toml")

	type payload struct {
		Storage struct {
			Path string `toml:"path"`
		} `toml:"storage"`
		Search struct {
			Threshold     int  `toml:"threshold"`
			CaseSensitive bool `toml:"case_sensitive"`
		} `toml:"search"`
		OMDb struct {
			APIKey string `toml:"api_key"`
		} `toml:"omdb"`
	}
	custom := payload{}
	custom.Storage.Path = filepath.Join(tempDir, "data", "catalog.csv")
	custom.Search.Threshold = 4
	custom.Search.CaseSensitive = true
	custom.OMDb.APIKey = "file-key"

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("unexpected resolution: %q exists=%v", resolved, exists)
	}
	if cfg.Storage.Format != config.FormatCSV {
		t.Fatalf("expected csv format inferred from extension, got %q", cfg.Storage.Format)
	}
	if cfg.Search.Threshold != 4 || !cfg.Search.CaseSensitive {
		t.Fatalf("unexpected search config: %+v", cfg.Search)
	}
	if cfg.OMDb.APIKey != "file-key" {
		t.Fatalf("unexpected api key %q", cfg.OMDb.APIKey)
	}
}

func TestLoadDotEnvSuppliesAPIKey(t *testing.T) {
	dir := chdirTemp(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("OMDB_API_KEY", "")
	os.Unsetenv("OMDB_API_KEY")
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("OMDB_API_KEY=dotenv-key\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.OMDb.APIKey != "dotenv-key" {
		t.Fatalf("expected key from .env, got %q", cfg.OMDb.APIKey)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	chdirTemp(t)
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"unknown format", "[storage]\nformat = \"xml\"\n", "storage.format"},
		{"negative threshold", "[search]\nthreshold = -1\n", "search.threshold"},
		{"bad omdb url", "[omdb]\nbase_url = \"not a url\"\n", "omdb.base_url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"movies.json":     config.FormatJSON,
		"movies.CSV":      config.FormatCSV,
		"catalog.db":      config.FormatSQLite,
		"catalog.sqlite3": config.FormatSQLite,
		"movies":          config.FormatJSON,
		"":                config.FormatJSON,
	}
	for path, want := range tests {
		if got := config.FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestDefaultPathFollowsFormat(t *testing.T) {
	chdirTemp(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[storage]\nformat = \"sqlite\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := filepath.Join(home, ".local", "share", "moviediary", "movies.db")
	if cfg.Storage.Path != want {
		t.Fatalf("storage path = %q, want %q", cfg.Storage.Path, want)
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	chdirTemp(t)
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path, config.Storage{}); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if cfg.Website.Title != "My Movie Diary" {
		t.Fatalf("unexpected website title %q", cfg.Website.Title)
	}
}

func TestCreateSampleWithStorageChoice(t *testing.T) {
	chdirTemp(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := t.TempDir()

	tests := []struct {
		name       string
		storage    config.Storage
		wantFormat string
		wantPath   string
	}{
		{
			name:       "format only",
			storage:    config.Storage{Format: "CSV"},
			wantFormat: config.FormatCSV,
			wantPath:   filepath.Join(home, ".local", "share", "moviediary", "movies.csv"),
		},
		{
			name:       "path implies format",
			storage:    config.Storage{Path: filepath.Join(dir, "diary's movies.sqlite")},
			wantFormat: config.FormatSQLite,
			wantPath:   filepath.Join(dir, "diary's movies.sqlite"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := config.CreateSample(path, tt.storage); err != nil {
				t.Fatalf("CreateSample: %v", err)
			}
			cfg, _, _, err := config.Load(path)
			if err != nil {
				t.Fatalf("Load sample: %v", err)
			}
			if cfg.Storage.Format != tt.wantFormat || cfg.Storage.Path != tt.wantPath {
				t.Fatalf("storage = %+v, want format %q path %q", cfg.Storage, tt.wantFormat, tt.wantPath)
			}
			if cfg.Search.Threshold != 2 {
				t.Fatalf("rest of sample lost: threshold %d", cfg.Search.Threshold)
			}
		})
	}
}

func TestCreateSampleRejectsUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := config.CreateSample(path, config.Storage{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("sample written despite error: %v", err)
	}
}

package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"moviediary/internal/fileutil"
)

//go:embed sample_config.toml
var sampleConfig string

// Storage selects the catalog backend.
type Storage struct {
	Format string `toml:"format"`
	Path   string `toml:"path"`
}

// Search tunes fuzzy title matching.
type Search struct {
	Threshold     int  `toml:"threshold"`
	CaseSensitive bool `toml:"case_sensitive"`
}

// OMDb contains configuration for the Open Movie Database API.
type OMDb struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Website contains configuration for the static page export.
type Website struct {
	OutputPath  string `toml:"output_path"`
	TemplateDir string `toml:"template_dir"`
	Title       string `toml:"title"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format  string `toml:"format"`
	Level   string `toml:"level"`
	Dir     string `toml:"dir"`
	Console bool   `toml:"console"`
}

// Config encapsulates all configuration values for moviediary.
type Config struct {
	Storage Storage `toml:"storage"`
	Search  Search  `toml:"search"`
	OMDb    OMDb    `toml:"omdb"`
	Website Website `toml:"website"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	if err := loadDotEnv(); err != nil {
		return nil, "", false, err
	}

	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// loadDotEnv reads .env from the working directory when present. Variables
// already set in the environment win.
func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load .env: %w", err)
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories holding the catalog and logs.
func (c *Config) EnsureDirectories() error {
	dirs := []string{filepath.Dir(c.Storage.Path), c.Logging.Dir}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// DataDir returns the directory holding the catalog file.
func (c *Config) DataDir() string {
	return filepath.Dir(c.Storage.Path)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// Sample line defaults replaced by CreateSample when a storage choice is given.
const (
	sampleFormatLine = `format = "json"`
	samplePathLine   = `path = "~/.local/share/moviediary/movies.json"`
)

// CreateSample writes the commented sample configuration to path. A non-empty
// storage.Format selects the catalog format; an empty storage.Path then
// defaults to the standard file name for that format.
func CreateSample(path string, storage Storage) error {
	content, err := renderSample(storage)
	if err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

func renderSample(storage Storage) (string, error) {
	storage.Format = strings.ToLower(strings.TrimSpace(storage.Format))
	storage.Path = strings.TrimSpace(storage.Path)
	if storage.Format == "" && storage.Path == "" {
		return sampleConfig, nil
	}
	if storage.Format == "" {
		storage.Format = FormatFromPath(storage.Path)
	}
	if storage.Path == "" {
		storage.Path = defaultStorageDir + "/" + defaultFileName(storage.Format)
	}
	check := Config{Storage: storage}
	if err := check.validateStorage(); err != nil {
		return "", err
	}

	formatLine, err := tomlLine("format", storage.Format)
	if err != nil {
		return "", err
	}
	pathLine, err := tomlLine("path", storage.Path)
	if err != nil {
		return "", err
	}
	out := strings.Replace(sampleConfig, sampleFormatLine, formatLine, 1)
	return strings.Replace(out, samplePathLine, pathLine, 1), nil
}

// tomlLine renders a single key/value pair with TOML quoting.
func tomlLine(key, value string) (string, error) {
	data, err := toml.Marshal(map[string]string{key: value})
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", key, err)
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}

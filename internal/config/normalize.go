package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeStorage(); err != nil {
		return err
	}
	c.normalizeOMDb()
	if err := c.normalizeWebsite(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeStorage() error {
	c.Storage.Format = strings.ToLower(strings.TrimSpace(c.Storage.Format))
	c.Storage.Path = strings.TrimSpace(c.Storage.Path)
	if c.Storage.Format == "" {
		c.Storage.Format = FormatFromPath(c.Storage.Path)
	}
	if c.Storage.Path == "" {
		c.Storage.Path = filepath.Join(defaultStorageDir, defaultFileName(c.Storage.Format))
	}
	var err error
	if c.Storage.Path, err = expandPath(c.Storage.Path); err != nil {
		return fmt.Errorf("storage.path: %w", err)
	}
	return nil
}

// FormatFromPath infers a storage format from a catalog file extension,
// falling back to JSON.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(strings.TrimSpace(path))) {
	case ".csv":
		return FormatCSV
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	default:
		return defaultStorageFormat
	}
}

func (c *Config) normalizeOMDb() {
	c.OMDb.APIKey = strings.TrimSpace(c.OMDb.APIKey)
	if c.OMDb.APIKey == "" {
		if value, ok := os.LookupEnv("OMDB_API_KEY"); ok {
			c.OMDb.APIKey = strings.TrimSpace(value)
		}
	}
	c.OMDb.BaseURL = strings.TrimSpace(c.OMDb.BaseURL)
	if c.OMDb.BaseURL == "" {
		c.OMDb.BaseURL = defaultOMDbBaseURL
	}
	if c.OMDb.TimeoutSeconds <= 0 {
		c.OMDb.TimeoutSeconds = defaultOMDbTimeoutSeconds
	}
}

func (c *Config) normalizeWebsite() error {
	var err error
	if strings.TrimSpace(c.Website.OutputPath) == "" {
		c.Website.OutputPath = defaultWebsiteOutputPath
	}
	if c.Website.OutputPath, err = expandPath(c.Website.OutputPath); err != nil {
		return fmt.Errorf("website.output_path: %w", err)
	}
	if c.Website.TemplateDir, err = expandPath(strings.TrimSpace(c.Website.TemplateDir)); err != nil {
		return fmt.Errorf("website.template_dir: %w", err)
	}
	c.Website.Title = strings.TrimSpace(c.Website.Title)
	if c.Website.Title == "" {
		c.Website.Title = defaultWebsiteTitle
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	var err error
	if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateStorage(); err != nil {
		return err
	}
	if err := c.validateSearch(); err != nil {
		return err
	}
	return c.validateOMDb()
}

func (c *Config) validateStorage() error {
	switch c.Storage.Format {
	case FormatJSON, FormatCSV, FormatSQLite:
	default:
		return fmt.Errorf("storage.format: unsupported value %q (expected json, csv, or sqlite)", c.Storage.Format)
	}
	if strings.TrimSpace(c.Storage.Path) == "" {
		return errors.New("storage.path must be set")
	}
	return nil
}

func (c *Config) validateSearch() error {
	if c.Search.Threshold < 0 {
		return fmt.Errorf("search.threshold must be >= 0, got %d", c.Search.Threshold)
	}
	return nil
}

func (c *Config) validateOMDb() error {
	parsed, err := url.Parse(c.OMDb.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("omdb.base_url: invalid url %q", c.OMDb.BaseURL)
	}
	return nil
}

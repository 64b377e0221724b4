package preflight

import (
	"context"
	"path/filepath"
	"strings"

	"moviediary/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	// Catalog directory and file (always checked)
	results = append(results, CheckDirectoryAccess("Data directory", filepath.Dir(cfg.Storage.Path)))
	results = append(results, CheckCatalogFile(cfg.Storage.Format, cfg.Storage.Path))

	// Log directory
	if strings.TrimSpace(cfg.Logging.Dir) != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Logging.Dir))
	}

	// OMDb (only when a key is configured; manual adds work without it)
	if strings.TrimSpace(cfg.OMDb.APIKey) != "" {
		results = append(results, CheckOMDb(ctx, cfg.OMDb.BaseURL, cfg.OMDb.APIKey))
	}

	// Custom website templates
	if strings.TrimSpace(cfg.Website.TemplateDir) != "" {
		results = append(results, CheckTemplateDir(cfg.Website.TemplateDir))
	}

	return results
}

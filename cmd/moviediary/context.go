package main

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"moviediary/internal/catalog"
	"moviediary/internal/config"
	"moviediary/internal/fuzzy"
	"moviediary/internal/logging"
	"moviediary/internal/metadata/omdb"
	"moviediary/internal/storage"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg, logging.NewSessionID())
	})
	return c.logger, c.loggerErr
}

// serviceOptions tweak the catalog service for a single command.
type serviceOptions struct {
	threshold *int
}

// withService opens the configured backend, runs fn against a catalog
// service wired from config, and closes the backend afterwards.
func (c *commandContext) withService(fn func(*catalog.Service) error) error {
	return c.withServiceOptions(serviceOptions{}, fn)
}

func (c *commandContext) withServiceOptions(so serviceOptions, fn func(*catalog.Service) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return err
	}

	backend, err := storage.Open(cfg, storage.WithLogger(logger))
	if err != nil {
		return err
	}
	defer backend.Close()

	threshold := cfg.Search.Threshold
	if so.threshold != nil {
		threshold = *so.threshold
	}
	opts := []catalog.Option{
		catalog.WithLogger(logger),
		catalog.WithMatcher(fuzzy.NewMatcher(
			fuzzy.WithThreshold(threshold),
			fuzzy.WithCaseSensitive(cfg.Search.CaseSensitive),
		)),
	}
	if key := strings.TrimSpace(cfg.OMDb.APIKey); key != "" {
		client, err := omdb.New(key, cfg.OMDb.BaseURL,
			omdb.WithTimeout(time.Duration(cfg.OMDb.TimeoutSeconds)*time.Second))
		if err != nil {
			return err
		}
		opts = append(opts, catalog.WithFetcher(client))
	}

	svc, err := catalog.NewService(backend, opts...)
	if err != nil {
		return err
	}
	return fn(svc)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

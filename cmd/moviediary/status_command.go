package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"moviediary/internal/catalog"
	"moviediary/internal/preflight"
	"moviediary/internal/textutil"
)

type statusReport struct {
	ConfigPath string             `json:"config_path,omitempty"`
	Storage    string             `json:"storage"`
	Catalog    string             `json:"catalog"`
	Movies     int                `json:"movies"`
	Checks     []preflight.Result `json:"checks"`
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show configuration and readiness checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			report := statusReport{
				Storage: cfg.Storage.Format,
				Catalog: cfg.Storage.Path,
				Checks:  preflight.RunAll(cmd.Context(), cfg),
			}
			if ctx.configFlag != nil {
				report.ConfigPath = strings.TrimSpace(*ctx.configFlag)
			}
			countErr := ctx.withService(func(svc *catalog.Service) error {
				report.Movies = svc.List().Len()
				return nil
			})

			if jsonOut {
				if countErr != nil {
					report.Checks = append(report.Checks, preflight.Result{Name: "Catalog load", Detail: countErr.Error()})
				}
				return writeJSON(cmd, report)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			lines := renderSectionHeader("Catalog", colorize)
			lines = append(lines, renderStatusLine("Storage", statusInfo, report.Storage, colorize))
			lines = append(lines, renderStatusLine("Path", statusInfo, report.Catalog, colorize))
			if countErr != nil {
				lines = append(lines, renderStatusLine("Movies", statusError, countErr.Error(), colorize))
			} else {
				lines = append(lines, renderStatusLine("Movies", statusOK, textutil.Plural(report.Movies, "movie", "movies"), colorize))
			}
			if strings.TrimSpace(cfg.OMDb.APIKey) == "" {
				lines = append(lines, renderStatusLine("OMDb", statusWarn, "API key not configured; add needs --rating", colorize))
			}
			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Readiness", colorize)...)
			lines = append(lines, preflightLines(report.Checks, colorize)...)
			for _, line := range lines {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

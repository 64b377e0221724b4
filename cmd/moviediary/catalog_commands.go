package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"moviediary/internal/catalog"
	"moviediary/internal/movie"
)

type searchResult struct {
	movie.Movie
	Distance int `json:"distance"`
}

func nonNilMovies(movies []movie.Movie) []movie.Movie {
	if movies == nil {
		return []movie.Movie{}
	}
	return movies
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List every movie in the diary",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *catalog.Service) error {
				if jsonOut {
					return writeJSON(cmd, nonNilMovies(svc.List().Movies()))
				}
				printList(cmd.OutOrStdout(), svc)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func newAddCommand(ctx *commandContext) *cobra.Command {
	var year, poster, ratingText string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a movie, looking it up on OMDb unless --rating is given",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := joinTitle(args)
			manual := cmd.Flags().Changed("rating")
			var rating float64
			if manual {
				parsed, err := parseRating(ratingText)
				if err != nil {
					return err
				}
				rating = parsed
			} else if cmd.Flags().Changed("year") || cmd.Flags().Changed("poster") {
				return fmt.Errorf("--year and --poster require --rating")
			}
			return ctx.withService(func(svc *catalog.Service) error {
				if manual {
					return addManual(cmd.OutOrStdout(), svc, title, strings.TrimSpace(year), rating, strings.TrimSpace(poster))
				}
				return importMovie(cmd.Context(), cmd.OutOrStdout(), svc, title)
			})
		},
	}
	cmd.Flags().StringVar(&year, "year", "", "Release year (manual add)")
	cmd.Flags().StringVar(&ratingText, "rating", "", "Rating; when set the movie is added without an OMDb lookup")
	cmd.Flags().StringVar(&poster, "poster", "", "Poster image URL (manual add)")
	return cmd
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <title>",
		Aliases: []string{"rm"},
		Short:   "Delete a movie",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := joinTitle(args)
			return ctx.withService(func(svc *catalog.Service) error {
				return deleteMovie(cmd.OutOrStdout(), svc, title)
			})
		},
	}
}

func newUpdateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "update <title> <rating>",
		Short: "Change the rating of a movie",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := joinTitle(args[:len(args)-1])
			rating, err := parseRating(args[len(args)-1])
			if err != nil {
				return err
			}
			return ctx.withService(func(svc *catalog.Service) error {
				return updateMovie(cmd.OutOrStdout(), svc, title, rating)
			})
		},
	}
}

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show rating statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *catalog.Service) error {
				if jsonOut {
					return writeJSON(cmd, svc.Stats())
				}
				printStats(cmd.OutOrStdout(), svc)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func newRandomCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "random",
		Short: "Pick a random movie",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *catalog.Service) error {
				if jsonOut {
					m, err := svc.Random()
					if err != nil {
						return err
					}
					return writeJSON(cmd, m)
				}
				return printRandom(cmd.OutOrStdout(), svc)
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	var threshold int
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find movies by approximate title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := joinTitle(args)
			var so serviceOptions
			if cmd.Flags().Changed("threshold") {
				if threshold < 0 {
					return fmt.Errorf("--threshold must be zero or greater")
				}
				so.threshold = &threshold
			}
			return ctx.withServiceOptions(so, func(svc *catalog.Service) error {
				if jsonOut {
					matches := svc.Search(query)
					results := make([]searchResult, 0, len(matches))
					for _, m := range matches {
						results = append(results, searchResult{Movie: m.Movie, Distance: m.Distance})
					}
					return writeJSON(cmd, results)
				}
				printSearch(cmd.OutOrStdout(), svc, query)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	cmd.Flags().IntVar(&threshold, "threshold", 0, "Maximum edit distance (overrides search.threshold)")
	return cmd
}

func newSortedCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "sorted",
		Short: "List movies from best to worst rating",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *catalog.Service) error {
				if jsonOut {
					return writeJSON(cmd, nonNilMovies(svc.SortedByRating()))
				}
				printSorted(cmd.OutOrStdout(), svc)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func newWebsiteCommand(ctx *commandContext) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "website",
		Short: "Generate a static HTML page of the diary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return ctx.withService(func(svc *catalog.Service) error {
				return generateWebsite(cmd.OutOrStdout(), svc, cfg, output)
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination HTML file (overrides website.output_path)")
	return cmd
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"moviediary/internal/catalog"
	"moviediary/internal/config"
	"moviediary/internal/metadata"
	"moviediary/internal/website"
)

const noMoviesMessage = "No movies have been added yet."

// joinTitle rebuilds a multi-word title from positional arguments.
func joinTitle(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

func parseRating(text string) (float64, error) {
	text = strings.TrimSpace(text)
	rating, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid rating %q: must be a number", text)
	}
	if math.IsNaN(rating) || math.IsInf(rating, 0) {
		return 0, fmt.Errorf("invalid rating %q: must be a finite number", text)
	}
	return rating, nil
}

func printList(out io.Writer, svc *catalog.Service) {
	movies := svc.List().Movies()
	if len(movies) == 0 {
		fmt.Fprintln(out, noMoviesMessage)
		return
	}
	fmt.Fprintf(out, "%d movies in total\n", len(movies))
	fmt.Fprintln(out, movieTable(movies, false))
}

func addManual(out io.Writer, svc *catalog.Service, title, year string, rating float64, poster string) error {
	added, err := svc.Add(title, year, rating, poster)
	if err != nil {
		return err
	}
	if !added {
		return fmt.Errorf("movie %q already exists", title)
	}
	fmt.Fprintf(out, "Movie '%s' added successfully.\n", title)
	return nil
}

func importMovie(ctx context.Context, out io.Writer, svc *catalog.Service, title string) error {
	m, err := svc.Import(ctx, title)
	switch {
	case err == nil:
		fmt.Fprintf(out, "Movie '%s' (%s, rated %s) added successfully.\n", m.Title, m.Year, formatRating(m.Rating))
		return nil
	case errors.Is(err, catalog.ErrDuplicate):
		return fmt.Errorf("movie %q already exists", title)
	case errors.Is(err, catalog.ErrNoFetcher):
		return fmt.Errorf("omdb api key not configured; pass --rating to add %q manually", title)
	case errors.Is(err, metadata.ErrNotFound):
		return fmt.Errorf("no movie found with the title %q", title)
	case errors.Is(err, metadata.ErrIncomplete):
		return fmt.Errorf("incomplete movie data for %q: %w", title, err)
	case errors.Is(err, metadata.ErrUnavailable):
		return fmt.Errorf("unable to reach omdb: %w", err)
	default:
		return err
	}
}

func deleteMovie(out io.Writer, svc *catalog.Service, title string) error {
	deleted, err := svc.Delete(title)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("movie %q does not exist", title)
	}
	fmt.Fprintf(out, "Movie '%s' deleted successfully.\n", title)
	return nil
}

func updateMovie(out io.Writer, svc *catalog.Service, title string, rating float64) error {
	updated, err := svc.Update(title, rating)
	if err != nil {
		return err
	}
	if !updated {
		return fmt.Errorf("movie %q does not exist", title)
	}
	fmt.Fprintf(out, "Movie '%s' successfully updated to %s.\n", title, formatRating(rating))
	return nil
}

func printStats(out io.Writer, svc *catalog.Service) {
	fmt.Fprintln(out, statsTable(svc.Stats()))
}

func printRandom(out io.Writer, svc *catalog.Service) error {
	m, err := svc.Random()
	if errors.Is(err, catalog.ErrEmptyCatalog) {
		return errors.New("there are no movies in the catalog")
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Your movie for tonight: %s (%s), it's rated %s\n", m.Title, m.Year, formatRating(m.Rating))
	return nil
}

func printSearch(out io.Writer, svc *catalog.Service, query string) {
	matches := svc.Search(query)
	if len(matches) == 0 {
		fmt.Fprintf(out, "No movies found matching '%s'\n", query)
		return
	}
	fmt.Fprintf(out, "Found %d movie(s) matching '%s':\n", len(matches), query)
	fmt.Fprintln(out, matchTable(matches))
}

func printSorted(out io.Writer, svc *catalog.Service) {
	movies := svc.SortedByRating()
	if len(movies) == 0 {
		fmt.Fprintln(out, noMoviesMessage)
		return
	}
	fmt.Fprintln(out, movieTable(movies, true))
}

func generateWebsite(out io.Writer, svc *catalog.Service, cfg *config.Config, outputPath string) error {
	movies := svc.List().Movies()
	if len(movies) == 0 {
		return errors.New("no movies have been added yet; can't generate website")
	}
	target := cfg.Website.OutputPath
	if strings.TrimSpace(outputPath) != "" {
		expanded, err := config.ExpandPath(outputPath)
		if err != nil {
			return fmt.Errorf("resolve output path: %w", err)
		}
		target = expanded
	}
	opts := website.Options{Title: cfg.Website.Title, TemplateDir: cfg.Website.TemplateDir}
	if err := website.Generate(target, movies, opts); err != nil {
		return err
	}
	fmt.Fprintf(out, "Website was generated successfully: %s\n", target)
	return nil
}

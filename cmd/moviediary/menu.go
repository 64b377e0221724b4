package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"moviediary/internal/catalog"
	"moviediary/internal/config"
)

type menuEntry struct {
	key   string
	label string
	run   func(s *menuSession) error
}

var menuEntries = []menuEntry{
	{"1", "List movies", func(s *menuSession) error { printList(s.out, s.svc); return nil }},
	{"2", "Add movie", (*menuSession).add},
	{"3", "Delete movie", (*menuSession).delete},
	{"4", "Update movie", (*menuSession).update},
	{"5", "Stats", func(s *menuSession) error { printStats(s.out, s.svc); return nil }},
	{"6", "Random movie", func(s *menuSession) error { return printRandom(s.out, s.svc) }},
	{"7", "Search movie", (*menuSession).search},
	{"8", "Movies sorted by rating", func(s *menuSession) error { printSorted(s.out, s.svc); return nil }},
	{"9", "Generate website", func(s *menuSession) error { return generateWebsite(s.out, s.svc, s.cfg, "") }},
}

// menuSession is one interactive run over a single open catalog.
type menuSession struct {
	ctx     context.Context
	in      *bufio.Scanner
	out     io.Writer
	svc     *catalog.Service
	cfg     *config.Config
	heading string
}

func newMenuCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Run the interactive numbered menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return ctx.withService(func(svc *catalog.Service) error {
				s := &menuSession{
					ctx:     cmd.Context(),
					in:      bufio.NewScanner(cmd.InOrStdin()),
					out:     cmd.OutOrStdout(),
					svc:     svc,
					cfg:     cfg,
					heading: cfg.Website.Title,
				}
				return s.run()
			})
		},
	}
}

func (s *menuSession) run() error {
	fmt.Fprintf(s.out, "********** %s **********\n", s.heading)
	for {
		s.printMenu()
		choice, ok := s.prompt("Enter choice (0-9): ")
		if !ok {
			fmt.Fprintln(s.out)
			return s.in.Err()
		}
		if choice == "0" {
			fmt.Fprintln(s.out, "Bye!")
			return nil
		}
		entry, found := lookupMenuEntry(choice)
		if !found {
			fmt.Fprintln(s.out, "Invalid choice. Please try again.")
			continue
		}
		if err := entry.run(s); err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
		if _, ok := s.prompt("\nPress enter to continue "); !ok {
			return s.in.Err()
		}
	}
}

func (s *menuSession) printMenu() {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "Menu:")
	fmt.Fprintln(s.out, "0. Exit")
	for _, e := range menuEntries {
		fmt.Fprintf(s.out, "%s. %s\n", e.key, e.label)
	}
	fmt.Fprintln(s.out)
}

func lookupMenuEntry(key string) (menuEntry, bool) {
	for _, e := range menuEntries {
		if e.key == key {
			return e, true
		}
	}
	return menuEntry{}, false
}

// prompt reports false once input is exhausted.
func (s *menuSession) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *menuSession) promptTitle(label string) (string, bool) {
	title, ok := s.prompt(label)
	if !ok {
		return "", false
	}
	if title == "" {
		fmt.Fprintln(s.out, "Title must not be empty.")
		return "", false
	}
	return title, true
}

func (s *menuSession) add() error {
	title, ok := s.promptTitle("Enter new movie name: ")
	if !ok {
		return nil
	}
	if s.svc.Exists(title) {
		return fmt.Errorf("movie %q already exists", title)
	}
	ratingText, ok := s.prompt("Enter the rating (leave empty to look it up on OMDb): ")
	if !ok {
		return nil
	}
	if ratingText == "" {
		return importMovie(s.ctx, s.out, s.svc, title)
	}
	rating, err := parseRating(ratingText)
	if err != nil {
		return err
	}
	year, _ := s.prompt("Enter the year of release: ")
	poster, _ := s.prompt("Enter the poster URL: ")
	return addManual(s.out, s.svc, title, year, rating, poster)
}

func (s *menuSession) delete() error {
	title, ok := s.promptTitle("Enter the movie name to delete: ")
	if !ok {
		return nil
	}
	return deleteMovie(s.out, s.svc, title)
}

func (s *menuSession) update() error {
	title, ok := s.promptTitle("Enter the movie name to update: ")
	if !ok {
		return nil
	}
	if !s.svc.Exists(title) {
		return fmt.Errorf("movie %q does not exist", title)
	}
	ratingText, ok := s.prompt("Enter the new rating: ")
	if !ok {
		return nil
	}
	rating, err := parseRating(ratingText)
	if err != nil {
		return err
	}
	return updateMovie(s.out, s.svc, title, rating)
}

func (s *menuSession) search() error {
	query, ok := s.prompt("Enter part of the movie name: ")
	if !ok {
		return nil
	}
	printSearch(s.out, s.svc, query)
	return nil
}

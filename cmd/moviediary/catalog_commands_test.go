package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"moviediary/internal/catalog"
	"moviediary/internal/config"
	"moviediary/internal/movie"
	"moviediary/internal/testsupport"
)

func TestListEmptyCatalog(t *testing.T) {
	env := setupCLITestEnv(t, nil)
	out := mustRunCLI(t, env, "list")
	requireContains(t, out, "No movies have been added yet.")

	out = mustRunCLI(t, env, "list", "--json")
	if strings.TrimSpace(out) != "[]" {
		t.Fatalf("expected empty JSON array, got %q", out)
	}
}

func TestAddManualListAndJSON(t *testing.T) {
	env := setupCLITestEnv(t, nil)

	out := mustRunCLI(t, env, "add", "The", "Big", "Lebowski", "--rating", "8.1", "--year", "1998")
	requireContains(t, out, "Movie 'The Big Lebowski' added successfully.")

	out = mustRunCLI(t, env, "list")
	requireContains(t, out, "The Big Lebowski")
	requireContains(t, out, "8.1")

	out = mustRunCLI(t, env, "list", "--json")
	var movies []movie.Movie
	if err := json.Unmarshal([]byte(out), &movies); err != nil {
		t.Fatalf("decode list json: %v\n%s", err, out)
	}
	want := movie.Movie{Title: "The Big Lebowski", Year: "1998", Rating: 8.1}
	if len(movies) != 1 || movies[0] != want {
		t.Fatalf("unexpected movies %+v", movies)
	}

	_, _, err := runCLI(t, []string{"add", "The Big Lebowski", "--rating", "2"}, env.configPath)
	requireErrorContains(t, err, "already exists")
}

func TestAddRejectsInvalidRating(t *testing.T) {
	env := setupCLITestEnv(t, nil)
	for _, rating := range []string{"great", "NaN", "Inf"} {
		_, _, err := runCLI(t, []string{"add", "Heat", "--rating", rating}, env.configPath)
		requireErrorContains(t, err, "invalid rating")
	}
	_, _, err := runCLI(t, []string{"add", "Heat", "--year", "1995"}, env.configPath)
	requireErrorContains(t, err, "require --rating")
}

func TestAddLooksUpOMDb(t *testing.T) {
	env := setupCLITestEnv(t, omdbMovies{
		"Inception": `{"Title":"Inception","Year":"2010","imdbRating":"8.8","Poster":"https://img/inception.jpg","Response":"True"}`,
		"Obscure":   `{"Title":"Obscure","Year":"2024","imdbRating":"N/A","Poster":"N/A","Response":"True"}`,
	})

	out := mustRunCLI(t, env, "add", "Inception")
	requireContains(t, out, "Movie 'Inception' (2010, rated 8.8) added successfully.")

	_, _, err := runCLI(t, []string{"add", "Inception"}, env.configPath)
	requireErrorContains(t, err, "already exists")

	_, _, err = runCLI(t, []string{"add", "Nonexistent Film"}, env.configPath)
	requireErrorContains(t, err, "no movie found")

	_, _, err = runCLI(t, []string{"add", "Obscure"}, env.configPath)
	requireErrorContains(t, err, "incomplete movie data")

	out = mustRunCLI(t, env, "list", "--json")
	if strings.Count(out, `"title"`) != 1 {
		t.Fatalf("failed lookups should not add movies:\n%s", out)
	}
}

func TestAddWithoutAPIKeyNeedsRating(t *testing.T) {
	env := setupCLITestEnv(t, nil, testsupport.WithoutOMDbKey())
	_, _, err := runCLI(t, []string{"add", "Heat"}, env.configPath)
	requireErrorContains(t, err, "api key not configured")
}

func TestAddReportsUnreachableOMDb(t *testing.T) {
	env := setupCLITestEnv(t, nil)
	env.omdb.Close()
	_, _, err := runCLI(t, []string{"add", "Heat"}, env.configPath)
	requireErrorContains(t, err, "unable to reach omdb")
}

func TestUpdateAndDelete(t *testing.T) {
	env := setupCLITestEnv(t, nil)
	mustRunCLI(t, env, "add", "Heat", "--rating", "8.3")

	out := mustRunCLI(t, env, "update", "Heat", "9")
	requireContains(t, out, "Movie 'Heat' successfully updated to 9.")

	_, _, err := runCLI(t, []string{"update", "Missing", "Movie", "5"}, env.configPath)
	requireErrorContains(t, err, `movie "Missing Movie" does not exist`)

	_, _, err = runCLI(t, []string{"update", "Heat", "ten"}, env.configPath)
	requireErrorContains(t, err, "invalid rating")

	out = mustRunCLI(t, env, "delete", "Heat")
	requireContains(t, out, "Movie 'Heat' deleted successfully.")

	_, _, err = runCLI(t, []string{"delete", "Heat"}, env.configPath)
	requireErrorContains(t, err, "does not exist")
}

func TestSortedStatsAndRandom(t *testing.T) {
	env := setupCLITestEnv(t, nil)

	_, _, err := runCLI(t, []string{"random"}, env.configPath)
	requireErrorContains(t, err, "no movies")

	out := mustRunCLI(t, env, "stats", "--json")
	var empty catalog.Stats
	if err := json.Unmarshal([]byte(out), &empty); err != nil || empty != (catalog.Stats{}) {
		t.Fatalf("empty stats = %+v (err %v)", empty, err)
	}

	mustRunCLI(t, env, "add", "A", "--rating", "5")
	mustRunCLI(t, env, "add", "B", "--rating", "9")
	mustRunCLI(t, env, "add", "C", "--rating", "9")

	out = mustRunCLI(t, env, "sorted", "--json")
	var sorted []movie.Movie
	if err := json.Unmarshal([]byte(out), &sorted); err != nil {
		t.Fatalf("decode sorted: %v", err)
	}
	if len(sorted) != 3 || sorted[0].Title != "B" || sorted[1].Title != "C" || sorted[2].Title != "A" {
		t.Fatalf("unexpected order %+v", sorted)
	}

	out = mustRunCLI(t, env, "sorted")
	if strings.Index(out, " B ") > strings.Index(out, " A ") {
		t.Fatalf("sorted table out of order:\n%s", out)
	}

	out = mustRunCLI(t, env, "stats")
	requireContains(t, out, "Number of movies")
	requireContains(t, out, "7.67")

	out = mustRunCLI(t, env, "random")
	requireContains(t, out, "Your movie for tonight:")
}

func TestSearchCommand(t *testing.T) {
	env := setupCLITestEnv(t, nil)
	mustRunCLI(t, env, "add", "Alien", "--rating", "8.5")
	mustRunCLI(t, env, "add", "Aliens", "--rating", "8.4")
	mustRunCLI(t, env, "add", "Heat", "--rating", "8.3")

	out := mustRunCLI(t, env, "search", "alien")
	requireContains(t, out, "Found 2 movie(s) matching 'alien'")

	out = mustRunCLI(t, env, "search", "alien", "--threshold", "0", "--json")
	var results []searchResult
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("decode search: %v", err)
	}
	if len(results) != 1 || results[0].Title != "Alien" || results[0].Distance != 0 {
		t.Fatalf("unexpected results %+v", results)
	}

	out = mustRunCLI(t, env, "search", "zzzzzzzz")
	requireContains(t, out, "No movies found matching 'zzzzzzzz'")

	_, _, err := runCLI(t, []string{"search", "x", "--threshold", "-1"}, env.configPath)
	requireErrorContains(t, err, "--threshold")
}

func TestWebsiteCommand(t *testing.T) {
	env := setupCLITestEnv(t, nil)
	_, _, err := runCLI(t, []string{"website"}, env.configPath)
	requireErrorContains(t, err, "can't generate website")

	mustRunCLI(t, env, "add", "Up", "--rating", "8.2", "--year", "2009", "--poster", "https://img/up.jpg")
	target := filepath.Join(env.baseDir, "export", "site.html")
	out := mustRunCLI(t, env, "website", "--output", target)
	requireContains(t, out, "Website was generated successfully")

	page, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read website: %v", err)
	}
	requireContains(t, string(page), `src="https://img/up.jpg"`)

	mustRunCLI(t, env, "website")
	if _, err := os.Stat(env.cfg.Website.OutputPath); err != nil {
		t.Fatalf("expected default website output: %v", err)
	}
}

func TestCommandsWorkWithEveryBackend(t *testing.T) {
	for _, format := range []string{config.FormatCSV, config.FormatSQLite} {
		t.Run(format, func(t *testing.T) {
			env := setupCLITestEnv(t, nil, testsupport.WithStorage(format))
			mustRunCLI(t, env, "add", "Crouching Tiger, Hidden Dragon", "--rating", "7.9")
			mustRunCLI(t, env, "update", "Crouching Tiger, Hidden Dragon", "8")
			out := mustRunCLI(t, env, "list", "--json")
			requireContains(t, out, `"title": "Crouching Tiger, Hidden Dragon"`)
			requireContains(t, out, `"rating": 8`)
			if _, err := os.Stat(env.cfg.Storage.Path); err != nil {
				t.Fatalf("expected catalog file: %v", err)
			}
		})
	}
}

package website_test

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"moviediary/internal/movie"
	"moviediary/internal/testsupport"
	"moviediary/internal/website"
)

func TestRenderBuildsGridAndInlinesCSS(t *testing.T) {
	movies := []movie.Movie{
		{Title: "Heat", Year: "1995", Rating: 8.3, Poster: "https://img/heat.jpg"},
		{Title: "Alien", Year: "1979", Rating: 8.5, Poster: "https://img/alien.jpg"},
	}
	var buf bytes.Buffer
	if err := website.Render(&buf, movies, website.Options{Title: "Favourites"}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	page := buf.String()

	for _, want := range []string{
		"<title>Favourites</title>",
		`<img class="movie-poster" src="https://img/heat.jpg" alt="Heat"/>`,
		`<div class="movie-title">Alien</div>`,
		`<div class="movie-year">1979</div>`,
		"<style>",
		".movie-grid",
	} {
		if !strings.Contains(page, want) {
			t.Fatalf("page missing %q:\n%s", want, page)
		}
	}
	if strings.Contains(page, "__TEMPLATE_") {
		t.Fatal("placeholders left in page")
	}
	if strings.Index(page, "<style>") > strings.Index(page, "</head>") {
		t.Fatal("css not inlined inside head")
	}
	if strings.Index(page, "Heat") > strings.Index(page, ">Alien<") {
		t.Fatal("grid not in catalog order")
	}
}

func TestRenderEscapesValues(t *testing.T) {
	movies := []movie.Movie{{Title: `<script>alert("x")</script>`, Year: "2000 & 1", Poster: `" onerror="boom`}}
	var buf bytes.Buffer
	if err := website.Render(&buf, movies, website.Options{Title: "A & B"}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	page := buf.String()
	if strings.Contains(page, "<script>") {
		t.Fatal("title not escaped")
	}
	for _, want := range []string{"&lt;script&gt;", "2000 &amp; 1", "&#34; onerror=&#34;boom", "A &amp; B"} {
		if !strings.Contains(page, want) {
			t.Fatalf("page missing escaped %q", want)
		}
	}
}

func TestRenderRefusesEmptyCatalog(t *testing.T) {
	if err := website.Render(&bytes.Buffer{}, nil, website.Options{}); !errors.Is(err, website.ErrNoMovies) {
		t.Fatalf("expected ErrNoMovies, got %v", err)
	}
}

func TestRenderUsesTemplateDir(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, website.TemplateFile), "<html><head></head><body>__TEMPLATE_TITLE__|__TEMPLATE_MOVIE_GRID__</body></html>")
	testsupport.WriteFile(t, filepath.Join(dir, website.StyleFile), "p{}")

	var buf bytes.Buffer
	err := website.Render(&buf, []movie.Movie{{Title: "Up", Year: "2009"}}, website.Options{TemplateDir: dir})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	page := buf.String()
	if !strings.HasPrefix(page, "<html><head><style>\np{}</style>\n</head><body>My Movie Diary|") {
		t.Fatalf("unexpected page:\n%s", page)
	}
}

func TestRenderMissingTemplate(t *testing.T) {
	err := website.Render(&bytes.Buffer{}, []movie.Movie{{Title: "Up"}}, website.Options{TemplateDir: t.TempDir()})
	if err == nil {
		t.Fatal("expected error for missing template")
	}
}

func TestGenerateWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "movie_website.html")
	if err := website.Generate(path, []movie.Movie{{Title: "Up", Year: "2009"}}, website.Options{}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if page := testsupport.ReadFile(t, path); !strings.Contains(page, `<div class="movie-title">Up</div>`) {
		t.Fatalf("unexpected page:\n%s", page)
	}
}

package website

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"moviediary/internal/fileutil"
	"moviediary/internal/movie"
)

const (
	// TemplateFile is the page template name, embedded or in Options.TemplateDir.
	TemplateFile = "index_template.html"
	// StyleFile is the stylesheet name, embedded or in Options.TemplateDir.
	StyleFile = "style.css"

	titlePlaceholder = "__TEMPLATE_TITLE__"
	gridPlaceholder  = "__TEMPLATE_MOVIE_GRID__"
	headClose        = "</head>"
)

// DefaultTitle heads the page when Options.Title is empty.
const DefaultTitle = "My Movie Diary"

// ErrNoMovies is returned when there is nothing to render.
var ErrNoMovies = errors.New("no movies to render")

//go:embed assets/index_template.html assets/style.css
var assets embed.FS

// Options controls page rendering.
type Options struct {
	Title       string
	TemplateDir string
}

// Render writes the page for movies to w.
func Render(w io.Writer, movies []movie.Movie, opts Options) error {
	if len(movies) == 0 {
		return ErrNoMovies
	}
	tmpl, css, err := loadAssets(opts.TemplateDir)
	if err != nil {
		return err
	}
	if !strings.Contains(tmpl, gridPlaceholder) {
		return fmt.Errorf("template %s lacks %s", TemplateFile, gridPlaceholder)
	}

	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = DefaultTitle
	}

	page := strings.NewReplacer(
		titlePlaceholder, html.EscapeString(title),
		gridPlaceholder, movieGrid(movies),
	).Replace(tmpl)
	page = strings.Replace(page, headClose, "<style>\n"+css+"</style>\n"+headClose, 1)

	if _, err := io.WriteString(w, page); err != nil {
		return fmt.Errorf("write page: %w", err)
	}
	return nil
}

// Generate renders movies and atomically replaces the file at path.
func Generate(path string, movies []movie.Movie, opts Options) error {
	var buf bytes.Buffer
	if err := Render(&buf, movies, opts); err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write website: %w", err)
	}
	return nil
}

func movieGrid(movies []movie.Movie) string {
	var b strings.Builder
	for _, m := range movies {
		b.WriteString("        <li>\n")
		b.WriteString("            <div class=\"movie\">\n")
		fmt.Fprintf(&b, "                <img class=\"movie-poster\" src=\"%s\" alt=\"%s\"/>\n",
			html.EscapeString(m.Poster), html.EscapeString(m.Title))
		fmt.Fprintf(&b, "                <div class=\"movie-title\">%s</div>\n", html.EscapeString(m.Title))
		fmt.Fprintf(&b, "                <div class=\"movie-year\">%s</div>\n", html.EscapeString(m.Year))
		fmt.Fprintf(&b, "                <div class=\"movie-rating\">%s</div>\n", strconv.FormatFloat(m.Rating, 'f', -1, 64))
		b.WriteString("            </div>\n")
		b.WriteString("        </li>\n")
	}
	return b.String()
}

func loadAssets(dir string) (string, string, error) {
	var fsys fs.FS
	if dir = strings.TrimSpace(dir); dir != "" {
		fsys = os.DirFS(dir)
	} else {
		sub, err := fs.Sub(assets, "assets")
		if err != nil {
			return "", "", fmt.Errorf("open embedded assets: %w", err)
		}
		fsys = sub
	}
	tmpl, err := fs.ReadFile(fsys, TemplateFile)
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", displayPath(dir, TemplateFile), err)
	}
	css, err := fs.ReadFile(fsys, StyleFile)
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", displayPath(dir, StyleFile), err)
	}
	return string(tmpl), string(css), nil
}

func displayPath(dir, name string) string {
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}

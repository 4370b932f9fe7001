// Package render turns leaderboard snapshots into HTML pages, both for the
// live server and for a static site build.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"github.com/Billy-Davies-2/tierboard/internal/logger"
	"github.com/Billy-Davies-2/tierboard/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"overall", "tiers", "profile", "search", "notfound"}

// Board is the read side of a leaderboard snapshot.
type Board interface {
	Leaderboard() []models.Player
	Categories() []models.Category
	TierList(category models.Category) models.TierList
	Version() string
}

// Page is the data every template receives.
type Page struct {
	Title      string
	Active     string
	Categories []models.Category
	Links      Links
	School     string
	Version    string

	Rows    []Row
	Columns []Column
	Profile *models.PlayerProfile
	Query   string
	Results []Row
	Missing string
}

// Renderer holds the parsed page templates.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		tmpl, err := template.ParseFS(templateFS, "templates/base.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

func (r *Renderer) page(b Board, links Links, title, active string) Page {
	return Page{
		Title:      title,
		Active:     active,
		Categories: b.Categories(),
		Links:      links,
		School:     SchoolURL,
		Version:    b.Version(),
	}
}

// execute renders into a buffer first so a template error never leaves a
// half-written response.
func (r *Renderer) execute(w io.Writer, name string, data Page) error {
	var buf bytes.Buffer
	if err := r.pages[name].ExecuteTemplate(&buf, "base.html", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Overall writes the ranked leaderboard.
func (r *Renderer) Overall(w io.Writer, b Board, links Links) error {
	data := r.page(b, links, "Overall", "Overall")
	data.Rows = newRows(b.Leaderboard(), RowAvatarSize)
	return r.execute(w, "overall", data)
}

// TierList writes the five-column grid for category.
func (r *Renderer) TierList(w io.Writer, b Board, links Links, category models.Category) error {
	data := r.page(b, links, string(category), string(category))
	data.Columns = newColumns(b.TierList(category))
	return r.execute(w, "tiers", data)
}

// Profile writes the detail page for a ranked player.
func (r *Renderer) Profile(w io.Writer, b Board, links Links, p models.Player) error {
	profile := NewProfile(p)
	data := r.page(b, links, p.Name, "")
	data.Profile = &profile
	return r.execute(w, "profile", data)
}

// Search writes the suggestion list for query.
func (r *Renderer) Search(w io.Writer, b Board, links Links, query string, results []models.Player) error {
	data := r.page(b, links, "Search", "")
	data.Query = query
	data.Results = newRows(results, SearchAvatarSize)
	return r.execute(w, "search", data)
}

// NotFound writes the page shown for an unknown player name.
func (r *Renderer) NotFound(w io.Writer, b Board, links Links, name string) error {
	data := r.page(b, links, "Not found", "")
	data.Missing = name
	return r.execute(w, "notfound", data)
}

// Build writes a static copy of the site into dir: index.html, one page per
// category under tiers/ and one page per player under players/.
func (r *Renderer) Build(dir string, b Board) error {
	for _, sub := range []string{"tiers", "players"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return err
		}
	}

	root := Links{Static: true}
	nested := Links{Static: true, Root: "../"}

	if err := writePage(filepath.Join(dir, "index.html"), func(w io.Writer) error {
		return r.Overall(w, b, root)
	}); err != nil {
		return err
	}

	for _, category := range b.Categories() {
		path := filepath.Join(dir, "tiers", fileName(string(category)))
		if err := writePage(path, func(w io.Writer) error {
			return r.TierList(w, b, nested, category)
		}); err != nil {
			return err
		}
	}

	players := b.Leaderboard()
	for _, p := range players {
		path := filepath.Join(dir, "players", fileName(p.Name))
		if err := writePage(path, func(w io.Writer) error {
			return r.Profile(w, b, nested, p)
		}); err != nil {
			return err
		}
	}

	logger.Info("Static site written", "dir", dir, "player_count", len(players), "version", b.Version())
	return nil
}

func writePage(path string, fn func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

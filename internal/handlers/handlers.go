package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Billy-Davies-2/tierboard/internal/board"
	"github.com/Billy-Davies-2/tierboard/internal/logger"
	"github.com/Billy-Davies-2/tierboard/internal/metrics"
	"github.com/Billy-Davies-2/tierboard/internal/models"
	"github.com/Billy-Davies-2/tierboard/internal/render"
)

// Board is everything the HTTP layer needs from the leaderboard.
type Board interface {
	render.Board
	Ready() bool
	LoadedAt() time.Time
	Reload(ctx context.Context) error
	Profile(name string) (models.Player, error)
	Search(query string) []models.Player
}

// Handlers serves the leaderboard pages and JSON API
type Handlers struct {
	board    Board
	renderer *render.Renderer
	links    render.Links
}

// New creates the handler set
func New(b Board, r *render.Renderer) *Handlers {
	return &Handlers{board: b, renderer: r}
}

// NewRouter wires every route and the shared middleware.
func NewRouter(h *Handlers, m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(instrument(m))

	r.Get("/healthz", h.Liveness)
	r.Get("/readyz", h.Readiness)
	r.Handle("/metrics", m.Handler())

	r.Group(func(pages chi.Router) {
		pages.Use(h.requireLoaded(false))
		pages.Get("/", h.OverallPage)
		pages.Get("/tiers/{category}", h.TierListPage)
		pages.Get("/players/{name}", h.ProfilePage)
		pages.Get("/search", h.SearchPage)
	})

	r.Route("/api", func(api chi.Router) {
		api.Post("/reload", h.Reload)

		api.Group(func(read chi.Router) {
			read.Use(h.requireLoaded(true))
			read.Get("/leaderboard", h.GetLeaderboard)
			read.Get("/categories", h.ListCategories)
			read.Get("/tiers/{category}", h.GetTierList)
			read.Get("/players/{name}", h.GetPlayer)
			read.Get("/search", h.SearchPlayers)
		})
	})

	return r
}

// pathParam returns a decoded route parameter. chi matches on the raw path
// when the request carries escaped separators.
func pathParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v
	}
	if decoded, err := url.PathUnescape(v); err == nil {
		return decoded
	}
	return v
}

// requireLoaded answers 503 until the first successful reload.
func (h *Handlers) requireLoaded(asJSON bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !h.board.Ready() {
				if asJSON {
					respondWithError(w, board.ErrNotLoaded)
				} else {
					http.Error(w, "Leaderboard is loading, try again shortly", http.StatusServiceUnavailable)
				}
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Liveness reports that the process is up
func (h *Handlers) Liveness(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness reports whether a leaderboard snapshot is being served
func (h *Handlers) Readiness(w http.ResponseWriter, r *http.Request) {
	if !h.board.Ready() {
		respondWithJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "loading"})
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]any{
		"status":   "ready",
		"version":  h.board.Version(),
		"loadedAt": h.board.LoadedAt().UTC().Format(time.RFC3339),
	})
}

// GetLeaderboard returns every player in rank order
func (h *Handlers) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.board.Leaderboard())
}

// ListCategories returns the category names in tier-list order
func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.board.Categories())
}

// GetTierList returns the five buckets for one category
func (h *Handlers) GetTierList(w http.ResponseWriter, r *http.Request) {
	category := models.Category(pathParam(r, "category"))
	respondWithJSON(w, http.StatusOK, h.board.TierList(category))
}

// GetPlayer returns the profile of one player
func (h *Handlers) GetPlayer(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "name")

	p, err := h.board.Profile(name)
	if err != nil {
		logger.Debug("Player lookup failed", "name", name, "error", err)
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, render.NewProfile(p))
}

// SearchPlayers returns players whose name contains q, ignoring case
func (h *Handlers) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.board.Search(r.URL.Query().Get("q")))
}

// Reload recomputes the leaderboard from the roster source
func (h *Handlers) Reload(w http.ResponseWriter, r *http.Request) {
	logger.Info("Reload requested", "request_id", chiMiddleware.GetReqID(r.Context()))

	if err := h.board.Reload(r.Context()); err != nil {
		logger.Error("Reload failed", "error", err)
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"ok":          true,
		"version":     h.board.Version(),
		"playerCount": len(h.board.Leaderboard()),
	})
}

// OverallPage renders the ranked list
func (h *Handlers) OverallPage(w http.ResponseWriter, r *http.Request) {
	h.html(w, http.StatusOK, func(buf *bytes.Buffer) error {
		return h.renderer.Overall(buf, h.board, h.links)
	})
}

// TierListPage renders the tier grid for one category
func (h *Handlers) TierListPage(w http.ResponseWriter, r *http.Request) {
	category := models.Category(pathParam(r, "category"))
	h.html(w, http.StatusOK, func(buf *bytes.Buffer) error {
		return h.renderer.TierList(buf, h.board, h.links, category)
	})
}

// ProfilePage renders a player's detail page
func (h *Handlers) ProfilePage(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "name")

	p, err := h.board.Profile(name)
	if err != nil {
		code := statusFromError(err)
		if code != http.StatusNotFound {
			http.Error(w, errorMessage(err), code)
			return
		}
		h.html(w, http.StatusNotFound, func(buf *bytes.Buffer) error {
			return h.renderer.NotFound(buf, h.board, h.links, name)
		})
		return
	}

	h.html(w, http.StatusOK, func(buf *bytes.Buffer) error {
		return h.renderer.Profile(buf, h.board, h.links, p)
	})
}

// SearchPage renders the search suggestions for q
func (h *Handlers) SearchPage(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	results := h.board.Search(query)
	h.html(w, http.StatusOK, func(buf *bytes.Buffer) error {
		return h.renderer.Search(buf, h.board, h.links, query, results)
	})
}

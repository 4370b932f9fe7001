// Package board owns the current leaderboard snapshot. A snapshot is always
// produced wholesale from a roster load, so points and ranks can never drift
// from the tiers they were computed from.
package board

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Billy-Davies-2/tierboard/internal/dal"
	"github.com/Billy-Davies-2/tierboard/internal/logger"
	"github.com/Billy-Davies-2/tierboard/internal/metrics"
	"github.com/Billy-Davies-2/tierboard/internal/models"
	"github.com/Billy-Davies-2/tierboard/internal/ranking"
)

var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrNotLoaded      = errors.New("leaderboard not loaded")
)

// Board holds the ranked players from the most recent successful reload.
type Board struct {
	source  dal.RosterSource
	metrics *metrics.Metrics
	now     func() time.Time

	mu       sync.RWMutex
	players  []models.Player // ranked
	version  string
	loadedAt time.Time
}

// Option configures a Board.
type Option func(*Board)

// WithMetrics records reloads and lookups on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(b *Board) { b.metrics = m }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(b *Board) { b.now = now }
}

// New creates an empty board over source. Call Reload before serving.
func New(source dal.RosterSource, opts ...Option) *Board {
	b := &Board{
		source: source,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Reload loads the roster, validates it and recomputes every score and rank.
// On failure the previous snapshot is kept.
func (b *Board) Reload(ctx context.Context) error {
	players, err := b.source.LoadPlayers(ctx)
	if err == nil {
		err = dal.ValidateRoster(players)
	}
	if err != nil {
		b.metrics.ObserveReload(err, 0)
		return fmt.Errorf("reload from %s: %w", b.source.Name(), err)
	}

	ranked := ranking.ComputeScores(players)
	version := uuid.NewString()
	loadedAt := b.now()

	b.mu.Lock()
	b.players = ranked
	b.version = version
	b.loadedAt = loadedAt
	b.mu.Unlock()

	b.metrics.ObserveReload(nil, len(ranked))
	logger.Info("Leaderboard reloaded", "source", b.source.Name(), "player_count", len(ranked), "version", version)
	return nil
}

// Watch reloads every interval until ctx is done. Failed reloads are logged
// and the last good snapshot stays in place. A non-positive interval returns
// immediately.
func (b *Board) Watch(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := b.Reload(ctx); err != nil {
				logger.Error("Periodic reload failed", "error", err)
			}
		}
	}
}

// Ready reports whether a snapshot has been loaded.
func (b *Board) Ready() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version != ""
}

// Version identifies the current snapshot; empty before the first load.
func (b *Board) Version() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version
}

// LoadedAt is when the current snapshot was built.
func (b *Board) LoadedAt() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.loadedAt
}

// Leaderboard returns a copy of the ranked players.
func (b *Board) Leaderboard() []models.Player {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]models.Player, len(b.players))
	for i, p := range b.players {
		out[i] = p.Clone()
	}
	return out
}

// Categories returns the fixed category list.
func (b *Board) Categories() []models.Category {
	out := make([]models.Category, len(ranking.Categories))
	copy(out, ranking.Categories)
	return out
}

// TierList buckets the ranked players for one category.
func (b *Board) TierList(category models.Category) models.TierList {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ranking.ClassifyByCategory(b.players, category)
}

// Find looks a player up by exact name.
func (b *Board) Find(name string) (models.Player, bool) {
	b.mu.RLock()
	p, ok := ranking.FindByName(b.players, name)
	b.mu.RUnlock()

	b.metrics.ObserveLookup("find", ok)
	return p, ok
}

// Profile is Find with an error for callers that propagate absence.
func (b *Board) Profile(name string) (models.Player, error) {
	if !b.Ready() {
		return models.Player{}, ErrNotLoaded
	}
	p, ok := b.Find(name)
	if !ok {
		return models.Player{}, fmt.Errorf("%w: %q", ErrPlayerNotFound, name)
	}
	return p, nil
}

// Search returns players whose name contains query, ignoring case.
func (b *Board) Search(query string) []models.Player {
	b.mu.RLock()
	results := ranking.Search(b.players, query)
	b.mu.RUnlock()

	if query != "" {
		b.metrics.ObserveLookup("search", len(results) > 0)
	}
	return results
}

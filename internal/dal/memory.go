package dal

import (
	"context"
	"sync"

	"github.com/Billy-Davies-2/tierboard/internal/models"
)

// MemoryDAL implements RosterSource using in-memory storage
type MemoryDAL struct {
	mu      sync.RWMutex
	players []models.Player
}

// NewMemoryDAL creates a source holding the built-in default roster
func NewMemoryDAL() *MemoryDAL {
	return NewMemoryDALWith(getDefaultPlayers())
}

// NewMemoryDALWith creates a source holding a copy of players.
func NewMemoryDALWith(players []models.Player) *MemoryDAL {
	return &MemoryDAL{players: clonePlayers(players)}
}

func (m *MemoryDAL) Name() string { return "memory" }

func (m *MemoryDAL) LoadPlayers(ctx context.Context) ([]models.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	// Copy out so callers can never reach our backing arrays
	return clonePlayers(m.players), nil
}

// Replace swaps the held roster. It exists for development tooling and tests
// that exercise a wholesale reload; it never touches derived fields.
func (m *MemoryDAL) Replace(players []models.Player) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players = clonePlayers(players)
}

func getDefaultPlayers() []models.Player {
	return []models.Player{
		{
			Name:      "SirAlexius",
			StudentID: "s027108",
			Form:      "F5",
			House:     "Bauhinia",
			Title:     "Combat Grandmaster",
			Tiers:     []models.TierLabel{"HT1", "HT1", "HT1", "HT1", "HT1", "HT1", "HT1", "HT1"},
		},
	}
}

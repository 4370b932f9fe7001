package dal

import (
	"context"
	"errors"
	"fmt"

	"github.com/Billy-Davies-2/tierboard/internal/models"
)

var (
	// ErrInvalidRoster is wrapped by every roster validation failure.
	ErrInvalidRoster = errors.New("invalid roster")
	// ErrUnknownSource is returned for an unrecognised ROSTER_SOURCE.
	ErrUnknownSource = errors.New("unknown roster source")
)

// RosterSource loads the raw player list. Sources are read-only; Points and
// Rank on the returned players carry no meaning and are recomputed by the
// caller.
type RosterSource interface {
	LoadPlayers(ctx context.Context) ([]models.Player, error)
	Name() string
}

// ValidateRoster checks the data contract the leaderboard relies on: every
// player has a non-empty, unique (case-sensitive) name. Unknown tier labels and
// houses are not errors.
func ValidateRoster(players []models.Player) error {
	var errs []error
	seen := make(map[string]int, len(players))

	for i, p := range players {
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("%w: player %d has an empty name", ErrInvalidRoster, i))
			continue
		}
		if first, dup := seen[p.Name]; dup {
			errs = append(errs, fmt.Errorf("%w: duplicate name %q at %d and %d", ErrInvalidRoster, p.Name, first, i))
			continue
		}
		seen[p.Name] = i
	}

	return errors.Join(errs...)
}

func clonePlayers(players []models.Player) []models.Player {
	out := make([]models.Player, len(players))
	for i, p := range players {
		out[i] = p.Clone()
		out[i].Points = 0
		out[i].Rank = 0
	}
	return out
}

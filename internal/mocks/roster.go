package mocks

import (
	"context"
	"sync/atomic"

	"github.com/Billy-Davies-2/tierboard/internal/models"
)

// StaticSource serves a fixed roster. Each load returns a fresh copy.
type StaticSource struct {
	Players []models.Player
}

func NewStaticSource(players ...models.Player) *StaticSource {
	return &StaticSource{Players: players}
}

func (s *StaticSource) Name() string { return "static" }

func (s *StaticSource) LoadPlayers(ctx context.Context) ([]models.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]models.Player, len(s.Players))
	for i, p := range s.Players {
		out[i] = p.Clone()
	}
	return out, nil
}

// FailingSource always returns Err.
type FailingSource struct {
	Err error
}

func (f *FailingSource) Name() string { return "failing" }

func (f *FailingSource) LoadPlayers(context.Context) ([]models.Player, error) {
	return nil, f.Err
}

// SequenceSource returns one roster per call, repeating the last one once
// exhausted. A nil entry in Errs at the same index is a successful load.
type SequenceSource struct {
	Rosters [][]models.Player
	Errs    []error

	calls atomic.Int64
}

func (s *SequenceSource) Name() string { return "sequence" }

// Calls reports how many times LoadPlayers ran.
func (s *SequenceSource) Calls() int { return int(s.calls.Load()) }

func (s *SequenceSource) LoadPlayers(ctx context.Context) ([]models.Player, error) {
	n := int(s.calls.Add(1)) - 1
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if n < len(s.Errs) && s.Errs[n] != nil {
		return nil, s.Errs[n]
	}
	if len(s.Rosters) == 0 {
		return []models.Player{}, nil
	}
	if n >= len(s.Rosters) {
		n = len(s.Rosters) - 1
	}
	return NewStaticSource(s.Rosters[n]...).LoadPlayers(ctx)
}

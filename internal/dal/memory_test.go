package dal

import (
	"context"
	"errors"
	"testing"

	"github.com/Billy-Davies-2/tierboard/internal/models"
)

func TestMemoryDALDefaultRoster(t *testing.T) {
	dal := NewMemoryDAL()

	players, err := dal.LoadPlayers(context.Background())
	if err != nil {
		t.Fatalf("LoadPlayers() failed: %v", err)
	}
	if len(players) != 1 {
		t.Fatalf("expected 1 default player, got %d", len(players))
	}

	p := players[0]
	if p.Name != "SirAlexius" || p.StudentID != "s027108" || p.House != "Bauhinia" {
		t.Errorf("unexpected default player: %+v", p)
	}
	if len(p.Tiers) != 8 {
		t.Errorf("expected 8 tiers, got %d", len(p.Tiers))
	}
	if dal.Name() != "memory" {
		t.Errorf("Name() = %q", dal.Name())
	}
}

func TestMemoryDALReturnsCopies(t *testing.T) {
	dal := NewMemoryDALWith([]models.Player{{Name: "a", Tiers: []models.TierLabel{"HT1"}}})

	first, _ := dal.LoadPlayers(context.Background())
	first[0].Name = "mutated"
	first[0].Tiers[0] = "LT5"

	second, _ := dal.LoadPlayers(context.Background())
	if second[0].Name != "a" || second[0].Tiers[0] != "HT1" {
		t.Errorf("caller mutation leaked into the store: %+v", second[0])
	}
}

func TestMemoryDALStripsDerivedFields(t *testing.T) {
	dal := NewMemoryDALWith([]models.Player{{Name: "a", Points: 50, Rank: 3}})

	players, _ := dal.LoadPlayers(context.Background())
	if players[0].Points != 0 || players[0].Rank != 0 {
		t.Errorf("derived fields should be cleared, got points=%d rank=%d", players[0].Points, players[0].Rank)
	}
}

func TestMemoryDALReplace(t *testing.T) {
	dal := NewMemoryDAL()
	dal.Replace([]models.Player{{Name: "x"}, {Name: "y"}})

	players, _ := dal.LoadPlayers(context.Background())
	if len(players) != 2 || players[0].Name != "x" {
		t.Errorf("Replace() not visible: %+v", players)
	}
}

func TestMemoryDALCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewMemoryDAL().LoadPlayers(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestValidateRoster(t *testing.T) {
	tests := []struct {
		name    string
		players []models.Player
		wantErr bool
	}{
		{"empty roster", nil, false},
		{"valid", []models.Player{{Name: "a"}, {Name: "b", House: "Nowhere", Tiers: []models.TierLabel{"??"}}}, false},
		{"case differs", []models.Player{{Name: "Sir"}, {Name: "sir"}}, false},
		{"empty name", []models.Player{{Name: ""}}, true},
		{"duplicate", []models.Player{{Name: "a"}, {Name: "a"}}, true},
	}

	for _, tt := range tests {
		err := ValidateRoster(tt.players)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: ValidateRoster() error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidRoster) {
			t.Errorf("%s: error should wrap ErrInvalidRoster, got %v", tt.name, err)
		}
	}
}

package dal

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Billy-Davies-2/tierboard/internal/models"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestFileDALYAMLMapping(t *testing.T) {
	path := writeFile(t, "roster.yaml", `
players:
  - name: SirAlexius
    studentId: s027108
    form: F5
    house: Bauhinia
    title: Combat Grandmaster
    points: 9999
    tiers: [HT1, HT1, HT1, HT1, HT1, HT1, HT1, HT1]
  - name: Newcomer
    form: F1
    house: Juniper
    title: Rookie
    tiers: [LT5, "", HT3]
`)

	dal, err := NewFileDAL(path)
	if err != nil {
		t.Fatalf("NewFileDAL() failed: %v", err)
	}

	players, err := dal.LoadPlayers(context.Background())
	if err != nil {
		t.Fatalf("LoadPlayers() failed: %v", err)
	}

	want := []models.Player{
		{
			Name: "SirAlexius", StudentID: "s027108", Form: "F5", House: "Bauhinia", Title: "Combat Grandmaster",
			Tiers: []models.TierLabel{"HT1", "HT1", "HT1", "HT1", "HT1", "HT1", "HT1", "HT1"},
		},
		{
			Name: "Newcomer", Form: "F1", House: "Juniper", Title: "Rookie",
			Tiers: []models.TierLabel{"LT5", "", "HT3"},
		},
	}
	if diff := cmp.Diff(want, players); diff != "" {
		t.Errorf("roster mismatch (-want +got):\n%s", diff)
	}
}

func TestFileDALJSONList(t *testing.T) {
	path := writeFile(t, "roster.json", `[
		{"name": "A", "house": "Cassia", "tiers": ["HT2", "LT1"]},
		{"name": "B", "tiers": []}
	]`)

	dal, err := NewFileDAL(path)
	if err != nil {
		t.Fatalf("NewFileDAL() failed: %v", err)
	}

	players, err := dal.LoadPlayers(context.Background())
	if err != nil {
		t.Fatalf("LoadPlayers() failed: %v", err)
	}
	if len(players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(players))
	}
	if players[0].House != "Cassia" || len(players[0].Tiers) != 2 || players[0].Tiers[1] != "LT1" {
		t.Errorf("unexpected first player: %+v", players[0])
	}
}

func TestFileDALRereadsOnLoad(t *testing.T) {
	path := writeFile(t, "roster.yml", "- name: first\n")
	dal, _ := NewFileDAL(path)

	if players, _ := dal.LoadPlayers(context.Background()); len(players) != 1 {
		t.Fatalf("expected 1 player, got %d", len(players))
	}

	if err := os.WriteFile(path, []byte("- name: first\n- name: second\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if players, _ := dal.LoadPlayers(context.Background()); len(players) != 2 {
		t.Errorf("expected edited file to be re-read, got %d players", len(players))
	}
}

func TestFileDALErrors(t *testing.T) {
	if _, err := NewFileDAL("roster.csv"); !errors.Is(err, ErrUnknownSource) {
		t.Errorf("expected ErrUnknownSource for .csv, got %v", err)
	}

	dal, _ := NewFileDAL(filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := dal.LoadPlayers(context.Background()); err == nil {
		t.Error("expected error for missing file")
	}

	scalar := writeFile(t, "scalar.yaml", "just a string\n")
	dal, _ = NewFileDAL(scalar)
	if _, err := dal.LoadPlayers(context.Background()); !errors.Is(err, ErrInvalidRoster) {
		t.Errorf("expected ErrInvalidRoster for scalar document, got %v", err)
	}
}

func TestParseRosterEmpty(t *testing.T) {
	players, err := ParseRoster([]byte(""))
	if err != nil {
		t.Fatalf("ParseRoster(empty) failed: %v", err)
	}
	if players == nil || len(players) != 0 {
		t.Errorf("expected empty roster, got %#v", players)
	}
}

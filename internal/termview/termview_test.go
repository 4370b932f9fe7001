package termview

import (
	"strings"
	"testing"

	"github.com/Billy-Davies-2/tierboard/internal/models"
	"github.com/Billy-Davies-2/tierboard/internal/ranking"
)

func players() []models.Player {
	return ranking.ComputeScores([]models.Player{
		{Name: "Runner", Form: "F3", House: "Juniper", Tiers: []models.TierLabel{"LT3"}},
		{Name: "SirAlexius", Form: "F5", House: "Bauhinia", Tiers: []models.TierLabel{"HT1", "HT1", "HT1", "HT1", "HT1", "HT1", "HT1", "HT1"}},
	})
}

func TestRenderLeaderboard(t *testing.T) {
	out := RenderLeaderboard(players())

	for _, want := range []string{"SirAlexius", "480", "Runner", "Mace", "LT3", "1.", "2."} {
		if !strings.Contains(out, want) {
			t.Errorf("leaderboard output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "SirAlexius") > strings.Index(out, "Runner") {
		t.Error("rank order not preserved")
	}
}

func TestRenderLeaderboardEmpty(t *testing.T) {
	if out := RenderLeaderboard(nil); !strings.Contains(out, "No players") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestRenderTierList(t *testing.T) {
	out := RenderTierList(ranking.ClassifyByCategory(players(), "Vanilla"))

	for n := 1; n <= 5; n++ {
		if !strings.Contains(out, "Tier "+string(rune('0'+n))) {
			t.Errorf("missing Tier %d header", n)
		}
	}
	if !strings.Contains(out, "SirAlexius") || !strings.Contains(out, "Runner") {
		t.Errorf("tier list missing players:\n%s", out)
	}
	if !strings.HasPrefix(out, "Vanilla") {
		t.Errorf("tier list should start with the category name:\n%s", out)
	}
}

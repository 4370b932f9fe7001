package fuzz

import (
	"strings"
	"testing"

	"github.com/Billy-Davies-2/tierboard/internal/dal"
	"github.com/Billy-Davies-2/tierboard/internal/models"
	"github.com/Billy-Davies-2/tierboard/internal/ranking"
)

func fuzzRoster(a, b, c string) []models.Player {
	return []models.Player{
		{Name: "SirAlexius", Tiers: []models.TierLabel{models.TierLabel(a), "HT1", models.TierLabel(b)}},
		{Name: a, Tiers: []models.TierLabel{models.TierLabel(c)}},
		{Name: b + c, Tiers: []models.TierLabel{"LT5", models.TierLabel(a), "", models.TierLabel(c)}},
	}
}

// FuzzComputeScores checks ranks form 1..N in non-increasing point order
func FuzzComputeScores(f *testing.F) {
	f.Add("HT1", "LT3", "X12")
	f.Add(" HT2 ", "", "ht1")
	f.Add("LT5", "LT5", "LT5")

	f.Fuzz(func(t *testing.T, a, b, c string) {
		ranked := ranking.ComputeScores(fuzzRoster(a, b, c))

		for i, p := range ranked {
			if p.Rank != i+1 {
				t.Fatalf("player %d has rank %d", i, p.Rank)
			}
			if p.Points != ranking.Score(p.Tiers) {
				t.Fatalf("%q points %d != score %d", p.Name, p.Points, ranking.Score(p.Tiers))
			}
			if i > 0 && ranked[i-1].Points < p.Points {
				t.Fatalf("rank %d has fewer points than rank %d", i, i+1)
			}
		}
	})
}

// FuzzClassifyByCategory checks bucket membership follows the digit rule
func FuzzClassifyByCategory(f *testing.F) {
	f.Add("HT1", "LT3", "X12", "Vanilla")
	f.Add("", "", "", "UHC")
	f.Add("HT5", "LT4", "9", "Nope")

	f.Fuzz(func(t *testing.T, a, b, c, category string) {
		ranked := ranking.ComputeScores(fuzzRoster(a, b, c))
		list := ranking.ClassifyByCategory(ranked, models.Category(category))
		idx := ranking.CategoryIndex(models.Category(category))

		if len(list.Buckets) != ranking.MaxBucket {
			t.Fatalf("got %d buckets", len(list.Buckets))
		}
		for n, bucket := range list.Buckets {
			for _, p := range bucket {
				label, ok := p.TierAt(idx)
				if !ok || !strings.Contains(string(label), string(rune('0'+n))) {
					t.Fatalf("%q in bucket %d with label %q", p.Name, n, label)
				}
			}
		}

		again := ranking.ClassifyByCategory(ranked, models.Category(category))
		for n := range list.Buckets {
			if len(again.Buckets[n]) != len(list.Buckets[n]) {
				t.Fatalf("bucket %d not deterministic", n)
			}
		}
	})
}

// FuzzSearch checks every result contains the query, ignoring case
func FuzzSearch(f *testing.F) {
	f.Add("sir")
	f.Add("")
	f.Add("ALEX")
	f.Add("ß")

	f.Fuzz(func(t *testing.T, query string) {
		ranked := ranking.ComputeScores(fuzzRoster("HT1", "Bob", "by"))
		results := ranking.Search(ranked, query)

		if query == "" && len(results) != 0 {
			t.Fatalf("empty query returned %d results", len(results))
		}
		for _, p := range results {
			if !strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) {
				t.Fatalf("%q does not contain %q", p.Name, query)
			}
		}
	})
}

// FuzzParseRoster checks arbitrary documents never panic and parsed rosters
// carry no derived fields
func FuzzParseRoster(f *testing.F) {
	f.Add([]byte("players:\n  - name: SirAlexius\n    tiers: [HT1, LT2]\n"))
	f.Add([]byte(`[{"name":"a","points":99,"rank":1}]`))
	f.Add([]byte("just a string"))
	f.Add([]byte(""))

	f.Fuzz(func(t *testing.T, data []byte) {
		players, err := dal.ParseRoster(data)
		if err != nil {
			return
		}
		for _, p := range players {
			if p.Points != 0 || p.Rank != 0 {
				t.Fatalf("parsed player %q has derived fields", p.Name)
			}
		}
	})
}

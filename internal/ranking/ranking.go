// Package ranking scores players from their per-category tier labels, orders
// them into a leaderboard and groups them into tier buckets per category.
//
// Every function here is pure: inputs are never mutated and the same input
// always yields the same output.
package ranking

import (
	"slices"
	"strconv"
	"strings"

	"github.com/Billy-Davies-2/tierboard/internal/models"
)

// Bucket bounds for the tier grid. Bucket 1 is the best tier.
const (
	MinBucket = 1
	MaxBucket = 5
)

// DefaultHouseColor is used for houses missing from HouseColors.
const DefaultHouseColor = "form-blue"

// TierPoints maps each known tier label to its point value.
var TierPoints = map[models.TierLabel]int{
	"HT1": 60, "LT1": 45,
	"HT2": 30, "LT2": 20,
	"HT3": 10, "LT3": 6,
	"HT4": 4, "LT4": 3,
	"HT5": 2, "LT5": 1,
}

// Categories is the fixed, ordered category list. Index i of Player.Tiers
// belongs to Categories[i].
var Categories = []models.Category{"Vanilla", "UHC", "Pot", "NethOP", "SMP", "Sword", "Axe", "Mace"}

// HouseColors maps each house to its display color class.
var HouseColors = map[models.House]string{
	"Jacaranda": "form-blue",
	"Cassia":    "form-yellow",
	"Bauhinia":  "form-purple",
	"Bombax":    "form-red",
	"Delonix":   "form-orange",
	"Juniper":   "form-green",
}

// PointsFor returns the point value of a single label. Surrounding whitespace
// is ignored; unknown and blank labels are worth 0.
func PointsFor(label models.TierLabel) int {
	return TierPoints[models.TierLabel(strings.TrimSpace(string(label)))]
}

// Score sums the point values of all labels.
func Score(tiers []models.TierLabel) int {
	total := 0
	for _, t := range tiers {
		total += PointsFor(t)
	}
	return total
}

// ComputeScores returns a new leaderboard: every player gets Points from its
// tiers, the list is stably sorted by Points descending and Rank is set to the
// 1-based position. Equal scores keep their input order and still receive
// distinct consecutive ranks.
func ComputeScores(players []models.Player) []models.Player {
	ranked := make([]models.Player, len(players))
	for i, p := range players {
		ranked[i] = p.Clone()
		ranked[i].Points = Score(p.Tiers)
	}

	slices.SortStableFunc(ranked, func(a, b models.Player) int {
		return b.Points - a.Points
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// CategoryIndex returns the position of category in Categories, or -1.
func CategoryIndex(category models.Category) int {
	return slices.Index(Categories, category)
}

// ClassifyByCategory groups players into buckets MinBucket..MaxBucket for one
// category. All buckets are always present; an unknown category leaves them
// all empty.
//
// Bucket membership is a containment rule, not a label parse: a player lands in
// bucket n when its label for the category contains the decimal digit n. HT1
// and LT1 both land in bucket 1. A label carrying more than one digit lands in
// more than one bucket. Players without a label at the category index are left
// out. Order inside a bucket follows the order of players.
func ClassifyByCategory(players []models.Player, category models.Category) models.TierList {
	list := models.TierList{
		Category: category,
		Buckets:  make(map[int][]models.Player, MaxBucket),
	}
	for n := MinBucket; n <= MaxBucket; n++ {
		list.Buckets[n] = []models.Player{}
	}

	idx := CategoryIndex(category)
	if idx < 0 {
		return list
	}

	for n := MinBucket; n <= MaxBucket; n++ {
		digit := strconv.Itoa(n)
		for _, p := range players {
			label, ok := p.TierAt(idx)
			if !ok || label == "" {
				continue
			}
			if strings.Contains(string(label), digit) {
				list.Buckets[n] = append(list.Buckets[n], p.Clone())
			}
		}
	}
	return list
}

// FindByName returns the player whose name matches exactly (case-sensitive).
func FindByName(players []models.Player, name string) (models.Player, bool) {
	for _, p := range players {
		if p.Name == name {
			return p.Clone(), true
		}
	}
	return models.Player{}, false
}

// Search returns the players whose name contains query, ignoring case. An
// empty query means "no suggestions" and yields an empty result.
func Search(players []models.Player, query string) []models.Player {
	results := []models.Player{}
	if query == "" {
		return results
	}

	q := strings.ToLower(query)
	for _, p := range players {
		if strings.Contains(strings.ToLower(p.Name), q) {
			results = append(results, p.Clone())
		}
	}
	return results
}

// HouseColor returns the display color class for a house.
func HouseColor(house models.House) string {
	if c, ok := HouseColors[house]; ok {
		return c
	}
	return DefaultHouseColor
}

package render

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Billy-Davies-2/tierboard/internal/models"
	"github.com/Billy-Davies-2/tierboard/internal/ranking"
)

// SchoolURL is shown in the page header.
const SchoolURL = "css.edu.hk"

// Avatar sizes used by the pages
const (
	RowAvatarSize    = 40
	SearchAvatarSize = 30
	CardAvatarSize   = 24
)

var tierIcons = []models.Icon{
	{Type: "icon", Value: "fa-gem"},
	{Type: "icon", Value: "fa-heart"},
	{Type: "icon", Value: "fa-flask"},
	{Type: "icon", Value: "fa-fire"},
	{Type: "icon", Value: "fa-shield-halved"},
	{Type: "img", Value: "https://mctiers.com/tier_icons/sword.svg"},
	{Type: "img", Value: "https://mctiers.com/tier_icons/axe.svg"},
	{Type: "img", Value: "https://mctiers.com/tier_icons/mace.svg"},
}

var fallbackIcon = models.Icon{Type: "icon", Value: "fa-circle"}

// AvatarURL is the head render for name at size pixels.
func AvatarURL(name string, size int) string {
	return fmt.Sprintf("https://minotar.net/helm/%s/%d.png", url.PathEscape(name), size)
}

// SkinURL is the full body render shown on the profile.
func SkinURL(name string) string {
	return fmt.Sprintf("https://minotar.net/armor/body/%s/100.png", url.PathEscape(name))
}

// TierIcon returns the icon for the category at idx.
func TierIcon(idx int) models.Icon {
	if idx < 0 || idx >= len(tierIcons) {
		return fallbackIcon
	}
	return tierIcons[idx]
}

func BadgeClass(label models.TierLabel) string {
	return "tier-" + strings.ToLower(strings.TrimSpace(string(label)))
}

// Badges builds one badge per rated category. Blank labels are unrated and
// produce no badge.
func Badges(tiers []models.TierLabel) []models.Badge {
	badges := make([]models.Badge, 0, len(tiers))
	for idx, label := range tiers {
		if strings.TrimSpace(string(label)) == "" {
			continue
		}
		var category models.Category
		if idx < len(ranking.Categories) {
			category = ranking.Categories[idx]
		}
		badges = append(badges, models.Badge{
			Category: category,
			Label:    label,
			Class:    BadgeClass(label),
			Icon:     TierIcon(idx),
		})
	}
	return badges
}

// NewProfile builds the detail view-model for a ranked player.
func NewProfile(p models.Player) models.PlayerProfile {
	studentID := p.StudentID
	if strings.TrimSpace(studentID) == "" {
		studentID = "N/A"
	}
	return models.PlayerProfile{
		Player:           p,
		StudentIDDisplay: studentID,
		HouseColor:       ranking.HouseColor(p.House),
		AvatarURL:        AvatarURL(p.Name, RowAvatarSize),
		SkinURL:          SkinURL(p.Name),
		Badges:           Badges(p.Tiers),
	}
}

// Row is one line of the overall leaderboard.
type Row struct {
	models.PlayerProfile
	Top bool
}

func newRows(players []models.Player, avatarSize int) []Row {
	rows := make([]Row, len(players))
	for i, p := range players {
		rows[i] = Row{PlayerProfile: NewProfile(p), Top: p.Rank == 1}
		rows[i].AvatarURL = AvatarURL(p.Name, avatarSize)
	}
	return rows
}

// Card is a player tile inside a tier column.
type Card struct {
	Name      string
	AvatarURL string
}

// Column is one "Tier n" column of the grid.
type Column struct {
	Number  int
	Players []Card
}

func newColumns(list models.TierList) []Column {
	cols := make([]Column, 0, ranking.MaxBucket)
	for n := ranking.MinBucket; n <= ranking.MaxBucket; n++ {
		col := Column{Number: n, Players: []Card{}}
		for _, p := range list.Buckets[n] {
			col.Players = append(col.Players, Card{Name: p.Name, AvatarURL: AvatarURL(p.Name, CardAvatarSize)})
		}
		cols = append(cols, col)
	}
	return cols
}

// Links builds hrefs for either the live server or a static build. Root is
// the relative prefix back to the site root in static builds.
type Links struct {
	Static bool
	Root   string
}

func (l Links) Home() string {
	if l.Static {
		return l.Root + "index.html"
	}
	return "/"
}

func (l Links) Tier(category models.Category) string {
	if l.Static {
		return l.Root + "tiers/" + url.PathEscape(fileName(string(category)))
	}
	return "/tiers/" + url.PathEscape(string(category))
}

func (l Links) Player(name string) string {
	if l.Static {
		return l.Root + "players/" + url.PathEscape(fileName(name))
	}
	return "/players/" + url.PathEscape(name)
}

// fileName maps a name to a single safe path segment.
func fileName(name string) string {
	return url.PathEscape(name) + ".html"
}

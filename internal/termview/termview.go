// Package termview prints the leaderboard and tier lists for terminals.
package termview

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Billy-Davies-2/tierboard/internal/models"
	"github.com/Billy-Davies-2/tierboard/internal/ranking"
)

var houseColors = map[string]lipgloss.Color{
	"form-blue":   lipgloss.Color("33"),
	"form-yellow": lipgloss.Color("220"),
	"form-purple": lipgloss.Color("135"),
	"form-red":    lipgloss.Color("196"),
	"form-orange": lipgloss.Color("208"),
	"form-green":  lipgloss.Color("40"),
}

// Bucket header colors, Tier 1 first
var bucketColors = []lipgloss.Color{"214", "250", "172", "109", "244"}

var (
	styleHeader = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	styleCell   = lipgloss.NewStyle().Padding(0, 1)
	styleTop    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")).Padding(0, 1)
	styleBorder = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleEmpty  = lipgloss.NewStyle().Faint(true)
)

func houseStyle(house models.House) lipgloss.Style {
	return styleCell.Foreground(houseColors[ranking.HouseColor(house)])
}

// RenderLeaderboard draws the ranked players as a table.
func RenderLeaderboard(players []models.Player) string {
	if len(players) == 0 {
		return styleEmpty.Render("No players.") + "\n"
	}

	header := append([]string{"#", "Player", "Points", "Form"}, categoryNames()...)

	rows := make([][]string, 0, len(players))
	for _, p := range players {
		row := []string{
			strconv.Itoa(p.Rank) + ".",
			p.Name,
			strconv.Itoa(p.Points),
			p.Form,
		}
		for idx := range ranking.Categories {
			label, _ := p.TierAt(idx)
			row = append(row, strings.TrimSpace(string(label)))
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers(header...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader
			case row < 0 || row >= len(players):
				return styleCell
			case players[row].Rank == 1 && col <= 1:
				return styleTop
			case col == 3:
				return houseStyle(players[row].House)
			default:
				return styleCell
			}
		})

	return t.Render() + "\n"
}

// RenderTierList draws the five buckets of a category side by side.
func RenderTierList(list models.TierList) string {
	columns := make([]string, 0, ranking.MaxBucket)
	for n := ranking.MinBucket; n <= ranking.MaxBucket; n++ {
		color := bucketColors[(n-1)%len(bucketColors)]
		head := lipgloss.NewStyle().Bold(true).Foreground(color).Render(fmt.Sprintf("Tier %d", n))

		lines := []string{head}
		for _, p := range list.Buckets[n] {
			lines = append(lines, houseStyle(p.House).UnsetPadding().Render(p.Name))
		}
		if len(list.Buckets[n]) == 0 {
			lines = append(lines, styleEmpty.Render("-"))
		}

		col := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color).
			Padding(0, 1).
			Width(18).
			Render(strings.Join(lines, "\n"))
		columns = append(columns, col)
	}

	title := styleHeader.UnsetPadding().Render(string(list.Category))
	return title + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, columns...) + "\n"
}

func categoryNames() []string {
	names := make([]string, len(ranking.Categories))
	for i, c := range ranking.Categories {
		names[i] = string(c)
	}
	return names
}

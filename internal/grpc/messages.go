package grpc

import "github.com/Billy-Davies-2/tierboard/internal/models"

type GetLeaderboardRequest struct{}

type GetLeaderboardResponse struct {
	Version string          `json:"version"`
	Players []models.Player `json:"players"`
}

type GetTierListRequest struct {
	Category models.Category `json:"category"`
}

type GetTierListResponse struct {
	TierList models.TierList `json:"tierList"`
}

type GetPlayerRequest struct {
	Name string `json:"name"`
}

type GetPlayerResponse struct {
	Profile models.PlayerProfile `json:"profile"`
}

type SearchPlayersRequest struct {
	Query string `json:"query"`
}

type SearchPlayersResponse struct {
	Players []models.Player `json:"players"`
}

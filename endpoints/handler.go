// Package endpoints is the JSON surface the dashboard frontend talks to.
// Handlers only read the store and trigger tracker runs; every piece of
// synchronization logic lives in the tracker package.
package endpoints

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"soloq-tracker/riot"
	"soloq-tracker/tracker"
)

type Handler struct {
	DB      *gorm.DB
	Tracker *tracker.Tracker
	Client  riot.API
	Log     zerolog.Logger
}

func (h *Handler) Register(app *fiber.App) {
	app.Post("/player", h.AddPlayer)
	app.Get("/players", h.GetPlayers)
	app.Get("/update_players", h.UpdatePlayers)
	app.Get("/recent_matches", h.RecentMatches)
	app.Get("/recent_matches_extended", h.RecentMatchesExtended)
	app.Get("/players_in_game", h.PlayersInGame)
	app.Get("/live_games", h.LiveGames)
	app.Post("/insert_live_games", h.InsertLiveGames)
	app.Get("/summoner_rank_info", h.SummonerRankInfo)
	app.Get("/dashboard", h.Dashboard)
}

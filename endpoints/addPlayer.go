package endpoints

import (
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"

	"soloq-tracker/structs"
)

type addPlayerRequest struct {
	PlayerName   string `json:"playerName"`
	SummonerName string `json:"summonerName"`
	UserTag      string `json:"userTag"`
	Team         string `json:"team"`
}

// AddPlayer registers a roster entry and reconciles it once right away, so
// the new player shows up in the table with real stats instead of zeros.
func (h *Handler) AddPlayer(c *fiber.Ctx) error {
	req := addPlayerRequest{}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	acc, err := h.Client.AccountByRiotID(c.Context(), req.SummonerName, req.UserTag)
	if err != nil {
		h.Log.Error().Err(err).Str("summoner", req.SummonerName).Msg("account lookup failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "could not resolve riot account",
		})
	}

	player := structs.Player{
		PlayerName:   req.PlayerName,
		SummonerName: acc.GameName,
		Puuid:        acc.Puuid,
		Tag:          acc.TagLine,
		Team:         req.Team,
		Tier:         "UNRANKED",
		WinRate:      "0",
		Opgg: fmt.Sprintf("https://euw.op.gg/summoners/euw/%s-%s",
			url.QueryEscape(acc.GameName), url.QueryEscape(acc.TagLine)),
	}
	err = h.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "puuid"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"player_name", "summoner_name", "tag", "team", "opgg", "updated_at",
		}),
	}).Create(&player).Error
	if err != nil {
		h.Log.Error().Err(err).Str("puuid", acc.Puuid).Msg("player upsert failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "could not store player",
		})
	}

	if err := h.DB.Where("puuid = ?", acc.Puuid).First(&player).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "could not load player",
		})
	}
	if _, err := h.Tracker.SyncPlayer(c.Context(), &player); err != nil {
		h.Log.Error().Err(err).Str("puuid", player.Puuid).Msg("initial reconciliation failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "player stored but initial sync failed",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}

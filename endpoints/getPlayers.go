package endpoints

import (
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"soloq-tracker/structs"
	"soloq-tracker/tracker"
)

// tier and division orders for the table sort. Anything unknown (including
// UNRANKED and the empty division) sorts as 0, the lowest value.
var tierOrder = map[string]int{
	"IRON":        1,
	"BRONZE":      2,
	"SILVER":      3,
	"GOLD":        4,
	"PLATINUM":    5,
	"EMERALD":     6,
	"DIAMOND":     7,
	"MASTER":      8,
	"GRANDMASTER": 9,
	"CHALLENGER":  10,
}

var rankOrder = map[string]int{
	"IV":  1,
	"III": 2,
	"II":  3,
	"I":   4,
}

// GetPlayers returns the roster ordered tier desc, division desc, LP desc,
// with the computed sort keys exposed so the frontend can re-sort.
func (h *Handler) GetPlayers(c *fiber.Ctx) error {
	var players []structs.Player
	if err := h.DB.Find(&players).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "could not load players",
		})
	}

	ranked := make([]structs.RankedPlayer, 0, len(players))
	for _, p := range players {
		ranked = append(ranked, structs.RankedPlayer{
			Player:    p,
			Winrate:   tracker.WinRate(p.Wins, p.Losses),
			TierValue: tierOrder[strings.ToUpper(p.Tier)],
			RankValue: rankOrder[strings.ToUpper(p.Rank)],
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].TierValue != ranked[j].TierValue {
			return ranked[i].TierValue > ranked[j].TierValue
		}
		if ranked[i].RankValue != ranked[j].RankValue {
			return ranked[i].RankValue > ranked[j].RankValue
		}
		return ranked[i].Lp > ranked[j].Lp
	})

	return c.JSON(ranked)
}

// PlayersInGame lists roster live status. is_online means last_online is
// within the last 10 minutes.
func (h *Handler) PlayersInGame(c *fiber.Ctx) error {
	var players []structs.Player
	err := h.DB.Order("in_game desc, last_online desc").Find(&players).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "could not load players",
		})
	}

	cutoff := time.Now().Add(-10 * time.Minute)
	statuses := make([]structs.PlayerStatus, 0, len(players))
	for _, p := range players {
		statuses = append(statuses, structs.PlayerStatus{
			Puuid:        p.Puuid,
			SummonerName: p.SummonerName,
			Team:         p.Team,
			InGame:       p.InGame,
			LastOnline:   p.LastOnline,
			IsOnline:     p.LastOnline != nil && p.LastOnline.After(cutoff),
		})
	}

	return c.JSON(statuses)
}

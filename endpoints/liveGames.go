package endpoints

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"soloq-tracker/structs"
)

// LiveGames returns the live games observed in the last hour, each with its
// participants (rank standing attached where cached) and per-side aggregates.
func (h *Handler) LiveGames(c *fiber.Ctx) error {
	var games []structs.ActiveGame
	err := h.DB.Where("game_start_time > ?", time.Now().Add(-time.Hour)).
		Order("game_start_time desc").Find(&games).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "could not load live games",
		})
	}

	views := make([]structs.LiveGameView, 0, len(games))
	for _, game := range games {
		var participants []structs.GameParticipant
		err := h.DB.Where("game_id = ?", game.GameID).Find(&participants).Error
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "could not load game participants",
			})
		}

		puuids := make([]string, 0, len(participants))
		for _, p := range participants {
			puuids = append(puuids, p.Puuid)
		}
		ranks := make(map[string]structs.SummonerRankInfo)
		if len(puuids) > 0 {
			var infos []structs.SummonerRankInfo
			if err := h.DB.Where("puuid IN ?", puuids).Find(&infos).Error; err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "could not load rank info",
				})
			}
			for _, info := range infos {
				ranks[info.Puuid] = info
			}
		}

		views = append(views, buildLiveGameView(game, participants, ranks))
	}

	return c.JSON(views)
}

func buildLiveGameView(game structs.ActiveGame, participants []structs.GameParticipant, ranks map[string]structs.SummonerRankInfo) structs.LiveGameView {
	view := structs.LiveGameView{
		ActiveGame:   game,
		Participants: make([]structs.LiveParticipantView, 0, len(participants)),
		Teams:        make(map[string]structs.LiveTeamView, 2),
	}

	type agg struct {
		count  int
		lpSum  int
		ranked int
	}
	sides := map[int64]*agg{100: {}, 200: {}}

	for _, p := range participants {
		pv := structs.LiveParticipantView{GameParticipant: p}
		if info, ok := ranks[p.Puuid]; ok {
			cp := info
			pv.RankInfo = &cp
		}
		view.Participants = append(view.Participants, pv)

		side, ok := sides[p.TeamID]
		if !ok {
			continue
		}
		side.count++
		if pv.RankInfo != nil && pv.RankInfo.SoloTier != "" {
			side.lpSum += pv.RankInfo.SoloLp
			side.ranked++
		}
	}

	for teamID, name := range map[int64]string{100: "team1", 200: "team2"} {
		side := sides[teamID]
		avg := 0
		if side.ranked > 0 {
			avg = side.lpSum / side.ranked
		}
		view.Teams[name] = structs.LiveTeamView{
			TeamID:       teamID,
			Participants: side.count,
			AvgSoloLp:    avg,
		}
	}

	return view
}

package endpoints

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"soloq-tracker/structs"
)

// SummonerRankInfo is the batched rank lookup: ?puuids=a,b,c.
func (h *Handler) SummonerRankInfo(c *fiber.Ctx) error {
	raw := c.Query("puuids")
	if raw == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "puuids query parameter is required",
		})
	}

	puuids := make([]string, 0)
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			puuids = append(puuids, p)
		}
	}

	var infos []structs.SummonerRankInfo
	if err := h.DB.Where("puuid IN ?", puuids).Find(&infos).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "could not load rank info",
		})
	}
	return c.JSON(infos)
}

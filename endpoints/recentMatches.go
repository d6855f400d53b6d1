package endpoints

import (
	"github.com/gofiber/fiber/v2"

	"soloq-tracker/structs"
)

func (h *Handler) RecentMatches(c *fiber.Ctx) error {
	return h.recentMatches(c, 3)
}

func (h *Handler) RecentMatchesExtended(c *fiber.Ctx) error {
	return h.recentMatches(c, 20)
}

func (h *Handler) recentMatches(c *fiber.Ctx, limit int) error {
	var matches []structs.RecentMatch
	err := h.DB.Order("game_datetime desc").Limit(limit).Find(&matches).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "could not load recent matches",
		})
	}
	return c.JSON(matches)
}

package endpoints

import "github.com/gofiber/fiber/v2"

// UpdatePlayers triggers a full-roster sync and returns the per-player
// results. The call blocks until the whole roster has been walked; provider
// failures degrade individual entries, only a store failure is a 500.
func (h *Handler) UpdatePlayers(c *fiber.Ctx) error {
	results, err := h.Tracker.SyncAll(c.Context())
	if err != nil {
		h.Log.Error().Err(err).Msg("full sync failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "could not update players",
		})
	}
	return c.JSON(results)
}

// InsertLiveGames triggers the live-game refresh pass over the roster.
func (h *Handler) InsertLiveGames(c *fiber.Ctx) error {
	count, err := h.Tracker.RefreshLiveGames(c.Context())
	if err != nil {
		h.Log.Error().Err(err).Msg("live game refresh failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "could not refresh live games",
		})
	}
	return c.JSON(fiber.Map{"updated_games": count})
}

package endpoints

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"soloq-tracker/structs"
)

// Dashboard renders the last 50 sync runs as a plain HTML table.
func (h *Handler) Dashboard(c *fiber.Ctx) error {
	var runs []structs.SyncLog
	err := h.DB.Order("created_at desc").Limit(50).Find(&runs).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(err)
	}

	content := "<table>"
	content += "<tr><th>Trigger</th><th>Players</th><th>Failed</th><th>Games</th><th>Duration</th><th>Time</th></tr>"

	for _, r := range runs {
		content += "<tr>"
		content += "<td>" + r.Trigger + "</td>"
		content += fmt.Sprintf("<td>%d</td>", r.PlayersTotal)
		content += fmt.Sprintf("<td>%d</td>", r.PlayersFailed)
		content += fmt.Sprintf("<td>%d</td>", r.GamesTouched)
		content += fmt.Sprintf("<td>%d ms</td>", r.DurationMs)
		content += "<td>" + r.CreatedAt.Format("2006-01-02 15:04:05") + "</td>"
		content += "</tr>"
	}

	content += "</table>"

	return c.Render("dashboard", fiber.Map{
		"content": content,
	})
}

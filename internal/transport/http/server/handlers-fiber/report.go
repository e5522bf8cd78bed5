package handlers_fiber

import (
	"net/http"

	"push-review-queue/internal/mapper"

	"github.com/gofiber/fiber/v2"
)

// GetReportPage renders the progress report.
func (h *Handler) GetReportPage(c *fiber.Ctx) error {
	rep, err := h.uc.Report(c.UserContext())
	if err != nil {
		return h.renderError(c, err)
	}
	return c.Status(http.StatusOK).Render("report", fiber.Map{
		"Title":  "Review progress",
		"Report": mapper.ToReport(rep, h.diffBase),
	}, layout)
}

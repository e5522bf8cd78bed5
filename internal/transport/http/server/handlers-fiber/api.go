package handlers_fiber

import (
	"net/http"

	"push-review-queue/internal/entities"
	"push-review-queue/internal/mapper"
	api "push-review-queue/internal/oapi"

	"github.com/gofiber/fiber/v2"
)

var _ api.ServerInterface = (*Handler)(nil)

// GetReviewsNext returns one pending push.
func (h *Handler) GetReviewsNext(c *fiber.Ctx) error {
	item, err := h.uc.NextPending(c.UserContext())
	if err != nil {
		h.logInternal("failed to select pending push", err)
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToPendingItem(*item, h.diffBase))
}

// PostReviews records one verdict.
func (h *Handler) PostReviews(c *fiber.Ctx) error {
	var body api.PostReviewsJSONRequestBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse(api.INVALIDARGUMENT, "invalid body"))
	}
	verdict, err := entities.ParseVerdict(string(body.Verdict))
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.SubmitVerdict(c.UserContext(), body.Name, body.Version, verdict); err != nil {
		h.logInternal("failed to record verdict", err)
		return writeError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// GetReport returns the progress report.
func (h *Handler) GetReport(c *fiber.Ctx) error {
	rep, err := h.uc.Report(c.UserContext())
	if err != nil {
		h.logInternal("failed to build report", err)
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToReport(rep, h.diffBase))
}

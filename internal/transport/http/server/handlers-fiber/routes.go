package handlers_fiber

import (
	api "push-review-queue/internal/oapi"

	"github.com/gofiber/fiber/v2"
)

// APIBaseURL prefixes the JSON API routes.
const APIBaseURL = "/api/v1"

// RegisterHandlers mounts the review pages and the JSON API on router.
func RegisterHandlers(router fiber.Router, h *Handler) {
	router.Get("/", h.GetIndex)
	router.Post("/review", h.PostReview)
	router.Get("/report", h.GetReportPage)

	api.RegisterHandlersWithOptions(router, h, api.FiberServerOptions{BaseURL: APIBaseURL})
}

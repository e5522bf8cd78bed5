package handlers_fiber

import (
	"errors"
	"net/http"

	"push-review-queue/internal/entities"
	"push-review-queue/internal/mapper"

	"github.com/gofiber/fiber/v2"
)

// GetIndex renders the next pending push.
func (h *Handler) GetIndex(c *fiber.Ctx) error {
	return h.renderIndex(c, http.StatusOK, "", "")
}

// PostReview records the submitted verdict and renders the next push.
func (h *Handler) PostReview(c *fiber.Ctx) error {
	verdict, err := entities.VerdictFromFields(func(field string) bool {
		return formHas(c, field)
	})
	if err != nil {
		return h.renderError(c, err)
	}

	name, version := c.FormValue("name"), c.FormValue("version")
	err = h.uc.SubmitVerdict(c.UserContext(), name, version, verdict)
	switch {
	case errors.Is(err, entities.ErrPushReviewNotFound):
		return h.renderIndex(c, http.StatusNotFound,
			"That release changed before your review was saved. Here is another one.", bannerError)
	case err != nil:
		return h.renderError(c, err)
	}

	return h.renderIndex(c, http.StatusOK, verdictBanner(verdict, name, version), bannerInfo)
}

func (h *Handler) renderIndex(c *fiber.Ctx, status int, banner, kind string) error {
	data := fiber.Map{
		"Title":      "Community Code Review",
		"Banner":     banner,
		"BannerKind": kind,
	}

	item, err := h.uc.NextPending(c.UserContext())
	switch {
	case errors.Is(err, entities.ErrNothingToReview):
	case err != nil:
		return h.renderError(c, err)
	default:
		view := mapper.ToPendingItem(*item, h.diffBase)
		data["Item"] = view
		data["Title"] = "Comparing: " + view.Name + " " + view.Version
	}

	return c.Status(status).Render("index", data, layout)
}

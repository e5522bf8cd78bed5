package handlers_fiber

import (
	"errors"
	"fmt"
	"net/http"

	"push-review-queue/internal/entities"
	api "push-review-queue/internal/oapi"

	"github.com/gofiber/fiber/v2"
)

// Banner kinds understood by the layout.
const (
	bannerInfo  = "info"
	bannerError = "error"
)

func errorStatus(err error) (int, api.ErrorResponseErrorCode, string) {
	switch {
	case errors.Is(err, entities.ErrInvalidArgument):
		return http.StatusBadRequest, api.INVALIDARGUMENT, err.Error()
	case errors.Is(err, entities.ErrPushReviewNotFound):
		return http.StatusNotFound, api.NOTFOUND, "push review not found"
	case errors.Is(err, entities.ErrNothingToReview):
		return http.StatusNotFound, api.NOTHINGTOREVIEW, "nothing to review right now"
	default:
		return http.StatusInternalServerError, api.INTERNAL, "internal error"
	}
}

// logInternal logs err when it maps to a 500; expected outcomes stay quiet.
func (h *Handler) logInternal(msg string, err error) {
	if status, _, _ := errorStatus(err); status == http.StatusInternalServerError {
		h.log.Errorw(msg, "error", err.Error())
	}
}

func writeError(c *fiber.Ctx, err error) error {
	status, code, msg := errorStatus(err)
	return c.Status(status).JSON(errorResponse(code, msg))
}

func errorResponse(code api.ErrorResponseErrorCode, msg string) api.ErrorResponse {
	return api.ErrorResponse{Error: struct {
		Code    api.ErrorResponseErrorCode `json:"code"`
		Message string                     `json:"message"`
	}{Code: code, Message: msg}}
}

// renderError renders the HTML error page for err.
func (h *Handler) renderError(c *fiber.Ctx, err error) error {
	h.logInternal("request failed", err)
	status, _, msg := errorStatus(err)
	return c.Status(status).Render("error", fiber.Map{
		"Title":   http.StatusText(status),
		"Status":  status,
		"Message": msg,
	}, layout)
}

// verdictBanner is the acknowledgment shown after a recorded verdict.
func verdictBanner(verdict entities.Verdict, name, version string) string {
	switch verdict {
	case entities.VerdictApprove:
		return fmt.Sprintf("Woo! Thanks for checking %s %s!", name, version)
	case entities.VerdictReject:
		return fmt.Sprintf("Oh no! Thanks for letting us know something's up with %s %s! Someone else will take a more detailed look.", name, version)
	default:
		return "Let's try this one instead. :)"
	}
}

// formHas reports whether the submitted form carries field, urlencoded or multipart.
func formHas(c *fiber.Ctx, field string) bool {
	if c.Request().PostArgs().Has(field) {
		return true
	}
	if form, err := c.MultipartForm(); err == nil {
		_, ok := form.Value[field]
		return ok
	}
	return false
}

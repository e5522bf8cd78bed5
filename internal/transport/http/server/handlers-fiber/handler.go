// Package handlers_fiber wires HTTP delivery components.
package handlers_fiber

import (
	"push-review-queue/internal/usecase"

	"go.uber.org/zap"
)

// Handler serves the review pages and the JSON API using service layer interfaces.
type Handler struct {
	log      *zap.SugaredLogger
	uc       usecase.InterfaceUsecase
	diffBase string
}

// NewHandler constructs an HTTP server with service dependencies.
func NewHandler(log *zap.SugaredLogger, usecase usecase.InterfaceUsecase, diffBaseURL string) *Handler {
	return &Handler{
		log:      log.Named("http"),
		uc:       usecase,
		diffBase: diffBaseURL,
	}
}

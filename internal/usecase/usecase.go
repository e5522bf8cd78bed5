package usecase

import (
	"context"
	"time"

	"push-review-queue/internal/repository"
	"push-review-queue/internal/usecase/domain"

	"go.uber.org/zap"
)

// InterfaceUsecase aggregates all usecase interfaces.
type InterfaceUsecase interface {
	ReviewUsecaseInterface
	ReportUsecaseInterface
}

// Options re-exports the domain tuning knobs for callers outside usecase.
type Options = domain.Options

// New constructs a new usecase layer with its dependencies.
func New(log *zap.SugaredLogger, ctx context.Context, repo repository.Repository, timeout time.Duration, opts Options) InterfaceUsecase {
	return domain.New(log, ctx, repo, timeout, opts)
}

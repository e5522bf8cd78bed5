package usecase

import (
	"context"

	"push-review-queue/internal/entities"
)

// ReviewUsecaseInterface abstracts the review queue for delivery layer.
type ReviewUsecaseInterface interface {
	NextPending(ctx context.Context) (*entities.PendingItem, error)
	SubmitVerdict(ctx context.Context, name, version string, verdict entities.Verdict) error
}

// ReportUsecaseInterface abstracts the progress report.
type ReportUsecaseInterface interface {
	Report(ctx context.Context) (entities.Report, error)
}

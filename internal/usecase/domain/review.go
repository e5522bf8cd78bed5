// Package domain contains application services orchestrating domain logic by push review.
package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"push-review-queue/internal/entities"
	"push-review-queue/internal/metrics"
)

// NextPending returns one pending push picked from a random sample.
func (u *Usecase) NextPending(ctx context.Context) (*entities.PendingItem, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	item, err := u.repo.SamplePending(ctx, u.opts.ReviewSamplePercent)
	switch {
	case errors.Is(err, entities.ErrNothingToReview):
		u.opts.Metrics.ObserveSelection(metrics.SelectionEmpty)
		return nil, err
	case err != nil:
		u.opts.Metrics.ObserveSelection(metrics.SelectionError)
		return nil, err
	}
	u.opts.Metrics.ObserveSelection(metrics.SelectionFound)
	return item, nil
}

// SubmitVerdict records one verdict for the push identified by name and version.
func (u *Usecase) SubmitVerdict(ctx context.Context, name, version string, verdict entities.Verdict) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	name, version = strings.TrimSpace(name), strings.TrimSpace(version)
	if name == "" || version == "" {
		return fmt.Errorf("%w: name and version are required", entities.ErrInvalidArgument)
	}
	if !verdict.Valid() {
		return fmt.Errorf("%w: unknown verdict %q", entities.ErrInvalidArgument, verdict)
	}

	err := u.repo.RecordVerdict(ctx, name, version, verdict)
	switch {
	case errors.Is(err, entities.ErrPushReviewNotFound):
		u.opts.Metrics.ObserveVerdict(verdict, metrics.VerdictNotFound)
		u.log.Infow("verdict for unknown push", "name", name, "version", version, "verdict", verdict)
		return err
	case err != nil:
		u.opts.Metrics.ObserveVerdict(verdict, metrics.VerdictError)
		return err
	}

	u.opts.Metrics.ObserveVerdict(verdict, metrics.VerdictRecorded)
	u.invalidateReport()
	u.log.Infow("verdict recorded", "name", name, "version", version, "verdict", verdict)
	return nil
}

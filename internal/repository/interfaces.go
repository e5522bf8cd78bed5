// Package repository contains repository interfaces for persistence layers.
package repository

import (
	"context"

	"push-review-queue/internal/entities"
)

// LifecycleInterface describes storage startup/shutdown hooks.
type LifecycleInterface interface {
	OnStart(_ context.Context) error
	OnStop(_ context.Context) error
}

// PushReviewInterface exposes selection and verdict recording.
type PushReviewInterface interface {
	// SamplePending returns the oldest pending push out of a samplePercent Bernoulli sample.
	SamplePending(ctx context.Context, samplePercent int) (*entities.PendingItem, error)
	// RecordVerdict increments one counter of the push in a single statement.
	RecordVerdict(ctx context.Context, name, version string, verdict entities.Verdict) error
}

// ReportInterface exposes resolved pushes for the progress report.
type ReportInterface interface {
	// ListResolved returns resolved pushes. samplePercent of 100 disables sampling.
	ListResolved(ctx context.Context, samplePercent int) ([]entities.PushReview, error)
}

// Package entities contains core business entities.
package entities

import "time"

// RequiredReviews is the approvals+rejections count at which a push is resolved.
const RequiredReviews = 3

// PushReview is one published package version and its verdict counters.
type PushReview struct {
	Name             string
	Version          string
	PreviousVersion  *string
	VersionCreatedAt time.Time
	Approvals        int64
	Rejections       int64
	Skips            int64
	Reviewed         bool
}

// Decisive returns the number of verdicts that count toward resolution.
func (r PushReview) Decisive() int64 {
	return r.Approvals + r.Rejections
}

// Resolved reports whether enough approve/reject verdicts were recorded. Skips never count.
func (r PushReview) Resolved() bool {
	return r.Decisive() >= RequiredReviews
}

// PendingItem is the projection shown to a reviewer.
type PendingItem struct {
	Name             string
	Version          string
	PreviousVersion  *string
	VersionCreatedAt time.Time
}

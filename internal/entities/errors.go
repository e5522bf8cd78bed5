// Package entities contains core business entities and errors.
package entities

import "errors"

var (
	// ErrInvalidArgument signals failed input validation.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNothingToReview is returned when the sampled candidates hold no pending push.
	ErrNothingToReview = errors.New("nothing to review")
	// ErrPushReviewNotFound is returned when no push matches name and version.
	ErrPushReviewNotFound = errors.New("push review not found")
)

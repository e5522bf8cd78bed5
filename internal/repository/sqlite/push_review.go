package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"push-review-queue/internal/entities"
)

const (
	// abs(random() % 100) is uniform over 0..99 and cannot overflow.
	sampleFilter = `abs(random() % 100) < ? AND `

	pendingQuery = `
SELECT gem_name, gem_version, previous_version, version_created_at
FROM push_reviews
WHERE %sapprovals + rejections < ?
ORDER BY version_created_at
LIMIT 1`
	resolvedQuery = `
SELECT gem_name, gem_version, previous_version, version_created_at, approvals, rejections, skips, reviewed
FROM push_reviews
WHERE %sapprovals + rejections >= ?
ORDER BY version_created_at, gem_name, gem_version`

	approveQuery = `UPDATE push_reviews SET reviewed = 1, approvals = approvals + 1 WHERE gem_name = ? AND gem_version = ?`
	rejectQuery  = `UPDATE push_reviews SET reviewed = 1, rejections = rejections + 1 WHERE gem_name = ? AND gem_version = ?`
	skipQuery    = `UPDATE push_reviews SET reviewed = 1, skips = skips + 1 WHERE gem_name = ? AND gem_version = ?`
)

var verdictQueries = map[entities.Verdict]string{
	entities.VerdictApprove: approveQuery,
	entities.VerdictReject:  rejectQuery,
	entities.VerdictSkip:    skipQuery,
}

// sampled prepends the per-row Bernoulli filter unless the whole table is requested.
func sampled(query string, percent int) (string, []any) {
	if percent >= 100 {
		return fmt.Sprintf(query, ""), []any{entities.RequiredReviews}
	}
	return fmt.Sprintf(query, sampleFilter), []any{percent, entities.RequiredReviews}
}

// SamplePending returns the oldest pending push within a Bernoulli sample of the table.
func (s *SQLite) SamplePending(ctx context.Context, samplePercent int) (*entities.PendingItem, error) {
	query, args := sampled(pendingQuery, samplePercent)

	var item entities.PendingItem
	err := s.db.QueryRowContext(ctx, query, args...).
		Scan(&item.Name, &item.Version, &item.PreviousVersion, &item.VersionCreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrNothingToReview
		}
		s.log.Errorw("failed to sample pending push", "error", err)
		return nil, fmt.Errorf("sample pending: %w", err)
	}
	return &item, nil
}

// RecordVerdict sets reviewed and bumps the verdict counter in one statement.
func (s *SQLite) RecordVerdict(ctx context.Context, name, version string, verdict entities.Verdict) error {
	query, ok := verdictQueries[verdict]
	if !ok {
		return fmt.Errorf("%w: unknown verdict %q", entities.ErrInvalidArgument, verdict)
	}

	res, err := s.db.ExecContext(ctx, query, name, version)
	if err != nil {
		s.log.Errorw("failed to record verdict", "error", err, "name", name, "version", version, "verdict", verdict)
		return fmt.Errorf("record verdict: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("record verdict rows: %w", err)
	}
	if n == 0 {
		return entities.ErrPushReviewNotFound
	}

	s.log.Debugw("verdict recorded", "name", name, "version", version, "verdict", verdict)
	return nil
}

// ListResolved returns resolved pushes, optionally from a Bernoulli sample.
func (s *SQLite) ListResolved(ctx context.Context, samplePercent int) ([]entities.PushReview, error) {
	query, args := sampled(resolvedQuery, samplePercent)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list resolved: %w", err)
	}
	defer func() { _ = rows.Close() }()

	res := make([]entities.PushReview, 0)
	for rows.Next() {
		var r entities.PushReview
		if err := rows.Scan(
			&r.Name, &r.Version, &r.PreviousVersion, &r.VersionCreatedAt,
			&r.Approvals, &r.Rejections, &r.Skips, &r.Reviewed,
		); err != nil {
			s.log.Errorw("failed to scan resolved push", "error", err)
			return nil, fmt.Errorf("scan resolved: %w", err)
		}
		res = append(res, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate resolved: %w", err)
	}
	return res, nil
}

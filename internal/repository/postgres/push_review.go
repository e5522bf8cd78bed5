package postgres

import (
	"context"
	"errors"
	"fmt"

	"push-review-queue/internal/entities"

	"github.com/jackc/pgx/v5"
)

const (
	pendingQuery = `
SELECT gem_name, gem_version, previous_version, version_created_at
FROM push_reviews%s
WHERE approvals + rejections < $1
ORDER BY version_created_at
LIMIT 1`
	resolvedQuery = `
SELECT gem_name, gem_version, previous_version, version_created_at, approvals, rejections, skips, reviewed
FROM push_reviews%s
WHERE approvals + rejections >= $1
ORDER BY version_created_at, gem_name, gem_version`

	approveQuery = `UPDATE push_reviews SET reviewed = true, approvals = approvals + 1 WHERE gem_name = $1 AND gem_version = $2`
	rejectQuery  = `UPDATE push_reviews SET reviewed = true, rejections = rejections + 1 WHERE gem_name = $1 AND gem_version = $2`
	skipQuery    = `UPDATE push_reviews SET reviewed = true, skips = skips + 1 WHERE gem_name = $1 AND gem_version = $2`
)

var verdictQueries = map[entities.Verdict]string{
	entities.VerdictApprove: approveQuery,
	entities.VerdictReject:  rejectQuery,
	entities.VerdictSkip:    skipQuery,
}

// tableSample renders the TABLESAMPLE clause; 100 percent scans the whole table.
func tableSample(percent int) string {
	if percent >= 100 {
		return ""
	}
	return fmt.Sprintf(" TABLESAMPLE BERNOULLI (%d)", percent)
}

// SamplePending returns the oldest pending push within a Bernoulli sample of the table.
func (p *Postgres) SamplePending(ctx context.Context, samplePercent int) (*entities.PendingItem, error) {
	var item entities.PendingItem
	err := p.db.QueryRow(ctx, fmt.Sprintf(pendingQuery, tableSample(samplePercent)), entities.RequiredReviews).
		Scan(&item.Name, &item.Version, &item.PreviousVersion, &item.VersionCreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrNothingToReview
		}
		p.log.Errorw("failed to sample pending push", "error", err)
		return nil, fmt.Errorf("sample pending: %w", err)
	}
	return &item, nil
}

// RecordVerdict sets reviewed and bumps the verdict counter in one statement.
func (p *Postgres) RecordVerdict(ctx context.Context, name, version string, verdict entities.Verdict) error {
	query, ok := verdictQueries[verdict]
	if !ok {
		return fmt.Errorf("%w: unknown verdict %q", entities.ErrInvalidArgument, verdict)
	}

	tag, err := p.db.Exec(ctx, query, name, version)
	if err != nil {
		p.log.Errorw("failed to record verdict", "error", err, "name", name, "version", version, "verdict", verdict)
		return fmt.Errorf("record verdict: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrPushReviewNotFound
	}

	p.log.Debugw("verdict recorded", "name", name, "version", version, "verdict", verdict)
	return nil
}

// ListResolved returns resolved pushes, optionally from a Bernoulli sample.
func (p *Postgres) ListResolved(ctx context.Context, samplePercent int) ([]entities.PushReview, error) {
	rows, err := p.db.Query(ctx, fmt.Sprintf(resolvedQuery, tableSample(samplePercent)), entities.RequiredReviews)
	if err != nil {
		return nil, fmt.Errorf("list resolved: %w", err)
	}
	defer rows.Close()

	res := make([]entities.PushReview, 0)
	for rows.Next() {
		var r entities.PushReview
		if err := rows.Scan(
			&r.Name, &r.Version, &r.PreviousVersion, &r.VersionCreatedAt,
			&r.Approvals, &r.Rejections, &r.Skips, &r.Reviewed,
		); err != nil {
			p.log.Errorw("failed to scan resolved push", "error", err)
			return nil, fmt.Errorf("scan resolved: %w", err)
		}
		res = append(res, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate resolved: %w", err)
	}
	return res, nil
}

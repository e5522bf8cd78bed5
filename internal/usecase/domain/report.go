// Package domain contains application services orchestrating domain logic by report.
package domain

import (
	"context"

	"push-review-queue/internal/entities"
)

// Report buckets resolved pushes into approved, rejected and disputed.
func (u *Usecase) Report(ctx context.Context) (entities.Report, error) {
	if u.reports != nil {
		if cached, found := u.reports.Get(reportCacheKey); found {
			return cached.(entities.Report), nil
		}
	}

	gen := u.reportGeneration()

	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	percent := 100
	if u.opts.ReportSampled {
		percent = u.opts.ReportSamplePercent
	}

	resolved, err := u.repo.ListResolved(ctx, percent)
	if err != nil {
		return entities.Report{}, err
	}

	rep := entities.BuildReport(resolved)
	rep.Sampled = percent < 100
	u.opts.Metrics.ObserveReport(rep)

	u.cacheReport(gen, rep)
	return rep, nil
}

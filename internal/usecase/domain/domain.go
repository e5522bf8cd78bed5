package domain

import (
	"context"
	"sync"
	"time"

	"push-review-queue/internal/entities"
	"push-review-queue/internal/metrics"
	"push-review-queue/internal/repository"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const reportCacheKey = "report"

// Options tunes sampling, caching and instrumentation.
type Options struct {
	// ReviewSamplePercent is the Bernoulli sample used by the selector.
	ReviewSamplePercent int
	// ReportSampled makes the report an estimate over ReportSamplePercent of the table.
	ReportSampled       bool
	ReportSamplePercent int
	// ReportCacheTTL keeps a built report for this long; zero disables caching.
	ReportCacheTTL time.Duration
	Metrics        *metrics.ReviewMetrics
}

// Usecase struct implements all usecase interfaces.
type Usecase struct {
	ctx     context.Context
	log     *zap.SugaredLogger
	repo    repository.Repository
	timeout time.Duration
	opts    Options
	reports *cache.Cache

	// reportMu guards reportGen; a report is cached only if no verdict landed while it was built.
	reportMu  sync.Mutex
	reportGen uint64
}

// New constructs a new usecase layer with its dependencies.
func New(
	log *zap.SugaredLogger,
	ctx context.Context,
	repo repository.Repository,
	timeout time.Duration,
	opts Options,
) *Usecase {
	if opts.ReviewSamplePercent <= 0 || opts.ReviewSamplePercent > 100 {
		opts.ReviewSamplePercent = 100
	}
	if opts.ReportSamplePercent <= 0 || opts.ReportSamplePercent > 100 {
		opts.ReportSamplePercent = 100
	}

	u := &Usecase{
		ctx:     ctx,
		log:     log.Named("usecase"),
		repo:    repo,
		timeout: timeout,
		opts:    opts,
	}
	if opts.ReportCacheTTL > 0 {
		u.reports = cache.New(opts.ReportCacheTTL, 2*opts.ReportCacheTTL)
	}
	return u
}

// reportGeneration returns the current verdict generation.
func (u *Usecase) reportGeneration() uint64 {
	u.reportMu.Lock()
	defer u.reportMu.Unlock()
	return u.reportGen
}

// cacheReport stores rep unless a verdict was recorded after gen was read.
func (u *Usecase) cacheReport(gen uint64, rep entities.Report) {
	if u.reports == nil {
		return
	}
	u.reportMu.Lock()
	defer u.reportMu.Unlock()
	if u.reportGen != gen {
		return
	}
	u.reports.Set(reportCacheKey, rep, cache.DefaultExpiration)
}

// invalidateReport drops the cached report and fences off reports still being built.
func (u *Usecase) invalidateReport() {
	u.reportMu.Lock()
	defer u.reportMu.Unlock()
	u.reportGen++
	if u.reports != nil {
		u.reports.Delete(reportCacheKey)
	}
}

// withTimeout bounds ctx by d when d is positive.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// Package main runs the push review queue: the review web app, migrations and the report CLI.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"push-review-queue/config"
	"push-review-queue/internal/mapper"
	"push-review-queue/internal/metrics"
	"push-review-queue/internal/repository"
	"push-review-queue/internal/transport/http/server"
	"push-review-queue/internal/usecase"
	"push-review-queue/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "push-review-queue",
		Short:         "Community review queue for published gem versions",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Serve the review pages, JSON API and metrics",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return serve(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply database migrations and exit",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return migrate(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "report",
			Short: "Print the review progress report as JSON",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return printReport(cmd.Context(), cmd.OutOrStdout())
			},
		},
	)
	return root
}

// app holds the dependencies shared by every command.
type app struct {
	cfg  *config.Config
	log  *zap.SugaredLogger
	repo repository.Repository
}

func start(ctx context.Context) (*app, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	repo, err := repository.New(ctx, cfg.Storage.Backend, log, cfg)
	if err != nil {
		log.Errorw("repository initialization error", "error", err)
		return nil, err
	}
	if err := repo.OnStart(ctx); err != nil {
		log.Errorw("repository start error", "error", err)
		return nil, err
	}
	return &app{cfg: cfg, log: log, repo: repo}, nil
}

func (a *app) stop() {
	if err := a.repo.OnStop(context.Background()); err != nil {
		a.log.Warnw("repository stop error", "error", err)
	}
	_ = a.log.Sync()
}

func (a *app) usecase(ctx context.Context, m *metrics.ReviewMetrics) usecase.InterfaceUsecase {
	return usecase.New(a.log, ctx, a.repo, a.cfg.HTTP.RequestTimeout, usecase.Options{
		ReviewSamplePercent: a.cfg.Review.SamplePercent,
		ReportSampled:       a.cfg.Report.Sampled,
		ReportSamplePercent: a.cfg.Report.SamplePercent,
		ReportCacheTTL:      a.cfg.Report.CacheTTL,
		Metrics:             m,
	})
}

func serve(ctx context.Context) error {
	a, err := start(ctx)
	if err != nil {
		return err
	}
	defer a.stop()

	registry := prometheus.NewRegistry()
	m, err := metrics.NewReviewMetrics(registry)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	serv := server.New(a.log, a.usecase(ctx, m), server.Options{
		RequestTimeout: a.cfg.HTTP.RequestTimeout,
		DiffBaseURL:    a.cfg.Diff.BaseURL,
		Registry:       registry,
	})

	go func() {
		a.log.Infow("listening", "addr", a.cfg.ServerAddr(), "backend", a.cfg.Storage.Backend)
		if err := serv.Listen(a.cfg.ServerAddr()); err != nil {
			a.log.Errorw("failed to start server", "error", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	done := make(chan struct{})
	go func() {
		_ = serv.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-shutdownCtx.Done():
		a.log.Warnw("server shutdown timeout", "timeout", a.cfg.Server.ShutdownTimeout)
	}
	return nil
}

func migrate(ctx context.Context) error {
	a, err := start(ctx)
	if err != nil {
		return err
	}
	defer a.stop()

	a.log.Infow("migrations applied", "backend", a.cfg.Storage.Backend)
	return nil
}

func printReport(ctx context.Context, out io.Writer) error {
	a, err := start(ctx)
	if err != nil {
		return err
	}
	defer a.stop()

	rep, err := a.usecase(ctx, nil).Report(ctx)
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(mapper.ToReport(rep, a.cfg.Diff.BaseURL))
}

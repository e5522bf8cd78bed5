package postgres

import (
	"context"
	"database/sql"
	"strconv"
	"testing"
	"time"

	"push-review-queue/config"
	"push-review-queue/internal/entities"

	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const insertPushQuery = `
INSERT INTO push_reviews (gem_name, gem_version, previous_version, version_created_at, approvals, rejections, skips, reviewed)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

const selectCountersQuery = `SELECT approvals, rejections, skips, reviewed FROM push_reviews WHERE gem_name = $1 AND gem_version = $2`

func startRepo(t *testing.T) (*Postgres, context.Context) {
	t.Helper()
	ctx := context.Background()

	cfg, cleanup := setupPostgres(t)
	t.Cleanup(cleanup)

	repo := New(ctx, testLogger(t), cfg)
	require.NoError(t, repo.OnStart(ctx))
	t.Cleanup(func() { _ = repo.OnStop(ctx) })
	return repo, ctx
}

func seed(t *testing.T, repo *Postgres, r entities.PushReview) {
	t.Helper()
	_, err := repo.db.Exec(context.Background(), insertPushQuery,
		r.Name, r.Version, r.PreviousVersion, r.VersionCreatedAt, r.Approvals, r.Rejections, r.Skips, r.Reviewed)
	require.NoError(t, err)
}

func counters(t *testing.T, repo *Postgres, name, version string) entities.PushReview {
	t.Helper()
	r := entities.PushReview{Name: name, Version: version}
	require.NoError(t, repo.db.QueryRow(context.Background(), selectCountersQuery, name, version).
		Scan(&r.Approvals, &r.Rejections, &r.Skips, &r.Reviewed))
	return r
}

func strPtr(s string) *string { return &s }

func TestSelectorIntegration(t *testing.T) {
	repo, ctx := startRepo(t)

	_, err := repo.SamplePending(ctx, 100)
	require.ErrorIs(t, err, entities.ErrNothingToReview)

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	seed(t, repo, entities.PushReview{Name: "rack", Version: "3.0.1", PreviousVersion: strPtr("3.0.0"), VersionCreatedAt: base.Add(time.Hour), Approvals: 2, Skips: 1, Reviewed: true})
	seed(t, repo, entities.PushReview{Name: "rails", Version: "7.1.0", PreviousVersion: strPtr("7.0.8"), VersionCreatedAt: base, Approvals: 3, Reviewed: true})
	seed(t, repo, entities.PushReview{Name: "newgem", Version: "0.1.0", VersionCreatedAt: base.Add(2 * time.Hour)})

	item, err := repo.SamplePending(ctx, 100)
	require.NoError(t, err)
	require.Equal(t, "rack", item.Name)
	require.Equal(t, "3.0.1", item.Version)
	require.NotNil(t, item.PreviousVersion)
	require.Equal(t, "3.0.0", *item.PreviousVersion)

	require.NoError(t, repo.RecordVerdict(ctx, "rack", "3.0.1", entities.VerdictApprove))

	item, err = repo.SamplePending(ctx, 100)
	require.NoError(t, err)
	require.Equal(t, "newgem", item.Name)
	require.Nil(t, item.PreviousVersion)

	// a low sample rate may miss every row but never returns a resolved push
	for i := 0; i < 20; i++ {
		item, err := repo.SamplePending(ctx, 30)
		if err != nil {
			require.ErrorIs(t, err, entities.ErrNothingToReview)
			continue
		}
		require.Equal(t, "newgem", item.Name)
	}
}

func TestRecordVerdictIntegration(t *testing.T) {
	repo, ctx := startRepo(t)

	seed(t, repo, entities.PushReview{Name: "rack", Version: "3.0.1", VersionCreatedAt: time.Now().UTC()})

	require.NoError(t, repo.RecordVerdict(ctx, "rack", "3.0.1", entities.VerdictApprove))
	require.NoError(t, repo.RecordVerdict(ctx, "rack", "3.0.1", entities.VerdictReject))
	require.NoError(t, repo.RecordVerdict(ctx, "rack", "3.0.1", entities.VerdictSkip))
	require.NoError(t, repo.RecordVerdict(ctx, "rack", "3.0.1", entities.VerdictSkip))

	got := counters(t, repo, "rack", "3.0.1")
	require.Equal(t, int64(1), got.Approvals)
	require.Equal(t, int64(1), got.Rejections)
	require.Equal(t, int64(2), got.Skips)
	require.True(t, got.Reviewed)

	err := repo.RecordVerdict(ctx, "rack", "9.9.9", entities.VerdictApprove)
	require.ErrorIs(t, err, entities.ErrPushReviewNotFound)
	require.Equal(t, got, counters(t, repo, "rack", "3.0.1"))

	err = repo.RecordVerdict(ctx, "rack", "3.0.1", entities.Verdict("maybe"))
	require.ErrorIs(t, err, entities.ErrInvalidArgument)
}

func TestRecordVerdictConcurrentIntegration(t *testing.T) {
	repo, ctx := startRepo(t)

	seed(t, repo, entities.PushReview{Name: "rack", Version: "3.0.1", VersionCreatedAt: time.Now().UTC()})

	const n = 50
	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			return repo.RecordVerdict(ctx, "rack", "3.0.1", entities.VerdictSkip)
		})
	}
	require.NoError(t, g.Wait())

	got := counters(t, repo, "rack", "3.0.1")
	require.Equal(t, int64(n), got.Skips)
	require.Zero(t, got.Approvals+got.Rejections)
}

func TestListResolvedIntegration(t *testing.T) {
	repo, ctx := startRepo(t)

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	seed(t, repo, entities.PushReview{Name: "approved", Version: "1", VersionCreatedAt: base, Approvals: 3, Reviewed: true})
	seed(t, repo, entities.PushReview{Name: "rejected", Version: "1", VersionCreatedAt: base.Add(time.Minute), Rejections: 3, Reviewed: true})
	seed(t, repo, entities.PushReview{Name: "disputed", Version: "1", VersionCreatedAt: base.Add(2 * time.Minute), Approvals: 1, Rejections: 2, Reviewed: true})
	seed(t, repo, entities.PushReview{Name: "pending", Version: "1", VersionCreatedAt: base.Add(3 * time.Minute), Approvals: 2, Skips: 5, Reviewed: true})

	resolved, err := repo.ListResolved(ctx, 100)
	require.NoError(t, err)
	require.Len(t, resolved, 3)
	require.Equal(t, "approved", resolved[0].Name)
	require.Equal(t, "rejected", resolved[1].Name)
	require.Equal(t, "disputed", resolved[2].Name)

	sampled, err := repo.ListResolved(ctx, 30)
	require.NoError(t, err)
	require.LessOrEqual(t, len(sampled), 3)
}

func TestOnStartMigrationsIdempotent(t *testing.T) {
	repo, ctx := startRepo(t)
	require.NoError(t, repo.migrate(ctx))

	_, err := repo.SamplePending(ctx, 100)
	require.ErrorIs(t, err, entities.ErrNothingToReview)
}

func setupPostgres(t *testing.T) (*config.Config, func()) {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err)

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_PASSWORD=postgres",
			"POSTGRES_USER=postgres",
			"POSTGRES_DB=rubygems",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
	})
	require.NoError(t, err)

	hostPort := resource.GetPort("5432/tcp")

	port, err := strconv.Atoi(hostPort)
	require.NoError(t, err)

	cfg := &config.Config{
		Server:  config.ServerConfig{Host: "0.0.0.0", Port: 8080, ShutdownTimeout: 5 * time.Second},
		HTTP:    config.HTTPConfig{RequestTimeout: 5 * time.Second},
		Storage: config.StorageConfig{Backend: config.BackendPostgres},
		Postgres: config.PostgresConfig{
			Host:           "localhost",
			Port:           port,
			User:           "postgres",
			Password:       "postgres",
			DBName:         "rubygems",
			SSLMode:        "disable",
			QueryTimeout:   10 * time.Second,
			MigrateTimeout: 20 * time.Second,
			MaxConns:       8,
			MinConns:       1,
		},
	}

	require.NoError(t, pool.Retry(func() error {
		db, err := sql.Open("postgres", "host=localhost port="+hostPort+" user=postgres password=postgres dbname=rubygems sslmode=disable")
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		return db.Ping()
	}))

	cleanup := func() {
		_ = pool.Purge(resource)
	}

	return cfg, cleanup
}

func testLogger(t *testing.T) *zap.SugaredLogger {
	t.Helper()

	l, _ := zap.NewDevelopment()
	t.Cleanup(func() { _ = l.Sync() })
	return l.Sugar()
}

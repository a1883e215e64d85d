// Command server runs the M87 gravitational-lensing visualization service:
// the pipeline API, the site-conditions ETL, weekly reporting, and the
// office print spool.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/john-holland/heycern-m87hey/internal/auth"
	"github.com/john-holland/heycern-m87hey/internal/conditions"
	"github.com/john-holland/heycern-m87hey/internal/epoch"
	"github.com/john-holland/heycern-m87hey/internal/observatory"
	"github.com/john-holland/heycern-m87hey/internal/platform/config"
	"github.com/john-holland/heycern-m87hey/internal/platform/events"
	"github.com/john-holland/heycern-m87hey/internal/platform/httpserver"
	"github.com/john-holland/heycern-m87hey/internal/platform/logger"
	"github.com/john-holland/heycern-m87hey/internal/platform/metrics"
	"github.com/john-holland/heycern-m87hey/internal/platform/postgres"
	"github.com/john-holland/heycern-m87hey/internal/platform/redis"
	"github.com/john-holland/heycern-m87hey/internal/printqueue"
	"github.com/john-holland/heycern-m87hey/internal/quality"
	"github.com/john-holland/heycern-m87hey/internal/render"
	"github.com/john-holland/heycern-m87hey/internal/report"
	"github.com/john-holland/heycern-m87hey/internal/spectral"
	httptransport "github.com/john-holland/heycern-m87hey/internal/transport/http"
	vizhandler "github.com/john-holland/heycern-m87hey/internal/visualization/handler"
	vizservice "github.com/john-holland/heycern-m87hey/internal/visualization/service"
	vizstore "github.com/john-holland/heycern-m87hey/internal/visualization/store"
)

func main() {
	log := logger.New("m87hey")
	if err := run(log); err != nil {
		log.Error("server exiting", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.FromEnv()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	db, err := postgres.Open(cfg.Postgres)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		return err
	}

	cache, err := redis.New(cfg.Redis)
	if err != nil {
		return err
	}
	if cache != nil {
		defer cache.Close()
	}

	var sink events.Publisher = events.NewLogPublisher(log)
	if len(cfg.Kafka.Brokers) > 0 {
		sink, err = events.NewKafkaPublisher(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		if err != nil {
			return err
		}
	}
	buffer := events.NewBuffer(sink, log, m, 0)
	defer buffer.Close()
	go func() { _ = buffer.Run(ctx) }()

	renderer, err := render.NewFromConfig(ctx, cfg.Render)
	if err != nil {
		return err
	}

	var snapshots *observatory.RedisCache
	if cache != nil {
		snapshots = observatory.NewRedisCache(cache.Client, cfg.Archive.CacheTTL, log)
	}
	source := observatory.NewService(
		observatory.NewHTTPArchiveClient(cfg.Archive.BaseURL, cfg.Archive.RequestTimeout),
		snapshots, nil, nil, m, log, cfg.Archive.Redshift,
	)

	artifacts := vizservice.ArtifactStore(vizstore.NewMemoryStore())
	tokens := auth.TokenStore(auth.NewMemoryStore())
	conditionSnapshots := conditions.SnapshotStore(conditions.NewMemoryStore())
	printJobs := printqueue.JobStore(printqueue.NewMemoryStore())
	if db != nil {
		artifacts = vizstore.NewPostgres(db)
		tokens = auth.NewPostgres(db)
		conditionSnapshots = conditions.NewPostgres(db)
		printJobs = printqueue.NewPostgres(db)
	}

	vizSvc := vizservice.NewService(source, epoch.NewCatalog(), renderer, artifacts, buffer, m, log)

	condSvc := conditions.NewService(
		conditions.NewNOAAClient(cfg.Weather.NOAABaseURL, cfg.Weather.NOAAToken, cfg.Weather.RequestTimeout),
		conditions.NewNWSClient(cfg.Weather.NWSBaseURL, cfg.Weather.RequestTimeout),
		conditionSnapshots, buffer, m, log, cfg.Site,
	)

	manager := auth.NewManager(cfg.Auth.TokenSigningKey, cfg.Auth.TokenTTL)
	authSvc := auth.NewService(tokens, manager, buffer, m, log)

	sender := report.NewSenderFromConfig(cfg.SMTP, log)
	reportSvc := report.NewService(
		spectral.NewAnalyzer(m, log), authSvc, report.NewMemoryStore(), sender,
		buffer, m, log, cfg.Report.Recipients,
	)
	go report.NewWorker(reportSvc, cfg.Report.Interval, log).Run(ctx)

	printSvc := printqueue.NewService(
		artifacts, printJobs, printqueue.OfficePrinter{}, sender,
		buffer, m, log, cfg.Printer,
	)

	rules, err := quality.LoadRules(cfg.Quality.RulesPath)
	if err != nil {
		return err
	}
	qualitySvc := quality.NewService(rules, buffer, m, log)

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:         log,
		Metrics:        m,
		Registry:       registry,
		DB:             db,
		Cache:          cache,
		RequestTimeout: cfg.HTTP.RequestTimeout,
		AdminToken:     cfg.Auth.AdminToken,
		Validator:      auth.NewManagerAdapter(manager),
		Visualizations: vizhandler.New(vizSvc, log),
		Conditions:     conditions.NewHandler(condSvc, log),
		Tokens:         auth.NewHandler(authSvc, log),
		Reports:        report.NewHandler(reportSvc, log),
		PrintJobs:      printqueue.NewHandler(printSvc, log),
		Quality:        quality.NewHandler(qualitySvc, log),
	})

	srv := httpserver.New(cfg.HTTP.Addr, router)
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	storage := "memory"
	if db != nil {
		storage = "postgres"
	}
	log.InfoContext(ctx, "m87hey server listening",
		"addr", cfg.HTTP.Addr,
		"storage", storage,
		"cache", cache != nil,
		"kafka", len(cfg.Kafka.Brokers) > 0,
		"render_mock", cfg.Render.MockMode,
	)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.InfoContext(ctx, "shutting down", "grace", cfg.HTTP.ShutdownTimeout.String())
	return httpserver.Shutdown(srv, cfg.HTTP.ShutdownTimeout)
}

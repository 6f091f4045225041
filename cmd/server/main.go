// main wires configuration, transports and the processing pipeline, and
// keeps the process lifecycle small. Business logic lives in internal
// packages.
package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"caseflow/internal/cases/mapper"
	"caseflow/internal/dedupe"
	"caseflow/internal/events"
	"caseflow/internal/events/outbox"
	"caseflow/internal/feed/parser"
	"caseflow/internal/match"
	"caseflow/internal/pipeline"
	pipelinemetrics "caseflow/internal/pipeline/metrics"
	"caseflow/internal/platform/auth"
	"caseflow/internal/platform/config"
	"caseflow/internal/platform/httpserver"
	"caseflow/internal/platform/kafka"
	"caseflow/internal/platform/logger"
	platformredis "caseflow/internal/platform/redis"
	"caseflow/internal/store"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := kafka.EnsureTopics(ctx, cfg.Feed.Brokers, cfg.Feed.Topic, cfg.Events.Topic); err != nil {
		log.Warn("topic creation failed, continuing", "error", err)
	}

	var tokens store.TokenSource
	if cfg.Auth.SigningKey != "" {
		tokens = auth.NewTokenSource(cfg.Auth.SigningKey, cfg.Auth.Issuer, cfg.Auth.TTL)
	}

	// Notification sinks: structured log always, plus either the durable
	// outbox (drained to Kafka) or the direct Kafka sink.
	sinks := events.MultiSink{events.NewLogSink(log)}

	producer, err := kafka.NewProducer(cfg.Feed.Brokers, cfg.Events.Topic)
	if err != nil {
		log.Error("create event producer", "error", err)
		os.Exit(1)
	}
	defer producer.Close()

	if cfg.Events.PostgresDSN != "" {
		db, err := sql.Open("pgx", cfg.Events.PostgresDSN)
		if err != nil {
			log.Error("open outbox database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		outboxStore := outbox.NewPostgres(db)
		if err := outboxStore.Migrate(ctx); err != nil {
			log.Error("migrate outbox", "error", err)
			os.Exit(1)
		}
		sinks = append(sinks, outbox.NewSink(outboxStore))

		worker := outbox.NewWorker(outboxStore, producer, 5*time.Second, log)
		go func() {
			if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("outbox worker stopped", "error", err)
			}
		}()
	} else {
		sinks = append(sinks, events.NewKafkaSink(producer))
	}

	caseStore, err := store.New(cfg.CaseStore.BaseURL, sinks,
		store.WithHTTPClient(&http.Client{Timeout: cfg.CaseStore.Timeout}),
		store.WithRetryPolicy(store.RetryPolicy{
			MaxAttempts:     cfg.CaseStore.RetryMax,
			InitialInterval: cfg.CaseStore.RetryInterval,
		}),
		store.WithTokenSource(tokens),
		store.WithLogger(log),
	)
	if err != nil {
		log.Error("create case store client", "error", err)
		os.Exit(1)
	}

	searchClient, err := store.NewSearch(cfg.Search.BaseURL,
		store.WithSearchHTTPClient(&http.Client{Timeout: cfg.Search.Timeout}),
		store.WithSearchTokenSource(tokens),
		store.WithSearchLogger(log),
	)
	if err != nil {
		log.Error("create search client", "error", err)
		os.Exit(1)
	}

	engine, err := match.New(searchClient, caseStore, match.WithLogger(log))
	if err != nil {
		log.Error("create matching engine", "error", err)
		os.Exit(1)
	}

	pipelineOpts := []pipeline.Option{
		pipeline.WithLogger(log),
		pipeline.WithMetrics(pipelinemetrics.New()),
		pipeline.WithFutureOffsetDays(cfg.Pipeline.FutureOffsetDays),
		pipeline.WithConcurrency(cfg.Pipeline.Concurrency),
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("connect redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		pipelineOpts = append(pipelineOpts, pipeline.WithGuard(dedupe.New(redisClient, cfg.Redis.DedupTTL)))
	}

	pl, err := pipeline.New(
		parser.New(),
		mapper.New(cfg.Pipeline.DefaultProbationStatus),
		engine,
		caseStore,
		sinks,
		pipelineOpts...,
	)
	if err != nil {
		log.Error("create pipeline", "error", err)
		os.Exit(1)
	}

	consumer, err := kafka.NewConsumer(cfg.Feed.Brokers, cfg.Feed.Group, cfg.Feed.Topic, log)
	if err != nil {
		log.Error("create feed consumer", "error", err)
		os.Exit(1)
	}
	defer consumer.Close()

	go func() {
		if err := consumer.Run(ctx, pl.Handle); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("feed consumer stopped", "error", err)
			stop()
		}
	}()

	ready := func() error {
		if redisClient != nil {
			return redisClient.Ping(ctx).Err()
		}
		return nil
	}
	srv := httpserver.New(cfg.Server.Addr, ready)

	log.Info("starting caseflow", "addr", cfg.Server.Addr, "feed_topic", cfg.Feed.Topic)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}

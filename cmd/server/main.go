package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"
	"golang.org/x/sync/errgroup"

	"surety/internal/consortium"
	gateservice "surety/internal/gate/service"
	gatestore "surety/internal/gate/store"
	jwttoken "surety/internal/jwt_token"
	"surety/internal/platform/config"
	"surety/internal/platform/httpserver"
	"surety/internal/platform/logger"
	"surety/internal/platform/metrics"
	"surety/internal/platform/postgres"
	"surety/internal/platform/redis"
	ratelimit "surety/internal/ratelimit/middleware"
	ratelimitmodels "surety/internal/ratelimit/models"
	"surety/internal/ratelimit/store/bucket"
	httptransport "surety/internal/transport/http"
	"surety/pkg/platform/audit/outbox"
)

const (
	shutdownTimeout = 10 * time.Second
	tokenAudience   = "surety-api"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	registry := metrics.New()
	health := map[string]httptransport.HealthCheck{}

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	var flagStore gateservice.FlagStore = gatestore.NewInMemory()
	var buckets ratelimit.BucketStore = bucket.NewInMemoryBucketStore()
	if redisClient != nil {
		defer redisClient.Close()
		flagStore = gatestore.NewRedis(redisClient)
		buckets = bucket.NewRedisBucketStore(redisClient)
		health["redis"] = redisClient.Health
		log.Info("operating flag stored in redis")
	}

	var db *sql.DB
	stores := consortium.InMemoryStores()
	stores.Flags = flagStore
	if cfg.Database.URL != "" {
		db, err = postgres.OpenWithConfig(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
		stores = consortium.PostgresStores(db, flagStore)
		health["postgres"] = db.PingContext
		log.Info("ledger stored in postgres")
	} else {
		log.Warn("DATABASE_URL not set, ledger state is in memory and lost on restart")
	}

	c, err := consortium.New(stores, consortium.Settings{
		Owner:               cfg.Consortium.Owner,
		QuorumThresholdSize: cfg.Consortium.QuorumThresholdSize,
		FundingThreshold:    cfg.Consortium.FundingThreshold,
	},
		consortium.WithLogger(log),
		consortium.WithRegisterer(registry),
	)
	if err != nil {
		return err
	}
	if err := c.Bootstrap(ctx, cfg.Consortium.AppModule, cfg.Consortium.FirstAirline, cfg.Consortium.FirstAirlineName); err != nil {
		return fmt.Errorf("bootstrap consortium: %w", err)
	}

	handler := httptransport.NewHandler(httptransport.Services{
		Gate:         c.Gate,
		Access:       c.Access,
		Members:      c.Members,
		Funding:      c.Funding,
		Registration: c.Registration,
	}, cfg.Consortium.AppModule, log)
	router := httptransport.NewRouter(handler, httptransport.RouterConfig{
		Tokens:  jwttoken.NewJWTService(cfg.Server.JWTSigningKey, cfg.Server.JWTIssuer, tokenAudience),
		Metrics: registry.Handler(),
		Health:  health,
		Logger:  log,
		RateLimit: ratelimit.New(buckets, ratelimitmodels.Policy{
			Limit:  cfg.RateLimit.Limit,
			Window: cfg.RateLimit.Window,
		}, log).RateLimitCaller,
	})
	srv := httpserver.New(cfg.Server.Addr, router)

	var relay *outbox.Relay
	if db != nil && len(cfg.Kafka.Brokers) > 0 {
		client, err := kgo.NewClient(kgo.SeedBrokers(cfg.Kafka.Brokers...))
		if err != nil {
			return fmt.Errorf("create kafka client: %w", err)
		}
		defer client.Close()
		if err := outbox.EnsureTopic(ctx, kadm.NewClient(client), cfg.Kafka.AuditTopic, 1, 1); err != nil {
			return err
		}
		relay, err = outbox.New(db, client, cfg.Kafka.AuditTopic, outbox.WithLogger(log))
		if err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting surety", "addr", cfg.Server.Addr)
		return httpserver.Serve(gctx, srv, shutdownTimeout)
	})

	if relay != nil {
		g.Go(func() error {
			log.Info("relaying audit outbox", "topic", cfg.Kafka.AuditTopic)
			if err := relay.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	return g.Wait()
}

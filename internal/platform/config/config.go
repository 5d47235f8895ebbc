package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	id "surety/pkg/domain"
)

// Defaults mirror the FlightSurety deployment: four airlines join without a
// vote and a bond of 10 ether makes an airline a voter.
const (
	DefaultQuorumThresholdSize = 4
	DefaultFundingThreshold    = "10"
	DefaultAuditTopic          = "surety.audit"
	DefaultRateLimitPerMinute  = 60
)

// Config is the process configuration.
type Config struct {
	Server     Server
	Database   DatabaseConfig
	Redis      RedisConfig
	Kafka      KafkaConfig
	RateLimit  RateLimitConfig
	Consortium ConsortiumConfig
	Log        LogConfig
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr          string
	JWTSigningKey string
	JWTIssuer     string
}

// DatabaseConfig selects Postgres persistence. An empty URL keeps every
// ledger in memory.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig selects Redis for the operating flag. An empty URL keeps the
// flag in memory.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig enables the audit outbox relay when brokers are set.
type KafkaConfig struct {
	Brokers    []string
	AuditTopic string
}

// RateLimitConfig bounds mutating requests per caller. A zero limit disables
// rate limiting.
type RateLimitConfig struct {
	Limit  int
	Window time.Duration
}

// ConsortiumConfig holds the governance parameters and administrative
// identities handed to the ledgers at construction.
type ConsortiumConfig struct {
	Owner               id.MemberID
	AppModule           id.ModuleID
	FirstAirline        id.MemberID
	FirstAirlineName    string
	QuorumThresholdSize uint32
	FundingThreshold    decimal.Decimal
}

type LogConfig struct {
	Level  string
	Format string
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	var errs []error

	owner, err := id.ParseMemberID(os.Getenv("CONTRACT_OWNER"))
	if err != nil {
		errs = append(errs, fmt.Errorf("CONTRACT_OWNER: %w", err))
	}
	appModule, err := id.ParseModuleID(os.Getenv("APP_MODULE_ID"))
	if err != nil {
		errs = append(errs, fmt.Errorf("APP_MODULE_ID: %w", err))
	}

	firstAirline := owner
	if raw := os.Getenv("FIRST_AIRLINE"); raw != "" {
		firstAirline, err = id.ParseMemberID(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("FIRST_AIRLINE: %w", err))
		}
	}

	quorumSize := uint64(DefaultQuorumThresholdSize)
	if raw := os.Getenv("QUORUM_THRESHOLD_SIZE"); raw != "" {
		quorumSize, err = strconv.ParseUint(raw, 10, 32)
		if err != nil || quorumSize == 0 {
			errs = append(errs, fmt.Errorf("QUORUM_THRESHOLD_SIZE must be a positive integer, got %q", raw))
		}
	}

	threshold, err := decimal.NewFromString(envOr("FUNDING_THRESHOLD", DefaultFundingThreshold))
	if err != nil || !threshold.IsPositive() {
		errs = append(errs, fmt.Errorf("FUNDING_THRESHOLD must be a positive decimal"))
	}

	rateLimit := DefaultRateLimitPerMinute
	if raw := os.Getenv("RATE_LIMIT_PER_MINUTE"); raw != "" {
		rateLimit, err = strconv.Atoi(raw)
		if err != nil || rateLimit < 0 {
			errs = append(errs, fmt.Errorf("RATE_LIMIT_PER_MINUTE must be a non-negative integer, got %q", raw))
		}
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}

	return Config{
		Server: Server{
			Addr:          envOr("SURETY_ADDR", ":8080"),
			JWTSigningKey: jwtSigningKey,
			JWTIssuer:     envOr("JWT_ISSUER", "surety"),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers:    splitList(os.Getenv("KAFKA_BROKERS")),
			AuditTopic: envOr("AUDIT_TOPIC", DefaultAuditTopic),
		},
		RateLimit: RateLimitConfig{
			Limit:  rateLimit,
			Window: time.Minute,
		},
		Consortium: ConsortiumConfig{
			Owner:               owner,
			AppModule:           appModule,
			FirstAirline:        firstAirline,
			FirstAirlineName:    envOr("FIRST_AIRLINE_NAME", "First Airline"),
			QuorumThresholdSize: uint32(quorumSize),
			FundingThreshold:    threshold,
		},
		Log: LogConfig{
			Level:  envOr("LOG_LEVEL", "info"),
			Format: envOr("LOG_FORMAT", "json"),
		},
	}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

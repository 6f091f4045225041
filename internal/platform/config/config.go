// Package config builds runtime configuration from the environment so main
// stays lean. Every tunable is explicit; no package holds ambient defaults.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the full runtime configuration.
type Config struct {
	Server    Server
	Feed      Feed
	CaseStore CaseStore
	Search    Search
	Redis     Redis
	Events    Events
	Pipeline  Pipeline
	Auth      Auth
}

// Server configures the health/metrics HTTP listener.
type Server struct {
	Addr string
}

// Feed configures the inbound hearing-list topic.
type Feed struct {
	Brokers []string
	Topic   string
	Group   string
}

// CaseStore configures the downstream case-store client.
type CaseStore struct {
	BaseURL       string
	Timeout       time.Duration
	RetryMax      int
	RetryInterval time.Duration
}

// Search configures the offender-records search client.
type Search struct {
	BaseURL string
	Timeout time.Duration
}

// Redis configures the dedupe guard store. Empty URL disables the guard.
type Redis struct {
	URL      string
	DedupTTL time.Duration
}

// Events configures notification delivery. Empty topic disables the Kafka
// sink; empty DSN disables the outbox.
type Events struct {
	Topic       string
	PostgresDSN string
}

// Pipeline configures message processing.
type Pipeline struct {
	FutureOffsetDays       int
	Concurrency            int
	DefaultProbationStatus string
}

// Auth configures the outbound service bearer token. Empty signing key sends
// unauthenticated requests.
type Auth struct {
	SigningKey string
	Issuer     string
	TTL        time.Duration
}

// FromEnv reads configuration from environment variables with development
// defaults.
func FromEnv() Config {
	return Config{
		Server: Server{
			Addr: envString("CASEFLOW_ADDR", ":8080"),
		},
		Feed: Feed{
			Brokers: strings.Split(envString("CASEFLOW_KAFKA_BROKERS", "localhost:9092"), ","),
			Topic:   envString("CASEFLOW_FEED_TOPIC", "court-hearing-lists"),
			Group:   envString("CASEFLOW_FEED_GROUP", "caseflow"),
		},
		CaseStore: CaseStore{
			BaseURL:       envString("CASEFLOW_CASE_STORE_URL", "http://localhost:8081"),
			Timeout:       envDuration("CASEFLOW_CASE_STORE_TIMEOUT", 30*time.Second),
			RetryMax:      envInt("CASEFLOW_CASE_STORE_RETRY_MAX", 3),
			RetryInterval: envDuration("CASEFLOW_CASE_STORE_RETRY_INTERVAL", 2*time.Second),
		},
		Search: Search{
			BaseURL: envString("CASEFLOW_SEARCH_URL", "http://localhost:8082"),
			Timeout: envDuration("CASEFLOW_SEARCH_TIMEOUT", 30*time.Second),
		},
		Redis: Redis{
			URL:      os.Getenv("CASEFLOW_REDIS_URL"),
			DedupTTL: envDuration("CASEFLOW_DEDUPE_TTL", 48*time.Hour),
		},
		Events: Events{
			Topic:       envString("CASEFLOW_EVENTS_TOPIC", "caseflow-events"),
			PostgresDSN: os.Getenv("CASEFLOW_POSTGRES_DSN"),
		},
		Pipeline: Pipeline{
			FutureOffsetDays:       envInt("CASEFLOW_FUTURE_OFFSET_DAYS", 2),
			Concurrency:            envInt("CASEFLOW_CASE_CONCURRENCY", 8),
			DefaultProbationStatus: envString("CASEFLOW_DEFAULT_PROBATION_STATUS", "No record"),
		},
		Auth: Auth{
			SigningKey: os.Getenv("CASEFLOW_SERVICE_SIGNING_KEY"),
			Issuer:     envString("CASEFLOW_SERVICE_ISSUER", "caseflow"),
			TTL:        envDuration("CASEFLOW_SERVICE_TOKEN_TTL", 5*time.Minute),
		},
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

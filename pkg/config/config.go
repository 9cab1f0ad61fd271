package config

import (
	"os"
	"time"
)

// DefaultUser is the fixed identity every request runs as until real
// authentication exists. Treat it as request-scoped plumbing, not a
// global: it is injected by middleware and read from the request context.
const DefaultUser = "no-one"

// APIBasePath is the base path of the todo API.
const APIBasePath = "/api/v1/todos"

// AppConfig collects everything the API process consumes from the
// environment.
type AppConfig struct {
	Port        string
	Environment string

	// TableName identifies the DynamoDB table holding the todos.
	TableName string
	// StoreDriver selects the store adapter: "dynamo" or "memory".
	StoreDriver string
	// DynamoEndpoint overrides the DynamoDB endpoint (local development).
	DynamoEndpoint string

	MetricsPort  string
	OTLPEndpoint string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func FromEnv() *AppConfig {
	return &AppConfig{
		Port:           getenv("PORT", "8080"),
		Environment:    getenv("ENVIRONMENT", "development"),
		TableName:      getenv("TABLE", "todos"),
		StoreDriver:    getenv("STORE_DRIVER", "dynamo"),
		DynamoEndpoint: os.Getenv("DYNAMO_ENDPOINT"),
		MetricsPort:    getenv("METRICS_PORT", "9091"),
		OTLPEndpoint:   getenv("OTLP_ENDPOINT", "localhost:4317"),
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

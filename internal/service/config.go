// Package service holds the top-level configuration and server wiring for
// the LDP repository binary, the way components/ledger's own
// internal/service package does for its HTTP server.
package service

import (
	"github.com/fcrepo-go/ldprepo/common"
)

// Config is the top level configuration struct for the entire application,
// bound from environment variables the same way the reference ledger
// service's Config is.
type Config struct {
	EnvName       string `env:"ENV_NAME"`
	ServerAddress string `env:"SERVER_ADDRESS"`

	PrimaryDBHost     string `env:"DB_HOST"`
	PrimaryDBUser     string `env:"DB_USER"`
	PrimaryDBPassword string `env:"DB_PASSWORD"`
	PrimaryDBName     string `env:"DB_NAME"`
	PrimaryDBPort     string `env:"DB_PORT"`
	ReplicaDBHost     string `env:"DB_REPLICA_HOST"`
	ReplicaDBUser     string `env:"DB_REPLICA_USER"`
	ReplicaDBPassword string `env:"DB_REPLICA_PASSWORD"`
	ReplicaDBName     string `env:"DB_REPLICA_NAME"`
	ReplicaDBPort     string `env:"DB_REPLICA_PORT"`

	RedisHost string `env:"REDIS_HOST"`
	RedisPort string `env:"REDIS_PORT"`

	RabbitMQHost     string `env:"RABBITMQ_HOST"`
	RabbitMQPortAMQP string `env:"RABBITMQ_PORT_AMQP"`
	RabbitMQUser     string `env:"RABBITMQ_DEFAULT_USER"`
	RabbitMQPass     string `env:"RABBITMQ_DEFAULT_PASS"`

	MongoDBHost     string `env:"MONGO_HOST"`
	MongoDBName     string `env:"MONGO_NAME"`
	MongoDBUser     string `env:"MONGO_USER"`
	MongoDBPassword string `env:"MONGO_PASSWORD"`
	MongoDBPort     string `env:"MONGO_PORT"`

	OtelServiceName         string `env:"OTEL_RESOURCE_SERVICE_NAME"`
	OtelLibraryName         string `env:"OTEL_LIBRARY_NAME"`
	OtelServiceVersion      string `env:"OTEL_RESOURCE_SERVICE_VERSION"`
	OtelDeploymentEnv       string `env:"OTEL_RESOURCE_DEPLOYMENT_ENVIRONMENT"`
	OtelColExporterEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	// WebRoot is the base URI every resource URN localizes/globalizes
	// against (tbx.New's webroot argument).
	WebRoot string `env:"FCREPO_WEBROOT"`

	// ReferentialIntegrity selects create_or_replace's reaction to a
	// dangling object IRI: "off", "lenient" or "strict".
	ReferentialIntegrity string `env:"FCREPO_REFERENTIAL_INTEGRITY"`

	// Messaging turns on post-commit event publication over RabbitMQ.
	Messaging bool `env:"FCREPO_MESSAGING"`

	// Archiving turns on changelog archival to MongoDB.
	Archiving bool `env:"FCREPO_ARCHIVING"`

	DefaultUser string `env:"FCREPO_DEFAULT_USER"`
}

// NewConfig creates an instance of Config.
func NewConfig() *Config {
	cfg := &Config{}

	if err := common.SetConfigFromEnvVars(cfg); err != nil {
		panic(err)
	}

	if cfg.ServerAddress == "" {
		cfg.ServerAddress = ":3000"
	}

	if cfg.WebRoot == "" {
		cfg.WebRoot = "http://localhost:3000/ldp"
	}

	if cfg.ReferentialIntegrity == "" {
		cfg.ReferentialIntegrity = "lenient"
	}

	if cfg.DefaultUser == "" {
		cfg.DefaultUser = "bypass_admin"
	}

	return cfg
}

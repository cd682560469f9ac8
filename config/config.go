package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port       int    `env:"PORT" envDefault:"4000"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	LogConsole bool   `env:"LOG_CONSOLE" envDefault:"false"`

	// MasterKey is the bearer token every request must present.
	MasterKey string `env:"MASTER_KEY,required"`

	// PgURL is optional: without it the proxy runs database-less and
	// readiness reports the database as not connected.
	PgURL     string `env:"PG_URL"`
	PgPoolMax int    `env:"PG_POOL_MAX" envDefault:"10"`

	// RedisURL is optional: when set, readiness includes the cache descriptor.
	RedisURL string `env:"REDIS_URL"`

	// ModelConfigPath points to the YAML file with the model endpoint list.
	ModelConfigPath string `env:"MODEL_CONFIG_PATH"`

	// CLIModel is the single-model fallback used when no endpoint list is configured.
	CLIModel string `env:"CLI_MODEL"`

	BackgroundHealthChecks bool          `env:"BACKGROUND_HEALTH_CHECKS" envDefault:"false"`
	HealthCheckInterval    time.Duration `env:"HEALTH_CHECK_INTERVAL" envDefault:"5m"`
	HealthCheckTimeout     time.Duration `env:"HEALTH_CHECK_TIMEOUT" envDefault:"60s"`
	DBHealthCacheTTL       time.Duration `env:"DB_HEALTH_CACHE_TTL" envDefault:"2m"`

	// Kafka alert delivery. Alerting is disabled when no brokers are configured.
	KafkaBrokers     []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaAlertsTopic string   `env:"KAFKA_ALERTS_TOPIC" envDefault:"modelgate.health.alerts"`
	AlertQueueSize   int      `env:"ALERT_QUEUE_SIZE" envDefault:"256"`
}

func New() (Config, error) {
	c, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}

	return c, nil
}

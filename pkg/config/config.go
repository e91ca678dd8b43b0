package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Notification store backends
const (
	NotificationStorePostgres = "postgres"
	NotificationStoreMongo    = "mongo"
)

type Config struct {
	Port                    string `env:"PORT" envDefault:"8080"`
	Env                     string `env:"ENV" envDefault:"development"`
	LogLevel                string `env:"LOG_LEVEL" envDefault:"info"`
	PostgresConnStr         string `env:"POSTGRES_CONN_STR,required,notEmpty"`
	MongoURI                string `env:"MONGO_URI"`
	MongoDatabase           string `env:"MONGO_DATABASE" envDefault:"socialmedia"`
	NotificationStore       string `env:"NOTIFICATION_STORE" envDefault:"postgres"`
	RedisURL                string `env:"REDIS_URL"`
	JWTSecret               string `env:"JWT_SECRET" envDefault:"supersecretjwtkey"`
	FirebaseCredentialsPath string `env:"FIREBASE_CREDENTIALS_PATH"`
	MetricsPort             string `env:"METRICS_PORT" envDefault:"9090"`
}

// Load reads an optional .env file and parses the environment into a Config
func Load() (*Config, error) {
	// A missing .env is fine, the environment may already be set.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.NotificationStore {
	case NotificationStorePostgres:
	case NotificationStoreMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("config: NOTIFICATION_STORE=mongo requires MONGO_URI")
		}
	default:
		return fmt.Errorf("config: unknown NOTIFICATION_STORE %q", c.NotificationStore)
	}
	return nil
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name    string `envconfig:"APP_NAME" default:"billdesk"`
		DataDir string `envconfig:"DATA_DIR" default:""`
	}

	API struct {
		BaseURL  string        `envconfig:"API_BASE_URL" default:"http://localhost:8080"`
		Timeout  time.Duration `envconfig:"API_TIMEOUT" default:"15s"`
		Token    string        `envconfig:"API_TOKEN"`
		DeviceID string        `envconfig:"DEVICE_ID"`
	}

	Gateway struct {
		// Simulated authorization delay for non-cash payments.
		Delay time.Duration `envconfig:"GATEWAY_DELAY" default:"1s"`
	}

	Server struct {
		Port      int           `envconfig:"PORT" default:"8080"`
		Timeout   time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		JWTSecret string        `envconfig:"JWT_SECRET" default:"dev-secret"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"billdesk"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

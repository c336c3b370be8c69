package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Gastos"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Log struct {
		Level  string `envconfig:"LOG_LEVEL" default:"info"`
		Format string `envconfig:"LOG_FORMAT" default:"console"`
	}

	Ledger struct {
		Backend   string `envconfig:"LEDGER_BACKEND" default:"notion"`
		LocalPath string `envconfig:"LOCAL_LEDGER_PATH" default:"gastos.db"`
	}

	Notion struct {
		Token      string `envconfig:"NOTION_TOKEN"`
		DatabaseID string `envconfig:"NOTION_DATABASE_ID"`
		Retries    int    `envconfig:"NOTION_RETRIES" default:"5"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"gastos"`
	}

	Rules struct {
		Source string `envconfig:"RULES_SOURCE" default:"file"`
		Path   string `envconfig:"RULES_PATH" default:"categorization_rules.yaml"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		MaxUploadMB    int64         `envconfig:"MAX_UPLOAD_MB" default:"10"`
		AllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS"`
		JWTSecret      string        `envconfig:"JWT_SECRET"`
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
